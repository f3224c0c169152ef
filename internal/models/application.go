// internal/models/application.go
package models

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationSelected ApplicationStatus = "selected"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Feedback is attached to an application when its job is completed.
type Feedback struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment,omitempty"`
}

// SeekerProfile is the denormalized seeker snapshot embedded in an
// application for the provider's review.
type SeekerProfile struct {
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	Age               int      `json:"age,omitempty"`
	Gender            string   `json:"gender,omitempty"`
	WorkingCity       string   `json:"workingCity,omitempty"`
	PermanentAddress  string   `json:"permanentAddress,omitempty"`
	Pincode           string   `json:"pincode,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	YearsOfExperience int      `json:"yearsOfExperience,omitempty"`
	Experience        string   `json:"experience,omitempty"`
	Rating            float64  `json:"rating,omitempty"`
}

// Application is a seeker's request to be considered for a job. The server
// enforces at most one per (jobId, seekerId); the client pre-checks before
// submitting. RankingScore is computed server-side and only displayed.
type Application struct {
	ID            string            `json:"id"`
	JobID         string            `json:"jobId"`
	SeekerID      string            `json:"seekerId"`
	SeekerName    string            `json:"seekerName"`
	SeekerProfile *SeekerProfile    `json:"seekerProfile,omitempty"`
	Status        ApplicationStatus `json:"status"`
	RankingScore  *float64          `json:"rankingScore,omitempty"`
	AppliedAt     string            `json:"appliedAt,omitempty"`
	Feedback      *Feedback         `json:"feedback,omitempty"`
	JobTitle      string            `json:"jobTitle,omitempty"`
}

// ApplicationDisplay is the presentation state of an application derived
// from its own status plus the parent job's status.
type ApplicationDisplay string

const (
	DisplaySelected    ApplicationDisplay = "Selected"
	DisplayNotSelected ApplicationDisplay = "Not Selected"
	DisplayPending     ApplicationDisplay = "Pending"
)

// DisplayState partitions applications for rendering. Once the job is
// assigned, every non-selected application reads "Not Selected" regardless
// of its own stored status.
func DisplayState(job *Job, app *Application) ApplicationDisplay {
	switch {
	case app.Status == ApplicationSelected:
		return DisplaySelected
	case job != nil && job.Status == JobAssigned:
		return DisplayNotSelected
	default:
		return DisplayPending
	}
}
