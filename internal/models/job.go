// internal/models/job.go
package models

import "strings"

type WageType string

const (
	WageDaily   WageType = "daily"
	WageWeekly  WageType = "weekly"
	WageMonthly WageType = "monthly"
	WageTotal   WageType = "total"
)

// JobStatus is the primary lifecycle field:
// open -> assigned -> completed, or open -> closed.
type JobStatus string

const (
	JobOpen      JobStatus = "open"
	JobAssigned  JobStatus = "assigned"
	JobCompleted JobStatus = "completed"
	JobClosed    JobStatus = "closed"
)

// Job as served by the backend. Two location schemas coexist in the data:
// the structured state/district/pincode triple and the legacy free-text
// Location field. Both must be tolerated; DisplayLocation normalizes them.
// LegacyStatus is a secondary "OPEN"/"CLOSED" flag older records carry next
// to Status; DisplayStatus encodes the precedence between the two.
type Job struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	Location string `json:"location,omitempty"`
	State    string `json:"state,omitempty"`
	District string `json:"district,omitempty"`
	Pincode  string `json:"pincode,omitempty"`

	Payment    string   `json:"payment"`
	WageType   WageType `json:"wageType,omitempty"`
	Negotiable bool     `json:"negotiable,omitempty"`
	Duration   string   `json:"duration,omitempty"`

	RequiredSkills      []string `json:"requiredSkills,omitempty"`
	PreferredExperience int      `json:"preferredExperience,omitempty"`
	PreferredAge        string   `json:"preferredAge,omitempty"`
	PreferredGender     string   `json:"preferredGender,omitempty"`

	Status       JobStatus `json:"status"`
	LegacyStatus string    `json:"jobStatus,omitempty"`
	Applicants   int       `json:"applicants,omitempty"`
	AssignedTo   string    `json:"assignedTo,omitempty"`

	ProviderID   string `json:"providerId"`
	ProviderName string `json:"providerName,omitempty"`

	MatchScore float64 `json:"matchScore,omitempty"`
	CreatedAt  string  `json:"createdAt,omitempty"`
}

// DisplayLocation produces the canonical display string. The structured
// triple wins; legacy free text is the fallback.
func (j *Job) DisplayLocation() string {
	if j.District != "" && j.State != "" && j.Pincode != "" {
		return j.District + ", " + j.State + " - " + j.Pincode
	}
	return j.Location
}

// IsListedOpen reports whether the job should accept applications: Status
// must be open and the legacy flag must not contradict it.
func (j *Job) IsListedOpen() bool {
	return j.Status == JobOpen && (j.LegacyStatus == "OPEN" || j.LegacyStatus == "")
}

// DisplayStatus resolves the dual status fields into one badge label.
// Precedence, preserved exactly from the shipped behavior:
//  1. Status open with a non-contradicting legacy flag -> "Open"
//  2. Status assigned -> "Candidate Selected"
//  3. Status completed -> "Completed"
//  4. Legacy flag CLOSED -> "Closed" (this also catches open+CLOSED)
//  5. Anything else -> capitalized Status
func DisplayStatus(status JobStatus, legacyStatus string) string {
	switch {
	case status == JobOpen && (legacyStatus == "OPEN" || legacyStatus == ""):
		return "Open"
	case status == JobAssigned:
		return "Candidate Selected"
	case status == JobCompleted:
		return "Completed"
	case legacyStatus == "CLOSED":
		return "Closed"
	default:
		return capitalize(string(status))
	}
}

// DisplayStatus resolves this job's badge label.
func (j *Job) DisplayStatus() string {
	return DisplayStatus(j.Status, j.LegacyStatus)
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// NewJob is the payload for POST /jobs. The structured location fields are
// required; Location carries the pre-rendered display string for older
// readers of the data.
type NewJob struct {
	Title       string `json:"title"`
	Description string `json:"description"`

	State    string `json:"state"`
	District string `json:"district"`
	Pincode  string `json:"pincode"`
	Location string `json:"location,omitempty"`

	Payment    string   `json:"payment"`
	WageType   WageType `json:"wageType"`
	Negotiable bool     `json:"negotiable,omitempty"`
	Duration   string   `json:"duration,omitempty"`

	RequiredSkills      []string `json:"requiredSkills,omitempty"`
	PreferredExperience int      `json:"preferredExperience,omitempty"`
	PreferredAge        string   `json:"preferredAge,omitempty"`
	PreferredGender     string   `json:"preferredGender,omitempty"`
}
