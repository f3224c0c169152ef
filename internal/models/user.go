// internal/models/user.go
package models

// UserType distinguishes the two account roles. It is immutable after
// registration and gates which profile fields are editable.
type UserType string

const (
	UserTypeProvider UserType = "provider"
	UserTypeSeeker   UserType = "seeker"
)

// User is the profile record as served by /users/me. Seeker-only fields
// (skills, experience, rating) are omitted for providers.
type User struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	UserType         UserType `json:"userType"`
	Gender           string   `json:"gender,omitempty"`
	Age              int      `json:"age,omitempty"`
	PermanentAddress string   `json:"permanentAddress,omitempty"`
	PresentAddress   string   `json:"presentAddress,omitempty"`
	WorkingCity      string   `json:"workingCity,omitempty"`
	Pincode          string   `json:"pincode,omitempty"`
	Bio              string   `json:"bio,omitempty"`

	Skills            []string `json:"skills,omitempty"`
	YearsOfExperience int      `json:"yearsOfExperience,omitempty"`
	Rating            float64  `json:"rating,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
}

func (u *User) IsProvider() bool {
	return u.UserType == UserTypeProvider
}

func (u *User) IsSeeker() bool {
	return u.UserType == UserTypeSeeker
}

// Registration is the payload for account creation. There is no password:
// login is OTP-only.
type Registration struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	UserType         UserType `json:"userType"`
	Gender           string   `json:"gender"`
	Age              int      `json:"age"`
	PermanentAddress string   `json:"permanentAddress"`
	PresentAddress   string   `json:"presentAddress,omitempty"`
	WorkingCity      string   `json:"workingCity"`
	Pincode          string   `json:"pincode"`
	Bio              string   `json:"bio"`

	Skills            []string `json:"skills,omitempty"`
	YearsOfExperience int      `json:"yearsOfExperience,omitempty"`
}

// ProfileUpdate carries the editable profile fields for PUT /users/me.
// Email, permanentAddress and userType are read-only after registration and
// deliberately absent here.
type ProfileUpdate struct {
	Name           string   `json:"name,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	PresentAddress string   `json:"presentAddress,omitempty"`
	WorkingCity    string   `json:"workingCity,omitempty"`
	Pincode        string   `json:"pincode,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	Skills         []string `json:"skills,omitempty"`

	YearsOfExperience int `json:"yearsOfExperience,omitempty"`
}
