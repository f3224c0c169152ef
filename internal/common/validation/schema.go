// internal/common/validation/schema.go

// Package validation checks outbound payloads against JSON schemas before
// they are sent. The rules mirror what the server rejects with a 400:
// catching them locally gives field-level messages instead of one opaque
// detail string.
package validation

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const registrationSchema = `{
	"type": "object",
	"required": ["name", "email", "phone", "userType", "gender", "age", "permanentAddress", "workingCity", "pincode", "bio"],
	"properties": {
		"name":             {"type": "string", "minLength": 1},
		"email":            {"type": "string", "pattern": "^[^@\\s]+@[^@\\s]+\\.[^@\\s]+$"},
		"phone":            {"type": "string", "pattern": "^[0-9]{10}$"},
		"userType":         {"type": "string", "enum": ["provider", "seeker"]},
		"gender":           {"type": "string", "minLength": 1},
		"age":              {"type": "integer", "minimum": 18},
		"permanentAddress": {"type": "string", "minLength": 1},
		"presentAddress":   {"type": "string"},
		"workingCity":      {"type": "string", "minLength": 1},
		"pincode":          {"type": "string", "pattern": "^[0-9]{6}$"},
		"bio":              {"type": "string", "minLength": 1},
		"skills":           {"type": "array", "items": {"type": "string"}},
		"yearsOfExperience": {"type": "integer", "minimum": 0}
	}
}`

const newJobSchema = `{
	"type": "object",
	"required": ["title", "description", "state", "district", "pincode", "payment", "wageType"],
	"properties": {
		"title":       {"type": "string", "minLength": 1},
		"description": {"type": "string", "minLength": 1},
		"state":       {"type": "string", "minLength": 1},
		"district":    {"type": "string", "minLength": 1},
		"pincode":     {"type": "string", "pattern": "^[0-9]{6}$"},
		"location":    {"type": "string"},
		"payment":     {"type": "string", "minLength": 1},
		"wageType":    {"type": "string", "enum": ["daily", "weekly", "monthly", "total"]},
		"negotiable":  {"type": "boolean"},
		"duration":    {"type": "string"},
		"requiredSkills":      {"type": "array", "items": {"type": "string"}},
		"preferredExperience": {"type": "integer", "minimum": 0},
		"preferredAge":        {"type": "string"},
		"preferredGender":     {"type": "string", "enum": ["any", "male", "female"]}
	}
}`

var (
	compiledRegistration *gojsonschema.Schema
	compiledNewJob       *gojsonschema.Schema
)

func init() {
	var err error
	compiledRegistration, err = gojsonschema.NewSchema(gojsonschema.NewStringLoader(registrationSchema))
	if err != nil {
		panic(fmt.Sprintf("validation: bad registration schema: %v", err))
	}
	compiledNewJob, err = gojsonschema.NewSchema(gojsonschema.NewStringLoader(newJobSchema))
	if err != nil {
		panic(fmt.Sprintf("validation: bad job schema: %v", err))
	}
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// FirstMessage returns the leading error as user-facing text.
func (r *Result) FirstMessage() string {
	if r.Valid || len(r.Errors) == 0 {
		return ""
	}
	return fmt.Sprintf("%s: %s", r.Errors[0].Field, r.Errors[0].Message)
}

// ValidateRegistration checks an account-creation payload.
func ValidateRegistration(payload interface{}) (*Result, error) {
	return validate(compiledRegistration, payload)
}

// ValidateNewJob checks a job-creation payload.
func ValidateNewJob(payload interface{}) (*Result, error) {
	return validate(compiledNewJob, payload)
}

func validate(schema *gojsonschema.Schema, payload interface{}) (*Result, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("validation: marshal payload: %w", err)
	}

	outcome, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}

	result := &Result{Valid: outcome.Valid()}
	for _, detail := range outcome.Errors() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   detail.Field(),
			Message: detail.Description(),
		})
	}
	return result, nil
}
