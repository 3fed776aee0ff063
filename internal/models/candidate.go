package models

import (
	"time"

	"gorm.io/datatypes"
)

// Service categories offered on the application form. The form declares
// them as a constrained choice but the original schema never enforced
// it, so they are documentation rather than a check constraint.
const (
	ServiceJobSearch             = "Job Search"
	ServiceStudyAbroad           = "Study Abroad"
	ServiceVolunteerRegistration = "Volunteer Registration"
)

// Languages holds the self-rated language levels from the form.
type Languages struct {
	French  string `gorm:"column:french_level" json:"french"`
	English string `gorm:"column:english_level" json:"english"`
}

// Candidate is one submitted application. Records are write-once: the
// ingestion pipeline creates them and nothing ever updates or deletes
// them afterwards.
type Candidate struct {
	BaseModel
	FullName string `gorm:"not null" json:"fullName"`
	Email    string `gorm:"not null" json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `gorm:"column:linkedin" json:"linkedin"`
	Message  string `json:"message"`
	Poste    string `json:"poste"`

	Languages Languages `gorm:"embedded" json:"languages"`

	// InterestedCountries is never null: an absent form field is stored
	// as an empty list.
	InterestedCountries datatypes.JSONSlice[string] `json:"interestedCountries"`

	DateNaissance *time.Time `json:"dateNaissance,omitempty"`
	AcceptTerms   bool       `gorm:"default:false" json:"acceptTerms"`
	Service       string     `json:"service"`

	Files []CandidateFile `gorm:"foreignKey:CandidateID;references:ID" json:"files"`

	SubmittedAt time.Time `gorm:"index" json:"submittedAt"`
}

// CandidateFile is one uploaded attachment. Exactly one of the two
// variants is populated per deployment:
//   - reference: FileName/Path/URL point into the file storage backend
//   - inline: Data carries the raw bytes inside the record
type CandidateFile struct {
	BaseModel
	CandidateID string `gorm:"type:uuid;not null;index" json:"-"`
	// Position preserves the upload order of the request.
	Position     int    `gorm:"not null" json:"-"`
	OriginalName string `json:"originalName"`
	ContentType  string `json:"contentType"`

	FileName string `json:"filename,omitempty"`
	Path     string `json:"path,omitempty"`
	URL      string `json:"url,omitempty"`

	Data []byte `gorm:"type:bytea" json:"data,omitempty"`
}
