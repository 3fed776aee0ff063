package dto

import (
	"mime/multipart"

	"bloocareer_backend/internal/models"
)

// SubmitApplicationRequest carries the raw multipart form fields.
// Field names match the public form exactly; normalization happens in
// the service, not here. Email format is deliberately not validated
// because the form only promises a non-empty value.
type SubmitApplicationRequest struct {
	FullName            string `form:"fullName" validate:"required"`
	Email               string `form:"email" validate:"required"`
	Phone               string `form:"phone"`
	LinkedIn            string `form:"linkedin"`
	Message             string `form:"message"`
	Poste               string `form:"poste"`
	DateNaissance       string `form:"dateNaissance"`
	FrenchLevel         string `form:"frenchLevel"`
	EnglishLevel        string `form:"englishLevel"`
	InterestedCountries string `form:"interestedCountries"`
	AcceptTerms         string `form:"acceptTerms"`
	Service             string `form:"service"`

	Files []*multipart.FileHeader `form:"-"`
}

// SubmitApplicationResponse reports the pipeline outcome. Notified is
// metadata: the submission succeeded once the record was persisted,
// whether or not the staff email went out.
type SubmitApplicationResponse struct {
	Message   string            `json:"message"`
	Candidate *models.Candidate `json:"candidate"`
	Notified  bool              `json:"notified"`
}
