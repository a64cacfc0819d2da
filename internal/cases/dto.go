package cases

import (
	"encoding/json"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// CaseInput is the validated creation payload. AuthorID is never taken from
// the body; the handler forces it to the session subject.
type CaseInput struct {
	Title         string            `json:"title" validate:"required"`
	Description   string            `json:"description" validate:"required"`
	Specialty     string            `json:"specialty" validate:"required"`
	Status        string            `json:"status" validate:"required,oneof=active resolved review"`
	Priority      string            `json:"priority" validate:"required,oneof=low normal high urgent"`
	PatientAge    string            `json:"patientAge" validate:"required"`
	PatientGender string            `json:"patientGender" validate:"required,oneof=male female other"`
	Diagnosis     string            `json:"diagnosis"`
	Treatment     string            `json:"treatment"`
	Outcome       string            `json:"outcome"`
	Tags          []string          `json:"tags"`
	Attachments   []AttachmentInput `json:"attachments" validate:"dive"`
}

type AttachmentInput struct {
	URL  string `json:"url" validate:"required"`
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
	Size int64  `json:"size" validate:"min=0"`
}

// CaseUpdate is the partial PATCH payload; only non-nil fields are applied.
type CaseUpdate struct {
	Title         *string            `json:"title" validate:"omitempty,min=1"`
	Description   *string            `json:"description" validate:"omitempty,min=1"`
	Specialty     *string            `json:"specialty" validate:"omitempty,min=1"`
	Status        *string            `json:"status" validate:"omitempty,oneof=active resolved review"`
	Priority      *string            `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	PatientAge    *string            `json:"patientAge" validate:"omitempty,min=1"`
	PatientGender *string            `json:"patientGender" validate:"omitempty,oneof=male female other"`
	Diagnosis     *string            `json:"diagnosis"`
	Treatment     *string            `json:"treatment"`
	Outcome       *string            `json:"outcome"`
	Tags          *[]string          `json:"tags"`
	Attachments   *[]AttachmentInput `json:"attachments" validate:"omitempty,dive"`
	Featured      *bool              `json:"featured"`
}

// CommentInput is the validated comment payload. The 2000 character cap is
// enforced here, at the API boundary, not just in the client form.
type CommentInput struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// ToCase converts a validated payload into the storage model.
func (in CaseInput) ToCase(authorID string) (*Case, error) {
	attachments := in.Attachments
	if attachments == nil {
		attachments = []AttachmentInput{}
	}
	raw, err := json.Marshal(attachments)
	if err != nil {
		return nil, err
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	return &Case{
		Title:         in.Title,
		Description:   in.Description,
		AuthorID:      authorID,
		Specialty:     in.Specialty,
		Status:        in.Status,
		Priority:      in.Priority,
		PatientAge:    in.PatientAge,
		PatientGender: in.PatientGender,
		Diagnosis:     in.Diagnosis,
		Treatment:     in.Treatment,
		Outcome:       in.Outcome,
		Tags:          pq.StringArray(tags),
		Attachments:   datatypes.JSON(raw),
	}, nil
}

// Fields maps the non-nil members onto column assignments for UpdateCase.
func (u CaseUpdate) Fields() (map[string]interface{}, error) {
	fields := map[string]interface{}{}

	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Specialty != nil {
		fields["specialty"] = *u.Specialty
	}
	if u.Status != nil {
		fields["status"] = *u.Status
	}
	if u.Priority != nil {
		fields["priority"] = *u.Priority
	}
	if u.PatientAge != nil {
		fields["patient_age"] = *u.PatientAge
	}
	if u.PatientGender != nil {
		fields["patient_gender"] = *u.PatientGender
	}
	if u.Diagnosis != nil {
		fields["diagnosis"] = *u.Diagnosis
	}
	if u.Treatment != nil {
		fields["treatment"] = *u.Treatment
	}
	if u.Outcome != nil {
		fields["outcome"] = *u.Outcome
	}
	if u.Tags != nil {
		fields["tags"] = pq.StringArray(*u.Tags)
	}
	if u.Attachments != nil {
		raw, err := json.Marshal(*u.Attachments)
		if err != nil {
			return nil, err
		}
		fields["attachments"] = datatypes.JSON(raw)
	}
	if u.Featured != nil {
		fields["featured"] = *u.Featured
	}

	return fields, nil
}
