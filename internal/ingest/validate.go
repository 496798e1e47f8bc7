package ingest

import "github.com/go-playground/validator/v10"

type candidate struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	Link        string `validate:"required"`
	CategoryID  string `validate:"required"`
}

var validate = validator.New()

// Validate returns "" when the record can be written, otherwise the failure reason.
func Validate(r Record) string {
	c := candidate{
		Name:        r.Get(FieldName),
		Description: r.Get(FieldDescription),
		Link:        r.Get(FieldLink),
		CategoryID:  r.Get(FieldCategoryID),
	}
	if err := validate.Struct(c); err != nil {
		return ReasonMissingFields
	}
	return ""
}
