package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrorResponse describes one failed field, phrased for the API envelope.
type ErrorResponse struct {
	FailedField string
	Tag         string
	Param       string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// uuid_required: a zero UUID counts as missing
	v.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		id, ok := fl.Field().Interface().(uuid.UUID)
		return ok && id != uuid.Nil
	})

	// positive_decimal: recipe quantities and money amounts must be > 0
	v.RegisterValidation("positive_decimal", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.IsPositive()
	})

	return v
}

// ValidateStruct runs the struct tags and returns one entry per failed field.
// An empty slice means the value passed.
func ValidateStruct(data interface{}) []*ErrorResponse {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var failures []*ErrorResponse
	for _, fieldErr := range err.(validator.ValidationErrors) {
		failures = append(failures, &ErrorResponse{
			FailedField: fieldErr.StructNamespace(),
			Tag:         fieldErr.Tag(),
			Param:       fieldErr.Param(),
		})
	}
	return failures
}
