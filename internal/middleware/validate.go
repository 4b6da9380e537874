package middleware

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/geosite/cms/internal/apperr"
)

// Validator wraps a shared validator instance for request structs.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Struct validates s, translating field failures into a ValidationError
// whose detail names the offending fields.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Validation("Invalid request body")
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+" ("+fe.Tag()+")")
	}
	return apperr.Validation("Validation failed: %s", strings.Join(parts, ", "))
}
