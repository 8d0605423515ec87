package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the struct tags of any model. Field presence and length
// limits are enforced here, at the data-model boundary, rather than inside
// the services.
func Validate(model interface{}) error {
	if err := validate.Struct(model); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
