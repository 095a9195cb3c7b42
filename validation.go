package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
)

// Validate checks the registration payload before it reaches the store.
// Field limits mirror the users table columns.
func (r Registration) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 100)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Role, validation.By(validRoleOrEmpty)),
	)
	if err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid registration payload")
	}
	return nil
}

func validRoleOrEmpty(value any) error {
	role, _ := value.(string)
	if role == "" {
		return nil
	}
	if _, ok := ParseRole(role); !ok {
		return errors.New("unknown role: "+role, errors.CategoryValidation)
	}
	return nil
}
