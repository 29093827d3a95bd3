package validators

import (
	"strings"

	"github.com/danuarts/ridehail/internal/models"
)

const MaxPhoneNumberLength = 20

// ValidateUser checks the fully-merged prospective state of a user record.
// Uniqueness of email and username is a storage concern checked separately.
func ValidateUser(user *models.User) ValidationErrors {
	var errs ValidationErrors

	if !models.IsValidRole(user.Role) {
		errs = append(errs, ValidationError{
			Field:   "role",
			Message: "Role must be one of: rider, driver, admin.",
		})
	}
	if strings.TrimSpace(user.Username) == "" {
		errs = append(errs, ValidationError{Field: "username", Message: "Username must not be blank."})
	}
	if strings.TrimSpace(user.Email) == "" {
		errs = append(errs, ValidationError{Field: "email", Message: "Email must not be blank."})
	}
	if strings.TrimSpace(user.FirstName) == "" {
		errs = append(errs, ValidationError{Field: "first_name", Message: "First name must not be blank."})
	}
	if strings.TrimSpace(user.LastName) == "" {
		errs = append(errs, ValidationError{Field: "last_name", Message: "Last name must not be blank."})
	}
	if len(user.PhoneNumber) > MaxPhoneNumberLength {
		errs = append(errs, ValidationError{Field: "phone_number", Message: "Phone number must be at most 20 characters."})
	}

	return errs
}
