package auth

import (
	"fmt"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const minPasswordLength = 8

// PasswordProblem describes the first rule password breaks, or returns "".
func PasswordProblem(password string) string {
	if len([]rune(password)) < minPasswordLength {
		return fmt.Sprintf("Your password must be at least %d characters long.", minPasswordLength)
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	switch {
	case !upper:
		return "Your password must contain at least one upper case letter."
	case !lower:
		return "Your password must contain at least one lower case letter."
	case !digit:
		return "Your password must contain at least one digit."
	}
	return ""
}

func validatePassword(fl validator.FieldLevel) bool {
	return PasswordProblem(fl.Field().String()) == ""
}

// RegisterValidators adds the "password" tag to gin's binding validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("password", validatePassword)
}
