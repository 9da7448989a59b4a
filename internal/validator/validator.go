// Package validator registers custom validation functions with Gin's
// binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("language", validateLanguage)
		_ = v.RegisterValidation("member_role", validateMemberRole)
		_ = v.RegisterValidation("frequency", validateFrequency)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

// Supported UI languages.
func validateLanguage(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "en", "es", "ca":
		return true
	}
	return false
}

func validateMemberRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "parent", "child", "admin":
		return true
	}
	return false
}

func validateFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "daily", "weekly", "monthly", "yearly":
		return true
	}
	return false
}
