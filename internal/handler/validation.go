package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/aptmap/backend/internal/service"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding rules on gin's validator
// and makes field errors report json names. Safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return service.StrongPassword(fl.Field().String())
	})
}
