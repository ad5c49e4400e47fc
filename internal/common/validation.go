package common

import (
	"reflect"
	"strings"
	"sync"

	"blood_bank_backend/internal/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags on gin's validator engine
// and makes validation errors report JSON field names. Safe to call repeatedly.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		// Case is not significant here; services store the normalized form.
		_ = v.RegisterValidation("bloodgroup", func(fl validator.FieldLevel) bool {
			return domain.IsValidBloodGroup(domain.NormalizeBloodGroup(fl.Field().String()))
		})
	})
}
