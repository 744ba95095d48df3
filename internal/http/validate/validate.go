// Package validate wires request validation into gin's binding engine and
// renders validator failures as field-scoped errors.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"invoicely.app/api/internal/model"
)

var registerOnce sync.Once

// FieldError is a single failed constraint on a request field.
type FieldError struct {
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

// Register installs the custom tags on gin's default validator. It is safe to
// call more than once.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		err = RegisterOn(v)
	})
	return err
}

// RegisterOn installs the custom tags on v:
//   - org_role: a known membership role, any casing
//   - time_range: a known analytics time range, any casing
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			for _, key := range []string{"form", "uri"} {
				if tagged := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]; tagged != "" {
					return tagged
				}
			}
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("org_role", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseRole(fl.Field().String())
		return ok
	}); err != nil {
		return fmt.Errorf("registering org_role: %w", err)
	}

	if err := v.RegisterValidation("time_range", func(fl validator.FieldLevel) bool {
		_, err := model.ParseTimeRange(fl.Field().String())
		return err == nil
	}); err != nil {
		return fmt.Errorf("registering time_range: %w", err)
	}

	return nil
}

// Errors flattens err into field errors. The second return is false when err
// did not come from the validator (malformed JSON, wrong types).
func Errors(err error) ([]FieldError, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	out := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		out = append(out, FieldError{
			Field:  fe.Field(),
			Detail: detail(fe),
		})
	}
	return out, true
}

func detail(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "org_role":
		return "must be one of OWNER, ADMIN, MANAGER, MEMBER, VIEWER"
	case "time_range":
		return "must be one of THIS_MONTH, LAST_MONTH, THIS_QUARTER, THIS_YEAR, LAST_YEAR"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	}
	return fmt.Sprintf("failed on %q", fe.Tag())
}
