package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"fulfillment/internal/core/domain/model/kernel"
)

// RequestValidator plugs validator/v10 into echo. Field names in errors are
// the json names.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("section", validateSection)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i any) error {
	return rv.validate.Struct(i)
}

func validateSection(fl validator.FieldLevel) bool {
	_, err := kernel.ParseSection(fl.Field().String())
	return err == nil
}

// validationFields keys each failure by its json path, e.g. items[0].size.
func validationFields(errs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		path := e.Namespace()
		if _, rest, ok := strings.Cut(path, "."); ok {
			path = rest
		}

		switch e.Tag() {
		case "required":
			fields[path] = "is required"
		case "section":
			fields[path] = "is not a known section"
		case "min", "gte":
			fields[path] = "must be at least " + e.Param()
		case "gt":
			fields[path] = "must be greater than " + e.Param()
		default:
			fields[path] = "failed " + e.Tag()
		}
	}
	return fields
}
