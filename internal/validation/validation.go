package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Problems maps a field path (e.g. "sku" or "[2].quantity" for the third
// batch item) to the list of messages describing its violations.
type Problems map[string][]string

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields under their JSON names so problem keys match payloads
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Numeric tags (gte, lte, ...) operate on decimal fields via float64
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// Struct validates a single DTO against its rule tags
func Struct(v interface{}) Problems {
	problems := Problems{}
	collect(validate.Struct(v), "", problems)
	return problems
}

// Items validates every element of a batch independently. Violations are
// keyed "[index].field". All items are checked; nothing fails fast.
func Items[T any](items []T) Problems {
	problems := Problems{}
	for i, item := range items {
		collect(validate.Struct(item), fmt.Sprintf("[%d].", i), problems)
	}
	return problems
}

func collect(err error, prefix string, problems Problems) {
	if err == nil {
		return
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		problems[prefix] = append(problems[prefix], err.Error())
		return
	}

	for _, e := range validationErrors {
		key := prefix + e.Field()
		problems[key] = append(problems[key], messageFor(e))
	}
}

func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value is too short"
	case "max":
		return "Value must be at most " + e.Param() + " characters"
	case "gte":
		return "Value must be greater than or equal to " + e.Param()
	case "lte":
		return "Value must be less than or equal to " + e.Param()
	case "gt":
		return "Value must be greater than " + e.Param()
	case "lt":
		return "Value must be less than " + e.Param()
	default:
		return "Invalid value"
	}
}
