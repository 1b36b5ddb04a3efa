// Package inputval validates bound request inputs using waffle/pantry/validate
// and turns failures into French messages for API bodies and form pages.
//
// Example:
//
//	type ContactInput struct {
//	    Nom   string `json:"nom" validate:"required,max=120" label:"Nom"`
//	    Email string `json:"email" validate:"required,email" label:"Email"`
//	}
//
//	if res := inputval.Validate(in); res.HasErrors() {
//	    jsonutil.BadRequest(w, res.First())
//	    return
//	}
package inputval

import (
	"net/mail"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/dalemusser/waffle/pantry/validate"
	"github.com/lunicar/lunicar/internal/app/system/plate"
)

// Result holds validation results with user-facing messages.
type Result struct {
	Errors []FieldError
}

// FieldError is a validation error for a single field.
type FieldError struct {
	Field   string
	Label   string
	Message string
}

// HasErrors returns true if there are any validation errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first error message, or "".
func (r *Result) First() string {
	if len(r.Errors) > 0 {
		return r.Errors[0].Message
	}
	return ""
}

// All returns all error messages joined with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

var (
	customValidator *validate.Validator
	validatorOnce   sync.Once
)

func getValidator() *validate.Validator {
	validatorOnce.Do(func() {
		customValidator = validate.New(validate.WithStopOnFirstError())

		// plaque: French registration plate, current or legacy format
		customValidator.RegisterRuleFunc("plaque", func(value any) bool {
			s, ok := value.(string)
			return ok && plate.IsValid(s)
		}, "plaque")

		// codepostal: five-digit French postal code
		customValidator.RegisterRuleFunc("codepostal", func(value any) bool {
			s, ok := value.(string)
			return ok && IsValidPostalCode(s)
		}, "codepostal")

		// telephone: French phone number, spaces and dots allowed
		customValidator.RegisterRuleFunc("telephone", func(value any) bool {
			s, ok := value.(string)
			return ok && IsValidPhone(s)
		}, "telephone")

		// httpurl: absolute http or https URL
		customValidator.RegisterRuleFunc("httpurl", func(value any) bool {
			s, ok := value.(string)
			return ok && IsValidHTTPURL(s)
		}, "httpurl")
	})
	return customValidator
}

// Validate validates a struct carrying `validate` tags. Optional `label`
// tags name fields in messages; the json tag name keys the field.
//
// Rules from pantry/validate: required, email, oneof, min, max.
// Rules registered here: plaque, codepostal, telephone, httpurl.
func Validate(s any) *Result {
	result := &Result{}

	err := getValidator().Struct(s)
	if err == nil {
		return result
	}

	labels := fieldLabels(s)
	if errs, ok := err.(validate.Errors); ok {
		for _, e := range errs {
			label := labels[e.Field]
			if label == "" {
				label = e.Field
			}
			result.Errors = append(result.Errors, FieldError{
				Field:   e.Field,
				Label:   label,
				Message: formatMessage(label, e.Rule, e.Param),
			})
		}
	}
	return result
}

func fieldLabels(s any) map[string]string {
	labels := make(map[string]string)

	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return labels
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name := field.Name
		if tag := field.Tag.Get("json"); tag != "" {
			if n, _, _ := strings.Cut(tag, ","); n != "" && n != "-" {
				name = n
			}
		}
		if label := field.Tag.Get("label"); label != "" {
			labels[name] = label
		}
	}
	return labels
}

func formatMessage(label, rule, param string) string {
	switch rule {
	case "required":
		return "Le champ " + label + " est obligatoire"
	case "email":
		return "Adresse email invalide"
	case "oneof", "enum":
		return "Le champ " + label + " doit valoir : " + strings.ReplaceAll(param, " ", ", ")
	case "min":
		return "Le champ " + label + " doit contenir au moins " + param + " caractères"
	case "max":
		return "Le champ " + label + " doit contenir au plus " + param + " caractères"
	case "plaque":
		return "Plaque d'immatriculation invalide"
	case "codepostal":
		return "Code postal invalide"
	case "telephone":
		return "Numéro de téléphone invalide"
	case "httpurl":
		return "Le champ " + label + " doit être une URL http(s)"
	default:
		return "Le champ " + label + " est invalide"
	}
}

var (
	postalCodeRe = regexp.MustCompile(`^[0-9]{5}$`)
	phoneRe      = regexp.MustCompile(`^(?:\+33|0033|0)[1-9][0-9]{8}$`)
	phoneSepRe   = regexp.MustCompile(`[\s.\-]`)
)

// IsValidPostalCode reports whether s is a five-digit postal code.
func IsValidPostalCode(s string) bool {
	return postalCodeRe.MatchString(strings.TrimSpace(s))
}

// IsValidPhone reports whether s is a French phone number. Spaces, dots
// and dashes between digits are ignored.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(phoneSepRe.ReplaceAllString(strings.TrimSpace(s), ""))
}

// IsValidEmail checks s with net/mail, rejecting the "Name <addr>" form.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}

// IsValidHTTPURL checks if s is an http:// or https:// URL.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
