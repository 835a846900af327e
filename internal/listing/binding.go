package listing

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks Draft values against their binding tags, the same tags
// gin's default validator reads.
var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// draftFields maps each Draft struct field name to its form field.
var draftFields = func() map[string]Field {
	t := reflect.TypeOf(Draft{})
	out := make(map[string]Field, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		out[sf.Name] = Field(name)
	}
	return out
}()

// Constraint returns the binding tag Draft declares for f, or "".
func Constraint(f Field) string {
	t := reflect.TypeOf(Draft{})
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if draftFields[sf.Name] == f {
			return sf.Tag.Get("binding")
		}
	}
	return ""
}

// BindingErrors converts validator errors raised for a Draft, whether by
// gin's binding or by ValidateDraft, into per-field messages. It reports
// false when err carries no validation errors.
func (s *Schema) BindingErrors(err error) (FieldErrors, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	errs := make(FieldErrors)
	for _, fe := range verrs {
		f, ok := draftFields[fe.StructField()]
		if !ok {
			continue
		}
		if _, seen := errs[f]; seen {
			continue
		}
		r, ok := s.Rule(f)
		if !ok {
			r = Rule{Field: f, Label: string(f), Tag: Constraint(f)}
		}
		errs[f] = r.message(fe)
	}
	return errs, true
}

// ValidateDraft checks a decoded draft against its binding tags.
func (s *Schema) ValidateDraft(d Draft) FieldErrors {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	errs, _ := s.BindingErrors(err)
	if len(errs) == 0 {
		return nil
	}
	return errs
}
