package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// Validator wraps go-playground/validator v10 with English translations.
//
// Struct errors are reported as goerror validation errors keyed by the
// field's json name, so they share a shape with schema reports.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New constructs a Validator with English translations.
func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	return &Validator{
		validate:   validate,
		translator: enTrans,
	}, nil
}

// Struct validates a tagged struct.
func (v *Validator) Struct(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var validateErrs validator.ValidationErrors
	if !errors.As(err, &validateErrs) {
		return err
	}

	fields := make(map[string][]string, len(validateErrs))
	invalid := make([]string, 0, len(validateErrs))
	for _, fe := range validateErrs {
		if _, seen := fields[fe.Field()]; !seen {
			invalid = append(invalid, fe.Field())
		}
		fields[fe.Field()] = append(fields[fe.Field()], fe.Translate(v.translator))
	}

	return goerror.NewValidation(fields, invalid)
}

// Var reports whether a single value satisfies tag, e.g. "email".
func (v *Validator) Var(value any, tag string) bool {
	return v.validate.Var(value, tag) == nil
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
