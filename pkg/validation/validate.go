package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"cta-relay/pkg/models"
)

// Field names as they appear in the form and in the JSON body
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldConsent = "consent"
)

// Messages shown next to an invalid field
var fieldMessages = map[string]string{
	FieldName:    "Введите имя",
	FieldPhone:   "Введите номер телефона полностью",
	FieldConsent: "Необходимо согласие на обработку данных",
}

// FieldOrder is the order fields appear on the form
var FieldOrder = []string{FieldName, FieldPhone, FieldConsent}

// Fields are the raw values of a contact form
type Fields struct {
	Name    string
	Phone   string
	Consent bool
	Form    string
	Source  string
}

// Result of validating a form. Errors has exactly one entry per failing field.
type Result struct {
	Valid  bool
	Errors map[string]string
}

// contactForm carries the rules shared by the form and the relay
type contactForm struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"min_digits=11"`
	Consent bool   `json:"consent" validate:"accepted"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on programmer error (empty tag or nil func)
	mustRegister(v, "min_digits", validateMinDigits)
	mustRegister(v, "accepted", validateAccepted)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

func validateMinDigits(fl validator.FieldLevel) bool {
	want, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(StripDigits(fl.Field().String())) >= want
}

func validateAccepted(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.Bool && fl.Field().Bool()
}

// ValidateSubmission applies the form rules to what the visitor typed. Name and
// phone are checked in the form the input masks turn them into.
func ValidateSubmission(f Fields) Result {
	form := contactForm{
		Name:    SanitizeName(f.Name),
		Phone:   NormalizePhone(f.Phone),
		Consent: f.Consent,
	}

	res := Result{Valid: true, Errors: map[string]string{}}
	err := validate.Struct(form)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Not a field failure; report every field rather than passing silently
		res.Valid = false
		for _, field := range FieldOrder {
			res.Errors[field] = fieldMessages[field]
		}
		return res
	}

	res.Valid = false
	for _, fe := range verrs {
		res.Errors[fe.Field()] = fieldMessages[fe.Field()]
	}
	return res
}

// ValidateRelay re-checks a submission on the server, independent of the form.
// The name only needs to be non-empty after trimming here.
func ValidateRelay(sub models.Submission) error {
	form := contactForm{
		Name:    strings.TrimSpace(sub.Name),
		Phone:   sub.Phone,
		Consent: sub.Consent,
	}
	if err := validate.Struct(form); err != nil {
		return fmt.Errorf("invalid submission: %w", err)
	}
	return nil
}
