package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
)

// MobilePattern accepts ten-digit Indian mobile numbers with an optional +91 / 0 prefix
var MobilePattern = regexp.MustCompile(`^(?:\+91|0)?[6-9]\d{9}$`)

// custom validation tags
const (
	notBlankTag = "notblank"
	yearTag     = "year"
	mobileTag   = "mobile"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()
	validate.SetTagName("binding")

	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, translator)

	// Report JSON field names instead of Go struct names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlank)
	_ = validate.RegisterValidation(yearTag, validYear)
	_ = validate.RegisterValidation(mobileTag, validMobile)

	registerCustomTranslations(notBlankTag, yearTag, mobileTag)
}

// Engine returns the shared validator
func Engine() *validator.Validate {
	return validate
}

// GinValidator plugs the shared validator into gin's binding package so that
// ShouldBind* reports the same translated field errors as Struct.
type GinValidator struct{}

// ValidateStruct implements binding.StructValidator
func (GinValidator) ValidateStruct(obj interface{}) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	for value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}
	return Struct(value.Interface())
}

// Engine implements binding.StructValidator
func (GinValidator) Engine() interface{} {
	return validate
}

// Struct validates s and converts failures into a ValidationError with one message per field
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	return ToValidationError(err)
}

// ToValidationError maps validator errors onto apperrors.ErrValidationFailed
func ToValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	fields := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Translate(translator)
	}
	return apperrors.NewValidationError("validation failed", fields)
}

// registerCustomTranslations registers messages for the custom tags. The
// translator already holds the defaults, so the registration func is a noop.
func registerCustomTranslations(tags ...string) {
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range tags {
		_ = validate.RegisterTranslation(tag, translator, registerFn, translateCustom)
	}
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " cannot be blank"
	case yearTag:
		return fe.Field() + " must be one of: " + strings.Join(models.YearOptions, ", ")
	case mobileTag:
		return fe.Field() + " must be a valid 10 digit mobile number"
	default:
		return fe.Error()
	}
}

func notBlank(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func validYear(fl validator.FieldLevel) bool {
	year := fl.Field().String()
	for _, opt := range models.YearOptions {
		if year == opt {
			return true
		}
	}
	return false
}

func validMobile(fl validator.FieldLevel) bool {
	return MobilePattern.MatchString(strings.ReplaceAll(fl.Field().String(), " ", ""))
}

// CleanString trims surrounding whitespace and optionally lower-cases the value
func CleanString(s string, lower bool) string {
	s = strings.TrimSpace(s)
	if lower {
		return strings.ToLower(s)
	}
	return s
}
