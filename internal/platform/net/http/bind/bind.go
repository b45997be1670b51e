// Package bind decodes and validates JSON request bodies into typed inputs,
// mapping every failure onto a perr code the envelope can render
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "contactguard/internal/platform/errors"
	"contactguard/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// JSONOptions tunes ParseJSON. MaxBytes <= 0 means no cap.
type JSONOptions struct {
	MaxBytes        int64
	DisallowUnknown bool
}

// DefaultJSONOptions caps bodies at 1MiB and rejects unknown fields
func DefaultJSONOptions() JSONOptions {
	return JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}
}

type validation struct {
	v     *validator.Validate
	trans ut.Translator
}

var validate = sync.OnceValue(func() validation {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	bound(v, trans, "min", "at least")
	bound(v, trans, "max", "at most")
	return validation{v: v, trans: trans}
})

// jsonName reports fields by their json key so messages match the payload
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// bound replaces the stock min/max texts; on strings the bound is a length
func bound(v *validator.Validate, trans ut.Translator, tag, phrase string) {
	register := func(t ut.Translator) error {
		if err := t.Add(tag, "{0} must be "+phrase+" {1}", true); err != nil {
			return err
		}
		return t.Add(tag+"-string", "{0} must be "+phrase+" {1} characters", true)
	}
	translate := func(t ut.Translator, fe validator.FieldError) string {
		key := tag
		if fe.Kind() == reflect.String {
			key += "-string"
		}
		msg, _ := t.T(key, fe.Field(), fe.Param())
		return msg
	}
	_ = v.RegisterTranslation(tag, trans, register, translate)
}

// Validate runs the struct tags on v. The first failing field comes back as a
// validation error carrying that field.
func Validate(v any) error {
	err := validate().v.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator misuse")
		return perr.JSONErrf("validation error")
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		fe := errs[0]
		return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(validate().trans)), fe.Field())
	}
	return perr.Wrap(err, perr.ErrorCodeValidation, "validation error")
}

// ParseJSON reads exactly one JSON value from the body into T and validates it.
// Empty, malformed, oversized and trailing bodies each get their own error.
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var dst T
	o := DefaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Warn().Err(err).Msg("request body close")
		}
	}()

	var body io.Reader = r.Body
	if o.MaxBytes > 0 {
		body = http.MaxBytesReader(nil, r.Body, o.MaxBytes)
	}

	var first [1]byte
	n, err := io.ReadFull(body, first[:])
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return dst, readErr(err)
		}
		return dst, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(io.MultiReader(bytes.NewReader(first[:n]), body))
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		return *new(T), readErr(err)
	}
	if dec.More() {
		return *new(T), perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(dst); err != nil {
		return *new(T), err
	}
	return dst, nil
}

func readErr(err error) error {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return perr.TooLargef("request body exceeds %d bytes", tooBig.Limit)
	}
	return perr.JSONErrf("invalid JSON: %v", err)
}
