// Package bind decodes and validates JSON request bodies
package bind

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "biasdb/internal/platform/errors"
	"biasdb/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// MaxBody caps how much of a request body is read
const MaxBody = 1 << 20

var (
	vOnce  sync.Once
	vInst  *validator.Validate
	vTrans ut.Translator
)

// Validator returns the shared validator and its english translator
// messages name fields by their json tag
func Validator() (*validator.Validate, ut.Translator) {
	vOnce.Do(func() {
		enLoc := en.New()
		vTrans, _ = ut.New(enLoc, enLoc).GetTranslator("en")

		vInst = validator.New(validator.WithRequiredStructEnabled())
		vInst.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(vInst, vTrans)
		shortMessage(vInst, vTrans, "min", "{0} must be at least {1}")
		shortMessage(vInst, vTrans, "max", "{0} must be at most {1}")
	})
	return vInst, vTrans
}

// ParseJSON decodes one JSON object into T and validates it
// unknown fields, trailing data and an empty body are JSON errors
func ParseJSON[T any](r *http.Request) (T, error) {
	var zero, dst T
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("closing request body")
		}
	}()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		if err == io.EOF {
			return zero, perr.JSONErrf("empty body")
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	v, _ := Validator()
	if err := v.Struct(dst); err != nil {
		if inv, ok := err.(*validator.InvalidValidationError); ok {
			logger.C(r.Context()).Error().Err(inv).Msg("validator internal error")
			return zero, perr.JSONErrf("body must be a JSON object")
		}
		field, msg := FieldAndMessage(err)
		return zero, perr.WithField(perr.Validationf("%s", msg), field)
	}
	return dst, nil
}

// FieldAndMessage returns the first failing field and its translated message
func FieldAndMessage(err error) (field, message string) {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		_, trans := Validator()
		return verrs[0].Field(), verrs[0].Translate(trans)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}

func shortMessage(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}
