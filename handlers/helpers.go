package handlers

import (
	"net/http"
	"reflect"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/juho05/log"
)

var (
	validate    *validator.Validate
	formDecoder *form.Decoder
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// max counts runes; maxbytes limits the encoded length.
	err := validate.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			panic(err)
		}
		return len(fl.Field().String()) <= limit
	})
	if err != nil {
		log.Fatalf("Failed to register maxbytes validation: %s", err)
	}

	formDecoder = form.NewDecoder()
}

// decodeForm decodes the request's form values, query included, into a T.
func decodeForm[T any](r *http.Request) (T, error) {
	var obj T
	err := r.ParseForm()
	if err != nil {
		return obj, err
	}
	err = formDecoder.Decode(&obj, r.Form)
	return obj, err
}

type invalidField struct {
	Name string
	Rule string
}

func findInvalidFields(obj any) []invalidField {
	err := validate.Struct(obj)
	if e, ok := err.(*validator.InvalidValidationError); ok {
		panic(e)
	}

	vErrs, ok := err.(validator.ValidationErrors)
	if ok && len(vErrs) > 0 {
		fields := make([]invalidField, len(vErrs))
		for i, e := range vErrs {
			fields[i] = invalidField{
				Name: e.Field(),
				Rule: e.Tag(),
			}
		}
		return fields
	}
	return nil
}

func badRequest(w http.ResponseWriter) {
	clientError(w, http.StatusBadRequest)
}

func clientError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

func serverError(w http.ResponseWriter, err error) {
	log.Errorf("%s\n%s", err.Error(), debug.Stack())
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
