package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON binds and validates a request body. A failed `required` tag is
// reported as a missing-field error; anything else as a malformed body.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err == nil {
		return true
	}

	var validatorErrs validator.ValidationErrors

	if errors.As(err, &validatorErrs) && len(validatorErrs) > 0 {
		first := validatorErrs[0]
		field := jsonFieldName(out, first.StructField())

		if first.Tag() == "required" {
			RespondBadRequest(ctx, "Missing required field: "+field)
			return false
		}

		RespondBadRequest(ctx, "Invalid value for field: "+field)
		return false
	}

	RespondBadRequest(ctx, "Invalid request body")
	return false
}

// jsonFieldName maps a struct field back to its json tag name.
func jsonFieldName(out interface{}, structField string) string {
	t := reflect.TypeOf(out)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return structField
	}

	sf, ok := t.FieldByName(structField)
	if !ok {
		return structField
	}

	tag := sf.Tag.Get("json")
	if tag == "" {
		return structField
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return structField
	}

	return name
}
