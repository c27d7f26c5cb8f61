package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"ironline-site/pkg/apierror"
	"ironline-site/pkg/response"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds a JSON request body.
const maxBodyBytes = 1 << 20

// NewValidator returns a validator that reports json field names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}

// decodeJSON reads the body into v and validates it when validate is set.
// It writes the error response and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, validate *validator.Validate) bool {
	defer r.Body.Close()

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			response.Error(w, apierror.BadRequest("request body is required"))
			return false
		}
		response.Error(w, apierror.BadRequest("invalid request body"))
		return false
	}

	if validate != nil {
		if err := validate.Struct(v); err != nil {
			response.Error(w, err)
			return false
		}
	}
	return true
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
