package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/marketplace-system/internal/core/domain"
)

// bindJSON decodes the request body into dst. Values of the wrong JSON type
// are reported per field like any other validation failure; other decoding
// problems become a 400 detail.
func bindJSON(c echo.Context, dst any) error {
	err := (&echo.DefaultBinder{}).BindBody(c, dst)
	if err == nil {
		return nil
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		fields := domain.FieldErrors{}
		fields.Add(ute.Field, typeErrorMessage(ute.Type))
		return &domain.ValidationError{Fields: fields}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return echo.NewHTTPError(http.StatusBadRequest, "JSON parse error - "+parseDetail(he)).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusBadRequest, "JSON parse error").SetInternal(err)
}

func typeErrorMessage(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return "A valid number is required."
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "A valid integer is required."
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.String:
		return "Not a valid string."
	default:
		return "Invalid value."
	}
}

func parseDetail(he *echo.HTTPError) string {
	if he.Internal != nil {
		return he.Internal.Error()
	}
	msg, _ := he.Message.(string)
	return strings.TrimSpace(msg)
}
