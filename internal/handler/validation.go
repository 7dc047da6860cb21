package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationError is one field-level binding failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var tagMessages = map[string]string{
	"required": "Field is required",
	"email":    "Invalid email format",
	"min":      "Value is too short",
	"max":      "Value is too long",
	"oneof":    "Value is not one of the allowed options",
	"dive":     "Invalid list entry",
}

// RegisterTagNames makes validation errors report JSON field names
// instead of Go struct field names. Call once at startup.
func RegisterTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// BindError writes a 400 for a failed request binding. Validator errors
// are broken out per field; anything else gets a generic message.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]ValidationError, 0, len(verrs))
		for _, e := range verrs {
			msg := tagMessages[e.Tag()]
			if msg == "" {
				msg = "Invalid value"
			}
			out = append(out, ValidationError{Field: e.Field(), Message: msg})
		}
		c.JSON(http.StatusBadRequest, &Response{Status: "error", Message: "validation failed", Data: gin.H{"errors": out}})
		return
	}
	c.JSON(http.StatusBadRequest, NewErrorResponse("invalid request body"))
}
