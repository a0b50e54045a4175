package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/franciscosanchezn/gin-recipe-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})

	// report binding failures under the JSON field names clients send
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// respondError maps service errors onto API responses.
// notFoundCode is the resource specific code used for services.ErrNotFound.
func respondError(c *gin.Context, err error, notFoundCode string) {
	var validationErr *services.ValidationError
	var conflictErr *services.ConflictError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid input",
			map[string]interface{}{validationErr.Field: validationErr.Message}))
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, models.NewAPIError(models.ErrConflict, "Resource already exists",
			map[string]interface{}{conflictErr.Field: conflictErr.Message}))
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, models.NewAPIError(notFoundCode, "Not found."))
	default:
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Internal server error"))
	}
}

// respondBindError reports a request body that failed to decode or validate
func respondBindError(c *gin.Context, err error) {
	details := map[string]interface{}{}

	var validationErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &validationErrs):
		for _, fe := range validationErrs {
			details[fe.Field()] = validationMessage(fe)
		}
	case errors.As(err, &typeErr):
		details[typeErr.Field] = fmt.Sprintf("Expected a value of type %s.", typeErr.Type)
	case errors.As(err, &syntaxErr):
		details["body"] = "Malformed JSON."
	default:
		details["body"] = err.Error()
	}

	c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid input", details))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	default:
		return fe.Error()
	}
}

func respondValidation(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid input",
		map[string]interface{}{field: message}))
}

// parseID reads the :id path parameter
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondValidation(c, "id", "A valid integer is required.")
		return 0, false
	}
	return uint(id), true
}

// parseIDList parses a comma separated list of positive ids
func parseIDList(raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("%q is not a valid id", part)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
