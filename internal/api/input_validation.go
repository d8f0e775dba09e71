package api

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/bloom/internal/models"
	"github.com/terraincognita07/bloom/internal/services"
)

var validate = newPayloadValidator()

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func newPayloadValidator() *validator.Validate {
	instance := validator.New()

	// Report fields by their JSON names.
	instance.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		default:
			return name
		}
	})

	_ = instance.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(models.DateLayout, strings.TrimSpace(fl.Field().String()))
		return err == nil
	})
	_ = instance.RegisterValidation("intensity", func(fl validator.FieldLevel) bool {
		return models.Intensity(strings.ToLower(strings.TrimSpace(fl.Field().String()))).Valid()
	})
	return instance
}

func validatePayload(payload any) []fieldError {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []fieldError{{Field: "", Message: "is invalid"}}
	}

	fields := make([]fieldError, 0, len(validationErrors))
	for _, validationErr := range validationErrors {
		fields = append(fields, fieldError{
			Field:   validationErr.Field(),
			Message: validationMessage(validationErr),
		})
	}
	return fields
}

func validationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + err.Param()
	case "max":
		return "must be at most " + err.Param()
	case "oneof":
		return "must be one of: " + err.Param()
	case "isodate":
		return "must be a date in YYYY-MM-DD format"
	case "intensity":
		return "must be one of: scant light moderate intense"
	default:
		return "is invalid"
	}
}

func parseDayParam(raw string, location *time.Location) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, errors.New("date is required")
	}
	day, ok := services.ParseDay(raw, location)
	if !ok {
		return time.Time{}, errors.New("invalid date")
	}
	return day, nil
}

func parseMonthQuery(raw string, now time.Time, location *time.Location) (time.Time, error) {
	if raw == "" {
		current := services.DateAtLocation(now, location)
		return time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, location), nil
	}
	parsed, err := time.ParseInLocation("2006-01", raw, location)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, location), nil
}
