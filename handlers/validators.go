package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"dreamdecol/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules (ymd, objectid, mediaurl) to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			_, err := time.Parse("2006-01-02", s)
			return err == nil && len(s) == len("2006-01-02")
		})
		v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return primitive.IsValidObjectID(fl.Field().String())
		})
		v.RegisterValidation("mediaurl", func(fl validator.FieldLevel) bool {
			return utils.IsMediaSource(fl.Field().String())
		})
	})
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Please enter a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "ymd":
		return "Please select a valid future date"
	case "objectid":
		return fmt.Sprintf("Valid %s is required", field)
	case "mediaurl":
		return fmt.Sprintf("%s must be a valid URL, upload path, or base64 data", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// bindingError converts a ShouldBind failure into a validation AppError.
func bindingError(err error, message string) *utils.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldMessage(fe))
		}
		return utils.NewValidationError(message, details...)
	}
	return utils.NewValidationError(message, "Request body is malformed")
}

// missingRequired lists the json names of fields that failed a required rule.
func missingRequired(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	var missing []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	return missing
}

// fail writes err through the shared error responder.
func fail(c *gin.Context, err error, fallback string) {
	utils.RespondError(c, err, fallback)
}
