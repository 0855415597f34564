package validator

import (
	"errors"
	"fmt"
	"strings"

	"carve/pkg/logger"
	"carve/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// CriteriaValidator checks search criteria before the slicer runs. Missing
// or malformed criteria are a boundary concern: the slicer itself treats
// valid criteria as a precondition.
type CriteriaValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewCriteriaValidator(log *logger.Logger) *CriteriaValidator {
	v := validator.New()

	log.Info("Criteria validator initialized successfully")

	return &CriteriaValidator{
		validate: v,
		logger:   log,
	}
}

func (v *CriteriaValidator) Validate(criteria *model.SliceCriteria) error {
	if err := v.validate.Struct(criteria); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *CriteriaValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = "is required"
		case "oneof":
			message = fmt.Sprintf("must be one of [%s]", err.Param())
		case "min":
			message = fmt.Sprintf("must be at least %s", err.Param())
		case "max":
			message = fmt.Sprintf("must be at most %s", err.Param())
		case "ltefield":
			// Windows wrapping midnight are rejected, not interpreted.
			message = "start of the time-of-day window must not be after its end"
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
