package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/grindboard/practice-service/internal/models"
)

const (
	maxTagLength = 100
	maxTags      = 50
)

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateQuestion validates question create and replace requests
func (bv *BusinessValidator) ValidateQuestion(req *QuestionRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)
	errors = append(errors, validateTags("company", req.Company)...)
	errors = append(errors, validateTags("topic", req.Topic)...)

	return errors
}

// ValidateAttemptCreate validates a new practice log entry
func (bv *BusinessValidator) ValidateAttemptCreate(req *AttemptCreateRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateAttemptUpdate validates changes to an existing entry
func (bv *BusinessValidator) ValidateAttemptUpdate(req *AttemptUpdateRequest) ValidationErrors {
	return bv.Validate(req)
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// Title and link must contain more than whitespace
	bv.validate.RegisterValidation("not_blank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// difficulty level validation, case-insensitive
	bv.validate.RegisterValidation("difficulty_level", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseDifficulty(fl.Field().String())
		return ok
	})

	// attempt result validation, case-insensitive
	bv.validate.RegisterValidation("attempt_result", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseAttemptResult(fl.Field().String())
		return ok
	})
}

func validateTags(field string, tags StringList) ValidationErrors {
	var errors ValidationErrors

	if len(tags) > maxTags {
		errors = append(errors, ValidationError{
			Field:   field,
			Message: "too many entries",
			Value:   len(tags),
			Rule:    "max_entries",
		})
	}

	for _, tag := range tags {
		if len(tag) > maxTagLength {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: "entry too long",
				Value:   tag,
				Rule:    "max_length",
			})
		}
	}

	return errors
}
