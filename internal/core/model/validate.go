package model

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidRange  = errors.New("job end must be after start")
	ErrMissingField  = errors.New("job is missing a required field")
	ErrInvalidWindow = errors.New("window end must be after start")
)

var (
	jobValidator     *validator.Validate
	jobValidatorOnce sync.Once
)

func getValidator() *validator.Validate {
	jobValidatorOnce.Do(func() {
		jobValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return jobValidator
}

// ValidateJob checks the structural contract of a job: an ID, an owning staff
// member and a positive duration.
func ValidateJob(j Job) error {
	err := getValidator().Struct(j)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.StructField() == "End" {
			return fmt.Errorf("%w: start %s, end %s", ErrInvalidRange,
				j.Start.Format("15:04"), j.End.Format("15:04"))
		}
		missing = append(missing, fe.StructField())
	}
	return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
}
