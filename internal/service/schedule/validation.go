package schedule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// newValidator validator с тегом hhmm; ошибка регистрации - ошибка программы
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("hhmm", validateHHMM); err != nil {
		panic(fmt.Sprintf("schedule: register hhmm validation: %v", err))
	}
	return v
}

func validateHHMM(fl validator.FieldLevel) bool {
	_, err := types.NewTimeStringFromString(fl.Field().String())
	return err == nil
}

// validationError собирает ошибки полей в одно сообщение
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(parts, "; "))
}
