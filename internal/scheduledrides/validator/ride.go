package validator

import (
	"fmt"
	"strings"
	"time"

	ridererrors "prebook/internal/scheduledrides/errors"
	apperrors "prebook/pkg/errors"
	"prebook/pkg/logger"
	"prebook/pkg/model"

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

type RideValidator struct {
	validate    *validator.Validate
	minLeadTime time.Duration
	maxHorizon  time.Duration
	logger      *logger.Logger
}

func NewRideValidator(minLeadTime, maxHorizon time.Duration, log *logger.Logger) *RideValidator {
	v := validator.New()

	log.Info("Scheduled ride validator initialized",
		"min_lead_time", minLeadTime,
		"max_horizon", maxHorizon,
	)

	return &RideValidator{
		validate:    v,
		minLeadTime: minLeadTime,
		maxHorizon:  maxHorizon,
		logger:      log,
	}
}

// ValidateCreate checks a fully-populated ride against field constraints
// and the scheduling window. Window violations map to the domain sentinel
// errors so callers can distinguish them from field-level failures.
func (v *RideValidator) ValidateCreate(ride *model.ScheduledRide, now time.Time) error {
	if err := v.validateStruct(ride); err != nil {
		return err
	}
	return v.ValidateWindow(ride.ScheduledTime, now)
}

// ValidateWindow enforces the minimum lead time and maximum horizon.
// Both bounds are inclusive on the allowed side: scheduling exactly at
// now+minLeadTime or now+maxHorizon is accepted.
func (v *RideValidator) ValidateWindow(scheduledTime, now time.Time) error {
	lead := scheduledTime.Sub(now)

	if lead < v.minLeadTime {
		return apperrors.Wrap(ridererrors.ErrTooSoon, apperrors.CodeValidation,
			fmt.Sprintf("scheduled time must be at least %s in the future", v.minLeadTime),
			422).WithDetails(map[string]any{
			"scheduled_time": scheduledTime,
			"min_lead_time":  v.minLeadTime.String(),
		})
	}

	if lead > v.maxHorizon {
		return apperrors.Wrap(ridererrors.ErrTooFar, apperrors.CodeValidation,
			fmt.Sprintf("scheduled time must be no more than %s ahead", v.maxHorizon),
			422).WithDetails(map[string]any{
			"scheduled_time": scheduledTime,
			"max_horizon":    v.maxHorizon.String(),
		})
	}

	return nil
}

func (v *RideValidator) validateStruct(ride *model.ScheduledRide) error {
	err := v.validate.Struct(ride)
	if err == nil {
		return nil
	}

	invalidErr, ok := err.(*validator.InvalidValidationError)
	if ok {
		return apperrors.Internal("validator received an invalid value", invalidErr)
	}

	var validationErrors ValidationErrors
	for _, fieldErr := range err.(validator.ValidationErrors) {
		validationErrors = append(validationErrors, ValidationError{
			Field:   fieldErr.Field(),
			Message: messageForTag(fieldErr),
		})
	}

	v.logger.Debug("Scheduled ride failed field validation", "errors", validationErrors.Error())

	details := make(map[string]any, len(validationErrors))
	for _, ve := range validationErrors {
		details[ve.Field] = ve.Message
	}
	return apperrors.Validation("scheduled ride failed validation", details)
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "uuid4":
		return "must be a valid UUID"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
