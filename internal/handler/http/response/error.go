package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/ik-portal/hr-backend/internal/domain/payroll"
	"github.com/ik-portal/hr-backend/internal/domain/user"
	"github.com/ik-portal/hr-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollAlreadyPaid):
		Conflict(w, "Payroll record already paid")
	case errors.Is(err, payroll.ErrEmployeeNotLinked):
		Forbidden(w, "User is not linked to an employee record")

	// Default: the cause stays in the log, the client gets a reference to it
	default:
		reference := uuid.NewString()
		slog.Error("Unhandled error", "error", err, "error_reference", reference)
		InternalServerError(w, "An unexpected error occurred", map[string]string{"reference": reference})
	}
}
