package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"invoicely.app/api/internal/http/validate"
	"invoicely.app/api/internal/service"
)

const businessOrgLimitMessage = "Business accounts can only have one organization"

// errorWriter translates service errors into JSON responses. With
// exposeInternal set, 500 responses carry the underlying error text.
type errorWriter struct {
	exposeInternal bool
}

func (w errorWriter) fail(c *gin.Context, err error, action string) {
	status, msg := statusFor(err)
	if status != http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": msg})
		return
	}

	slog.ErrorContext(c.Request.Context(), "failed to "+action, "error", err)
	_ = c.Error(err)

	msg = "failed to " + action
	if w.exposeInternal {
		msg += ": " + err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrBusinessOrgLimit):
		return http.StatusBadRequest, businessOrgLimitMessage
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrUnsupportedExportFormat):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrOrganizationNotFound),
		errors.Is(err, service.ErrMemberNotFound),
		errors.Is(err, service.ErrInvitationNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrInvitationPending):
		return http.StatusConflict, err.Error()
	}
	return http.StatusInternalServerError, ""
}

// bindFailed answers a request whose body or query did not bind. Validator
// failures are listed per field; anything else is a malformed request.
func bindFailed(c *gin.Context, err error) {
	if fieldErrs, ok := validate.Errors(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}
	slog.WarnContext(c.Request.Context(), "invalid request", "error", err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
