package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
	// ExposeErrorDetails attaches the underlying cause to 500 responses.
	ExposeErrorDetails bool
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger, exposeErrorDetails bool) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg, ExposeErrorDetails: exposeErrorDetails}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes a plain error response with the given status.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	appErr := &apperrors.AppError{
		Type:       apperrors.ErrorTypeValidation,
		Code:       apperrors.ErrCodeInvalidRequest,
		Message:    message,
		StatusCode: status,
	}
	if status >= http.StatusInternalServerError {
		appErr.Type = apperrors.ErrorTypeInternal
		appErr.Code = "INTERNAL_ERROR"
	}
	WriteAppError(w, appErr)
}

// HandleServiceError maps a service error onto its HTTP response.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.From(r.Context())

	appErr, ok := apperrors.IsAppError(err)
	if !ok {
		appErr = apperrors.NewInternalError("Server error", err)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		log.Error("request failed", "path", r.URL.Path, "error", err)
		if h.ExposeErrorDetails && appErr.Cause != nil && appErr.Details == nil {
			appErr = appErr.WithDetails(map[string]string{"cause": appErr.Cause.Error()})
		}
	} else {
		log.Debug("request rejected", "path", r.URL.Path, "code", appErr.Code, "message", appErr.GetDetailedMessage())
	}

	WriteAppError(w, appErr)
}

// DecodeJSON reads the request body into dst; an empty or malformed body is a 400.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return apperrors.NewValidationError("Request body is required", apperrors.ErrCodeInvalidRequest)
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewValidationError("Request body is required", apperrors.ErrCodeInvalidRequest)
		}
		return apperrors.NewValidationError("Invalid request body", apperrors.ErrCodeInvalidRequest).WithCause(err)
	}
	return nil
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	return BearerToken(r)
}

func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[7:])
}

// QueryFloat parses an optional float query parameter.
func QueryFloat(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.NewValidationFieldError(name, name+" must be a number", apperrors.ErrCodeInvalidRequest)
	}
	return &f, nil
}

// QueryInt parses an optional integer query parameter, falling back to def.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperrors.NewValidationFieldError(name, name+" must be a positive integer", apperrors.ErrCodeInvalidRequest)
	}
	return n, nil
}

func WriteAppError(w http.ResponseWriter, appErr *apperrors.AppError) {
	status, body := appErr.ToHTTPResponse()
	if status == 0 {
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// QueryCount parses an optional non-negative integer query parameter.
func QueryCount(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, apperrors.NewValidationFieldError(name, name+" must be a non-negative integer", apperrors.ErrCodeInvalidRequest)
	}
	return &n, nil
}
