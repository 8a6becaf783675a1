package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/mauv0809/club-pairing/internal/club"
	"github.com/mauv0809/club-pairing/internal/grouping"
	"github.com/mauv0809/club-pairing/internal/pairing"
)

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Response{Status: statusSuccess, Message: message, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Status: statusFailed, Message: message})
}

// writeError maps domain errors onto status codes.
func writeError(w http.ResponseWriter, err error) {
	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "error", err, "status", status)
	} else {
		log.Debug("Request rejected", "error", err, "status", status)
	}
	writeFailure(w, status, message)
}

func classify(err error) (int, string) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest, describeValidation(validationErrs)
	case errors.Is(err, errBadRequest),
		grouping.IsInputError(err),
		errors.Is(err, pairing.ErrUnknownSkillLevel),
		errors.Is(err, club.ErrInterestClosed),
		errors.Is(err, club.ErrNotInterested),
		errors.Is(err, club.ErrAlreadyInGroup),
		errors.Is(err, club.ErrGroupFull):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, club.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, club.ErrDuplicate):
		return http.StatusConflict, err.Error()
	case errors.Is(err, pairing.ErrUngroupableConstraints):
		return http.StatusInternalServerError, err.Error()
	case errors.Is(err, pairing.ErrPairingInvariantViolation):
		return http.StatusInternalServerError, "Pairing failed an internal consistency check."
	default:
		return http.StatusInternalServerError, "Internal server error."
	}
}

func describeValidation(errs validator.ValidationErrors) string {
	parts := make([]string, len(errs))
	for i, fe := range errs {
		if fe.Param() != "" {
			parts[i] = fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
		} else {
			parts[i] = fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
		}
	}
	return "Invalid request: " + strings.Join(parts, ", ")
}

// decode reads a JSON body into dst and validates it.
func (s *Server) decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %w", errBadRequest, err)
	}
	return s.validate.Struct(dst)
}

var errBadRequest = errors.New("bad request")

func pathInt64(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", errBadRequest, name)
	}
	return v, nil
}
