package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"petcare15/internal/customers"
	"petcare15/pkg/types"
)

const maxJSONBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Service) writeSuccess(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusOK, successResponse{Success: true, Message: message})
}

func (s *Service) badRequest(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

func (s *Service) internalServerError(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: message})
}

// writeError maps err onto a status code. Anything that is not a known
// client error is logged and reported with fallback only, so storage details
// never reach the caller.
func (s *Service) writeError(w http.ResponseWriter, err error, fallback string) {
	var verr *types.ValidationError

	switch {
	case errors.As(err, &verr):
		s.badRequest(w, verr.Message)
	case errors.Is(err, types.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: notFoundMessage(err)})
	case errors.Is(err, types.ErrInvalidTransition):
		s.writeJSON(w, http.StatusConflict, errorResponse{Error: "Invalid status transition"})
	default:
		s.logger.WithError(err).Error(fallback)
		s.internalServerError(w, fallback)
	}
}

var notFoundErrors = []error{
	customers.ErrCustomerProfileNotFound,
	types.ErrProfileNotFound,
	types.ErrApplicationNotFound,
	types.ErrCustomerNotFound,
	types.ErrContactNotFound,
}

func notFoundMessage(err error) string {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			msg := target.Error()
			return strings.ToUpper(msg[:1]) + msg[1:]
		}
	}
	return "Not found"
}

// decodeJSON reads a JSON body into v, reporting malformed input as a
// validation error.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, invalidMessage string) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)).Decode(v); err != nil {
		return &types.ValidationError{Message: invalidMessage}
	}
	return nil
}
