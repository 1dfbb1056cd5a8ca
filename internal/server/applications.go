package server

import (
	"net/http"

	"petcare15/internal/metrics"
	"petcare15/pkg/types"
)

type applicationRequest struct {
	ApplicationID string `json:"applicationId"`
}

type approveResponse struct {
	Success  bool            `json:"success"`
	Customer *types.Customer `json:"customer"`
}

func (s *Service) handleGetApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := s.applications.Applications(r.Context())
	if err != nil {
		s.writeError(w, err, "Failed to fetch applications")
		return
	}

	s.writeJSON(w, http.StatusOK, apps)
}

func (s *Service) handlePostApproveApplication(w http.ResponseWriter, r *http.Request) {
	var req = new(applicationRequest)
	if err := decodeJSON(w, r, req, "Invalid request body"); err != nil {
		s.writeError(w, err, "Failed to approve application")
		return
	}

	customer, err := s.applications.Approve(r.Context(), req.ApplicationID)
	if err != nil {
		s.writeError(w, err, "Failed to approve application")
		return
	}

	metrics.RecordApplicationDecision(types.ApplicationStatusApproved.String())
	s.writeJSON(w, http.StatusOK, approveResponse{Success: true, Customer: customer})
}

func (s *Service) handlePostRejectApplication(w http.ResponseWriter, r *http.Request) {
	var req = new(applicationRequest)
	if err := decodeJSON(w, r, req, "Invalid request body"); err != nil {
		s.writeError(w, err, "Failed to reject application")
		return
	}

	if err := s.applications.Reject(r.Context(), req.ApplicationID); err != nil {
		s.writeError(w, err, "Failed to reject application")
		return
	}

	metrics.RecordApplicationDecision(types.ApplicationStatusRejected.String())
	s.writeSuccess(w, "")
}

func (s *Service) handlePostUnrejectApplication(w http.ResponseWriter, r *http.Request) {
	var req = new(applicationRequest)
	if err := decodeJSON(w, r, req, "Invalid request body"); err != nil {
		s.writeError(w, err, "Failed to unreject application")
		return
	}

	if err := s.applications.Unreject(r.Context(), req.ApplicationID); err != nil {
		s.writeError(w, err, "Failed to unreject application")
		return
	}

	metrics.RecordApplicationDecision(types.ApplicationStatusPending.String())
	s.writeSuccess(w, "")
}
