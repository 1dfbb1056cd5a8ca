package server

import (
	"net/http"
)

type blacklistRequest struct {
	ProfileID string `json:"profileId"`
}

func (s *Service) handleGetCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.customers.Customers(r.Context())
	if err != nil {
		s.writeError(w, err, "Failed to fetch customers")
		return
	}

	s.writeJSON(w, http.StatusOK, customers)
}

func (s *Service) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := s.customers.Customer(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err, "Failed to fetch customer")
		return
	}

	s.writeJSON(w, http.StatusOK, customer)
}

func (s *Service) handlePostBlacklistCustomer(w http.ResponseWriter, r *http.Request) {
	var req = new(blacklistRequest)
	if err := decodeJSON(w, r, req, "Invalid request body"); err != nil {
		s.writeError(w, err, "Failed to blacklist customer")
		return
	}

	customer, err := s.customers.Blacklist(r.Context(), r.PathValue("id"), req.ProfileID)
	if err != nil {
		s.writeError(w, err, "Failed to blacklist customer")
		return
	}

	s.writeJSON(w, http.StatusOK, customer)
}
