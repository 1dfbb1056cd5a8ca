package server

import (
	"errors"
	"net/http"

	"petcare15/pkg/types"
)

func (s *Service) handleGetUpdates(w http.ResponseWriter, r *http.Request) {
	updates, err := s.updatesRepo.Updates(r.Context())
	if err != nil {
		s.writeError(w, err, "Failed to fetch updates")
		return
	}

	s.writeJSON(w, http.StatusOK, updates)
}

// handlePostUpdates replaces the whole list of updates with the posted one.
func (s *Service) handlePostUpdates(w http.ResponseWriter, r *http.Request) {
	var updates []*types.Update
	if err := decodeJSON(w, r, &updates, "Invalid updates format"); err != nil {
		s.writeError(w, err, "Failed to save updates")
		return
	}

	updates = types.NormalizeUpdates(updates)

	if err := s.updatesRepo.ReplaceUpdates(r.Context(), updates); err != nil {
		s.writeError(w, err, "Failed to save updates")
		return
	}

	s.writeSuccess(w, "")
}

func (s *Service) handleGetContact(w http.ResponseWriter, r *http.Request) {
	contact, err := s.contactRepo.Contact(r.Context())
	if errors.Is(err, types.ErrContactNotFound) {
		s.writeJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		s.writeError(w, err, "Failed to fetch contact")
		return
	}

	s.writeJSON(w, http.StatusOK, contact)
}

// handlePostContact saves the singleton contact record. A payload with no
// information removes it.
func (s *Service) handlePostContact(w http.ResponseWriter, r *http.Request) {
	var contact = new(types.Contact)
	if err := decodeJSON(w, r, contact, "Invalid contact format"); err != nil {
		s.writeError(w, err, "Failed to save contact info")
		return
	}

	contact.Clean()

	if len(contact.PhoneNumbers) > types.MaxContactPhoneNumbers {
		s.badRequest(w, "Max 2 phone numbers allowed")
		return
	}

	if contact.IsEmpty() {
		if err := s.contactRepo.DeleteContact(r.Context()); err != nil {
			s.writeError(w, err, "Failed to save contact info")
			return
		}
		s.writeSuccess(w, "Contact info deleted")
		return
	}

	if err := validateStruct(contact); err != nil {
		s.writeError(w, err, "Failed to save contact info")
		return
	}

	if err := s.contactRepo.SaveContact(r.Context(), contact); err != nil {
		s.writeError(w, err, "Failed to save contact info")
		return
	}

	s.writeSuccess(w, "")
}
