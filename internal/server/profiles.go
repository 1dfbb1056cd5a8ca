package server

import (
	"errors"
	"net/http"
	"strings"

	"petcare15/pkg/types"
)

func (s *Service) handleGetProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.profilesRepo.Profiles(r.Context())
	if err != nil {
		s.writeError(w, err, "Failed to fetch profiles")
		return
	}

	s.writeJSON(w, http.StatusOK, profiles)
}

func (s *Service) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profilesRepo.Profile(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err, "Failed to fetch profile")
		return
	}

	s.writeJSON(w, http.StatusOK, profile)
}

// handlePostProfile replaces the profile stored under the path id with the
// posted document.
func (s *Service) handlePostProfile(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))

	var profile = new(types.Profile)
	if err := decodeJSON(w, r, profile, "Invalid profile format"); err != nil {
		s.writeError(w, err, "Failed to save profile")
		return
	}

	profile.ID = id
	profile.Name = strings.TrimSpace(profile.Name)

	if err := validateStruct(profile); err != nil {
		s.writeError(w, err, "Failed to save profile")
		return
	}

	if err := s.profilesRepo.UpsertProfile(r.Context(), profile); err != nil {
		s.writeError(w, err, "Failed to save profile")
		return
	}

	s.logger.WithField("profile_id", id).Info("profile saved")
	s.writeSuccess(w, "")
}

// currentProfile returns the stored profile, or nil when none exists yet.
func (s *Service) currentProfile(r *http.Request, id string) (*types.Profile, error) {
	profile, err := s.profilesRepo.Profile(r.Context(), id)
	if errors.Is(err, types.ErrProfileNotFound) {
		return nil, nil
	}
	return profile, err
}
