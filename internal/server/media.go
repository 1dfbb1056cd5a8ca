package server

import (
	"errors"
	"net/http"

	"petcare15/internal/metrics"
	"petcare15/pkg/types"
)

// handlePostUploadImage stores the multipart "image" file for the profile
// named by the profileId query parameter. With gallery set the stored name is
// also added to that gallery of the saved profile.
func (s *Service) handlePostUploadImage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	profileID := query.Get("profileId")
	if profileID == "" {
		s.badRequest(w, "Missing profileId")
		return
	}

	gallery := query.Get("gallery")
	if gallery != "" {
		if !validGallery(gallery) {
			s.badRequest(w, "Invalid gallery")
			return
		}

		// checked up front so nothing is stored for a missing profile
		if _, err := s.profilesRepo.Profile(r.Context(), profileID); err != nil {
			s.writeError(w, err, "Failed to upload image")
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(s.config.MaxUploadMB)<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "File too large"})
			return
		}
		s.badRequest(w, "No file uploaded")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("image")
	if err != nil {
		s.badRequest(w, "No file uploaded")
		return
	}
	defer file.Close()

	uploaded, err := s.media.Upload(r.Context(), profileID, header.Filename, header.Header.Get("Content-Type"), file)
	metrics.RecordImageOperation("upload", err == nil)
	if err != nil {
		s.writeError(w, err, "Failed to upload image")
		return
	}

	if gallery != "" {
		if err := s.addToGallery(r, profileID, gallery, uploaded.Filename); err != nil {
			if derr := s.media.Discard(r.Context(), profileID, uploaded.Filename); derr != nil {
				s.logger.WithError(derr).WithField("profile_id", profileID).Error("failed to discard orphaned upload")
			}
			s.writeError(w, err, "Failed to update profile gallery")
			return
		}
	}

	s.writeJSON(w, http.StatusOK, uploaded)
}

func validGallery(gallery string) bool {
	return gallery == "gallery" || gallery == "specialGallery"
}

// addToGallery records an uploaded file in the stored profile's gallery or
// special gallery under a row lock.
func (s *Service) addToGallery(r *http.Request, profileID, gallery, filename string) error {
	_, err := s.profilesRepo.ModifyProfile(r.Context(), profileID, func(p *types.Profile) error {
		if gallery == "specialGallery" {
			p.MergeUploads(nil, []string{filename})
			return nil
		}
		p.MergeUploads([]string{filename}, nil)
		return nil
	})
	return err
}

type deleteImagesRequest struct {
	ProfileID string                `json:"profileId"`
	Deletions *types.ImageDeletions `json:"deletions"`
}

// handlePostDeleteImages removes images from storage. The caller applies the
// returned clears to the profile it saves next.
func (s *Service) handlePostDeleteImages(w http.ResponseWriter, r *http.Request) {
	var req = new(deleteImagesRequest)
	if err := decodeJSON(w, r, req, "Invalid deletions format"); err != nil {
		s.writeError(w, err, "Failed to delete images")
		return
	}

	var current *types.Profile
	if req.ProfileID != "" {
		var err error
		current, err = s.currentProfile(r, req.ProfileID)
		if err != nil {
			s.writeError(w, err, "Failed to delete images")
			return
		}
	}

	result, err := s.media.DeleteImages(r.Context(), req.ProfileID, current, req.Deletions)
	if err != nil {
		s.writeError(w, err, "Failed to delete images")
		return
	}

	for range result.Deleted {
		metrics.RecordImageOperation("delete", true)
	}
	for range result.Failed {
		metrics.RecordImageOperation("delete", false)
	}

	s.writeJSON(w, http.StatusOK, result)
}
