// Package media places uploaded profile images in storage and keeps the
// owning profile's image fields in step with what was removed.
package media

import (
	"context"
	"fmt"
	"io"

	"petcare15/pkg/types"

	"github.com/sirupsen/logrus"
)

type Service struct {
	logger *logrus.Logger
	store  Store
}

func NewService(logger *logrus.Logger, store Store) *Service {
	return &Service{logger: logger, store: store}
}

// Upload stores body for profileID under a sanitized version of
// originalName. Callers must record the returned filename, which may differ
// from the one they sent.
func (s *Service) Upload(ctx context.Context, profileID, originalName, contentType string, body io.Reader) (*types.UploadedImage, error) {
	if profileID == "" {
		return nil, types.NewValidationError("Missing profileId")
	}

	if !ValidProfileID(profileID) {
		return nil, types.NewValidationError("Invalid profileId")
	}

	filename := SanitizeFilename(originalName)
	if filename == "" {
		return nil, types.NewValidationError("Invalid filename")
	}

	location, err := s.store.Save(ctx, profileID, filename, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to store image for profile %s: %w", profileID, err)
	}

	s.logger.WithFields(logrus.Fields{
		"profile_id": profileID,
		"original":   originalName,
		"filename":   filename,
	}).Info("image uploaded")

	return &types.UploadedImage{
		Message:  "Upload successful",
		Filename: filename,
		Path:     location,
	}, nil
}

// Discard removes a file stored by Upload whose follow-up work failed.
func (s *Service) Discard(ctx context.Context, profileID, filename string) error {
	if !ValidProfileID(profileID) || !validStoredName(filename) {
		return types.NewValidationError("Invalid filename")
	}

	if err := s.store.Delete(ctx, profileID, filename); err != nil {
		return fmt.Errorf("failed to discard image %s for profile %s: %w", filename, profileID, err)
	}

	return nil
}

// DeleteImages removes the files named by deletions and reports which
// profile fields to clear. current is the stored profile, used to resolve the
// single-image fields and to keep files that another field still points at;
// it may be nil for a profile that was never saved. Every file is attempted,
// failures are collected instead of aborting.
func (s *Service) DeleteImages(ctx context.Context, profileID string, current *types.Profile, deletions *types.ImageDeletions) (*types.ImageDeletionResult, error) {
	if profileID == "" {
		return nil, types.NewValidationError("Missing profileId")
	}

	if !ValidProfileID(profileID) {
		return nil, types.NewValidationError("Invalid profileId")
	}

	result := &types.ImageDeletionResult{
		Deleted: []string{},
		Failed:  []string{},
	}
	if deletions.IsEmpty() {
		return result, nil
	}
	result.Clear = *deletions

	for _, name := range s.filesToDelete(current, deletions) {
		if !validStoredName(name) {
			s.logger.WithField("profile_id", profileID).WithField("filename", name).Warn("refusing to delete unsafe filename")
			result.Failed = append(result.Failed, name)
			continue
		}

		if err := s.store.Delete(ctx, profileID, name); err != nil {
			s.logger.WithError(err).WithField("profile_id", profileID).WithField("filename", name).Error("failed to delete image")
			result.Failed = append(result.Failed, name)
			continue
		}

		result.Deleted = append(result.Deleted, name)
	}

	return result, nil
}

// filesToDelete lists every file named by deletions once, leaving out files
// that a field of the profile still references after the deletions apply.
func (s *Service) filesToDelete(current *types.Profile, deletions *types.ImageDeletions) []string {
	var candidates []string
	if current != nil {
		if deletions.ProfileThumbnail && current.ProfileThumbnail != "" {
			candidates = append(candidates, current.ProfileThumbnail)
		}
		if deletions.ProfileFullImage && current.ProfileFullImage != "" {
			candidates = append(candidates, current.ProfileFullImage)
		}
	}
	candidates = append(candidates, deletions.Gallery...)
	candidates = append(candidates, deletions.SpecialGallery...)

	stillUsed := map[string]bool{}
	if current != nil {
		remaining := *current
		remaining.ApplyImageDeletions(deletions)
		for _, name := range referencedFiles(&remaining) {
			stillUsed[name] = true
		}
	}

	seen := map[string]bool{}
	out := make([]string, 0, len(candidates))
	for _, name := range candidates {
		if seen[name] || stillUsed[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}

	return out
}

func referencedFiles(p *types.Profile) []string {
	files := []string{p.ProfileThumbnail, p.ProfileFullImage}
	files = append(files, p.Gallery...)
	files = append(files, p.SpecialGallery.Gallery...)
	return files
}
