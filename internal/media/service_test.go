package media

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"petcare15/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	mu      sync.Mutex
	deleted []string
	failOn  map[string]bool
}

func (s *recordingStore) Save(ctx context.Context, profileID, filename, contentType string, body io.Reader) (string, error) {
	return profileID + "/" + filename, nil
}

func (s *recordingStore) Delete(ctx context.Context, profileID, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failOn[filename] {
		return errors.New("disk on fire")
	}
	s.deleted = append(s.deleted, profileID+"/"+filename)
	return nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestUpload_StoresSanitizedName(t *testing.T) {
	root := t.TempDir()
	svc := NewService(quietLogger(), NewFileStore(root, "/images"))

	res, err := svc.Upload(context.Background(), "fifteen", " café ☹.PNG", "image/png", strings.NewReader("img"))
	require.NoError(t, err)

	assert.Equal(t, "cafe_.PNG", res.Filename)
	assert.Equal(t, "/images/fifteen/cafe_.PNG", res.Path)
	assert.Equal(t, "Upload successful", res.Message)

	_, err = os.Stat(filepath.Join(root, "fifteen", "cafe_.PNG"))
	assert.NoError(t, err)
}

func TestUpload_Validation(t *testing.T) {
	svc := NewService(quietLogger(), &recordingStore{})

	tests := []struct {
		name      string
		profileID string
		filename  string
		message   string
	}{
		{name: "missing profile", profileID: "", filename: "a.png", message: "Missing profileId"},
		{name: "traversal profile", profileID: "../x", filename: "a.png", message: "Invalid profileId"},
		{name: "unusable filename", profileID: "fifteen", filename: "..", message: "Invalid filename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), tt.profileID, tt.filename, "", strings.NewReader(""))
			var verr *types.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}

func TestDeleteImages_BestEffort(t *testing.T) {
	store := &recordingStore{failOn: map[string]bool{"misa2.JPG": true}}
	svc := NewService(quietLogger(), store)

	current := &types.Profile{
		ID:               "misamisa",
		ProfileThumbnail: "profile2.PNG",
		ProfileFullImage: "full2.PNG",
		Gallery:          []string{"misa1.jpeg", "misa2.JPG", "misa3.jpeg"},
		SpecialGallery:   types.SpecialGallery{Gallery: []string{"misa.mov"}},
	}

	res, err := svc.DeleteImages(context.Background(), "misamisa", current, &types.ImageDeletions{
		ProfileThumbnail: true,
		Gallery:          []string{"misa1.jpeg", "misa2.JPG", "misa3.jpeg"},
		SpecialGallery:   []string{"misa.mov"},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"profile2.PNG", "misa1.jpeg", "misa3.jpeg", "misa.mov"}, res.Deleted)
	assert.Equal(t, []string{"misa2.JPG"}, res.Failed)
	assert.True(t, res.Clear.ProfileThumbnail)
	assert.False(t, res.Clear.ProfileFullImage)
	assert.Len(t, store.deleted, 4)
}

func TestDeleteImages_KeepsSharedFile(t *testing.T) {
	store := &recordingStore{}
	svc := NewService(quietLogger(), store)

	current := &types.Profile{ProfileThumbnail: "profile1.PNG", ProfileFullImage: "profile1.PNG"}

	res, err := svc.DeleteImages(context.Background(), "fifteen", current, &types.ImageDeletions{ProfileThumbnail: true})
	require.NoError(t, err)
	assert.Empty(t, res.Deleted)
	assert.True(t, res.Clear.ProfileThumbnail)

	res, err = svc.DeleteImages(context.Background(), "fifteen", current, &types.ImageDeletions{ProfileThumbnail: true, ProfileFullImage: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"profile1.PNG"}, res.Deleted)
}

func TestDeleteImages_RejectsUnsafeNames(t *testing.T) {
	store := &recordingStore{}
	svc := NewService(quietLogger(), store)

	res, err := svc.DeleteImages(context.Background(), "fifteen", nil, &types.ImageDeletions{Gallery: []string{"../../secret", "ok.png"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"../../secret"}, res.Failed)
	assert.Equal(t, []string{"ok.png"}, res.Deleted)
}

func TestDeleteImages_Empty(t *testing.T) {
	svc := NewService(quietLogger(), &recordingStore{})

	res, err := svc.DeleteImages(context.Background(), "fifteen", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Deleted)
	assert.Empty(t, res.Failed)

	_, err = svc.DeleteImages(context.Background(), "", nil, nil)
	assert.True(t, types.IsValidationError(err))
}
