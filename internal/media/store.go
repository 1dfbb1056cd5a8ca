package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Store writes and removes media files grouped by profile id.
type Store interface {
	// Save writes body as profileID/filename and returns where it can be found.
	Save(ctx context.Context, profileID, filename, contentType string, body io.Reader) (string, error)
	// Delete removes profileID/filename. A file that is already gone is not an error.
	Delete(ctx context.Context, profileID, filename string) error
}

// FileStore keeps media on the local disk under root/<profileID>/.
type FileStore struct {
	root    string
	urlPath string
}

func NewFileStore(root, urlPath string) *FileStore {
	return &FileStore{root: root, urlPath: urlPath}
}

func (s *FileStore) Root() string {
	return s.root
}

func (s *FileStore) Save(ctx context.Context, profileID, filename, contentType string, body io.Reader) (string, error) {
	dir := filepath.Join(s.root, profileID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close upload: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(dir, filename)); err != nil {
		return "", fmt.Errorf("failed to move upload into place: %w", err)
	}

	return path.Join(s.urlPath, profileID, filename), nil
}

func (s *FileStore) Delete(ctx context.Context, profileID, filename string) error {
	err := os.Remove(filepath.Join(s.root, profileID, filename))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s/%s: %w", profileID, filename, err)
	}

	return nil
}

// S3API is the subset of the S3 client the store uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps media in a bucket under <prefix>/<profileID>/.
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

func NewS3Store(client S3API, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (s *S3Store) key(profileID, filename string) string {
	return path.Join(s.prefix, profileID, filename)
}

func (s *S3Store) Save(ctx context.Context, profileID, filename, contentType string, body io.Reader) (string, error) {
	key := s.key(profileID, filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	_, err := s.client.PutObject(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to s3: %w", key, err)
	}

	return key, nil
}

func (s *S3Store) Delete(ctx context.Context, profileID, filename string) error {
	key := s.key(profileID, filename)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s from s3: %w", key, err)
	}

	return nil
}
