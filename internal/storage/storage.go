package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	storage "github.com/supabase-community/storage-go"
	"upaheart-backend/internal/models"
)

// Client wraps the Supabase storage API for customization images. It hands
// out write-once signed upload targets plus the public retrieval URL, and
// can perform the byte transfer itself for server-side uploads.
type Client struct {
	client     *storage.Client
	httpClient *http.Client
	bucket     string
	baseURL    string
}

func NewClient(supabaseURL, serviceRoleKey, bucket string) (*Client, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &Client{
		client:     client,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		bucket:     bucket,
		baseURL:    baseURL,
	}, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// ObjectPath sanitizes a filename to a restricted character set and prefixes
// it with the current time in milliseconds so every upload gets a unique
// write-once path.
func ObjectPath(filename string) string {
	clean := unsafeFilenameChars.ReplaceAllString(filename, "")
	return fmt.Sprintf("uploads/%d-%s", time.Now().UnixMilli(), clean)
}

// SignedUploadURL requests a signed upload target for a fresh object path
// and returns it together with the eventual public retrieval URL. The caller
// PUTs the file bytes directly against the upload target.
func (c *Client) SignedUploadURL(filename string) (uploadURL, fileURL string, err error) {
	path := ObjectPath(filename)

	signed, err := c.client.CreateSignedUploadUrl(c.bucket, path)
	if err != nil {
		return "", "", fmt.Errorf("failed to create signed upload url: %w", err)
	}

	uploadURL = signed.Url
	if !strings.HasPrefix(uploadURL, "http") {
		uploadURL = c.baseURL + "/storage/v1" + uploadURL
	}

	return uploadURL, c.PublicURL(path), nil
}

// PublicURL builds the public retrieval URL for an object path. The bucket
// is public, so the URL is a plain object path.
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, path)
}

// Upload stores a staged file and returns its public URL. It follows the
// same signed-URL flow the API exposes to clients: obtain the target, then
// PUT the bytes straight at storage.
func (c *Client) Upload(ctx context.Context, file *models.StagedFile) (string, error) {
	uploadURL, fileURL, err := c.SignedUploadURL(file.Filename)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(file.Data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to upload file: status %d, body: %s", resp.StatusCode, string(body))
	}

	return fileURL, nil
}
