// Package upload submits files to the host's storage endpoint and refreshes
// node-type metadata from its object-info endpoint.
package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/heiftools/heicbridge/iox"
	"github.com/heiftools/heicbridge/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUploadPath is the storage endpoint path.
const DefaultUploadPath = "/upload/image"

// DefaultObjectInfoPath is the node-type metadata endpoint path.
const DefaultObjectInfoPath = "/object_info"

// DefaultField is the multipart field name the storage endpoint expects.
const DefaultField = "image"

// Config configures the upload client.
type Config struct {
	// BaseURL is the host server base URL (required), e.g. http://127.0.0.1:8188.
	BaseURL string
	// UploadPath overrides DefaultUploadPath.
	UploadPath string
	// ObjectInfoPath overrides DefaultObjectInfoPath.
	ObjectInfoPath string
	// Field overrides the multipart field name.
	Field string
	// Timeout is the per-request timeout (default 30s).
	Timeout time.Duration
}

// Client talks to the host server's storage and metadata endpoints.
type Client struct {
	config Config
	client *http.Client
}

// New creates an upload client. Returns an error if BaseURL is empty.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("upload client requires a base URL")
	}
	if cfg.UploadPath == "" {
		cfg.UploadPath = DefaultUploadPath
	}
	if cfg.ObjectInfoPath == "" {
		cfg.ObjectInfoPath = DefaultObjectInfoPath
	}
	if cfg.Field == "" {
		cfg.Field = DefaultField
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// UploadError is returned for non-2xx responses from the storage endpoint.
// Detail carries the server-provided body text, best-effort: a failed body
// read yields an empty detail rather than masking the status.
type UploadError struct {
	Status int
	Detail string
}

func (e *UploadError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("upload failed with status %d", e.Status)
	}
	return fmt.Sprintf("upload failed with status %d: %s", e.Status, e.Detail)
}

// Upload submits the file bytes under the configured multipart field and
// returns the stored resource's reference. The response's name defaults to
// the submitted filename and its subfolder defaults to empty when the server
// omits them. No retry and no deduplication: idempotence is whatever the
// server makes of it.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (types.ResourceReference, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		part, err := form.CreateFormFile(c.config.Field, filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+c.config.UploadPath, pr)
	if err != nil {
		return types.ResourceReference{}, fmt.Errorf("upload: create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return types.ResourceReference{}, fmt.Errorf("upload: request failed: %w", err)
	}
	defer iox.DiscardClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := ""
		if body, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096)); readErr == nil {
			detail = string(body)
		}
		return types.ResourceReference{}, &UploadError{Status: resp.StatusCode, Detail: detail}
	}

	var ur types.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return types.ResourceReference{}, fmt.Errorf("upload: decode response: %w", err)
	}
	if ur.Name == "" {
		ur.Name = filename
	}
	return types.NewResourceReference(ur.Name, ur.Subfolder), nil
}

// ObjectInfo fetches the host's node-type metadata map. Used to refresh a
// widget's selectable candidate list after a new upload.
func (c *Client) ObjectInfo(ctx context.Context) (types.ObjectInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+c.config.ObjectInfoPath, nil)
	if err != nil {
		return nil, fmt.Errorf("object info: create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("object info: request failed: %w", err)
	}
	defer iox.DiscardClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("object info: unexpected status %d", resp.StatusCode)
	}

	var info types.ObjectInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("object info: decode response: %w", err)
	}
	return info, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
