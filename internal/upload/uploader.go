// Package upload wraps the external image-hosting collaborator: it takes
// image bytes (base64 data URI) and returns a stable public URL.
package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrDisabled = errors.New("image uploads are not configured")

type Uploader interface {
	Upload(ctx context.Context, base64Image string) (string, error)
}

// New returns an HTTP uploader, or a disabled one when no endpoint is set.
func New(endpoint, preset string) Uploader {
	if endpoint == "" {
		return disabled{}
	}
	return &httpUploader{
		endpoint: endpoint,
		preset:   preset,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type httpUploader struct {
	endpoint string
	preset   string
	client   *http.Client
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

func (u *httpUploader) Upload(ctx context.Context, base64Image string) (string, error) {
	form := url.Values{}
	form.Set("file", base64Image)
	if u.preset != "" {
		form.Set("upload_preset", u.preset)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("upload: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload: unexpected status %d", resp.StatusCode)
	}

	var body uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("upload: failed to decode response: %w", err)
	}
	if body.SecureURL == "" {
		return "", errors.New("upload: response missing secure_url")
	}
	return body.SecureURL, nil
}

type disabled struct{}

func (disabled) Upload(context.Context, string) (string, error) {
	return "", ErrDisabled
}
