package imagehost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Cloudflare uploads through the Cloudflare Images v1 API.
type Cloudflare struct {
	endpoint string
	token    string
	http     *http.Client
}

// NewCloudflare builds a client for accountID. apiBase is normally
// "https://api.cloudflare.com/client/v4".
func NewCloudflare(apiBase, accountID, token string, timeout time.Duration) *Cloudflare {
	return &Cloudflare{
		endpoint: strings.TrimRight(apiBase, "/") + "/accounts/" + url.PathEscape(accountID) + "/images/v1",
		token:    token,
		http:     &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient replaces the underlying http.Client.
func (c *Cloudflare) WithHTTPClient(hc *http.Client) *Cloudflare {
	c.http = hc
	return c
}

type cloudflareResponse struct {
	Success bool              `json:"success"`
	Errors  []json.RawMessage `json:"errors"`
	Result  struct {
		ID       string   `json:"id"`
		Filename string   `json:"filename"`
		Variants []string `json:"variants"`
		URL      string   `json:"url"`
	} `json:"result"`
}

// Upload streams file as multipart form data. It returns the first delivery
// variant, or the generic URL when the account defines no variants.
func (c *Cloudflare) Upload(ctx context.Context, file File) (string, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	go func() {
		part, err := form.CreateFormFile("file", file.Name)
		if err == nil {
			_, err = io.Copy(part, file.Body)
		}
		if err == nil {
			err = form.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, pr)
	if err != nil {
		pr.Close()
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &HostError{Details: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &HostError{Status: resp.StatusCode, Details: err.Error(), Err: err}
	}

	var body cloudflareResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", &HostError{Status: resp.StatusCode, Details: strings.TrimSpace(string(raw)), Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest || !body.Success {
		var details any
		if jsonErr := json.Unmarshal(raw, &details); jsonErr != nil {
			details = string(raw)
		}
		return "", &HostError{Status: resp.StatusCode, Details: details}
	}

	if len(body.Result.Variants) > 0 {
		return body.Result.Variants[0], nil
	}
	if body.Result.URL != "" {
		return body.Result.URL, nil
	}
	return "", &HostError{Status: resp.StatusCode, Details: "response carries no image url", Err: errors.New("no image url")}
}
