package imagestore

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"swiftverify/internal/models"
)

const defaultBaseURL = "https://api.cloudinary.com/v1_1"

// Cloudinary uploads images through Cloudinary's signed upload API and
// removes them through the destroy API.
type Cloudinary struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string

	// BaseURL overrides the API host, used by tests.
	BaseURL string

	HTTPClient *http.Client
}

// NewCloudinary builds a client with a 30s HTTP timeout.
func NewCloudinary(cloudName, apiKey, apiSecret, folder string) *Cloudinary {
	return &Cloudinary{
		CloudName:  cloudName,
		APIKey:     apiKey,
		APISecret:  apiSecret,
		Folder:     folder,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	Result    string `json:"result"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Store uploads image bytes as a signed base64 data URI. The label becomes
// part of the public ID so uploads from one submission stay distinguishable.
func (c *Cloudinary) Store(ctx context.Context, data []byte, label string) (models.ImageRef, error) {
	publicID := label + "_" + uuid.NewString()
	if c.Folder != "" {
		publicID = c.Folder + "/" + publicID
	}

	form := url.Values{}
	form.Add("file", "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(data))
	form.Add("api_key", c.APIKey)
	form.Add("public_id", publicID)
	c.sign(form, publicID)

	res, err := c.post(ctx, "/image/upload", form)
	if err != nil {
		return models.ImageRef{}, err
	}

	u := res.SecureURL
	if u == "" {
		u = res.URL
	}
	if u == "" || res.PublicID == "" {
		return models.ImageRef{}, &APIError{StatusCode: http.StatusOK, Message: "upload response missing url or public_id"}
	}
	return models.ImageRef{URL: u, PublicID: res.PublicID}, nil
}

// Delete destroys the image behind publicID.
func (c *Cloudinary) Delete(ctx context.Context, publicID string) error {
	form := url.Values{}
	form.Add("api_key", c.APIKey)
	form.Add("public_id", publicID)
	c.sign(form, publicID)

	res, err := c.post(ctx, "/image/destroy", form)
	if err != nil {
		return err
	}
	if res.Result != "ok" && res.Result != "not found" {
		return &APIError{StatusCode: http.StatusOK, Message: fmt.Sprintf("destroy returned %q", res.Result)}
	}
	return nil
}

// sign appends timestamp and the SHA-1 request signature Cloudinary expects
// over "public_id=...&timestamp=..." plus the API secret.
func (c *Cloudinary) sign(form url.Values, publicID string) {
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form.Add("timestamp", timestamp)
	payload := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, c.APISecret)
	form.Add("signature", fmt.Sprintf("%x", sha1.Sum([]byte(payload))))
}

func (c *Cloudinary) post(ctx context.Context, path string, form url.Values) (*cloudinaryResponse, error) {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	endpoint := base + "/" + c.CloudName + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("imagestore: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imagestore: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("imagestore: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var parsed cloudinaryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("imagestore: parse response: %w", err)
	}
	if parsed.Error.Message != "" {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: parsed.Error.Message}
	}
	return &parsed, nil
}
