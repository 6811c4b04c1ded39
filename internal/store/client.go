// Package store uploads finished reports to a B2-compatible object store.
// The client authorizes lazily on first use and keeps the session for the
// rest of the run.
package store

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shaz1409/maturity-auto/internal/config"
)

type Client struct {
	baseURL    string
	bucketName string
	keyID      string
	key        string
	httpClient *http.Client
	logger     *zap.SugaredLogger

	mu      sync.Mutex
	session *session
}

// session is the state handed out by a successful authorization.
type session struct {
	accountID string
	apiURL    string
	token     string
	bucketID  string
}

func NewClient(cfg *config.Config, logger *zap.SugaredLogger) (*Client, error) {
	keyID, key := cfg.Store.Credentials()
	if cfg.Store.URL == "" || cfg.Store.Bucket == "" || keyID == "" || key == "" {
		return nil, fmt.Errorf("STORE_URL, STORE_BUCKET and credentials for STORE_AUTH_MODE=%s are required", cfg.Store.AuthMode)
	}

	return &Client{
		baseURL:    cfg.Store.URL,
		bucketName: cfg.Store.Bucket,
		keyID:      keyID,
		key:        key,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.App.HttpTimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

// Exists reports whether a file with exactly this name is already in the
// bucket.
func (c *Client) Exists(name string) (bool, error) {
	s, err := c.ensureSession()
	if err != nil {
		return false, err
	}

	var listing listFileNamesResponse
	payload := listFileNamesRequest{
		BucketID:      s.bucketID,
		StartFileName: name,
		MaxFileCount:  1,
		Prefix:        name,
	}
	if err := c.apiCall(s, "b2_list_file_names", payload, &listing); err != nil {
		return false, fmt.Errorf("failed to list files: %w", err)
	}

	for _, f := range listing.Files {
		if f.FileName == name {
			return true, nil
		}
	}
	return false, nil
}

// Upload stores data under name, requesting a fresh upload URL first.
func (c *Client) Upload(name string, data []byte) error {
	s, err := c.ensureSession()
	if err != nil {
		return err
	}

	var target getUploadURLResponse
	if err := c.apiCall(s, "b2_get_upload_url", getUploadURLRequest{BucketID: s.bucketID}, &target); err != nil {
		return fmt.Errorf("failed to get upload URL: %w", err)
	}

	sum := sha1.Sum(data)

	req, err := http.NewRequest("POST", target.UploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", target.AuthorizationToken)
	req.Header.Set("X-Bz-File-Name", url.PathEscape(name))
	req.Header.Set("X-Bz-Content-Sha1", hex.EncodeToString(sum[:]))
	req.Header.Set("Content-Type", "b2/x-auto")

	c.logger.Debugf("Uploading %s (%d bytes) to bucket %s", name, len(data), c.bucketName)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return handleAPIError(resp)
	}

	c.logger.Infof("Uploaded %s to bucket %s", name, c.bucketName)
	return nil
}

// ensureSession authorizes against the store and resolves the bucket id. The
// session is established once and reused for every later call.
func (c *Client) ensureSession() (*session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		return c.session, nil
	}

	req, err := http.NewRequest("GET", c.baseURL+"/b2api/v2/b2_authorize_account", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.key)

	c.logger.Debugf("Authorizing against store at %s", c.baseURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, handleAPIError(resp)
	}

	var auth authorizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, fmt.Errorf("failed to decode authorize response: %w", err)
	}

	s := &session{accountID: auth.AccountID, apiURL: auth.APIURL, token: auth.AuthorizationToken}
	if err := c.resolveBucket(s); err != nil {
		return nil, err
	}

	c.session = s
	return s, nil
}

func (c *Client) resolveBucket(s *session) error {
	var listing listBucketsResponse
	payload := listBucketsRequest{AccountID: s.accountID, BucketName: c.bucketName}
	if err := c.apiCall(s, "b2_list_buckets", payload, &listing); err != nil {
		return fmt.Errorf("failed to list buckets: %w", err)
	}

	for _, b := range listing.Buckets {
		if b.BucketName == c.bucketName {
			s.bucketID = b.BucketID
			return nil
		}
	}
	return fmt.Errorf("bucket %q not found in store", c.bucketName)
}

// apiCall posts a JSON payload to an authorized API endpoint and decodes the
// JSON reply into out.
func (c *Client) apiCall(s *session, operation string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/b2api/v2/%s", s.apiURL, operation), bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return handleAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	return nil
}

func handleAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
		Body:       string(body),
	}
}
