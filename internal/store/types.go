package store

import "fmt"

type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

type authorizeResponse struct {
	AccountID          string `json:"accountId"`
	APIURL             string `json:"apiUrl"`
	AuthorizationToken string `json:"authorizationToken"`
}

type listBucketsRequest struct {
	AccountID  string `json:"accountId"`
	BucketName string `json:"bucketName"`
}

type listBucketsResponse struct {
	Buckets []bucket `json:"buckets"`
}

type bucket struct {
	BucketID   string `json:"bucketId"`
	BucketName string `json:"bucketName"`
}

type listFileNamesRequest struct {
	BucketID      string `json:"bucketId"`
	StartFileName string `json:"startFileName,omitempty"`
	MaxFileCount  int    `json:"maxFileCount,omitempty"`
	Prefix        string `json:"prefix,omitempty"`
}

type listFileNamesResponse struct {
	Files []storedFile `json:"files"`
}

type storedFile struct {
	FileName string `json:"fileName"`
}

type getUploadURLRequest struct {
	BucketID string `json:"bucketId"`
}

type getUploadURLResponse struct {
	UploadURL          string `json:"uploadUrl"`
	AuthorizationToken string `json:"authorizationToken"`
}
