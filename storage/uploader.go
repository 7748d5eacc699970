package storage

import (
	"context"
	"io"
)

// Object is one upload: a key in the bucket, its body and the HTTP headers
// public readers receive with it. Empty header fields are left to the store.
type Object struct {
	Key          string
	ContentType  string
	CacheControl string
	Body         io.Reader
}

// UploadResult describes a stored object. Location is empty when the store
// has no public address for it.
type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location,omitempty"`
	ETag     string `json:"etag,omitempty"`
}

type ObjectUploader interface {
	Upload(ctx context.Context, obj Object) (*UploadResult, error)
}
