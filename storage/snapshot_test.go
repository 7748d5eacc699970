package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type MockObjectUploader struct {
	UploadFunc func(ctx context.Context, obj Object) (*UploadResult, error)
}

func (m *MockObjectUploader) Upload(ctx context.Context, obj Object) (*UploadResult, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, obj)
	}
	return nil, errors.New("not implemented")
}

func TestSnapshotPublisher_Publish(t *testing.T) {
	var (
		gotKey   string
		gotType  string
		gotCache string
		gotBody  map[string]int
	)
	uploader := &MockObjectUploader{
		UploadFunc: func(ctx context.Context, obj Object) (*UploadResult, error) {
			gotKey, gotType, gotCache = obj.Key, obj.ContentType, obj.CacheControl
			if err := json.NewDecoder(obj.Body).Decode(&gotBody); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			return &UploadResult{Key: obj.Key, Location: PublicURL("https://cdn.example.com", obj.Key)}, nil
		},
	}

	result, err := NewSnapshotPublisher(uploader).Publish(context.Background(), 7, map[string]int{"entries": 16})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "tournaments/7/schedule.json" || gotType != "application/json" {
		t.Errorf("uploaded %q as %q", gotKey, gotType)
	}
	if gotCache != snapshotCacheControl {
		t.Errorf("unexpected cache control %q", gotCache)
	}
	if gotBody["entries"] != 16 {
		t.Errorf("unexpected body %v", gotBody)
	}
	if result.Location != "https://cdn.example.com/tournaments/7/schedule.json" {
		t.Errorf("unexpected location %q", result.Location)
	}
}

func TestSnapshotPublisher_EncodeError(t *testing.T) {
	called := false
	uploader := &MockObjectUploader{
		UploadFunc: func(ctx context.Context, obj Object) (*UploadResult, error) {
			called = true
			return nil, nil
		},
	}
	if _, err := NewSnapshotPublisher(uploader).Publish(context.Background(), 1, make(chan int)); err == nil {
		t.Error("expected an encoding error")
	}
	if called {
		t.Error("nothing should be uploaded when encoding fails")
	}
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		base, key, want string
	}{
		{base: "https://cdn.example.com", key: "a/b.json", want: "https://cdn.example.com/a/b.json"},
		{base: "https://cdn.example.com/", key: "/a/b.json", want: "https://cdn.example.com/a/b.json"},
		{base: "https://cdn.example.com/public", key: "x.json", want: "https://cdn.example.com/public/x.json"},
		{base: "", key: "x.json", want: ""},
		{base: "https://cdn.example.com", key: "", want: ""},
	}
	for _, tt := range tests {
		if got := PublicURL(tt.base, tt.key); got != tt.want {
			t.Errorf("PublicURL(%q, %q) = %q, want %q", tt.base, tt.key, got, tt.want)
		}
	}
}

func TestNewCloudflareR2Uploader_RequiresAllFields(t *testing.T) {
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc", BucketName: "b"})
	if err == nil {
		t.Error("expected an error for incomplete configuration")
	}
}
