package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// SnapshotPublisher uploads a JSON document describing a tournament's
// current schedule so static pages can render it without the API.
type SnapshotPublisher struct {
	uploader ObjectUploader
}

func NewSnapshotPublisher(uploader ObjectUploader) *SnapshotPublisher {
	return &SnapshotPublisher{uploader: uploader}
}

// snapshotCacheControl keeps CDN copies short-lived: snapshots are
// overwritten on every regeneration and refresh.
const snapshotCacheControl = "public, max-age=30, must-revalidate"

// SnapshotKey is the object key of a tournament's schedule snapshot.
func SnapshotKey(tournamentID int) string {
	return fmt.Sprintf("tournaments/%d/schedule.json", tournamentID)
}

// Publish encodes doc and overwrites the tournament's snapshot object.
func (p *SnapshotPublisher) Publish(ctx context.Context, tournamentID int, doc interface{}) (*UploadResult, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schedule snapshot for tournament %d: %w", tournamentID, err)
	}
	return p.uploader.Upload(ctx, Object{
		Key:          SnapshotKey(tournamentID),
		ContentType:  "application/json",
		CacheControl: snapshotCacheControl,
		Body:         bytes.NewReader(body),
	})
}
