package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Dosada05/maze-tournament/models"
)

const DefaultSnapshotKey = "snapshots/latest.json"

type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	ETag     string `json:"etag,omitempty"`
}

// FileUploader stores objects under a key and reports where they can be read.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	GetPublicURL(key string) string
}

// SnapshotMirror copies saved snapshots to object storage.
type SnapshotMirror struct {
	uploader FileUploader
	key      string
}

func NewSnapshotMirror(uploader FileUploader, key string) *SnapshotMirror {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &SnapshotMirror{uploader: uploader, key: key}
}

func (m *SnapshotMirror) Mirror(ctx context.Context, snapshot *models.Snapshot) (*UploadResult, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return m.uploader.Upload(ctx, m.key, "application/json", bytes.NewReader(data))
}

// URL returns the public location of the mirrored snapshot.
func (m *SnapshotMirror) URL() string {
	return m.uploader.GetPublicURL(m.key)
}
