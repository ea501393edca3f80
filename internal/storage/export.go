package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/feedbackwall/feedback-service/internal/feedback"
)

// ObjectStore is the subset of MinIOStorage used by Exporter.
type ObjectStore interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// Lister returns the current feedback list.
type Lister interface {
	List(ctx context.Context) ([]feedback.Record, error)
}

// Snapshot is the exported document.
type Snapshot struct {
	ExportedAt time.Time         `json:"exportedAt"`
	Count      int               `json:"count"`
	Items      []feedback.Record `json:"items"`
}

// ExportResult describes an uploaded snapshot.
type ExportResult struct {
	Key   string
	Count int
	URL   string
}

// Exporter writes JSON snapshots of the feedback list to object storage.
type Exporter struct {
	src    Lister
	dst    ObjectStore
	prefix string
	now    func() time.Time
}

func NewExporter(src Lister, dst ObjectStore, prefix string) *Exporter {
	if prefix == "" {
		prefix = "exports/"
	}
	return &Exporter{src: src, dst: dst, prefix: prefix, now: func() time.Time { return time.Now().UTC() }}
}

// Export uploads one snapshot and returns its key and a presigned link valid
// for linkTTL. A zero linkTTL skips the link.
func (e *Exporter) Export(ctx context.Context, linkTTL time.Duration) (*ExportResult, error) {
	items, err := e.src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	if items == nil {
		items = []feedback.Record{}
	}
	ts := e.now()
	b, err := json.MarshalIndent(Snapshot{ExportedAt: ts, Count: len(items), Items: items}, "", "  ")
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%sfeedback-%s.json", e.prefix, ts.Format("20060102T150405Z"))
	if err := e.dst.UploadFile(ctx, key, bytes.NewReader(b), int64(len(b)), "application/json"); err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}
	res := &ExportResult{Key: key, Count: len(items)}
	if linkTTL > 0 {
		u, err := e.dst.GetPresignedURL(ctx, key, linkTTL)
		if err != nil {
			return nil, fmt.Errorf("presign %s: %w", key, err)
		}
		res.URL = u
	}
	return res, nil
}
