package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/feedbackwall/feedback-service/internal/feedback"
	"github.com/stretchr/testify/require"
)

type memObjects struct {
	objects map[string][]byte
	types   map[string]string
	failPut error
}

func (m *memObjects) UploadFile(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if m.failPut != nil {
		return m.failPut
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if int64(len(b)) != size {
		return errors.New("size mismatch")
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
		m.types = map[string]string{}
	}
	m.objects[key] = b
	m.types[key] = contentType
	return nil
}

func (m *memObjects) GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "https://objects.local/" + key, nil
}

type staticLister struct {
	items []feedback.Record
	err   error
}

func (s staticLister) List(context.Context) ([]feedback.Record, error) { return s.items, s.err }

func TestExporterUploadsSnapshot(t *testing.T) {
	dst := &memObjects{}
	items := []feedback.Record{{ID: "b", Name: "Bob"}, {ID: "a", Name: "Ada"}}
	e := NewExporter(staticLister{items: items}, dst, "")
	e.now = func() time.Time { return time.Date(2024, 3, 9, 10, 11, 12, 0, time.UTC) }

	res, err := e.Export(context.Background(), time.Hour)
	require.NoError(t, err)
	require.Equal(t, "exports/feedback-20240309T101112Z.json", res.Key)
	require.Equal(t, 2, res.Count)
	require.Equal(t, "https://objects.local/"+res.Key, res.URL)
	require.Equal(t, "application/json", dst.types[res.Key])

	var snap Snapshot
	require.NoError(t, json.Unmarshal(dst.objects[res.Key], &snap))
	require.Equal(t, 2, snap.Count)
	require.Equal(t, "Bob", snap.Items[0].Name)
}

func TestExporterWithoutLink(t *testing.T) {
	dst := &memObjects{}
	res, err := NewExporter(staticLister{}, dst, "backup/").Export(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, res.URL)
	require.Contains(t, res.Key, "backup/feedback-")

	var snap Snapshot
	require.NoError(t, json.Unmarshal(dst.objects[res.Key], &snap))
	require.NotNil(t, snap.Items)
	require.Zero(t, snap.Count)
}

func TestExporterErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewExporter(staticLister{err: boom}, &memObjects{}, "").Export(context.Background(), 0)
	require.ErrorIs(t, err, boom)

	_, err = NewExporter(staticLister{}, &memObjects{failPut: boom}, "").Export(context.Background(), 0)
	require.ErrorIs(t, err, boom)
}

func TestMinIOConfigValidate(t *testing.T) {
	require.Error(t, (*MinIOConfig)(nil).Validate())
	require.Error(t, (&MinIOConfig{Bucket: "b"}).Validate())
	require.Error(t, (&MinIOConfig{Endpoint: "localhost:9000"}).Validate())
	require.NoError(t, (&MinIOConfig{Endpoint: "localhost:9000", Bucket: "feedback"}).Validate())
}
