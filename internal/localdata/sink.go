package localdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Sink stores one received payload under a file name.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
	// Kind labels the sink in logs and metrics ("disk", "minio").
	Kind() string
}

// DiskSink writes payloads as files in a directory.
type DiskSink struct {
	dir string
}

// NewDiskSink returns a sink rooted at dir, creating the directory if needed.
func NewDiskSink(dir string) (*DiskSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &DiskSink{dir: dir}, nil
}

func (d *DiskSink) Put(_ context.Context, name string, data []byte) error {
	return os.WriteFile(filepath.Join(d.dir, name), data, 0o644)
}

func (d *DiskSink) Kind() string { return "disk" }

// Receiver names and serializes received payloads before handing them to a Sink.
type Receiver struct {
	sink Sink
	now  func() time.Time
}

func NewReceiver(sink Sink) *Receiver {
	return &Receiver{sink: sink, now: time.Now}
}

// Sink exposes the configured sink.
func (r *Receiver) Sink() Sink { return r.sink }

// FileName is received-<epoch ms>.json. Two payloads in the same millisecond
// share a name and the later one wins.
func FileName(t time.Time) string {
	return fmt.Sprintf("received-%d.json", t.UnixMilli())
}

// Save writes payload with two-space indentation and returns the file name used.
func (r *Receiver) Save(ctx context.Context, payload interface{}) (string, error) {
	data, err := encodeIndented(payload)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	name := FileName(r.now())
	if err := r.sink.Put(ctx, name, data); err != nil {
		return "", err
	}
	return name, nil
}

func encodeIndented(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
