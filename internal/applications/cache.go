package applications

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// CachePayload is the on-disk mirror format. The front-end reads the
// same file, so the shape is part of the contract.
type CachePayload struct {
	Data        []Record  `json:"data"`
	LastUpdated time.Time `json:"lastUpdated"`
	RecordCount int       `json:"recordCount"`
}

// CacheMirror persists application records to a local JSON file.
type CacheMirror interface {
	Load() (*CachePayload, error)
	Save(records []Record) error
}

type fileCache struct {
	path string
}

func NewFileCache(path string) CacheMirror {
	return &fileCache{path: path}
}

func (c *fileCache) Load() (*CachePayload, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	var payload CachePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	return &payload, nil
}

func (c *fileCache) Save(records []Record) error {
	payload := CachePayload{
		Data:        records,
		LastUpdated: time.Now().UTC(),
		RecordCount: len(records),
	}
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache payload: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}
