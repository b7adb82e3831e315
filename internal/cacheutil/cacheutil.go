// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/awsctl/internal/log"
)

// Entry represents a cached artifact on disk.
// Key is the clear-text key; EncodedKey is the hashed filename.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
}

// Cache is a directory of hashed-key files.
type Cache struct {
	Base string
}

// Dir resolves the base cache directory.
// Precedence:
//  1. AWSCTL_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/awsctl
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("AWSCTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "awsctl"), true
	}
	return "", false
}

// Enabled returns true unless AWSCTL_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	v := os.Getenv("AWSCTL_CACHE")
	return v != "0" && v != "false"
}

// Open returns the cache rooted at Dir, creating the directory. It returns
// nil, false, nil when caching is disabled or no directory can be resolved.
func Open() (*Cache, bool, error) {
	if !Enabled() {
		return nil, false, nil
	}
	base, ok := Dir()
	if !ok {
		return nil, false, nil
	}
	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return nil, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	log.Debugf("cache dir ready: path=%s", base)
	return &Cache{Base: base}, true, nil
}

// Path returns where key would live beneath subdirs and whether a file exists
// there.
func (c *Cache) Path(subdirs []string, key string) (string, bool) {
	p := filepath.Join(append(append([]string{c.Base}, subdirs...), encodeKey(key))...)
	_, err := os.Stat(p)
	return p, err == nil
}

// Read returns the entry for key, if present.
func (c *Cache) Read(subdirs []string, key string) (*Entry, bool) {
	p, ok := c.Path(subdirs, key)
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		log.Debugf("cache read err: key=%s, err=%v", key, err)
		return nil, false
	}
	log.Debugf("cache hit: key=%s", key)
	return &Entry{
		Key:        key,
		EncodedKey: encodeKey(key),
		Path:       p,
		Data:       bytes.TrimSpace(b),
	}, true
}

// Write stores data for key beneath subdirs, creating directories as needed.
// The data goes to a temporary file in the same directory that is then
// renamed over the entry, so readers see the old or the new content.
func (c *Cache) Write(subdirs []string, key string, data []byte) error {
	dir := filepath.Join(append([]string{c.Base}, subdirs...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	p := filepath.Join(dir, encodeKey(key))

	tmp, err := os.CreateTemp(dir, encodeKey(key)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), p)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Debugf("cache write: key=%s, bytes=%d", key, len(data))
	return nil
}

// Remove deletes the entry for key. A missing entry is not an error.
func (c *Cache) Remove(subdirs []string, key string) error {
	p, _ := c.Path(subdirs, key)
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove cache entry: %w", err)
	}
	return nil
}

// Purge removes files older than maxAge. A non-positive maxAge is a no-op.
func (c *Cache) Purge(maxAge time.Duration) error {
	if maxAge <= 0 {
		return nil
	}

	err := filepath.WalkDir(c.Base, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err != nil {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			} else {
				log.Debugf("removed cache file %s", path)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// encodeKey returns the hex sha256 of input.
func encodeKey(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}
