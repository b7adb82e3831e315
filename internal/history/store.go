// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package history

import (
	"encoding/json"
	"fmt"

	"github.com/tfctl/awsctl/internal/cacheutil"
)

var cacheSubdirs = []string{"history"}

const cacheKey = "entries"

// CacheStore keeps the log as one JSON document in the awsctl cache.
type CacheStore struct {
	Cache *cacheutil.Cache
}

// Load implements Store. A missing document is an empty log.
func (s CacheStore) Load() ([]Entry, error) {
	e, ok := s.Cache.Read(cacheSubdirs, cacheKey)
	if !ok || len(e.Data) == 0 {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal(e.Data, &entries); err != nil {
		return nil, fmt.Errorf("corrupt history at %s: %w", e.Path, err)
	}
	return entries, nil
}

// Save implements Store.
func (s CacheStore) Save(entries []Entry) error {
	if len(entries) == 0 {
		return s.Cache.Remove(cacheSubdirs, cacheKey)
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return s.Cache.Write(cacheSubdirs, cacheKey, b)
}
