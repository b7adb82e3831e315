// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package history

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/awsctl/internal/log"
)

// DefaultSize is the number of entries kept when history.size is unset.
const DefaultSize = 50

// Entry records one invocation.
type Entry struct {
	Time      time.Time       `json:"time"`
	Command   string          `json:"command"`
	Operation string          `json:"operation"`
	Params    map[string]any  `json:"params,omitempty"`
	Pages     int             `json:"pages"`
	Items     int             `json:"items"`
	Declined  bool            `json:"declined,omitempty"`
	Response  json.RawMessage `json:"response,omitempty"`
	Err       string          `json:"error,omitempty"`
}

// Store persists a Log between sessions.
type Store interface {
	Load() ([]Entry, error)
	Save([]Entry) error
}

// Log is a bounded, oldest-first list of entries.
type Log struct {
	max     int
	entries []Entry
	store   Store
}

// New returns an in-memory Log keeping at most size entries.
func New(size int) *Log {
	if size <= 0 {
		size = DefaultSize
	}
	return &Log{max: size}
}

// Open returns a Log seeded from store. Entries appended later are saved back
// to it.
func Open(size int, store Store) (*Log, error) {
	l := New(size)
	if store == nil {
		return l, nil
	}
	entries, err := store.Load()
	if err != nil {
		return l, fmt.Errorf("failed to load history: %w", err)
	}
	l.store = store
	l.entries = entries
	l.trim()
	return l, nil
}

// Append adds e and saves the log when it is persistent. A failed save is
// logged and does not fail the invocation that produced e.
func (l *Log) Append(e Entry) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	l.entries = append(l.entries, e)
	l.trim()

	if l.store != nil {
		if err := l.store.Save(l.entries); err != nil {
			log.WithError(err).Warnf("failed to save history")
		}
	}
}

// Entries returns the entries, oldest first.
func (l *Log) Entries() []Entry {
	return slices.Clone(l.entries)
}

// Last returns the most recent entry.
func (l *Log) Last() (Entry, bool) {
	return l.Get(1)
}

// Get returns the n-th most recent entry, counting from 1.
func (l *Log) Get(n int) (Entry, bool) {
	if n < 1 || n > len(l.entries) {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-n], true
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Clear drops every entry.
func (l *Log) Clear() error {
	l.entries = nil
	if l.store != nil {
		return l.store.Save(nil)
	}
	return nil
}

// Rows renders the entries newest first for tabular output. The "n" column is
// the index accepted by Get.
func (l *Log) Rows(now time.Time) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(l.entries))
	for n := 1; n <= len(l.entries); n++ {
		e, _ := l.Get(n)
		status := "ok"
		switch {
		case e.Err != "":
			status = "error"
		case e.Declined:
			status = "declined"
		}
		rows = append(rows, map[string]interface{}{
			"n":       float64(n),
			"when":    humanize.RelTime(e.Time, now, "ago", "from now"),
			"command": e.Command,
			"pages":   float64(e.Pages),
			"items":   float64(e.Items),
			"status":  status,
		})
	}
	return rows
}

func (l *Log) trim() {
	if over := len(l.entries) - l.max; over > 0 {
		l.entries = slices.Clone(l.entries[over:])
	}
}
