// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/tfctl/awsctl/internal/log"
)

// Diff writes an ASCII diff of two JSON documents to w and reports whether
// they differ. Both documents must be JSON objects.
func Diff(w io.Writer, left, right []byte, color bool) (bool, error) {
	log.Debugf("diff: len(left)=%d, len(right)=%d", len(left), len(right))

	if len(left) == 0 || len(right) == 0 {
		return false, fmt.Errorf("nothing to compare: a response is empty")
	}

	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return false, fmt.Errorf("failed to compare responses: %w", err)
	}

	if !delta.Modified() {
		fmt.Fprintln(w, "The responses are identical.")
		return false, nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(left, &jdoc); err != nil {
		return true, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	f := formatter.NewAsciiFormatter(jdoc, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	})
	out, err := f.Format(delta)
	if err != nil {
		return true, err
	}

	fmt.Fprintln(w, out)
	return true, nil
}
