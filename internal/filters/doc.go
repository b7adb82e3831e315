// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters applies --filter expressions to projected rows on the
// client side.
//
// A filter is key, operator and target, e.g. "State.Name=running". Filters
// are separated by commas, or by $AWSCTL_FILTER_DELIM when targets contain
// commas. Every filter must match for a row to be kept.
//
// Operators, each negated by a leading !:
//
//   - = : equal (numeric when both sides are numbers)
//   - ~ : equal ignoring case
//   - ^ : prefix
//   - < and > : less and greater than
//   - @ : substring, or membership for lists and maps
//   - / : regular expression
//
// Keys name a column by its output key. A key that is not a column is read
// directly from the row as a dot path.
package filters
