// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package paginator

import (
	"context"
	"errors"
	"fmt"

	"github.com/tfctl/awsctl/internal/log"
)

// Unbounded disables the item budget.
const Unbounded = -1

// Phase is the position of a pagination run in its state machine.
type Phase int

const (
	Start Phase = iota
	Fetching
	HasMore
	Exhausted
)

func (p Phase) String() string {
	switch p {
	case Start:
		return "start"
	case Fetching:
		return "fetching"
	case HasMore:
		return "has-more"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Options are the caller's pagination choices.
type Options struct {
	// AutoIterate follows continuation tokens until the listing or the budget
	// runs out. When false exactly one page is fetched.
	AutoIterate bool
	// Budget is the maximum number of items to emit, or Unbounded.
	Budget int
	// Token resumes a listing from a continuation token.
	Token *string
}

// DefaultOptions iterates automatically with no budget.
func DefaultOptions() Options {
	return Options{AutoIterate: true, Budget: Unbounded}
}

// Bounded reports whether an item budget is in effect.
func (o Options) Bounded() bool {
	return o.Budget != Unbounded
}

// Pager binds the token and page-size fields of one operation's request and
// response records.
type Pager[In, Out any] struct {
	Token    func(*Out) *string
	SetToken func(*In, *string)
	Count    func(*Out) int
	// SetLimit, when set, caps the request page size to the remaining budget.
	SetLimit func(*In, int32)
	// MinLimit and MaxLimit clamp the page size the service accepts. Zero
	// means no clamp.
	MinLimit int32
	MaxLimit int32
}

// State is the progress of one pagination run.
type State struct {
	Phase Phase
	// Token is the next continuation token. It is non-nil after the run only
	// when more items remain on the service side.
	Token     *string
	Remaining int
	Pages     int
	Emitted   int
}

// ErrRepeatedToken is returned when a service hands back the token it was
// just given.
var ErrRepeatedToken = errors.New("service returned the same continuation token")

// Run fetches pages of in until the listing is exhausted, the budget is spent
// or, in manual mode, after the first page. Each page is passed to emit in
// order. An error on a later page is swallowed when a bounded budget has
// already emitted items; every other error is returned.
func Run[In, Out any](
	ctx context.Context,
	opts Options,
	in *In,
	pager Pager[In, Out],
	fetch func(context.Context, *In) (*Out, error),
	emit func(*Out) error,
) (State, error) {
	st := State{Phase: Start, Token: nonEmpty(opts.Token), Remaining: opts.Budget}

	if opts.Bounded() && st.Remaining <= 0 {
		st.Phase = Exhausted
		return st, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}

		st.Phase = Fetching
		sent := st.Token
		pager.SetToken(in, sent)
		if pager.SetLimit != nil && opts.Bounded() {
			pager.SetLimit(in, pager.clamp(st.Remaining))
		}

		out, err := fetch(ctx, in)
		if err != nil {
			if st.Emitted > 0 && opts.Bounded() && ctx.Err() == nil {
				log.Warnf("stopping after page %d with %d items: %v", st.Pages, st.Emitted, err)
				st.Phase = Exhausted
				return st, nil
			}
			return st, err
		}
		st.Pages++

		if err := emit(out); err != nil {
			return st, err
		}

		n := pager.Count(out)
		st.Emitted += n
		if opts.Bounded() {
			st.Remaining = max(st.Remaining-n, 0)
		}
		st.Token = nonEmpty(pager.Token(out))
		log.Debugf("page fetched: page=%d, items=%d, emitted=%d, more=%t",
			st.Pages, n, st.Emitted, st.Token != nil)

		switch {
		case st.Token == nil:
			st.Phase = Exhausted
			return st, nil
		case sent != nil && *sent == *st.Token:
			st.Phase = Exhausted
			return st, ErrRepeatedToken
		case !opts.AutoIterate:
			log.Infof("more items available: next-token=%s", *st.Token)
			st.Phase = Exhausted
			return st, nil
		case opts.Bounded() && st.Remaining == 0:
			st.Phase = Exhausted
			return st, nil
		}

		st.Phase = HasMore
	}
}

func (p Pager[In, Out]) clamp(remaining int) int32 {
	limit := int32(min(remaining, 1<<31-1))
	if p.MaxLimit > 0 && limit > p.MaxLimit {
		limit = p.MaxLimit
	}
	if p.MinLimit > 0 && limit < p.MinLimit {
		limit = p.MinLimit
	}
	return limit
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
