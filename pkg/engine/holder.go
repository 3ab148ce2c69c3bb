package engine

import (
	"errors"
	"sync/atomic"
)

// Holder serves queries from the current Engine and lets a reload swap in a
// new one. Queries already running keep the Engine they started with.
type Holder struct {
	current atomic.Pointer[Engine]
}

// NewHolder returns a Holder serving e.
func NewHolder(e *Engine) *Holder {
	h := &Holder{}
	h.current.Store(e)
	return h
}

// Engine returns the Engine currently served.
func (h *Holder) Engine() *Engine {
	return h.current.Load()
}

// Swap replaces the served Engine. A nil Engine is rejected.
func (h *Holder) Swap(e *Engine) error {
	if e == nil {
		return errors.New("engine: swap with nil engine")
	}
	h.current.Store(e)
	return nil
}

// Reload builds a new Engine and swaps it in. On error the current Engine stays.
func (h *Holder) Reload(build func() (*Engine, error)) error {
	e, err := build()
	if err != nil {
		return err
	}
	return h.Swap(e)
}

func (h *Holder) Normalize(input string) string { return h.Engine().Normalize(input) }

func (h *Holder) NormalizeDetailed(input string) (MatchResult, bool) {
	return h.Engine().NormalizeDetailed(input)
}

func (h *Holder) Rank(input string, limit int) []Candidate { return h.Engine().Rank(input, limit) }

func (h *Holder) Titles() []string { return h.Engine().Titles() }

func (h *Holder) Prefixes() []string { return h.Engine().Prefixes() }

func (h *Holder) Threshold() float64 { return h.Engine().Threshold() }
