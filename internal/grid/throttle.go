// Implements write pacing for quota-limited backing stores.

package grid

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttled wraps a Store and paces mutating calls with a token bucket.
//
// Hosted spreadsheet APIs enforce per-minute write quotas; wrapping the store
// keeps the tabular layer oblivious to pacing. Reads pass through unchanged.
type Throttled struct {
	store   Store
	limiter *rate.Limiter
}

// NewThrottled returns a store allowing writesPerSecond mutating calls with
// the given burst capacity.
func NewThrottled(s Store, writesPerSecond float64, burst int) *Throttled {
	return &Throttled{
		store:   s,
		limiter: rate.NewLimiter(rate.Limit(writesPerSecond), burst),
	}
}

func (t *Throttled) wait() error {
	return t.limiter.Wait(context.Background())
}

// ReadBlock implements [Store].
func (t *Throttled) ReadBlock(r Region) (*Block, error) {
	return t.store.ReadBlock(r)
}

// WriteValues implements [Store].
func (t *Throttled) WriteValues(r Region, data [][]any) error {
	if err := t.wait(); err != nil {
		return err
	}
	return t.store.WriteValues(r, data)
}

// WriteNotes implements [Store].
func (t *Throttled) WriteNotes(r Region, data [][]string) error {
	if err := t.wait(); err != nil {
		return err
	}
	return t.store.WriteNotes(r, data)
}

// WriteBackgrounds implements [Store].
func (t *Throttled) WriteBackgrounds(r Region, data [][]string) error {
	if err := t.wait(); err != nil {
		return err
	}
	return t.store.WriteBackgrounds(r, data)
}

// WriteFontColors implements [Store].
func (t *Throttled) WriteFontColors(r Region, data [][]string) error {
	if err := t.wait(); err != nil {
		return err
	}
	return t.store.WriteFontColors(r, data)
}

// WriteWraps implements [Store].
func (t *Throttled) WriteWraps(r Region, data [][]bool) error {
	if err := t.wait(); err != nil {
		return err
	}
	return t.store.WriteWraps(r, data)
}

// ClearRegion implements [Store].
func (t *Throttled) ClearRegion(r Region) error {
	if err := t.wait(); err != nil {
		return err
	}
	return t.store.ClearRegion(r)
}

// SheetExtent implements [Store].
func (t *Throttled) SheetExtent(sheet string) (rows, cols int, err error) {
	return t.store.SheetExtent(sheet)
}

// Resolve implements [Store].
func (t *Throttled) Resolve(name string) (Region, error) {
	return t.store.Resolve(name)
}
