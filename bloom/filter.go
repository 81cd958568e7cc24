// Package bloom provides probabilistic URL deduplication for batch
// extraction runs.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks URLs already queued for extraction. False positives are
// possible (a new URL may be skipped); false negatives are not.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen reports whether the URL has (probably) been added before, and adds
// it. Returns false exactly once per distinct URL, modulo false positives.
func (f *Filter) Seen(url string) bool {
	if f.f.TestString(url) {
		return true
	}
	f.f.AddString(url)
	return false
}

// EstimatedCount returns the approximate number of URLs added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
