package selection

import (
	"slices"

	"github.com/dshills/selkit/internal/failure"
)

// WithDesc pairs a selection's content with its descriptor.
type WithDesc struct {
	Content string
	Desc    Desc
}

// Reconcile pairs document-order contents with primary-anchored descriptors.
//
// The smallest normalized descriptor is the first selection in document order.
// Its index i in descs is how far the editor rotated the list, so contents is
// rotated right by i before zipping. The result is in primary-anchored order.
func Reconcile(contents []string, descs []Desc) ([]WithDesc, error) {
	if len(contents) != len(descs) {
		return nil, failure.Consistency("reconcile",
			"selection count mismatch: %d contents, %d descriptors", len(contents), len(descs)).
			WithDetail("contents=%q descs=%v", contents, descs)
	}
	n := len(descs)
	if n == 0 {
		return nil, nil
	}

	spans := Spans(descs)
	first := slices.MinFunc(spans, Span.Compare)
	i := slices.Index(spans, first)
	if i < 0 {
		return nil, failure.Consistency("reconcile", "primary descriptor not found").
			WithDetail("min=%v descs=%v", first, descs)
	}

	out := make([]WithDesc, n)
	for k, content := range contents {
		j := (k + i) % n
		out[j].Content = content
	}
	for k, d := range descs {
		out[k].Desc = d
	}
	return out, nil
}

// DocumentOrder returns a copy of items sorted by normalized descriptor.
func DocumentOrder(items []WithDesc) []WithDesc {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b WithDesc) int {
		return a.Desc.Sort().Compare(b.Desc.Sort())
	})
	return out
}

// ReconcileDocumentOrder reconciles and sorts into document order.
func ReconcileDocumentOrder(contents []string, descs []Desc) ([]WithDesc, error) {
	items, err := Reconcile(contents, descs)
	if err != nil {
		return nil, err
	}
	return DocumentOrder(items), nil
}

// SortedSpans normalizes descs and sorts them in document order.
func SortedSpans(descs []Desc) []Span {
	spans := Spans(descs)
	SortSpans(spans)
	return spans
}
