package algebra

import (
	"github.com/dshills/selkit/internal/engine/keys"
	"github.com/dshills/selkit/internal/engine/selection"
)

// DedupResult is the outcome of Dedup.
type DedupResult struct {
	// Contents holds the new content per item; duplicates are emptied.
	Contents []string
	// Keep marks the items that survive.
	Keep []bool
	// Kept is the number of true entries in Keep.
	Kept int
	// Errors counts items whose key could not be computed. They are kept.
	Errors int
}

// Dedup keeps the first occurrence of each key among items, which must be
// in document order. Items with an empty key are kept and not tracked.
func Dedup(items []selection.WithDesc, kf *keys.Func) DedupResult {
	res := DedupResult{
		Contents: make([]string, len(items)),
		Keep:     make([]bool, len(items)),
	}
	seen := make(map[uint64]struct{}, len(items))

	for i, item := range items {
		key, err := kf.Key(item.Content)
		if err != nil {
			res.Errors++
		}
		if key != "" {
			h := keys.Hash(key)
			if _, dup := seen[h]; dup {
				continue
			}
			seen[h] = struct{}{}
		}
		res.Contents[i] = item.Content
		res.Keep[i] = true
		res.Kept++
	}
	return res
}

// Select returns the spans at positions marked in keep. spans and keep
// must be the same length.
func Select(spans []selection.Span, keep []bool) []selection.Span {
	var out []selection.Span
	for i, s := range spans {
		if i < len(keep) && keep[i] {
			out = append(out, s)
		}
	}
	return out
}
