package algebra

import (
	"fmt"
	"strings"

	"github.com/dshills/selkit/internal/engine/keys"
	"github.com/dshills/selkit/internal/failure"
)

// LookupTable maps keys to values. Keys are compared with surrounding
// whitespace trimmed on both sides.
type LookupTable struct {
	values map[uint64]string
}

// NewLookupTable builds a table from a flat k1 v1 k2 v2 ... list.
// An odd-length list, a duplicate key or an empty list is a usage error.
func NewLookupTable(entries []string) (*LookupTable, error) {
	if len(entries)%2 != 0 {
		return nil, failure.Usage("xlookup", "odd number of selections").
			WithDetail("%d entries in lookup register", len(entries))
	}
	if len(entries) == 0 {
		return nil, failure.Usage("xlookup", "no selections")
	}

	t := &LookupTable{values: make(map[uint64]string, len(entries)/2)}
	for i := 0; i < len(entries); i += 2 {
		h := lookupHash(entries[i])
		if _, dup := t.values[h]; dup {
			return nil, failure.Usage("xlookup", "duplicate key '%s'", entries[i])
		}
		t.values[h] = entries[i+1]
	}
	return t, nil
}

// Len returns the number of keys.
func (t *LookupTable) Len() int {
	return len(t.values)
}

// Get returns the value for key.
func (t *LookupTable) Get(key string) (string, bool) {
	v, ok := t.values[lookupHash(key)]
	return v, ok
}

func lookupHash(key string) uint64 {
	return keys.Hash(strings.TrimSpace(key))
}

// LookupResult is the outcome of LookupTable.Replace.
type LookupResult struct {
	Contents []string
	Missing  []string
}

// Replace maps each content to its value. Missing keys map to "".
func (t *LookupTable) Replace(contents []string) LookupResult {
	res := LookupResult{Contents: make([]string, len(contents))}
	for i, c := range contents {
		v, ok := t.Get(c)
		if !ok {
			res.Missing = append(res.Missing, c)
			continue
		}
		res.Contents[i] = v
	}
	return res
}

// Summary returns the status line, counting missing keys as errors.
func (r LookupResult) Summary() string {
	n := len(r.Contents)
	errs := len(r.Missing)
	switch errs {
	case 0:
		return fmt.Sprintf("Xlookup %d selections", n)
	case 1:
		return fmt.Sprintf("Xlookup %d selections (1 error)", n-errs)
	}
	return fmt.Sprintf("Xlookup %d selections (%d errors)", n-errs, errs)
}
