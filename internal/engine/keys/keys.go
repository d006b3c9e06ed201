// Package keys implements the content-to-key transform shared by the
// deduplication and set-algebra commands.
//
// A key is derived from a selection's content in four steps, each optional:
//
//  1. Trim leading and trailing whitespace.
//  2. Extract with a pattern: the first capturing group, or the whole match
//     when the pattern has no group. No match yields the empty key.
//  3. Pass through a user script's key(s) function.
//  4. Lowercase.
//
// The empty key marks a selection as excluded from keyed operations.
package keys

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/selkit/internal/failure"
)

// DefaultMatchTimeout bounds a single pattern evaluation.
const DefaultMatchTimeout = time.Second

// Scripter transforms a key with user code.
type Scripter interface {
	Key(s string) (string, error)
}

// Options configures a key function.
type Options struct {
	Trim       bool
	Pattern    string
	IgnoreCase bool
	Script     Scripter

	// MatchTimeout bounds pattern evaluation; zero uses DefaultMatchTimeout.
	MatchTimeout time.Duration
}

// Func derives comparison keys from selection content.
type Func struct {
	trim   bool
	re     *regexp2.Regexp
	lower  cases.Caser
	fold   bool
	script Scripter
}

// New compiles a key function. An invalid pattern is a usage error.
func New(opts Options) (*Func, error) {
	f := &Func{
		trim:   opts.Trim,
		fold:   opts.IgnoreCase,
		script: opts.Script,
	}

	if opts.Pattern != "" {
		re, err := regexp2.Compile(opts.Pattern, regexp2.None)
		if err != nil {
			return nil, failure.Usage("keys", "invalid regular expression %q", opts.Pattern).WithErr(err)
		}
		re.MatchTimeout = opts.MatchTimeout
		if re.MatchTimeout <= 0 {
			re.MatchTimeout = DefaultMatchTimeout
		}
		f.re = re
	}
	if f.fold {
		f.lower = cases.Lower(language.Und)
	}
	return f, nil
}

// Identity returns a key function that keeps content unchanged.
func Identity() *Func {
	return &Func{}
}

// Key returns the key for content. A non-nil error is scoped to this
// selection; the key is empty in that case.
func (f *Func) Key(content string) (string, error) {
	key := content
	if f.trim {
		key = strings.TrimSpace(key)
	}

	if f.re != nil {
		m, err := f.re.FindStringMatch(key)
		if err != nil {
			return "", failure.Element("keys", fmt.Errorf("matching %q: %w", key, err))
		}
		if m == nil {
			return "", nil
		}
		key = extract(m)
	}

	if f.script != nil && key != "" {
		out, err := f.script.Key(key)
		if err != nil {
			return "", failure.Element("keys", err)
		}
		key = out
	}

	if f.fold {
		key = f.lower.String(key)
	}
	return key, nil
}

// extract returns the first capturing group, or the whole match.
func extract(m *regexp2.Match) string {
	groups := m.Groups()
	if len(groups) > 1 && len(groups[1].Captures) > 0 {
		return groups[1].String()
	}
	return m.String()
}

// Hash returns the 64-bit FNV-1a hash of a key.
func Hash(key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64()
}
