package kak

import (
	"strings"

	"github.com/dshills/selkit/internal/engine/selection"
	"github.com/dshills/selkit/internal/failure"
	"github.com/dshills/selkit/internal/source"
)

// scopeKeys maps each scope to the keys producing it.
var scopeKeys = map[source.Scope]string{
	source.ScopeCurrent:              "",
	source.ScopeSplitLines:           "<a-s>",
	source.ScopeFullLines:            "x<a-s>",
	source.ScopeFullLinesContent:     `x<a-s>s[^\n]+<ret>`,
	source.ScopeDocumentLines:        "%<a-s>",
	source.ScopeDocumentLinesContent: `%s^[^\n]+<ret>`,
}

// ScopeKeys returns the keys evaluated for scope.
func ScopeKeys(scope source.Scope) (string, bool) {
	keys, ok := scopeKeys[scope]
	return keys, ok
}

// Session is a source.Source backed by an editor session.
type Session struct {
	client *Client
}

// NewSession wraps a client.
func NewSession(client *Client) *Session {
	return &Session{client: client}
}

func (s *Session) query(expr string, scope source.Scope) ([]string, error) {
	keys, ok := ScopeKeys(scope)
	if !ok {
		return nil, failure.Usage("kak", "unknown scope %q", scope)
	}
	return s.client.Query(expr, keys)
}

// Selections implements source.Source.
func (s *Session) Selections(scope source.Scope) ([]string, error) {
	return s.query("%val{selections}", scope)
}

// SelectionDescs implements source.Source.
func (s *Session) SelectionDescs(scope source.Scope) ([]selection.Desc, error) {
	words, err := s.query("%val{selections_desc}", scope)
	if err != nil {
		return nil, err
	}
	descs := make([]selection.Desc, len(words))
	for i, w := range words {
		d, err := ParseDesc(w)
		if err != nil {
			return nil, failure.Consistency("kak", "malformed selection descriptor").WithErr(err)
		}
		descs[i] = d
	}
	return descs, nil
}

// SetSelections implements source.Source.
func (s *Session) SetSelections(contents []string) error {
	if len(contents) == 0 {
		return failure.ErrEmptySelections
	}
	return s.client.Send("set-register '\"' " + QuoteAll(contents) + "; execute-keys R")
}

// SetSelectionDescs implements source.Source.
func (s *Session) SetSelectionDescs(descs []selection.Desc) error {
	if len(descs) == 0 {
		return failure.ErrEmptySelections
	}
	var b strings.Builder
	b.WriteString("select")
	for _, d := range descs {
		b.WriteByte(' ')
		b.WriteString(FormatDesc(d))
	}
	return s.client.Send(b.String())
}

// Register implements source.Source.
func (s *Session) Register(r selection.Register) ([]string, error) {
	return s.client.Query(RegisterExpansion(r), "")
}

// WriteScratch implements source.Source.
func (s *Session) WriteScratch(name, text string) error {
	inner := "edit -scratch " + Quote(name) +
		"; set-register '\"' " + Quote(text) +
		"; execute-keys '%R'"
	return s.client.Send("evaluate-commands -save-regs '\"' " + Quote(inner))
}

// Message implements source.Source.
func (s *Session) Message(primary, debug string) error {
	cmd := "echo " + Quote(primary) + "; echo -debug " + Quote(primary)
	if debug != "" {
		cmd += "; echo -debug " + Quote(debug)
	}
	return s.client.Send(cmd)
}

var _ source.Source = (*Session)(nil)
