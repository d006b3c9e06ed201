package selection

import (
	"fmt"
	"unicode/utf8"
)

// Register names an editor storage slot.
type Register rune

// Well-known registers.
const (
	RegisterDquote     Register = '"'
	RegisterSlash      Register = '/'
	RegisterArobase    Register = '@'
	RegisterCaret      Register = '^'
	RegisterPipe       Register = '|'
	RegisterPercent    Register = '%'
	RegisterDot        Register = '.'
	RegisterHash       Register = '#'
	RegisterUnderscore Register = '_'
	RegisterColon      Register = ':'

	// CurrentSelection is the placeholder for the live selection set.
	CurrentSelection = RegisterUnderscore
)

var registerNames = map[Register]string{
	RegisterDquote:     "dquote",
	RegisterSlash:      "slash",
	RegisterArobase:    "arobase",
	RegisterCaret:      "caret",
	RegisterPipe:       "pipe",
	RegisterPercent:    "percent",
	RegisterDot:        "dot",
	RegisterHash:       "hash",
	RegisterUnderscore: "underscore",
	RegisterColon:      "colon",
}

var registersByName = func() map[string]Register {
	m := make(map[string]Register, len(registerNames))
	for r, name := range registerNames {
		m[name] = r
	}
	return m
}()

// IsValid reports whether r is a register the editor knows about.
func (r Register) IsValid() bool {
	switch {
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	}
	_, ok := registerNames[r]
	return ok
}

// IsCurrent reports whether r stands for the live selection set.
func (r Register) IsCurrent() bool {
	return r == CurrentSelection
}

// String returns the single-character form.
func (r Register) String() string {
	return string(rune(r))
}

// Name returns the form used in editor expansions such as %reg{...}:
// the long name for symbolic registers, the character otherwise.
func (r Register) Name() string {
	if name, ok := registerNames[r]; ok {
		return name
	}
	return r.String()
}

// ParseRegister parses a single-character or long register name.
func ParseRegister(s string) (Register, error) {
	if r, ok := registersByName[s]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(s) == 1 {
		c, _ := utf8.DecodeRuneInString(s)
		if reg := Register(c); reg.IsValid() {
			return reg, nil
		}
	}
	return 0, fmt.Errorf("invalid register %q", s)
}
