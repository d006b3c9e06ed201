package setop

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/selkit/internal/config"
	"github.com/dshills/selkit/internal/dispatcher/execctx"
	"github.com/dshills/selkit/internal/dispatcher/handler"
	"github.com/dshills/selkit/internal/engine/selection"
	"github.com/dshills/selkit/internal/failure"
	"github.com/dshills/selkit/internal/source/memsource"
)

func desc(r1, c1, r2, c2 int) selection.Desc {
	return selection.NewDesc(selection.Pos(r1, c1), selection.Pos(r2, c2))
}

// lines selects the content of every line of text.
func lines(text string) *memsource.Editor {
	var descs []selection.Desc
	for row, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		descs = append(descs, desc(row, 0, row, max(len(line)-1, 0)))
	}
	return memsource.New(text, descs...)
}

type failingScript struct{}

func (failingScript) Key(s string) (string, error) {
	if s == "bad" {
		return "", errors.New("rejected")
	}
	return s, nil
}

func run(ed *memsource.Editor, action handler.Action, setup ...func(*execctx.ExecutionContext)) handler.Result {
	ctx := execctx.New(context.Background())
	ctx.Source = ed
	for _, fn := range setup {
		fn(ctx)
	}
	return NewHandler().HandleAction(action, ctx)
}

func setAction(args ...string) handler.Action {
	return handler.Action{Name: ActionSet, Args: handler.Args{Positional: args}}
}

func TestHandler_CanHandle(t *testing.T) {
	h := NewHandler()
	for _, name := range []string{"set", "uniq", "xlookup"} {
		if !h.CanHandle(name) {
			t.Errorf("expected CanHandle(%q) to be true", name)
		}
	}
	if h.CanHandle("box") {
		t.Error("expected CanHandle(box) to be false")
	}
}

func TestHandler_SetReducesCurrent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		register []string
		args     []string
		trim     bool
		want     []string
		message  string
	}{
		{
			name:     "subtract",
			text:     "x\ny\nz\n",
			register: []string{"y"},
			args:     []string{"-a"},
			want:     []string{"x", "z"},
			message:  "_-a returned 2 selections",
		},
		{
			name:     "intersect",
			text:     "x\ny\nz\n",
			register: []string{"y", "q"},
			args:     []string{"_", "and", "a"},
			want:     []string{"y"},
			message:  "_&a returned 1 selections",
		},
		{
			name:     "duplicates all kept",
			text:     "x\ny\nx\n",
			register: []string{"x"},
			args:     []string{"&a"},
			want:     []string{"x", "x"},
			message:  "_&a returned 1 selections",
		},
		{
			name:     "trimmed",
			text:     " x\ny\n",
			register: []string{"x"},
			args:     []string{"&a"},
			trim:     true,
			want:     []string{" x"},
			message:  "_&a returned 1 selections",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := lines(tt.text)
			ed.SetRegister('a', tt.register...)
			action := setAction(tt.args...)
			action.Args.Trim = tt.trim

			r := run(ed, action)
			if !r.IsOK() {
				t.Fatalf("unexpected error: %v", r.Error)
			}
			if r.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, r.Message)
			}
			if diff := cmp.Diff(tt.want, ed.CurrentContents()); diff != "" {
				t.Errorf("selections mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandler_SetWritesScratch(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		message string
	}{
		{
			name:    "union",
			args:    []string{"a", "+", "b"},
			want:    "x\ny\nz\n",
			message: "a+b returned 3 selections",
		},
		{
			name:    "intersect registers",
			args:    []string{"a&b"},
			want:    "y\n",
			message: "a&b returned 1 selections",
		},
		{
			name:    "compare",
			args:    []string{"a", "compare", "b"},
			want:    "?\ta\tb\tselection\n>\t1\t0\tx\n=\t2\t1\ty\n<\t0\t1\tz\n",
			message: "Compared 3 selections",
		},
		{
			name:    "union with current",
			args:    []string{"+b"},
			want:    "q\ny\nz\n",
			message: "_+b returned 3 selections",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := lines("q\n")
			ed.SetRegister('a', "x", "y", "y")
			ed.SetRegister('b', "y", "z")

			r := run(ed, setAction(tt.args...))
			if !r.IsOK() {
				t.Fatalf("unexpected error: %v", r.Error)
			}
			if r.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, r.Message)
			}
			got, ok := ed.Scratch(config.DefaultScratchName)
			if !ok {
				t.Fatal("expected scratch buffer to be written")
			}
			if got != tt.want {
				t.Errorf("expected scratch %q, got %q", tt.want, got)
			}
			if diff := cmp.Diff([]string{"q"}, ed.CurrentContents()); diff != "" {
				t.Errorf("selections changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandler_SetRightCurrent(t *testing.T) {
	ed := lines("x\ny\n")
	ed.SetRegister('a', "x", "q")

	r := run(ed, setAction("a-"))
	if !r.IsOK() {
		t.Fatalf("unexpected error: %v", r.Error)
	}
	if got, _ := ed.Scratch(config.DefaultScratchName); got != "q\n" {
		t.Errorf("expected scratch %q, got %q", "q\n", got)
	}
}

func TestHandler_SetScratchName(t *testing.T) {
	cfg := config.New()
	if err := cfg.Set("scratch.name", "*out*"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	ed := lines("x\n")
	ed.SetRegister('a', "y")

	r := run(ed, setAction("a+_"), func(ctx *execctx.ExecutionContext) { ctx.Settings = cfg })
	if !r.IsOK() {
		t.Fatalf("unexpected error: %v", r.Error)
	}
	if got, ok := ed.Scratch("*out*"); !ok || got != "y\nx\n" {
		t.Errorf("expected scratch %q, got %q", "y\nx\n", got)
	}
}

func TestHandler_SetKeyErrors(t *testing.T) {
	ed := lines("x\nbad\ny\n")
	ed.SetRegister('a', "y")

	r := run(ed, setAction("-a"), func(ctx *execctx.ExecutionContext) { ctx.KeyScript = failingScript{} })
	if !r.IsOK() {
		t.Fatalf("unexpected error: %v", r.Error)
	}
	if r.Message != "_-a returned 1 selections (1 error)" {
		t.Errorf("expected message with one error, got %q", r.Message)
	}
	if diff := cmp.Diff([]string{"x"}, ed.CurrentContents()); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_SetErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "same register", args: []string{"a&a"}},
		{name: "no operation", args: []string{"ab"}},
		{name: "no selections left", args: []string{"&b"}},
		{name: "bad pattern", args: []string{"&a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := lines("x\ny\n")
			ed.SetRegister('a', "x")
			ed.SetRegister('b', "z")
			before := ed.CurrentContents()

			action := setAction(tt.args...)
			if tt.name == "bad pattern" {
				action.Args.Pattern = "("
			}
			r := run(ed, action)
			if failure.KindOf(r.Error) != failure.KindUsage {
				t.Fatalf("expected usage error, got %v", r.Error)
			}
			if diff := cmp.Diff(before, ed.CurrentContents()); diff != "" {
				t.Errorf("selections changed on error (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandler_Uniq(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		args     handler.Args
		settings map[string]any
		want     []string
		message  string
	}{
		{
			name:    "first occurrence kept",
			text:    "a\nb\na\nc\n",
			want:    []string{"a", "b", "c"},
			message: "3 unique selections out of 4",
		},
		{
			name:    "trimmed by default",
			text:    "a\n a\n",
			want:    []string{"a"},
			message: "1 unique selections out of 2",
		},
		{
			name:    "keep whitespace",
			text:    "a\n a\n",
			args:    handler.Args{KeepWhitespace: true},
			want:    []string{"a", " a"},
			message: "2 unique selections out of 2",
		},
		{
			name:     "trim disabled in config",
			text:     "a\n a\n",
			settings: map[string]any{"keys.trim": false},
			want:     []string{"a", " a"},
			message:  "2 unique selections out of 2",
		},
		{
			name:    "ignore case",
			text:    "A\na\n",
			args:    handler.Args{IgnoreCase: true},
			want:    []string{"A"},
			message: "1 unique selections out of 2",
		},
		{
			name:     "ignore case from config",
			text:     "A\na\n",
			settings: map[string]any{"keys.ignoreCase": true},
			want:     []string{"A"},
			message:  "1 unique selections out of 2",
		},
		{
			name:    "pattern",
			text:    "x1\ny1\nx2\n",
			args:    handler.Args{Positional: []string{`^(.)`}},
			want:    []string{"x1", "y1"},
			message: "2 unique selections out of 3",
		},
		{
			name:    "no match keeps selection",
			text:    "x1\ny\ny\n",
			args:    handler.Args{Positional: []string{`(\d)`}},
			want:    []string{"x1", "y", "y"},
			message: "3 unique selections out of 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			for k, v := range tt.settings {
				if err := cfg.Set(k, v); err != nil {
					t.Fatalf("Set(%s) error = %v", k, err)
				}
			}

			ed := lines(tt.text)
			r := run(ed, handler.Action{Name: ActionUniq, Args: tt.args},
				func(ctx *execctx.ExecutionContext) { ctx.Settings = cfg })
			if !r.IsOK() {
				t.Fatalf("unexpected error: %v", r.Error)
			}
			if r.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, r.Message)
			}
			if diff := cmp.Diff(tt.want, ed.CurrentContents()); diff != "" {
				t.Errorf("selections mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandler_UniqRemovesDuplicateText(t *testing.T) {
	ed := lines("a\nb\na\nc\n")
	r := run(ed, handler.Action{Name: ActionUniq})
	if !r.IsOK() {
		t.Fatalf("unexpected error: %v", r.Error)
	}
	if got := ed.Text(); got != "a\nb\n\nc\n" {
		t.Errorf("expected text %q, got %q", "a\nb\n\nc\n", got)
	}
}

func TestHandler_XLookup(t *testing.T) {
	tests := []struct {
		name     string
		register selection.Register
		args     []string
		want     []string
		message  string
	}{
		{
			name:     "default register",
			register: selection.RegisterDquote,
			want:     []string{"v1", "v2", "v1"},
			message:  "Xlookup 3 selections",
		},
		{
			name:     "named register",
			register: 'a',
			args:     []string{"a"},
			want:     []string{"v1", "v2", "v1"},
			message:  "Xlookup 3 selections",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := lines("k1\nk2\nk1\n")
			ed.SetRegister(tt.register, "k1", "v1", "k2", "v2")

			r := run(ed, handler.Action{Name: ActionXLookup, Args: handler.Args{Positional: tt.args}})
			if !r.IsOK() {
				t.Fatalf("unexpected error: %v", r.Error)
			}
			if r.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, r.Message)
			}
			if diff := cmp.Diff(tt.want, ed.CurrentContents()); diff != "" {
				t.Errorf("selections mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandler_XLookupLineKeys(t *testing.T) {
	ed := lines("k1\nk2\n k1\n")
	ed.SetRegister(selection.RegisterDquote, "k1\n", "v1", "k2\n", "v2")

	r := run(ed, handler.Action{Name: ActionXLookup})
	if !r.IsOK() {
		t.Fatalf("unexpected error: %v", r.Error)
	}
	if r.Message != "Xlookup 3 selections" {
		t.Errorf("expected message %q, got %q", "Xlookup 3 selections", r.Message)
	}
	if diff := cmp.Diff([]string{"v1", "v2", "v1"}, ed.CurrentContents()); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_XLookupMissingKey(t *testing.T) {
	ed := lines("k1\nk3\n")
	ed.SetRegister(selection.RegisterDquote, "k1", "v1")

	r := run(ed, handler.Action{Name: ActionXLookup})
	if !r.IsOK() {
		t.Fatalf("unexpected error: %v", r.Error)
	}
	if r.Message != "Xlookup 1 selections (1 error)" {
		t.Errorf("expected message %q, got %q", "Xlookup 1 selections (1 error)", r.Message)
	}
	if !strings.Contains(r.Detail, "k3") {
		t.Errorf("expected detail to name k3, got %q", r.Detail)
	}
	if got := r.GetDataInt("errors"); got != 1 {
		t.Errorf("expected 1 error, got %d", got)
	}
}

func TestHandler_XLookupErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		value []string
	}{
		{name: "odd entries", value: []string{"k1", "v1", "k2"}},
		{name: "duplicate key", value: []string{"k1", "v1", "k1", "v2"}},
		{name: "empty register", value: nil},
		{name: "invalid register", args: []string{"??"}, value: []string{"k1", "v1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := lines("k1\n")
			ed.SetRegister(selection.RegisterDquote, tt.value...)

			r := run(ed, handler.Action{Name: ActionXLookup, Args: handler.Args{Positional: tt.args}})
			if failure.KindOf(r.Error) != failure.KindUsage {
				t.Errorf("expected usage error, got %v", r.Error)
			}
		})
	}
}
