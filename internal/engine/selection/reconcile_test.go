package selection

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/selkit/internal/failure"
)

func TestReconcile(t *testing.T) {
	// Document order a b c d; primary is c, so descriptors start at c.
	contents := []string{"a", "b", "c", "d"}
	descs := []Desc{
		NewDesc(Pos(2, 0), Pos(2, 0)),
		NewDesc(Pos(3, 0), Pos(3, 0)),
		NewDesc(Pos(0, 0), Pos(0, 0)),
		NewDesc(Pos(1, 3), Pos(1, 0)),
	}

	got, err := Reconcile(contents, descs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []WithDesc{
		{"c", descs[0]},
		{"d", descs[1]},
		{"a", descs[2]},
		{"b", descs[3]},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	doc := DocumentOrder(got)
	var order []string
	for _, item := range doc {
		order = append(order, item.Content)
	}
	if diff := cmp.Diff(contents, order); diff != "" {
		t.Errorf("document order mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcile_PrimaryFirst(t *testing.T) {
	contents := []string{"x", "y"}
	descs := []Desc{PointDesc(Pos(0, 0)), PointDesc(Pos(0, 2))}

	got, err := ReconcileDocumentOrder(contents, descs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Content != "x" || got[1].Content != "y" {
		t.Errorf("unexpected pairing %v", got)
	}
}

func TestReconcile_Deterministic(t *testing.T) {
	contents := []string{"1", "2", "3"}
	descs := []Desc{PointDesc(Pos(5, 0)), PointDesc(Pos(1, 0)), PointDesc(Pos(3, 0))}

	first, _ := Reconcile(contents, descs)
	for i := 0; i < 10; i++ {
		again, _ := Reconcile(contents, descs)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("non-deterministic reconcile:\n%s", diff)
		}
	}
}

func TestReconcile_Mismatch(t *testing.T) {
	_, err := Reconcile([]string{"a"}, nil)
	if !errors.Is(err, failure.ErrConsistency) {
		t.Errorf("expected consistency error, got %v", err)
	}

	got, err := Reconcile(nil, nil)
	if err != nil || got != nil {
		t.Errorf("expected empty result for empty input, got %v, %v", got, err)
	}
}

func TestSortedSpans(t *testing.T) {
	got := SortedSpans([]Desc{
		NewDesc(Pos(4, 2), Pos(4, 0)),
		NewDesc(Pos(0, 1), Pos(0, 3)),
		NewDesc(Pos(2, 0), Pos(1, 0)),
	})
	want := []Desc{
		NewDesc(Pos(0, 1), Pos(0, 3)),
		NewDesc(Pos(1, 0), Pos(2, 0)),
		NewDesc(Pos(4, 0), Pos(4, 2)),
	}
	if diff := cmp.Diff(want, Descs(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRegister(t *testing.T) {
	tests := []struct {
		in      string
		want    Register
		name    string
		wantErr bool
	}{
		{"a", 'a', "a", false},
		{"Z", 'Z', "Z", false},
		{"7", '7', "7", false},
		{"\"", RegisterDquote, "dquote", false},
		{"dquote", RegisterDquote, "dquote", false},
		{"_", CurrentSelection, "underscore", false},
		{"colon", RegisterColon, "colon", false},
		{"!", 0, "", true},
		{"ab", 0, "", true},
		{"", 0, "", true},
	}

	for _, tt := range tests {
		got, err := ParseRegister(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRegister(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRegister(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRegister(%q): expected %q, got %q", tt.in, tt.want, got)
		}
		if got.Name() != tt.name {
			t.Errorf("ParseRegister(%q).Name(): expected %q, got %q", tt.in, tt.name, got.Name())
		}
	}

	if !CurrentSelection.IsCurrent() || Register('a').IsCurrent() {
		t.Error("IsCurrent mismatch")
	}
}
