package algebra

import (
	"fmt"
	"strings"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dshills/selkit/internal/engine/keys"
	"github.com/dshills/selkit/internal/engine/selection"
	"github.com/dshills/selkit/internal/failure"
)

// SetOp is a set operation between two keyed selection lists.
type SetOp uint8

const (
	// SetIntersect keeps keys present on both sides.
	SetIntersect SetOp = iota + 1
	// SetSubtract keeps left keys absent on the right.
	SetSubtract
	// SetUnion keeps keys from either side.
	SetUnion
	// SetCompare tabulates keys from either side with their counts.
	SetCompare
)

// ParseSetOp parses an operator name or symbol.
func ParseSetOp(s string) (SetOp, bool) {
	switch s {
	case "intersect", "and", "&":
		return SetIntersect, true
	case "subtract", "not", "minus", "-", `\`:
		return SetSubtract, true
	case "union", "or", "plus", "+":
		return SetUnion, true
	case "compare", "cmp", "?", "=":
		return SetCompare, true
	}
	return 0, false
}

// Symbol returns the one-character form of the operator.
func (o SetOp) Symbol() string {
	switch o {
	case SetIntersect:
		return "&"
	case SetSubtract:
		return "-"
	case SetUnion:
		return "+"
	case SetCompare:
		return "?"
	}
	return "!"
}

// SetExpr is a parsed "<left> <op> <right>" expression.
type SetExpr struct {
	Left  selection.Register
	Op    SetOp
	Right selection.Register
}

func (e SetExpr) String() string {
	return e.Left.String() + e.Op.Symbol() + e.Right.String()
}

// ParseSetExpr parses the set command's arguments.
//
// A single argument is split into characters ("a-b", "-a"). Two operands
// mean one side is the current selection: "-a" is "_-a" and "a-" is "a-_".
// Three operands are "<left> <op> <right>".
func ParseSetExpr(args []string) (SetExpr, error) {
	if len(args) == 1 {
		arg := strings.TrimSpace(args[0])
		args = make([]string, 0, utf8.RuneCountInString(arg))
		for _, r := range arg {
			args = append(args, string(r))
		}
	}

	var expr SetExpr
	switch len(args) {
	case 2:
		lop, lok := ParseSetOp(args[0])
		rop, rok := ParseSetOp(args[1])
		switch {
		case lok && rok:
			return SetExpr{}, failure.Usage("set", "arguments '%s' and '%s' cannot both be operations", args[0], args[1])
		case !lok && !rok:
			return SetExpr{}, failure.Usage("set", "one argument must be an operation")
		case lok:
			reg, err := parseOperand(args[1])
			if err != nil {
				return SetExpr{}, err
			}
			expr = SetExpr{Left: selection.CurrentSelection, Op: lop, Right: reg}
		default:
			reg, err := parseOperand(args[0])
			if err != nil {
				return SetExpr{}, err
			}
			expr = SetExpr{Left: reg, Op: rop, Right: selection.CurrentSelection}
		}
	case 3:
		left, err := parseOperand(args[0])
		if err != nil {
			return SetExpr{}, err
		}
		op, ok := ParseSetOp(args[1])
		if !ok {
			return SetExpr{}, failure.Usage("set", "set operation '%s' could not be parsed", args[1])
		}
		right, err := parseOperand(args[2])
		if err != nil {
			return SetExpr{}, err
		}
		expr = SetExpr{Left: left, Op: op, Right: right}
	default:
		return SetExpr{}, failure.Usage("set", "invalid arguments to set command").
			WithDetail("args=%q", args)
	}

	if expr.Left == expr.Right {
		return SetExpr{}, failure.Usage("set", "registers passed are the same: '%s'", expr.Left)
	}
	return expr, nil
}

func parseOperand(s string) (selection.Register, error) {
	r, err := selection.ParseRegister(s)
	if err != nil {
		return 0, failure.Usage("set", "invalid register '%s'", s).WithErr(err)
	}
	return r, nil
}

// Counts is an order-preserving frequency map of keys.
type Counts = orderedmap.OrderedMap[string, int]

// Frequencies keys every content and counts occurrences in order of first
// appearance. Empty keys are skipped. The second result is the number of
// contents whose key could not be computed.
func Frequencies(contents []string, kf *keys.Func) (*Counts, int) {
	counts := orderedmap.New[string, int]()
	errs := 0
	for _, c := range contents {
		key, err := kf.Key(c)
		if err != nil {
			errs++
			continue
		}
		if key == "" {
			continue
		}
		n, _ := counts.Get(key)
		counts.Set(key, n+1)
	}
	return counts, errs
}

// Keys returns the keys of counts in insertion order.
func Keys(counts *Counts) []string {
	out := make([]string, 0, counts.Len())
	for p := counts.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Apply runs op over the ordered key sets of left and right.
// Intersect and subtract follow left order; union and compare list left
// keys first, then right-only keys in right order.
func Apply(op SetOp, left, right *Counts) []string {
	var out []string
	for p := left.Oldest(); p != nil; p = p.Next() {
		_, inRight := right.Get(p.Key)
		switch op {
		case SetIntersect:
			if inRight {
				out = append(out, p.Key)
			}
		case SetSubtract:
			if !inRight {
				out = append(out, p.Key)
			}
		default:
			out = append(out, p.Key)
		}
	}
	if op == SetUnion || op == SetCompare {
		for p := right.Oldest(); p != nil; p = p.Next() {
			if _, inLeft := left.Get(p.Key); !inLeft {
				out = append(out, p.Key)
			}
		}
	}
	return out
}

// Relation classifies a key by the sides it occurs on:
// "=" both, ">" left only, "<" right only, "?" neither.
func Relation(leftCount, rightCount int) string {
	switch {
	case leftCount > 0 && rightCount > 0:
		return "="
	case leftCount > 0:
		return ">"
	case rightCount > 0:
		return "<"
	}
	return "?"
}

// CompareTable renders the tab-separated comparison of result keys.
// The header row is "?\t<left>\t<right>\tselection".
func CompareTable(expr SetExpr, result []string, left, right *Counts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "?\t%s\t%s\tselection\n", expr.Left, expr.Right)
	for _, k := range result {
		lc, _ := left.Get(k)
		rc, _ := right.Get(k)
		fmt.Fprintf(&b, "%s\t%d\t%d\t%s\n", Relation(lc, rc), lc, rc, k)
	}
	return b.String()
}

// ListText renders keys one per line.
func ListText(result []string) string {
	var b strings.Builder
	for _, k := range result {
		b.WriteString(k)
		b.WriteByte('\n')
	}
	return b.String()
}

// Restrict keeps the descriptors of items whose key is in result.
// items should be in document order; the output keeps their order.
// Items whose key cannot be computed are dropped; Frequencies reports them.
func Restrict(items []selection.WithDesc, kf *keys.Func, result []string) []selection.Desc {
	want := make(map[string]struct{}, len(result))
	for _, k := range result {
		want[k] = struct{}{}
	}

	var out []selection.Desc
	for _, item := range items {
		key, err := kf.Key(item.Content)
		if err != nil {
			continue
		}
		if _, ok := want[key]; ok && key != "" {
			out = append(out, item.Desc)
		}
	}
	return out
}
