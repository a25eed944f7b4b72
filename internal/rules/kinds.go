package rules

import (
	"fmt"
	"math"
	"mime"
	"net/url"
	"strconv"
	"strings"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/token"
)

// Any accepts every value, including a missing one.
type Any struct{}

func (Any) Check(*Ctx, token.Attr) []Problem { return nil }

// Bool is a boolean attribute: presence is the signal, so the value
// must be absent or empty.
type Bool struct{}

func (Bool) Check(ctx *Ctx, attr token.Attr) []Problem {
	if val, ok := ctx.ValueText(attr); ok && val != "" {
		return []Problem{{Msg: "boolean attribute takes no value"}}
	}
	return nil
}

// NotEmpty requires a present, non-empty value.
type NotEmpty struct{}

func (NotEmpty) Check(ctx *Ctx, attr token.Attr) []Problem {
	val, ok := ctx.ValueText(attr)
	if !ok {
		return []Problem{{Code: diag.AttrMissingValue, Msg: "attribute requires a value", Span: attr.Name}}
	}
	if val == "" {
		return []Problem{{Msg: "value must not be empty"}}
	}
	return nil
}

// NonNegInt requires a base-10 non-negative integer in [Min, Max].
type NonNegInt struct {
	Min, Max uint64
}

// Int is the unconstrained non-negative integer rule.
func Int() NonNegInt { return NonNegInt{Max: math.MaxUint64} }

// IntMin bounds the rule from below only.
func IntMin(min uint64) NonNegInt { return NonNegInt{Min: min, Max: math.MaxUint64} }

func (r NonNegInt) Check(ctx *Ctx, attr token.Attr) []Problem {
	val, ok := ctx.ValueText(attr)
	if !ok {
		return []Problem{{Code: diag.AttrMissingValue, Msg: "attribute requires an integer value", Span: attr.Name}}
	}
	n, err := strconv.ParseUint(strings.TrimSpace(val), 10, 64)
	if err != nil {
		return []Problem{{Msg: fmt.Sprintf("%q is not a non-negative integer", val)}}
	}
	if n < r.Min || n > r.Max {
		return []Problem{{Msg: fmt.Sprintf("value %d is out of range [%d, %d]", n, r.Min, r.Max)}}
	}
	return nil
}

// Float requires a finite decimal number.
type Float struct{}

func (Float) Check(ctx *Ctx, attr token.Attr) []Problem {
	val, ok := ctx.ValueText(attr)
	if !ok {
		return []Problem{{Code: diag.AttrMissingValue, Msg: "attribute requires a number value", Span: attr.Name}}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return []Problem{{Msg: fmt.Sprintf("%q is not a number", val)}}
	}
	return nil
}

// URL requires a syntactically valid URL. The check is deliberately
// shallow: it catches unparsable strings and embedded whitespace, not
// scheme or reachability concerns.
type URL struct {
	AllowEmpty bool
}

func (r URL) Check(ctx *Ctx, attr token.Attr) []Problem {
	val, ok := ctx.ValueText(attr)
	if !ok {
		return []Problem{{Code: diag.AttrMissingValue, Msg: "attribute requires a URL value", Span: attr.Name}}
	}
	if val == "" {
		if r.AllowEmpty {
			return nil
		}
		return []Problem{{Msg: "URL must not be empty"}}
	}
	if strings.ContainsAny(val, " \t\n\r\f") {
		return []Problem{{Msg: "URL must not contain whitespace"}}
	}
	if _, err := url.Parse(val); err != nil {
		return []Problem{{Msg: fmt.Sprintf("%q is not a valid URL", val)}}
	}
	return nil
}

// MIME requires a type/subtype media type. Parameter grammar is not
// checked beyond what mime.ParseMediaType accepts.
type MIME struct{}

func (MIME) Check(ctx *Ctx, attr token.Attr) []Problem {
	val, ok := ctx.ValueText(attr)
	if !ok || val == "" {
		return []Problem{{Code: diag.AttrMissingValue, Msg: "attribute requires a MIME type", Span: attr.Name}}
	}
	mt, _, err := mime.ParseMediaType(val)
	if err != nil || !strings.Contains(mt, "/") {
		return []Problem{{Msg: fmt.Sprintf("%q is not a MIME type", val)}}
	}
	return nil
}

// CORS is the crossorigin enumeration: a bare attribute or the empty
// string means anonymous.
type CORS struct{}

func (CORS) Check(ctx *Ctx, attr token.Attr) []Problem {
	val, ok := ctx.ValueText(attr)
	if !ok || val == "" {
		return nil
	}
	switch strings.ToLower(val) {
	case "anonymous", "use-credentials":
		return nil
	}
	return []Problem{{Msg: fmt.Sprintf("%q is not a CORS setting (anonymous, use-credentials)", val)}}
}

// HashNameRef requires a "#name" fragment reference, as in usemap.
type HashNameRef struct{}

func (HashNameRef) Check(ctx *Ctx, attr token.Attr) []Problem {
	val, ok := ctx.ValueText(attr)
	if !ok || val == "" {
		return []Problem{{Code: diag.AttrMissingValue, Msg: "attribute requires a #name reference", Span: attr.Name}}
	}
	if !strings.HasPrefix(val, "#") || len(val) < 2 {
		return []Problem{{Msg: fmt.Sprintf("%q must be a #name reference", val)}}
	}
	return nil
}

// Cardinality says how a List value tokenizes.
type Cardinality uint8

const (
	// One treats the whole value as a single token.
	One Cardinality = iota
	// ManyUnique splits on ASCII whitespace; repeats are invalid.
	ManyUnique
	// ManyUniqueComma splits on commas with surrounding whitespace
	// trimmed; repeats are invalid.
	ManyUniqueComma
)

// Extra is a List's escape hatch for values outside its vocabulary.
type Extra struct {
	// AllowMissing permits a bare attribute with no value part.
	AllowMissing bool
	// AllowEmpty permits an empty value.
	AllowEmpty bool
	// Fn, when set, decides out-of-vocabulary tokens.
	Fn func(string) bool
}

// ExtraNone rejects everything outside the vocabulary.
var ExtraNone = Extra{}

// ExtraMissing permits a bare attribute only.
var ExtraMissing = Extra{AllowMissing: true}

// ExtraMissingOrEmpty permits a bare attribute or an empty value.
var ExtraMissingOrEmpty = Extra{AllowMissing: true, AllowEmpty: true}

// Entry is one vocabulary item with its completion description.
type Entry struct {
	Value string
	Desc  string
}

// List validates enumerated token values; case-insensitive.
type List struct {
	Card    Cardinality
	Extra   Extra
	Entries []Entry
}

// Enum is the common one-token enumerated rule.
func Enum(values ...string) List {
	entries := make([]Entry, len(values))
	for i, v := range values {
		entries[i] = Entry{Value: v}
	}
	return List{Card: One, Entries: entries}
}

func (r List) contains(tok string) bool {
	for _, e := range r.Entries {
		if strings.EqualFold(e.Value, tok) {
			return true
		}
	}
	return false
}

func (r List) Check(ctx *Ctx, attr token.Attr) []Problem {
	val, ok := ctx.ValueText(attr)
	if !ok {
		if r.Extra.AllowMissing {
			return nil
		}
		return []Problem{{Code: diag.AttrMissingValue, Msg: "attribute requires a value", Span: attr.Name}}
	}
	if strings.TrimSpace(val) == "" {
		if r.Extra.AllowEmpty {
			return nil
		}
		return []Problem{{Msg: "value must not be empty"}}
	}

	var toks []string
	switch r.Card {
	case One:
		toks = []string{strings.TrimSpace(val)}
	case ManyUnique:
		toks = strings.Fields(val)
	case ManyUniqueComma:
		for _, t := range strings.Split(val, ",") {
			toks = append(toks, strings.TrimSpace(t))
		}
	}

	var probs []Problem
	seen := make(map[string]bool, len(toks))
	for _, t := range toks {
		folded := strings.ToLower(t)
		if r.Card != One && seen[folded] {
			probs = append(probs, Problem{Msg: fmt.Sprintf("duplicate token %q", t)})
			continue
		}
		seen[folded] = true
		if r.contains(t) {
			continue
		}
		if r.Extra.Fn != nil && r.Extra.Fn(t) {
			continue
		}
		probs = append(probs, Problem{Msg: fmt.Sprintf("%q is not one of the allowed values", t)})
	}
	return probs
}

// Custom delegates validation entirely to a function.
type Custom struct {
	Fn func(ctx *Ctx, attr token.Attr) []Problem
}

func (r Custom) Check(ctx *Ctx, attr token.Attr) []Problem {
	if r.Fn == nil {
		return nil
	}
	return r.Fn(ctx, attr)
}

// Manual marks an attribute the element descriptor validates itself;
// the walk accepts it untouched.
type Manual struct{}

func (Manual) Check(*Ctx, token.Attr) []Problem { return nil }
