package rules

import (
	"fmt"
	"strconv"
	"strings"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/source"
	"htmlcheck/internal/token"
)

// Srcset validates an image candidate list per the srcset grammar:
// comma-separated candidates, each a URL with an optional width (w),
// density (x) or height (h) descriptor. A candidate without a
// descriptor implicitly means 1x.
type Srcset struct{}

// srcsetFinding is one parse-level finding, with an offset relative to
// the start of the attribute value.
type srcsetFinding struct {
	off      uint32
	len      uint32
	msg      string
	first    uint32 // offset of the first occurrence for duplicates; ^0 when unused
	firstLen uint32
}

const noRef = ^uint32(0)

type srcsetCandidate struct {
	desc    string // normalized descriptor, e.g. "200w", "1x"
	off     uint32 // offset of the descriptor, or of the URL when implicit
	len     uint32
	class   byte // 'w', 'x' or 'h'
	invalid bool
}

func (Srcset) Check(ctx *Ctx, attr token.Attr) []Problem {
	val, ok := ctx.ValueText(attr)
	if !ok || strings.TrimSpace(val) == "" {
		return []Problem{{Msg: "srcset requires at least one image candidate", Span: attr.Name}}
	}
	file := attr.Value.Span.File
	base := attr.Value.Span.Start
	var probs []Problem
	for _, f := range parseSrcset(val) {
		p := Problem{
			Msg:  f.msg,
			Span: source.Span{File: file, Start: base + f.off, End: base + f.off + f.len},
		}
		if f.first != noRef {
			// The duplicate points back at the earlier occurrence.
			p.Note = &diag.Note{
				Span: source.Span{File: file, Start: base + f.first, End: base + f.first + f.firstLen},
				Msg:  "first occurrence here",
			}
		}
		probs = append(probs, p)
	}
	return probs
}

// parseSrcset runs the candidate grammar over a raw attribute value
// and returns every finding. It never stops at the first error.
func parseSrcset(val string) []srcsetFinding {
	var (
		finds      []srcsetFinding
		cands      []srcsetCandidate
		i          = 0
		n          = len(val)
		sawWidth   = false
		sawNonWide = false
	)

	for i < n {
		// Leading whitespace and candidate-separating commas were
		// consumed by the previous iteration; skip whitespace only.
		i = skipWS(val, i)
		if i >= n {
			break
		}

		// URL: a run of non-whitespace. Trailing commas belong to the
		// separator, not the URL; one is tolerated, two is an error.
		urlStart := i
		for i < n && !isWS(val[i]) {
			i++
		}
		rawURL := val[urlStart:i]
		url := strings.TrimRight(rawURL, ",")
		commas := len(rawURL) - len(url)
		if commas > 1 {
			finds = append(finds, srcsetFinding{
				off:   uint32(urlStart + len(url)),
				len:   uint32(commas),
				msg:   "more than one comma after an image candidate",
				first: noRef,
			})
		}
		if url == "" {
			finds = append(finds, srcsetFinding{
				off:   uint32(urlStart),
				len:   uint32(len(rawURL)),
				msg:   "image candidate has no URL",
				first: noRef,
			})
			continue
		}

		cand := srcsetCandidate{
			desc:  "1x",
			off:   uint32(urlStart),
			len:   uint32(len(url)),
			class: 'x',
		}

		if commas == 0 {
			// Descriptor scan: ends at a comma outside parentheses.
			descStart, descEnd, done := scanDescriptors(val, i)
			i = done
			raw := strings.TrimSpace(val[descStart:descEnd])
			if raw != "" {
				classifySrcsetDescriptor(raw, descStart+leadingWS(val[descStart:descEnd]), &cand, &finds)
			}
		}

		if !cand.invalid {
			switch {
			case cand.class == 'w':
				sawWidth = true
			default:
				sawNonWide = true
			}
			cands = append(cands, cand)
		}
	}

	// Duplicate descriptor values, first occurrence wins.
	type ref struct{ off, len uint32 }
	seen := make(map[string]ref, len(cands))
	for _, c := range cands {
		if first, ok := seen[c.desc]; ok {
			finds = append(finds, srcsetFinding{
				off:      c.off,
				len:      c.len,
				msg:      fmt.Sprintf("duplicate descriptor %q", c.desc),
				first:    first.off,
				firstLen: first.len,
			})
			continue
		}
		seen[c.desc] = ref{off: c.off, len: c.len}
	}

	if sawWidth && sawNonWide {
		for _, c := range cands {
			if c.class != 'w' {
				finds = append(finds, srcsetFinding{
					off:   c.off,
					len:   c.len,
					msg:   "candidate without a width descriptor in a width-described set",
					first: noRef,
				})
			}
		}
	}

	// Stable order for deterministic output.
	sortFindings(finds)
	return finds
}

// scanDescriptors consumes the descriptor run after a URL with the
// 3-state machine {descriptor, parens, after}: commas inside
// parentheses are protected, a comma outside them ends the candidate.
func scanDescriptors(val string, i int) (start, end, next int) {
	const (
		stDescriptor = iota
		stParens
		stAfter
	)
	start = i
	state := stDescriptor
	for ; i < len(val); i++ {
		c := val[i]
		switch state {
		case stDescriptor:
			switch {
			case c == '(':
				state = stParens
			case c == ',':
				return start, i, i + 1
			case isWS(c):
				state = stAfter
			}
		case stParens:
			if c == ')' {
				state = stAfter
			}
		case stAfter:
			switch {
			case c == ',':
				return start, i, i + 1
			case c == '(':
				state = stParens
			case !isWS(c):
				state = stDescriptor
			}
		}
	}
	return start, i, i
}

// classifySrcsetDescriptor validates one candidate's descriptor text
// and fills in the candidate's class and normalized value.
func classifySrcsetDescriptor(raw string, off int, cand *srcsetCandidate, finds *[]srcsetFinding) {
	fields := strings.Fields(raw)
	if len(fields) > 1 {
		*finds = append(*finds, srcsetFinding{
			off: uint32(off), len: uint32(len(raw)),
			msg:   "image candidate has more than one descriptor",
			first: noRef,
		})
		cand.invalid = true
		return
	}
	d := fields[0]
	cand.off = uint32(off)
	cand.len = uint32(len(d))

	bad := func(msg string) {
		*finds = append(*finds, srcsetFinding{
			off: uint32(off), len: uint32(len(d)), msg: msg, first: noRef,
		})
		cand.invalid = true
	}

	suffix := d[len(d)-1]
	num := d[:len(d)-1]
	switch suffix {
	case 'w', 'h':
		v, err := strconv.ParseUint(num, 10, 32)
		if err != nil || v == 0 {
			bad(fmt.Sprintf("%q is not a positive integer descriptor", d))
			return
		}
		cand.class = suffix
		cand.desc = fmt.Sprintf("%d%c", v, suffix)
	case 'x':
		v, err := strconv.ParseFloat(num, 64)
		if err != nil || v <= 0 {
			bad(fmt.Sprintf("%q is not a positive density descriptor", d))
			return
		}
		cand.class = 'x'
		cand.desc = strconv.FormatFloat(v, 'g', -1, 64) + "x"
	default:
		bad(fmt.Sprintf("descriptor %q must end in w, x or h", d))
	}
}

func isWS(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func skipWS(s string, i int) int {
	for i < len(s) && isWS(s[i]) {
		i++
	}
	return i
}

func leadingWS(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t\n\r\f"))
}

func sortFindings(finds []srcsetFinding) {
	for i := 1; i < len(finds); i++ {
		for j := i; j > 0 && finds[j].off < finds[j-1].off; j-- {
			finds[j], finds[j-1] = finds[j-1], finds[j]
		}
	}
}
