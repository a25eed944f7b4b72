package lexer

import (
	"htmlcheck/internal/source"
	"htmlcheck/internal/tags"
	"htmlcheck/internal/token"
)

// AttrIter walks the attributes of a start tag by re-scanning its byte
// range on demand. It is a lazy, finite, non-restartable sequence:
// descriptors that never inspect attributes pay no parsing cost.
//
// Each syntactic attribute is yielded exactly once, in source order.
// A repeated (case-insensitive) name is yielded with Duplicate set so
// the caller can diagnose it without re-validating.
type AttrIter struct {
	file *source.File
	off  uint32
	end  uint32
	seen map[string]struct{}
}

// Attrs creates an iterator over the attributes of a TagOpen token.
// Any other token kind yields an exhausted iterator.
func Attrs(file *source.File, tok token.Token) *AttrIter {
	if tok.Kind != token.TagOpen {
		return &AttrIter{file: file}
	}

	end := tok.Span.End
	// Strip the closing ">" or "/>" so value scanning cannot run into
	// it. An unclosed tag at EOF has neither.
	if end > tok.Span.Start && file.Content[end-1] == '>' {
		end--
		if end > tok.Span.Start && file.Content[end-1] == '/' {
			end--
		}
	}

	return &AttrIter{
		file: file,
		off:  tok.Name.End,
		end:  end,
		seen: make(map[string]struct{}),
	}
}

// Next yields the next attribute. The second result is false once the
// tag range is exhausted.
func (it *AttrIter) Next() (token.Attr, bool) {
	b := it.file.Content
	// Separators between attributes: whitespace and stray slashes.
	for it.off < it.end && (isWhitespace(b[it.off]) || b[it.off] == '/') {
		it.off++
	}
	if it.off >= it.end {
		return token.Attr{}, false
	}

	nameStart := it.off
	// A leading '=' glues to the name rather than starting a value.
	if b[it.off] == '=' {
		it.off++
	}
	for it.off < it.end && !isWhitespace(b[it.off]) && b[it.off] != '=' && b[it.off] != '/' {
		it.off++
	}
	name := source.Span{File: it.file.ID, Start: nameStart, End: it.off}

	attr := token.Attr{Name: name}

	// Optional "= value", with whitespace allowed around '='.
	save := it.off
	for it.off < it.end && isWhitespace(b[it.off]) {
		it.off++
	}
	if it.off < it.end && b[it.off] == '=' {
		it.off++
		for it.off < it.end && isWhitespace(b[it.off]) {
			it.off++
		}
		attr.Value = it.scanValue()
	} else {
		it.off = save
	}

	folded := tags.FoldName(name.Text(it.file))
	if _, dup := it.seen[folded]; dup {
		attr.Duplicate = true
	} else {
		it.seen[folded] = struct{}{}
	}
	return attr, true
}

func (it *AttrIter) scanValue() *token.AttrValue {
	b := it.file.Content
	if it.off >= it.end {
		// "name=" at the end of the tag: empty unquoted value.
		return &token.AttrValue{
			Span:  source.Span{File: it.file.ID, Start: it.off, End: it.off},
			Quote: token.Unquoted,
		}
	}

	if q := b[it.off]; q == '"' || q == '\'' {
		it.off++
		start := it.off
		for it.off < it.end && b[it.off] != q {
			it.off++
		}
		val := &token.AttrValue{
			Span:  source.Span{File: it.file.ID, Start: start, End: it.off},
			Quote: token.DoubleQuoted,
		}
		if q == '\'' {
			val.Quote = token.SingleQuoted
		}
		if it.off < it.end {
			it.off++ // closing quote
		}
		return val
	}

	start := it.off
	for it.off < it.end && !isWhitespace(b[it.off]) {
		it.off++
	}
	return &token.AttrValue{
		Span:  source.Span{File: it.file.ID, Start: start, End: it.off},
		Quote: token.Unquoted,
	}
}
