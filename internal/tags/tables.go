package tags

// voidTags never have children; an open tag is the whole element.
var voidTags = map[Tag]bool{
	Area:   true,
	Base:   true,
	Br:     true,
	Col:    true,
	Embed:  true,
	Hr:     true,
	Img:    true,
	Input:  true,
	Link:   true,
	Meta:   true,
	Source: true,
	Track:  true,
	Wbr:    true,
}

// rawTextNames are scanned verbatim once opened: the tokenizer looks
// only for the matching case-insensitive end tag and ignores markup
// delimiters inside. Covers both raw text (script, style) and escapable
// raw text (title, textarea); the distinction only matters for entity
// decoding, which this tool does not perform.
var rawTextNames = map[string]bool{
	"script":   true,
	"style":    true,
	"textarea": true,
	"title":    true,
	"xmp":      true,
	"iframe":   true,
	"noembed":  true,
	"noframes": true,
}

// IsVoid reports whether the element can never have content.
func (t Tag) IsVoid() bool {
	return voidTags[t]
}

// IsRawTextName reports whether a (folded) tag name switches the
// tokenizer into raw text scanning.
func IsRawTextName(folded string) bool {
	return rawTextNames[folded]
}

// IsForeignRoot reports whether the element opens a foreign content
// island whose subtree is opaque to content checks.
func (t Tag) IsForeignRoot() bool {
	return t == Svg || t == Math
}

// IsHeading reports whether the tag is one of h1..h6.
func (t Tag) IsHeading() bool {
	return t >= H1 && t <= H6
}
