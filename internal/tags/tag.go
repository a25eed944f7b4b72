// Package tags defines the closed enum of HTML element names plus the
// structural classifications the tokenizer and tree builder depend on:
// void elements, raw text elements, and foreign content roots.
package tags

// Tag identifies a known HTML element kind. Unknown retains elements
// whose name is not in the catalog; they still participate in the tree.
type Tag uint8

const (
	Unknown Tag = iota
	A
	Abbr
	Address
	Area
	Article
	Aside
	Audio
	B
	Base
	Bdi
	Bdo
	Blockquote
	Body
	Br
	Button
	Canvas
	Caption
	Cite
	Code
	Col
	Colgroup
	Data
	Datalist
	Dd
	Del
	Details
	Dfn
	Dialog
	Div
	Dl
	Dt
	Em
	Embed
	Fieldset
	Figcaption
	Figure
	Footer
	Form
	H1
	H2
	H3
	H4
	H5
	H6
	Head
	Header
	Hgroup
	Hr
	Html
	I
	Iframe
	Img
	Input
	Ins
	Kbd
	Label
	Legend
	Li
	Link
	Main
	Map
	Mark
	Math
	Menu
	Meta
	Meter
	Nav
	Noscript
	Object
	Ol
	Optgroup
	Option
	Output
	P
	Picture
	Pre
	Progress
	Q
	Rp
	Rt
	Ruby
	S
	Samp
	Script
	Search
	Section
	Select
	Slot
	Small
	Source
	Span
	Strong
	Style
	Sub
	Summary
	Sup
	Svg
	Table
	Tbody
	Td
	Template
	Textarea
	Tfoot
	Th
	Thead
	Time
	Title
	Tr
	Track
	U
	Ul
	Var
	Video
	Wbr

	// Count is the number of tag kinds including Unknown.
	Count
)

var tagNames = [...]string{
	Unknown:    "",
	A:          "a",
	Abbr:       "abbr",
	Address:    "address",
	Area:       "area",
	Article:    "article",
	Aside:      "aside",
	Audio:      "audio",
	B:          "b",
	Base:       "base",
	Bdi:        "bdi",
	Bdo:        "bdo",
	Blockquote: "blockquote",
	Body:       "body",
	Br:         "br",
	Button:     "button",
	Canvas:     "canvas",
	Caption:    "caption",
	Cite:       "cite",
	Code:       "code",
	Col:        "col",
	Colgroup:   "colgroup",
	Data:       "data",
	Datalist:   "datalist",
	Dd:         "dd",
	Del:        "del",
	Details:    "details",
	Dfn:        "dfn",
	Dialog:     "dialog",
	Div:        "div",
	Dl:         "dl",
	Dt:         "dt",
	Em:         "em",
	Embed:      "embed",
	Fieldset:   "fieldset",
	Figcaption: "figcaption",
	Figure:     "figure",
	Footer:     "footer",
	Form:       "form",
	H1:         "h1",
	H2:         "h2",
	H3:         "h3",
	H4:         "h4",
	H5:         "h5",
	H6:         "h6",
	Head:       "head",
	Header:     "header",
	Hgroup:     "hgroup",
	Hr:         "hr",
	Html:       "html",
	I:          "i",
	Iframe:     "iframe",
	Img:        "img",
	Input:      "input",
	Ins:        "ins",
	Kbd:        "kbd",
	Label:      "label",
	Legend:     "legend",
	Li:         "li",
	Link:       "link",
	Main:       "main",
	Map:        "map",
	Mark:       "mark",
	Math:       "math",
	Menu:       "menu",
	Meta:       "meta",
	Meter:      "meter",
	Nav:        "nav",
	Noscript:   "noscript",
	Object:     "object",
	Ol:         "ol",
	Optgroup:   "optgroup",
	Option:     "option",
	Output:     "output",
	P:          "p",
	Picture:    "picture",
	Pre:        "pre",
	Progress:   "progress",
	Q:          "q",
	Rp:         "rp",
	Rt:         "rt",
	Ruby:       "ruby",
	S:          "s",
	Samp:       "samp",
	Script:     "script",
	Search:     "search",
	Section:    "section",
	Select:     "select",
	Slot:       "slot",
	Small:      "small",
	Source:     "source",
	Span:       "span",
	Strong:     "strong",
	Style:      "style",
	Sub:        "sub",
	Summary:    "summary",
	Sup:        "sup",
	Svg:        "svg",
	Table:      "table",
	Tbody:      "tbody",
	Td:         "td",
	Template:   "template",
	Textarea:   "textarea",
	Tfoot:      "tfoot",
	Th:         "th",
	Thead:      "thead",
	Time:       "time",
	Title:      "title",
	Tr:         "tr",
	Track:      "track",
	U:          "u",
	Ul:         "ul",
	Var:        "var",
	Video:      "video",
	Wbr:        "wbr",
}

var byName = func() map[string]Tag {
	m := make(map[string]Tag, len(tagNames))
	for t, name := range tagNames {
		if name != "" {
			m[name] = Tag(t)
		}
	}
	return m
}()

// Name returns the canonical lowercase element name.
func (t Tag) Name() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return ""
}

func (t Tag) String() string {
	if t == Unknown {
		return "unknown"
	}
	return t.Name()
}

// Lookup resolves a raw tag name, case-insensitively, to its Tag.
func Lookup(name []byte) (Tag, bool) {
	t, ok := byName[FoldName(name)]
	return t, ok
}

// FoldName lowercases an ASCII tag or attribute name. HTML names are
// ASCII case-insensitive by definition; non-ASCII bytes pass through.
func FoldName(name []byte) string {
	for i := 0; i < len(name); i++ {
		if name[i] >= 'A' && name[i] <= 'Z' {
			buf := make([]byte, len(name))
			copy(buf, name)
			for ; i < len(buf); i++ {
				if buf[i] >= 'A' && buf[i] <= 'Z' {
					buf[i] += 'a' - 'A'
				}
			}
			return string(buf)
		}
	}
	return string(name)
}
