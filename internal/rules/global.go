package rules

import (
	"fmt"
	"strconv"
	"strings"

	"htmlcheck/internal/token"
)

// tabindexRule allows negative integers, which NonNegInt cannot.
var tabindexRule = Custom{Fn: func(ctx *Ctx, attr token.Attr) []Problem {
	val, ok := ctx.ValueText(attr)
	if !ok {
		return []Problem{{Msg: "tabindex requires an integer value", Span: attr.Name}}
	}
	if _, err := strconv.ParseInt(strings.TrimSpace(val), 10, 32); err != nil {
		return []Problem{{Msg: fmt.Sprintf("%q is not an integer", val)}}
	}
	return nil
}}

// Global is the attribute table shared by every element. Per-element
// tables shadow it: the walk consults the element set first.
var Global = NewSet(
	Attribute{Name: "id", Rule: Manual{}, Desc: "Unique identifier for the element."},
	Attribute{Name: "class", Rule: Any{}, Desc: "Space-separated list of class names."},
	Attribute{Name: "style", Rule: Any{}, Desc: "Inline CSS declarations."},
	Attribute{Name: "title", Rule: Any{}, Desc: "Advisory information, usually shown as a tooltip."},
	Attribute{Name: "lang", Rule: NotEmpty{}, Desc: "Language of the element's content."},
	Attribute{Name: "dir", Rule: Enum("ltr", "rtl", "auto"), Desc: "Text directionality."},
	Attribute{Name: "hidden", Rule: List{
		Card:    One,
		Extra:   ExtraMissingOrEmpty,
		Entries: []Entry{{Value: "hidden"}, {Value: "until-found"}},
	}, Desc: "Keeps the element out of the page until revealed."},
	Attribute{Name: "tabindex", Rule: tabindexRule, Desc: "Position in sequential focus navigation."},
	Attribute{Name: "accesskey", Rule: NotEmpty{}, Desc: "Keyboard shortcut hint."},
	Attribute{Name: "autofocus", Rule: Bool{}, Desc: "Focus the element when the page loads."},
	Attribute{Name: "contenteditable", Rule: List{
		Card:    One,
		Extra:   ExtraMissingOrEmpty,
		Entries: []Entry{{Value: "true"}, {Value: "false"}, {Value: "plaintext-only"}},
	}, Desc: "Whether the element's content is editable."},
	Attribute{Name: "draggable", Rule: Enum("true", "false"), Desc: "Whether the element can be dragged."},
	Attribute{Name: "spellcheck", Rule: List{
		Card:    One,
		Extra:   ExtraMissingOrEmpty,
		Entries: []Entry{{Value: "true"}, {Value: "false"}},
	}, Desc: "Whether to spell-check the element's content."},
	Attribute{Name: "translate", Rule: List{
		Card:    One,
		Extra:   ExtraMissingOrEmpty,
		Entries: []Entry{{Value: "yes"}, {Value: "no"}},
	}, Desc: "Whether to translate the element's content."},
	Attribute{Name: "autocapitalize", Rule: Enum("off", "none", "on", "sentences", "words", "characters"),
		Desc: "Text input capitalization behavior."},
	Attribute{Name: "enterkeyhint", Rule: Enum("enter", "done", "go", "next", "previous", "search", "send"),
		Desc: "Label for the virtual keyboard's enter key."},
	Attribute{Name: "inputmode", Rule: Enum("none", "text", "tel", "url", "email", "numeric", "decimal", "search"),
		Desc: "Virtual keyboard hint."},
	Attribute{Name: "inert", Rule: Bool{}, Desc: "Makes the element and its subtree non-interactive."},
	Attribute{Name: "is", Rule: NotEmpty{}, Desc: "Name of a customized built-in element."},
	Attribute{Name: "itemid", Rule: Any{}, Desc: "Microdata item identifier."},
	Attribute{Name: "itemprop", Rule: NotEmpty{}, Desc: "Microdata property name."},
	Attribute{Name: "itemref", Rule: NotEmpty{}, Desc: "Microdata additional properties."},
	Attribute{Name: "itemscope", Rule: Bool{}, Desc: "Starts a microdata item."},
	Attribute{Name: "itemtype", Rule: NotEmpty{}, Desc: "Microdata item vocabulary URL."},
	Attribute{Name: "nonce", Rule: NotEmpty{}, Desc: "Cryptographic nonce for Content Security Policy."},
	Attribute{Name: "part", Rule: Any{}, Desc: "Shadow part names exposed by the element."},
	Attribute{Name: "popover", Rule: List{
		Card:    One,
		Extra:   ExtraMissingOrEmpty,
		Entries: []Entry{{Value: "auto"}, {Value: "manual"}, {Value: "hint"}},
	}, Desc: "Makes the element a popover."},
	Attribute{Name: "role", Rule: NotEmpty{}, Desc: "ARIA role of the element."},
	Attribute{Name: "slot", Rule: Any{}, Desc: "Shadow tree slot the element is assigned to."},
	Attribute{Name: "exportparts", Rule: Any{}, Desc: "Shadow parts re-exported from nested trees."},
	Attribute{Name: "writingsuggestions", Rule: List{
		Card:    One,
		Extra:   ExtraMissingOrEmpty,
		Entries: []Entry{{Value: "true"}, {Value: "false"}},
	}, Desc: "Whether browser writing suggestions apply."},
)
