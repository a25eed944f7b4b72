package diag

import (
	"fmt"
)

// Code is a compact numeric diagnostic identifier, banded per phase:
// tokenizer 1000s, tree builder 2000s, content model 3000s, attributes
// 4000s.
type Code uint16

const (
	UnknownCode Code = 0

	// Tokenizer findings.
	LexInfo            Code = 1000
	LexUnclosedTag     Code = 1001
	LexUnclosedComment Code = 1002
	LexUnclosedDoctype Code = 1003
	LexUnclosedRawText Code = 1004

	// Tree builder findings.
	TreeInfo              Code = 2000
	TreeStrayCloseTag     Code = 2001
	TreeMismatchedClose   Code = 2002
	TreeUnclosedElement   Code = 2003
	TreeMissingDoctype    Code = 2004
	TreeLegacyDoctype     Code = 2005
	TreeVoidWithCloseTag  Code = 2006
	TreeUnknownElement    Code = 2007
	TreeSelfClosingNonVoid Code = 2008

	// Content model findings.
	ContentInvalidNesting  Code = 3001
	ContentWrongPosition   Code = 3002
	ContentWrongSequence   Code = 3003
	ContentDuplicateChild  Code = 3004
	ContentMissingChild    Code = 3005
	ContentMissingAncestor Code = 3006

	// Attribute findings.
	AttrUnknown            Code = 4001
	AttrInvalidValue       Code = 4002
	AttrMissingValue       Code = 4003
	AttrMissingRequired    Code = 4004
	AttrInvalidCombination Code = 4005
	AttrDuplicate          Code = 4006
	AttrDuplicateID        Code = 4007
	AttrInvalidNesting     Code = 4008
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown finding",

	LexInfo:            "tokenizer note",
	LexUnclosedTag:     "tag is not closed before end of file",
	LexUnclosedComment: "comment is not closed before end of file",
	LexUnclosedDoctype: "doctype is not closed before end of file",
	LexUnclosedRawText: "raw text element has no matching end tag",

	TreeInfo:               "tree builder note",
	TreeStrayCloseTag:      "close tag without a matching open tag",
	TreeMismatchedClose:    "close tag does not match the open element",
	TreeUnclosedElement:    "element is never closed",
	TreeMissingDoctype:     "document has no doctype",
	TreeLegacyDoctype:      "legacy doctype content",
	TreeVoidWithCloseTag:   "void element has a close tag",
	TreeUnknownElement:     "unknown element name",
	TreeSelfClosingNonVoid: "self-closing syntax on a non-void element",

	ContentInvalidNesting:  "element not allowed here",
	ContentWrongPosition:   "element allowed here but in the wrong position",
	ContentWrongSequence:   "element appears after a later phase of its parent's content",
	ContentDuplicateChild:  "at most one such child is allowed",
	ContentMissingChild:    "required child is missing",
	ContentMissingAncestor: "element used outside its required ancestor",

	AttrUnknown:            "unknown attribute",
	AttrInvalidValue:       "invalid attribute value",
	AttrMissingValue:       "attribute requires a value",
	AttrMissingRequired:    "required attribute is missing",
	AttrInvalidCombination: "invalid attribute combination",
	AttrDuplicate:          "duplicate attribute",
	AttrDuplicateID:        "duplicate id",
	AttrInvalidNesting:     "attribute not allowed in this nesting",
}

// ID returns the stable short identifier, e.g. "HTM3001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("TREE%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("HTM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("ATTR%04d", ic)
	}
	return "E0000"
}

// Title returns the generic description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
