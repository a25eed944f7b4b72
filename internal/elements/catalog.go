package elements

import (
	"htmlcheck/internal/model"
	"htmlcheck/internal/rules"
	"htmlcheck/internal/tags"
)

// The plain elements: those whose content model is fully expressed by
// a Model value and an attribute table. Elements with sequential
// grammars live in their own files.

func init() {
	// Sections.
	register(tags.Article, &Descriptor{Model: mSectioning,
		Desc: "Self-contained composition, independently distributable."})
	register(tags.Section, &Descriptor{Model: mSectioning,
		Desc: "Generic section of a document, typically with a heading."})
	register(tags.Nav, &Descriptor{Model: mSectioning,
		Desc: "Section with navigation links."})
	register(tags.Aside, &Descriptor{Model: mSectioning,
		Desc: "Content tangentially related to the surrounding content."})
	register(tags.H1, &Descriptor{Model: mHeading, Desc: "Top-level section heading."})
	register(tags.H2, &Descriptor{Model: mHeading, Desc: "Section heading, level 2."})
	register(tags.H3, &Descriptor{Model: mHeading, Desc: "Section heading, level 3."})
	register(tags.H4, &Descriptor{Model: mHeading, Desc: "Section heading, level 4."})
	register(tags.H5, &Descriptor{Model: mHeading, Desc: "Section heading, level 5."})
	register(tags.H6, &Descriptor{Model: mHeading, Desc: "Section heading, level 6."})
	register(tags.Hgroup, &Descriptor{Model: mFlow,
		Desc: "Heading grouped with its subheadings."})
	register(tags.Header, &Descriptor{
		Model: model.Model{Cats: model.Flow, Content: model.ContentFlow,
			Forbidden: []tags.Tag{tags.Header, tags.Footer, tags.Main}},
		Desc: "Introductory content for its nearest sectioning ancestor."})
	register(tags.Footer, &Descriptor{
		Model: model.Model{Cats: model.Flow, Content: model.ContentFlow,
			Forbidden: []tags.Tag{tags.Header, tags.Footer, tags.Main}},
		Desc: "Footer for its nearest sectioning ancestor."})
	register(tags.Address, &Descriptor{
		Model: model.Model{Cats: model.Flow, Content: model.ContentFlow,
			Forbidden: []tags.Tag{tags.Address, tags.Header, tags.Footer}},
		Desc: "Contact information for its nearest article or body."})
	register(tags.Main, &Descriptor{Model: mFlow,
		Desc: "Dominant content of the document."})
	register(tags.Search, &Descriptor{Model: mFlow,
		Desc: "Section containing search or filtering controls."})

	// Grouping content.
	register(tags.P, &Descriptor{Model: mFlowPhrasing, Desc: "Paragraph."})
	register(tags.Hr, &Descriptor{
		Model: model.Model{Cats: model.Flow, Content: model.ContentNone},
		Desc:  "Thematic break between paragraph-level content."})
	register(tags.Pre, &Descriptor{Model: mFlowPhrasing,
		Desc: "Block of preformatted text."})
	register(tags.Blockquote, &Descriptor{Model: mFlow,
		Attrs: rules.NewSet(
			rules.Attribute{Name: "cite", Rule: rules.URL{}, Desc: "Source of the quotation."},
		),
		Desc: "Content quoted from another source."})
	register(tags.Div, &Descriptor{Model: mFlow,
		Desc: "Generic flow container with no meaning of its own."})
	register(tags.Figure, &Descriptor{Model: mFlow,
		Desc: "Self-contained content, optionally with a caption."})
	register(tags.Figcaption, &Descriptor{Model: mFlow,
		Desc: "Caption for the enclosing figure."})

	// Text-level semantics.
	register(tags.Em, &Descriptor{Model: mPhrasing, Desc: "Stress emphasis."})
	register(tags.Strong, &Descriptor{Model: mPhrasing, Desc: "Strong importance."})
	register(tags.Small, &Descriptor{Model: mPhrasing, Desc: "Side comment, such as fine print."})
	register(tags.S, &Descriptor{Model: mPhrasing, Desc: "Content that is no longer accurate."})
	register(tags.Cite, &Descriptor{Model: mPhrasing, Desc: "Title of a cited work."})
	register(tags.Q, &Descriptor{Model: mPhrasing,
		Attrs: rules.NewSet(
			rules.Attribute{Name: "cite", Rule: rules.URL{}, Desc: "Source of the quotation."},
		),
		Desc: "Inline quotation."})
	register(tags.Dfn, &Descriptor{
		Model: model.Model{Cats: model.Flow | model.Phrasing,
			Content: model.ContentPhrasing, Forbidden: []tags.Tag{tags.Dfn}},
		Desc: "Defining instance of a term."})
	register(tags.Abbr, &Descriptor{Model: mPhrasing, Desc: "Abbreviation or acronym."})
	register(tags.Data, &Descriptor{Model: mPhrasing,
		Attrs: rules.NewSet(
			rules.Attribute{Name: "value", Rule: rules.NotEmpty{}, Required: true,
				Desc: "Machine-readable form of the content."},
		),
		Desc: "Content paired with a machine-readable value."})
	register(tags.Time, &Descriptor{Model: mPhrasing,
		Attrs: rules.NewSet(
			rules.Attribute{Name: "datetime", Rule: rules.NotEmpty{},
				Desc: "Machine-readable date or time."},
		),
		Desc: "Date, time, or duration."})
	register(tags.Code, &Descriptor{Model: mPhrasing, Desc: "Fragment of computer code."})
	register(tags.Var, &Descriptor{Model: mPhrasing, Desc: "Variable name."})
	register(tags.Samp, &Descriptor{Model: mPhrasing, Desc: "Sample program output."})
	register(tags.Kbd, &Descriptor{Model: mPhrasing, Desc: "User keyboard input."})
	register(tags.Sub, &Descriptor{Model: mPhrasing, Desc: "Subscript."})
	register(tags.Sup, &Descriptor{Model: mPhrasing, Desc: "Superscript."})
	register(tags.I, &Descriptor{Model: mPhrasing, Desc: "Text in an alternate voice or mood."})
	register(tags.B, &Descriptor{Model: mPhrasing, Desc: "Text drawing attention without importance."})
	register(tags.U, &Descriptor{Model: mPhrasing, Desc: "Unarticulated annotation."})
	register(tags.Mark, &Descriptor{Model: mPhrasing, Desc: "Text highlighted for reference."})
	register(tags.Bdi, &Descriptor{Model: mPhrasing, Desc: "Text isolated from surrounding directionality."})
	register(tags.Bdo, &Descriptor{Model: mPhrasing,
		Attrs: rules.NewSet(
			rules.Attribute{Name: "dir", Rule: rules.Enum("ltr", "rtl"), Required: true,
				Desc: "Override of the text direction."},
		),
		Desc: "Explicit text directionality override."})
	register(tags.Span, &Descriptor{Model: mPhrasing,
		Desc: "Generic phrasing container with no meaning of its own."})
	register(tags.Br, &Descriptor{Model: mPhrasingVoid, Desc: "Line break."})
	register(tags.Wbr, &Descriptor{Model: mPhrasingVoid, Desc: "Line break opportunity."})

	// Edits.
	register(tags.Ins, &Descriptor{Model: mTransparent,
		Attrs: editAttrs(), Desc: "Content added to the document."})
	register(tags.Del, &Descriptor{Model: mTransparent,
		Attrs: editAttrs(), Desc: "Content removed from the document."})

	// Embedded content without custom grammars.
	register(tags.Iframe, &Descriptor{
		Model: model.Model{Cats: model.Flow | model.Phrasing | model.Interactive,
			Content: model.ContentNone},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "src", Rule: rules.URL{}, Desc: "URL of the embedded page."},
			rules.Attribute{Name: "srcdoc", Rule: rules.Any{}, Desc: "Inline content of the embedded page."},
			rules.Attribute{Name: "name", Rule: rules.NotEmpty{}, Desc: "Browsing context name."},
			rules.Attribute{Name: "sandbox", Rule: rules.Any{}, Desc: "Extra restrictions on the embedded content."},
			rules.Attribute{Name: "allow", Rule: rules.Any{}, Desc: "Permissions policy for the frame."},
			rules.Attribute{Name: "allowfullscreen", Rule: rules.Bool{}, Desc: "Permit fullscreen requests."},
			rules.Attribute{Name: "width", Rule: rules.Int(), Desc: "Horizontal dimension in pixels."},
			rules.Attribute{Name: "height", Rule: rules.Int(), Desc: "Vertical dimension in pixels."},
			rules.Attribute{Name: "loading", Rule: rules.Enum("lazy", "eager"), Desc: "Deferral hint for loading."},
			rules.Attribute{Name: "referrerpolicy", Rule: referrerPolicy, Desc: "Referrer to send when fetching."},
		),
		Desc: "Nested browsing context."})
	register(tags.Embed, &Descriptor{
		Model: model.Model{Cats: model.Flow | model.Phrasing | model.Interactive,
			Content: model.ContentNone},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "src", Rule: rules.URL{}, Desc: "URL of the resource."},
			rules.Attribute{Name: "type", Rule: rules.MIME{}, Desc: "MIME type of the resource."},
			rules.Attribute{Name: "width", Rule: rules.Int(), Desc: "Horizontal dimension in pixels."},
			rules.Attribute{Name: "height", Rule: rules.Int(), Desc: "Vertical dimension in pixels."},
		),
		Desc: "Integration point for an external resource."})
	register(tags.Object, &Descriptor{
		DynModel: func(ctx *rules.Ctx) model.Model {
			m := model.Model{Cats: model.Flow | model.Phrasing, Content: model.ContentTransparent}
			if _, ok := hasAttr(ctx, "usemap"); ok {
				m.Cats |= model.Interactive
			}
			return m
		},
		Model: mTransparent,
		Attrs: rules.NewSet(
			rules.Attribute{Name: "data", Rule: rules.URL{}, Desc: "URL of the resource."},
			rules.Attribute{Name: "type", Rule: rules.MIME{}, Desc: "MIME type of the resource."},
			rules.Attribute{Name: "name", Rule: rules.NotEmpty{}, Desc: "Browsing context name."},
			rules.Attribute{Name: "form", Rule: rules.NotEmpty{}, Desc: "Associated form element id."},
			rules.Attribute{Name: "usemap", Rule: rules.HashNameRef{}, Desc: "Image map to use."},
			rules.Attribute{Name: "width", Rule: rules.Int(), Desc: "Horizontal dimension in pixels."},
			rules.Attribute{Name: "height", Rule: rules.Int(), Desc: "Vertical dimension in pixels."},
		),
		Desc: "External resource treated as an image, frame, or plugin."})
	register(tags.Map, &Descriptor{Model: mTransparent,
		Attrs: rules.NewSet(
			rules.Attribute{Name: "name", Rule: rules.NotEmpty{}, Required: true,
				Desc: "Name referenced by usemap attributes."},
		),
		Desc: "Image map definition."})
	register(tags.Canvas, &Descriptor{Model: mTransparent,
		Attrs: rules.NewSet(
			rules.Attribute{Name: "width", Rule: rules.Int(), Desc: "Horizontal dimension in pixels."},
			rules.Attribute{Name: "height", Rule: rules.Int(), Desc: "Vertical dimension in pixels."},
		),
		Desc: "Scriptable bitmap canvas."})

	// Foreign content roots. Their subtrees are opaque; the models
	// exist so the islands classify as embedded content.
	register(tags.Svg, &Descriptor{
		Model: model.Model{Cats: model.Flow | model.Phrasing, Content: model.ContentAll},
		Desc:  "SVG island."})
	register(tags.Math, &Descriptor{
		Model: model.Model{Cats: model.Flow | model.Phrasing, Content: model.ContentAll},
		Desc:  "MathML island."})

	// Scripting.
	register(tags.Noscript, &Descriptor{
		Model: model.Model{Cats: model.Metadata | model.Flow | model.Phrasing,
			Content: model.ContentTransparent, Forbidden: []tags.Tag{tags.Noscript}},
		Desc: "Fallback content for when scripting is disabled."})
	register(tags.Template, &Descriptor{
		Model: model.Model{Cats: model.Metadata | model.Flow | model.Phrasing,
			Content: model.ContentAll},
		Desc: "Inert fragment cloned by scripts."})
	register(tags.Slot, &Descriptor{Model: mTransparent,
		Attrs: rules.NewSet(
			rules.Attribute{Name: "name", Rule: rules.Any{}, Desc: "Slot name."},
		),
		Desc: "Shadow tree insertion point."})
}

// editAttrs is shared by ins and del.
func editAttrs() *rules.Set {
	return rules.NewSet(
		rules.Attribute{Name: "cite", Rule: rules.URL{}, Desc: "URL explaining the change."},
		rules.Attribute{Name: "datetime", Rule: rules.NotEmpty{}, Desc: "When the change was made."},
	)
}

// referrerPolicy is shared across fetch-capable elements. The empty
// string means the default policy.
var referrerPolicy = rules.List{
	Card:  rules.One,
	Extra: rules.ExtraMissingOrEmpty,
	Entries: []rules.Entry{
		{Value: "no-referrer"}, {Value: "no-referrer-when-downgrade"},
		{Value: "same-origin"}, {Value: "origin"}, {Value: "strict-origin"},
		{Value: "origin-when-cross-origin"}, {Value: "strict-origin-when-cross-origin"},
		{Value: "unsafe-url"},
	},
}
