package elements

import (
	"fmt"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/model"
	"htmlcheck/internal/rules"
	"htmlcheck/internal/tags"
	"htmlcheck/internal/tree"
)

func init() {
	register(tags.A, &Descriptor{
		DynModel: func(ctx *rules.Ctx) model.Model {
			m := model.Model{Cats: model.Flow | model.Phrasing,
				Content: model.ContentTransparent, Forbidden: []tags.Tag{tags.A}}
			if _, ok := hasAttr(ctx, "href"); ok {
				m.Cats |= model.Interactive
				m.Extra = model.NoInteractiveDesc | model.NoTabindexDesc
			}
			return m
		},
		Model: model.Model{Cats: model.Flow | model.Phrasing | model.Interactive,
			Content: model.ContentTransparent, Forbidden: []tags.Tag{tags.A}},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "href", Rule: rules.URL{AllowEmpty: true}, Desc: "Link destination."},
			rules.Attribute{Name: "target", Rule: rules.NotEmpty{}, Desc: "Navigation target."},
			rules.Attribute{Name: "rel", Rule: rules.NotEmpty{}, Desc: "Relationship to the destination."},
			rules.Attribute{Name: "download", Rule: rules.Any{}, Desc: "Download instead of navigating."},
			rules.Attribute{Name: "hreflang", Rule: rules.NotEmpty{}, Desc: "Language of the destination."},
			rules.Attribute{Name: "type", Rule: rules.MIME{}, Desc: "MIME type of the destination."},
			rules.Attribute{Name: "ping", Rule: rules.NotEmpty{}, Desc: "URLs to ping on activation."},
			rules.Attribute{Name: "referrerpolicy", Rule: referrerPolicy, Desc: "Referrer to send when following."},
		),
		ValidateAttrs: validateAnchorAttrs,
		Desc:          "Hyperlink anchored on its content.",
	})
	register(tags.Area, &Descriptor{
		DynModel: func(ctx *rules.Ctx) model.Model {
			m := model.Model{Cats: model.Flow | model.Phrasing, Content: model.ContentNone,
				NeedsAncestor: tags.Map}
			if _, ok := hasAttr(ctx, "href"); ok {
				m.Cats |= model.Interactive
			}
			return m
		},
		Model: model.Model{Cats: model.Flow | model.Phrasing | model.Interactive,
			Content: model.ContentNone, NeedsAncestor: tags.Map},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "href", Rule: rules.URL{}, Desc: "Link destination."},
			rules.Attribute{Name: "alt", Rule: rules.Any{}, Desc: "Text alternative for the area."},
			rules.Attribute{Name: "shape", Rule: rules.Enum("rect", "circle", "poly", "default"),
				Desc: "Shape of the hot spot."},
			rules.Attribute{Name: "coords", Rule: rules.NotEmpty{}, Desc: "Coordinates of the shape."},
			rules.Attribute{Name: "target", Rule: rules.NotEmpty{}, Desc: "Navigation target."},
			rules.Attribute{Name: "download", Rule: rules.Any{}, Desc: "Download instead of navigating."},
			rules.Attribute{Name: "ping", Rule: rules.NotEmpty{}, Desc: "URLs to ping on activation."},
			rules.Attribute{Name: "rel", Rule: rules.NotEmpty{}, Desc: "Relationship to the destination."},
			rules.Attribute{Name: "referrerpolicy", Rule: referrerPolicy, Desc: "Referrer to send when following."},
		),
		Desc: "Hot spot in an image map.",
	})
	register(tags.Img, &Descriptor{
		DynModel: func(ctx *rules.Ctx) model.Model {
			m := model.Model{Cats: model.Flow | model.Phrasing, Content: model.ContentNone}
			if _, ok := hasAttr(ctx, "usemap"); ok {
				m.Cats |= model.Interactive
			}
			return m
		},
		Model: model.Model{Cats: model.Flow | model.Phrasing, Content: model.ContentNone},
		Attrs: imgAttrs(),
		Desc:  "Image.",
	})
	register(tags.Picture, &Descriptor{
		Model: model.Model{Cats: model.Flow | model.Phrasing,
			Content: model.ContentCustom},
		Validate:    validatePicture,
		Completions: completePicture,
		Desc:        "Image with alternative sources.",
	})
	register(tags.Source, &Descriptor{
		Model: model.Model{Content: model.ContentNone},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "src", Rule: rules.URL{}, Desc: "URL of the media resource."},
			rules.Attribute{Name: "srcset", Rule: rules.Srcset{}, Desc: "Image candidates."},
			rules.Attribute{Name: "sizes", Rule: rules.NotEmpty{}, Desc: "Rendered size per media condition."},
			rules.Attribute{Name: "type", Rule: rules.MIME{}, Desc: "MIME type of the resource."},
			rules.Attribute{Name: "media", Rule: rules.NotEmpty{}, Desc: "Media query the source applies to."},
			rules.Attribute{Name: "width", Rule: rules.Int(), Desc: "Intrinsic width in pixels."},
			rules.Attribute{Name: "height", Rule: rules.Int(), Desc: "Intrinsic height in pixels."},
		),
		Desc: "Alternative media source.",
	})
	register(tags.Video, &Descriptor{
		DynModel: mediaDynModel(),
		Model: model.Model{Cats: model.Flow | model.Phrasing,
			Content: model.ContentTransparent, Forbidden: []tags.Tag{tags.Video, tags.Audio}},
		Attrs: mediaAttrs(true),
		Desc:  "Video player.",
	})
	register(tags.Audio, &Descriptor{
		DynModel: mediaDynModel(),
		Model: model.Model{Cats: model.Flow | model.Phrasing,
			Content: model.ContentTransparent, Forbidden: []tags.Tag{tags.Video, tags.Audio}},
		Attrs: mediaAttrs(false),
		Desc:  "Audio player.",
	})
	register(tags.Track, &Descriptor{
		Model: model.Model{Content: model.ContentNone},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "src", Rule: rules.URL{}, Required: true, Desc: "URL of the track data."},
			rules.Attribute{Name: "kind", Rule: rules.Enum("subtitles", "captions", "descriptions",
				"chapters", "metadata"), Desc: "Kind of text track."},
			rules.Attribute{Name: "srclang", Rule: rules.NotEmpty{}, Desc: "Language of the track."},
			rules.Attribute{Name: "label", Rule: rules.NotEmpty{}, Desc: "User-visible track title."},
			rules.Attribute{Name: "default", Rule: rules.Bool{}, Desc: "Enable unless preferences say otherwise."},
		),
		Desc: "Timed text track for a media element.",
	})

	// Interactive disclosure elements.
	register(tags.Details, &Descriptor{
		Model: model.Model{Cats: model.Flow | model.Interactive,
			Content: model.ContentCustom},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "open", Rule: rules.Bool{}, Desc: "Show the contents."},
			rules.Attribute{Name: "name", Rule: rules.NotEmpty{}, Desc: "Exclusive accordion group name."},
		),
		Validate:    validateDetails,
		Completions: completeDetails,
		Desc:        "Disclosure widget with a summary.",
	})
	register(tags.Summary, &Descriptor{
		Model: model.Model{Content: model.ContentPhrasing},
		Desc:  "Caption of the enclosing details.",
	})
	register(tags.Dialog, &Descriptor{
		Model: model.Model{Cats: model.Flow, Content: model.ContentFlow},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "open", Rule: rules.Bool{}, Desc: "The dialog is active."},
		),
		Desc: "Dialog box or subwindow.",
	})

	// Ruby annotations.
	register(tags.Ruby, &Descriptor{
		Model: model.Model{Cats: model.Flow | model.Phrasing,
			Content: model.ContentCustom},
		Validate:    validateRuby,
		Completions: completeRuby,
		Desc:        "Base text with ruby annotations.",
	})
	register(tags.Rt, &Descriptor{
		Model: model.Model{Content: model.ContentPhrasing},
		Desc:  "Ruby annotation text.",
	})
	register(tags.Rp, &Descriptor{
		Model: model.Model{Content: model.ContentText},
		Desc:  "Fallback parenthesis around ruby text.",
	})
}

func imgAttrs() *rules.Set {
	return rules.NewSet(
		rules.Attribute{Name: "src", Rule: rules.URL{}, Required: true, Desc: "URL of the image."},
		rules.Attribute{Name: "alt", Rule: rules.Any{}, Required: true, Desc: "Text alternative."},
		rules.Attribute{Name: "srcset", Rule: rules.Srcset{}, Desc: "Image candidates."},
		rules.Attribute{Name: "sizes", Rule: rules.NotEmpty{}, Desc: "Rendered size per media condition."},
		rules.Attribute{Name: "width", Rule: rules.Int(), Desc: "Intrinsic width in pixels."},
		rules.Attribute{Name: "height", Rule: rules.Int(), Desc: "Intrinsic height in pixels."},
		rules.Attribute{Name: "loading", Rule: rules.Enum("lazy", "eager"), Desc: "Deferral hint for loading."},
		rules.Attribute{Name: "decoding", Rule: rules.Enum("sync", "async", "auto"), Desc: "Decoding hint."},
		rules.Attribute{Name: "fetchpriority", Rule: rules.Enum("high", "low", "auto"), Desc: "Fetch priority hint."},
		rules.Attribute{Name: "crossorigin", Rule: rules.CORS{}, Desc: "CORS settings for the fetch."},
		rules.Attribute{Name: "usemap", Rule: rules.HashNameRef{}, Desc: "Image map to use."},
		rules.Attribute{Name: "ismap", Rule: rules.Bool{}, Desc: "Server-side image map."},
		rules.Attribute{Name: "referrerpolicy", Rule: referrerPolicy, Desc: "Referrer to send when fetching."},
	)
}

func mediaAttrs(video bool) *rules.Set {
	attrs := []rules.Attribute{
		{Name: "src", Rule: rules.URL{}, Desc: "URL of the media resource."},
		{Name: "controls", Rule: rules.Bool{}, Desc: "Show playback controls."},
		{Name: "autoplay", Rule: rules.Bool{}, Desc: "Start playback automatically."},
		{Name: "loop", Rule: rules.Bool{}, Desc: "Restart playback at the end."},
		{Name: "muted", Rule: rules.Bool{}, Desc: "Mute by default."},
		{Name: "preload", Rule: rules.List{
			Card:    rules.One,
			Extra:   rules.ExtraMissingOrEmpty,
			Entries: []rules.Entry{{Value: "none"}, {Value: "metadata"}, {Value: "auto"}},
		}, Desc: "How much to buffer ahead of playback."},
		{Name: "crossorigin", Rule: rules.CORS{}, Desc: "CORS settings for the fetch."},
	}
	if video {
		attrs = append(attrs,
			rules.Attribute{Name: "poster", Rule: rules.URL{}, Desc: "Image shown before playback."},
			rules.Attribute{Name: "playsinline", Rule: rules.Bool{}, Desc: "Play within the element's box."},
			rules.Attribute{Name: "width", Rule: rules.Int(), Desc: "Intrinsic width in pixels."},
			rules.Attribute{Name: "height", Rule: rules.Int(), Desc: "Intrinsic height in pixels."},
		)
	}
	return rules.NewSet(attrs...)
}

func mediaDynModel() func(*rules.Ctx) model.Model {
	return func(ctx *rules.Ctx) model.Model {
		m := model.Model{Cats: model.Flow | model.Phrasing,
			Content: model.ContentTransparent, Forbidden: []tags.Tag{tags.Video, tags.Audio}}
		if _, ok := hasAttr(ctx, "controls"); ok {
			m.Cats |= model.Interactive
		}
		return m
	}
}

// validateAnchorAttrs is the standard walk plus the rule that the
// link-dependent attributes need an href to act on.
func validateAnchorAttrs(ctx *rules.Ctx) {
	rules.Walk(ctx, Get(tags.A).Attrs)
	if _, ok := hasAttr(ctx, "href"); ok {
		return
	}
	for _, dep := range []string{"target", "download", "ping", "rel", "hreflang", "type", "referrerpolicy"} {
		if _, ok := hasAttr(ctx, dep); ok {
			diag.ReportWarning(ctx.Rep, diag.AttrInvalidCombination, ctx.Tree.Get(ctx.Node).Name,
				fmt.Sprintf("the %s attribute has no effect without href", dep)).
				WithNode(uint32(ctx.Node)).Emit()
		}
	}
}

// validatePicture: zero or more source elements strictly before
// exactly one img.
func validatePicture(ctx *rules.Ctx) {
	rejectText(ctx)
	img := tree.Root
	for _, id := range elementChildren(ctx) {
		n := ctx.Tree.Get(id)
		switch n.Tag {
		case tags.Source:
			if img != tree.Root {
				diag.ReportError(ctx.Rep, diag.ContentWrongSequence, n.Name,
					"<source> must come before the <img>").
					WithNote(ctx.Tree.Get(img).Name, "the <img> is here").
					WithNode(uint32(id)).Emit()
				continue
			}
			if _, ok := attrOn(ctx, id, "srcset"); !ok {
				diag.ReportError(ctx.Rep, diag.AttrMissingRequired, n.Name,
					"a <source> inside <picture> requires a srcset attribute").
					WithNode(uint32(id)).Emit()
			}
		case tags.Img:
			if img != tree.Root {
				dupChild(ctx, id, img, "img")
				continue
			}
			img = id
		case tags.Script, tags.Template:
		default:
			diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, n.Name,
				fmt.Sprintf("<%s> is not allowed inside <picture>", ctx.Tree.TagName(id))).
				WithNode(uint32(id)).Emit()
		}
	}
	if img == tree.Root {
		diag.ReportError(ctx.Rep, diag.ContentMissingChild, ctx.Tree.Get(ctx.Node).Name,
			"<picture> requires an <img> child").WithNode(uint32(ctx.Node)).Emit()
	}
}

func completePicture(ctx *rules.Ctx, off uint32) []Completion {
	var out []Completion
	img := firstChildTag(ctx, tags.Img)
	if img == tree.Root || off <= ctx.Tree.Get(img).Span.Start {
		out = append(out, Completion{Label: "source", Desc: Get(tags.Source).Desc})
	}
	if img == tree.Root {
		out = append(out, Completion{Label: "img", Desc: Get(tags.Img).Desc})
	}
	return out
}

// attrOn reads an attribute off a node other than ctx.Node.
func attrOn(ctx *rules.Ctx, id tree.NodeID, name string) (string, bool) {
	cctx := *ctx
	cctx.Node = id
	return rules.AttrValue(&cctx, name)
}

// validateDetails: an optional summary, first, then flow content.
func validateDetails(ctx *rules.Ctx) {
	for i, id := range elementChildren(ctx) {
		n := ctx.Tree.Get(id)
		if n.Tag != tags.Summary {
			continue
		}
		if i != 0 {
			diag.ReportError(ctx.Rep, diag.ContentWrongPosition, n.Name,
				"<summary> must be the first child of <details>").
				WithNode(uint32(id)).Emit()
		} else if second := secondChildTag(ctx, tags.Summary); second != tree.Root {
			dupChild(ctx, second, id, "summary")
		}
	}
}

func secondChildTag(ctx *rules.Ctx, tag tags.Tag) tree.NodeID {
	seen := false
	for _, id := range elementChildren(ctx) {
		if ctx.Tree.Get(id).Tag != tag {
			continue
		}
		if seen {
			return id
		}
		seen = true
	}
	return tree.Root
}

func completeDetails(ctx *rules.Ctx, off uint32) []Completion {
	var out []Completion
	if firstChildTag(ctx, tags.Summary) == tree.Root {
		out = append(out, Completion{Label: "summary", Desc: Get(tags.Summary).Desc})
	}
	return append(out, GenericCompletions(model.ContentFlow)...)
}

// validateRuby: phrasing content optionally interrupted by rp/rt/rp
// triples. An opened triple must be completed before the children end.
func validateRuby(ctx *rules.Ctx) {
	// 0 outside, 1 after opening rp, 2 after rt.
	state := 0
	var openRp tree.NodeID
	for _, id := range elementChildren(ctx) {
		n := ctx.Tree.Get(id)
		switch n.Tag {
		case tags.Rp:
			switch state {
			case 0:
				state, openRp = 1, id
			case 1:
				diag.ReportError(ctx.Rep, diag.ContentWrongSequence, n.Name,
					"expected <rt> between the <rp> pair").WithNode(uint32(id)).Emit()
				openRp = id
			case 2:
				state = 0
			}
		case tags.Rt:
			switch state {
			case 0:
				// A bare rt without rp fallback is fine.
			case 1:
				state = 2
			case 2:
				diag.ReportError(ctx.Rep, diag.ContentWrongSequence, n.Name,
					"expected a closing <rp> after the <rt>").WithNode(uint32(id)).Emit()
			}
		default:
			if state != 0 {
				diag.ReportError(ctx.Rep, diag.ContentWrongSequence, n.Name,
					"annotation triple interrupted by other content").
					WithNote(ctx.Tree.Get(openRp).Name, "the triple opens here").
					WithNode(uint32(id)).Emit()
				state = 0
			}
			if !childCats(ctx, id).Overlaps(model.Phrasing) {
				diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, n.Name,
					fmt.Sprintf("<%s> is not phrasing content", ctx.Tree.TagName(id))).
					WithNode(uint32(id)).Emit()
			}
		}
	}
	if state != 0 {
		diag.ReportError(ctx.Rep, diag.ContentMissingChild, ctx.Tree.Get(openRp).Name,
			"annotation triple is not completed before the end of <ruby>").
			WithNode(uint32(openRp)).Emit()
	}
}

func completeRuby(ctx *rules.Ctx, off uint32) []Completion {
	return []Completion{
		{Label: "rt", Desc: Get(tags.Rt).Desc},
		{Label: "rp", Desc: Get(tags.Rp).Desc},
	}
}
