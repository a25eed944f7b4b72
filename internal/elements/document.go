package elements

import (
	"fmt"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/model"
	"htmlcheck/internal/rules"
	"htmlcheck/internal/tags"
	"htmlcheck/internal/tree"
)

// Document structure: html wants head then body, head wants metadata
// with at most one title and at most one base. Both are sequential
// grammars, not category tests.

func init() {
	register(tags.Html, &Descriptor{
		Model: model.Model{Content: model.ContentCustom},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "xmlns", Rule: rules.URL{}, Desc: "XML namespace, for XHTML serializations."},
			rules.Attribute{Name: "manifest", Rule: rules.URL{}, Desc: "Legacy application cache manifest."},
		),
		Validate:    validateHTML,
		Completions: completeHTML,
		Desc:        "Root element of the document.",
	})
	register(tags.Head, &Descriptor{
		Model:       model.Model{Content: model.ContentCustom},
		Validate:    validateHead,
		Completions: completeHead,
		Desc:        "Container for document metadata.",
	})
	register(tags.Body, &Descriptor{
		Model: model.Model{Content: model.ContentFlow},
		Desc:  "Document body.",
	})
	register(tags.Title, &Descriptor{
		Model: model.Model{Cats: model.Metadata, Content: model.ContentText},
		Desc:  "Document title, shown in the browser chrome.",
	})
	register(tags.Base, &Descriptor{
		Model: mMetaVoid,
		Attrs: rules.NewSet(
			rules.Attribute{Name: "href", Rule: rules.URL{}, Desc: "Base URL for relative URLs."},
			rules.Attribute{Name: "target", Rule: rules.NotEmpty{}, Desc: "Default navigation target."},
		),
		ValidateAttrs: validateBaseAttrs,
		Desc:          "Base URL and default target for the document.",
	})
	register(tags.Link, &Descriptor{
		Model: mMetaVoid,
		Attrs: rules.NewSet(
			rules.Attribute{Name: "href", Rule: rules.URL{}, Required: true, Desc: "URL of the linked resource."},
			rules.Attribute{Name: "rel", Rule: rules.NotEmpty{}, Desc: "Relationship to the linked resource."},
			rules.Attribute{Name: "as", Rule: rules.Enum("audio", "document", "embed", "fetch",
				"font", "image", "object", "script", "style", "track", "video", "worker"),
				Desc: "Destination for preloading."},
			rules.Attribute{Name: "type", Rule: rules.MIME{}, Desc: "MIME type of the linked resource."},
			rules.Attribute{Name: "media", Rule: rules.NotEmpty{}, Desc: "Media query the link applies to."},
			rules.Attribute{Name: "sizes", Rule: rules.NotEmpty{}, Desc: "Icon sizes."},
			rules.Attribute{Name: "crossorigin", Rule: rules.CORS{}, Desc: "CORS settings for the fetch."},
			rules.Attribute{Name: "integrity", Rule: rules.NotEmpty{}, Desc: "Subresource integrity hash."},
			rules.Attribute{Name: "hreflang", Rule: rules.NotEmpty{}, Desc: "Language of the linked resource."},
			rules.Attribute{Name: "referrerpolicy", Rule: referrerPolicy, Desc: "Referrer to send when fetching."},
			rules.Attribute{Name: "fetchpriority", Rule: rules.Enum("high", "low", "auto"),
				Desc: "Fetch priority hint."},
			rules.Attribute{Name: "disabled", Rule: rules.Bool{}, Desc: "Disables a stylesheet link."},
		),
		Desc: "Link from the document to an external resource.",
	})
	register(tags.Meta, &Descriptor{
		Model: mMetaVoid,
		Attrs: rules.NewSet(
			rules.Attribute{Name: "name", Rule: rules.NotEmpty{}, Desc: "Metadata name."},
			rules.Attribute{Name: "content", Rule: rules.Any{}, Desc: "Metadata value."},
			rules.Attribute{Name: "charset", Rule: rules.Enum("utf-8"), Desc: "Document character encoding."},
			rules.Attribute{Name: "http-equiv", Rule: rules.Enum("content-type", "default-style",
				"refresh", "x-ua-compatible", "content-security-policy"),
				Desc: "Pragma directive name."},
			rules.Attribute{Name: "media", Rule: rules.NotEmpty{}, Desc: "Media query for theme-color."},
		),
		Desc: "Document metadata that other elements cannot express.",
	})
	register(tags.Style, &Descriptor{
		Model: model.Model{Cats: model.Metadata, Content: model.ContentText},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "media", Rule: rules.NotEmpty{}, Desc: "Media query the styles apply to."},
			rules.Attribute{Name: "blocking", Rule: rules.Enum("render"), Desc: "Operations blocked on the styles."},
		),
		Desc: "Embedded CSS.",
	})
	register(tags.Script, &Descriptor{
		Model: model.Model{Cats: model.Metadata | model.Flow | model.Phrasing,
			Content: model.ContentText},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "src", Rule: rules.URL{}, Desc: "URL of the external script."},
			rules.Attribute{Name: "type", Rule: rules.Any{}, Desc: "Script type or module marker."},
			rules.Attribute{Name: "async", Rule: rules.Bool{}, Desc: "Execute as soon as fetched."},
			rules.Attribute{Name: "defer", Rule: rules.Bool{}, Desc: "Execute after the document parses."},
			rules.Attribute{Name: "nomodule", Rule: rules.Bool{}, Desc: "Skip in module-supporting browsers."},
			rules.Attribute{Name: "crossorigin", Rule: rules.CORS{}, Desc: "CORS settings for the fetch."},
			rules.Attribute{Name: "integrity", Rule: rules.NotEmpty{}, Desc: "Subresource integrity hash."},
			rules.Attribute{Name: "referrerpolicy", Rule: referrerPolicy, Desc: "Referrer to send when fetching."},
			rules.Attribute{Name: "fetchpriority", Rule: rules.Enum("high", "low", "auto"),
				Desc: "Fetch priority hint."},
			rules.Attribute{Name: "blocking", Rule: rules.Enum("render"), Desc: "Operations blocked on the script."},
		),
		Desc: "Embedded or external script.",
	})
}

// validateHTML enforces head-then-body. Anything else under html is
// invalid nesting.
func validateHTML(ctx *rules.Ctx) {
	rejectText(ctx)
	var head, body tree.NodeID
	for _, id := range elementChildren(ctx) {
		n := ctx.Tree.Get(id)
		switch n.Tag {
		case tags.Head:
			if head != tree.Root {
				dupChild(ctx, id, head, "head")
				continue
			}
			head = id
		case tags.Body:
			if body != tree.Root {
				dupChild(ctx, id, body, "body")
				continue
			}
			body = id
		default:
			diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, n.Name,
				fmt.Sprintf("<%s> is not allowed directly under <html>", ctx.Tree.TagName(id))).
				WithNode(uint32(id)).Emit()
		}
	}
	if body != tree.Root && head == tree.Root {
		diag.ReportError(ctx.Rep, diag.ContentMissingChild, ctx.Tree.Get(ctx.Node).Name,
			"<html> is missing a <head> element").WithNode(uint32(ctx.Node)).Emit()
	}
	if body != tree.Root && head != tree.Root && body < head {
		diag.ReportError(ctx.Rep, diag.ContentWrongPosition, ctx.Tree.Get(body).Name,
			"<body> must come after <head>").WithNode(uint32(body)).Emit()
	}
}

func completeHTML(ctx *rules.Ctx, off uint32) []Completion {
	var out []Completion
	var hasHead, hasBody bool
	for _, id := range elementChildren(ctx) {
		switch ctx.Tree.Get(id).Tag {
		case tags.Head:
			hasHead = true
		case tags.Body:
			hasBody = true
		}
	}
	if !hasHead {
		out = append(out, Completion{Label: "head", Desc: Get(tags.Head).Desc})
	}
	if !hasBody {
		out = append(out, Completion{Label: "body", Desc: Get(tags.Body).Desc})
	}
	return out
}

// validateHead accepts metadata content with at most one title and at
// most one base, anchored at the first occurrence.
func validateHead(ctx *rules.Ctx) {
	rejectText(ctx)
	var title, base tree.NodeID
	for _, id := range elementChildren(ctx) {
		n := ctx.Tree.Get(id)
		switch n.Tag {
		case tags.Title:
			if title != tree.Root {
				dupChild(ctx, id, title, "title")
				continue
			}
			title = id
		case tags.Base:
			if base != tree.Root {
				dupChild(ctx, id, base, "base")
				continue
			}
			base = id
		default:
			if !childCats(ctx, id).Overlaps(model.Metadata) {
				diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, n.Name,
					fmt.Sprintf("<%s> is not metadata content", ctx.Tree.TagName(id))).
					WithNode(uint32(id)).Emit()
			}
		}
	}
	if title == tree.Root {
		diag.ReportWarning(ctx.Rep, diag.ContentMissingChild, ctx.Tree.Get(ctx.Node).Name,
			"<head> has no <title>").WithNode(uint32(ctx.Node)).Emit()
	}
}

func completeHead(ctx *rules.Ctx, off uint32) []Completion {
	var hasTitle, hasBase bool
	for _, id := range elementChildren(ctx) {
		switch ctx.Tree.Get(id).Tag {
		case tags.Title:
			hasTitle = true
		case tags.Base:
			hasBase = true
		}
	}
	out := make([]Completion, 0, 6)
	if !hasTitle {
		out = append(out, Completion{Label: "title", Desc: Get(tags.Title).Desc})
	}
	if !hasBase {
		out = append(out, Completion{Label: "base", Desc: Get(tags.Base).Desc})
	}
	for _, t := range []tags.Tag{tags.Meta, tags.Link, tags.Style, tags.Script, tags.Noscript, tags.Template} {
		out = append(out, Completion{Label: t.Name(), Desc: Get(t).Desc})
	}
	return out
}

// validateBaseAttrs is the standard walk plus the rule that a base
// with neither href nor target is pointless.
func validateBaseAttrs(ctx *rules.Ctx) {
	rules.Walk(ctx, Get(tags.Base).Attrs)
	_, hasHref := hasAttr(ctx, "href")
	_, hasTarget := hasAttr(ctx, "target")
	if !hasHref && !hasTarget {
		diag.ReportWarning(ctx.Rep, diag.AttrMissingRequired, ctx.Tree.Get(ctx.Node).Name,
			"<base> needs an href or a target attribute").WithNode(uint32(ctx.Node)).Emit()
	}
}

// dupChild reports the at-most-one violation, anchored at the FIRST
// occurrence with the second as the reference.
func dupChild(ctx *rules.Ctx, second, first tree.NodeID, name string) {
	diag.ReportError(ctx.Rep, diag.ContentDuplicateChild, ctx.Tree.Get(first).Name,
		fmt.Sprintf("at most one <%s> is allowed here", name)).
		WithNote(ctx.Tree.Get(second).Name, "but another appears here").
		WithNode(uint32(first)).Emit()
}
