package elements

import (
	"fmt"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/model"
	"htmlcheck/internal/rules"
	"htmlcheck/internal/tags"
	"htmlcheck/internal/token"
	"htmlcheck/internal/tree"
)

func init() {
	register(tags.Form, &Descriptor{
		Model: model.Model{Cats: model.Flow, Content: model.ContentFlow,
			Forbidden: []tags.Tag{tags.Form}},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "action", Rule: rules.URL{}, Desc: "URL to submit to."},
			rules.Attribute{Name: "method", Rule: rules.Enum("get", "post", "dialog"),
				Desc: "HTTP method for submission."},
			rules.Attribute{Name: "enctype", Rule: rules.Enum("application/x-www-form-urlencoded",
				"multipart/form-data", "text/plain"), Desc: "Encoding for submitted data."},
			rules.Attribute{Name: "name", Rule: rules.NotEmpty{}, Desc: "Form name."},
			rules.Attribute{Name: "target", Rule: rules.NotEmpty{}, Desc: "Navigation target for the response."},
			rules.Attribute{Name: "novalidate", Rule: rules.Bool{}, Desc: "Skip constraint validation."},
			rules.Attribute{Name: "autocomplete", Rule: rules.Enum("on", "off"),
				Desc: "Default autofill behavior."},
			rules.Attribute{Name: "accept-charset", Rule: rules.NotEmpty{},
				Desc: "Character encodings for submission."},
			rules.Attribute{Name: "rel", Rule: rules.NotEmpty{}, Desc: "Relationship to the target."},
		),
		Desc: "Form with interactive controls for submitting data.",
	})
	register(tags.Label, &Descriptor{
		Model: model.Model{Cats: model.Flow | model.Phrasing | model.Interactive,
			Content: model.ContentPhrasing, Forbidden: []tags.Tag{tags.Label}},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "for", Rule: rules.NotEmpty{}, Desc: "Id of the labeled control."},
		),
		Desc: "Caption for a form control.",
	})
	register(tags.Input, &Descriptor{
		DynModel: func(ctx *rules.Ctx) model.Model {
			m := model.Model{Cats: model.Flow | model.Phrasing, Content: model.ContentNone}
			if ty, _ := hasAttr(ctx, "type"); ty != "hidden" {
				m.Cats |= model.Interactive
			}
			return m
		},
		Model: model.Model{Cats: model.Flow | model.Phrasing | model.Interactive,
			Content: model.ContentNone},
		Attrs: inputAttrs(),
		Desc:  "Form control for user input.",
	})
	register(tags.Button, &Descriptor{
		Model: model.Model{Cats: model.Flow | model.Phrasing | model.Interactive,
			Content: model.ContentPhrasing,
			Extra:   model.NoInteractiveDesc | model.NoTabindexDesc},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "type", Rule: rules.Enum("submit", "reset", "button"),
				Desc: "Behavior when activated."},
			rules.Attribute{Name: "disabled", Rule: rules.Bool{}, Desc: "Disables the control."},
			rules.Attribute{Name: "name", Rule: rules.NotEmpty{}, Desc: "Name for form submission."},
			rules.Attribute{Name: "value", Rule: rules.Any{}, Desc: "Value for form submission."},
			rules.Attribute{Name: "form", Rule: rules.NotEmpty{}, Desc: "Associated form element id."},
			rules.Attribute{Name: "formaction", Rule: rules.URL{}, Desc: "Submission URL override."},
			rules.Attribute{Name: "formmethod", Rule: rules.Enum("get", "post", "dialog"),
				Desc: "Submission method override."},
			rules.Attribute{Name: "formnovalidate", Rule: rules.Bool{}, Desc: "Skip validation override."},
			rules.Attribute{Name: "formtarget", Rule: rules.NotEmpty{}, Desc: "Submission target override."},
			rules.Attribute{Name: "popovertarget", Rule: rules.NotEmpty{}, Desc: "Id of the popover to toggle."},
			rules.Attribute{Name: "popovertargetaction", Rule: rules.Enum("toggle", "show", "hide"),
				Desc: "Action on the targeted popover."},
		),
		Desc: "Button control.",
	})
	register(tags.Select, &Descriptor{
		Model: model.Model{Cats: model.Flow | model.Phrasing | model.Interactive,
			Content: model.ContentCustom},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "multiple", Rule: rules.Bool{}, Desc: "Allow selecting several options."},
			rules.Attribute{Name: "size", Rule: rules.Int(), Desc: "Number of rows to show."},
			rules.Attribute{Name: "disabled", Rule: rules.Bool{}, Desc: "Disables the control."},
			rules.Attribute{Name: "required", Rule: rules.Bool{}, Desc: "A value must be selected."},
			rules.Attribute{Name: "name", Rule: rules.NotEmpty{}, Desc: "Name for form submission."},
			rules.Attribute{Name: "form", Rule: rules.NotEmpty{}, Desc: "Associated form element id."},
			rules.Attribute{Name: "autocomplete", Rule: rules.NotEmpty{}, Desc: "Autofill hint."},
		),
		Validate:    validateSelect,
		Completions: completeSelect,
		Desc:        "Control for choosing among options.",
	})
	register(tags.Optgroup, &Descriptor{
		Model: model.Model{Content: model.ContentCustom},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "label", Rule: rules.NotEmpty{}, Required: true,
				Desc: "Label of the group."},
			rules.Attribute{Name: "disabled", Rule: rules.Bool{}, Desc: "Disables the group."},
		),
		Validate: func(ctx *rules.Ctx) {
			for _, id := range elementChildren(ctx) {
				switch ctx.Tree.Get(id).Tag {
				case tags.Option, tags.Script, tags.Template:
				default:
					diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, ctx.Tree.Get(id).Name,
						fmt.Sprintf("<%s> is not allowed inside <optgroup>", ctx.Tree.TagName(id))).
						WithNode(uint32(id)).Emit()
				}
			}
		},
		Desc: "Group of options with a label.",
	})
	register(tags.Option, &Descriptor{
		Model: model.Model{Content: model.ContentText},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "value", Rule: rules.Any{}, Desc: "Value for form submission."},
			rules.Attribute{Name: "label", Rule: rules.NotEmpty{}, Desc: "Label override."},
			rules.Attribute{Name: "selected", Rule: rules.Bool{}, Desc: "Selected by default."},
			rules.Attribute{Name: "disabled", Rule: rules.Bool{}, Desc: "Disables the option."},
		),
		Desc: "Option in a select or datalist.",
	})
	register(tags.Textarea, &Descriptor{
		Model: model.Model{Cats: model.Flow | model.Phrasing | model.Interactive,
			Content: model.ContentText},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "rows", Rule: rules.IntMin(1), Desc: "Visible text rows."},
			rules.Attribute{Name: "cols", Rule: rules.IntMin(1), Desc: "Visible text columns."},
			rules.Attribute{Name: "name", Rule: rules.NotEmpty{}, Desc: "Name for form submission."},
			rules.Attribute{Name: "form", Rule: rules.NotEmpty{}, Desc: "Associated form element id."},
			rules.Attribute{Name: "placeholder", Rule: rules.Any{}, Desc: "Hint shown while empty."},
			rules.Attribute{Name: "maxlength", Rule: rules.Int(), Desc: "Maximum value length."},
			rules.Attribute{Name: "minlength", Rule: rules.Int(), Desc: "Minimum value length."},
			rules.Attribute{Name: "required", Rule: rules.Bool{}, Desc: "A value is required."},
			rules.Attribute{Name: "readonly", Rule: rules.Bool{}, Desc: "Value cannot be edited."},
			rules.Attribute{Name: "disabled", Rule: rules.Bool{}, Desc: "Disables the control."},
			rules.Attribute{Name: "wrap", Rule: rules.Enum("soft", "hard"), Desc: "Line wrap behavior on submit."},
			rules.Attribute{Name: "autocomplete", Rule: rules.NotEmpty{}, Desc: "Autofill hint."},
			rules.Attribute{Name: "dirname", Rule: rules.NotEmpty{}, Desc: "Directionality submission name."},
		),
		Desc: "Multiline plain text control.",
	})
	register(tags.Output, &Descriptor{
		Model: mPhrasing,
		Attrs: rules.NewSet(
			rules.Attribute{Name: "for", Rule: rules.NotEmpty{}, Desc: "Ids of the contributing controls."},
			rules.Attribute{Name: "form", Rule: rules.NotEmpty{}, Desc: "Associated form element id."},
			rules.Attribute{Name: "name", Rule: rules.NotEmpty{}, Desc: "Name for form submission."},
		),
		Desc: "Result of a calculation or user action.",
	})
	register(tags.Progress, &Descriptor{
		Model: model.Model{Cats: model.Flow | model.Phrasing,
			Content: model.ContentPhrasing, Forbidden: []tags.Tag{tags.Progress}},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "value", Rule: rules.Float{}, Desc: "Current progress."},
			rules.Attribute{Name: "max", Rule: rules.Float{}, Desc: "Value at completion."},
		),
		Desc: "Completion progress of a task.",
	})
	register(tags.Meter, &Descriptor{
		Model: model.Model{Cats: model.Flow | model.Phrasing,
			Content: model.ContentPhrasing, Forbidden: []tags.Tag{tags.Meter}},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "value", Rule: rules.Float{}, Required: true, Desc: "Measured value."},
			rules.Attribute{Name: "min", Rule: rules.Float{}, Desc: "Lower bound of the range."},
			rules.Attribute{Name: "max", Rule: rules.Float{}, Desc: "Upper bound of the range."},
			rules.Attribute{Name: "low", Rule: rules.Float{}, Desc: "Upper bound of the low region."},
			rules.Attribute{Name: "high", Rule: rules.Float{}, Desc: "Lower bound of the high region."},
			rules.Attribute{Name: "optimum", Rule: rules.Float{}, Desc: "Optimal value."},
		),
		Desc: "Scalar measurement within a known range.",
	})
	register(tags.Fieldset, &Descriptor{
		Model: model.Model{Cats: model.Flow, Content: model.ContentFlow},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "disabled", Rule: rules.Bool{}, Desc: "Disables all contained controls."},
			rules.Attribute{Name: "form", Rule: rules.NotEmpty{}, Desc: "Associated form element id."},
			rules.Attribute{Name: "name", Rule: rules.NotEmpty{}, Desc: "Name for form submission."},
		),
		Desc: "Group of form controls, optionally with a legend.",
	})
	register(tags.Legend, &Descriptor{
		Model: mFlowPhrasing,
		Desc:  "Caption of the enclosing fieldset.",
	})
}

func inputAttrs() *rules.Set {
	return rules.NewSet(
		rules.Attribute{Name: "type", Rule: rules.Enum("hidden", "text", "search", "tel", "url",
			"email", "password", "date", "month", "week", "time", "datetime-local", "number",
			"range", "color", "checkbox", "radio", "file", "submit", "image", "reset", "button"),
			Desc: "Kind of control."},
		rules.Attribute{Name: "name", Rule: rules.NotEmpty{}, Desc: "Name for form submission."},
		rules.Attribute{Name: "value", Rule: rules.Any{}, Desc: "Initial value."},
		rules.Attribute{Name: "placeholder", Rule: rules.Any{}, Desc: "Hint shown while empty."},
		rules.Attribute{Name: "required", Rule: rules.Bool{}, Desc: "A value is required."},
		rules.Attribute{Name: "readonly", Rule: rules.Bool{}, Desc: "Value cannot be edited."},
		rules.Attribute{Name: "disabled", Rule: rules.Bool{}, Desc: "Disables the control."},
		rules.Attribute{Name: "checked", Rule: rules.Bool{}, Desc: "Checked by default."},
		rules.Attribute{Name: "multiple", Rule: rules.Bool{}, Desc: "Allow several values."},
		rules.Attribute{Name: "form", Rule: rules.NotEmpty{}, Desc: "Associated form element id."},
		rules.Attribute{Name: "list", Rule: rules.NotEmpty{}, Desc: "Id of a datalist of suggestions."},
		rules.Attribute{Name: "min", Rule: rules.Any{}, Desc: "Minimum value."},
		rules.Attribute{Name: "max", Rule: rules.Any{}, Desc: "Maximum value."},
		rules.Attribute{Name: "step", Rule: rules.Custom{Fn: stepValue}, Desc: "Value granularity."},
		rules.Attribute{Name: "minlength", Rule: rules.Int(), Desc: "Minimum value length."},
		rules.Attribute{Name: "maxlength", Rule: rules.Int(), Desc: "Maximum value length."},
		rules.Attribute{Name: "size", Rule: rules.IntMin(1), Desc: "Visible width in characters."},
		rules.Attribute{Name: "pattern", Rule: rules.NotEmpty{}, Desc: "Regular expression the value must match."},
		rules.Attribute{Name: "accept", Rule: rules.NotEmpty{}, Desc: "File types to accept."},
		rules.Attribute{Name: "autocomplete", Rule: rules.NotEmpty{}, Desc: "Autofill hint."},
		rules.Attribute{Name: "dirname", Rule: rules.NotEmpty{}, Desc: "Directionality submission name."},
		rules.Attribute{Name: "src", Rule: rules.URL{}, Desc: "Image URL, image buttons only."},
		rules.Attribute{Name: "alt", Rule: rules.Any{}, Desc: "Image fallback text."},
		rules.Attribute{Name: "width", Rule: rules.Int(), Desc: "Image width in pixels."},
		rules.Attribute{Name: "height", Rule: rules.Int(), Desc: "Image height in pixels."},
		rules.Attribute{Name: "formaction", Rule: rules.URL{}, Desc: "Submission URL override."},
		rules.Attribute{Name: "formmethod", Rule: rules.Enum("get", "post", "dialog"),
			Desc: "Submission method override."},
		rules.Attribute{Name: "formnovalidate", Rule: rules.Bool{}, Desc: "Skip validation override."},
		rules.Attribute{Name: "formtarget", Rule: rules.NotEmpty{}, Desc: "Submission target override."},
		rules.Attribute{Name: "capture", Rule: rules.Enum("user", "environment"),
			Desc: "Preferred capture device for file inputs."},
		rules.Attribute{Name: "popovertarget", Rule: rules.NotEmpty{}, Desc: "Id of the popover to toggle."},
		rules.Attribute{Name: "popovertargetaction", Rule: rules.Enum("toggle", "show", "hide"),
			Desc: "Action on the targeted popover."},
	)
}

// stepValue is a positive number or the literal "any".
func stepValue(ctx *rules.Ctx, attr token.Attr) []rules.Problem {
	val, ok := ctx.ValueText(attr)
	if !ok {
		return []rules.Problem{{Code: diag.AttrMissingValue,
			Msg: "step requires a value", Span: attr.Name}}
	}
	if val == "any" {
		return nil
	}
	return rules.Float{}.Check(ctx, attr)
}

// selectDropDown reports whether the select renders as a drop-down:
// no multiple attribute and size absent, empty, 0 or 1.
func selectDropDown(ctx *rules.Ctx) bool {
	if _, multiple := hasAttr(ctx, "multiple"); multiple {
		return false
	}
	size, ok := hasAttr(ctx, "size")
	if !ok || size == "" || size == "0" || size == "1" {
		return true
	}
	return false
}

// validateSelect: a drop-down select may open with one control button;
// after that (and always, for list-style selects) the children are
// option, optgroup, hr, and script-supporting or wrapper elements.
func validateSelect(ctx *rules.Ctx) {
	rejectText(ctx)
	dropDown := selectDropDown(ctx)
	sawButton := tree.Root
	for i, id := range elementChildren(ctx) {
		n := ctx.Tree.Get(id)
		switch n.Tag {
		case tags.Button:
			switch {
			case !dropDown:
				diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, n.Name,
					"a <button> is only allowed in a drop-down <select>").
					WithNode(uint32(id)).Emit()
			case i != 0:
				diag.ReportError(ctx.Rep, diag.ContentWrongPosition, n.Name,
					"the <select> control button must be the first child").
					WithNode(uint32(id)).Emit()
			case sawButton != tree.Root:
				dupChild(ctx, id, sawButton, "button")
			default:
				sawButton = id
			}
		case tags.Option, tags.Optgroup, tags.Hr, tags.Script, tags.Template,
			tags.Noscript, tags.Div:
		default:
			diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, n.Name,
				fmt.Sprintf("<%s> is not allowed inside <select>", ctx.Tree.TagName(id))).
				WithNode(uint32(id)).Emit()
		}
	}
}

// completeSelect offers the control button only while the select is a
// drop-down and no button child exists yet.
func completeSelect(ctx *rules.Ctx, off uint32) []Completion {
	var out []Completion
	if selectDropDown(ctx) && firstChildTag(ctx, tags.Button) == tree.Root {
		out = append(out, Completion{Label: "button", Desc: "Control button shown for the closed select."})
	}
	for _, t := range []tags.Tag{tags.Option, tags.Optgroup, tags.Hr} {
		out = append(out, Completion{Label: t.Name(), Desc: Get(t).Desc})
	}
	return out
}
