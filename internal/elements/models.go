package elements

import "htmlcheck/internal/model"

// Shared classifications. Most elements are one of these; the rest
// declare their model inline at the registration site.
var (
	// Flow container accepting flow content (div, section, ...).
	mFlow = model.Model{Cats: model.Flow, Content: model.ContentFlow}

	// Flow element whose children must be phrasing (p, h1, ...).
	mFlowPhrasing = model.Model{Cats: model.Flow, Content: model.ContentPhrasing}

	// Phrasing container (span, em, ...).
	mPhrasing = model.Model{Cats: model.Flow | model.Phrasing, Content: model.ContentPhrasing}

	// Phrasing element that inherits its parent's content model.
	mTransparent = model.Model{Cats: model.Flow | model.Phrasing, Content: model.ContentTransparent}

	// Phrasing void element (br, wbr).
	mPhrasingVoid = model.Model{Cats: model.Flow | model.Phrasing, Content: model.ContentNone}

	// Metadata void element (meta, link, base).
	mMetaVoid = model.Model{Cats: model.Metadata, Content: model.ContentNone}

	// Sectioning root of flow content (article, nav, ...).
	mSectioning = model.Model{Cats: model.Flow | model.Sectioning, Content: model.ContentFlow}

	// Heading element (h1..h6).
	mHeading = model.Model{Cats: model.Flow | model.Heading, Content: model.ContentPhrasing}
)
