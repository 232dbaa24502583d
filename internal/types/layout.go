package types

// Layout identifiers the generator may emit.
const (
	LayoutSingleColumn = "single-column"
	LayoutTwoColumn    = "two-column"
	LayoutHeroFocused  = "hero-focused"
)

// Section component vocabulary. The generator's prompt contract constrains
// the model to these; the fallback synthesizer only ever emits them.
const (
	SectionHero         = "Hero"
	SectionCardGrid     = "CardGrid"
	SectionSkillBadges  = "SkillBadges"
	SectionTimeline     = "Timeline"
	SectionTextBlock    = "TextBlock"
	SectionImageGallery = "ImageGallery"
	SectionContactForm  = "ContactForm"
)

type Theme struct {
	Accent string `json:"accent"`
}

// Section is one renderable unit. Props is an open property bag; the known
// shapes per component type are produced by the layout service and described
// to the model by the prompt schema.
type Section struct {
	Type  string         `json:"type"`
	Props map[string]any `json:"props"`
}

// GeneratedLayout is the UI description returned to the frontend. Sections
// are in rendering order. A layout is never mutated after link sanitization,
// only replaced.
type GeneratedLayout struct {
	Layout   string    `json:"layout"`
	Theme    Theme     `json:"theme"`
	Sections []Section `json:"sections"`
}

// Valid reports whether the layout is structurally usable: a recognized
// layout value and at least one section. AI output failing this check is
// discarded wholesale in favor of the fallback layout.
func (g *GeneratedLayout) Valid() bool {
	if g == nil {
		return false
	}
	switch g.Layout {
	case LayoutSingleColumn, LayoutTwoColumn, LayoutHeroFocused:
	default:
		return false
	}
	return len(g.Sections) > 0
}
