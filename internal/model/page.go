package model

// ButtonStyle is the visual variant of a hero button.
type ButtonStyle string

const (
	ButtonPrimary   ButtonStyle = "primary"
	ButtonSecondary ButtonStyle = "secondary"
	ButtonOutline   ButtonStyle = "outline"
)

// MenuItem is a top navigation entry.
type MenuItem struct {
	ID    string `json:"id" validate:"required" jsonschema:"required"`
	Label string `json:"label" validate:"required" jsonschema:"required"`
	Href  string `json:"href"`
}

// LinkButton is a plain text + url button.
type LinkButton struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// SocialLink points at a community platform.
type SocialLink struct {
	ID       string `json:"id" validate:"required" jsonschema:"required"`
	Platform string `json:"platform" validate:"required" jsonschema:"required"`
	URL      string `json:"url"`
}

// SupportLink is a help/legal entry in the navigation drawer.
type SupportLink struct {
	ID   string `json:"id" validate:"required" jsonschema:"required"`
	Text string `json:"text" validate:"required" jsonschema:"required"`
	URL  string `json:"url"`
}

// NavigationContent is the site header and drawer.
type NavigationContent struct {
	StudioName     string        `json:"studioName"`
	Tagline        string        `json:"tagline"`
	MenuItems      []MenuItem    `json:"menuItems"`
	DownloadButton LinkButton    `json:"downloadButton"`
	SocialLinks    []SocialLink  `json:"socialLinks"`
	SupportLinks   []SupportLink `json:"supportLinks"`
}

// HeroButton is a call-to-action in the hero banner.
type HeroButton struct {
	ID        string      `json:"id" validate:"required" jsonschema:"required"`
	Text      string      `json:"text" validate:"required" jsonschema:"required"`
	URL       string      `json:"url"`
	Style     ButtonStyle `json:"style" validate:"omitempty,oneof=primary secondary outline" jsonschema:"enum=primary,enum=secondary,enum=outline"`
	IsPrimary bool        `json:"isPrimary"`
}

// HeroContent is the landing page banner.
type HeroContent struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	Buttons  []HeroButton `json:"buttons"`
}

// FooterLink is a grouped footer entry.
type FooterLink struct {
	ID    string `json:"id" validate:"required" jsonschema:"required"`
	Text  string `json:"text" validate:"required" jsonschema:"required"`
	URL   string `json:"url"`
	Group string `json:"group"`
}

// FooterContent is the page footer.
type FooterContent struct {
	Copyright string       `json:"copyright"`
	Links     []FooterLink `json:"links"`
}
