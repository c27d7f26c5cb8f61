package model

// Patches carry only the fields a caller wants to change; a nil pointer
// leaves the field untouched. Merges are shallow: nested structs and slices
// are replaced as a whole. Identity (id) is never patchable.

// GameModePatch updates a GameMode.
type GameModePatch struct {
	Name        *string            `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string            `json:"description,omitempty"`
	Image       *string            `json:"image,omitempty"`
	Players     *string            `json:"players,omitempty"`
	Difficulty  *Difficulty        `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard expert"`
	Category    *ModeCategory      `json:"category,omitempty" validate:"omitempty,oneof=casual competitive tactical special"`
	IsNew       *bool              `json:"isNew,omitempty"`
	IsPopular   *bool              `json:"isPopular,omitempty"`
	Metadata    *map[string]string `json:"metadata,omitempty"`
}

// Apply merges the patch into m.
func (p GameModePatch) Apply(m *GameMode) {
	set(&m.Name, p.Name)
	set(&m.Description, p.Description)
	set(&m.Image, p.Image)
	set(&m.Players, p.Players)
	set(&m.Difficulty, p.Difficulty)
	set(&m.Category, p.Category)
	set(&m.IsNew, p.IsNew)
	set(&m.IsPopular, p.IsPopular)
	set(&m.Metadata, p.Metadata)
}

// OperatorPatch updates an Operator. Stats are clamped after merge.
type OperatorPatch struct {
	Name           *string         `json:"name,omitempty" validate:"omitempty,min=1"`
	Role           *string         `json:"role,omitempty"`
	Description    *string         `json:"description,omitempty"`
	SpecialAbility *SpecialAbility `json:"specialAbility,omitempty"`
	Loadout        *Loadout        `json:"loadout,omitempty"`
	Image          *string         `json:"image,omitempty"`
	Difficulty     *Difficulty     `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard expert"`
	Stats          *OperatorStats  `json:"stats,omitempty"`
	Faction        *Faction        `json:"faction,omitempty" validate:"omitempty,oneof=attacker defender"`
	Background     *string         `json:"background,omitempty"`
	IsNew          *bool           `json:"isNew,omitempty"`
	IsFeatured     *bool           `json:"isFeatured,omitempty"`
}

// Apply merges the patch into o.
func (p OperatorPatch) Apply(o *Operator) {
	set(&o.Name, p.Name)
	set(&o.Role, p.Role)
	set(&o.Description, p.Description)
	set(&o.SpecialAbility, p.SpecialAbility)
	set(&o.Loadout, p.Loadout)
	set(&o.Image, p.Image)
	set(&o.Difficulty, p.Difficulty)
	set(&o.Stats, p.Stats)
	set(&o.Faction, p.Faction)
	set(&o.Background, p.Background)
	set(&o.IsNew, p.IsNew)
	set(&o.IsFeatured, p.IsFeatured)
	o.Stats.Clamp()
}

// MapPatch updates a Map.
type MapPatch struct {
	Name        *string      `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string      `json:"description,omitempty"`
	Image       *string      `json:"image,omitempty"`
	Features    *[]string    `json:"features,omitempty"`
	Difficulty  *Difficulty  `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard expert"`
	Size        *MapSize     `json:"size,omitempty" validate:"omitempty,oneof=small medium large"`
	Environment *Environment `json:"environment,omitempty" validate:"omitempty,oneof=urban desert arctic jungle industrial coastal"`
	GameModes   *[]string    `json:"gameModes,omitempty"`
	IsNew       *bool        `json:"isNew,omitempty"`
}

// Apply merges the patch into m.
func (p MapPatch) Apply(m *Map) {
	set(&m.Name, p.Name)
	set(&m.Description, p.Description)
	set(&m.Image, p.Image)
	set(&m.Features, p.Features)
	set(&m.Difficulty, p.Difficulty)
	set(&m.Size, p.Size)
	set(&m.Environment, p.Environment)
	set(&m.GameModes, p.GameModes)
	set(&m.IsNew, p.IsNew)
}

// BattlePassPatch updates the season pass.
type BattlePassPatch struct {
	ID           *string  `json:"id,omitempty"`
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	Season       *int     `json:"season,omitempty" validate:"omitempty,min=0"`
	DurationDays *int     `json:"durationDays,omitempty" validate:"omitempty,min=0"`
	StartDate    *string  `json:"startDate,omitempty"`
	EndDate      *string  `json:"endDate,omitempty"`
	IsActive     *bool    `json:"isActive,omitempty"`
}

// Apply merges the patch into b.
func (p BattlePassPatch) Apply(b *BattlePass) {
	set(&b.ID, p.ID)
	set(&b.Name, p.Name)
	set(&b.Description, p.Description)
	set(&b.Price, p.Price)
	set(&b.Season, p.Season)
	set(&b.DurationDays, p.DurationDays)
	set(&b.StartDate, p.StartDate)
	set(&b.EndDate, p.EndDate)
	set(&b.IsActive, p.IsActive)
}

// RewardPatch updates a BattlePassReward. A changed IsPremium moves the reward between tracks.
type RewardPatch struct {
	Level       *int        `json:"level,omitempty" validate:"omitempty,min=1"`
	Name        *string     `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string     `json:"description,omitempty"`
	Type        *RewardType `json:"type,omitempty" validate:"omitempty,oneof=weapon_skin operator_skin charm emblem currency xp_boost banner"`
	Rarity      *Rarity     `json:"rarity,omitempty" validate:"omitempty,oneof=common rare epic legendary"`
	Image       *string     `json:"image,omitempty"`
	IsPremium   *bool       `json:"isPremium,omitempty"`
}

// Apply merges the patch into r.
func (p RewardPatch) Apply(r *BattlePassReward) {
	set(&r.Level, p.Level)
	set(&r.Name, p.Name)
	set(&r.Description, p.Description)
	set(&r.Type, p.Type)
	set(&r.Rarity, p.Rarity)
	set(&r.Image, p.Image)
	set(&r.IsPremium, p.IsPremium)
}

// HeroPatch updates the hero banner.
type HeroPatch struct {
	Title    *string       `json:"title,omitempty"`
	Subtitle *string       `json:"subtitle,omitempty"`
	Buttons  *[]HeroButton `json:"buttons,omitempty" validate:"omitempty,dive"`
}

// Apply merges the patch into h.
func (p HeroPatch) Apply(h *HeroContent) {
	set(&h.Title, p.Title)
	set(&h.Subtitle, p.Subtitle)
	set(&h.Buttons, p.Buttons)
}

// HeroButtonPatch updates a hero button.
type HeroButtonPatch struct {
	Text      *string      `json:"text,omitempty" validate:"omitempty,min=1"`
	URL       *string      `json:"url,omitempty"`
	Style     *ButtonStyle `json:"style,omitempty" validate:"omitempty,oneof=primary secondary outline"`
	IsPrimary *bool        `json:"isPrimary,omitempty"`
}

// Apply merges the patch into b.
func (p HeroButtonPatch) Apply(b *HeroButton) {
	set(&b.Text, p.Text)
	set(&b.URL, p.URL)
	set(&b.Style, p.Style)
	set(&b.IsPrimary, p.IsPrimary)
}

// FooterPatch updates the footer.
type FooterPatch struct {
	Copyright *string       `json:"copyright,omitempty"`
	Links     *[]FooterLink `json:"links,omitempty" validate:"omitempty,dive"`
}

// Apply merges the patch into f.
func (p FooterPatch) Apply(f *FooterContent) {
	set(&f.Copyright, p.Copyright)
	set(&f.Links, p.Links)
}

// FooterLinkPatch updates a footer link.
type FooterLinkPatch struct {
	Text  *string `json:"text,omitempty" validate:"omitempty,min=1"`
	URL   *string `json:"url,omitempty"`
	Group *string `json:"group,omitempty"`
}

// Apply merges the patch into l.
func (p FooterLinkPatch) Apply(l *FooterLink) {
	set(&l.Text, p.Text)
	set(&l.URL, p.URL)
	set(&l.Group, p.Group)
}

// BottomButtonPatch updates a bottom button.
type BottomButtonPatch struct {
	Text     *string               `json:"text,omitempty" validate:"omitempty,min=1"`
	URL      *string               `json:"url,omitempty"`
	Icon     *string               `json:"icon,omitempty"`
	Position *BottomButtonPosition `json:"position,omitempty" validate:"omitempty,oneof=left center right"`
}

// Apply merges the patch into b.
func (p BottomButtonPatch) Apply(b *BottomButton) {
	set(&b.Text, p.Text)
	set(&b.URL, p.URL)
	set(&b.Icon, p.Icon)
	set(&b.Position, p.Position)
}

// NavigationPatch updates the navigation singleton.
type NavigationPatch struct {
	StudioName     *string        `json:"studioName,omitempty"`
	Tagline        *string        `json:"tagline,omitempty"`
	MenuItems      *[]MenuItem    `json:"menuItems,omitempty" validate:"omitempty,dive"`
	DownloadButton *LinkButton    `json:"downloadButton,omitempty"`
	SocialLinks    *[]SocialLink  `json:"socialLinks,omitempty" validate:"omitempty,dive"`
	SupportLinks   *[]SupportLink `json:"supportLinks,omitempty" validate:"omitempty,dive"`
}

// Apply merges the patch into n.
func (p NavigationPatch) Apply(n *NavigationContent) {
	set(&n.StudioName, p.StudioName)
	set(&n.Tagline, p.Tagline)
	set(&n.MenuItems, p.MenuItems)
	set(&n.DownloadButton, p.DownloadButton)
	set(&n.SocialLinks, p.SocialLinks)
	set(&n.SupportLinks, p.SupportLinks)
}

// MenuItemPatch updates a menu item.
type MenuItemPatch struct {
	Label *string `json:"label,omitempty" validate:"omitempty,min=1"`
	Href  *string `json:"href,omitempty"`
}

// Apply merges the patch into m.
func (p MenuItemPatch) Apply(m *MenuItem) {
	set(&m.Label, p.Label)
	set(&m.Href, p.Href)
}

// SocialLinkPatch updates a social link.
type SocialLinkPatch struct {
	Platform *string `json:"platform,omitempty" validate:"omitempty,min=1"`
	URL      *string `json:"url,omitempty"`
}

// Apply merges the patch into l.
func (p SocialLinkPatch) Apply(l *SocialLink) {
	set(&l.Platform, p.Platform)
	set(&l.URL, p.URL)
}

// SupportLinkPatch updates a support link.
type SupportLinkPatch struct {
	Text *string `json:"text,omitempty" validate:"omitempty,min=1"`
	URL  *string `json:"url,omitempty"`
}

// Apply merges the patch into l.
func (p SupportLinkPatch) Apply(l *SupportLink) {
	set(&l.Text, p.Text)
	set(&l.URL, p.URL)
}

// LaunchPatch updates the launch page singleton.
type LaunchPatch struct {
	Title                 *string         `json:"title,omitempty"`
	Description           *string         `json:"description,omitempty"`
	ReleaseDate           *string         `json:"releaseDate,omitempty"`
	Media                 *[]MediaItem    `json:"media,omitempty" validate:"omitempty,dive"`
	SocialLinks           *[]SocialLink   `json:"socialLinks,omitempty" validate:"omitempty,dive"`
	Buttons               *[]LaunchButton `json:"buttons,omitempty" validate:"omitempty,dive"`
	PostLaunchTitle       *string         `json:"postLaunchTitle,omitempty"`
	PostLaunchDescription *string         `json:"postLaunchDescription,omitempty"`
	PostLaunchButtons     *[]LaunchButton `json:"postLaunchButtons,omitempty" validate:"omitempty,dive"`
}

// Apply merges the patch into l.
func (p LaunchPatch) Apply(l *LaunchContent) {
	set(&l.Title, p.Title)
	set(&l.Description, p.Description)
	set(&l.ReleaseDate, p.ReleaseDate)
	set(&l.Media, p.Media)
	set(&l.SocialLinks, p.SocialLinks)
	set(&l.Buttons, p.Buttons)
	set(&l.PostLaunchTitle, p.PostLaunchTitle)
	set(&l.PostLaunchDescription, p.PostLaunchDescription)
	set(&l.PostLaunchButtons, p.PostLaunchButtons)
}

// MediaItemPatch updates a launch media item.
type MediaItemPatch struct {
	Type  *MediaType `json:"type,omitempty" validate:"omitempty,oneof=image video"`
	URL   *string    `json:"url,omitempty" validate:"omitempty,min=1"`
	Title *string    `json:"title,omitempty"`
}

// Apply merges the patch into m.
func (p MediaItemPatch) Apply(m *MediaItem) {
	set(&m.Type, p.Type)
	set(&m.URL, p.URL)
	set(&m.Title, p.Title)
}

// LaunchButtonPatch updates a launch button.
type LaunchButtonPatch struct {
	Text      *string `json:"text,omitempty" validate:"omitempty,min=1"`
	URL       *string `json:"url,omitempty"`
	IsPrimary *bool   `json:"isPrimary,omitempty"`
}

// Apply merges the patch into b.
func (p LaunchButtonPatch) Apply(b *LaunchButton) {
	set(&b.Text, p.Text)
	set(&b.URL, p.URL)
	set(&b.IsPrimary, p.IsPrimary)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
