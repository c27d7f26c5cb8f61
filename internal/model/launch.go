package model

// MediaType is the kind of a launch page media item.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// MediaItem is a screenshot or trailer on the launch page.
type MediaItem struct {
	ID    string    `json:"id" validate:"required" jsonschema:"required"`
	Type  MediaType `json:"type" validate:"required,oneof=image video" jsonschema:"required,enum=image,enum=video"`
	URL   string    `json:"url" validate:"required" jsonschema:"required"`
	Title string    `json:"title,omitempty"`
}

// LaunchButton is a call-to-action on the launch page.
type LaunchButton struct {
	ID        string `json:"id" validate:"required" jsonschema:"required"`
	Text      string `json:"text" validate:"required" jsonschema:"required"`
	URL       string `json:"url"`
	IsPrimary bool   `json:"isPrimary"`
}

// LaunchContent drives the countdown page before and after release.
// ReleaseDate is an ISO-8601 string.
type LaunchContent struct {
	Title                 string         `json:"title"`
	Description           string         `json:"description"`
	ReleaseDate           string         `json:"releaseDate"`
	Media                 []MediaItem    `json:"media"`
	SocialLinks           []SocialLink   `json:"socialLinks"`
	Buttons               []LaunchButton `json:"buttons"`
	PostLaunchTitle       string         `json:"postLaunchTitle"`
	PostLaunchDescription string         `json:"postLaunchDescription"`
	PostLaunchButtons     []LaunchButton `json:"postLaunchButtons"`
}

// LaunchSettings is the site-wide launch mode switch read by the redirect middleware.
type LaunchSettings struct {
	IsLaunchMode bool `json:"isLaunchMode"`
	AutoRedirect bool `json:"autoRedirect"`
}

// Active reports whether ordinary visitors should be sent to the launch page.
func (s LaunchSettings) Active() bool {
	return s.IsLaunchMode && s.AutoRedirect
}
