package content

import (
	"context"

	"ironline-site/internal/model"
)

// Launch returns the launch page content.
func (s *Store) Launch() model.LaunchContent {
	return s.Snapshot().Launch
}

// UpdateLaunch merges p into the launch page content.
func (s *Store) UpdateLaunch(ctx context.Context, p model.LaunchPatch) {
	s.mutate(ctx, CollectionLaunch, func(st *State) bool {
		p.Apply(&st.Launch)
		return true
	})
}

// AddLaunchMedia appends a media item.
func (s *Store) AddLaunchMedia(ctx context.Context, m model.MediaItem) {
	s.mutate(ctx, CollectionLaunch, func(st *State) bool {
		st.Launch.Media = appendItem(st.Launch.Media, m)
		return true
	})
}

// UpdateLaunchMedia merges p into the media item with the given id.
func (s *Store) UpdateLaunchMedia(ctx context.Context, id string, p model.MediaItemPatch) bool {
	return s.mutate(ctx, CollectionLaunch, func(st *State) bool {
		var ok bool
		st.Launch.Media, ok = updateByID(st.Launch.Media, id, mediaItemID, func(m *model.MediaItem) { p.Apply(m) })
		return ok
	})
}

// DeleteLaunchMedia removes the first media item with the given id.
func (s *Store) DeleteLaunchMedia(ctx context.Context, id string) bool {
	return s.mutate(ctx, CollectionLaunch, func(st *State) bool {
		var ok bool
		st.Launch.Media, ok = deleteByID(st.Launch.Media, id, mediaItemID)
		return ok
	})
}

// AddLaunchSocial appends a launch page social link.
func (s *Store) AddLaunchSocial(ctx context.Context, l model.SocialLink) {
	s.mutate(ctx, CollectionLaunch, func(st *State) bool {
		st.Launch.SocialLinks = appendItem(st.Launch.SocialLinks, l)
		return true
	})
}

// UpdateLaunchSocial merges p into the launch page social link with the given id.
func (s *Store) UpdateLaunchSocial(ctx context.Context, id string, p model.SocialLinkPatch) bool {
	return s.mutate(ctx, CollectionLaunch, func(st *State) bool {
		var ok bool
		st.Launch.SocialLinks, ok = updateByID(st.Launch.SocialLinks, id, socialLinkID, func(l *model.SocialLink) { p.Apply(l) })
		return ok
	})
}

// DeleteLaunchSocial removes the first launch page social link with the given id.
func (s *Store) DeleteLaunchSocial(ctx context.Context, id string) bool {
	return s.mutate(ctx, CollectionLaunch, func(st *State) bool {
		var ok bool
		st.Launch.SocialLinks, ok = deleteByID(st.Launch.SocialLinks, id, socialLinkID)
		return ok
	})
}

// AddLaunchButton appends a pre-launch button.
func (s *Store) AddLaunchButton(ctx context.Context, b model.LaunchButton) {
	s.mutate(ctx, CollectionLaunch, func(st *State) bool {
		st.Launch.Buttons = appendItem(st.Launch.Buttons, b)
		return true
	})
}

// UpdateLaunchButton merges p into the pre-launch button with the given id.
func (s *Store) UpdateLaunchButton(ctx context.Context, id string, p model.LaunchButtonPatch) bool {
	return s.mutate(ctx, CollectionLaunch, func(st *State) bool {
		var ok bool
		st.Launch.Buttons, ok = updateByID(st.Launch.Buttons, id, launchButtonID, func(b *model.LaunchButton) { p.Apply(b) })
		return ok
	})
}

// DeleteLaunchButton removes the first pre-launch button with the given id.
func (s *Store) DeleteLaunchButton(ctx context.Context, id string) bool {
	return s.mutate(ctx, CollectionLaunch, func(st *State) bool {
		var ok bool
		st.Launch.Buttons, ok = deleteByID(st.Launch.Buttons, id, launchButtonID)
		return ok
	})
}

// AddPostLaunchButton appends a post-launch button.
func (s *Store) AddPostLaunchButton(ctx context.Context, b model.LaunchButton) {
	s.mutate(ctx, CollectionLaunch, func(st *State) bool {
		st.Launch.PostLaunchButtons = appendItem(st.Launch.PostLaunchButtons, b)
		return true
	})
}

// UpdatePostLaunchButton merges p into the post-launch button with the given id.
func (s *Store) UpdatePostLaunchButton(ctx context.Context, id string, p model.LaunchButtonPatch) bool {
	return s.mutate(ctx, CollectionLaunch, func(st *State) bool {
		var ok bool
		st.Launch.PostLaunchButtons, ok = updateByID(st.Launch.PostLaunchButtons, id, launchButtonID, func(b *model.LaunchButton) { p.Apply(b) })
		return ok
	})
}

// DeletePostLaunchButton removes the first post-launch button with the given id.
func (s *Store) DeletePostLaunchButton(ctx context.Context, id string) bool {
	return s.mutate(ctx, CollectionLaunch, func(st *State) bool {
		var ok bool
		st.Launch.PostLaunchButtons, ok = deleteByID(st.Launch.PostLaunchButtons, id, launchButtonID)
		return ok
	})
}
