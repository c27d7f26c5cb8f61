package content

import (
	"context"

	"ironline-site/internal/model"
)

// Sections returns the section headings keyed by section name.
func (s *Store) Sections() map[string]model.SectionContent {
	return s.Snapshot().Sections
}

// Section returns one section heading.
func (s *Store) Section(name string) (model.SectionContent, bool) {
	sec, ok := s.Snapshot().Sections[name]
	return sec, ok
}

// SetSection replaces a section heading wholesale.
func (s *Store) SetSection(ctx context.Context, name string, sec model.SectionContent) {
	s.mutate(ctx, CollectionSections, func(st *State) bool {
		out := make(map[string]model.SectionContent, len(st.Sections)+1)
		for k, v := range st.Sections {
			out[k] = v
		}
		out[name] = sec
		st.Sections = out
		return true
	})
}

// DeleteSection removes a section heading.
func (s *Store) DeleteSection(ctx context.Context, name string) bool {
	return s.mutate(ctx, CollectionSections, func(st *State) bool {
		if _, ok := st.Sections[name]; !ok {
			return false
		}
		out := make(map[string]model.SectionContent, len(st.Sections))
		for k, v := range st.Sections {
			if k != name {
				out[k] = v
			}
		}
		st.Sections = out
		return true
	})
}

// Navigation returns the header and drawer content.
func (s *Store) Navigation() model.NavigationContent {
	return s.Snapshot().Navigation
}

// UpdateNavigation merges p into the navigation content.
func (s *Store) UpdateNavigation(ctx context.Context, p model.NavigationPatch) {
	s.mutate(ctx, CollectionNavigation, func(st *State) bool {
		p.Apply(&st.Navigation)
		return true
	})
}

// AddMenuItem appends a navigation menu item.
func (s *Store) AddMenuItem(ctx context.Context, m model.MenuItem) {
	s.mutate(ctx, CollectionNavigation, func(st *State) bool {
		st.Navigation.MenuItems = appendItem(st.Navigation.MenuItems, m)
		return true
	})
}

// UpdateMenuItem merges p into the menu item with the given id.
func (s *Store) UpdateMenuItem(ctx context.Context, id string, p model.MenuItemPatch) bool {
	return s.mutate(ctx, CollectionNavigation, func(st *State) bool {
		var ok bool
		st.Navigation.MenuItems, ok = updateByID(st.Navigation.MenuItems, id, menuItemID, func(m *model.MenuItem) { p.Apply(m) })
		return ok
	})
}

// DeleteMenuItem removes the first menu item with the given id.
func (s *Store) DeleteMenuItem(ctx context.Context, id string) bool {
	return s.mutate(ctx, CollectionNavigation, func(st *State) bool {
		var ok bool
		st.Navigation.MenuItems, ok = deleteByID(st.Navigation.MenuItems, id, menuItemID)
		return ok
	})
}

// AddSocialLink appends a navigation social link.
func (s *Store) AddSocialLink(ctx context.Context, l model.SocialLink) {
	s.mutate(ctx, CollectionNavigation, func(st *State) bool {
		st.Navigation.SocialLinks = appendItem(st.Navigation.SocialLinks, l)
		return true
	})
}

// UpdateSocialLink merges p into the navigation social link with the given id.
func (s *Store) UpdateSocialLink(ctx context.Context, id string, p model.SocialLinkPatch) bool {
	return s.mutate(ctx, CollectionNavigation, func(st *State) bool {
		var ok bool
		st.Navigation.SocialLinks, ok = updateByID(st.Navigation.SocialLinks, id, socialLinkID, func(l *model.SocialLink) { p.Apply(l) })
		return ok
	})
}

// DeleteSocialLink removes the first navigation social link with the given id.
func (s *Store) DeleteSocialLink(ctx context.Context, id string) bool {
	return s.mutate(ctx, CollectionNavigation, func(st *State) bool {
		var ok bool
		st.Navigation.SocialLinks, ok = deleteByID(st.Navigation.SocialLinks, id, socialLinkID)
		return ok
	})
}

// AddSupportLink appends a navigation support link.
func (s *Store) AddSupportLink(ctx context.Context, l model.SupportLink) {
	s.mutate(ctx, CollectionNavigation, func(st *State) bool {
		st.Navigation.SupportLinks = appendItem(st.Navigation.SupportLinks, l)
		return true
	})
}

// UpdateSupportLink merges p into the support link with the given id.
func (s *Store) UpdateSupportLink(ctx context.Context, id string, p model.SupportLinkPatch) bool {
	return s.mutate(ctx, CollectionNavigation, func(st *State) bool {
		var ok bool
		st.Navigation.SupportLinks, ok = updateByID(st.Navigation.SupportLinks, id, supportLinkID, func(l *model.SupportLink) { p.Apply(l) })
		return ok
	})
}

// DeleteSupportLink removes the first support link with the given id.
func (s *Store) DeleteSupportLink(ctx context.Context, id string) bool {
	return s.mutate(ctx, CollectionNavigation, func(st *State) bool {
		var ok bool
		st.Navigation.SupportLinks, ok = deleteByID(st.Navigation.SupportLinks, id, supportLinkID)
		return ok
	})
}

// Hero returns the hero banner.
func (s *Store) Hero() model.HeroContent {
	return s.Snapshot().Hero
}

// UpdateHero merges p into the hero banner.
func (s *Store) UpdateHero(ctx context.Context, p model.HeroPatch) {
	s.mutate(ctx, CollectionHero, func(st *State) bool {
		p.Apply(&st.Hero)
		return true
	})
}

// AddHeroButton appends a hero button.
func (s *Store) AddHeroButton(ctx context.Context, b model.HeroButton) {
	s.mutate(ctx, CollectionHero, func(st *State) bool {
		st.Hero.Buttons = appendItem(st.Hero.Buttons, b)
		return true
	})
}

// UpdateHeroButton merges p into the hero button with the given id.
func (s *Store) UpdateHeroButton(ctx context.Context, id string, p model.HeroButtonPatch) bool {
	return s.mutate(ctx, CollectionHero, func(st *State) bool {
		var ok bool
		st.Hero.Buttons, ok = updateByID(st.Hero.Buttons, id, heroButtonID, func(b *model.HeroButton) { p.Apply(b) })
		return ok
	})
}

// DeleteHeroButton removes the first hero button with the given id.
func (s *Store) DeleteHeroButton(ctx context.Context, id string) bool {
	return s.mutate(ctx, CollectionHero, func(st *State) bool {
		var ok bool
		st.Hero.Buttons, ok = deleteByID(st.Hero.Buttons, id, heroButtonID)
		return ok
	})
}

// Footer returns the page footer.
func (s *Store) Footer() model.FooterContent {
	return s.Snapshot().Footer
}

// UpdateFooter merges p into the footer.
func (s *Store) UpdateFooter(ctx context.Context, p model.FooterPatch) {
	s.mutate(ctx, CollectionFooter, func(st *State) bool {
		p.Apply(&st.Footer)
		return true
	})
}

// AddFooterLink appends a footer link.
func (s *Store) AddFooterLink(ctx context.Context, l model.FooterLink) {
	s.mutate(ctx, CollectionFooter, func(st *State) bool {
		st.Footer.Links = appendItem(st.Footer.Links, l)
		return true
	})
}

// UpdateFooterLink merges p into the footer link with the given id.
func (s *Store) UpdateFooterLink(ctx context.Context, id string, p model.FooterLinkPatch) bool {
	return s.mutate(ctx, CollectionFooter, func(st *State) bool {
		var ok bool
		st.Footer.Links, ok = updateByID(st.Footer.Links, id, footerLinkID, func(l *model.FooterLink) { p.Apply(l) })
		return ok
	})
}

// DeleteFooterLink removes the first footer link with the given id.
func (s *Store) DeleteFooterLink(ctx context.Context, id string) bool {
	return s.mutate(ctx, CollectionFooter, func(st *State) bool {
		var ok bool
		st.Footer.Links, ok = deleteByID(st.Footer.Links, id, footerLinkID)
		return ok
	})
}
