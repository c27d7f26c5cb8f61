package content

import "ironline-site/internal/model"

// Defaults returns freshly allocated compiled-in content.
func Defaults() State {
	return State{
		Sections:      defaultSections(),
		Navigation:    defaultNavigation(),
		GameModes:     defaultGameModes(),
		Operators:     defaultOperators(),
		Maps:          defaultMaps(),
		BattlePass:    defaultBattlePass(),
		Rewards:       defaultRewards(),
		Hero:          defaultHero(),
		Footer:        defaultFooter(),
		BottomButtons: defaultBottomButtons(),
		Launch:        defaultLaunch(),
	}
}

func defaultSections() map[string]model.SectionContent {
	return map[string]model.SectionContent{
		"gameModes": {
			Title:       "Game Modes",
			Description: "From quick skirmishes to slow, methodical sieges.",
		},
		"operators": {
			Title:       "Operators",
			Description: "Specialists with unique gadgets and loadouts.",
		},
		"maps": {
			Title:       "Maps",
			Description: "Destructible environments built for close-quarters tactics.",
		},
		"battlePass": {
			Title:       "Battle Pass",
			Description: "Unlock cosmetics and boosts as you level up this season.",
		},
		"leaderboard": {
			Title:       "Leaderboard",
			Description: "The top squads of the current season.",
		},
	}
}

func defaultNavigation() model.NavigationContent {
	return model.NavigationContent{
		StudioName: "Ironline Studios",
		Tagline:    "Tactical. Precise. Relentless.",
		MenuItems: []model.MenuItem{
			{ID: "nav-home", Label: "Home", Href: "/"},
			{ID: "nav-modes", Label: "Game Modes", Href: "/#game-modes"},
			{ID: "nav-operators", Label: "Operators", Href: "/#operators"},
			{ID: "nav-maps", Label: "Maps", Href: "/#maps"},
			{ID: "nav-battlepass", Label: "Battle Pass", Href: "/#battle-pass"},
		},
		DownloadButton: model.LinkButton{Text: "Play Free", URL: "/download"},
		SocialLinks: []model.SocialLink{
			{ID: "social-discord", Platform: "discord", URL: "https://discord.gg/ironline"},
			{ID: "social-x", Platform: "x", URL: "https://x.com/ironlinegame"},
			{ID: "social-youtube", Platform: "youtube", URL: "https://youtube.com/@ironlinegame"},
		},
		SupportLinks: []model.SupportLink{
			{ID: "support-help", Text: "Help Center", URL: "/support"},
			{ID: "support-report", Text: "Report a Bug", URL: "/support/bug"},
			{ID: "support-privacy", Text: "Privacy Policy", URL: "/legal/privacy"},
		},
	}
}

func defaultGameModes() []model.GameMode {
	return []model.GameMode{
		{
			ID:          "team-deathmatch",
			Name:        "Team Deathmatch",
			Description: "Two squads, one objective: outgun the other team before time runs out.",
			Image:       "/images/modes/team-deathmatch.jpg",
			Players:     "6v6",
			Difficulty:  model.DifficultyEasy,
			Category:    model.CategoryCasual,
			IsPopular:   true,
		},
		{
			ID:          "search-and-destroy",
			Name:        "Search & Destroy",
			Description: "Plant or defuse. One life per round, no respawns.",
			Image:       "/images/modes/search-and-destroy.jpg",
			Players:     "5v5",
			Difficulty:  model.DifficultyHard,
			Category:    model.CategoryCompetitive,
			IsPopular:   true,
		},
		{
			ID:          "domination",
			Name:        "Domination",
			Description: "Capture and hold three control points across the map.",
			Image:       "/images/modes/domination.jpg",
			Players:     "6v6",
			Difficulty:  model.DifficultyMedium,
			Category:    model.CategoryTactical,
		},
		{
			ID:          "hostage-rescue",
			Name:        "Hostage Rescue",
			Description: "Breach, clear and extract the hostage without losing them.",
			Image:       "/images/modes/hostage-rescue.jpg",
			Players:     "5v5",
			Difficulty:  model.DifficultyExpert,
			Category:    model.CategoryTactical,
			IsNew:       true,
		},
		{
			ID:          "night-ops",
			Name:        "Night Ops",
			Description: "Limited-time mode played under darkness with night vision only.",
			Image:       "/images/modes/night-ops.jpg",
			Players:     "4v4",
			Difficulty:  model.DifficultyHard,
			Category:    model.CategorySpecial,
			IsNew:       true,
			Metadata:    map[string]string{"availability": "weekends"},
		},
	}
}

func defaultOperators() []model.Operator {
	return []model.Operator{
		{
			ID:          "vanguard",
			Name:        "Vanguard",
			Role:        "Entry Fragger",
			Description: "First through the door and the last to fall back.",
			SpecialAbility: model.SpecialAbility{
				Name:        "Breach Charge",
				Description: "Blows a man-sized hole through reinforced walls.",
				Cooldown:    45,
			},
			Loadout: model.Loadout{
				Primary:   "AR-14 Carbine",
				Secondary: "P9 Pistol",
				Tactical:  "Flashbang",
				Lethal:    "Frag Grenade",
			},
			Image:      "/images/operators/vanguard.png",
			Difficulty: model.DifficultyMedium,
			Stats:      model.OperatorStats{Speed: 80, Armor: 50, Firepower: 75, Stealth: 30, Utility: 55},
			Faction:    model.FactionAttacker,
			Background: "Former urban assault instructor.",
			IsFeatured: true,
		},
		{
			ID:          "bastion",
			Name:        "Bastion",
			Role:        "Anchor",
			Description: "Holds the site with deployable cover and sheer stubbornness.",
			SpecialAbility: model.SpecialAbility{
				Name:        "Deployable Shield",
				Description: "Places a bulletproof barricade.",
				Cooldown:    30,
			},
			Loadout: model.Loadout{
				Primary:   "M870 Shotgun",
				Secondary: "Revolver",
				Tactical:  "Barbed Wire",
				Lethal:    "Impact Grenade",
			},
			Image:      "/images/operators/bastion.png",
			Difficulty: model.DifficultyEasy,
			Stats:      model.OperatorStats{Speed: 35, Armor: 90, Firepower: 60, Stealth: 20, Utility: 65},
			Faction:    model.FactionDefender,
			Background: "Twenty years of close protection work.",
		},
		{
			ID:          "wraith",
			Name:        "Wraith",
			Role:        "Recon",
			Description: "Sees everything, is seen by no one.",
			SpecialAbility: model.SpecialAbility{
				Name:        "Scout Drone",
				Description: "Launches a silent drone that marks enemies.",
				Cooldown:    60,
			},
			Loadout: model.Loadout{
				Primary:   "SMG-9",
				Secondary: "Suppressed P9",
				Tactical:  "Smoke",
				Lethal:    "Claymore",
			},
			Image:      "/images/operators/wraith.png",
			Difficulty: model.DifficultyHard,
			Stats:      model.OperatorStats{Speed: 90, Armor: 25, Firepower: 50, Stealth: 95, Utility: 70},
			Faction:    model.FactionAttacker,
			Background: "Ex-intelligence field operative.",
			IsNew:      true,
		},
		{
			ID:          "warden",
			Name:        "Warden",
			Role:        "Support",
			Description: "Keeps the team standing with medkits and electronic countermeasures.",
			SpecialAbility: model.SpecialAbility{
				Name:        "Signal Jammer",
				Description: "Disables enemy gadgets in a radius.",
				Cooldown:    50,
			},
			Loadout: model.Loadout{
				Primary:   "DMR-7",
				Secondary: "P9 Pistol",
				Tactical:  "Medkit",
				Lethal:    "Proximity Mine",
			},
			Image:      "/images/operators/warden.png",
			Difficulty: model.DifficultyExpert,
			Stats:      model.OperatorStats{Speed: 55, Armor: 60, Firepower: 45, Stealth: 50, Utility: 95},
			Faction:    model.FactionDefender,
			Background: "Combat medic turned signals specialist.",
		},
	}
}

func defaultMaps() []model.Map {
	return []model.Map{
		{
			ID:          "harbor",
			Name:        "Harbor",
			Description: "A container port with long sightlines and tight stacks.",
			Image:       "/images/maps/harbor.jpg",
			Features:    []string{"Destructible containers", "Crane vantage points"},
			Difficulty:  model.DifficultyMedium,
			Size:        model.MapSizeLarge,
			Environment: model.EnvironmentCoastal,
			GameModes:   []string{"Team Deathmatch", "Domination"},
		},
		{
			ID:          "embassy",
			Name:        "Embassy",
			Description: "Multi-floor compound with reinforced vault.",
			Image:       "/images/maps/embassy.jpg",
			Features:    []string{"Rappel points", "Breakable floors"},
			Difficulty:  model.DifficultyHard,
			Size:        model.MapSizeMedium,
			Environment: model.EnvironmentUrban,
			GameModes:   []string{"Search & Destroy", "Hostage Rescue"},
		},
		{
			ID:          "outpost",
			Name:        "Outpost",
			Description: "A frozen research station cut off by a blizzard.",
			Image:       "/images/maps/outpost.jpg",
			Features:    []string{"Low visibility", "Heated interiors"},
			Difficulty:  model.DifficultyExpert,
			Size:        model.MapSizeSmall,
			Environment: model.EnvironmentArctic,
			GameModes:   []string{"Search & Destroy", "Night Ops"},
			IsNew:       true,
		},
		{
			ID:          "foundry",
			Name:        "Foundry",
			Description: "Molten steel, catwalks and a lot of cover.",
			Image:       "/images/maps/foundry.jpg",
			Features:    []string{"Catwalks", "Hazard zones"},
			Difficulty:  model.DifficultyMedium,
			Size:        model.MapSizeMedium,
			Environment: model.EnvironmentIndustrial,
			GameModes:   []string{"Team Deathmatch", "Domination"},
		},
	}
}

func defaultBattlePass() model.BattlePass {
	return model.BattlePass{
		ID:           "season-1",
		Name:         "Season 1: First Contact",
		Description:  "100 tiers of rewards across the launch season.",
		Price:        9.99,
		Season:       1,
		DurationDays: 90,
		StartDate:    "2026-01-15",
		EndDate:      "2026-04-15",
		IsActive:     true,
	}
}

func defaultRewards() []model.BattlePassReward {
	return []model.BattlePassReward{
		{ID: "reward-free-1", Level: 1, Name: "Recruit Emblem", Type: model.RewardEmblem, Rarity: model.RarityCommon, Image: "/images/rewards/recruit.png"},
		{ID: "reward-free-10", Level: 10, Name: "XP Boost (1h)", Type: model.RewardXPBoost, Rarity: model.RarityRare, Image: "/images/rewards/xp.png"},
		{ID: "reward-free-25", Level: 25, Name: "200 Credits", Type: model.RewardCurrency, Rarity: model.RarityRare, Image: "/images/rewards/credits.png"},
		{ID: "reward-premium-1", Level: 1, Name: "Ghost Camo", Type: model.RewardWeaponSkin, Rarity: model.RarityEpic, Image: "/images/rewards/ghost-camo.png", IsPremium: true},
		{ID: "reward-premium-20", Level: 20, Name: "Dog Tag Charm", Type: model.RewardCharm, Rarity: model.RarityRare, Image: "/images/rewards/dogtag.png", IsPremium: true},
		{ID: "reward-premium-50", Level: 50, Name: "Wraith: Midnight", Type: model.RewardOperatorSkin, Rarity: model.RarityLegendary, Image: "/images/rewards/wraith-midnight.png", IsPremium: true},
		{ID: "reward-premium-100", Level: 100, Name: "Season 1 Banner", Type: model.RewardBanner, Rarity: model.RarityLegendary, Image: "/images/rewards/s1-banner.png", IsPremium: true},
	}
}

func defaultHero() model.HeroContent {
	return model.HeroContent{
		Title:    "IRONLINE",
		Subtitle: "Every round is a decision. Every decision is final.",
		Buttons: []model.HeroButton{
			{ID: "hero-play", Text: "Play Now", URL: "/download", Style: model.ButtonPrimary, IsPrimary: true},
			{ID: "hero-trailer", Text: "Watch Trailer", URL: "/launch", Style: model.ButtonOutline},
		},
	}
}

func defaultFooter() model.FooterContent {
	return model.FooterContent{
		Copyright: "© 2026 Ironline Studios. All rights reserved.",
		Links: []model.FooterLink{
			{ID: "footer-about", Text: "About", URL: "/about", Group: "studio"},
			{ID: "footer-careers", Text: "Careers", URL: "/careers", Group: "studio"},
			{ID: "footer-terms", Text: "Terms of Service", URL: "/legal/terms", Group: "legal"},
			{ID: "footer-privacy", Text: "Privacy", URL: "/legal/privacy", Group: "legal"},
		},
	}
}

func defaultBottomButtons() []model.BottomButton {
	return []model.BottomButton{
		{ID: "bottom-download", Text: "Download", URL: "/download", Icon: "download", Position: model.PositionRight},
		{ID: "bottom-discord", Text: "Join Discord", URL: "https://discord.gg/ironline", Icon: "discord", Position: model.PositionLeft},
	}
}

func defaultLaunch() model.LaunchContent {
	return model.LaunchContent{
		Title:       "Ironline launches soon",
		Description: "Pre-register to get the Founder's emblem on day one.",
		ReleaseDate: "2026-12-01T18:00:00Z",
		Media: []model.MediaItem{
			{ID: "media-trailer", Type: model.MediaVideo, URL: "https://youtube.com/embed/ironline-reveal", Title: "Reveal Trailer"},
			{ID: "media-embassy", Type: model.MediaImage, URL: "/images/launch/embassy.jpg", Title: "Embassy"},
		},
		SocialLinks: []model.SocialLink{
			{ID: "launch-discord", Platform: "discord", URL: "https://discord.gg/ironline"},
			{ID: "launch-x", Platform: "x", URL: "https://x.com/ironlinegame"},
		},
		Buttons: []model.LaunchButton{
			{ID: "launch-preregister", Text: "Pre-register", URL: "/preregister", IsPrimary: true},
			{ID: "launch-wishlist", Text: "Wishlist", URL: "https://store.example.com/ironline"},
		},
		PostLaunchTitle:       "Ironline is live",
		PostLaunchDescription: "Deploy now. Season 1 has begun.",
		PostLaunchButtons: []model.LaunchButton{
			{ID: "postlaunch-play", Text: "Play Now", URL: "/download", IsPrimary: true},
		},
	}
}
