package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"ironline-site/internal/cache"
	"ironline-site/internal/model"
	"ironline-site/internal/repository"
)

const launchSettingsCacheKey = "launch:settings"

// LaunchService reads and writes the site-wide launch settings blob.
// Reads are cached briefly so the redirect middleware does not hit the
// bridge on every page request.
type LaunchService struct {
	bridge       *BridgeService
	cache        cache.Store
	settingsType string
	cacheTTL     time.Duration
}

// NewLaunchService creates a launch settings service.
func NewLaunchService(bridge *BridgeService, store cache.Store, settingsType string, cacheTTL time.Duration) *LaunchService {
	if settingsType == "" {
		settingsType = "launch-settings"
	}
	return &LaunchService{
		bridge:       bridge,
		cache:        store,
		settingsType: settingsType,
		cacheTTL:     cacheTTL,
	}
}

// Settings returns the persisted launch settings. A missing blob yields the
// zero value (launch mode off).
func (s *LaunchService) Settings(ctx context.Context) (model.LaunchSettings, error) {
	var settings model.LaunchSettings

	load := func() ([]byte, error) {
		blob, err := s.bridge.Read(ctx, s.settingsType)
		if errors.Is(err, repository.ErrNotFound) {
			return json.Marshal(model.LaunchSettings{})
		}
		if err != nil {
			return nil, err
		}
		return blob.Content, nil
	}

	var raw []byte
	var err error
	if s.cache != nil && s.cacheTTL > 0 {
		raw, err = s.cache.GetOrSet(ctx, launchSettingsCacheKey, s.cacheTTL, load)
	} else {
		raw, err = load()
	}
	if err != nil {
		return settings, err
	}

	if err := json.Unmarshal(raw, &settings); err != nil {
		return model.LaunchSettings{}, err
	}
	return settings, nil
}

// Type returns the bridge type the settings are stored under.
func (s *LaunchService) Type() string {
	return s.settingsType
}

// BlobWritten drops the cached settings when blobType is the settings type.
// It is meant as a bridge write hook.
func (s *LaunchService) BlobWritten(ctx context.Context, blobType string) {
	if blobType == s.settingsType {
		s.invalidate(ctx)
	}
}

func (s *LaunchService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Remove(ctx, launchSettingsCacheKey); err != nil {
		log.Printf("[LaunchService] Failed to drop cached settings: %v", err)
	}
}

// SaveSettings persists launch settings and drops the cached copy.
func (s *LaunchService) SaveSettings(ctx context.Context, settings model.LaunchSettings) error {
	if err := s.bridge.WriteValue(ctx, s.settingsType, settings); err != nil {
		return err
	}
	s.invalidate(ctx)
	log.Printf("[LaunchService] Launch mode=%v autoRedirect=%v", settings.IsLaunchMode, settings.AutoRedirect)
	return nil
}
