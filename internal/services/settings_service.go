package services

import (
	"context"
	"log"
	"time"

	"bima-invoice/internal/caching"
	"bima-invoice/internal/models"
	"bima-invoice/internal/repositories"
)

const settingsCacheTTL = 10 * time.Minute

// SettingsServiceInterface exposes the singleton settings record. Get lazily
// seeds the defaults on first access; Put replaces the record wholesale.
type SettingsServiceInterface interface {
	Get(ctx context.Context) (*models.AppSettings, error)
	Put(ctx context.Context, settings *models.AppSettings) error
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	cacheSvc     caching.CacheService
}

func NewSettingsService(settingsRepo repositories.SettingsRepository, cacheSvc caching.CacheService) SettingsServiceInterface {
	return &settingsService{
		settingsRepo: settingsRepo,
		cacheSvc:     cacheSvc,
	}
}

func (s *settingsService) Get(ctx context.Context) (*models.AppSettings, error) {
	if cached, err := s.cacheSvc.GetSettings(ctx); err != nil {
		log.Printf("WARN: settings cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetSettings(ctx, settings, settingsCacheTTL); err != nil {
		log.Printf("WARN: settings cache write failed: %v", err)
	}
	return settings, nil
}

func (s *settingsService) Put(ctx context.Context, settings *models.AppSettings) error {
	if err := s.settingsRepo.Put(ctx, settings); err != nil {
		return err
	}
	if err := s.cacheSvc.SetSettings(ctx, settings, settingsCacheTTL); err != nil {
		log.Printf("WARN: settings cache write failed: %v", err)
	}
	return nil
}
