package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"bima-invoice/internal/models"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "bima"

// CacheService caches the invoice list, the settings record and arbitrary
// JSON blobs (payment summary). A miss is reported as (nil, nil); cache
// failures are surfaced so callers can fall back to the store.
type CacheService interface {
	GetInvoices(ctx context.Context) ([]*models.Invoice, error)
	SetInvoices(ctx context.Context, invoices []*models.Invoice, ttl time.Duration) error
	InvalidateInvoices(ctx context.Context) error

	GetSettings(ctx context.Context) (*models.AppSettings, error)
	SetSettings(ctx context.Context, settings *models.AppSettings, ttl time.Duration) error
	InvalidateSettings(ctx context.Context) error

	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
		parsedAddr = hostPort
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) invoicesKey() string {
	return fmt.Sprintf("%s:invoices", keyPrefix)
}

func (r *redisCacheService) settingsKey() string {
	return fmt.Sprintf("%s:settings:%s", keyPrefix, models.SettingsKey)
}

func (r *redisCacheService) GetInvoices(ctx context.Context) ([]*models.Invoice, error) {
	data, err := r.client.Get(ctx, r.invoicesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var invoices []*models.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *redisCacheService) SetInvoices(ctx context.Context, invoices []*models.Invoice, ttl time.Duration) error {
	data, err := json.Marshal(invoices)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.invoicesKey(), data, ttl).Err()
}

func (r *redisCacheService) InvalidateInvoices(ctx context.Context) error {
	return r.client.Del(ctx, r.invoicesKey()).Err()
}

func (r *redisCacheService) GetSettings(ctx context.Context) (*models.AppSettings, error) {
	data, err := r.client.Get(ctx, r.settingsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var settings models.AppSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *redisCacheService) SetSettings(ctx context.Context, settings *models.AppSettings, ttl time.Duration) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.settingsKey(), data, ttl).Err()
}

func (r *redisCacheService) InvalidateSettings(ctx context.Context) error {
	return r.client.Del(ctx, r.settingsKey()).Err()
}

func (r *redisCacheService) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, fmt.Sprintf("%s:%s", keyPrefix, key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, fmt.Sprintf("%s:%s", keyPrefix, key), data, ttl).Err()
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, fmt.Sprintf("%s:%s", keyPrefix, key)).Err()
}
