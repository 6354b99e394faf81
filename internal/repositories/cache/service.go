package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"paygo/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService wraps Redis for the two ephemeral stores this system needs:
// a wallet read cache (invalidated on every balance mutation) and OTP codes
// with their expiry. Nothing money-authoritative ever lives here.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Wallet caching. Reads that gate financial decisions bypass this cache and
// hit the database; only the display-balance endpoint uses it.

func walletKey(userID uint) string {
	return fmt.Sprintf("wallet:user:%d", userID)
}

func (s *CacheService) CacheWallet(ctx context.Context, wallet *models.Wallet) error {
	return s.Set(ctx, walletKey(wallet.UserID), wallet)
}

func (s *CacheService) GetWallet(ctx context.Context, userID uint) (*models.Wallet, bool) {
	var wallet models.Wallet
	found, err := s.Get(ctx, walletKey(userID), &wallet)
	if err != nil || !found {
		return nil, false
	}
	return &wallet, true
}

func (s *CacheService) InvalidateWallet(ctx context.Context, userID uint) error {
	return s.Delete(ctx, walletKey(userID))
}

// OTP storage. Codes live only in Redis with their TTL; expiry is enforced
// by the store, not by comparing timestamps.

func otpKey(purpose, email string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, email)
}

func (s *CacheService) StoreOTP(ctx context.Context, purpose, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, otpKey(purpose, email), code, ttl).Err()
}

func (s *CacheService) GetOTP(ctx context.Context, purpose, email string) (string, bool, error) {
	code, err := s.client.Get(ctx, otpKey(purpose, email)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return code, true, nil
}

func (s *CacheService) DeleteOTP(ctx context.Context, purpose, email string) error {
	return s.client.Del(ctx, otpKey(purpose, email)).Err()
}

// HealthCheck pings Redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *CacheService) Close() error {
	return s.client.Close()
}
