package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AccountSessionKey returns the cache key for an account's login session
func (r *CacheKeyStruct) AccountSessionKey(accountID uuid.UUID) string {
	return fmt.Sprintf("login:account:%s", accountID)
}

// LeaderboardKey returns the cache key for the public lecturer standings
func (r *CacheKeyStruct) LeaderboardKey() string {
	return "leaderboard:standings"
}

// LeaderboardChannel returns the Redis PubSub channel signalled on every
// accepted cast or cancel
func (r *CacheKeyStruct) LeaderboardChannel() string {
	return "leaderboard:events"
}

// QuotaResetMarkerKey returns the once-per-date marker key that keeps the
// daily quota reset idempotent across worker instances
func (r *CacheKeyStruct) QuotaResetMarkerKey(date string) string {
	return fmt.Sprintf("quota_reset:%s", date)
}

var CacheKey = NewCacheKeyStruct()
