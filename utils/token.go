package utils

import (
	"sync"
	"time"
)

var (
	blacklistedTokens = make(map[string]time.Time)
	blacklistMutex    sync.RWMutex
)

// BlacklistToken revokes a token for the remainder of its 24h lifetime.
func BlacklistToken(token string) {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	blacklistedTokens[token] = time.Now().Add(24 * time.Hour)
}

func IsTokenBlacklisted(token string) bool {
	blacklistMutex.RLock()
	defer blacklistMutex.RUnlock()

	if expiry, exists := blacklistedTokens[token]; exists {
		return time.Now().Before(expiry)
	}
	return false
}

// StartBlacklistCleanup drops expired entries hourly. Call once from main.
func StartBlacklistCleanup() {
	go func() {
		for {
			time.Sleep(1 * time.Hour)
			blacklistMutex.Lock()
			now := time.Now()
			for token, expiry := range blacklistedTokens {
				if now.After(expiry) {
					delete(blacklistedTokens, token)
				}
			}
			blacklistMutex.Unlock()
		}
	}()
}
