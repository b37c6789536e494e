package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Session is the anonymous identity a browser holds before any real login.
// Its id correlates the cart and wishlist across requests and tabs.
type Session struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// NewSessionID mints an opaque "session_<unixMillis>_<random>" id.
func NewSessionID() string {
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), randomHex(8))
}

// IsSessionID reports whether id looks like a gateway-minted session id, as
// opposed to a backend user id.
func IsSessionID(id string) bool {
	return strings.HasPrefix(id, "session_")
}

func randomHex(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_session"
	}
	return hex.EncodeToString(bytes)
}
