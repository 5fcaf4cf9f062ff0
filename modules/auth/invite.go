package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// InviteTokenBytes is the entropy of an invite token before hex encoding.
const InviteTokenBytes = 32

// NewInviteToken generates an unguessable single-use invite token.
func NewInviteToken() (string, error) {
	buf := make([]byte, InviteTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate invite token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
