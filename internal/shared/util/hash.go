package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// OwnerKey maps a user id to the directory segment holding that user's
// resume artifacts. Ids are hashed so keys never expose them.
func OwnerKey(userID string) string {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = "anonymous"
	}
	sum := sha256.Sum256([]byte("resume-artifacts:" + userID))
	return hex.EncodeToString(sum[:16])
}
