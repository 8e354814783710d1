package users

import (
	"crypto/sha256"
	"encoding/hex"
)

func legacyDigest(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}
