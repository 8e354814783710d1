package users

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    uint32 = 3
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 2
	argonKeyLen  uint32 = 32
	saltLen             = 16
	argonPrefix         = "argon2id"
)

// HashPassword derives an argon2id hash encoded as
// argon2id$time$memoryKiB$threads$saltHex$hashHex.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return strings.Join([]string{
		argonPrefix,
		strconv.FormatUint(uint64(argonTime), 10),
		strconv.FormatUint(uint64(argonMemory), 10),
		strconv.FormatUint(uint64(argonThreads), 10),
		hex.EncodeToString(salt),
		hex.EncodeToString(key),
	}, "$"), nil
}

// VerifyPassword reports whether password matches the stored hash. Hashes in
// the legacy salt$sha256hex(password+salt) form are still accepted.
func VerifyPassword(stored, password string) bool {
	parts := strings.Split(stored, "$")
	switch {
	case len(parts) == 6 && parts[0] == argonPrefix:
		return verifyArgon(parts, password)
	case len(parts) == 2:
		return verifyLegacy(parts[0], parts[1], password)
	default:
		return false
	}
}

// IsLegacyHash reports whether the stored hash predates argon2id.
func IsLegacyHash(stored string) bool {
	return !strings.HasPrefix(stored, argonPrefix+"$")
}

func verifyArgon(parts []string, password string) bool {
	t, err1 := strconv.ParseUint(parts[1], 10, 32)
	m, err2 := strconv.ParseUint(parts[2], 10, 32)
	p, err3 := strconv.ParseUint(parts[3], 10, 8)
	salt, err4 := hex.DecodeString(parts[4])
	want, err5 := hex.DecodeString(parts[5])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil || len(want) == 0 {
		return false
	}
	got := argon2.IDKey([]byte(password), salt, uint32(t), uint32(m), uint8(p), uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

func verifyLegacy(salt, digestHex, password string) bool {
	sum := sha256.Sum256([]byte(password + salt))
	got := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(got), []byte(strings.ToLower(digestHex))) == 1
}
