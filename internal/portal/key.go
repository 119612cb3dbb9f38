package portal

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const keyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var keyPattern = regexp.MustCompile(`^SAL-[A-Z0-9]{4}-[A-Z0-9]{4}$`)

// NewRegistrationKey generates a shareable client activation token of
// the form SAL-XXXX-XXXX. Keys are not deduplicated against existing
// users; the collision odds over two 4-character segments are accepted.
func NewRegistrationKey() string {
	return fmt.Sprintf("SAL-%s-%s", keySegment(4), keySegment(4))
}

func keySegment(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; degrade to
		// a time-derived segment rather than error on key issue.
		seed := time.Now().UnixNano()
		for i := range buf {
			buf[i] = byte(seed >> (8 * (i % 8)))
		}
	}
	out := make([]byte, length)
	for i, b := range buf {
		out[i] = keyAlphabet[int(b)%len(keyAlphabet)]
	}
	return string(out)
}

// NormalizeRegistrationKey uppercases and trims a hand-transcribed key
// so case-insensitive entry still matches.
func NormalizeRegistrationKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// ValidRegistrationKey reports whether key already has the canonical
// SAL-XXXX-XXXX shape.
func ValidRegistrationKey(key string) bool {
	return keyPattern.MatchString(key)
}
