package application

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidPasswordHash         = errors.New("invalid password hash format")
	ErrIncompatiblePasswordVersion = errors.New("incompatible password hash version")
)

// Verifier compares a stored credential with a candidate password. The
// portal's storage contract is plaintext; keeping comparison behind
// this type lets a hashing scheme replace it without touching callers.
type Verifier func(stored, candidate string) error

// PlaintextVerifier matches the portal's stored-as-entered credential
// contract.
func PlaintextVerifier(stored, candidate string) error {
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

type argon2idParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

var defaultArgon2idParams = argon2idParams{
	memory:      64 * 1024,
	iterations:  3,
	parallelism: 2,
	saltLength:  16,
	keyLength:   32,
}

// CreatePasswordHash derives an argon2id hash in the standard
// $argon2id$v=19$m=...,t=...,p=...$salt$hash encoding.
func CreatePasswordHash(password string) (string, error) {
	params := defaultArgon2idParams

	salt := make([]byte, params.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, params.iterations, params.memory, params.parallelism, params.keyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, params.memory, params.iterations, params.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Argon2idVerifier verifies a candidate against an encoded argon2id
// hash. It is the drop-in Verifier for deployments that opt out of the
// plaintext contract.
func Argon2idVerifier(stored, candidate string) error {
	parts := strings.Split(stored, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return ErrInvalidPasswordHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return err
	}
	if version != argon2.Version {
		return ErrIncompatiblePasswordVersion
	}

	var params argon2idParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.iterations, &params.parallelism); err != nil {
		return err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return err
	}

	decoded, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return err
	}
	params.keyLength = uint32(len(decoded))

	comparison := argon2.IDKey([]byte(candidate), salt, params.iterations, params.memory, params.parallelism, params.keyLength)
	if subtle.ConstantTimeCompare(decoded, comparison) == 1 {
		return nil
	}
	return ErrInvalidCredentials
}
