// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/crypto/pbkdf2"
)

const keyProviderPrefix = "key_provider.pbkdf2."

// ErrEncrypted is returned when an encrypted snapshot is read without a way
// to obtain its passphrase.
var ErrEncrypted = errors.New("snapshot is encrypted")

// IsEncrypted reports whether data is an encrypted envelope.
func IsEncrypted(data []byte) bool {
	if !gjson.ValidBytes(data) {
		return false
	}
	return gjson.GetBytes(data, "encrypted_data").Type == gjson.String &&
		gjson.GetBytes(data, "meta").IsObject()
}

// keyProvider holds the PBKDF2 parameters stored in an envelope.
type keyProvider struct {
	Salt       string `json:"salt"`
	Iterations int    `json:"iterations"`
	HashFunc   string `json:"hash_function"`
	KeyLength  int    `json:"key_length"`
}

// Decrypt opens an encrypted envelope with passphrase. It returns the
// plaintext snapshot and the format recorded in the envelope, JSON when none
// is recorded.
func Decrypt(data []byte, passphrase string) ([]byte, Format, error) {
	if !gjson.ValidBytes(data) {
		return nil, "", errors.New("failed to parse envelope: invalid JSON")
	}
	env := gjson.ParseBytes(data)

	format := FormatJSON
	if f := env.Get("format"); f.Exists() {
		var err error
		if format, err = ParseFormat(f.String()); err != nil {
			return nil, "", err
		}
	}

	// Key provider names are dotted, so members are matched by prefix rather
	// than by path.
	var encodedKey string
	env.Get("meta").ForEach(func(key, value gjson.Result) bool {
		if strings.HasPrefix(key.String(), keyProviderPrefix) {
			encodedKey = value.String()
			return false
		}
		return true
	})
	if encodedKey == "" {
		return nil, "", errors.New("envelope has no pbkdf2 key provider")
	}

	kpJSON, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode key provider config: %w", err)
	}

	var kp keyProvider
	if err = json.Unmarshal(kpJSON, &kp); err != nil {
		return nil, "", fmt.Errorf("failed to parse key provider config: %w", err)
	}

	if kp.Iterations <= 0 {
		return nil, "", fmt.Errorf("invalid key provider config: iterations must be positive, got %d", kp.Iterations)
	}
	switch kp.KeyLength {
	case 16, 24, 32:
	default:
		return nil, "", fmt.Errorf("invalid key provider config: key_length must be 16, 24 or 32, got %d", kp.KeyLength)
	}

	salt, err := base64.StdEncoding.DecodeString(kp.Salt)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode salt: %w", err)
	}

	var h func() hash.Hash
	switch strings.ToLower(kp.HashFunc) {
	case "", "sha512":
		h = sha512.New
	case "sha256":
		h = sha256.New
	default:
		return nil, "", fmt.Errorf("unsupported hash function %q", kp.HashFunc)
	}

	key := pbkdf2.Key([]byte(passphrase), salt, kp.Iterations, kp.KeyLength, h)

	plaintext, err := open(env.Get("encrypted_data").String(), key)
	if err != nil {
		return nil, "", err
	}
	return plaintext, format, nil
}

// open decrypts base64 AES-GCM data whose nonce prefixes the ciphertext.
func open(encryptedData string, derivedKey []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	block, err := aes.NewCipher(derivedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf(
			"ciphertext too short: expected at least %d bytes, got %d",
			nonceSize,
			len(ciphertext),
		)
	}

	plaintext, err := aesGCM.Open(nil, ciphertext[:nonceSize], ciphertext[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	return plaintext, nil
}
