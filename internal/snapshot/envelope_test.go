// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package snapshot

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"errors"
	"hash"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

// seal builds an encrypted envelope around plaintext.
func seal(t *testing.T, plaintext []byte, passphrase, hashName, format string) []byte {
	t.Helper()

	salt := []byte("test-salt-12345")
	iterations := 1000

	var h func() hash.Hash = sha512.New
	if hashName == "sha256" {
		h = sha256.New
	}
	key := pbkdf2.Key([]byte(passphrase), salt, iterations, 32, h)

	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	aesGCM, err := cipher.NewGCM(block)
	require.NoError(t, err)

	nonce := make([]byte, aesGCM.NonceSize())
	ciphertext := aesGCM.Seal(nonce, nonce, plaintext, nil)

	kp, err := json.Marshal(map[string]interface{}{
		"salt":          base64.StdEncoding.EncodeToString(salt),
		"iterations":    iterations,
		"hash_function": hashName,
		"key_length":    32,
	})
	require.NoError(t, err)

	env := map[string]interface{}{
		"meta": map[string]interface{}{
			"key_provider.pbkdf2.edge1": base64.StdEncoding.EncodeToString(kp),
		},
		"encrypted_data": base64.StdEncoding.EncodeToString(ciphertext),
	}
	if format != "" {
		env["format"] = format
	}

	data, err := json.Marshal(env)
	require.NoError(t, err)
	return data
}

func TestDecrypt(t *testing.T) {
	t.Parallel()

	plaintext := []byte("system:\n  host-name: r1\n")

	tests := []struct {
		name       string
		hash       string
		format     string
		passphrase string
		want       Format
		wantErr    string
	}{
		{name: "sha512 yaml", hash: "sha512", format: "yaml", passphrase: "s3cret", want: FormatYAML},
		{name: "sha256 default format", hash: "sha256", passphrase: "s3cret", want: FormatJSON},
		{name: "wrong passphrase", hash: "sha512", passphrase: "nope", wantErr: "decrypt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := seal(t, plaintext, "s3cret", tt.hash, tt.format)
			require.True(t, IsEncrypted(data))

			got, format, err := Decrypt(data, tt.passphrase)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, plaintext, got)
			assert.Equal(t, tt.want, format)
		})
	}
}

func TestDecrypt_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"not json", "not valid json", "invalid JSON"},
		{"no key provider", `{"meta": {}, "encrypted_data": "AA=="}`, "no pbkdf2 key provider"},
		{"bad key provider", `{"meta": {"key_provider.pbkdf2.k": "!!"}, "encrypted_data": "AA=="}`, "key provider config"},
		{"bad format", `{"meta": {}, "encrypted_data": "AA==", "format": "xml"}`, "unsupported snapshot format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Decrypt([]byte(tt.data), "p")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecrypt_BadKeyProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		iterations int
		keyLength  int
		wantErr    string
	}{
		{"zero iterations", 0, 32, "iterations must be positive, got 0"},
		{"negative iterations", -5, 32, "iterations must be positive, got -5"},
		{"odd key length", 1000, 20, "key_length must be 16, 24 or 32, got 20"},
		{"missing key length", 1000, 0, "key_length must be 16, 24 or 32, got 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			kp, err := json.Marshal(map[string]interface{}{
				"salt":          base64.StdEncoding.EncodeToString([]byte("salt")),
				"iterations":    tt.iterations,
				"hash_function": "sha512",
				"key_length":    tt.keyLength,
			})
			require.NoError(t, err)
			data, err := json.Marshal(map[string]interface{}{
				"meta":           map[string]interface{}{"key_provider.pbkdf2.k": base64.StdEncoding.EncodeToString(kp)},
				"encrypted_data": "AA==",
			})
			require.NoError(t, err)

			_, _, err = Decrypt(data, "p")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid key provider config")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsEncrypted(t *testing.T) {
	t.Parallel()

	assert.False(t, IsEncrypted([]byte(`{"system": {"host-name": "r1"}}`)))
	assert.False(t, IsEncrypted([]byte(`{"encrypted_data": {"a": 1}}`)))
	assert.False(t, IsEncrypted([]byte("system:\n  host-name: r1\n")))
	assert.True(t, IsEncrypted([]byte(`{"meta": {}, "encrypted_data": "AA=="}`)))
}

func TestOpen(t *testing.T) {
	t.Parallel()

	plaintext := []byte(`{"system": {"host-name": "r1"}}`)
	sealed := seal(t, plaintext, "s3cret", "sha512", "json")

	t.Run("plain data passes through", func(t *testing.T) {
		t.Parallel()
		got, format, err := Open(plaintext, FormatHCL, nil)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
		assert.Equal(t, FormatHCL, format)
	})

	t.Run("encrypted without supplier", func(t *testing.T) {
		t.Parallel()
		_, _, err := Open(sealed, FormatJSON, nil)
		assert.ErrorIs(t, err, ErrEncrypted)
	})

	t.Run("supplier error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		_, _, err := Open(sealed, FormatJSON, func() (string, error) { return "", boom })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("decrypts and decodes", func(t *testing.T) {
		t.Parallel()
		got, format, err := Open(sealed, FormatYAML, Passphrase("s3cret"))
		require.NoError(t, err)
		n, err := Decode(got, format, []string{"system", "host-name"})
		require.NoError(t, err)
		assert.Equal(t, []string{"r1"}, n.Values())
	})
}

func TestPassphrase(t *testing.T) {
	t.Setenv(EnvPassphrase, "from-env")

	p, err := Passphrase("from-flag")()
	require.NoError(t, err)
	assert.Equal(t, "from-flag", p)

	p, err = Passphrase("")()
	require.NoError(t, err)
	assert.Equal(t, "from-env", p)
}

func TestPassphrase_PromptsOnce(t *testing.T) {
	t.Setenv(EnvPassphrase, "")

	saved := prompt
	t.Cleanup(func() { prompt = saved })

	calls := 0
	prompt = func() (string, error) {
		calls++
		return "", nil
	}

	pass := Passphrase("")
	for range 3 {
		p, err := pass()
		require.NoError(t, err)
		assert.Empty(t, p)
	}
	assert.Equal(t, 1, calls)
}

func TestPassphrase_PromptError(t *testing.T) {
	t.Setenv(EnvPassphrase, "")

	saved := prompt
	t.Cleanup(func() { prompt = saved })

	calls := 0
	prompt = func() (string, error) {
		calls++
		if calls == 1 {
			return "", ErrEncrypted
		}
		return "later", nil
	}

	pass := Passphrase("")
	_, err := pass()
	assert.ErrorIs(t, err, ErrEncrypted)

	p, err := pass()
	require.NoError(t, err)
	assert.Equal(t, "later", p)
	assert.Equal(t, 2, calls)
}
