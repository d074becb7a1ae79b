// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// EnvPassphrase names the environment variable consulted for the passphrase
// of encrypted snapshots.
const EnvPassphrase = "CFGDIFF_PASSPHRASE"

// PassphraseFunc supplies the passphrase for an encrypted snapshot.
type PassphraseFunc func() (string, error)

// prompt asks the user for a passphrase.
var prompt = GetPassphrase

// Passphrase returns a PassphraseFunc that tries flagValue, then
// $CFGDIFF_PASSPHRASE, then an interactive prompt. The answer is remembered so
// the user is asked at most once per run, even when the answer is empty.
func Passphrase(flagValue string) PassphraseFunc {
	var (
		cached   string
		resolved bool
	)
	return func() (string, error) {
		if resolved {
			return cached, nil
		}

		p := flagValue
		if p == "" {
			p = os.Getenv(EnvPassphrase)
		}
		if p == "" {
			var err error
			if p, err = prompt(); err != nil {
				return "", err
			}
		}
		cached, resolved = p, true
		return cached, nil
	}
}

// GetPassphrase prompts on stderr and reads a passphrase from the terminal
// without echoing it.
func GetPassphrase() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("%w: no terminal to prompt for a passphrase", ErrEncrypted)
	}

	fmt.Fprint(os.Stderr, "Enter passphrase: ")
	defer fmt.Fprintln(os.Stderr)

	p, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return string(p), nil
}

// Open returns the decoded plaintext of data. An encrypted envelope is opened
// with the passphrase from pass; plain data is returned as is with format
// unchanged.
func Open(data []byte, format Format, pass PassphraseFunc) ([]byte, Format, error) {
	if !IsEncrypted(data) {
		return data, format, nil
	}
	if pass == nil {
		return nil, "", ErrEncrypted
	}

	passphrase, err := pass()
	if err != nil {
		return nil, "", err
	}
	return Decrypt(data, passphrase)
}
