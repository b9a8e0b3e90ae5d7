// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

const (
	// resetTokenBytes is the entropy of a reset token.
	resetTokenBytes = 32
	// DefaultResetTokenTTL is how long a reset token stays valid.
	DefaultResetTokenTTL = 10 * time.Minute
)

// resetTokenGenerator is the [ResetTokenGenerator] implementation.
type resetTokenGenerator struct {
	ttl    time.Duration
	random io.Reader
}

// NewResetTokenGenerator returns a generator whose tokens expire after ttl.
// A zero ttl selects [DefaultResetTokenTTL].
func NewResetTokenGenerator(ttl time.Duration) ResetTokenGenerator {
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	return &resetTokenGenerator{ttl: ttl, random: rand.Reader}
}

func (g *resetTokenGenerator) Generate(now time.Time) (string, string, time.Time, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", "", time.Time{}, fmt.Errorf("error reading random bytes: %w", err)
	}

	plaintext := hex.EncodeToString(buf)
	return plaintext, g.Digest(plaintext), now.Add(g.ttl), nil
}

// Digest returns the sha256 hex digest of plaintext.
func (g *resetTokenGenerator) Digest(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
