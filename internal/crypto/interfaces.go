// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the credential primitives of the service: password
// hashing and one-time reset token generation. It knows nothing about users,
// storage or transport.
package crypto

import "time"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher stores and verifies passwords with a salted adaptive hash.
type PasswordHasher interface {
	// Hash returns the digest of plaintext. A fresh salt is used on every
	// call, so hashing the same password twice yields different digests.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. The comparison is
	// constant-time.
	Verify(plaintext, digest string) bool
}

// ResetTokenGenerator produces high-entropy one-time tokens and their
// at-rest digests.
type ResetTokenGenerator interface {
	// Generate returns a new plaintext token, its digest and expiry.
	Generate(now time.Time) (plaintext, digest string, expiresAt time.Time, err error)

	// Digest returns the at-rest form of a plaintext token.
	Digest(plaintext string) string
}
