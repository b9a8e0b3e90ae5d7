// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the access level of a user account.
type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

// User represents an account entity used for authentication and authorization.
// Credential fields are never serialized.
type User struct {
	// ID is the unique identifier of the user.
	ID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique, lower-cased login identifier.
	Email string `json:"email"`

	// Photo is the file name of the user's avatar.
	Photo string `json:"photo"`

	// Role decides which routes the user may access.
	Role Role `json:"role"`

	// Password stores the bcrypt digest of the user's password.
	// It MUST never leave the server.
	Password string `json:"-"`

	// PasswordChangedAt is set every time the password is replaced.
	// Tokens issued before this moment are rejected.
	PasswordChangedAt *time.Time `json:"-"`

	// PasswordResetToken is the sha256 hex digest of the pending reset token.
	PasswordResetToken string `json:"-"`

	// PasswordResetExpires is the moment after which the pending reset token
	// is no longer accepted.
	PasswordResetExpires *time.Time `json:"-"`

	// Active is false for soft-deleted accounts.
	Active bool `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// ChangedPasswordAfter reports whether the password was changed after a token
// with the given issued-at time was signed. Token timestamps carry millisecond
// precision, so the change time is truncated to match before comparing.
func (u User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Truncate(time.Millisecond).After(issuedAt)
}

// Summary returns the public projection of u embedded into reviews.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Photo: u.Photo}
}

// UserSummary is the subset of user fields embedded in other documents.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// UserUpdate carries a partial update of a user. Nil fields are left untouched.
type UserUpdate struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Photo  *string `json:"photo,omitempty"`
	Role   *Role   `json:"role,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// IsEmpty reports whether the update carries no changes.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Photo == nil && u.Role == nil && u.Active == nil
}
