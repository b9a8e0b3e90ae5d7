package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_ChangedPasswordAfter(t *testing.T) {
	issued := time.Date(2026, 10, 14, 9, 30, 0, 250*int(time.Millisecond), time.UTC)

	tests := []struct {
		name    string
		changed *time.Time
		want    bool
	}{
		{name: "never changed"},
		{name: "changed before issue", changed: ptr(issued.Add(-time.Second))},
		{name: "changed at issue", changed: ptr(issued)},
		{name: "changed within the issue millisecond", changed: ptr(issued.Add(400 * time.Microsecond))},
		{name: "changed later in the same second", changed: ptr(issued.Add(500 * time.Millisecond)), want: true},
		{name: "changed the next second", changed: ptr(issued.Add(time.Second)), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{PasswordChangedAt: tt.changed}
			assert.Equal(t, tt.want, u.ChangedPasswordAfter(issued))
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
