package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateIn(t *testing.T) {
	// 03:00 UTC on March 10 is still the evening of March 9 in New York.
	at := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)

	la := "America/Los_Angeles"
	ny := "America/New_York"
	bogus := "Not/AZone"
	empty := ""

	tests := []struct {
		name string
		tz   *string
		want string
	}{
		{"explicit zone", &la, "2026-03-09"},
		{"default zone", &ny, "2026-03-09"},
		{"nil falls back to default zone", nil, "2026-03-09"},
		{"empty falls back to default zone", &empty, "2026-03-09"},
		{"unresolvable falls back to default zone", &bogus, "2026-03-09"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateIn(at, tt.tz))
		})
	}
}

func TestDateInNeverEmpty(t *testing.T) {
	bad := "Also/Bogus"
	got := DateIn(time.Now(), &bad)
	assert.Len(t, got, len("2006-01-02"))
}
