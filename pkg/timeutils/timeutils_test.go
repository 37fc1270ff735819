package timeutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTime(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"00:00", true},
		{"08:05", true},
		{"8:05", true},
		{"23:59", true},
		{"24:00", false},
		{"12:60", false},
		{"', '", false},
		{"0800", false},
		{"08:0", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidTime(tt.input))
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already valid", "08:30", "08:30"},
		{"bare hour", "08", "08:00"},
		{"three digits", "800", "08:00"},
		{"three digits with minutes", "930", "09:30"},
		{"four digits", "0830", "08:30"},
		{"four digits late", "1745", "17:45"},
		{"digits with space", "1 30", "01:30"},
		{"invalid hour kept as is", "2790", "2790"},
		{"garbage kept as is", "ab", "ab"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTime(tt.input))
		})
	}
}

func TestToMinutes(t *testing.T) {
	assert.Equal(t, 0, ToMinutes(""))
	assert.Equal(t, 0, ToMinutes("not a time"))
	assert.Equal(t, 0, ToMinutes("00:00"))
	assert.Equal(t, 485, ToMinutes("08:05"))
	assert.Equal(t, 1439, ToMinutes("23:59"))
}

func TestToTimeString(t *testing.T) {
	assert.Equal(t, "00:00", ToTimeString(0))
	assert.Equal(t, "00:50", ToTimeString(50))
	assert.Equal(t, "-00:50", ToTimeString(-50))
	assert.Equal(t, "04:00", ToTimeString(240))
	assert.Equal(t, "-08:00", ToTimeString(-480))
	assert.Equal(t, "26:03", ToTimeString(1563))
}

// Round trip holds for every minute of a day.
func TestToMinutesRoundTrip(t *testing.T) {
	for m := 0; m < 24*60; m++ {
		assert.Equal(t, m, ToMinutes(ToTimeString(m)))
	}
}

func TestBalanceMessage(t *testing.T) {
	assert.Equal(t, "Your hours are balanced.", BalanceMessage(0))
	assert.Contains(t, BalanceMessage(90), "1h 30min")
	assert.Contains(t, BalanceMessage(90), "positive")
	assert.Contains(t, BalanceMessage(120), "2h")
	assert.Contains(t, BalanceMessage(-40), "40min")
	assert.Contains(t, BalanceMessage(-40), "owe")
}
