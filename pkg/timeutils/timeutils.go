package timeutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout and MonthLayout are the ISO forms used across the API and the
// database. ISO dates sort and compare correctly as plain strings.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

var timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

var nonDigits = regexp.MustCompile(`\D`)

// IsValidTime reports whether s is a clock time in H:MM or HH:MM form,
// hour 0-23 and minute 0-59.
func IsValidTime(s string) bool {
	if s == "" {
		return false
	}
	return timePattern.MatchString(s)
}

// NormalizeTime coerces loosely typed input like "800", "0830" or "1 30" into
// HH:MM. It never fails: when no rule produces a valid time the input is
// returned unchanged, and IsValidTime is expected to reject it downstream.
func NormalizeTime(raw string) string {
	if raw == "" {
		return ""
	}
	if IsValidTime(raw) {
		return raw
	}

	digits := nonDigits.ReplaceAllString(raw, "")

	switch len(digits) {
	case 2:
		// Bare hour, e.g. "08" -> 08:00.
		if hour, err := strconv.Atoi(digits); err == nil && hour < 24 {
			return fmt.Sprintf("%02d:00", hour)
		}
	case 3:
		// Single-digit hour, e.g. "800" -> 08:00.
		hour, _ := strconv.Atoi(digits[:1])
		minute, _ := strconv.Atoi(digits[1:])
		if minute < 60 {
			return fmt.Sprintf("%02d:%02d", hour, minute)
		}
	case 4:
		hour, _ := strconv.Atoi(digits[:2])
		minute, _ := strconv.Atoi(digits[2:])
		if hour < 24 && minute < 60 {
			return fmt.Sprintf("%02d:%02d", hour, minute)
		}
	}

	// Last resort: a colon after the first two digits may still form a valid time.
	if len(digits) > 2 {
		candidate := digits[:2] + ":" + digits[2:]
		if IsValidTime(candidate) {
			return candidate
		}
	}

	return raw
}

// IsValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// IsValidMonth reports whether s is a YYYY-MM month.
func IsValidMonth(s string) bool {
	_, err := time.Parse(MonthLayout, s)
	return err == nil
}

// ToMinutes converts an HH:MM string to minutes since midnight.
// Invalid input yields 0.
func ToMinutes(time string) int {
	if !IsValidTime(time) {
		return 0
	}
	parts := strings.SplitN(time, ":", 2)
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes
}

// ToTimeString renders signed minutes as [-]HH:MM, always zero padded.
// Zero renders as "00:00", never "-00:00".
func ToTimeString(minutes int) string {
	if minutes == 0 {
		return "00:00"
	}

	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}

	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

// BalanceMessage produces a human summary of an accumulated balance.
func BalanceMessage(balanceMinutes int) string {
	if balanceMinutes == 0 {
		return "Your hours are balanced."
	}

	abs := balanceMinutes
	if abs < 0 {
		abs = -abs
	}
	hours := abs / 60
	minutes := abs % 60

	var amount string
	if hours > 0 && minutes > 0 {
		amount = fmt.Sprintf("%dh %dmin", hours, minutes)
	} else if hours > 0 {
		amount = fmt.Sprintf("%dh", hours)
	} else {
		amount = fmt.Sprintf("%dmin", minutes)
	}

	if balanceMinutes > 0 {
		return fmt.Sprintf("You have %s of positive balance available for compensation.", amount)
	}
	return fmt.Sprintf("You owe %s, which can be paid back with extra hours on the following days.", amount)
}
