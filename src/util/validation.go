package util

import (
	"regexp"
	"time"
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

func ValidatePassword(password string) bool {
	return len(password) >= 6
}

func ValidateHexColor(color string) bool {
	return colorRe.MatchString(color)
}

func ValidateTransactionType(t string) bool {
	return t == "income" || t == "expense"
}

var paymentMethods = map[string]struct{}{
	"cash":          {},
	"card":          {},
	"bank_transfer": {},
	"upi":           {},
	"wallet":        {},
	"other":         {},
}

func ValidatePaymentMethod(m string) bool {
	_, ok := paymentMethods[m]
	return ok
}

// ParseDate accepts RFC3339 timestamps and plain calendar dates.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
