package detection

import (
	"regexp"
	"strings"
)

const (
	minCardAspect = 1.4
	maxCardAspect = 1.8

	minCardDigits = 15
	maxCardDigits = 19
)

var (
	cardNumber   = regexp.MustCompile(`(\d{4}[ -]?){3,4}\d{1,4}`)
	bankKeywords = []string{"银行", "信用卡", "储蓄卡", "借记卡", "信用卡中心", "bank", "card"}
)

// BankCard reports whether the text, recognized from an image with the given
// width/height ratio, shows a payment card.
func BankCard(t Text, aspectRatio float64) bool {
	if aspectRatio <= minCardAspect || aspectRatio >= maxCardAspect {
		return false
	}

	matches := cardNumber.FindAllString(t.raw, -1)
	for _, m := range matches {
		if ValidCardNumber(m) {
			return true
		}
	}
	return len(matches) > 0 && t.containsAny(bankKeywords...)
}

// ValidCardNumber reports whether number, ignoring spaces and hyphens, has
// 15 to 19 digits and passes the Luhn checksum.
func ValidCardNumber(number string) bool {
	digits := strings.NewReplacer(" ", "", "-", "").Replace(number)
	if len(digits) < minCardDigits || len(digits) > maxCardDigits {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return Luhn(digits)
}

// Luhn validates a string of ASCII digits with the Luhn checksum.
func Luhn(digits string) bool {
	if digits == "" {
		return false
	}
	sum := 0
	parity := len(digits) % 2
	for i, r := range digits {
		d := int(r - '0')
		if i%2 == parity {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}
