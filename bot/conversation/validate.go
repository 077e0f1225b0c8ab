package conversation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nyaruka/phonenumbers"
)

const (
	minFullNameLength         = 4
	minRecipientNameLength    = 2
	minRecipientContactLength = 3
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+$`)

// ValidateFullName requires at least two whitespace-separated tokens and
// four characters after trimming.
func ValidateFullName(text string) (string, bool) {
	name := strings.TrimSpace(text)
	if utf8.RuneCountInString(name) < minFullNameLength {
		return "", false
	}
	if strings.IndexFunc(name, unicode.IsSpace) < 0 {
		return "", false
	}
	return name, true
}

// NormalizePhone parses an international number and returns it as
// +<country code><national number>. A leading 8 is read as the CIS trunk
// prefix and replaced with +7.
func NormalizePhone(text string) (string, bool) {
	value := strings.TrimSpace(text)
	if value == "" {
		return "", false
	}
	if value[0] == '8' {
		value = "+7" + value[1:]
	}

	num, err := phonenumbers.Parse(value, "")
	if err != nil {
		return "", false
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return fmt.Sprintf("+%d%d", num.GetCountryCode(), num.GetNationalNumber()), true
}

func ValidateEmail(text string) (string, bool) {
	email := strings.TrimSpace(text)
	if !emailPattern.MatchString(email) {
		return "", false
	}
	return email, true
}

func ValidateRecipientName(text string) (string, bool) {
	name := strings.TrimSpace(text)
	if utf8.RuneCountInString(name) < minRecipientNameLength {
		return "", false
	}
	return name, true
}

func ValidateRecipientContact(text string) (string, bool) {
	contact := strings.TrimSpace(text)
	if utf8.RuneCountInString(contact) < minRecipientContactLength {
		return "", false
	}
	return contact, true
}

// SelectImpression maps a 1-based position typed by the user onto the
// impression ids currently on screen.
func SelectImpression(text string, displayed []int64) (int64, bool) {
	number := strings.TrimSpace(text)
	if number == "" {
		return 0, false
	}
	for _, ch := range number {
		if ch < '0' || ch > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(number)
	if err != nil {
		return 0, false
	}
	idx := n - 1
	if idx < 0 || idx >= len(displayed) {
		return 0, false
	}
	return displayed[idx], true
}
