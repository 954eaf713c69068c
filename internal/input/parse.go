// Package input holds the validating parsers behind every interactive prompt.
// Each parser is pure: it takes the raw line and returns a value or an error
// whose message is shown to the user before re-prompting.
package input

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/Veraticus/zakat-ledger/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Parse errors. Their text doubles as the diagnostic printed to the user.
var (
	ErrNotInteger      = errors.New("input must be a whole number, please try again")
	ErrNotNumber       = errors.New("input must be a number, please try again")
	ErrNotPositive     = errors.New("value must be greater than 0")
	ErrEmpty           = errors.New("input cannot be empty, please try again")
	ErrDateFormat      = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidDate     = errors.New("invalid date, use YYYY-MM-DD")
	ErrInvalidCategory = errors.New("zakat category must be Fitrah or Mal")
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseInt parses a base-10 integer.
func ParseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, ErrNotInteger
	}
	return n, nil
}

// ParseID parses a record identifier, which must be a positive integer.
func ParseID(s string) (int64, error) {
	n, err := ParseInt(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, ErrNotPositive
	}
	return n, nil
}

// ParseDecimal parses a decimal number such as "50000" or "2.5".
func ParseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrNotNumber
	}
	return d, nil
}

// ParsePositiveDecimal parses a decimal number strictly greater than zero.
func ParsePositiveDecimal(s string) (decimal.Decimal, error) {
	d, err := ParseDecimal(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNotPositive
	}
	return d, nil
}

// ParseDate accepts four digits, two digits and two digits separated by
// dashes that also name a real calendar day.
func ParseDate(s string) (model.Date, error) {
	s = strings.TrimSpace(s)
	if !datePattern.MatchString(s) {
		return model.Date{}, ErrDateFormat
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, ErrInvalidDate
	}
	return d, nil
}

// ParseNonEmpty trims s and rejects the empty result.
func ParseNonEmpty(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmpty
	}
	return s, nil
}

// ParseCategory normalizes case ("fitrah" becomes "Fitrah") and accepts only
// the fixed category labels.
func ParseCategory(s string) (model.Category, error) {
	c := model.Category(cases.Title(language.Und).String(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}
