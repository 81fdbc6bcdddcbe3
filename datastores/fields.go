package datastores

import (
	"fmt"
	"time"
)

// BirthdayLayout is the DD.MM.YYYY layout birthdays are parsed and rendered with.
const BirthdayLayout = "02.01.2006"

const phoneLen = 10

// Name identifies a contact within a store.
type Name string

func ParseName(s string) (Name, error) {
	if s == "" {
		return "", ErrInvalidName
	}
	return Name(s), nil
}

func (n Name) String() string { return string(n) }

// Phone is a number made of exactly ten decimal digits.
type Phone string

func ParsePhone(s string) (Phone, error) {
	if len(s) != phoneLen {
		return "", fmt.Errorf("%w: %q has %d characters", ErrInvalidPhone, s, len(s))
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return "", fmt.Errorf("%w: %q is not numeric", ErrInvalidPhone, s)
		}
	}
	return Phone(s), nil
}

func (p Phone) String() string { return string(p) }

// Birthday is a calendar date. Only its month and day recur.
type Birthday struct {
	year  int
	month time.Month
	day   int
}

func ParseBirthday(s string) (Birthday, error) {
	t, err := time.Parse(BirthdayLayout, s)
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: %w", ErrInvalidBirthday, err)
	}
	return Birthday{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

func (b Birthday) Year() int { return b.year }
func (b Birthday) Month() time.Month { return b.month }
func (b Birthday) Day() int { return b.day }

func (b Birthday) String() string {
	return time.Date(b.year, b.month, b.day, 0, 0, 0, 0, time.UTC).Format(BirthdayLayout)
}

// In returns the anniversary of b in the given year at midnight in loc.
// February 29 falls on February 28 in common years.
func (b Birthday) In(year int, loc *time.Location) time.Time {
	day := b.day
	if b.month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, b.month, day, 0, 0, 0, 0, loc)
}

// Next returns the first anniversary of b on or after the day of today.
func (b Birthday) Next(today time.Time) time.Time {
	today = midnight(today)
	next := b.In(today.Year(), today.Location())
	if next.Before(today) {
		next = b.In(today.Year()+1, today.Location())
	}
	return next
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
