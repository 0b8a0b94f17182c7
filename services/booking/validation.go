package booking

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"rotharc/models"
)

const (
	MsgRequired      = "this field is required"
	MsgInvalidEmail  = "invalid email address"
	MsgInvalidPhone  = "invalid phone number (format: 06 12 34 56 78)"
	MsgInvalidPostal = "invalid postal code (5 digits)"
)

// Contact field names as they appear in requests and field error maps.
const (
	FieldFirstName  = "firstName"
	FieldLastName   = "lastName"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldAddress    = "address"
	FieldCity       = "city"
	FieldPostalCode = "postalCode"
	FieldNotes      = "notes"
)

const dateLayout = "2006-01-02"

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern  = regexp.MustCompile(`^(?:(?:\+|00)33|0)\s*[1-9](?:[\s.-]*\d{2}){4}$`)
	postalPattern = regexp.MustCompile(`^[0-9]{5}$`)
)

// contactFields lists the validated fields in form order. Notes are free text.
var contactFields = []string{
	FieldFirstName, FieldLastName, FieldEmail, FieldPhone,
	FieldAddress, FieldCity, FieldPostalCode,
}

func ValidateEmail(v string) string {
	if !emailPattern.MatchString(v) {
		return MsgInvalidEmail
	}
	return ""
}

func ValidatePhone(v string) string {
	if !phonePattern.MatchString(v) {
		return MsgInvalidPhone
	}
	return ""
}

func ValidatePostalCode(v string) string {
	if !postalPattern.MatchString(v) {
		return MsgInvalidPostal
	}
	return ""
}

func validateRequired(v string) string {
	if strings.TrimSpace(v) == "" {
		return MsgRequired
	}
	return ""
}

// ValidateContactField returns the message for one field, or "" when it is valid.
func ValidateContactField(field, value string) (string, error) {
	switch field {
	case FieldFirstName, FieldLastName, FieldAddress, FieldCity:
		return validateRequired(value), nil
	case FieldEmail:
		if msg := validateRequired(value); msg != "" {
			return msg, nil
		}
		return ValidateEmail(value), nil
	case FieldPhone:
		if msg := validateRequired(value); msg != "" {
			return msg, nil
		}
		return ValidatePhone(value), nil
	case FieldPostalCode:
		if msg := validateRequired(value); msg != "" {
			return msg, nil
		}
		return ValidatePostalCode(value), nil
	case FieldNotes:
		return "", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// ValidateContact recomputes every field and returns the failing ones.
func ValidateContact(c models.ContactDetails) map[string]string {
	errs := make(map[string]string)
	for _, field := range contactFields {
		msg, _ := ValidateContactField(field, contactValue(c, field))
		if msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

func contactValue(c models.ContactDetails, field string) string {
	switch field {
	case FieldFirstName:
		return c.FirstName
	case FieldLastName:
		return c.LastName
	case FieldEmail:
		return c.Email
	case FieldPhone:
		return c.Phone
	case FieldAddress:
		return c.Address
	case FieldCity:
		return c.City
	case FieldPostalCode:
		return c.PostalCode
	case FieldNotes:
		return c.Notes
	}
	return ""
}

func setContactValue(c *models.ContactDetails, field, value string) error {
	switch field {
	case FieldFirstName:
		c.FirstName = value
	case FieldLastName:
		c.LastName = value
	case FieldEmail:
		c.Email = value
	case FieldPhone:
		c.Phone = value
	case FieldAddress:
		c.Address = value
	case FieldCity:
		c.City = value
	case FieldPostalCode:
		c.PostalCode = value
	case FieldNotes:
		c.Notes = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ParseDate reads a "YYYY-MM-DD" day in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, date, loc)
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ValidateDate accepts a weekday that is today or later, relative to today's
// location.
func ValidateDate(date string, today time.Time) error {
	day, err := ParseDate(date, today.Location())
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	if day.Before(dayStart(today)) {
		return fmt.Errorf("date %s is in the past", date)
	}
	if IsWeekend(day) {
		return fmt.Errorf("date %s falls on a weekend", date)
	}
	return nil
}

func ValidateTime(slot string) error {
	for _, s := range TimeSlots {
		if s == slot {
			return nil
		}
	}
	return fmt.Errorf("time %q is not an available slot", slot)
}

// DepositRate is the share of the price paid upfront.
const DepositRate = 0.30

func Deposit(price float64) int64 {
	return int64(math.Round(price * DepositRate))
}

// FormatEUR renders whole euros with space separated thousands, e.g. "1 200 €".
func FormatEUR(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + " €"
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatSchedule renders the appointment as shown on the confirmation screen,
// e.g. "20 octobre 2026 à 14:00".
func FormatSchedule(date, slot string) string {
	day, err := ParseDate(date, time.UTC)
	if err != nil {
		return date + " à " + slot
	}
	return fmt.Sprintf("%02d %s %d à %s", day.Day(), frenchMonths[day.Month()-1], day.Year(), slot)
}
