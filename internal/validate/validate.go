package validate

import (
	"regexp"
	"time"

	"roktodan/internal/locations"
)

// FieldErrors maps a form field name to its validation message. An empty map
// means the form passed.
type FieldErrors map[string]string

// Add records a message for a field, keeping the first message when the
// field already failed an earlier rule.
func (e FieldErrors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Ok reports whether no field failed.
func (e FieldErrors) Ok() bool { return len(e) == 0 }

const (
	msgRequired   = "This field is required"
	msgPhone      = "Please enter a valid Bangladeshi phone number (e.g., 01712345678)"
	msgEmail      = "Please enter a valid email address"
	msgDonorAge   = "You must be between 18 and 60 years old to donate blood"
	msgSignUpAge  = "You must be between 18 and 60 years old to register"
	msgMinAmount  = "Minimum donation amount is 100 BDT"
	msgFutureDate = "Please select today or a future date"
	msgUnits      = "Required units must be between 1 and 10"
	msgDistrict   = "Please select a district within the chosen division"
	msgBloodGroup = "Please select a valid blood group"
)

// MinDonationAmount is the smallest accepted monetary donation, in BDT.
const MinDonationAmount = 100

// Donor age limits, inclusive.
const (
	MinDonorAge = 18
	MaxDonorAge = 60
)

var (
	phoneRe = regexp.MustCompile(`^01[3-9]\d{8}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidPhone reports whether s is a Bangladeshi mobile number.
func ValidPhone(s string) bool { return phoneRe.MatchString(s) }

// ValidEmail reports whether s looks like a single-@ email address.
func ValidEmail(s string) bool { return emailRe.MatchString(s) }

// Age returns full years elapsed from dob to now, counting a year only once
// its month and day have been reached.
func Age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() ||
		(now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}

// AgeWithinLimits reports whether a person born on dob may register as a
// donor on the day of now. Both boundaries are birthdays: the 18th birthday
// is the first eligible day and the 60th birthday the last.
func AgeWithinLimits(dob, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	first := dob.AddDate(MinDonorAge, 0, 0)
	last := dob.AddDate(MaxDonorAge, 0, 0)
	return !today.Before(first) && !today.After(last)
}

// DateLayout is the wire format for date-only fields.
const DateLayout = "2006-01-02"

// AgeFromString parses a date-of-birth in DateLayout and returns the age at
// now.
func AgeFromString(dob string, now time.Time) (int, error) {
	t, err := time.Parse(DateLayout, dob)
	if err != nil {
		return 0, err
	}
	return Age(t, now), nil
}

// onOrAfterToday reports whether the date (in DateLayout) is today or later,
// comparing calendar days.
func onOrAfterToday(date string, now time.Time) bool {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !t.Before(today)
}

// checkArea validates the division/district pair shared by several forms.
func checkArea(errs FieldErrors, division, district string) {
	if division == "" {
		errs.Add("division", msgRequired)
	} else if !locations.ValidDivision(division) {
		errs.Add("division", "Please select a valid division")
	}
	if district == "" {
		errs.Add("district", msgRequired)
	} else if division != "" && !locations.ValidDistrict(division, district) {
		errs.Add("district", msgDistrict)
	}
}
