// Package format prepares third-party monetary donation records for public
// display: contact details are partially masked and timestamps rendered in a
// short readable form.
package format

import (
	"strings"
	"time"

	"roktodan/internal/models"
)

// DisplayDonation is a MonetaryDonation with privacy-masked contact info and
// a preformatted date, ready for the recent-donors list.
type DisplayDonation struct {
	models.MonetaryDonation
	DisplayContact string `json:"display_contact"`
	FormattedDate  string `json:"formatted_date"`
}

// MaskPhone keeps the first five digits and hides the rest.
func MaskPhone(phone string) string {
	if len(phone) <= 5 {
		return phone + "******"
	}
	return phone[:5] + "******"
}

// MaskEmail keeps the first three characters of the local part (one when the
// local part is two characters or shorter) and the full domain.
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at < 0 {
		return email
	}
	local, domain := email[:at], email[at+1:]
	if len(local) > 2 {
		return local[:3] + "***@" + domain
	}
	if local == "" {
		return "***@" + domain
	}
	return local[:1] + "***@" + domain
}

// DisplayContact renders the masked phone, plus the masked email on a second
// line when one is present.
func DisplayContact(phone string, email *string) string {
	out := MaskPhone(phone)
	if email != nil && *email != "" {
		out += "\n" + MaskEmail(*email)
	}
	return out
}

// Date renders a timestamp as e.g. "05 Mar 2026".
func Date(t time.Time) string {
	return t.Format("02 Jan 2006")
}

// ForDisplay masks and formats a batch of donation records, preserving
// order.
func ForDisplay(donations []models.MonetaryDonation) []DisplayDonation {
	out := make([]DisplayDonation, 0, len(donations))
	for _, d := range donations {
		out = append(out, DisplayDonation{
			MonetaryDonation: d,
			DisplayContact:   DisplayContact(d.Phone, d.Email),
			FormattedDate:    Date(d.CreatedAt),
		})
	}
	return out
}
