package format

import (
	"testing"
	"time"

	"roktodan/internal/models"
)

func TestMaskPhone(t *testing.T) {
	tests := []struct {
		phone, want string
	}{
		{"01712345678", "01712******"},
		{"01712", "01712******"},
		{"017", "017******"},
		{"", "******"},
	}
	for _, tt := range tests {
		if got := MaskPhone(tt.phone); got != tt.want {
			t.Errorf("MaskPhone(%q) = %q, want %q", tt.phone, got, tt.want)
		}
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		email, want string
	}{
		{"rahim@example.com", "rah***@example.com"},
		{"ab@example.com", "a***@example.com"},
		{"a@example.com", "a***@example.com"},
		{"@example.com", "***@example.com"},
		{"not-an-email", "not-an-email"},
	}
	for _, tt := range tests {
		if got := MaskEmail(tt.email); got != tt.want {
			t.Errorf("MaskEmail(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestDisplayContact(t *testing.T) {
	email := "rahim@example.com"
	if got := DisplayContact("01712345678", &email); got != "01712******\nrah***@example.com" {
		t.Errorf("with email: got %q", got)
	}
	if got := DisplayContact("01712345678", nil); got != "01712******" {
		t.Errorf("without email: got %q", got)
	}
	empty := ""
	if got := DisplayContact("01712345678", &empty); got != "01712******" {
		t.Errorf("empty email: got %q", got)
	}
}

func TestForDisplay(t *testing.T) {
	email := "anika@example.com"
	in := []models.MonetaryDonation{
		{
			OrderID:   "DONATION-1",
			Name:      "Anika",
			Phone:     "01912345678",
			Email:     &email,
			Amount:    500,
			CreatedAt: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
		},
		{
			OrderID:   "DONATION-2",
			Name:      "Karim",
			Phone:     "01812345678",
			Amount:    100,
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	out := ForDisplay(in)
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	if out[0].DisplayContact != "01912******\nani***@example.com" {
		t.Errorf("contact: got %q", out[0].DisplayContact)
	}
	if out[0].FormattedDate != "05 Mar 2026" {
		t.Errorf("date: got %q", out[0].FormattedDate)
	}
	if out[1].DisplayContact != "01812******" {
		t.Errorf("no-email contact: got %q", out[1].DisplayContact)
	}
	if out[0].OrderID != "DONATION-1" || out[1].OrderID != "DONATION-2" {
		t.Errorf("order not preserved")
	}
}
