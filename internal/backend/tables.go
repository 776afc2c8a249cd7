package backend

import (
	"encoding/json"
	"time"

	"github.com/supabase-community/postgrest-go"

	"roktodan/internal/models"
)

// Hosted table names.
const (
	tableProfiles        = "profiles"
	tableDonors          = "donors"
	tableRequests        = "donation_requests"
	tableDonations       = "donations"
	tableDonationHistory = "donation_history"
	tableRequestHistory  = "request_history"
)

// FetchProfile reads the profile row keyed by the identity id. A missing row
// classifies as KindNoRows; for a fresh identity that is expected, not an
// error condition.
func (c *Client) FetchProfile(userID string) (*models.Profile, error) {
	data, _, err := c.sb.From(tableProfiles).
		Select("*", "", false).
		Eq("id", userID).
		Single().
		Execute()
	if err != nil {
		return nil, classify(err)
	}
	var p models.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

// UpdateProfile applies partial fields to the profile row, stamping
// updated_at.
func (c *Client) UpdateProfile(userID string, updates map[string]interface{}) error {
	stamped := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		stamped[k] = v
	}
	stamped["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	_, _, err := c.sb.From(tableProfiles).
		Update(stamped, "", "").
		Eq("id", userID).
		Execute()
	return classify(err)
}

// InsertDonor creates a donor listing. Uniqueness of the phone column is
// enforced backend-side and surfaces as KindDuplicatePhone.
func (c *Client) InsertDonor(d models.Donor) error {
	_, _, err := c.sb.From(tableDonors).
		Insert(d, false, "", "", "").
		Execute()
	return classify(err)
}

// InsertRequest posts a donation request with status pending.
func (c *Client) InsertRequest(r models.DonationRequest) error {
	_, _, err := c.sb.From(tableRequests).
		Insert(r, false, "", "", "").
		Execute()
	return classify(err)
}

// AvailableDonors returns donor listings flagged available, newest first.
func (c *Client) AvailableDonors() ([]models.Donor, error) {
	data, _, err := c.sb.From(tableDonors).
		Select("*", "", false).
		Eq("is_available", "true").
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, classify(err)
	}
	var donors []models.Donor
	if err := json.Unmarshal(data, &donors); err != nil {
		return nil, classify(err)
	}
	return donors, nil
}

// PendingRequests returns open donation requests, most urgent date first.
func (c *Client) PendingRequests() ([]models.DonationRequest, error) {
	data, _, err := c.sb.From(tableRequests).
		Select("*", "", false).
		Eq("status", models.RequestPending).
		Order("required_date", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, classify(err)
	}
	var reqs []models.DonationRequest
	if err := json.Unmarshal(data, &reqs); err != nil {
		return nil, classify(err)
	}
	return reqs, nil
}

// InsertDonation records a monetary donation row.
func (c *Client) InsertDonation(d models.MonetaryDonation) error {
	_, _, err := c.sb.From(tableDonations).
		Insert(d, false, "", "", "").
		Execute()
	return classify(err)
}

// DonationByOrderID loads the monetary donation behind a gateway order id.
func (c *Client) DonationByOrderID(orderID string) (*models.MonetaryDonation, error) {
	data, _, err := c.sb.From(tableDonations).
		Select("*", "", false).
		Eq("order_id", orderID).
		Single().
		Execute()
	if err != nil {
		return nil, classify(err)
	}
	var d models.MonetaryDonation
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, classify(err)
	}
	return &d, nil
}

// SettleDonation marks a pending donation settled and attaches the gateway
// transaction id.
func (c *Client) SettleDonation(orderID, transactionID string) error {
	_, _, err := c.sb.From(tableDonations).
		Update(map[string]interface{}{
			"status":         models.DonationSettled,
			"transaction_id": transactionID,
		}, "", "").
		Eq("order_id", orderID).
		Execute()
	return classify(err)
}

// RecentDonations returns the latest settled monetary donations.
func (c *Client) RecentDonations(limit int) ([]models.MonetaryDonation, error) {
	data, _, err := c.sb.From(tableDonations).
		Select("*", "", false).
		Eq("status", models.DonationSettled).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, classify(err)
	}
	var ds []models.MonetaryDonation
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, classify(err)
	}
	return ds, nil
}

// DonationHistory returns a user's past blood donations, newest first.
func (c *Client) DonationHistory(userID string) ([]models.DonationHistoryEntry, error) {
	data, _, err := c.sb.From(tableDonationHistory).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, classify(err)
	}
	var entries []models.DonationHistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, classify(err)
	}
	return entries, nil
}

// RequestHistory returns a user's past donation requests, newest first.
func (c *Client) RequestHistory(userID string) ([]models.RequestHistoryEntry, error) {
	data, _, err := c.sb.From(tableRequestHistory).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, classify(err)
	}
	var entries []models.RequestHistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, classify(err)
	}
	return entries, nil
}
