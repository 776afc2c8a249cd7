package models

import "time"

// JSON tags use the snake_case column names of the hosted tables, so the
// structs marshal straight to and from the PostgREST wire format.

// Identity is the authenticated principal issued by the auth backend.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Profile is the extended donor-facing record attached one-to-one to an
// Identity. The row lives in the `profiles` table and is keyed by the
// identity id.
type Profile struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	BloodGroup        string    `json:"blood_group"`
	DateOfBirth       string    `json:"date_of_birth"`
	Gender            string    `json:"gender"`
	Division          string    `json:"division"`
	District          string    `json:"district"`
	LastDonation      *string   `json:"last_donation"`
	IsAvailable       bool      `json:"is_available"`
	TotalDonations    int       `json:"total_donations"`
	MedicalConditions *string   `json:"medical_conditions"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
}

// Donor is a donor listing created through the become-donor flow. It is a
// separate record from Profile: one account can register several donors.
type Donor struct {
	ID                string    `json:"id,omitempty"`
	CreatedBy         string    `json:"created_by"`
	Name              string    `json:"name"`
	Age               int       `json:"age"`
	Gender            string    `json:"gender"`
	BloodGroup        string    `json:"blood_group"`
	Phone             string    `json:"phone"`
	Email             *string   `json:"email"`
	Division          string    `json:"division"`
	District          string    `json:"district"`
	LastDonation      *string   `json:"last_donation"`
	MedicalConditions *string   `json:"medical_conditions"`
	IsAvailable       bool      `json:"is_available"`
	TotalDonations    int       `json:"total_donations"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
}

// Donation request statuses. Transitions happen backend-side; this service
// only ever reads them.
const (
	RequestPending   = "pending"
	RequestFulfilled = "fulfilled"
	RequestExpired   = "expired"
)

// DonationRequest is a patient's need for blood, posted for donors to see.
type DonationRequest struct {
	ID             string    `json:"id,omitempty"`
	CreatedBy      string    `json:"created_by"`
	PatientName    string    `json:"patient_name"`
	Hospital       string    `json:"hospital"`
	BloodGroup     string    `json:"blood_group"`
	RequiredUnits  int       `json:"required_units"`
	RequiredDate   string    `json:"required_date"`
	Division       string    `json:"division"`
	District       string    `json:"district"`
	ContactPerson  string    `json:"contact_person"`
	ContactPhone   string    `json:"contact_phone"`
	AdditionalInfo *string   `json:"additional_info"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// Monetary donation statuses.
const (
	DonationPending = "pending"
	DonationSettled = "settled"
)

// MonetaryDonation is a money donation recorded in the `donations` table,
// either settled through the payment gateway or entered via the manual
// bank-transfer-style flow.
type MonetaryDonation struct {
	ID            string    `json:"id,omitempty"`
	Name          string    `json:"name"`
	Email         *string   `json:"email"`
	Phone         string    `json:"phone"`
	Amount        int       `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	TransactionID string    `json:"transaction_id"`
	OrderID       string    `json:"order_id,omitempty"`
	Status        string    `json:"status,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// DonationHistoryEntry is a past blood donation shown on the dashboard.
// Read-only for this service.
type DonationHistoryEntry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	DonationDate string    `json:"donation_date"`
	Hospital     string    `json:"hospital"`
	BloodGroup   string    `json:"blood_group"`
	Units        int       `json:"units"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// RequestHistoryEntry is a past donation request shown on the dashboard.
type RequestHistoryEntry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	PatientName  string    `json:"patient_name"`
	Hospital     string    `json:"hospital"`
	BloodGroup   string    `json:"blood_group"`
	RequiredDate string    `json:"required_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
