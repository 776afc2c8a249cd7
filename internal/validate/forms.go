package validate

import (
	"strings"
	"time"

	"roktodan/internal/locations"
)

// Per-page form payloads and their submit-time validators. Each validator is
// a pure function over the form and the current time, returning a
// field-keyed error map.

// SignUpForm is the registration payload: account credentials plus the
// profile fields stored alongside the new identity.
type SignUpForm struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	Phone             string `json:"phone"`
	BloodGroup        string `json:"blood_group"`
	DateOfBirth       string `json:"date_of_birth"`
	Gender            string `json:"gender"`
	Division          string `json:"division"`
	District          string `json:"district"`
	LastDonation      string `json:"last_donation"`
	MedicalConditions string `json:"medical_conditions"`
}

// SignUp validates the registration form.
func SignUp(f SignUpForm, now time.Time) FieldErrors {
	errs := FieldErrors{}
	required := map[string]string{
		"name":          f.Name,
		"email":         f.Email,
		"password":      f.Password,
		"phone":         f.Phone,
		"blood_group":   f.BloodGroup,
		"date_of_birth": f.DateOfBirth,
		"gender":        f.Gender,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			errs.Add(field, msgRequired)
		}
	}
	if f.Email != "" && !ValidEmail(f.Email) {
		errs.Add("email", msgEmail)
	}
	if f.Password != "" && len(f.Password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}
	if f.Phone != "" && !ValidPhone(f.Phone) {
		errs.Add("phone", msgPhone)
	}
	if f.DateOfBirth != "" {
		dob, err := time.Parse(DateLayout, f.DateOfBirth)
		if err != nil {
			errs.Add("date_of_birth", "Please enter a valid date of birth")
		} else if !AgeWithinLimits(dob, now) {
			errs.Add("date_of_birth", msgSignUpAge)
		}
	}
	if f.BloodGroup != "" && !locations.ValidBloodGroup(f.BloodGroup) {
		errs.Add("blood_group", msgBloodGroup)
	}
	checkArea(errs, f.Division, f.District)
	return errs
}

// DonorForm is the become-donor payload.
type DonorForm struct {
	Name              string `json:"name"`
	Age               int    `json:"age"`
	Gender            string `json:"gender"`
	BloodGroup        string `json:"blood_group"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Division          string `json:"division"`
	District          string `json:"district"`
	LastDonation      string `json:"last_donation"`
	MedicalConditions string `json:"medical_conditions"`
	Eligible          bool   `json:"eligible"`
}

// Donor validates the become-donor form.
func Donor(f DonorForm) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs.Add("name", msgRequired)
	}
	if f.Age == 0 {
		errs.Add("age", msgRequired)
	} else if f.Age < MinDonorAge || f.Age > MaxDonorAge {
		errs.Add("age", msgDonorAge)
	}
	if f.Gender == "" {
		errs.Add("gender", msgRequired)
	}
	if f.BloodGroup == "" {
		errs.Add("blood_group", msgRequired)
	} else if !locations.ValidBloodGroup(f.BloodGroup) {
		errs.Add("blood_group", msgBloodGroup)
	}
	if f.Phone == "" {
		errs.Add("phone", msgRequired)
	} else if !ValidPhone(f.Phone) {
		errs.Add("phone", msgPhone)
	}
	if f.Email != "" && !ValidEmail(f.Email) {
		errs.Add("email", msgEmail)
	}
	checkArea(errs, f.Division, f.District)
	if !f.Eligible {
		errs.Add("eligible", "You must confirm your eligibility to register as a donor")
	}
	return errs
}

// RequestForm is the donation-request payload.
type RequestForm struct {
	PatientName    string `json:"patient_name"`
	Hospital       string `json:"hospital"`
	BloodGroup     string `json:"blood_group"`
	RequiredUnits  int    `json:"required_units"`
	RequiredDate   string `json:"required_date"`
	Division       string `json:"division"`
	District       string `json:"district"`
	ContactPerson  string `json:"contact_person"`
	ContactPhone   string `json:"contact_phone"`
	AdditionalInfo string `json:"additional_info"`
}

// Request validates the donation-request form.
func Request(f RequestForm, now time.Time) FieldErrors {
	errs := FieldErrors{}
	required := map[string]string{
		"patient_name":   f.PatientName,
		"hospital":       f.Hospital,
		"blood_group":    f.BloodGroup,
		"required_date":  f.RequiredDate,
		"contact_person": f.ContactPerson,
		"contact_phone":  f.ContactPhone,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			errs.Add(field, msgRequired)
		}
	}
	if f.BloodGroup != "" && !locations.ValidBloodGroup(f.BloodGroup) {
		errs.Add("blood_group", msgBloodGroup)
	}
	if f.RequiredUnits < 1 || f.RequiredUnits > 10 {
		errs.Add("required_units", msgUnits)
	}
	if f.RequiredDate != "" && !onOrAfterToday(f.RequiredDate, now) {
		errs.Add("required_date", msgFutureDate)
	}
	if f.ContactPhone != "" && !ValidPhone(f.ContactPhone) {
		errs.Add("contact_phone", msgPhone)
	}
	checkArea(errs, f.Division, f.District)
	return errs
}

// MoneyForm is the donate-money payload.
type MoneyForm struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Amount int    `json:"amount"`
}

// Money validates the donate-money form.
func Money(f MoneyForm) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs.Add("name", "Name is required")
	}
	if f.Email != "" && !ValidEmail(f.Email) {
		errs.Add("email", msgEmail)
	}
	if f.Phone == "" {
		errs.Add("phone", "Phone number is required")
	} else if !ValidPhone(f.Phone) {
		errs.Add("phone", "Please enter a valid Bangladeshi phone number")
	}
	if f.Amount < MinDonationAmount {
		errs.Add("amount", msgMinAmount)
	}
	return errs
}

// ContactForm is the contact-page payload.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Contact validates the contact form.
func Contact(f ContactForm) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs.Add("name", msgRequired)
	}
	if f.Email == "" {
		errs.Add("email", msgRequired)
	} else if !ValidEmail(f.Email) {
		errs.Add("email", msgEmail)
	}
	if strings.TrimSpace(f.Message) == "" {
		errs.Add("message", msgRequired)
	}
	return errs
}
