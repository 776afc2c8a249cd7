package validate

import (
	"testing"
	"time"
)

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"01712345678", true},
		{"01312345678", true},
		{"01912345678", true},
		{"02712345678", false},  // not a mobile prefix
		{"0171234567", false},   // too short
		{"017123456789", false}, // too long
		{"+8801712345678", false},
		{"01212345678", false}, // 012 is not assigned
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidPhone(tt.phone); got != tt.want {
			t.Errorf("ValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"donor@example.com", true},
		{"a.b+c@example.co.uk", true},
		{"no-at-sign", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
		{"missing@domain", false},
	}
	for _, tt := range tests {
		if got := ValidEmail(tt.email); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"birthday today", time.Date(2008, 8, 31, 0, 0, 0, 0, time.UTC), 18},
		{"birthday tomorrow", time.Date(2008, 9, 1, 0, 0, 0, 0, time.UTC), 17},
		{"birthday last month", time.Date(2008, 7, 15, 0, 0, 0, 0, time.UTC), 18},
		{"birthday next month", time.Date(2008, 10, 1, 0, 0, 0, 0, time.UTC), 17},
		{"same month later day", time.Date(2000, 8, 30, 0, 0, 0, 0, time.UTC), 26},
	}
	for _, tt := range tests {
		if got := Age(tt.dob, now); got != tt.want {
			t.Errorf("%s: Age = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestAgeWithinLimits(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		dob  time.Time
		want bool
	}{
		{"exactly 18", time.Date(2008, 8, 31, 0, 0, 0, 0, time.UTC), true},
		{"17 years 364 days", time.Date(2008, 9, 1, 0, 0, 0, 0, time.UTC), false},
		{"exactly 60", time.Date(1966, 8, 31, 0, 0, 0, 0, time.UTC), true},
		{"60 years 1 day", time.Date(1966, 8, 30, 0, 0, 0, 0, time.UTC), false},
		{"mid range", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		if got := AgeWithinLimits(tt.dob, now); got != tt.want {
			t.Errorf("%s: AgeWithinLimits = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func validSignUp() SignUpForm {
	return SignUpForm{
		Name:        "Rahim Uddin",
		Email:       "rahim@example.com",
		Password:    "secret123",
		Phone:       "01712345678",
		BloodGroup:  "O+",
		DateOfBirth: "1995-02-10",
		Gender:      "male",
		Division:    "dhaka",
		District:    "gazipur",
	}
}

func TestSignUpValid(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	if errs := SignUp(validSignUp(), now); !errs.Ok() {
		t.Fatalf("valid form rejected: %v", errs)
	}
}

func TestSignUpFieldErrors(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		mut    func(*SignUpForm)
		field  string
	}{
		{"missing name", func(f *SignUpForm) { f.Name = "" }, "name"},
		{"bad phone", func(f *SignUpForm) { f.Phone = "+8801712345678" }, "phone"},
		{"bad email", func(f *SignUpForm) { f.Email = "not-an-email" }, "email"},
		{"short password", func(f *SignUpForm) { f.Password = "abc" }, "password"},
		{"too young", func(f *SignUpForm) { f.DateOfBirth = "2010-01-01" }, "date_of_birth"},
		{"unknown blood group", func(f *SignUpForm) { f.BloodGroup = "C+" }, "blood_group"},
		{"district outside division", func(f *SignUpForm) { f.District = "sylhet" }, "district"},
		{"unknown division", func(f *SignUpForm) { f.Division = "atlantis" }, "division"},
	}
	for _, tt := range tests {
		f := validSignUp()
		tt.mut(&f)
		errs := SignUp(f, now)
		if _, ok := errs[tt.field]; !ok {
			t.Errorf("%s: expected error on %q, got %v", tt.name, tt.field, errs)
		}
	}
}

func TestDonorAgeBounds(t *testing.T) {
	base := DonorForm{
		Name:       "Karim",
		Age:        30,
		Gender:     "male",
		BloodGroup: "A+",
		Phone:      "01812345678",
		Division:   "khulna",
		District:   "jessore",
		Eligible:   true,
	}
	if errs := Donor(base); !errs.Ok() {
		t.Fatalf("valid donor rejected: %v", errs)
	}
	for _, age := range []int{17, 61} {
		f := base
		f.Age = age
		if errs := Donor(f); errs["age"] == "" {
			t.Errorf("age %d: expected age error, got %v", age, errs)
		}
	}
	for _, age := range []int{18, 60} {
		f := base
		f.Age = age
		if errs := Donor(f); !errs.Ok() {
			t.Errorf("age %d: expected no error, got %v", age, errs)
		}
	}
	f := base
	f.Eligible = false
	if errs := Donor(f); errs["eligible"] == "" {
		t.Errorf("expected eligibility error, got %v", errs)
	}
}

func TestRequestDateRule(t *testing.T) {
	now := time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)
	base := RequestForm{
		PatientName:   "Fatema",
		Hospital:      "Dhaka Medical",
		BloodGroup:    "B-",
		RequiredUnits: 2,
		RequiredDate:  "2026-08-31",
		Division:      "dhaka",
		District:      "dhaka",
		ContactPerson: "Hasan",
		ContactPhone:  "01912345678",
	}
	if errs := Request(base, now); !errs.Ok() {
		t.Fatalf("request for today rejected: %v", errs)
	}

	f := base
	f.RequiredDate = "2026-08-30"
	if errs := Request(f, now); errs["required_date"] == "" {
		t.Errorf("past date accepted: %v", errs)
	}

	f = base
	f.RequiredUnits = 11
	if errs := Request(f, now); errs["required_units"] == "" {
		t.Errorf("11 units accepted: %v", errs)
	}
	f.RequiredUnits = 0
	if errs := Request(f, now); errs["required_units"] == "" {
		t.Errorf("0 units accepted: %v", errs)
	}
}

func TestMoneyMinimumAmount(t *testing.T) {
	base := MoneyForm{Name: "Anika", Phone: "01712345678", Amount: 100}
	if errs := Money(base); !errs.Ok() {
		t.Fatalf("100 BDT rejected: %v", errs)
	}

	f := base
	f.Amount = 99
	errs := Money(f)
	if errs["amount"] != "Minimum donation amount is 100 BDT" {
		t.Errorf("99 BDT: got %v", errs)
	}

	f = base
	f.Phone = ""
	if errs := Money(f); errs["phone"] != "Phone number is required" {
		t.Errorf("missing phone: got %v", errs)
	}
}
