package locations

import "testing"

func TestDivisions(t *testing.T) {
	ds := Divisions()
	if len(ds) != 8 {
		t.Fatalf("got %d divisions, want 8", len(ds))
	}
	for _, d := range ds {
		if len(DistrictsFor(d.Value)) == 0 {
			t.Errorf("division %q has no districts", d.Value)
		}
	}
}

func TestValidDistrict(t *testing.T) {
	tests := []struct {
		division, district string
		want               bool
	}{
		{"dhaka", "gazipur", true},
		{"dhaka", "Gazipur", true}, // case-insensitive
		{"Dhaka", "gazipur", true},
		{"dhaka", "sylhet", false}, // real district, wrong division
		{"khulna", "jessore", true},
		{"atlantis", "gazipur", false},
		{"dhaka", "", false},
	}
	for _, tt := range tests {
		if got := ValidDistrict(tt.division, tt.district); got != tt.want {
			t.Errorf("ValidDistrict(%q, %q) = %v, want %v", tt.division, tt.district, got, tt.want)
		}
	}
}

func TestNormalizeDistrictResetsOnDivisionChange(t *testing.T) {
	// A district carried over from a previous division selection must be
	// cleared unless it also exists in the new division.
	tests := []struct {
		division, district, want string
	}{
		{"dhaka", "gazipur", "gazipur"},
		{"sylhet", "gazipur", ""},
		{"khulna", "dhaka", ""},
		{"rangpur", "", ""},
		{"", "gazipur", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDistrict(tt.division, tt.district); got != tt.want {
			t.Errorf("NormalizeDistrict(%q, %q) = %q, want %q", tt.division, tt.district, got, tt.want)
		}
	}
}

func TestBloodGroups(t *testing.T) {
	gs := BloodGroups()
	if len(gs) != 8 {
		t.Fatalf("got %d blood groups, want 8", len(gs))
	}
	for _, g := range gs {
		if !ValidBloodGroup(g) {
			t.Errorf("listed group %q not valid", g)
		}
	}
	for _, g := range []string{"C+", "o+", "AB", ""} {
		if ValidBloodGroup(g) {
			t.Errorf("group %q should be invalid", g)
		}
	}
}
