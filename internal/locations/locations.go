package locations

import "strings"

// Option is a value/label pair for a select input.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var divisions = []Option{
	{Value: "dhaka", Label: "Dhaka"},
	{Value: "chattogram", Label: "Chattogram"},
	{Value: "rajshahi", Label: "Rajshahi"},
	{Value: "khulna", Label: "Khulna"},
	{Value: "barishal", Label: "Barishal"},
	{Value: "sylhet", Label: "Sylhet"},
	{Value: "rangpur", Label: "Rangpur"},
	{Value: "mymensingh", Label: "Mymensingh"},
}

var districtsByDivision = map[string][]Option{
	"dhaka": {
		{Value: "dhaka", Label: "Dhaka"},
		{Value: "gazipur", Label: "Gazipur"},
		{Value: "narayanganj", Label: "Narayanganj"},
		{Value: "tangail", Label: "Tangail"},
		{Value: "munshiganj", Label: "Munshiganj"},
	},
	"chattogram": {
		{Value: "chattogram", Label: "Chattogram"},
		{Value: "coxs-bazar", Label: "Cox's Bazar"},
		{Value: "bandarban", Label: "Bandarban"},
		{Value: "rangamati", Label: "Rangamati"},
		{Value: "khagrachari", Label: "Khagrachari"},
	},
	"rajshahi": {
		{Value: "rajshahi", Label: "Rajshahi"},
		{Value: "natore", Label: "Natore"},
		{Value: "pabna", Label: "Pabna"},
		{Value: "bogura", Label: "Bogura"},
		{Value: "chapainawabganj", Label: "Chapainawabganj"},
	},
	"khulna": {
		{Value: "khulna", Label: "Khulna"},
		{Value: "jessore", Label: "Jessore"},
		{Value: "satkhira", Label: "Satkhira"},
		{Value: "bagerhat", Label: "Bagerhat"},
		{Value: "chuadanga", Label: "Chuadanga"},
	},
	"barishal": {
		{Value: "barishal", Label: "Barishal"},
		{Value: "bhola", Label: "Bhola"},
		{Value: "patuakhali", Label: "Patuakhali"},
		{Value: "pirojpur", Label: "Pirojpur"},
		{Value: "jhalokati", Label: "Jhalokati"},
	},
	"sylhet": {
		{Value: "sylhet", Label: "Sylhet"},
		{Value: "moulvibazar", Label: "Moulvibazar"},
		{Value: "habiganj", Label: "Habiganj"},
		{Value: "sunamganj", Label: "Sunamganj"},
	},
	"rangpur": {
		{Value: "rangpur", Label: "Rangpur"},
		{Value: "dinajpur", Label: "Dinajpur"},
		{Value: "kurigram", Label: "Kurigram"},
		{Value: "thakurgaon", Label: "Thakurgaon"},
		{Value: "panchagarh", Label: "Panchagarh"},
	},
	"mymensingh": {
		{Value: "mymensingh", Label: "Mymensingh"},
		{Value: "jamalpur", Label: "Jamalpur"},
		{Value: "netrokona", Label: "Netrokona"},
		{Value: "sherpur", Label: "Sherpur"},
	},
}

var bloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Divisions returns the eight divisions of Bangladesh.
func Divisions() []Option {
	out := make([]Option, len(divisions))
	copy(out, divisions)
	return out
}

// DistrictsFor returns the districts of a division, or nil for an unknown
// division.
func DistrictsFor(division string) []Option {
	ds, ok := districtsByDivision[strings.ToLower(division)]
	if !ok {
		return nil
	}
	out := make([]Option, len(ds))
	copy(out, ds)
	return out
}

// ValidDivision reports whether the value names a known division.
func ValidDivision(division string) bool {
	_, ok := districtsByDivision[strings.ToLower(division)]
	return ok
}

// ValidDistrict reports whether the district belongs to the division.
func ValidDistrict(division, district string) bool {
	district = strings.ToLower(district)
	for _, d := range districtsByDivision[strings.ToLower(division)] {
		if d.Value == district {
			return true
		}
	}
	return false
}

// NormalizeDistrict keeps the selected district only when it belongs to the
// newly selected division, otherwise it resets to empty. Mirrors the
// district-reset behaviour of the division select.
func NormalizeDistrict(division, district string) string {
	if ValidDistrict(division, district) {
		return strings.ToLower(district)
	}
	return ""
}

// BloodGroups returns the eight blood groups.
func BloodGroups() []string {
	out := make([]string, len(bloodGroups))
	copy(out, bloodGroups)
	return out
}

// ValidBloodGroup reports whether g is one of the eight blood groups.
func ValidBloodGroup(g string) bool {
	for _, b := range bloodGroups {
		if b == g {
			return true
		}
	}
	return false
}
