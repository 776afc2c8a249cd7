package locations

// PaymentMethod is a mobile-banking channel accepted for manual money
// transfers, with the receiving account number shown to the donor.
type PaymentMethod struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Number       string `json:"number"`
	Instructions string `json:"instructions"`
}

var paymentMethods = []PaymentMethod{
	{
		ID:           "bkash",
		Name:         "bKash",
		Number:       "01700000000",
		Instructions: "Send money to this number with your name and contact information.",
	},
	{
		ID:           "nagad",
		Name:         "Nagad",
		Number:       "01700000001",
		Instructions: "Send money to this number with your name and contact information.",
	},
	{
		ID:           "rocket",
		Name:         "Rocket",
		Number:       "01700000002",
		Instructions: "Send money to this number with your name and contact information.",
	},
}

// PaymentMethods returns the accepted manual payment channels.
func PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(paymentMethods))
	copy(out, paymentMethods)
	return out
}

// PaymentMethodByID looks up a payment method, reporting false when the id
// is unknown.
func PaymentMethodByID(id string) (PaymentMethod, bool) {
	for _, m := range paymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return PaymentMethod{}, false
}
