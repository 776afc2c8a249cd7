package payment

import (
	"strings"
	"testing"
	"time"
)

func TestNewOrderID(t *testing.T) {
	now := time.Now()
	id := NewOrderID(now)
	if !strings.HasPrefix(id, "DONATION-") {
		t.Errorf("order id %q lacks prefix", id)
	}
	if id == NewOrderID(now.Add(time.Nanosecond)) {
		t.Error("order ids for different instants collide")
	}
}

func TestManualMethods(t *testing.T) {
	ms := Manual{}.Methods()
	if len(ms) != 3 {
		t.Fatalf("got %d methods, want 3", len(ms))
	}
	for _, m := range ms {
		if m.ID == "" || m.Number == "" || m.Instructions == "" {
			t.Errorf("incomplete method %+v", m)
		}
	}
}

func TestManualRecord(t *testing.T) {
	contact := Contact{Name: "Anika", Phone: "01712345678"}
	var m Manual

	r, err := m.Record("DONATION-1", 500, contact, "bkash", "TX123")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if r.OrderID != "DONATION-1" || r.Method != "bkash" || r.TransactionID != "TX123" || r.Amount != 500 {
		t.Errorf("receipt = %+v", r)
	}

	if _, err := m.Record("DONATION-2", 500, contact, "paypal", "TX123"); err == nil {
		t.Error("unknown method accepted")
	}
	if _, err := m.Record("DONATION-3", 500, contact, "nagad", ""); err == nil {
		t.Error("empty transaction id accepted")
	}
}

func TestSettled(t *testing.T) {
	for _, s := range []string{"settlement", "capture"} {
		if !Settled(s) {
			t.Errorf("%q should be settled", s)
		}
	}
	for _, s := range []string{"pending", "deny", "expire", "cancel", ""} {
		if Settled(s) {
			t.Errorf("%q should not be settled", s)
		}
	}
}
