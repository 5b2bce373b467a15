package ledger_test

import (
	"testing"

	"github.com/warp/seller-core/ledger"
)

func TestSummarize_AggregatesRevenueInMajorUnits(t *testing.T) {
	entries := []ledger.SalesEntry{
		{Quantity: 3, UnitPrice: 15000, TotalPrice: 45000, PaymentMethod: ledger.PaymentCash},
		{Quantity: 1, UnitPrice: 2500, TotalPrice: 2500, PaymentMethod: ledger.PaymentQRIS},
		{Quantity: 2, UnitPrice: 0, TotalPrice: 0, PaymentMethod: ledger.PaymentCash},
	}

	s := ledger.Summarize(entries)

	if s.Entries != 3 {
		t.Errorf("expected 3 entries, got %d", s.Entries)
	}
	if s.UnitsSold != 6 {
		t.Errorf("expected 6 units, got %d", s.UnitsSold)
	}
	if got := s.Revenue.StringFixed(2); got != "475.00" {
		t.Errorf("expected revenue 475.00, got %s", got)
	}
	if s.ByPayment[ledger.PaymentCash] != 2 || s.ByPayment[ledger.PaymentQRIS] != 1 {
		t.Errorf("unexpected payment breakdown: %v", s.ByPayment)
	}
}

func TestSummarize_EmptyLedger(t *testing.T) {
	s := ledger.Summarize(nil)
	if s.Entries != 0 {
		t.Errorf("expected 0 entries, got %d", s.Entries)
	}
	if got := s.Revenue.StringFixed(2); got != "0.00" {
		t.Errorf("expected revenue 0.00, got %s", got)
	}
}
