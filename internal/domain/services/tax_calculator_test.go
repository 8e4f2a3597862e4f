package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTaxCalculator_Calculate(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		unitPrice string
		imported  bool
		taxExempt bool
		want      string
	}{
		{name: "book is exempt", quantity: 1, unitPrice: "12.49", taxExempt: true, want: "0.00"},
		{name: "food is exempt", quantity: 1, unitPrice: "0.85", taxExempt: true, want: "0.00"},
		{name: "medical is exempt", quantity: 1, unitPrice: "9.75", taxExempt: true, want: "0.00"},
		{name: "music CD basic tax", quantity: 1, unitPrice: "14.99", want: "1.50"},
		{name: "perfume basic tax", quantity: 1, unitPrice: "18.99", want: "1.90"},
		{name: "imported exempt pays duty only", quantity: 1, unitPrice: "10.00", imported: true, taxExempt: true, want: "0.50"},
		{name: "imported taxed pays both", quantity: 1, unitPrice: "47.50", imported: true, want: "7.15"},
		{name: "imported perfume", quantity: 1, unitPrice: "27.99", imported: true, want: "4.20"},
		{name: "already on nickel boundary", quantity: 1, unitPrice: "1.00", want: "0.10"},
		{name: "1.006 rounds up to 1.05", quantity: 1, unitPrice: "10.06", want: "1.05"},
		{name: "exempt with quantity", quantity: 2, unitPrice: "12.49", taxExempt: true, want: "0.00"},
		{name: "rounded per unit then multiplied", quantity: 3, unitPrice: "11.25", imported: true, taxExempt: true, want: "1.80"},
		{name: "zero price", quantity: 5, unitPrice: "0", imported: true, want: "0.00"},
		{name: "zero quantity", quantity: 0, unitPrice: "20.00", want: "0.00"},
	}

	calc := NewTaxCalculator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := newEntry("item", tt.quantity, tt.unitPrice, tt.imported, tt.taxExempt)

			got := calc.Calculate(entry)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Calculate() = %v, want %v", got.StringFixed(2), tt.want)
			}
		})
	}
}

func TestRoundUpToNearestNickel(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{amount: "0.00", want: "0.00"},
		{amount: "0.01", want: "0.05"},
		{amount: "0.05", want: "0.05"},
		{amount: "0.06", want: "0.10"},
		{amount: "1.006", want: "1.05"},
		{amount: "1.01", want: "1.05"},
		{amount: "1.50", want: "1.50"},
		{amount: "1.499", want: "1.50"},
		{amount: "7.125", want: "7.15"},
		{amount: "0.5625", want: "0.60"},
		{amount: "0.0500000001", want: "0.10"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := RoundUpToNearestNickel(decimal.RequireFromString(tt.amount))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("RoundUpToNearestNickel(%s) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}

func TestRoundUpToNearestNickel_Properties(t *testing.T) {
	nickel := decimal.RequireFromString("0.05")

	// every amount from 0.000 to 5.000 in steps of 0.001
	for i := int64(0); i <= 5000; i++ {
		amount := decimal.New(i, -3)
		once := RoundUpToNearestNickel(amount)

		if once.LessThan(amount) {
			t.Fatalf("RoundUpToNearestNickel(%v) = %v, want >= input", amount, once)
		}
		if !once.Mod(nickel).IsZero() {
			t.Fatalf("RoundUpToNearestNickel(%v) = %v, not a multiple of 0.05", amount, once)
		}
		if twice := RoundUpToNearestNickel(once); !twice.Equal(once) {
			t.Fatalf("RoundUpToNearestNickel not idempotent for %v: %v then %v", amount, once, twice)
		}
		if once.Sub(amount).GreaterThanOrEqual(nickel) {
			t.Fatalf("RoundUpToNearestNickel(%v) = %v, overshoots by a full nickel", amount, once)
		}
	}
}

func TestTaxCalculator_Monotonic(t *testing.T) {
	calc := NewTaxCalculator()

	flags := []struct {
		imported  bool
		taxExempt bool
	}{
		{false, false},
		{true, false},
		{false, true},
		{true, true},
	}

	for _, f := range flags {
		previous := decimal.Zero
		for cents := int64(0); cents <= 3000; cents += 7 {
			entry := newEntry("item", 1, decimal.New(cents, -2).String(), f.imported, f.taxExempt)
			got := calc.Calculate(entry)
			if got.LessThan(previous) {
				t.Fatalf("tax decreased at price %v (imported=%v exempt=%v): %v < %v",
					entry.UnitPrice, f.imported, f.taxExempt, got, previous)
			}
			previous = got
		}

		previous = decimal.Zero
		for qty := 0; qty <= 20; qty++ {
			got := calc.Calculate(newEntry("item", qty, "13.37", f.imported, f.taxExempt))
			if got.LessThan(previous) {
				t.Fatalf("tax decreased at quantity %d: %v < %v", qty, got, previous)
			}
			previous = got
		}
	}
}
