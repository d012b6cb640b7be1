package ledger

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return date(y, m, d) }
}

func TestSandboxRequiresWindow(t *testing.T) {
	t.Parallel()

	s := NewSandbox(fixedClock(2025, time.November, 15))

	if _, err := s.Transactions(context.Background(), Query{}); err == nil {
		t.Fatal("expected error for missing window")
	}

	q := Query{Window: DateRange{
		Start: date(2025, time.October, 31),
		End:   date(2025, time.October, 1),
	}}
	if _, err := s.Transactions(context.Background(), q); err == nil {
		t.Fatal("expected error for inverted window")
	}
}

func TestSandboxCategoryFilter(t *testing.T) {
	t.Parallel()

	s := NewSandbox(fixedClock(2025, time.November, 15))
	q := Query{
		Window: DateRange{
			Start: date(2025, time.October, 1),
			End:   date(2025, time.October, 31),
		},
		Category: CategoryRestaurants,
	}

	got, err := s.Transactions(context.Background(), q)
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 october restaurant transactions, got %d: %+v", len(got), got)
	}

	// Date ascending, then ID.
	if got[0].Name != "OLIVE GARDEN 00071" || !got[0].Date.Equal(date(2025, time.October, 16)) {
		t.Fatalf("unexpected first transaction: %+v", got[0])
	}
	if got[1].Name != "CHIPOTLE MEXICAN GRILL" || !got[1].Date.Equal(date(2025, time.October, 26)) {
		t.Fatalf("unexpected second transaction: %+v", got[1])
	}
	if got[0].Amount+got[1].Amount != -97.50 {
		t.Fatalf("october restaurant total = %v, want -97.50", got[0].Amount+got[1].Amount)
	}
}

func TestSandboxMerchantFilterIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	s := NewSandbox(fixedClock(2025, time.November, 15))
	q := Query{
		Window: DateRange{
			Start: date(2025, time.August, 1),
			End:   date(2025, time.November, 15),
		},
		Merchant: "netflix",
	}

	got, err := s.Transactions(context.Background(), q)
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 netflix transactions, got %d", len(got))
	}
	for _, txn := range got {
		if txn.Name != "NETFLIX.COM" {
			t.Fatalf("merchant filter leaked %q", txn.Name)
		}
	}
}

func TestSandboxLimitTruncatesAfterSort(t *testing.T) {
	t.Parallel()

	s := NewSandbox(fixedClock(2025, time.November, 15))
	window := DateRange{
		Start: date(2025, time.August, 1),
		End:   date(2025, time.November, 15),
	}

	all, err := s.Transactions(context.Background(), Query{Window: window})
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	limited, err := s.Transactions(context.Background(), Query{Window: window, Limit: 3})
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}

	if len(limited) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(limited))
	}
	if !reflect.DeepEqual(limited, all[:3]) {
		t.Fatalf("limit must keep the oldest records:\nlimited: %+v\nall[:3]: %+v", limited, all[:3])
	}
}

func TestSandboxIsDeterministic(t *testing.T) {
	t.Parallel()

	s := NewSandbox(fixedClock(2025, time.November, 15))
	q := Query{Window: DateRange{
		Start: date(2025, time.August, 1),
		End:   date(2025, time.November, 15),
	}}

	first, err := s.Transactions(context.Background(), q)
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	second, err := s.Transactions(context.Background(), q)
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical queries must yield identical results")
	}
}

func TestSandboxAccounts(t *testing.T) {
	t.Parallel()

	s := NewSandbox(fixedClock(2025, time.November, 15))

	accounts, err := s.Accounts(context.Background())
	if err != nil {
		t.Fatalf("Accounts() error = %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(accounts))
	}
	if accounts[0].ID != "acc_checking" || accounts[0].Current != 2435.17 {
		t.Fatalf("unexpected checking account: %+v", accounts[0])
	}
	if accounts[2].Type != "credit" || accounts[2].Current != -342.10 {
		t.Fatalf("unexpected credit account: %+v", accounts[2])
	}
}
