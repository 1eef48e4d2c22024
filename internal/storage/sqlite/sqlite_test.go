package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/internal/money"
	"github.com/mmynk/fairsplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newBill(t *testing.T, code string, participants ...string) *models.Bill {
	t.Helper()
	c, ok := money.LookupCurrency(code)
	if !ok {
		t.Fatalf("unknown currency %s", code)
	}
	b := models.NewBill(c)
	for _, p := range participants {
		if err := b.AddParticipant(p); err != nil {
			t.Fatalf("AddParticipant failed: %v", err)
		}
	}
	return b
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateBill generates ID and title", func(t *testing.T) {
		bill := newBill(t, "USD", "Alice", "Bob")
		bill.AddItem(models.NewItem{Name: "Pizza", Price: 2000, Payer: "Alice"})

		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		if bill.ID == "" {
			t.Error("Expected bill ID to be generated")
		}
		if bill.Title != "Split with Alice, Bob" {
			t.Errorf("Unexpected title: %s", bill.Title)
		}
		if bill.CreatedAt == 0 || bill.UpdatedAt != bill.CreatedAt {
			t.Errorf("Expected timestamps to be set, got created=%d updated=%d", bill.CreatedAt, bill.UpdatedAt)
		}
	})

	t.Run("GetBill retrieves complete bill", func(t *testing.T) {
		original := newBill(t, "EUR", "Charlie", "Diana", "Eve")
		original.Title = "Test Dinner"
		original.PasscodeHash = "hash"
		steak, _ := original.AddItem(models.NewItem{Name: "Steak", Price: 3000, Payer: "Charlie", Consumers: []string{"Diana", "Charlie"}})
		salad, _ := original.AddItem(models.NewItem{Name: "Salad", Price: 999, Payer: "Diana"})

		if err := store.CreateBill(ctx, original); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		retrieved, err := store.GetBill(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}

		if retrieved.ID != original.ID || retrieved.Title != "Test Dinner" || retrieved.PasscodeHash != "hash" {
			t.Errorf("bill fields mismatch: %+v", retrieved)
		}
		if got := retrieved.Currency(); got.Code != "EUR" || got.Symbol != "€" || got.Decimals != 2 {
			t.Errorf("currency mismatch: %+v", got)
		}
		if !slices.Equal(retrieved.Participants(), []string{"Charlie", "Diana", "Eve"}) {
			t.Errorf("participants should keep insertion order, got %v", retrieved.Participants())
		}

		items := retrieved.Items()
		if len(items) != 2 || items[0].ID != steak.ID || items[1].ID != salad.ID {
			t.Fatalf("items mismatch: %+v", items)
		}
		if items[0].Price != 3000 || items[1].Price != 999 {
			t.Errorf("prices mismatch: %d, %d", items[0].Price, items[1].Price)
		}
		if !slices.Equal(items[0].Consumers.Chosen(), []string{"Diana", "Charlie"}) {
			t.Errorf("explicit consumers should keep their order, got %v", items[0].Consumers.Chosen())
		}
		if items[1].Consumers.IsExplicit() {
			t.Error("shared item should not be explicit")
		}
		if !slices.Equal(items[1].Consumers.AtCreation(), []string{"Charlie", "Diana", "Eve"}) {
			t.Errorf("snapshot mismatch: %v", items[1].Consumers.AtCreation())
		}
	})

	t.Run("GetBill returns ErrNotFound for nonexistent bill", func(t *testing.T) {
		_, err := store.GetBill(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateBill replaces contents", func(t *testing.T) {
		bill := newBill(t, "USD", "Alice", "Bob", "Carol")
		item, _ := bill.AddItem(models.NewItem{Name: "Taxi", Price: 1500, Payer: "Bob"})
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		if err := bill.RemoveParticipant("Carol"); err != nil {
			t.Fatalf("RemoveParticipant failed: %v", err)
		}
		bill.AddItem(models.NewItem{Name: "Snacks", Price: 400, Payer: "Alice", Consumers: []string{"Alice"}})
		inr, _ := money.LookupCurrency("INR")
		bill.SetCurrency(inr)

		if err := store.UpdateBill(ctx, bill); err != nil {
			t.Fatalf("UpdateBill failed: %v", err)
		}

		retrieved, err := store.GetBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if !slices.Equal(retrieved.Participants(), []string{"Alice", "Bob"}) {
			t.Errorf("participants = %v", retrieved.Participants())
		}
		if len(retrieved.Items()) != 2 {
			t.Errorf("expected 2 items, got %d", len(retrieved.Items()))
		}
		taxi, ok := retrieved.Item(item.ID)
		if !ok {
			t.Fatal("taxi item missing")
		}
		// The removed participant stays in the creation snapshot.
		if !slices.Equal(taxi.Consumers.AtCreation(), []string{"Alice", "Bob", "Carol"}) {
			t.Errorf("snapshot = %v", taxi.Consumers.AtCreation())
		}
		if retrieved.Currency().Code != "INR" {
			t.Errorf("currency = %s", retrieved.Currency().Code)
		}
	})

	t.Run("UpdateBill returns ErrNotFound for nonexistent bill", func(t *testing.T) {
		bill := newBill(t, "USD", "Alice")
		bill.ID = "missing"
		if err := store.UpdateBill(ctx, bill); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteBill removes bill", func(t *testing.T) {
		bill := newBill(t, "USD", "Alice")
		bill.AddItem(models.NewItem{Name: "Tea", Price: 250, Payer: "Alice"})
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		if err := store.DeleteBill(ctx, bill.ID); err != nil {
			t.Fatalf("DeleteBill failed: %v", err)
		}
		if _, err := store.GetBill(ctx, bill.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := store.DeleteBill(ctx, bill.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("Same item ids in two bills", func(t *testing.T) {
		original := newBill(t, "USD", "Alice")
		original.AddItem(models.NewItem{Name: "Tea", Price: 250, Payer: "Alice"})
		rec := models.ToRecord(original)

		for range 2 {
			if err := store.CreateBill(ctx, models.FromRecord(rec)); err != nil {
				t.Fatalf("CreateBill for imported record failed: %v", err)
			}
		}
	})

	t.Run("Prices survive the decimal column", func(t *testing.T) {
		bill := newBill(t, "USD", "Alice")
		prices := []money.Money{1, 10, 333, 999, 3330, 123456789}
		for _, p := range prices {
			bill.AddItem(models.NewItem{Name: "x", Price: p, Payer: "Alice"})
		}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		retrieved, err := store.GetBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		for i, item := range retrieved.Items() {
			if item.Price != prices[i] {
				t.Errorf("item %d price = %d, want %d", i, item.Price, prices[i])
			}
		}
	})
}

func TestGenerateTitle(t *testing.T) {
	tests := []struct {
		participants []string
		wantContains string
	}{
		{[]string{}, "Bill -"},
		{[]string{"Alice"}, "Split with Alice"},
		{[]string{"Alice", "Bob"}, "Split with Alice, Bob"},
		{[]string{"Alice", "Bob", "Charlie"}, "Split with Alice, Bob, Charlie"},
		{[]string{"Alice", "Bob", "Charlie", "Diana"}, "and 2 others"},
	}

	for _, tt := range tests {
		t.Run(tt.wantContains, func(t *testing.T) {
			got := generateTitle(tt.participants)
			if !strings.Contains(got, tt.wantContains) {
				t.Errorf("generateTitle(%v) = %q, want to contain %q", tt.participants, got, tt.wantContains)
			}
		})
	}
}
