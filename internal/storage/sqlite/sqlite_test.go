package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmynk/expensetracker/internal/models"
	"github.com/mmynk/expensetracker/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *SQLiteStore, username, email string) *models.User {
	t.Helper()

	user := &models.User{Username: username, Email: email, PasswordHash: "hash"}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", username, err)
	}
	return user
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser assigns ID and CreatedAt", func(t *testing.T) {
		user := createUser(t, store, "alice", "alice@example.com")

		if user.ID == "" {
			t.Error("Expected user ID to be generated")
		}
		if user.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		if _, err := store.ParseID(user.ID.String()); err != nil {
			t.Errorf("Generated ID %q does not parse: %v", user.ID, err)
		}
	})

	t.Run("lookups by username, email and ID agree", func(t *testing.T) {
		created := createUser(t, store, "bob", "bob@example.com")

		byName, err := store.GetUserByUsername(ctx, "bob")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		byEmail, err := store.GetUserByEmail(ctx, "bob@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		byID, err := store.GetUserByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}

		for _, got := range []*models.User{byName, byEmail, byID} {
			if *got != *created {
				t.Errorf("lookup mismatch: got %+v, want %+v", got, created)
			}
		}
	})

	t.Run("missing users return ErrNotFound", func(t *testing.T) {
		if _, err := store.GetUserByUsername(ctx, "nobody"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetUserByUsername: expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetUserByEmail: expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetUserByID(ctx, newID()); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetUserByID: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("duplicate username or email is rejected", func(t *testing.T) {
		createUser(t, store, "carol", "carol@example.com")

		tests := []struct {
			name     string
			username string
			email    string
		}{
			{name: "same username", username: "carol", email: "other@example.com"},
			{name: "same email", username: "carol2", email: "carol@example.com"},
			{name: "both", username: "carol", email: "carol@example.com"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				user := &models.User{Username: tt.username, Email: tt.email, PasswordHash: "hash"}
				err := store.CreateUser(ctx, user)
				if !errors.Is(err, storage.ErrDuplicateIdentity) {
					t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
				}
				if user.ID != "" {
					t.Errorf("expected no ID on rejected user, got %q", user.ID)
				}
			})
		}

		if _, err := store.GetUserByUsername(ctx, "carol2"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("rejected user was persisted: %v", err)
		}
	})
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, store, "dave", "dave@example.com")
	other := createUser(t, store, "erin", "erin@example.com")

	t.Run("CreateExpense and GetExpense round trip", func(t *testing.T) {
		expense := &models.Expense{
			Title:    "Groceries",
			Amount:   42.5,
			Category: "food",
			Date:     "2024-03-01",
			OwnerID:  owner.ID,
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Fatal("Expected expense ID to be generated")
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if *got != *expense {
			t.Errorf("GetExpense: got %+v, want %+v", got, expense)
		}
	})

	t.Run("ListExpensesByOwner keeps insertion order and scopes by owner", func(t *testing.T) {
		fresh := createUser(t, store, "frank", "frank@example.com")

		// Dates deliberately out of order: listing must not sort by date.
		titles := []string{"Rent", "Coffee", "Train"}
		dates := []string{"2024-05-01", "2023-01-01", "2024-12-31"}
		for i, title := range titles {
			err := store.CreateExpense(ctx, &models.Expense{
				Title: title, Amount: float64(i + 1), Category: "misc", Date: dates[i], OwnerID: fresh.ID,
			})
			if err != nil {
				t.Fatalf("CreateExpense(%s) failed: %v", title, err)
			}
		}
		if err := store.CreateExpense(ctx, &models.Expense{Title: "Not mine", OwnerID: other.ID}); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expenses, err := store.ListExpensesByOwner(ctx, fresh.ID)
		if err != nil {
			t.Fatalf("ListExpensesByOwner failed: %v", err)
		}
		if len(expenses) != len(titles) {
			t.Fatalf("expected %d expenses, got %d", len(titles), len(expenses))
		}
		for i, expense := range expenses {
			if expense.Title != titles[i] {
				t.Errorf("position %d: expected %q, got %q", i, titles[i], expense.Title)
			}
			if expense.OwnerID != fresh.ID {
				t.Errorf("position %d: expected owner %s, got %s", i, fresh.ID, expense.OwnerID)
			}
		}
	})

	t.Run("ListExpensesByOwner returns empty slice for no expenses", func(t *testing.T) {
		lonely := createUser(t, store, "gina", "gina@example.com")

		expenses, err := store.ListExpensesByOwner(ctx, lonely.ID)
		if err != nil {
			t.Fatalf("ListExpensesByOwner failed: %v", err)
		}
		if expenses == nil || len(expenses) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", expenses)
		}
	})

	t.Run("UpdateExpense keeps owner and creation time", func(t *testing.T) {
		expense := &models.Expense{Title: "Lunch", Amount: 12, Category: "food", Date: "2024-01-02", OwnerID: owner.ID}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		changed := *expense
		changed.Title = "Dinner"
		changed.Amount = 30
		changed.Category = "restaurants"
		changed.Date = "2024-01-03"
		changed.OwnerID = other.ID // must be ignored
		changed.CreatedAt = 1

		if err := store.UpdateExpense(ctx, &changed); err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Title != "Dinner" || got.Amount != 30 || got.Category != "restaurants" || got.Date != "2024-01-03" {
			t.Errorf("mutable fields not updated: %+v", got)
		}
		if got.OwnerID != owner.ID {
			t.Errorf("owner changed: got %s, want %s", got.OwnerID, owner.ID)
		}
		if got.CreatedAt != expense.CreatedAt {
			t.Errorf("CreatedAt changed: got %d, want %d", got.CreatedAt, expense.CreatedAt)
		}
	})

	t.Run("UpdateExpense and DeleteExpense report missing records", func(t *testing.T) {
		missing := &models.Expense{ID: newID(), Title: "Ghost"}
		if err := store.UpdateExpense(ctx, missing); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdateExpense: expected ErrNotFound, got %v", err)
		}
		if err := store.DeleteExpense(ctx, missing.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeleteExpense: expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetExpense(ctx, missing.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetExpense: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteExpense removes the record", func(t *testing.T) {
		expense := &models.Expense{Title: "Taxi", Amount: 9, OwnerID: owner.ID}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if err := store.DeleteExpense(ctx, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if _, err := store.GetExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestParseID(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "uuid", raw: "9b2d6a3e-4a8c-4b51-9f55-2d1c3e0b7a11", wantErr: false},
		{name: "empty", raw: "", wantErr: true},
		{name: "garbage", raw: "not-an-id", wantErr: true},
		{name: "mongo style hex", raw: "507f1f77bcf86cd799439011", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := store.ParseID(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, storage.ErrInvalidIdentifier) {
					t.Errorf("expected ErrInvalidIdentifier, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id.String() != tt.raw {
				t.Errorf("expected %q, got %q", tt.raw, id)
			}
		})
	}
}

func TestInMemoryStore(t *testing.T) {
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory store: %v", err)
	}
	defer store.Close()

	user := createUser(t, store, "henry", "henry@example.com")
	if _, err := store.GetUserByID(context.Background(), user.ID); err != nil {
		t.Errorf("GetUserByID on in-memory store failed: %v", err)
	}
}
