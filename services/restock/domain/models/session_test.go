package models

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"testing"
	"time"

	restockdomain "github.com/ghuser/restockhub/services/restock/domain"
)

func testItem(productID, productName string, quantity int) RestockItem {
	return RestockItem{
		ProductID:     productID,
		ProductName:   productName,
		Quantity:      quantity,
		SupplierID:    "sup1",
		SupplierName:  "Acme Supply",
		SupplierEmail: "orders@acme.test",
	}
}

func draftSession(t *testing.T, items ...RestockItem) *RestockSession {
	t.Helper()
	s, err := CreateSession(CreateSessionInput{ID: "s1", UserID: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, item := range items {
		s, err = s.AddItem(item)
		if err != nil {
			t.Fatalf("unexpected error adding %s: %v", item.ProductID, err)
		}
	}
	return s
}

func TestCreateSession(t *testing.T) {
	t.Run("starts as empty draft", func(t *testing.T) {
		s, err := CreateSession(CreateSessionInput{ID: "s1", UserID: "u1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Status() != StatusDraft {
			t.Fatalf("expected draft, got %s", s.Status())
		}
		if !s.IsEmpty() || len(s.Items()) != 0 {
			t.Fatal("expected no items")
		}
		if s.UpdatedAt() != nil {
			t.Fatal("expected nil UpdatedAt on a fresh session")
		}
	})

	t.Run("defaults name to Restock Session plus ISO date", func(t *testing.T) {
		s, err := CreateSession(CreateSessionInput{ID: "s1", UserID: "u1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		matched, _ := regexp.MatchString(`^Restock Session \d{4}-\d{2}-\d{2}$`, s.Name())
		if !matched {
			t.Fatalf("unexpected default name %q", s.Name())
		}
	})

	t.Run("uses and trims the provided name", func(t *testing.T) {
		s, err := CreateSession(CreateSessionInput{ID: "s1", UserID: "u1", Name: "  Friday order  "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Name() != "Friday order" {
			t.Fatalf("expected trimmed name, got %q", s.Name())
		}
	})

	t.Run("rejects empty id", func(t *testing.T) {
		_, err := CreateSession(CreateSessionInput{ID: "  ", UserID: "u1"})
		if !errors.Is(err, restockdomain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("rejects empty user id", func(t *testing.T) {
		_, err := CreateSession(CreateSessionInput{ID: "s1", UserID: ""})
		if !errors.Is(err, restockdomain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("rejects name over 255 characters", func(t *testing.T) {
		_, err := CreateSession(CreateSessionInput{ID: "s1", UserID: "u1", Name: strings.Repeat("x", 256)})
		if !errors.Is(err, restockdomain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("sets CreatedAt to approximately now UTC", func(t *testing.T) {
		before := time.Now().UTC()
		s, err := CreateSession(CreateSessionInput{ID: "s1", UserID: "u1"})
		after := time.Now().UTC()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.CreatedAt().Before(before) || s.CreatedAt().After(after) {
			t.Fatalf("CreatedAt %v not between %v and %v", s.CreatedAt(), before, after)
		}
	})
}

func TestRestockSession_AddItem(t *testing.T) {
	t.Run("appends in insertion order", func(t *testing.T) {
		s := draftSession(t, testItem("p1", "Coffee", 5), testItem("p2", "Tea", 2))
		items := s.Items()
		if len(items) != 2 || items[0].ProductID != "p1" || items[1].ProductID != "p2" {
			t.Fatalf("unexpected items %+v", items)
		}
		if s.UpdatedAt() == nil {
			t.Fatal("expected UpdatedAt after mutation")
		}
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		s := draftSession(t)
		for _, q := range []int{0, -1, -100} {
			_, err := s.AddItem(testItem("p1", "Coffee", q))
			if !errors.Is(err, restockdomain.ErrValidation) {
				t.Fatalf("quantity %d: expected validation error, got %v", q, err)
			}
			if !strings.Contains(err.Error(), "Quantity must be greater than zero") {
				t.Fatalf("quantity %d: unexpected message %q", q, err.Error())
			}
		}
	})

	t.Run("rejects duplicate product and keeps count unchanged", func(t *testing.T) {
		s := draftSession(t, testItem("p1", "Coffee", 5))
		_, err := s.AddItem(testItem("p1", "Coffee", 3))
		if !errors.Is(err, restockdomain.ErrDuplicateItem) {
			t.Fatalf("expected ErrDuplicateItem, got %v", err)
		}
		if !errors.Is(err, restockdomain.ErrValidation) {
			t.Fatal("duplicate item must also match ErrValidation")
		}
		if !strings.Contains(err.Error(), "Product Coffee is already in this session") {
			t.Fatalf("unexpected message %q", err.Error())
		}
		if s.TotalQuantity() != 5 {
			t.Fatalf("expected total 5, got %d", s.TotalQuantity())
		}
	})

	t.Run("rejects blank item fields", func(t *testing.T) {
		s := draftSession(t)
		item := testItem("p1", "Coffee", 1)
		item.SupplierEmail = "   "
		if _, err := s.AddItem(item); !errors.Is(err, restockdomain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		s := draftSession(t, testItem("p1", "Coffee", 5))
		before := s.Snapshot()
		updated, err := s.AddItem(testItem("p2", "Tea", 2))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated == s {
			t.Fatal("expected a distinct instance")
		}
		if !reflect.DeepEqual(before, s.Snapshot()) {
			t.Fatal("receiver changed after AddItem")
		}
		if len(updated.Items()) != 2 {
			t.Fatalf("expected 2 items on the new instance, got %d", len(updated.Items()))
		}
	})
}

func TestRestockSession_RemoveItem(t *testing.T) {
	t.Run("removes the matching item", func(t *testing.T) {
		s := draftSession(t, testItem("p1", "Coffee", 5), testItem("p2", "Tea", 2))
		updated, err := s.RemoveItem("p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.HasProduct("p1") || !updated.HasProduct("p2") {
			t.Fatalf("unexpected items %+v", updated.Items())
		}
		if len(s.Items()) != 2 {
			t.Fatal("receiver changed after RemoveItem")
		}
	})

	t.Run("is a silent no-op for unknown products", func(t *testing.T) {
		s := draftSession(t, testItem("p1", "Coffee", 5))
		updated, err := s.RemoveItem("missing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(s.Items(), updated.Items()) {
			t.Fatal("expected item list to be unchanged")
		}
	})
}

func TestRestockSession_UpdateItem(t *testing.T) {
	intp := func(v int) *int { return &v }
	strp := func(v string) *string { return &v }

	t.Run("merges quantity and notes", func(t *testing.T) {
		s := draftSession(t, testItem("p1", "Coffee", 5))
		updated, err := s.UpdateItem("p1", ItemPatch{Quantity: intp(9), Notes: strp("dark roast")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		item := updated.Items()[0]
		if item.Quantity != 9 || item.Notes != "dark roast" {
			t.Fatalf("unexpected item %+v", item)
		}
		if s.Items()[0].Quantity != 5 {
			t.Fatal("receiver changed after UpdateItem")
		}
	})

	t.Run("leaves unpatched fields alone", func(t *testing.T) {
		base := testItem("p1", "Coffee", 5)
		base.Notes = "keep me"
		s := draftSession(t, base)
		updated, err := s.UpdateItem("p1", ItemPatch{Quantity: intp(7)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Items()[0].Notes != "keep me" {
			t.Fatalf("notes lost: %+v", updated.Items()[0])
		}
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		s := draftSession(t, testItem("p1", "Coffee", 5))
		_, err := s.UpdateItem("p1", ItemPatch{Quantity: intp(0)})
		if !errors.Is(err, restockdomain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("fails with ErrItemNotFound for unknown products", func(t *testing.T) {
		s := draftSession(t, testItem("p1", "Coffee", 5))
		_, err := s.UpdateItem("missing", ItemPatch{Quantity: intp(2)})
		if !errors.Is(err, restockdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestRestockSession_Rename(t *testing.T) {
	t.Run("stores the trimmed name", func(t *testing.T) {
		s := draftSession(t)
		updated, err := s.Rename("  Trimmed  ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Name() != "Trimmed" {
			t.Fatalf("expected %q, got %q", "Trimmed", updated.Name())
		}
	})

	t.Run("rejects whitespace-only names", func(t *testing.T) {
		s := draftSession(t)
		_, err := s.Rename("   ")
		if !errors.Is(err, restockdomain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if !strings.Contains(err.Error(), "Session name cannot be empty") {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})

	t.Run("rejects names over 255 characters", func(t *testing.T) {
		s := draftSession(t)
		if _, err := s.Rename(strings.Repeat("x", 256)); !errors.Is(err, restockdomain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestRestockSession_Lifecycle(t *testing.T) {
	t.Run("generate fails for an empty session", func(t *testing.T) {
		s := draftSession(t)
		_, err := s.GenerateEmails()
		if !errors.Is(err, restockdomain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if !strings.Contains(err.Error(), "Cannot generate emails for empty session") {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})

	t.Run("draft to email_generated to sent", func(t *testing.T) {
		s := draftSession(t, testItem("p1", "Coffee", 5))
		generated, err := s.GenerateEmails()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if generated.Status() != StatusEmailGenerated || !generated.CanSendEmails() {
			t.Fatalf("unexpected state %s", generated.Status())
		}

		sent, err := generated.MarkSent()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sent.Status() != StatusSent || !sent.IsCompleted() {
			t.Fatalf("unexpected state %s", sent.Status())
		}
	})

	t.Run("generate fails outside draft", func(t *testing.T) {
		s := draftSession(t, testItem("p1", "Coffee", 5))
		generated, _ := s.GenerateEmails()
		_, err := generated.GenerateEmails()
		if !errors.Is(err, restockdomain.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		if !strings.Contains(err.Error(), "Emails can only be generated from draft sessions") {
			t.Fatalf("unexpected message %q", err.Error())
		}

		sent, _ := generated.MarkSent()
		if _, err := sent.GenerateEmails(); !errors.Is(err, restockdomain.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition from sent, got %v", err)
		}
	})

	t.Run("send fails outside email_generated", func(t *testing.T) {
		s := draftSession(t, testItem("p1", "Coffee", 5))
		_, err := s.MarkSent()
		if !errors.Is(err, restockdomain.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		if !strings.Contains(err.Error(), "Can only send emails that have been generated") {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})

	t.Run("transitions keep items intact", func(t *testing.T) {
		s := draftSession(t, testItem("p1", "Coffee", 5), testItem("p2", "Tea", 2))
		generated, _ := s.GenerateEmails()
		sent, _ := generated.MarkSent()
		if sent.TotalQuantity() != 7 || len(sent.Items()) != 2 {
			t.Fatalf("items lost through lifecycle: %+v", sent.Items())
		}
	})
}

func TestRestockSession_DerivedQueries(t *testing.T) {
	coffee := testItem("p1", "Coffee", 5)
	tea := testItem("p2", "Tea", 2)
	beans := RestockItem{
		ProductID:     "p3",
		ProductName:   "Beans",
		Quantity:      4,
		SupplierID:    "sup2",
		SupplierName:  "Bulk Foods",
		SupplierEmail: "sales@bulkfoods.test",
	}

	t.Run("total quantity sums all items", func(t *testing.T) {
		s := draftSession(t, coffee, tea, beans)
		if s.TotalQuantity() != 11 {
			t.Fatalf("expected 11, got %d", s.TotalQuantity())
		}
	})

	t.Run("unique suppliers deduplicate in first-seen order", func(t *testing.T) {
		s := draftSession(t, coffee, tea, beans)
		suppliers := s.UniqueSuppliers()
		if s.UniqueSupplierCount() != 2 || len(suppliers) != 2 {
			t.Fatalf("expected 2 suppliers, got %d", len(suppliers))
		}
		if suppliers[0].ID != "sup1" || suppliers[1].ID != "sup2" {
			t.Fatalf("unexpected supplier order %+v", suppliers)
		}
		if suppliers[1].Email != "sales@bulkfoods.test" {
			t.Fatalf("unexpected supplier %+v", suppliers[1])
		}
	})

	t.Run("items by supplier preserves order", func(t *testing.T) {
		s := draftSession(t, coffee, tea, beans)
		acme := s.ItemsBySupplier("sup1")
		if len(acme) != 2 || acme[0].ProductID != "p1" || acme[1].ProductID != "p2" {
			t.Fatalf("unexpected items %+v", acme)
		}
		if len(s.ItemsBySupplier("nobody")) != 0 {
			t.Fatal("expected no items for unknown supplier")
		}
	})

	t.Run("capability flags follow status and emptiness", func(t *testing.T) {
		empty := draftSession(t)
		if !empty.CanAddItems() || empty.CanGenerateEmails() || empty.CanSendEmails() {
			t.Fatal("unexpected capabilities for empty draft")
		}

		filled := draftSession(t, coffee)
		if !filled.CanGenerateEmails() {
			t.Fatal("draft with items must allow generating emails")
		}

		generated, _ := filled.GenerateEmails()
		if generated.CanAddItems() || generated.CanGenerateEmails() || !generated.CanSendEmails() {
			t.Fatal("unexpected capabilities for email_generated")
		}
	})
}

func TestSessionFromValue(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	valid := func() SessionValue {
		return SessionValue{
			ID:        "s1",
			UserID:    "u1",
			Name:      "Friday order",
			Status:    "draft",
			Items:     []RestockItem{testItem("p1", "Coffee", 5)},
			CreatedAt: now,
		}
	}

	t.Run("round-trips losslessly through Snapshot", func(t *testing.T) {
		s := draftSession(t, testItem("p1", "Coffee", 5), testItem("p2", "Tea", 2))
		generated, _ := s.GenerateEmails()

		restored, err := SessionFromValue(generated.Snapshot())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(generated.Snapshot(), restored.Snapshot()) {
			t.Fatalf("round trip mismatch:\n%+v\n%+v", generated.Snapshot(), restored.Snapshot())
		}
	})

	t.Run("rejects empty identifiers", func(t *testing.T) {
		v := valid()
		v.ID = ""
		if _, err := SessionFromValue(v); !errors.Is(err, restockdomain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}

		v = valid()
		v.UserID = " "
		if _, err := SessionFromValue(v); !errors.Is(err, restockdomain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		v := valid()
		v.Status = "archived"
		if _, err := SessionFromValue(v); !errors.Is(err, restockdomain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("rejects non-positive stored quantities", func(t *testing.T) {
		v := valid()
		v.Items[0].Quantity = 0
		if _, err := SessionFromValue(v); !errors.Is(err, restockdomain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("rejects duplicate stored product ids", func(t *testing.T) {
		v := valid()
		v.Items = append(v.Items, testItem("p1", "Coffee", 3))
		if _, err := SessionFromValue(v); !errors.Is(err, restockdomain.ErrDuplicateItem) {
			t.Fatalf("expected ErrDuplicateItem, got %v", err)
		}
	})
}

func TestRestockSession_SnapshotIsolation(t *testing.T) {
	s := draftSession(t, testItem("p1", "Coffee", 5))

	// Mutating a returned snapshot or item slice must not reach the aggregate.
	items := s.Items()
	items[0].Quantity = 999
	if s.Items()[0].Quantity != 5 {
		t.Fatal("Items() leaked the internal slice")
	}

	snap := s.Snapshot()
	snap.Items[0].Quantity = 999
	if s.Snapshot().Items[0].Quantity != 5 {
		t.Fatal("Snapshot() leaked the internal slice")
	}
}
