package models

import (
	"fmt"
	"time"

	restockdomain "github.com/ghuser/restockhub/services/restock/domain"
)

// RestockSession is the aggregate root for a restock order draft.
//
// The session is immutable: every mutator validates its input, then returns a
// new instance with the change applied, leaving the receiver untouched. A
// failed mutation therefore never leaves a partially-updated session behind.
// Instances are safe to share across goroutines without locks.
type RestockSession struct {
	id        string
	userID    string
	name      SessionName
	status    Status
	items     []RestockItem
	createdAt time.Time
	updatedAt *time.Time
}

// SessionValue is the plain snapshot of a session: the serialization contract
// between the aggregate and its repository. It must round-trip losslessly
// through Snapshot()/SessionFromValue().
type SessionValue struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Name      string        `json:"name"`
	Status    string        `json:"status"`
	Items     []RestockItem `json:"items"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt *time.Time    `json:"updatedAt,omitempty"`
}

// CreateSessionInput carries the caller-supplied fields for a new session.
// Name is optional; a blank name falls back to DefaultSessionName.
type CreateSessionInput struct {
	ID     string
	UserID string
	Name   string
}

// CreateSession builds a new draft session with no items.
func CreateSession(in CreateSessionInput) (*RestockSession, error) {
	if err := requireNonEmpty(in.ID, "session id"); err != nil {
		return nil, err
	}
	if err := requireNonEmpty(in.UserID, "user id"); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	name := DefaultSessionName(now)
	if in.Name != "" {
		parsed, err := NewSessionName(in.Name)
		if err != nil {
			return nil, err
		}
		name = parsed
	}

	return &RestockSession{
		id:        in.ID,
		userID:    in.UserID,
		name:      name,
		status:    StatusDraft,
		items:     []RestockItem{},
		createdAt: now,
	}, nil
}

// SessionFromValue reconstructs a session from a stored snapshot, re-checking
// every invariant: non-empty identifiers, name length, item quantities, status
// validity, and duplicate product ids.
func SessionFromValue(v SessionValue) (*RestockSession, error) {
	if err := requireNonEmpty(v.ID, "session id"); err != nil {
		return nil, err
	}
	if err := requireNonEmpty(v.UserID, "user id"); err != nil {
		return nil, err
	}

	name, err := NewSessionName(v.Name)
	if err != nil {
		return nil, err
	}

	status, err := ParseStatus(v.Status)
	if err != nil {
		return nil, err
	}

	items := make([]RestockItem, len(v.Items))
	seen := make(map[string]struct{}, len(v.Items))
	for i, item := range v.Items {
		if err := item.validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[item.ProductID]; dup {
			return nil, fmt.Errorf("%w: Product %s is already in this session", restockdomain.ErrDuplicateItem, item.ProductName)
		}
		seen[item.ProductID] = struct{}{}
		items[i] = item
	}

	s := &RestockSession{
		id:        v.ID,
		userID:    v.UserID,
		name:      name,
		status:    status,
		items:     items,
		createdAt: v.CreatedAt,
	}
	if v.UpdatedAt != nil {
		at := *v.UpdatedAt
		s.updatedAt = &at
	}
	return s, nil
}

// ID returns the session identifier.
func (s *RestockSession) ID() string { return s.id }

// UserID returns the owning user's identifier.
func (s *RestockSession) UserID() string { return s.userID }

// Name returns the session name.
func (s *RestockSession) Name() string { return s.name.String() }

// Status returns the lifecycle status.
func (s *RestockSession) Status() Status { return s.status }

// CreatedAt returns the creation timestamp.
func (s *RestockSession) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last mutation timestamp, or nil if never mutated.
func (s *RestockSession) UpdatedAt() *time.Time {
	if s.updatedAt == nil {
		return nil
	}
	at := *s.updatedAt
	return &at
}

// Items returns a copy of the line items in insertion order.
func (s *RestockSession) Items() []RestockItem {
	items := make([]RestockItem, len(s.items))
	copy(items, s.items)
	return items
}

// IsEmpty reports whether the session has no items.
func (s *RestockSession) IsEmpty() bool { return len(s.items) == 0 }

// TotalQuantity returns the sum of all item quantities.
func (s *RestockSession) TotalQuantity() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// UniqueSupplierCount returns the number of distinct suppliers across items.
func (s *RestockSession) UniqueSupplierCount() int {
	return len(s.UniqueSuppliers())
}

// UniqueSuppliers returns the suppliers referenced by the items, deduplicated
// by supplier id in first-seen order.
func (s *RestockSession) UniqueSuppliers() []SupplierRef {
	seen := make(map[string]struct{}, len(s.items))
	suppliers := make([]SupplierRef, 0, len(s.items))
	for _, item := range s.items {
		if _, ok := seen[item.SupplierID]; ok {
			continue
		}
		seen[item.SupplierID] = struct{}{}
		suppliers = append(suppliers, SupplierRef{
			ID:    item.SupplierID,
			Name:  item.SupplierName,
			Email: item.SupplierEmail,
		})
	}
	return suppliers
}

// ItemsBySupplier returns the items for one supplier, preserving order.
func (s *RestockSession) ItemsBySupplier(supplierID string) []RestockItem {
	items := make([]RestockItem, 0)
	for _, item := range s.items {
		if item.SupplierID == supplierID {
			items = append(items, item)
		}
	}
	return items
}

// HasProduct reports whether an item for productID is present.
func (s *RestockSession) HasProduct(productID string) bool {
	for _, item := range s.items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// CanAddItems reports whether items may still be added.
func (s *RestockSession) CanAddItems() bool { return s.status == StatusDraft }

// CanGenerateEmails reports whether supplier emails can be generated.
func (s *RestockSession) CanGenerateEmails() bool {
	return s.status == StatusDraft && !s.IsEmpty()
}

// CanSendEmails reports whether generated emails can be sent.
func (s *RestockSession) CanSendEmails() bool { return s.status == StatusEmailGenerated }

// IsDraft reports whether the session is still a draft.
func (s *RestockSession) IsDraft() bool { return s.status == StatusDraft }

// IsCompleted reports whether the session reached its terminal state.
func (s *RestockSession) IsCompleted() bool { return s.status == StatusSent }

// Snapshot returns the plain persistable value of the session.
func (s *RestockSession) Snapshot() SessionValue {
	v := SessionValue{
		ID:        s.id,
		UserID:    s.userID,
		Name:      s.name.String(),
		Status:    s.status.String(),
		Items:     s.Items(),
		CreatedAt: s.createdAt,
	}
	v.UpdatedAt = s.UpdatedAt()
	return v
}

// AddItem appends a line item and returns the updated session.
// Fails when the quantity is not positive or the product is already present.
func (s *RestockSession) AddItem(item RestockItem) (*RestockSession, error) {
	if err := item.validate(); err != nil {
		return nil, err
	}
	if s.HasProduct(item.ProductID) {
		return nil, fmt.Errorf("%w: Product %s is already in this session", restockdomain.ErrDuplicateItem, item.ProductName)
	}

	next := s.clone()
	next.items = append(next.items, item)
	next.touch()
	return next, nil
}

// RemoveItem drops the item for productID and returns the updated session.
// Removing an absent product is not an error.
func (s *RestockSession) RemoveItem(productID string) (*RestockSession, error) {
	next := s.clone()
	items := next.items[:0]
	for _, item := range next.items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	next.items = items
	next.touch()
	return next, nil
}

// UpdateItem merges patch into the item for productID and returns the updated
// session. Fails with ErrItemNotFound when the product is absent.
func (s *RestockSession) UpdateItem(productID string, patch ItemPatch) (*RestockSession, error) {
	if patch.Quantity != nil {
		if err := requirePositive(*patch.Quantity); err != nil {
			return nil, err
		}
	}

	idx := -1
	for i, item := range s.items {
		if item.ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, restockdomain.ErrItemNotFound
	}

	next := s.clone()
	if patch.Quantity != nil {
		next.items[idx].Quantity = *patch.Quantity
	}
	if patch.Notes != nil {
		next.items[idx].Notes = *patch.Notes
	}
	next.touch()
	return next, nil
}

// Rename sets a new trimmed name and returns the updated session.
func (s *RestockSession) Rename(name string) (*RestockSession, error) {
	parsed, err := NewSessionName(name)
	if err != nil {
		return nil, err
	}

	next := s.clone()
	next.name = parsed
	next.touch()
	return next, nil
}

// GenerateEmails moves the session from draft to email_generated.
func (s *RestockSession) GenerateEmails() (*RestockSession, error) {
	if s.IsEmpty() {
		return nil, fmt.Errorf("%w: Cannot generate emails for empty session", restockdomain.ErrValidation)
	}
	if !s.status.CanTransitionTo(StatusEmailGenerated) {
		return nil, fmt.Errorf("%w: Emails can only be generated from draft sessions", restockdomain.ErrInvalidTransition)
	}

	next := s.clone()
	next.status = StatusEmailGenerated
	next.touch()
	return next, nil
}

// MarkSent moves the session from email_generated to its terminal sent state.
func (s *RestockSession) MarkSent() (*RestockSession, error) {
	if !s.status.CanTransitionTo(StatusSent) {
		return nil, fmt.Errorf("%w: Can only send emails that have been generated", restockdomain.ErrInvalidTransition)
	}

	next := s.clone()
	next.status = StatusSent
	next.touch()
	return next, nil
}

// clone returns a deep copy; mutators modify the copy, never the receiver.
func (s *RestockSession) clone() *RestockSession {
	next := *s
	next.items = make([]RestockItem, len(s.items))
	copy(next.items, s.items)
	if s.updatedAt != nil {
		at := *s.updatedAt
		next.updatedAt = &at
	}
	return &next
}

// touch records the mutation time.
func (s *RestockSession) touch() {
	now := time.Now().UTC()
	s.updatedAt = &now
}
