package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/fairsplit/internal/money"
)

// Bill is a set of participants and the items they bought, priced in a
// single currency. Splits and settlements are pure functions of a Bill.
//
// A Bill is not safe for concurrent mutation; callers serialize writers.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// Title is the human-readable name for the bill.
	Title string

	// PasscodeHash is the bcrypt hash guarding access to the bill, if any.
	PasscodeHash string

	// CreatedAt and UpdatedAt are Unix timestamps maintained by the store.
	CreatedAt int64
	UpdatedAt int64

	currency     money.Currency
	participants []string
	items        []Item
}

// Item is one purchased line on a bill.
type Item struct {
	// ID is the unique, immutable identifier for the item (UUID format).
	ID string

	// Name is what was bought (e.g., "Pizza").
	Name string

	// Price is the item cost in minor units. Always positive.
	Price money.Money

	// Payer is the participant who paid for the item. It may name a removed
	// participant, in which case the payment is no longer counted.
	Payer string

	// Consumers are the participants who share the item's cost.
	Consumers ConsumerSet
}

// NewItem holds the fields needed to add an item.
// An empty Consumers list shares the item among everybody currently on the bill.
type NewItem struct {
	Name      string
	Price     money.Money
	Payer     string
	Consumers []string
}

// ItemPatch holds the item fields to change; nil fields are left as they are.
// A non-nil empty Consumers resets the item to be shared by everybody who was
// present when it was added.
type ItemPatch struct {
	Name      *string
	Price     *money.Money
	Payer     *string
	Consumers *[]string
}

// NewBill returns an empty bill priced in c.
func NewBill(c money.Currency) *Bill {
	return &Bill{currency: c}
}

// Currency returns the bill's currency.
func (b *Bill) Currency() money.Currency {
	return b.currency
}

// SetCurrency changes how amounts are parsed and displayed. Item prices keep
// their decimal value; when the number of decimal places changes they are
// rescaled to the new minor unit.
func (b *Bill) SetCurrency(c money.Currency) {
	from, to := b.currency.Places(), c.Places()
	if from != to {
		for i := range b.items {
			b.items[i].Price = money.Rescale(b.items[i].Price, from, to)
		}
	}
	b.currency = c
}

// Participants returns the participant names in the order they were added.
func (b *Bill) Participants() []string {
	return slices.Clone(b.participants)
}

// HasParticipant reports whether name is a current participant.
func (b *Bill) HasParticipant(name string) bool {
	return slices.Contains(b.participants, name)
}

// Items returns copies of the bill's items in the order they were added.
func (b *Bill) Items() []Item {
	return slices.Clone(b.items)
}

// Item returns the item with the given id.
func (b *Bill) Item(id string) (Item, bool) {
	i := b.itemIndex(id)
	if i < 0 {
		return Item{}, false
	}
	return b.items[i], true
}

// AddParticipant appends name to the participant list.
func (b *Bill) AddParticipant(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidParticipant)
	}
	if b.HasParticipant(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateParticipant, name)
	}
	b.participants = append(b.participants, name)
	return nil
}

// RemoveParticipant drops name from the bill and from every explicitly chosen
// consumer set. Creation-time snapshots and payers are left untouched, so
// shares and payments referencing name stop counting rather than moving to
// somebody else.
func (b *Bill) RemoveParticipant(name string) error {
	if !b.HasParticipant(name) {
		return fmt.Errorf("%w: %s", ErrParticipantNotFound, name)
	}
	b.participants = slices.DeleteFunc(b.participants, func(p string) bool {
		return p == name
	})
	for i := range b.items {
		b.items[i].Consumers = b.items[i].Consumers.without(name)
	}
	return nil
}

// AddItem validates in and appends it, snapshotting the current participants.
func (b *Bill) AddItem(in NewItem) (Item, error) {
	if err := b.validateItem(in.Name, in.Price, in.Payer, in.Consumers); err != nil {
		return Item{}, err
	}

	snapshot := b.Participants()
	consumers := AllAtCreation(snapshot)
	if len(in.Consumers) > 0 {
		consumers = Explicit(snapshot, in.Consumers)
	}

	item := Item{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Price:     in.Price,
		Payer:     in.Payer,
		Consumers: consumers,
	}
	b.items = append(b.items, item)
	return item, nil
}

// EditItem merges patch into the item with the given id. Every changed field
// is validated the same way AddItem validates it.
func (b *Bill) EditItem(id string, patch ItemPatch) (Item, error) {
	i := b.itemIndex(id)
	if i < 0 {
		return Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	item := b.items[i]

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return Item{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidItem)
		}
		item.Name = *patch.Name
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return Item{}, fmt.Errorf("%w: price must be greater than 0", ErrInvalidItem)
		}
		item.Price = *patch.Price
	}
	if patch.Payer != nil {
		if !b.HasParticipant(*patch.Payer) {
			return Item{}, fmt.Errorf("%w: payer %q is not a participant", ErrInvalidItem, *patch.Payer)
		}
		item.Payer = *patch.Payer
	}
	if patch.Consumers != nil {
		names := *patch.Consumers
		if len(names) == 0 {
			item.Consumers = AllAtCreation(item.Consumers.AtCreation())
		} else {
			if err := b.validateConsumers(names); err != nil {
				return Item{}, err
			}
			item.Consumers = Explicit(item.Consumers.AtCreation(), names)
		}
	}

	b.items[i] = item
	return item, nil
}

// RemoveItem deletes the item with the given id.
func (b *Bill) RemoveItem(id string) error {
	i := b.itemIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	b.items = slices.Delete(b.items, i, i+1)
	return nil
}

// Clear removes every participant and item, keeping the currency.
func (b *Bill) Clear() {
	b.participants = nil
	b.items = nil
}

func (b *Bill) itemIndex(id string) int {
	return slices.IndexFunc(b.items, func(it Item) bool {
		return it.ID == id
	})
}

func (b *Bill) validateItem(name string, price money.Money, payer string, consumers []string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidItem)
	}
	if price <= 0 {
		return fmt.Errorf("%w: price must be greater than 0", ErrInvalidItem)
	}
	if !b.HasParticipant(payer) {
		return fmt.Errorf("%w: payer %q is not a participant", ErrInvalidItem, payer)
	}
	if len(consumers) > 0 {
		return b.validateConsumers(consumers)
	}
	return nil
}

func (b *Bill) validateConsumers(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !b.HasParticipant(n) {
			return fmt.Errorf("%w: consumer %q is not a participant", ErrInvalidItem, n)
		}
		if seen[n] {
			return fmt.Errorf("%w: consumer %q listed twice", ErrInvalidItem, n)
		}
		seen[n] = true
	}
	return nil
}
