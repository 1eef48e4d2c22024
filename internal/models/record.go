package models

import (
	"github.com/google/uuid"

	"github.com/mmynk/fairsplit/internal/money"
)

// BillRecord is the plain, persisted shape of a bill.
// Prices are decimal amounts, not minor units.
type BillRecord struct {
	Participants []string       `json:"participants"`
	Items        []ItemRecord   `json:"items"`
	Currency     CurrencyRecord `json:"currency"`
}

// ItemRecord is the persisted shape of an item. An empty AssignedTo means the
// item is shared by ParticipantsAtTime.
type ItemRecord struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Price              float64  `json:"price"`
	AssignedTo         []string `json:"assignedTo"`
	PaidBy             string   `json:"paidBy"`
	ParticipantsAtTime []string `json:"participantsAtTime"`
}

// CurrencyRecord is the persisted shape of a currency.
type CurrencyRecord struct {
	Code     string `json:"code"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals *int32 `json:"decimals,omitempty"`
}

// ToRecord converts b to its persisted shape.
func ToRecord(b *Bill) BillRecord {
	places := b.currency.Places()
	decimals := places

	rec := BillRecord{
		Participants: nonNil(b.Participants()),
		Items:        make([]ItemRecord, 0, len(b.items)),
		Currency: CurrencyRecord{
			Code:     b.currency.Code,
			Symbol:   b.currency.Symbol,
			Name:     b.currency.Name,
			Decimals: &decimals,
		},
	}
	for _, it := range b.items {
		rec.Items = append(rec.Items, ItemRecord{
			ID:                 it.ID,
			Name:               it.Name,
			Price:              it.Price.Float64(places),
			AssignedTo:         nonNil(it.Consumers.Chosen()),
			PaidBy:             it.Payer,
			ParticipantsAtTime: nonNil(it.Consumers.AtCreation()),
		})
	}
	return rec
}

// FromRecord rebuilds a bill from its persisted shape. Every price is passed
// through money.NormalizeAmount to repair floating-point artifacts written by
// older clients. Loading is lenient: duplicate participants are collapsed,
// missing item ids are generated and items without a creation snapshot fall
// back to the bill's participants.
func FromRecord(rec BillRecord) *Bill {
	b := NewBill(currencyFromRecord(rec.Currency))
	places := b.currency.Places()

	for _, p := range rec.Participants {
		if !b.HasParticipant(p) {
			b.participants = append(b.participants, p)
		}
	}

	for _, ir := range rec.Items {
		id := ir.ID
		if id == "" {
			id = uuid.New().String()
		}
		snapshot := ir.ParticipantsAtTime
		if snapshot == nil {
			snapshot = b.participants
		}
		consumers := AllAtCreation(snapshot)
		if len(ir.AssignedTo) > 0 {
			consumers = Explicit(snapshot, ir.AssignedTo)
		}

		price := money.ToMinorUnits(money.NormalizeAmount(ir.Price, places), places)
		b.items = append(b.items, Item{
			ID:        id,
			Name:      ir.Name,
			Price:     price,
			Payer:     ir.PaidBy,
			Consumers: consumers,
		})
	}
	return b
}

func currencyFromRecord(cr CurrencyRecord) money.Currency {
	if c, ok := money.LookupCurrency(cr.Code); ok {
		return c
	}
	if cr.Code == "" {
		return money.DefaultCurrency()
	}
	c := money.Currency{Code: cr.Code, Symbol: cr.Symbol, Name: cr.Name}
	if cr.Decimals != nil {
		c.Decimals = *cr.Decimals
	}
	c.Decimals = c.Places()
	return c
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
