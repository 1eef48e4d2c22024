package service

import (
	"encoding/json"

	"github.com/mmynk/fairsplit/internal/models"
)

// Amounts in requests and responses are decimal strings in the bill's
// currency (e.g. "10.00"), never minor units.

type CreateBillRequest struct {
	Title        string   `json:"title"`
	CurrencyCode string   `json:"currency_code"`
	Participants []string `json:"participants"`
	Passcode     string   `json:"passcode"`
}

type OpenBillRequest struct {
	BillID   string `json:"bill_id"`
	Passcode string `json:"passcode"`
}

// ImportBillRequest creates a bill from a JSON backup.
type ImportBillRequest struct {
	Title    string          `json:"title"`
	Passcode string          `json:"passcode"`
	Backup   json.RawMessage `json:"backup"`
}

// BillTokenResponse is returned by the calls that grant access to a bill.
type BillTokenResponse struct {
	Token string    `json:"token"`
	Bill  *BillView `json:"bill"`
}

// CalculateSplitRequest computes a split without storing anything.
type CalculateSplitRequest struct {
	Bill models.BillRecord `json:"bill"`
}

type GetBillRequest struct {
	BillID string `json:"bill_id"`
}

type AddParticipantRequest struct {
	BillID string `json:"bill_id"`
	Name   string `json:"name"`
}

type RemoveParticipantRequest struct {
	BillID string `json:"bill_id"`
	Name   string `json:"name"`
}

// AddItemRequest adds an item. Price is user input and is parsed leniently.
// An empty Consumers list shares the item among everybody on the bill.
type AddItemRequest struct {
	BillID    string   `json:"bill_id"`
	Name      string   `json:"name"`
	Price     string   `json:"price"`
	Payer     string   `json:"payer"`
	Consumers []string `json:"consumers"`
}

// EditItemRequest changes the fields that are set.
type EditItemRequest struct {
	BillID    string    `json:"bill_id"`
	ItemID    string    `json:"item_id"`
	Name      *string   `json:"name,omitempty"`
	Price     *string   `json:"price,omitempty"`
	Payer     *string   `json:"payer,omitempty"`
	Consumers *[]string `json:"consumers,omitempty"`
}

type RemoveItemRequest struct {
	BillID string `json:"bill_id"`
	ItemID string `json:"item_id"`
}

// SetCurrencyRequest switches the bill's currency. Codes outside the catalog
// need a Symbol.
type SetCurrencyRequest struct {
	BillID   string `json:"bill_id"`
	Code     string `json:"code"`
	Symbol   string `json:"symbol,omitempty"`
	Name     string `json:"name,omitempty"`
	Decimals *int32 `json:"decimals,omitempty"`
}

type ClearBillRequest struct {
	BillID string `json:"bill_id"`
}

type DeleteBillRequest struct {
	BillID string `json:"bill_id"`
}

type DeleteBillResponse struct{}

type BillResponse struct {
	Bill *BillView `json:"bill"`
}

func (r *GetBillRequest) GetBillID() string           { return r.BillID }
func (r *AddParticipantRequest) GetBillID() string    { return r.BillID }
func (r *RemoveParticipantRequest) GetBillID() string { return r.BillID }
func (r *AddItemRequest) GetBillID() string           { return r.BillID }
func (r *EditItemRequest) GetBillID() string          { return r.BillID }
func (r *RemoveItemRequest) GetBillID() string        { return r.BillID }
func (r *SetCurrencyRequest) GetBillID() string       { return r.BillID }
func (r *ClearBillRequest) GetBillID() string         { return r.BillID }
func (r *DeleteBillRequest) GetBillID() string        { return r.BillID }

// BillView is a bill with its computed split.
type BillView struct {
	ID           string         `json:"id,omitempty"`
	Title        string         `json:"title,omitempty"`
	Protected    bool           `json:"protected"`
	Currency     CurrencyView   `json:"currency"`
	Participants []string       `json:"participants"`
	Items        []ItemView     `json:"items"`
	Total        string         `json:"total"`
	Shares       []ShareView    `json:"shares"`
	Transfers    []TransferView `json:"transfers"`
	Dangling     []DanglingView `json:"dangling,omitempty"`
	CreatedAt    int64          `json:"created_at,omitempty"`
	UpdatedAt    int64          `json:"updated_at,omitempty"`
}

type CurrencyView struct {
	Code     string `json:"code"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int32  `json:"decimals"`
}

// ItemView shows an item with the portion each effective consumer owes.
type ItemView struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Price              string        `json:"price"`
	Payer              string        `json:"payer"`
	Explicit           bool          `json:"explicit"`
	Consumers          []string      `json:"consumers"`
	ParticipantsAtTime []string      `json:"participants_at_time"`
	Portions           []PortionView `json:"portions"`
}

type PortionView struct {
	Participant string `json:"participant"`
	Amount      string `json:"amount"`
}

type ShareView struct {
	Participant string `json:"participant"`
	Consumed    string `json:"consumed"`
	Paid        string `json:"paid"`
	Net         string `json:"net"`
}

type TransferView struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// DanglingView is an amount left out of the split because it references a
// removed participant.
type DanglingView struct {
	ItemID      string `json:"item_id"`
	ItemName    string `json:"item_name"`
	Participant string `json:"participant"`
	Role        string `json:"role"`
	Amount      string `json:"amount"`
}
