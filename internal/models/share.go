package models

import "github.com/mmynk/fairsplit/internal/money"

// Share is one participant's position on a bill.
// This is the output of the split calculation and is never stored.
type Share struct {
	Participant string

	// Consumed is the participant's portion of every item they share.
	Consumed money.Money

	// Paid is the full price of every item the participant paid for.
	Paid money.Money

	// Net is Paid - Consumed. Positive = owed money, negative = owes money.
	Net money.Money
}

// Shares lists participant shares in participant-list order.
type Shares []Share

// Lookup returns the share of the named participant.
func (s Shares) Lookup(name string) (Share, bool) {
	for _, sh := range s {
		if sh.Participant == name {
			return sh, true
		}
	}
	return Share{}, false
}

// Transfer is a recommended payment that moves a debtor toward zero.
type Transfer struct {
	// From is the participant who pays (debtor).
	From string

	// To is the participant who receives (creditor).
	To string

	// Amount is always positive.
	Amount money.Money
}
