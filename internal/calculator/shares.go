package calculator

import (
	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/internal/money"
)

// ComputeShares returns how much each participant consumed and paid.
//
// Algorithm:
// - Every participant starts at zero.
// - Each item's price is divided among its effective consumers with Divide,
// in stored order, so the extra minor units always land on the same people.
// - The payer is credited with the full price.
// - net = paid - consumed
//
// Portions and payments that reference a removed participant are dropped,
// not redistributed. FindDangling reports them.
func ComputeShares(bill *models.Bill) models.Shares {
	participants := bill.Participants()
	shares := make(models.Shares, len(participants))
	index := make(map[string]int, len(participants))
	for i, p := range participants {
		shares[i] = models.Share{Participant: p}
		index[p] = i
	}

	for _, item := range bill.Items() {
		consumers := item.Consumers.Effective()
		portions := Divide(item.Price, len(consumers))
		for i, consumer := range consumers {
			if j, ok := index[consumer]; ok {
				shares[j].Consumed += portions[i]
			}
		}

		if j, ok := index[item.Payer]; ok {
			shares[j].Paid += item.Price
		}
	}

	for i := range shares {
		shares[i].Net = shares[i].Paid - shares[i].Consumed
	}
	return shares
}

// Role says how a dangling reference was used by an item.
type Role string

const (
	RoleConsumer Role = "consumer"
	RolePayer    Role = "payer"
)

// Dangling is an amount left out of the ledger because the participant it
// belongs to has been removed from the bill.
type Dangling struct {
	ItemID      string
	ItemName    string
	Participant string
	Role        Role
	Amount      money.Money
}

// FindDangling lists every portion and payment ComputeShares drops.
func FindDangling(bill *models.Bill) []Dangling {
	var dangling []Dangling
	for _, item := range bill.Items() {
		consumers := item.Consumers.Effective()
		portions := Divide(item.Price, len(consumers))
		for i, consumer := range consumers {
			if !bill.HasParticipant(consumer) {
				dangling = append(dangling, Dangling{
					ItemID:      item.ID,
					ItemName:    item.Name,
					Participant: consumer,
					Role:        RoleConsumer,
					Amount:      portions[i],
				})
			}
		}
		if !bill.HasParticipant(item.Payer) {
			dangling = append(dangling, Dangling{
				ItemID:      item.ID,
				ItemName:    item.Name,
				Participant: item.Payer,
				Role:        RolePayer,
				Amount:      item.Price,
			})
		}
	}
	return dangling
}
