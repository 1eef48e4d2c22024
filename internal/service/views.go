package service

import (
	"github.com/mmynk/fairsplit/internal/calculator"
	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/internal/money"
)

// split holds everything computed from a bill for one response.
type split struct {
	shares    models.Shares
	transfers []models.Transfer
	dangling  []calculator.Dangling
}

func computeSplit(bill *models.Bill) split {
	shares := calculator.ComputeShares(bill)
	return split{
		shares:    shares,
		transfers: calculator.PlanSettlement(shares),
		dangling:  calculator.FindDangling(bill),
	}
}

func toBillView(bill *models.Bill, sp split) *BillView {
	c := bill.Currency()
	places := c.Places()
	format := func(m money.Money) string {
		return money.FormatDecimal(m, places)
	}

	view := &BillView{
		ID:        bill.ID,
		Title:     bill.Title,
		Protected: bill.PasscodeHash != "",
		Currency: CurrencyView{
			Code:     c.Code,
			Symbol:   c.Symbol,
			Name:     c.Name,
			Decimals: places,
		},
		Participants: bill.Participants(),
		Items:        []ItemView{},
		Total:        format(calculator.BillTotal(bill)),
		Shares:       make([]ShareView, 0, len(sp.shares)),
		Transfers:    make([]TransferView, 0, len(sp.transfers)),
		CreatedAt:    bill.CreatedAt,
		UpdatedAt:    bill.UpdatedAt,
	}
	if view.Participants == nil {
		view.Participants = []string{}
	}

	for _, item := range bill.Items() {
		consumers := item.Consumers.Effective()
		portions := calculator.Divide(item.Price, len(consumers))
		iv := ItemView{
			ID:                 item.ID,
			Name:               item.Name,
			Price:              format(item.Price),
			Payer:              item.Payer,
			Explicit:           item.Consumers.IsExplicit(),
			Consumers:          consumers,
			ParticipantsAtTime: item.Consumers.AtCreation(),
			Portions:           make([]PortionView, len(portions)),
		}
		for i, p := range portions {
			iv.Portions[i] = PortionView{Participant: consumers[i], Amount: format(p)}
		}
		view.Items = append(view.Items, iv)
	}

	for _, s := range sp.shares {
		view.Shares = append(view.Shares, ShareView{
			Participant: s.Participant,
			Consumed:    format(s.Consumed),
			Paid:        format(s.Paid),
			Net:         format(s.Net),
		})
	}
	for _, t := range sp.transfers {
		view.Transfers = append(view.Transfers, TransferView{
			From:   t.From,
			To:     t.To,
			Amount: format(t.Amount),
		})
	}
	for _, d := range sp.dangling {
		view.Dangling = append(view.Dangling, DanglingView{
			ItemID:      d.ItemID,
			ItemName:    d.ItemName,
			Participant: d.Participant,
			Role:        string(d.Role),
			Amount:      format(d.Amount),
		})
	}
	return view
}
