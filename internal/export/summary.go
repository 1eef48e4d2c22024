// Package export renders bills as a plain-text summary or a JSON backup.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/fairsplit/internal/calculator"
	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/internal/money"
)

var rule = strings.Repeat("=", 50)

// Summary renders a human-readable report of the bill: its items, what each
// participant consumed and paid, and who pays whom.
func Summary(bill *models.Bill, now time.Time) string {
	c := bill.Currency()
	shares := calculator.ComputeShares(bill)
	transfers := calculator.PlanSettlement(shares)

	var sb strings.Builder
	sb.WriteString("FAIRSPLIT BILL SUMMARY\n")
	fmt.Fprintf(&sb, "Date: %s\n", now.Format("Jan 2, 2006"))
	fmt.Fprintf(&sb, "Currency: %s (%s)\n", c.Name, c.Symbol)
	fmt.Fprintf(&sb, "Total Bill: %s\n", money.Format(calculator.BillTotal(bill), c))
	fmt.Fprintf(&sb, "Participants: %s\n\n", strings.Join(bill.Participants(), ", "))

	fmt.Fprintf(&sb, "ITEMS BREAKDOWN:\n%s\n", rule)
	for _, item := range bill.Items() {
		consumers := item.Consumers.Effective()
		portions := calculator.Divide(item.Price, len(consumers))
		perPerson := make([]string, len(portions))
		for i, p := range portions {
			perPerson[i] = money.Format(p, c)
		}
		fmt.Fprintf(&sb, "%s: %s\n", item.Name, money.Format(item.Price, c))
		fmt.Fprintf(&sb, "  Paid by: %s\n", item.Payer)
		fmt.Fprintf(&sb, "  Shared with: %s\n", strings.Join(consumers, ", "))
		fmt.Fprintf(&sb, "  Per person: %s\n\n", strings.Join(perPerson, ", "))
	}

	fmt.Fprintf(&sb, "SETTLEMENT SUMMARY:\n%s\n", rule)
	for _, s := range shares {
		sign := "+"
		if s.Net < 0 {
			sign = "-"
		}
		fmt.Fprintf(&sb, "%s:\n", s.Participant)
		fmt.Fprintf(&sb, "  Consumed: %s\n", money.Format(s.Consumed, c))
		fmt.Fprintf(&sb, "  Paid: %s\n", money.Format(s.Paid, c))
		fmt.Fprintf(&sb, "  Balance: %s%s\n\n", sign, money.Format(s.Net.Abs(), c))
	}

	if len(transfers) == 0 {
		sb.WriteString("All settled! No payments needed.\n")
	} else {
		fmt.Fprintf(&sb, "PAYMENT INSTRUCTIONS:\n%s\n", rule)
		for _, t := range transfers {
			fmt.Fprintf(&sb, "%s pays %s: %s\n", t.From, t.To, money.Format(t.Amount, c))
		}
	}

	sb.WriteString("\nGenerated by FairSplit - Fair bill splitting made easy")
	return sb.String()
}

// SummaryFilename is the download name for a summary produced on now.
func SummaryFilename(now time.Time) string {
	return "fairsplit-summary-" + now.UTC().Format(time.DateOnly) + ".txt"
}
