// Command fairsplit prints the split of a saved bill without running a server.
//
// Usage:
//
//	fairsplit [-currency CODE] summary|backup|settle FILE
//
// FILE is a JSON backup or bill snapshot; "-" reads standard input.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mmynk/fairsplit/internal/calculator"
	"github.com/mmynk/fairsplit/internal/export"
	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/internal/money"
	"github.com/mmynk/fairsplit/pkg/logging"
)

func main() {
	logging.Setup()

	currency := flag.String("currency", "", "override the bill currency (e.g. USD)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: fairsplit [-currency CODE] summary|backup|settle FILE\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), flag.Arg(1), *currency, os.Stdout); err != nil {
		slog.Error("fairsplit failed", "error", err)
		os.Exit(1)
	}
}

func run(command, path, currencyCode string, out io.Writer) error {
	data, err := readInput(path)
	if err != nil {
		return err
	}

	bill := loadBill(data)
	if currencyCode != "" {
		c, ok := money.LookupCurrency(currencyCode)
		if !ok {
			return fmt.Errorf("unknown currency %q", currencyCode)
		}
		bill.SetCurrency(c)
	}

	now := time.Now()
	switch command {
	case "summary":
		_, err = fmt.Fprintln(out, export.Summary(bill, now))
	case "backup":
		err = export.WriteBackup(out, bill, now)
	case "settle":
		err = printTransfers(out, bill)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return err
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// loadBill parses a saved bill. A corrupt file is reported and replaced by an
// empty bill, the same way a damaged saved session is discarded.
func loadBill(data []byte) *models.Bill {
	bill, err := export.ReadBackup(bytes.NewReader(data))
	if err != nil {
		slog.Warn("Saved bill is corrupt, starting from an empty bill", "error", err)
		return models.NewBill(money.DefaultCurrency())
	}
	return bill
}

func printTransfers(out io.Writer, bill *models.Bill) error {
	c := bill.Currency()
	transfers := calculator.PlanSettlement(calculator.ComputeShares(bill))
	if len(transfers) == 0 {
		_, err := fmt.Fprintln(out, "All settled! No payments needed.")
		return err
	}
	for _, t := range transfers {
		if _, err := fmt.Fprintf(out, "%s pays %s: %s\n", t.From, t.To, money.Format(t.Amount, c)); err != nil {
			return err
		}
	}
	return nil
}
