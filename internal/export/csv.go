// Package export renders settlement plans for external consumers.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/nkhare/settleup/internal/calculator"
)

// WriteTransfersCSV writes a settlement plan as spreadsheet-friendly CSV:
// a header row, then one transfer per row with the amount formatted to
// two decimals.
func WriteTransfersCSV(w io.Writer, transfers []calculator.Transfer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"from", "to", "amount"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, t := range transfers {
		row := []string{t.FromName, t.ToName, fmt.Sprintf("%.2f", t.Amount)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
