package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/iho/paybatch/internal/domain"
)

// outputScale is the number of fractional digits in rendered balances.
const outputScale = 4

// Writer renders the final account table as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteAccounts writes the header and one row per account. Balances are
// rendered with exactly four fractional digits, locked as a boolean
// literal.
func (w *Writer) WriteAccounts(accounts []*domain.Account) error {
	if err := w.csv.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}

	for _, acc := range accounts {
		row := []string{
			strconv.FormatUint(uint64(acc.ClientID), 10),
			acc.Available.StringFixed(outputScale),
			acc.Held.StringFixed(outputScale),
			acc.Total.StringFixed(outputScale),
			strconv.FormatBool(acc.Locked),
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}

	w.csv.Flush()
	return w.csv.Error()
}
