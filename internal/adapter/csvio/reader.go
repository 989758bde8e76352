// Package csvio adapts CSV files to the engine's transaction source and
// account sink interfaces.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/paybatch/internal/domain"
)

// Reader is a lazy, forward-only transaction source over a CSV stream.
// Column order is taken from the header row; names are case-sensitive.
type Reader struct {
	csv *csv.Reader
	col map[string]int
	row int
}

// NewReader creates a Reader over r. The header row is consumed on the
// first call to Next.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	return &Reader{csv: cr}
}

// Next returns the next transaction record, or io.EOF at end of input.
// Any malformed row is a decode error and fatal to the run.
func (r *Reader) Next() (domain.Transaction, error) {
	if r.col == nil {
		if err := r.readHeader(); err != nil {
			return domain.Transaction{}, err
		}
	}

	rec, err := r.csv.Read()
	if err == io.EOF {
		return domain.Transaction{}, io.EOF
	}
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("read row %d: %w", r.row+1, err)
	}
	r.row++

	kind, err := domain.ParseTxKind(field(rec, r.col, "type"))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("row %d: %w", r.row, err)
	}

	client, err := strconv.ParseUint(field(rec, r.col, "client"), 10, 16)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("row %d: parse client: %w", r.row, err)
	}

	txID, err := strconv.ParseUint(field(rec, r.col, "tx"), 10, 32)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("row %d: parse tx: %w", r.row, err)
	}

	tx := domain.Transaction{
		Kind:     kind,
		ClientID: uint16(client),
		TxID:     uint32(txID),
		Amount:   decimal.Zero,
	}

	// dispute, resolve and chargeback reuse the referenced transaction's
	// amount; whatever is in their amount field is ignored
	if kind.Funded() {
		raw := field(rec, r.col, "amount")
		if raw == "" {
			return domain.Transaction{}, fmt.Errorf("row %d: %w for %s tx %d", r.row, domain.ErrAmountRequired, kind, txID)
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("row %d: parse amount: %w", r.row, err)
		}
		tx.Amount = amount
	}

	return tx, nil
}

func (r *Reader) readHeader() error {
	headers, err := r.csv.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(headers))
	for i, h := range headers {
		col[strings.TrimSpace(h)] = i
	}

	for _, required := range []string{"type", "client", "tx"} {
		if _, ok := col[required]; !ok {
			return fmt.Errorf("missing column: %s", required)
		}
	}

	r.col = col
	return nil
}

func field(rec []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
