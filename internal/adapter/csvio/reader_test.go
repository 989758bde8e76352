package csvio

import (
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/paybatch/internal/domain"
)

func readAll(t *testing.T, input string) ([]domain.Transaction, error) {
	t.Helper()

	r := NewReader(strings.NewReader(input))

	var out []domain.Transaction
	for {
		tx, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, tx)
	}
}

func TestReader_Basic(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,5.0\n" +
		"withdrawal,1,2,3.0\n" +
		"dispute,1,1,\n" +
		"resolve,1,1,\n" +
		"chargeback,1,1,\n"

	txs, err := readAll(t, input)
	require.NoError(t, err)
	require.Len(t, txs, 5)

	assert.Equal(t, domain.KindDeposit, txs[0].Kind)
	assert.Equal(t, uint16(1), txs[0].ClientID)
	assert.Equal(t, uint32(1), txs[0].TxID)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("5.0")))

	assert.Equal(t, domain.KindWithdrawal, txs[1].Kind)
	assert.Equal(t, domain.KindDispute, txs[2].Kind)
	assert.True(t, txs[2].Amount.IsZero(), "dispute rows carry no amount")
	assert.Equal(t, domain.KindResolve, txs[3].Kind)
	assert.Equal(t, domain.KindChargeback, txs[4].Kind)
}

func TestReader_HeaderOrderIndependent(t *testing.T) {
	input := "amount,tx,client,type\n" +
		"7.5,42,9,deposit\n"

	txs, err := readAll(t, input)
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, uint16(9), txs[0].ClientID)
	assert.Equal(t, uint32(42), txs[0].TxID)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("7.5")))
}

func TestReader_TrimsWhitespace(t *testing.T) {
	input := "type, client, tx, amount\n" +
		"deposit, 1, 1, 5.0\n"

	txs, err := readAll(t, input)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("5.0")))
}

func TestReader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "unknown kind",
			input:   "type,client,tx,amount\nrefund,1,1,5.0\n",
			wantErr: domain.ErrUnknownTxKind,
		},
		{
			name:    "missing amount on deposit",
			input:   "type,client,tx,amount\ndeposit,1,1,\n",
			wantErr: domain.ErrAmountRequired,
		},
		{
			name:  "client out of range",
			input: "type,client,tx,amount\ndeposit,70000,1,5.0\n",
		},
		{
			name:  "tx not a number",
			input: "type,client,tx,amount\ndeposit,1,abc,5.0\n",
		},
		{
			name:  "amount not a number",
			input: "type,client,tx,amount\ndeposit,1,1,five\n",
		},
		{
			name:  "missing required column",
			input: "type,client,amount\ndeposit,1,5.0\n",
		},
		{
			name:  "ragged row",
			input: "type,client,tx,amount\ndeposit,1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readAll(t, tt.input)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestReader_EmptyInputAfterHeader(t *testing.T) {
	txs, err := readAll(t, "type,client,tx,amount\n")
	require.NoError(t, err)
	assert.Empty(t, txs)
}
