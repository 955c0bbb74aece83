package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyJSON(t *testing.T) {
	var body struct {
		Amount *Money `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"amount": 25.5}`), &body))
	assert.Equal(t, "25.50", body.Amount.String())

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount": 25.50}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"amount": 0.30000000000000004}`), &body))
	assert.Equal(t, "0.30", body.Amount.String())
}

func TestMoneyRejectsOutOfRange(t *testing.T) {
	cases := []string{
		`{"amount": 1e200000000}`,
		`{"amount": -1e200000000}`,
		`{"amount": 1e-200000000}`,
		`{"amount": 10000000000}`,
		`{"amount": "-10000000000.00"}`,
	}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			var body struct {
				Amount *Money `json:"amount"`
			}
			assert.ErrorIs(t, json.Unmarshal([]byte(raw), &body), ErrMoneyRange)
		})
	}

	_, err := MoneyFromString("9e99999999")
	assert.ErrorIs(t, err, ErrMoneyRange)

	m, err := MoneyFromString("9999999999.99")
	require.NoError(t, err)
	assert.True(t, m.InRange())
	assert.False(t, MaxMoney.Add(MustMoney("0.01")).InRange())
}
