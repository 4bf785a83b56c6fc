package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

type moneyJSON struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	out := moneyJSON{Amount: m.Amount}
	if m.Currency != (currency.Unit{}) {
		out.Currency = m.Currency.String()
	}

	return json.Marshal(out)
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var in moneyJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	m.Amount = in.Amount
	m.Currency = currency.Unit{}

	if in.Currency != "" {
		parsedCurrency, err := currency.ParseISO(in.Currency)
		if err != nil {
			return fmt.Errorf("currency[%s] is not valid: %w", in.Currency, err)
		}
		m.Currency = parsedCurrency
	}

	return nil
}

// Mul scales the amount by an integer quantity, keeping the currency.
func (m Money) Mul(quantity int) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(int64(quantity))),
		Currency: m.Currency,
	}
}

func (m Money) String() string {
	if m.Currency == (currency.Unit{}) {
		return m.Amount.String()
	}

	return m.Amount.StringFixed(2) + " " + m.Currency.String()
}
