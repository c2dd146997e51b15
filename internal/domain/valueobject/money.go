package valueobject

import (
	"fmt"
	"strings"

	"github.com/jhoicas/suscripciones-api/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency moneda usada cuando no se indica ninguna.
const DefaultCurrency = "USD"

// maxAmount límite exclusivo de NUMERIC(12, 2).
var maxAmount = decimal.New(1, 10)

// Money monto no negativo en una moneda ISO-4217.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney construye un monto con a lo sumo dos decimales. Moneda vacía = USD; se normaliza a mayúsculas.
func NewMoney(amount decimal.Decimal, code string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, domain.ErrNegativeAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return Money{}, domain.ErrAmountScale
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return Money{}, domain.ErrAmountTooLarge
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Money{}, domain.ErrInvalidCurrency
	}
	return Money{amount: amount, currency: unit.String()}, nil
}

// Amount monto decimal.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency código ISO en mayúsculas.
func (m Money) Currency() string { return m.currency }

// Equals compara monto y moneda.
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount) && m.currency == other.currency
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency, m.amount.StringFixed(2))
}
