package unify

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/agentstation/dataunifier/pkg/errors"
	"github.com/agentstation/dataunifier/pkg/fields"
	"github.com/agentstation/dataunifier/pkg/money"
	"github.com/agentstation/dataunifier/pkg/typed"
)

// ValidTransactionTypes are the accepted transaction_type values after
// lower-casing.
var ValidTransactionTypes = []string{"add", "remove"}

type readingDateHandler struct{}

func (readingDateHandler) ID() HandlerID { return ReadingDate }

func (h readingDateHandler) Apply(source string, row *typed.Row) []Contribution {
	v, _ := row.Get(source)
	if p, ok := v.AsTime(); ok {
		return []Contribution{emit(fields.ReadingDate, source, h.ID(), typed.Time(p))}
	}
	return []Contribution{fallback(fields.ReadingDate, source, h.ID(), v, notConverted(source, v, fields.KindTimestamp))}
}

type transactionTypeHandler struct{}

func (transactionTypeHandler) ID() HandlerID { return TransactionType }

func (h transactionTypeHandler) Apply(source string, row *typed.Row) []Contribution {
	v, _ := row.Get(source)
	text, ok := v.Text()
	if !ok {
		return []Contribution{fallback(fields.TransactionType, source, h.ID(), v, notConverted(source, v, fields.KindString))}
	}

	value := strings.ToLower(text)
	c := emit(fields.TransactionType, source, h.ID(), typed.String(value))
	if !isValidTransactionType(value) {
		c.Warning = pkgerrors.NewValidationError(fields.TransactionType, value,
			"expected one of "+strings.Join(ValidTransactionTypes, ", "))
	}
	return []Contribution{c}
}

func isValidTransactionType(s string) bool {
	for _, t := range ValidTransactionTypes {
		if s == t {
			return true
		}
	}
	return false
}

// amountHandler produces the merged, quantized amount. Euro and cents sources
// both derive it from the pair as a whole, so the result does not depend on
// which column comes first.
type amountHandler struct{}

func (amountHandler) ID() HandlerID { return Amount }

func (h amountHandler) Apply(source string, row *typed.Row) []Contribution {
	if source == fields.Euro || source == fields.Cents {
		return []Contribution{h.pair(source, row)}
	}

	v, _ := row.Get(source)
	d, ok := v.AsDecimal()
	if !ok {
		return []Contribution{fallback(fields.AmountTarget, source, h.ID(), v, notConverted(source, v, fields.KindMoney))}
	}
	return []Contribution{emit(fields.AmountTarget, source, h.ID(), typed.Decimal(money.Quantize(d)))}
}

// pair combines the euro and cents parts of row. Absent or blank parts count
// as zero. A part that does not convert makes the amount fall back to that
// part's raw value, checking euro before cents.
func (h amountHandler) pair(source string, row *typed.Row) Contribution {
	euro, euroSet, err := moneyPart(row, fields.Euro)
	if err != nil {
		v, _ := row.Get(fields.Euro)
		return fallback(fields.AmountTarget, source, h.ID(), v, err)
	}
	cents, centsSet, err := moneyPart(row, fields.Cents)
	if err != nil {
		v, _ := row.Get(fields.Cents)
		return fallback(fields.AmountTarget, source, h.ID(), v, err)
	}
	if !euroSet && !centsSet {
		name := fields.Euro
		if !row.Has(name) {
			name = fields.Cents
		}
		v, _ := row.Get(name)
		return fallback(fields.AmountTarget, source, h.ID(), v, notConverted(name, v, fields.KindMoney))
	}
	return emit(fields.AmountTarget, source, h.ID(), typed.Decimal(money.Combine(euro, cents)))
}

// moneyPart reads one half of a euro/cents pair. set is false when the field
// is absent or blank.
func moneyPart(row *typed.Row, name string) (decimal.Decimal, bool, error) {
	v, present := row.Get(name)
	if !present {
		return decimal.Zero, false, nil
	}
	if d, ok := v.AsDecimal(); ok {
		return d, true, nil
	}
	if err := notConverted(name, v, fields.KindMoney); !errors.Is(err, pkgerrors.ErrBlank) {
		return decimal.Zero, false, err
	}
	return decimal.Zero, false, nil
}

type euroHandler struct{}

func (euroHandler) ID() HandlerID { return Euro }

func (h euroHandler) Apply(source string, row *typed.Row) []Contribution {
	v, _ := row.Get(source)
	d, ok := v.AsDecimal()
	if !ok {
		return []Contribution{fallback(fields.EuroTarget, source, h.ID(), v, notConverted(source, v, fields.KindMoney))}
	}
	return []Contribution{emit(fields.EuroTarget, source, h.ID(), typed.Decimal(money.Whole(d)))}
}

// centsHandler splits the fraction off an amount source, or copies a direct
// cents value unchanged.
type centsHandler struct{}

func (centsHandler) ID() HandlerID { return Cents }

func (h centsHandler) Apply(source string, row *typed.Row) []Contribution {
	v, _ := row.Get(source)
	d, ok := v.AsDecimal()
	if !ok {
		return []Contribution{fallback(fields.CentsTarget, source, h.ID(), v, notConverted(source, v, fields.KindMoney))}
	}
	if strings.Contains(source, fields.Amount) {
		return []Contribution{emit(fields.CentsTarget, source, h.ID(), typed.Decimal(money.Fraction(d)))}
	}
	return []Contribution{emit(fields.CentsTarget, source, h.ID(), typed.Decimal(d))}
}

// passFieldHandler copies a value unchanged under its own name.
type passFieldHandler struct{}

func (passFieldHandler) ID() HandlerID { return PassField }

func (h passFieldHandler) Apply(source string, row *typed.Row) []Contribution {
	v, _ := row.Get(source)
	return []Contribution{emit(source, source, h.ID(), v)}
}

func emit(target, source string, id HandlerID, v typed.Value) Contribution {
	return Contribution{Target: target, Source: source, Handler: id, Value: v}
}

func fallback(target, source string, id HandlerID, v typed.Value, err error) Contribution {
	return Contribution{
		Target:   target,
		Source:   source,
		Handler:  id,
		Value:    v,
		Fallback: true,
		Err:      err,
	}
}

// notConverted explains why v is not of the kind a handler needs.
func notConverted(field string, v typed.Value, want fields.Kind) error {
	text := v.String()
	if v.IsRaw() && strings.TrimSpace(text) == "" {
		return pkgerrors.NewConversionError(field, text, want.String(), pkgerrors.ErrBlank)
	}
	return pkgerrors.NewConversionError(field, text, want.String(), nil)
}
