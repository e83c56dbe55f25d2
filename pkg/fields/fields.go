// Package fields defines the fixed source-field vocabulary understood by the
// unifier and the canonical target fields it produces.
package fields

// Source is the name of a column found in an input file header.
type Source = string

// Target is the name of a column in the unified output.
type Target = string

// Recognized source fields. Matching is case-sensitive and exact.
const (
	Timestamp    Source = "timestamp"
	Date         Source = "date"
	DateReadable Source = "date_readable"
	Type         Source = "type"
	Transaction  Source = "transaction"
	Amount       Source = "amount"
	Amounts      Source = "amounts"
	Euro         Source = "euro"
	Cents        Source = "cents"
	From         Source = "from"
	To           Source = "to"
)

// Canonical targets produced by the reconciliation handlers.
const (
	ReadingDate     Target = "reading_date"
	TransactionType Target = "transaction_type"
	AmountTarget    Target = "amount"
	EuroTarget      Target = "euro"
	CentsTarget     Target = "cents"
)

// Kind is the declared value type of a source field.
type Kind int

// Declared kinds.
const (
	// KindUnknown marks a header outside the vocabulary; its cells stay strings.
	KindUnknown Kind = iota
	KindTimestamp
	KindMoney
	KindString
	KindInteger
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTimestamp:
		return "timestamp"
	case KindMoney:
		return "money-decimal"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	default:
		return "unknown"
	}
}

var kinds = map[Source]Kind{
	Timestamp:    KindTimestamp,
	Date:         KindTimestamp,
	DateReadable: KindTimestamp,
	Type:         KindString,
	Transaction:  KindString,
	Amount:       KindMoney,
	Amounts:      KindMoney,
	Euro:         KindMoney,
	Cents:        KindMoney,
	From:         KindInteger,
	To:           KindInteger,
}

// Vocabulary lists the recognized source fields in declaration order.
var Vocabulary = []Source{
	Timestamp, Date, DateReadable,
	Type, Transaction,
	Amount, Amounts, Euro, Cents,
	From, To,
}

// KindOf returns the declared kind of a source field, or KindUnknown.
func KindOf(name Source) Kind {
	return kinds[name]
}

// IsRecognized reports whether name belongs to the vocabulary.
func IsRecognized(name Source) bool {
	_, ok := kinds[name]
	return ok
}
