package unify

import (
	"github.com/agentstation/dataunifier/pkg/typed"
)

// HandlerID names a reconciliation behavior.
type HandlerID string

// Handler identifiers. Their targets are declared in the targets table.
const (
	ReadingDate     HandlerID = "readingDate"
	TransactionType HandlerID = "transactionType"
	Amount          HandlerID = "amount"
	Euro            HandlerID = "euro"
	Cents           HandlerID = "cents"
	PassField       HandlerID = "passField"
)

// Contribution is one value a handler produced for one target.
type Contribution struct {
	Target  string
	Source  string
	Handler HandlerID
	Value   typed.Value
	// Fallback is true when Value is the raw source value substituted after
	// a failure; Err then holds the cause.
	Fallback bool
	Err      error
	// Warning carries an advisory validation failure. The value is still
	// emitted.
	Warning error
}

// Handler derives canonical values from one source field of a row. It may
// read other fields of the row as companions. Handlers never fail: problems
// are reported on the returned contributions.
type Handler interface {
	ID() HandlerID
	Apply(source string, row *typed.Row) []Contribution
}
