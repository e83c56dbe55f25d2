package unify

import (
	"github.com/agentstation/dataunifier/pkg/fields"
)

// Entry routes one source field to its ordered handlers.
type Entry struct {
	Source   string      `json:"source" yaml:"source"`
	Handlers []HandlerID `json:"handlers" yaml:"handlers"`
}

// defaultTable is the declared routing table. Its order fixes the order of
// the canonical header.
var defaultTable = []Entry{
	{fields.Timestamp, []HandlerID{ReadingDate}},
	{fields.Date, []HandlerID{ReadingDate}},
	{fields.DateReadable, []HandlerID{ReadingDate}},
	{fields.Type, []HandlerID{TransactionType}},
	{fields.Transaction, []HandlerID{TransactionType}},
	{fields.Amount, []HandlerID{Amount, Euro, Cents}},
	{fields.Amounts, []HandlerID{Amount, Euro, Cents}},
	{fields.Euro, []HandlerID{Amount, Euro}},
	{fields.Cents, []HandlerID{Amount, Cents}},
	{fields.To, []HandlerID{PassField}},
	{fields.From, []HandlerID{PassField}},
}

// targets declares the canonical target of every handler. PassField has no
// fixed target: it writes under the source name.
var targets = map[HandlerID]fields.Target{
	ReadingDate:     fields.ReadingDate,
	TransactionType: fields.TransactionType,
	Amount:          fields.AmountTarget,
	Euro:            fields.EuroTarget,
	Cents:           fields.CentsTarget,
}

// Registry resolves source fields to handler implementations.
type Registry struct {
	entries  []Entry
	bySource map[string][]HandlerID
	handlers map[HandlerID]Handler
}

// DefaultRegistry returns the registry for the recognized field vocabulary.
func DefaultRegistry() *Registry {
	r := &Registry{
		entries:  defaultTable,
		bySource: make(map[string][]HandlerID, len(defaultTable)),
		handlers: map[HandlerID]Handler{
			ReadingDate:     readingDateHandler{},
			TransactionType: transactionTypeHandler{},
			Amount:          amountHandler{},
			Euro:            euroHandler{},
			Cents:           centsHandler{},
			PassField:       passFieldHandler{},
		},
	}
	for _, e := range r.entries {
		r.bySource[e.Source] = e.Handlers
	}
	return r
}

// Replace returns a copy of r in which the implementation registered under
// h.ID() is h.
func (r *Registry) Replace(h Handler) *Registry {
	cp := &Registry{
		entries:  r.entries,
		bySource: r.bySource,
		handlers: make(map[HandlerID]Handler, len(r.handlers)),
	}
	for id, impl := range r.handlers {
		cp.handlers[id] = impl
	}
	cp.handlers[h.ID()] = h
	return cp
}

// Entries returns the routing table in declaration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// HandlerIDs returns the handlers routed for source. Unrecognized sources
// route to PassField.
func (r *Registry) HandlerIDs(source string) []HandlerID {
	if ids, ok := r.bySource[source]; ok {
		return ids
	}
	return []HandlerID{PassField}
}

// Handlers returns the handler implementations routed for source.
func (r *Registry) Handlers(source string) []Handler {
	ids := r.HandlerIDs(source)
	out := make([]Handler, 0, len(ids))
	for _, id := range ids {
		if h, ok := r.handlers[id]; ok {
			out = append(out, h)
		}
	}
	return out
}

// Target returns the column a handler writes when applied to source.
func (r *Registry) Target(id HandlerID, source string) string {
	if t, ok := targets[id]; ok {
		return t
	}
	return source
}

// Header derives the canonical header from the routing table: a pass-only
// source contributes its own name, any other source contributes each of its
// handlers' targets the first time they appear.
func (r *Registry) Header() []string {
	var header []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			header = append(header, name)
		}
	}

	for _, e := range r.entries {
		if len(e.Handlers) == 1 && e.Handlers[0] == PassField {
			add(e.Source)
			continue
		}
		for _, id := range e.Handlers {
			add(r.Target(id, e.Source))
		}
	}
	return header
}
