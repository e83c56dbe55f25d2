// Package unify maps typed rows with heterogeneous source columns onto the
// canonical schema.
//
// Every source field of a row is routed through the Registry to an ordered
// list of handlers. Each handler returns contributions for one or more
// targets, which are merged into the row result with last-write-wins
// semantics in the row's natural column order. Failures never abort a row:
// the raw source value is substituted for the affected target and the
// failure is logged.
package unify

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	pkgerrors "github.com/agentstation/dataunifier/pkg/errors"
	"github.com/agentstation/dataunifier/pkg/fields"
	"github.com/agentstation/dataunifier/pkg/logging"
	"github.com/agentstation/dataunifier/pkg/typed"
)

// CanonicalRow maps target names to rendered values.
type CanonicalRow map[string]string

// Values projects the row onto header. Targets without a contribution are
// empty strings.
func (r CanonicalRow) Values(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = r[h]
	}
	return out
}

// Result is the outcome of unifying one row.
type Result struct {
	Row        CanonicalRow
	Provenance Provenance
	// Fallbacks counts contributions that substituted a raw value.
	Fallbacks int
	// Warnings counts advisory validation failures.
	Warnings int
	// Dropped lists source columns that are not part of the header.
	Dropped []string
}

// Engine unifies rows against a fixed canonical header.
type Engine struct {
	registry    *Registry
	passthrough []string
	header      []string
	inHeader    map[string]bool
	style       HeaderStyle
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry replaces the default routing registry.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithPassthrough declares unrecognized columns to keep in the output. They
// are appended to the canonical header in declaration order.
func WithPassthrough(columns ...string) Option {
	return func(e *Engine) {
		e.passthrough = append(e.passthrough, columns...)
	}
}

// WithHeaderStyle selects the header label style.
func WithHeaderStyle(style HeaderStyle) Option {
	return func(e *Engine) {
		if style != "" {
			e.style = style
		}
	}
}

// NewEngine builds an engine and derives its header once.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		registry: DefaultRegistry(),
		style:    StyleCanonical,
	}
	for _, opt := range opts {
		opt(e)
	}

	style, err := ParseHeaderStyle(string(e.style))
	if err != nil {
		return nil, err
	}
	e.style = style

	e.header = e.registry.Header()
	e.inHeader = make(map[string]bool, len(e.header)+len(e.passthrough))
	for _, h := range e.header {
		e.inHeader[h] = true
	}

	var declared []string
	for _, col := range e.passthrough {
		if col == "" {
			return nil, pkgerrors.NewConfigError("passthrough", "empty column name", nil)
		}
		if contains(declared, col) {
			continue
		}
		if fields.IsRecognized(col) || e.inHeader[col] {
			return nil, pkgerrors.NewConfigError("passthrough",
				fmt.Sprintf("column %q is part of the canonical schema", col), nil)
		}
		declared = append(declared, col)
		e.header = append(e.header, col)
		e.inHeader[col] = true
	}
	e.passthrough = declared

	return e, nil
}

// Header returns the output column keys: canonical targets followed by
// declared pass-through columns.
func (e *Engine) Header() []string {
	out := make([]string, len(e.header))
	copy(out, e.header)
	return out
}

// Labels returns the header rendered in the engine's style.
func (e *Engine) Labels() []string {
	return Labels(e.header, e.style)
}

// Style returns the header style.
func (e *Engine) Style() HeaderStyle {
	return e.style
}

// Passthrough returns the declared pass-through columns.
func (e *Engine) Passthrough() []string {
	out := make([]string, len(e.passthrough))
	copy(out, e.passthrough)
	return out
}

// Registry returns the routing registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Unify merges the contributions of every field of row.
func (e *Engine) Unify(ctx context.Context, row *typed.Row) *Result {
	logger := logging.FromContext(ctx)
	res := &Result{
		Row:        make(CanonicalRow, len(e.header)),
		Provenance: make(Provenance),
	}

	for _, source := range row.Keys() {
		for _, h := range e.registry.Handlers(source) {
			for _, c := range e.apply(h, source, row) {
				if !e.inHeader[c.Target] {
					if !contains(res.Dropped, c.Source) {
						res.Dropped = append(res.Dropped, c.Source)
						logger.Debug().Str("source", c.Source).Msg("Dropping undeclared column")
					}
					continue
				}

				if c.Err != nil {
					res.Fallbacks++
					c.Err = pkgerrors.NewHandlerError(string(c.Handler), c.Source, c.Target, c.Err)
					level := zerolog.ErrorLevel
					if errors.Is(c.Err, pkgerrors.ErrBlank) {
						level = zerolog.DebugLevel
					}
					logger.WithLevel(level).
						Err(c.Err).
						Str("source", c.Source).
						Str("target", c.Target).
						Str("value", c.Value.String()).
						Msg("Reconciliation failed, keeping raw value")
				}
				if c.Warning != nil {
					res.Warnings++
					logger.Warn().
						Err(c.Warning).
						Str("source", c.Source).
						Str("value", c.Value.String()).
						Msg("Value failed validation")
				}

				res.Row[c.Target] = c.Value.String()
				res.Provenance.track(c)
			}
		}
	}

	return res
}

// apply runs one handler, converting a panic into a fallback contribution.
func (e *Engine) apply(h Handler, source string, row *typed.Row) (out []Contribution) {
	defer func() {
		if r := recover(); r != nil {
			v, _ := row.Get(source)
			out = []Contribution{fallback(e.registry.Target(h.ID(), source), source, h.ID(), v,
				fmt.Errorf("handler panic: %v", r))}
		}
	}()
	return h.Apply(source, row)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
