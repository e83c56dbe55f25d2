package unify

import (
	"sort"
)

// FieldProvenance records how one target of a row got its value.
type FieldProvenance struct {
	Current Contribution   // winning contribution
	History []Contribution // overwritten contributions, oldest first
}

// Provenance tracks contributions per target for one row.
type Provenance map[string]*FieldProvenance

// track records c as the current value of its target, moving any previous
// winner into the history.
func (p Provenance) track(c Contribution) {
	fp, ok := p[c.Target]
	if !ok {
		p[c.Target] = &FieldProvenance{Current: c}
		return
	}
	fp.History = append(fp.History, fp.Current)
	fp.Current = c
}

// Targets returns the tracked targets in sorted order.
func (p Provenance) Targets() []string {
	out := make([]string, 0, len(p))
	for t := range p {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Overwritten reports whether any contribution to target was replaced.
func (p Provenance) Overwritten(target string) bool {
	fp, ok := p[target]
	return ok && len(fp.History) > 0
}
