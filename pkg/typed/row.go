package typed

// Row is an ordered mapping from column name to typed value. Setting an
// existing key replaces the value and keeps its original position.
type Row struct {
	keys   []string
	values map[string]Value
}

// NewRow returns an empty row.
func NewRow() *Row {
	return &Row{values: make(map[string]Value)}
}

// Set stores v under key.
func (r *Row) Set(key string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value stored under key.
func (r *Row) Get(key string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Row) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (r *Row) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys.
func (r *Row) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Strings renders the row as plain strings.
func (r *Row) Strings() map[string]string {
	out := make(map[string]string, r.Len())
	for _, k := range r.Keys() {
		out[k] = r.values[k].String()
	}
	return out
}
