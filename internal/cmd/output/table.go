package output

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Align is the alignment of a table column.
type Align int

// Column alignments. AlignDefault leaves the tablewriter default.
const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

var twAlign = map[Align]tw.Align{
	AlignLeft:   tw.AlignLeft,
	AlignCenter: tw.AlignCenter,
	AlignRight:  tw.AlignRight,
}

// Data is a rendered table. ColumnAlignment is optional, one per column.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

func (d Data) render(w io.Writer) error {
	var cfg tablewriter.Config
	if len(d.ColumnAlignment) > 0 {
		per := make([]tw.Align, len(d.ColumnAlignment))
		for i, a := range d.ColumnAlignment {
			if v, ok := twAlign[a]; ok {
				per[i] = v
			} else {
				per[i] = tw.Skip
			}
		}
		cfg.Header.Alignment = tw.CellAlignment{PerColumn: per}
		cfg.Row.Alignment = tw.CellAlignment{PerColumn: per}
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(cfg))
	if len(d.Headers) > 0 {
		table.Header(cells(d.Headers)...)
	}
	for _, row := range d.Rows {
		if err := table.Append(cells(row)...); err != nil {
			return err
		}
	}
	return table.Render()
}

func cells(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// tableOf lays out a struct as a Property/Value table and a slice of structs
// as one row per element. Nested struct slices are left out; they are
// printed separately in wide output. Other values return nil.
func tableOf(data any) *Data {
	v := deref(reflect.ValueOf(data))
	switch {
	case v.Kind() == reflect.Struct:
		d := &Data{Headers: []string{"Property", "Value"}}
		for _, i := range columns(v.Type()) {
			d.Rows = append(d.Rows, []string{heading(v.Type().Field(i)), cell(v.Field(i))})
		}
		return d
	case v.Kind() == reflect.Slice && v.Len() > 0 && deref(v.Index(0)).Kind() == reflect.Struct:
		typ := deref(v.Index(0)).Type()
		cols := columns(typ)
		d := &Data{}
		for _, i := range cols {
			d.Headers = append(d.Headers, heading(typ.Field(i)))
		}
		for n := 0; n < v.Len(); n++ {
			elem := deref(v.Index(n))
			row := make([]string, 0, len(cols))
			for _, i := range cols {
				row = append(row, cell(elem.Field(i)))
			}
			d.Rows = append(d.Rows, row)
		}
		return d
	}
	return nil
}

func deref(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

// columns returns the indexes of the exported, non struct-slice fields.
func columns(t reflect.Type) []int {
	var out []int
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Type.Kind() == reflect.Slice {
			elem := f.Type.Elem()
			if elem.Kind() == reflect.Pointer {
				elem = elem.Elem()
			}
			if elem.Kind() == reflect.Struct {
				continue
			}
		}
		out = append(out, i)
	}
	return out
}

func cell(v reflect.Value) string {
	return fmt.Sprintf("%v", v.Interface())
}

// heading names a column after the field's json tag, so handler_fallbacks
// becomes "Handler Fallbacks". Untagged fields use the Go name.
func heading(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}
