// Package registry holds the static allow-lists that map a resource name from
// the URL to the SQL it may run. Nothing outside these tables is ever queried.
package registry

import "sort"

type Kind string

const (
	KindTable  Kind = "table"
	KindView   Kind = "view"
	KindReport Kind = "report"
)

// Registry maps a resource name to a canned SELECT statement.
type Registry struct {
	kind    Kind
	queries map[string]string
}

func newRegistry(kind Kind, queries map[string]string) Registry {
	cp := make(map[string]string, len(queries))
	for name, stmt := range queries {
		cp[name] = stmt
	}
	return Registry{kind: kind, queries: cp}
}

func (r Registry) Kind() Kind {
	return r.kind
}

// Lookup is exact and case-sensitive.
func (r Registry) Lookup(name string) (string, bool) {
	stmt, ok := r.queries[name]
	return stmt, ok
}

func (r Registry) Names() []string {
	names := make([]string, 0, len(r.queries))
	for name := range r.queries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r Registry) Len() int {
	return len(r.queries)
}

// TableSchema lists the columns an insert must supply, in bind order.
type TableSchema struct {
	Target   string
	Required []string
}

// Schema maps a table resource name to its insert schema. It is declared by
// hand and is not checked against the live database.
type Schema struct {
	tables map[string]TableSchema
}

func (s Schema) Lookup(name string) (TableSchema, bool) {
	ts, ok := s.tables[name]
	if !ok {
		return TableSchema{}, false
	}
	ts.Required = append([]string(nil), ts.Required...)
	return ts, true
}

func (s Schema) Names() []string {
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Missing returns the required fields absent from body, in schema order.
func (ts TableSchema) Missing(body map[string]any) []string {
	missing := make([]string, 0)
	for _, field := range ts.Required {
		if _, ok := body[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// Values pulls the bind values from body in schema order.
func (ts TableSchema) Values(body map[string]any) []any {
	vals := make([]any, 0, len(ts.Required))
	for _, field := range ts.Required {
		vals = append(vals, body[field])
	}
	return vals
}
