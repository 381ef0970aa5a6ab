package schema

import "github.com/user-directory/engine/internal/models"

// Fields returns the mapping table in column order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Lookup finds a field by its nested path, e.g. "company.address.city".
func Lookup(path string) (Field, bool) {
	i, ok := byPath[path]
	if !ok {
		return Field{}, false
	}
	return fields[i], true
}

// LookupColumn finds a field by its flat column name.
func LookupColumn(column string) (Field, bool) {
	i, ok := byColumn[column]
	if !ok {
		return Field{}, false
	}
	return fields[i], true
}

// ColumnFor maps a nested path to its column.
func ColumnFor(path string) (string, bool) {
	f, ok := Lookup(path)
	return f.Column, ok
}

// PathFor maps a column to its nested path.
func PathFor(column string) (string, bool) {
	f, ok := LookupColumn(column)
	return f.Path, ok
}

// MustColumn is ColumnFor for paths known at compile time.
func MustColumn(path string) string {
	c, ok := ColumnFor(path)
	if !ok {
		panic("schema: unmapped path " + path)
	}
	return c
}

// IsSensitive reports whether path must be masked before leaving the API.
func IsSensitive(path string) bool {
	f, ok := Lookup(path)
	return ok && f.Sensitive
}

// SelectColumns lists every readable column in table order.
func SelectColumns() []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if !f.WriteOnly {
			out = append(out, f.Column)
		}
	}
	return out
}

// InsertColumns lists the columns an import supplies.
func InsertColumns() []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if !f.StoreManaged {
			out = append(out, f.Column)
		}
	}
	return out
}

// Flatten turns a nested record into a storage row with one entry per column.
// Absent leaves become nil.
func Flatten(u *models.User) Row {
	row := make(Row, len(fields))
	for _, f := range fields {
		row[f.Column] = f.Get(u)
	}
	return row
}
