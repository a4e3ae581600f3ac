// Package querybuilder assembles the small set of parameterized statements the
// document store needs. Fragments carry '?' placeholders internally and are
// renumbered to postgres $n placeholders when the statement is rendered.
package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Condition is a SQL fragment plus the arguments bound to its placeholders.
type Condition struct {
	expr string
	args []any
}

func Eq(column string, value any) Condition {
	return Condition{expr: column + " = ?", args: []any{value}}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, errors.New("querybuilder: select needs columns")
	}
	if b.table == "" {
		return "", nil, errors.New("querybuilder: select needs a table")
	}

	var st statement
	st.raw("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	st.whereAll(b.where)
	if len(b.orderBy) > 0 {
		st.raw(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	return st.render()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = columns
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, values)
	return b
}

// Suffix appends raw SQL after the VALUES clause, for ON CONFLICT upserts and
// RETURNING clauses.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, errors.New("querybuilder: insert needs a table")
	}
	if len(b.columns) == 0 {
		return "", nil, errors.New("querybuilder: insert needs columns")
	}
	if len(b.rows) == 0 {
		return "", nil, errors.New("querybuilder: insert needs values")
	}

	var st statement
	st.raw("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("querybuilder: insert row %d has %d values for %d columns", i, len(row), len(b.columns))
		}
		if i > 0 {
			st.raw(", ")
		}
		st.raw("(" + strings.TrimSuffix(strings.Repeat("?, ", len(row)), ", ") + ")")
		st.bind(row...)
	}
	if b.suffix != "" {
		st.raw(" " + b.suffix)
	}
	return st.render()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, errors.New("querybuilder: delete needs a table")
	}
	if len(b.where) == 0 {
		return "", nil, errors.New("querybuilder: delete needs conditions")
	}

	var st statement
	st.raw("DELETE FROM " + b.table)
	st.whereAll(b.where)
	return st.render()
}

// statement accumulates SQL text with '?' placeholders and their arguments.
type statement struct {
	sql  strings.Builder
	args []any
}

func (st *statement) raw(sql string) {
	st.sql.WriteString(sql)
}

func (st *statement) bind(args ...any) {
	st.args = append(st.args, args...)
}

func (st *statement) whereAll(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			st.raw(" WHERE ")
		} else {
			st.raw(" AND ")
		}
		st.raw(c.expr)
		st.bind(c.args...)
	}
}

// render renumbers '?' placeholders to $1..$n and checks that the argument
// count matches.
func (st *statement) render() (string, []any, error) {
	sql := st.sql.String()
	var out strings.Builder
	out.Grow(len(sql) + len(st.args)*2)

	n := 0
	for {
		i := strings.IndexByte(sql, '?')
		if i < 0 {
			out.WriteString(sql)
			break
		}
		out.WriteString(sql[:i])
		n++
		out.WriteString("$" + strconv.Itoa(n))
		sql = sql[i+1:]
	}
	if n != len(st.args) {
		return "", nil, fmt.Errorf("querybuilder: %d placeholders for %d arguments", n, len(st.args))
	}
	return out.String(), st.args, nil
}
