package db

import (
	"strings"
)

// SelectBuilder assembles a SELECT with a conjunction of placeholder conditions.
// Column names come from call sites in this package, never from request data;
// every value travels as a bind argument.
type SelectBuilder struct {
	base    string
	where   []string
	args    []interface{}
	orderBy []string
}

func NewSelect(base string) *SelectBuilder {
	return &SelectBuilder{base: base}
}

func (b *SelectBuilder) WhereEq(column string, value interface{}) *SelectBuilder {
	b.where = append(b.where, column+" = ?")
	b.args = append(b.args, value)
	return b
}

func (b *SelectBuilder) WherePrefix(column, prefix string) *SelectBuilder {
	b.where = append(b.where, column+` LIKE ? ESCAPE '\'`)
	b.args = append(b.args, PrefixPattern(prefix))
	return b
}

func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, columns...)
	return b
}

func (b *SelectBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(b.base)
	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.where, " AND "))
	}
	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}
	return sb.String(), b.args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PrefixPattern turns a user prefix into a LIKE pattern with its wildcards escaped.
func PrefixPattern(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}
