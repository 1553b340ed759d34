package repository

import (
	"strconv"
	"strings"

	"github.com/tuanvumaihuynh/graphql-crm/internal/apperr"
)

// Page bounds a list query. A zero Limit returns every remaining row.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) clause(b *sqlBuilder) string {
	var sb strings.Builder
	if p.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.arg(p.Limit))
	}
	if p.Offset > 0 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(b.arg(p.Offset))
	}
	return sb.String()
}

// sqlBuilder accumulates AND-combined predicates with positional arguments.
type sqlBuilder struct {
	conds []string
	args  []any
}

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// where adds cond, replacing each ? with the next positional argument.
func (b *sqlBuilder) where(cond string, args ...any) {
	var sb strings.Builder
	i := 0
	for _, r := range cond {
		if r == '?' && i < len(args) {
			sb.WriteString(b.arg(args[i]))
			i++
			continue
		}
		sb.WriteRune(r)
	}
	b.conds = append(b.conds, sb.String())
}

func (b *sqlBuilder) whereClause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

func (b *sqlBuilder) icontains(column string, v *string) {
	if v == nil {
		return
	}
	b.where(column+" ILIKE ?", "%"+escapeLike(*v)+"%")
}

func (b *sqlBuilder) startsWith(column string, v *string) {
	if v == nil {
		return
	}
	b.where(column+" LIKE ?", escapeLike(*v)+"%")
}

func gte[T any](b *sqlBuilder, column string, v *T) {
	if v != nil {
		b.where(column+" >= ?", *v)
	}
}

func lte[T any](b *sqlBuilder, column string, v *T) {
	if v != nil {
		b.where(column+" <= ?", *v)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// orderByClause turns fields such as ["-price", "name"] into an ORDER BY
// clause. columns maps the accepted field names to SQL expressions.
func orderByClause(orderBy []string, columns map[string]string) (string, error) {
	if len(orderBy) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(orderBy))
	for _, field := range orderBy {
		name, dir := strings.TrimSpace(field), "ASC"
		if after, ok := strings.CutPrefix(name, "-"); ok {
			name, dir = after, "DESC"
		}

		column, ok := columns[name]
		if !ok {
			return "", apperr.InvalidOrderByErr.WithMsg("cannot order by %q", field)
		}
		parts = append(parts, column+" "+dir)
	}

	return " ORDER BY " + strings.Join(parts, ", "), nil
}
