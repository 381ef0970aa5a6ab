package repository

import (
	"strings"

	"github.com/user-directory/engine/internal/models"
	"github.com/user-directory/engine/internal/schema"
)

const usersTable = "users"

// userOrder is stable across calls: newest first, id breaks ties.
var userOrder = schema.MustColumn("created_at") + " DESC, " + schema.MustColumn("id") + " ASC"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Predicate is a WHERE clause body with its bound arguments. Placeholders are
// "?" and are rebound by the driver dialect.
type Predicate struct {
	SQL  string
	Args []any
}

func (p Predicate) Empty() bool { return p.SQL == "" }

// UserQuery is a filtered listing. Select and Count share the same predicate,
// so the count always covers exactly the rows the fetch pages over.
type UserQuery struct {
	Where  Predicate
	Limit  *int
	Offset int
}

// BuildUserQuery turns optional filters into a UserQuery. Absent filters add
// nothing; present ones are AND'ed together.
func BuildUserQuery(f models.UserFilter) UserQuery {
	return UserQuery{
		Where:  userPredicate(f),
		Limit:  f.Limit,
		Offset: f.Offset,
	}
}

func userPredicate(f models.UserFilter) Predicate {
	var (
		conds []string
		args  []any
	)

	if f.Search != nil && *f.Search != "" {
		pattern := containsPattern(*f.Search)
		conds = append(conds, "(CONCAT("+schema.MustColumn("firstName")+", ' ', "+schema.MustColumn("lastName")+") ILIKE ? OR "+
			schema.MustColumn("email")+" ILIKE ? OR "+
			schema.MustColumn("company.name")+" ILIKE ? OR "+
			schema.MustColumn("company.title")+" ILIKE ?)")
		args = append(args, pattern, pattern, pattern, pattern)
	}
	if f.Country != nil && *f.Country != "" {
		conds = append(conds, schema.MustColumn("address.country")+" ILIKE ?")
		args = append(args, containsPattern(*f.Country))
	}
	if f.Company != nil && *f.Company != "" {
		conds = append(conds, schema.MustColumn("company.name")+" ILIKE ?")
		args = append(args, containsPattern(*f.Company))
	}

	return Predicate{SQL: strings.Join(conds, " AND "), Args: args}
}

// containsPattern matches s literally anywhere in the column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (q UserQuery) where(sb *strings.Builder) []any {
	args := make([]any, 0, len(q.Where.Args)+2)
	if !q.Where.Empty() {
		sb.WriteString(" WHERE ")
		sb.WriteString(q.Where.SQL)
		args = append(args, q.Where.Args...)
	}
	return args
}

// Select renders the ordered, paginated fetch.
func (q UserQuery) Select() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(schema.SelectColumns(), ", "))
	sb.WriteString(" FROM " + usersTable)
	args := q.where(&sb)
	sb.WriteString(" ORDER BY " + userOrder)
	// Without a limit the result is one page holding every match, so offset
	// only applies to bounded pages.
	if q.Limit != nil {
		sb.WriteString(" LIMIT ?")
		args = append(args, *q.Limit)
		if q.Offset > 0 {
			sb.WriteString(" OFFSET ?")
			args = append(args, q.Offset)
		}
	}
	return sb.String(), args
}

// Count renders the unpaginated total for the same predicate.
func (q UserQuery) Count() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM " + usersTable)
	args := q.where(&sb)
	return sb.String(), args
}

func selectUserByID() string {
	return "SELECT " + strings.Join(schema.SelectColumns(), ", ") +
		" FROM " + usersTable + " WHERE " + schema.MustColumn("id") + " = ?"
}
