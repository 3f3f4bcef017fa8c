package communet

import (
	"fmt"
	"strconv"
	"strings"
)

// Query builds a LiQL statement for the v2 search endpoint. The zero value is
// not usable; start from NewQuery.
type Query struct {
	selectFields []string
	collection   string
	wheres       []whereClause
	orderBy      string
	descending   bool
	limit        int
	offset       int
	cursor       string
}

type whereClause struct {
	field    string
	operator string
	value    interface{}
	conj     string // "AND" or "OR"; first clause ignores it
}

// NewQuery starts a LiQL query against the given collection
// (e.g. "messages", "boards", "users").
func NewQuery(collection string) *Query {
	return &Query{
		collection:   collection,
		selectFields: []string{"*"},
	}
}

// Select replaces the selected fields; the default is "*".
func (q *Query) Select(fields ...string) *Query {
	if len(fields) > 0 {
		q.selectFields = fields
	}

	return q
}

// Where adds a constraint joined with AND.
func (q *Query) Where(field, operator string, value interface{}) *Query {
	q.wheres = append(q.wheres, whereClause{field: field, operator: operator, value: value, conj: "AND"})

	return q
}

// OrWhere adds a constraint joined with OR.
func (q *Query) OrWhere(field, operator string, value interface{}) *Query {
	q.wheres = append(q.wheres, whereClause{field: field, operator: operator, value: value, conj: "OR"})

	return q
}

// OrderBy sets the sort field and direction.
func (q *Query) OrderBy(field string, descending bool) *Query {
	q.orderBy = field
	q.descending = descending

	return q
}

// Limit caps the number of returned items.
func (q *Query) Limit(n int) *Query {
	q.limit = n

	return q
}

// Offset skips the first n items.
func (q *Query) Offset(n int) *Query {
	q.offset = n

	return q
}

// Cursor requests the next page using an opaque cursor from a previous
// response.
func (q *Query) Cursor(cursor string) *Query {
	q.cursor = cursor

	return q
}

// String renders the LiQL statement.
func (q *Query) String() string {
	var builder strings.Builder

	builder.WriteString("SELECT ")
	builder.WriteString(strings.Join(q.selectFields, ", "))
	builder.WriteString(" FROM ")
	builder.WriteString(q.collection)

	for i, clause := range q.wheres {
		if i == 0 {
			builder.WriteString(" WHERE ")
		} else {
			builder.WriteString(" " + clause.conj + " ")
		}

		builder.WriteString(clause.field)
		builder.WriteString(" ")
		builder.WriteString(clause.operator)
		builder.WriteString(" ")
		builder.WriteString(FormatLiQLValue(clause.value))
	}

	if q.orderBy != "" {
		builder.WriteString(" ORDER BY ")
		builder.WriteString(q.orderBy)

		if q.descending {
			builder.WriteString(" DESC")
		} else {
			builder.WriteString(" ASC")
		}
	}

	if q.limit > 0 {
		builder.WriteString(" LIMIT ")
		builder.WriteString(strconv.Itoa(q.limit))
	}

	if q.offset > 0 {
		builder.WriteString(" OFFSET ")
		builder.WriteString(strconv.Itoa(q.offset))
	}

	if q.cursor != "" {
		builder.WriteString(" CURSOR '")
		builder.WriteString(escapeLiQLString(q.cursor))
		builder.WriteString("'")
	}

	return builder.String()
}

// Validate reports whether the query can be executed.
func (q *Query) Validate() error {
	if q.collection == "" {
		return ErrQueryCollectionRequired
	}

	return nil
}

// FormatLiQLValue renders a Go value as a LiQL literal: strings are
// single-quoted with embedded quotes escaped, numbers and booleans are
// rendered bare, and slices become parenthesized lists for IN clauses.
func FormatLiQLValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return "'" + escapeLiQLString(v) + "'"
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = "'" + escapeLiQLString(s) + "'"
		}

		return "(" + strings.Join(quoted, ", ") + ")"
	case []interface{}:
		rendered := make([]string, len(v))
		for i, item := range v {
			rendered[i] = FormatLiQLValue(item)
		}

		return "(" + strings.Join(rendered, ", ") + ")"
	default:
		return "'" + escapeLiQLString(fmt.Sprintf("%v", v)) + "'"
	}
}

func escapeLiQLString(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
