// Package recordstore provides access to CRM records: the value types shared
// with the resolver, an in-memory store seeded from fixtures, and a client for
// the Dataverse Web API.
package recordstore

import (
	"fmt"
	"regexp"
	"strings"

	dErrors "onsightnow/pkg/domain-errors"
)

// Record is a single CRM record as returned by the Web API: field name to JSON value.
// Related collections pulled in by $expand appear as []any of map[string]any.
type Record map[string]any

// Query mirrors the Web API $select / $expand retrieve options.
type Query struct {
	Select string
	Expand string
}

// Options renders the query as a Web API option string ("?$select=a&$expand=b").
// An empty query renders as "".
func (q Query) Options() string {
	var b strings.Builder
	add := func(key, value string) {
		if value == "" {
			return
		}
		if b.Len() == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(value)
	}
	add("$select", q.Select)
	add("$expand", q.Expand)
	return b.String()
}

// expandExpr matches "collection($select=field)" at the end of an expand option.
var expandExpr = regexp.MustCompile(`(\w+)\(\$select=(\w+)\)$`)

// ParseExpand splits an expand option into its related collection and the
// inner selected field. ok is false when expr is not of that form.
func ParseExpand(expr string) (collection, field string, ok bool) {
	m := expandExpr.FindStringSubmatch(expr)
	if len(m) != 3 {
		return "", "", false
	}
	return m[1], m[2], true
}

// FormatExpand is the inverse of ParseExpand.
func FormatExpand(collection, field string) string {
	return fmt.Sprintf("%s($select=%s)", collection, field)
}

// Sentinel errors. Matching is by domain code, so errors.Is(err, ErrNotFound)
// holds for any not_found error a store returns.
var (
	ErrNotFound     = dErrors.New(dErrors.CodeNotFound, "record not found")
	ErrAccessDenied = dErrors.New(dErrors.CodeForbidden, "record access denied")
)

func notFound(entityType, id string) error {
	return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("%s(%s) not found", entityType, id))
}

func accessDenied(entityType, id string) error {
	return dErrors.New(dErrors.CodeForbidden, fmt.Sprintf("access to %s(%s) denied", entityType, id))
}

// normalizeID lowercases a GUID and strips the braces CRM clients sometimes add.
func normalizeID(id string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(id), "{}"))
}
