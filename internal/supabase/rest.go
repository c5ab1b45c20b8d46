package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Filter is a set of PostgREST column filters, e.g. Eq("id", "42").
type Filter url.Values

// Eq returns a filter matching column = value.
func Eq(column, value string) Filter {
	return Filter{column: {"eq." + value}}
}

// And merges other into f.
func (f Filter) And(other Filter) Filter {
	out := Filter{}
	for k, v := range f {
		out[k] = append(out[k], v...)
	}
	for k, v := range other {
		out[k] = append(out[k], v...)
	}
	return out
}

// SelectQuery describes a read against a table.
type SelectQuery struct {
	Columns string
	Filter  Filter
	// Order is a PostgREST order clause such as "data.desc".
	Order  string
	Offset int
	// Limit is ignored when zero.
	Limit int
	// Count asks for the exact number of matching rows.
	Count bool
}

func tablePath(table string) string {
	return "/rest/v1/" + url.PathEscape(table)
}

// Insert writes rows into table.
func (c *Client) Insert(ctx context.Context, table string, rows any) error {
	return c.call(ctx, request{
		method: http.MethodPost,
		path:   tablePath(table),
		header: http.Header{"Prefer": {"return=minimal"}},
		body:   rows,
	}, nil)
}

// Select reads rows into dest (a pointer to a slice) and returns the exact
// count when q.Count is set, or -1 otherwise.
func (c *Client) Select(ctx context.Context, table string, q SelectQuery, dest any) (int, error) {
	query := url.Values{}
	for k, v := range q.Filter {
		query[k] = append(query[k], v...)
	}
	columns := q.Columns
	if columns == "" {
		columns = "*"
	}
	query.Set("select", columns)
	if q.Order != "" {
		query.Set("order", q.Order)
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		query.Set("offset", strconv.Itoa(q.Offset))
	}

	header := http.Header{}
	if q.Count {
		header.Set("Prefer", "count=exact")
	}

	resp, err := c.do(ctx, request{method: http.MethodGet, path: tablePath(table), query: query, header: header})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return 0, fmt.Errorf("decode %s rows: %w", table, err)
	}
	if !q.Count {
		return -1, nil
	}
	return parseContentRangeTotal(resp.Header.Get("Content-Range"))
}

// Update patches every row matching filter.
func (c *Client) Update(ctx context.Context, table string, filter Filter, patch any) error {
	return c.call(ctx, request{
		method: http.MethodPatch,
		path:   tablePath(table),
		query:  url.Values(filter),
		header: http.Header{"Prefer": {"return=minimal"}},
		body:   patch,
	}, nil)
}

// Delete removes every row matching filter. Matching nothing is not an error.
func (c *Client) Delete(ctx context.Context, table string, filter Filter) error {
	return c.call(ctx, request{
		method: http.MethodDelete,
		path:   tablePath(table),
		query:  url.Values(filter),
		header: http.Header{"Prefer": {"return=minimal"}},
	}, nil)
}

// parseContentRangeTotal extracts the total from "0-9/57" or "*/0".
func parseContentRangeTotal(header string) (int, error) {
	_, total, ok := strings.Cut(header, "/")
	if !ok || total == "*" {
		return 0, fmt.Errorf("content-range %q carries no total", header)
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("parse content-range %q: %w", header, err)
	}
	return n, nil
}
