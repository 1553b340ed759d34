package graphql

import (
	"encoding/base64"
	"strconv"
	"strings"

	"go.appointy.com/jaal/schemabuilder"

	"github.com/tuanvumaihuynh/graphql-crm/internal/apperr"
	"github.com/tuanvumaihuynh/graphql-crm/internal/repository"
)

const cursorPrefix = "offset:"

type PageInfo struct {
	HasNextPage     bool
	HasPreviousPage bool
	StartCursor     *string
	EndCursor       *string
}

type Edge[T any] struct {
	Cursor string
	Node   T
}

// Connection is a page of nodes with offset-based cursors.
type Connection[T any] struct {
	TotalCount int
	Edges      []Edge[T]
	PageInfo   PageInfo
}

func encodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

func decodeCursor(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, apperr.InvalidArgumentErr.WithMsg("invalid cursor %q", cursor)
	}

	offset, err := strconv.Atoi(strings.TrimPrefix(string(raw), cursorPrefix))
	if err != nil || !strings.HasPrefix(string(raw), cursorPrefix) || offset < 0 {
		return 0, apperr.InvalidArgumentErr.WithMsg("invalid cursor %q", cursor)
	}

	return offset, nil
}

// pageArgs are the pagination arguments shared by every list query.
type pageArgs struct {
	First *int32
	After *string
}

func (a pageArgs) page() (repository.Page, error) {
	var p repository.Page
	if a.First != nil {
		if *a.First < 0 {
			return p, apperr.InvalidArgumentErr.WithMsg("first must be non-negative")
		}
		p.Limit = int(*a.First)
	}
	if a.After != nil {
		offset, err := decodeCursor(*a.After)
		if err != nil {
			return p, err
		}
		p.Offset = offset + 1
	}
	return p, nil
}

func newConnection[T any](nodes []T, total int, page repository.Page) *Connection[T] {
	conn := &Connection[T]{
		TotalCount: total,
		Edges:      make([]Edge[T], 0, len(nodes)),
	}
	for i, n := range nodes {
		conn.Edges = append(conn.Edges, Edge[T]{Cursor: encodeCursor(page.Offset + i), Node: n})
	}

	conn.PageInfo.HasPreviousPage = page.Offset > 0
	conn.PageInfo.HasNextPage = page.Offset+len(nodes) < total
	if len(conn.Edges) > 0 {
		conn.PageInfo.StartCursor = &conn.Edges[0].Cursor
		conn.PageInfo.EndCursor = &conn.Edges[len(conn.Edges)-1].Cursor
	}

	return conn
}

func registerPageInfo(sb *schemabuilder.Schema) {
	obj := sb.Object("PageInfo", PageInfo{})
	obj.FieldFunc("hasNextPage", func(in *PageInfo) bool { return in.HasNextPage })
	obj.FieldFunc("hasPreviousPage", func(in *PageInfo) bool { return in.HasPreviousPage })
	obj.FieldFunc("startCursor", func(in *PageInfo) *string { return in.StartCursor })
	obj.FieldFunc("endCursor", func(in *PageInfo) *string { return in.EndCursor })
}

// registerConnection registers <name>Connection and <name>Edge for node type T.
// get extracts the page from the Go type C backing the connection object,
// which is returned so callers can add fields.
func registerConnection[C, T any](sb *schemabuilder.Schema, name string, get func(*C) *Connection[T]) *schemabuilder.Object {
	edge := sb.Object(name+"Edge", Edge[T]{})
	edge.FieldFunc("cursor", func(in *Edge[T]) string { return in.Cursor })
	edge.FieldFunc("node", func(in *Edge[T]) *T { return &in.Node })

	var zero C
	conn := sb.Object(name+"Connection", zero)
	conn.FieldFunc("totalCount", func(in *C) int { return get(in).TotalCount })
	conn.FieldFunc("edges", func(in *C) []Edge[T] { return get(in).Edges })
	conn.FieldFunc("pageInfo", func(in *C) PageInfo { return get(in).PageInfo })

	return conn
}

func self[T any](c *Connection[T]) *Connection[T] { return c }
