package duckdb

import (
	"context"
	"fmt"

	"github.com/sqlchat/sqlchat/internal/catalog"
	"github.com/sqlchat/sqlchat/internal/query"
)

// Directory answers user lookups from the published dataset.
type Directory struct {
	Engine query.Engine
}

func (d *Directory) FetchUserDetails(ctx context.Context, userName string) (catalog.UserDetail, error) {
	if d.Engine == nil {
		return catalog.UserDetail{}, fmt.Errorf("query engine is required")
	}
	result, err := d.Engine.Execute(ctx, query.Request{
		SQL:  catalog.UserDetailQuery,
		Args: []any{userName},
	})
	if err != nil {
		return catalog.UserDetail{}, fmt.Errorf("fetch user details: %w", err)
	}
	if len(result.Rows) == 0 {
		return catalog.UserDetail{}, catalog.ErrNotFound
	}
	return catalog.DetailFromRow(result.Rows[0])
}
