package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sqlchat/sqlchat/internal/catalog"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) HealthCheck(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func (r *Repository) FetchUserDetails(ctx context.Context, userName string) (catalog.UserDetail, error) {
	var (
		detail      catalog.UserDetail
		name        sql.NullString
		companyList sql.NullString
		selected    sql.NullString
		rejected    sql.NullString
	)
	err := r.db.QueryRowContext(ctx, catalog.UserDetailQuery, userName).Scan(
		&name,
		&detail.TotalInternships,
		&detail.CompanyCount,
		&companyList,
		&selected,
		&rejected,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.UserDetail{}, catalog.ErrNotFound
		}
		return catalog.UserDetail{}, fmt.Errorf("fetch user details: %w", err)
	}
	detail.Name = textOr(name, catalog.NullText)
	detail.CompanyList = textOr(companyList, catalog.NullText)
	detail.Selected = nullablePtr(selected)
	detail.Rejected = nullablePtr(rejected)
	return detail, nil
}

func nullablePtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	s := value.String
	return &s
}

func textOr(value sql.NullString, fallback string) string {
	if !value.Valid {
		return fallback
	}
	return value.String
}
