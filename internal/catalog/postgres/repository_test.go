package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/sqlchat/sqlchat/internal/catalog"
)

var detailColumns = []string{"name", "total_internships", "companies", "company_list", "selected", "rejected"}

func TestFetchUserDetails(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(catalog.UserDetailQuery)).
		WithArgs("john_doe").
		WillReturnRows(sqlmock.NewRows(detailColumns).AddRow("John Doe", int64(3), int64(2), "AI Labs, Tech Corp", "Tech Corp", nil))

	detail, err := repo.FetchUserDetails(context.Background(), "john_doe")
	if err != nil {
		t.Fatalf("FetchUserDetails() error = %v", err)
	}
	if detail.Name != "John Doe" || detail.TotalInternships != 3 || detail.CompanyCount != 2 {
		t.Fatalf("detail = %+v", detail)
	}
	if detail.CompanyList != "AI Labs, Tech Corp" {
		t.Fatalf("CompanyList = %q", detail.CompanyList)
	}
	if detail.Selected == nil || *detail.Selected != "Tech Corp" {
		t.Fatalf("Selected = %v", detail.Selected)
	}
	if detail.Rejected != nil {
		t.Fatalf("Rejected = %q, want nil", *detail.Rejected)
	}
	assertSQLMock(t, mock)
}

func TestFetchUserDetailsNullCompanyList(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(catalog.UserDetailQuery)).
		WithArgs("new_user").
		WillReturnRows(sqlmock.NewRows(detailColumns).AddRow("New User", int64(0), int64(0), nil, nil, nil))

	detail, err := repo.FetchUserDetails(context.Background(), "new_user")
	if err != nil {
		t.Fatalf("FetchUserDetails() error = %v", err)
	}
	if detail.CompanyList != "None" {
		t.Fatalf("CompanyList = %q, want None", detail.CompanyList)
	}
	assertSQLMock(t, mock)
}

func TestFetchUserDetailsNullName(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(catalog.UserDetailQuery)).
		WithArgs("anonymous").
		WillReturnRows(sqlmock.NewRows(detailColumns).AddRow(nil, int64(0), int64(0), "None", nil, nil))

	detail, err := repo.FetchUserDetails(context.Background(), "anonymous")
	if err != nil {
		t.Fatalf("FetchUserDetails() error = %v", err)
	}
	if detail.Name != "None" {
		t.Fatalf("Name = %q, want None", detail.Name)
	}
	assertSQLMock(t, mock)
}

func TestFetchUserDetailsReturnsNotFound(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(catalog.UserDetailQuery)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FetchUserDetails(context.Background(), "ghost")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("FetchUserDetails() error = %v, want ErrNotFound", err)
	}
	assertSQLMock(t, mock)
}

func TestFetchUserDetailsWrapsDriverErrors(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(catalog.UserDetailQuery)).
		WithArgs("alice").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FetchUserDetails(context.Background(), "alice")
	if err == nil || errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("FetchUserDetails() error = %v", err)
	}
	assertSQLMock(t, mock)
}

func TestHealthCheck(t *testing.T) {
	db, mock := newSQLMock(t)
	mock.ExpectPing()
	if err := NewRepository(db).HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck() error = %v", err)
	}
	assertSQLMock(t, mock)
}

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
		sqlmock.MonitorPingsOption(true),
	)
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func assertSQLMock(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}
