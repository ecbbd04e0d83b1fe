package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

var ErrNotFound = errors.New("catalog: not found")

// Directory looks up the application history of a user by user name.
type Directory interface {
	FetchUserDetails(ctx context.Context, userName string) (UserDetail, error)
}

type UserDetail struct {
	Name             string
	TotalInternships int64
	CompanyCount     int64
	CompanyList      string
	Selected         *string
	Rejected         *string
}

// UserDetailQuery returns at most one row for the user bound to $1:
// name, total_internships, companies, company_list, selected, rejected.
// It runs unchanged on PostgreSQL and DuckDB.
const UserDetailQuery = `
SELECT
    u.name,
    COUNT(DISTINCT ui.internship_id) AS total_internships,
    COUNT(DISTINCT i.company_name) AS companies,
    COALESCE(string_agg(DISTINCT i.company_name, ', '), 'None') AS company_list,
    (SELECT string_agg(DISTINCT i2.company_name, ', ')
        FROM user_internship ui2
        JOIN internship_details i2 ON ui2.internship_id = i2.internship_id
        WHERE ui2.user_name = u.user_name AND ui2.status = 'selected') AS selected,
    (SELECT string_agg(DISTINCT i3.company_name, ', ')
        FROM user_internship ui3
        JOIN internship_details i3 ON ui3.internship_id = i3.internship_id
        WHERE ui3.user_name = u.user_name AND ui3.status = 'rejected') AS rejected
FROM user_details u
LEFT JOIN user_internship ui ON ui.user_name = u.user_name
LEFT JOIN internship_details i ON i.internship_id = ui.internship_id
WHERE u.user_name = $1
GROUP BY u.user_name, u.name`

// NullText stands in for NULL names and empty company lists.
const NullText = "None"

// DetailFromRow converts a generic UserDetailQuery row.
func DetailFromRow(row []any) (UserDetail, error) {
	if len(row) != 6 {
		return UserDetail{}, fmt.Errorf("user detail row has %d values, want 6", len(row))
	}
	total, err := toInt64(row[1])
	if err != nil {
		return UserDetail{}, fmt.Errorf("total_internships: %w", err)
	}
	companies, err := toInt64(row[2])
	if err != nil {
		return UserDetail{}, fmt.Errorf("companies: %w", err)
	}
	companyList := optionalString(row[3])
	detail := UserDetail{
		Name:             textOf(row[0]),
		TotalInternships: total,
		CompanyCount:     companies,
		CompanyList:      NullText,
		Selected:         optionalString(row[4]),
		Rejected:         optionalString(row[5]),
	}
	if companyList != nil {
		detail.CompanyList = *companyList
	}
	return detail, nil
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	default:
		return 0, fmt.Errorf("unsupported count type %T", value)
	}
}

func optionalString(value any) *string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return &v
	case []byte:
		s := string(v)
		return &s
	default:
		s := fmt.Sprint(v)
		return &s
	}
}

// textOf renders NULL as NullText.
func textOf(value any) string {
	if s := optionalString(value); s != nil {
		return *s
	}
	return NullText
}
