package response

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sqlchat/sqlchat/internal/catalog"
)

// CountResponse answers a one-cell count result.
func CountResponse(question string, _ []string, rows [][]any) string {
	entity := InferEntity(question)
	count := rows[0][0]
	if n, ok := numericValue(count); ok {
		switch n {
		case 0:
			return fmt.Sprintf("I found no %s matching your criteria.", entity)
		case 1:
			return fmt.Sprintf("There is 1 %s matching your criteria.", entity.Singular())
		}
	}
	return fmt.Sprintf("There are %s %s matching your criteria.", FormatValue(count), entity)
}

// ListResponse introduces a multi-row result with its row count and a table.
func ListResponse(question string, columns []string, rows [][]any, limit int) string {
	return listResponse(question, columns, rows, len(rows), limit)
}

func listResponse(question string, columns []string, rows [][]any, totalRows, limit int) string {
	entity := InferEntity(question)
	if len(rows) == 0 {
		return fmt.Sprintf("I couldn't find any %s matching your criteria.", entity)
	}
	intro := fmt.Sprintf("Here are the %d %s I found:", totalRows, entity)
	return intro + "\n\n" + renderTable(columns, rows, totalRows, limit)
}

// SingleEntityResponse lists every column of the first row as a labelled line.
func SingleEntityResponse(question string, columns []string, rows [][]any) string {
	row := rows[0]
	details := make([]string, 0, len(columns))
	for i, column := range columns {
		details = append(details, fmt.Sprintf("%s: %s", titleColumn(column), FormatValue(row[i])))
	}
	return fmt.Sprintf("Here are the details for the %s:\n\n", InferEntity(question).Singular()) + strings.Join(details, "\n")
}

// AggregationResponse presents summary columns such as avg or sum as a table.
func AggregationResponse(question string, columns []string, rows [][]any, limit int) string {
	return aggregationResponse(question, columns, rows, len(rows), limit)
}

func aggregationResponse(question string, columns []string, rows [][]any, totalRows, limit int) string {
	intro := fmt.Sprintf("Here's the requested summary information about %s:", InferEntity(question))
	return intro + "\n\n" + renderTable(columns, rows, totalRows, limit)
}

// GeneralResponse is the plain table answer used when no other template fits.
func GeneralResponse(question string, columns []string, rows [][]any, limit int) string {
	return generalResponse(question, columns, rows, len(rows), limit)
}

func generalResponse(_ string, columns []string, rows [][]any, totalRows, limit int) string {
	return "Here are the results for your query:\n\n" + renderTable(columns, rows, totalRows, limit)
}

// UserDetailsResponse formats the application history of one user.
func UserDetailsResponse(detail catalog.UserDetail) string {
	lines := []string{
		"Name: " + detail.Name,
		fmt.Sprintf("Applied in %d internships across %d companies: %s", detail.TotalInternships, detail.CompanyCount, detail.CompanyList),
		"Selected in: " + orNone(detail.Selected),
		"Rejected in: " + orNone(detail.Rejected),
	}
	return strings.Join(lines, "\n")
}

// NoRecordResponse answers a user lookup that matched nobody.
func NoRecordResponse(userName string) string {
	return "No record found for " + userName
}

func orNone(value *string) string {
	if value == nil || *value == "" {
		return "None"
	}
	return *value
}

// titleColumn turns "company_name" into "Company Name". A letter is upper-cased
// when it starts a run of letters and lower-cased otherwise, so "avg(stipend)"
// becomes "Avg(Stipend)".
func titleColumn(column string) string {
	column = strings.ReplaceAll(column, "_", " ")
	var b strings.Builder
	b.Grow(len(column))
	prevCased := false
	for _, r := range column {
		cased := unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
		switch {
		case cased && prevCased:
			b.WriteRune(unicode.ToLower(r))
		case cased:
			b.WriteRune(unicode.ToTitle(r))
		default:
			b.WriteRune(r)
		}
		prevCased = cased
	}
	return b.String()
}
