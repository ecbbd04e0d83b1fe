package response

import "strings"

// QueryType selects the response template for a result set.
type QueryType string

const (
	QueryTypeCount        QueryType = "count"
	QueryTypeSingleEntity QueryType = "single_entity"
	QueryTypeList         QueryType = "list"
	QueryTypeAggregation  QueryType = "aggregation"
	QueryTypeGeneral      QueryType = "general"
)

var aggregatePrefixes = []string{"avg", "sum", "max", "min"}

// shape is what the classifier looks at: the lower-cased question plus the
// dimensions and headers of the result.
type shape struct {
	question string
	columns  []string
	rowCount int
}

type classifyRule struct {
	queryType QueryType
	matches   func(s shape) bool
}

// classifyRules is evaluated top to bottom; the first match wins.
var classifyRules = []classifyRule{
	{
		queryType: QueryTypeCount,
		matches: func(s shape) bool {
			return containsAny(s.question, "count", "how many") && len(s.columns) == 1 && s.rowCount == 1
		},
	},
	{
		queryType: QueryTypeSingleEntity,
		matches:   func(s shape) bool { return s.rowCount == 1 },
	},
	{
		queryType: QueryTypeList,
		matches:   func(s shape) bool { return containsAny(s.question, "list", "show", "all") },
	},
	{
		queryType: QueryTypeAggregation,
		matches:   func(s shape) bool { return hasAggregateColumn(s.columns) },
	},
	{
		queryType: QueryTypeList,
		matches:   func(s shape) bool { return s.rowCount > 1 },
	},
}

// Classify assigns a query type to a question and its result.
func Classify(question string, columns []string, rows [][]any) QueryType {
	return classify(question, columns, len(rows))
}

func classify(question string, columns []string, rowCount int) QueryType {
	s := shape{
		question: strings.ToLower(question),
		columns:  columns,
		rowCount: rowCount,
	}
	for _, rule := range classifyRules {
		if rule.matches(s) {
			return rule.queryType
		}
	}
	return QueryTypeGeneral
}

func hasAggregateColumn(columns []string) bool {
	for _, column := range columns {
		lowered := strings.ToLower(column)
		for _, prefix := range aggregatePrefixes {
			if strings.HasPrefix(lowered, prefix) {
				return true
			}
		}
	}
	return false
}
