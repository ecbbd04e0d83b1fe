package storage

import (
	"fmt"
	"path"
	"regexp"
)

const datasetRoot = "datasets"

var pathComponentPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,127}$`)

// BuildTablePath returns the object key of a table's parquet file within a
// dataset, e.g. datasets/internships/user_details.parquet.
func BuildTablePath(dataset, table string) (string, error) {
	if err := validatePathComponent(dataset, "dataset name"); err != nil {
		return "", err
	}
	if err := validatePathComponent(table, "table name"); err != nil {
		return "", err
	}
	return path.Join(datasetRoot, dataset, table+".parquet"), nil
}

func validatePathComponent(value, field string) error {
	if !pathComponentPattern.MatchString(value) {
		return fmt.Errorf("invalid %s: %q", field, value)
	}
	return nil
}
