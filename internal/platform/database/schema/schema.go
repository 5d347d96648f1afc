// Package schema names the tables and columns the Postgres repositories
// query, so a rename in data/migrations is a one-line change here.
package schema

import "strings"

// List joins columns into a SELECT or INSERT column list.
func List(columns ...string) string {
	return strings.Join(columns, ", ")
}
