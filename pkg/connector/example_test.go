package connector_test

import (
	"fmt"

	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/registry"

	// Register the bundled table factories
	_ "github.com/ajitpratap0/nebula-jdbc/pkg/connector"
)

// Example lists the table factories registered by importing the package.
func Example() {
	for _, id := range registry.List() {
		fmt.Println(id)
	}

	// Output:
	// mysql-x
	// postgresql-x
	// snowflake-x
	// sqlserver-x
}
