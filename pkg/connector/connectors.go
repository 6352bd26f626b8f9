package connector

import (
	// Import all table factories to trigger init() registration
	_ "github.com/ajitpratap0/nebula-jdbc/pkg/connector/jdbc/mysql"
	_ "github.com/ajitpratap0/nebula-jdbc/pkg/connector/jdbc/postgres"
	_ "github.com/ajitpratap0/nebula-jdbc/pkg/connector/jdbc/snowflake"
	_ "github.com/ajitpratap0/nebula-jdbc/pkg/connector/jdbc/sqlserver"
)
