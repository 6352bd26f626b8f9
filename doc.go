// Package nebula is the root of nebula-jdbc, the option resolution layer for
// JDBC-backed tables.
//
// A table definition supplies a connector identifier and a flat map of string
// options (url, table-name, scan.partition.*, lookup.*, sink.*). The table
// factory registered under that identifier validates the map, resolves the
// database dialect from the url and assembles typed descriptors:
//
//   - ConnectionConfig: url, table, credentials and write buffering
//   - ScanConfig and PartitionScanConfig: fetch size and range partitioning
//   - LookupConfig: lookup cache, retries and async settings
//
// # Quick Start
//
//	import (
//	    "github.com/ajitpratap0/nebula-jdbc/pkg/config"
//	    "github.com/ajitpratap0/nebula-jdbc/pkg/connector/registry"
//
//	    _ "github.com/ajitpratap0/nebula-jdbc/pkg/connector"
//	)
//
//	catalog, err := config.LoadTableCatalog("tables.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	def := catalog.Tables[0]
//	src, err := registry.CreateTableSource(def.Connector, def.FactoryContext())
//
// # Key Packages
//
//	pkg/connector/options  - Typed option declarations
//	pkg/connector/jdbc     - Option registry, validator, assembler, table factory
//	pkg/connector/registry - Table factory lookup by identifier
//	pkg/config             - Table catalog files
//	pkg/nebulaerrors       - Structured error handling
//	pkg/logger             - Structured logging
//	pkg/metrics            - Factory invocation metrics
//
// # Dialects
//
//   - mysql (factory mysql-x, go-sql-driver/mysql)
//   - postgresql (factory postgresql-x, pgx)
//   - snowflake (factory snowflake-x, gosnowflake)
//   - sqlserver (factory sqlserver-x, go-mssqldb)
//
// The nebula-jdbc command validates a tables file:
//
//	nebula-jdbc validate --file tables.yaml --kind sink
package nebula
