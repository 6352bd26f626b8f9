// Package connector groups the table factory framework of nebula-jdbc.
//
// # Architecture Overview
//
//   - options: typed option declarations and the raw key/value map a table
//     definition supplies.
//
//   - core: the factory interfaces (TableSourceFactory, TableSinkFactory) and
//     the FactoryContext handed to them.
//
//   - jdbc: the generic JDBC table factory. It validates raw options against
//     the option registry, resolves the dialect and assembles the
//     ConnectionConfig, PartitionScanConfig and LookupConfig descriptors.
//
//   - jdbc/dialect: the Dialect capability interface and its registry. The
//     jdbc/mysql, jdbc/postgres, jdbc/snowflake and jdbc/sqlserver
//     packages implement it and register both the dialect and a table
//     factory in init().
//
//   - registry: lookup of table factories by identifier, plus descriptive
//     connector metadata.
//
// Importing this package registers every bundled factory:
//
//	import _ "github.com/ajitpratap0/nebula-jdbc/pkg/connector"
//
//	src, err := registry.CreateTableSource("mysql-x", def.FactoryContext())
//	if err != nil {
//		log.Fatal(err)
//	}
package connector
