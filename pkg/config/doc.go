// Package config loads table catalog files for nebula-jdbc.
//
// A catalog is a YAML document listing table definitions. Each definition
// names the table, the factory that resolves it and the raw options passed
// to that factory:
//
//	tables:
//	  - name: orders
//	    database: shop
//	    connector: mysql-x
//	    options:
//	      url: jdbc:mysql://localhost:3306/shop
//	      table-name: orders
//	      username: app
//	      password: ${SHOP_DB_PASSWORD}
//	    columns:
//	      - {name: id, type: BIGINT}
//	      - {name: total, type: DECIMAL}
//	    primary_key:
//	      columns: [id]
//
// # Environment Variable Substitution
//
// Load replaces ${NAME} with the value of the environment variable NAME
// before parsing. ${NAME:-fallback} uses fallback when NAME is unset. An
// unset variable without a fallback becomes the empty string.
//
// # Validation
//
// TableDefinition.Validate checks only the structure of a definition (name,
// connector, columns, primary key). Option keys and values are validated by
// the table factory when TableDefinition.FactoryContext is resolved.
package config
