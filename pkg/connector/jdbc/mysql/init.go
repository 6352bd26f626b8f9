package mysql

import (
	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/jdbc"
	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/jdbc/dialect"
	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/registry"
)

func init() {
	d := New()
	dialect.Register(d)

	// Conflicts are logged by the registry
	_ = registry.Install(jdbc.NewTableFactory(FactoryIdentifier, d), &registry.ConnectorInfo{
		Name:        FactoryIdentifier,
		Type:        "source,sink",
		Description: "MySQL table factory resolving scan, lookup and sink options",
		Version:     "1.0.0",
		Author:      "Nebula Team",
		Dialect:     Identifier,
		Capabilities: []string{
			"partitioned_scan",
			"lookup",
			"upsert",
		},
	})
}
