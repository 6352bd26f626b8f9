// Package snowflake provides the Snowflake dialect and the snowflake-x table factory.
package snowflake

import (
	"fmt"
	"strconv"
	"strings"

	sf "github.com/snowflakedb/gosnowflake"

	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/jdbc/dialect"
)

const (
	// Identifier is the dialect identifier
	Identifier = "snowflake"
	// FactoryIdentifier is the connector name used in table definitions
	FactoryIdentifier = "snowflake-x"
)

// Dialect handles jdbc:snowflake: urls and translates them to gosnowflake DSNs.
type Dialect struct{}

// New creates the Snowflake dialect.
func New() *Dialect { return &Dialect{} }

// Identifier implements dialect.Dialect.
func (*Dialect) Identifier() string { return Identifier }

// DriverName implements dialect.Dialect.
func (*Dialect) DriverName() string { return "snowflake" }

// CanHandle implements dialect.Dialect.
func (*Dialect) CanHandle(url string) bool {
	return dialect.HasSubprotocol(url, "snowflake")
}

// DSN converts
// jdbc:snowflake://<account>.snowflakecomputing.com[:port]/?user=..&password=..&db=..&schema=..&warehouse=..&role=..
// into a gosnowflake DSN. The account is the first label of the host.
func (*Dialect) DSN(jdbcURL string) (string, error) {
	u, err := dialect.ParseURL(jdbcURL)
	if err != nil {
		return "", err
	}

	host := u.Hostname()
	account, _, _ := strings.Cut(host, ".")
	user, password := dialect.Credentials(u)
	q := u.Query()

	cfg := &sf.Config{
		Account:   account,
		User:      user,
		Password:  password,
		Database:  firstOf(q.Get("db"), q.Get("database")),
		Schema:    q.Get("schema"),
		Warehouse: q.Get("warehouse"),
		Role:      q.Get("role"),
		Protocol:  "https",
		Port:      443,
	}
	if strings.Contains(host, ".") {
		cfg.Host = host
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return "", fmt.Errorf("invalid port %q in url", p)
		}
		cfg.Port = port
	}

	dsn, err := sf.DSN(cfg)
	if err != nil {
		return "", err
	}
	if _, err := sf.ParseDSN(dsn); err != nil {
		return "", err
	}
	return dsn, nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
