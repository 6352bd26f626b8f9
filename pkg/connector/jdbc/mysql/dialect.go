// Package mysql provides the MySQL dialect and the mysql-x table factory.
package mysql

import (
	"net"
	"strconv"
	"time"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/jdbc/dialect"
)

const (
	// Identifier is the dialect identifier
	Identifier = "mysql"
	// FactoryIdentifier is the connector name used in table definitions
	FactoryIdentifier = "mysql-x"

	defaultPort = "3306"
)

// Dialect handles jdbc:mysql: urls and translates them to go-sql-driver/mysql DSNs.
type Dialect struct{}

// New creates the MySQL dialect.
func New() *Dialect { return &Dialect{} }

// Identifier implements dialect.Dialect.
func (*Dialect) Identifier() string { return Identifier }

// DriverName implements dialect.Dialect.
func (*Dialect) DriverName() string { return "mysql" }

// CanHandle implements dialect.Dialect.
func (*Dialect) CanHandle(url string) bool {
	return dialect.HasSubprotocol(url, "mysql")
}

// DSN converts jdbc:mysql://host[:port]/db[?user=..&password=..&useSSL=..&connectTimeout=..]
// into user:password@tcp(host:port)/db. The result is parsed back to make
// sure the driver accepts it.
func (*Dialect) DSN(jdbcURL string) (string, error) {
	u, err := dialect.ParseURL(jdbcURL)
	if err != nil {
		return "", err
	}

	port := u.Port()
	if port == "" {
		port = defaultPort
	}

	cfg := gomysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(u.Hostname(), port)
	cfg.DBName = dialect.Database(u)
	cfg.User, cfg.Passwd = dialect.Credentials(u)

	q := u.Query()
	if useSSL, err := strconv.ParseBool(q.Get("useSSL")); err == nil && useSSL {
		cfg.TLSConfig = "true"
	}
	if v := q.Get("connectTimeout"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return "", err
		}
		cfg.Timeout = time.Duration(ms) * time.Millisecond
	}

	dsn := cfg.FormatDSN()
	if _, err := gomysql.ParseDSN(dsn); err != nil {
		return "", err
	}
	return dsn, nil
}
