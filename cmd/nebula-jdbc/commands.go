package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/nebula-jdbc/pkg/config"
	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/core"
	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/jdbc/dialect"
	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/registry"
	"github.com/ajitpratap0/nebula-jdbc/pkg/logger"
	"github.com/ajitpratap0/nebula-jdbc/pkg/nebulaerrors"
)

// TableResult is the rendering of one resolved (or rejected) table definition.
type TableResult struct {
	Table     string      `json:"table"`
	Connector string      `json:"connector"`
	Kind      string      `json:"kind"`
	Resolved  interface{} `json:"resolved,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorType string      `json:"error_type,omitempty"`
	Keys      []string    `json:"keys,omitempty"`
}

// DialectResult is the rendering of a dialect lookup. Valid is set when the
// url also translates to a driver DSN.
type DialectResult struct {
	URL     string `json:"url"`
	Dialect string `json:"dialect,omitempty"`
	Driver  string `json:"driver,omitempty"`
	Valid   bool   `json:"valid"`
	Error   string `json:"error,omitempty"`
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "nebula-jdbc",
		Short: "nebula-jdbc - JDBC table option resolution",
		Long: `nebula-jdbc validates JDBC table definitions and resolves them into the
connection, scan, partition and lookup settings the table factories produce.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			return initLogging(s)
		},
	}

	root.PersistentFlags().String("log-level", defaultLogLevel, "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-encoding", defaultLogEncoding, "Log encoding (json, console)")

	root.AddCommand(
		newVersionCommand(),
		newListCommand(),
		newOptionsCommand(),
		newDialectCommand(),
		newValidateCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "nebula-jdbc v%s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered table factories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available Table Factories:")
			for _, id := range registry.List() {
				info, err := registry.Describe(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  - %s (dialect: %s, type: %s)\n", id, info.Dialect, info.Type)
			}
			fmt.Fprintln(out, "\nAvailable Dialects:")
			for _, id := range dialect.List() {
				fmt.Fprintf(out, "  - %s\n", id)
			}
			return nil
		},
	}
}

func newOptionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "options <identifier>",
		Short: "Describe the options a table factory accepts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := registry.Describe(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), info)
		},
	}
}

func newDialectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialect <jdbc-url>",
		Short: "Resolve the dialect for a JDBC url",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := resolveDialect(args[0])
			if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Valid {
				return fmt.Errorf("url is not usable: %s", res.Error)
			}
			return nil
		},
	}
}

func newValidateCommand() *cobra.Command {
	var file, kind, table string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a tables file and print the resolved descriptors",
		Long: `Validate resolves every table definition in a tables file through its
table factory and prints the resulting descriptors as JSON.

Example:
  nebula-jdbc validate --file tables.yaml --kind sink`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := core.ParseConnectorType(kind)
			if err != nil {
				return err
			}

			catalog, err := config.LoadTableCatalog(file)
			if err != nil {
				return err
			}

			defs := catalog.Tables
			if table != "" {
				def, ok := catalog.Find(table)
				if !ok {
					return nebulaerrors.New(nebulaerrors.ErrorTypeNotFound, "table not found in file: "+table)
				}
				defs = []config.TableDefinition{*def}
			}

			results, failed := resolveTables(defs, k)
			if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d tables failed validation", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the tables YAML file (required)")
	cmd.Flags().StringVarP(&kind, "kind", "k", string(core.ConnectorTypeSource), "Resolve tables as source or sink")
	cmd.Flags().StringVarP(&table, "table", "t", "", "Only resolve the named table")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// resolveTables runs every definition through its factory and reports the
// number of failures.
func resolveTables(defs []config.TableDefinition, kind core.ConnectorType) ([]TableResult, int) {
	log := logger.ForComponent("nebula-jdbc-cli")
	results := make([]TableResult, 0, len(defs))
	failed := 0

	for i := range defs {
		def := &defs[i]
		res := TableResult{
			Table:     def.Identifier().String(),
			Connector: def.Connector,
			Kind:      string(kind),
		}

		var (
			resolved interface{}
			err      error
		)
		if kind == core.ConnectorTypeSink {
			resolved, err = registry.CreateTableSink(def.Connector, def.FactoryContext())
		} else {
			resolved, err = registry.CreateTableSource(def.Connector, def.FactoryContext())
		}

		if err != nil {
			failed++
			res.Error = err.Error()
			res.ErrorType = string(nebulaerrors.TypeOf(err))
			res.Keys = nebulaerrors.Keys(err)
			log.Warn("table definition rejected",
				zap.String("table", res.Table),
				zap.String("connector", def.Connector),
				zap.Error(err))
		} else {
			res.Resolved = resolved
		}
		results = append(results, res)
	}
	return results, failed
}

func resolveDialect(jdbcURL string) DialectResult {
	res := DialectResult{URL: dialect.Redact(jdbcURL)}

	d, err := dialect.Resolve(jdbcURL)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Dialect = d.Identifier()
	res.Driver = d.DriverName()

	if _, err := dialect.Translate(d, jdbcURL); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Valid = true
	return res
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
