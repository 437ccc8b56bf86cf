package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sdlgen"
)

var (
	dbURL      string
	mysqlURL   string
	sqlitePath string
	outputFile string
	tables     string
	exclude    string
	schemaName string
	noHeader   bool
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "sdlgen",
	Short: "Introspect a database and emit its schema definition",
	Long: `sdlgen connects to a PostgreSQL, MySQL, or SQLite database and renders
its structure as a Prisma-style schema definition. The output is canonical:
attributes always appear in the same order, so reruns against an unchanged
database produce identical text.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&dbURL, "db-url", "", "PostgreSQL connection string")
	rootCmd.Flags().StringVar(&mysqlURL, "mysql-url", "", "MySQL connection string")
	rootCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite database file path")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVarP(&tables, "tables", "t", "", "Specific tables (comma-separated, optional)")
	rootCmd.Flags().StringVarP(&exclude, "exclude", "x", "", "Tables to exclude (comma-separated)")
	rootCmd.Flags().StringVarP(&schemaName, "schema", "s", "public", "Database schema name (PostgreSQL only)")
	rootCmd.Flags().BoolVar(&noHeader, "no-header", false, "Omit the datasource block")
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "Load environment variables from this file")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	} else {
		// Best effort: a missing .env is fine.
		_ = godotenv.Load()
	}

	databaseURL, err := resolveDatabaseURL()
	if err != nil {
		return err
	}

	opts := &sdlgen.Options{
		Tables:        parseTableList(tables),
		ExcludeTables: parseTableList(exclude),
		SchemaName:    schemaName,
	}

	outOpts := &sdlgen.OutputOptions{NoHeader: noHeader}
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to close output file: %v\n", err)
			}
		}()
		outOpts.Writer = f
	}

	if err := sdlgen.IntrospectAndRender(ctx, databaseURL, opts, outOpts); err != nil {
		return err
	}

	if outputFile != "" {
		color.Green("Schema written to %s", outputFile)
	}
	return nil
}

// resolveDatabaseURL turns the database flags into a single connection URL,
// falling back to DATABASE_URL when no flag is given.
func resolveDatabaseURL() (string, error) {
	count := 0
	for _, flag := range []string{dbURL, mysqlURL, sqlitePath} {
		if flag != "" {
			count++
		}
	}
	if count > 1 {
		return "", fmt.Errorf("only one of --db-url, --mysql-url, or --sqlite can be specified")
	}

	switch {
	case dbURL != "":
		if !strings.HasPrefix(dbURL, "postgres://") && !strings.HasPrefix(dbURL, "postgresql://") {
			return "postgres://" + dbURL, nil
		}
		return dbURL, nil
	case mysqlURL != "":
		if !strings.HasPrefix(mysqlURL, "mysql://") {
			return "mysql://" + mysqlURL, nil
		}
		return mysqlURL, nil
	case sqlitePath != "":
		return "sqlite://" + sqlitePath, nil
	}

	if fromEnv := os.Getenv("DATABASE_URL"); fromEnv != "" {
		return fromEnv, nil
	}
	return "", fmt.Errorf("one of --db-url, --mysql-url, or --sqlite must be specified (or set DATABASE_URL)")
}

func parseTableList(tablesStr string) []string {
	if tablesStr == "" {
		return nil
	}
	list := strings.Split(tablesStr, ",")
	for i, t := range list {
		list[i] = strings.TrimSpace(t)
	}
	return list
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
