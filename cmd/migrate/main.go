// Command migrate applies the evaluations schema embedded in this binary to
// the database named by the [database] config section or --url.
package main

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/JaimeStill/assessor/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

// migrator is the subset of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(version int) error
	Close() (error, error)
}

type openFunc func(url string) (migrator, error)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(open).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func open(url string) (migrator, error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return m, nil
}

func newRootCmd(openDB openFunc) *cobra.Command {
	var url string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the evaluations database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&url, "url", "", "postgres connection URL (default: built from config.toml and ASSESSOR_DB_*)")

	run := func(fn func(cmd *cobra.Command, m migrator, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			target := url
			if target == "" {
				db, err := config.LoadDatabase()
				if err != nil {
					return err
				}
				target = db.ConnString()
			}

			m, err := openDB(target)
			if err != nil {
				return err
			}
			defer m.Close()

			return fn(cmd, m, args)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, m migrator, _ []string) error {
				return report(cmd, m.Up(), "schema is current")
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert every applied migration",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, m migrator, _ []string) error {
				return report(cmd, m.Down(), "schema removed")
			}),
		},
		&cobra.Command{
			Use:   "steps N",
			Short: "Apply N migrations, or revert them when N is negative",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, m migrator, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil || n == 0 {
					return fmt.Errorf("steps must be a non-zero integer: %q", args[0])
				}
				return report(cmd, m.Steps(n), fmt.Sprintf("moved %d steps", n))
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, m migrator, _ []string) error {
				v, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					cmd.Println("no migrations applied")
					return nil
				}
				if err != nil {
					return err
				}
				cmd.Printf("version %d (dirty: %t)\n", v, dirty)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "force VERSION",
			Short: "Mark VERSION as applied and clear the dirty flag",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, m migrator, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return report(cmd, m.Force(v), fmt.Sprintf("forced to version %d", v))
			}),
		},
	)
	return root
}

// report treats ErrNoChange as success.
func report(cmd *cobra.Command, err error, done string) error {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		cmd.Println("no change")
	case err != nil:
		return err
	default:
		cmd.Println(done)
	}
	return nil
}
