package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	api "github.com/ensigniasec/reactions/internal/api"
	"github.com/ensigniasec/reactions/internal/config"
	"github.com/ensigniasec/reactions/internal/db"
	"github.com/ensigniasec/reactions/internal/rating"
	"github.com/ensigniasec/reactions/internal/reactions"
	"github.com/ensigniasec/reactions/internal/selector"
	"github.com/ensigniasec/reactions/internal/server"
	"github.com/ensigniasec/reactions/internal/tui"
	"github.com/ensigniasec/reactions/internal/validate"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Used for flags.
	cfgFile       string
	verbose       bool
	baseURL       string
	timeout       time.Duration
	width         float64
	initialIndex  int
	reactionsFile string

	email string
	index int

	addr           string
	dbDriver       string
	dsn            string
	seedTitle      string
	allowedOrigins []string

	rootCmd = &cobra.Command{
		Use:   "reactions",
		Short: "Rate the latest movie by dragging a handle across a row of reactions.",
		Long: `Rate the latest movie from the terminal. Drag the handle (mouse or shift+arrows) or tap a reaction,
enter your email and send. The handle snaps to the nearest reaction with a spring animation.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
		RunE:              runRate,
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr to keep stdout for command output.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $HOME/.reactions.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "https://chezbill.herokuapp.com", "Base URL of the ratings service")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Timeout for each request to the ratings service")
	rootCmd.PersistentFlags().StringVar(&reactionsFile, "reactions-file", "", "Optional: YAML file replacing the built-in reactions")

	addRateFlags(rootCmd)
	addRateFlags(rateCmd)

	submitCmd.Flags().StringVar(&email, "email", "", "Email the rating is recorded under")
	submitCmd.Flags().IntVar(&index, "index", -1, "Reaction index to send (0-based)")
	_ = submitCmd.MarkFlagRequired("email")
	_ = submitCmd.MarkFlagRequired("index")

	serveCmd.Flags().StringVar(&addr, "addr", "localhost:8080", "Listen address")
	serveCmd.Flags().StringVar(&dbDriver, "db-driver", string(db.DriverSQLite), "Database driver: sqlite or postgres")
	serveCmd.Flags().StringVar(&dsn, "dsn", "", "Database DSN (driver default when empty)")
	serveCmd.Flags().StringVar(&seedTitle, "seed-title", "", "Optional: add a movie with this title before serving")
	serveCmd.Flags().StringSliceVar(&allowedOrigins, "allowed-origins", nil, "Optional: CORS origins allowed to call the service")

	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reactionsCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = api.BuildVersion
	rootCmd.Annotations = map[string]string{"commit": api.BuildCommit, "date": api.BuildDate}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

func addRateFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&width, "width", 320, "Track width in layout units")
	cmd.Flags().IntVar(&initialIndex, "initial-index", 2, "Reaction selected at start (0-based)")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		logrus.Fatal(err)
	}
}

// loadConfig fills flags that were not given from the config file and the
// REACTIONS_* environment, then sets the log level.
func loadConfig(cmd *cobra.Command, _ []string) error {
	v, err := config.New(cfgFile)
	if err != nil {
		return err
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return nil
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Open the interactive rating selector (default)",
	RunE:  runRate,
}

func runRate(cmd *cobra.Command, _ []string) error {
	cfg := config.Rate{BaseURL: baseURL, Timeout: timeout, Width: width, InitialIndex: initialIndex, ReactionsFile: reactionsFile}
	if err := cfg.Validate(); err != nil {
		return err
	}
	set, err := loadReactions(cfg.ReactionsFile)
	if err != nil {
		return err
	}
	track, err := selector.NewTrack(cfg.Width, set.Len())
	if err != nil {
		return err
	}
	if cfg.InitialIndex >= set.Len() {
		return fmt.Errorf("initial index %d out of range [0, %d)", cfg.InitialIndex, set.Len())
	}
	submitter, err := newSubmitter(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return err
	}
	sel := selector.New(track, selector.WithInitialIndex(cfg.InitialIndex))
	return tui.Run(cmd.Context(), sel, set, submitter)
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var submitCmd = &cobra.Command{
	Use:   "submit --email EMAIL --index N",
	Short: "Send a rating for the latest movie without the selector",
	RunE: func(cmd *cobra.Command, _ []string) error {
		set, err := loadReactions(reactionsFile)
		if err != nil {
			return err
		}
		if index < 0 || index >= set.Len() {
			return fmt.Errorf("index %d out of range [0, %d)", index, set.Len())
		}
		if !validate.Identifier(email) {
			return fmt.Errorf("%w: %q is not a valid email", api.ErrValidation, email)
		}
		submitter, err := newSubmitter(baseURL, timeout)
		if err != nil {
			return err
		}
		rec := submitter.LoadRecord(cmd.Context())
		if rec == nil {
			return errors.New("no movie available to rate")
		}
		n, _ := submitter.Submit(cmd.Context(), rec, email, index)
		printNotification(cmd.OutOrStdout(), rec, set.At(index), n)
		if n.Outcome != rating.Success {
			return n.Err
		}
		return nil
	},
}

func printNotification(w io.Writer, rec *api.Record, r reactions.Reaction, n rating.Notification) {
	fmt.Fprintf(w, "%s %s: %s\n", r.SmallIcon, r.Label, rec.Title)
	fmt.Fprintf(w, "%s %s\n", n.Title, n.Message)
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local ratings service for development",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Serve{Addr: addr, Driver: dbDriver, DSN: dsn, SeedTitle: seedTitle, AllowedOrigins: allowedOrigins}
		if err := cfg.Validate(); err != nil {
			return err
		}
		ctx := cmd.Context()
		conn, err := db.Open(ctx, db.Driver(cfg.Driver), cfg.DSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer conn.Close()

		store := db.NewStore(conn)
		if cfg.SeedTitle != "" {
			rec, err := store.AddRecord(ctx, cfg.SeedTitle)
			if err != nil {
				return fmt.Errorf("seed record: %w", err)
			}
			logrus.WithFields(logrus.Fields{"record": rec.ID, "title": rec.Title}).Info("seeded record")
		}
		handler := server.NewRouter(store, server.Options{AllowedOrigins: cfg.AllowedOrigins})
		return server.Serve(ctx, cfg.Addr, handler)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var reactionsCmd = &cobra.Command{
	Use:   "reactions",
	Short: "List the reactions offered by the selector",
	RunE: func(cmd *cobra.Command, _ []string) error {
		set, err := loadReactions(reactionsFile)
		if err != nil {
			return err
		}
		for i, r := range set.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%d  %s  %s\n", i, r.SmallIcon, r.Label)
		}
		return nil
	},
}

func loadReactions(path string) (reactions.Set, error) {
	if path == "" {
		return reactions.Default(), nil
	}
	set, err := reactions.Load(path)
	if err != nil {
		return reactions.Set{}, fmt.Errorf("load reactions: %w", err)
	}
	return set, nil
}

func newSubmitter(base string, d time.Duration) (*rating.Submitter, error) {
	client, err := api.NewClient(api.WithBaseURL(base), api.WithTimeout(d))
	if err != nil {
		return nil, err
	}
	return rating.NewSubmitter(client).WithTimeout(d), nil
}

func main() {
	Execute()
}
