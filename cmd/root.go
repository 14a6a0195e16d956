package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"magazine/catalog/internal/config"
	"magazine/catalog/internal/db"
	"magazine/catalog/internal/owner"
)

var (
	dbPath     string
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:               "magazine",
	Short:             "Catalog attributes, ratings and comment threads",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the catalog database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a .toml or .yaml config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

// setup loads .env and the config file, then installs the default logger.
func setup(cmd *cobra.Command, args []string) error {
	// a missing .env is fine
	_ = godotenv.Load()

	path := configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if logFormat != "" {
		c.LogFormat = logFormat
	}

	logger, err := newLogger(cmd.ErrOrStderr(), c.LogLevel, c.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	cfg = c
	return nil
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("invalid log format %q", format)
}

// DiscoverDB finds the database path using priority: env > flag > config.
// The config default is ./magazine.db; the file is created on first open.
func DiscoverDB() string {
	if envPath := os.Getenv(config.EnvDB); envPath != "" {
		return envPath
	}
	if dbPath != "" {
		return dbPath
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath
	}
	return config.DefaultDBPath
}

// OpenDatabase discovers and opens the database
func OpenDatabase() (*db.DB, error) {
	path := DiscoverDB()
	opts := []db.Option{db.WithLogger(slog.Default())}
	if cfg != nil {
		opts = append(opts, db.WithCommentRetry(cfg.CommentRetry))
	}
	d, err := db.OpenDB(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("opened database", "path", path)
	return d, nil
}

// ownerRegistry returns the resolvers for entity kinds the catalog stores
// itself. Other kinds are accepted on identity alone.
func ownerRegistry(d *db.DB) *owner.Registry {
	reg := owner.NewRegistry()
	reg.Register(owner.Comment, d.CommentExists)
	return reg
}

// ResolveOwner parses a "kind:id" argument and checks it against reg.
func ResolveOwner(cmd *cobra.Command, reg *owner.Registry, reference string) (owner.Ref, error) {
	ref, err := owner.ParseRef(reference)
	if err != nil {
		return owner.Ref{}, err
	}
	if err := reg.Validate(cmd.Context(), ref); err != nil {
		return owner.Ref{}, err
	}
	return ref, nil
}
