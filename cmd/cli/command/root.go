package command

// root.go defines the root command of moviehub-admin and opens the catalog
// database for every subcommand.

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"moviehub/database"
	"moviehub/internal/config"
	"moviehub/internal/logging"
	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/service"
)

var (
	db       *gorm.DB
	services *service.Services
)

var (
	success = color.New(color.FgGreen)
	warning = color.New(color.FgYellow)
	failure = color.New(color.FgRed)
	heading = color.New(color.FgCyan, color.Bold)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "moviehub-admin",
	Short: "moviehub-admin - MovieHub catalog administration",
	Long: `moviehub-admin manages the MovieHub catalog directly in its database:
- Add, rename and delete directors and actors, and set their photos
- Add, update and delete movies with their cast, genres and poster
- List the genres shown on the site

The database and media directory are read from DATABASE_DRIVER, DATABASE_URL
and MEDIA_ROOT (or a .env file).`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  openCatalog,
	PersistentPostRunE: closeCatalog,
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		failure.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(directorCmd)
	rootCmd.AddCommand(actorCmd)
	rootCmd.AddCommand(movieCmd)
	rootCmd.AddCommand(genreCmd)
}

func openCatalog(cmd *cobra.Command, _ []string) error {
	if !cmd.Runnable() || cmd.Name() == "help" || cmd.Annotations[skipCatalog] != "" {
		return nil
	}

	if err := closeCatalog(cmd, nil); err != nil {
		return err
	}
	cfg, err := config.LoadStorageConfig()
	if err != nil {
		return err
	}
	logging.Init(logging.Config{Level: "warn", Format: cfg.LogFormat})

	db, err = database.Open(cfg.DatabaseDriver, cfg.DatabaseURL, false)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	services = service.NewServices(db, media.NewStorage(cfg.MediaRoot, cfg.MediaURL))
	return nil
}

func closeCatalog(_ *cobra.Command, _ []string) error {
	if db == nil {
		return nil
	}
	err := database.Close(db)
	db, services = nil, nil
	return err
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.Migrate(db); err != nil {
			return err
		}
		success.Fprintln(cmd.OutOrStdout(), "✓ Schema is up to date")
		return nil
	},
}

// openUpload opens a local image for the media guard. An empty path means no
// file; the returned func closes the file.
func openUpload(path string) (*media.Upload, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return &media.Upload{Filename: info.Name(), Size: info.Size(), Content: f}, func() { f.Close() }, nil
}
