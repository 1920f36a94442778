// Package cli implements the classcal CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"classcal/internal/config"
	"classcal/internal/model"
	"classcal/internal/store"
)

var dataDir string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "classcal",
	Short: "Academic calendar and class task manager",
	Long: "Import university .ics calendar exports into a local event store, " +
		"derive per-class task checklists from event titles, and manage " +
		"events and tasks from the command line.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "",
		"Data directory (default: $CLASSCAL_DATA or ~/.classcal)")
}

func getDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	if env := os.Getenv("CLASSCAL_DATA"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".classcal")
}

// openStores loads the config and both stores rooted at the data
// directory.
func openStores() (*store.EventStore, *store.TemplateStore, *config.Config) {
	dir := getDataDir()
	cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		exitErr("load config", err)
	}
	events := store.OpenEvents(filepath.Join(dir, "calendar_events.json"), cfg.BackupEnabled)
	templates := store.OpenTemplates(dir, cfg.BackupEnabled)
	return events, templates, cfg
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

// argDate returns args[i] validated as a store date key, or today when
// the argument is absent.
func argDate(args []string, i int) string {
	if len(args) <= i {
		return time.Now().Format(model.DateLayout)
	}
	if _, err := time.ParseInLocation(model.DateLayout, args[i], time.Local); err != nil {
		exitErr("parse date", err)
	}
	return args[i]
}
