package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"classcal/internal/importer"
	appLog "classcal/internal/log"
)

var watchEvery string

func init() {
	cmd := &cobra.Command{
		Use:   "watch <file.ics>",
		Short: "Re-import a calendar file on a schedule",
		Long: "Periodically re-import a local .ics file, e.g. one kept in sync " +
			"by an external tool. Runs are serialized: a tick is skipped while " +
			"the previous import is still in flight, and the idempotent merge " +
			"keeps repeats from duplicating events.",
		Args: cobra.ExactArgs(1),
		Run:  runWatch,
	}
	cmd.Flags().StringVar(&watchEvery, "every", "*/30 * * * *", "Cron schedule for re-imports")
	RootCmd.AddCommand(cmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	path := args[0]
	events, templates, _ := openStores()
	imp := &importer.Importer{Events: events, Templates: templates}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(watchEvery, func() {
		res, err := imp.Import(path)
		if err != nil {
			appLog.Error("watch: import failed", err, "path", path)
			return
		}
		appLog.Info("watch: import completed",
			"path", path, "imported", res.Imported, "classes", len(res.Classes))
	}); err != nil {
		exitErr("parse schedule", err)
	}

	c.Start()
	appLog.Info("watching calendar file", "path", path, "schedule", watchEvery)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	appLog.Info("signal received, shutting down", "signal", sig.String())
	<-c.Stop().Done()
}
