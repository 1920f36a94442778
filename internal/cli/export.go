package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"classcal/internal/ics"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export <file.ics>",
		Short: "Export the whole calendar as an .ics file",
		Args:  cobra.ExactArgs(1),
		Run:   runExport,
	}
	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	events, _, _ := openStores()

	count, err := ics.Export(events.Snapshot(), args[0])
	if err != nil {
		exitErr("export", err)
	}
	fmt.Printf("Exported %d events to %s\n", count, args[0])
}
