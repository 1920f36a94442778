package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"classcal/internal/importer"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import <file.ics>",
		Short: "Import events from an .ics calendar export",
		Long: "Parse a local iCalendar export, expand weekly recurrences, merge " +
			"the events into the calendar without duplicating earlier imports, " +
			"and derive task checklists for the classes found in event titles.",
		Args: cobra.ExactArgs(1),
		Run:  runImport,
	}
	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	events, templates, _ := openStores()
	imp := &importer.Importer{Events: events, Templates: templates}

	res, err := imp.Import(args[0])
	if err != nil {
		exitErr("import", err)
	}

	fmt.Printf("Imported %d events from %d records\n", res.Imported, res.Parsed)
	for _, s := range res.Skipped {
		fmt.Printf("  skipped record %d: %s\n", s.Index, s.Reason)
	}
	if len(res.Classes) > 0 {
		fmt.Printf("Task templates available for %d classes:\n", len(res.Classes))
		for _, class := range res.Classes {
			fmt.Println("  " + class)
		}
	}
}
