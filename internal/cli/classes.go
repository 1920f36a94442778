package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List class task templates",
		Long: "List the merged class task templates: hand-edited entries from " +
			"classes.txt plus the ones auto-derived by calendar imports.",
		Args: cobra.NoArgs,
		Run:  runClasses,
	}
	RootCmd.AddCommand(cmd)
}

func runClasses(cmd *cobra.Command, args []string) {
	_, templates, _ := openStores()

	classes := templates.Classes()
	if len(classes) == 0 {
		fmt.Println("No class templates. Import a calendar or edit classes.txt.")
		return
	}

	for _, class := range classes {
		fmt.Println(class)
		tasks, _ := templates.Tasks(class)
		for _, task := range tasks {
			fmt.Printf("  [%s] %s - %s\n", task.Priority, task.Title, task.Description)
		}
	}
}
