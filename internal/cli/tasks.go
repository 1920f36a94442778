package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "tasks [date]",
		Short: "Show a day's class task checklists",
		Long: "Show the task checklists for a date, materializing them from the " +
			"class templates on first access.",
		Args: cobra.MaximumNArgs(1),
		Run:  runTasks,
	}
	RootCmd.AddCommand(cmd)
}

func runTasks(cmd *cobra.Command, args []string) {
	_, templates, _ := openStores()
	date := argDate(args, 0)

	day := templates.TasksForDate(date)
	if len(day) == 0 {
		fmt.Printf("No task checklists for %s\n", date)
		return
	}

	classes := make([]string, 0, len(day))
	for class := range day {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	fmt.Println(date)
	for _, class := range classes {
		fmt.Println(class)
		for i, task := range day[class] {
			mark := " "
			if task.Completed {
				mark = "x"
			}
			fmt.Printf("  %2d. [%s] (%s) %s\n", i, mark, task.Priority, task.Title)
		}
	}
}
