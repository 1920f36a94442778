package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var doneUndo bool

func init() {
	cmd := &cobra.Command{
		Use:   "done <date> <class> <index>",
		Short: "Mark a day's task as completed",
		Args:  cobra.ExactArgs(3),
		Run:   runDone,
	}
	cmd.Flags().BoolVar(&doneUndo, "undo", false, "Mark the task as not completed instead")
	RootCmd.AddCommand(cmd)
}

func runDone(cmd *cobra.Command, args []string) {
	_, templates, _ := openStores()
	date := argDate(args, 0)
	class := args[1]

	index, err := strconv.Atoi(args[2])
	if err != nil {
		exitErr("parse index", err)
	}

	if !templates.SetCompleted(date, class, index, !doneUndo) {
		exitErr("update task", fmt.Errorf("no task %d for %q on %s", index, class, date))
	}

	state := "completed"
	if doneUndo {
		state = "not completed"
	}
	fmt.Printf("Marked task %d of %q on %s as %s\n", index, class, date, state)
}
