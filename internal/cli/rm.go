package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <date> <index>",
		Short: "Remove an event by its index in the day's listing",
		Args:  cobra.ExactArgs(2),
		Run:   runRemove,
	}
	RootCmd.AddCommand(cmd)
}

func runRemove(cmd *cobra.Command, args []string) {
	events, _, _ := openStores()
	date := argDate(args, 0)

	index, err := strconv.Atoi(args[1])
	if err != nil {
		exitErr("parse index", err)
	}

	if !events.Remove(date, index) {
		exitErr("remove event", fmt.Errorf("no event %d on %s", index, date))
	}
	if err := events.Save(); err != nil {
		exitErr("save events", err)
	}
	fmt.Printf("Removed event %d on %s\n", index, date)
}
