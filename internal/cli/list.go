package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"classcal/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list [date]",
		Short: "List a day's events",
		Args:  cobra.MaximumNArgs(1),
		Run:   runList,
	}
	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	events, _, cfg := openStores()
	date := argDate(args, 0)

	day := events.EventsOn(date)
	if len(day) == 0 {
		fmt.Printf("No events on %s\n", date)
		return
	}

	header := date
	if cfg.ShowWeekNumbers {
		if d, err := time.ParseInLocation(model.DateLayout, date, time.Local); err == nil {
			_, week := d.ISOWeek()
			header = fmt.Sprintf("%s (week %d)", date, week)
		}
	}
	fmt.Println(header)

	for i, ev := range day {
		when := ev.StartTime + "-" + ev.EndTime
		if ev.AllDay {
			when = "all day"
		}
		line := fmt.Sprintf("%2d. %-11s %s [%s]", i, when, ev.Title, ev.Category)
		if ev.Location != "" {
			line += " @ " + ev.Location
		}
		fmt.Println(line)
	}
}
