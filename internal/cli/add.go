package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"classcal/internal/model"
)

var addOpts struct {
	date     string
	start    string
	end      string
	location string
	desc     string
	category string
	allDay   bool
}

func init() {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an event manually",
		Args:  cobra.ExactArgs(1),
		Run:   runAdd,
	}
	f := cmd.Flags()
	f.StringVar(&addOpts.date, "date", "", "Event date YYYY-MM-DD (default today)")
	f.StringVar(&addOpts.start, "start", "09:00", "Start time HH:MM")
	f.StringVar(&addOpts.end, "end", "", "End time HH:MM (default start + configured duration)")
	f.StringVarP(&addOpts.location, "location", "l", "", "Location")
	f.StringVar(&addOpts.desc, "desc", "", "Description")
	f.StringVarP(&addOpts.category, "category", "c", model.CategoryPersonal, "Category")
	f.BoolVar(&addOpts.allDay, "all-day", false, "All-day event")
	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	events, _, cfg := openStores()

	date := time.Now().Format(model.DateLayout)
	if addOpts.date != "" {
		if _, err := time.ParseInLocation(model.DateLayout, addOpts.date, time.Local); err != nil {
			exitErr("parse date", err)
		}
		date = addOpts.date
	}

	start, err := time.Parse(model.ClockLayout, addOpts.start)
	if err != nil {
		exitErr("parse start time", err)
	}

	end := addOpts.end
	if end == "" {
		end = start.Add(time.Duration(cfg.DefaultEventDuration) * time.Minute).Format(model.ClockLayout)
	} else if _, err := time.Parse(model.ClockLayout, end); err != nil {
		exitErr("parse end time", err)
	}

	events.Append(date, model.Event{
		Title:       args[0],
		Description: addOpts.desc,
		Location:    addOpts.location,
		StartTime:   start.Format(model.ClockLayout),
		EndTime:     end,
		AllDay:      addOpts.allDay,
		Category:    addOpts.category,
	})
	if err := events.Save(); err != nil {
		exitErr("save events", err)
	}
	fmt.Printf("Added %q on %s\n", args[0], date)
}
