package main

import (
	"fmt"
	"io"
	"strings"

	"vivubot/internal/chatclient"
	"vivubot/internal/destinations"
)

func printMessage(w io.Writer, m chatclient.Message) {
	who := "you"
	if m.Sender == chatclient.SenderBot {
		who = "vivu"
	}
	fmt.Fprintf(w, "%s> %s\n", who, m.Text)
}

func printSessions(w io.Writer, sessions []chatclient.SessionSummary, active string) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "no saved sessions")
		return
	}
	for _, s := range sessions {
		mark := " "
		if s.SessionID == active {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %s  %s  %d messages\n", mark, s.SessionID, s.CreatedAt.Local().Format("2006-01-02 15:04"), s.MessageCount)
	}
}

func printRecords(w io.Writer, recs []destinations.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "no destinations yet")
		return
	}
	for _, r := range recs {
		fmt.Fprintf(w, "- %s (%s)\n", r.Name, r.Type)
		if r.Intro != "" {
			fmt.Fprintf(w, "    %s\n", truncate(r.Intro, 160))
		}
	}
}

// printViewModel draws the itinerary panel and the selected day's map data as text.
func printViewModel(w io.Writer, vm chatclient.ViewModel) {
	for _, d := range vm.Days {
		marker := "+"
		if d.Expanded {
			marker = "-"
		}
		fmt.Fprintf(w, "%s %s [%s] %d stops\n", marker, d.Label, d.Key, len(d.Stops))
		if !d.Expanded {
			continue
		}
		for i, st := range d.Stops {
			fmt.Fprintf(w, "    %d. %s %s\n", i+1, st.Time, st.Name)
			if st.Description != "" {
				fmt.Fprintf(w, "       %s\n", st.Description)
			}
		}
	}

	fmt.Fprintf(w, "center %.5f,%.5f\n", vm.Center.Lat, vm.Center.Lng)
	for _, m := range vm.Markers {
		fmt.Fprintf(w, "  pin %d %.5f,%.5f %s\n", m.Index, m.Position.Lat, m.Position.Lng, m.Title)
	}
	if len(vm.Polyline) > 1 {
		fmt.Fprintf(w, "  path %d points\n", len(vm.Polyline))
	}
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
