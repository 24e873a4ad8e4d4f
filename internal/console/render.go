package console

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"bikeshare/internal/dataset"
	"bikeshare/pkg/contracts/domain"
)

const noMatches = "No matching trips for the selected filters."

// printSection renders one section the way the prompt loop shows it
func (s *Session) printSection(section domain.Section, report *domain.AnalysisReport) {
	switch section {
	case domain.SectionTime:
		s.println("\nFinding the most common times of travel...")
		writeTime(s.out, report.Time)
		s.printElapsed(report.Time.Elapsed, false)
	case domain.SectionStations:
		s.println("\nCalculating popular stations and trip...")
		writeStations(s.out, report.Stations)
		s.printElapsed(report.Stations.Elapsed, false)
	case domain.SectionDuration:
		s.println("\nAnalyzing trip durations...")
		writeDuration(s.out, report.Duration)
		s.printElapsed(report.Duration.Elapsed, false)
	case domain.SectionUsers:
		s.println("\nCalculating user stats...")
		writeDemographics(s.out, report.Demographics)
		s.printElapsed(report.Demographics.Elapsed, true)
	}
}

func (s *Session) printElapsed(d time.Duration, blankLine bool) {
	if blankLine {
		s.println("")
	}
	s.printf("This took %.2f seconds.\n", d.Seconds())
	s.println(divider)
}

func writeTime(w io.Writer, r domain.TimeReport) {
	if r.NoData {
		fmt.Fprintln(w, noMatches)
		return
	}
	fmt.Fprintf(w, "Most common month: %d\n", r.PopularMonth.Value)
	fmt.Fprintf(w, "Most common day of the week: %d\n", r.PopularDay.Value)
	fmt.Fprintf(w, "Most common start hour: %d\n", r.PopularHour.Value)
}

func writeStations(w io.Writer, r domain.StationReport) {
	if r.NoData {
		fmt.Fprintln(w, noMatches)
		return
	}
	fmt.Fprintf(w, "Most common start station: %s\n", r.PopularStart.Value)
	fmt.Fprintf(w, "Most common end station: %s\n", r.PopularEnd.Value)
	fmt.Fprintf(w, "Most common trip route: %s\n", r.PopularRoute.Value)
}

func writeDuration(w io.Writer, r domain.DurationReport) {
	if r.NoData {
		fmt.Fprintln(w, noMatches)
		return
	}
	fmt.Fprintf(w, "Total travel time: %s seconds\n", strconv.FormatFloat(r.TotalSeconds, 'f', -1, 64))
	fmt.Fprintf(w, "Average travel time: %s seconds\n", r.MeanDisplay())
}

func writeDemographics(w io.Writer, r domain.DemographicsReport) {
	if r.NoData {
		fmt.Fprintln(w, noMatches)
		return
	}
	if r.UserTypes != nil {
		fmt.Fprintln(w, "Counts of user types:")
		writeCounts(w, r.UserTypes)
	}
	if r.Genders != nil {
		fmt.Fprintln(w, "\nCounts of gender:")
		writeCounts(w, r.Genders)
	}
	if b := r.BirthYears; b != nil {
		if b.NoData {
			fmt.Fprintln(w, "\nNo birth year recorded for the selected trips.")
			return
		}
		fmt.Fprintf(w, "\nEarliest birth year: %d\n", b.Earliest)
		fmt.Fprintf(w, "Most recent birth year: %d\n", b.MostRecent)
		fmt.Fprintf(w, "Most common birth year: %d\n", b.MostCommon.Value)
	}
}

func writeCounts(w io.Writer, f *domain.FrequencyReport) {
	tw := tabwriter.NewWriter(w, 0, 4, 4, ' ', 0)
	for _, c := range f.Counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Value, c.Count)
	}
	tw.Flush()
}

// writeRows prints rows as an aligned table, numbering them from offset
func writeRows(w io.Writer, columns []string, offset int, rows []dataset.Trip) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "#")
	for _, col := range columns {
		fmt.Fprintf(tw, "\t%s", col)
	}
	fmt.Fprintln(tw)

	for i, row := range rows {
		fmt.Fprintf(tw, "%d", offset+i)
		record := row.Record(columns)
		for _, col := range columns {
			fmt.Fprintf(tw, "\t%s", record[col])
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}
