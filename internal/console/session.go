package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"bikeshare/internal/dataset"
	"bikeshare/internal/filter"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/services"
	"bikeshare/pkg/contracts/domain"
)

const divider = "----------------------------------------"

// errEndOfInput ends the session when the input stream closes mid-prompt
var errEndOfInput = errors.New("end of input")

// Analyzer is the part of the analysis service the console drives
type Analyzer interface {
	Load(ctx context.Context, q services.Query) (*dataset.Table, error)
	Report(ctx context.Context, table *dataset.Table, f filter.Filter, section domain.Section) *domain.AnalysisReport
}

// Session runs the prompt loop over one input and output stream
type Session struct {
	in       *bufio.Scanner
	out      io.Writer
	analyzer Analyzer
	logger   *slog.Logger
}

// NewSession creates a console session
func NewSession(in io.Reader, out io.Writer, analyzer Analyzer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		in:       bufio.NewScanner(in),
		out:      out,
		analyzer: analyzer,
		logger:   infrastructure.WithComponent(logger, "console"),
	}
}

// Run loops until the user declines to restart or the input ends. Dataset
// errors end the current round, not the session.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.round(ctx)
		if errors.Is(err, errEndOfInput) {
			s.logger.InfoContext(ctx, "Input closed, ending session")
			return nil
		}
		if err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			infrastructure.WithError(s.logger, err).ErrorContext(ctx, "Analysis round failed")
			s.printf("Error: %v\n", err)
		}

		restart, err := s.prompt("\nWould you like to restart? Enter 'yes' or 'no': ")
		if err != nil || strings.ToLower(restart) != "yes" {
			s.println("Thanks for exploring bikeshare data! Goodbye.")
			return nil
		}
	}
}

func (s *Session) round(ctx context.Context) error {
	q, err := s.getFilters()
	if err != nil {
		return err
	}

	table, err := s.analyzer.Load(ctx, q)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Dataset filtered",
		slog.String("city", q.City),
		slog.String("filter", q.Filter.String()),
		slog.Int("rows", table.Len()))

	for _, section := range domain.Sections {
		report := s.analyzer.Report(ctx, table, q.Filter, section)
		s.printSection(section, report)
	}

	return s.displayRawData(table)
}

// getFilters asks for city, month and day, re-prompting on invalid input
func (s *Session) getFilters() (services.Query, error) {
	s.println("Hello! Let's explore some US bikeshare data.")

	var city dataset.City
	for {
		answer, err := s.prompt("Choose a city (chicago, new york city, washington): ")
		if err != nil {
			return services.Query{}, err
		}
		if c, err := dataset.ParseCity(answer); err == nil {
			city = c
			break
		}
		s.println("Invalid city name. Please enter one of the available cities.")
	}

	month, err := s.promptNumber("Select a month as number (1-6) please or 0 for no filter: ",
		filter.MaxMonth, "Invalid entry. Please enter a number between 0 and 6.")
	if err != nil {
		return services.Query{}, err
	}

	day, err := s.promptNumber("Select a day (1-7) or 0 for no filter:",
		filter.MaxDay, "Invalid entry. Please enter a number between 0 and 7.")
	if err != nil {
		return services.Query{}, err
	}

	s.println(divider)
	return services.Query{City: city.String(), Filter: filter.Filter{Month: month, Day: day}}, nil
}

// promptNumber reads an integer in [0, max]. Non-numeric answers re-prompt.
func (s *Session) promptNumber(question string, max int, invalid string) (int, error) {
	for {
		answer, err := s.prompt(question)
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 0 && n <= max {
			return n, nil
		}
		s.println(invalid)
	}
}

// displayRawData pages through the table five rows at a time
func (s *Session) displayRawData(table *dataset.Table) error {
	offset := 0
	for {
		answer, err := s.prompt("Would you like to see 5 rows of raw data? Enter 'yes' or 'no': ")
		if err != nil {
			return err
		}

		switch strings.ToLower(answer) {
		case "no":
			return nil
		case "yes":
			rows, hasMore := dataset.GetRows(table, offset)
			writeRows(s.out, table.Columns, offset, rows)
			offset += len(rows)
			if !hasMore {
				s.println("No more rows to display.")
				return nil
			}
		default:
			s.println("Invalid input. Please enter only 'yes' or 'no'.")
		}
	}
}

func (s *Session) prompt(question string) (string, error) {
	fmt.Fprint(s.out, question)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errEndOfInput
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
