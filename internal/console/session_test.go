package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/dataset"
	"bikeshare/internal/services"
	"bikeshare/internal/shared/testutil"
)

func runSession(t *testing.T, input string) string {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	loader := dataset.NewFileLoader(testutil.DatasetDir(t), logger)
	service := services.NewAnalysisService(loader, loader, nil, logger)

	var out bytes.Buffer
	err := NewSession(strings.NewReader(input), &out, service, logger).Run(context.Background())
	require.NoError(t, err)
	return out.String()
}

func TestSession_FullRound(t *testing.T) {
	out := runSession(t, "chicago\n0\n0\nno\nno\n")

	assert.Contains(t, out, "Hello! Let's explore some US bikeshare data.")
	assert.Contains(t, out, "Most common month: 1\n")
	assert.Contains(t, out, "Most common day of the week: 1\n")
	assert.Contains(t, out, "Most common start hour: 9\n")
	assert.Contains(t, out, "Most common start station: A\n")
	assert.Contains(t, out, "Most common end station: B\n")
	assert.Contains(t, out, "Most common trip route: A to B\n")
	assert.Contains(t, out, "Total travel time: 600 seconds\n")
	assert.Contains(t, out, "Average travel time: 150.00 seconds\n")
	assert.Contains(t, out, "Counts of user types:\nSubscriber    3\nCustomer      1\n")
	assert.Contains(t, out, "Earliest birth year: 1985\n")
	assert.Contains(t, out, "Most recent birth year: 1990\n")
	assert.Contains(t, out, "Most common birth year: 1990\n")
	assert.Equal(t, 4, strings.Count(out, "This took "))
	assert.True(t, strings.HasSuffix(out, "Thanks for exploring bikeshare data! Goodbye.\n"))
}

func TestSession_RepromptsInvalidInput(t *testing.T) {
	out := runSession(t, "paris\nWashington\nseven\n9\n2\n8\n0\nmaybe\nno\nno\n")

	assert.Equal(t, 1, strings.Count(out, "Invalid city name. Please enter one of the available cities."))
	assert.Equal(t, 2, strings.Count(out, "Invalid entry. Please enter a number between 0 and 6."))
	assert.Equal(t, 1, strings.Count(out, "Invalid entry. Please enter a number between 0 and 7."))
	assert.Equal(t, 1, strings.Count(out, "Invalid input. Please enter only 'yes' or 'no'."))

	// Washington has no gender or birth year columns
	assert.Contains(t, out, "Total travel time: 400.5 seconds\n")
	assert.Contains(t, out, "Average travel time: 200.25 seconds\n")
	assert.NotContains(t, out, "Counts of gender:")
	assert.NotContains(t, out, "birth year")
}

func TestSession_EmptyFilterResult(t *testing.T) {
	out := runSession(t, "chicago\n2\n0\nno\nno\n")

	assert.Equal(t, 4, strings.Count(out, noMatches))
	assert.NotContains(t, out, "Error:")
}

func TestSession_RawDataPager(t *testing.T) {
	out := runSession(t, "chicago\n0\n0\nyes\nno\n")

	assert.Contains(t, out, "Start Station")
	assert.Contains(t, out, "2017-06-30 17:45:00")
	assert.Contains(t, out, "No more rows to display.")
	assert.Equal(t, 1, strings.Count(out, "Would you like to see 5 rows of raw data?"))
}

func TestSession_Restart(t *testing.T) {
	out := runSession(t, "chicago\n1\n0\nno\nyes\nnew york city\n0\n0\nno\nno\n")

	assert.Equal(t, 2, strings.Count(out, "Hello! Let's explore some US bikeshare data."))
	assert.Contains(t, out, "Total travel time: 180 seconds\n")
	assert.Contains(t, out, "Most common start station: Broadway\n")
	assert.Contains(t, out, "Counts of gender:\nFemale    1\nMale      1\n")
}

func TestSession_DatasetErrorEndsRound(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	dir := t.TempDir()
	testutil.WriteFile(t, dir+"/chicago.csv", "Start Time,Trip Duration\n2017-01-01 00:00:00,10\n")
	loader := dataset.NewFileLoader(dir, logger)
	service := services.NewAnalysisService(loader, loader, nil, logger)

	var out bytes.Buffer
	err := NewSession(strings.NewReader("chicago\n0\n0\nno\n"), &out, service, logger).Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Error: ")
	assert.Contains(t, out.String(), "Goodbye.")
}

func TestSession_EndOfInput(t *testing.T) {
	out := runSession(t, "chicago\n")

	assert.NotContains(t, out, "Goodbye.")
	assert.Contains(t, out, "Select a month as number (1-6) please or 0 for no filter: ")
}

func TestSession_ContextCancelled(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	loader := dataset.NewFileLoader(testutil.DatasetDir(t), logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewSession(strings.NewReader("chicago\n0\n0\n"), &bytes.Buffer{}, services.NewAnalysisService(loader, loader, nil, logger), logger).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
