package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/infrastructure"
	"bikeshare/internal/shared/testutil"
)

func TestRun(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	dataDir := testutil.DatasetDir(t)
	logFile := filepath.Join(t.TempDir(), "console.log")

	var out bytes.Buffer
	err := run(context.Background(),
		[]string{"-data", dataDir, "-log-file", logFile},
		strings.NewReader("washington\n0\n0\nno\nno\n"), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Most common start station: X\n")
	assert.Contains(t, out.String(), "Goodbye.")
	assert.NotContains(t, out.String(), `"level"`)

	logs, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "Console session starting")
}

func TestRun_BadFlag(t *testing.T) {
	err := run(context.Background(), []string{"-nope"}, strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
}
