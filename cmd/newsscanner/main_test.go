package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
<article><h3>Google opens lab</h3><p>Research in Zurich.</p><time datetime="2026-10-18">Oct 18, 2026</time></article>
<article><h3>Unrelated</h3><p>Weather report.</p><time datetime="2026-10-18">Oct 18, 2026</time></article>
</body></html>`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmdWith(&cli{stdout: &stdout, stderr: &stderr})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, url, dir string, archive bool) string {
	t.Helper()
	body := "source:\n  url: " + url + "\n" +
		"companies: [Google]\n" +
		"output:\n  path: " + filepath.Join(dir, "out.csv") + "\n"
	if archive {
		body += "archive:\n  dsn: " + filepath.Join(dir, "runs.db") + "\n"
	}
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunThenExport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, server.URL, dir, true)

	stdout, _, err := execute(t, "run", "--config", cfgPath, "--today", "2026-10-18")
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 written, 1 tagged")

	written, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)

	stdout, _, err = execute(t, "runs", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2026-10-18")

	var runID string
	for _, line := range strings.Split(stdout, "\n") {
		if strings.Contains(line, "2026-10-18") {
			runID = strings.Fields(line)[0]
			break
		}
	}
	require.NotEmpty(t, runID)

	exported, _, err := execute(t, "export", runID, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, string(written), exported)
}

func TestRunsWithoutArchive(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, "http://127.0.0.1:1", dir, false)

	_, _, err := execute(t, "runs", "--config", cfgPath)
	require.ErrorIs(t, err, errNoArchive)
}

func TestRunRejectsBadToday(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, "http://127.0.0.1:1", dir, false)

	_, _, err := execute(t, "run", "--config", cfgPath, "--today", "18/10/2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestParseToday(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2026, time.October, 17, 20, 0, 0, 0, time.UTC)

	got, err := parseToday("", now, tokyo)
	require.NoError(t, err)
	assert.Equal(t, 18, got.Day())

	got, err = parseToday("2026-01-02", now, tokyo)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 2, 0, 0, 0, 0, tokyo), got)
}
