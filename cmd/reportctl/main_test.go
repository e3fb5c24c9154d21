package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSalesFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sales.json")
	content := `[
		{"date": "2024-03-05", "amount": 100, "currency": "USD"},
		{"date": "2024-03-10", "amount": 50, "currency": "EUR"},
		{"date": "2024-04-01", "amount": 999, "currency": "GBP"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func runReportctl(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), errOut.String(), err
}

func TestGenerateCommand(t *testing.T) {
	t.Run("Writes the report to stdout", func(t *testing.T) {
		records := writeSalesFile(t)

		out, _, err := runReportctl(t,
			"generate", "--records", records, "--year", "2024", "--month", "3")

		require.NoError(t, err)
		assert.Equal(t, "Monatlicher Verkaufsbericht (03/2024)\n"+
			"----------------------------------------\n"+
			"Gesamt Umsatz in USD: 155.00\n", out)
	})

	t.Run("Month zero emits all twelve months in order", func(t *testing.T) {
		records := writeSalesFile(t)

		out, _, err := runReportctl(t,
			"generate", "--records", records, "--year", "2024", "--month", "0")

		require.NoError(t, err)
		assert.Equal(t, 12, strings.Count(out, "Monatlicher Verkaufsbericht"))

		lastIdx := -1
		for month := 1; month <= 12; month++ {
			title := fmt.Sprintf("Monatlicher Verkaufsbericht (%02d/2024)", month)
			idx := strings.Index(out, title)
			require.NotEqual(t, -1, idx, title)
			assert.Greater(t, idx, lastIdx)
			lastIdx = idx
		}

		assert.Contains(t, out, "Gesamt Umsatz in USD: 155.00")
		assert.Contains(t, out, "Gesamt Umsatz in USD: 1298.70")
	})

	t.Run("Writes report files into a directory", func(t *testing.T) {
		records := writeSalesFile(t)
		dir := t.TempDir()

		out, _, err := runReportctl(t,
			"generate", "--records", records, "--year", "2024", "--month", "3", "--out", dir)

		require.NoError(t, err)
		assert.Contains(t, out, "Report written to")

		content, err := os.ReadFile(filepath.Join(dir, "report_2024_03.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "Gesamt Umsatz in USD: 155.00")
	})

	t.Run("A failing run keeps the report stream clean", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope.json")

		out, errOut, err := runReportctl(t,
			"generate", "--records", missing, "--year", "2024", "--month", "3")

		require.Error(t, err)
		assert.Contains(t, err.Error(), missing)
		assert.Empty(t, out, "errors must not end up in the report stream")
		assert.Contains(t, errOut, "Failed to load sale records")
	})

	t.Run("Invalid month is rejected", func(t *testing.T) {
		records := writeSalesFile(t)

		out, _, err := runReportctl(t,
			"generate", "--records", records, "--year", "2024", "--month", "13")

		require.Error(t, err)
		assert.Empty(t, out)
	})
}
