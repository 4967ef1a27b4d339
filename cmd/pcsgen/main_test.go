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
)

func writeInput(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "KEN_ALL.CSV")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(rows, "\n")+"\n"), 0o600))
	return path
}

const (
	rowA = `13101,13,13101,,1000001,0,0,Tokyo,,Chiyoda,,Chiyoda,,,,Imperial Palace,,,,,,`
	rowB = `13101,13,13101,,1000002,0,0,Tokyo,,Chiyoda,,Marunouchi,,,,Imperial Palace,,,,,,`
	rowC = `13101,13,13101,,1008798,1,0,Tokyo,,Chiyoda,,Chiyoda,,,,,,,Japan Post,,,`
	rowX = `13101,Tokyo,13101,,1000003,0,0,Tokyo,,Chiyoda,,Otemachi,,,,,,,,,,`
)

func TestRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	input := writeInput(t, rowA, rowC, rowB, rowA)

	err := run(context.Background(), []string{"-config", t.TempDir(), input}, &stdout, &stderr)
	require.NoError(t, err)

	expected := "INSERT INTO prefs(id, name) VALUES\n" +
		"(13, 'Tokyo');\n\n" +
		"INSERT INTO cities(code, pref_id, name) VALUES\n" +
		"('13101', 13, 'Chiyoda');\n\n" +
		"INSERT INTO towns(id, city_code, zip_code, area_name, street_name) VALUES\n" +
		"(1, '13101', '1000001', 'Chiyoda', 'Imperial Palace'),\n" +
		"(2, '13101', '1000002', 'Marunouchi', 'Imperial Palace');\n\n"
	assert.Equal(t, expected, stdout.String())
}

func TestRun_Header(t *testing.T) {
	var stdout, stderr bytes.Buffer
	input := writeInput(t, "address_code,pref_code", rowA)

	err := run(context.Background(), []string{"-config", t.TempDir(), "-header", input}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "'1000001'")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     func(t *testing.T) []string
		expected string
	}{
		{
			name:     "missing argument",
			args:     func(t *testing.T) []string { return []string{"-config", t.TempDir()} },
			expected: "expected 1 argument, but got none",
		},
		{
			name: "missing file",
			args: func(t *testing.T) []string {
				return []string{"-config", t.TempDir(), filepath.Join(t.TempDir(), "missing.csv")}
			},
			expected: "failed to open input",
		},
		{
			name: "non numeric prefecture code",
			args: func(t *testing.T) []string {
				return []string{"-config", t.TempDir(), writeInput(t, rowA, rowB, rowX)}
			},
			expected: `invalid prefecture code "Tokyo"`,
		},
		{
			name: "unsupported encoding",
			args: func(t *testing.T) []string {
				return []string{"-config", t.TempDir(), "-encoding", "latin1", writeInput(t, rowA)}
			},
			expected: "unsupported encoding",
		},
		{
			name: "apply without database",
			args: func(t *testing.T) []string {
				t.Setenv("DB_SOURCE", "")
				return []string{"-config", t.TempDir(), "-apply", writeInput(t, rowA)}
			},
			expected: "DB_SOURCE is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			err := run(context.Background(), tt.args(t), &stdout, &stderr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
			assert.Empty(t, stdout.String())
		})
	}
}
