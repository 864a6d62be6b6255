package contract

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/appraise/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		grade    schema.Grade
		expected string
	}{
		{schema.GradeS, OutstandingValue},
		{schema.GradeA, StrongValue},
		{schema.GradeB, SolidValue},
		{schema.GradeC, NeedsWorkValue},
		{schema.Grade("Z"), NeedsWorkValue},
	}

	for _, tt := range tests {
		t.Run(string(tt.grade), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.grade))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	for _, grade := range []schema.Grade{schema.GradeS, schema.GradeA, schema.GradeB, schema.GradeC} {
		t.Run(string(grade), func(t *testing.T) {
			result := GetColorLabel(grade)
			assert.Contains(t, result, string(grade))
			assert.Contains(t, result, GetPlainLabel(grade))
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.txt")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, path, f.Name())
}

func TestGetStoreFilePath(t *testing.T) {
	assert.Equal(t, ".appraise.json", filepath.Base(GetStoreFilePath(schema.BlobBackend)))
	assert.Equal(t, ".appraise.db", filepath.Base(GetStoreFilePath(schema.SQLiteBackend)))
}

func TestCurrentPeriod(t *testing.T) {
	tests := []struct {
		name     string
		at       time.Time
		expected string
	}{
		{"january", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), "2025-H1"},
		{"end of june", time.Date(2025, time.June, 30, 23, 59, 0, 0, time.UTC), "2025-H1"},
		{"july", time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), "2025-H2"},
		{"december", time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), "2026-H2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CurrentPeriod(tt.at))
		})
	}
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "Backend...", TruncateText("Backend API refactoring", 10))
	assert.Equal(t, "abcdef", TruncateText("abcdef", 3))
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"No", false, false},
		{"false", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
