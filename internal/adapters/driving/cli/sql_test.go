package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
)

func TestSQLCmd_Use(t *testing.T) {
	assert.Equal(t, "sql [query]", sqlCmd.Use)
}

func TestSQLCmd_HasMaxRowsFlag(t *testing.T) {
	flag := sqlCmd.Flags().Lookup("max-rows")
	require.NotNil(t, flag, "max-rows flag should exist")
	assert.Equal(t, "100", flag.DefValue)
}

func TestSQLCmd_PrintsResultJSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	sqlService = &mockSQLService{
		result: &domain.SQLResult{
			Columns: []string{"slug"},
			Rows:    [][]any{{"life-expectancy"}},
			Source:  "https://datasette-public.owid.io/owid.json",
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"sql", "select slug from charts"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"slug"`)
	assert.Contains(t, buf.String(), "life-expectancy")
}

func TestSQLCmd_PropagatesRejection(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	sqlService = &mockSQLService{err: domain.ErrNotSelect}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"sql", "drop table charts"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotSelect))
}
