package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
)

func TestRunSQLRejectsNonSelectWithoutNetworkCall(t *testing.T) {
	gw := &mockSQLGateway{}
	svc := NewSQLService(gw)

	tests := []string{
		"DELETE FROM x",
		"  update y set z=1",
		"insert into t values (1)",
		"drop table charts",
		"selecting",
	}
	for _, q := range tests {
		t.Run(q, func(t *testing.T) {
			_, err := svc.RunSQL(context.Background(), q, 100)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrNotSelect)
		})
	}
	assert.Empty(t, gw.executed, "validation failures must not reach the gateway")
}

func TestRunSQLAcceptsSelectAnyCase(t *testing.T) {
	gw := &mockSQLGateway{result: &domain.SQLResult{}}
	svc := NewSQLService(gw)

	for _, q := range []string{"select 1", "SELECT 1", "  Select 1"} {
		_, err := svc.RunSQL(context.Background(), q, 100)
		require.NoError(t, err)
	}
	assert.Len(t, gw.executed, 3)
}

func TestRunSQLRewritesOversizedLimit(t *testing.T) {
	gw := &mockSQLGateway{result: &domain.SQLResult{}}
	svc := NewSQLService(gw)

	_, err := svc.RunSQL(context.Background(), "SELECT * FROM t LIMIT 50000", 100)
	require.NoError(t, err)

	require.Len(t, gw.executed, 1)
	assert.Equal(t, "SELECT * FROM t LIMIT 100", gw.executed[0])
}

func TestRunSQLAppendsLimitWhenMissing(t *testing.T) {
	gw := &mockSQLGateway{result: &domain.SQLResult{}}
	svc := NewSQLService(gw)

	_, err := svc.RunSQL(context.Background(), "select id from charts", 50)
	require.NoError(t, err)
	assert.Equal(t, "select id from charts LIMIT 50", gw.executed[0])
}

func TestRunSQLClampsMaxRows(t *testing.T) {
	gw := &mockSQLGateway{result: &domain.SQLResult{}}
	svc := NewSQLService(gw)

	_, err := svc.RunSQL(context.Background(), "select 1", 999999)
	require.NoError(t, err)
	assert.Equal(t, "select 1 LIMIT 5000", gw.executed[0])

	_, err = svc.RunSQL(context.Background(), "select 1", 0)
	require.NoError(t, err)
	assert.Equal(t, "select 1 LIMIT 100", gw.executed[1])
}

func TestCapLimitLeavesSubqueryLimitsAlone(t *testing.T) {
	got := CapLimit("select * from (select id from t limit 5) sub", 100)
	assert.Equal(t, "select * from (select id from t limit 5) sub LIMIT 100", got)
}

func TestCapLimitPreservesOffset(t *testing.T) {
	got := CapLimit("SELECT * FROM t LIMIT 5 OFFSET 10", 100)
	assert.Equal(t, "SELECT * FROM t LIMIT 100 OFFSET 10", got)
}

func TestCapLimitPreservesCommaOffset(t *testing.T) {
	// SQLite comma form: LIMIT offset, count.
	got := CapLimit("SELECT * FROM t LIMIT 10, 5", 100)
	assert.Equal(t, "SELECT * FROM t LIMIT 10, 100", got)
}

func TestCapLimitStripsTrailingSemicolon(t *testing.T) {
	got := CapLimit("select 1;", 10)
	assert.Equal(t, "select 1 LIMIT 10", got)
}

func TestRunSQLEmptyQuery(t *testing.T) {
	svc := NewSQLService(&mockSQLGateway{})
	_, err := svc.RunSQL(context.Background(), "   ", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
