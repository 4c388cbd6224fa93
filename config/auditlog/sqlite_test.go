package auditlog_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kastheco/feedr/config/auditlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemLogger(t *testing.T) *auditlog.SQLiteLogger {
	t.Helper()
	logger, err := auditlog.NewSQLiteLogger(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })
	return logger
}

func TestSQLiteLogger_EmitAndQuery(t *testing.T) {
	logger := newMemLogger(t)

	logger.Emit(auditlog.Event{
		Kind:    auditlog.EventGroupExpanded,
		Group:   "Technology",
		Message: "expanded Technology",
	})

	events, err := logger.Query(auditlog.QueryFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, auditlog.EventGroupExpanded, events[0].Kind)
	assert.Equal(t, "Technology", events[0].Group)
	assert.Equal(t, "info", events[0].Level)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestSQLiteLogger_QueryFilterByGroup(t *testing.T) {
	logger := newMemLogger(t)

	logger.Emit(auditlog.Event{Kind: auditlog.EventGroupExpanded, Group: "People"})
	logger.Emit(auditlog.Event{Kind: auditlog.EventGroupExpanded, Group: "Travel"})

	events, err := logger.Query(auditlog.QueryFilter{Group: "People", Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "People", events[0].Group)
}

func TestSQLiteLogger_QueryFilterByKind(t *testing.T) {
	logger := newMemLogger(t)

	logger.Emit(auditlog.Event{Kind: auditlog.EventGroupExpanded})
	logger.Emit(auditlog.Event{Kind: auditlog.EventMenuOpened})
	logger.Emit(auditlog.Event{Kind: auditlog.EventMenuClosed})

	events, err := logger.Query(auditlog.QueryFilter{
		Kinds: []auditlog.EventKind{auditlog.EventMenuOpened, auditlog.EventMenuClosed},
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Len(t, events, 2)
	for _, e := range events {
		assert.NotEqual(t, auditlog.EventGroupExpanded, e.Kind)
	}
}

func TestSQLiteLogger_QueryOrderDesc(t *testing.T) {
	logger := newMemLogger(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	logger.Emit(auditlog.Event{Kind: auditlog.EventGroupExpanded, Message: "first", Timestamp: base})
	logger.Emit(auditlog.Event{Kind: auditlog.EventGroupCollapsed, Message: "second", Timestamp: base.Add(time.Millisecond)})
	logger.Emit(auditlog.Event{Kind: auditlog.EventGroupExpanded, Message: "third", Timestamp: base.Add(time.Second)})

	events, err := logger.Query(auditlog.QueryFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "third", events[0].Message) // newest first
	assert.Equal(t, "second", events[1].Message)
	assert.Equal(t, "first", events[2].Message)
}

func TestSQLiteLogger_QueryTimeWindowAndLimit(t *testing.T) {
	logger := newMemLogger(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		logger.Emit(auditlog.Event{Kind: auditlog.EventViewSelected, Timestamp: base.Add(time.Duration(i) * time.Minute)})
	}

	events, err := logger.Query(auditlog.QueryFilter{
		After:  base,
		Before: base.Add(4 * time.Minute),
	})
	require.NoError(t, err)
	assert.Len(t, events, 3)

	events, err = logger.Query(auditlog.QueryFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestSQLiteLogger_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "audit.db")

	logger, err := auditlog.NewSQLiteLogger(dbPath)
	require.NoError(t, err)
	logger.Emit(auditlog.Event{Kind: auditlog.EventLinkCopied, Entry: "Wired"})
	require.NoError(t, logger.Close())

	logger, err = auditlog.NewSQLiteLogger(dbPath)
	require.NoError(t, err)
	defer logger.Close()

	events, err := logger.Query(auditlog.QueryFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Wired", events[0].Entry)
}
