package database

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func openTestHealthLog(t *testing.T) {
    t.Helper()
    require.NoError(t, OpenHealthLog(":memory:"))
    t.Cleanup(func() {
        require.NoError(t, CloseHealthLog())
    })
}

func TestHealthLogInsertAndList(t *testing.T) {
    openTestHealthLog(t)
    ctx := context.Background()

    first, err := InsertHealthLog(ctx, "user-1", "fever 101F", "2025-01-10")
    require.NoError(t, err)
    second, err := InsertHealthLog(ctx, "user-1", "fever gone", "2025-01-12")
    require.NoError(t, err)
    _, err = InsertHealthLog(ctx, "user-2", "headache", "2025-01-11")
    require.NoError(t, err)

    assert.Greater(t, second, first)

    logs, err := ListHealthLogs(ctx, "user-1")
    require.NoError(t, err)
    require.Len(t, logs, 2)

    // newest first
    assert.Equal(t, "fever gone", logs[0].Event)
    assert.Equal(t, "2025-01-12", logs[0].Date)
    assert.Equal(t, "user-1", logs[0].UserID)
    assert.Equal(t, "fever 101F", logs[1].Event)
    assert.NotEmpty(t, logs[0].CreatedAt)
}

func TestHealthLogListUnknownUser(t *testing.T) {
    openTestHealthLog(t)

    logs, err := ListHealthLogs(context.Background(), "nobody")
    require.NoError(t, err)
    assert.Empty(t, logs)
}

func TestHealthLogPing(t *testing.T) {
    require.NoError(t, CloseHealthLog())
    assert.Error(t, PingHealthLog())

    openTestHealthLog(t)
    assert.NoError(t, PingHealthLog())
}
