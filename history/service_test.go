package history_test

import (
	"context"
	"testing"

	"github.com/John-Hatton/Inventory/history"
	"github.com/John-Hatton/Inventory/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_RecordsAndListsNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := history.New(db, zap.NewNop())

	svc.Record(history.Entry{TraceID: "t1", Entity: "item", EntityID: 1, Action: "insert",
		Payload: map[string]string{"name": "Lamp"}})
	svc.Record(history.Entry{TraceID: "t2", Entity: "item", EntityID: 1, Action: "delete"})

	// Stop flushes whatever is still buffered.
	svc.Stop(context.Background())

	logs, err := svc.Recent(10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "delete", logs[0].Action)
	assert.Equal(t, "insert", logs[1].Action)
	assert.Equal(t, "t1", logs[1].TraceID)
}

func TestService_RecentHonorsLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := history.New(db, zap.NewNop())

	for i := 0; i < 5; i++ {
		svc.Record(history.Entry{Entity: "category", EntityID: int64(i), Action: "insert"})
	}
	svc.Stop(context.Background())

	logs, err := svc.Recent(3)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}

func TestService_StopIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := history.New(db, zap.NewNop())
	svc.Stop(context.Background())
	assert.NotPanics(t, func() { svc.Stop(context.Background()) })
}
