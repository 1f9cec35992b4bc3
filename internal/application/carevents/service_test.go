package carevents

import (
	"context"
	"testing"

	"github.com/inesh111/pj-motors/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupEventsTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.CarEvent{}))
	return &Service{DB: db}
}

func TestRecordAndList(t *testing.T) {
	svc := setupEventsTest(t)
	ctx := context.Background()

	svc.Record(ctx, 1, models.EventCarCreated, map[string]interface{}{"chassisCode": "ZVW51-0001"})
	svc.Record(ctx, 1, models.EventCarUpdated, map[string]interface{}{"status": "SOLD"})
	svc.Record(ctx, 2, models.EventCarCreated, nil)

	events, err := svc.ListForCar(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.EventCarCreated, events[0].EventType)
	assert.Equal(t, models.EventCarUpdated, events[1].EventType)
	assert.Contains(t, string(events[0].EventData), "ZVW51-0001")
}

func TestRecord_UnmarshalablePayloadSwallowed(t *testing.T) {
	svc := setupEventsTest(t)
	ctx := context.Background()

	// Channels cannot be marshalled; the event is still written with an
	// empty payload.
	svc.Record(ctx, 3, models.EventCarUpdated, map[string]interface{}{"bad": make(chan int)})

	events, err := svc.ListForCar(ctx, 3)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "{}", string(events[0].EventData))
}
