package utils

import (
	"context"
	"fmt"
	"testing"

	"coursepay/database"
	"coursepay/gateway"
	"coursepay/models"
	"coursepay/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func TestReconcile_RecoversUnprocessedEvent(t *testing.T) {
	db := openTestDB(t)
	events := store.NewEventLog(db)
	enrollments := store.NewEnrollmentStore(db)
	ctx := context.Background()

	// A delivery that was acknowledged but never fulfilled.
	_, err := events.Record(ctx, &models.WebhookEvent{
		EventID:         "evt_1",
		EventType:       gateway.EventCheckoutCompleted,
		SessionID:       "sess_abc",
		UserID:          "u1",
		CourseID:        "c1",
		ProcessingError: "store unreachable",
	})
	require.NoError(t, err)

	reconcileUnprocessedEvents(events, enrollments)

	count, err := enrollments.CountEnrollments(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	event, err := events.Get(ctx, "evt_1")
	require.NoError(t, err)
	assert.NotNil(t, event.ProcessedAt)
	assert.Empty(t, event.ProcessingError)
}

func TestReconcile_AlreadyEnrolledStillMarksProcessed(t *testing.T) {
	db := openTestDB(t)
	events := store.NewEventLog(db)
	enrollments := store.NewEnrollmentStore(db)
	ctx := context.Background()

	created, err := enrollments.EnsureEnrolled(ctx, "u1", "c1")
	require.NoError(t, err)
	require.True(t, created)

	_, err = events.Record(ctx, &models.WebhookEvent{
		EventID:   "evt_1",
		EventType: gateway.EventCheckoutCompleted,
		UserID:    "u1",
		CourseID:  "c1",
	})
	require.NoError(t, err)

	reconcileUnprocessedEvents(events, enrollments)

	count, err := enrollments.CountEnrollments(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	event, err := events.Get(ctx, "evt_1")
	require.NoError(t, err)
	assert.NotNil(t, event.ProcessedAt)
}

func TestReconcile_SkipsEventsWithoutMetadata(t *testing.T) {
	db := openTestDB(t)
	events := store.NewEventLog(db)
	enrollments := store.NewEnrollmentStore(db)
	ctx := context.Background()

	_, err := events.Record(ctx, &models.WebhookEvent{
		EventID:   "evt_1",
		EventType: gateway.EventCheckoutCompleted,
	})
	require.NoError(t, err)

	reconcileUnprocessedEvents(events, enrollments)

	var count int64
	require.NoError(t, db.Model(&models.Enrollment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	event, err := events.Get(ctx, "evt_1")
	require.NoError(t, err)
	assert.Nil(t, event.ProcessedAt)
}
