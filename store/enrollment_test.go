package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureEnrolled_FirstCallCreates(t *testing.T) {
	s := NewEnrollmentStore(openTestDB(t))
	ctx := context.Background()

	created, err := s.EnsureEnrolled(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.True(t, created)

	count, err := s.CountEnrollments(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestEnsureEnrolled_RepeatIsNoop(t *testing.T) {
	s := NewEnrollmentStore(openTestDB(t))
	ctx := context.Background()

	created, err := s.EnsureEnrolled(ctx, "u1", "c1")
	require.NoError(t, err)
	require.True(t, created)

	for i := 0; i < 5; i++ {
		created, err = s.EnsureEnrolled(ctx, "u1", "c1")
		require.NoError(t, err)
		assert.False(t, created)
	}

	count, err := s.CountEnrollments(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestEnsureEnrolled_ConcurrentCallersCreateOneRow(t *testing.T) {
	s := NewEnrollmentStore(openTestDB(t))
	ctx := context.Background()

	const callers = 10
	var wg sync.WaitGroup
	var createdCount int64

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := s.EnsureEnrolled(ctx, "u1", "c1")
			assert.NoError(t, err)
			if created {
				atomic.AddInt64(&createdCount, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, createdCount, "exactly one caller should report created=true")

	count, err := s.CountEnrollments(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestEnsureEnrolled_DistinctPairsAreIndependent(t *testing.T) {
	s := NewEnrollmentStore(openTestDB(t))
	ctx := context.Background()

	for _, pair := range [][2]string{{"u1", "c1"}, {"u1", "c2"}, {"u2", "c1"}} {
		created, err := s.EnsureEnrolled(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, created)
	}

	enrollments, err := s.ListEnrollments(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, enrollments, 2)
}

func TestListEnrollments(t *testing.T) {
	s := NewEnrollmentStore(openTestDB(t))
	ctx := context.Background()

	_, err := s.EnsureEnrolled(ctx, "u1", "c1")
	require.NoError(t, err)
	_, err = s.EnsureEnrolled(ctx, "u1", "c2")
	require.NoError(t, err)
	_, err = s.EnsureEnrolled(ctx, "u2", "c3")
	require.NoError(t, err)

	enrollments, err := s.ListEnrollments(ctx, "u1")
	require.NoError(t, err)

	var courseIDs []string
	for _, e := range enrollments {
		assert.Equal(t, "u1", e.UserID)
		assert.False(t, e.EnrolledAt.IsZero())
		courseIDs = append(courseIDs, e.CourseID)
	}
	assert.ElementsMatch(t, []string{"c1", "c2"}, courseIDs)
}

func TestListEnrollments_EmptyForUnknownUser(t *testing.T) {
	s := NewEnrollmentStore(openTestDB(t))

	enrollments, err := s.ListEnrollments(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, enrollments)
}
