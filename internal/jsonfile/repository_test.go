package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rpggio/burstguard/internal/domain/activity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_AppendHistory(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(filepath.Join(t.TempDir(), "output.json"))

	history, err := repo.History(ctx, "a")
	require.NoError(t, err)
	require.Empty(t, history)

	require.NoError(t, repo.Append(ctx, "a", "2024-07-01T12:00:00.000Z"))
	require.NoError(t, repo.Append(ctx, "b", "2024-07-01T12:00:01.000Z"))
	require.NoError(t, repo.Append(ctx, "a", "2024-07-01T12:00:02.000Z"))

	history, err = repo.History(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, []activity.Timestamp{"2024-07-01T12:00:00.000Z", "2024-07-01T12:00:02.000Z"}, history)
}

func TestActivityRepository_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(filepath.Join(t.TempDir(), "output.json"))

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Append(ctx, "a", activity.NewTimestamp(time.Now())))
		}()
	}
	wg.Wait()

	history, err := repo.History(ctx, "a")
	require.NoError(t, err)
	require.Len(t, history, 25)
}

func TestActivityRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewActivityRepository(filepath.Join(t.TempDir(), "output.json"))
	require.ErrorIs(t, repo.Append(ctx, "a", "2024-07-01T12:00:00.000Z"), context.Canceled)
	_, err := os.Stat(repo.Path())
	require.True(t, os.IsNotExist(err))
}

func TestActivityService_WithJSONFile(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	path := filepath.Join(t.TempDir(), "output.json")
	svc := activity.NewService(NewActivityRepository(path), nil)

	res, err := svc.Record(ctx, "new@example.com")
	require.NoError(t, err)
	require.Equal(t, activity.OutcomeRecorded, res.Outcome)

	log, err := LoadStore(path)
	require.NoError(t, err)
	require.Len(t, log["new@example.com"], 1)
	recorded, err := log["new@example.com"][0].Time()
	require.NoError(t, err)
	require.WithinDuration(t, now, recorded, time.Second)

	// prior entries are kept in order
	prior := []activity.Timestamp{"2020-01-01T00:00:00.000Z", "2021-01-01T00:00:00.000Z"}
	require.NoError(t, SaveStore(path, activity.ActivityLog{"old": prior}))
	_, err = svc.Record(ctx, "old")
	require.NoError(t, err)
	log, err = LoadStore(path)
	require.NoError(t, err)
	require.Len(t, log["old"], 3)
	require.Equal(t, prior, log["old"][:2])
}

func TestActivityService_WithJSONFileRejectsBurst(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "output.json")

	burst := make([]activity.Timestamp, 20)
	for i := range burst {
		burst[i] = activity.NewTimestamp(now)
	}
	require.NoError(t, SaveStore(path, activity.ActivityLog{"a": burst}))

	svc := activity.NewService(NewActivityRepository(path), nil, activity.WithClock(func() time.Time { return now }))
	res, err := svc.Record(ctx, "a")
	require.ErrorIs(t, err, activity.ErrRateLimitExceeded)
	require.Equal(t, activity.OutcomeRejected, res.Outcome)

	log, err := LoadStore(path)
	require.NoError(t, err)
	require.Len(t, log["a"], 20)
}

func TestActivityService_WithMalformedJSONFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "output.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	svc := activity.NewService(NewActivityRepository(path), nil)
	res, err := svc.Record(ctx, "a")
	require.ErrorIs(t, err, activity.ErrStorageParse)
	require.Equal(t, activity.OutcomeStorageFailed, res.Outcome)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{not json", string(data))
}

func TestActivityService_ConcurrentRecordsAtThreshold(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "output.json")

	history := make([]activity.Timestamp, activity.DefaultWindow.Count-1)
	for i := range history {
		history[i] = activity.NewTimestamp(now)
	}
	require.NoError(t, SaveStore(path, activity.ActivityLog{"a": history}))

	svc := activity.NewService(NewActivityRepository(path), nil, activity.WithClock(func() time.Time { return now }))

	outcomes := make([]activity.Outcome, 10)
	var wg sync.WaitGroup
	for i := range outcomes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, _ := svc.Record(ctx, "a")
			outcomes[i] = res.Outcome
		}()
	}
	wg.Wait()

	recorded := 0
	for _, outcome := range outcomes {
		if outcome == activity.OutcomeRecorded {
			recorded++
		} else {
			assert.Equal(t, activity.OutcomeRejected, outcome)
		}
	}
	require.Equal(t, 1, recorded)

	log, err := LoadStore(path)
	require.NoError(t, err)
	require.Len(t, log["a"], activity.DefaultWindow.Count)
}
