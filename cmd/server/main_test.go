package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rpggio/burstguard/internal/config"
	"github.com/rpggio/burstguard/internal/domain/activity"
	"github.com/rpggio/burstguard/internal/jsonfile"
	"github.com/rpggio/burstguard/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestRunOnce_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "output.json")
	repo, closeRepo, err := openRepository(config.StorageConfig{Backend: config.BackendJSON, Path: path})
	require.NoError(t, err)
	t.Cleanup(closeRepo)

	var logs bytes.Buffer
	logger := logging.New(&logs, "info")
	svc := activity.NewService(repo, logger)

	res := runOnce(context.Background(), logger, svc, ".$emad:@test2.com")
	require.Equal(t, activity.OutcomeRecorded, res.Outcome)
	require.Contains(t, logs.String(), "activity recorded")

	log, err := jsonfile.LoadStore(path)
	require.NoError(t, err)
	require.Len(t, log[".$emad:@test2.com"], 1)
}

func TestRunOnce_SQLiteRejectsBurst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.db")
	repo, closeRepo, err := openRepository(config.StorageConfig{Backend: config.BackendSQLite, Path: path})
	require.NoError(t, err)
	t.Cleanup(closeRepo)

	var logs bytes.Buffer
	logger := logging.New(&logs, "info")
	svc := activity.NewService(repo, logger)

	for i := 0; i < activity.DefaultWindow.Count; i++ {
		require.Equal(t, activity.OutcomeRecorded, runOnce(context.Background(), logger, svc, "a").Outcome)
	}
	res := runOnce(context.Background(), logger, svc, "a")
	require.Equal(t, activity.OutcomeRejected, res.Outcome)
	require.Contains(t, logs.String(), "activity rejected")
}
