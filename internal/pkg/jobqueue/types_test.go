package jobqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRetryLifecycle(t *testing.T) {
	job := &Job{
		ID:         "test-job",
		Type:       JobTypeSubscriptionSweep,
		Status:     JobStatusPending,
		CreatedAt:  time.Now(),
		MaxRetries: 2,
	}

	job.MarkAsProcessing()
	assert.Equal(t, JobStatusProcessing, job.Status)
	require.NotNil(t, job.ProcessedAt)

	job.MarkAsFailed("redis timeout")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, 1, job.RetryCount)
	assert.True(t, job.IsRetryable())

	job.MarkAsFailed("redis timeout")
	assert.Equal(t, 2, job.RetryCount)
	assert.False(t, job.IsRetryable(), "retries are exhausted at MaxRetries")
}

func TestMarkAsCompletedClearsError(t *testing.T) {
	job := &Job{ID: "test-job", Status: JobStatusProcessing, ErrorMsg: "previous attempt failed"}

	job.MarkAsCompleted()

	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.Empty(t, job.ErrorMsg)
	require.NotNil(t, job.CompletedAt)
}

func TestExpiryWarningPayloadRoundTrip(t *testing.T) {
	payload := ExpiryWarningJobPayload{SubscriptionID: 42, DaysLeft: 3}

	decoded, err := ExpiryWarningJobPayloadFromMap(payload.ToMap())
	require.NoError(t, err)
	assert.Equal(t, uint(42), decoded.SubscriptionID)
	assert.Equal(t, 3, decoded.DaysLeft)
}
