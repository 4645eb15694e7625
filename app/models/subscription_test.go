package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionIsValid(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	sub := Subscription{Status: SubscriptionStatusActive, ExpiresAt: now.AddDate(0, 0, 30)}
	assert.True(t, sub.IsValid(now))

	sub.Status = SubscriptionStatusCancelled
	assert.False(t, sub.IsValid(now), "cancelled subscriptions carry no entitlements")

	sub.Status = SubscriptionStatusActive
	sub.ExpiresAt = now.Add(-time.Hour)
	assert.False(t, sub.IsValid(now), "active status alone is not enough past expiry")
}

func TestSubscriptionDaysLeft(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	sub := Subscription{Status: SubscriptionStatusActive, ExpiresAt: now.AddDate(0, 0, 10)}
	assert.Equal(t, 10, sub.DaysLeft(now))

	sub.ExpiresAt = now.Add(-time.Hour)
	assert.Equal(t, 0, sub.DaysLeft(now))
}

func TestSubscriptionIsExpiringSoon(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	sub := Subscription{Status: SubscriptionStatusActive, ExpiresAt: now.AddDate(0, 0, 3)}
	assert.True(t, sub.IsExpiringSoon(now))

	sub.ExpiresAt = now.AddDate(0, 0, 20)
	assert.False(t, sub.IsExpiringSoon(now))

	sub.ExpiresAt = now.Add(-time.Hour)
	assert.False(t, sub.IsExpiringSoon(now), "already lapsed is not expiring")
}
