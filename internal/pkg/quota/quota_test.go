package quota

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/clock"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeRepository keeps everything in memory so reconciliation logic can be
// tested without a database.
type fakeRepository struct {
	properties   []models.Property
	subscription *models.Subscription
	updateCalls  int
}

func (f *fakeRepository) ListPropertiesByOwner(ownerID uint) ([]models.Property, error) {
	var out []models.Property
	for _, p := range f.properties {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepository) FirstPropertyByOwner(ownerID uint) (*models.Property, error) {
	for i := range f.properties {
		if f.properties[i].OwnerID == ownerID {
			p := f.properties[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) ActiveSubscriptionByUser(userID uint) (*models.Subscription, error) {
	if f.subscription != nil && f.subscription.UserID == userID {
		return f.subscription, nil
	}
	return nil, nil
}

func (f *fakeRepository) CountActiveByOwnerExcluding(ownerID uint, excludePropertyID uint) (int64, error) {
	var count int64
	for _, p := range f.properties {
		if p.OwnerID == ownerID && p.Status == models.PropertyStatusActive && p.ID != excludePropertyID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) UpdatePropertyStatus(propertyID uint, status, reason string) error {
	f.updateCalls++
	for i := range f.properties {
		if f.properties[i].ID == propertyID {
			f.properties[i].Status = status
			f.properties[i].SuspensionReason = reason
			return nil
		}
	}
	return fmt.Errorf("property %d not found", propertyID)
}

func (f *fakeRepository) Transaction(fn func(Repository) error) error {
	return fn(f)
}

func ownerProperties(count int) []models.Property {
	properties := make([]models.Property, 0, count)
	for i := 0; i < count; i++ {
		properties = append(properties, models.Property{
			ID:          uint(i + 1),
			OwnerID:     1,
			Title:       fmt.Sprintf("Listing %d", i+1),
			Status:      models.PropertyStatusActive,
			PublishedAt: testNow.Add(time.Duration(i-30) * 24 * time.Hour),
		})
	}
	return properties
}

func validSubscription(maxExtra int) *models.Subscription {
	return &models.Subscription{
		ID:        1,
		UserID:    1,
		Status:    models.SubscriptionStatusActive,
		StartedAt: testNow.Add(-10 * 24 * time.Hour),
		ExpiresAt: testNow.Add(20 * 24 * time.Hour),
		Plan: models.SubscriptionPlan{
			Name:             "Standard",
			MaxExtraListings: maxExtra,
			Tier:             models.PlanTierMid,
		},
	}
}

func newTestService(repo *fakeRepository) *Service {
	return NewService(repo, clock.Fixed{T: testNow})
}

func TestReconcileNoSubscriptionKeepsOldestActive(t *testing.T) {
	repo := &fakeRepository{properties: ownerProperties(3)}
	svc := newTestService(repo)

	result, err := svc.Reconcile(1)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Limit)
	assert.Equal(t, 1, result.ActiveCount)
	assert.Equal(t, 2, result.SuspendedCount)
	assert.Len(t, result.Changes, 2)

	assert.Equal(t, models.PropertyStatusActive, repo.properties[0].Status)
	assert.Equal(t, models.PropertyStatusSuspended, repo.properties[1].Status)
	assert.Equal(t, models.PropertyStatusSuspended, repo.properties[2].Status)

	// Listing #2 gets the needs-a-subscription message, #3 the numbered one.
	assert.Contains(t, repo.properties[1].SuspensionReason, "subscription is required")
	assert.Contains(t, repo.properties[1].SuspensionReason, "free and permanent")
	assert.Contains(t, repo.properties[2].SuspensionReason, "#3")
}

func TestReconcileWithPlanLimit(t *testing.T) {
	repo := &fakeRepository{
		properties:   ownerProperties(4),
		subscription: validSubscription(2),
	}
	svc := newTestService(repo)

	result, err := svc.Reconcile(1)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Limit)
	assert.Equal(t, 3, result.ActiveCount)
	assert.Equal(t, 1, result.SuspendedCount)
	assert.Len(t, result.Changes, 1)
	assert.Equal(t, ChangeSuspended, result.Changes[0].Action)
	assert.Equal(t, uint(4), result.Changes[0].PropertyID)
}

func TestReconcileIsIdempotent(t *testing.T) {
	repo := &fakeRepository{properties: ownerProperties(3)}
	svc := newTestService(repo)

	first, err := svc.Reconcile(1)
	assert.NoError(t, err)
	assert.Len(t, first.Changes, 2)

	second, err := svc.Reconcile(1)
	assert.NoError(t, err)
	assert.Empty(t, second.Changes)
	assert.Equal(t, first.ActiveCount, second.ActiveCount)
	assert.Equal(t, first.SuspendedCount, second.SuspendedCount)
}

func TestReconcileReactivatesQuotaSuspendedListings(t *testing.T) {
	repo := &fakeRepository{properties: ownerProperties(3)}
	svc := newTestService(repo)

	_, err := svc.Reconcile(1)
	assert.NoError(t, err)

	// Owner subscribes; the quota-suspended listings come back.
	repo.subscription = validSubscription(5)

	result, err := svc.Reconcile(1)
	assert.NoError(t, err)
	assert.Equal(t, 6, result.Limit)
	assert.Equal(t, 3, result.ActiveCount)
	assert.Equal(t, 0, result.SuspendedCount)
	assert.Len(t, result.Changes, 2)
	for _, change := range result.Changes {
		assert.Equal(t, ChangeReactivated, change.Action)
	}
	for _, p := range repo.properties {
		assert.Empty(t, p.SuspensionReason)
	}
}

func TestReconcileNeverRevertsManualSuspensions(t *testing.T) {
	properties := ownerProperties(2)
	properties[1].Status = models.PropertyStatusSuspended
	properties[1].SuspensionReason = ""

	repo := &fakeRepository{
		properties:   properties,
		subscription: validSubscription(5),
	}
	svc := newTestService(repo)

	result, err := svc.Reconcile(1)
	assert.NoError(t, err)
	assert.Empty(t, result.Changes)
	assert.Equal(t, models.PropertyStatusSuspended, repo.properties[1].Status)
}

func TestReconcileWithoutProperties(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo)

	result, err := svc.Reconcile(1)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.ActiveCount)
	assert.Equal(t, 0, result.SuspendedCount)
	assert.Empty(t, result.Changes)
	assert.Zero(t, repo.updateCalls)
}

func TestReconcileIgnoresLapsedSubscription(t *testing.T) {
	sub := validSubscription(5)
	sub.ExpiresAt = testNow.Add(-time.Hour)

	repo := &fakeRepository{
		properties:   ownerProperties(2),
		subscription: sub,
	}
	svc := newTestService(repo)

	result, err := svc.Reconcile(1)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Limit)
	assert.Equal(t, models.PropertyStatusSuspended, repo.properties[1].Status)
}

func TestSuspensionReasonsCarryQuotaMarker(t *testing.T) {
	for _, tt := range []struct {
		position int
		limit    int
	}{
		{position: 2, limit: 1},
		{position: 3, limit: 1},
		{position: 7, limit: 4},
	} {
		reason := suspensionReason(tt.position, tt.limit)
		assert.True(t, strings.Contains(reason, models.QuotaSuspensionMarker),
			"reason %q must carry the quota marker", reason)
	}
}

func TestSuspensionReasonVariants(t *testing.T) {
	// The second listing of an unsubscribed owner gets the needs-a-
	// subscription message, never a numbered one.
	second := suspensionReason(2, 1)
	assert.Contains(t, second, "An active subscription is required")
	assert.Contains(t, second, "free and permanent")
	assert.NotContains(t, second, "#2")

	// Every later position names the listing's number.
	third := suspensionReason(3, 1)
	assert.Contains(t, third, "listing #3")
	assert.Contains(t, third, "plan limit")

	over := suspensionReason(7, 4)
	assert.Contains(t, over, "listing #7")
}

func TestCanActivateBrandNewOwner(t *testing.T) {
	svc := newTestService(&fakeRepository{})

	decision, err := svc.CanActivate(1, 0)
	assert.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.True(t, decision.IsFreeSlot)
}

func TestCanActivateFirstListingAlwaysAllowed(t *testing.T) {
	repo := &fakeRepository{properties: ownerProperties(3)}
	svc := newTestService(repo)

	decision, err := svc.CanActivate(1, 1)
	assert.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.True(t, decision.IsFreeSlot)
}

func TestCanActivateDeniedWithoutSubscription(t *testing.T) {
	repo := &fakeRepository{properties: ownerProperties(2)}
	svc := newTestService(repo)

	decision, err := svc.CanActivate(1, 2)
	assert.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.False(t, decision.IsFreeSlot)
	assert.Contains(t, decision.Reason, "subscription")
}

func TestCanActivateAgainstPlanLimit(t *testing.T) {
	repo := &fakeRepository{
		properties:   ownerProperties(3),
		subscription: validSubscription(1),
	}
	svc := newTestService(repo)

	// 3 active listings, limit 2: a fourth listing is denied.
	decision, err := svc.CanActivate(1, 0)
	assert.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.Reason, "limit of 2")

	// Re-activating an already-counted listing excludes itself from the
	// count, so it does not collide with its own slot.
	repo.properties[2].Status = models.PropertyStatusSuspended
	decision, err = svc.CanActivate(1, 2)
	assert.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.False(t, decision.IsFreeSlot)
}
