package featured

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/clock"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeRepository struct {
	properties    []models.Property
	subscriptions map[uint]*models.Subscription
}

func (f *fakeRepository) ActivePropertiesWithValidPlacements(now time.Time) ([]models.Property, error) {
	var out []models.Property
	for _, p := range f.properties {
		if p.Status != models.PropertyStatusActive {
			continue
		}
		for _, fp := range p.Placements {
			if fp.IsCurrent(now) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepository) ActiveSubscriptionByUser(userID uint) (*models.Subscription, error) {
	return f.subscriptions[userID], nil
}

func newTestRanker(repo *fakeRepository) *Ranker {
	return NewRanker(repo, clock.Fixed{T: testNow})
}

func placement(tier string, purchasedAt time.Time) models.FeaturedPlacement {
	return models.FeaturedPlacement{
		Tier:        tier,
		StartsAt:    purchasedAt,
		EndsAt:      testNow.Add(7 * 24 * time.Hour),
		PurchasedAt: purchasedAt,
		Active:      true,
	}
}

func featuredProperty(id uint, ownerID uint, placements ...models.FeaturedPlacement) models.Property {
	return models.Property{
		ID:         id,
		OwnerID:    ownerID,
		Title:      fmt.Sprintf("Listing %d", id),
		Status:     models.PropertyStatusActive,
		Placements: placements,
	}
}

func TestRankForHomeCapsSlotsWithoutBackfill(t *testing.T) {
	repo := &fakeRepository{}
	for i := uint(1); i <= 4; i++ {
		repo.properties = append(repo.properties,
			featuredProperty(i, i, placement(models.PlacementTierPremium, testNow.Add(-time.Duration(i)*time.Hour))))
	}
	for i := uint(5); i <= 6; i++ {
		repo.properties = append(repo.properties,
			featuredProperty(i, i, placement(models.PlacementTierStandard, testNow.Add(-time.Duration(i)*time.Hour))))
	}

	selection, err := newTestRanker(repo).RankForHome()
	assert.NoError(t, err)
	assert.Len(t, selection.Premium, 3)
	assert.Len(t, selection.Standard, 2)
}

func TestRankForHomeExcludesExpiredPlacements(t *testing.T) {
	expired := placement(models.PlacementTierPremium, testNow.Add(-40*24*time.Hour))
	expired.EndsAt = testNow.Add(-time.Hour)
	// Active flag still set, but the window has passed.
	assert.True(t, expired.Active)

	repo := &fakeRepository{properties: []models.Property{
		featuredProperty(1, 1, expired),
		featuredProperty(2, 2, placement(models.PlacementTierStandard, testNow.Add(-time.Hour))),
	}}

	selection, err := newTestRanker(repo).RankForHome()
	assert.NoError(t, err)
	assert.Empty(t, selection.Premium)
	assert.Len(t, selection.Standard, 1)
	assert.Equal(t, uint(2), selection.Standard[0].Property.ID)
}

func TestRankForHomeEmptyIsValid(t *testing.T) {
	selection, err := newTestRanker(&fakeRepository{}).RankForHome()
	assert.NoError(t, err)
	assert.Empty(t, selection.Premium)
	assert.Empty(t, selection.Standard)
}

func TestRankForHomeOrdersByPriority(t *testing.T) {
	// No subscriptions: premium bonus 50 plus the purchase recency term.
	// 1_100_000s/1000 = 1100 -> 1150; 1_075_000s/1000 = 1075 -> 1125.
	repo := &fakeRepository{properties: []models.Property{
		featuredProperty(1, 1, placement(models.PlacementTierPremium, time.Unix(1_075_000, 0))),
		featuredProperty(2, 2, placement(models.PlacementTierPremium, time.Unix(1_100_000, 0))),
	}}

	selection, err := newTestRanker(repo).RankForHome()
	assert.NoError(t, err)
	assert.Len(t, selection.Premium, 2)
	assert.Equal(t, int64(1150), selection.Premium[0].Priority)
	assert.Equal(t, int64(1125), selection.Premium[1].Priority)
	assert.Equal(t, uint(2), selection.Premium[0].Property.ID)
}

func TestRankForHomeScoresMostRecentPlacement(t *testing.T) {
	older := placement(models.PlacementTierPremium, testNow.Add(-48*time.Hour))
	newer := placement(models.PlacementTierStandard, testNow.Add(-time.Hour))

	repo := &fakeRepository{properties: []models.Property{
		featuredProperty(1, 1, older, newer),
	}}

	selection, err := newTestRanker(repo).RankForHome()
	assert.NoError(t, err)
	assert.Empty(t, selection.Premium)
	assert.Len(t, selection.Standard, 1)
	assert.Equal(t, newer.PurchasedAt, selection.Standard[0].Placement.PurchasedAt)
}

func TestPriorityPlanBonuses(t *testing.T) {
	ranker := newTestRanker(&fakeRepository{})
	fp := placement(models.PlacementTierPremium, time.Unix(0, 0))

	subscriptionWithTier := func(tier int) *models.Subscription {
		return &models.Subscription{
			Status:    models.SubscriptionStatusActive,
			ExpiresAt: testNow.Add(24 * time.Hour),
			Plan:      models.SubscriptionPlan{Tier: tier},
		}
	}

	tests := []struct {
		name         string
		subscription *models.Subscription
		want         int64
	}{
		{name: "no subscription", subscription: nil, want: 50},
		{name: "basic tier", subscription: subscriptionWithTier(models.PlanTierBasic), want: 150},
		{name: "mid tier", subscription: subscriptionWithTier(models.PlanTierMid), want: 550},
		{name: "top tier", subscription: subscriptionWithTier(models.PlanTierTop), want: 1050},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ranker.Priority(&fp, tt.subscription))
		})
	}
}

func TestPriorityIgnoresLapsedSubscription(t *testing.T) {
	ranker := newTestRanker(&fakeRepository{})
	fp := placement(models.PlacementTierStandard, time.Unix(0, 0))

	lapsed := &models.Subscription{
		Status:    models.SubscriptionStatusActive,
		ExpiresAt: testNow.Add(-time.Hour),
		Plan:      models.SubscriptionPlan{Tier: models.PlanTierTop},
	}

	assert.Equal(t, int64(25), ranker.Priority(&fp, lapsed))
}
