package featured

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/clock"
)

// SlotsPerTier caps how many listings each home-page tier shows. Tiers are
// never backfilled: a tier with fewer qualifying listings simply shows fewer.
const SlotsPerTier = 3

// Priority bonuses. The plan bonus is keyed by the plan's ordinal tier; the
// placement bonus by the purchased placement tier.
const (
	planBonusTop   = 1000
	planBonusMid   = 500
	planBonusBasic = 100

	placementBonusPremium  = 50
	placementBonusStandard = 25
)

// Entry pairs a listing with the placement it was scored on.
type Entry struct {
	Property  models.Property
	Placement models.FeaturedPlacement
	Priority  int64
}

// HomeSelection is the ranked featured set for the home page.
type HomeSelection struct {
	Premium  []Entry
	Standard []Entry
}

// Ranker computes the home-page featured slots. It is a pure read: every
// call recomputes from current placement and subscription state.
type Ranker struct {
	repo Repository
	clk  clock.Clock
}

// NewRanker creates a ranker from an injected repository and clock.
func NewRanker(repo Repository, clk clock.Clock) *Ranker {
	return &Ranker{repo: repo, clk: clk}
}

// NewRankerFromDB creates a ranker backed by GORM, on the system clock.
func NewRankerFromDB(db *gorm.DB) *Ranker {
	return NewRanker(NewRepository(db), clock.System{})
}

// RankForHome selects up to SlotsPerTier premium and standard listings,
// ordered by priority descending. Only active listings with a currently
// valid placement qualify; when a listing holds several valid placements the
// most recently purchased one is scored.
func (r *Ranker) RankForHome() (*HomeSelection, error) {
	now := r.clk.Now()

	properties, err := r.repo.ActivePropertiesWithValidPlacements(now)
	if err != nil {
		return nil, fmt.Errorf("load featured properties: %w", err)
	}

	subscriptions := make(map[uint]*models.Subscription)
	entries := make([]Entry, 0, len(properties))
	for _, property := range properties {
		placement := property.CurrentPlacement(now)
		if placement == nil {
			continue
		}

		subscription, ok := subscriptions[property.OwnerID]
		if !ok {
			subscription, err = r.repo.ActiveSubscriptionByUser(property.OwnerID)
			if err != nil {
				return nil, fmt.Errorf("owner %d subscription: %w", property.OwnerID, err)
			}
			subscriptions[property.OwnerID] = subscription
		}

		entries = append(entries, Entry{
			Property:  property,
			Placement: *placement,
			Priority:  r.Priority(placement, subscription),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Priority > entries[j].Priority
	})

	selection := &HomeSelection{}
	for _, entry := range entries {
		switch entry.Placement.Tier {
		case models.PlacementTierPremium:
			if len(selection.Premium) < SlotsPerTier {
				selection.Premium = append(selection.Premium, entry)
			}
		default:
			if len(selection.Standard) < SlotsPerTier {
				selection.Standard = append(selection.Standard, entry)
			}
		}
	}
	return selection, nil
}

// Priority scores one placement. Higher wins. The subscription may be nil
// or lapsed; both count as no plan bonus.
func (r *Ranker) Priority(placement *models.FeaturedPlacement, subscription *models.Subscription) int64 {
	var priority int64

	if subscription != nil && subscription.IsValid(r.clk.Now()) {
		switch subscription.Plan.Tier {
		case models.PlanTierTop:
			priority += planBonusTop
		case models.PlanTierMid:
			priority += planBonusMid
		case models.PlanTierBasic:
			priority += planBonusBasic
		}
	}

	if placement.Tier == models.PlacementTierPremium {
		priority += placementBonusPremium
	} else {
		priority += placementBonusStandard
	}

	// Coarse recency term: more recent purchases outrank older ones inside
	// the same plan/placement bucket.
	priority += placement.PurchasedAt.Unix() / 1000

	return priority
}
