package quota

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/clock"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/entitlements"
)

// Change actions applied by a reconciliation pass.
const (
	ChangeReactivated = "reactivated"
	ChangeSuspended   = "suspended"
)

// Change records one status transition applied to a listing.
type Change struct {
	PropertyID uint   `json:"property_id"`
	Title      string `json:"title"`
	Action     string `json:"action"`
}

// Result summarizes a reconciliation pass over one owner's listings.
type Result struct {
	ActiveCount    int      `json:"active_count"`
	SuspendedCount int      `json:"suspended_count"`
	Limit          int      `json:"limit"`
	Changes        []Change `json:"changes"`
}

// Decision is the answer to a CanActivate preflight check. Denials are
// ordinary results carrying a reason, never errors.
type Decision struct {
	Allowed    bool   `json:"allowed"`
	Reason     string `json:"reason"`
	IsFreeSlot bool   `json:"is_free_slot"`
}

// Service reconciles the active/suspended state of an owner's listings
// against their subscription-derived limit.
//
// Rules:
//   - an owner's first-ever published listing is permanently free
//   - no valid subscription: only that first listing may be active
//   - valid subscription: 1 free + plan.MaxExtraListings
//   - the newest listings are suspended when the limit is exceeded
//   - only quota-caused suspensions are reverted automatically
type Service struct {
	repo Repository
	clk  clock.Clock
}

// NewService creates a quota service from an injected repository and clock.
func NewService(repo Repository, clk clock.Clock) *Service {
	return &Service{repo: repo, clk: clk}
}

// NewServiceFromDB creates a quota service backed by GORM, on the system clock.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db), clock.System{})
}

// Reconcile walks the owner's listings oldest-first and brings their
// active/suspended states in line with the current limit. The whole
// multi-row update runs in one transaction. Calling it again without an
// intervening state change is a no-op.
func (s *Service) Reconcile(ownerID uint) (*Result, error) {
	result := &Result{Changes: []Change{}}

	err := s.repo.Transaction(func(repo Repository) error {
		properties, err := repo.ListPropertiesByOwner(ownerID)
		if err != nil {
			return fmt.Errorf("list properties: %w", err)
		}
		if len(properties) == 0 {
			return nil
		}

		result.Limit = s.listingLimit(repo, ownerID)

		for i := range properties {
			property := &properties[i]
			position := i + 1

			if position <= result.Limit {
				if !property.IsQuotaSuspended() {
					continue
				}
				property.Status = models.PropertyStatusActive
				property.SuspensionReason = ""
				if err := repo.UpdatePropertyStatus(property.ID, property.Status, ""); err != nil {
					return fmt.Errorf("reactivate property %d: %w", property.ID, err)
				}
				result.Changes = append(result.Changes, Change{
					PropertyID: property.ID,
					Title:      property.Title,
					Action:     ChangeReactivated,
				})
				continue
			}

			if property.Status != models.PropertyStatusActive {
				continue
			}
			property.Status = models.PropertyStatusSuspended
			property.SuspensionReason = suspensionReason(position, result.Limit)
			if err := repo.UpdatePropertyStatus(property.ID, property.Status, property.SuspensionReason); err != nil {
				return fmt.Errorf("suspend property %d: %w", property.ID, err)
			}
			result.Changes = append(result.Changes, Change{
				PropertyID: property.ID,
				Title:      property.Title,
				Action:     ChangeSuspended,
			})
		}

		for i := range properties {
			switch properties[i].Status {
			case models.PropertyStatusActive:
				result.ActiveCount++
			case models.PropertyStatusSuspended:
				result.SuspendedCount++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CanActivate checks whether activating the given listing (0 for a new
// publish) is currently permitted, without mutating anything. The listing
// under consideration is excluded from the active count so reactivating an
// already-counted listing does not collide with its own slot.
func (s *Service) CanActivate(ownerID uint, propertyID uint) (Decision, error) {
	first, err := s.repo.FirstPropertyByOwner(ownerID)
	if err != nil {
		return Decision{}, fmt.Errorf("first property: %w", err)
	}

	if first == nil {
		return Decision{
			Allowed:    true,
			Reason:     "Your first listing is free and permanent",
			IsFreeSlot: true,
		}, nil
	}

	if propertyID != 0 && first.ID == propertyID {
		return Decision{
			Allowed:    true,
			Reason:     "This is your first listing (free and permanent)",
			IsFreeSlot: true,
		}, nil
	}

	subscription, err := s.validSubscription(s.repo, ownerID)
	if err != nil {
		return Decision{}, err
	}
	if subscription == nil {
		return Decision{
			Allowed: false,
			Reason:  "Your first listing is free. Additional listings require an active subscription.",
		}, nil
	}

	activeCount, err := s.repo.CountActiveByOwnerExcluding(ownerID, propertyID)
	if err != nil {
		return Decision{}, fmt.Errorf("count active: %w", err)
	}

	limit := entitlements.ListingLimit(subscription, s.clk.Now())
	if int(activeCount) >= limit {
		return Decision{
			Allowed: false,
			Reason: fmt.Sprintf(
				"You have reached the limit of %d active listings (1 free + %d from your %s plan)",
				limit, subscription.Plan.MaxExtraListings, subscription.Plan.Name,
			),
		}, nil
	}

	return Decision{
		Allowed: true,
		Reason:  fmt.Sprintf("You can activate this listing. %d slot(s) available", limit-int(activeCount)),
	}, nil
}

// listingLimit computes the owner's current active-listing allowance. A
// missing or lapsed subscription is the normal free case, not an error.
func (s *Service) listingLimit(repo Repository, ownerID uint) int {
	subscription, err := s.validSubscription(repo, ownerID)
	if err != nil {
		return entitlements.FreeListingLimit
	}
	return entitlements.ListingLimit(subscription, s.clk.Now())
}

// validSubscription returns the owner's active subscription when it is also
// valid by wall-clock, nil otherwise.
func (s *Service) validSubscription(repo Repository, ownerID uint) (*models.Subscription, error) {
	subscription, err := repo.ActiveSubscriptionByUser(ownerID)
	if err != nil {
		return nil, fmt.Errorf("active subscription: %w", err)
	}
	if subscription == nil || !subscription.IsValid(s.clk.Now()) {
		return nil, nil
	}
	return subscription, nil
}

// suspensionReason builds the quota-suspension message for a listing at the
// given position. Both variants carry the quota marker so a later
// reconciliation can tell them apart from manual suspensions.
func suspensionReason(position, limit int) string {
	if position == 2 && limit == 1 {
		return "An active subscription is required for additional listings. Your first listing is free and permanent."
	}
	return fmt.Sprintf(
		"You have reached your subscription plan limit. This is your listing #%d. Upgrade your plan to activate it.",
		position,
	)
}
