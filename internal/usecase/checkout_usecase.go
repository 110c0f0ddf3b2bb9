package usecase

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"rivalioo/internal/domain/cart"
	"rivalioo/internal/domain/entity"
	"rivalioo/internal/domain/repository"
	"rivalioo/internal/infrastructure/metrics"
	"rivalioo/pkg/errors"
	"rivalioo/pkg/logger"
)

// AnonymousUserID is the all-zero UUID recorded on orders when anonymous
// checkout is enabled.
var AnonymousUserID = uuid.Nil.String()

type CheckoutOptions struct {
	AllowAnonymous bool
	// MaxParallel bounds concurrent order calls. Zero means unbounded.
	MaxParallel int
}

type CheckoutUseCase struct {
	orderRepo   repository.RedemptionOrderRepository
	profileRepo repository.ProfileRepository
	publisher   RedemptionEventPublisher
	notifier    CheckoutNotifier
	opts        CheckoutOptions
	now         func() time.Time
}

func NewCheckoutUseCase(
	orderRepo repository.RedemptionOrderRepository,
	profileRepo repository.ProfileRepository,
	publisher RedemptionEventPublisher,
	opts CheckoutOptions,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		orderRepo:   orderRepo,
		profileRepo: profileRepo,
		publisher:   publisher,
		opts:        opts,
		now:         time.Now,
	}
}

// SetNotifier pushes each signed-in checkout result to the user's open
// connections.
func (uc *CheckoutUseCase) SetNotifier(notifier CheckoutNotifier) {
	uc.notifier = notifier
}

// ItemResult is the outcome of one redemption line.
type ItemResult struct {
	ItemID  string `json:"item_id"`
	OrderID string `json:"order_id,omitempty"`
	Err     error  `json:"-"`
	Error   string `json:"error,omitempty"`
}

type CheckoutResult struct {
	UserID      string       `json:"user_id"`
	Anonymous   bool         `json:"anonymous"`
	Redemptions []ItemResult `json:"redemptions"`
	// Product lines have no order path yet and are reported back untouched.
	UnsubmittedProducts []entity.CartItem `json:"unsubmitted_products"`
	CreditsSpent        int64             `json:"credits_spent"`
}

func (r *CheckoutResult) Succeeded() bool {
	return len(r.Failed()) == 0
}

func (r *CheckoutResult) Failed() []ItemResult {
	var out []ItemResult
	for _, ir := range r.Redemptions {
		if ir.Err != nil {
			out = append(out, ir)
		}
	}
	return out
}

// Created returns the ids of orders that were persisted.
func (r *CheckoutResult) Created() []string {
	var out []string
	for _, ir := range r.Redemptions {
		if ir.Err == nil && ir.OrderID != "" {
			out = append(out, ir.OrderID)
		}
	}
	return out
}

// Checkout submits one redemption order per redemption line in store. All
// calls run concurrently and all of them settle before it returns. Only one
// checkout per cart runs at a time. On success the lines that were checked
// out leave the cart; lines added meanwhile stay.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, userID string, store *cart.Store) (*CheckoutResult, error) {
	if !store.BeginCheckout() {
		metrics.CheckoutTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, errors.Conflict("Checkout already in progress for this cart")
	}
	defer store.EndCheckout()

	items := store.Items()
	if len(items) == 0 {
		metrics.CheckoutTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, errors.BadRequest("Cart is empty", nil)
	}

	result := &CheckoutResult{UserID: userID}
	if userID == "" {
		if !uc.opts.AllowAnonymous {
			metrics.CheckoutTotal.WithLabelValues(metrics.ResultRejected).Inc()
			return nil, errors.Unauthorized("Sign in to check out", nil)
		}
		logger.Warn("Anonymous checkout, recording orders under %s", AnonymousUserID)
		result.UserID = AnonymousUserID
		result.Anonymous = true
	}

	var redemptions []entity.CartItem
	for _, item := range items {
		if item.IsRedemption() {
			redemptions = append(redemptions, item)
		} else {
			result.UnsubmittedProducts = append(result.UnsubmittedProducts, item)
		}
	}

	if err := uc.validate(ctx, result, redemptions); err != nil {
		metrics.CheckoutTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, err
	}

	if n := len(result.UnsubmittedProducts); n > 0 {
		logger.Warn("Checkout for %s has %d product lines with no order path", result.UserID, n)
		metrics.UnsubmittedProductsTotal.Add(float64(n))
	}

	result.Redemptions = uc.submit(ctx, result.UserID, redemptions)

	for i, ir := range result.Redemptions {
		if ir.Err == nil {
			result.CreditsSpent += creditsOf(redemptions[i])
		}
	}

	if failed := result.Failed(); len(failed) > 0 {
		metrics.CheckoutTotal.WithLabelValues(metrics.ResultFailure).Inc()
		logger.Error("Checkout for %s failed: %d of %d redemption orders rejected, created orders: [%s]",
			result.UserID, len(failed), len(result.Redemptions), strings.Join(result.Created(), ", "))

		causes := make([]error, len(failed))
		for i, ir := range failed {
			causes[i] = ir.Err
		}
		uc.notify(result)
		return result, errors.CheckoutFailed(stderrors.Join(causes...))
	}

	metrics.CheckoutTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	logger.Info("Checkout for %s created %d redemption orders", result.UserID, len(result.Redemptions))

	if store.RemoveItems(items...) == 0 {
		store.Close()
	}
	uc.notify(result)

	return result, nil
}

type checkoutMessage struct {
	Type string          `json:"type"`
	Data *CheckoutResult `json:"data"`
}

func (uc *CheckoutUseCase) notify(result *CheckoutResult) {
	if uc.notifier == nil || result.Anonymous {
		return
	}
	payload, err := json.Marshal(checkoutMessage{Type: "checkout", Data: result})
	if err != nil {
		logger.Warn("Failed to encode checkout result for %s: %v", result.UserID, err)
		return
	}
	uc.notifier.SendToUser(result.UserID, payload)
}

func (uc *CheckoutUseCase) validate(ctx context.Context, result *CheckoutResult, redemptions []entity.CartItem) error {
	var required int64
	for _, item := range redemptions {
		if item.Metadata == nil || item.Metadata.PlayerID == "" {
			return errors.Validation("Player ID is required")
		}
		if item.Metadata.PackageID == "" {
			return errors.Validation("Package ID is required")
		}
		required += creditsOf(item)
	}

	if required == 0 || result.Anonymous || uc.profileRepo == nil {
		return nil
	}

	profile, err := uc.profileRepo.GetByID(ctx, result.UserID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			logger.Warn("Skipping credits check for %s: %v", result.UserID, err)
		}
		return nil
	}
	if required > profile.Credits {
		return errors.InsufficientCredits(required, profile.Credits)
	}
	return nil
}

func (uc *CheckoutUseCase) submit(ctx context.Context, userID string, redemptions []entity.CartItem) []ItemResult {
	results := make([]ItemResult, len(redemptions))

	var g errgroup.Group
	if uc.opts.MaxParallel > 0 {
		g.SetLimit(uc.opts.MaxParallel)
	}

	for i, item := range redemptions {
		i, item := i, item
		g.Go(func() error {
			results[i] = uc.createOrder(ctx, userID, item)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (uc *CheckoutUseCase) createOrder(ctx context.Context, userID string, item entity.CartItem) ItemResult {
	md := item.Metadata
	order := &entity.RedemptionOrder{
		UserID:      userID,
		PlayerID:    md.PlayerID,
		GameID:      md.GameID,
		PackageID:   md.PackageID,
		AmountName:  md.AmountName,
		CreditsCost: creditsOf(item),
		Status:      entity.RedemptionStatusPending,
		CreatedAt:   uc.now(),
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		metrics.RedemptionOrdersTotal.WithLabelValues(metrics.ResultFailure).Inc()
		logger.Warn("Redemption order for item %s rejected: %v", item.ID, err)
		return ItemResult{ItemID: item.ID, Err: err, Error: err.Error()}
	}

	metrics.RedemptionOrdersTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	if uc.publisher != nil {
		if err := uc.publisher.PublishRedemptionCreated(ctx, order); err != nil {
			logger.Warn("Failed to publish event for order %s: %v", order.ID, err)
		}
	}

	return ItemResult{ItemID: item.ID, OrderID: order.ID}
}

func creditsOf(item entity.CartItem) int64 {
	if item.Metadata == nil {
		return 0
	}
	return item.Metadata.CreditsCost * int64(item.Quantity)
}
