package usecase

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rivalioo/internal/domain/cart"
	"rivalioo/internal/domain/entity"
	"rivalioo/internal/domain/repository"
	"rivalioo/pkg/errors"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func redemptionLine(pkgID string, cost int64) entity.CartItem {
	game := entity.RedeemableGame{ID: "bgmi", Name: "BGMI"}
	pkg := entity.RedeemablePackage{ID: pkgID, GameID: "bgmi", AmountName: pkgID, CreditsCost: cost}
	item := cart.NewRedemptionItem(game, pkg, "5123456789", testNow)
	item.ID = "redemption-" + pkgID
	return item
}

func productLine() entity.CartItem {
	return entity.CartItem{
		ID:       "tournament-pass",
		Name:     "Tournament Entry Pass",
		Price:    decimal.NewFromInt(100),
		Currency: entity.CurrencyINR,
		Type:     entity.CartItemProduct,
		Quantity: 1,
	}
}

func orderFor(pkgID string) interface{} {
	return mock.MatchedBy(func(o *entity.RedemptionOrder) bool { return o.PackageID == pkgID })
}

func assignID(id string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*entity.RedemptionOrder).ID = id
	}
}

func newTestCheckout(orders *mockOrderRepository, profiles repository.ProfileRepository, opts CheckoutOptions) *CheckoutUseCase {
	uc := NewCheckoutUseCase(orders, profiles, nil, opts)
	uc.now = func() time.Time { return testNow }
	return uc
}

func TestCheckoutSubmitsOnlyRedemptions(t *testing.T) {
	orders := new(mockOrderRepository)
	profiles := new(mockProfileRepository)
	publisher := new(mockPublisher)

	orders.On("Create", mock.Anything, orderFor("uc-60")).Run(assignID("order-1")).Return(nil).Once()
	orders.On("Create", mock.Anything, orderFor("uc-325")).Run(assignID("order-2")).Return(nil).Once()
	profiles.On("GetByID", mock.Anything, "user-1").Return(&entity.Profile{ID: "user-1", Credits: 1000}, nil)
	publisher.On("PublishRedemptionCreated", mock.Anything, mock.Anything).Return(nil).Twice()

	store := cart.NewStore()
	store.AddItem(redemptionLine("uc-60", 75))
	store.AddItem(productLine())
	store.AddItem(redemptionLine("uc-325", 380))

	uc := NewCheckoutUseCase(orders, profiles, publisher, CheckoutOptions{MaxParallel: 2})
	result, err := uc.Checkout(context.Background(), "user-1", store)
	require.NoError(t, err)

	orders.AssertNumberOfCalls(t, "Create", 2)
	publisher.AssertExpectations(t)

	assert.True(t, result.Succeeded())
	assert.ElementsMatch(t, []string{"order-1", "order-2"}, result.Created())
	require.Len(t, result.UnsubmittedProducts, 1)
	assert.Equal(t, "tournament-pass", result.UnsubmittedProducts[0].ID)
	assert.Equal(t, int64(455), result.CreditsSpent)

	assert.Equal(t, 0, store.Len())
	assert.False(t, store.IsOpen())
}

func TestCheckoutOneRejectionFailsWholeCheckout(t *testing.T) {
	orders := new(mockOrderRepository)
	profiles := new(mockProfileRepository)

	orders.On("Create", mock.Anything, orderFor("uc-60")).Run(assignID("order-1")).Return(nil).Once()
	orders.On("Create", mock.Anything, orderFor("uc-325")).Return(stderrors.New("backend unavailable")).Once()
	profiles.On("GetByID", mock.Anything, "user-1").Return(nil, errors.NotFound("Profile", nil))

	store := cart.NewStore()
	store.AddItem(redemptionLine("uc-60", 75))
	store.AddItem(redemptionLine("uc-325", 380))
	store.AddItem(productLine())

	result, err := newTestCheckout(orders, profiles, CheckoutOptions{}).Checkout(context.Background(), "user-1", store)

	require.Error(t, err)
	assert.True(t, errors.Is(err, "CHECKOUT_FAILED"))
	assert.Equal(t, "CHECKOUT_FAILED: Checkout failed", err.Error())

	// Both calls settle even though one failed.
	orders.AssertNumberOfCalls(t, "Create", 2)

	require.NotNil(t, result)
	assert.False(t, result.Succeeded())
	assert.Equal(t, []string{"order-1"}, result.Created())
	failed := result.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "redemption-uc-325", failed[0].ItemID)
	assert.Contains(t, failed[0].Error, "backend unavailable")
	assert.Equal(t, int64(75), result.CreditsSpent)

	// Cart stays intact for a retry.
	assert.Equal(t, 3, store.Len())
}

func TestCheckoutRejectsOverlappingCheckoutOfSameCart(t *testing.T) {
	orders := new(mockOrderRepository)
	entered := make(chan struct{})
	release := make(chan struct{})

	orders.On("Create", mock.Anything, orderFor("uc-60")).Run(func(args mock.Arguments) {
		close(entered)
		<-release
		args.Get(1).(*entity.RedemptionOrder).ID = "order-1"
	}).Return(nil).Once()

	store := cart.NewStore()
	store.AddItem(redemptionLine("uc-60", 75))
	uc := newTestCheckout(orders, nil, CheckoutOptions{})

	type outcome struct {
		result *CheckoutResult
		err    error
	}
	first := make(chan outcome, 1)
	go func() {
		result, err := uc.Checkout(context.Background(), "user-1", store)
		first <- outcome{result, err}
	}()
	<-entered

	_, err := uc.Checkout(context.Background(), "user-1", store)
	assert.True(t, errors.Is(err, "CONFLICT"))

	close(release)
	got := <-first
	require.NoError(t, got.err)
	assert.Equal(t, []string{"order-1"}, got.result.Created())
	orders.AssertNumberOfCalls(t, "Create", 1)

	// The lock is released once the first checkout settles.
	_, err = uc.Checkout(context.Background(), "user-1", store)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCheckoutKeepsLinesAddedWhileSubmitting(t *testing.T) {
	orders := new(mockOrderRepository)
	store := cart.NewStore()
	store.AddItem(redemptionLine("uc-60", 75))

	orders.On("Create", mock.Anything, orderFor("uc-60")).Run(func(args mock.Arguments) {
		store.AddItem(productLine())
		args.Get(1).(*entity.RedemptionOrder).ID = "order-1"
	}).Return(nil).Once()

	result, err := newTestCheckout(orders, nil, CheckoutOptions{}).Checkout(context.Background(), "user-1", store)
	require.NoError(t, err)
	assert.Empty(t, result.UnsubmittedProducts)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "tournament-pass", items[0].ID)
	assert.True(t, store.IsOpen())
}

func TestCheckoutNotifiesSignedInUser(t *testing.T) {
	orders := new(mockOrderRepository)
	orders.On("Create", mock.Anything, orderFor("uc-60")).Run(assignID("order-1")).Return(nil).Once()
	notifier := &fakeNotifier{}

	store := cart.NewStore()
	store.AddItem(redemptionLine("uc-60", 75))
	uc := newTestCheckout(orders, nil, CheckoutOptions{})
	uc.SetNotifier(notifier)

	_, err := uc.Checkout(context.Background(), "user-1", store)
	require.NoError(t, err)

	messages := notifier.messagesFor("user-1")
	require.Len(t, messages, 1)
	var msg struct {
		Type string         `json:"type"`
		Data CheckoutResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(messages[0], &msg))
	assert.Equal(t, "checkout", msg.Type)
	require.Len(t, msg.Data.Redemptions, 1)
	assert.Equal(t, "order-1", msg.Data.Redemptions[0].OrderID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	orders := new(mockOrderRepository)

	_, err := newTestCheckout(orders, nil, CheckoutOptions{}).Checkout(context.Background(), "user-1", cart.NewStore())

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutAnonymousPolicy(t *testing.T) {
	t.Run("rejected by default", func(t *testing.T) {
		orders := new(mockOrderRepository)
		store := cart.NewStore()
		store.AddItem(redemptionLine("uc-60", 75))

		_, err := newTestCheckout(orders, nil, CheckoutOptions{}).Checkout(context.Background(), "", store)

		assert.True(t, errors.Is(err, "UNAUTHORIZED"))
		orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("sentinel id when allowed", func(t *testing.T) {
		orders := new(mockOrderRepository)
		orders.On("Create", mock.Anything, mock.MatchedBy(func(o *entity.RedemptionOrder) bool {
			return o.UserID == "00000000-0000-0000-0000-000000000000"
		})).Return(nil).Once()

		store := cart.NewStore()
		store.AddItem(redemptionLine("uc-60", 75))

		result, err := newTestCheckout(orders, new(mockProfileRepository), CheckoutOptions{AllowAnonymous: true}).
			Checkout(context.Background(), "", store)

		require.NoError(t, err)
		assert.True(t, result.Anonymous)
		assert.Equal(t, AnonymousUserID, result.UserID)
		orders.AssertExpectations(t)
	})
}

func TestCheckoutValidatesBeforeAnyCall(t *testing.T) {
	missingPlayer := redemptionLine("uc-60", 75)
	missingPlayer.Metadata.PlayerID = ""

	missingPackage := redemptionLine("uc-325", 380)
	missingPackage.Metadata.PackageID = ""

	noMetadata := redemptionLine("uc-660", 750)
	noMetadata.Metadata = nil

	tests := []struct {
		name string
		item entity.CartItem
		msg  string
	}{
		{"missing player id", missingPlayer, "Player ID is required"},
		{"missing package id", missingPackage, "Package ID is required"},
		{"no metadata", noMetadata, "Player ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(mockOrderRepository)
			store := cart.NewStore()
			store.AddItem(redemptionLine("uc-60", 75))
			store.AddItem(tt.item)

			_, err := newTestCheckout(orders, nil, CheckoutOptions{}).Checkout(context.Background(), "user-1", store)

			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			assert.Equal(t, tt.msg, appErr.Message)
			orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCheckoutInsufficientCredits(t *testing.T) {
	orders := new(mockOrderRepository)
	profiles := new(mockProfileRepository)
	profiles.On("GetByID", mock.Anything, "user-1").Return(&entity.Profile{ID: "user-1", Credits: 100}, nil)

	store := cart.NewStore()
	line := redemptionLine("uc-60", 75)
	line.Quantity = 2
	store.AddItem(line)

	_, err := newTestCheckout(orders, profiles, CheckoutOptions{}).Checkout(context.Background(), "user-1", store)

	assert.True(t, errors.Is(err, "INSUFFICIENT_CREDITS"))
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutSkipsCreditsCheckWhenProfileLookupFails(t *testing.T) {
	orders := new(mockOrderRepository)
	profiles := new(mockProfileRepository)
	profiles.On("GetByID", mock.Anything, "user-1").Return(nil, stderrors.New("timeout"))
	orders.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	store := cart.NewStore()
	store.AddItem(redemptionLine("uc-60", 75))

	result, err := newTestCheckout(orders, profiles, CheckoutOptions{}).Checkout(context.Background(), "user-1", store)

	require.NoError(t, err)
	assert.True(t, result.Succeeded())
}

func TestCheckoutProductsOnly(t *testing.T) {
	orders := new(mockOrderRepository)

	store := cart.NewStore()
	store.AddItem(productLine())

	result, err := newTestCheckout(orders, new(mockProfileRepository), CheckoutOptions{}).
		Checkout(context.Background(), "user-1", store)

	require.NoError(t, err)
	assert.Empty(t, result.Redemptions)
	assert.Len(t, result.UnsubmittedProducts, 1)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutPublishFailureIsIgnored(t *testing.T) {
	orders := new(mockOrderRepository)
	publisher := new(mockPublisher)
	orders.On("Create", mock.Anything, mock.Anything).Run(assignID("order-1")).Return(nil).Once()
	publisher.On("PublishRedemptionCreated", mock.Anything, mock.Anything).Return(stderrors.New("broker down")).Once()

	store := cart.NewStore()
	store.AddItem(redemptionLine("uc-60", 75))

	uc := NewCheckoutUseCase(orders, nil, publisher, CheckoutOptions{})
	result, err := uc.Checkout(context.Background(), "user-1", store)

	require.NoError(t, err)
	assert.Equal(t, []string{"order-1"}, result.Created())
	publisher.AssertExpectations(t)
}
