package checkout_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmesh/shopmesh/common/headers"
	"github.com/shopmesh/shopmesh/common/test"
	"github.com/shopmesh/shopmesh/internal/frontend/checkout"
	"github.com/shopmesh/shopmesh/internal/frontend/session"
	"github.com/shopmesh/shopmesh/internal/model"
)

// fakeOrders implements checkout.OrderService and records every call.
type fakeOrders struct {
	fetchOrder  model.OrderSnapshot
	fetchErr    error
	checkoutErr error

	fetchCalls    int
	checkoutCalls int
}

func (f *fakeOrders) Fetch(_ context.Context, _ string, fwd headers.ForwardedHeaderSet) (model.OrderSnapshot, headers.ForwardedHeaderSet, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return model.EmptyOrder(), nil, f.fetchErr
	}
	return f.fetchOrder, fwd, nil
}

func (f *fakeOrders) Checkout(_ context.Context, _ string, fwd headers.ForwardedHeaderSet) (model.OrderSnapshot, headers.ForwardedHeaderSet, error) {
	f.checkoutCalls++
	if f.checkoutErr != nil {
		return model.EmptyOrder(), nil, f.checkoutErr
	}
	return f.fetchOrder, fwd, nil
}

func authedSession(t *testing.T) *session.Session {
	t.Helper()
	sess := session.New("s1")
	sess.SetCredential("K")
	return sess
}

func TestCheckoutRequiresLogin(t *testing.T) {
	orders := &fakeOrders{}
	r := checkout.NewReconciler(orders, test.NewLogger(t))

	sess := session.New("s1")
	sess.SetCachedOrder(model.OrderSnapshot{Items: map[string]int{"p1": 1}, Total: 5})

	_, err := r.Checkout(context.Background(), sess, nil)
	pre, ok := checkout.AsPrecondition(err)
	require.True(t, ok)
	assert.Equal(t, checkout.RouteLogin, pre.RedirectTo)
	assert.Zero(t, orders.fetchCalls)
	assert.Zero(t, orders.checkoutCalls)
}

func TestCheckoutBlocksOnEmptyCachedOrder(t *testing.T) {
	orders := &fakeOrders{}
	r := checkout.NewReconciler(orders, test.NewLogger(t))

	_, err := r.Checkout(context.Background(), authedSession(t), nil)
	pre, ok := checkout.AsPrecondition(err)
	require.True(t, ok)
	assert.Equal(t, checkout.RouteHome, pre.RedirectTo)

	// the remote checkout endpoint must never be reached
	assert.Zero(t, orders.fetchCalls)
	assert.Zero(t, orders.checkoutCalls)
}

func TestCheckoutRefetchesBeforePlacing(t *testing.T) {
	orders := &fakeOrders{
		fetchOrder: model.OrderSnapshot{Items: map[string]int{"p1": 2}, Total: 19.98},
	}
	r := checkout.NewReconciler(orders, test.NewLogger(t))

	sess := authedSession(t)
	// stale cache claims a different item set; the authoritative copy wins
	sess.SetCachedOrder(model.OrderSnapshot{Items: map[string]int{"p9": 1}, Total: 1})

	_, err := r.Checkout(context.Background(), sess, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, orders.fetchCalls)
	assert.Equal(t, 1, orders.checkoutCalls)

	// after checkout the cache is back to the empty default
	assert.Equal(t, model.EmptyOrder(), sess.CachedOrder())

	// the confirmation view sees the authoritative final order
	final, err := r.ConfirmThankYou(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, 19.98, final.Total)
}

func TestCheckoutStaleCacheEmptyRemote(t *testing.T) {
	orders := &fakeOrders{fetchOrder: model.EmptyOrder()}
	r := checkout.NewReconciler(orders, test.NewLogger(t))

	sess := authedSession(t)
	sess.SetCachedOrder(model.OrderSnapshot{Items: map[string]int{"p1": 1}, Total: 5})

	_, err := r.Checkout(context.Background(), sess, nil)
	pre, ok := checkout.AsPrecondition(err)
	require.True(t, ok)
	assert.Equal(t, checkout.RouteHome, pre.RedirectTo)

	// the remote said empty, so the stale cache is dropped and no checkout happens
	assert.Zero(t, orders.checkoutCalls)
	assert.Equal(t, model.EmptyOrder(), sess.CachedOrder())
}

func TestCheckoutPropagatesRemoteFailure(t *testing.T) {
	orders := &fakeOrders{fetchErr: errors.New("connection refused")}
	r := checkout.NewReconciler(orders, test.NewLogger(t))

	sess := authedSession(t)
	sess.SetCachedOrder(model.OrderSnapshot{Items: map[string]int{"p1": 1}, Total: 5})

	_, err := r.Checkout(context.Background(), sess, nil)
	require.Error(t, err)
	_, ok := checkout.AsPrecondition(err)
	assert.False(t, ok, "a transport failure is not a precondition violation")
}

func TestReconcileAfterLogin(t *testing.T) {
	orders := &fakeOrders{
		fetchOrder: model.OrderSnapshot{Items: map[string]int{"p1": 3}, Total: 30},
	}
	r := checkout.NewReconciler(orders, test.NewLogger(t))

	sess := authedSession(t)
	r.ReconcileAfterLogin(context.Background(), sess, nil)
	assert.Equal(t, 3, sess.CachedOrder().Items["p1"])
}

func TestReconcileAfterLoginFetchFailureKeepsEmptyCache(t *testing.T) {
	orders := &fakeOrders{fetchErr: errors.New("boom")}
	r := checkout.NewReconciler(orders, test.NewLogger(t))

	sess := authedSession(t)
	r.ReconcileAfterLogin(context.Background(), sess, nil)

	// login must not fail and the cache stays at the empty default
	assert.Equal(t, model.EmptyOrder(), sess.CachedOrder())
}

func TestThankYouConsumesOnce(t *testing.T) {
	r := checkout.NewReconciler(&fakeOrders{}, test.NewLogger(t))

	sess := authedSession(t)
	sess.SetCompletedOrder(model.OrderSnapshot{Items: map[string]int{"p1": 1}, Total: 5})

	_, err := r.ConfirmThankYou(context.Background(), sess)
	require.NoError(t, err)

	_, err = r.ConfirmThankYou(context.Background(), sess)
	pre, ok := checkout.AsPrecondition(err)
	require.True(t, ok)
	assert.Equal(t, checkout.RouteHome, pre.RedirectTo)
}

func TestThankYouRequiresLogin(t *testing.T) {
	r := checkout.NewReconciler(&fakeOrders{}, test.NewLogger(t))

	_, err := r.ConfirmThankYou(context.Background(), session.New("s1"))
	pre, ok := checkout.AsPrecondition(err)
	require.True(t, ok)
	assert.Equal(t, checkout.RouteLogin, pre.RedirectTo)
}
