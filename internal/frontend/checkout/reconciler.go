// Package checkout drives the order state machine: it decides when the
// session's cached order view can be acted on and when the authoritative
// order service must be consulted.
package checkout

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/shopmesh/shopmesh/common/headers"
	"github.com/shopmesh/shopmesh/common/logger"
	"github.com/shopmesh/shopmesh/internal/frontend/session"
	"github.com/shopmesh/shopmesh/internal/model"
)

// Recovery routes for precondition failures. A violated precondition is a
// UX-level retry, never a hard error: the handler flashes the reason and
// redirects to the route.
const (
	RouteHome  = "/"
	RouteLogin = "/login"
)

// PreconditionError reports a checkout or confirmation invariant violation
// together with the route the user should be sent to.
type PreconditionError struct {
	Reason     string
	RedirectTo string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s", e.Reason)
}

// AsPrecondition unwraps err into a *PreconditionError if it is one.
func AsPrecondition(err error) (*PreconditionError, bool) {
	var pre *PreconditionError
	ok := errors.As(err, &pre)
	return pre, ok
}

// OrderService is the slice of the order client the reconciler needs.
type OrderService interface {
	Fetch(ctx context.Context, credential string, fwd headers.ForwardedHeaderSet) (model.OrderSnapshot, headers.ForwardedHeaderSet, error)
	Checkout(ctx context.Context, credential string, fwd headers.ForwardedHeaderSet) (model.OrderSnapshot, headers.ForwardedHeaderSet, error)
}

type Reconciler struct {
	orders OrderService
	log    *logger.Logger
}

func NewReconciler(orders OrderService, log *logger.Logger) *Reconciler {
	return &Reconciler{orders: orders, log: log}
}

// ReconcileAfterLogin refreshes the session's cached order from the order
// service. It is best effort: a failed fetch leaves the cache at its empty
// default and never fails the login itself.
func (r *Reconciler) ReconcileAfterLogin(ctx context.Context, sess *session.Session, fwd headers.ForwardedHeaderSet) headers.ForwardedHeaderSet {
	credential, ok := sess.Credential()
	if !ok {
		return fwd
	}

	order, respFwd, err := r.orders.Fetch(ctx, credential, fwd)
	if err != nil {
		r.log.Warn("order fetch after login failed, keeping empty cache", logger.Error(err))
		return fwd
	}
	if !order.IsEmpty() {
		sess.SetCachedOrder(order)
	}
	return respFwd
}

// Checkout runs the full checkout sequence:
//
//  1. the session must be authenticated, else redirect to login;
//  2. the cached order must have items, else redirect home — the remote
//     checkout endpoint is never called on an empty cache;
//  3. the order is re-fetched from the authoritative source (the cache alone
//     is never trusted, guarding against stale session data and
//     double-checkout) and re-checked for items;
//  4. the remote checkout is issued, the final order is parked for the
//     confirmation view and the cache is cleared.
func (r *Reconciler) Checkout(ctx context.Context, sess *session.Session, fwd headers.ForwardedHeaderSet) (headers.ForwardedHeaderSet, error) {
	credential, ok := sess.Credential()
	if !ok {
		return fwd, &PreconditionError{Reason: "Please login", RedirectTo: RouteLogin}
	}
	if sess.CachedOrder().IsEmpty() {
		return fwd, &PreconditionError{Reason: "No order found", RedirectTo: RouteHome}
	}

	order, respFwd, err := r.orders.Fetch(ctx, credential, fwd)
	if err != nil {
		return fwd, errors.Wrap(err, "fetching order before checkout")
	}
	if order.IsEmpty() {
		sess.ClearCachedOrder()
		return respFwd, &PreconditionError{Reason: "No order found", RedirectTo: RouteHome}
	}

	final, respFwd2, err := r.orders.Checkout(ctx, credential, respFwd)
	if err != nil {
		return respFwd, errors.Wrap(err, "placing order")
	}
	if final.IsEmpty() {
		final = order
	}

	sess.SetCompletedOrder(final)
	sess.ClearCachedOrder()
	return respFwd2, nil
}

// ConfirmThankYou consumes the completed order for the confirmation view,
// exactly once. A repeat visit, or a visit without a logged-in user, is a
// precondition failure resolved by redirect.
func (r *Reconciler) ConfirmThankYou(_ context.Context, sess *session.Session) (model.OrderSnapshot, error) {
	if !sess.IsAuthenticated() {
		return model.EmptyOrder(), &PreconditionError{Reason: "Please login", RedirectTo: RouteLogin}
	}
	order, ok := sess.PopCompletedOrder()
	if !ok {
		return model.EmptyOrder(), &PreconditionError{Reason: "No order found", RedirectTo: RouteHome}
	}
	return order, nil
}
