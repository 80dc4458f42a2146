package notify

import (
	"context"
	"encoding/json"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"
	"github.com/zwelix28/canna-bomb-sub001/internal/repository"

	"go.uber.org/zap"
)

// OrderNotifier fans order events out to the push and email channels. The
// channels have independent failure domains: an outage on one never stops
// the other, and neither ever fails the order flow that triggered it.
type OrderNotifier struct {
	subs    repository.PushSubscriptionRepo
	push    PushSender
	mailer  Mailer
	adminTo string
	log     *zap.Logger
}

func NewOrderNotifier(subs repository.PushSubscriptionRepo, push PushSender, mailer Mailer, adminTo string, log *zap.Logger) *OrderNotifier {
	return &OrderNotifier{
		subs:    subs,
		push:    push,
		mailer:  mailer,
		adminTo: adminTo,
		log:     log,
	}
}

func (n *OrderNotifier) OrderPlaced(ctx context.Context, user *models.User, order *models.Order) {
	n.dispatchPush(ctx, user, order)
	n.dispatchEmail(order, user.Email, EmailOrderPlaced)
	if n.adminTo != "" {
		n.dispatchEmail(order, n.adminTo, EmailAdminNewOrder)
	}
}

func (n *OrderNotifier) OrderStatusChanged(ctx context.Context, user *models.User, order *models.Order) {
	n.dispatchPush(ctx, user, order)
	if kind, ok := statusEmailKinds[order.Status]; ok {
		n.dispatchEmail(order, user.Email, kind)
	}
	// a collected order additionally gets its invoice
	if order.Status == models.OrderStatusCompleted {
		n.dispatchEmail(order, user.Email, EmailInvoice)
	}
}

func (n *OrderNotifier) dispatchPush(ctx context.Context, user *models.User, order *models.Order) {
	if n.push == nil || !n.push.Enabled() {
		return
	}
	msg, ok := pushMessageFor(order)
	if !ok {
		return
	}

	sub, err := n.subs.Get(ctx, user.ID)
	if err != nil {
		n.log.Warn("push subscription lookup failed",
			zap.String("order", order.Number), zap.Error(err))
		return
	}
	if sub == nil {
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	if err := n.push.Send(ctx, sub, payload); err != nil {
		if err == ErrSubscriptionGone {
			// dead endpoint, stop retrying it on future orders
			if delErr := n.subs.Delete(ctx, user.ID); delErr != nil {
				n.log.Warn("failed to drop dead push subscription", zap.Error(delErr))
			}
			return
		}
		n.log.Warn("push delivery failed",
			zap.String("order", order.Number), zap.Error(err))
	}
}

func (n *OrderNotifier) dispatchEmail(order *models.Order, to string, kind EmailKind) {
	if n.mailer == nil || to == "" {
		return
	}
	data := buildEmailData(kind, order)
	if err := n.mailer.Send(to, kind, data, subjectFor(kind, order)); err != nil {
		n.log.Warn("order email delivery failed",
			zap.String("order", order.Number),
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
}
