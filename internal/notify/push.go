package notify

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/zwelix28/canna-bomb-sub001/config"
	"github.com/zwelix28/canna-bomb-sub001/internal/models"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// ErrSubscriptionGone signals the push service reported the endpoint as
// permanently dead; the stored subscription should be dropped.
var ErrSubscriptionGone = errors.New("push subscription gone")

// PushSender sends one payload to one browser subscription.
type PushSender interface {
	Send(ctx context.Context, sub *models.PushSubscription, payload []byte) error
	Enabled() bool
}

type WebPushSender struct {
	cfg config.Push
}

func NewWebPushSender(cfg config.Push) *WebPushSender {
	return &WebPushSender{cfg: cfg}
}

func (s *WebPushSender) Enabled() bool { return s.cfg.Configured() }

func (s *WebPushSender) Send(ctx context.Context, sub *models.PushSubscription, payload []byte) error {
	if !s.cfg.Configured() {
		return nil
	}

	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, wpSub, &webpush.Options{
		Subscriber:      s.cfg.Subscriber,
		VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
		TTL:             3600,
	})
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusNotFound, http.StatusGone:
		return ErrSubscriptionGone
	}
	if resp.StatusCode >= 400 {
		return errors.New("push service returned " + resp.Status)
	}
	return nil
}
