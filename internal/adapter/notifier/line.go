// Package notifier pushes booking announcements to the property owners'
// LINE account. Delivery is best effort; a failed push never affects the
// booking itself.
package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/tumansdev/angthong-poolvilla/internal/core/domain"
)

const linePushEndpoint = "https://api.line.me/v2/bot/message/push"

type LineNotifier struct {
	client       *resty.Client
	channelToken string
	recipientID  string
	logger       *zap.Logger
}

func NewLineNotifier(channelToken, recipientID string, logger *zap.Logger) *LineNotifier {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second)

	return &LineNotifier{
		client:       client,
		channelToken: channelToken,
		recipientID:  recipientID,
		logger:       logger,
	}
}

func (n *LineNotifier) BookingCreated(ctx context.Context, b *domain.Booking) error {
	text := fmt.Sprintf("New booking %s\n%s: %s to %s\n%d guests, %d nights, %d THB\nGuest: %s (%s)",
		b.ID, b.VillaID,
		domain.FormatDate(b.CheckIn), domain.FormatDate(b.CheckOut),
		b.Guests, b.Nights, b.TotalPrice,
		b.GuestName, b.GuestPhone)

	body := map[string]any{
		"to": n.recipientID,
		"messages": []map[string]string{
			{"type": "text", "text": text},
		},
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+n.channelToken).
		SetBody(body).
		Post(linePushEndpoint)
	if err != nil {
		return fmt.Errorf("line push failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("line push returned %s: %s", resp.Status(), resp.String())
	}

	n.logger.Debug("line push delivered", zap.String("booking_id", b.ID))
	return nil
}
