// Package relay forwards contact form submissions to a human inbox.
//
// Channels are tried in priority order and only the first configured one is
// used; a failure is reported, not retried on the next channel.
package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/invirogens/website/internal/config"
	"github.com/invirogens/website/internal/schema"
	"github.com/invirogens/website/pkg/metrics"
)

// ErrNoChannel is returned when no channel is configured.
var ErrNoChannel = errors.New("relay: no configured channel")

// Channel delivers one inquiry through a specific transport.
type Channel interface {
	Name() string
	Configured() bool
	Deliver(ctx context.Context, msg schema.InsertContact) error
}

// DeliveryError describes a failed delivery attempt.
// StatusCode and Body are set for HTTP relays that answered with a non-2xx status.
type DeliveryError struct {
	Channel    string
	StatusCode int
	Body       string
	Err        error
}

func (e *DeliveryError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s relay failed: %d %s", e.Channel, e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("%s relay failed: %v", e.Channel, e.Err)
	}
	return e.Channel + " relay failed"
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Relay holds the channels in priority order.
type Relay struct {
	channels []Channel
	timeout  time.Duration
}

// New builds a relay; a zero timeout leaves the caller's deadline alone.
func New(timeout time.Duration, channels ...Channel) *Relay {
	return &Relay{channels: channels, timeout: timeout}
}

// FromConfig wires SMTP, Web3Forms and FormSubmit in that order.
func FromConfig(cfg *config.Config) (*Relay, error) {
	smtp, err := NewSMTP(cfg.SMTP, cfg.Relay.InquiryTo)
	if err != nil {
		return nil, err
	}
	return New(cfg.Relay.Timeout,
		smtp,
		NewWeb3Forms(cfg.Relay.Web3FormsEndpoint, cfg.Relay.Web3FormsAccessKey, cfg.Relay.InquiryTo, cfg.Relay.Timeout),
		NewFormSubmit(cfg.Relay.FormSubmitEndpoint, cfg.Relay.FormSubmitEmail, cfg.Relay.Timeout),
	), nil
}

// Active returns the channel Send would use, or nil.
func (r *Relay) Active() Channel {
	for _, ch := range r.channels {
		if ch.Configured() {
			return ch
		}
	}
	return nil
}

// Send delivers msg through the first configured channel.
func (r *Relay) Send(ctx context.Context, msg schema.InsertContact) error {
	ch := r.Active()
	if ch == nil {
		return ErrNoChannel
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	err := ch.Deliver(ctx, msg)
	if err != nil {
		metrics.RelayDeliveries.WithLabelValues(ch.Name(), "failure").Inc()
		var de *DeliveryError
		if !errors.As(err, &de) {
			err = &DeliveryError{Channel: ch.Name(), Err: err}
		}
		return err
	}
	metrics.RelayDeliveries.WithLabelValues(ch.Name(), "success").Inc()
	return nil
}
