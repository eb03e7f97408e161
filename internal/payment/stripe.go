package payment

import (
	"fmt"
	"io"
	"log"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
)

// Gateway wraps the Stripe client for checkout session management and
// webhook signature verification. The webhook secret is the sole
// authentication for the /webhooks endpoint, so VerifyEvent failures
// must abort processing before any payload is trusted.
type Gateway struct {
	webhookSecret string
	logger        *log.Logger
}

func NewGateway(secretKey, webhookSecret string, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	stripe.Key = secretKey
	return &Gateway{
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

func (g *Gateway) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	sess, err := session.New(params)
	if err != nil {
		g.logger.Printf("payment gateway: create checkout session error=%v", err)
		return nil, fmt.Errorf("stripe: create checkout session: %w", err)
	}
	g.logger.Printf("payment gateway: created checkout session id=%s", sess.ID)
	return sess, nil
}

// RetrieveSession re-fetches a checkout session; the webhook event
// payload does not carry full line-item detail, so callers expand it
// here.
func (g *Gateway) RetrieveSession(id string, expand []string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	for _, e := range expand {
		params.AddExpand(e)
	}
	sess, err := session.Get(id, params)
	if err != nil {
		g.logger.Printf("payment gateway: retrieve session id=%s error=%v", id, err)
		return nil, fmt.Errorf("stripe: retrieve checkout session: %w", err)
	}
	return sess, nil
}

func (g *Gateway) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
	if err != nil {
		g.logger.Printf("payment gateway: verify event error=%v", err)
		return stripe.Event{}, fmt.Errorf("stripe: webhook signature verification: %w", err)
	}
	return event, nil
}
