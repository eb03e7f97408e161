package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
)

// ErrMissingData is returned when the cart or the customer identity is
// absent from a checkout request.
var ErrMissingData = errors.New("not enough data to checkout")

type Service struct {
	payments sessionCreator
	opts     Options
}

type sessionCreator interface {
	CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// Options carries the fixed shipping and redirect configuration a
// session is built with; these are deployment settings, not logic.
type Options struct {
	StorefrontURL     string
	ShippingRateIDs   []string
	ShippingCountries []string
}

func New(payments sessionCreator, opts Options) *Service {
	return &Service{payments: payments, opts: opts}
}

type CartProduct struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

type CartItem struct {
	Item     CartProduct `json:"item"`
	Quantity int64       `json:"quantity"`
	Size     string      `json:"size,omitempty"`
	Color    string      `json:"color,omitempty"`
}

type Customer struct {
	ClerkID string `json:"clerkId"`
}

type Input struct {
	CartItems []CartItem `json:"cartItems"`
	Customer  Customer   `json:"customer"`
}

var minorUnits = decimal.NewFromInt(100)

// CreateSession builds a provider checkout session from the cart: one
// line item per entry priced in minor units, with productId/size/color
// carried in product metadata so order finalization can map line items
// back to catalog products. The provider's session object is returned
// verbatim.
func (s *Service) CreateSession(ctx context.Context, in Input) (*stripe.CheckoutSession, error) {
	if len(in.CartItems) == 0 || strings.TrimSpace(in.Customer.ClerkID) == "" {
		return nil, ErrMissingData
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(in.CartItems))
	for _, ci := range in.CartItems {
		metadata := map[string]string{"productId": ci.Item.ID}
		if ci.Size != "" {
			metadata["size"] = ci.Size
		}
		if ci.Color != "" {
			metadata["color"] = ci.Color
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("usd"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:     stripe.String(ci.Item.Title),
					Metadata: metadata,
				},
				UnitAmount: stripe.Int64(ci.Item.Price.Mul(minorUnits).IntPart()),
			},
			Quantity: stripe.Int64(ci.Quantity),
		})
	}

	shippingOptions := make([]*stripe.CheckoutSessionShippingOptionParams, 0, len(s.opts.ShippingRateIDs))
	for _, rateID := range s.opts.ShippingRateIDs {
		shippingOptions = append(shippingOptions, &stripe.CheckoutSessionShippingOptionParams{
			ShippingRate: stripe.String(rateID),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(s.opts.ShippingCountries),
		},
		ShippingOptions:   shippingOptions,
		LineItems:         lineItems,
		ClientReferenceID: stripe.String(in.Customer.ClerkID),
		SuccessURL:        stripe.String(s.opts.StorefrontURL + "/payment_success"),
		CancelURL:         stripe.String(s.opts.StorefrontURL + "/cart"),
	}

	return s.payments.CreateCheckoutSession(params)
}
