package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
)

type stubCreator struct {
	session    *stripe.CheckoutSession
	err        error
	lastParams *stripe.CheckoutSessionParams
}

func (s *stubCreator) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	s.lastParams = params
	return s.session, s.err
}

func testOptions() Options {
	return Options{
		StorefrontURL:     "https://shop.example.com",
		ShippingRateIDs:   []string{"shr_1", "shr_2"},
		ShippingCountries: []string{"US", "AR"},
	}
}

func cartInput() Input {
	return Input{
		CartItems: []CartItem{
			{
				Item:     CartProduct{ID: "p1", Title: "Linen Shirt", Price: decimal.NewFromFloat(39.99)},
				Quantity: 2,
				Size:     "M",
				Color:    "White",
			},
			{
				Item:     CartProduct{ID: "p2", Title: "Canvas Tote", Price: decimal.NewFromFloat(24.99)},
				Quantity: 1,
			},
		},
		Customer: Customer{ClerkID: "clerk_1"},
	}
}

func TestCreateSessionValidation(t *testing.T) {
	svc := New(&stubCreator{}, testOptions())

	cases := map[string]Input{
		"empty cart":       {Customer: Customer{ClerkID: "clerk_1"}},
		"missing customer": {CartItems: cartInput().CartItems},
		"blank clerk id":   {CartItems: cartInput().CartItems, Customer: Customer{ClerkID: "  "}},
	}
	for name, in := range cases {
		if _, err := svc.CreateSession(context.Background(), in); !errors.Is(err, ErrMissingData) {
			t.Fatalf("%s: expected ErrMissingData, got %v", name, err)
		}
	}
}

func TestCreateSessionBuildsParams(t *testing.T) {
	creator := &stubCreator{session: &stripe.CheckoutSession{ID: "cs_1", URL: "https://pay.example.com/cs_1"}}
	svc := New(creator, testOptions())

	got, err := svc.CreateSession(context.Background(), cartInput())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if got.ID != "cs_1" {
		t.Fatalf("unexpected session: %+v", got)
	}

	params := creator.lastParams
	if params == nil {
		t.Fatal("expected params to be passed through")
	}
	if got := *params.ClientReferenceID; got != "clerk_1" {
		t.Fatalf("expected client reference clerk_1, got %q", got)
	}
	if got := *params.SuccessURL; got != "https://shop.example.com/payment_success" {
		t.Fatalf("unexpected success url %q", got)
	}
	if got := *params.CancelURL; got != "https://shop.example.com/cart" {
		t.Fatalf("unexpected cancel url %q", got)
	}
	if len(params.ShippingOptions) != 2 {
		t.Fatalf("expected 2 shipping options, got %d", len(params.ShippingOptions))
	}
	if len(params.ShippingAddressCollection.AllowedCountries) != 2 {
		t.Fatalf("expected 2 allowed countries")
	}

	if len(params.LineItems) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(params.LineItems))
	}
	first := params.LineItems[0]
	if *first.PriceData.UnitAmount != 3999 {
		t.Fatalf("expected unit amount in minor units, got %d", *first.PriceData.UnitAmount)
	}
	if *first.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", *first.Quantity)
	}
	meta := first.PriceData.ProductData.Metadata
	if meta["productId"] != "p1" || meta["size"] != "M" || meta["color"] != "White" {
		t.Fatalf("unexpected metadata: %v", meta)
	}

	second := params.LineItems[1]
	secondMeta := second.PriceData.ProductData.Metadata
	if _, ok := secondMeta["size"]; ok {
		t.Fatalf("expected no size key for variantless item, got %v", secondMeta)
	}
}

func TestCreateSessionPropagatesProviderError(t *testing.T) {
	creator := &stubCreator{err: errors.New("provider down")}
	svc := New(creator, testOptions())

	if _, err := svc.CreateSession(context.Background(), cartInput()); err == nil {
		t.Fatal("expected provider error to surface")
	}
}
