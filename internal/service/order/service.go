package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"store-admin/internal/domain"
	orderrepo "store-admin/internal/repository/order"
)

// checkoutCompleted is the only event kind that finalizes an order; all
// other deliveries are acknowledged without side effects so the
// provider stops retrying them.
const checkoutCompleted = "checkout.session.completed"

// lineItemExpand pulls the product (and its metadata) into the re-fetched
// session; the webhook payload itself carries no line-item detail.
var lineItemExpand = []string{"line_items.data.price.product"}

const unknownVariant = "N/A"

type Service struct {
	orders    orderrepo.Repository
	customers customerRepo
	products  productRepo
	payments  paymentGateway
	logger    *log.Logger
}

type customerRepo interface {
	GetByClerkID(ctx context.Context, clerkID string) (*domain.Customer, error)
	AppendOrder(ctx context.Context, clerkID, name, email, orderID string) (*domain.Customer, error)
}

type productRepo interface {
	ListByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

type paymentGateway interface {
	VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error)
	RetrieveSession(id string, expand []string) (*stripe.CheckoutSession, error)
}

func New(orders orderrepo.Repository, customers customerRepo, products productRepo, payments paymentGateway, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		orders:    orders,
		customers: customers,
		products:  products,
		payments:  payments,
		logger:    logger,
	}
}

// Finalize consumes a raw webhook delivery. Signature verification is
// the endpoint's only authentication, so a mismatch fails the whole
// call before any payload field is trusted. Every write is idempotent:
// the order is keyed on the provider session id and the customer append
// is a set operation, so a redelivered event changes nothing.
func (s *Service) Finalize(ctx context.Context, payload []byte, signature string) error {
	event, err := s.payments.VerifyEvent(payload, signature)
	if err != nil {
		return err
	}

	if string(event.Type) != checkoutCompleted {
		s.logger.Printf("order service: ignoring event id=%s type=%s", event.ID, event.Type)
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("decode checkout session: %w", err)
	}

	clerkID := sess.ClientReferenceID
	name, email := "", ""
	if sess.CustomerDetails != nil {
		name = sess.CustomerDetails.Name
		email = sess.CustomerDetails.Email
	}

	var address domain.ShippingAddress
	if sess.ShippingDetails != nil && sess.ShippingDetails.Address != nil {
		addr := sess.ShippingDetails.Address
		address = domain.ShippingAddress{
			Street:     addr.Line1,
			City:       addr.City,
			State:      addr.State,
			PostalCode: addr.PostalCode,
			Country:    addr.Country,
		}
	}

	full, err := s.payments.RetrieveSession(sess.ID, lineItemExpand)
	if err != nil {
		return err
	}
	items := orderItems(full)

	total := decimal.Zero
	if sess.AmountTotal != 0 {
		total = decimal.NewFromInt(sess.AmountTotal).Div(minorUnits)
	}
	shippingRate := ""
	if sess.ShippingCost != nil && sess.ShippingCost.ShippingRate != nil {
		shippingRate = sess.ShippingCost.ShippingRate.ID
	}

	order, fresh, err := s.orders.CreateFromSession(ctx, domain.Order{
		CheckoutSessionID: sess.ID,
		CustomerClerkID:   clerkID,
		Items:             items,
		ShippingAddress:   address,
		ShippingRate:      shippingRate,
		TotalAmount:       total,
	})
	if err != nil {
		return err
	}
	if !fresh {
		s.logger.Printf("order service: session_id=%s already finalized order_id=%s", sess.ID, order.ID)
		return nil
	}

	if _, err := s.customers.AppendOrder(ctx, clerkID, name, email, order.ID); err != nil {
		return err
	}

	s.logger.Printf("order service: finalized session_id=%s order_id=%s clerk_id=%s total=%s",
		sess.ID, order.ID, clerkID, total.String())
	return nil
}

var minorUnits = decimal.NewFromInt(100)

func orderItems(sess *stripe.CheckoutSession) []domain.OrderItem {
	if sess == nil || sess.LineItems == nil {
		return nil
	}
	items := make([]domain.OrderItem, 0, len(sess.LineItems.Data))
	for _, li := range sess.LineItems.Data {
		if li.Price == nil || li.Price.Product == nil {
			continue
		}
		meta := li.Price.Product.Metadata
		item := domain.OrderItem{
			Product:  meta["productId"],
			Color:    metaOrDefault(meta, "color"),
			Size:     metaOrDefault(meta, "size"),
			Quantity: int(li.Quantity),
		}
		items = append(items, item)
	}
	return items
}

func metaOrDefault(meta map[string]string, key string) string {
	if v := meta[key]; v != "" {
		return v
	}
	return unknownVariant
}

// Summary is one row of the order list view, with the customer name
// resolved for display.
type Summary struct {
	ID          string          `json:"id"`
	Customer    string          `json:"customer"`
	Products    int             `json:"products"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// List returns all orders, newest first, each resolving its customer's
// name. A missing customer record yields an empty name rather than an
// error.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(orders))
	for _, o := range orders {
		name := ""
		c, err := s.customers.GetByClerkID(ctx, o.CustomerClerkID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if c != nil {
			name = c.Name
		}
		summaries = append(summaries, Summary{
			ID:          o.ID,
			Customer:    name,
			Products:    len(o.Items),
			TotalAmount: o.TotalAmount,
			CreatedAt:   o.CreatedAt,
		})
	}
	return summaries, nil
}

// Detail is a single order with its items' products populated and the
// customer record attached.
type Detail struct {
	Order    domain.Order              `json:"orderDetails"`
	Customer *domain.Customer          `json:"customer"`
	Products map[string]domain.Product `json:"-"`
}

func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c, err := s.customers.GetByClerkID(ctx, o.CustomerClerkID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.Product)
	}
	products, err := s.products.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	index := make(map[string]domain.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}

	return &Detail{Order: *o, Customer: c, Products: index}, nil
}

func (s *Service) ListByCustomer(ctx context.Context, clerkID string) ([]domain.Order, error) {
	return s.orders.ListByClerkID(ctx, clerkID)
}
