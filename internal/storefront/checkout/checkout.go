// Package checkout turns a shopper's cart into an order message handed to an
// external messaging channel. No order record is kept.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
	"github.com/elegance/jewelry-catalog/internal/storefront/cart"
	"github.com/elegance/jewelry-catalog/internal/storefront/session"
)

var (
	ErrStoreOffline = errors.New("store is offline, orders are paused")
	ErrEmptyCart    = errors.New("cart is empty")
)

// Customer holds the contact fields collected at checkout.
type Customer struct {
	Name    string `validate:"required"`
	Phone   string `validate:"required"`
	Email   string `validate:"required,email"`
	Address string `validate:"required"`
	Pincode string `validate:"required"`
	Notes   string
}

func (c Customer) trimmed() Customer {
	return Customer{
		Name:    strings.TrimSpace(c.Name),
		Phone:   strings.TrimSpace(c.Phone),
		Email:   strings.TrimSpace(c.Email),
		Address: strings.TrimSpace(c.Address),
		Pincode: strings.TrimSpace(c.Pincode),
		Notes:   strings.TrimSpace(c.Notes),
	}
}

// StatusSource reports the current store status.
type StatusSource interface {
	StoreStatus(ctx context.Context) (*domain.StoreStatus, error)
}

// Dispatcher hands the order link to the external channel.
type Dispatcher interface {
	Dispatch(ctx context.Context, link string) error
}

// WriterDispatcher prints the link, leaving the shopper to open it.
type WriterDispatcher struct {
	W io.Writer
}

func (d WriterDispatcher) Dispatch(_ context.Context, link string) error {
	_, err := fmt.Fprintln(d.W, link)
	return err
}

// Order is the result of a dispatched checkout.
type Order struct {
	Message string
	Link    string
	Total   decimal.Decimal
	Units   int
}

type Service struct {
	composer   *Composer
	status     StatusSource
	dispatcher Dispatcher
	validate   *validator.Validate
	logger     zerolog.Logger
}

func NewService(composer *Composer, status StatusSource, dispatcher Dispatcher, logger zerolog.Logger) *Service {
	return &Service{
		composer:   composer,
		status:     status,
		dispatcher: dispatcher,
		validate:   validator.New(),
		logger:     logger,
	}
}

// Checkout re-reads the store status, validates the cart and customer, then
// composes and dispatches the order. The cart is cleared only after a
// successful dispatch.
func (s *Service) Checkout(ctx context.Context, sess *session.Session, customer Customer) (*Order, error) {
	status, err := s.status.StoreStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("check store status: %w", err)
	}
	if !status.Online() {
		return nil, ErrStoreOffline
	}

	c := sess.Cart()
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	customer = customer.trimmed()
	if err := s.validateCustomer(customer); err != nil {
		return nil, err
	}

	lines := c.Lines()
	msg, err := s.composer.Message(lines, customer)
	if err != nil {
		return nil, err
	}
	order := &Order{
		Message: msg,
		Link:    s.composer.Link(msg),
		Total:   c.Total(),
		Units:   c.Count(),
	}

	if err := s.dispatcher.Dispatch(ctx, order.Link); err != nil {
		return nil, fmt.Errorf("dispatch order: %w", err)
	}

	if err := sess.Update(ctx, func(c *cart.Cart, _ *cart.Wishlist) error {
		c.Clear()
		return nil
	}); err != nil {
		s.logger.Error().Err(err).Str("shopper_id", sess.ShopperID()).Msg("order dispatched but cart could not be cleared")
		return order, err
	}

	s.logger.Info().
		Str("shopper_id", sess.ShopperID()).
		Int("units", order.Units).
		Str("total", order.Total.String()).
		Msg("order dispatched")
	return order, nil
}

func (s *Service) validateCustomer(c Customer) error {
	err := s.validate.Struct(c)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed validation (%s)", field, fe.Tag()))
		}
	}
	return domain.Validationf("%s", strings.Join(msgs, "; "))
}
