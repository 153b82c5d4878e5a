package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"teahouse/internal/entity"
	"teahouse/internal/export"
	"teahouse/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// CustomerInfo carries the free-text fields of an order submission.
// Values are caller-supplied and stored as given.
type CustomerInfo struct {
	Name          string
	Phone         string
	Address       string
	AddressNumber string
	PaymentMethod string
	Notes         string
}

// OrderService orchestrates the customer submission workflow and the
// admin order surface.
type OrderService struct {
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	exporter       *export.Logger
	kafkaWriter    *kafka.Writer
	rdb            *redis.Client
	whatsappNumber string
}

// NewOrderService creates a new instance of OrderService. kafkaWriter
// and rdb may be nil, which disables event publishing and the duplicate
// submission guard respectively.
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, exporter *export.Logger, kafkaWriter *kafka.Writer, rdb *redis.Client, whatsappNumber string) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		exporter:       exporter,
		kafkaWriter:    kafkaWriter,
		rdb:            rdb,
		whatsappNumber: whatsappNumber,
	}
}

// Submit records a new order. Quantities are read per catalog product
// through the quantity lookup (one form field per product name), totals
// are computed against current prices, the order is persisted, appended
// to the export log, and turned into a confirmation message for the
// messaging hand-off. Export and event failures are logged but never
// fail the submission; the JSON store is the source of truth.
func (s *OrderService) Submit(ctx context.Context, info CustomerInfo, quantity func(name string) string, idempotentKey string) (*entity.Order, string, error) {
	ok, err := s.validateIdempotentKey(ctx, idempotentKey)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", fmt.Errorf("%w: duplicate submission", entity.ErrValidation)
	}

	products, err := s.productRepo.LoadAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading catalog")
		return nil, "", err
	}

	// An empty catalog is not an error: the order records with an
	// empty items map and a zero total.
	items := map[string]int{}
	total := 0.0
	for _, p := range products {
		qty := ParseQuantity(quantity(p.Name))
		items[p.Name] = qty
		total += float64(qty) * p.Price
	}

	order := &entity.Order{
		CustomerName:  info.Name,
		Phone:         info.Phone,
		Address:       info.Address,
		AddressNumber: info.AddressNumber,
		PaymentMethod: info.PaymentMethod,
		Items:         items,
		Total:         total,
		Notes:         info.Notes,
		Status:        entity.StatusNew,
		CreatedAt:     time.Now().Format(entity.CreatedAtLayout),
	}

	created, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating order")
		return nil, "", err
	}

	if s.exporter != nil {
		if err := s.exporter.Append(created); err != nil {
			logger.Error().Err(err).Int("order_id", created.ID).Msg("Error appending order to export log")
		}
	}

	s.publishOrderEvent(ctx, created, "created")

	return created, s.summaryMessage(created, products), nil
}

// WhatsAppURL wraps the confirmation message into a pre-filled
// messaging link for the external hand-off.
func (s *OrderService) WhatsAppURL(message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", s.whatsappNumber, url.QueryEscape(message))
}

// ListOrders returns all orders for the admin surface.
func (s *OrderService) ListOrders(ctx context.Context) ([]entity.Order, error) {
	orders, err := s.orderRepo.LoadAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading orders")
		return nil, err
	}
	return orders, nil
}

// GetOrder returns one order by id, for the packing slip view.
func (s *OrderService) GetOrder(ctx context.Context, id int) (*entity.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// DeleteOrder removes an order. Deleting an id that does not exist is
// silently ignored.
func (s *OrderService) DeleteOrder(ctx context.Context, id int) error {
	var order *entity.Order
	if s.kafkaWriter != nil {
		o, err := s.orderRepo.GetByID(ctx, id)
		if err != nil && !errors.Is(err, entity.ErrNotFound) {
			return err
		}
		order = o
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		logger.Error().Err(err).Int("order_id", id).Msg("Error deleting order")
		return err
	}
	if order != nil {
		s.publishOrderEvent(ctx, order, "deleted")
	}
	return nil
}

// UpdateOrderStatus changes the lifecycle label of an order. The id is
// accepted as a string and may carry either the numeric or string form.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id, status string) error {
	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	if s.kafkaWriter != nil {
		if n, convErr := strconv.Atoi(id); convErr == nil {
			if order, getErr := s.orderRepo.GetByID(ctx, n); getErr == nil {
				s.publishOrderEvent(ctx, order, "status_updated")
			}
		}
	}
	return nil
}

// summaryMessage builds the customer-readable confirmation embedded in
// the outbound messaging link. Items are listed in catalog order and
// only when the quantity is positive.
func (s *OrderService) summaryMessage(order *entity.Order, products []entity.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello, I'm %s!\n", order.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", order.Phone)
	fmt.Fprintf(&b, "Address: %s, No. %s\n", order.Address, order.AddressNumber)
	fmt.Fprintf(&b, "Payment: %s\n\n", order.PaymentMethod)
	b.WriteString("Order:\n")
	for _, p := range products {
		if qty := order.Items[p.Name]; qty > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", p.Name, qty)
		}
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n", order.Total)
	notes := order.Notes
	if notes == "" {
		notes = "none"
	}
	fmt.Fprintf(&b, "Notes: %s", notes)
	return b.String()
}

func (s *OrderService) publishOrderEvent(ctx context.Context, order *entity.Order, action string) {
	if s.kafkaWriter == nil {
		return
	}
	payload, err := json.Marshal(order)
	if err != nil {
		logger.Error().Err(err).Msg("Error marshalling order event")
		return
	}
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%s-%d", action, order.ID)),
		Value: payload,
	}
	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Int("order_id", order.ID).Msg("Error publishing order event")
	}
}

// validateIdempotentKey rejects a submission whose key was already seen
// in the last 24 hours. Without a redis client or a key the check is
// skipped and the submission goes through.
func (s *OrderService) validateIdempotentKey(ctx context.Context, key string) (bool, error) {
	if s.rdb == nil || key == "" {
		return true, nil
	}
	redisKey := fmt.Sprintf("idempotent-key:%s", key)
	val, err := s.rdb.Get(ctx, redisKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}
	if val != "" {
		return false, nil
	}
	if err := s.rdb.Set(ctx, redisKey, "exists", 24*time.Hour).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// ParseQuantity is the submission quantity rule: a trimmed all-digit
// string parses as its integer value, anything else counts as zero.
// Signs are not digits, so negatives normalize to zero too.
func ParseQuantity(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
