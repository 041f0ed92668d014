package payments

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/Domenick1991/skyreserva/internal/clock"
	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/kafka"
	"github.com/Domenick1991/skyreserva/internal/metrics"
	"github.com/Domenick1991/skyreserva/internal/repository"
	"github.com/Domenick1991/skyreserva/internal/service/orders"
	"github.com/Domenick1991/skyreserva/internal/tracing"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	DefaultCodeTTL     = 5 * time.Minute
	DefaultMaxAttempts = 5

	maxCodeGenerations = 10
	maxTicketCodeTries = 5
)

type PaymentUseCase interface {
	Initiate(ctx context.Context, input InitiateInput) (*Initiation, error)
	InitiateMultiple(ctx context.Context, input InitiateMultipleInput) (*Initiation, error)
	Confirm(ctx context.Context, input ConfirmInput) (*Settlement, error)
	ConfirmMultiple(ctx context.Context, input ConfirmMultipleInput) (*MultiSettlement, error)
	Get(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	OverrideStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, error)
}

// Notifier delivers the verification code to the order owner.
type Notifier interface {
	NotifyVerificationCode(ctx context.Context, notice domain.VerificationNotice) error
}

// AttemptLimiter counts wrong verification codes per subject inside a window.
type AttemptLimiter interface {
	Failures(ctx context.Context, subject string) (int, error)
	RecordFailure(ctx context.Context, subject string, window time.Duration) (int, error)
	ResetFailures(ctx context.Context, subject string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

type InitiateInput struct {
	OrderID        int64                 `json:"order_id"`
	CardID         int64                 `json:"card_id"`
	DeliveryMethod domain.DeliveryMethod `json:"delivery_method,omitempty"`
}

type InitiateMultipleInput struct {
	OrderIDs       []int64               `json:"order_ids"`
	CardID         int64                 `json:"card_id"`
	DeliveryMethod domain.DeliveryMethod `json:"delivery_method,omitempty"`
}

// Initiation describes the processing payments created for one code. Code is only
// filled when the service is configured to expose it.
type Initiation struct {
	Payments         []domain.Payment `json:"payments"`
	Amount           decimal.Decimal  `json:"amount"`
	ExpiresAt        time.Time        `json:"expires_at"`
	NotificationSent bool             `json:"notification_sent"`
	Code             string           `json:"verification_code,omitempty"`
}

type ConfirmInput struct {
	PaymentID int64  `json:"payment_id"`
	Code      string `json:"code"`
}

type ConfirmMultipleInput struct {
	SharedCode    string `json:"shared_code"`
	SubmittedCode string `json:"submitted_code"`
	// Client identifies the caller (the HTTP handler uses the client IP). Lookups that
	// match no payment are counted against it.
	Client string `json:"-"`
}

// Settlement is everything one confirmed payment produced.
type Settlement struct {
	Payment domain.Payment  `json:"payment"`
	Order   domain.Order    `json:"order"`
	Invoice domain.Invoice  `json:"invoice"`
	Tickets []domain.Ticket `json:"tickets"`
}

type MultiSettlement struct {
	Settlements     []Settlement `json:"settlements"`
	InvoicesCreated int          `json:"invoices_created"`
	TicketsCreated  int          `json:"tickets_created"`
}

// Deps groups the repositories the payment workflow touches.
type Deps struct {
	Tx         orders.TxRunner
	Users      repository.CatalogRepository
	Orders     repository.OrderRepository
	Passengers repository.PassengerRepository
	Cards      repository.CardRepository
	Payments   repository.PaymentRepository
	Invoices   repository.InvoiceRepository
	Tickets    repository.TicketRepository
}

type PaymentService struct {
	tx         orders.TxRunner
	users      repository.CatalogRepository
	orders     repository.OrderRepository
	passengers repository.PassengerRepository
	cards      repository.CardRepository
	payments   repository.PaymentRepository
	invoices   repository.InvoiceRepository
	tickets    repository.TicketRepository

	notifier    Notifier
	limiter     AttemptLimiter
	producer    Producer
	eventsTopic string
	clock       clock.Clock
	codeTTL     time.Duration
	maxAttempts int
	exposeCode  bool
	newCode     func() (string, error)
	log         *zap.Logger
}

type Option func(*PaymentService)

func WithNotifier(n Notifier) Option {
	return func(s *PaymentService) {
		s.notifier = n
	}
}

func WithAttemptLimiter(l AttemptLimiter) Option {
	return func(s *PaymentService) {
		s.limiter = l
	}
}

// WithProducer publishes payment lifecycle events to topic.
func WithProducer(p Producer, topic string) Option {
	return func(s *PaymentService) {
		s.producer = p
		s.eventsTopic = topic
	}
}

func WithClock(c clock.Clock) Option {
	return func(s *PaymentService) {
		s.clock = c
	}
}

func WithCodeTTL(ttl time.Duration) Option {
	return func(s *PaymentService) {
		s.codeTTL = ttl
	}
}

func WithMaxAttempts(n int) Option {
	return func(s *PaymentService) {
		s.maxAttempts = n
	}
}

func WithExposeCode(expose bool) Option {
	return func(s *PaymentService) {
		s.exposeCode = expose
	}
}

func WithCodeGenerator(gen func() (string, error)) Option {
	return func(s *PaymentService) {
		s.newCode = gen
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *PaymentService) {
		s.log = log
	}
}

func NewPaymentService(deps Deps, opts ...Option) *PaymentService {
	s := &PaymentService{
		tx:          deps.Tx,
		users:       deps.Users,
		orders:      deps.Orders,
		passengers:  deps.Passengers,
		cards:       deps.Cards,
		payments:    deps.Payments,
		invoices:    deps.Invoices,
		tickets:     deps.Tickets,
		clock:       clock.NewSystem(),
		codeTTL:     DefaultCodeTTL,
		maxAttempts: DefaultMaxAttempts,
		newCode:     domain.NewVerificationCode,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PaymentService) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.payments.GetByID(ctx, id)
}

func (s *PaymentService) List(ctx context.Context) ([]domain.Payment, error) {
	return s.payments.List(ctx)
}

// Initiate creates a processing payment for the order total and sends the code to the
// order owner. A failed notification is logged and does not fail the call.
func (s *PaymentService) Initiate(ctx context.Context, input InitiateInput) (*Initiation, error) {
	if input.OrderID <= 0 || input.CardID <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.initiate(ctx, []int64{input.OrderID}, input.CardID, input.DeliveryMethod)
}

// InitiateMultiple creates one processing payment per order, all sharing one code.
func (s *PaymentService) InitiateMultiple(ctx context.Context, input InitiateMultipleInput) (*Initiation, error) {
	if input.CardID <= 0 {
		return nil, domain.ErrInvalidID
	}
	ids, err := uniqueSorted(input.OrderIDs)
	if err != nil {
		return nil, err
	}
	return s.initiate(ctx, ids, input.CardID, input.DeliveryMethod)
}

func (s *PaymentService) initiate(ctx context.Context, orderIDs []int64, cardID int64, delivery domain.DeliveryMethod) (*Initiation, error) {
	if delivery != "" && !delivery.Valid() {
		return nil, domain.ErrInvalidDelivery
	}

	ctx, span := tracing.StartSpan(ctx, "payments.Initiate")
	defer span.End()
	span.SetAttributes(attribute.Int64Slice("order_ids", orderIDs), attribute.Int64("card_id", cardID))

	var (
		result = Initiation{Amount: decimal.Zero}
		user   *domain.User
		code   string
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var owner int64
		locked := make([]*domain.Order, 0, len(orderIDs))
		// Ascending id order keeps concurrent multi-order initiations from deadlocking.
		for _, id := range orderIDs {
			order, err := s.orders.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if owner == 0 {
				owner = order.UserID
			} else if order.UserID != owner {
				return domain.ErrOrdersMixedOwners
			}
			if !order.Editable() {
				return domain.ErrOrderNotEditable
			}
			if order.Total.Sign() <= 0 {
				return fmt.Errorf("%w: order %d", domain.ErrOrderEmpty, order.ID)
			}
			locked = append(locked, order)
		}

		card, err := s.cards.GetByID(ctx, cardID)
		if err != nil {
			return err
		}
		if card.UserID != owner {
			return domain.ErrCardNotOwned
		}
		if !card.Active {
			return domain.ErrCardInactive
		}
		if card.ExpiredAt(s.clock.Now()) {
			return domain.ErrCardExpired
		}

		user, err = s.users.GetUser(ctx, owner)
		if err != nil {
			return err
		}
		code, err = s.generateCode(ctx)
		if err != nil {
			return err
		}

		for _, order := range locked {
			if delivery != "" {
				if _, err := s.orders.UpdateDelivery(ctx, order.ID, delivery); err != nil {
					return err
				}
			}
			payment := domain.Payment{
				OrderID: order.ID,
				CardID:  cardID,
				Amount:  order.Total,
				Method:  domain.PaymentMethodCreditCard,
				Status:  domain.PaymentStatusProcessing,
				Code:    code,
			}
			if err := s.payments.Create(ctx, &payment); err != nil {
				return err
			}
			result.Payments = append(result.Payments, payment)
			result.Amount = result.Amount.Add(payment.Amount)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result.ExpiresAt = result.Payments[0].CreatedAt.Add(s.codeTTL)
	if s.exposeCode {
		result.Code = code
	}
	result.NotificationSent = s.notify(ctx, domain.VerificationNotice{
		Email:      user.Email,
		UserName:   user.Name,
		Code:       code,
		OrderIDs:   orderIDs,
		Amount:     result.Amount,
		TTLMinutes: int(s.codeTTL / time.Minute),
	})

	for _, p := range result.Payments {
		metrics.PaymentsInitiatedTotal.Inc()
		s.publish(ctx, kafka.EventPaymentInitiated, p, 0, 0)
	}
	s.log.Info("payment initiated",
		zap.Int64s("order_ids", orderIDs),
		zap.Int64("user_id", user.ID),
		zap.String("amount", result.Amount.String()),
		zap.Bool("notified", result.NotificationSent),
	)
	return &result, nil
}

// generateCode draws codes until one is not carried by another processing payment, so a
// shared-code lookup can never match payments of unrelated initiations.
func (s *PaymentService) generateCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeGenerations; i++ {
		code, err := s.newCode()
		if err != nil {
			return "", fmt.Errorf("generate verification code: %w", err)
		}
		inUse, err := s.payments.CodeInUse(ctx, code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", errors.New("generate verification code: no free code")
}

// Confirm settles a single payment when code matches. An expired code rejects the
// payment for good.
func (s *PaymentService) Confirm(ctx context.Context, input ConfirmInput) (*Settlement, error) {
	if input.PaymentID <= 0 {
		return nil, domain.ErrInvalidID
	}
	if input.Code == "" {
		return nil, domain.ErrInvalidCode
	}

	ctx, span := tracing.StartSpan(ctx, "payments.Confirm")
	defer span.End()
	span.SetAttributes(attribute.Int64("payment_id", input.PaymentID))
	start := time.Now()

	subject := "payment:" + strconv.FormatInt(input.PaymentID, 10)
	if err := s.checkAttempts(ctx, subject); err != nil {
		s.confirmFailed(err)
		return nil, err
	}

	var (
		settlement Settlement
		rejected   *domain.Payment
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		payment, err := s.payments.GetForUpdate(ctx, input.PaymentID)
		if err != nil {
			return err
		}
		if payment.Status != domain.PaymentStatusProcessing {
			return domain.ErrPaymentAlreadyProcessed
		}
		if payment.Expired(s.clock.Now(), s.codeTTL) {
			rejected, err = s.payments.UpdateStatus(ctx, payment.ID, domain.PaymentStatusRejected)
			return err
		}
		if !codesMatch(payment.Code, input.Code) {
			return domain.ErrInvalidCode
		}
		settlement, err = s.settle(ctx, *payment)
		return err
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrInvalidCode) {
			s.recordFailure(ctx, subject)
		}
		s.confirmFailed(err)
		return nil, err
	}
	if rejected != nil {
		s.publish(ctx, kafka.EventPaymentRejected, *rejected, 0, 0)
		s.confirmFailed(domain.ErrCodeExpired)
		return nil, domain.ErrCodeExpired
	}

	s.resetAttempts(ctx, subject)
	s.confirmed(ctx, settlement)
	metrics.PaymentConfirmLatency.Observe(time.Since(start).Seconds())
	return &settlement, nil
}

// ConfirmMultiple settles every processing payment that carries SharedCode in one
// transaction. Either all of them succeed or none does.
func (s *PaymentService) ConfirmMultiple(ctx context.Context, input ConfirmMultipleInput) (*MultiSettlement, error) {
	if input.SharedCode == "" || input.SubmittedCode == "" {
		return nil, domain.ErrInvalidCode
	}

	ctx, span := tracing.StartSpan(ctx, "payments.ConfirmMultiple")
	defer span.End()
	start := time.Now()

	subject := "code:" + input.SharedCode
	client := clientSubject(input.Client)
	for _, subj := range []string{client, subject} {
		if err := s.checkAttempts(ctx, subj); err != nil {
			s.confirmFailed(err)
			return nil, err
		}
	}

	var (
		result   MultiSettlement
		rejected []domain.Payment
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		matched, err := s.payments.ListProcessingByCodeForUpdate(ctx, input.SharedCode)
		if err != nil {
			return err
		}
		if len(matched) == 0 {
			return domain.ErrPaymentNotFound
		}
		now := s.clock.Now()
		expired := false
		for _, p := range matched {
			if p.Expired(now, s.codeTTL) {
				expired = true
				break
			}
		}
		if expired {
			for _, p := range matched {
				updated, err := s.payments.UpdateStatus(ctx, p.ID, domain.PaymentStatusRejected)
				if err != nil {
					return err
				}
				rejected = append(rejected, *updated)
			}
			return nil
		}
		if !codesMatch(input.SharedCode, input.SubmittedCode) {
			return domain.ErrInvalidCode
		}

		var owner int64
		for _, p := range matched {
			settlement, err := s.settle(ctx, p)
			if err != nil {
				return fmt.Errorf("payment %d: %w", p.ID, err)
			}
			if owner == 0 {
				owner = settlement.Order.UserID
			} else if settlement.Order.UserID != owner {
				return domain.ErrOrdersMixedOwners
			}
			result.Settlements = append(result.Settlements, settlement)
			result.InvoicesCreated++
			result.TicketsCreated += len(settlement.Tickets)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, domain.ErrInvalidCode):
			s.recordFailure(ctx, subject)
			s.recordFailure(ctx, client)
		case errors.Is(err, domain.ErrPaymentNotFound):
			s.recordFailure(ctx, client)
		}
		s.confirmFailed(err)
		return nil, err
	}
	if len(rejected) > 0 {
		for _, p := range rejected {
			s.publish(ctx, kafka.EventPaymentRejected, p, 0, 0)
		}
		s.confirmFailed(domain.ErrCodeExpired)
		return nil, domain.ErrCodeExpired
	}

	s.resetAttempts(ctx, subject)
	for _, settlement := range result.Settlements {
		s.confirmed(ctx, settlement)
	}
	metrics.PaymentConfirmLatency.Observe(time.Since(start).Seconds())
	return &result, nil
}

// settle runs inside the caller's transaction: payment succeeded, order paid, one invoice
// and one ticket per passenger of every reservation in the order.
func (s *PaymentService) settle(ctx context.Context, payment domain.Payment) (Settlement, error) {
	order, err := s.orders.GetForUpdate(ctx, payment.OrderID)
	if err != nil {
		return Settlement{}, err
	}
	if !order.Editable() {
		return Settlement{}, domain.ErrOrderNotEditable
	}
	if !order.Total.Equal(payment.Amount) {
		return Settlement{}, domain.ErrOrderChanged
	}

	succeeded, err := s.payments.UpdateStatus(ctx, payment.ID, domain.PaymentStatusSucceeded)
	if err != nil {
		return Settlement{}, err
	}
	paid, err := s.orders.UpdateStatus(ctx, order.ID, domain.OrderStatusPaid)
	if err != nil {
		return Settlement{}, err
	}

	invoice := domain.NewInvoice(order.ID, payment.ID, payment.Amount)
	if err := s.invoices.Create(ctx, &invoice); err != nil {
		return Settlement{}, err
	}

	passengers, err := s.passengers.ListByOrder(ctx, order.ID)
	if err != nil {
		return Settlement{}, err
	}
	tickets := make([]domain.Ticket, 0, len(passengers))
	for _, p := range passengers {
		ticket, err := s.issueTicket(ctx, invoice.ID, p)
		if err != nil {
			return Settlement{}, err
		}
		tickets = append(tickets, ticket)
	}

	return Settlement{Payment: *succeeded, Order: *paid, Invoice: invoice, Tickets: tickets}, nil
}

func (s *PaymentService) issueTicket(ctx context.Context, invoiceID int64, p domain.Passenger) (domain.Ticket, error) {
	for i := 0; i < maxTicketCodeTries; i++ {
		ticket := domain.Ticket{
			ReservationID: p.ReservationID,
			PassengerID:   p.ID,
			InvoiceID:     invoiceID,
			Code:          domain.NewTicketCode(),
			Status:        domain.TicketStatusIssued,
		}
		err := s.tickets.Create(ctx, &ticket)
		if err == nil {
			return ticket, nil
		}
		if !errors.Is(err, domain.ErrTicketCodeCollision) {
			return domain.Ticket{}, err
		}
		s.log.Warn("ticket code collision, retrying", zap.String("code", ticket.Code))
	}
	return domain.Ticket{}, domain.ErrTicketCodeCollision
}

// OverrideStatus is the administrative status change. It only sets the payment status;
// the order, invoices and tickets are left untouched.
func (s *PaymentService) OverrideStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidPaymentStatus
	}
	payment, err := s.payments.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.EventPaymentStatusOverridden, *payment, 0, 0)
	s.log.Warn("payment status overridden", zap.Int64("payment_id", id), zap.String("status", string(status)))
	return payment, nil
}

// ExpireStale rejects processing payments whose code outlived the TTL.
func (s *PaymentService) ExpireStale(ctx context.Context) ([]domain.Payment, error) {
	if s.codeTTL <= 0 {
		return nil, nil
	}
	expired, err := s.payments.RejectExpired(ctx, s.clock.Now().Add(-s.codeTTL))
	if err != nil {
		return nil, err
	}
	for _, p := range expired {
		metrics.PaymentConfirmFailuresTotal.WithLabelValues("expired").Inc()
		s.publish(ctx, kafka.EventPaymentRejected, p, 0, 0)
	}
	return expired, nil
}

func (s *PaymentService) notify(ctx context.Context, notice domain.VerificationNotice) bool {
	if s.notifier == nil {
		s.log.Warn("no notifier configured, verification code not sent", zap.Int64s("order_ids", notice.OrderIDs))
		return false
	}
	if err := s.notifier.NotifyVerificationCode(ctx, notice); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		s.log.Error("failed to send verification code",
			zap.Error(err),
			zap.Int64s("order_ids", notice.OrderIDs),
			zap.String("email", notice.Email),
		)
		return false
	}
	return true
}

func (s *PaymentService) confirmed(ctx context.Context, settlement Settlement) {
	metrics.PaymentsConfirmedTotal.Inc()
	metrics.InvoicesIssuedTotal.Inc()
	metrics.TicketsIssuedTotal.Add(float64(len(settlement.Tickets)))
	s.publish(ctx, kafka.EventPaymentConfirmed, settlement.Payment, settlement.Invoice.ID, len(settlement.Tickets))
	s.log.Info("payment confirmed",
		zap.Int64("payment_id", settlement.Payment.ID),
		zap.Int64("order_id", settlement.Order.ID),
		zap.String("invoice", settlement.Invoice.Number),
		zap.Int("tickets", len(settlement.Tickets)),
	)
}

func (s *PaymentService) publish(ctx context.Context, eventType string, p domain.Payment, invoiceID int64, tickets int) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.PaymentEvent{
		Type:       eventType,
		PaymentID:  p.ID,
		OrderID:    p.OrderID,
		Amount:     p.Amount,
		Status:     string(p.Status),
		InvoiceID:  invoiceID,
		Tickets:    tickets,
		OccurredAt: s.clock.Now(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, strconv.FormatInt(p.OrderID, 10), event); err != nil {
		s.log.Error("failed to publish payment event", zap.Error(err), zap.String("type", eventType), zap.Int64("payment_id", p.ID))
	}
}

// The limiter fails open: a Redis outage must not block confirmations.
func (s *PaymentService) checkAttempts(ctx context.Context, subject string) error {
	if s.limiter == nil || s.maxAttempts <= 0 {
		return nil
	}
	n, err := s.limiter.Failures(ctx, subject)
	if err != nil {
		s.log.Warn("attempt limiter unavailable", zap.Error(err))
		return nil
	}
	if n >= s.maxAttempts {
		return domain.ErrTooManyAttempts
	}
	return nil
}

// clientSubject keys the per-caller counter. Callers without an identity share one bucket.
func clientSubject(client string) string {
	if client == "" {
		return "client:unknown"
	}
	return "client:" + client
}

func (s *PaymentService) recordFailure(ctx context.Context, subject string) {
	if s.limiter == nil {
		return
	}
	if _, err := s.limiter.RecordFailure(ctx, subject, s.codeTTL); err != nil {
		s.log.Warn("failed to record verification failure", zap.Error(err), zap.String("subject", subject))
	}
}

func (s *PaymentService) resetAttempts(ctx context.Context, subject string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.ResetFailures(ctx, subject); err != nil {
		s.log.Warn("failed to reset verification failures", zap.Error(err), zap.String("subject", subject))
	}
}

func (s *PaymentService) confirmFailed(err error) {
	metrics.PaymentConfirmFailuresTotal.WithLabelValues(failureReason(err)).Inc()
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCode):
		return "invalid_code"
	case errors.Is(err, domain.ErrCodeExpired):
		return "expired"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "too_many_attempts"
	case errors.Is(err, domain.ErrPaymentAlreadyProcessed):
		return "already_processed"
	case errors.Is(err, domain.ErrPaymentNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrOrderChanged), errors.Is(err, domain.ErrOrderNotEditable):
		return "order_changed"
	default:
		return "error"
	}
}

func codesMatch(expected, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(submitted)) == 1
}

func uniqueSorted(ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: order_ids is required", domain.ErrInvalidInput)
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, domain.ErrInvalidID
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

var _ PaymentUseCase = (*PaymentService)(nil)
