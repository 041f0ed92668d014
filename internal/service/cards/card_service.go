package cards

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/skyreserva/internal/clock"
	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/repository"
	"go.uber.org/zap"
)

type CardUseCase interface {
	Create(ctx context.Context, input CreateInput) (*domain.CreditCard, error)
	Get(ctx context.Context, id int64) (*domain.CreditCard, error)
	List(ctx context.Context) ([]domain.CreditCard, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.CreditCard, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*domain.CreditCard, error)
	Deactivate(ctx context.Context, id int64) (*domain.CreditCard, error)
	Delete(ctx context.Context, id int64) error
}

type CreateInput struct {
	UserID int64           `json:"user_id"`
	Number string          `json:"number"`
	Holder string          `json:"holder"`
	Expiry string          `json:"expiry"`
	Type   domain.CardType `json:"type"`
}

type UpdateInput struct {
	Holder *string `json:"holder"`
	Expiry *string `json:"expiry"`
	Active *bool   `json:"active"`
}

type CardService struct {
	users repository.CatalogRepository
	cards repository.CardRepository
	clock clock.Clock
	log   *zap.Logger
}

type Option func(*CardService)

func WithClock(c clock.Clock) Option {
	return func(s *CardService) {
		s.clock = c
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *CardService) {
		s.log = log
	}
}

func NewCardService(users repository.CatalogRepository, cards repository.CardRepository, opts ...Option) *CardService {
	s := &CardService{
		users: users,
		cards: cards,
		clock: clock.NewSystem(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores the card keeping only the last four digits of the number.
func (s *CardService) Create(ctx context.Context, input CreateInput) (*domain.CreditCard, error) {
	if input.UserID <= 0 {
		return nil, domain.ErrInvalidID
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unsupported card type %q", domain.ErrInvalidCard, input.Type)
	}
	holder := strings.TrimSpace(input.Holder)
	if holder == "" {
		return nil, fmt.Errorf("%w: holder is required", domain.ErrInvalidCard)
	}
	last4, err := domain.LastFour(input.Number)
	if err != nil {
		return nil, err
	}
	expiry, err := parseExpiry(input.Expiry)
	if err != nil {
		return nil, err
	}

	card := &domain.CreditCard{
		UserID: input.UserID,
		Last4:  last4,
		Holder: holder,
		Expiry: expiry,
		Type:   input.Type,
		Active: true,
	}
	if card.ExpiredAt(s.clock.Now()) {
		return nil, domain.ErrCardExpired
	}
	if _, err := s.users.GetUser(ctx, input.UserID); err != nil {
		return nil, err
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}
	s.log.Info("card registered", zap.Int64("card_id", card.ID), zap.Int64("user_id", card.UserID), zap.String("number", card.MaskedNumber()))
	return card, nil
}

func (s *CardService) Get(ctx context.Context, id int64) (*domain.CreditCard, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.cards.GetByID(ctx, id)
}

func (s *CardService) List(ctx context.Context) ([]domain.CreditCard, error) {
	return s.cards.List(ctx)
}

func (s *CardService) ListByUser(ctx context.Context, userID int64) ([]domain.CreditCard, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.cards.ListByUser(ctx, userID)
}

func (s *CardService) Update(ctx context.Context, id int64, input UpdateInput) (*domain.CreditCard, error) {
	card, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Holder != nil {
		holder := strings.TrimSpace(*input.Holder)
		if holder == "" {
			return nil, fmt.Errorf("%w: holder is required", domain.ErrInvalidCard)
		}
		card.Holder = holder
	}
	if input.Expiry != nil {
		expiry, err := parseExpiry(*input.Expiry)
		if err != nil {
			return nil, err
		}
		card.Expiry = expiry
	}
	if input.Active != nil {
		card.Active = *input.Active
	}
	if err := s.cards.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *CardService) Deactivate(ctx context.Context, id int64) (*domain.CreditCard, error) {
	inactive := false
	return s.Update(ctx, id, UpdateInput{Active: &inactive})
}

func (s *CardService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	return s.cards.Delete(ctx, id)
}

func parseExpiry(v string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expiry must be YYYY-MM-DD", domain.ErrInvalidCard)
	}
	return t, nil
}

var _ CardUseCase = (*CardService)(nil)
