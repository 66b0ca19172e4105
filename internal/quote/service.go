package quote

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/franco-vega/backend-tienda/internal/catalog"
	"github.com/franco-vega/backend-tienda/internal/pricing"
)

// ErrSessionNotFound is returned when no session exists for the given id,
// including sessions expired by the store TTL.
var ErrSessionNotFound = errors.New("quote session not found")

// ErrProductNotFound is returned when a session references a product that is
// not in the catalog feed.
var ErrProductNotFound = errors.New("quoted product not found")

// CompanyData carries the requesting company's details. Company name, RUT,
// contact name and email are mandatory; the rest is optional contact info.
type CompanyData struct {
	CompanyName string `json:"companyName" validate:"required"`
	RUT         string `json:"rut" validate:"required"`
	ContactName string `json:"contactName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Region      string `json:"region"`
}

// Session is one quotation workflow in progress. The quotation is a full
// snapshot rebuilt on every quantity change.
type Session struct {
	ID        string            `json:"id"`
	ProductID int               `json:"productId"`
	Quantity  int               `json:"quantity"`
	Company   CompanyData       `json:"company"`
	Step      Step              `json:"step"`
	Quotation pricing.Quotation `json:"quotation"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

const sessionKeyPrefix = "quote:session:"

// SessionStore persists workflow sessions as JSON values with a sliding TTL.
type SessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// Get returns the session and whether one existed.
func (st SessionStore) Get(ctx context.Context, id string) (Session, bool, error) {
	if st.Client == nil {
		return Session{}, false, errors.New("session store not configured")
	}
	data, err := st.Client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, false, nil
		}
		return Session{}, false, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, false, err
	}
	return sess, true, nil
}

// Put overwrites the session and refreshes its TTL.
func (st SessionStore) Put(ctx context.Context, sess Session) error {
	if st.Client == nil {
		return errors.New("session store not configured")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return st.Client.Set(ctx, sessionKeyPrefix+sess.ID, data, st.TTL).Err()
}

// ServiceConfig wires the workflow service dependencies.
type ServiceConfig struct {
	Feed     *catalog.Feed
	Engine   pricing.Engine
	Sessions SessionStore
	Validate *validator.Validate
	Now      func() time.Time
}

// Service drives quotation workflow sessions: creation, step transitions,
// quantity adjustments and lookup.
type Service struct {
	feed     *catalog.Feed
	engine   pricing.Engine
	sessions SessionStore
	validate *validator.Validate
	now      func() time.Time
}

// NewService constructs the workflow service.
func NewService(cfg ServiceConfig) *Service {
	v := cfg.Validate
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		feed:     cfg.Feed,
		engine:   cfg.Engine,
		sessions: cfg.Sessions,
		validate: v,
		now:      now,
	}
}

// Start creates a session from validated company data and an initial
// quantity, lands it on the calculation step and persists it.
func (s *Service) Start(ctx context.Context, productID, quantity int, company CompanyData) (Session, error) {
	if err := s.validate.Struct(company); err != nil {
		return Session{}, err
	}
	product, ok := s.feed.Get(productID)
	if !ok {
		return Session{}, ErrProductNotFound
	}
	quotation, err := s.engine.BuildQuotation(product, quantity)
	if err != nil {
		return Session{}, err
	}
	ts := s.now().UTC()
	sess := Session{
		ID:        uuid.NewString(),
		ProductID: productID,
		Quantity:  quantity,
		Company:   company,
		Step:      StepCalculation,
		Quotation: quotation,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Get looks up a session by id.
func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	sess, ok, err := s.sessions.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return sess, nil
}

// Advance moves the session to the target step if the transition is one of
// the allowed edges, and persists the result.
func (s *Service) Advance(ctx context.Context, id string, target Step) (Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if !target.Valid() || !sess.Step.CanTransition(target) {
		return Session{}, ErrInvalidTransition
	}
	sess.Step = target
	sess.UpdatedAt = s.now().UTC()
	if err := s.sessions.Put(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// UpdateQuantity rebuilds the quotation snapshot for the new quantity. It is
// only allowed while the session sits on the calculation step.
func (s *Service) UpdateQuantity(ctx context.Context, id string, quantity int) (Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if sess.Step != StepCalculation {
		return Session{}, ErrInvalidTransition
	}
	product, ok := s.feed.Get(sess.ProductID)
	if !ok {
		return Session{}, ErrProductNotFound
	}
	quotation, err := s.engine.BuildQuotation(product, quantity)
	if err != nil {
		return Session{}, err
	}
	sess.Quantity = quantity
	sess.Quotation = quotation
	sess.UpdatedAt = s.now().UTC()
	if err := s.sessions.Put(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Product returns the catalog product a session quotes.
func (s *Service) Product(sess Session) (catalog.Product, bool) {
	return s.feed.Get(sess.ProductID)
}
