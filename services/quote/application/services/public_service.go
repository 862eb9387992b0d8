package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/voltdesk/pkg/cache"
	"github.com/ghuser/voltdesk/pkg/logger"
	"github.com/ghuser/voltdesk/services/quote/domain"
	domainevents "github.com/ghuser/voltdesk/services/quote/domain/events"
	"github.com/ghuser/voltdesk/services/quote/domain/models"
	"github.com/ghuser/voltdesk/services/quote/domain/repositories"
)

// PublicView is the read model shown to an access-link holder. It never
// carries the access link itself.
type PublicView struct {
	ID              uuid.UUID        `json:"id"`
	Kind            string           `json:"kind"`
	Name            string           `json:"name"`
	ClientName      string           `json:"client_name"`
	Notes           *string          `json:"notes,omitempty"`
	Status          string           `json:"status"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	DiscountAmount  decimal.Decimal  `json:"discount_amount"`
	DiscountType    *string          `json:"discount_type,omitempty"`
	DiscountValue   *decimal.Decimal `json:"discount,omitempty"`
	TotalValue      decimal.Decimal  `json:"total_value"`
	ValidUntil      *time.Time       `json:"valid_until,omitempty"`
	ApprovedAt      *time.Time       `json:"approved_at,omitempty"`
	RejectedAt      *time.Time       `json:"rejected_at,omitempty"`
	RejectionReason *string          `json:"rejection_reason,omitempty"`
	Items           []PublicItem     `json:"items"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// PublicItem is one line of a PublicView.
type PublicItem struct {
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// cachedView pairs a view with a digest of the link that unlocks it, so a
// cache hit still requires the right access link.
type cachedView struct {
	LinkDigest string     `json:"link_digest"`
	View       PublicView `json:"view"`
}

// PublicService serves the access-link routes: view, approve and reject a
// budget or material list without the professional's credential.
type PublicService struct {
	engines map[models.Kind]*quoteEngine
	store   repositories.Store
	views   ViewCache
	log     logger.Logger
}

// NewPublicService returns a PublicService acting through the given services.
func NewPublicService(budgets *BudgetService, lists *MaterialListService) *PublicService {
	return &PublicService{
		engines: map[models.Kind]*quoteEngine{
			models.KindBudget:       budgets.quoteEngine,
			models.KindMaterialList: lists.quoteEngine,
		},
		store: budgets.store,
		views: budgets.views,
		log:   budgets.log,
	}
}

// View returns the public read model. A wrong access link fails with
// ErrInvalidAccessLink; an unknown id with the kind's not-found error.
func (s *PublicService) View(ctx context.Context, kind models.Kind, id uuid.UUID, accessLink string) (*PublicView, error) {
	if s.views != nil {
		var cv cachedView
		err := s.views.Get(ctx, kind.String(), id, &cv)
		switch {
		case err == nil:
			if subtle.ConstantTimeCompare([]byte(cv.LinkDigest), []byte(linkDigest(accessLink))) != 1 {
				return nil, domain.ErrInvalidAccessLink
			}
			return &cv.View, nil
		case !errors.Is(err, cache.ErrCacheMiss):
			s.log.WarnContext(ctx, "public view cache read failed", "kind", kind, "id", id, "error", err)
		}
	}

	var (
		view   *PublicView
		digest string
	)
	err := s.store.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		repo := tx.Quotes(kind)
		q, err := s.verified(ctx, repo, id, accessLink, false)
		if err != nil {
			return err
		}
		items, err := repo.Items(ctx, q.ID)
		if err != nil {
			return fmt.Errorf("load items: %w", err)
		}
		client, err := tx.Catalog().Client(ctx, q.ProfessionalID, q.ClientID)
		if err != nil {
			return err
		}
		view = NewPublicView(q, items, client.Name)
		digest = linkDigest(q.AccessLink)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.views != nil {
		if err := s.views.Set(ctx, kind.String(), id, cachedView{LinkDigest: digest, View: *view}); err != nil {
			s.log.WarnContext(ctx, "public view cache write failed", "kind", kind, "id", id, "error", err)
		}
	}
	return view, nil
}

// Approve transitions to APPROVED on behalf of the access-link holder.
func (s *PublicService) Approve(ctx context.Context, kind models.Kind, id uuid.UUID, accessLink string) (*models.Quote, error) {
	return s.transition(ctx, kind, id, accessLink, models.StatusApproved, nil)
}

// Reject transitions to REJECTED, keeping reason when supplied.
func (s *PublicService) Reject(ctx context.Context, kind models.Kind, id uuid.UUID, accessLink string, reason *string) (*models.Quote, error) {
	return s.transition(ctx, kind, id, accessLink, models.StatusRejected, reason)
}

func (s *PublicService) transition(ctx context.Context, kind models.Kind, id uuid.UUID, accessLink string, to models.Status, reason *string) (*models.Quote, error) {
	e, ok := s.engines[kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	load := func(ctx context.Context, repo repositories.QuoteRepository) (*models.Quote, error) {
		return s.verified(ctx, repo, id, accessLink, true)
	}
	return e.transition(ctx, load, to, reason, domainevents.ActorClient)
}

func (s *PublicService) verified(ctx context.Context, repo repositories.QuoteRepository, id uuid.UUID, accessLink string, lock bool) (*models.Quote, error) {
	q, err := repo.GetForPublic(ctx, id, lock)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(q.AccessLink), []byte(strings.TrimSpace(accessLink))) != 1 {
		return nil, domain.ErrInvalidAccessLink
	}
	return q, nil
}

func linkDigest(link string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(link)))
	return hex.EncodeToString(sum[:])
}

// NewPublicView builds the read model from an aggregate and its items.
func NewPublicView(q *models.Quote, items []models.Item, clientName string) *PublicView {
	v := &PublicView{
		ID:              q.ID,
		Kind:            q.Kind.String(),
		Name:            q.Name,
		ClientName:      clientName,
		Notes:           q.Notes,
		Status:          q.Status.String(),
		Subtotal:        q.Subtotal,
		DiscountAmount:  q.Subtotal.Sub(q.TotalValue),
		TotalValue:      q.TotalValue,
		ValidUntil:      q.ValidUntil,
		ApprovedAt:      q.ApprovedAt,
		RejectedAt:      q.RejectedAt,
		RejectionReason: q.RejectionReason,
		Items:           make([]PublicItem, len(items)),
		UpdatedAt:       q.UpdatedAt,
	}
	if q.Discount != nil {
		t := string(q.Discount.Type)
		v.DiscountType = &t
		v.DiscountValue = &q.Discount.Value
	}
	for i, it := range items {
		v.Items[i] = PublicItem{
			Name:        it.Name,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		}
	}
	return v
}

// PublicURL is the shareable address of q under baseURL, carrying the
// access link as a query parameter.
func PublicURL(baseURL string, q *models.Quote) string {
	segment := "budgets"
	if q.Kind == models.KindMaterialList {
		segment = "material-lists"
	}
	return fmt.Sprintf("%s/%s/%s?access_link=%s", strings.TrimRight(baseURL, "/"), segment, q.ID, q.AccessLink)
}
