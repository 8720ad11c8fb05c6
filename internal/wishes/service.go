package wishes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tlemoine/gamehaul-backend/pkg/db/models"
	"github.com/tlemoine/gamehaul-backend/pkg/enums"
	pkgerrors "github.com/tlemoine/gamehaul-backend/pkg/errors"
	"github.com/tlemoine/gamehaul-backend/pkg/logger"
	"github.com/tlemoine/gamehaul-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// OrderSource resolves the order a wish targets.
type OrderSource interface {
	Find(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

// Notifier informs the wish owner about an admin decision inside the same
// transaction.
type Notifier interface {
	WishStatusChanged(ctx context.Context, tx *gorm.DB, wish *models.Wish, previous enums.WishStatus) error
}

// Service defines the member and admin wish operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*models.Wish, error)
	UpdateOwn(ctx context.Context, userID, wishID uuid.UUID, input UpdateInput) (*models.Wish, error)
	Cancel(ctx context.Context, userID, wishID uuid.UUID) (*models.Wish, error)
	ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (*List, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Wish, error)
	Review(ctx context.Context, wishID uuid.UUID, input ReviewInput) (*models.Wish, error)
}

type service struct {
	repo     Repository
	orders   OrderSource
	tx       txRunner
	notifier Notifier
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds a wish service with the required dependencies.
func NewService(repo Repository, orders OrderSource, tx txRunner, notifier Notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wishes repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order source required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		orders:   orders,
		tx:       tx,
		notifier: notifier,
		logg:     logg,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*models.Wish, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ProductName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.EstimatedPrice != nil && input.EstimatedPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimated price must not be negative")
	}

	order, err := s.orders.Find(ctx, input.OrderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.Status != enums.OrderStatusPlanning {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order no longer accepts wishes")
	}
	if order.TargetDate != nil && s.now().After(*order.TargetDate) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order deadline has passed")
	}

	wish := &models.Wish{
		OrderID:        order.ID,
		UserID:         userID,
		ProductName:    input.ProductName,
		ProductURL:     input.ProductURL,
		Quantity:       input.Quantity,
		EstimatedPrice: input.EstimatedPrice,
		Status:         enums.WishStatusSubmitted,
		MemberComment:  input.MemberComment,
	}
	created, err := s.repo.Create(ctx, wish)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create wish")
	}
	return created, nil
}

func (s *service) UpdateOwn(ctx context.Context, userID, wishID uuid.UUID, input UpdateInput) (*models.Wish, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if wishID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wish id required")
	}
	if input.ProductName != nil && *input.ProductName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if input.Quantity != nil && *input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.EstimatedPrice != nil && input.EstimatedPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimated price must not be negative")
	}

	wish, err := s.loadOwned(ctx, userID, wishID)
	if err != nil {
		return nil, err
	}
	if wish.Status != enums.WishStatusSubmitted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only submitted wishes can be edited")
	}
	if err := s.requirePlanningOrder(ctx, wish.OrderID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.ProductName != nil {
		updates["product_name"] = *input.ProductName
	}
	if input.ProductURL != nil {
		updates["product_url"] = *input.ProductURL
	}
	if input.Quantity != nil {
		updates["quantity"] = *input.Quantity
	}
	if input.EstimatedPrice != nil {
		updates["estimated_price"] = *input.EstimatedPrice
	}
	if input.MemberComment != nil {
		updates["member_comment"] = *input.MemberComment
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, wish.ID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update wish")
		}
	}

	updated, err := s.repo.Find(ctx, wishID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload wish")
	}
	return updated, nil
}

func (s *service) Cancel(ctx context.Context, userID, wishID uuid.UUID) (*models.Wish, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if wishID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wish id required")
	}

	wish, err := s.loadOwned(ctx, userID, wishID)
	if err != nil {
		return nil, err
	}
	if wish.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "wish is already settled")
	}

	if err := s.repo.UpdateStatus(ctx, wish.ID, enums.WishStatusCancelled); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel wish")
	}
	wish.Status = enums.WishStatusCancelled
	return wish, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (*List, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	rows, next, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishes")
	}
	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &List{Wishes: rows, NextCursor: cursor}, nil
}

func (s *service) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Wish, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	rows, err := s.repo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order wishes")
	}
	return rows, nil
}

func (s *service) Review(ctx context.Context, wishID uuid.UUID, input ReviewInput) (*models.Wish, error) {
	if wishID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wish id required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid wish status")
	}
	if input.ValidatedPrice != nil && input.ValidatedPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validated price must not be negative")
	}

	var reviewed *models.Wish
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		wish, err := repo.Find(ctx, wishID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "wish not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wish")
		}

		previous := wish.Status
		if previous != input.Status && !previous.CanTransitionTo(input.Status) {
			lctx := s.logg.WithFields(ctx, map[string]any{
				"wish_id": wish.ID.String(),
				"from":    previous.String(),
				"to":      input.Status.String(),
			})
			s.logg.Warn(lctx, "out-of-sequence wish status change")
		}
		if input.Status == enums.WishStatusValidated && input.ValidatedPrice == nil && wish.ValidatedPrice == nil {
			lctx := s.logg.WithField(ctx, "wish_id", wish.ID.String())
			s.logg.Warn(lctx, "wish validated without a validated price")
		}

		updates := map[string]any{"status": input.Status}
		if input.ValidatedPrice != nil {
			updates["validated_price"] = *input.ValidatedPrice
		}
		if input.AdminComment != nil {
			updates["admin_comment"] = *input.AdminComment
		}
		if err := repo.Update(ctx, wish.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update wish")
		}

		wish.Status = input.Status
		if input.ValidatedPrice != nil {
			wish.ValidatedPrice = input.ValidatedPrice
		}
		if input.AdminComment != nil {
			wish.AdminComment = input.AdminComment
		}

		if previous != input.Status {
			if err := s.notifier.WishStatusChanged(ctx, tx, wish, previous); err != nil {
				return err
			}
		}
		reviewed = wish
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}

func (s *service) loadOwned(ctx context.Context, userID, wishID uuid.UUID) (*models.Wish, error) {
	wish, err := s.repo.Find(ctx, wishID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wish not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wish")
	}
	if wish.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "wish does not belong to user")
	}
	return wish, nil
}

func (s *service) requirePlanningOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orders.Find(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.Status != enums.OrderStatusPlanning {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order no longer accepts changes")
	}
	return nil
}
