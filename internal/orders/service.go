package orders

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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

// Notifier fans a status change out to the affected members inside the same
// transaction.
type Notifier interface {
	OrderStatusChanged(ctx context.Context, tx *gorm.DB, order *models.Order, previous enums.OrderStatus, recipients []uuid.UUID) error
}

// Service defines the admin-facing order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Order, error)
	Update(ctx context.Context, orderID uuid.UUID, input UpdateInput) (*models.Order, error)
	SetStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error)
	Delete(ctx context.Context, orderID uuid.UUID) error
	Get(ctx context.Context, orderID uuid.UUID) (*Detail, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*List, error)

	AddItem(ctx context.Context, orderID uuid.UUID, input ItemInput) (*models.OrderItem, error)
	UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, input ItemInput) (*models.OrderItem, error)
	RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) error
}

type service struct {
	repo     Repository
	tx       txRunner
	notifier Notifier
	logg     *logger.Logger
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner, notifier Notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
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
		tx:       tx,
		notifier: notifier,
		logg:     logg,
	}, nil
}

const (
	titleMinLen = 3
	titleMaxLen = 100
)

func validateTitle(title string) error {
	// rune count, matching the request tag's min/max semantics
	if n := utf8.RuneCountInString(title); n < titleMinLen || n > titleMaxLen {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("title must be between %d and %d characters", titleMinLen, titleMaxLen))
	}
	return nil
}

func validateFee(name string, fee *decimal.Decimal) error {
	if fee != nil && fee.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, name+" must not be negative")
	}
	return nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Order, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order type")
	}
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validateFee("customs fees", input.CustomsFees); err != nil {
		return nil, err
	}
	if err := validateFee("shipping cost", input.ShippingCost); err != nil {
		return nil, err
	}

	order := &models.Order{
		Type:         input.Type,
		Status:       enums.OrderStatusPlanning,
		Title:        input.Title,
		Description:  input.Description,
		TargetDate:   input.TargetDate,
		CustomsFees:  input.CustomsFees,
		ShippingCost: input.ShippingCost,
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, orderID uuid.UUID, input UpdateInput) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
	}
	if err := validateFee("customs fees", input.CustomsFees.Value); err != nil {
		return nil, err
	}
	if err := validateFee("shipping cost", input.ShippingCost.Value); err != nil {
		return nil, err
	}

	// set fields with a nil value write NULL, clearing the column
	updates := map[string]any{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description.Set {
		updates["description"] = input.Description.Value
	}
	if input.TargetDate.Set {
		updates["target_date"] = input.TargetDate.Value
	}
	if input.OrderPlacedAt.Set {
		updates["order_placed_at"] = input.OrderPlacedAt.Value
	}
	if input.DeliveryExpectedAt.Set {
		updates["delivery_expected_at"] = input.DeliveryExpectedAt.Value
	}
	if input.DeliveredAt.Set {
		updates["delivered_at"] = input.DeliveredAt.Value
	}
	feesChanged := input.CustomsFees.Set || input.ShippingCost.Set
	if input.CustomsFees.Set {
		updates["customs_fees"] = input.CustomsFees.Value
	}
	if input.ShippingCost.Set {
		updates["shipping_cost"] = input.ShippingCost.Value
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.Find(ctx, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		if len(updates) > 0 {
			if err := repo.Update(ctx, order.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
			}
		}

		if feesChanged {
			customs := order.CustomsFees
			shipping := order.ShippingCost
			if input.CustomsFees.Set {
				customs = input.CustomsFees.Value
			}
			if input.ShippingCost.Set {
				shipping = input.ShippingCost.Value
			}
			if err := s.reallocate(ctx, repo, order.ID, customs, shipping); err != nil {
				return err
			}
		}

		updated, err = repo.Find(ctx, orderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) SetStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.Find(ctx, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status == status {
			updated = order
			return nil
		}

		if !order.Status.CanTransitionTo(status) {
			lctx := s.logg.WithFields(ctx, map[string]any{
				"order_id": order.ID.String(),
				"from":     order.Status.String(),
				"to":       status.String(),
			})
			s.logg.Warn(lctx, "out-of-sequence order status change")
		}

		previous := order.Status
		if err := repo.UpdateStatus(ctx, order.ID, status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}

		now := time.Now().UTC()
		stamps := map[string]any{}
		if status == enums.OrderStatusInProgress && order.OrderPlacedAt == nil {
			stamps["order_placed_at"] = now
		}
		if status == enums.OrderStatusCompleted && order.DeliveredAt == nil {
			stamps["delivered_at"] = now
		}
		if len(stamps) > 0 {
			if err := repo.Update(ctx, order.ID, stamps); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stamp order timestamps")
			}
		}

		order.Status = status
		recipients, err := repo.FindWishOwnerIDs(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wish owners")
		}
		if err := s.notifier.OrderStatusChanged(ctx, tx, order, previous, recipients); err != nil {
			return err
		}

		updated, err = repo.Find(ctx, orderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Find(ctx, orderID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if err := repo.Delete(ctx, orderID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
		}
		return nil
	})
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*Detail, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindWithDetails(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	total := decimal.Zero
	for _, item := range order.Items {
		total = total.Add(item.TotalPrice)
	}
	return &Detail{
		Order:      *order,
		Items:      order.Items,
		ItemsTotal: total,
	}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*List, error) {
	rows, next, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	summaries := make([]Summary, 0, len(rows))
	for _, order := range rows {
		summaries = append(summaries, Summary{
			ID:                order.ID,
			Type:              order.Type,
			Status:            order.Status,
			Title:             order.Title,
			TargetDate:        order.TargetDate,
			CustomsFees:       order.CustomsFees,
			ShippingCost:      order.ShippingCost,
			WishCount:         len(order.Wishes),
			ItemCount:         len(order.Items),
			NotificationCount: len(order.Notifications),
			CreatedAt:         order.CreatedAt,
		})
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &List{Orders: summaries, NextCursor: cursor}, nil
}

func validateItemInput(input ItemInput) error {
	if input.ProductName == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if input.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.UnitPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unit price must not be negative")
	}
	return nil
}

func (s *service) AddItem(ctx context.Context, orderID uuid.UUID, input ItemInput) (*models.OrderItem, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	var created *models.OrderItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.Find(ctx, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		item := &models.OrderItem{
			OrderID:     order.ID,
			ProductName: input.ProductName,
			ProductURL:  input.ProductURL,
			Quantity:    input.Quantity,
			UnitPrice:   input.UnitPrice,
		}
		created, err = repo.CreateItem(ctx, item)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order item")
		}

		return s.reallocate(ctx, repo, order.ID, order.CustomsFees, order.ShippingCost)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, input ItemInput) (*models.OrderItem, error) {
	if orderID == uuid.Nil || itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id and item id required")
	}
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	var updated *models.OrderItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.Find(ctx, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		item, err := repo.FindItem(ctx, itemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order item")
		}
		if item.OrderID != order.ID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "item does not belong to order")
		}

		item.ProductName = input.ProductName
		item.ProductURL = input.ProductURL
		item.Quantity = input.Quantity
		item.UnitPrice = input.UnitPrice
		if err := repo.SaveItems(ctx, []models.OrderItem{*item}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order item")
		}

		if err := s.reallocate(ctx, repo, order.ID, order.CustomsFees, order.ShippingCost); err != nil {
			return err
		}

		updated, err = repo.FindItem(ctx, itemID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) error {
	if orderID == uuid.Nil || itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id and item id required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.Find(ctx, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		item, err := repo.FindItem(ctx, itemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order item")
		}
		if item.OrderID != order.ID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "item does not belong to order")
		}

		if err := repo.DeleteItem(ctx, itemID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order item")
		}

		return s.reallocate(ctx, repo, order.ID, order.CustomsFees, order.ShippingCost)
	})
}

// reallocate recomputes fee allocations from scratch for every remaining item
// of the order. Runs inside the caller's transaction.
func (s *service) reallocate(ctx context.Context, repo Repository, orderID uuid.UUID, customs, shipping *decimal.Decimal) error {
	items, err := repo.FindItemsByOrder(ctx, orderID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order items")
	}
	if len(items) == 0 {
		return nil
	}
	Allocate(items, customs, shipping)
	if err := repo.SaveItems(ctx, items); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save allocations")
	}
	return nil
}
