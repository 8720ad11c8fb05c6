package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tlemoine/gamehaul-backend/pkg/db/models"
	"github.com/tlemoine/gamehaul-backend/pkg/enums"
	pkgerrors "github.com/tlemoine/gamehaul-backend/pkg/errors"
	"github.com/tlemoine/gamehaul-backend/pkg/pagination"
)

// Service defines notification list/read operations plus the status fan-out
// hooks invoked by the order and wish services.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)

	OrderStatusChanged(ctx context.Context, tx *gorm.DB, order *models.Order, previous enums.OrderStatus, recipients []uuid.UUID) error
	WishStatusChanged(ctx context.Context, tx *gorm.DB, wish *models.Wish, previous enums.WishStatus) error
}

type service struct {
	repo Repository
}

// ListParams configures pagination for notifications.
type ListParams struct {
	UserID     uuid.UUID
	Limit      int
	Cursor     string
	UnreadOnly bool
}

// ListResult wraps returned notifications and the cursor for the next page.
type ListResult struct {
	Items  []models.Notification `json:"items"`
	Cursor string                `json:"cursor"`
}

// NewService wires notifications dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	query := listNotificationsParams{
		UserID:     params.UserID,
		Limit:      params.Limit,
		UnreadOnly: params.UnreadOnly,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}

	return &ListResult{
		Items:  rows,
		Cursor: cursor,
	}, nil
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	mark, err := s.repo.MarkRead(ctx, userID, notificationID, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if !mark.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	count, err := s.repo.MarkAllRead(ctx, userID, time.Now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return count, nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread notifications")
	}
	return count, nil
}

var orderStatusLabels = map[enums.OrderStatus]string{
	enums.OrderStatusPlanning:   "is back in planning",
	enums.OrderStatusInProgress: "has been placed",
	enums.OrderStatusInDelivery: "is on its way",
	enums.OrderStatusCompleted:  "has been delivered",
	enums.OrderStatusCancelled:  "has been cancelled",
}

func (s *service) OrderStatusChanged(ctx context.Context, tx *gorm.DB, order *models.Order, previous enums.OrderStatus, recipients []uuid.UUID) error {
	if order == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "order required")
	}
	if len(recipients) == 0 {
		return nil
	}

	label, ok := orderStatusLabels[order.Status]
	if !ok {
		label = fmt.Sprintf("moved to %s", order.Status)
	}
	orderID := order.ID
	batch := make([]models.Notification, 0, len(recipients))
	for _, userID := range recipients {
		batch = append(batch, models.Notification{
			UserID:  userID,
			OrderID: &orderID,
			Type:    enums.NotificationTypeOrderStatus,
			Title:   fmt.Sprintf("Order %q %s", order.Title, label),
			Message: fmt.Sprintf("Status changed from %s to %s.", previous, order.Status),
		})
	}

	if err := s.repo.WithTx(tx).CreateBatch(ctx, batch); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order notifications")
	}
	return nil
}

var wishStatusLabels = map[enums.WishStatus]string{
	enums.WishStatusSubmitted: "is back under review",
	enums.WishStatusValidated: "has been validated",
	enums.WishStatusRejected:  "has been rejected",
	enums.WishStatusConfirmed: "has been confirmed",
	enums.WishStatusCancelled: "has been cancelled",
}

func (s *service) WishStatusChanged(ctx context.Context, tx *gorm.DB, wish *models.Wish, previous enums.WishStatus) error {
	if wish == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "wish required")
	}

	label, ok := wishStatusLabels[wish.Status]
	if !ok {
		label = fmt.Sprintf("moved to %s", wish.Status)
	}
	orderID := wish.OrderID
	notification := &models.Notification{
		UserID:  wish.UserID,
		OrderID: &orderID,
		Type:    enums.NotificationTypeWishStatus,
		Title:   fmt.Sprintf("Your wish %q %s", wish.ProductName, label),
		Message: fmt.Sprintf("Status changed from %s to %s.", previous, wish.Status),
	}

	if err := s.repo.WithTx(tx).Create(ctx, notification); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create wish notification")
	}
	return nil
}
