package wishes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tlemoine/gamehaul-backend/pkg/db/models"
	"github.com/tlemoine/gamehaul-backend/pkg/enums"
	"github.com/tlemoine/gamehaul-backend/pkg/pagination"
)

// Repository defines persistence operations for wishes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, wish *models.Wish) (*models.Wish, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Wish, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Wish, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Wish, *pagination.Cursor, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.WishStatus) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a wishes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, wish *models.Wish) (*models.Wish, error) {
	if err := r.db.WithContext(ctx).Create(wish).Error; err != nil {
		return nil, err
	}
	return wish, nil
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.Wish, error) {
	var wish models.Wish
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&wish).Error
	if err != nil {
		return nil, err
	}
	return &wish, nil
}

func (r *repository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Wish, error) {
	var rows []models.Wish
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Wish, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.Wish{}).
		Where("user_id = ?", userID)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Wish
	if err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		rows = rows[:normalized]
		last := rows[normalized-1]
		return rows, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return rows, nil, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Wish{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.WishStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Wish{}).
		Where("id = ?", id).
		Update("status", status).Error
}
