package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tlemoine/gamehaul-backend/pkg/db/models"
	"github.com/tlemoine/gamehaul-backend/pkg/enums"
	"github.com/tlemoine/gamehaul-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'member',
  email_verified INTEGER NOT NULL DEFAULT 0,
  image TEXT,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'planning',
  title TEXT NOT NULL,
  description TEXT,
  target_date DATETIME,
  order_placed_at DATETIME,
  delivery_expected_at DATETIME,
  delivered_at DATETIME,
  customs_fees TEXT,
  shipping_cost TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	wishes := `
CREATE TABLE IF NOT EXISTS wishes (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  user_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  product_url TEXT,
  quantity INTEGER NOT NULL DEFAULT 1,
  estimated_price TEXT,
  validated_price TEXT,
  status TEXT NOT NULL DEFAULT 'submitted',
  member_comment TEXT,
  admin_comment TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_name TEXT NOT NULL,
  product_url TEXT,
  quantity INTEGER NOT NULL DEFAULT 1,
  unit_price TEXT NOT NULL,
  allocated_customs_fee TEXT NOT NULL DEFAULT '0',
  allocated_shipping TEXT NOT NULL DEFAULT '0',
  total_price TEXT NOT NULL DEFAULT '0',
  created_at DATETIME,
  updated_at DATETIME
);`
	notifications := `
CREATE TABLE IF NOT EXISTS notifications (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  order_id TEXT REFERENCES orders(id) ON DELETE CASCADE,
  type TEXT NOT NULL,
  title TEXT NOT NULL,
  message TEXT NOT NULL,
  read_at DATETIME,
  created_at DATETIME
);`

	for _, ddl := range []string{users, orders, wishes, orderItems, notifications} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, title string, status enums.OrderStatus, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:        uuid.New(),
		Type:      enums.OrderTypeMonthly,
		Status:    status,
		Title:     title,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := &models.Order{
		ID:     uuid.New(),
		Type:   enums.OrderTypePrivateSale,
		Status: enums.OrderStatusPlanning,
		Title:  "Essen haul",
	}
	created, err := repo.Create(ctx, order)
	require.NoError(t, err)

	found, err := repo.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Essen haul", found.Title)
	assert.Equal(t, enums.OrderStatusPlanning, found.Status)
}

func TestRepositoryListFiltersAndPaginates(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	seedOrder(t, db, "January order", enums.OrderStatusCompleted, base)
	seedOrder(t, db, "February order", enums.OrderStatusPlanning, base.Add(time.Hour))
	seedOrder(t, db, "March order", enums.OrderStatusPlanning, base.Add(2*time.Hour))

	planning := enums.OrderStatusPlanning
	rows, next, err := repo.List(ctx, pagination.Params{Limit: 1}, Filters{Status: &planning})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "March order", rows[0].Title)
	require.NotNil(t, next)

	rows, next, err = repo.List(ctx, pagination.Params{Limit: 1, Cursor: pagination.EncodeCursor(*next)}, Filters{Status: &planning})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "February order", rows[0].Title)
	assert.Nil(t, next)
}

func TestRepositoryDeleteCascadesToWishesAndItems(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, "Cascade order", enums.OrderStatusPlanning, time.Now().UTC())
	wish := &models.Wish{
		ID:          uuid.New(),
		OrderID:     order.ID,
		UserID:      uuid.New(),
		ProductName: "Wingspan",
		Quantity:    1,
		Status:      enums.WishStatusSubmitted,
	}
	require.NoError(t, db.Create(wish).Error)
	item := &models.OrderItem{
		ID:          uuid.New(),
		OrderID:     order.ID,
		ProductName: "Wingspan",
		Quantity:    1,
		UnitPrice:   dec("49.90"),
	}
	require.NoError(t, db.Create(item).Error)

	require.NoError(t, repo.Delete(ctx, order.ID))

	var wishCount, itemCount int64
	require.NoError(t, db.Model(&models.Wish{}).Where("order_id = ?", order.ID).Count(&wishCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.Zero(t, wishCount)
	assert.Zero(t, itemCount)
}

func TestRepositoryFindWishOwnerIDsDeduplicates(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, "Owner order", enums.OrderStatusPlanning, time.Now().UTC())
	owner := uuid.New()
	for i := 0; i < 2; i++ {
		wish := &models.Wish{
			ID:          uuid.New(),
			OrderID:     order.ID,
			UserID:      owner,
			ProductName: "Root",
			Quantity:    1,
			Status:      enums.WishStatusSubmitted,
		}
		require.NoError(t, db.Create(wish).Error)
	}

	ids, err := repo.FindWishOwnerIDs(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, owner, ids[0])
}

func TestRepositorySaveItemsPersistsAllocations(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, "Alloc order", enums.OrderStatusInProgress, time.Now().UTC())
	item := &models.OrderItem{
		ID:          uuid.New(),
		OrderID:     order.ID,
		ProductName: "Gloomhaven",
		Quantity:    1,
		UnitPrice:   dec("120.00"),
	}
	_, err := repo.CreateItem(ctx, item)
	require.NoError(t, err)

	items, err := repo.FindItemsByOrder(ctx, order.ID)
	require.NoError(t, err)
	Allocate(items, decPtr("12.00"), nil)
	require.NoError(t, repo.SaveItems(ctx, items))

	saved, err := repo.FindItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, saved.AllocatedCustomsFee.Equal(dec("12.00")))
	assert.True(t, saved.TotalPrice.Equal(dec("132.00")))
}
