package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	internalauth "github.com/tlemoine/gamehaul-backend/internal/auth"
	"github.com/tlemoine/gamehaul-backend/internal/notifications"
	"github.com/tlemoine/gamehaul-backend/internal/orders"
	"github.com/tlemoine/gamehaul-backend/internal/users"
	"github.com/tlemoine/gamehaul-backend/internal/wishes"
	pkgAuth "github.com/tlemoine/gamehaul-backend/pkg/auth"
	"github.com/tlemoine/gamehaul-backend/pkg/auth/session"
	"github.com/tlemoine/gamehaul-backend/pkg/config"
	"github.com/tlemoine/gamehaul-backend/pkg/db/models"
	"github.com/tlemoine/gamehaul-backend/pkg/enums"
	"github.com/tlemoine/gamehaul-backend/pkg/logger"
	"github.com/tlemoine/gamehaul-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req internalauth.RegisterRequest) (*internalauth.AuthResponse, error) {
	return &internalauth.AuthResponse{}, nil
}

func (stubAuthService) Login(ctx context.Context, req internalauth.LoginRequest) (*internalauth.AuthResponse, error) {
	return &internalauth.AuthResponse{}, nil
}

func (stubAuthService) Refresh(ctx context.Context, req internalauth.RefreshRequest) (*internalauth.AuthResponse, error) {
	return &internalauth.AuthResponse{}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubOrdersService struct{}

func (stubOrdersService) Create(ctx context.Context, input orders.CreateInput) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubOrdersService) Update(ctx context.Context, orderID uuid.UUID, input orders.UpdateInput) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubOrdersService) SetStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubOrdersService) Delete(ctx context.Context, orderID uuid.UUID) error {
	return nil
}

func (stubOrdersService) Get(ctx context.Context, orderID uuid.UUID) (*orders.Detail, error) {
	return &orders.Detail{}, nil
}

func (stubOrdersService) List(ctx context.Context, params pagination.Params, filters orders.Filters) (*orders.List, error) {
	return &orders.List{}, nil
}

func (stubOrdersService) AddItem(ctx context.Context, orderID uuid.UUID, input orders.ItemInput) (*models.OrderItem, error) {
	return &models.OrderItem{}, nil
}

func (stubOrdersService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, input orders.ItemInput) (*models.OrderItem, error) {
	return &models.OrderItem{}, nil
}

func (stubOrdersService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) error {
	return nil
}

type stubWishesService struct{}

func (stubWishesService) Create(ctx context.Context, userID uuid.UUID, input wishes.CreateInput) (*models.Wish, error) {
	return &models.Wish{}, nil
}

func (stubWishesService) UpdateOwn(ctx context.Context, userID, wishID uuid.UUID, input wishes.UpdateInput) (*models.Wish, error) {
	return &models.Wish{}, nil
}

func (stubWishesService) Cancel(ctx context.Context, userID, wishID uuid.UUID) (*models.Wish, error) {
	return &models.Wish{}, nil
}

func (stubWishesService) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (*wishes.List, error) {
	return &wishes.List{}, nil
}

func (stubWishesService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Wish, error) {
	return nil, nil
}

func (stubWishesService) Review(ctx context.Context, wishID uuid.UUID, input wishes.ReviewInput) (*models.Wish, error) {
	return &models.Wish{}, nil
}

type stubUsersService struct{}

func (stubUsersService) List(ctx context.Context, params pagination.Params, filters users.Filters) (*users.MemberList, error) {
	return &users.MemberList{}, nil
}

func (stubUsersService) Get(ctx context.Context, userID uuid.UUID) (*users.MemberSummary, error) {
	return &users.MemberSummary{}, nil
}

func (stubUsersService) UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role enums.UserRole) (*models.User, error) {
	return &models.User{}, nil
}

type stubNotificationsService struct{}

func (stubNotificationsService) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	return &notifications.ListResult{}, nil
}

func (stubNotificationsService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return nil
}

func (stubNotificationsService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (stubNotificationsService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (stubNotificationsService) OrderStatusChanged(ctx context.Context, tx *gorm.DB, order *models.Order, previous enums.OrderStatus, recipients []uuid.UUID) error {
	return nil
}

func (stubNotificationsService) WishStatusChanged(ctx context.Context, tx *gorm.DB, wish *models.Wish, previous enums.WishStatus) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Dependencies{
		Config:               cfg,
		Logger:               logg,
		DB:                   stubPinger{},
		SessionManager:       stubSessionChecker{},
		AuthService:          stubAuthService{},
		OrdersService:        stubOrdersService{},
		WishesService:        stubWishesService{},
		UsersService:         stubUsersService{},
		NotificationsService: stubNotificationsService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "tester@example.com",
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAuthenticatedGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wishes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestMemberCanListOwnWishes(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wishes", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleMember))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	member := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
	member.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleMember))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, member)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for member got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRegisterIsPublic(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	body := `{"name":"Theo","email":"theo@example.com","password":"hunter2boardgames"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestNotificationsRequireAuth(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	anon := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/unread-count", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, anon)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/unread-count", nil)
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleMember))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}
