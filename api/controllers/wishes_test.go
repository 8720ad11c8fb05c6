package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tlemoine/gamehaul-backend/internal/wishes"
	"github.com/tlemoine/gamehaul-backend/pkg/db/models"
	"github.com/tlemoine/gamehaul-backend/pkg/enums"
	"github.com/tlemoine/gamehaul-backend/pkg/pagination"
)

type testWishesService struct {
	createFn      func(ctx context.Context, userID uuid.UUID, input wishes.CreateInput) (*models.Wish, error)
	updateOwnFn   func(ctx context.Context, userID, wishID uuid.UUID, input wishes.UpdateInput) (*models.Wish, error)
	cancelFn      func(ctx context.Context, userID, wishID uuid.UUID) (*models.Wish, error)
	listMineFn    func(ctx context.Context, userID uuid.UUID, params pagination.Params) (*wishes.List, error)
	listByOrderFn func(ctx context.Context, orderID uuid.UUID) ([]models.Wish, error)
	reviewFn      func(ctx context.Context, wishID uuid.UUID, input wishes.ReviewInput) (*models.Wish, error)
}

func (s *testWishesService) Create(ctx context.Context, userID uuid.UUID, input wishes.CreateInput) (*models.Wish, error) {
	if s.createFn != nil {
		return s.createFn(ctx, userID, input)
	}
	return &models.Wish{}, nil
}

func (s *testWishesService) UpdateOwn(ctx context.Context, userID, wishID uuid.UUID, input wishes.UpdateInput) (*models.Wish, error) {
	if s.updateOwnFn != nil {
		return s.updateOwnFn(ctx, userID, wishID, input)
	}
	return &models.Wish{}, nil
}

func (s *testWishesService) Cancel(ctx context.Context, userID, wishID uuid.UUID) (*models.Wish, error) {
	if s.cancelFn != nil {
		return s.cancelFn(ctx, userID, wishID)
	}
	return &models.Wish{}, nil
}

func (s *testWishesService) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (*wishes.List, error) {
	if s.listMineFn != nil {
		return s.listMineFn(ctx, userID, params)
	}
	return &wishes.List{}, nil
}

func (s *testWishesService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Wish, error) {
	if s.listByOrderFn != nil {
		return s.listByOrderFn(ctx, orderID)
	}
	return nil, nil
}

func (s *testWishesService) Review(ctx context.Context, wishID uuid.UUID, input wishes.ReviewInput) (*models.Wish, error) {
	if s.reviewFn != nil {
		return s.reviewFn(ctx, wishID, input)
	}
	return &models.Wish{}, nil
}

func TestCreateWishRequiresUserContext(t *testing.T) {
	body := `{"order_id":"` + uuid.NewString() + `","product_name":"Catan","quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	CreateWish(&testWishesService{}, testLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCreateWishSuccess(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	var captured wishes.CreateInput
	svc := &testWishesService{
		createFn: func(ctx context.Context, uid uuid.UUID, input wishes.CreateInput) (*models.Wish, error) {
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			captured = input
			return &models.Wish{ID: uuid.New(), UserID: uid, OrderID: input.OrderID}, nil
		},
	}

	body := `{"order_id":"` + orderID.String() + `","product_name":"Catan","quantity":2,"estimated_price":"42.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = asUser(req, userID.String())
	resp := httptest.NewRecorder()
	CreateWish(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if captured.OrderID != orderID {
		t.Fatalf("unexpected order %s", captured.OrderID)
	}
	if captured.EstimatedPrice == nil {
		t.Fatal("expected estimated price")
	}
}

func TestUpdateMyWishPassesIdentifiers(t *testing.T) {
	userID := uuid.New()
	wishID := uuid.New()
	svc := &testWishesService{
		updateOwnFn: func(ctx context.Context, uid, wid uuid.UUID, input wishes.UpdateInput) (*models.Wish, error) {
			if uid != userID || wid != wishID {
				t.Fatalf("unexpected ids %s %s", uid, wid)
			}
			if input.Quantity == nil || *input.Quantity != 3 {
				t.Fatalf("unexpected quantity %v", input.Quantity)
			}
			return &models.Wish{ID: wid}, nil
		},
	}

	body := `{"quantity":3}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/wishes/"+wishID.String(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = asUser(req, userID.String())
	req = addRouteParam(req, "wishId", wishID.String())
	resp := httptest.NewRecorder()
	UpdateMyWish(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestReviewWishRejectsUnknownStatus(t *testing.T) {
	wishID := uuid.New()
	body := `{"status":"approved"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/wishes/"+wishID.String()+"/review", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = addRouteParam(req, "wishId", wishID.String())
	resp := httptest.NewRecorder()
	ReviewWish(&testWishesService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestReviewWishSuccess(t *testing.T) {
	wishID := uuid.New()
	svc := &testWishesService{
		reviewFn: func(ctx context.Context, wid uuid.UUID, input wishes.ReviewInput) (*models.Wish, error) {
			if wid != wishID {
				t.Fatalf("unexpected wish %s", wid)
			}
			if input.Status != enums.WishStatusValidated {
				t.Fatalf("unexpected status %s", input.Status)
			}
			return &models.Wish{ID: wid, Status: input.Status}, nil
		},
	}

	body := `{"status":"validated","validated_price":"39.90"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/wishes/"+wishID.String()+"/review", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = addRouteParam(req, "wishId", wishID.String())
	resp := httptest.NewRecorder()
	ReviewWish(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}
