package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tlemoine/gamehaul-backend/internal/users"
	"github.com/tlemoine/gamehaul-backend/pkg/db/models"
	"github.com/tlemoine/gamehaul-backend/pkg/enums"
	"github.com/tlemoine/gamehaul-backend/pkg/pagination"
)

type testUsersService struct {
	listFn       func(ctx context.Context, params pagination.Params, filters users.Filters) (*users.MemberList, error)
	getFn        func(ctx context.Context, userID uuid.UUID) (*users.MemberSummary, error)
	updateRoleFn func(ctx context.Context, actorID, targetID uuid.UUID, role enums.UserRole) (*models.User, error)
}

func (s *testUsersService) List(ctx context.Context, params pagination.Params, filters users.Filters) (*users.MemberList, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params, filters)
	}
	return &users.MemberList{}, nil
}

func (s *testUsersService) Get(ctx context.Context, userID uuid.UUID) (*users.MemberSummary, error) {
	if s.getFn != nil {
		return s.getFn(ctx, userID)
	}
	return &users.MemberSummary{}, nil
}

func (s *testUsersService) UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role enums.UserRole) (*models.User, error) {
	if s.updateRoleFn != nil {
		return s.updateRoleFn(ctx, actorID, targetID, role)
	}
	return &models.User{}, nil
}

func TestListMembersPassesRoleFilter(t *testing.T) {
	svc := &testUsersService{
		listFn: func(ctx context.Context, params pagination.Params, filters users.Filters) (*users.MemberList, error) {
			if filters.Role == nil || *filters.Role != enums.UserRoleMember {
				t.Fatalf("unexpected role filter %v", filters.Role)
			}
			return &users.MemberList{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/members?role=member", nil)
	resp := httptest.NewRecorder()
	ListMembers(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestListMembersRejectsUnknownRole(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/members?role=owner", nil)
	resp := httptest.NewRecorder()
	ListMembers(&testUsersService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUpdateMemberRoleSuccess(t *testing.T) {
	actorID := uuid.New()
	targetID := uuid.New()
	svc := &testUsersService{
		updateRoleFn: func(ctx context.Context, aid, tid uuid.UUID, role enums.UserRole) (*models.User, error) {
			if aid != actorID || tid != targetID {
				t.Fatalf("unexpected ids %s %s", aid, tid)
			}
			if role != enums.UserRoleAdmin {
				t.Fatalf("unexpected role %s", role)
			}
			return &models.User{ID: tid, Role: role}, nil
		},
	}

	body := `{"role":"admin"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/members/"+targetID.String()+"/role", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = asUser(req, actorID.String())
	req = addRouteParam(req, "userId", targetID.String())
	resp := httptest.NewRecorder()
	UpdateMemberRole(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUpdateMemberRoleRejectsUnknownRole(t *testing.T) {
	targetID := uuid.New()
	body := `{"role":"owner"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/members/"+targetID.String()+"/role", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = asUser(req, uuid.NewString())
	req = addRouteParam(req, "userId", targetID.String())
	resp := httptest.NewRecorder()
	UpdateMemberRole(&testUsersService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
