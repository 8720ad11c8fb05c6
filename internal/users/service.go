package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tlemoine/gamehaul-backend/pkg/db/models"
	"github.com/tlemoine/gamehaul-backend/pkg/enums"
	pkgerrors "github.com/tlemoine/gamehaul-backend/pkg/errors"
	"github.com/tlemoine/gamehaul-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the admin-facing member management operations.
type Service interface {
	List(ctx context.Context, params pagination.Params, filters Filters) (*MemberList, error)
	Get(ctx context.Context, userID uuid.UUID) (*MemberSummary, error)
	UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role enums.UserRole) (*models.User, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a users service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*MemberList, error) {
	rows, next, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list members")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, user := range rows {
		ids = append(ids, user.ID)
	}
	counts, err := s.repo.WishCountsByUser(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count member wishes")
	}

	members := make([]MemberSummary, 0, len(rows))
	for _, user := range rows {
		members = append(members, summarize(&user, counts[user.ID]))
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &MemberList{Members: members, NextCursor: cursor}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*MemberSummary, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member")
	}

	counts, err := s.repo.WishCountsByUser(ctx, []uuid.UUID{user.ID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count member wishes")
	}
	summary := summarize(user, counts[user.ID])
	return &summary, nil
}

func (s *service) UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role enums.UserRole) (*models.User, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if targetID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	if actorID == targetID {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "cannot change own role")
	}

	var updated *models.User
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		user, err := repo.FindByID(ctx, targetID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member")
		}
		if user.Role == role {
			updated = user
			return nil
		}

		if user.Role == enums.UserRoleAdmin && role == enums.UserRoleMember {
			admins, err := repo.CountByRole(ctx, enums.UserRoleAdmin)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count admins")
			}
			if admins <= 1 {
				return pkgerrors.New(pkgerrors.CodeConflict, "cannot demote the last admin")
			}
		}

		if err := repo.Update(ctx, user.ID, map[string]any{"role": role}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update role")
		}
		user.Role = role
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func summarize(user *models.User, wishCount int64) MemberSummary {
	return MemberSummary{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
		LastLoginAt:   user.LastLoginAt,
		WishCount:     wishCount,
		CreatedAt:     user.CreatedAt,
	}
}
