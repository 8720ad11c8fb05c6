package users

import (
	"context"
	"strings"

	"github.com/tlemoine/gamehaul-backend/pkg/config"
	"github.com/tlemoine/gamehaul-backend/pkg/db/models"
	"github.com/tlemoine/gamehaul-backend/pkg/enums"
	pkgerrors "github.com/tlemoine/gamehaul-backend/pkg/errors"
	"github.com/tlemoine/gamehaul-backend/pkg/logger"
)

// Promoter elevates allow-listed accounts to admin after sign-up or sign-in.
// The comparison is case-insensitive and an already-admin user is left alone.
type Promoter struct {
	allowed map[string]struct{}
	repo    Repository
	logg    *logger.Logger
}

// NewPromoter builds a promoter from the configured admin email allow-list.
func NewPromoter(cfg config.AdminConfig, repo Repository, logg *logger.Logger) *Promoter {
	allowed := make(map[string]struct{})
	for _, email := range cfg.NormalizedAdminEmails() {
		allowed[email] = struct{}{}
	}
	return &Promoter{
		allowed: allowed,
		repo:    repo,
		logg:    logg,
	}
}

// Allowed reports whether the email is on the allow-list.
func (p *Promoter) Allowed(email string) bool {
	_, ok := p.allowed[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// EnsurePromoted promotes the user when their email is allow-listed. The
// returned user reflects the persisted role.
func (p *Promoter) EnsurePromoted(ctx context.Context, user *models.User) (*models.User, error) {
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user required")
	}
	if user.Role == enums.UserRoleAdmin {
		return user, nil
	}
	if !p.Allowed(user.Email) {
		return user, nil
	}

	if err := p.repo.Update(ctx, user.ID, map[string]any{"role": enums.UserRoleAdmin}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "promote user")
	}
	user.Role = enums.UserRoleAdmin

	if p.logg != nil {
		lctx := p.logg.WithUserID(ctx, user.ID.String())
		p.logg.Info(lctx, "promoted allow-listed user to admin")
	}
	return user, nil
}
