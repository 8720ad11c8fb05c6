package users

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tlemoine/gamehaul-backend/pkg/config"
	"github.com/tlemoine/gamehaul-backend/pkg/db/models"
	"github.com/tlemoine/gamehaul-backend/pkg/enums"
	"github.com/tlemoine/gamehaul-backend/pkg/logger"
)

func newTestPromoter(repo Repository, emails ...string) *Promoter {
	cfg := config.AdminConfig{Emails: emails}
	logg := logger.New(logger.Options{ServiceName: "promoter-test", Output: io.Discard})
	return NewPromoter(cfg, repo, logg)
}

func TestPromoterElevatesAllowListedMember(t *testing.T) {
	repo := newStubUsersRepo()
	user := seedUser(repo, "boss@example.com", enums.UserRoleMember)

	promoter := newTestPromoter(repo, "boss@example.com")

	promoted, err := promoter.EnsurePromoted(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, enums.UserRoleAdmin, promoted.Role)
	require.Equal(t, enums.UserRoleAdmin, repo.users[user.ID].Role)
}

func TestPromoterIsCaseInsensitive(t *testing.T) {
	repo := newStubUsersRepo()
	user := seedUser(repo, "Boss@Example.COM", enums.UserRoleMember)

	promoter := newTestPromoter(repo, "  BOSS@example.com ")

	promoted, err := promoter.EnsurePromoted(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, enums.UserRoleAdmin, promoted.Role)
}

func TestPromoterLeavesUnlistedMemberAlone(t *testing.T) {
	repo := newStubUsersRepo()
	user := seedUser(repo, "member@example.com", enums.UserRoleMember)

	promoter := newTestPromoter(repo, "boss@example.com")

	promoted, err := promoter.EnsurePromoted(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, enums.UserRoleMember, promoted.Role)
}

func TestPromoterSkipsExistingAdmin(t *testing.T) {
	repo := newStubUsersRepo()
	user := &models.User{ID: uuid.New(), Email: "boss@example.com", Role: enums.UserRoleAdmin}

	promoter := newTestPromoter(repo, "boss@example.com")

	promoted, err := promoter.EnsurePromoted(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, enums.UserRoleAdmin, promoted.Role)
}
