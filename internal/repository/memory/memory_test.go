package memory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"healthmon/internal/domain"
	"healthmon/internal/fixtures"
	"healthmon/internal/repository/memory"
)

func TestNewSeeded_LoadsFixtures(t *testing.T) {
	ctx := context.Background()
	repos, err := memory.NewSeeded()
	require.NoError(t, err)

	users, err := repos.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	u, err := repos.Users.GetByEmail(ctx, "ASHA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", u.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(fixtures.DemoPassword)))

	villages, err := repos.Villages.List(ctx)
	require.NoError(t, err)
	require.Len(t, villages, 5)
	assert.Equal(t, "Majuli Island", villages[0].Name)
	assert.Equal(t, "Golaghat Market", villages[4].Name)
}

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepo()

	u := &domain.User{Email: "a@x.org", Role: domain.RoleDistrictOfficer}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.ErrorIs(t, repo.Create(ctx, &domain.User{Email: "A@x.org"}), domain.ErrDuplicateEmail)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = repo.GetByEmail(ctx, "none@x.org")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	officers, err := repo.ListByRole(ctx, domain.RoleDistrictOfficer)
	require.NoError(t, err)
	assert.Len(t, officers, 1)
	admins, err := repo.ListByRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Empty(t, admins)
}

func TestVillageRepo_UpsertAndDistrict(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewVillageRepo(fixtures.Villages()...)

	v, err := repo.GetByID(ctx, fixtures.ID("village", "2"))
	require.NoError(t, err)
	v.RecentCases = 9
	require.NoError(t, repo.Upsert(ctx, v))

	jorhat, err := repo.ListByDistrict(ctx, "Jorhat")
	require.NoError(t, err)
	require.Len(t, jorhat, 1)
	assert.Equal(t, 9, jorhat[0].RecentCases)

	require.NoError(t, repo.Upsert(ctx, &domain.Village{Name: "New", District: "Jorhat"}))
	all, _ := repo.List(ctx)
	assert.Len(t, all, 6)
	assert.Equal(t, "New", all[5].Name)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportRepos_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	worker := uuid.New()
	health := memory.NewHealthReportRepo()
	water := memory.NewWaterReportRepo()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, health.Create(ctx, &domain.HealthReport{PatientName: name, ReporterID: worker}))
	}
	require.NoError(t, health.Create(ctx, &domain.HealthReport{PatientName: "other"}))
	mine, err := health.ListByReporter(ctx, worker)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, "c", mine[2].PatientName)

	require.NoError(t, water.Create(ctx, &domain.WaterQualityReport{Location: "well", ReporterID: worker}))
	list, err := water.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.NotEqual(t, uuid.Nil, list[0].ID)
}

func TestAlertRepo_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAlertRepo(fixtures.Alerts()...)

	id := fixtures.ID("alert", "1")
	require.NoError(t, repo.UpdateStatus(ctx, id, domain.AlertActive, domain.AlertAcknowledged))
	a, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertAcknowledged, a.Status)

	// Stale from: the stored status has already moved on.
	assert.ErrorIs(t, repo.UpdateStatus(ctx, id, domain.AlertActive, domain.AlertResolved), domain.ErrInvalidTransition)
	a, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertAcknowledged, a.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), domain.AlertActive, domain.AlertResolved), domain.ErrNotFound)
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	s := memory.NewSessionStore()

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	assert.Equal(t, 0, s.Len())
}
