package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"healthmon/internal/domain"
	"healthmon/internal/fixtures"
	"healthmon/internal/port"
	"healthmon/internal/service"
	"healthmon/mocks"
)

func TestAlertService_List_ScopedAndFiltered(t *testing.T) {
	svc := service.NewAlertService(fixtureRepos(), new(mocks.MockAlertPublisher), zap.NewNop())
	ctx := context.Background()

	all, err := svc.List(ctx, fixtureUser(t, domain.RoleAdmin), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := svc.List(ctx, fixtureUser(t, domain.RoleAdmin), domain.AlertActive)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	district, err := svc.List(ctx, fixtureUser(t, domain.RoleDistrictOfficer), "")
	require.NoError(t, err)
	require.Len(t, district, 1)
	assert.Equal(t, "Jorhat", district[0].District)

	_, err = svc.List(ctx, fixtureUser(t, domain.RoleAdmin), "pending")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAlertService_Acknowledge(t *testing.T) {
	repos := fixtureRepos()
	publisher := new(mocks.MockAlertPublisher)
	svc := service.NewAlertService(repos, publisher, zap.NewNop())
	ctx := context.Background()
	id := fixtures.ID("alert", "1")

	publisher.On("Publish", mock.MatchedBy(func(a domain.Alert) bool {
		return a.ID == id && a.Status == domain.AlertAcknowledged
	})).Once()

	alert, err := svc.Acknowledge(ctx, fixtureUser(t, domain.RoleAdmin), id)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertAcknowledged, alert.Status)

	stored, err := repos.Alerts.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertAcknowledged, stored.Status)

	_, err = svc.Acknowledge(ctx, fixtureUser(t, domain.RoleAdmin), id)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	publisher.AssertExpectations(t)
}

func TestAlertService_Resolve_SkipsAcknowledge(t *testing.T) {
	publisher := new(mocks.MockAlertPublisher)
	publisher.On("Publish", mock.Anything).Once()
	svc := service.NewAlertService(fixtureRepos(), publisher, zap.NewNop())

	alert, err := svc.Resolve(context.Background(), fixtureUser(t, domain.RoleAdmin), fixtures.ID("alert", "2"))
	require.NoError(t, err)
	assert.Equal(t, domain.AlertResolved, alert.Status)
	publisher.AssertExpectations(t)
}

func TestAlertService_Permissions(t *testing.T) {
	svc := service.NewAlertService(fixtureRepos(), new(mocks.MockAlertPublisher), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Acknowledge(ctx, fixtureUser(t, domain.RoleFieldWorker), fixtures.ID("alert", "3"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// The Jorhat officer cannot act on a Majuli alert.
	_, err = svc.Acknowledge(ctx, fixtureUser(t, domain.RoleDistrictOfficer), fixtures.ID("alert", "1"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Resolve(ctx, fixtureUser(t, domain.RoleAdmin), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAlertService_UpdateFailure(t *testing.T) {
	alerts := new(mocks.MockAlertRepo)
	repos := fixtureRepos()
	repos.Alerts = alerts
	publisher := new(mocks.MockAlertPublisher)
	svc := service.NewAlertService(repos, publisher, zap.NewNop())

	a := fixtures.Alerts()[2]
	alerts.On("GetByID", mock.Anything, a.ID).Return(&a, nil)
	alerts.On("UpdateStatus", mock.Anything, a.ID, a.Status, domain.AlertResolved).Return(errors.New("deadlock"))

	_, err := svc.Resolve(context.Background(), fixtureUser(t, domain.RoleDistrictOfficer), a.ID)
	assert.ErrorContains(t, err, "deadlock")
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
	alerts.AssertExpectations(t)
}

// gatedAlertRepo parks the first GetByID after it has read the alert until
// release is closed.
type gatedAlertRepo struct {
	port.AlertRepository
	once    sync.Once
	read    chan struct{}
	release chan struct{}
}

func (g *gatedAlertRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	a, err := g.AlertRepository.GetByID(ctx, id)
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.read)
		<-g.release
	}
	return a, err
}

func TestAlertService_ConcurrentAdvanceNeverMovesBack(t *testing.T) {
	repos := fixtureRepos()
	gated := &gatedAlertRepo{
		AlertRepository: repos.Alerts,
		read:            make(chan struct{}),
		release:         make(chan struct{}),
	}
	repos.Alerts = gated
	publisher := new(mocks.MockAlertPublisher)
	publisher.On("Publish", mock.Anything)
	svc := service.NewAlertService(repos, publisher, zap.NewNop())
	ctx := context.Background()
	admin := fixtureUser(t, domain.RoleAdmin)
	id := fixtures.ID("alert", "1")

	ackErr := make(chan error, 1)
	go func() {
		_, err := svc.Acknowledge(ctx, admin, id)
		ackErr <- err
	}()
	<-gated.read

	resolved, err := svc.Resolve(ctx, admin, id)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertResolved, resolved.Status)

	close(gated.release)
	assert.ErrorIs(t, <-ackErr, domain.ErrInvalidTransition)

	stored, err := repos.Alerts.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertResolved, stored.Status)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}
