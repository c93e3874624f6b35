package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"healthmon/internal/config"
	"healthmon/internal/domain"
	"healthmon/internal/fixtures"
	"healthmon/internal/intake"
	"healthmon/internal/port"
	"healthmon/internal/repository/memory"
	"healthmon/internal/service"
	"healthmon/mocks"
)

func fixtureRepos() service.Repositories {
	return service.Repositories{
		Users:         memory.NewUserRepo(fixtures.Users("x")...),
		Villages:      memory.NewVillageRepo(fixtures.Villages()...),
		HealthReports: memory.NewHealthReportRepo(fixtures.HealthReports()...),
		WaterReports:  memory.NewWaterReportRepo(fixtures.WaterReports()...),
		Alerts:        memory.NewAlertRepo(fixtures.Alerts()...),
	}
}

func fixtureUser(t *testing.T, role domain.UserRole) *domain.User {
	t.Helper()
	for _, u := range fixtures.Users("x") {
		if u.Role == role {
			u := u
			return &u
		}
	}
	t.Fatalf("no fixture user with role %s", role)
	return nil
}

type intakeDeps struct {
	repos     service.Repositories
	publisher *mocks.MockAlertPublisher
	email     *mocks.MockEmailSender
	svc       service.IntakeService
}

func newIntake() intakeDeps {
	d := intakeDeps{
		repos:     fixtureRepos(),
		publisher: new(mocks.MockAlertPublisher),
		email:     new(mocks.MockEmailSender),
	}
	d.svc = service.NewIntakeService(d.repos, d.publisher, d.email,
		config.IntakeConfig{SubmitTimeout: time.Second}, zap.NewNop())
	return d
}

func symptomFields() intake.SymptomFields {
	return intake.SymptomFields{
		PatientName: "Bina Das",
		Age:         "42",
		Gender:      "female",
		Address:     "Ward 3",
		Symptoms:    []string{"headache"},
		Severity:    "mild",
		OnsetDate:   "2024-01-14",
		WaterSource: "tube_well",
	}
}

func TestIntakeService_SubmitHealthReport_Normal(t *testing.T) {
	d := newIntake()
	worker := fixtureUser(t, domain.RoleFieldWorker)

	sub, err := d.svc.SubmitHealthReport(context.Background(), worker, symptomFields())
	require.NoError(t, err)

	assert.False(t, sub.Result.Flagged)
	assert.Equal(t, intake.SeverityNormal, sub.Result.Notification.Severity)
	assert.Nil(t, sub.Alert)
	assert.Equal(t, "Jorhat", sub.Report.Village)
	assert.Equal(t, worker.ID, sub.Report.ReporterID)

	mine, err := d.repos.HealthReports.ListByReporter(context.Background(), worker.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	d.publisher.AssertNotCalled(t, "Publish", mock.Anything)
	d.email.AssertNotCalled(t, "SendAlertEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIntakeService_SubmitHealthReport_PriorityRaisesAlert(t *testing.T) {
	d := newIntake()
	worker := fixtureUser(t, domain.RoleFieldWorker)
	fields := symptomFields()
	fields.Symptoms = []string{"fever", "diarrhea"}
	fields.Severity = "severe"

	d.publisher.On("Publish", mock.MatchedBy(func(a domain.Alert) bool {
		return a.Type == domain.AlertOutbreakRisk && a.Status == domain.AlertActive
	})).Once()
	d.email.On("SendAlertEmail", mock.Anything, "officer@example.com", "Dr. Rajesh Kumar", mock.AnythingOfType("*domain.Alert")).
		Return(nil).Once()

	sub, err := d.svc.SubmitHealthReport(context.Background(), worker, fields)
	require.NoError(t, err)

	assert.True(t, sub.Result.Flagged)
	assert.True(t, sub.Report.Priority)
	assert.Equal(t, intake.SeverityHighPriority, sub.Result.Notification.Severity)
	require.NotNil(t, sub.Alert)
	assert.Equal(t, domain.AlertSeverityCritical, sub.Alert.Severity)
	assert.Equal(t, "Jorhat", sub.Alert.District)
	assert.Contains(t, sub.Alert.Description, "Fever, Diarrhea")

	alerts, err := d.repos.Alerts.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, alerts, 4)

	d.publisher.AssertExpectations(t)
	d.email.AssertExpectations(t)
}

func TestIntakeService_SubmitHealthReport_EmailFailureIsNotFatal(t *testing.T) {
	d := newIntake()
	admin := fixtureUser(t, domain.RoleAdmin)
	fields := symptomFields()
	fields.Symptoms = []string{"jaundice"}
	fields.Address = "Jorhat Town"

	d.publisher.On("Publish", mock.Anything)
	d.email.On("SendAlertEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("ses down"))

	sub, err := d.svc.SubmitHealthReport(context.Background(), admin, fields)
	require.NoError(t, err)
	require.NotNil(t, sub.Alert)
	assert.Equal(t, domain.AlertSeverityHigh, sub.Alert.Severity)
	assert.Equal(t, "Jorhat Town", sub.Alert.Village)
	assert.Equal(t, "Jorhat", sub.Alert.District)
}

func TestIntakeService_SubmitHealthReport_Validation(t *testing.T) {
	d := newIntake()
	fields := symptomFields()
	fields.PatientName = ""
	fields.Symptoms = nil

	_, err := d.svc.SubmitHealthReport(context.Background(), fixtureUser(t, domain.RoleFieldWorker), fields)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "patient_name")
	assert.Contains(t, verr.Fields, "symptoms")

	all, _ := d.repos.HealthReports.List(context.Background())
	assert.Len(t, all, 2)
}

func TestIntakeService_OfficerCannotSubmit(t *testing.T) {
	d := newIntake()
	_, err := d.svc.SubmitHealthReport(context.Background(), fixtureUser(t, domain.RoleDistrictOfficer), symptomFields())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = d.svc.SubmitWaterReport(context.Background(), &domain.User{Role: "nurse"}, intake.WaterFields{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestIntakeService_SubmitHealthReport_StoreError(t *testing.T) {
	d := newIntake()
	repo := new(mocks.MockHealthReportRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	d.repos.HealthReports = repo
	svc := service.NewIntakeService(d.repos, d.publisher, d.email, config.IntakeConfig{}, zap.NewNop())

	_, err := svc.SubmitHealthReport(context.Background(), fixtureUser(t, domain.RoleFieldWorker), symptomFields())
	assert.ErrorContains(t, err, "disk full")
}

func TestIntakeService_SubmitWaterReport_Contaminated(t *testing.T) {
	d := newIntake()
	worker := fixtureUser(t, domain.RoleFieldWorker)

	d.publisher.On("Publish", mock.Anything).Once()
	d.email.On("SendAlertEmail", mock.Anything, "officer@example.com", mock.Anything, mock.Anything).Return(nil).Once()

	sub, err := d.svc.SubmitWaterReport(context.Background(), worker, intake.WaterFields{
		Location:   "Jorhat Town Pond",
		SourceType: "pond",
		PH:         "5.1",
		EColi:      "detected",
		TestDate:   "2024-01-16",
		TestTime:   "09:30",
	})
	require.NoError(t, err)

	assert.True(t, sub.Result.Flagged)
	assert.True(t, sub.Report.PoorQuality)
	require.NotNil(t, sub.Alert)
	assert.Equal(t, domain.AlertWaterContamination, sub.Alert.Type)
	assert.Equal(t, domain.AlertSeverityCritical, sub.Alert.Severity)
	assert.Equal(t, "Jorhat Town", sub.Alert.Village)
	assert.Contains(t, sub.Alert.Description, "ph, ecoli")
	assert.Equal(t, time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC), sub.Report.TestedAt)

	d.publisher.AssertExpectations(t)
	d.email.AssertExpectations(t)
}

func TestIntakeService_SubmitWaterReport_DefaultsDateAndTime(t *testing.T) {
	d := newIntake()
	sub, err := d.svc.SubmitWaterReport(context.Background(), fixtureUser(t, domain.RoleFieldWorker), intake.WaterFields{
		Location:   "Jorhat Village Well #2",
		SourceType: "village_well",
		PH:         "7.0",
	})
	require.NoError(t, err)
	assert.False(t, sub.Result.Flagged)
	assert.False(t, sub.Report.TestedAt.IsZero())
	assert.Equal(t, domain.EColiNotTested, sub.Report.EColi)
}

func TestIntakeService_ListReports_Scoped(t *testing.T) {
	d := newIntake()
	ctx := context.Background()

	mine, err := d.svc.ListHealthReports(ctx, fixtureUser(t, domain.RoleFieldWorker))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Anjali Borah", mine[0].PatientName)

	district, err := d.svc.ListWaterReports(ctx, fixtureUser(t, domain.RoleDistrictOfficer))
	require.NoError(t, err)
	require.Len(t, district, 1)
	assert.Equal(t, "Jorhat Village Well #1", district[0].Location)

	all, err := d.svc.ListHealthReports(ctx, fixtureUser(t, domain.RoleAdmin))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// slowHealthRepo stores reports only after delay, ignoring cancellation.
type slowHealthRepo struct {
	port.HealthReportRepository
	delay time.Duration
}

func (r slowHealthRepo) Create(ctx context.Context, report *domain.HealthReport) error {
	time.Sleep(r.delay)
	return r.HealthReportRepository.Create(context.Background(), report)
}

func TestIntakeService_SubmitHealthReport_SlowStoreStillRaisesAlert(t *testing.T) {
	repos := fixtureRepos()
	repos.HealthReports = slowHealthRepo{HealthReportRepository: repos.HealthReports, delay: 50 * time.Millisecond}
	publisher := new(mocks.MockAlertPublisher)
	publisher.On("Publish", mock.Anything).Once()
	email := new(mocks.MockEmailSender)
	email.On("SendAlertEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	svc := service.NewIntakeService(repos, publisher, email,
		config.IntakeConfig{SubmitTimeout: 10 * time.Millisecond}, zap.NewNop())
	ctx := context.Background()

	fields := symptomFields()
	fields.Symptoms = []string{"fever"}
	fields.Severity = "severe"

	sub, err := svc.SubmitHealthReport(ctx, fixtureUser(t, domain.RoleFieldWorker), fields)
	require.NoError(t, err)
	assert.True(t, sub.Result.Flagged)
	require.NotNil(t, sub.Alert)

	reports, err := repos.HealthReports.List(ctx)
	require.NoError(t, err)
	assert.Len(t, reports, 3)
	alerts, err := repos.Alerts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, alerts, 4)
	publisher.AssertExpectations(t)
}
