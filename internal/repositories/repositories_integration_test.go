package repositories

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"deployhub/internal/apperror"
	"deployhub/internal/database"
	"deployhub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPool spins up a throwaway Postgres container and runs the migrations
// against it. Skipped when Docker is not available.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("deployhub_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("skipping integration test, could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.RunMigrations(pool))
	return pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, PasswordHash: "argon2id$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA"}
	require.NoError(t, NewUserRepository(pool).Create(user))
	return user
}

func seedApplication(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, subdomain string) *models.Application {
	t.Helper()

	app := &models.Application{
		UserID:     userID,
		Name:       subdomain,
		Subdomain:  subdomain,
		SourceKind: models.SourceKindArchive,
	}
	require.NoError(t, NewApplicationRepository(pool).Create(app))
	return app
}

func TestUserRepository(t *testing.T) {
	pool := setupPool(t)
	repo := NewUserRepository(pool)

	user := seedUser(t, pool, "dev@example.com")

	found, err := repo.FindUserByEmail("dev@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "user", found.Role)
	assert.False(t, found.IsPremium)

	missing, err := repo.FindUserByID(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	// email is UNIQUE
	err = repo.Create(&models.User{Email: "dev@example.com", PasswordHash: "x"})
	assert.Error(t, err)

	require.NoError(t, repo.SetPremium(user.ID, true))
	found, err = repo.FindUserByID(user.ID)
	require.NoError(t, err)
	assert.True(t, found.IsPremium)

	count, err := repo.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestApplicationRepositorySubdomainUnique(t *testing.T) {
	pool := setupPool(t)
	repo := NewApplicationRepository(pool)

	user := seedUser(t, pool, "dev@example.com")
	seedApplication(t, pool, user.ID, "myapp")

	err := repo.Create(&models.Application{
		UserID:     user.ID,
		Name:       "clone",
		Subdomain:  "myapp",
		SourceKind: models.SourceKindArchive,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	exists, err := repo.SubdomainExists("myapp")
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := repo.GetBySubdomain("myapp")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, models.AppStatusPending, found.Status)
}

func TestApplicationRepositoryListNewestFirst(t *testing.T) {
	pool := setupPool(t)
	repo := NewApplicationRepository(pool)

	user := seedUser(t, pool, "dev@example.com")
	seedApplication(t, pool, user.ID, "first")
	time.Sleep(20 * time.Millisecond)
	seedApplication(t, pool, user.ID, "second")

	apps, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "second", apps[0].Subdomain)
	assert.Equal(t, "first", apps[1].Subdomain)
}

func TestDeploymentRepositoryLifecycle(t *testing.T) {
	pool := setupPool(t)
	repo := NewDeploymentRepository(pool)
	appRepo := NewApplicationRepository(pool)

	user := seedUser(t, pool, "dev@example.com")
	app := seedApplication(t, pool, user.ID, "myapp")

	deployment := &models.Deployment{ApplicationID: app.ID, Status: models.DeploymentStatusBuilding}
	require.NoError(t, repo.Create(deployment))

	require.NoError(t, repo.AppendLog(deployment.ID, "Initializing deployment..."))
	require.NoError(t, repo.AppendLog(deployment.ID, "Building application..."))
	require.NoError(t, repo.SetAnalysisResult(deployment.ID, "static site"))

	got, err := repo.GetByID(deployment.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Initializing deployment...\nBuilding application...\n", got.BuildLogs)
	require.NotNil(t, got.AnalysisResult)
	assert.Equal(t, "static site", *got.AnalysisResult)

	// Complete flips deployment and application together.
	require.NoError(t, repo.Complete(deployment.ID, app.ID, "https://myapp.deployhub.test"))

	got, err = repo.GetByID(deployment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeploymentStatusSuccess, got.Status)
	assert.NotNil(t, got.DeployedAt)

	gotApp, err := appRepo.GetByID(app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppStatusLive, gotApp.Status)
	require.NotNil(t, gotApp.DeploymentURL)
	assert.Equal(t, "https://myapp.deployhub.test", *gotApp.DeploymentURL)
	assert.NotNil(t, gotApp.LastDeployedAt)
}

func TestDeploymentRepositoryMarkFailed(t *testing.T) {
	pool := setupPool(t)
	repo := NewDeploymentRepository(pool)

	user := seedUser(t, pool, "dev@example.com")
	app := seedApplication(t, pool, user.ID, "myapp")

	deployment := &models.Deployment{ApplicationID: app.ID, Status: models.DeploymentStatusBuilding}
	require.NoError(t, repo.Create(deployment))
	require.NoError(t, repo.AppendLog(deployment.ID, "Initializing deployment..."))

	require.NoError(t, repo.MarkFailed(deployment.ID, "Deployment failed: disk full"))

	got, err := repo.GetByID(deployment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeploymentStatusFailed, got.Status)
	assert.True(t, strings.HasSuffix(got.BuildLogs, "Deployment failed: disk full\n"))
}

func TestAnalyticsRepositoryAggregates(t *testing.T) {
	pool := setupPool(t)
	repo := NewAnalyticsRepository(pool)

	user := seedUser(t, pool, "dev@example.com")
	app := seedApplication(t, pool, user.ID, "myapp")

	for _, country := range []string{"DE", "DE", "FR"} {
		require.NoError(t, repo.Create(&models.AnalyticsEvent{
			ApplicationID: app.ID,
			VisitorIP:     "203.0.113.9",
			UserAgent:     "Mozilla/5.0",
			Country:       country,
			Path:          "/",
		}))
	}

	since := time.Now().AddDate(0, 0, -30)

	events, err := repo.GetByApplicationIDSince(app.ID, since)
	require.NoError(t, err)
	assert.Len(t, events, 3)

	byDay, err := repo.CountByDay(app.ID, since)
	require.NoError(t, err)
	require.Len(t, byDay, 1)
	assert.Equal(t, int64(3), byDay[0].Count)

	byCountry, err := repo.CountByCountry(app.ID, since)
	require.NoError(t, err)
	require.Len(t, byCountry, 2)
	assert.Equal(t, "DE", byCountry[0].Country)
	assert.Equal(t, int64(2), byCountry[0].Count)
}

func TestFileRepositoryTokenLookup(t *testing.T) {
	pool := setupPool(t)
	repo := NewFileRepository(pool)

	user := seedUser(t, pool, "dev@example.com")

	file := &models.SharedFile{
		UserID:      user.ID,
		FileName:    "report.pdf",
		SizeBytes:   1234,
		Token:       "share-token",
		StoragePath: "/tmp/report.pdf",
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, repo.Create(file))

	found, err := repo.GetByToken("share-token")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, file.ID, found.ID)

	require.NoError(t, repo.IncrementDownloadCount(file.ID))
	found, err = repo.GetByID(file.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.DownloadCount)

	missing, err := repo.GetByToken("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTicketRepositoryStatusRoundTrip(t *testing.T) {
	pool := setupPool(t)
	repo := NewTicketRepository(pool)

	user := seedUser(t, pool, "dev@example.com")

	ticket := &models.SupportTicket{UserID: user.ID, Subject: "billing", Message: "charged twice"}
	require.NoError(t, repo.Create(ticket))

	require.NoError(t, repo.UpdateStatus(ticket.ID, models.TicketStatusClosed))
	got, err := repo.GetByID(ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusClosed, got.Status)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
