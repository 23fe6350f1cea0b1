package services

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"deployhub/internal/apperror"
	"deployhub/internal/config"
	"deployhub/internal/models"

	"github.com/google/uuid"
)

const defaultStageDelay = 1200 * time.Millisecond

// DeploymentStore is the slice of the deployment repository the orchestrator
// depends on.
type DeploymentStore interface {
	Create(deployment *models.Deployment) error
	GetByID(id uuid.UUID) (*models.Deployment, error)
	GetByApplicationID(applicationID uuid.UUID) ([]models.Deployment, error)
	AppendLog(id uuid.UUID, line string) error
	SetAnalysisResult(id uuid.UUID, result string) error
	Complete(deploymentID, applicationID uuid.UUID, deploymentURL string) error
	MarkFailed(deploymentID uuid.UUID, line string) error
}

// Analyzer produces the pre-build configuration analysis. The orchestrator
// treats any failure here as advisory and continues without it.
type Analyzer interface {
	Complete(systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)
}

// DeploymentService runs the simulated build pipeline. Deploy returns as soon
// as the deployment row exists; the stages run in a detached goroutine and
// progress is observable only through the persisted build logs and statuses.
type DeploymentService struct {
	deployments DeploymentStore
	apps        ApplicationStore
	analyzer    Analyzer
	platform    config.PlatformConfig
	stageDelay  time.Duration

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

func NewDeploymentService(deployments DeploymentStore, apps ApplicationStore, analyzer Analyzer, platform config.PlatformConfig) *DeploymentService {
	return &DeploymentService{
		deployments: deployments,
		apps:        apps,
		analyzer:    analyzer,
		platform:    platform,
		stageDelay:  defaultStageDelay,
		inFlight:    make(map[uuid.UUID]struct{}),
	}
}

// SetStageDelay overrides the pause between pipeline stages. Tests set it to
// zero so the pipeline finishes immediately.
func (s *DeploymentService) SetStageDelay(d time.Duration) {
	s.stageDelay = d
}

// Deploy starts a new deployment for the application. At most one deployment
// per application runs at a time; a second concurrent attempt is rejected
// with a conflict rather than queued.
func (s *DeploymentService) Deploy(userID, appID uuid.UUID) (*models.Deployment, error) {
	app, err := s.ownedApplication(userID, appID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, busy := s.inFlight[app.ID]; busy {
		s.mu.Unlock()
		return nil, apperror.Conflict("deployment", "a deployment is already in progress for this application")
	}
	s.inFlight[app.ID] = struct{}{}
	s.mu.Unlock()

	deployment := &models.Deployment{
		ApplicationID: app.ID,
		Status:        models.DeploymentStatusBuilding,
	}
	if err := s.deployments.Create(deployment); err != nil {
		s.release(app.ID)
		return nil, fmt.Errorf("failed to create deployment: %w", err)
	}

	if err := s.apps.UpdateStatus(app.ID, models.AppStatusBuilding); err != nil {
		s.release(app.ID)
		return nil, fmt.Errorf("failed to mark application building: %w", err)
	}

	go s.runPipeline(deployment.ID, app)

	return deployment, nil
}

// GetDeployment is the polling endpoint's backend. Ownership is resolved
// through the owning application, existence first.
func (s *DeploymentService) GetDeployment(userID, deploymentID uuid.UUID) (*models.Deployment, error) {
	deployment, err := s.deployments.GetByID(deploymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deployment: %w", err)
	}
	if deployment == nil {
		return nil, apperror.NotFound("deployment", deploymentID.String())
	}

	app, err := s.apps.GetByID(deployment.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}
	if app == nil {
		return nil, apperror.NotFound("application", deployment.ApplicationID.String())
	}
	if app.UserID != userID {
		return nil, apperror.Forbidden("deployment belongs to another user")
	}

	return deployment, nil
}

func (s *DeploymentService) ListDeployments(userID, appID uuid.UUID) ([]models.Deployment, error) {
	if _, err := s.ownedApplication(userID, appID); err != nil {
		return nil, err
	}
	return s.deployments.GetByApplicationID(appID)
}

// SaveArtifact stores an uploaded build artifact on the data disk and adds
// its size to the application's storage accounting.
func (s *DeploymentService) SaveArtifact(userID, appID uuid.UUID, fileName string, src io.Reader) (int64, error) {
	app, err := s.ownedApplication(userID, appID)
	if err != nil {
		return 0, err
	}

	dir := filepath.Join(s.platform.DataDir, "artifacts", app.ID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create artifact directory: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, filepath.Base(fileName)))
	if err != nil {
		return 0, fmt.Errorf("failed to create artifact file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		return 0, fmt.Errorf("failed to write artifact: %w", err)
	}

	if err := s.apps.AddStorageUsed(app.ID, size); err != nil {
		return 0, fmt.Errorf("failed to record artifact size: %w", err)
	}

	return size, nil
}

func (s *DeploymentService) ownedApplication(userID, appID uuid.UUID) (*models.Application, error) {
	app, err := s.apps.GetByID(appID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}
	if app == nil {
		return nil, apperror.NotFound("application", appID.String())
	}
	if app.UserID != userID {
		return nil, apperror.Forbidden("application belongs to another user")
	}
	return app, nil
}

func (s *DeploymentService) release(appID uuid.UUID) {
	s.mu.Lock()
	delete(s.inFlight, appID)
	s.mu.Unlock()
}

func (s *DeploymentService) runPipeline(deploymentID uuid.UUID, app *models.Application) {
	defer s.release(app.ID)

	step := func(line string) error {
		if err := s.deployments.AppendLog(deploymentID, line); err != nil {
			return err
		}
		if s.stageDelay > 0 {
			time.Sleep(s.stageDelay)
		}
		return nil
	}

	fail := func(err error) {
		log.Printf("deployment %s failed: %v", deploymentID, err)
		line := fmt.Sprintf("Deployment failed: %v", err)
		if markErr := s.deployments.MarkFailed(deploymentID, line); markErr != nil {
			log.Printf("deployment %s: failed to record failure: %v", deploymentID, markErr)
		}
		if appErr := s.apps.UpdateStatus(app.ID, models.AppStatusFailed); appErr != nil {
			log.Printf("deployment %s: failed to mark application failed: %v", deploymentID, appErr)
		}
	}

	if err := step("Initializing deployment..."); err != nil {
		fail(err)
		return
	}

	// Analysis is advisory; any failure falls back to the default configuration
	// and the pipeline keeps going.
	if err := s.analyze(deploymentID, app); err != nil {
		fail(err)
		return
	}

	stages := []string{
		"Optimizing dependencies...",
		"Building application...",
		"Running tests...",
		"Deploying to CDN...",
		"Configuring subdomain...",
	}
	for _, stage := range stages {
		if err := step(stage); err != nil {
			fail(err)
			return
		}
	}

	if err := s.deployments.AppendLog(deploymentID, "Deployment complete!"); err != nil {
		fail(err)
		return
	}

	url := fmt.Sprintf("https://%s.%s", app.Subdomain, s.platform.Domain)
	if err := s.deployments.Complete(deploymentID, app.ID, url); err != nil {
		fail(err)
		return
	}
}

// analyze runs the chat-completion analysis stage. The returned error is only
// non-nil for persistence problems; upstream failures degrade to the skip line.
func (s *DeploymentService) analyze(deploymentID uuid.UUID, app *models.Application) error {
	result, err := s.analyzer.Complete(
		analysisSystemPrompt,
		analysisUserPrompt(app),
		512,
		0.3,
	)
	if err != nil {
		log.Printf("deployment %s: analysis unavailable: %v", deploymentID, err)
		return s.appendAndPause(deploymentID, "GroqAI analysis skipped - using default configuration")
	}

	if err := s.deployments.SetAnalysisResult(deploymentID, result); err != nil {
		return err
	}
	return s.appendAndPause(deploymentID, "GroqAI analysis completed successfully")
}

func (s *DeploymentService) appendAndPause(deploymentID uuid.UUID, line string) error {
	if err := s.deployments.AppendLog(deploymentID, line); err != nil {
		return err
	}
	if s.stageDelay > 0 {
		time.Sleep(s.stageDelay)
	}
	return nil
}

const analysisSystemPrompt = "You are a deployment configuration analyst for a static and single-page application hosting platform. Given an application's source details, suggest build settings, likely framework, and potential deployment issues. Be concise."

func analysisUserPrompt(app *models.Application) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Application %q, source kind %s.", app.Name, app.SourceKind)
	if app.RepoURL != nil && *app.RepoURL != "" {
		fmt.Fprintf(&b, " Repository: %s.", *app.RepoURL)
	}
	if app.BuildCommand != nil && *app.BuildCommand != "" {
		fmt.Fprintf(&b, " Build command: %s.", *app.BuildCommand)
	}
	if app.OutputDir != nil && *app.OutputDir != "" {
		fmt.Fprintf(&b, " Output directory: %s.", *app.OutputDir)
	}
	return b.String()
}
