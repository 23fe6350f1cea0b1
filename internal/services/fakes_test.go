package services

import (
	"errors"
	"sync"
	"time"

	"deployhub/internal/models"

	"github.com/google/uuid"
)

// In-memory fakes for the store interfaces. They hold everything behind one
// mutex because the deployment pipeline exercises them from a goroutine.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserStore) Create(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.Prepare()
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) FindUserByID(id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) FindUserByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindAll() ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) UpdateLastLogin(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

func (f *fakeUserStore) SetPremium(id uuid.UUID, premium bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errors.New("no rows updated")
	}
	u.IsPremium = premium
	return nil
}

func (f *fakeUserStore) CountUsers() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessionStore) Create(session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	session.Prepare()
	copied := *session
	f.sessions[session.RefreshToken] = &copied
	return nil
}

func (f *fakeSessionStore) FindByToken(token string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionStore) Revoke(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[token]; ok {
		s.IsRevoked = true
	}
	return nil
}

type fakeAppStore struct {
	mu   sync.Mutex
	apps map[uuid.UUID]*models.Application
	// ordered IDs so GetByUserID can return newest-first
	order []uuid.UUID
}

func newFakeAppStore() *fakeAppStore {
	return &fakeAppStore{apps: make(map[uuid.UUID]*models.Application)}
}

func (f *fakeAppStore) Create(app *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.apps {
		if existing.Subdomain == app.Subdomain {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	app.Prepare()
	app.CreatedAt = time.Now()
	copied := *app
	f.apps[app.ID] = &copied
	f.order = append(f.order, app.ID)
	return nil
}

func (f *fakeAppStore) GetByID(id uuid.UUID) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppStore) GetBySubdomain(subdomain string) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.apps {
		if a.Subdomain == subdomain {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAppStore) GetByUserID(userID uuid.UUID) ([]models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Application
	for i := len(f.order) - 1; i >= 0; i-- {
		if a, ok := f.apps[f.order[i]]; ok && a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppStore) SubdomainExists(subdomain string) (bool, error) {
	app, _ := f.GetBySubdomain(subdomain)
	return app != nil, nil
}

func (f *fakeAppStore) CountByUserID(userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.apps {
		if a.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeAppStore) CountAll() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.apps)), nil
}

func (f *fakeAppStore) UpdateStatus(id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.apps[id]; ok {
		a.Status = status
	}
	return nil
}

func (f *fakeAppStore) AddStorageUsed(id uuid.UUID, bytes int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.apps[id]; ok {
		a.StorageUsedBytes += bytes
	}
	return nil
}

func (f *fakeAppStore) Delete(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.apps, id)
	return nil
}

func (f *fakeAppStore) statusOf(id uuid.UUID) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.apps[id]; ok {
		return a.Status
	}
	return ""
}

type fakeDeploymentStore struct {
	mu          sync.Mutex
	deployments map[uuid.UUID]*models.Deployment
	logLines    map[uuid.UUID][]string
	completeErr error
	completed   map[uuid.UUID]string // deployment ID -> URL
	// when set, Complete mirrors the repository transaction and flips the
	// application to live as well
	apps *fakeAppStore
}

func newFakeDeploymentStore() *fakeDeploymentStore {
	return &fakeDeploymentStore{
		deployments: make(map[uuid.UUID]*models.Deployment),
		logLines:    make(map[uuid.UUID][]string),
		completed:   make(map[uuid.UUID]string),
	}
}

func (f *fakeDeploymentStore) Create(d *models.Deployment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d.Prepare()
	d.CreatedAt = time.Now()
	copied := *d
	f.deployments[d.ID] = &copied
	return nil
}

func (f *fakeDeploymentStore) GetByID(id uuid.UUID) (*models.Deployment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.deployments[id]
	if !ok {
		return nil, nil
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDeploymentStore) GetByApplicationID(applicationID uuid.UUID) ([]models.Deployment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Deployment
	for _, d := range f.deployments {
		if d.ApplicationID == applicationID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDeploymentStore) AppendLog(id uuid.UUID, line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logLines[id] = append(f.logLines[id], line)
	if d, ok := f.deployments[id]; ok {
		d.BuildLogs += line + "\n"
	}
	return nil
}

func (f *fakeDeploymentStore) SetAnalysisResult(id uuid.UUID, result string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.deployments[id]; ok {
		d.AnalysisResult = &result
	}
	return nil
}

func (f *fakeDeploymentStore) Complete(deploymentID, applicationID uuid.UUID, deploymentURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completeErr != nil {
		return f.completeErr
	}
	now := time.Now()
	if d, ok := f.deployments[deploymentID]; ok {
		d.Status = models.DeploymentStatusSuccess
		d.DeployedAt = &now
	}
	f.completed[deploymentID] = deploymentURL
	if f.apps != nil {
		f.apps.mu.Lock()
		if a, ok := f.apps.apps[applicationID]; ok {
			a.Status = models.AppStatusLive
			a.DeploymentURL = &deploymentURL
			a.LastDeployedAt = &now
		}
		f.apps.mu.Unlock()
	}
	return nil
}

func (f *fakeDeploymentStore) MarkFailed(deploymentID uuid.UUID, line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logLines[deploymentID] = append(f.logLines[deploymentID], line)
	if d, ok := f.deployments[deploymentID]; ok {
		d.Status = models.DeploymentStatusFailed
		d.BuildLogs += line + "\n"
	}
	return nil
}

func (f *fakeDeploymentStore) CountAll() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.deployments)), nil
}

func (f *fakeDeploymentStore) lines(id uuid.UUID) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.logLines[id]))
	copy(out, f.logLines[id])
	return out
}

func (f *fakeDeploymentStore) statusOf(id uuid.UUID) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.deployments[id]; ok {
		return d.Status
	}
	return ""
}

// fakeAnalyzer satisfies Analyzer. When block is non-nil, Complete waits on
// it before returning, which lets tests hold a pipeline mid-flight.
type fakeAnalyzer struct {
	mu      sync.Mutex
	result  string
	err     error
	block   chan struct{}
	calls   int
	lastSys string
	lastMsg string
}

func (f *fakeAnalyzer) Complete(systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	f.mu.Lock()
	f.calls++
	f.lastSys = systemPrompt
	f.lastMsg = userPrompt
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.result, f.err
}

func (f *fakeAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeChatStore struct {
	mu            sync.Mutex
	conversations []models.ChatConversation
}

func (f *fakeChatStore) Create(c *models.ChatConversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.Prepare()
	c.CreatedAt = time.Now()
	f.conversations = append(f.conversations, *c)
	return nil
}

func (f *fakeChatStore) GetByUserID(userID uuid.UUID, limit int) ([]models.ChatConversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ChatConversation
	for i := len(f.conversations) - 1; i >= 0; i-- {
		if f.conversations[i].UserID == userID {
			out = append(out, f.conversations[i])
		}
	}
	return out, nil
}

type fakeAnalyticsStore struct {
	mu        sync.Mutex
	events    []models.AnalyticsEvent
	lastSince time.Time
	byDay     []models.DayCount
	byCountry []models.CountryCount
}

func (f *fakeAnalyticsStore) Create(e *models.AnalyticsEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.Prepare()
	e.CreatedAt = time.Now()
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeAnalyticsStore) GetByApplicationIDSince(applicationID uuid.UUID, since time.Time) ([]models.AnalyticsEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSince = since
	var out []models.AnalyticsEvent
	for i := len(f.events) - 1; i >= 0; i-- {
		e := f.events[i]
		if e.ApplicationID == applicationID && !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAnalyticsStore) CountByDay(applicationID uuid.UUID, since time.Time) ([]models.DayCount, error) {
	return f.byDay, nil
}

func (f *fakeAnalyticsStore) CountByCountry(applicationID uuid.UUID, since time.Time) ([]models.CountryCount, error) {
	return f.byCountry, nil
}

type fakeFileStore struct {
	mu    sync.Mutex
	files map[uuid.UUID]*models.SharedFile
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: make(map[uuid.UUID]*models.SharedFile)}
}

func (f *fakeFileStore) Create(file *models.SharedFile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	file.Prepare()
	file.CreatedAt = time.Now()
	copied := *file
	f.files[file.ID] = &copied
	return nil
}

func (f *fakeFileStore) GetByID(id uuid.UUID) (*models.SharedFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[id]
	if !ok {
		return nil, nil
	}
	copied := *file
	return &copied, nil
}

func (f *fakeFileStore) GetByToken(token string) (*models.SharedFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, file := range f.files {
		if file.Token == token {
			copied := *file
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeFileStore) GetByUserID(userID uuid.UUID) ([]models.SharedFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.SharedFile
	for _, file := range f.files {
		if file.UserID == userID {
			out = append(out, *file)
		}
	}
	return out, nil
}

func (f *fakeFileStore) IncrementDownloadCount(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if file, ok := f.files[id]; ok {
		file.DownloadCount++
	}
	return nil
}

func (f *fakeFileStore) Delete(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, id)
	return nil
}

type fakeTicketStore struct {
	mu      sync.Mutex
	tickets map[uuid.UUID]*models.SupportTicket
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{tickets: make(map[uuid.UUID]*models.SupportTicket)}
}

func (f *fakeTicketStore) Create(t *models.SupportTicket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.Prepare()
	t.CreatedAt = time.Now()
	copied := *t
	f.tickets[t.ID] = &copied
	return nil
}

func (f *fakeTicketStore) GetByID(id uuid.UUID) (*models.SupportTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTicketStore) GetByUserID(userID uuid.UUID) ([]models.SupportTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.SupportTicket
	for _, t := range f.tickets {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTicketStore) GetAll() ([]models.SupportTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.SupportTicket
	for _, t := range f.tickets {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTicketStore) UpdateStatus(id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[id]
	if !ok {
		return errors.New("no rows updated")
	}
	t.Status = status
	return nil
}

type fakeAdminSessionStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time // token -> expiry
}

func newFakeAdminSessionStore() *fakeAdminSessionStore {
	return &fakeAdminSessionStore{tokens: make(map[string]time.Time)}
}

func (f *fakeAdminSessionStore) Create(token string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = time.Now().Add(ttl)
	return nil
}

func (f *fakeAdminSessionStore) Exists(token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	expiry, ok := f.tokens[token]
	return ok && time.Now().Before(expiry), nil
}

func (f *fakeAdminSessionStore) Delete(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

type fixedCounter int64

func (c fixedCounter) CountAll() (int64, error) {
	return int64(c), nil
}
