package handlers

import (
	"context"
	"net/http"
	"time"

	"campaign_forum/internal/forms"
	"campaign_forum/internal/models"
	"campaign_forum/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	user          *models.User
	authErr       error
	genTokenToken string
	genTokenErr   error
	issueToken    string
	issueExpires  time.Time
	issueErr      error
	parseID       int
	parseErr      error
	tokens        map[string]int

	lastAuthUsername string
	lastAuthPassword string
	lastGenUsername  string
	lastGenPassword  string
	lastRemember     bool
	lastParseToken   string
}

func (m *mockAuth) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	m.lastAuthUsername = username
	m.lastAuthPassword = password
	return m.user, m.authErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) IssueToken(userID int, remember bool) (string, time.Time, error) {
	m.lastRemember = remember
	return m.issueToken, m.issueExpires, m.issueErr
}

// ParseToken resolves through tokens when it is set, so one router can serve several users.
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	if m.tokens != nil {
		id, ok := m.tokens[token]
		if !ok {
			return 0, service.ErrInvalidToken
		}
		return id, nil
	}
	return m.parseID, m.parseErr
}

type mockAccounts struct {
	conflicts forms.Errors
	notices   []string
	checkErr  error
	regID     int
	regErr    error
	user      *models.User
	getErr    error
	updErr    error
	pwErr     error

	checkCalls   int
	lastCheck    [2]string
	registered   []forms.Registration
	lastProfile  forms.Profile
	lastActorID  int
	lastPassword string
}

func (m *mockAccounts) CheckRegistrationUniqueness(ctx context.Context, username, email string) (forms.Errors, []string, error) {
	m.checkCalls++
	m.lastCheck = [2]string{username, email}
	errs := m.conflicts
	if errs == nil {
		errs = forms.Errors{}
	}
	return errs, m.notices, m.checkErr
}
func (m *mockAccounts) Register(ctx context.Context, f forms.Registration) (int, error) {
	m.registered = append(m.registered, f)
	return m.regID, m.regErr
}
func (m *mockAccounts) GetUser(ctx context.Context, id int) (*models.User, error) {
	m.lastActorID = id
	return m.user, m.getErr
}
func (m *mockAccounts) UpdateProfile(ctx context.Context, actorID int, f forms.Profile) error {
	m.lastActorID = actorID
	m.lastProfile = f
	return m.updErr
}
func (m *mockAccounts) ChangePassword(ctx context.Context, actorID int, pw string) error {
	m.lastActorID = actorID
	m.lastPassword = pw
	return m.pwErr
}

// mockCampaigns keeps campaigns in memory and enforces authorship like the real service,
// counting every call so tests can assert what was (not) touched.
type mockCampaigns struct {
	byID    map[string]models.Campaign
	order   []string
	listErr error
	nextID  string

	getCalls, getForEditCalls, createCalls, updateCalls, deleteCalls int

	lastCreated models.CampaignFields
	lastUpdated models.CampaignFields
}

func newMockCampaigns(seed ...models.Campaign) *mockCampaigns {
	m := &mockCampaigns{byID: map[string]models.Campaign{}, nextID: "new-id"}
	for _, c := range seed {
		m.byID[c.ID] = c
		m.order = append(m.order, c.ID)
	}
	return m
}

func (m *mockCampaigns) List(ctx context.Context) ([]models.Campaign, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.Campaign, 0, len(m.order))
	for _, id := range m.order {
		if c, ok := m.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}
func (m *mockCampaigns) Get(ctx context.Context, id string) (models.Campaign, error) {
	m.getCalls++
	c, ok := m.byID[id]
	if !ok {
		return models.Campaign{}, service.ErrNotFound
	}
	return c, nil
}
func (m *mockCampaigns) Create(ctx context.Context, actorID int, f models.CampaignFields) (models.Campaign, error) {
	m.createCalls++
	m.lastCreated = f
	c := models.Campaign{ID: m.nextID, AuthorID: actorID, ModifyDate: time.Now().UTC(), CampaignFields: f}
	m.byID[c.ID] = c
	m.order = append(m.order, c.ID)
	return c, nil
}
func (m *mockCampaigns) GetForEdit(ctx context.Context, actorID int, id string) (models.Campaign, error) {
	m.getForEditCalls++
	c, ok := m.byID[id]
	if !ok {
		return models.Campaign{}, service.ErrNotFound
	}
	if !c.IsAuthor(actorID) {
		return models.Campaign{}, service.ErrPermissionDenied
	}
	return c, nil
}
func (m *mockCampaigns) Update(ctx context.Context, actorID int, id string, f models.CampaignFields) error {
	m.updateCalls++
	c, ok := m.byID[id]
	if !ok {
		return service.ErrNotFound
	}
	if !c.IsAuthor(actorID) {
		return service.ErrPermissionDenied
	}
	m.lastUpdated = f
	c.CampaignFields = f
	m.byID[id] = c
	return nil
}
func (m *mockCampaigns) Delete(ctx context.Context, actorID int, id string) error {
	m.deleteCalls++
	c, ok := m.byID[id]
	if !ok {
		return service.ErrNotFound
	}
	if !c.IsAuthor(actorID) {
		return service.ErrPermissionDenied
	}
	delete(m.byID, id)
	return nil
}

type mockActivityLog struct {
	resp     []models.ActivityEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
	last     service.LogFilter
}

func (m *mockActivityLog) List(ctx context.Context, f service.LogFilter) ([]models.ActivityEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.last = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
