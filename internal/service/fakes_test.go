package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"campaign_forum/internal/models"
	"campaign_forum/internal/repository"
)

// memCampaigns is an in-memory repository.Campaigns that counts writes.
type memCampaigns struct {
	mu     sync.Mutex
	byID   map[string]models.Campaign
	writes int
	err    error
}

func newMemCampaigns(seed ...models.Campaign) *memCampaigns {
	m := &memCampaigns{byID: map[string]models.Campaign{}}
	for _, c := range seed {
		m.byID[c.ID] = c
	}
	return m
}

func (m *memCampaigns) List(ctx context.Context) ([]models.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Campaign, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModifyDate.After(out[j].ModifyDate) })
	return out, m.err
}

func (m *memCampaigns) Get(ctx context.Context, id string) (models.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.Campaign{}, m.err
	}
	c, ok := m.byID[id]
	if !ok {
		return models.Campaign{}, fmt.Errorf("campaign %q: %w", id, repository.ErrNotFound)
	}
	return c, nil
}

func (m *memCampaigns) Create(ctx context.Context, c models.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	m.byID[c.ID] = c
	return m.err
}

func (m *memCampaigns) Update(ctx context.Context, id string, f models.CampaignFields, modifyDate time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	c, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.CampaignFields = f
	c.ModifyDate = modifyDate
	m.byID[id] = c
	return nil
}

func (m *memCampaigns) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memCampaigns) snapshot() map[string]models.Campaign {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]models.Campaign, len(m.byID))
	for k, v := range m.byID {
		out[k] = v
	}
	return out
}

// memUsers is an in-memory repository.Users.
type memUsers struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]models.User
	// createErr, when set, is returned by Create instead of storing.
	createErr error
	lookupErr error
}

func newMemUsers(seed ...models.User) *memUsers {
	m := &memUsers{byID: map[int]models.User{}}
	for _, u := range seed {
		m.byID[u.ID] = u
		if u.ID > m.nextID {
			m.nextID = u.ID
		}
	}
	return m
}

func (m *memUsers) Create(ctx context.Context, u models.User) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	u.ID = m.nextID
	m.byID[u.ID] = u
	return u.ID, nil
}

func (m *memUsers) GetByID(ctx context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) find(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	for _, u := range m.byID {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Username == username })
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email })
}

func (m *memUsers) UpdateProfile(ctx context.Context, id int, p repository.ProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.FirstName, u.LastName, u.Role, u.Image = p.FirstName, p.LastName, p.Role, p.Image
	m.byID[id] = u
	return nil
}

func (m *memUsers) UpdatePassword(ctx context.Context, id int, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	m.byID[id] = u
	return nil
}
