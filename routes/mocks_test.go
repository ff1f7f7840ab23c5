package routes_test

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"eventapi/middlewares"
	"eventapi/models"
	"eventapi/routes"
	"eventapi/utils"
)

/* ---------- in-memory repositories ---------- */

// Passwords are stored and compared in plain text here; bcrypt is
// covered by the utils tests and would only slow these down.
type mockUserRepo struct {
	byEmail map[string]models.User
	seq     int
}

func (m *mockUserRepo) Create(u *models.User) error {
	u.Email = models.NormalizeEmail(u.Email)
	if _, ok := m.byEmail[u.Email]; ok {
		return models.ErrDuplicateEmail
	}
	m.seq++
	u.ID = fmt.Sprintf("u-%d", m.seq)
	u.CreatedAt = time.Now().UTC()
	m.byEmail[u.Email] = *u
	return nil
}

func (m *mockUserRepo) ValidateCredentials(email, plain string) (models.User, error) {
	u, ok := m.byEmail[models.NormalizeEmail(email)]
	if !ok || u.Password != plain {
		return models.User{}, models.ErrInvalidCredentials
	}
	return u, nil
}

func (m *mockUserRepo) GetByID(id string) (models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (m *mockUserRepo) GetByIDs(ids []string) (map[string]models.User, error) {
	out := map[string]models.User{}
	for _, id := range ids {
		if u, err := m.GetByID(id); err == nil {
			out[id] = u
		}
	}
	return out, nil
}

type mockEventRepo struct {
	items map[string]models.Event
}

func (m *mockEventRepo) GetAll() ([]models.Event, error) {
	out := make([]models.Event, 0, len(m.items))
	for _, e := range m.items {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEventRepo) GetByID(id string) (models.Event, error) {
	e, ok := m.items[id]
	if !ok {
		return models.Event{}, models.ErrNotFound
	}
	return e, nil
}

func (m *mockEventRepo) Create(e *models.Event) error {
	m.items[e.ID] = *e
	return nil
}

func (m *mockEventRepo) Update(e *models.Event) error {
	if _, ok := m.items[e.ID]; !ok {
		return models.ErrNotFound
	}
	m.items[e.ID] = *e
	return nil
}

func (m *mockEventRepo) Delete(id string) error {
	if _, ok := m.items[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type mockRSVPRepo struct {
	rows map[string]models.RSVP // key event|user, mirrors the unique index
	seq  int
}

func rsvpKey(eventID, userID string) string { return eventID + "|" + userID }

func (m *mockRSVPRepo) Upsert(eventID, userID, status string) (models.RSVP, error) {
	now := time.Now().UTC()
	k := rsvpKey(eventID, userID)
	row, ok := m.rows[k]
	if !ok {
		m.seq++
		row = models.RSVP{
			ID:        fmt.Sprintf("r-%d", m.seq),
			Event:     eventID,
			User:      userID,
			CreatedAt: now,
		}
	}
	row.Status = status
	row.UpdatedAt = now
	m.rows[k] = row
	return row, nil
}

func (m *mockRSVPRepo) SetStatus(eventID, userID, status string) (models.RSVP, error) {
	k := rsvpKey(eventID, userID)
	row, ok := m.rows[k]
	if !ok {
		return models.RSVP{}, models.ErrNotFound
	}
	row.Status = status
	row.UpdatedAt = time.Now().UTC()
	m.rows[k] = row
	return row, nil
}

func (m *mockRSVPRepo) ListAttending(eventID string) ([]models.RSVP, error) {
	var out []models.RSVP
	for _, r := range m.rows {
		if r.Event == eventID && r.Status == models.StatusAttending {
			out = append(out, r)
		}
	}
	return out, nil
}

/* ---------- server wiring ---------- */

type serverDeps struct {
	s      *gin.Engine
	users  *mockUserRepo
	events *mockEventRepo
	rsvps  *mockRSVPRepo
}

func setupServer(t *testing.T) serverDeps {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	inv := utils.NewCacheInvalidator(rdb)

	users := &mockUserRepo{byEmail: map[string]models.User{}}
	events := &mockEventRepo{items: map[string]models.Event{}}
	rsvps := &mockRSVPRepo{rows: map[string]models.RSVP{}}

	s := gin.New()
	s.Use(middlewares.ResponseCache(rdb, 30*time.Second))
	routes.RegisterRoutes(s, users, events, rsvps, inv)
	return serverDeps{s: s, users: users, events: events, rsvps: rsvps}
}

func doReq(s *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	s.ServeHTTP(w, req)
	return w
}

// registerAndLogin runs the real register/login flow and returns the
// created user summary plus a bearer token the guard accepts.
func registerAndLogin(t *testing.T, s *gin.Engine, name, email string) (models.UserSummary, string) {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":"Aa1!aaaa"}`, name, email)
	w := doReq(s, "POST", "/api/auth/register", body, "")
	require.Equal(t, 201, w.Code, w.Body.String())

	w = doReq(s, "POST", "/api/auth/login", fmt.Sprintf(`{"email":%q,"password":"Aa1!aaaa"}`, email), "")
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp struct {
		Token string             `json:"token"`
		User  models.UserSummary `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.User, resp.Token
}

// createEvent posts an event through the API and returns its id.
func createEvent(t *testing.T, s *gin.Engine, token, title string) string {
	t.Helper()

	body := fmt.Sprintf(`{"title":%q,"description":"desc","date":"2025-01-01"}`, title)
	w := doReq(s, "POST", "/api/events", body, token)
	require.Equal(t, 201, w.Code, w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}
