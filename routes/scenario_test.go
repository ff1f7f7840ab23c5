package routes_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"eventapi/models"
)

// Full walk through the API: register, login, create, attend from a
// second account, repeat-attend, cancel, delete.
func TestEndToEndScenario(t *testing.T) {
	deps := setupServer(t)

	w := doReq(deps.s, "POST", "/api/auth/register",
		`{"name":"Ann","email":"ann@x.com","password":"Aa1!aaaa"}`, "")
	require.Equal(t, 201, w.Code, w.Body.String())

	w = doReq(deps.s, "POST", "/api/auth/login",
		`{"email":"ann@x.com","password":"Aa1!aaaa"}`, "")
	require.Equal(t, 200, w.Code, w.Body.String())

	var login struct {
		Token string             `json:"token"`
		User  models.UserSummary `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	annToken := login.Token
	ann := login.User

	w = doReq(deps.s, "POST", "/api/events",
		`{"title":"Meetup","description":"desc","date":"2025-01-01"}`, annToken)
	require.Equal(t, 201, w.Code, w.Body.String())

	var event models.EventView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	require.Equal(t, ann.ID, event.Owner.ID)

	_, bobToken := registerAndLogin(t, deps.s, "Bob", "bob@x.com")

	w = doReq(deps.s, "POST", "/api/rsvp/"+event.ID, "", bobToken)
	require.Equal(t, 200, w.Code, w.Body.String())
	require.Len(t, attendees(t, deps, event.ID), 1)

	w = doReq(deps.s, "POST", "/api/rsvp/"+event.ID, "", bobToken)
	require.Equal(t, 200, w.Code)
	require.Len(t, attendees(t, deps, event.ID), 1)

	w = doReq(deps.s, "DELETE", "/api/rsvp/"+event.ID, "", bobToken)
	require.Equal(t, 200, w.Code)
	require.Empty(t, attendees(t, deps, event.ID))

	w = doReq(deps.s, "DELETE", "/api/events/"+event.ID, "", annToken)
	require.Equal(t, 200, w.Code, w.Body.String())

	w = doReq(deps.s, "GET", "/api/events/"+event.ID, "", "")
	require.Equal(t, 404, w.Code)
}
