package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authStubServer(t *testing.T, profileStatus int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "issued-token",
			"user":  Identity{ID: "u1", Name: "Pat", Email: "pat@example.com", Role: "customer"},
		})
	})
	mux.HandleFunc("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "issued-token",
			"user":  Identity{ID: "u2", Name: "New", Email: "new@example.com", Role: "customer"},
		})
	})
	mux.HandleFunc("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		if profileStatus != http.StatusOK {
			w.WriteHeader(profileStatus)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid or expired token"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": Identity{ID: "u1", Name: "Pat", Email: "pat@example.com", Role: "customer"},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestStartWithoutTokenIsAnonymous(t *testing.T) {
	srv := authStubServer(t, http.StatusOK)
	api := New(Config{BaseURL: srv.URL, Notifier: &recordingNotifier{}})
	session := NewSession(api)

	session.Start(context.Background())

	assert.Equal(t, StateAnonymous, session.CurrentState())
}

func TestStartWithStoredTokenResolvesProfile(t *testing.T) {
	srv := authStubServer(t, http.StatusOK)
	api := New(Config{BaseURL: srv.URL, Notifier: &recordingNotifier{}})
	require.NoError(t, api.Tokens().SetToken("stored-token"))
	session := NewSession(api)

	session.Start(context.Background())

	assert.Equal(t, StateAuthenticated, session.CurrentState())
	identity, ok := session.Identity()
	require.True(t, ok)
	assert.Equal(t, "u1", identity.ID)
}

func TestStartWithInvalidTokenDiscardsIt(t *testing.T) {
	srv := authStubServer(t, http.StatusUnauthorized)
	api := New(Config{BaseURL: srv.URL, Notifier: &recordingNotifier{}})
	require.NoError(t, api.Tokens().SetToken("stale-token"))
	session := NewSession(api)

	session.Start(context.Background())

	assert.Equal(t, StateAnonymous, session.CurrentState())
	_, held := api.Tokens().Token()
	assert.False(t, held)
}

func TestLoginStoresTokenAndIdentity(t *testing.T) {
	srv := authStubServer(t, http.StatusOK)
	api := New(Config{BaseURL: srv.URL, Notifier: &recordingNotifier{}})
	session := NewSession(api)

	identity, err := session.Login(context.Background(), "pat@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "u1", identity.ID)
	assert.True(t, session.IsAuthenticated())
	token, held := api.Tokens().Token()
	require.True(t, held)
	assert.Equal(t, "issued-token", token)
}

func TestLogoutClearsEverythingAndNavigatesHome(t *testing.T) {
	srv := authStubServer(t, http.StatusOK)
	api := New(Config{BaseURL: srv.URL, Notifier: &recordingNotifier{}})
	session := NewSession(api)

	wentHome := false
	session.SetNavigateHomeHook(func() { wentHome = true })

	_, err := session.Login(context.Background(), "pat@example.com", "secret")
	require.NoError(t, err)

	session.Logout()

	assert.Equal(t, StateAnonymous, session.CurrentState())
	_, held := api.Tokens().Token()
	assert.False(t, held)
	assert.True(t, wentHome)
}

func TestLogoutResetsCartWithoutNetworkCall(t *testing.T) {
	srv := authStubServer(t, http.StatusOK)
	api := New(Config{BaseURL: srv.URL, Notifier: &recordingNotifier{}})
	session := NewSession(api)

	_, err := session.Login(context.Background(), "pat@example.com", "secret")
	require.NoError(t, err)

	manager := NewCartManager(api, session, &recordingNotifier{})
	manager.replace(Cart{
		Items: []CartItem{{ProductID: "p1", Name: "Milk", Price: 3.00, Quantity: 2, Subtotal: 6.00}},
		Total: 6.00,
	})
	manager.WatchSession(session)

	session.Logout()

	assert.Equal(t, 0, manager.ItemsCount())
	assert.Equal(t, Cart{Items: []CartItem{}}, manager.Cart())
}

func TestGlobalUnauthorizedResetsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid or expired token"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	api := New(Config{BaseURL: srv.URL, Notifier: &recordingNotifier{}})
	require.NoError(t, api.Tokens().SetToken("about-to-expire"))
	session := NewSession(api)
	session.setState(StateAuthenticated, &Identity{ID: "u1"})

	// Any authenticated call answering 401 invalidates the whole session.
	err := api.Get(context.Background(), "/orders", nil)
	require.Error(t, err)

	assert.Equal(t, StateAnonymous, session.CurrentState())
	_, held := api.Tokens().Token()
	assert.False(t, held)
}

func TestObserversFireOnIdentityChange(t *testing.T) {
	srv := authStubServer(t, http.StatusOK)
	api := New(Config{BaseURL: srv.URL, Notifier: &recordingNotifier{}})
	session := NewSession(api)

	notified := 0
	session.OnChange(func(State) { notified++ })

	// anonymous -> authenticated (u1)
	_, err := session.Login(context.Background(), "pat@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, 1, notified)

	// authenticated (u1) -> authenticated (u2): still a transition
	_, err = session.Register(context.Background(), "New", "new@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, 2, notified)

	// same identity resolved again: no transition
	_, err = session.Register(context.Background(), "New", "new@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, 2, notified)
}
