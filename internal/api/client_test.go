package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gauthier-se/Checkpoint/internal/api"
	"github.com/gauthier-se/Checkpoint/internal/model"
)

func newClient(t *testing.T, handler http.HandlerFunc) (*api.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := api.New(srv.URL, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("client construction failed: %v", err)
	}
	return c, srv
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	for _, bad := range []string{"", "not a url", "/relative/only"} {
		if _, err := api.New(bad, zerolog.New(io.Discard)); err == nil {
			t.Fatalf("expected error for base url %q", bad)
		}
	}
}

func TestCurrentUser_ForwardsSessionCookie(t *testing.T) {
	var gotCookie string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/me" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ck, err := r.Cookie(api.SessionCookie); err == nil {
			gotCookie = ck.Value
		}
		_ = json.NewEncoder(w).Encode(model.User{ID: "u1", Username: "alice", Email: "a@example.com", Role: "USER"})
	})

	u, err := c.CurrentUser(context.Background(), api.SessionCredential("abc123"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if gotCookie != "abc123" {
		t.Fatalf("session cookie not forwarded, got %q", gotCookie)
	}
}

func TestCurrentUser_NonOKIsUnauthorized(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	_, err := c.CurrentUser(context.Background(), api.AnonymousCredential())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLogin_ReturnsSessionCookie(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "a@example.com" || body.Password != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: api.SessionCookie, Value: "sess-1", HttpOnly: true})
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Login successful"})
	})

	cookie, err := c.Login(context.Background(), "a@example.com", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cookie.Name != api.SessionCookie || cookie.Value != "sess-1" {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}

	if _, err := c.Login(context.Background(), "a@example.com", "wrong"); !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGame_NotFound(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	_, err := c.Game(context.Background(), "nope")
	if !api.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGames_PassesZeroBasedPage(t *testing.T) {
	var gotQuery string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(model.PagedResponse[model.Game]{
			Content:  []model.Game{{ID: "g1", Title: "Outer Wilds"}},
			Metadata: model.PaginationMetadata{Page: 2, Size: 32, TotalPages: 5, HasNext: true, HasPrevious: true},
		})
	})

	res, err := c.Games(context.Background(), 2, 32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "page=2&size=32" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if len(res.Content) != 1 || res.Content[0].Title != "Outer Wilds" {
		t.Fatalf("unexpected content: %+v", res.Content)
	}
}

func TestUpdateLibraryEntry_SendsContract(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody model.UserGameRequest
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.UpdateLibraryEntry(context.Background(), api.SessionCredential("s"), "game-9", model.StatusCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/me/library/game-9" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	if gotBody.VideoGameID != "game-9" || gotBody.Status != model.StatusCompleted {
		t.Fatalf("unexpected body: %+v", gotBody)
	}
}

func TestRemoveLibraryEntry_MutationFailure(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	err := c.RemoveLibraryEntry(context.Background(), api.SessionCredential("s"), "game-9")
	if !errors.Is(err, api.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
