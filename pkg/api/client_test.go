package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/socialsphere/socialsphere/pkg/api"
	"github.com/socialsphere/socialsphere/pkg/pubsub"
	"github.com/socialsphere/socialsphere/pkg/social"
	"github.com/socialsphere/socialsphere/pkg/users"
)

func TestClient_ListPosts(t *testing.T) {
	var gotAuth, gotLimit, gotCursor string

	r := mux.NewRouter()
	r.Path("/posts").Methods("GET").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		gotLimit = req.URL.Query().Get("limit")
		gotCursor = req.URL.Query().Get("cursor")

		_ = json.NewEncoder(w).Encode([]social.Post{{ID: "p1", Content: "hello"}})
	})

	server := httptest.NewServer(r)
	defer server.Close()

	client := api.NewClient(server.URL, func() string { return "token123" }, nil)

	posts, err := client.ListPosts(context.Background(), 20, "p0")
	if err != nil {
		t.Fatal(err)
	}

	if len(posts) != 1 || posts[0].ID != "p1" {
		t.Fatalf("unexpected posts %v", posts)
	}

	if gotAuth != "Bearer token123" {
		t.Fatalf("unexpected authorization header %q", gotAuth)
	}

	if gotLimit != "20" || gotCursor != "p0" {
		t.Fatalf("unexpected query limit=%s cursor=%s", gotLimit, gotCursor)
	}
}

func TestClient_ToggleReaction_SendsKind(t *testing.T) {
	var payload map[string]string

	r := mux.NewRouter()
	r.Path("/posts/{id}/reactions").Methods("POST").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewDecoder(req.Body).Decode(&payload)
		_ = json.NewEncoder(w).Encode(social.Post{ID: mux.Vars(req)["id"]})
	})

	server := httptest.NewServer(r)
	defer server.Close()

	client := api.NewClient(server.URL, nil, nil)

	post, err := client.ToggleReaction(context.Background(), "p1", social.ReactionLove)
	if err != nil {
		t.Fatal(err)
	}

	if post.ID != "p1" {
		t.Fatalf("unexpected post %v", post)
	}

	if payload["type"] != "LOVE" {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestClient_DecodesValidationError(t *testing.T) {
	r := mux.NewRouter()
	r.Path("/posts").Methods("POST").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Invalid post data",
			"issues":  []api.FieldIssue{{Field: "content", Message: "Share something meaningful"}},
		})
	})

	server := httptest.NewServer(r)
	defer server.Close()

	client := api.NewClient(server.URL, nil, nil)

	_, err := client.CreatePost(context.Background(), "", "")
	if err == nil {
		t.Fatal("expected an error")
	}

	apiErr, ok := err.(*api.Error)
	if !ok {
		t.Fatalf("expected *api.Error, got %T", err)
	}

	if apiErr.Message != "Invalid post data" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}

	if len(apiErr.Issues) != 1 || apiErr.Issues[0].Field != "content" {
		t.Fatalf("unexpected issues %v", apiErr.Issues)
	}
}

func TestClient_PublishesSessionInvalidatedOn401(t *testing.T) {
	r := mux.NewRouter()
	r.Path("/users/me").Methods("GET").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Session expired"})
	})

	server := httptest.NewServer(r)
	defer server.Close()

	queue := pubsub.NewQueue()
	events := queue.Subscribe()

	client := api.NewClient(server.URL, nil, queue)

	_, err := client.Me(context.Background())
	if !api.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	select {
	case event := <-events:
		if event.Type != pubsub.EventTypeSessionInvalidated {
			t.Fatalf("unexpected event type %d", event.Type)
		}

		if event.Params["reason"] != "Session expired" {
			t.Fatalf("unexpected reason %v", event.Params["reason"])
		}
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}
}

func TestClient_Login(t *testing.T) {
	r := mux.NewRouter()
	r.Path("/auth/login").Methods("POST").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var payload map[string]string
		_ = json.NewDecoder(req.Body).Decode(&payload)

		if payload["email"] != "jane@social.app" || payload["password"] != "hunter22" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}

		_ = json.NewEncoder(w).Encode(api.Session{
			User:  users.User{ID: 1, Name: "Jane Doe"},
			Token: "token123",
		})
	})

	server := httptest.NewServer(r)
	defer server.Close()

	client := api.NewClient(server.URL, nil, nil)

	session, err := client.Login(context.Background(), "jane@social.app", "hunter22")
	if err != nil {
		t.Fatal(err)
	}

	if session.Token != "token123" || session.User.ID != 1 {
		t.Fatalf("unexpected session %v", session)
	}

	_, err = client.Login(context.Background(), "jane@social.app", "wrong")
	if !api.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestIsTransport(t *testing.T) {
	client := api.NewClient("http://127.0.0.1:1", nil, nil)

	_, err := client.Me(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}

	if !api.IsTransport(err) {
		t.Fatalf("expected a transport error, got %v", err)
	}

	if api.IsTransport(&api.Error{StatusCode: http.StatusNotFound}) {
		t.Fatal("api errors are not transport errors")
	}

	if !api.IsNotFound(&api.Error{StatusCode: http.StatusNotFound}) {
		t.Fatal("expected not found")
	}
}
