package publishers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"SocialAutoPoster/config"
	"SocialAutoPoster/models"
)

func testTwitterPublisher(server *httptest.Server) *TwitterPublisher {
	return &TwitterPublisher{
		client:    server.Client(),
		uploadURL: server.URL + "/1.1/media/upload.json",
		tweetURL:  server.URL + "/2/tweets",
	}
}

func TestTwitterPublishTextOnly(t *testing.T) {
	var gotTweet twitterTweetRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2/tweets" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotTweet)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"1777","text":"Hello"}}`))
	}))
	defer server.Close()

	tw := testTwitterPublisher(server)
	result := tw.Publish(context.Background(), &models.PreparedPost{
		Platform: models.Twitter,
		Text:     "Hello",
	})

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.PostID != "1777" {
		t.Errorf("unexpected tweet ID %q", result.PostID)
	}
	if gotTweet.Text != "Hello" || gotTweet.Media != nil {
		t.Errorf("unexpected tweet payload %+v", gotTweet)
	}
}

func TestTwitterPublishWithImage(t *testing.T) {
	imagePath := filepath.Join(t.TempDir(), "daily_001.png")
	if err := os.WriteFile(imagePath, []byte{0x89, 0x50, 0x4E, 0x47}, 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var gotTweet twitterTweetRequest
	var uploadCalled bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/1.1/media/upload.json":
			uploadCalled = true
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("expected multipart upload: %v", err)
			}
			if _, _, err := r.FormFile("media"); err != nil {
				t.Errorf("expected media form file: %v", err)
			}
			w.Write([]byte(`{"media_id":555,"media_id_string":"555"}`))
		case "/2/tweets":
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &gotTweet)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"data":{"id":"1888","text":"With image"}}`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer server.Close()

	tw := testTwitterPublisher(server)
	result := tw.Publish(context.Background(), &models.PreparedPost{
		Platform:  models.Twitter,
		Text:      "With image",
		ImagePath: imagePath,
	})

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if !uploadCalled {
		t.Error("media upload endpoint not called")
	}
	if gotTweet.Media == nil || len(gotTweet.Media.MediaIDs) != 1 || gotTweet.Media.MediaIDs[0] != "555" {
		t.Errorf("media ID not propagated to tweet: %+v", gotTweet)
	}
}

func TestTwitterPublishUploadFails(t *testing.T) {
	imagePath := filepath.Join(t.TempDir(), "daily_001.png")
	if err := os.WriteFile(imagePath, []byte{0x89, 0x50, 0x4E, 0x47}, 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/2/tweets" {
			t.Error("tweet must not be created when the upload fails")
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"code":324,"message":"Media type unsupported"}]}`))
	}))
	defer server.Close()

	tw := testTwitterPublisher(server)
	result := tw.Publish(context.Background(), &models.PreparedPost{
		Platform:  models.Twitter,
		Text:      "x",
		ImagePath: imagePath,
	})

	if result.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Message, "Media type unsupported") {
		t.Errorf("v1.1 error not surfaced: %q", result.Message)
	}
}

func TestTwitterPublishV2Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"title":"Forbidden","detail":"You are not permitted to perform this action.","status":403}`))
	}))
	defer server.Close()

	tw := testTwitterPublisher(server)
	result := tw.Publish(context.Background(), &models.PreparedPost{Platform: models.Twitter, Text: "x"})

	if result.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Message, "not permitted") {
		t.Errorf("v2 problem detail not surfaced: %q", result.Message)
	}
}

func TestTwitterPublishMissingCredentials(t *testing.T) {
	tw := NewTwitterPublisher(config.Twitter{ConsumerKey: "only-one-of-four"}, nil)
	result := tw.Publish(context.Background(), &models.PreparedPost{Platform: models.Twitter, Text: "x"})

	if result.Success || result.Message != "Missing Twitter credentials" {
		t.Errorf("expected missing-credentials failure, got %+v", result)
	}
}
