package publishers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dghubble/oauth1"

	"SocialAutoPoster/config"
	"SocialAutoPoster/models"
)

const (
	twitterUploadURL = "https://upload.twitter.com/1.1/media/upload.json"
	twitterTweetURL  = "https://api.twitter.com/2/tweets"
)

// TwitterPublisher posts tweets in the user context. Media still goes
// through the v1.1 upload endpoint (the v2 API has no media upload), the
// tweet itself through POST /2/tweets. Both calls are signed with OAuth
// 1.0a via the dghubble/oauth1 transport.
type TwitterPublisher struct {
	client    *http.Client
	uploadURL string
	tweetURL  string
}

type twitterMediaResponse struct {
	MediaIDString string `json:"media_id_string"`
}

type twitterTweetRequest struct {
	Text  string `json:"text"`
	Media *struct {
		MediaIDs []string `json:"media_ids"`
	} `json:"media,omitempty"`
}

type twitterTweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

type twitterErrorResponse struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// NewTwitterPublisher creates a TwitterPublisher with an injectable
// http.Client. When nil is passed an OAuth 1.0a signing client is built
// from the configured credentials; with incomplete credentials the
// publisher reports the failure per post instead of erroring at startup,
// matching how the Facebook side behaves.
func NewTwitterPublisher(cfg config.Twitter, client *http.Client) *TwitterPublisher {
	t := &TwitterPublisher{
		uploadURL: twitterUploadURL,
		tweetURL:  twitterTweetURL,
	}

	if client != nil {
		t.client = client
		return t
	}

	if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" || cfg.AccessToken == "" || cfg.AccessSecret == "" {
		return t
	}

	oaConfig := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessSecret)
	t.client = oaConfig.Client(oauth1.NoContext, token)
	t.client.Timeout = 30 * time.Second
	return t
}

func (t *TwitterPublisher) Platform() models.Platform {
	return models.Twitter
}

func (t *TwitterPublisher) Publish(ctx context.Context, post *models.PreparedPost) models.PublishResult {
	if t.client == nil {
		return models.PublishResult{
			Platform: models.Twitter,
			Success:  false,
			Message:  "Missing Twitter credentials",
		}
	}

	var mediaIDs []string
	if post.ImagePath != "" {
		mediaID, err := t.uploadMedia(ctx, post.ImagePath)
		if err != nil {
			return models.PublishResult{
				Platform: models.Twitter,
				Success:  false,
				Message:  fmt.Sprintf("Error uploading media to Twitter: %v", err),
			}
		}
		mediaIDs = []string{mediaID}
	}

	tweetID, err := t.createTweet(ctx, post.Text, mediaIDs)
	if err != nil {
		return models.PublishResult{
			Platform: models.Twitter,
			Success:  false,
			Message:  fmt.Sprintf("Error publishing to Twitter: %v", err),
		}
	}

	return models.PublishResult{
		Platform: models.Twitter,
		Success:  true,
		Message:  "Published successfully on Twitter",
		PostID:   tweetID,
	}
}

func (t *TwitterPublisher) uploadMedia(ctx context.Context, imagePath string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	file, err := os.Open(imagePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	part, err := writer.CreateFormFile("media", filepath.Base(imagePath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", t.uploadURL, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", twitterError(respBody)
	}

	var mediaResp twitterMediaResponse
	if err := json.Unmarshal(respBody, &mediaResp); err != nil {
		return "", err
	}
	if mediaResp.MediaIDString == "" {
		return "", fmt.Errorf("Twitter media upload returned no media ID")
	}

	return mediaResp.MediaIDString, nil
}

func (t *TwitterPublisher) createTweet(ctx context.Context, text string, mediaIDs []string) (string, error) {
	payload := twitterTweetRequest{Text: text}
	if len(mediaIDs) > 0 {
		payload.Media = &struct {
			MediaIDs []string `json:"media_ids"`
		}{MediaIDs: mediaIDs}
	}

	jsonData, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, "POST", t.tweetURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", twitterError(respBody)
	}

	var tweetResp twitterTweetResponse
	if err := json.Unmarshal(respBody, &tweetResp); err != nil {
		return "", err
	}

	return tweetResp.Data.ID, nil
}

// twitterError decodes both error shapes the two API generations use:
// v2 problem documents ({"title","detail"}) and v1.1 error arrays.
func twitterError(body []byte) error {
	var twError twitterErrorResponse
	json.Unmarshal(body, &twError)

	if twError.Detail != "" {
		return fmt.Errorf("Twitter API error: %s", twError.Detail)
	}
	if len(twError.Errors) > 0 {
		return fmt.Errorf("Twitter API error: %s (code: %d)", twError.Errors[0].Message, twError.Errors[0].Code)
	}
	return fmt.Errorf("Twitter API error: %s", string(body))
}
