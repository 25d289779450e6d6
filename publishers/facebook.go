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

	"SocialAutoPoster/config"
	"SocialAutoPoster/models"
)

const facebookGraphURL = "https://graph.facebook.com"

// FacebookPublisher posts to a page through the Graph API: text-only
// posts go to /feed, posts with an attached image go to /photos as a
// multipart upload.
type FacebookPublisher struct {
	pageID      string
	accessToken string
	baseURL     string
	client      *http.Client
}

type FacebookPostResponse struct {
	ID string `json:"id"`
}

type FacebookPhotoResponse struct {
	ID     string `json:"id"`
	PostID string `json:"post_id"`
}

type FacebookErrorResponse struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

// NewFacebookPublisher creates a FacebookPublisher with an injectable
// http.Client. If nil is passed, a default client with a sensible
// timeout is used.
func NewFacebookPublisher(cfg config.Facebook, client *http.Client) *FacebookPublisher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &FacebookPublisher{
		pageID:      cfg.PageID,
		accessToken: cfg.AccessToken,
		baseURL:     fmt.Sprintf("%s/%s", facebookGraphURL, cfg.GraphVersion),
		client:      client,
	}
}

func (f *FacebookPublisher) Platform() models.Platform {
	return models.Facebook
}

func (f *FacebookPublisher) Publish(ctx context.Context, post *models.PreparedPost) models.PublishResult {
	if f.pageID == "" || f.accessToken == "" {
		return models.PublishResult{
			Platform: models.Facebook,
			Success:  false,
			Message:  "Missing Facebook credentials",
		}
	}

	var postID string
	var err error
	if post.ImagePath != "" {
		postID, err = f.publishPhoto(ctx, post.Text, post.ImagePath)
	} else {
		postID, err = f.publishFeed(ctx, post.Text)
	}

	if err != nil {
		return models.PublishResult{
			Platform: models.Facebook,
			Success:  false,
			Message:  fmt.Sprintf("Error publishing to Facebook: %v", err),
		}
	}

	return models.PublishResult{
		Platform: models.Facebook,
		Success:  true,
		Message:  "Published successfully on Facebook",
		PostID:   postID,
	}
}

func (f *FacebookPublisher) publishFeed(ctx context.Context, message string) (string, error) {
	url := fmt.Sprintf("%s/%s/feed", f.baseURL, f.pageID)

	payload := map[string]string{
		"message": message,
	}
	jsonData, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.accessToken)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", graphError(body)
	}

	var postResp FacebookPostResponse
	if err := json.Unmarshal(body, &postResp); err != nil {
		return "", err
	}

	return postResp.ID, nil
}

func (f *FacebookPublisher) publishPhoto(ctx context.Context, message, imagePath string) (string, error) {
	url := fmt.Sprintf("%s/%s/photos", f.baseURL, f.pageID)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	file, err := os.Open(imagePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	part, err := writer.CreateFormFile("source", filepath.Base(imagePath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}

	writer.WriteField("message", message)
	writer.WriteField("published", "true")
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", url, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+f.accessToken)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", graphError(respBody)
	}

	var photoResp FacebookPhotoResponse
	if err := json.Unmarshal(respBody, &photoResp); err != nil {
		return "", err
	}

	// The Graph API reports both the photo ID and the resulting page
	// post ID; the post ID is the one worth keeping.
	if photoResp.PostID != "" {
		return photoResp.PostID, nil
	}
	return photoResp.ID, nil
}

func graphError(body []byte) error {
	var fbError FacebookErrorResponse
	json.Unmarshal(body, &fbError)
	if fbError.Error.Message == "" {
		return fmt.Errorf("Facebook API error: %s", string(body))
	}
	return fmt.Errorf("Facebook API error: %s (code: %d)", fbError.Error.Message, fbError.Error.Code)
}
