// Package client implements the HTTP client for the design-explorer
// persistence API: session and view lifecycle, chat transcripts, asset
// libraries, and image generation. The engine consumes it behind an
// interface; nothing here retries automatically — a failed call is the
// caller's decision to reissue.
package client

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// Config holds client construction parameters.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the persistence API.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
}

// New creates a client. The limiter is unlimited by default; retries are
// disabled deliberately.
func New(cfg Config) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "DesignExplorer/1.0").
		SetRetryCount(0)

	return &Client{
		resty:   rc,
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
}

// SetRateLimit caps outgoing requests per second; rps <= 0 removes the cap.
func (c *Client) SetRateLimit(rps float64) {
	if rps <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 0)
		return
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
}

func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	return c.resty.R().SetContext(ctx), nil
}

func remoteError(op string, resp *resty.Response) error {
	body := strings.TrimSpace(resp.String())
	if body == "" {
		body = "request failed"
	}
	return fmt.Errorf("%s: %s: %s", op, resp.Status(), body)
}

// Scrape requests candidate room photos for a listing URL.
func (c *Client) Scrape(ctx context.Context, listingURL string) ([]ScrapedImage, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	var out scrapeResponse
	resp, err := req.
		SetBody(map[string]string{"url": listingURL}).
		SetResult(&out).
		Post("/images/scrape")
	if err != nil {
		return nil, fmt.Errorf("scrape listing: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, remoteError("scrape listing", resp)
	}
	if len(out.Data) == 0 {
		return nil, fmt.Errorf("scrape listing: no images returned")
	}
	return out.Data, nil
}

// CreateSession creates a durable session with one view per seed. The
// returned views correspond positionally to the seeds.
func (c *Client) CreateSession(ctx context.Context, listingURL string, seeds []ViewSeed) (*CreateSessionResult, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	var out CreateSessionResult
	resp, err := req.
		SetBody(map[string]any{
			"property_url": listingURL,
			"views":        seeds,
		}).
		SetResult(&out).
		Post("/sessions")
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, remoteError("create session", resp)
	}
	return &out, nil
}

// FetchSessions lists the most recent saved sessions.
func (c *Client) FetchSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	var out sessionsResponse
	resp, err := req.
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&out).
		Get("/sessions")
	if err != nil {
		return nil, fmt.Errorf("fetch sessions: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, remoteError("fetch sessions", resp)
	}
	return out.Sessions, nil
}

// AppendChat appends one entry to a view's server-side transcript and
// returns the full authoritative history.
func (c *Client) AppendChat(ctx context.Context, viewID string, entry ChatAppend) (*ChatAppendResult, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	var out ChatAppendResult
	resp, err := req.
		SetBody(entry).
		SetResult(&out).
		Post(fmt.Sprintf("/views/%s/chat", viewID))
	if err != nil {
		return nil, fmt.Errorf("append chat: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, remoteError("append chat", resp)
	}
	return &out, nil
}

// UploadAsset posts a reference image as multipart form content.
func (c *Client) UploadAsset(ctx context.Context, viewID string, upload AssetUpload) (*AssetUploadResult, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	filename := upload.Filename
	if filename == "" {
		filename = "asset.png"
	}

	req.SetFormData(map[string]string{"name": upload.Name})
	if upload.Instructions != "" {
		req.SetFormData(map[string]string{"instructions": upload.Instructions})
	}

	var out AssetUploadResult
	resp, err := req.
		SetFileReader("file", filename, bytes.NewReader(upload.Content)).
		SetResult(&out).
		Post(fmt.Sprintf("/views/%s/assets", viewID))
	if err != nil {
		return nil, fmt.Errorf("upload asset: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, remoteError("upload asset", resp)
	}
	return &out, nil
}

// UpdateViewImage requests a generated transformation of the view's
// current image.
func (c *Client) UpdateViewImage(ctx context.Context, viewID string, gen GenerateRequest) (*GenerateResult, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	gen.ViewID = viewID
	var out generateResponse
	resp, err := req.
		SetBody(gen).
		SetResult(&out).
		Post("/images/generate")
	if err != nil {
		return nil, fmt.Errorf("update view image: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, remoteError("update view image", resp)
	}
	return &out.Data, nil
}

// RevertViewImage truncates the view's newest edit server-side and returns
// the authoritative surviving list.
func (c *Client) RevertViewImage(ctx context.Context, viewID string) (*RevertResult, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	var out revertResponse
	resp, err := req.
		SetResult(&out).
		Post(fmt.Sprintf("/views/%s/revert", viewID))
	if err != nil {
		return nil, fmt.Errorf("revert view image: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, remoteError("revert view image", resp)
	}
	return &out.Data, nil
}

// DeleteAsset removes an asset from a view's library.
func (c *Client) DeleteAsset(ctx context.Context, viewID, assetID string) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Delete(fmt.Sprintf("/views/%s/assets/%s", viewID, assetID))
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if !resp.IsSuccess() {
		return remoteError("delete asset", resp)
	}
	return nil
}

// DeleteView removes a view and everything the server stores for it.
func (c *Client) DeleteView(ctx context.Context, viewID string) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Delete(fmt.Sprintf("/views/%s", viewID))
	if err != nil {
		return fmt.Errorf("delete view: %w", err)
	}
	if !resp.IsSuccess() {
		return remoteError("delete view", resp)
	}
	return nil
}

// DeleteSession removes a saved session.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Delete(fmt.Sprintf("/sessions/%s", sessionID))
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if !resp.IsSuccess() {
		return remoteError("delete session", resp)
	}
	return nil
}
