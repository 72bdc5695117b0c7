package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Zuo-Peng/thinktube/internal/logger"
)

const (
	EndpointVideoInfo  = "/get_youtube_video_info"
	EndpointInitialize = "/initialize_video"
	EndpointQuery      = "/quick_query"
)

// VideoInfo is the metadata returned when a video is registered. Fields
// holds the whole payload; VideoID and Status are lifted out of it.
type VideoInfo struct {
	VideoID string
	Status  string
	Fields  map[string]any
}

type Options struct {
	// Timeout bounds each request. Zero leaves requests unbounded.
	Timeout time.Duration
	// SendVideoID adds the loaded video id to /quick_query and
	// /initialize_video. The stock backend tracks the current video itself
	// and ignores it.
	SendVideoID bool
	HTTPClient  *http.Client
}

type Client struct {
	baseURL     string
	sendVideoID bool
	httpClient  *http.Client
}

func NewClient(baseURL string, opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		sendVideoID: opts.SendVideoID,
		httpClient:  hc,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type videoInfoRequest struct {
	VideoID string `json:"video_id"`
}

type queryRequest struct {
	Question string `json:"question"`
	VideoID  string `json:"video_id,omitempty"`
}

// VideoInfo registers the video behind rawURL with the backend. The raw URL,
// not the extracted id, goes in the video_id field.
func (c *Client) VideoInfo(ctx context.Context, rawURL string) (*VideoInfo, error) {
	status, payload, err := c.postJSON(ctx, EndpointVideoInfo, videoInfoRequest{VideoID: rawURL}, true)
	if err != nil {
		return nil, err
	}
	if err := checkPayload(EndpointVideoInfo, status, payload); err != nil {
		return nil, err
	}

	info := &VideoInfo{Fields: payload}
	info.VideoID, _ = payload["video_id"].(string)
	info.Status, _ = payload["status"].(string)
	return info, nil
}

// InitializeVideo asks the backend to warm up the current video. Only the
// HTTP status is checked.
func (c *Client) InitializeVideo(ctx context.Context, videoID string) error {
	var body any
	if c.sendVideoID && videoID != "" {
		body = videoInfoRequest{VideoID: videoID}
	}
	status, _, err := c.postJSON(ctx, EndpointInitialize, body, false)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return &BackendError{Endpoint: EndpointInitialize, StatusCode: status, Message: http.StatusText(status)}
	}
	return nil
}

// Ask sends a question about the current video and returns the answer.
func (c *Client) Ask(ctx context.Context, question, videoID string) (string, error) {
	req := queryRequest{Question: question}
	if c.sendVideoID {
		req.VideoID = videoID
	}
	status, payload, err := c.postJSON(ctx, EndpointQuery, req, true)
	if err != nil {
		return "", err
	}
	if err := checkPayload(EndpointQuery, status, payload); err != nil {
		return "", err
	}
	answer, ok := payload["answer"].(string)
	if !ok {
		return "", &TransportError{Endpoint: EndpointQuery, Err: errors.New("response has no answer")}
	}
	return answer, nil
}

// Ping checks that the base URL answers at all.
func (c *Client) Ping(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return 0, &TransportError{Endpoint: "/", Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &TransportError{Endpoint: "/", Err: err}
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// postJSON sends body (nil for an empty request) and, when decode is set,
// decodes the response as a JSON object.
func (c *Client) postJSON(ctx context.Context, endpoint string, body any, decode bool) (int, map[string]any, error) {
	log := logger.NewRequestLogger().With("endpoint", endpoint)
	start := time.Now()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, reader)
	if err != nil {
		return 0, nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("request failed", "error", err, "duration", time.Since(start))
		return 0, nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("read response: %w", err)}
	}
	log.Debug("request done", "status", resp.StatusCode, "bytes", len(respBody), "duration", time.Since(start))

	if !decode {
		return resp.StatusCode, nil, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return 0, nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	return resp.StatusCode, payload, nil
}

// checkPayload turns a non-2xx status or an "error" field into a BackendError.
func checkPayload(endpoint string, status int, payload map[string]any) error {
	msg, hasErr := payload["error"]
	if hasErr && msg != nil {
		return &BackendError{Endpoint: endpoint, StatusCode: status, Message: fmt.Sprint(msg)}
	}
	if status < 200 || status > 299 {
		return &BackendError{Endpoint: endpoint, StatusCode: status, Message: http.StatusText(status)}
	}
	return nil
}
