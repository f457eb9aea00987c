// Package ticketmaster реализует клиент внешнего API событий Ticketmaster
// Discovery v2. Клиент возвращает сырые ответы API; приведение к внутренней
// схеме выполняется слоем бизнес-логики.
package ticketmaster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// ErrTimeout возвращается, когда внешний API не ответил за отведённое время.
var ErrTimeout = errors.New("upstream request timeout")

// APIError — ошибка обращения к внешнему API: транспортная либо HTTP-статус
// с сообщением из ответа.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("upstream request failed: %s", e.Message)
	}
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

// Client — HTTP-клиент Discovery API с фиксированным таймаутом.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт новый клиент Ticketmaster Discovery API.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SearchEvents выполняет запрос GET /events.json с переданными параметрами.
// Ключ API добавляется к параметрам автоматически.
func (c *Client) SearchEvents(ctx context.Context, params url.Values) (*SearchResponse, error) {
	body, err := c.get(ctx, "/events.json", params)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &APIError{Message: "failed to decode upstream response"}
	}
	return &resp, nil
}

// GetEvent выполняет запрос GET /events/{id}.json и возвращает сырое тело события.
func (c *Client) GetEvent(ctx context.Context, eventID string) (json.RawMessage, error) {
	return c.get(ctx, "/events/"+url.PathEscape(eventID)+".json", url.Values{})
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	params.Set("apikey", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, ErrTimeout
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    upstreamDetail(body, resp.Status),
		}
	}
	return body, nil
}

// upstreamDetail пытается извлечь текст ошибки из тела ответа Discovery API,
// иначе возвращает HTTP-статус.
func upstreamDetail(body []byte, fallback string) string {
	var payload struct {
		Fault *struct {
			FaultString string `json:"faultstring"`
		} `json:"fault"`
		Errors []struct {
			Detail string `json:"detail"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Fault != nil && payload.Fault.FaultString != "" {
			return payload.Fault.FaultString
		}
		if len(payload.Errors) > 0 && payload.Errors[0].Detail != "" {
			return payload.Errors[0].Detail
		}
	}
	return fallback
}
