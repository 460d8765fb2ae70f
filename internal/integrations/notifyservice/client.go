package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для отправки событий в сервис уведомлений
// Доставка уведомлений остается внешней заботой: движок бронирования лишь
// публикует события и переживает недоступность сервиса
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет событие в сервис уведомлений
func (c *Client) Send(ctx context.Context, n *Notification) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// SendWithGracefulDegradation отправляет событие с graceful degradation:
// при недоступности сервиса возвращает ErrServiceDegraded, чтобы
// вызывающий код залогировал потерю и продолжил работу
func (c *Client) SendWithGracefulDegradation(ctx context.Context, n *Notification) error {
	if err := c.Send(ctx, n); err != nil {
		c.log.Error("NotifyService unavailable, dropping %s for user=%d booking=%d: %v",
			n.Event, n.UserID, n.BookingID, err)
		return fmt.Errorf("%w: event=%s user=%d, error=%v", ErrServiceDegraded, n.Event, n.UserID, err)
	}

	c.log.Info("Notification %s delivered for user=%d booking=%d", n.Event, n.UserID, n.BookingID)
	return nil
}
