package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
)

// Client клиент сервиса уведомлений.
// Форматирование и доставка сообщений (Discord и т.д.) - на стороне сервиса,
// клиент передаёт только тип события и параметры.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Notify отправляет событие очереди в сервис уведомлений
func (c *Client) Notify(ctx context.Context, event domain.QueueEvent) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	body, err := json.Marshal(notifyRequest{
		Type:            string(event.Type),
		CustomerID:      event.CustomerID,
		PackageName:     event.PackageName,
		AppointmentTime: event.AppointmentTime,
		RoomCode:        event.RoomCode,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
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
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// NotifyBestEffort отправляет событие без влияния на основной сценарий.
// Недоступность сервиса уведомлений не должна ломать запись на слот -
// ошибка только логируется.
func (c *Client) NotifyBestEffort(ctx context.Context, event domain.QueueEvent) {
	if err := c.Notify(ctx, event); err != nil {
		c.log.Error("Failed to deliver %s notification: %v", event.Type, err)
		return
	}
	c.log.Info("Notification %s delivered", event.Type)
}
