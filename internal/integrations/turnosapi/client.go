package turnosapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const maxResponseBytes = 4 << 20

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент REST API барбершопа
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger

	mu    sync.RWMutex
	token string
}

// NewClient создает новый экземпляр клиента. baseURL без суффикса /api
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SetToken токен сессии администратора для защищенных маршрутов
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ListAppointments все записи
func (c *Client) ListAppointments(ctx context.Context) ([]*domain.Appointment, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/turnos", nil)
	if err != nil {
		return nil, err
	}
	list, err := decodeAppointmentList(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode appointments: %v", ErrInvalidResponse, err)
	}
	return list, nil
}

// ListByEmail записи клиента
func (c *Client) ListByEmail(ctx context.Context, email string) ([]*domain.Appointment, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/turnos/email/"+url.PathEscape(strings.TrimSpace(email)), nil)
	if err != nil {
		return nil, err
	}
	list, err := decodeAppointmentList(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode appointments: %v", ErrInvalidResponse, err)
	}
	return list, nil
}

// CreateAppointment создает запись
func (c *Client) CreateAppointment(ctx context.Context, in *AppointmentInput) (*domain.Appointment, error) {
	return c.appointmentCall(ctx, http.MethodPost, "/api/turnos", in)
}

// ReplaceAppointment полная замена записи (администратор)
func (c *Client) ReplaceAppointment(ctx context.Context, id string, in *AppointmentInput) (*domain.Appointment, error) {
	return c.appointmentCall(ctx, http.MethodPut, "/api/turnos/"+url.PathEscape(id), in)
}

// RescheduleAppointment перенос записи клиентом
func (c *Client) RescheduleAppointment(ctx context.Context, id string, in *RescheduleInput) (*domain.Appointment, error) {
	return c.appointmentCall(ctx, http.MethodPut, "/api/turnos/editar/"+url.PathEscape(id), in)
}

// CancelAppointment отмена записи клиентом
func (c *Client) CancelAppointment(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/turnos/cancelar/"+url.PathEscape(id), nil)
	return err
}

// DeleteAppointment удаление записи администратором
func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/turnos/"+url.PathEscape(id), nil)
	return err
}

// ListBlockedDays закрытые дни
func (c *Client) ListBlockedDays(ctx context.Context) ([]*domain.BlockedDay, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/dias-no-disponibles", nil)
	if err != nil {
		return nil, err
	}

	var dtos []blockedDayDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("%w: failed to decode blocked days: %v", ErrInvalidResponse, err)
	}

	days := make([]*domain.BlockedDay, 0, len(dtos))
	for i := range dtos {
		days = append(days, dtos[i].toDomain())
	}
	return days, nil
}

// BlockDay закрывает времена даты. Пустой список закрывает весь день
func (c *Client) BlockDay(ctx context.Context, date string, times []string) (*domain.BlockedDay, error) {
	if times == nil {
		times = []string{}
	}
	body, err := c.do(ctx, http.MethodPost, "/api/dias-no-disponibles", blockDayInput{Date: date, BlockedTimes: times})
	if err != nil {
		return nil, err
	}

	var dto blockedDayDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("%w: failed to decode blocked day: %v", ErrInvalidResponse, err)
	}
	return dto.toDomain(), nil
}

// UnblockDay открывает одно время или, при пустом t, весь день
func (c *Client) UnblockDay(ctx context.Context, date, t string) error {
	in := unblockInput{Date: date}
	if t != "" {
		in.Time = &t
	}
	_, err := c.do(ctx, http.MethodDelete, "/api/dias-no-disponibles", in)
	return err
}

// AvailableSlots свободные слоты по данным сервера
func (c *Client) AvailableSlots(ctx context.Context, date, excludeID string) (*AvailableSlots, error) {
	query := url.Values{}
	query.Set("fecha", date)
	if excludeID != "" {
		query.Set("excluir", excludeID)
	}

	body, err := c.do(ctx, http.MethodGet, "/api/turnos/disponibles?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var slots AvailableSlots
	if err := json.Unmarshal(body, &slots); err != nil {
		return nil, fmt.Errorf("%w: failed to decode slots: %v", ErrInvalidResponse, err)
	}
	return &slots, nil
}

// GetSchedule рабочий день и сетка слотов
func (c *Client) GetSchedule(ctx context.Context) (*Schedule, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/horario", nil)
	if err != nil {
		return nil, err
	}

	var schedule Schedule
	if err := json.Unmarshal(body, &schedule); err != nil {
		return nil, fmt.Errorf("%w: failed to decode schedule: %v", ErrInvalidResponse, err)
	}
	return &schedule, nil
}

// Login открывает сессию администратора и запоминает токен
func (c *Client) Login(ctx context.Context, password string) (*Session, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/admin/login", loginInput{Password: password})
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("%w: failed to decode session: %v", ErrInvalidResponse, err)
	}
	c.SetToken(session.Token)

	c.log.Info("Admin session opened, expires at %s", session.ExpiresAt.Format(time.RFC3339))
	return &session, nil
}

// Logout закрывает сессию администратора
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodPost, "/api/admin/logout", nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *Client) appointmentCall(ctx context.Context, method, path string, in interface{}) (*domain.Appointment, error) {
	body, err := c.do(ctx, method, path, in)
	if err != nil {
		return nil, err
	}

	var dto appointmentDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("%w: failed to decode appointment: %v", ErrInvalidResponse, err)
	}
	return dto.toDomain(), nil
}

// do выполняет запрос и возвращает тело успешного ответа
func (c *Client) do(ctx context.Context, method, path string, in interface{}) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %v", ErrTransport, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("%s %s - request failed: %v", method, path, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrTransport, err)
	}

	// Обработка статус-кодов
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body), kind: kindForStatus(resp.StatusCode)}
	if resp.StatusCode >= http.StatusInternalServerError {
		c.log.Error("%s %s - server error: %v", method, path, apiErr)
	} else {
		c.log.Warn("%s %s - refused: %v", method, path, apiErr)
	}
	return nil, apiErr
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrPolicy
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return ErrServer
	}
}

// errorMessage текст из {"error": "..."} или {"message": "..."}, иначе само тело
func errorMessage(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		if msg := firstNonEmpty(parsed.Error, parsed.Message); msg != "" {
			return msg
		}
	}
	return strings.TrimSpace(string(body))
}
