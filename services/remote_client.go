package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-pos/models"
)

// RemoteClient talks to the central REST API. Every call is a single
// round trip: no retry, no backoff.
type RemoteClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemoteClient builds a client for baseURL. A zero timeout keeps the
// transport defaults.
func NewRemoteClient(baseURL string, timeout time.Duration) *RemoteClient {
	return &RemoteClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the API root the client was built with.
func (rc *RemoteClient) BaseURL() string {
	return rc.baseURL
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func (rc *RemoteClient) do(ctx context.Context, method, path string, headers map[string]string, body interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rc.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := rc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return nil, &RemoteError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, decodeErr)
	}
	return &env, nil
}

// fetchList GETs path and decodes the data field, which must be a JSON array.
func fetchList[T any](ctx context.Context, rc *RemoteClient, path string, headers map[string]string) ([]T, error) {
	env, err := rc.do(ctx, http.MethodGet, path, headers, nil)
	if err != nil {
		return nil, err
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("%w: data is not an array", ErrMalformedResponse)
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return out, nil
}

func (rc *RemoteClient) FetchStores(ctx context.Context, organizationID string) ([]models.Store, error) {
	return fetchList[models.Store](ctx, rc, "/store/getStore", map[string]string{
		"organization-id": organizationID,
	})
}

func (rc *RemoteClient) FetchRoles(ctx context.Context, storeID string) ([]models.Role, error) {
	return fetchList[models.Role](ctx, rc, "/roles/"+url.PathEscape(storeID), nil)
}

func (rc *RemoteClient) FetchEmployees(ctx context.Context, storeID string) ([]models.Employee, error) {
	return fetchList[models.Employee](ctx, rc, "/employees/"+url.PathEscape(storeID), nil)
}

func (rc *RemoteClient) FetchCategories(ctx context.Context, storeID string) ([]models.Category, error) {
	return fetchList[models.Category](ctx, rc, "/category/get/"+url.PathEscape(storeID), nil)
}

func (rc *RemoteClient) FetchInventory(ctx context.Context, storeID string) ([]models.InventoryItem, error) {
	return fetchList[models.InventoryItem](ctx, rc, "/inventory/get/"+url.PathEscape(storeID), nil)
}

func (rc *RemoteClient) FetchDishes(ctx context.Context, storeID string) ([]models.Dish, error) {
	return fetchList[models.Dish](ctx, rc, "/dish/get/"+url.PathEscape(storeID), nil)
}

func (rc *RemoteClient) FetchDishInventory(ctx context.Context, dishID string) ([]models.DishInventory, error) {
	return fetchList[models.DishInventory](ctx, rc, "/dishInventory/get/"+url.PathEscape(dishID), nil)
}

func (rc *RemoteClient) FetchDishAddons(ctx context.Context, dishID string) ([]models.Addon, error) {
	return fetchList[models.Addon](ctx, rc, "/addon/get/"+url.PathEscape(dishID), nil)
}

func (rc *RemoteClient) FetchStoreAddons(ctx context.Context, storeID string) ([]models.Addon, error) {
	return fetchList[models.Addon](ctx, rc, "/addon/getAll/"+url.PathEscape(storeID), nil)
}

func (rc *RemoteClient) FetchCustomers(ctx context.Context, storeID string) ([]models.Customer, error) {
	return fetchList[models.Customer](ctx, rc, "/customer/get/"+url.PathEscape(storeID), nil)
}

func (rc *RemoteClient) FetchOrders(ctx context.Context, storeID string) ([]models.Order, error) {
	return fetchList[models.Order](ctx, rc, "/order/get/"+url.PathEscape(storeID), nil)
}

func (rc *RemoteClient) FetchTables(ctx context.Context, storeID string) ([]models.Table, error) {
	return fetchList[models.Table](ctx, rc, "/table/get/"+url.PathEscape(storeID), nil)
}

// Login posts the credentials and returns the identity found under data.
func (rc *RemoteClient) Login(ctx context.Context, email, pin string) (json.RawMessage, error) {
	env, err := rc.do(ctx, http.MethodPost, "/employee/login", nil, map[string]string{
		"email": email,
		"pin":   pin,
	})
	if err != nil {
		return nil, err
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, fmt.Errorf("%w: login answer has no data", ErrMalformedResponse)
	}
	return json.RawMessage(data), nil
}

// Send applies a mutation remotely. Only the status code matters.
func (rc *RemoteClient) Send(ctx context.Context, method, path string, body interface{}) error {
	_, err := rc.do(ctx, method, path, nil, body)
	if errors.Is(err, ErrMalformedResponse) {
		return nil
	}
	return err
}

func categoryDeletePath(id string) string { return "/category/delete/" + url.PathEscape(id) }
func categoryStatusPath(id string) string { return "/category/status/" + url.PathEscape(id) }
func dishDeletePath(id string) string     { return "/dish/delete/" + url.PathEscape(id) }
func addonDeletePath(id string) string    { return "/addon/delete/" + url.PathEscape(id) }
