package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/BurntNail/sourisdb/cursor"
	"github.com/BurntNail/sourisdb/internal/errs"
	"github.com/BurntNail/sourisdb/souris"
	"github.com/BurntNail/sourisdb/store"
	jsoniter "github.com/json-iterator/go"
)

// Client is a thin HTTP client for a souris daemon's §6.2 surface.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a Client pointed at baseURL (e.g. "http://127.0.0.1:2256").
func NewClient(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTPClient: http.DefaultClient}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (*http.Response, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}

	return c.HTTPClient.Do(req)
}

func errorForStatus(resp *http.Response) error {
	if resp.StatusCode < 300 {
		return nil
	}

	msg, _ := io.ReadAll(resp.Body)
	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, errs.ErrDatabaseNotFound)
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w", msg, errs.ErrInvalidDatabaseName)
	default:
		return fmt.Errorf("daemon returned %s: %s", resp.Status, msg)
	}
}

// HealthCheck pings /healthcheck.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/healthcheck", nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return errorForStatus(resp)
}

// GetAllDBNames lists every registered database.
func (c *Client) GetAllDBNames(ctx context.Context) ([]string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v1/get_all_db_names", nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := errorForStatus(resp); err != nil {
		return nil, err
	}

	var names []string
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(resp.Body).Decode(&names); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrSerdeJSON, err)
	}

	return names, nil
}

// GetDB fetches name's Store.
func (c *Client) GetDB(ctx context.Context, name string) (*store.Store, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v1/get_db", url.Values{"db_name": {name}}, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := errorForStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return store.Deser(cursor.New(body))
}

// AddDB creates name, optionally overwriting an existing database.
func (c *Client) AddDB(ctx context.Context, name string, overwriteExisting bool) (created bool, err error) {
	resp, err := c.do(ctx, http.MethodPost, "/v1/add_db", url.Values{
		"db_name":            {name},
		"overwrite_existing": {boolQuery(overwriteExisting)},
	}, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if err := errorForStatus(resp); err != nil {
		return false, err
	}

	return resp.StatusCode == http.StatusCreated, nil
}

// AddDBWithContent creates or replaces/merges name with contents.
func (c *Client) AddDBWithContent(ctx context.Context, name string, overwriteExisting bool, contents *store.Store) (created bool, err error) {
	resp, err := c.do(ctx, http.MethodPut, "/v1/add_db_with_content", url.Values{
		"db_name":            {name},
		"overwrite_existing": {boolQuery(overwriteExisting)},
	}, contents.Ser(nil))
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if err := errorForStatus(resp); err != nil {
		return false, err
	}

	return resp.StatusCode == http.StatusCreated, nil
}

// RemoveDB deletes name.
func (c *Client) RemoveDB(ctx context.Context, name string) error {
	resp, err := c.do(ctx, http.MethodPost, "/v1/rm_db", url.Values{"db_name": {name}}, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return errorForStatus(resp)
}

// AddKV upserts key in db with v.
func (c *Client) AddKV(ctx context.Context, dbName, key string, v souris.Value) (created bool, err error) {
	resp, err := c.do(ctx, http.MethodPut, "/v1/add_kv", url.Values{
		"db_name": {dbName},
		"key":     {key},
	}, v.Ser(nil))
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if err := errorForStatus(resp); err != nil {
		return false, err
	}

	return resp.StatusCode == http.StatusCreated, nil
}

// RemoveKey deletes key from db.
func (c *Client) RemoveKey(ctx context.Context, dbName, key string) error {
	resp, err := c.do(ctx, http.MethodPost, "/v1/rm_kv", url.Values{
		"db_name": {dbName},
		"key":     {key},
	}, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return errorForStatus(resp)
}

// GetValue fetches key from db.
func (c *Client) GetValue(ctx context.Context, dbName, key string) (souris.Value, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v1/get_value", url.Values{
		"db_name": {dbName},
		"key":     {key},
	}, nil)
	if err != nil {
		return souris.Value{}, err
	}
	defer resp.Body.Close()

	if err := errorForStatus(resp); err != nil {
		return souris.Value{}, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return souris.Value{}, err
	}

	return souris.Deser(cursor.New(body))
}

func boolQuery(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
