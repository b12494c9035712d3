package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// API endpoints of the prediction engine.
const (
	usersPath   = "/users.json"
	itemsPath   = "/items.json"
	actionsPath = "/actions/u2i.json"
	similarPath = "/engines/itemsim/%s/topn.json"
)

// Actions understood by the engine.
const (
	ActionView       = "view"
	ActionRate       = "rate"
	ActionConversion = "conversion"
)

// TransportError is a connection or timeout failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("engine %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError is a non-2xx response or a body that cannot be parsed.
type ProtocolError struct {
	Op     string
	Status int
	Msg    string
}

func (e *ProtocolError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("engine %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("engine %s: %s", e.Op, e.Msg)
}

func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

func IsProtocolError(err error) bool {
	var target *ProtocolError
	return errors.As(err, &target)
}

// Client talks to the item-similarity engine. All calls are bounded by
// one short timeout and are never retried: a lost action is acceptable,
// a stalled storefront request is not.
type Client struct {
	baseURL    string
	appKey     string
	engineName string
	http       *http.Client
}

func NewClient(baseURL, appKey, engineName string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		appKey:     appKey,
		engineName: engineName,
		http:       &http.Client{Timeout: timeout},
	}
}

func (c *Client) RegisterUser(ctx context.Context, customerID int64) error {
	form := url.Values{}
	form.Set("pio_appkey", c.appKey)
	form.Set("pio_uid", strconv.FormatInt(customerID, 10))
	return c.post(ctx, usersPath, form)
}

func (c *Client) RegisterItem(ctx context.Context, itemID int64, itemTypes string) error {
	form := url.Values{}
	form.Set("pio_appkey", c.appKey)
	form.Set("pio_iid", strconv.FormatInt(itemID, 10))
	form.Set("pio_itypes", itemTypes)
	return c.post(ctx, itemsPath, form)
}

// RecordAction records a user-to-item action. The rate value is only
// sent for the rate action.
func (c *Client) RecordAction(ctx context.Context, customerID, itemID int64, action string, rate int) error {
	form := url.Values{}
	form.Set("pio_appkey", c.appKey)
	form.Set("pio_uid", strconv.FormatInt(customerID, 10))
	form.Set("pio_iid", strconv.FormatInt(itemID, 10))
	form.Set("pio_action", action)
	if action == ActionRate {
		form.Set("pio_rate", strconv.Itoa(rate))
	}
	return c.post(ctx, actionsPath, form)
}

// QuerySimilar asks the engine for the top n items similar to itemID,
// optionally restricted to the given item types. A response without
// the pio_iids field means the engine has nothing to recommend; that
// is a nil result, not an error.
func (c *Client) QuerySimilar(ctx context.Context, itemID int64, n int, itemTypes string) ([]int64, error) {
	q := url.Values{}
	q.Set("pio_iid", strconv.FormatInt(itemID, 10))
	q.Set("pio_n", strconv.Itoa(n))
	q.Set("pio_appkey", c.appKey)
	if itemTypes != "" {
		q.Set("pio_itypes", itemTypes)
	}
	endpoint := c.baseURL + fmt.Sprintf(similarPath, url.PathEscape(c.engineName)) + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Op: "query similar", Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "query similar", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProtocolError{Op: "query similar", Status: resp.StatusCode}
	}

	var body struct {
		IIDs []any `json:"pio_iids"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &ProtocolError{Op: "query similar", Msg: "malformed response body"}
	}
	if body.IIDs == nil {
		return nil, nil
	}

	ids := make([]int64, 0, len(body.IIDs))
	for _, raw := range body.IIDs {
		id, err := coerceItemID(raw)
		if err != nil {
			return nil, &ProtocolError{Op: "query similar", Msg: err.Error()}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// The engine serialises item IDs as numbers or strings depending on
// version.
func coerceItemID(v any) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		id, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("bad item id %q", t)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("bad item id type %T", v)
	}
}

func (c *Client) post(ctx context.Context, path string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return &TransportError{Op: "post " + path, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "post " + path, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ProtocolError{Op: "post " + path, Status: resp.StatusCode}
	}
	return nil
}
