package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/netx"
)

// Operation names, used in errors and by Message.
const (
	OpLogin    = "login"
	OpRegister = "register"
	OpList     = "list items"
	OpCreate   = "create item"
	OpUpdate   = "update item"
	OpDelete   = "delete item"
)

// HTTPClient talks to the inventory service's REST endpoints.
// It is safe for concurrent use; per-call tokens travel in the context
// (see WithToken).
type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client rooted at baseURL. A zero timeout means
// requests are bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Login(ctx context.Context, name, password string) (LoginResult, error) {
	resp, err := c.do(ctx, OpLogin, http.MethodPost, "/auth/login", "", loginRequest{Name: name, Password: password})
	if err != nil {
		return LoginResult{}, err
	}
	if !resp.OK() {
		// any rejection of a login is a credentials problem unless the
		// service itself failed
		if resp.Status >= 500 {
			return LoginResult{}, c.mapStatus(OpLogin, resp)
		}
		return LoginResult{}, &APIError{Op: OpLogin, Status: resp.Status, Message: errorText(resp.Body), Kind: ErrAuth}
	}

	var lr loginResponse
	if err := json.Unmarshal(resp.Body, &lr); err != nil || lr.Token == "" {
		return LoginResult{}, malformed(OpLogin, resp.Status, err)
	}

	res := LoginResult{Token: lr.Token, Name: name, Role: models.RoleUser}
	if lr.User != nil {
		if lr.User.Name != "" {
			res.Name = lr.User.Name
		}
		res.Role = parseRoleOrUser(lr.User.UserType)
	}
	return res, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, password string) (RegisterResult, error) {
	req := registerRequest{Name: name, Password: password, UserType: models.RoleUser.String()}
	resp, err := c.do(ctx, OpRegister, http.MethodPost, "/auth/register", "", req)
	if err != nil {
		return RegisterResult{}, err
	}
	if !resp.OK() {
		return RegisterResult{}, c.mapStatus(OpRegister, resp)
	}

	var rr registerResponse
	if err := json.Unmarshal(resp.Body, &rr); err != nil || rr.Token == "" {
		return RegisterResult{}, malformed(OpRegister, resp.Status, err)
	}
	return RegisterResult{Token: rr.Token, Message: rr.Message}, nil
}

// ListItems fetches the whole inventory. Every failure is a *FetchError.
func (c *HTTPClient) ListItems(ctx context.Context) ([]models.Item, error) {
	resp, err := c.do(ctx, OpList, http.MethodGet, "/electronics/all-items", tokenFrom(ctx), nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	if !resp.OK() {
		return nil, &FetchError{Err: c.mapStatus(OpList, resp)}
	}

	items, err := decodeItems(resp.Body)
	if err != nil {
		return nil, &FetchError{Err: malformed(OpList, resp.Status, err)}
	}
	return items, nil
}

func (c *HTTPClient) CreateItem(ctx context.Context, in models.ItemInput) (models.Item, error) {
	resp, err := c.do(ctx, OpCreate, http.MethodPost, "/electronics/add-electronics", tokenFrom(ctx), newItemRequest(in))
	if err != nil {
		return models.Item{}, err
	}
	if !resp.OK() {
		return models.Item{}, c.mapStatus(OpCreate, resp)
	}

	if it, ok := decodeItem(resp.Body); ok {
		return it, nil
	}
	// created without an echoed record; callers reload anyway
	return models.Item{}.WithInput(in), nil
}

func (c *HTTPClient) UpdateItem(ctx context.Context, id string, in models.ItemInput) (models.Item, error) {
	if id == "" {
		return models.Item{}, &APIError{Op: OpUpdate, Message: "missing item id", Kind: ErrValidation}
	}
	resp, err := c.do(ctx, OpUpdate, http.MethodPut, itemPath(id, "update"), tokenFrom(ctx), newItemRequest(in))
	if err != nil {
		return models.Item{}, err
	}
	if !resp.OK() {
		return models.Item{}, c.mapStatus(OpUpdate, resp)
	}

	if it, ok := decodeItem(resp.Body); ok {
		return it, nil
	}
	return models.Item{ID: id}.WithInput(in), nil
}

func (c *HTTPClient) DeleteItem(ctx context.Context, id string) error {
	if id == "" {
		return &APIError{Op: OpDelete, Message: "missing item id", Kind: ErrValidation}
	}
	resp, err := c.do(ctx, OpDelete, http.MethodDelete, itemPath(id, "delete"), tokenFrom(ctx), nil)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return c.mapStatus(OpDelete, resp)
	}
	return nil
}

func itemPath(id, action string) string {
	return "/electronics/" + url.PathEscape(id) + "-" + action
}

func (c *HTTPClient) do(ctx context.Context, op, method, path, token string, body any) (*netx.Response, error) {
	resp, err := netx.DoJSON(ctx, c.hc, method, c.baseURL+path, token, body)
	if err != nil {
		return nil, c.mapError(op, err)
	}
	return resp, nil
}

// mapError classifies a call that produced no response.
func (c *HTTPClient) mapError(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return &APIError{Op: op, Kind: ErrNetwork, Err: err}
}

// mapStatus classifies a non-2xx response.
func (c *HTTPClient) mapStatus(op string, resp *netx.Response) error {
	e := &APIError{Op: op, Status: resp.Status, Message: errorText(resp.Body)}
	switch {
	case resp.Status == http.StatusUnauthorized, resp.Status == http.StatusForbidden:
		e.Kind = ErrAuth
	case resp.Status == http.StatusNotFound:
		e.Kind = ErrNotFound
	case resp.Status >= 500:
		e.Kind = ErrServer
	default:
		e.Kind = ErrValidation
	}
	return e
}

func malformed(op string, status int, err error) error {
	if err == nil {
		err = errMalformed
	}
	return &APIError{Op: op, Status: status, Kind: ErrServer, Err: err}
}

func errorText(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return ""
	}
	return er.text()
}
