package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/alfredjeanlab/teamboard/internal/model"
)

// HTTPClient implements BoardClient using the teamboard HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Members ---

func (c *HTTPClient) CreateMember(ctx context.Context, name, email string) (*model.Member, error) {
	body := map[string]string{"name": name, "email": email}
	var m model.Member
	if err := c.doJSON(ctx, http.MethodPost, "/v1/members", body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) GetMember(ctx context.Context, id string) (*model.Member, error) {
	var m model.Member
	if err := c.doJSON(ctx, http.MethodGet, "/v1/members/"+url.PathEscape(id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) ListMembers(ctx context.Context) ([]*model.Member, error) {
	var resp struct {
		Members []*model.Member `json:"members"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/members", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Members, nil
}

func (c *HTTPClient) MemberItems(ctx context.Context, id string, today string) (*MemberItemsResponse, error) {
	path := "/v1/members/" + url.PathEscape(id) + "/items"
	if today != "" {
		path += "?today=" + url.QueryEscape(today)
	}
	var resp MemberItemsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Boards and groups ---

func (c *HTTPClient) CreateBoard(ctx context.Context, req *CreateBoardRequest) (*model.Board, error) {
	var b model.Board
	if err := c.doJSON(ctx, http.MethodPost, "/v1/boards", req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *HTTPClient) GetBoard(ctx context.Context, id string) (*model.Board, error) {
	var b model.Board
	if err := c.doJSON(ctx, http.MethodGet, "/v1/boards/"+url.PathEscape(id), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *HTTPClient) ListBoards(ctx context.Context) ([]*model.Board, error) {
	var resp struct {
		Boards []*model.Board `json:"boards"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/boards", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Boards, nil
}

func (c *HTTPClient) ClearBoardItems(ctx context.Context, boardID string) (int, error) {
	var resp struct {
		Removed int `json:"removed"`
	}
	if err := c.doJSON(ctx, http.MethodDelete, "/v1/boards/"+url.PathEscape(boardID)+"/items", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Removed, nil
}

func (c *HTTPClient) CreateGroup(ctx context.Context, boardID, name string, position *int) (*model.Group, error) {
	body := map[string]any{"name": name}
	if position != nil {
		body["position"] = *position
	}
	var g model.Group
	if err := c.doJSON(ctx, http.MethodPost, "/v1/boards/"+url.PathEscape(boardID)+"/groups", body, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *HTTPClient) ListGroups(ctx context.Context, boardID string) ([]*model.Group, error) {
	var resp struct {
		Groups []*model.Group `json:"groups"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/boards/"+url.PathEscape(boardID)+"/groups", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Groups, nil
}

func (c *HTTPClient) ReorderGroups(ctx context.Context, boardID string, order []string) ([]*model.Group, error) {
	body := map[string]any{"order": order}
	var resp struct {
		Groups []*model.Group `json:"groups"`
	}
	if err := c.doJSON(ctx, http.MethodPut, "/v1/boards/"+url.PathEscape(boardID)+"/groups/order", body, &resp); err != nil {
		return nil, err
	}
	return resp.Groups, nil
}

// --- Board views ---

func (c *HTTPClient) Lanes(ctx context.Context, boardID string) (*LanesResponse, error) {
	var resp LanesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/boards/"+url.PathEscape(boardID)+"/lanes", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Timeline(ctx context.Context, boardID, today string) (*TimelineResponse, error) {
	path := "/v1/boards/" + url.PathEscape(boardID) + "/timeline"
	if today != "" {
		path += "?today=" + url.QueryEscape(today)
	}
	var resp TimelineResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Workload(ctx context.Context, boardID, from, to, today string) (*WorkloadResponse, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	if today != "" {
		q.Set("today", today)
	}
	path := "/v1/boards/" + url.PathEscape(boardID) + "/workload?" + q.Encode()
	var resp WorkloadResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Item CRUD ---

func (c *HTTPClient) CreateItem(ctx context.Context, req *CreateItemRequest) (*ItemDetail, error) {
	var it ItemDetail
	if err := c.doJSON(ctx, http.MethodPost, "/v1/items", req, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *HTTPClient) GetItem(ctx context.Context, id string) (*ItemDetail, error) {
	var it ItemDetail
	if err := c.doJSON(ctx, http.MethodGet, "/v1/items/"+url.PathEscape(id), nil, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *HTTPClient) ListItems(ctx context.Context, req *ListItemsRequest) ([]*model.Item, error) {
	q := url.Values{}
	if req.Board != "" {
		q.Set("board", req.Board)
	}
	if req.Group != "" {
		q.Set("group", req.Group)
	}
	if len(req.Status) > 0 {
		q.Set("status", strings.Join(req.Status, ","))
	}
	if req.AssignedTo != "" {
		q.Set("assigned_to", req.AssignedTo)
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}

	path := "/v1/items"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp struct {
		Items []*model.Item `json:"items"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *HTTPClient) UpdateItem(ctx context.Context, id string, req *UpdateItemRequest) (*ItemDetail, error) {
	var it ItemDetail
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/items/"+url.PathEscape(id), req, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *HTTPClient) DeleteItem(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/items/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) AdvanceItem(ctx context.Context, id string) (*ItemDetail, error) {
	var it ItemDetail
	if err := c.doJSON(ctx, http.MethodPost, "/v1/items/"+url.PathEscape(id)+"/advance", nil, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *HTTPClient) ItemBlocked(ctx context.Context, id string) (bool, error) {
	var resp struct {
		Blocked bool `json:"blocked"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/items/"+url.PathEscape(id)+"/blocked", nil, &resp); err != nil {
		return false, err
	}
	return resp.Blocked, nil
}

// --- Relations ---

func (c *HTTPClient) Assign(ctx context.Context, itemID, memberID string) ([]string, error) {
	body := map[string]string{"member_id": memberID}
	var resp struct {
		Assignees []string `json:"assignees"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/items/"+url.PathEscape(itemID)+"/assignees", body, &resp); err != nil {
		return nil, err
	}
	return resp.Assignees, nil
}

func (c *HTTPClient) Unassign(ctx context.Context, itemID, memberID string) error {
	path := "/v1/items/" + url.PathEscape(itemID) + "/assignees/" + url.PathEscape(memberID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (c *HTTPClient) Assignees(ctx context.Context, itemID string) ([]string, error) {
	var resp struct {
		Assignees []string `json:"assignees"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/items/"+url.PathEscape(itemID)+"/assignees", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Assignees, nil
}

func (c *HTTPClient) AddDependency(ctx context.Context, itemID, dependsOn string) ([]string, error) {
	body := map[string]string{"depends_on": dependsOn}
	var resp struct {
		DependsOn []string `json:"depends_on"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/items/"+url.PathEscape(itemID)+"/dependencies", body, &resp); err != nil {
		return nil, err
	}
	return resp.DependsOn, nil
}

func (c *HTTPClient) RemoveDependency(ctx context.Context, itemID, dependsOn string) error {
	path := "/v1/items/" + url.PathEscape(itemID) + "/dependencies/" + url.PathEscape(dependsOn)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (c *HTTPClient) ClearDependencies(ctx context.Context, itemID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/items/"+url.PathEscape(itemID)+"/dependencies", nil, nil)
}

func (c *HTTPClient) Dependencies(ctx context.Context, itemID string) (*DependenciesResponse, error) {
	var resp DependenciesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/items/"+url.PathEscape(itemID)+"/dependencies", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Snapshot ---

func (c *HTTPClient) ExportSnapshot(ctx context.Context) (*model.Snapshot, error) {
	snap := model.NewSnapshot()
	if err := c.doJSON(ctx, http.MethodGet, "/v1/snapshot", nil, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (c *HTTPClient) ImportSnapshot(ctx context.Context, snap *model.Snapshot) (*ImportCounts, error) {
	var counts ImportCounts
	if err := c.doJSON(ctx, http.MethodPost, "/v1/snapshot", snap, &counts); err != nil {
		return nil, err
	}
	return &counts, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content, success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
