// pkg/client 是后端 API 的 Go 客户端：封装认证与 RCA/节点操作，
// 并提供"变更后全量刷新"的同步控制器和树形 HTML 渲染。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"rca-backend/internal/models"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// APIError 携带服务端返回的状态码与错误信息
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken 设置后续请求使用的 Bearer 令牌
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp models.UserResponse
	req := models.UserLoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return resp.User, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	var resp models.UserResponse
	req := models.UserRegisterRequest{Username: username, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return resp.User, nil
}

func (c *Client) ListRcas(ctx context.Context) ([]models.Rca, error) {
	var resp struct {
		Rcas []models.Rca `json:"rcas"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/rcas", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Rcas, nil
}

func (c *Client) CreateRca(ctx context.Context, req *models.RcaCreateRequest) (*models.Rca, error) {
	var resp struct {
		Rca *models.Rca `json:"rca"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/rcas", req, &resp); err != nil {
		return nil, err
	}
	return resp.Rca, nil
}

// GetRca 获取 RCA 及其组装好的完整 why 树
func (c *Client) GetRca(ctx context.Context, rcaID uint) (*models.RcaDetail, error) {
	var resp struct {
		Rca *models.RcaDetail `json:"rca"`
	}
	path := fmt.Sprintf("/api/rcas/%d", rcaID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Rca, nil
}

func (c *Client) CreateNode(ctx context.Context, rcaID uint, req *models.WhyNodeCreateRequest) (*models.WhyNode, error) {
	var resp struct {
		Node *models.WhyNode `json:"node"`
	}
	path := fmt.Sprintf("/api/rcas/%d/nodes", rcaID)
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return resp.Node, nil
}

func (c *Client) UpdateNode(ctx context.Context, nodeID uint, req *models.WhyNodeUpdateRequest) (*models.WhyNode, error) {
	var resp struct {
		Node *models.WhyNode `json:"node"`
	}
	path := fmt.Sprintf("/api/nodes/%d", nodeID)
	if err := c.do(ctx, http.MethodPatch, path, req, &resp); err != nil {
		return nil, err
	}
	return resp.Node, nil
}

func (c *Client) DeleteNode(ctx context.Context, nodeID uint) error {
	path := fmt.Sprintf("/api/nodes/%d", nodeID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp models.ErrorResponse
		message := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			message = errResp.Error
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
