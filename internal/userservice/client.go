package userservice

import (
	"context"
	"strings"

	"github.com/shandysiswandi/usere2e/internal/restfacade"
)

// UsersPath is the user collection endpoint, relative to the service base URL.
const UsersPath = "/user-service/api/users"

// Client talks to the user service through a REST facade.
type Client struct {
	baseURL string
	facade  restfacade.Facade
}

// NewClient returns a Client for the service reachable at baseURL.
func NewClient(baseURL string, facade restfacade.Facade) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		facade:  facade,
	}
}

// UsersURL returns the absolute URL of the user collection.
func (c *Client) UsersURL() string {
	return c.baseURL + UsersPath
}

// CreateUser posts req and returns the raw response, whatever its status.
// The body is exposed as a string only; it is not checked against a schema.
func (c *Client) CreateUser(ctx context.Context, req UserCreationRequest) (*restfacade.Response, error) {
	return c.facade.Post(ctx, c.UsersURL(), req, nil)
}

// GetUser fetches a user by the identifier the service assigned to it.
func (c *Client) GetUser(ctx context.Context, id string, out any) (*restfacade.Response, error) {
	return c.facade.Get(ctx, c.UsersURL()+"/"+id, out)
}

// Ping issues a GET on the base URL. Any answered request counts as reachable.
func (c *Client) Ping(ctx context.Context) (*restfacade.Response, error) {
	return c.facade.Get(ctx, c.baseURL, nil)
}
