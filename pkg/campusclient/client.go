package campusclient

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds non-streaming API calls.
const DefaultTimeout = 10 * time.Second

// Client talks to a CampusCraft server. The zero value is not usable; use New.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for the given server base URL, e.g.
// "https://api.campuscraft.example".
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// SetToken installs the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer token; subsequent requests are anonymous.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the currently installed bearer token, empty when anonymous.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}
