package panel

import (
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hostbit/hostbit/config"
	"github.com/hostbit/hostbit/config/configkey"
	"github.com/hostbit/hostbit/pkg/panel/requests"
	"github.com/hostbit/hostbit/pkg/panel/responses"
	"github.com/sirupsen/logrus"
)

// APIError is a non-success response from the control plane, carrying the
// upstream status code so callers can surface it.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("panel returned status %d", e.StatusCode)
}

// Client is the slice of the hosting control plane the dashboard consumes.
type Client interface {
	GetUser(id int64) (*responses.User, error)
	FindUsersByEmail(email string) ([]responses.User, error)
	CreateUser(user requests.CreateUser) (*responses.User, error)
	CreateServer(server requests.CreateServer) (*responses.Server, error)
	DeleteServer(id int64) error
}

type HTTPClient struct {
	client *resty.Client
	domain string
}

// NewClient builds a client for the configured panel domain and application
// key. Both are required; the daemon cannot run without its control plane.
func NewClient() *HTTPClient {
	return NewClientWithCredentials(
		config.MustGetString(configkey.PanelDomain),
		config.MustGetString(configkey.PanelKey),
	)
}

func NewClientWithCredentials(domain string, key string) *HTTPClient {
	client := resty.New()
	client.SetAuthToken(key)
	client.SetHeader("Accept", "application/json")

	return &HTTPClient{
		client: client,
		domain: strings.TrimSuffix(domain, "/"),
	}
}

// GetUser fetches a panel user with its server relationship included.
func (c *HTTPClient) GetUser(id int64) (*responses.User, error) {
	var user responses.User
	resp, err := c.client.R().
		SetResult(&user).
		SetQueryParam("include", "servers").
		Get(fmt.Sprintf("%s/api/application/users/%d", c.domain, id))
	if err != nil {
		logrus.Error(err)
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, &APIError{StatusCode: resp.StatusCode()}
	}

	return &user, nil
}

func (c *HTTPClient) FindUsersByEmail(email string) ([]responses.User, error) {
	var list responses.UserList
	resp, err := c.client.R().
		SetResult(&list).
		SetQueryParam("include", "servers").
		SetQueryParam("filter[email]", email).
		Get(c.domain + "/api/application/users")
	if err != nil {
		logrus.Error(err)
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, &APIError{StatusCode: resp.StatusCode()}
	}

	return list.Data, nil
}

func (c *HTTPClient) CreateUser(user requests.CreateUser) (*responses.User, error) {
	var created responses.User
	resp, err := c.client.R().
		SetBody(&user).
		SetResult(&created).
		Post(c.domain + "/api/application/users")
	if err != nil {
		logrus.Error(err)
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, &APIError{StatusCode: resp.StatusCode()}
	}

	return &created, nil
}

func (c *HTTPClient) CreateServer(server requests.CreateServer) (*responses.Server, error) {
	var created responses.Server
	resp, err := c.client.R().
		SetBody(&server).
		SetResult(&created).
		Post(c.domain + "/api/application/servers")
	if err != nil {
		logrus.Error(err)
		return nil, err
	}
	if !resp.IsSuccess() {
		logrus.Errorf("server creation failed with status %d: %s", resp.StatusCode(), resp.String())
		return nil, &APIError{StatusCode: resp.StatusCode()}
	}

	return &created, nil
}

func (c *HTTPClient) DeleteServer(id int64) error {
	resp, err := c.client.R().
		Delete(fmt.Sprintf("%s/api/application/servers/%d", c.domain, id))
	if err != nil {
		logrus.Error(err)
		return err
	}
	if !resp.IsSuccess() {
		return &APIError{StatusCode: resp.StatusCode()}
	}

	return nil
}
