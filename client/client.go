package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Client talks to the case-sharing REST API. It carries the session cookie in
// its jar and doubles as the Watcher's IdentityService and ProfileResolver.
// Session-change events are emitted to listeners when this client signs in or
// out; like a browser tab, it only observes its own auth actions.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu        sync.Mutex
	listeners map[int]func(*Session)
	nextID    int
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		listeners: map[int]func(*Session){},
	}, nil
}

func (c *Client) do(method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return apiErr
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// emit notifies session-change listeners in registration order.
func (c *Client) emit(session *Session) {
	c.mu.Lock()
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	// map iteration order is random; deliver in registration order
	sort.Ints(ids)
	fns := make([]func(*Session), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.listeners[id])
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(session)
	}
}

// CurrentSession asks the server who the cookie belongs to. A 401 means no
// session; that is not an error.
func (c *Client) CurrentSession() (*Session, error) {
	var user User
	err := c.do(http.MethodGet, "/api/auth/user", nil, &user)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return nil, nil
		}
		return nil, err
	}
	return &Session{Subject: user.ID}, nil
}

// OnSessionChange registers a listener and returns its unsubscribe function.
func (c *Client) OnSessionChange(fn func(*Session)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

type signupRequest struct {
	Credentials
	ProfileInput
}

// SignUp registers an account with its profile and starts a session.
func (c *Client) SignUp(creds Credentials, profile ProfileInput) (*Session, error) {
	var user User
	err := c.do(http.MethodPost, "/api/auth/signup", signupRequest{creds, profile}, &user)
	if err != nil {
		return nil, err
	}

	session := &Session{Subject: user.ID}
	c.emit(session)
	return session, nil
}

// SignIn authenticates existing credentials and starts a session.
func (c *Client) SignIn(creds Credentials) (*Session, error) {
	var user User
	if err := c.do(http.MethodPost, "/api/auth/login", creds, &user); err != nil {
		return nil, err
	}

	session := &Session{Subject: user.ID}
	c.emit(session)
	return session, nil
}

// SignOut terminates the server session. The signed-out event is emitted even
// if the server call fails, so local observers never stay authenticated
// against a dead session.
func (c *Client) SignOut() error {
	err := c.do(http.MethodPost, "/api/auth/logout", nil, nil)
	c.emit(nil)
	return err
}

// ResolveProfile fetches the profile for the current session's subject.
func (c *Client) ResolveProfile(subject string) (*User, error) {
	var user User
	if err := c.do(http.MethodGet, "/api/auth/user", nil, &user); err != nil {
		return nil, err
	}
	if user.ID != subject {
		return nil, fmt.Errorf("session subject changed during profile fetch")
	}
	return &user, nil
}

// ListCases fetches the filtered case collection.
func (c *Client) ListCases(filters CaseFilters) ([]Case, error) {
	params := url.Values{}
	if filters.Specialty != "" {
		params.Set("specialty", filters.Specialty)
	}
	if filters.Status != "" {
		params.Set("status", filters.Status)
	}
	if filters.Search != "" {
		params.Set("search", filters.Search)
	}
	if len(filters.Tags) > 0 {
		params.Set("tags", strings.Join(filters.Tags, ","))
	}

	path := "/api/cases"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var results []Case
	if err := c.do(http.MethodGet, path, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// GetCase fetches one case with author and comment thread.
func (c *Client) GetCase(id int) (*Case, error) {
	var result Case
	if err := c.do(http.MethodGet, "/api/cases/"+strconv.Itoa(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateCase(input CaseInput) (*Case, error) {
	var result Case
	if err := c.do(http.MethodPost, "/api/cases", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateCase patches the given fields; only the case's author may call this.
func (c *Client) UpdateCase(id int, patch map[string]interface{}) (*Case, error) {
	var result Case
	if err := c.do(http.MethodPatch, "/api/cases/"+strconv.Itoa(id), patch, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateComment(caseID int, content string) (*Comment, error) {
	var result Comment
	body := map[string]string{"content": content}
	if err := c.do(http.MethodPost, "/api/cases/"+strconv.Itoa(caseID)+"/comments", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListComments(caseID int) ([]Comment, error) {
	var results []Comment
	if err := c.do(http.MethodGet, "/api/cases/"+strconv.Itoa(caseID)+"/comments", nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ListColleagues fetches the user directory (authenticated).
func (c *Client) ListColleagues() ([]User, error) {
	var results []User
	if err := c.do(http.MethodGet, "/api/users", nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}
