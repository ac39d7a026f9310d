// Package fakeapi is an in-memory implementation of the remote task service
// used by adapter, CLI and end-to-end tests.
package fakeapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const usernameKey = "username"

// Task is the wire representation of a task.
type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Created   time.Time `json:"created"`

	owner string
}

// Request records the parts of an incoming request tests assert on.
type Request struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	UserAgent     string
	ContentType   string
}

type Server struct {
	srv    *httptest.Server
	secret []byte
	now    func() time.Time

	signupIssuesToken bool

	mu       sync.Mutex
	users    map[string]string
	tasks    map[int64]Task
	nextID   int64
	requests []Request
	failNext int
}

type Option func(*Server)

// WithoutSignupToken makes signup answer 201 with an empty body, as a backend
// that only creates the account does.
func WithoutSignupToken() Option {
	return func(s *Server) {
		s.signupIssuesToken = false
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New starts a server that is closed when the test ends.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		secret:            []byte("fakeapi-test-secret"),
		now:               time.Now,
		signupIssuesToken: true,
		users:             map[string]string{},
		tasks:             map[int64]Task{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.srv = httptest.NewServer(s.router())
	t.Cleanup(s.srv.Close)

	return s
}

func (s *Server) URL() string {
	return s.srv.URL
}

func (s *Server) router() http.Handler {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(gin.Recovery(), s.record)

	auth := r.Group("/auth")
	auth.POST("/login/", s.login)
	auth.POST("/register/", s.signup)

	api := r.Group("/api", s.authenticate)
	api.GET("/todo/", s.listTasks)
	api.POST("/todo/", s.createTask)
	api.PATCH("/todo/:id/", s.updateTask)
	api.DELETE("/todo/:id/", s.deleteTask)

	return r
}

// AddUser registers a user directly, bypassing the signup endpoint.
func (s *Server) AddUser(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[username] = password
}

// TokenFor issues a valid access token for username.
func (s *Server) TokenFor(username string) string {
	token, err := s.issueToken(username)
	if err != nil {
		panic(err)
	}
	return token
}

// Seed stores a task for username and returns its id.
func (s *Server) Seed(username, text string, completed bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertLocked(username, text, completed).ID
}

// DeleteDirect removes a task out of band, as another client would.
func (s *Server) DeleteDirect(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tasks, id)
}

// Tasks returns the tasks stored for username in id order.
func (s *Server) Tasks(username string) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tasksOfLocked(username)
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Request(nil), s.requests...)
}

// FailNext makes the next request fail with status before reaching a handler.
func (s *Server) FailNext(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failNext = status
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		Authorization: c.GetHeader("Authorization"),
		RequestID:     c.GetHeader("X-Request-ID"),
		UserAgent:     c.GetHeader("User-Agent"),
		ContentType:   c.GetHeader("Content-Type"),
	})
	status := s.failNext
	s.failNext = 0
	s.mu.Unlock()

	if status != 0 {
		c.AbortWithStatusJSON(status, gin.H{"detail": http.StatusText(status)})
		return
	}
	c.Next()
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	s.mu.Lock()
	password, ok := s.users[req.Username]
	s.mu.Unlock()

	if !ok || password != req.Password {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := s.issueToken(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": token})
}

func (s *Server) signup(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Username) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	s.mu.Lock()
	_, exists := s.users[req.Username]
	if !exists {
		s.users[req.Username] = req.Password
	}
	s.mu.Unlock()

	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	}

	if !s.signupIssuesToken {
		c.Status(http.StatusCreated)
		return
	}

	token, err := s.issueToken(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"access": token})
}

func (s *Server) authenticate(c *gin.Context) {
	raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
		return
	}

	username, err := s.parseToken(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Given token not valid"})
		return
	}

	c.Set(usernameKey, username)
	c.Next()
}

func (s *Server) listTasks(c *gin.Context) {
	c.JSON(http.StatusOK, s.Tasks(c.GetString(usernameKey)))
}

func (s *Server) createTask(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"text": []string{"This field may not be blank."}})
		return
	}

	s.mu.Lock()
	task := s.insertLocked(c.GetString(usernameKey), req.Text, false)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, task)
}

func (s *Server) updateTask(c *gin.Context) {
	var req struct {
		Text      *string `json:"text"`
		Completed *bool   `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || (req.Text != nil && strings.TrimSpace(*req.Text) == "") {
		c.JSON(http.StatusBadRequest, gin.H{"text": []string{"This field may not be blank."}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.lookupLocked(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	if req.Text != nil {
		task.Text = *req.Text
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	s.tasks[task.ID] = task

	c.JSON(http.StatusOK, task)
}

func (s *Server) deleteTask(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.lookupLocked(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	delete(s.tasks, task.ID)
	c.Status(http.StatusNoContent)
}

func (s *Server) lookupLocked(c *gin.Context) (Task, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return Task{}, false
	}

	task, ok := s.tasks[id]
	if !ok || task.owner != c.GetString(usernameKey) {
		return Task{}, false
	}
	return task, true
}

func (s *Server) insertLocked(owner, text string, completed bool) Task {
	s.nextID++
	task := Task{
		ID:        s.nextID,
		Text:      text,
		Completed: completed,
		Created:   s.now().UTC().Truncate(time.Second),
		owner:     owner,
	}
	s.tasks[task.ID] = task
	return task
}

func (s *Server) tasksOfLocked(owner string) []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if task.owner == owner {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) issueToken(username string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) parseToken(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}
