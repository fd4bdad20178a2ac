package soap

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/icutech/auth-gateway/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type mockUser struct {
	passwordHash []byte
	email        string
	firstName    string
	lastName     string
	id           string
}

// MockClient is an in-memory stand-in for the SOAP service, used for local
// development and tests. Seeded passwords are stored bcrypt-hashed.
type MockClient struct {
	mu    sync.Mutex
	users map[string]mockUser
}

// NewMockClient creates a mock client pre-seeded with the demo accounts
// testuser/password123, admin/admin123 and demo/demo123.
func NewMockClient() *MockClient {
	c := &MockClient{users: make(map[string]mockUser)}
	seed := []struct {
		login, password, email, firstName, lastName, id string
	}{
		{"testuser", "password123", "test@example.com", "Test", "User", "test-user-id-001"},
		{"admin", "admin123", "admin@example.com", "Admin", "User", "admin-user-id-002"},
		{"demo", "demo123", "demo@example.com", "Demo", "User", "demo-user-id-003"},
	}
	for _, s := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			continue
		}
		c.users[s.login] = mockUser{
			passwordHash: hash,
			email:        s.email,
			firstName:    s.firstName,
			lastName:     s.lastName,
			id:           s.id,
		}
	}
	return c
}

// Login authenticates against the in-memory user table.
func (c *MockClient) Login(ctx context.Context, login, password string) (*domain.LoginResult, error) {
	if strings.TrimSpace(login) == "" {
		return nil, &ClientError{Kind: KindInvalidArgument, Message: "login must not be blank"}
	}
	if strings.TrimSpace(password) == "" {
		return nil, &ClientError{Kind: KindInvalidArgument, Message: "password must not be blank"}
	}

	log.Info().Str("login", login).Msg("Mock SOAP client: login attempt")

	c.mu.Lock()
	user, ok := c.users[login]
	c.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(user.passwordHash, []byte(password)) != nil {
		return &domain.LoginResult{
			Success: false,
			Message: "invalid login or password",
		}, nil
	}

	return &domain.LoginResult{
		Success: true,
		Message: "login successful",
		EntityDetails: map[string]any{
			"UserId":    user.id,
			"Login":     login,
			"Email":     user.email,
			"FirstName": user.firstName,
			"LastName":  user.lastName,
			"FullName":  user.firstName + " " + user.lastName,
			"LoginTime": time.Now().UTC(),
		},
	}, nil
}

// Register creates a customer in the in-memory user table, rejecting
// duplicate logins the way the real upstream does.
func (c *MockClient) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResult, error) {
	if strings.TrimSpace(req.Login) == "" {
		return nil, &ClientError{Kind: KindInvalidArgument, Message: "login must not be blank"}
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, &ClientError{Kind: KindInvalidArgument, Message: "password must not be blank"}
	}

	log.Info().Str("login", req.Login).Msg("Mock SOAP client: registration attempt")

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.users[req.Login]; exists {
		return &domain.RegisterResult{
			Success: false,
			Message: "a user with this login already exists",
		}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &ClientError{Kind: KindInvalidArgument, Message: "password could not be processed", Err: err}
	}

	id := "user-" + strings.ReplaceAll(uuid.New().String(), "-", "")
	c.users[req.Login] = mockUser{
		passwordHash: hash,
		email:        deref(req.Email),
		firstName:    deref(req.FirstName),
		lastName:     deref(req.LastName),
		id:           id,
	}

	return &domain.RegisterResult{
		Success:           true,
		Message:           "registration successful",
		CreatedCustomerID: id,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
