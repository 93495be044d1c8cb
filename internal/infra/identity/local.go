// Package localidentity provides a self-contained identity gate backed by
// in-process account storage. It stands in for an external identity provider
// in development and tests.
package localidentity

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"staybook/internal/domain/identity"
)

var (
	ErrEmailTaken  = errors.New("identity: email already registered")
	ErrBadPassword = errors.New("identity: invalid email or password")
)

const sessionTokenBytes = 32

type account struct {
	id           string
	email        string
	passwordHash string
	groups       []string
}

// Gate authenticates bearer tokens issued by its own Login.
type Gate struct {
	mu       sync.RWMutex
	accounts map[string]account // by email
	sessions map[string]string  // token -> account id
	byID     map[string]account
}

func NewGate() *Gate {
	return &Gate{
		accounts: make(map[string]account),
		sessions: make(map[string]string),
		byID:     make(map[string]account),
	}
}

// Register creates an account and returns its id. Group membership is fixed at
// registration; hosts join the hosts group.
func (g *Gate) Register(ctx context.Context, email, password string, groups ...string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrBadPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.accounts[email]; ok {
		return "", ErrEmailTaken
	}
	acc := account{
		id:           uuid.NewString(),
		email:        email,
		passwordHash: string(hash),
		groups:       append([]string(nil), groups...),
	}
	g.accounts[email] = acc
	g.byID[acc.id] = acc
	return acc.id, nil
}

// Login verifies credentials and issues an opaque bearer token.
func (g *Gate) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	g.mu.RLock()
	acc, ok := g.accounts[email]
	g.mu.RUnlock()
	if !ok {
		return "", ErrBadPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.passwordHash), []byte(password)); err != nil {
		return "", ErrBadPassword
	}
	token, err := newSessionToken()
	if err != nil {
		return "", err
	}
	g.mu.Lock()
	g.sessions[token] = acc.id
	g.mu.Unlock()
	return token, nil
}

func (g *Gate) Authenticate(ctx context.Context, credential string) (identity.Identity, error) {
	if credential == "" {
		return identity.Identity{}, identity.ErrCredentialRequired
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	id, ok := g.sessions[credential]
	if !ok {
		return identity.Identity{}, identity.ErrInvalidCredential
	}
	acc, ok := g.byID[id]
	if !ok {
		return identity.Identity{}, identity.ErrInvalidCredential
	}
	return identity.Identity{
		ID:     acc.id,
		Groups: append([]string(nil), acc.groups...),
	}, nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("identity: entropy read failed: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

var _ identity.Gate = (*Gate)(nil)
