package sourcegraph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/uber/xref-lsp/src/xref/entity"
	"go.uber.org/zap"
)

const (
	_currentUserQuery = `query CurrentUser {
	currentUser {
		id
	}
}`

	_createAccessTokenMutation = `mutation CreateAccessToken($user: ID!, $scopes: [String!]!, $note: String!) {
	createAccessToken(user: $user, scopes: $scopes, note: $note) {
		id
		token
	}
}`

	_tokenScope = "user:all"
	_tokenNote  = "lang-go"
)

// Credentials supplies the access token embedded in archive URLs.
type Credentials interface {
	// Token returns the configured token, or lazily creates one for the current user.
	// Anonymous users get an empty token.
	Token(ctx context.Context) (string, error)
	// Invalidate forgets a created token, including its stored copy, so the next call to Token creates a new one.
	Invalidate()
}

type credentials struct {
	configured string
	file       string
	client     Client
	logger     *zap.SugaredLogger

	mu      sync.Mutex
	created *string
}

// NewCredentials returns the credential provider. A token configured in settings always wins.
func NewCredentials(settings entity.Settings, client Client, logger *zap.SugaredLogger) Credentials {
	return &credentials{
		configured: settings.AccessToken,
		file:       settings.AccessTokenFile,
		client:     client,
		logger:     logger,
	}
}

// Token implements Credentials.
// The lock is held across creation so concurrent callers share a single token.
func (c *credentials) Token(ctx context.Context) (string, error) {
	if c.configured != "" {
		return c.configured, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.created != nil {
		return *c.created, nil
	}
	if token := c.load(); token != "" {
		c.created = &token
		return token, nil
	}

	token, err := c.create(ctx)
	if err != nil {
		return "", err
	}
	c.created = &token
	if token != "" {
		c.store(token)
	}
	return token, nil
}

// Invalidate implements Credentials.
func (c *credentials) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.created = nil
	if c.file == "" {
		return
	}
	if err := os.Remove(c.file); err != nil && !os.IsNotExist(err) {
		c.logger.Warnf("removing stored access token: %s", err)
	}
}

// load returns the token stored by a previous run, if any.
func (c *credentials) load() string {
	if c.file == "" {
		return ""
	}
	data, err := os.ReadFile(c.file)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warnf("reading stored access token: %s", err)
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

// store keeps token for later runs. Failing to store only costs a new token after a restart.
func (c *credentials) store(token string) {
	if c.file == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.file), 0o700); err != nil {
		c.logger.Warnf("storing access token: %s", err)
		return
	}
	if err := os.WriteFile(c.file, []byte(token+"\n"), 0o600); err != nil {
		c.logger.Warnf("storing access token: %s", err)
	}
}

func (c *credentials) create(ctx context.Context) (string, error) {
	var me struct {
		CurrentUser *struct {
			ID string `json:"id"`
		} `json:"currentUser"`
	}
	if err := c.client.Query(ctx, _currentUserQuery, nil, &me); err != nil {
		return "", fmt.Errorf("querying current user: %w", err)
	}
	if me.CurrentUser == nil {
		return "", nil
	}

	var created struct {
		CreateAccessToken struct {
			ID    string `json:"id"`
			Token string `json:"token"`
		} `json:"createAccessToken"`
	}
	variables := map[string]interface{}{
		"user":   me.CurrentUser.ID,
		"scopes": []string{_tokenScope},
		"note":   _tokenNote,
	}
	if err := c.client.Query(ctx, _createAccessTokenMutation, variables, &created); err != nil {
		return "", fmt.Errorf("creating access token: %w", err)
	}

	c.logger.Infow("created access token", "tokenID", created.CreateAccessToken.ID)
	return created.CreateAccessToken.Token, nil
}
