// Package sourcegraph is the gateway to the Sourcegraph instance hosting the source trees: its
// GraphQL API, access tokens, archive URLs and code search.
package sourcegraph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/uber/xref-lsp/src/xref/gateway/langserver"
	"github.com/uber/xref-lsp/src/xref/internal/httpclient"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	_configKey   = "sourcegraph"
	_graphQLPath = "/.api/graphql"
	_userAgent   = "xref-lsp"
)

// Module provides the Sourcegraph client, the credential provider and the archive locator.
var Module = fx.Options(
	fx.Provide(New),
	fx.Provide(NewCredentials),
	fx.Provide(fx.Annotate(NewArtifactLocator, fx.As(new(langserver.ArtifactLocator)))),
)

// Config locates the Sourcegraph instance.
type Config struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// Client talks to the Sourcegraph API.
type Client interface {
	// URL returns the base URL of the instance.
	URL() *url.URL
	// Query runs a GraphQL query and decodes its data into result.
	Query(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error
	// RepositoriesContaining returns the repository of every Go file containing literal, in result order.
	RepositoriesContaining(ctx context.Context, literal string) ([]string, error)
}

// Params are inbound parameters to initialize a new Client.
type Params struct {
	fx.In

	Config config.Provider
	Logger *zap.SugaredLogger
}

type client struct {
	base   *url.URL
	token  string
	http   *httpclient.Client
	logger *zap.SugaredLogger
}

// New reads the sourcegraph config block and returns a Client for it.
func New(p Params) (Client, error) {
	var cfg Config
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKey, err)
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("missing field %q in config", _configKey+".url")
	}
	return newClient(cfg, httpclient.New(_userAgent), p.Logger)
}

func newClient(cfg Config, hc *httpclient.Client, logger *zap.SugaredLogger) (*client, error) {
	base, err := url.Parse(strings.TrimSuffix(cfg.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing %s.url %q: %w", _configKey, cfg.URL, err)
	}
	return &client{
		base:   base,
		token:  cfg.Token,
		http:   hc,
		logger: logger,
	}, nil
}

// URL implements Client.
func (c *client) URL() *url.URL {
	u := *c.base
	return &u
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Query implements Client.
func (c *client) Query(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	if variables == nil {
		variables = map[string]interface{}{}
	}
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshaling graphql request: %w", err)
	}

	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "token "+c.token)
	}

	send := c.http.Do
	if isMutation(query) {
		// A retried mutation may apply twice.
		send = c.http.DoOnce
	}
	data, err := send(ctx, http.MethodPost, c.base.String()+_graphQLPath, body, header)
	if err != nil {
		return fmt.Errorf("graphql request: %w", err)
	}

	var resp graphQLResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("decoding graphql response: %w", err)
	}
	if len(resp.Errors) > 0 {
		var errs error
		for _, e := range resp.Errors {
			errs = multierr.Append(errs, fmt.Errorf("graphql: %s", e.Message))
		}
		return errs
	}
	if result == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, result); err != nil {
		return fmt.Errorf("decoding graphql data: %w", err)
	}
	return nil
}

func isMutation(query string) bool {
	return strings.HasPrefix(strings.TrimSpace(query), "mutation")
}
