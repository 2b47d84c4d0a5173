package entity

type keyType string

// ConnectionContextKey indicates the key to be used to identify the inbound connection UUID in the context.
const ConnectionContextKey keyType = "ConnectionUUID"

// SettingsConfigKey is the configuration block holding Settings.
const SettingsConfigKey = "go"

// CachePolicy decides whether a request may share a cached language server session.
type CachePolicy int

const (
	// CachePolicyReuse sends the request over the cached session for the root, creating it if needed.
	CachePolicyReuse CachePolicy = iota
	// CachePolicyEphemeral creates a fresh session for one request and disposes it afterwards.
	CachePolicyEphemeral
)

// String implements fmt.Stringer.
func (p CachePolicy) String() string {
	switch p {
	case CachePolicyReuse:
		return "reuse"
	case CachePolicyEphemeral:
		return "ephemeral"
	default:
		return "unknown"
	}
}

// SearchBackend names a search service that can find files importing a package.
type SearchBackend string

const (
	// SearchBackendSourcegraph uses the Sourcegraph GraphQL search API.
	SearchBackendSourcegraph SearchBackend = "sourcegraph"
	// SearchBackendGitHub uses GitHub code search.
	SearchBackendGitHub SearchBackend = "github"
)

// Settings are the user facing options of the Go navigation providers.
type Settings struct {
	// ServerURL is the address of the Go language server, e.g. "wss://example.com" or "tcp://127.0.0.1:4389".
	ServerURL string `yaml:"serverUrl"`
	// AccessToken is used when building artifact URLs. When empty a token is created on demand.
	AccessToken string `yaml:"accessToken"`
	// AccessTokenFile stores a created token so it survives restarts. Unset keeps it in memory only.
	AccessTokenFile string `yaml:"accessTokenFile"`
	// ExternalReferences enables cross repository references.
	ExternalReferences bool `yaml:"externalReferences"`
	// MaxExternalReferenceRepos caps the number of candidate repositories queried.
	MaxExternalReferenceRepos int `yaml:"maxExternalReferenceRepos"`
	// GoDocDotOrgURL selects the package index backend for finding importers when set.
	GoDocDotOrgURL string `yaml:"goDocDotOrgURL"`
	// SearchBackend selects the search service used when no package index is configured.
	SearchBackend SearchBackend `yaml:"searchBackend"`
	// DefaultBranch is the revision queried in candidate repositories.
	DefaultBranch string `yaml:"defaultBranch"`
	// ReferencesLimit caps the references returned per candidate repository.
	ReferencesLimit int `yaml:"referencesLimit"`
	// FanOutConcurrency caps the number of candidate repositories queried at once.
	FanOutConcurrency int `yaml:"fanOutConcurrency"`
	// ConnectTimeoutSeconds bounds dialing and the initialize handshake.
	ConnectTimeoutSeconds int `yaml:"connectTimeoutSeconds"`
	// RequestTimeoutSeconds bounds each request to the language server.
	RequestTimeoutSeconds int `yaml:"requestTimeoutSeconds"`
}

// Defaults applied to unset Settings fields.
const (
	DefaultMaxExternalReferenceRepos = 50
	DefaultReferencesLimit           = 50
	DefaultBranch                    = "master"
	DefaultFanOutConcurrency         = 8
	DefaultConnectTimeoutSeconds     = 30
	DefaultRequestTimeoutSeconds     = 60
)

// WithDefaults returns a copy of s with unset fields filled in.
func (s Settings) WithDefaults() Settings {
	if s.MaxExternalReferenceRepos <= 0 {
		s.MaxExternalReferenceRepos = DefaultMaxExternalReferenceRepos
	}
	if s.ReferencesLimit <= 0 {
		s.ReferencesLimit = DefaultReferencesLimit
	}
	if s.DefaultBranch == "" {
		s.DefaultBranch = DefaultBranch
	}
	if s.FanOutConcurrency <= 0 {
		s.FanOutConcurrency = DefaultFanOutConcurrency
	}
	if s.ConnectTimeoutSeconds <= 0 {
		s.ConnectTimeoutSeconds = DefaultConnectTimeoutSeconds
	}
	if s.RequestTimeoutSeconds <= 0 {
		s.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
	if s.SearchBackend == "" {
		s.SearchBackend = SearchBackendSourcegraph
	}
	return s
}
