package sourcegraph

import (
	"context"
	"net/url"

	"github.com/uber/xref-lsp/src/xref/entity"
)

// ArtifactLocator builds URLs of raw source archives served by Sourcegraph.
type ArtifactLocator struct {
	client      Client
	credentials Credentials
}

// NewArtifactLocator returns an ArtifactLocator authenticating with credentials.
func NewArtifactLocator(client Client, credentials Credentials) *ArtifactLocator {
	return &ArtifactLocator{
		client:      client,
		credentials: credentials,
	}
}

// ZipURL returns "<sourcegraph>/<repository>@<revision>/-/raw" with the access token, if any, as the URL user.
func (l *ArtifactLocator) ZipURL(ctx context.Context, root entity.RootIdentity) (string, error) {
	token, err := l.credentials.Token(ctx)
	if err != nil {
		return "", err
	}
	return BuildZipURL(l.client.URL(), root.Repository(), root.Revision(), token), nil
}

// BuildZipURL builds the archive URL of repository at revision.
func BuildZipURL(base *url.URL, repository string, revision string, token string) string {
	u := *base
	u.Path = "/" + repository + "@" + revision + "/-/raw"
	u.RawPath = ""
	u.User = nil
	if token != "" {
		u.User = url.User(token)
	}
	return u.String()
}
