package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
)

func TestRootIdentityFromDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     protocol.DocumentURI
		want    RootIdentity
		wantErr bool
	}{
		{
			name: "strips fragment",
			doc:  "git://github.com/gorilla/mux?master#mux.go",
			want: "git://github.com/gorilla/mux?master",
		},
		{
			name: "no fragment",
			doc:  "git://github.com/gorilla/mux?0123abcd",
			want: "git://github.com/gorilla/mux?0123abcd",
		},
		{
			name: "nested path",
			doc:  "git://github.com/gorilla/mux?master#internal/route/route.go",
			want: "git://github.com/gorilla/mux?master",
		},
		{
			name:    "no repository",
			doc:     "mux.go",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RootIdentityFromDocument(tt.doc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := RootIdentityFromDocument(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestRootIdentityRoundTrip(t *testing.T) {
	tests := []struct {
		repo string
		rev  string
	}{
		{repo: "github.com/gorilla/mux", rev: "master"},
		{repo: "github.com/golang/go", rev: "0123456789abcdef0123456789abcdef01234567"},
		{repo: "example.com/a/b/c", rev: "v1"},
		{repo: "localhost", rev: "main"},
	}

	for _, tt := range tests {
		t.Run(tt.repo, func(t *testing.T) {
			root := NewRootIdentity(tt.repo, tt.rev)
			assert.Equal(t, tt.repo, root.Repository())
			assert.Equal(t, tt.rev, root.Revision())

			doc := root.Document("pkg/file.go")
			fromDoc, err := RootIdentityFromDocument(doc)
			require.NoError(t, err)
			assert.Equal(t, root, fromDoc)

			path, err := DocumentPath(doc)
			require.NoError(t, err)
			assert.Equal(t, "pkg/file.go", path)
		})
	}
}

func TestDocumentRoundTripEscapedPaths(t *testing.T) {
	root := NewRootIdentity("github.com/a/b", "master")

	for _, path := range []string{
		"dir/my file.go",
		"dir/100%.go",
		"dir/a#b.go",
		"dir/café.go",
	} {
		t.Run(path, func(t *testing.T) {
			doc := root.Document(path)

			got, err := DocumentPath(doc)
			require.NoError(t, err)
			assert.Equal(t, path, got)

			fromDoc, err := RootIdentityFromDocument(doc)
			require.NoError(t, err)
			assert.Equal(t, root, fromDoc)
		})
	}

	assert.Equal(t, protocol.DocumentURI("git://github.com/a/b?master#dir/my%20file.go"), root.Document("dir/my file.go"))
}

func TestModulePrefix(t *testing.T) {
	assert.Equal(t, "github.com/gorilla/mux", ModulePrefix("github.com/gorilla/mux/middleware/x"))
	assert.Equal(t, "github.com/gorilla/mux", ModulePrefix("github.com/gorilla/mux"))
	assert.Equal(t, "pkg/x", ModulePrefix("pkg/x"))
	assert.Equal(t, "golang.org/x/tools", ModulePrefix("/golang.org/x/tools/go/packages/"))
}

func TestReferenceRecordLocation(t *testing.T) {
	r := ReferenceRecord{
		Root: NewRootIdentity("github.com/a/b", "master"),
		File: "c/d.go",
		Range: protocol.Range{
			Start: protocol.Position{Line: 1, Character: 2},
			End:   protocol.Position{Line: 1, Character: 5},
		},
	}
	loc := r.Location()
	assert.Equal(t, protocol.DocumentURI("git://github.com/a/b?master#c/d.go"), loc.URI)
	assert.Equal(t, r.Range, loc.Range)
}

func TestSettingsWithDefaults(t *testing.T) {
	s := Settings{ServerURL: "tcp://localhost:1"}.WithDefaults()
	assert.Equal(t, DefaultMaxExternalReferenceRepos, s.MaxExternalReferenceRepos)
	assert.Equal(t, DefaultReferencesLimit, s.ReferencesLimit)
	assert.Equal(t, DefaultBranch, s.DefaultBranch)
	assert.Equal(t, SearchBackendSourcegraph, s.SearchBackend)

	custom := Settings{MaxExternalReferenceRepos: 3, DefaultBranch: "main"}.WithDefaults()
	assert.Equal(t, 3, custom.MaxExternalReferenceRepos)
	assert.Equal(t, "main", custom.DefaultBranch)
}

func TestCachePolicyString(t *testing.T) {
	assert.Equal(t, "reuse", CachePolicyReuse.String())
	assert.Equal(t, "ephemeral", CachePolicyEphemeral.String())
	assert.Equal(t, "unknown", CachePolicy(7).String())
}
