package sourcegraph

import (
	"context"
	stderr "errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/xref-lsp/src/xref/entity"
	"github.com/uber/xref-lsp/src/xref/gateway/sourcegraph/sourcegraphmock"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func expectCurrentUser(c *sourcegraphmock.MockClient, id string) *gomock.Call {
	return c.EXPECT().Query(gomock.Any(), _currentUserQuery, gomock.Nil(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ map[string]interface{}, result interface{}) error {
			me := result.(*struct {
				CurrentUser *struct {
					ID string `json:"id"`
				} `json:"currentUser"`
			})
			if id != "" {
				me.CurrentUser = &struct {
					ID string `json:"id"`
				}{ID: id}
			}
			return nil
		})
}

func expectCreateToken(c *sourcegraphmock.MockClient, user string, token string) *gomock.Call {
	return c.EXPECT().Query(gomock.Any(), _createAccessTokenMutation, map[string]interface{}{
		"user":   user,
		"scopes": []string{_tokenScope},
		"note":   _tokenNote,
	}, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ map[string]interface{}, result interface{}) error {
			created := result.(*struct {
				CreateAccessToken struct {
					ID    string `json:"id"`
					Token string `json:"token"`
				} `json:"createAccessToken"`
			})
			created.CreateAccessToken.ID = "token-id"
			created.CreateAccessToken.Token = token
			return nil
		})
}

func TestTokenConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := sourcegraphmock.NewMockClient(ctrl)

	c := NewCredentials(entity.Settings{AccessToken: "configured"}, client, zap.NewNop().Sugar())
	token, err := c.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "configured", token)
}

func TestTokenCreatedOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := sourcegraphmock.NewMockClient(ctrl)
	expectCurrentUser(client, "VXNlcjox").Times(1)
	expectCreateToken(client, "VXNlcjox", "created").Times(1)

	c := NewCredentials(entity.Settings{}, client, zap.NewNop().Sugar())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := c.Token(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "created", token)
		}()
	}
	wg.Wait()
}

func TestTokenInvalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := sourcegraphmock.NewMockClient(ctrl)
	gomock.InOrder(
		expectCurrentUser(client, "VXNlcjox"),
		expectCreateToken(client, "VXNlcjox", "first"),
		expectCurrentUser(client, "VXNlcjox"),
		expectCreateToken(client, "VXNlcjox", "second"),
	)

	c := NewCredentials(entity.Settings{}, client, zap.NewNop().Sugar())
	token, err := c.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", token)

	c.Invalidate()
	token, err = c.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}

func TestTokenAnonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := sourcegraphmock.NewMockClient(ctrl)
	expectCurrentUser(client, "").Times(1)

	c := NewCredentials(entity.Settings{}, client, zap.NewNop().Sugar())
	for i := 0; i < 2; i++ {
		token, err := c.Token(context.Background())
		require.NoError(t, err)
		assert.Empty(t, token)
	}
}

func TestTokenFailureIsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := sourcegraphmock.NewMockClient(ctrl)
	gomock.InOrder(
		client.EXPECT().Query(gomock.Any(), _currentUserQuery, gomock.Nil(), gomock.Any()).Return(stderr.New("unavailable")),
		expectCurrentUser(client, "VXNlcjox"),
		expectCreateToken(client, "VXNlcjox", "created"),
	)

	c := NewCredentials(entity.Settings{}, client, zap.NewNop().Sugar())
	_, err := c.Token(context.Background())
	assert.ErrorContains(t, err, "unavailable")

	token, err := c.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "created", token)
}

func TestTokenStoredAcrossRestarts(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := sourcegraphmock.NewMockClient(ctrl)
	expectCurrentUser(client, "VXNlcjox").Times(1)
	expectCreateToken(client, "VXNlcjox", "created").Times(1)

	file := filepath.Join(t.TempDir(), "xref", "token")
	settings := entity.Settings{AccessTokenFile: file}

	first := NewCredentials(settings, client, zap.NewNop().Sugar())
	token, err := first.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "created", token)

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	restarted := NewCredentials(settings, client, zap.NewNop().Sugar())
	token, err = restarted.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "created", token)

	restarted.Invalidate()
	_, err = os.Stat(file)
	assert.True(t, os.IsNotExist(err))
}

func TestTokenStoreFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := sourcegraphmock.NewMockClient(ctrl)
	expectCurrentUser(client, "VXNlcjox").Times(1)
	expectCreateToken(client, "VXNlcjox", "created").Times(1)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	c := NewCredentials(entity.Settings{AccessTokenFile: filepath.Join(blocker, "token")}, client, zap.NewNop().Sugar())
	for i := 0; i < 2; i++ {
		token, err := c.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "created", token)
	}
}
