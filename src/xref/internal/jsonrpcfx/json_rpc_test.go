package jsonrpcfx

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/xref-lsp/idl/mock/jsonrpc2mock"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{
			name:    "missing required params",
			params:  Params{},
			wantErr: true,
		},
		{
			name: "all required params are present",
			params: Params{
				Lifecycle: fxtest.NewLifecycle(t),
				Config:    newConfigProvider(t, "valid"),
			},
			wantErr: false,
		},
		{
			name: "address missing from config",
			params: Params{
				Lifecycle: fxtest.NewLifecycle(t),
				Config:    newConfigProvider(t, "missingKey"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegisterConnectionManager(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := module{}

	mockConnectionManager := NewMockConnectionManager(ctrl)

	// first call should return no error
	err := m.RegisterConnectionManager(mockConnectionManager)
	assert.NoError(t, err)

	// duplicate call should return error
	err = m.RegisterConnectionManager(mockConnectionManager)
	assert.Error(t, err)
}

func TestServeStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	mockServer := module{
		logger: zap.NewNop().Sugar(),
	}

	mockUUID, _ := uuid.NewV4()
	mockRouter := NewMockRouter(ctrl)
	mockRouter.EXPECT().UUID().Return(mockUUID).AnyTimes()

	mockConnectionManager := NewMockConnectionManager(ctrl)
	mockConnectionManager.EXPECT().RemoveConnection(ctx, mockUUID)

	conn := jsonrpc2mock.NewMockConn(ctrl)
	conn.EXPECT().Go(gomock.Any(), gomock.Any())

	c := make(chan struct{})
	close(c)
	conn.EXPECT().Done().Return((<-chan struct{})(c))
	conn.EXPECT().Err()

	tests := []struct {
		name                        string
		connectionManagerRegistered bool
		wantErr                     bool

		// Return values from NewConnection
		routerReturnVal Router
		errReturnVal    error
	}{
		{
			name:    "no connection manager registered",
			wantErr: true,

			connectionManagerRegistered: false,
		},
		{
			name:    "failed NewConnection",
			wantErr: true,

			connectionManagerRegistered: true,
			errReturnVal:                errors.New("sample error"),
		},
		{
			name:    "successful NewConnection",
			wantErr: false,

			connectionManagerRegistered: true,
			routerReturnVal:             mockRouter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.connectionManagerRegistered && mockServer.connectionMgr == nil {
				require.NoError(t, mockServer.RegisterConnectionManager(mockConnectionManager))
			}

			if tt.routerReturnVal != nil || tt.errReturnVal != nil {
				mockConnectionManager.EXPECT().NewConnection(gomock.Any(), gomock.Any()).Return(tt.routerReturnVal, tt.errReturnVal)
			}

			err := mockServer.ServeStream(ctx, conn)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetup(t *testing.T) {
	m := module{
		logger: zap.NewNop().Sugar(),
	}
	assert.Error(t, m.setup())

	m = module{Address: "127.0.0.1:0"}
	require.NoError(t, m.setup())
	assert.NoError(t, m.ln.Close())
}

func TestProcessConfig(t *testing.T) {
	tests := []struct {
		name        string
		configKey   string
		wantErr     bool
		errorString string
	}{
		{
			name:      "valid configuration",
			configKey: "valid",
			wantErr:   false,
		},
		{
			name:        "missing address key",
			configKey:   "missingKey",
			wantErr:     true,
			errorString: "missing field \"jsonrpc.address\" in config",
		},
		{
			name:        "missing address value",
			configKey:   "missingValue",
			wantErr:     true,
			errorString: "missing field \"jsonrpc.address\" in config",
		},
		{
			name:        "incorrectly formatted entry",
			configKey:   "formatProblem",
			wantErr:     true,
			errorString: "getting config field \"jsonrpc.address\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := module{
				logger: zap.NewNop().Sugar(),
			}
			err := m.processConfig(newConfigProvider(t, tt.configKey))

			if tt.wantErr {
				assert.ErrorContains(t, err, tt.errorString)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "127.0.0.1:0", m.Address)
			}
		})
	}
}

func TestOnStartErrors(t *testing.T) {
	ctx := context.Background()

	m := module{logger: zap.NewNop().Sugar()}
	assert.Error(t, m.OnStart(ctx))

	m = module{Address: "not an address", logger: zap.NewNop().Sugar()}
	assert.Error(t, m.OnStart(ctx))

	// Stopping a module that never started is a no-op.
	assert.NoError(t, m.OnStop(ctx))
}

func TestServeAndStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	m := &module{Address: "127.0.0.1:0", logger: zap.NewNop().Sugar()}

	id, _ := uuid.NewV4()
	router := NewMockRouter(ctrl)
	router.EXPECT().UUID().Return(id).AnyTimes()
	router.EXPECT().HandleReq(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
			assert.Equal(t, "ping", req.Method())
			return reply(ctx, "pong", nil)
		})

	removed := make(chan struct{})
	mgr := NewMockConnectionManager(ctrl)
	mgr.EXPECT().NewConnection(gomock.Any(), gomock.Any()).Return(router, nil)
	mgr.EXPECT().RemoveConnection(gomock.Any(), id).Do(func(context.Context, uuid.UUID) {
		close(removed)
	})
	require.NoError(t, m.RegisterConnectionManager(mgr))
	require.NoError(t, m.OnStart(ctx))

	netConn, err := net.Dial("tcp", m.ln.Addr().String())
	require.NoError(t, err)
	client := jsonrpc2.NewConn(jsonrpc2.NewStream(netConn))
	client.Go(ctx, jsonrpc2.MethodNotFoundHandler)

	var result string
	_, err = client.Call(ctx, "ping", nil, &result)
	require.NoError(t, err)
	assert.Equal(t, "pong", result)

	require.NoError(t, client.Close())
	<-client.Done()

	select {
	case <-removed:
	case <-time.After(5 * time.Second):
		t.Fatal("connection was not removed")
	}

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	assert.NoError(t, m.OnStop(stopCtx))

	_, err = net.Dial("tcp", m.ln.Addr().String())
	assert.Error(t, err)
}

func newConfigProvider(t *testing.T, configKey string) config.Provider {
	configs := map[string]string{
		"valid": `
jsonrpc:
  address: 127.0.0.1:0`,
		"missingKey": `
jsonrpc:
  other: value`,
		"missingValue": `
jsonrpc:
  address: ""`,
		"formatProblem": `
jsonrpc:
  address:
    key: val`,
	}

	provider, err := config.NewYAML(config.Source(strings.NewReader(configs[configKey])))
	require.NoError(t, err)
	return provider
}
