package config

import (
	"testing"

	"friendlocator/internal/domain/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, constants.StoreDriverFirestore, cfg.Store.Driver)
	assert.Equal(t, constants.AuthProviderFirebase, cfg.Auth.Provider)
	assert.Equal(t, defaultDedupeTTL, cfg.Redis.DedupeTTL)
	assert.False(t, cfg.Redis.Enabled())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "memory store with jwt auth",
			mutate: func(c *Config) {
				c.Store.Driver = constants.StoreDriverMemory
				c.Auth.Provider = constants.AuthProviderJWT
				c.Auth.JWTSecret = "secret"
			},
		},
		{
			name:    "firestore without project",
			mutate:  func(*Config) {},
			wantErr: "firebase.projectId",
		},
		{
			name: "unknown store driver",
			mutate: func(c *Config) {
				c.Store.Driver = "postgres"
			},
			wantErr: "unsupported store driver",
		},
		{
			name: "jwt without secret",
			mutate: func(c *Config) {
				c.Store.Driver = constants.StoreDriverMemory
				c.Auth.Provider = constants.AuthProviderJWT
			},
			wantErr: "auth.jwtSecret",
		},
		{
			name: "google pubsub without topic",
			mutate: func(c *Config) {
				c.Firebase.ProjectID = "demo"
				c.PubSub.Provider = constants.PubSubProviderGoogle
				c.PubSub.ProjectID = "demo"
			},
			wantErr: "pubsub.topicId",
		},
		{
			name: "local pubsub with endpoint",
			mutate: func(c *Config) {
				c.Firebase.ProjectID = "demo"
				c.PubSub.Provider = constants.PubSubProviderLocal
				c.PubSub.LocalEndpoint = "http://localhost:8081/push"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
