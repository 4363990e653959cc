package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{name: "Test1 OK", args: []string{"-u", "http://api:9000", "-a", ":9090", "-t", "5s", "-c", "ignored.json"},
			expected: &Config{APIBaseURL: "http://api:9000", ListenAddr: ":9090", RequestTimeout: 5 * time.Second}},
		{name: "Test2 db and level", args: []string{"-d=/tmp/s.db", "-l", "debug", "-s", "k"},
			expected: &Config{DatabasePath: "/tmp/s.db", LogLevel: "debug", SessionSecret: "k"}},
		{name: "Test3 incorrect timeout", args: []string{"-t", "abc"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			err := parseFlags(config, tt.args)

			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}
