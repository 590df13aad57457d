package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default", []string{"serve"}, "config.yml"},
		{"before subcommand", []string{"-c", "a.yml", "serve"}, "a.yml"},
		{"after subcommand", []string{"shorten", "-c", "other.yml", "https://example.com"}, "other.yml"},
		{"long flag", []string{"shorten", "--config", "b.yml"}, "b.yml"},
		{"long flag with value", []string{"migrate", "--config=c.yml"}, "c.yml"},
		{"short flag with value", []string{"migrate", "-c=d.yml"}, "d.yml"},
		{"short flag attached", []string{"migrate", "-ce.yml"}, "e.yml"},
		{"last wins", []string{"-c", "a.yml", "serve", "-c", "b.yml"}, "b.yml"},
		{"dangling flag", []string{"serve", "-c"}, "config.yml"},
		{"after terminator", []string{"shorten", "--", "-c"}, "config.yml"},
		{"other flags", []string{"shorten", "--endpoint", "http://x", "--timeout", "1s", "u"}, "config.yml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, configPath(tt.args))
		})
	}
}
