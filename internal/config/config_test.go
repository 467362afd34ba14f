package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvironment(t *testing.T) {
	t.Run("prefixed variable wins", func(t *testing.T) {
		t.Setenv("FAIRPLAY_ENV", "production")
		t.Setenv("ENV", "staging")
		assert.Equal(t, "production", GetEnvironment())
	})

	t.Run("falls back to ENV", func(t *testing.T) {
		t.Setenv("FAIRPLAY_ENV", "")
		t.Setenv("ENV", "staging")
		assert.Equal(t, "staging", GetEnvironment())
	})

	t.Run("defaults to development", func(t *testing.T) {
		t.Setenv("FAIRPLAY_ENV", "")
		t.Setenv("ENV", "")
		assert.Equal(t, "development", GetEnvironment())
	})
}

func TestAddresses(t *testing.T) {
	c := &Config{
		Server:   ServerConfig{Host: "0.0.0.0"},
		Database: DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "fairplay", SSLMode: "disable"},
	}
	assert.Equal(t, "0.0.0.0:8080", c.GetServerAddress())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=fairplay sslmode=disable", c.GetDSN())
}
