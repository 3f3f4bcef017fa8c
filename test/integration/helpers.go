//go:build integration
// +build integration

package integration

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/communet-io/communet/pkg/commclient"
	"github.com/communet-io/communet/pkg/communet"
)

// TestConfig carries the connection details for a live community instance,
// read from the environment.
type TestConfig struct {
	CommunityURL string
	Username     string
	Password     string
	SessionKey   string
}

// LoadTestConfig reads the integration test configuration from the
// environment.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		CommunityURL: os.Getenv("COMMUNET_TEST_URL"),
		Username:     os.Getenv("COMMUNET_TEST_USERNAME"),
		Password:     os.Getenv("COMMUNET_TEST_PASSWORD"),
		SessionKey:   os.Getenv("COMMUNET_TEST_SESSION_KEY"),
	}
}

// SkipIfMissingConfig skips the test when no live community is configured.
func (c *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if c.CommunityURL == "" {
		t.Skip("COMMUNET_TEST_URL not set, skipping integration test")
	}

	if c.SessionKey == "" && (c.Username == "" || c.Password == "") {
		t.Skip("No credentials provided, skipping integration test")
	}
}

// NewClient builds a client for the configured community.
func (c *TestConfig) NewClient(t *testing.T) communet.Client {
	t.Helper()

	var (
		client communet.Client
		err    error
	)

	if c.SessionKey != "" {
		client, err = commclient.NewWithSessionKey(c.CommunityURL, c.SessionKey)
	} else {
		client, err = commclient.NewWithPassword(c.CommunityURL, c.Username, c.Password)
	}

	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	return client
}

// GenerateTestName produces a unique resource name for this run.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
