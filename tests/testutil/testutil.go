package testutil

import (
	"os"
	"testing"
)

// RequireTestEnvironment fails the test unless GO_ENV is "test". The guard
// keeps suites that touch shared infrastructure away from development and
// production databases.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	if env := os.Getenv("GO_ENV"); env != "test" {
		t.Fatalf("refusing to run outside the test environment: GO_ENV=%q, want \"test\"", env)
	}
}

// RequireTestEnvironmentOrSkip skips the test instead of failing when GO_ENV
// is not "test". For optional suites that are safe to omit.
func RequireTestEnvironmentOrSkip(t *testing.T) {
	t.Helper()

	if env := os.Getenv("GO_ENV"); env != "test" {
		t.Skipf("GO_ENV=%q, skipping (needs \"test\")", env)
	}
}

// MustSetTestEnvironment forces GO_ENV to "test". Call it from TestMain or
// suite setup before anything reads configuration.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("could not set GO_ENV=test: %v", err)
	}
}
