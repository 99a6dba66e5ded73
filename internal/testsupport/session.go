package testsupport

import (
	"testing"

	"seekbar/internal/config"
	"seekbar/internal/logging"
	"seekbar/internal/session"
)

// NewSession constructs a session for tests and registers cleanup for the
// case where the test leaves it running.
func NewSession(t testing.TB, cfg *config.Config) *session.Session {
	t.Helper()

	sess := session.New(cfg, logging.NewNop())
	t.Cleanup(sess.Stop)
	return sess
}
