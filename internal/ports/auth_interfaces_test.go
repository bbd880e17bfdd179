package ports_test

import (
	"testing"

	mocks "github.com/nftheater/admin-api/internal/mocks/auth"
	"github.com/nftheater/admin-api/internal/ports"
)

// This test only verifies that our fakes conform to the ports at compile time.
func TestFakesImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.IdentityProvider = (*mocks.FakeIdentityProvider)(nil)
	var _ ports.SessionStore = (*mocks.MemorySessionStore)(nil)
	var _ ports.KeyValueStore = (*mocks.MemoryKeyValueStore)(nil)
	var _ ports.ProfileDirectory = (*mocks.StaticProfileDirectory)(nil)
	var _ ports.RemoteConfig = (*mocks.StaticRemoteConfig)(nil)
}
