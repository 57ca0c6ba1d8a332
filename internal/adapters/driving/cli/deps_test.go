package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

func TestDepsCmd(t *testing.T) {
	resolver := &fakeResolver{
		entries: sampleEntries(),
		deps:    domain.NewPathSet("unit.yaml", "pages/intro.md", "files/b.pdf"),
	}
	withServices(t, &Services{Resolver: resolver, RemoteErr: domain.ErrNotConfigured})

	out, err := execute(t, "deps", "unit.yaml")

	require.NoError(t, err)
	assert.Nil(t, resolver.verifyWith)
	assert.Equal(t, "files/b.pdf\npages/intro.md\nunit.yaml\n", out)
}

func TestDepsCmd_ResolveError(t *testing.T) {
	resolver := &fakeResolver{err: domain.ErrUnsupportedFormat}
	withServices(t, &Services{Resolver: resolver})

	_, err := execute(t, "deps", "unit.json")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestDepsCmd_RequiresArgs(t *testing.T) {
	withServices(t, &Services{Resolver: &fakeResolver{}})

	_, err := execute(t, "deps")

	assert.Error(t, err)
}
