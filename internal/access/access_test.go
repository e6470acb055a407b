package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestPredicate(t *testing.T) {
	clause, args := System().Predicate("c.organization_id", 3)
	assert.Equal(t, "TRUE", clause)
	assert.Empty(t, args)

	clause, args = ForOrganization("org-1").Predicate("c.organization_id", 3)
	assert.Equal(t, "c.organization_id = $3", clause)
	assert.Equal(t, []any{"org-1"}, args)

	clause, args = ForOrganization(Unassigned).Predicate("organization_id", 1)
	assert.Equal(t, "(organization_id IS NULL OR organization_id = '')", clause)
	assert.Empty(t, args)
}

func TestPermits(t *testing.T) {
	admin := Context{Role: RoleAdmin}
	assert.True(t, admin.Permits(nil))
	assert.True(t, admin.Permits(ptr("org-2")))

	member := ForOrganization("org-1")
	assert.True(t, member.Permits(ptr("org-1")))
	assert.False(t, member.Permits(ptr("org-2")))
	assert.False(t, member.Permits(nil))

	none := ForOrganization(Unassigned)
	assert.True(t, none.Permits(nil))
	assert.True(t, none.Permits(ptr("")))
	assert.False(t, none.Permits(ptr("org-1")))
}

func TestValidate(t *testing.T) {
	require.NoError(t, System().Validate())
	require.ErrorIs(t, Context{Role: RoleViewer}.Validate(), ErrMissingOrganization)
	require.NoError(t, ForOrganization("org-1").Validate())

	require.ErrorIs(t, ForOrganization("org-1").RequireUnrestricted(), ErrForbidden)
	assert.Equal(t, AllOrganizations, System().SnapshotKey())
	assert.Equal(t, "org-1", ForOrganization("org-1").SnapshotKey())
}
