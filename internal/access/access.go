// Package access scopes every repository call to an organization and role.
package access

import (
	"errors"
	"fmt"
	"strings"
)

const (
	RoleAdmin  = "admin"
	RoleSystem = "system"
	RoleMember = "member"
	RoleViewer = "viewer"
)

// Unassigned is the organization id that matches rows with no organization.
const Unassigned = "__unassigned__"

// AllOrganizations keys the global dashboard snapshot read by admin and system contexts.
const AllOrganizations = "__all__"

var (
	ErrMissingOrganization = errors.New("access: organization id required for scoped role")
	ErrForbidden           = errors.New("access: operation outside scope")
)

type Context struct {
	OrganizationID string
	Role           string
}

// System is the context scheduled jobs run under.
func System() Context {
	return Context{Role: RoleSystem}
}

// ForOrganization scopes to a single organization (or Unassigned).
func ForOrganization(orgID string) Context {
	return Context{OrganizationID: orgID, Role: RoleMember}
}

// Unrestricted reports whether the context sees every row.
func (c Context) Unrestricted() bool {
	return c.Role == RoleAdmin || c.Role == RoleSystem
}

func (c Context) Validate() error {
	if c.Unrestricted() {
		return nil
	}
	if strings.TrimSpace(c.OrganizationID) == "" {
		return ErrMissingOrganization
	}
	return nil
}

// RequireUnrestricted rejects scoped contexts for global operations.
func (c Context) RequireUnrestricted() error {
	if !c.Unrestricted() {
		return fmt.Errorf("%w: role %q", ErrForbidden, c.Role)
	}
	return nil
}

// SnapshotKey is the dashboard snapshot this context reads.
func (c Context) SnapshotKey() string {
	if c.Unrestricted() {
		return AllOrganizations
	}
	return c.OrganizationID
}

// Permits reports whether a row owned by orgID is visible to the context.
func (c Context) Permits(orgID *string) bool {
	if c.Unrestricted() {
		return true
	}
	if orgID == nil || *orgID == "" {
		return c.OrganizationID == Unassigned
	}
	return *orgID == c.OrganizationID
}

// Predicate renders a WHERE fragment restricting column to the context. placeholder is the
// positional index the fragment may use; args holds the values to bind, possibly none.
func (c Context) Predicate(column string, placeholder int) (string, []any) {
	switch {
	case c.Unrestricted():
		return "TRUE", nil
	case c.OrganizationID == Unassigned:
		return fmt.Sprintf("(%s IS NULL OR %s = '')", column, column), nil
	default:
		return fmt.Sprintf("%s = $%d", column, placeholder), []any{c.OrganizationID}
	}
}

func (c Context) String() string {
	if c.Unrestricted() {
		return c.Role
	}
	return c.Role + "@" + c.OrganizationID
}
