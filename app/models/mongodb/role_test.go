package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("HOD")
	assert.True(t, ok)
	assert.Equal(t, RoleHOD, role)

	_, ok = ParseRole("Janitor")
	assert.False(t, ok)
}

func TestRoleOrdering(t *testing.T) {
	ordered := []Role{
		RoleFaculty,
		RoleAcademicAdvisor,
		RoleHOD,
		RoleAssociateChairperson,
		RoleChairperson,
	}
	for i := 1; i < len(ordered); i++ {
		assert.True(t, ordered[i].Rank() > ordered[i-1].Rank())
	}
}

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, RoleChairperson.AtLeast(RoleHOD))
	assert.True(t, RoleHOD.AtLeast(RoleHOD))
	assert.False(t, RoleAcademicAdvisor.AtLeast(RoleHOD))
	assert.False(t, RoleFaculty.AtLeast(RoleHOD))

	// Unknown roles never clear any bar.
	assert.False(t, Role("Janitor").AtLeast(RoleFaculty))
}
