package models

// Role is the teacher privilege hierarchy, ordered from lowest to highest.
type Role string

const (
	RoleFaculty              Role = "Faculty"
	RoleAcademicAdvisor      Role = "Academic Advisor"
	RoleHOD                  Role = "HOD"
	RoleAssociateChairperson Role = "Associate Chairperson"
	RoleChairperson          Role = "Chairperson"
)

var roleRank = map[Role]int{
	RoleFaculty:              1,
	RoleAcademicAdvisor:      2,
	RoleHOD:                  3,
	RoleAssociateChairperson: 4,
	RoleChairperson:          5,
}

// ParseRole maps a raw role string to a Role. Unknown strings report ok=false.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := roleRank[r]
	return r, ok
}

// Rank returns the position of the role in the hierarchy (1 = lowest).
// Unknown roles rank 0, below every valid role.
func (r Role) Rank() int {
	return roleRank[r]
}

// AtLeast reports whether r sits at or above other in the hierarchy.
func (r Role) AtLeast(other Role) bool {
	return r.Rank() >= other.Rank()
}

func (r Role) String() string {
	return string(r)
}
