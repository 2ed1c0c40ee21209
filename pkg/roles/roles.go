package roles

// Role is the access level stored on a user account.
type Role string

const (
	Admin       Role = "Admin"
	CampManager Role = "Camp Manager"
	Volunteer   Role = "Volunteer"
	Donor       Role = "Donor"
)

// HierarchyLevel orders the operational roles. Donor sits outside the
// operational chain and shares the lowest level with Volunteer.
type HierarchyLevel int

const (
	DonorLevel       HierarchyLevel = 1
	VolunteerLevel   HierarchyLevel = 1
	CampManagerLevel HierarchyLevel = 2
	AdminLevel       HierarchyLevel = 3
)

func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case Admin:
		return AdminLevel
	case CampManager:
		return CampManagerLevel
	case Volunteer:
		return VolunteerLevel
	default:
		return DonorLevel
	}
}

// HasPermission reports whether r is at least as privileged as requiredRole.
func (r Role) HasPermission(requiredRole Role) bool {
	return r.IsValid() && r.GetHierarchyLevel() >= requiredRole.GetHierarchyLevel()
}

func (r Role) IsValid() bool {
	switch r {
	case Admin, CampManager, Volunteer, Donor:
		return true
	default:
		return false
	}
}

// IsManagerTrack reports whether the role may be flipped by camp manager
// assignment. Admin and Donor accounts are never touched.
func (r Role) IsManagerTrack() bool {
	return r == Volunteer || r == CampManager
}

func (r Role) String() string {
	return string(r)
}
