package security

import (
	"slices"

	"relief/pkg/roles"
)

type Resource string

type Action string

const (
	ResourceRequests      Resource = "requests"
	ResourceDistributions Resource = "distributions"
	ResourceSupplies      Resource = "supplies"
	ResourceCamps         Resource = "camps"
	ResourceDonations     Resource = "donations"
)

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var allActions = []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete}

var permissionMatrix = map[roles.Role]map[Resource][]Action{
	roles.Admin: {
		ResourceRequests:      allActions,
		ResourceDistributions: allActions,
		ResourceSupplies:      allActions,
		ResourceCamps:         allActions,
		ResourceDonations:     allActions,
	},
	roles.CampManager: {
		ResourceRequests:      {ActionRead, ActionCreate, ActionUpdate},
		ResourceDistributions: {ActionRead, ActionCreate},
		ResourceSupplies:      {ActionRead, ActionUpdate, ActionDelete},
		ResourceCamps:         {ActionRead, ActionUpdate},
		ResourceDonations:     {ActionRead},
	},
	roles.Volunteer: {
		ResourceRequests:      {ActionRead, ActionCreate, ActionUpdate},
		ResourceDistributions: {ActionRead},
		ResourceSupplies:      {ActionRead},
		ResourceCamps:         {ActionRead},
		ResourceDonations:     {ActionRead},
	},
	roles.Donor: {
		ResourceRequests:      {ActionRead},
		ResourceDistributions: {ActionRead},
		ResourceSupplies:      {ActionRead},
		ResourceCamps:         {ActionRead},
		ResourceDonations:     {ActionRead, ActionCreate},
	},
}

func HasPermission(role roles.Role, resource Resource, action Action) bool {
	resources, ok := permissionMatrix[role]
	if !ok {
		return false
	}
	return slices.Contains(resources[resource], action)
}
