package models

// VisibilityRule describes who may see a resource. Roles is an allow-list:
// an empty list means the resource is visible to nobody, not to everyone.
// Regions further restricts base-tier (vendedor) users only; an empty list
// means no region restriction.
type VisibilityRule struct {
	Roles   []string
	Regions []string
}
