package services

import "github.com/pedrohqs/atrio/internal/models"

// HasFullAccess reports whether the user bypasses every visibility check.
func HasFullAccess(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role == models.RoleDev || user.Role == models.RoleAdmin
}

func IsManagerUser(user *models.User) bool {
	return user != nil && user.Role == models.RoleGerente
}

func IsSellerUser(user *models.User) bool {
	return user != nil && user.Role == models.RoleVendedor
}

// IsVisible decides whether a resource with the given rule is shown to the
// user. An empty role allow-list denies everybody; region restrictions only
// apply to the base seller tier.
func IsVisible(rule models.VisibilityRule, user *models.User) bool {
	if user == nil {
		return false
	}
	if HasFullAccess(user) {
		return true
	}
	if !containsString(rule.Roles, user.Role) {
		return false
	}
	if IsSellerUser(user) && len(rule.Regions) > 0 {
		return containsString(rule.Regions, user.Region)
	}
	return true
}

// RestrictedResource is any row carrying its own visibility rule.
type RestrictedResource interface {
	Visibility() models.VisibilityRule
}

// FilterVisible keeps only the resources the user may see, preserving order.
func FilterVisible[T RestrictedResource](resources []T, user *models.User) []T {
	visible := make([]T, 0, len(resources))
	for _, resource := range resources {
		if IsVisible(resource.Visibility(), user) {
			visible = append(visible, resource)
		}
	}
	return visible
}

func containsString(values []string, needle string) bool {
	for _, value := range values {
		if value == needle {
			return true
		}
	}
	return false
}
