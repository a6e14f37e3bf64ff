package auth

import "context"

type PermissionChecker interface {
	CanManageAssignments(userPermissions []string) bool
	CanManageAssets(userPermissions []string) bool
	CanManageEmployees(userPermissions []string) bool
	CanExportData(userPermissions []string) bool
	CanImportData(userPermissions []string) bool
	CanViewAudit(userPermissions []string) bool
	HasAnyPermission(userPermissions []string, requiredPermissions []string) bool
	IsAdmin(userPermissions []string) bool
}

type DefaultPermissionChecker struct{}

func NewPermissionChecker() *DefaultPermissionChecker {
	return &DefaultPermissionChecker{}
}

// HasPermission checks one named permission. Admin passes every check.
func (c *DefaultPermissionChecker) HasPermission(ctx context.Context, userPermissions []string, permission string) (bool, error) {
	return c.HasAnyPermission(userPermissions, []string{permission, PermissionAdmin}), nil
}

func (c *DefaultPermissionChecker) IsAdminCtx(ctx context.Context, userPermissions []string) (bool, error) {
	return c.IsAdmin(userPermissions), nil
}

func (c *DefaultPermissionChecker) CanManageAssignments(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermissionManageAssignments, PermissionAdmin})
}

func (c *DefaultPermissionChecker) CanManageAssets(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermissionManageAssets, PermissionAdmin})
}

func (c *DefaultPermissionChecker) CanManageEmployees(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermissionManageEmployees, PermissionAdmin})
}

func (c *DefaultPermissionChecker) CanExportData(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermissionExportData, PermissionAdmin})
}

func (c *DefaultPermissionChecker) CanImportData(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermissionImportData, PermissionAdmin})
}

func (c *DefaultPermissionChecker) CanViewAudit(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermissionViewAudit, PermissionAdmin})
}

func (c *DefaultPermissionChecker) HasAnyPermission(userPermissions []string, requiredPermissions []string) bool {
	for _, userPerm := range userPermissions {
		for _, requiredPerm := range requiredPermissions {
			if userPerm == requiredPerm {
				return true
			}
		}
	}
	return false
}

func (c *DefaultPermissionChecker) IsAdmin(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermissionAdmin})
}
