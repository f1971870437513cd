package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"block:render",
		"block:handler",
	},
	"author": {
		"block:create",
		"block:export",
		"block:render",
		"block:handler",
	},
	"admin": {
		"*", // everything
	},
}
