package constant

const (
	DefaultUserRoleID = 1

	RoleNameAdmin = "admin"

	ScopeUser  = "user"
	ScopeAdmin = "admin"

	TokenTypeBearer = "bearer"
)
