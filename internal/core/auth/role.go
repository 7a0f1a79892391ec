package auth

// Role 两种互不相交的主体类型；空值表示匿名
type Role string

const (
	RoleAnonymous Role = ""
	RoleUsuario   Role = "Usuario"
	RoleCriador   Role = "Criador"
)

func (r Role) Valid() bool { return r == RoleUsuario || r == RoleCriador }

// Principal 认证边界上的标签联合：{Usuario, Criador} + email
type Principal struct {
	Role  Role
	Email string
}

func (p Principal) Is(r Role) bool { return p.Role == r }
