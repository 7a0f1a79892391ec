package auth

import "fmt"

type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Rule 一个操作所需的最低角色；Own 表示只能操作自己的账号
type Rule struct {
	Role Role
	Own  bool
}

func (r Rule) Anonymous() bool { return r.Role == RoleAnonymous }

// Policy resource -> op -> rule
type Policy map[string]map[Op]Rule

func (p Policy) Rule(resource string, op Op) (Rule, error) {
	ops, ok := p[resource]
	if !ok {
		return Rule{}, fmt.Errorf("policy: unknown resource %q", resource)
	}
	r, ok := ops[op]
	if !ok {
		return Rule{}, fmt.Errorf("policy: %s has no rule for %s", resource, op)
	}
	return r, nil
}

func all(r Rule) map[Op]Rule {
	return map[Op]Rule{OpList: r, OpGet: r, OpCreate: r, OpUpdate: r, OpDelete: r}
}

// DefaultPolicy 访问矩阵：内容公开可读，账号注册匿名，其余按角色
func DefaultPolicy() Policy {
	conteudos := all(Rule{Role: RoleCriador})
	conteudos[OpList] = Rule{}
	conteudos[OpGet] = Rule{}

	criadores := all(Rule{Role: RoleCriador})
	criadores[OpCreate] = Rule{}
	criadores[OpUpdate] = Rule{Role: RoleCriador, Own: true}
	criadores[OpDelete] = Rule{Role: RoleCriador, Own: true}

	usuarios := all(Rule{Role: RoleUsuario})
	usuarios[OpCreate] = Rule{}
	usuarios[OpUpdate] = Rule{Role: RoleUsuario, Own: true}
	usuarios[OpDelete] = Rule{Role: RoleUsuario, Own: true}

	return Policy{
		"conteudos": conteudos,
		"criadores": criadores,
		"usuarios":  usuarios,
		"playlists": all(Rule{Role: RoleUsuario}),
		"itens":     all(Rule{Role: RoleUsuario}),
	}
}
