package router

import (
	"sort"
	"sync"

	httpez "youwatch-api/internal/transport/http/ez"
)

// Module 一组路由；由 handler 包实现
type Module interface{ Mount(httpez.EZ) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

// Registry 模块注册表；每个 engine 一个实例
type Registry struct {
	mu   sync.RWMutex
	mods []Module
}

func (r *Registry) Register(mods ...Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range mods {
		if m != nil {
			r.mods = append(r.mods, m)
		}
	}
}

// MountAll 按优先级挂载所有已注册模块
func (r *Registry) MountAll(e httpez.EZ) {
	r.mu.RLock()
	mods := append([]Module(nil), r.mods...)
	r.mu.RUnlock()

	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.Mount(e)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
