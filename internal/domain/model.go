package domain

import "time"

// Model 带自增主键与乐观锁版本号的公共字段
type Model struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Version   uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (m *Model) Base() *Model { return m }

// Entity 由所有带 Model 的实体实现（指针接收者）
type Entity interface {
	Base() *Model
}

// UpdateResult 全量更新的结果；Conflict 由调用方决定如何暴露
type UpdateResult int

const (
	UpdateSuccess UpdateResult = iota
	UpdateNotFound
	UpdateConflict
)

func (r UpdateResult) String() string {
	switch r {
	case UpdateSuccess:
		return "success"
	case UpdateNotFound:
		return "not_found"
	case UpdateConflict:
		return "conflict"
	}
	return "unknown"
}
