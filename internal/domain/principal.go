package domain

// Conta 两类主体共用的账号字段；Senha 入库前已是摘要
type Conta struct {
	Nome  string `gorm:"size:100" json:"nome" binding:"max=100"`
	Email string `gorm:"size:191;not null;index" json:"email" binding:"required,email,max=191"`
	Senha string `gorm:"size:100;not null" json:"senha,omitempty" binding:"required,min=6,max=72"`
}

func (c *Conta) Account() *Conta { return c }

// Account 由 Usuario / Criador 实现
type Account interface {
	Entity
	Account() *Conta
}

// Usuario 普通用户，拥有多个 Playlist
type Usuario struct {
	Model
	Conta
	Playlists []Playlist `gorm:"constraint:OnDelete:CASCADE" json:"playlists,omitempty" binding:"-"`
}

func (Usuario) TableName() string { return "usuarios" }

// Criador 内容创作者，拥有多个 Conteudo
type Criador struct {
	Model
	Conta
	Conteudos []Conteudo `gorm:"constraint:OnDelete:CASCADE" json:"conteudos,omitempty" binding:"-"`
}

func (Criador) TableName() string { return "criadores" }
