package domain

// Conteudo 由且仅由一个 Criador 拥有
type Conteudo struct {
	Model
	Titulo        string         `gorm:"size:200;not null" json:"titulo" binding:"required,max=200"`
	Tipo          string         `gorm:"size:50" json:"tipo" binding:"max=50"`
	CriadorID     uint           `gorm:"not null;index" json:"criadorId" binding:"required"`
	Criador       *Criador       `gorm:"constraint:OnDelete:CASCADE" json:"criador,omitempty" binding:"-"`
	ItemPlaylists []ItemPlaylist `gorm:"constraint:OnDelete:CASCADE" json:"itemPlaylists,omitempty" binding:"-"`
}

func (Conteudo) TableName() string { return "conteudos" }

// Playlist 由且仅由一个 Usuario 拥有
type Playlist struct {
	Model
	Nome          string         `gorm:"size:200;not null" json:"nome" binding:"required,max=200"`
	UsuarioID     uint           `gorm:"not null;index" json:"usuarioId" binding:"required"`
	Usuario       *Usuario       `gorm:"constraint:OnDelete:CASCADE" json:"usuario,omitempty" binding:"-"`
	ItemPlaylists []ItemPlaylist `gorm:"constraint:OnDelete:CASCADE" json:"itemPlaylists,omitempty" binding:"-"`
}

func (Playlist) TableName() string { return "playlists" }

// ItemPlaylist 关联表，复合主键 (PlaylistID, ConteudoID)，无代理主键
type ItemPlaylist struct {
	PlaylistID uint      `gorm:"primaryKey;autoIncrement:false" json:"playlistId"`
	ConteudoID uint      `gorm:"primaryKey;autoIncrement:false" json:"conteudoId" binding:"required"`
	Playlist   *Playlist `json:"playlist,omitempty" binding:"-"`
	Conteudo   *Conteudo `json:"conteudo,omitempty" binding:"-"`
}

func (ItemPlaylist) TableName() string { return "item_playlists" }

// All 迁移顺序：被引用的表在前
func All() []any {
	return []any{&Usuario{}, &Criador{}, &Conteudo{}, &Playlist{}, &ItemPlaylist{}}
}
