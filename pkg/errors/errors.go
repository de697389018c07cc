package errors

import (
	"errors"

	"gorm.io/gorm"
)

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// IsUniqueViolation 判断是否为唯一约束冲突
// 依赖 gorm.Config.TranslateError，驱动层的 23505 会被翻译为 gorm.ErrDuplicatedKey
func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound 判断是否为记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
