package model

import (
	"database/sql/driver"
	"slices"
	"time"

	"gorm.io/datatypes"
)

// ── JSONB 集合类型 ──

// IDList 对应 PostgreSQL JSONB 数组列，元素为某一类实体 ID。
// 编解码委托给 datatypes.JSONSlice；作为集合使用，写入前应经 NewIDList 去重。
type IDList[T ~string] datatypes.JSONSlice[T]

// NewIDList 去重并保持首次出现的顺序；空输入返回空集合而非 nil
func NewIDList[T ~string](ids ...T) IDList[T] {
	seen := make(map[T]struct{}, len(ids))
	list := make(IDList[T], 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		list = append(list, id)
	}
	return list
}

// Contains 判断集合中是否包含 id
func (l IDList[T]) Contains(id T) bool {
	return slices.Contains(l, id)
}

// Scan 解析 JSONB 数组；NULL 视为空集合
func (l *IDList[T]) Scan(src interface{}) error {
	if src == nil {
		*l = IDList[T]{}
		return nil
	}
	var js datatypes.JSONSlice[T]
	if err := js.Scan(src); err != nil {
		return err
	}
	if js == nil {
		js = datatypes.JSONSlice[T]{}
	}
	*l = IDList[T](js)
	return nil
}

// Value 序列化为 JSON 数组；nil 写为 []
func (l IDList[T]) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return datatypes.JSONSlice[T](l).Value()
}

// BaseModel 通用时间戳字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
