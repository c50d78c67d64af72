package errors

import (
	"errors"
	"fmt"
)

// ── 错误分类 ──
// 业务层的具体错误通过 %w 包装下列分类之一，Handler 层按分类映射 HTTP 状态码。

var (
	// ErrInvalidIdentifier 标识符格式无效（在访问存储前拦截）
	ErrInvalidIdentifier = errors.New("标识符格式无效")
	// ErrNotFound 引用的实体不存在，或查询结果为空
	ErrNotFound = errors.New("资源不存在")
	// ErrConflict 唯一性冲突（如邮箱重复）
	ErrConflict = errors.New("资源冲突")
	// ErrUpstreamStore 存储调用失败，原样上抛，不重试
	ErrUpstreamStore = errors.New("存储服务异常")
)

// Store 将存储层错误归类为 ErrUpstreamStore，同时保留原始错误链
func Store(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrUpstreamStore, err)
}
