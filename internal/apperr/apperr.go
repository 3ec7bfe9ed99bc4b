package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误分类
type Kind int

const (
	KindUnknown    Kind = iota
	KindValidation      // 输入不合法（如评分超出 1-5）
	KindDuplicate       // 唯一约束冲突（如重复评分、邮箱已注册）
	KindConflict        // 状态冲突（如删除仍关联电影的作者）
	KindNotFound        // 目标记录不存在
	KindAuth            // 权限不足或未登录
	KindUpstream        // 外部接口调用失败
)

// Error 带分类的业务错误
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New 创建指定分类的错误
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap 包装底层错误并附加分类
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation 输入校验错误
func Validation(format string, args ...interface{}) *Error {
	return New(KindValidation, format, args...)
}

// Duplicate 唯一性冲突错误
func Duplicate(format string, args ...interface{}) *Error {
	return New(KindDuplicate, format, args...)
}

// Conflict 状态冲突错误
func Conflict(format string, args ...interface{}) *Error {
	return New(KindConflict, format, args...)
}

// NotFound 记录不存在错误
func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

// Auth 鉴权错误
func Auth(format string, args ...interface{}) *Error {
	return New(KindAuth, format, args...)
}

// Upstream 外部接口错误
func Upstream(format string, args ...interface{}) *Error {
	return New(KindUpstream, format, args...)
}

// KindOf 提取错误分类，非业务错误返回 KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind 判断错误是否属于指定分类
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func IsValidation(err error) bool { return IsKind(err, KindValidation) }
func IsDuplicate(err error) bool  { return IsKind(err, KindDuplicate) }
func IsConflict(err error) bool   { return IsKind(err, KindConflict) }
func IsNotFound(err error) bool   { return IsKind(err, KindNotFound) }
func IsAuth(err error) bool       { return IsKind(err, KindAuth) }
func IsUpstream(err error) bool   { return IsKind(err, KindUpstream) }
