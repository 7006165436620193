package core

import (
	"errors"
	"fmt"
)

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Store 错误：NOT_FOUND, UNAVAILABLE
//   - 目录/配置错误：DATA_INTEGRITY
//   - 请求错误：INVALID_INPUT
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "DATA_INTEGRITY"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "catalog", "compose"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError（支持 %w 包装链），如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var integrityErr *DataIntegrityError
	if errors.As(err, &integrityErr) {
		return integrityErr.DomainError()
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	// 通用错误代码
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 服务不可用
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeDataIntegrity = "DATA_INTEGRITY" // 目录/配置数据有缺陷
)

// 模块名称常量
const (
	ModuleStore   = "store"   // 存储模块
	ModuleCatalog = "catalog" // 物品目录
	ModuleRules   = "rules"   // 静态配置表
	ModuleCompose = "compose" // 结果组装
	ModuleEngine  = "engine"  // 引擎入口
)

// DataIntegrityError 表示目录编写缺陷（例如物品缺少英文名称），
// 不是可以静默恢复的运行时状况，应让当前请求失败。
type DataIntegrityError struct {
	Module string
	ItemID string
	Field  string
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("%s: item %q: %s: %s", e.Module, e.ItemID, e.Field, e.Reason)
}

// DomainError 转换为统一的 DomainError，便于 IsXXX 检查。
func (e *DataIntegrityError) DomainError() *DomainError {
	return NewDomainError(e.Module, ErrorCodeDataIntegrity, e.Error())
}

// NewDataIntegrityError 创建数据完整性错误
func NewDataIntegrityError(module, itemID, field, reason string) *DataIntegrityError {
	return &DataIntegrityError{Module: module, ItemID: itemID, Field: field, Reason: reason}
}

// 通用错误检查函数

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool {
	return hasCode(err, ErrorCodeUnavailable)
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool {
	return hasCode(err, ErrorCodeInvalidInput)
}

// IsDataIntegrity 检查错误是否为 DATA_INTEGRITY
func IsDataIntegrity(err error) bool {
	return hasCode(err, ErrorCodeDataIntegrity)
}
