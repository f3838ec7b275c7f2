// Package types 定义投递保证协议的公共数据结构
//
// 本文件定义所有公共错误类型。
package types

import "errors"

// ============================================================================
//                              消息相关错误
// ============================================================================

var (
	// ErrInvalidMessage 无效的消息格式
	ErrInvalidMessage = errors.New("invalid message")

	// ErrInvalidSeq 序列号无效（必须 >= 1）
	ErrInvalidSeq = errors.New("invalid sequence number: must be >= 1")

	// ErrEmptyMessageType 消息类型为空
	ErrEmptyMessageType = errors.New("empty message type")
)

// ============================================================================
//                              投递保证相关错误
// ============================================================================

var (
	// ErrUnknownGuarantee 未知的投递保证级别
	ErrUnknownGuarantee = errors.New("unknown delivery guarantee")
)
