package guarantees

import (
	"errors"

	"github.com/dep2p/go-guarantees/pkg/types"
)

// 公共错误定义
var (
	// ErrUnknownGuarantee 未知的投递保证级别
	ErrUnknownGuarantee = types.ErrUnknownGuarantee

	// ErrEmptyReceiver 发送方未指定接收方
	ErrEmptyReceiver = errors.New("guarantees: empty receiver id")

	// ErrNilOption 选项为 nil
	ErrNilOption = errors.New("guarantees: nil option")
)
