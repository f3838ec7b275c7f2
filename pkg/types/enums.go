package types

import (
	"fmt"
	"strings"
)

// ============================================================================
//                              Guarantee - 投递保证级别
// ============================================================================

// Guarantee 投递保证级别
type Guarantee int

const (
	// GuaranteeUnknown 未知级别
	GuaranteeUnknown Guarantee = iota
	// AtMostOnce 至多一次：不重传，允许丢失，不重复
	AtMostOnce
	// AtLeastOnce 至少一次：确认重传，不丢失，允许重复
	AtLeastOnce
	// ExactlyOnce 恰好一次：确认重传 + 去重，不保证顺序
	ExactlyOnce
	// ExactlyOnceOrdered 恰好一次且有序：确认重传 + 重排序缓冲
	ExactlyOnceOrdered
)

// All 返回所有已知的投递保证级别（按强度递增）
func All() []Guarantee {
	return []Guarantee{AtMostOnce, AtLeastOnce, ExactlyOnce, ExactlyOnceOrdered}
}

// String 返回投递保证的简写
func (g Guarantee) String() string {
	switch g {
	case AtMostOnce:
		return "AMO"
	case AtLeastOnce:
		return "ALO"
	case ExactlyOnce:
		return "EO"
	case ExactlyOnceOrdered:
		return "EOO"
	default:
		return "Unknown"
	}
}

// Title 返回投递保证的完整名称
func (g Guarantee) Title() string {
	switch g {
	case AtMostOnce:
		return "AT MOST ONCE"
	case AtLeastOnce:
		return "AT LEAST ONCE"
	case ExactlyOnce:
		return "EXACTLY ONCE"
	case ExactlyOnceOrdered:
		return "EXACTLY ONCE ORDERED"
	default:
		return "UNKNOWN"
	}
}

// IsValid 检查是否为已知级别
func (g Guarantee) IsValid() bool {
	return g >= AtMostOnce && g <= ExactlyOnceOrdered
}

// Reliable 是否保证每条消息最终被投递（网络最终可达时）
func (g Guarantee) Reliable() bool {
	return g == AtLeastOnce || g == ExactlyOnce || g == ExactlyOnceOrdered
}

// Once 是否保证每条消息至多被投递一次
func (g Guarantee) Once() bool {
	return g == AtMostOnce || g == ExactlyOnce || g == ExactlyOnceOrdered
}

// Ordered 是否保证按发送顺序投递
func (g Guarantee) Ordered() bool {
	return g == ExactlyOnceOrdered
}

// Windowed 发送方是否使用滑动窗口 + 确认重传
func (g Guarantee) Windowed() bool {
	return g.Reliable()
}

// ParseGuarantee 解析投递保证名称
//
// 支持简写（AMO/ALO/EO/EOO）与完整名称（at-most-once 等），大小写不敏感。
func ParseGuarantee(s string) (Guarantee, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("_", "-", " ", "-").Replace(name)

	switch name {
	case "amo", "at-most-once":
		return AtMostOnce, nil
	case "alo", "at-least-once":
		return AtLeastOnce, nil
	case "eo", "exactly-once":
		return ExactlyOnce, nil
	case "eoo", "exactly-once-ordered":
		return ExactlyOnceOrdered, nil
	default:
		return GuaranteeUnknown, fmt.Errorf("%w: %q", ErrUnknownGuarantee, s)
	}
}

// MarshalText 实现 encoding.TextMarshaler
func (g Guarantee) MarshalText() ([]byte, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGuarantee, int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (g *Guarantee) UnmarshalText(text []byte) error {
	parsed, err := ParseGuarantee(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ============================================================================
//                              Role - 进程角色
// ============================================================================

// Role 进程角色
type Role int

const (
	// RoleSender 发送方
	RoleSender Role = iota
	// RoleReceiver 接收方
	RoleReceiver
)

// String 返回角色的字符串表示
func (r Role) String() string {
	switch r {
	case RoleSender:
		return "sender"
	case RoleReceiver:
		return "receiver"
	default:
		return "unknown"
	}
}
