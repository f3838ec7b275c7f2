package netsim

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/dep2p/go-guarantees/pkg/types"
)

// Properties 需要检查的投递属性
type Properties struct {
	// Reliable 每条消息至少投递其发送次数
	Reliable bool
	// Once 每条消息至多投递其发送次数
	Once bool
	// Ordered 投递序列是发送序列的子序列
	Ordered bool
}

// PropertiesOf 返回投递保证对应的属性
func PropertiesOf(g types.Guarantee) Properties {
	return Properties{Reliable: g.Reliable(), Once: g.Once(), Ordered: g.Ordered()}
}

// Check 检查接收方投递的消息是否满足属性
//
// 所有违反项通过 multierr 合并返回，nil 表示通过。
func Check(delivered []*types.Message, sent []string, props Properties) error {
	expected := make(map[string]int, len(sent))
	for _, text := range sent {
		expected[text]++
	}

	var err error
	got := make(map[string]int, len(expected))
	for _, m := range delivered {
		if m.Type != types.TypeMessage {
			err = multierr.Append(err, fmt.Errorf("%w: wrong type %s", ErrUnexpectedMessage, m.Type))
			continue
		}
		if _, ok := expected[m.Text]; !ok {
			err = multierr.Append(err, fmt.Errorf("%w: wrong data %q", ErrUnexpectedMessage, m.Text))
			continue
		}
		got[m.Text]++
	}

	// 按发送顺序遍历，保证错误顺序稳定
	checked := make(map[string]bool, len(expected))
	for _, text := range sent {
		if checked[text] {
			continue
		}
		checked[text] = true
		want, have := expected[text], got[text]
		if props.Reliable && have < want {
			err = multierr.Append(err, fmt.Errorf("%w: %q (observed %d < expected %d)", ErrNotDelivered, text, have, want))
		}
		if props.Once && have > want {
			err = multierr.Append(err, fmt.Errorf("%w: %q (observed %d > expected %d)", ErrDeliveredTwice, text, have, want))
		}
	}

	if props.Ordered {
		err = multierr.Append(err, checkOrdered(delivered, sent))
	}
	return err
}

// checkOrdered 检查投递序列是否为发送序列的子序列
//
// 匹配位置不前移，重复投递由 Once 检查负责。
func checkOrdered(delivered []*types.Message, sent []string) error {
	next := 0
	for i, m := range delivered {
		for next < len(sent) && sent[next] != m.Text {
			next++
		}
		if next == len(sent) {
			if i == 0 {
				return fmt.Errorf("%w: %q delivered first", ErrOrderViolation, m.Text)
			}
			return fmt.Errorf("%w: %q after %q", ErrOrderViolation, m.Text, delivered[i-1].Text)
		}
	}
	return nil
}
