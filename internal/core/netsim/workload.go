package netsim

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dep2p/go-guarantees/pkg/types"
)

const (
	// SenderID 发送方进程 ID
	SenderID = "sender"
	// ReceiverID 接收方进程 ID
	ReceiverID = "receiver"

	// smallWorkload 不超过该消息数时按事件步进，否则按时间步进
	smallWorkload = 50

	randomTextLen = 100
	alphanumeric  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var fixedWords = []string{"distributed", "systems", "need", "some", "guarantees"}

// GenerateTexts 生成 n 条应用文本
//
//   - n == 5:  五个固定单词
//   - n == 10: 温度读数 "20C".."29C"（允许重复）
//   - 其他:    100 字符的随机字母数字串
func GenerateTexts(rng *rand.Rand, n int) []string {
	if n == len(fixedWords) {
		return append([]string(nil), fixedWords...)
	}
	texts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if n == 10 {
			texts = append(texts, fmt.Sprintf("%dC", 20+rng.IntN(10)))
		} else {
			texts = append(texts, randomText(rng, randomTextLen))
		}
	}
	return texts
}

func randomText(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumeric[rng.IntN(len(alphanumeric))]
	}
	return string(b)
}

// SendMessages 向发送方输入 n 条消息，输入之间穿插随机推进
//
// 小规模负载每条消息后随机处理 0 或 1 个事件；大规模负载每条消息后
// 推进 [0, 2s) 的随机时长。返回输入的文本（按输入顺序）。
func SendMessages(sys *System, n int) ([]string, error) {
	texts := GenerateTexts(sys.Rand(), n)
	for _, text := range texts {
		if err := sys.SendLocalMessage(SenderID, types.NewLocal(text)); err != nil {
			return nil, err
		}
		if n <= smallWorkload {
			if steps := sys.Rand().IntN(2); steps > 0 {
				sys.Steps(steps)
			}
		} else {
			sys.StepFor(time.Duration(sys.Rand().Float64() * float64(2*time.Second)))
		}
	}
	return texts, nil
}
