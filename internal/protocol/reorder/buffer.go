// Package reorder 提供按序列号排序的乱序缓冲
//
// 至多一次与恰好一次有序接收方共用该缓冲：乱序到达的 DATA 先按 seq 存入，
// 待期望的序列号到达后连续冲刷给应用。
package reorder

import "github.com/google/btree"

const degree = 8

type entry struct {
	seq  uint64
	text string
}

func lessEntry(a, b entry) bool {
	return a.seq < b.seq
}

// Buffer 按 seq 排序的 seq -> text 缓冲
//
// 非并发安全，由所属的进程单线程访问。
type Buffer struct {
	tree *btree.BTreeG[entry]
}

// New 创建空缓冲
func New() *Buffer {
	return &Buffer{tree: btree.NewG(degree, lessEntry)}
}

// Put 在 seq 不存在时存入，返回是否存入
//
// 已存在的 seq 保留先到的文本。
func (b *Buffer) Put(seq uint64, text string) bool {
	if b.tree.Has(entry{seq: seq}) {
		return false
	}
	b.tree.ReplaceOrInsert(entry{seq: seq, text: text})
	return true
}

// Has 检查 seq 是否已缓冲
func (b *Buffer) Has(seq uint64) bool {
	return b.tree.Has(entry{seq: seq})
}

// Len 返回缓冲条目数
func (b *Buffer) Len() int {
	return b.tree.Len()
}

// Min 返回最小的已缓冲 seq
func (b *Buffer) Min() (uint64, bool) {
	e, ok := b.tree.Min()
	return e.seq, ok
}

// Flush 从 next 开始连续取出条目并依次交给 deliver，返回新的 next
//
// 遇到第一个缺口即停止，缺口之后的条目保留。
func (b *Buffer) Flush(next uint64, deliver func(seq uint64, text string)) uint64 {
	for {
		e, ok := b.tree.Min()
		if !ok || e.seq != next {
			return next
		}
		b.tree.DeleteMin()
		deliver(e.seq, e.text)
		next++
	}
}
