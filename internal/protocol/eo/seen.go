package eo

const wordBits = 64

// seenWindow 以 head 为逻辑起点的循环位图
//
// 位存放在定长 uint64 数组中，容量 win 不要求是 64 的倍数。
type seenWindow struct {
	words []uint64
	win   int
	head  int
}

func newSeenWindow(win int) *seenWindow {
	return &seenWindow{
		words: make([]uint64, (win+wordBits-1)/wordBits),
		win:   win,
	}
}

func (w *seenWindow) slot(offset int) (word int, mask uint64) {
	i := (w.head + offset) % w.win
	return i / wordBits, 1 << uint(i%wordBits)
}

// get 返回相对 head 偏移 offset 处的位
func (w *seenWindow) get(offset int) bool {
	word, mask := w.slot(offset)
	return w.words[word]&mask != 0
}

// set 设置相对 head 偏移 offset 处的位
func (w *seenWindow) set(offset int, v bool) {
	word, mask := w.slot(offset)
	if v {
		w.words[word] |= mask
	} else {
		w.words[word] &^= mask
	}
}

// advance 逻辑起点前移一位，并清除离开窗口的旧起点
func (w *seenWindow) advance() {
	w.head = (w.head + 1) % w.win
	w.set(w.win-1, false)
}

// ensure 保证 offset 落在窗口内，返回是否发生了扩容
//
// 容量小于 maxGrowth 时按倍数增长，仍不够则精确扩容到 offset+1。
func (w *seenWindow) ensure(offset, maxGrowth int) bool {
	if offset < w.win {
		return false
	}

	newWin := w.win
	for offset >= newWin && newWin < maxGrowth {
		newWin *= 2
	}
	if offset >= newWin {
		newWin = offset + 1
	}

	grown := newSeenWindow(newWin)
	for d := 0; d < w.win; d++ {
		if w.get(d) {
			grown.set(d, true)
		}
	}
	*w = *grown
	return true
}

// capacity 返回位图容量
func (w *seenWindow) capacity() int {
	return w.win
}
