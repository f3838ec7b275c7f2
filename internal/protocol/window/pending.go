package window

// pendingQueue 等待窗口空位的本地输入
//
// 出队只移动读游标，已消费部分达到一半时才整体前移，
// 出队均摊 O(1)。
type pendingQueue struct {
	items []string
	head  int
}

func (q *pendingQueue) push(text string) {
	q.items = append(q.items, text)
}

func (q *pendingQueue) pop() (string, bool) {
	if q.head >= len(q.items) {
		return "", false
	}
	text := q.items[q.head]
	q.head++
	return text, true
}

func (q *pendingQueue) len() int {
	return len(q.items) - q.head
}

// compact 在已消费部分不少于一半时丢弃它
func (q *pendingQueue) compact() {
	if q.head == 0 || q.head*2 < len(q.items) {
		return
	}
	n := copy(q.items, q.items[q.head:])
	clear(q.items[n:])
	q.items = q.items[:n]
	q.head = 0
}
