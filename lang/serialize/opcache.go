package serialize

import "github.com/mna/fuzzil/lang/ilop"

// opCacheSize bounds the shared operation cache both writer and reader
// maintain; large enough to cover a program's working set of frequently
// repeated operations (BeginIf, Dup, a recurring LoadInteger literal, ...)
// without unbounded growth (spec §4.6).
const opCacheSize = 4096

// opCache is the small cache the writer and reader populate identically, in
// instruction order, so a repeated (opcode, payload) pair encodes as a
// single index instead of its full payload. Eviction is FIFO over first-seen
// order: a hit does not refresh an entry, so once the cache is full the
// oldest-inserted entry is replaced next even if it was just used; this is
// not least-recently-used eviction.
type opCache struct {
	entries   []ilop.Operation
	index     map[string]int
	nextEvict int
}

func newOpCache() *opCache {
	return &opCache{index: map[string]int{}}
}

func (c *opCache) lookup(key []byte) (int, bool) {
	i, ok := c.index[string(key)]
	return i, ok
}

func (c *opCache) get(i int) ilop.Operation { return c.entries[i] }

func (c *opCache) insert(key []byte, op ilop.Operation) {
	k := string(key)
	if _, ok := c.index[k]; ok {
		return
	}
	if len(c.entries) < opCacheSize {
		c.entries = append(c.entries, op)
		c.index[k] = len(c.entries) - 1
		return
	}
	slot := c.nextEvict
	for oldKey, i := range c.index {
		if i == slot {
			delete(c.index, oldKey)
			break
		}
	}
	c.entries[slot] = op
	c.index[k] = slot
	c.nextEvict = (c.nextEvict + 1) % opCacheSize
}
