package ilprog

import "github.com/mna/fuzzil/lang/ilop"

// Block describes one fully-matched Begin...End region of a Code: the
// index of its opening instruction, the indices of any chain-continuation
// instructions in between (e.g. a BeginElse inside an if/else, or a
// BeginCatch inside a try), and the index of its closing instruction.
// Switch cases are blocks of their own, nested inside their switch.
type Block struct {
	Begin  int
	Chain  []int
	End    int
	Parent int // index into BlockMatcher.blocks of the enclosing block, or -1
}

// Head returns the instruction index active for position pos within the
// block: the last chain link at or before pos, or Begin if none.
func (b Block) Head(pos int) int {
	head := b.Begin
	for _, c := range b.Chain {
		if c <= pos {
			head = c
		}
	}
	return head
}

// BlockMatcher recovers the nesting structure of a flat Code by scanning
// Begin/End opcode pairing. It panics on malformed input; callers run it
// only after Validate has confirmed the Code is well-formed.
type BlockMatcher struct {
	blocks []Block
	// indexToBlock maps the index of every instruction to the innermost
	// Block it belongs to (-1 at top level), so lookups from any point
	// inside a block are O(1).
	indexToBlock map[int]int
}

// MatchBlocks scans instrs and returns the fully recovered block structure.
func MatchBlocks(instrs []Instruction) *BlockMatcher {
	m := &BlockMatcher{indexToBlock: map[int]int{}}
	type frame struct {
		blockIdx int
		opener   ilop.Opcode
	}
	var stack []frame
	for i, instr := range instrs {
		op := instr.Op()
		switch {
		case len(stack) > 0 && ilop.ValidNextInBlock(stack[len(stack)-1].opener, op) && !op.IsBlockStart():
			// pure chain continuation that does not itself open a new frame,
			// e.g. EndSwitchCase, EndIf.
			top := &stack[len(stack)-1]
			m.blocks[top.blockIdx].End = i
			m.indexToBlock[i] = top.blockIdx
			stack = stack[:len(stack)-1]
		case len(stack) > 0 && ilop.ValidNextInBlock(stack[len(stack)-1].opener, op):
			// chain continuation that itself reopens a nested frame (BeginElse,
			// BeginCatch, BeginFinally, ...).
			top := &stack[len(stack)-1]
			m.blocks[top.blockIdx].Chain = append(m.blocks[top.blockIdx].Chain, i)
			m.indexToBlock[i] = top.blockIdx
			top.opener = op
		case op.IsBlockStart():
			idx := len(m.blocks)
			parent := -1
			if len(stack) > 0 {
				parent = stack[len(stack)-1].blockIdx
			}
			m.blocks = append(m.blocks, Block{Begin: i, End: -1, Parent: parent})
			m.indexToBlock[i] = idx
			stack = append(stack, frame{blockIdx: idx, opener: op})
		default:
			if len(stack) > 0 {
				m.indexToBlock[i] = stack[len(stack)-1].blockIdx
			} else {
				m.indexToBlock[i] = -1
			}
		}
	}
	return m
}

// BlockOf returns the Block containing instruction index, or (_, false) if
// index is at the top level.
func (m *BlockMatcher) BlockOf(index int) (Block, bool) {
	idx, ok := m.indexToBlock[index]
	if !ok || idx < 0 {
		return Block{}, false
	}
	return m.blocks[idx], true
}

// Blocks returns every recovered block, outermost first in discovery order.
func (m *BlockMatcher) Blocks() []Block { return m.blocks }

// Depth returns the nesting depth of instruction index (0 at top level).
func (m *BlockMatcher) Depth(index int) int {
	depth := 0
	cur, ok := m.BlockOf(index)
	for ok {
		depth++
		if cur.Parent < 0 {
			break
		}
		cur, ok = m.blocks[cur.Parent], true
	}
	return depth
}
