package ilprog

// Code is an ordered sequence of Instructions: either the top level of a
// Program, or the body of a nested block opened by a Begin-family
// instruction elsewhere in the Program.
type Code struct {
	instructions []Instruction
}

// NewCode builds a Code from an already-ordered instruction slice.
func NewCode(instructions []Instruction) *Code {
	return &Code{instructions: append([]Instruction(nil), instructions...)}
}

func (c *Code) Len() int                    { return len(c.instructions) }
func (c *Code) At(i int) Instruction        { return c.instructions[i] }
func (c *Code) Instructions() []Instruction { return c.instructions }

func (c *Code) Append(i Instruction) { c.instructions = append(c.instructions, i) }

// LastIndex returns the index of the last instruction, or -1 if c is empty.
func (c *Code) LastIndex() int { return len(c.instructions) - 1 }
