package vm

// Stack is the LIFO operand stack of signed 32-bit integers. It starts
// empty and has no depth limit.
type Stack struct {
	Data []int32
}

func (s *Stack) Push(value int32) {
	s.Data = append(s.Data, value)
}

func (s *Stack) Pop() (value int32, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Peek() (value int32, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

// Swap exchanges the top two entries.
func (s *Stack) Swap() (ok bool) {
	if len(s.Data) < 2 {
		return
	}

	last := len(s.Data) - 1
	s.Data[last], s.Data[last-1] = s.Data[last-1], s.Data[last]

	return true
}

func (s *Stack) Len() int {
	return len(s.Data)
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
