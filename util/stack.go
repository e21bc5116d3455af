package util

// Stack is a LIFO of view states. The zero value is empty and ready to use.
type Stack[T any] []T

func (s *Stack[T]) Push(item T) {
	*s = append(*s, item)
}

// Pop removes the top item. An empty stack yields the zero value.
func (s *Stack[T]) Pop() (item T) {
	n := len(*s)
	if n == 0 {
		return
	}
	item, *s = (*s)[n-1], (*s)[:n-1]
	return
}

// Peek returns the top item without removing it.
func (s Stack[T]) Peek() (item T) {
	if len(s) > 0 {
		item = s[len(s)-1]
	}
	return
}

func (s Stack[T]) Len() int {
	return len(s)
}
