package store

// Mem is an in-memory KV for tests.
type Mem struct {
	m        map[string][]byte
	SetCalls int // number of Set invocations, observable by tests
}

func NewMem() *Mem {
	return &Mem{m: map[string][]byte{}}
}

func (s *Mem) Get(key string) ([]byte, bool, error) {
	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (s *Mem) Set(key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	s.m[key] = cp
	s.SetCalls++
	return nil
}
