package evm

// handleSload implements SLOAD: pop key, push storage.Read(key) (zero if
// key was never written). Never fails except on stack underflow.
func handleSload(storage *Storage, st *Stack[Word]) error {
	key, err := st.Pop()
	if err != nil {
		return err
	}
	return st.Push(storage.Read(key))
}

// handleSstore implements SSTORE. Operand order is key-then-value: the
// key is popped first (the top of stack at entry), then the value. Note
// this is opposite the canonical EVM convention (value then key); callers
// push value first, then key.
func handleSstore(storage *Storage, st *Stack[Word]) error {
	key, err := st.Pop()
	if err != nil {
		return err
	}
	value, err := st.Pop()
	if err != nil {
		return err
	}
	storage.Write(key, value)
	return nil
}
