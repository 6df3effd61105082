package evm

// handleArithmetic implements the arithmetic/bitwise/comparison opcode
// family: ADD, MUL, SUB, DIV, SDIV, MOD, SMOD, ADDMOD, MULMOD, EXP,
// SIGNEXTEND, LT, GT, SLT, SGT, EQ, ISZERO, AND, OR, XOR, NOT, BYTE, SHL,
// SHR, SAR. For every binary op the first value popped (the stack's top)
// is `a`, the second is `b`. Division and modulo by zero yield zero
// instead of erroring.
//
// Any opcode reaching here that isn't in this family is InvalidOpcode.
func handleArithmetic(op byte, st *Stack[Word]) error {
	if !IsArithmetic(op) {
		return &InvalidOpcodeError{Op: op}
	}

	switch OpCode(op) {
	case ADD:
		a, b, err := pop2(st)
		if err != nil {
			return err
		}
		var r Word
		r.Add(&a, &b)
		return st.Push(r)

	case MUL:
		a, b, err := pop2(st)
		if err != nil {
			return err
		}
		var r Word
		r.Mul(&a, &b)
		return st.Push(r)

	case SUB:
		a, b, err := pop2(st)
		if err != nil {
			return err
		}
		var r Word
		r.Sub(&a, &b)
		return st.Push(r)

	case DIV:
		a, b, err := pop2(st)
		if err != nil {
			return err
		}
		var r Word
		r.Div(&a, &b) // uint256.Div yields 0 when b is zero
		return st.Push(r)

	case SDIV:
		a, b, err := pop2(st)
		if err != nil {
			return err
		}
		var r Word
		r.SDiv(&a, &b) // uint256.SDiv yields 0 when b is zero
		return st.Push(r)

	case MOD:
		a, b, err := pop2(st)
		if err != nil {
			return err
		}
		var r Word
		r.Mod(&a, &b)
		return st.Push(r)

	case SMOD:
		a, b, err := pop2(st)
		if err != nil {
			return err
		}
		var r Word
		r.SMod(&a, &b)
		return st.Push(r)

	case ADDMOD:
		a, b, n, err := pop3(st)
		if err != nil {
			return err
		}
		var r Word
		r.AddMod(&a, &b, &n) // yields 0 when n is zero
		return st.Push(r)

	case MULMOD:
		a, b, n, err := pop3(st)
		if err != nil {
			return err
		}
		var r Word
		r.MulMod(&a, &b, &n) // yields 0 when n is zero
		return st.Push(r)

	case EXP:
		base, exponent, err := pop2(st)
		if err != nil {
			return err
		}
		var r Word
		r.Exp(&base, &exponent)
		return st.Push(r)

	case SIGNEXTEND:
		b, x, err := pop2(st)
		if err != nil {
			return err
		}
		var r Word
		r.ExtendSign(&x, &b) // identity when b >= 32
		return st.Push(r)

	case LT:
		a, b, err := pop2(st)
		if err != nil {
			return err
		}
		return st.Push(boolWord(a.Lt(&b)))

	case GT:
		a, b, err := pop2(st)
		if err != nil {
			return err
		}
		return st.Push(boolWord(a.Gt(&b)))

	case SLT:
		a, b, err := pop2(st)
		if err != nil {
			return err
		}
		return st.Push(boolWord(a.Slt(&b)))

	case SGT:
		a, b, err := pop2(st)
		if err != nil {
			return err
		}
		return st.Push(boolWord(a.Sgt(&b)))

	case EQ:
		a, b, err := pop2(st)
		if err != nil {
			return err
		}
		return st.Push(boolWord(a.Eq(&b)))

	case ISZERO:
		a, err := st.Pop()
		if err != nil {
			return err
		}
		return st.Push(boolWord(a.IsZero()))

	case AND:
		a, b, err := pop2(st)
		if err != nil {
			return err
		}
		var r Word
		r.And(&a, &b)
		return st.Push(r)

	case OR:
		a, b, err := pop2(st)
		if err != nil {
			return err
		}
		var r Word
		r.Or(&a, &b)
		return st.Push(r)

	case XOR:
		a, b, err := pop2(st)
		if err != nil {
			return err
		}
		var r Word
		r.Xor(&a, &b)
		return st.Push(r)

	case NOT:
		a, err := st.Pop()
		if err != nil {
			return err
		}
		var r Word
		r.Not(&a)
		return st.Push(r)

	case BYTE:
		i, x, err := pop2(st)
		if err != nil {
			return err
		}
		var r Word
		r.Set(&x)
		r.Byte(&i) // Byte computes the i-th (MSB-first, 0-indexed) byte of its receiver, 0 if i>=32
		return st.Push(r)

	case SHL:
		shift, value, err := pop2(st)
		if err != nil {
			return err
		}
		var r Word
		if shift.LtUint64(256) {
			r.Lsh(&value, uint(shift.Uint64()))
		}
		return st.Push(r)

	case SHR:
		shift, value, err := pop2(st)
		if err != nil {
			return err
		}
		var r Word
		if shift.LtUint64(256) {
			r.Rsh(&value, uint(shift.Uint64()))
		}
		return st.Push(r)

	case SAR:
		shift, value, err := pop2(st)
		if err != nil {
			return err
		}
		var r Word
		if shift.LtUint64(256) {
			r.SRsh(&value, uint(shift.Uint64()))
		} else if IsNegative(&value) {
			r.SetAllOne()
		}
		return st.Push(r)
	}

	return &InvalidOpcodeError{Op: op}
}

func pop2(st *Stack[Word]) (a, b Word, err error) {
	if st.Len() < 2 {
		err = ErrStackUnderflow
		return
	}
	a, err = st.Pop()
	if err != nil {
		return
	}
	b, err = st.Pop()
	return
}

func pop3(st *Stack[Word]) (a, b, n Word, err error) {
	if st.Len() < 3 {
		err = ErrStackUnderflow
		return
	}
	a, err = st.Pop()
	if err != nil {
		return
	}
	b, err = st.Pop()
	if err != nil {
		return
	}
	n, err = st.Pop()
	return
}

func boolWord(b bool) Word {
	if b {
		return OneWord
	}
	return ZeroWord
}
