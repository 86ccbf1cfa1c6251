package engine

// Driver is the external solver loop's sole collaborator: it owns the
// bank, the vocabulary, and the current (level, vocab index, enumerator)
// triple, and exposes a lazy Next() sequence of admitted programs.
type Driver struct {
	bank  *Bank
	vocab *Vocabulary

	level      int
	vocabIdx   int
	snapshot   MaxSnapshot
	enumerator Enumerator

	hook func(AnyProg)
}

// Option configures a Driver at construction time.
type Option func(*Driver)

// WithHook registers a callback invoked with every admitted program,
// in admission order. Useful for tracing or incremental output without
// threading a channel through Next's caller.
func WithHook(fn func(AnyProg)) Option {
	return func(d *Driver) { d.hook = fn }
}

// New builds a Driver for task, interning its variables and the
// vocabulary's constant tables into a fresh Bank, and constructs the
// first enumerator at level 1 against vocab's first builder.
func New(vocab *Vocabulary, task *Task, opts ...Option) *Driver {
	bank := NewBank(task.ExampleCount(), task.VarNames())

	for _, v := range task.Variables {
		internVariable(bank, task, v)
	}
	internConstants(bank, task)

	d := &Driver{bank: bank, vocab: vocab, level: 1}
	for _, opt := range opts {
		opt(d)
	}
	d.resetEnumerator()
	return d
}

func internVariable(bank *Bank, task *Task, v VarBinding) {
	switch v.Kind {
	case KindInt:
		PutVariable(bank, v.Name, v.IntValues, v.Ptr)
	case KindStr:
		PutVariable(bank, v.Name, v.StrValues, v.Ptr)
	case KindIntArray:
		PutVariable(bank, v.Name, v.ArrayValues, v.Ptr)
	}
}

func internConstants(bank *Bank, task *Task) {
	for _, c := range DefaultIntConstants() {
		PutConstant(bank, c.Code, c.Value)
	}
	for _, c := range task.IntLiterals {
		PutConstant(bank, c.Code, c.Value)
	}
	for _, c := range DefaultStrConstants() {
		PutConstant(bank, c.Code, c.Value)
	}
	for _, c := range task.StrLiterals {
		PutConstant(bank, c.Code, c.Value)
	}
	code, empty := DefaultIntArrayConstant()
	PutConstant(bank, code, empty)
}

// resetEnumerator constructs the enumerator for the current (vocabIdx,
// level) pair against a freshly captured snapshot. Called once at
// construction and again on every advance.
func (d *Driver) resetEnumerator() {
	ordered := d.vocab.Ordered()
	if len(ordered) == 0 {
		d.enumerator = nil
		return
	}
	d.snapshot = d.bank.CurrentMax()
	d.enumerator = ordered[d.vocabIdx].MakeEnumerator(d.level, d.snapshot)
}

// Next returns the next admitted program in the synthesizer's total
// order, or false once the vocabulary is empty (there is nothing left to
// enumerate, ever). With a non-empty vocabulary, Next never permanently
// runs dry: level increments without bound.
func (d *Driver) Next() (AnyProg, bool) {
	if len(d.vocab.Ordered()) == 0 {
		return AnyProg{}, false
	}

	for {
		prog, result := d.enumerator.Step(d.bank)
		switch result {
		case StepSome:
			if d.hook != nil {
				d.hook(prog)
			}
			return prog, true
		case StepNone:
			continue
		case StepDone:
			d.advance()
		}
	}
}

func (d *Driver) advance() {
	d.vocabIdx++
	if d.vocabIdx >= len(d.vocab.Ordered()) {
		d.vocabIdx = 0
		d.level++
	}
	d.resetEnumerator()
}

// Bank returns the driver's bank for read-only inspection (printing code,
// checking outputs against a task's expected values).
func (d *Driver) Bank() *Bank { return d.bank }
