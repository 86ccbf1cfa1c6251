package engine

import (
	"encoding/json"
	"fmt"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// VarBinding is one task variable fully resolved against every example:
// its declared kind, its assigned Pointer (= its position in the task's
// variable map), and its per-example values in whichever of the three
// slices matches Kind.
type VarBinding struct {
	Name        string
	Kind        Kind
	Ptr         Pointer
	IntValues   []Int
	StrValues   []Str
	ArrayValues []IntArray
}

// Task is the core-facing, fully validated form of the external JSON
// task document. Loading and validating raw JSON is kept out of the core
// proper (the Driver only consumes a *Task); see LoadTask and ParseTask
// for the collaborator that builds one.
type Task struct {
	Source         string
	Variables      []VarBinding
	IntLiterals    []IntConstant
	StrLiterals    []StrConstant
	ReturnType     Kind
	HasReturn      bool
	ExpectedOutput *OutputSpec
	exampleCount   int
}

// OutputSpec is a task's required per-example output, decoded against
// ReturnType. Present only when the task document declares a returnType
// and every example carries an "output" field; a state-only task has no
// OutputSpec, and the external solver loop has nothing to compare
// admitted programs against.
type OutputSpec struct {
	Kind        Kind
	IntValues   []Int
	StrValues   []Str
	ArrayValues []IntArray
}

// ExampleCount returns the fixed per-example count E every admitted
// program's values must have length equal to.
func (t *Task) ExampleCount() int { return t.exampleCount }

// VarNames returns the task's variable names in declaration order; a
// variable's index in this slice is its Pointer.
func (t *Task) VarNames() []string {
	names := make([]string, len(t.Variables))
	for i, v := range t.Variables {
		names[i] = v.Name
	}
	return names
}

// taskDoc is the raw JSON shape of a task document. Variables and each
// example's Input/State use orderedmap so that JSON object key order (the
// document's declared variable order) survives decoding; Go's map[string]T
// decoding is unordered and would make pointer assignment nondeterministic
// across runs.
type taskDoc struct {
	Source      string                                  `json:"source"`
	Variables   *orderedmap.OrderedMap[string, string]   `json:"variables"`
	IntLiterals []int32                                  `json:"intLiterals"`
	StrLiterals []string                                 `json:"strLiterals"`
	ReturnType  *string                                  `json:"returnType"`
	Examples    []exampleDoc                             `json:"examples"`
	Solution    json.RawMessage                          `json:"solution"`
}

type exampleDoc struct {
	Input  *orderedmap.OrderedMap[string, json.RawMessage] `json:"input"`
	State  *orderedmap.OrderedMap[string, json.RawMessage] `json:"state"`
	Output json.RawMessage                                 `json:"output"`
}

// TaskError is the closed taxonomy of task-validation failures reported
// by LoadTask/ParseTask. These are reported once, before a Driver exists;
// candidate-evaluation failure inside the core never takes this form.
type TaskError struct {
	Reason string
}

func (e *TaskError) Error() string { return "task: " + e.Reason }

func taskErrorf(format string, args ...any) error {
	return &TaskError{Reason: fmt.Sprintf(format, args...)}
}

// LoadTask reads and validates the task document at path.
func LoadTask(path string) (*Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, taskErrorf("reading %s: %v", path, err)
	}
	return ParseTask(data)
}

// ParseTask decodes and validates a task document from raw JSON bytes.
func ParseTask(data []byte) (*Task, error) {
	var doc taskDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, taskErrorf("decoding task: %v", err)
	}
	return doc.validate()
}

var supportedKinds = map[string]Kind{
	"Int":   KindInt,
	"Str":   KindStr,
	"[Int]": KindIntArray,
}

func (doc *taskDoc) validate() (*Task, error) {
	if doc.Variables == nil || doc.Variables.Len() == 0 {
		return nil, taskErrorf("task declares no variables")
	}
	if len(doc.Examples) == 0 {
		return nil, taskErrorf("task has no examples")
	}

	t := &Task{
		Source:       doc.Source,
		exampleCount: len(doc.Examples),
	}

	declared := make(map[string]bool, doc.Variables.Len())
	for pair := doc.Variables.Oldest(); pair != nil; pair = pair.Next() {
		name, tag := pair.Key, pair.Value
		kind, ok := supportedKinds[tag]
		if !ok {
			return nil, taskErrorf("variable %q has unsupported type %q", name, tag)
		}
		binding, err := bindVariable(doc.Examples, name, kind, Pointer(len(t.Variables)))
		if err != nil {
			return nil, err
		}
		t.Variables = append(t.Variables, *binding)
		declared[name] = true
	}

	// Every example must bind exactly the declared variable set: missing
	// bindings are caught by bindVariable above, extras here.
	for i, ex := range doc.Examples {
		if name, ok := undeclaredBinding(ex, declared); ok {
			return nil, taskErrorf("example %d binds undeclared variable %q", i, name)
		}
	}

	if doc.ReturnType != nil {
		kind, ok := supportedKinds[*doc.ReturnType]
		if !ok {
			return nil, taskErrorf("returnType %q is unsupported", *doc.ReturnType)
		}
		t.ReturnType = kind
		t.HasReturn = true

		out, err := decodeOutputs(doc.Examples, kind)
		if err != nil {
			return nil, err
		}
		t.ExpectedOutput = out
	}

	for _, v := range doc.IntLiterals {
		t.IntLiterals = append(t.IntLiterals, IntConstant{Code: fmt.Sprintf("%d", v), Value: Int(v)})
	}
	for _, s := range doc.StrLiterals {
		raw, err := json.Marshal(s)
		if err != nil {
			return nil, taskErrorf("encoding strLiteral %q: %v", s, err)
		}
		t.StrLiterals = append(t.StrLiterals, StrConstant{Code: string(raw), Value: Str(s)})
	}

	return t, nil
}

func bindVariable(examples []exampleDoc, name string, kind Kind, ptr Pointer) (*VarBinding, error) {
	b := &VarBinding{Name: name, Kind: kind, Ptr: ptr}

	for i, ex := range examples {
		raw, ok := lookupVar(ex, name)
		if !ok {
			return nil, taskErrorf("example %d is missing a binding for %q", i, name)
		}
		if err := decodeInto(raw, kind, &b.IntValues, &b.StrValues, &b.ArrayValues); err != nil {
			return nil, taskErrorf("example %d: %q: %v", i, name, err)
		}
	}

	return b, nil
}

// decodeOutputs decodes each example's expected output against returnType,
// when the task document declares one and examples carry an "output"
// field. A task with no returnType, or whose examples omit output (a
// state-only task), yields a nil *OutputSpec: there is nothing for the
// external solver loop to compare admitted programs against.
func decodeOutputs(examples []exampleDoc, kind Kind) (*OutputSpec, error) {
	out := &OutputSpec{Kind: kind}
	for i, ex := range examples {
		if ex.Output == nil {
			return nil, nil
		}
		if err := decodeInto(ex.Output, kind, &out.IntValues, &out.StrValues, &out.ArrayValues); err != nil {
			return nil, taskErrorf("example %d: output: %v", i, err)
		}
	}
	return out, nil
}

// decodeValue decodes one JSON literal against the kind the document
// declared for it, yielding a kind-tagged AnyVal.
func decodeValue(raw json.RawMessage, kind Kind) (AnyVal, error) {
	out := AnyVal{Kind: kind}
	switch kind {
	case KindInt:
		var v int32
		if err := json.Unmarshal(raw, &v); err != nil {
			return AnyVal{}, err
		}
		out.Int = Int(v)
	case KindStr:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return AnyVal{}, err
		}
		out.Str = Str(v)
	case KindIntArray:
		var v []int32
		if err := json.Unmarshal(raw, &v); err != nil {
			return AnyVal{}, err
		}
		arr := make(IntArray, len(v))
		for j, e := range v {
			arr[j] = Int(e)
		}
		out.Array = arr
	}
	return out, nil
}

func decodeInto(raw json.RawMessage, kind Kind, ints *[]Int, strs *[]Str, arrays *[]IntArray) error {
	v, err := decodeValue(raw, kind)
	if err != nil {
		return err
	}
	switch kind {
	case KindInt:
		*ints = append(*ints, v.Int)
	case KindStr:
		*strs = append(*strs, v.Str)
	case KindIntArray:
		*arrays = append(*arrays, v.Array)
	}
	return nil
}

func undeclaredBinding(ex exampleDoc, declared map[string]bool) (string, bool) {
	for _, m := range []*orderedmap.OrderedMap[string, json.RawMessage]{ex.Input, ex.State} {
		if m == nil {
			continue
		}
		for pair := m.Oldest(); pair != nil; pair = pair.Next() {
			if !declared[pair.Key] {
				return pair.Key, true
			}
		}
	}
	return "", false
}

func lookupVar(ex exampleDoc, name string) (json.RawMessage, bool) {
	if ex.Input != nil {
		if v, ok := ex.Input.Get(name); ok {
			return v, true
		}
	}
	if ex.State != nil {
		if v, ok := ex.State.Get(name); ok {
			return v, true
		}
	}
	return nil, false
}
