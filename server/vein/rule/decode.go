package rule

import (
	"fmt"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/df-mc/oreveins/server/vein/doc"
)

// LeafFunc creates the Predicate of a leaf rule from its parameters. Leaves named by a bare string are created
// with nil parameters.
type LeafFunc[T any] func(params doc.Document) (Predicate[T], error)

// Family is a set of leaf rules over values of type T, together with the decoding of rule trees from documents.
type Family[T any] struct {
	name string

	mu    sync.RWMutex
	named map[string]LeafFunc[T]

	str func(s string) (Predicate[T], error)
	obj LeafFunc[T]
}

// NewFamily creates a Family. str, if not nil, creates a leaf from a string that is not a registered name. obj,
// if not nil, creates a leaf from an object that has neither a composite key nor a type.
func NewFamily[T any](name string, str func(s string) (Predicate[T], error), obj LeafFunc[T]) *Family[T] {
	return &Family[T]{name: name, named: make(map[string]LeafFunc[T]), str: str, obj: obj}
}

// Name returns the name of the Family, which is also the document field rules of the Family are read from.
func (f *Family[T]) Name() string {
	return f.name
}

// Register registers a leaf rule under the name passed. Documents refer to the leaf either as a bare string or as
// an object with a "type" field. Registering a name twice replaces the earlier leaf.
func (f *Family[T]) Register(name string, fn LeafFunc[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.named[name] = fn
}

// Names returns the names of all registered leaves, sorted.
func (f *Family[T]) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.named))
	for name := range f.named {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (f *Family[T]) lookup(name string) (LeafFunc[T], bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	fn, ok := f.named[name]
	return fn, ok
}

// Decode decodes a rule tree from a decoded document value:
//
//   - a string names a registered leaf, or is passed to the string constructor of the Family;
//   - a list is the conjunction of its elements;
//   - an object with one of the keys and, or, not or none_of is a composite of the rules under that key;
//   - any other object is a leaf, either named by its "type" field or created by the object constructor.
//
// Errors returned are of type *DecodeError.
func (f *Family[T]) Decode(raw any) (*Node[T], error) {
	return f.decode(raw, f.name)
}

// DecodeList decodes a list of independent rules, such as the rules of a vein that must all pass.
func (f *Family[T]) DecodeList(raw any) ([]*Node[T], error) {
	list, ok := raw.([]any)
	if !ok {
		list = []any{raw}
	}
	nodes := make([]*Node[T], 0, len(list))
	for i, e := range list {
		n, err := f.decode(e, fmt.Sprintf("%s[%d]", f.name, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (f *Family[T]) decode(raw any, path string) (*Node[T], error) {
	switch v := raw.(type) {
	case nil:
		return nil, f.errorf(path, "missing rule")
	case string:
		return f.decodeString(v, path)
	case []any:
		children, err := f.decodeChildren(v, path)
		if err != nil {
			return nil, err
		}
		return And(children...), nil
	}
	d, ok := doc.As(raw)
	if !ok {
		return nil, f.errorf(path, "expected a string, list or object, got %T", raw)
	}
	if op, ok := compositeOp(d); ok {
		return f.decodeComposite(d, op, path)
	}
	if d.Has("type") {
		name, err := d.String("type", "")
		if err != nil {
			return nil, f.wrap(path, err)
		}
		fn, ok := f.lookup(name)
		if !ok {
			return nil, f.errorf(path, "unknown rule type %q", name)
		}
		p, err := fn(d)
		if err != nil {
			return nil, f.wrap(path+"."+name, err)
		}
		return Leaf(name, p), nil
	}
	if f.obj == nil {
		return nil, f.errorf(path, "object rule requires a \"type\" or one of and, or, not, none_of")
	}
	p, err := f.obj(d)
	if err != nil {
		return nil, f.wrap(path, err)
	}
	return Leaf(f.name, p), nil
}

func (f *Family[T]) decodeString(s, path string) (*Node[T], error) {
	if fn, ok := f.lookup(s); ok {
		p, err := fn(nil)
		if err != nil {
			return nil, f.wrap(path, err)
		}
		return Leaf(s, p), nil
	}
	if f.str == nil {
		return nil, f.errorf(path, "unknown rule %q", s)
	}
	p, err := f.str(s)
	if err != nil {
		return nil, f.wrap(path, err)
	}
	return Leaf(s, p), nil
}

func (f *Family[T]) decodeComposite(d doc.Document, op Op, path string) (*Node[T], error) {
	if len(d) != 1 {
		return nil, f.errorf(path, "%v rule must not have other fields", op)
	}
	key := op.String()
	raw := d[key]
	path += "." + key

	if op == OpNot {
		if list, ok := raw.([]any); ok {
			if len(list) != 1 {
				return nil, f.errorf(path, "not requires exactly one rule, got %d", len(list))
			}
			raw = list[0]
		}
		child, err := f.decode(raw, path)
		if err != nil {
			return nil, err
		}
		return Not(child), nil
	}

	list, ok := raw.([]any)
	if !ok {
		list = []any{raw}
	}
	children, err := f.decodeChildren(list, path)
	if err != nil {
		return nil, err
	}
	switch op {
	case OpAnd:
		return And(children...), nil
	case OpOr:
		return Or(children...), nil
	default:
		return NoneOf(children...), nil
	}
}

func (f *Family[T]) decodeChildren(list []any, path string) ([]*Node[T], error) {
	children := make([]*Node[T], 0, len(list))
	for i, e := range list {
		c, err := f.decode(e, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return children, nil
}

func compositeOp(d doc.Document) (Op, bool) {
	for _, op := range [...]Op{OpAnd, OpOr, OpNot, OpNoneOf} {
		if _, ok := d[op.String()]; ok {
			return op, true
		}
	}
	return 0, false
}

func (f *Family[T]) errorf(path, format string, args ...any) error {
	return &DecodeError{Family: f.name, Path: path, Err: errors.Newf(format, args...)}
}

func (f *Family[T]) wrap(path string, err error) error {
	return &DecodeError{Family: f.name, Path: path, Err: err}
}

// DecodeError is returned when a rule could not be decoded, for example because it names an unknown leaf or a
// composite has the wrong amount of children.
type DecodeError struct {
	// Family is the name of the rule family that was being decoded.
	Family string
	// Path locates the rule within the document, for example rules[1].and[0].
	Path string
	Err  error
}

// Error ...
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %v rule at %v: %v", e.Family, e.Path, e.Err)
}

// Unwrap ...
func (e *DecodeError) Unwrap() error {
	return e.Err
}
