package vein

import (
	"github.com/cockroachdb/errors"
	"github.com/df-mc/oreveins/server/vein/doc"
	"github.com/df-mc/oreveins/server/vein/rule"
)

// Flags holds named switches that the conditions of vein definitions may refer to. Flags not present are false.
type Flags map[string]bool

// Condition is a rule deciding whether a vein definition is loaded at all.
type Condition = rule.Node[Flags]

// Conditions is the Family of conditions, read from the "conditions" field of a vein definition. All conditions
// listed must hold for the definition to be loaded. Besides the composites, the leaves true, false and
// flag {flag} are available, and a bare string that is not a leaf name refers to a flag.
var Conditions = rule.NewFamily[Flags]("conditions", func(s string) (rule.Predicate[Flags], error) {
	return func(f Flags) bool { return f[s] }, nil
}, nil)

func init() {
	Conditions.Register("true", func(doc.Document) (rule.Predicate[Flags], error) {
		return func(Flags) bool { return true }, nil
	})
	Conditions.Register("false", func(doc.Document) (rule.Predicate[Flags], error) {
		return func(Flags) bool { return false }, nil
	})
	Conditions.Register("flag", func(params doc.Document) (rule.Predicate[Flags], error) {
		name, err := params.String("flag", "")
		if err != nil {
			return nil, err
		}
		if name == "" {
			return nil, errors.New("flag condition requires a \"flag\" field")
		}
		return func(f Flags) bool { return f[name] }, nil
	})
}

// conditionsMet decodes the conditions of a definition and tests them against the flags passed. Definitions
// without conditions are always loaded.
func conditionsMet(d doc.Document, flags Flags) (bool, error) {
	raw, ok := d.Get(Conditions.Name())
	if !ok {
		return true, nil
	}
	conds, err := Conditions.DecodeList(raw)
	if err != nil {
		return false, err
	}
	for _, c := range conds {
		if !c.Test(flags) {
			return false, nil
		}
	}
	return true, nil
}
