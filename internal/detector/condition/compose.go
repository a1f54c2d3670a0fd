package condition

import (
	"strings"

	"github.com/samber/lo"
)

type all []Condition

// All 全部满足，空集合视为不满足
func All(conds ...Condition) Condition {
	if len(conds) == 1 {
		return conds[0]
	}
	return all(conds)
}

func (c all) Match(s Sample) bool {
	return len(c) > 0 && lo.EveryBy(c, func(cond Condition) bool { return cond.Match(s) })
}

func (c all) String() string {
	return join(c, " AND ")
}

type not struct {
	cond Condition
}

func Not(cond Condition) Condition {
	return not{cond: cond}
}

func (c not) Match(s Sample) bool {
	return !c.cond.Match(s)
}

func (c not) String() string {
	return "NOT (" + c.cond.String() + ")"
}

func join(conds []Condition, sep string) string {
	parts := lo.Map(conds, func(cond Condition, _ int) string { return cond.String() })
	return "(" + strings.Join(parts, sep) + ")"
}
