package engine

import (
	"fmt"
	"strings"
)

// FormatProgram renders an admitted program as "{pre} code {post}".
// Callers that want a different presentation can walk Bank/Condition
// themselves instead of calling this.
func FormatProgram(b *Bank, prog AnyProg) string {
	switch prog.Kind {
	case KindInt:
		return formatTyped[Int](b, prog.Pos)
	case KindStr:
		return formatTyped[Str](b, prog.Pos)
	default:
		return formatTyped[IntArray](b, prog.Pos)
	}
}

func formatTyped[T ValueType](b *Bank, pos int) string {
	p := GetProgram[T](b, ProgIndex[T]{pos: pos})
	return fmt.Sprintf("%s %s %s", FormatCondition(b, p.Pre), p.Code(b), FormatCondition(b, p.Post))
}

// FormatCondition renders a Condition as "{ name -> valuesRepr, ... }"
// with "_" standing in for an unbound slot.
func FormatCondition(b *Bank, c Condition) string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for i, slot := range c.Slots {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(b.Vars[i])
		sb.WriteString(" -> ")
		if !slot.Bound {
			sb.WriteString("_")
			continue
		}
		sb.WriteString(formatBoundSlot(b, slot))
	}
	sb.WriteString(" }")
	return sb.String()
}

func formatBoundSlot(b *Bank, slot CondSlot) string {
	switch slot.Kind {
	case KindInt:
		vs := GetValues[Int](b, ValueIndex[Int]{offset: slot.Offset})
		return formatValues(vs)
	case KindStr:
		vs := GetValues[Str](b, ValueIndex[Str]{offset: slot.Offset})
		return formatValues(vs)
	default:
		vs := GetValues[IntArray](b, ValueIndex[IntArray]{offset: slot.Offset})
		return formatValues(vs)
	}
}

func formatValues[T ValueType](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
