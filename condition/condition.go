// Package condition evaluates the conditional parts of a style rule: media
// queries, pseudo-classes and container queries.
//
// The evaluators are pure functions of their inputs. Every input is read
// through a signal getter taking the evaluating effect, so evaluating a
// condition subscribes the caller to exactly the signals it looked at.
package condition

import (
	"github.com/AnatoleLucet/sigstyle/sig"
	"github.com/AnatoleLucet/sigstyle/style"
)

// Interaction is the read side of a component's interaction and layout signals.
type Interaction interface {
	Hover(e *sig.Effect) bool
	Active(e *sig.Effect) bool
	Focus(e *sig.Effect) bool
	Layout(e *sig.Effect) (width, height float64)
}

// Container is an ancestor component exposed to container queries.
type Container interface {
	Interaction
	ContainerType(e *sig.Effect) style.ContainerType
}

// Viewport is what media queries are tested against.
type Viewport interface {
	Width(e *sig.Effect) float64
	Height(e *sig.Effect) float64
	PixelRatio(e *sig.Effect) float64
	IsDark(e *sig.Effect) bool
}

// Lookup resolves a container name ("" for the nearest container) to a
// container, or nil when none is in scope.
type Lookup func(name string) Container

// MatchesPseudoClass reports whether every pseudo-class in q holds. Only the
// signals of the requested pseudo-classes are read.
func MatchesPseudoClass(q *style.PseudoClassesQuery, i Interaction, e *sig.Effect) bool {
	if q.Empty() {
		return true
	}
	if i == nil {
		return false
	}

	if q.Hover && !i.Hover(e) {
		return false
	}
	if q.Active && !i.Active(e) {
		return false
	}
	if q.Focus && !i.Focus(e) {
		return false
	}

	return true
}

// MatchesContainerQuery reports whether every query holds against its container.
// A query whose container is not in scope never matches.
func MatchesContainerQuery(queries []style.ContainerQuery, lookup Lookup, e *sig.Effect) bool {
	for _, q := range queries {
		var c Container
		if lookup != nil {
			c = lookup(q.Name)
		}
		if c == nil {
			return false
		}

		if !MatchesPseudoClass(q.PseudoClasses, c, e) {
			return false
		}

		if q.Condition != nil && !matchesContainerCondition(*q.Condition, c, e) {
			return false
		}
	}

	return true
}

func matchesContainerCondition(cond style.ContainerCondition, c Container, e *sig.Effect) bool {
	switch cond.Type {
	case style.ConditionFeature:
		return cond.Feature != nil && matchesContainerFeature(*cond.Feature, c, e)

	case style.ConditionAnd:
		for _, sub := range cond.Conditions {
			if !matchesContainerCondition(sub, c, e) {
				return false
			}
		}
		return true

	case style.ConditionOr:
		for _, sub := range cond.Conditions {
			if matchesContainerCondition(sub, c, e) {
				return true
			}
		}
		return false

	case style.ConditionNot:
		return len(cond.Conditions) == 1 && !matchesContainerCondition(cond.Conditions[0], c, e)
	}

	return false
}

func matchesContainerFeature(f style.Feature, c Container, e *sig.Effect) bool {
	name, op := splitRange(f.Name, f.Operator)

	typ := c.ContainerType(e)
	switch name {
	case "width", "inline-size":
		if typ != style.ContainerSize && typ != style.ContainerInlineSize {
			return false
		}
	case "height", "block-size", "orientation", "aspect-ratio":
		if typ != style.ContainerSize {
			return false
		}
	default:
		return false
	}

	width, height := c.Layout(e)
	return matchesSize(name, op, f.Value, width, height)
}
