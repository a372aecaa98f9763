package condition

import (
	"testing"

	"github.com/AnatoleLucet/sigstyle/sig"
	"github.com/AnatoleLucet/sigstyle/style"
	"github.com/stretchr/testify/assert"
)

type fakeNode struct {
	hover, active, focus *sig.Signal[bool]
	width, height        *sig.Signal[float64]
	typ                  style.ContainerType
}

func newFakeNode(typ style.ContainerType, width, height float64) *fakeNode {
	return &fakeNode{
		hover:  sig.NewSignal(false),
		active: sig.NewSignal(false),
		focus:  sig.NewSignal(false),
		width:  sig.NewSignal(width),
		height: sig.NewSignal(height),
		typ:    typ,
	}
}

func (n *fakeNode) Hover(e *sig.Effect) bool  { return n.hover.Get(e) }
func (n *fakeNode) Active(e *sig.Effect) bool { return n.active.Get(e) }
func (n *fakeNode) Focus(e *sig.Effect) bool  { return n.focus.Get(e) }

func (n *fakeNode) Layout(e *sig.Effect) (float64, float64) {
	return n.width.Get(e), n.height.Get(e)
}

func (n *fakeNode) ContainerType(*sig.Effect) style.ContainerType { return n.typ }

type fakeViewport struct {
	width, height, ratio float64
	dark                 bool
}

func (v fakeViewport) Width(*sig.Effect) float64      { return v.width }
func (v fakeViewport) Height(*sig.Effect) float64     { return v.height }
func (v fakeViewport) PixelRatio(*sig.Effect) float64 { return v.ratio }
func (v fakeViewport) IsDark(*sig.Effect) bool        { return v.dark }

func feature(name, op string, value any) style.Feature {
	return style.Feature{Name: name, Operator: op, Value: value}
}

func TestMatchesMedia(t *testing.T) {
	phone := fakeViewport{width: 390, height: 844, ratio: 3}

	tests := []struct {
		name    string
		queries []style.MediaQuery
		want    bool
	}{
		{"empty list", nil, true},
		{"min-width below", []style.MediaQuery{{Features: []style.Feature{feature("min-width", "", 768)}}}, false},
		{"min-width above", []style.MediaQuery{{Features: []style.Feature{feature("min-width", "", "320px")}}}, true},
		{"max-width", []style.MediaQuery{{Features: []style.Feature{feature("max-width", "", 390)}}}, true},
		{"width operator", []style.MediaQuery{{Features: []style.Feature{feature("width", ">", 400)}}}, false},
		{"height range", []style.MediaQuery{{Features: []style.Feature{
			feature("height", ">=", 800),
			feature("height", "<", 900),
		}}}, true},
		{"orientation", []style.MediaQuery{{Features: []style.Feature{feature("orientation", "", "portrait")}}}, true},
		{"resolution dppx", []style.MediaQuery{{Features: []style.Feature{feature("min-resolution", "", "2dppx")}}}, true},
		{"resolution dpi", []style.MediaQuery{{Features: []style.Feature{feature("resolution", "", "288dpi")}}}, true},
		{"color scheme", []style.MediaQuery{{Features: []style.Feature{feature("prefers-color-scheme", "", "dark")}}}, false},
		{"print", []style.MediaQuery{{MediaType: "print"}}, false},
		{"not print", []style.MediaQuery{{Qualifier: "not", MediaType: "print"}}, true},
		{"only screen", []style.MediaQuery{{Qualifier: "only", MediaType: "screen"}}, true},
		{"unknown feature", []style.MediaQuery{{Features: []style.Feature{feature("hover", "", "hover")}}}, false},
		{"list is or-ed", []style.MediaQuery{
			{Features: []style.Feature{feature("min-width", "", 768)}},
			{Features: []style.Feature{feature("orientation", "", "portrait")}},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesMedia(tt.queries, phone, nil))
		})
	}
}

func TestMatchesPseudoClass(t *testing.T) {
	t.Run("every requested class must hold", func(t *testing.T) {
		n := newFakeNode(style.ContainerNormal, 0, 0)
		q := &style.PseudoClassesQuery{Hover: true, Focus: true}

		assert.False(t, MatchesPseudoClass(q, n, nil))
		n.hover.Write(true)
		assert.False(t, MatchesPseudoClass(q, n, nil))
		n.focus.Write(true)
		assert.True(t, MatchesPseudoClass(q, n, nil))
	})

	t.Run("empty query always matches", func(t *testing.T) {
		assert.True(t, MatchesPseudoClass(nil, nil, nil))
		assert.True(t, MatchesPseudoClass(&style.PseudoClassesQuery{}, nil, nil))
	})

	t.Run("only reads requested signals", func(t *testing.T) {
		n := newFakeNode(style.ContainerNormal, 0, 0)
		q := &style.PseudoClassesQuery{Hover: true}
		runs := 0

		var e *sig.Effect
		e = sig.NewLazyEffect(func() {
			MatchesPseudoClass(q, n, e)
			runs++
		})
		e.Run()

		n.active.Write(true)
		n.focus.Write(true)
		assert.Equal(t, 1, runs)

		n.hover.Write(true)
		assert.Equal(t, 2, runs)
		assert.Equal(t, 1, e.Deps())
	})
}

func TestMatchesContainerQuery(t *testing.T) {
	card := newFakeNode(style.ContainerSize, 500, 300)
	row := newFakeNode(style.ContainerInlineSize, 200, 50)
	plain := newFakeNode(style.ContainerNormal, 800, 800)

	lookup := func(name string) Container {
		switch name {
		case "", "card":
			return card
		case "row":
			return row
		case "plain":
			return plain
		}
		return nil
	}

	cond := func(f style.Feature) *style.ContainerCondition {
		return &style.ContainerCondition{Type: style.ConditionFeature, Feature: &f}
	}

	tests := []struct {
		name    string
		queries []style.ContainerQuery
		want    bool
	}{
		{"no queries", nil, true},
		{"unnamed resolves nearest", []style.ContainerQuery{{Condition: cond(feature("min-width", "", 400))}}, true},
		{"named", []style.ContainerQuery{{Name: "row", Condition: cond(feature("min-width", "", 400))}}, false},
		{"missing container", []style.ContainerQuery{{Name: "sidebar"}}, false},
		{"inline-size allows width", []style.ContainerQuery{{Name: "row", Condition: cond(feature("width", "<=", 200))}}, true},
		{"inline-size rejects height", []style.ContainerQuery{{Name: "row", Condition: cond(feature("height", "<=", 100))}}, false},
		{"normal rejects size features", []style.ContainerQuery{{Name: "plain", Condition: cond(feature("min-width", "", 1))}}, false},
		{"orientation", []style.ContainerQuery{{Condition: cond(feature("orientation", "", "landscape"))}}, true},
		{"and", []style.ContainerQuery{{Condition: &style.ContainerCondition{
			Type: style.ConditionAnd,
			Conditions: []style.ContainerCondition{
				*cond(feature("min-width", "", 400)),
				*cond(feature("max-height", "", 200)),
			},
		}}}, false},
		{"or", []style.ContainerQuery{{Condition: &style.ContainerCondition{
			Type: style.ConditionOr,
			Conditions: []style.ContainerCondition{
				*cond(feature("min-width", "", 1000)),
				*cond(feature("max-height", "", 300)),
			},
		}}}, true},
		{"not", []style.ContainerQuery{{Condition: &style.ContainerCondition{
			Type:       style.ConditionNot,
			Conditions: []style.ContainerCondition{*cond(feature("min-width", "", 1000))},
		}}}, true},
		{"container pseudo-class", []style.ContainerQuery{{Name: "card", PseudoClasses: &style.PseudoClassesQuery{Hover: true}}}, false},
		{"every query must hold", []style.ContainerQuery{
			{Name: "card", Condition: cond(feature("min-width", "", 400))},
			{Name: "row", Condition: cond(feature("min-width", "", 400))},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesContainerQuery(tt.queries, lookup, nil))
		})
	}

	t.Run("tracks the container layout", func(t *testing.T) {
		c := newFakeNode(style.ContainerSize, 300, 300)
		q := []style.ContainerQuery{{Condition: cond(feature("min-width", "", 400))}}
		log := []bool{}

		var e *sig.Effect
		e = sig.NewLazyEffect(func() {
			log = append(log, MatchesContainerQuery(q, func(string) Container { return c }, e))
		})
		e.Run()

		c.width.Write(450)

		assert.Equal(t, []bool{false, true}, log)
	})
}
