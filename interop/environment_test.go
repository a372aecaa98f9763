package interop

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/sigstyle/internal"
	"github.com/AnatoleLucet/sigstyle/style"
)

func TestEnvironment(t *testing.T) {
	t.Run("extending copies", func(t *testing.T) {
		base := Root().WithVariables(map[string]any{"--a": 1.0})
		next := base.WithVariables(map[string]any{"--a": 2.0, "--b": 3.0})

		a, _ := base.Variable("--a")
		assert.Equal(t, 1.0, a)
		_, ok := base.Variable("--b")
		assert.False(t, ok)

		a, _ = next.Variable("--a")
		assert.Equal(t, 2.0, a)
		assert.True(t, next.Frozen())
		assert.Empty(t, Root().Variables())
	})

	t.Run("containers fill the default slot", func(t *testing.T) {
		eng := newEngine(t, nil)
		c := eng.NewComponent("View")

		env := Root().WithContainers([]string{"card"}, c)

		assert.Same(t, c, env.Container("card"))
		assert.Same(t, c, env.Container(""))
		assert.Same(t, c, env.Container(DefaultContainer))
		assert.Nil(t, env.Container("sidebar"))
		assert.Nil(t, Root().Container(""))
	})

	t.Run("unmounted containers leave the scope", func(t *testing.T) {
		eng := newEngine(t, nil)
		c := eng.NewComponent("View")
		env := Root().WithContainers([]string{"card"}, c)

		c.Unmount()

		assert.Nil(t, env.Container("card"))
	})

	t.Run("does not keep containers alive", func(t *testing.T) {
		eng := newEngine(t, nil)
		env := Root().WithContainers([]string{"card"}, eng.NewComponent("View"))

		require.Eventually(t, func() bool {
			runtime.GC()
			return env.Container("card") == nil
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("frozen environments can't be extended in place", func(t *testing.T) {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			assert.IsType(t, &internal.InvariantError{}, r)
		}()

		Root().withVariables(map[string]any{"--a": 1.0})
	})

	t.Run("depth grows one per component", func(t *testing.T) {
		eng := newEngine(t, nil)

		parent := eng.NewComponent("View")
		res := parent.Interop(nil, nil, Root())
		child := eng.NewComponent("Text")
		child.Interop(nil, nil, res.Env)

		assert.Equal(t, 0, parent.Depth())
		assert.Equal(t, 1, child.Depth())
	})
}

func TestPropagation(t *testing.T) {
	t.Run("declared variables reach descendants", func(t *testing.T) {
		theme := rule(nil)
		theme.Variables = map[string]style.Value{"--brand": style.String("tomato")}

		eng := newEngine(t, rules{
			"theme":      {theme},
			"text-brand": {rule(map[string]style.Value{"color": style.Var("--brand")})},
		})

		parent := eng.NewComponent("View")
		env := parent.Interop(class("theme"), nil, nil).Env
		brand, _ := env.Variable("--brand")
		assert.Equal(t, "tomato", brand)

		child := eng.NewComponent("Text")
		assert.Equal(t, "tomato", styleOf(child.Interop(class("text-brand"), nil, env))["color"])

		sibling := eng.NewComponent("Text")
		assert.Empty(t, styleOf(sibling.Interop(class("text-brand"), nil, nil)))
	})

	t.Run("a rule sees its own variables", func(t *testing.T) {
		self := rule(map[string]style.Value{"color": style.Var("--own")})
		self.Variables = map[string]style.Value{"--own": style.String("plum")}

		eng := newEngine(t, rules{"self": {self}})

		assert.Equal(t, "plum", styleOf(eng.NewComponent("Text").Interop(class("self"), nil, nil))["color"])
	})

	t.Run("container queries resolve the nearest ancestor with the name", func(t *testing.T) {
		card := rule(nil)
		card.Container = &style.Container{Names: []string{"card"}, Type: style.ContainerSize}
		wide := color("green")
		wide.ContainerQuery = []style.ContainerQuery{{
			Name: "card",
			Condition: &style.ContainerCondition{
				Type:    style.ConditionFeature,
				Feature: &style.Feature{Name: "min-width", Value: 400},
			},
		}}

		eng := newEngine(t, rules{"card": {card}, "in-wide-card": {color("black"), wide}})
		props := class("in-wide-card")

		a := eng.NewComponent("View")
		resA := a.Interop(class("card"), nil, nil)
		b := eng.NewComponent("View")
		resB := b.Interop(class("card"), nil, nil)
		require.NotSame(t, resA.Env, resB.Env)

		c := eng.NewComponent("Text")
		res := c.Interop(props, nil, resA.Env)
		assert.Equal(t, "black", styleOf(res)["color"])
		runs := c.PropStates()[0].Effect().Runs()

		b.SetLayout(800, 800)
		assert.Equal(t, runs, c.PropStates()[0].Effect().Runs())

		a.SetLayout(500, 300)
		eng.Flush(func(c *ComponentState) { res = c.Interop(props, nil, resA.Env) })
		assert.Equal(t, "green", styleOf(res)["color"])

		a.Unmount()
		eng.Flush(func(c *ComponentState) { res = c.Interop(props, nil, resA.Env) })
		assert.Equal(t, "black", styleOf(res)["color"])
	})

	t.Run("a component that stops declaring a container goes back to normal", func(t *testing.T) {
		card := rule(nil)
		card.Container = &style.Container{Names: []string{"card"}, Type: style.ContainerSize}
		wide := color("green")
		wide.ContainerQuery = []style.ContainerQuery{{
			Name: "card",
			Condition: &style.ContainerCondition{
				Type:    style.ConditionFeature,
				Feature: &style.Feature{Name: "min-width", Value: 400},
			},
		}}

		eng := newEngine(t, rules{"card": {card}, "in-wide-card": {color("black"), wide}})
		props := class("in-wide-card")

		a := eng.NewComponent("View")
		env := a.Interop(class("card"), nil, nil).Env
		a.SetLayout(500, 300)

		c := eng.NewComponent("Text")
		res := c.Interop(props, nil, env)
		assert.Equal(t, "green", styleOf(res)["color"])

		a.Interop(class(""), nil, nil)
		assert.Equal(t, style.ContainerNormal, a.ContainerType(nil))

		eng.Flush(func(c *ComponentState) { res = c.Interop(props, nil, env) })
		assert.Equal(t, "black", styleOf(res)["color"])
	})

	t.Run("unnamed container queries use the nearest container", func(t *testing.T) {
		outer := rule(nil)
		outer.Container = &style.Container{Names: []string{"outer"}, Type: style.ContainerSize}
		inner := rule(nil)
		inner.Container = &style.Container{Names: []string{"inner"}, Type: style.ContainerInlineSize}
		narrow := color("red")
		narrow.ContainerQuery = []style.ContainerQuery{{
			Condition: &style.ContainerCondition{
				Type:    style.ConditionFeature,
				Feature: &style.Feature{Name: "max-width", Value: 100},
			},
		}}

		eng := newEngine(t, rules{"outer": {outer}, "inner": {inner}, "narrow": {narrow}})

		o := eng.NewComponent("View")
		envO := o.Interop(class("outer"), nil, nil).Env
		o.SetLayout(50, 50)
		i := eng.NewComponent("View")
		envI := i.Interop(class("inner"), nil, envO).Env
		i.SetLayout(300, 50)

		assert.Same(t, i, envI.Container(""))
		assert.Same(t, o, envI.Container("outer"))

		c := eng.NewComponent("Text")
		assert.Empty(t, styleOf(c.Interop(class("narrow"), nil, envI)))
	})

	t.Run("when several container queries match the last rule wins", func(t *testing.T) {
		card := rule(nil)
		card.Container = &style.Container{Names: []string{"card"}, Type: style.ContainerSize}
		minWidth := func(c string, w int) *style.ExtractedStyle {
			s := color(c)
			s.ContainerQuery = []style.ContainerQuery{{Condition: &style.ContainerCondition{
				Type:    style.ConditionFeature,
				Feature: &style.Feature{Name: "min-width", Value: w},
			}}}
			return s
		}

		eng := newEngine(t, rules{"card": {card}, "sized": {minWidth("blue", 100), minWidth("red", 200)}})

		a := eng.NewComponent("View")
		env := a.Interop(class("card"), nil, nil).Env
		a.SetLayout(300, 300)

		c := eng.NewComponent("Text")
		assert.Equal(t, "red", styleOf(c.Interop(class("sized"), nil, env))["color"])
	})
}
