package internal

import (
	"iter"
)

type Owner struct {
	rt *Runtime

	// cleanup functions to be called when the owner is disposed
	cleanups []func()

	// panic error handlers
	catchers []func(any)

	parent       *Owner
	prevSibling  *Owner
	nextSibling  *Owner
	childrenHead *Owner
}

func (r *Runtime) NewOwner() *Owner {
	return &Owner{
		rt:       r,
		cleanups: make([]func(), 0),
	}
}

// Run executes fn with this owner as the current owner.
// Effects created inside fn are disposed along with the owner.
func (o *Owner) Run(fn func()) {
	o.rt.tracker.RunWithOwner(o, fn)
}

func (parent *Owner) AddChild(child *Owner) {
	child.parent = parent
	child.prevSibling = nil
	child.nextSibling = parent.childrenHead

	if parent.childrenHead != nil {
		parent.childrenHead.prevSibling = child
	}

	parent.childrenHead = child
}

func (n *Owner) Children() iter.Seq[*Owner] {
	return func(yield func(*Owner) bool) {
		child := n.childrenHead

		for child != nil {
			if !yield(child) {
				return
			}

			child = child.nextSibling
		}
	}
}

func (n *Owner) Dispose() {
	n.DisposeChildren()

	// cleanups may register new cleanups while running
	for i := 0; i < len(n.cleanups); i++ {
		n.cleanups[i]()
	}
	n.cleanups = nil
}

func (n *Owner) DisposeChildren() {
	for child := range n.Children() {
		child.Dispose()
	}
	n.childrenHead = nil
}

func (n *Owner) OnCleanup(fn func()) {
	n.cleanups = append(n.cleanups, fn)
}

func (n *Owner) OnError(fn func(any)) {
	n.catchers = append(n.catchers, fn)
}

// recover hands a panic to the nearest owner with catchers, re-panicking when
// nobody up the chain listens.
func (n *Owner) recover() {
	r := recover()
	if r == nil {
		return
	}

	for o := n; o != nil; o = o.parent {
		if len(o.catchers) == 0 {
			continue
		}

		for _, catcher := range o.catchers {
			catcher(r)
		}
		return
	}

	panic(r)
}
