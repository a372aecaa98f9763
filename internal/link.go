package internal

// DependencyLink connects a signal (dependency) with one effect reading it (subscriber).
// Each link sits in two doubly-linked lists at once: the effect's dependency list
// and the signal's subscriber list.
type DependencyLink struct {
	dep *Signal
	sub *Effect

	prevDep *DependencyLink
	nextDep *DependencyLink

	prevSub *DependencyLink
	nextSub *DependencyLink
}

func (s *Signal) addSubLink(link *DependencyLink) {
	if s.subsHead == nil {
		s.subsHead = link
		link.prevSub = link // loop to self
		link.nextSub = nil
	} else {
		tail := s.subsHead.prevSub
		tail.nextSub = link
		link.prevSub = tail
		link.nextSub = nil
		s.subsHead.prevSub = link
	}
}

func (s *Signal) removeSubLink(link *DependencyLink) {
	if s.subsHead == nil {
		return
	}

	// single link
	if link.prevSub == link {
		s.subsHead = nil
		link.nextSub = nil
		return
	}

	head := s.subsHead
	if link == head {
		s.subsHead = link.nextSub
	} else {
		link.prevSub.nextSub = link.nextSub
	}

	next := link.nextSub
	if next == nil {
		next = s.subsHead
	}
	next.prevSub = link.prevSub

	link.prevSub = link
	link.nextSub = nil
}

func (e *Effect) addDepLink(link *DependencyLink) {
	if e.depsHead == nil {
		e.depsHead = link
		link.prevDep = link // loop to self
		link.nextDep = nil
	} else {
		tail := e.depsHead.prevDep
		tail.nextDep = link
		link.prevDep = tail
		link.nextDep = nil
		e.depsHead.prevDep = link
	}
}
