package internal

type Scheduler struct {
	// incremented each time the scheduler is flushed
	clock int

	scheduled bool
	running   bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		clock: 0,

		scheduled: false,
		running:   false,
	}
}

// Run executes fn unless a run is already in progress or nothing was scheduled.
// Work scheduled while running is picked up by the in-progress run instead of
// starting a nested one.
func (s *Scheduler) Run(fn func()) {
	if s.running || !s.scheduled {
		return
	}

	s.scheduled = false
	s.running = true
	defer func() {
		s.clock++
		s.scheduled = false
		s.running = false
	}()

	fn()
}

func (s *Scheduler) Schedule() {
	s.scheduled = true
}

func (s *Scheduler) Running() bool {
	return s.running
}

func (s *Scheduler) Time() int {
	return s.clock
}
