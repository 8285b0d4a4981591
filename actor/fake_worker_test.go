package actor

// fakeWorker is a no-op WorkerHandle for tests that drive Context.Tick
// manually instead of running a real worker goroutine. It just records how
// many times each method was invoked.
type fakeWorker struct {
	spawns int
	wakes  int
}

func (f *fakeWorker) Spawn(t Tickable) { f.spawns++ }
func (f *fakeWorker) Wake(t Tickable)  { f.wakes++ }
