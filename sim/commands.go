package sim

// Commands buffers work that must not run while systems are executing.
// The buffer is flushed at the end of every step.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run after the current step.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush runs every queued function in order and resets the buffer.
// Functions deferred during the flush run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	clear(c.defers)
	c.defers = c.defers[:0]
}
