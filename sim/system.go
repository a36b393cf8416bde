package sim

// System is a piece of simulation logic run once per fixed step.
// Systems may keep their own state between steps.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *UpdateFrame)

// Execute calls f(frame).
func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
