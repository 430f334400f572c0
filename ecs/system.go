package ecs

// System is a unit of per-frame behavior. Query and Singleton fields on the
// system struct are bound to the scheduler's storage at registration, and
// queries are re-executed before every run. Any other fields persist between
// frames.
type System interface {
	Execute(frame *UpdateFrame)
}
