package schedule

// Appointment lifecycle statuses. Booked is the initial state;
// Completed and Cancelled are terminal.
const (
	StatusBooked    = "Booked"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Actor is who is driving a status transition.
type Actor string

const (
	ActorDoctor  Actor = "doctor"
	ActorPatient Actor = "patient"
)

// CanTransition reports whether the actor may set an owned appointment
// to the target status. The owning doctor may complete or cancel; the
// owning patient may only cancel. Ownership itself is checked at the
// store. The current status is not consulted: re-issuing a transition
// is an overwrite, and completing an already-cancelled appointment
// goes through.
func CanTransition(actor Actor, target string) bool {
	switch actor {
	case ActorDoctor:
		return target == StatusCompleted || target == StatusCancelled
	case ActorPatient:
		return target == StatusCancelled
	}
	return false
}
