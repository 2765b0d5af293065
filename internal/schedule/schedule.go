// Package schedule holds the booking core: the per-doctor availability
// index and the validator that decides whether a requested slot can be
// booked. Everything here is pure; persistence stays in the store.
package schedule

// Slot is one potential or actual appointment: a calendar date plus a
// time of day, both in their wire form (YYYY-MM-DD, HH:MM).
type Slot struct {
	Date string
	Time string
}

// Window is a doctor's declared availability for a single date. Either
// sub-window may be nil; a nil sub-window never matches any time.
type Window struct {
	Morning *Range
	Evening *Range
}

// Index is the read-time view of one doctor's bookability over a date
// range: declared windows keyed by date, minus slots already taken by
// Booked appointments. Completed and Cancelled appointments do not
// occupy their slot, so a cancelled slot can be booked again.
type Index struct {
	Windows map[string]Window
	Booked  map[Slot]struct{}
}

func NewIndex() *Index {
	return &Index{
		Windows: make(map[string]Window),
		Booked:  make(map[Slot]struct{}),
	}
}

// Rejection reasons, surfaced verbatim to the caller.
const (
	ReasonSlotBooked    = "slot already booked"
	ReasonUnavailable   = "doctor unavailable on this date"
	ReasonOutsideWindow = "time outside doctor's availability"
)

// Decision is the validator outcome. Reason is empty on accept.
type Decision struct {
	Accepted bool
	Reason   string
}

func accept() Decision         { return Decision{Accepted: true} }
func reject(r string) Decision { return Decision{Reason: r} }

// Validate decides whether the slot can be booked against this index.
// Checks run in order and the first failure wins: taken slot, no window
// for the date, time outside both sub-windows. Sub-window bounds are
// inclusive on both ends. There is deliberately no past-date check.
func (ix *Index) Validate(slot Slot, t TimeOfDay) Decision {
	if _, taken := ix.Booked[slot]; taken {
		return reject(ReasonSlotBooked)
	}
	w, ok := ix.Windows[slot.Date]
	if !ok {
		return reject(ReasonUnavailable)
	}
	if w.Morning != nil && w.Morning.Contains(t) {
		return accept()
	}
	if w.Evening != nil && w.Evening.Contains(t) {
		return accept()
	}
	return reject(ReasonOutsideWindow)
}
