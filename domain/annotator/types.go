package annotator

import (
	"image"

	"github.com/soocke/voc-annotator-go/domain/voc"
)

// State enumerates the finite states of the annotator session.
type State int

const (
	// StateDisplaying is the normal state: the current image is shown.
	StateDisplaying State = iota
	// StateDrawing is entered while a mouse drag is in progress.
	StateDrawing
)

func (s State) String() string {
	switch s {
	case StateDisplaying:
		return "displaying"
	case StateDrawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// Event is a discrete input event dispatched to the session. Concrete event
// types are the structs below.
type Event interface{}

// Input events produced by the display window.
type (
	// Press starts an in-progress box at the press coordinates.
	Press struct{ X, Y int }
	// Move updates the in-progress box's second corner.
	Move struct{ X, Y int }
	// Release commits the in-progress box.
	Release struct{ X, Y int }
	// Next advances to the next image, wrapping around.
	Next struct{}
	// Prev retreats to the previous image, wrapping around.
	Prev struct{}
	// Clear discards all boxes of the current image.
	Clear struct{}
	// Undo removes the most recently committed box.
	Undo struct{}
	// Quit requests the session loop to stop.
	Quit struct{}
)

// Record holds the committed annotations for one image. Boxes and Labels are
// order-aligned and always of equal length.
type Record struct {
	Boxes  []voc.Box
	Labels []string
}

// Empty reports whether the record holds no committed boxes.
func (r *Record) Empty() bool { return r == nil || len(r.Boxes) == 0 }

// TransitionListener is called after the session switched images.
type TransitionListener func(prevIndex, nextIndex int)

// Interface slices for consumers (the view).
type SessionSource interface {
	Dispatch(Event) error
	Done() bool
	State() State
	Image() image.Image
	Boxes() []voc.Box
	InProgress() (voc.Box, bool)
	ImagePath() string
	Index() int
	Count() int
}
type SessionLifecycle interface {
	Close() error
	AddListener(TransitionListener)
}

// SessionContract aggregate for wiring.
type SessionContract interface {
	SessionSource
	SessionLifecycle
}
