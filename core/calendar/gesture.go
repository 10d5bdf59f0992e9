package calendar

import (
	"math"
)

const DefaultSwipeMinDistance = 50.0

// Point is a touch contact position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

type GestureKind string

const (
	GesturePinch GestureKind = "pinch"
	GestureSwipe GestureKind = "swipe"
)

// Gesture is a recognised pinch (Scale) or swipe (Direction).
type Gesture struct {
	Kind      GestureKind    `json:"kind"`
	Scale     float64        `json:"scale,omitempty"`
	Direction SwipeDirection `json:"direction,omitempty"`
}

type GestureConfig struct {
	Bounds           ZoomBounds
	SwipeMinDistance float64
}

type trackMode int

const (
	trackNone trackMode = iota
	trackPinch
	trackSwipe
)

// Recognizer turns raw touch start/move/end input into pinch and swipe gestures.
// A pinch needs exactly two contacts, a swipe exactly one contact at start.
// It is not safe for concurrent use.
type Recognizer struct {
	conf            GestureConfig
	mode            trackMode
	start           Point
	initialDistance float64
}

func NewRecognizer(conf GestureConfig) *Recognizer {
	if conf.Bounds == (ZoomBounds{}) {
		conf.Bounds = DefaultZoomBounds
	}
	if conf.SwipeMinDistance <= 0 {
		conf.SwipeMinDistance = DefaultSwipeMinDistance
	}
	return &Recognizer{conf: conf}
}

// Start begins tracking with the contacts currently down.
func (r *Recognizer) Start(touches []Point) {
	switch len(touches) {
	case 2:
		r.mode = trackPinch
		r.initialDistance = distance(touches[0], touches[1])
	case 1:
		r.mode = trackSwipe
		r.start = touches[0]
	default:
		r.mode = trackNone
	}
}

// Move reports a pinch while two contacts are tracked.
// A zero or overflowing initial distance yields nothing.
func (r *Recognizer) Move(touches []Point) (Gesture, bool) {
	if r.mode != trackPinch || len(touches) != 2 || r.initialDistance == 0 || math.IsInf(r.initialDistance, 0) {
		return Gesture{}, false
	}
	scale := distance(touches[0], touches[1]) / r.initialDistance
	if math.IsNaN(scale) {
		return Gesture{}, false
	}
	return Gesture{Kind: GesturePinch, Scale: r.conf.Bounds.Clamp(scale)}, true
}

// End finishes tracking. at is the position where the contact was lifted.
// A swipe is reported when the dominant axis travelled more than the minimum distance;
// horizontal wins when |dx| > |dy|.
func (r *Recognizer) End(at Point) (Gesture, bool) {
	mode := r.mode
	r.mode = trackNone
	if mode != trackSwipe {
		return Gesture{}, false
	}

	dx, dy := at.X-r.start.X, at.Y-r.start.Y
	minDist := r.conf.SwipeMinDistance
	switch {
	case math.Abs(dx) > math.Abs(dy):
		if math.Abs(dx) <= minDist {
			return Gesture{}, false
		}
		if dx > 0 {
			return Gesture{Kind: GestureSwipe, Direction: SwipeRight}, true
		}
		return Gesture{Kind: GestureSwipe, Direction: SwipeLeft}, true
	case math.Abs(dy) > minDist:
		if dy > 0 {
			return Gesture{Kind: GestureSwipe, Direction: SwipeDown}, true
		}
		return Gesture{Kind: GestureSwipe, Direction: SwipeUp}, true
	}
	return Gesture{}, false
}

type TouchPhase string

const (
	TouchStart TouchPhase = "start"
	TouchMove  TouchPhase = "move"
	TouchEnd   TouchPhase = "end"
)

// TouchEvent is one recorded step of touch input. For TouchEnd, Points holds the lifted contact.
type TouchEvent struct {
	Phase  TouchPhase `json:"phase"`
	Points []Point    `json:"points"`
}

// ApplyTouches replays recorded touch input against s and returns the resulting state
// along with every gesture recognised on the way.
func ApplyTouches(s ViewState, touches []TouchEvent, conf GestureConfig) (ViewState, []Gesture) {
	r := NewRecognizer(conf)
	var gestures []Gesture
	for _, te := range touches {
		switch te.Phase {
		case TouchStart:
			r.Start(te.Points)
		case TouchMove:
			if g, ok := r.Move(te.Points); ok {
				s = s.Pinch(g.Scale, r.conf.Bounds)
				gestures = append(gestures, g)
			}
		case TouchEnd:
			if len(te.Points) == 0 {
				r.End(r.start)
				continue
			}
			if g, ok := r.End(te.Points[0]); ok {
				s = s.Swipe(g.Direction)
				gestures = append(gestures, g)
			}
		}
	}
	return s, gestures
}
