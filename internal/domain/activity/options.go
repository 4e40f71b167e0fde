package activity

import "time"

// Window is the burst detection window: the last Count entries must all fall
// within Span of now for an identity to be suspicious.
type Window struct {
	Count int
	Span  time.Duration
}

// DefaultWindow flags 20 events inside two minutes.
var DefaultWindow = Window{Count: 20, Span: 2 * time.Minute}

func (w Window) normalized() Window {
	if w.Count <= 0 {
		w.Count = DefaultWindow.Count
	}
	if w.Span <= 0 {
		w.Span = DefaultWindow.Span
	}
	return w
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithWindow overrides DefaultWindow.
func WithWindow(w Window) Option {
	return func(s *Service) {
		s.window = w.normalized()
	}
}
