package grib2

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Observer is notified as each section of a message completes. Callbacks
// run on the parsing goroutine, in stream order, and receive the Holder
// so they can read earlier sections of the same message.
//
// An Observer must not parse on the Parser that invokes it.
type Observer interface {
	OnIndicator(h Holder, s *IndicatorSection)
	OnIdentification(h Holder, s *IdentificationSection)
	OnGridDefinition(h Holder, s *GridDefinitionSection)
	OnProductDefinition(h Holder, s *ProductDefinitionSection)
	OnDataRepresentation(h Holder, s *DataRepresentationSection)
	OnBitmap(h Holder, s *BitmapSection)
	OnData(h Holder, s *DataSection)
	OnEnd(h Holder, s *EndSection)
}

// BaseObserver implements Observer with no-op callbacks. Embed it to
// handle only some sections.
type BaseObserver struct{}

func (BaseObserver) OnIndicator(Holder, *IndicatorSection) {}

func (BaseObserver) OnIdentification(Holder, *IdentificationSection) {}

func (BaseObserver) OnGridDefinition(Holder, *GridDefinitionSection) {}

func (BaseObserver) OnProductDefinition(Holder, *ProductDefinitionSection) {}

func (BaseObserver) OnDataRepresentation(Holder, *DataRepresentationSection) {}

func (BaseObserver) OnBitmap(Holder, *BitmapSection) {}

func (BaseObserver) OnData(Holder, *DataSection) {}

func (BaseObserver) OnEnd(Holder, *EndSection) {}

// Holder gives access to the latest decoded section of each kind. A
// getter returns nil when that section has not been decoded in the
// current message, or was invalidated by a later repeat of an earlier
// section.
type Holder interface {
	Indicator() *IndicatorSection
	Identification() *IdentificationSection
	GridDefinition() *GridDefinitionSection
	ProductDefinition() *ProductDefinitionSection
	DataRepresentation() *DataRepresentationSection
	Bitmap() *BitmapSection
	Data() *DataSection
}

// observerSet is a copy-on-write list. Notification iterates the snapshot
// taken when the section completed, so observers added or removed during
// a callback take effect from the next section.
type observerSet struct {
	mu   sync.Mutex
	list atomic.Pointer[[]Observer]
}

func (s *observerSet) add(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var next []Observer
	if cur := s.list.Load(); cur != nil {
		next = slices.Clone(*cur)
	}
	next = append(next, o)
	s.list.Store(&next)
}

func (s *observerSet) remove(o Observer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.list.Load()
	if cur == nil {
		return false
	}
	i := slices.Index(*cur, o)
	if i < 0 {
		return false
	}
	next := slices.Delete(slices.Clone(*cur), i, i+1)
	s.list.Store(&next)
	return true
}

func (s *observerSet) snapshot() []Observer {
	if cur := s.list.Load(); cur != nil {
		return *cur
	}
	return nil
}

func notify(h Holder, observers []Observer, sec Section) {
	for _, o := range observers {
		switch s := sec.(type) {
		case *IndicatorSection:
			o.OnIndicator(h, s)
		case *IdentificationSection:
			o.OnIdentification(h, s)
		case *GridDefinitionSection:
			o.OnGridDefinition(h, s)
		case *ProductDefinitionSection:
			o.OnProductDefinition(h, s)
		case *DataRepresentationSection:
			o.OnDataRepresentation(h, s)
		case *BitmapSection:
			o.OnBitmap(h, s)
		case *DataSection:
			o.OnData(h, s)
		case *EndSection:
			o.OnEnd(h, s)
		}
	}
}
