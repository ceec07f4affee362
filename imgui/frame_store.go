package imgui

// cleanable is implemented by stores that drop entries unused for a frame.
type cleanable interface {
	cleanup(frame uint64)
}

type stateEntry[T any] struct {
	value     T
	lastFrame uint64
}

// FrameStore keeps per-widget state of one type. Entries not touched
// during a frame are dropped when the next one starts, so state of
// widgets that stop drawing goes away on its own.
//
//	var openStore = imgui.NewFrameStore[bool](ctx)
//	open := openStore.Get(id, false)
//	*open = !*open
type FrameStore[T any] struct {
	ctx    *Context
	states map[ID]*stateEntry[T]
}

// NewFrameStore creates a store bound to ctx's frame counter.
func NewFrameStore[T any](ctx *Context) *FrameStore[T] {
	s := &FrameStore[T]{ctx: ctx, states: make(map[ID]*stateEntry[T])}
	ctx.stores = append(ctx.stores, s)
	return s
}

// Get returns the state for id, creating it from def when missing, and
// marks it used this frame.
func (s *FrameStore[T]) Get(id ID, def T) *T {
	e, ok := s.states[id]
	if !ok {
		e = &stateEntry[T]{value: def}
		s.states[id] = e
	}
	e.lastFrame = s.ctx.FrameCount
	return &e.value
}

// Lookup returns the state for id without creating or touching it.
func (s *FrameStore[T]) Lookup(id ID) (*T, bool) {
	e, ok := s.states[id]
	if !ok {
		return nil, false
	}
	return &e.value, true
}

// Delete removes the state for id.
func (s *FrameStore[T]) Delete(id ID) {
	delete(s.states, id)
}

// Len returns the number of stored entries.
func (s *FrameStore[T]) Len() int {
	return len(s.states)
}

func (s *FrameStore[T]) cleanup(frame uint64) {
	for id, e := range s.states {
		if e.lastFrame+1 < frame {
			delete(s.states, id)
		}
	}
}
