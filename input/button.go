package input

// ButtonInput tracks which buttons are held and which changed this frame
type ButtonInput[K comparable] struct {
	pressed      map[K]struct{}
	justPressed  map[K]struct{}
	justReleased map[K]struct{}
}

// NewButtonInput creates an empty button state
func NewButtonInput[K comparable]() *ButtonInput[K] {
	return &ButtonInput[K]{
		pressed:      make(map[K]struct{}),
		justPressed:  make(map[K]struct{}),
		justReleased: make(map[K]struct{}),
	}
}

// Press marks k held; a press of an already held button is not an edge
func (b *ButtonInput[K]) Press(k K) {
	if _, held := b.pressed[k]; held {
		return
	}
	b.pressed[k] = struct{}{}
	b.justPressed[k] = struct{}{}
}

// Release marks k up; releasing a button that is not held is ignored
func (b *ButtonInput[K]) Release(k K) {
	if _, held := b.pressed[k]; !held {
		return
	}
	delete(b.pressed, k)
	b.justReleased[k] = struct{}{}
}

// ReleaseAll releases every held button
func (b *ButtonInput[K]) ReleaseAll() {
	for k := range b.pressed {
		b.Release(k)
	}
}

// Pressed reports whether k is held
func (b *ButtonInput[K]) Pressed(k K) bool {
	_, ok := b.pressed[k]
	return ok
}

// AnyPressed reports whether any of keys is held
func (b *ButtonInput[K]) AnyPressed(keys ...K) bool {
	for _, k := range keys {
		if b.Pressed(k) {
			return true
		}
	}
	return false
}

// JustPressed reports whether k went down since the last Clear
func (b *ButtonInput[K]) JustPressed(k K) bool {
	_, ok := b.justPressed[k]
	return ok
}

// AnyJustPressed reports whether any of keys went down since the last Clear
func (b *ButtonInput[K]) AnyJustPressed(keys ...K) bool {
	for _, k := range keys {
		if b.JustPressed(k) {
			return true
		}
	}
	return false
}

// JustReleased reports whether k went up since the last Clear
func (b *ButtonInput[K]) JustReleased(k K) bool {
	_, ok := b.justReleased[k]
	return ok
}

// Clear forgets this frame's edges; held state is kept
func (b *ButtonInput[K]) Clear() {
	clear(b.justPressed)
	clear(b.justReleased)
}
