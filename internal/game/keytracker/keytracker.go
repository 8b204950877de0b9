// keytracker.go - minimal input utility for Ebiten v2.8.8
// Provides IsKeyJustPressed functionality for single keys and key sets.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker tracks the previous state of a key.
type KeyStateTracker struct {
	prevPressed bool
}

// IsKeyJustPressed returns true if the key was not pressed last frame but is pressed this frame.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	return k.Update(ebiten.IsKeyPressed(key))
}

// Update feeds the current state and reports a released-to-pressed edge.
func (k *KeyStateTracker) Update(pressed bool) bool {
	justPressed := pressed && !k.prevPressed
	k.prevPressed = pressed
	return justPressed
}

// KeySet tracks edges for any number of keys. Each key must be polled once
// per frame.
type KeySet struct {
	trackers map[ebiten.Key]*KeyStateTracker
}

// JustPressed reports whether key went down since the last poll.
func (ks *KeySet) JustPressed(key ebiten.Key) bool {
	if ks.trackers == nil {
		ks.trackers = make(map[ebiten.Key]*KeyStateTracker)
	}
	k, ok := ks.trackers[key]
	if !ok {
		k = &KeyStateTracker{}
		ks.trackers[key] = k
	}
	return k.IsKeyJustPressed(key)
}
