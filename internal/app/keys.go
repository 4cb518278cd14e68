package app

import "acmcompass/internal/keys"

// KeyMap re-exports the shared key map so views and the root model agree
// on bindings.
type KeyMap = keys.KeyMap

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() *KeyMap {
	return keys.DefaultKeyMap()
}
