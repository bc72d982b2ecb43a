package latest

import "time"

// SetClock reemplaza el reloj del tracker en pruebas.
func SetClock[T any](t *Tracker[T], now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
}
