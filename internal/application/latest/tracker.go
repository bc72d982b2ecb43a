// Package latest garantiza que, para una misma llave de sesión, solo el resultado de la
// operación asíncrona más reciente se aplique. Cada disparo recibe un número de secuencia
// creciente y cancela el contexto del disparo anterior. Las llaves sin actividad por más
// de un TTL se descartan.
package latest

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL vida de una llave sin actividad cuando no se indica otra.
const DefaultTTL = 30 * time.Minute

// Ticket identifica un disparo. Seq es monótono en todo el tracker.
type Ticket struct {
	Key string
	Seq uint64
}

type entry[T any] struct {
	seq       uint64
	cancel    context.CancelFunc
	value     T
	committed bool
	touched   time.Time
}

// Tracker registro de "último gana" por llave.
type Tracker[T any] struct {
	mu        sync.Mutex
	seq       uint64
	entries   map[string]*entry[T]
	onStale   func(key string)
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

// New construye el tracker. Una llave sin Begin ni Commit durante ttl se elimina
// (ttl <= 0 usa DefaultTTL). onStale (opcional) se invoca por cada resultado descartado.
func New[T any](ttl time.Duration, onStale func(key string)) *Tracker[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tracker[T]{entries: make(map[string]*entry[T]), onStale: onStale, ttl: ttl, now: time.Now}
}

// Begin registra un nuevo disparo para key y cancela el anterior si sigue en vuelo.
// El contexto devuelto debe usarse para el trabajo asíncrono.
func (t *Tracker[T]) Begin(ctx context.Context, key string) (context.Context, Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.sweep(now)
	t.seq++
	e, ok := t.entries[key]
	if !ok {
		e = &entry[T]{}
		t.entries[key] = e
	}
	if e.cancel != nil {
		e.cancel()
	}
	cctx, cancel := context.WithCancel(ctx)
	e.seq = t.seq
	e.cancel = cancel
	e.touched = now
	return cctx, Ticket{Key: key, Seq: t.seq}
}

// Commit guarda value solo si tk sigue siendo el disparo más reciente de su llave.
// Devuelve false cuando el resultado es obsoleto y fue descartado.
func (t *Tracker[T]) Commit(tk Ticket, value T) bool {
	t.mu.Lock()
	e, ok := t.entries[tk.Key]
	current := ok && e.seq == tk.Seq
	if current {
		e.value = value
		e.committed = true
		e.touched = t.now()
		e.release()
	}
	t.mu.Unlock()
	if !current && t.onStale != nil {
		t.onStale(tk.Key)
	}
	return current
}

// Abandon libera el disparo sin guardar valor (por ejemplo, tras un error).
func (t *Tracker[T]) Abandon(tk Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[tk.Key]; ok && e.seq == tk.Seq {
		e.release()
	}
}

// IsCurrent indica si tk sigue siendo el más reciente.
func (t *Tracker[T]) IsCurrent(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[tk.Key]
	return ok && e.seq == tk.Seq
}

// Latest devuelve el último valor confirmado para key.
func (t *Tracker[T]) Latest(key string) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[key]
	if !ok || !e.committed || t.expired(e, t.now()) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Len cantidad de llaves retenidas.
func (t *Tracker[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// sweep elimina las llaves vencidas, a lo sumo una vez cada ttl/2. Lo que siga en
// vuelo se cancela y su Commit posterior cuenta como descartado.
func (t *Tracker[T]) sweep(now time.Time) {
	if now.Before(t.nextSweep) {
		return
	}
	for k, e := range t.entries {
		if t.expired(e, now) {
			e.release()
			delete(t.entries, k)
		}
	}
	t.nextSweep = now.Add(t.ttl / 2)
}

func (t *Tracker[T]) expired(e *entry[T], now time.Time) bool {
	return now.Sub(e.touched) > t.ttl
}

func (e *entry[T]) release() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}
