package services

import "sync"

// bloqueoOfertas serializa los cambios de etapa de una misma oferta dentro del proceso.
// Ofertas distintas no se bloquean entre sí.
type bloqueoOfertas struct {
	mu    sync.Mutex
	porID map[int64]*bloqueoOferta
}

type bloqueoOferta struct {
	mu   sync.Mutex
	refs int
}

var cambiosEtapa = &bloqueoOfertas{porID: make(map[int64]*bloqueoOferta)}

// lock toma el candado de la oferta y retorna la función que lo libera.
func (b *bloqueoOfertas) lock(id int64) func() {
	b.mu.Lock()
	l, ok := b.porID[id]
	if !ok {
		l = &bloqueoOferta{}
		b.porID[id] = l
	}
	l.refs++
	b.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		b.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(b.porID, id)
		}
		b.mu.Unlock()
	}
}

func (b *bloqueoOfertas) activos() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.porID)
}
