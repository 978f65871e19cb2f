// Package memory almacén en memoria para desarrollo local y pruebas.
// Implementa los mismos repositorios que el adaptador PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/domain/repository"
)

type tables struct {
	movements map[string]*entity.Movement
	invoices  map[string]*entity.Invoice
	payments  map[string]*entity.Payment
	links     map[string]*entity.ShareLink // por token
}

func newTables() *tables {
	return &tables{
		movements: make(map[string]*entity.Movement),
		invoices:  make(map[string]*entity.Invoice),
		payments:  make(map[string]*entity.Payment),
		links:     make(map[string]*entity.ShareLink),
	}
}

func (t *tables) clone() *tables {
	c := newTables()
	for k, v := range t.movements {
		c.movements[k] = v
	}
	for k, v := range t.invoices {
		c.invoices[k] = v
	}
	for k, v := range t.payments {
		c.payments[k] = v
	}
	for k, v := range t.links {
		c.links[k] = v
	}
	return c
}

// scope conjunto de tablas sobre el que operan los repositorios: el vivo o la copia de una tx.
type scope struct {
	mu     sync.RWMutex
	t      *tables
	faults *faults
}

// faults errores inyectados por operación ("payments.Create", "invoices.List", ...).
type faults struct {
	mu  sync.Mutex
	err map[string]error
}

func (f *faults) check(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err[op]
}

// Store almacén en memoria. Las transacciones trabajan sobre una copia de las tablas
// y solo la publican si fn no retorna error.
type Store struct {
	live   *scope
	faults *faults
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	f := &faults{err: make(map[string]error)}
	return &Store{live: &scope{t: newTables(), faults: f}, faults: f}
}

// FailOn hace que la operación op retorne err hasta que se limpie con FailOn(op, nil).
func (s *Store) FailOn(op string, err error) {
	s.faults.mu.Lock()
	defer s.faults.mu.Unlock()
	if err == nil {
		delete(s.faults.err, op)
		return
	}
	s.faults.err[op] = err
}

func (s *Store) Movements() *MovementRepository   { return &MovementRepository{s: s.live} }
func (s *Store) Invoices() *InvoiceRepository     { return &InvoiceRepository{s: s.live} }
func (s *Store) Payments() *PaymentRepository     { return &PaymentRepository{s: s.live} }
func (s *Store) ShareLinks() *ShareLinkRepository { return &ShareLinkRepository{s: s.live} }

// Run ejecuta fn con repositorios atados a una copia de las tablas. Las transacciones
// se serializan entre sí y bloquean las escrituras fuera de ellas hasta terminar.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.live.mu.Lock()
	defer s.live.mu.Unlock()

	tx := &scope{t: s.live.t.clone(), faults: s.faults}
	if err := fn(&MovementRepository{s: tx}, &InvoiceRepository{s: tx}, &PaymentRepository{s: tx}); err != nil {
		return err
	}
	s.live.t = tx.t
	return nil
}
