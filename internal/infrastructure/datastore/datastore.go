// Package datastore elige el almacén de tablas según DB_DRIVER: PostgreSQL o memoria.
package datastore

import (
	"context"
	"fmt"

	"github.com/jhoicas/hst-contabilidad/internal/application/bookkeeping"
	"github.com/jhoicas/hst-contabilidad/internal/domain/repository"
	"github.com/jhoicas/hst-contabilidad/internal/infrastructure/memory"
	"github.com/jhoicas/hst-contabilidad/internal/infrastructure/postgres"
	"github.com/jhoicas/hst-contabilidad/pkg/config"
)

// Set repositorios y runner de transacciones sobre el mismo almacén.
type Set struct {
	Movements  repository.MovementRepository
	Invoices   repository.InvoiceRepository
	Payments   repository.PaymentRepository
	ShareLinks repository.ShareLinkRepository
	Tx         bookkeeping.TxRunner
	Driver     string

	close func()
}

// Close libera las conexiones del almacén.
func (s *Set) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open abre el almacén configurado. Con "memory" los datos viven solo en el proceso.
func Open(ctx context.Context, cfg config.DBConfig) (*Set, error) {
	switch cfg.Driver {
	case "memory":
		return FromMemory(memory.NewStore()), nil
	case "postgres", "":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Set{
			Movements:  postgres.NewMovementRepository(pool),
			Invoices:   postgres.NewInvoiceRepository(pool),
			Payments:   postgres.NewPaymentRepository(pool),
			ShareLinks: postgres.NewShareLinkRepository(pool),
			Tx:         postgres.NewTxRunner(pool),
			Driver:     "postgres",
			close:      pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("datastore: driver desconocido %q", cfg.Driver)
	}
}

// FromMemory envuelve un almacén en memoria ya creado.
func FromMemory(store *memory.Store) *Set {
	return &Set{
		Movements:  store.Movements(),
		Invoices:   store.Invoices(),
		Payments:   store.Payments(),
		ShareLinks: store.ShareLinks(),
		Tx:         store,
		Driver:     "memory",
	}
}
