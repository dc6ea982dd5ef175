package postgres

import (
	"database/sql"
	"time"

	"vehicle-rental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	*TxManager
	repository.OrderRepository
	repository.VehicleRepository
}

func NewStore(db *sql.DB, txTimeout time.Duration) *Store {
	return &Store{
		db:                db,
		TxManager:         NewTxManager(db, txTimeout),
		OrderRepository:   NewOrderRepository(db),
		VehicleRepository: NewVehicleRepository(db),
	}
}
