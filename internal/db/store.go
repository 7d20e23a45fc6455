// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
)

type Store interface {
	CreateDoctor(ctx context.Context, email, hashedPassword string, name *string) (int, error)
	GetDoctorByEmail(ctx context.Context, email string) (*model.Doctor, error)
	GetDoctorByID(ctx context.Context, id int) (*model.Doctor, error)
	UpdateDoctorPassword(ctx context.Context, id int, hashedPassword string) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}
