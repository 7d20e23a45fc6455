package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
)

var ErrNoSuchDoctor = errors.New("no such doctor")

// inserts a new doctor, returns the new ID.
func (s *pgStore) CreateDoctor(ctx context.Context, email, hashedPassword string, name *string) (int, error) {
	const q = `
	INSERT INTO doctors (email, hashed_password, name, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id;`
	var newID int
	if err := s.db.QueryRowxContext(ctx, q, email, hashedPassword, name).Scan(&newID); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to create doctor")
		return 0, err
	}
	return newID, nil
}

// returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetDoctorByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	var d model.Doctor
	const q = `
	SELECT id, email, hashed_password, name, created_at, updated_at
	  FROM doctors
	 WHERE email = $1;`
	if err := s.db.GetContext(ctx, &d, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get doctor by email")
		return nil, err
	}
	return &d, nil
}

// returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetDoctorByID(ctx context.Context, id int) (*model.Doctor, error) {
	var d model.Doctor
	const q = `
	SELECT id, email, hashed_password, name, created_at, updated_at
	  FROM doctors
	 WHERE id = $1;`
	if err := s.db.GetContext(ctx, &d, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("doctor_id", id).Msg("failed to get doctor by id")
		return nil, err
	}
	return &d, nil
}

// replaces the stored bcrypt hash and bumps updated_at.
func (s *pgStore) UpdateDoctorPassword(ctx context.Context, id int, hashedPassword string) error {
	const q = `
	UPDATE doctors
	   SET hashed_password = $2,
	       updated_at = now()
	 WHERE id = $1;`
	res, err := s.db.ExecContext(ctx, q, id, hashedPassword)
	if err != nil {
		log.Error().Err(err).Int("doctor_id", id).Msg("failed to update doctor password - exec")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		log.Error().Err(err).Int("doctor_id", id).Msg("failed to update doctor password - rows affected")
		return err
	}
	if rows == 0 {
		return ErrNoSuchDoctor
	}
	return nil
}
