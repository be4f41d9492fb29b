package models

import (
	"time"

	"github.com/google/uuid"
)

type Portfolio struct {
	ID         int64     `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"-"`
	Name       string    `db:"name" json:"name"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	ModifiedAt time.Time `db:"modified_at" json:"modifiedAt"`
}
