// Package domain defines the persistence models for reservations and user
// accounts. These types are mapped with GORM and form the core data layer
// of the reservation backend.
package domain

import (
	"time"
)

// Reservation represents a single table booking. A customer may hold at most
// one reservation at a time, which is why the customer name carries a unique
// index: it is the business key every lookup, edit, and delete operation uses.
//
// Fields:
//   - ID: auto-increment primary key assigned by the store.
//   - CustomerName: unique business key (exact-match, case-sensitive).
//   - StartsAt: date and time the table is booked for, stored in UTC with
//     second precision. Conflicts are decided by exact timestamp equality.
//   - PartySize: number of guests (>= 1, validated at the boundary).
//   - TableNumber: table in the fixed universe 1..N.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Reservation struct {
	ID           uint      `json:"id"            gorm:"primaryKey"`
	CustomerName string    `json:"customer_name" gorm:"type:varchar(255);not null;uniqueIndex:ux_reservations_customer"`
	StartsAt     time.Time `json:"starts_at"     gorm:"not null;index:idx_reservations_starts_at"`
	PartySize    int       `json:"party_size"    gorm:"not null"`
	TableNumber  int       `json:"table_number"  gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for Reservation.
func (Reservation) TableName() string { return "reservations" }

// User represents a registered account. Credentials are stored as a bcrypt
// hash and never serialized; the email doubles as the login identifier and
// is unique across accounts.
type User struct {
	ID           string    `json:"id"         gorm:"type:char(36);primaryKey"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(120);not null"`
	LastName     string    `json:"last_name"  gorm:"type:varchar(120);not null"`
	Email        string    `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	Phone        string    `json:"phone"      gorm:"type:varchar(40)"`
	Address      string    `json:"address"    gorm:"type:varchar(255)"`
	PasswordHash string    `json:"-"          gorm:"type:varchar(120);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }
