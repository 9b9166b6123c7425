package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

const (
	RoleCoach     Role = "coach"
	RoleAthlete   Role = "athlete"
	RoleDeveloper Role = "developer"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleCoach || r == RoleAthlete || r == RoleDeveloper
}

// User represents an account in the system. A coach additionally carries a
// roster of athlete IDs; the relation lives only on the coach side, an
// athlete document never references its coaches.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Username     string             `bson:"username" json:"username"` // Unique
	Email        string             `bson:"email" json:"email"`       // Unique, stored lowercase
	PasswordHash string             `bson:"passwordHash" json:"-"`    // Never expose via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Coach-specific ---
	// Athlete IDs on this coach's roster.
	Athletes []primitive.ObjectID `bson:"athletes,omitempty" json:"athletes,omitempty"`
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

func (u *User) IsAthlete() bool {
	return u.Role == RoleAthlete
}

// HasAthlete reports whether the given athlete is on this coach's roster.
func (u *User) HasAthlete(athleteID primitive.ObjectID) bool {
	for _, id := range u.Athletes {
		if id == athleteID {
			return true
		}
	}
	return false
}
