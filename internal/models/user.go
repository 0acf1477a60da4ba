package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role classifies a principal for access control.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a declared role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

func (r Role) String() string { return string(r) }

// ParseRole validates a raw role value.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return r, nil
}

// CartItem is one entry in a user's embedded cart.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Address is a saved shipping address embedded in a user document.
type Address struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName string             `bson:"full_name" json:"fullName"`
	Address  string             `bson:"address" json:"address"`
	City     string             `bson:"city" json:"city"`
	State    string             `bson:"state" json:"state"`
	Zipcode  string             `bson:"zipcode" json:"zipcode"`
	Country  string             `bson:"country" json:"country"`
	Phone    string             `bson:"phone" json:"phone"`
}

// User is an account document. PasswordHash is excluded from JSON and
// only loaded from the store when explicitly requested.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	Cart         []CartItem         `bson:"cart" json:"cart"`
	Addresses    []Address          `bson:"addresses" json:"addresses"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// IsAdmin is a convenience for the common role branch.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
