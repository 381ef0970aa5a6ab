package models

import (
	"time"
)

// RedactedPassword replaces the stored password on every read.
const RedactedPassword = "***"

// User is the nested profile record served by the API.
// Leaf fields are pointers so that NULL columns serialize as null.
type User struct {
	ID        int64   `json:"id"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	BirthDate *string `json:"birthDate"`
	Image     *string `json:"image"`

	BloodGroup *string  `json:"bloodGroup"`
	Height     *float64 `json:"height"`
	Weight     *float64 `json:"weight"`
	EyeColor   *string  `json:"eyeColor"`
	Hair       Hair     `json:"hair"`

	Domain     *string `json:"domain"`
	IP         *string `json:"ip"`
	Address    Address `json:"address"`
	MACAddress *string `json:"macAddress"`
	University *string `json:"university"`
	Bank       Bank    `json:"bank"`
	Company    Company `json:"company"`
	Crypto     Crypto  `json:"crypto"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Hair struct {
	Color *string `json:"color"`
	Type  *string `json:"type"`
}

type Coordinates struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Address is shared by the user's home address and the company address.
type Address struct {
	Address     *string     `json:"address"`
	City        *string     `json:"city"`
	Coordinates Coordinates `json:"coordinates"`
	PostalCode  *string     `json:"postalCode"`
	State       *string     `json:"state"`
	Country     *string     `json:"country"`
}

// Bank holds card details. CardNumber and IBAN are masked on read.
type Bank struct {
	CardExpire *string `json:"cardExpire"`
	CardNumber *string `json:"cardNumber"`
	CardType   *string `json:"cardType"`
	Currency   *string `json:"currency"`
	IBAN       *string `json:"iban"`
}

type Company struct {
	Department *string `json:"department"`
	Name       *string `json:"name"`
	Title      *string `json:"title"`
	Address    Address `json:"address"`
}

type Crypto struct {
	Coin    *string `json:"coin"`
	Wallet  *string `json:"wallet"`
	Network *string `json:"network"`
}

// FullName joins first and last name with a single space, skipping missing parts.
func (u *User) FullName() string {
	switch {
	case u.FirstName != nil && u.LastName != nil:
		return *u.FirstName + " " + *u.LastName
	case u.FirstName != nil:
		return *u.FirstName
	case u.LastName != nil:
		return *u.LastName
	}
	return ""
}
