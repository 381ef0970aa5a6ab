// Package schema holds the single table that ties the nested user record to
// the flat users table. Query construction, row transformation, migrations
// and imports all read from it so the two shapes cannot drift apart.
package schema

import (
	"fmt"
	"time"

	"github.com/user-directory/engine/internal/models"
)

// Kind is the storage type of a column.
type Kind int

const (
	KindInt Kind = iota
	KindString
	KindFloat
	KindDate
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// DateLayout is how birth dates travel in the nested record.
const DateLayout = "2006-01-02"

// Field is one row of the mapping table.
type Field struct {
	Path   string
	Column string
	Kind   Kind
	// Sensitive values never leave the API in plain form.
	Sensitive bool
	// WriteOnly columns are stored but never selected.
	WriteOnly bool
	// StoreManaged columns are assigned by the database, not by imports.
	StoreManaged bool

	ref func(u *models.User) any
}

// Row is one flat storage row keyed by column name. A missing key and a nil
// value both mean NULL.
type Row map[string]any

// Get reads the field from u. Absent leaves return nil.
func (f Field) Get(u *models.User) any {
	switch p := f.ref(u).(type) {
	case *int64:
		return *p
	case **string:
		if *p == nil {
			return nil
		}
		return **p
	case **float64:
		if *p == nil {
			return nil
		}
		return **p
	case **time.Time:
		if *p == nil {
			return nil
		}
		return **p
	}
	return nil
}

// Set stores v into u. v must be nil or the Go type of the field's kind:
// int64, string, float64 or time.Time.
func (f Field) Set(u *models.User, v any) error {
	switch p := f.ref(u).(type) {
	case *int64:
		switch n := v.(type) {
		case nil:
			*p = 0
		case int64:
			*p = n
		default:
			return f.typeErr(v)
		}
	case **string:
		switch s := v.(type) {
		case nil:
			*p = nil
		case string:
			*p = &s
		default:
			return f.typeErr(v)
		}
	case **float64:
		switch n := v.(type) {
		case nil:
			*p = nil
		case float64:
			*p = &n
		default:
			return f.typeErr(v)
		}
	case **time.Time:
		switch t := v.(type) {
		case nil:
			*p = nil
		case time.Time:
			*p = &t
		default:
			return f.typeErr(v)
		}
	}
	return nil
}

func (f Field) typeErr(v any) error {
	return fmt.Errorf("field %s: cannot assign %T to %s column %s", f.Path, v, f.Kind, f.Column)
}

var (
	fields   []Field
	byPath   map[string]int
	byColumn map[string]int
)

func init() {
	fields = buildFields()
	byPath = make(map[string]int, len(fields))
	byColumn = make(map[string]int, len(fields))
	for i, f := range fields {
		if _, dup := byPath[f.Path]; dup {
			panic("schema: duplicate path " + f.Path)
		}
		if _, dup := byColumn[f.Column]; dup {
			panic("schema: duplicate column " + f.Column)
		}
		byPath[f.Path] = i
		byColumn[f.Column] = i
	}
}

func str(path, column string, ref func(u *models.User) **string) Field {
	return Field{Path: path, Column: column, Kind: KindString, ref: func(u *models.User) any { return ref(u) }}
}

func num(path, column string, ref func(u *models.User) **float64) Field {
	return Field{Path: path, Column: column, Kind: KindFloat, ref: func(u *models.User) any { return ref(u) }}
}

func sensitive(f Field) Field {
	f.Sensitive = true
	return f
}

func addressFields(path, column string, addr func(u *models.User) *models.Address) []Field {
	return []Field{
		str(path+".address", column+"_address", func(u *models.User) **string { return &addr(u).Address }),
		str(path+".city", column+"_city", func(u *models.User) **string { return &addr(u).City }),
		num(path+".coordinates.lat", column+"_coordinates_lat", func(u *models.User) **float64 { return &addr(u).Coordinates.Lat }),
		num(path+".coordinates.lng", column+"_coordinates_lng", func(u *models.User) **float64 { return &addr(u).Coordinates.Lng }),
		str(path+".postalCode", column+"_postal_code", func(u *models.User) **string { return &addr(u).PostalCode }),
		str(path+".state", column+"_state", func(u *models.User) **string { return &addr(u).State }),
		str(path+".country", column+"_country", func(u *models.User) **string { return &addr(u).Country }),
	}
}

func buildFields() []Field {
	password := sensitive(str("password", "password", func(u *models.User) **string { return &u.Password }))
	password.WriteOnly = true

	birthDate := str("birthDate", "birth_date", func(u *models.User) **string { return &u.BirthDate })
	birthDate.Kind = KindDate

	out := []Field{
		{Path: "id", Column: "id", Kind: KindInt, StoreManaged: true, ref: func(u *models.User) any { return &u.ID }},
		str("firstName", "first_name", func(u *models.User) **string { return &u.FirstName }),
		str("lastName", "last_name", func(u *models.User) **string { return &u.LastName }),
		str("email", "email", func(u *models.User) **string { return &u.Email }),
		str("phone", "phone", func(u *models.User) **string { return &u.Phone }),
		str("username", "username", func(u *models.User) **string { return &u.Username }),
		password,
		birthDate,
		str("image", "image", func(u *models.User) **string { return &u.Image }),
		str("bloodGroup", "blood_group", func(u *models.User) **string { return &u.BloodGroup }),
		num("height", "height", func(u *models.User) **float64 { return &u.Height }),
		num("weight", "weight", func(u *models.User) **float64 { return &u.Weight }),
		str("eyeColor", "eye_color", func(u *models.User) **string { return &u.EyeColor }),
		str("hair.color", "hair_color", func(u *models.User) **string { return &u.Hair.Color }),
		str("hair.type", "hair_type", func(u *models.User) **string { return &u.Hair.Type }),
		str("domain", "domain", func(u *models.User) **string { return &u.Domain }),
		str("ip", "ip", func(u *models.User) **string { return &u.IP }),
		str("macAddress", "mac_address", func(u *models.User) **string { return &u.MACAddress }),
		str("university", "university", func(u *models.User) **string { return &u.University }),
	}
	out = append(out, addressFields("address", "address", func(u *models.User) *models.Address { return &u.Address })...)
	out = append(out,
		str("bank.cardExpire", "bank_card_expire", func(u *models.User) **string { return &u.Bank.CardExpire }),
		sensitive(str("bank.cardNumber", "bank_card_number", func(u *models.User) **string { return &u.Bank.CardNumber })),
		str("bank.cardType", "bank_card_type", func(u *models.User) **string { return &u.Bank.CardType }),
		str("bank.currency", "bank_currency", func(u *models.User) **string { return &u.Bank.Currency }),
		sensitive(str("bank.iban", "bank_iban", func(u *models.User) **string { return &u.Bank.IBAN })),
		str("company.department", "company_department", func(u *models.User) **string { return &u.Company.Department }),
		str("company.name", "company_name", func(u *models.User) **string { return &u.Company.Name }),
		str("company.title", "company_title", func(u *models.User) **string { return &u.Company.Title }),
	)
	out = append(out, addressFields("company.address", "company_address", func(u *models.User) *models.Address { return &u.Company.Address })...)
	out = append(out,
		str("crypto.coin", "crypto_coin", func(u *models.User) **string { return &u.Crypto.Coin }),
		str("crypto.wallet", "crypto_wallet", func(u *models.User) **string { return &u.Crypto.Wallet }),
		str("crypto.network", "crypto_network", func(u *models.User) **string { return &u.Crypto.Network }),
		Field{Path: "created_at", Column: "created_at", Kind: KindTime, StoreManaged: true, ref: func(u *models.User) any { return &u.CreatedAt }},
		Field{Path: "updated_at", Column: "updated_at", Kind: KindTime, StoreManaged: true, ref: func(u *models.User) any { return &u.UpdatedAt }},
	)
	return out
}
