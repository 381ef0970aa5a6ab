// Package transform rebuilds nested user records from flat storage rows.
package transform

import (
	"fmt"
	"strconv"
	"time"

	"github.com/user-directory/engine/internal/models"
	"github.com/user-directory/engine/internal/schema"
)

var maskers = map[string]func(string) string{
	"bank.cardNumber": MaskCardNumber,
	"bank.iban":       MaskIBAN,
}

// User converts one storage row into the nested record. The row is not
// modified. Sensitive values are masked and the password is always replaced
// by models.RedactedPassword.
func User(row schema.Row) (*models.User, error) {
	u := &models.User{}
	for _, f := range schema.Fields() {
		if f.WriteOnly {
			continue
		}
		v, err := coerce(f, row[f.Column])
		if err != nil {
			return nil, err
		}
		if s, ok := v.(string); ok && f.Sensitive {
			mask, found := maskers[f.Path]
			if !found {
				return nil, fmt.Errorf("field %s: sensitive without a masking rule", f.Path)
			}
			v = mask(s)
		}
		if err := f.Set(u, v); err != nil {
			return nil, err
		}
	}
	redacted := models.RedactedPassword
	u.Password = &redacted
	return u, nil
}

// Users converts rows in order.
func Users(rows []schema.Row) ([]models.User, error) {
	out := make([]models.User, 0, len(rows))
	for i, row := range rows {
		u, err := User(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, *u)
	}
	return out, nil
}

// coerce normalizes a driver value to the Go type schema.Field.Set expects.
func coerce(f schema.Field, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	switch f.Kind {
	case schema.KindInt:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int32:
			return int64(n), nil
		case int:
			return int64(n), nil
		case string:
			i, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Path, err)
			}
			return i, nil
		}
	case schema.KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case schema.KindFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case int32:
			return float64(n), nil
		case string:
			x, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Path, err)
			}
			return x, nil
		}
	case schema.KindDate:
		switch d := v.(type) {
		case time.Time:
			return d.Format(schema.DateLayout), nil
		case string:
			return d, nil
		}
	case schema.KindTime:
		switch t := v.(type) {
		case time.Time:
			return t, nil
		case string:
			parsed, err := time.Parse(time.RFC3339Nano, t)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Path, err)
			}
			return parsed, nil
		}
	}
	return nil, fmt.Errorf("field %s: unsupported %T for %s column %s", f.Path, v, f.Kind, f.Column)
}
