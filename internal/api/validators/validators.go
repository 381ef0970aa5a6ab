// Package validators parses and checks request input before it reaches the
// service layer.
package validators

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/user-directory/engine/internal/api/types"
	"github.com/user-directory/engine/internal/models"
	appErr "github.com/user-directory/engine/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// New returns the shared validator instance.
func New() *validator.Validate { return validate }

// listUsersParams holds the accepted listing parameters.
type listUsersParams struct {
	Search  string `validate:"max=255"`
	Country string `validate:"max=100"`
	Company string `validate:"max=200"`
	Limit   int    `validate:"min=1,max=1000"`
	Offset  int    `validate:"min=0"`
}

var listUsersKeys = map[string]bool{
	"search":  true,
	"country": true,
	"company": true,
	"limit":   true,
	"offset":  true,
}

// ValidationError lists every rejected parameter.
type ValidationError struct {
	Fields []types.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "invalid query: " + strings.Join(parts, "; ")
}

// ParseListUsers turns listing query parameters into a filter. Empty values
// count as absent.
func ParseListUsers(q url.Values) (models.UserFilter, error) {
	var (
		p      listUsersParams
		filter models.UserFilter
		fields []types.FieldError
	)

	unknown := make([]string, 0)
	for k := range q {
		if !listUsersKeys[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		fields = append(fields, types.FieldError{Field: k, Message: "is not allowed"})
	}

	p.Search = q.Get("search")
	p.Country = q.Get("country")
	p.Company = q.Get("company")

	limitSet := false
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			fields = append(fields, types.FieldError{Field: "limit", Message: "must be an integer"})
		} else {
			p.Limit = n
			limitSet = true
		}
	}
	offsetBad := false
	if s := q.Get("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			fields = append(fields, types.FieldError{Field: "offset", Message: "must be an integer"})
			offsetBad = true
		} else {
			p.Offset = n
		}
	}

	except := []string{}
	if !limitSet {
		except = append(except, "Limit")
	}
	if offsetBad {
		except = append(except, "Offset")
	}
	var err error
	if len(except) > 0 {
		err = validate.StructExcept(p, except...)
	} else {
		err = validate.Struct(p)
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields = append(fields, fieldError(fe))
		}
	} else if err != nil {
		return filter, appErr.Wrap(err, appErr.CodeInternal, "query validation failed")
	}

	if len(fields) > 0 {
		return filter, &ValidationError{Fields: fields}
	}

	if p.Search != "" {
		filter.Search = &p.Search
	}
	if p.Country != "" {
		filter.Country = &p.Country
	}
	if p.Company != "" {
		filter.Company = &p.Company
	}
	if limitSet {
		filter.Limit = &p.Limit
	}
	filter.Offset = p.Offset
	return filter, nil
}

// ParseUserID accepts canonical positive decimal integers only: no sign and
// no leading zeros.
func ParseUserID(raw string) (int64, error) {
	if raw == "" || raw[0] == '+' || raw[0] == '0' {
		return 0, appErr.New(appErr.CodeInvalid, "invalid user id").WithMeta("id", raw)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErr.New(appErr.CodeInvalid, "invalid user id").WithMeta("id", raw)
	}
	return id, nil
}

var queryNames = map[string]string{
	"Search":  "search",
	"Country": "country",
	"Company": "company",
	"Limit":   "limit",
	"Offset":  "offset",
}

func fieldError(fe validator.FieldError) types.FieldError {
	name := queryNames[fe.StructField()]
	var msg string
	switch fe.Tag() {
	case "min":
		if fe.Kind() == reflect.String {
			msg = fmt.Sprintf("must be at least %s characters", fe.Param())
		} else {
			msg = fmt.Sprintf("must be greater than or equal to %s", fe.Param())
		}
	case "max":
		if fe.Kind() == reflect.String {
			msg = fmt.Sprintf("must be at most %s characters", fe.Param())
		} else {
			msg = fmt.Sprintf("must be less than or equal to %s", fe.Param())
		}
	default:
		msg = "is invalid"
	}
	return types.FieldError{Field: name, Message: msg}
}
