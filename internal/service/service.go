package service

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Rrens/boardsync/internal/domain"
)

// RoleResolver derives a user's effective role on an entity
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID string, ref domain.EntityRef) (domain.Role, error)
}

// Repositories bundles the store interfaces the services depend on
type Repositories struct {
	Tx         domain.Transactor
	Users      domain.UserRepository
	Workspaces domain.WorkspaceRepository
	Boards     domain.BoardRepository
	Lists      domain.ListRepository
	Cards      domain.CardRepository
	Comments   domain.CommentRepository
	Shares     domain.ShareRepository
	Activity   domain.ActivityRepository
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report json names so errors match the payload the client sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Tags on Optional fields apply to the wrapped value; absent and null skip them.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(domain.Optional[string]); ok && o.Valid {
			return o.Value
		}
		return nil
	}, domain.Optional[string]{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(domain.Optional[int]); ok && o.Valid {
			return o.Value
		}
		return nil
	}, domain.Optional[int]{})

	return v
}

// validateStruct maps validator failures to a domain.ValidationError
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &domain.ValidationError{Field: fe.Field(), Message: "failed on the '" + fe.Tag() + "' rule"}
	}
	return &domain.ValidationError{Message: err.Error()}
}

// decodePatch unmarshals change data into a typed patch and validates it
func decodePatch[T any](data json.RawMessage) (*T, error) {
	var patch T
	if err := json.Unmarshal(data, &patch); err != nil {
		return nil, &domain.ValidationError{Field: "data", Message: err.Error()}
	}
	if err := validateStruct(&patch); err != nil {
		return nil, err
	}
	return &patch, nil
}

// createStamps returns the created and updated timestamps for a new entity.
// Client values are kept verbatim when they parse.
func createStamps(stamps domain.ClientStamps, now string) (string, string, error) {
	created, updated := now, now

	if v := stamps.CreatedAt.Or(""); v != "" {
		if _, err := domain.ParseTimestamp(v); err != nil {
			return "", "", &domain.ValidationError{Field: "createdAt", Message: err.Error()}
		}
		created = v
	}
	if v := stamps.UpdatedAt.Or(""); v != "" {
		if _, err := domain.ParseTimestamp(v); err != nil {
			return "", "", &domain.ValidationError{Field: "updatedAt", Message: err.Error()}
		}
		updated = v
	}

	return created, updated, nil
}

func timestamp(now func() time.Time) string {
	return domain.FormatTimestamp(now())
}

func orDefault(o domain.Optional[string], def string) string {
	if v := o.Or(""); v != "" {
		return v
	}
	return def
}

func nonEmpty(o domain.Optional[string]) *string {
	if v := o.Or(""); v != "" {
		return &v
	}
	return nil
}
