package validator

import (
	"net/url"
	"strconv"
	"strings"

	apperrors "frontdesk/pkg/errors"
	"frontdesk/pkg/logger"
	"frontdesk/pkg/model"

	"github.com/go-playground/validator/v10"
)

// passQuery mirrors the query parameters of the pass and search endpoints.
type passQuery struct {
	Type string `validate:"required,oneof=visitor coworker"`
	ID   string `validate:"omitempty,number"`
	Name string `validate:"omitempty,max=200"`
}

type RequestValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewRequestValidator(log *logger.Logger) *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
		log:      log,
	}
}

// ParsePassQuery validates and converts the resolve-pass query string. The
// identifier must carry a numeric id or a non-empty name.
func (rv *RequestValidator) ParsePassQuery(q url.Values) (model.PersonKind, model.Identifier, error) {
	query := passQuery{
		Type: strings.ToLower(strings.TrimSpace(q.Get("type"))),
		ID:   strings.TrimSpace(q.Get("id")),
		Name: strings.TrimSpace(q.Get("name")),
	}

	if err := rv.check(query); err != nil {
		return "", model.Identifier{}, err
	}
	if query.ID == "" && query.Name == "" {
		return "", model.Identifier{}, apperrors.InvalidInput("either 'id' or 'name' is required")
	}

	var ident model.Identifier
	if query.ID != "" {
		id, err := strconv.ParseInt(query.ID, 10, 64)
		if err != nil || id <= 0 {
			return "", model.Identifier{}, apperrors.InvalidInput("id must be a positive number")
		}
		ident.ID = id
	}
	ident.Name = query.Name

	return model.PersonKind(query.Type), ident, nil
}

// ParseSearchQuery validates the people-search query string, which requires
// a name.
func (rv *RequestValidator) ParseSearchQuery(q url.Values) (model.PersonKind, string, error) {
	query := passQuery{
		Type: strings.ToLower(strings.TrimSpace(q.Get("type"))),
		Name: strings.TrimSpace(q.Get("name")),
	}

	if err := rv.check(query); err != nil {
		return "", "", err
	}
	if query.Name == "" {
		return "", "", apperrors.InvalidInput("'name' is required")
	}

	return model.PersonKind(query.Type), query.Name, nil
}

func (rv *RequestValidator) check(query passQuery) error {
	err := rv.validate.Struct(query)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		rv.log.Error("Request validation failed unexpectedly", "error", err)
		return apperrors.Internal("Request validation failed", err)
	}

	details := make(map[string]any, len(invalid))
	for _, fe := range invalid {
		details[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return apperrors.Validation("Missing or invalid query parameters", details)
}
