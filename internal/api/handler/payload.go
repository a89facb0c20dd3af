package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/talenthub/talenthub-api/internal/core/domain"
)

// maxBodyBytes bounds request bodies read by decodeObject.
const maxBodyBytes = 1 << 20

var (
	errEmptyBody = errors.New("body must be a non-empty JSON object")
	errNoFields  = errors.New("no recognised fields to write")
)

// fieldsMapper is implemented by every request body. fields returns the
// column values to persist; update requests return only the supplied ones.
type fieldsMapper interface {
	fields() (domain.Fields, error)
}

// clearer is implemented by update requests with nullable columns. An
// explicit JSON null for one of them clears the column; an absent member
// leaves it untouched.
type clearer interface {
	clearable() []string
}

// decodeObject reads the request body into dst and returns its raw members.
// The body must be a JSON object with at least one member.
func decodeObject(c echo.Context, dst any) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil || len(members) == 0 {
		return nil, errEmptyBody
	}
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(dst); err != nil {
		return nil, err
	}
	return members, nil
}

// clearNulls sets every clearable column sent as null to nil in f.
func clearNulls(f domain.Fields, members map[string]json.RawMessage, columns []string) {
	for _, col := range columns {
		if raw, ok := members[col]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			f[col] = nil
		}
	}
}

// put copies *v into f under key when v is set.
func put[V any](f domain.Fields, key string, v *V) {
	if v != nil {
		f[key] = *v
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
