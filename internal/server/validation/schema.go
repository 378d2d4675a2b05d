// Package validation checks the shape of inbound request bodies against JSON
// schemas before they reach the services.
package validation

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/xeipuuv/gojsonschema"
)

const loginSchema = `{
  "type": "object",
  "required": ["id", "password"],
  "properties": {
    "id":       {"type": "string", "minLength": 1},
    "password": {"type": "string", "minLength": 1}
  }
}`

const changePasswordSchema = `{
  "type": "object",
  "required": ["oldPassword", "newPassword"],
  "properties": {
    "oldPassword": {"type": "string", "minLength": 1},
    "newPassword": {"type": "string", "minLength": 1}
  }
}`

// fieldMessages maps a schema field to the message reported when it is absent.
var fieldMessages = map[string]string{
	"id":          "ID is required",
	"password":    "Password is required",
	"oldPassword": "Old password is required",
	"newPassword": "New password is required",
}

// Validator holds the compiled request schemas.
type Validator struct {
	login          *gojsonschema.Schema
	changePassword *gojsonschema.Schema
}

func NewValidator() (*Validator, error) {
	login, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(loginSchema))
	if err != nil {
		return nil, fmt.Errorf("login schema: %w", err)
	}
	changePassword, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(changePasswordSchema))
	if err != nil {
		return nil, fmt.Errorf("change password schema: %w", err)
	}
	return &Validator{login: login, changePassword: changePassword}, nil
}

// Login validates a login body (any value encodable as JSON).
func (v *Validator) Login(body any) error {
	return validate(v.login, body)
}

// ChangePassword validates a change-password body.
func (v *Validator) ChangePassword(body any) error {
	return validate(v.changePassword, body)
}

func validate(schema *gojsonschema.Schema, body any) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidRequest, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, describe(e))
	}
	return fmt.Errorf("%w: %s", common.ErrInvalidRequest, strings.Join(msgs, "; "))
}

func describe(e gojsonschema.ResultError) string {
	field := e.Field()
	if e.Type() == "required" {
		if p, ok := e.Details()["property"].(string); ok {
			field = p
		}
	}
	if msg, ok := fieldMessages[field]; ok {
		return msg
	}
	return e.String()
}
