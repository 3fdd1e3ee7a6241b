package types

import (
	"context"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

const (
	addressPattern = `^0x[0-9a-fA-F]{40}$`
	hexDataPattern = `^0x([0-9a-fA-F]{2})*$`

	// the GET template appends ".json" to {data}, some clients drop it
	templateDataPattern = `^0x([0-9a-fA-F]{2})*(\.json)?$`
)

// PostLookupPayload is the EIP-3668 POST body.
type PostLookupPayload struct {
	// Required: true
	Sender *string `json:"sender"`

	// Required: true
	Data *string `json:"data"`
}

// Validate validates PostLookupPayload
func (m *PostLookupPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("sender", "body", m.Sender); err != nil {
		res = append(res, err)
	} else if err := validate.Pattern("sender", "body", *m.Sender, addressPattern); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("data", "body", m.Data); err != nil {
		res = append(res, err)
	} else if err := validate.Pattern("data", "body", *m.Data, hexDataPattern); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// ContextValidate validates this payload based on context it is used
func (m *PostLookupPayload) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// GetLookupParams are the path parameters of the EIP-3668 GET URL template
// "/{sender}/{data}.json".
type GetLookupParams struct {
	Sender string `param:"sender"`
	Data   string `param:"data"`
}

// Validate validates GetLookupParams
func (m *GetLookupParams) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Pattern("sender", "path", m.Sender, addressPattern); err != nil {
		res = append(res, err)
	}
	if err := validate.Pattern("data", "path", m.Data, templateDataPattern); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// LookupResponse is the successful gateway answer.
type LookupResponse struct {
	// Required: true
	Data *string `json:"data"`

	Meta *LookupMeta `json:"meta,omitempty"`
}

// Validate validates LookupResponse
func (m *LookupResponse) Validate(formats strfmt.Registry) error {
	if err := validate.Required("data", "body", m.Data); err != nil {
		return err
	}
	return nil
}

// LookupMeta is informational and not part of the signed payload.
type LookupMeta struct {
	Node           string `json:"node"`
	Owner          string `json:"owner"`
	AgentID        string `json:"agentId"`
	ResolvedExpiry uint64 `json:"resolvedExpiry"`
	ExpiresAt      uint64 `json:"expiresAt"`
	Signer         string `json:"signer"`
	Digest         string `json:"digest"`
}

// MarshalBinary interface implementation
func (m *LookupResponse) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return swag.WriteJSON(m)
}

// UnmarshalBinary interface implementation
func (m *LookupResponse) UnmarshalBinary(b []byte) error {
	var res LookupResponse
	if err := swag.ReadJSON(b, &res); err != nil {
		return err
	}
	*m = res
	return nil
}
