package types

import (
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// Required: true
	Status *string `json:"status"`

	Service         string `json:"service"`
	ChainID         uint64 `json:"chainId"`
	ContractAddress string `json:"contractAddress"`
}

// Validate validates HealthResponse
func (m *HealthResponse) Validate(formats strfmt.Registry) error {
	if err := validate.Required("status", "body", m.Status); err != nil {
		return err
	}
	return nil
}

// InfoResponse describes the gateway on GET /.
type InfoResponse struct {
	Service          string       `json:"service"`
	ParentDomain     string       `json:"parentDomain"`
	ParentNode       string       `json:"parentNode"`
	ChainID          uint64       `json:"chainId"`
	ContractAddress  string       `json:"contractAddress"`
	IdentityRegistry string       `json:"identityRegistry,omitempty"`
	Signer           string       `json:"signer"`
	LookupSelector   string       `json:"lookupSelector"`
	CallbackSelector string       `json:"callbackSelector"`
	Routes           []*RouteInfo `json:"routes"`
}

// RouteInfo is one entry of InfoResponse.Routes.
type RouteInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Validate validates InfoResponse
func (m *InfoResponse) Validate(formats strfmt.Registry) error {
	if err := validate.RequiredString("service", "body", m.Service); err != nil {
		return err
	}
	return nil
}
