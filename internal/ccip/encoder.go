package ccip

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Result is the tuple the registrar decodes from the response bytes.
type Result struct {
	Owner          common.Address `abi:"owner"`
	AgentID        *big.Int       `abi:"agentId"`
	AgentURI       string         `abi:"agentURI"`
	ResolvedExpiry uint64         `abi:"resolvedExpiry"`
	ExpiresAt      uint64         `abi:"expiresAt"`
	Signature      []byte         `abi:"signature"`
}

// EncodeResult ABI-encodes r as
// (address owner, uint256 agentId, string agentURI, uint64 resolvedExpiry, uint64 expiresAt, bytes signature).
func EncodeResult(r *Result) ([]byte, error) {
	return resultArguments.Pack(r.Owner, r.AgentID, r.AgentURI, r.ResolvedExpiry, r.ExpiresAt, r.Signature)
}

// DecodeResult is the inverse of EncodeResult.
func DecodeResult(b []byte) (*Result, error) {
	values, err := resultArguments.Unpack(b)
	if err != nil {
		return nil, errors.Wrap(err, "unpack result")
	}
	var r Result
	if err := resultArguments.Copy(&r, values); err != nil {
		return nil, errors.Wrap(err, "copy result")
	}
	return &r, nil
}

// EncodeResponse encodes the (bytes result, bytes extraData) pair returned to the client.
// extraData is written exactly as received.
func EncodeResponse(result, extraData []byte) ([]byte, error) {
	if extraData == nil {
		extraData = []byte{}
	}
	return registrar.Methods[lookupMethod].Outputs.Pack(result, extraData)
}

// DecodeResponse splits gateway response data into result and extra data.
func DecodeResponse(data []byte) (result, extraData []byte, err error) {
	values, err := registrar.Methods[lookupMethod].Outputs.Unpack(data)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unpack response")
	}
	result, ok := values[0].([]byte)
	if !ok {
		return nil, nil, errors.New("response result is not bytes")
	}
	extraData, ok = values[1].([]byte)
	if !ok {
		return nil, nil, errors.New("response extra data is not bytes")
	}
	return result, extraData, nil
}

// EncodeCallback builds the call data a client submits to the registrar callback with
// the gateway response.
func EncodeCallback(response, extraData []byte) ([]byte, error) {
	if extraData == nil {
		extraData = []byte{}
	}
	return registrar.Pack(callbackMethod, response, extraData)
}
