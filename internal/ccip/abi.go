package ccip

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// registrarABI describes the deferred call the registrar hands to the gateway through
// OffchainLookup, and the callback that consumes the gateway answer.
const registrarABI = `[
	{
		"type": "function",
		"name": "authorizeSubname",
		"stateMutability": "view",
		"inputs": [
			{"name": "parentNode", "type": "bytes32"},
			{"name": "label", "type": "string"},
			{"name": "labelHash", "type": "bytes32"},
			{"name": "owner", "type": "address"},
			{"name": "agentId", "type": "uint256"},
			{"name": "agentURI", "type": "string"},
			{"name": "desiredExpiry", "type": "uint64"},
			{"name": "requester", "type": "address"},
			{"name": "extraData", "type": "bytes"}
		],
		"outputs": [
			{"name": "result", "type": "bytes"},
			{"name": "extraData", "type": "bytes"}
		]
	},
	{
		"type": "function",
		"name": "registerWithProof",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "response", "type": "bytes"},
			{"name": "extraData", "type": "bytes"}
		],
		"outputs": [
			{"name": "", "type": "bool"}
		]
	}
]`

// identityRegistryABI is the subset of the identity registry read by the cross-check.
const identityRegistryABI = `[
	{
		"type": "function",
		"name": "ownerOf",
		"stateMutability": "view",
		"inputs": [{"name": "agentId", "type": "uint256"}],
		"outputs": [{"name": "", "type": "address"}]
	}
]`

const (
	lookupMethod   = "authorizeSubname"
	callbackMethod = "registerWithProof"
	ownerOfMethod  = "ownerOf"
)

var (
	registrar        = mustParseABI(registrarABI)
	identityRegistry = mustParseABI(identityRegistryABI)

	resultArguments = abi.Arguments{
		{Name: "owner", Type: mustNewType("address")},
		{Name: "agentId", Type: mustNewType("uint256")},
		{Name: "agentURI", Type: mustNewType("string")},
		{Name: "resolvedExpiry", Type: mustNewType("uint64")},
		{Name: "expiresAt", Type: mustNewType("uint64")},
		{Name: "signature", Type: mustNewType("bytes")},
	}
)

// LookupSelector returns the 4 byte selector of the deferred registrar call.
func LookupSelector() []byte {
	id := registrar.Methods[lookupMethod].ID
	out := make([]byte, len(id))
	copy(out, id)
	return out
}

// CallbackSelector returns the selector of the registrar callback the client submits
// the gateway answer to.
func CallbackSelector() []byte {
	id := registrar.Methods[callbackMethod].ID
	out := make([]byte, len(id))
	copy(out, id)
	return out
}

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}
