package ccip

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// lookupCall mirrors the parameters of authorizeSubname.
type lookupCall struct {
	ParentNode    [32]byte       `abi:"parentNode"`
	Label         string         `abi:"label"`
	LabelHash     [32]byte       `abi:"labelHash"`
	Owner         common.Address `abi:"owner"`
	AgentID       *big.Int       `abi:"agentId"`
	AgentURI      string         `abi:"agentURI"`
	DesiredExpiry uint64         `abi:"desiredExpiry"`
	Requester     common.Address `abi:"requester"`
	ExtraData     []byte         `abi:"extraData"`
}

// DecodeLookup parses the sender and call data of a lookup into a SubnameRequest.
// chainID is the gateway's own chain id; the wire format does not carry one.
//
// Any deviation from the canonical ABI encoding is rejected, including trailing bytes
// and non-canonical offsets, so the decoded request is exactly what the contract hashed.
func DecodeLookup(sender string, data []byte, chainID uint64) (*SubnameRequest, error) {
	if !common.IsHexAddress(sender) || !has0xPrefix(sender) {
		return nil, decodeErr(nil, "invalid sender address")
	}
	if len(data) < 4 {
		return nil, decodeErr(nil, "call data too short")
	}

	method, err := registrar.MethodById(data[:4])
	if err != nil || method.Name != lookupMethod {
		return nil, decodeErr(err, "unknown function selector %s", hexutil.Encode(data[:4]))
	}

	values, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, decodeErr(err, "malformed call data")
	}

	var call lookupCall
	if err := method.Inputs.Copy(&call, values); err != nil {
		return nil, decodeErr(err, "malformed call data")
	}

	canonical, err := method.Inputs.Pack(values...)
	if err != nil || !bytes.Equal(canonical, data[4:]) {
		return nil, decodeErr(err, "non-canonical call data encoding")
	}

	if LabelHash(call.Label) != common.Hash(call.LabelHash) {
		return nil, decodeErr(nil, "label hash does not match label")
	}

	return &SubnameRequest{
		ParentNode:      call.ParentNode,
		Label:           call.Label,
		LabelHash:       call.LabelHash,
		Owner:           call.Owner,
		AgentID:         call.AgentID,
		AgentURI:        call.AgentURI,
		DesiredExpiry:   call.DesiredExpiry,
		Requester:       call.Requester,
		ExtraData:       call.ExtraData,
		ContractAddress: common.HexToAddress(sender),
		ChainID:         chainID,
	}, nil
}

// EncodeLookup builds the call data a registrar places in its OffchainLookup revert for req.
// LabelHash is taken as given so callers can construct tampered requests.
func EncodeLookup(req *SubnameRequest) ([]byte, error) {
	agentID := req.AgentID
	if agentID == nil {
		agentID = new(big.Int)
	}
	extra := req.ExtraData
	if extra == nil {
		extra = []byte{}
	}
	return registrar.Pack(lookupMethod,
		[32]byte(req.ParentNode),
		req.Label,
		[32]byte(req.LabelHash),
		req.Owner,
		agentID,
		req.AgentURI,
		req.DesiredExpiry,
		req.Requester,
		extra,
	)
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
