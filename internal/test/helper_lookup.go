package test

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// LookupRequest returns a request for label under ParentDomain that passes the
// DefaultTestConfig policy.
func LookupRequest(label string) *ccip.SubnameRequest {
	return &ccip.SubnameRequest{
		ParentNode:    ccip.NameHash(ParentDomain),
		Label:         label,
		LabelHash:     ccip.LabelHash(label),
		Owner:         common.HexToAddress(OwnerAddress),
		AgentID:       big.NewInt(1),
		AgentURI:      "ipfs://bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi",
		DesiredExpiry: 0,
		Requester:     common.HexToAddress(RequesterAddress),
		ExtraData:     []byte{0xca, 0xfe, 0xba, 0xbe},
	}
}

// LookupCallData encodes req as registrar call data.
func LookupCallData(t *testing.T, req *ccip.SubnameRequest) []byte {
	t.Helper()

	data, err := ccip.EncodeLookup(req)
	require.NoError(t, err)

	return data
}

// LookupPayload is the POST body for req sent by the test registrar.
func LookupPayload(t *testing.T, req *ccip.SubnameRequest) GenericPayload {
	t.Helper()

	return GenericPayload{
		"sender": ContractAddress,
		"data":   hexutil.Encode(LookupCallData(t, req)),
	}
}

// StaticOwnerResolver answers ownerOf from a fixed table. Unknown ids fail, Delay
// blocks until it elapses or ctx is done.
type StaticOwnerResolver struct {
	Owners map[string]common.Address
	Err    error
	Delay  time.Duration

	mu    sync.Mutex
	calls int
}

func NewStaticOwnerResolver(owners map[int64]common.Address) *StaticOwnerResolver {
	r := &StaticOwnerResolver{Owners: make(map[string]common.Address, len(owners))}
	for id, owner := range owners {
		r.Owners[big.NewInt(id).String()] = owner
	}
	return r
}

func (r *StaticOwnerResolver) OwnerOf(ctx context.Context, agentID *big.Int) (common.Address, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()

	if r.Delay > 0 {
		select {
		case <-time.After(r.Delay):
		case <-ctx.Done():
			return common.Address{}, ctx.Err()
		}
	}
	if r.Err != nil {
		return common.Address{}, r.Err
	}

	owner, ok := r.Owners[agentID.String()]
	if !ok {
		return common.Address{}, errors.Errorf("agent %s does not exist", agentID)
	}
	return owner, nil
}

// Calls returns how often OwnerOf was called.
func (r *StaticOwnerResolver) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
