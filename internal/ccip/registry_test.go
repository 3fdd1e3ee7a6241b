package ccip_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCaller struct {
	chainID uint64
	owners  map[int64]common.Address

	lastTo   common.Address
	lastData []byte
}

func (f *fakeCaller) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	f.lastTo = to
	f.lastData = data

	if len(data) != 4+32 {
		return nil, errors.New("unexpected call data")
	}
	id := new(big.Int).SetBytes(data[4:]).Int64()
	owner, ok := f.owners[id]
	if !ok {
		return nil, errors.New("execution reverted")
	}
	return common.LeftPadBytes(owner.Bytes(), 32), nil
}

func (f *fakeCaller) ChainID(ctx context.Context) (uint64, error) {
	return f.chainID, nil
}

func TestRegistryClientOwnerOf(t *testing.T) {
	caller := &fakeCaller{chainID: testChainID, owners: map[int64]common.Address{1: testOwner}}
	client := ccip.NewRegistryClient(caller, testRegistry, testChainID)

	owner, err := client.OwnerOf(context.Background(), big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, testOwner, owner)
	assert.Equal(t, testRegistry, caller.lastTo)
	assert.Equal(t, crypto.Keccak256([]byte("ownerOf(uint256)"))[:4], caller.lastData[:4])

	_, err = client.OwnerOf(context.Background(), big.NewInt(2))
	assert.Error(t, err)
}

func TestRegistryClientPing(t *testing.T) {
	client := ccip.NewRegistryClient(&fakeCaller{chainID: testChainID}, testRegistry, testChainID)
	assert.NoError(t, client.Ping(context.Background()))

	client = ccip.NewRegistryClient(&fakeCaller{chainID: 1}, testRegistry, testChainID)
	assert.Error(t, client.Ping(context.Background()))
}

func TestServiceCheckRegistryUsesClient(t *testing.T) {
	cfg := newTestConfig(t, func(o *ccip.GatewayOptions) {
		o.Policy.RegistryCheck = true
	})
	client := ccip.NewRegistryClient(&fakeCaller{chainID: 1}, testRegistry, testChainID)

	s, err := ccip.NewService(cfg, nil, client)
	require.NoError(t, err)
	assert.Error(t, s.CheckRegistry(context.Background()))
}
