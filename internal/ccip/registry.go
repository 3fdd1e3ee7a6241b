package ccip

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ContractCaller executes read-only contract calls.
type ContractCaller interface {
	Call(ctx context.Context, to common.Address, data []byte) ([]byte, error)
	ChainID(ctx context.Context) (uint64, error)
}

// RegistryClient reads agent ownership from the identity registry contract.
type RegistryClient struct {
	caller   ContractCaller
	registry common.Address
	chainID  uint64
}

func NewRegistryClient(caller ContractCaller, registry common.Address, chainID uint64) *RegistryClient {
	return &RegistryClient{
		caller:   caller,
		registry: registry,
		chainID:  chainID,
	}
}

// OwnerOf returns the owner of agentID. The caller bounds the call through ctx.
func (c *RegistryClient) OwnerOf(ctx context.Context, agentID *big.Int) (common.Address, error) {
	data, err := identityRegistry.Pack(ownerOfMethod, agentID)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "pack ownerOf")
	}

	out, err := c.caller.Call(ctx, c.registry, data)
	if err != nil {
		return common.Address{}, err
	}

	values, err := identityRegistry.Unpack(ownerOfMethod, out)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "unpack ownerOf")
	}
	owner, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, errors.New("ownerOf returned a non-address value")
	}
	return owner, nil
}

// Ping checks that the RPC endpoint is reachable and serves the configured chain.
func (c *RegistryClient) Ping(ctx context.Context) error {
	chainID, err := c.caller.ChainID(ctx)
	if err != nil {
		return err
	}
	if chainID != c.chainID {
		return errors.Errorf("rpc endpoint serves chain %d, expected %d", chainID, c.chainID)
	}
	return nil
}
