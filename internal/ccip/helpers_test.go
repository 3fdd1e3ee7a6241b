package ccip_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

const (
	testKey           = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testChainID       = uint64(11155111)
	testParentDomain  = "agents.eth"
	testAgentURI      = "https://agents.example/1.json"
	testUnixTimestamp = int64(1_760_000_000)
)

var (
	testSigner    = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	testContract  = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	testRegistry  = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	testOwner     = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	testRequester = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")

	testNow = time.Unix(testUnixTimestamp, 0)
)

func testOptions(t *testing.T) ccip.GatewayOptions {
	t.Helper()

	key, err := crypto.HexToECDSA(testKey)
	require.NoError(t, err)

	return ccip.GatewayOptions{
		SigningKey:       key,
		TrustedSigner:    testSigner,
		ContractAddress:  testContract,
		ChainID:          testChainID,
		ParentDomain:     testParentDomain,
		IdentityRegistry: testRegistry,
		Policy:           ccip.DefaultPolicy(),
	}
}

func newTestConfig(t *testing.T, mutate ...func(o *ccip.GatewayOptions)) *ccip.GatewayConfig {
	t.Helper()

	opts := testOptions(t)
	for _, m := range mutate {
		m(&opts)
	}

	cfg, err := ccip.NewGatewayConfig(opts)
	require.NoError(t, err)
	return cfg
}

// newTestRequest returns a decoded request as the configured registrar would send it.
func newTestRequest(label string) *ccip.SubnameRequest {
	return &ccip.SubnameRequest{
		ParentNode:      ccip.NameHash(testParentDomain),
		Label:           label,
		LabelHash:       ccip.LabelHash(label),
		Owner:           testOwner,
		AgentID:         big.NewInt(1),
		AgentURI:        testAgentURI,
		DesiredExpiry:   0,
		Requester:       testRequester,
		ExtraData:       []byte{0x01, 0x02, 0x03},
		ContractAddress: testContract,
		ChainID:         testChainID,
	}
}

func encodeTestRequest(t *testing.T, req *ccip.SubnameRequest) []byte {
	t.Helper()

	data, err := ccip.EncodeLookup(req)
	require.NoError(t, err)
	return data
}

func requireKind(t *testing.T, kind ccip.Kind, err error) {
	t.Helper()

	require.Error(t, err)
	var e *ccip.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, kind, e.Kind, err.Error())
}
