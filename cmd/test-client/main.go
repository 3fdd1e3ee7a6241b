package main

import (
	"context"
	"flag"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/SafeMPC/subname-gateway/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	baseURL       = flag.String("url", "http://localhost:8080", "Base URL of the gateway")
	testType      = flag.String("test", "full", "Test type: health, info, post, get, full")
	label         = flag.String("label", "testagent1234", "Label to request")
	owner         = flag.String("owner", "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", "Subname owner address")
	requester     = flag.String("requester", "", "Requester address (defaults to owner)")
	agentID       = flag.Int64("agent-id", 1, "Identity registry agent id")
	agentURI      = flag.String("agent-uri", "", "Agent URI")
	desiredExpiry = flag.Uint64("desired-expiry", 0, "Desired expiry (unix seconds, 0 selects the default lease)")
	extraData     = flag.String("extra-data", "0x", "Extra data of the simulated OffchainLookup (0x hex)")
	verbose       = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	// 设置日志级别
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// 创建上下文
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 处理中断信号
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Received interrupt signal, shutting down...")
		cancel()
	}()

	client := NewTestClient(*baseURL)

	var err error
	switch *testType {
	case "health":
		err = testHealth(ctx, client)
	case "info":
		_, err = testInfo(ctx, client)
	case "post", "get":
		err = testLookup(ctx, client, *testType == "get")
	case "full":
		err = testFullFlow(ctx, client)
	default:
		log.Fatal().Str("test-type", *testType).Msg("Unknown test type")
	}
	if err != nil {
		log.Fatal().Err(err).Str("test-type", *testType).Msg("Test failed")
	}

	log.Info().Msg("All tests completed successfully")
}

func testHealth(ctx context.Context, client *TestClient) error {
	log.Info().Msg("=== Testing Health ===")

	health, err := client.Health(ctx)
	if err != nil {
		return err
	}
	if health.Status == nil || *health.Status != "ok" {
		return fmt.Errorf("unexpected health status %v", health.Status)
	}

	log.Info().Str("service", health.Service).Uint64("chain_id", health.ChainID).Msg("Gateway healthy")
	return nil
}

func testInfo(ctx context.Context, client *TestClient) (*types.InfoResponse, error) {
	log.Info().Msg("=== Testing Info ===")

	info, err := client.Info(ctx)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("parent_domain", info.ParentDomain).
		Str("contract", info.ContractAddress).
		Str("signer", info.Signer).
		Int("routes", len(info.Routes)).
		Msg("Gateway info received")
	return info, nil
}

// testLookup 模拟 registrar 的 OffchainLookup：构造 call data，请求网关，并按合约回调的规则校验结果
func testLookup(ctx context.Context, client *TestClient, useGet bool) error {
	log.Info().Bool("get", useGet).Msg("=== Testing Lookup ===")

	info, err := client.Info(ctx)
	if err != nil {
		return fmt.Errorf("info failed: %w", err)
	}

	extra, err := hexutil.Decode(*extraData)
	if err != nil {
		return fmt.Errorf("invalid -extra-data: %w", err)
	}

	req := &ccip.SubnameRequest{
		ParentNode:    common.HexToHash(info.ParentNode),
		Label:         *label,
		LabelHash:     ccip.LabelHash(*label),
		Owner:         common.HexToAddress(*owner),
		AgentID:       big.NewInt(*agentID),
		AgentURI:      *agentURI,
		DesiredExpiry: *desiredExpiry,
		Requester:     common.HexToAddress(*owner),
		ExtraData:     extra,
	}
	if *requester != "" {
		req.Requester = common.HexToAddress(*requester)
	}

	callData, err := ccip.EncodeLookup(req)
	if err != nil {
		return fmt.Errorf("encode lookup failed: %w", err)
	}

	var res *types.LookupResponse
	if useGet {
		res, err = client.GetLookup(ctx, info.ContractAddress, hexutil.Encode(callData))
	} else {
		res, err = client.PostLookup(ctx, info.ContractAddress, hexutil.Encode(callData))
	}
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	data, err := hexutil.Decode(*res.Data)
	if err != nil {
		return fmt.Errorf("invalid response data: %w", err)
	}

	result, err := ccip.VerifyResponse(ccip.VerifierConfig{
		TrustedSigner: common.HexToAddress(info.Signer),
		Contract:      common.HexToAddress(info.ContractAddress),
		ChainID:       info.ChainID,
	}, data, callData, extra, time.Now())
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	callback, err := ccip.EncodeCallback(data, extra)
	if err != nil {
		return err
	}

	log.Info().
		Str("node", ccip.SubnameNode(req.ParentNode, req.Label).Hex()).
		Str("owner", result.Owner.Hex()).
		Uint64("resolved_expiry", result.ResolvedExpiry).
		Uint64("expires_at", result.ExpiresAt).
		Str("callback", hexutil.Encode(callback)).
		Msg("Lookup verified")
	return nil
}

// testFullFlow 测试完整流程
func testFullFlow(ctx context.Context, client *TestClient) error {
	log.Info().Msg("=== Testing Full Flow ===")

	if err := testHealth(ctx, client); err != nil {
		return fmt.Errorf("health failed: %w", err)
	}
	if _, err := testInfo(ctx, client); err != nil {
		return fmt.Errorf("info failed: %w", err)
	}
	if err := testLookup(ctx, client, false); err != nil {
		return fmt.Errorf("post lookup failed: %w", err)
	}
	if err := testLookup(ctx, client, true); err != nil {
		return fmt.Errorf("get lookup failed: %w", err)
	}
	return nil
}
