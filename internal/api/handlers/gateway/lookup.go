package gateway

import (
	"net/http"
	"strings"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/api/httperrors"
	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/SafeMPC/subname-gateway/internal/types"
	"github.com/SafeMPC/subname-gateway/internal/util"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

const outcomeOK = "ok"

// resolveLookup runs one lookup for both transport variants. sender and data are the
// already validated hex strings of the request, start is when the handler began.
func resolveLookup(c echo.Context, s *api.Server, sender string, data string, start time.Time) error {
	ctx := c.Request().Context()
	log := util.LogFromContext(ctx)

	callData, err := hexutil.Decode(data)
	if err != nil {
		s.Metrics.ObserveLookup(ccip.KindDecode.String(), time.Since(start))
		return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeDecodeFailed, "call data is not valid hex").Wrap(err)
	}

	signed, err := s.Gateway.Resolve(ctx, sender, callData)
	if err != nil {
		kind := ccip.KindOf(err)
		s.Metrics.ObserveLookup(kind.String(), time.Since(start))

		event := log.Info()
		if kind == ccip.KindService || kind == ccip.KindUpstream {
			event = log.Error()
		}
		event.Err(err).Str("sender", sender).Str("kind", kind.String()).Msg("Rejected subname lookup")

		return httperrors.NewFromGateway(err)
	}

	s.Metrics.ObserveLookup(outcomeOK, time.Since(start))
	log.Info().
		Str("label", signed.Label).
		Str("owner", signed.Owner.Hex()).
		Uint64("resolved_expiry", signed.ResolvedExpiry).
		Uint64("expires_at", signed.ExpiresAt).
		Msg("Signed subname lookup")

	response := &types.LookupResponse{
		Data: swag.String(hexutil.Encode(signed.Data)),
		Meta: &types.LookupMeta{
			Node:           signed.Node.Hex(),
			Owner:          strings.ToLower(signed.Owner.Hex()),
			AgentID:        signed.AgentID.String(),
			ResolvedExpiry: signed.ResolvedExpiry,
			ExpiresAt:      signed.ExpiresAt,
			Signer:         strings.ToLower(signed.Signer.Hex()),
			Digest:         signed.Digest.Hex(),
		},
	}

	return util.ValidateAndReturn(c, http.StatusOK, response)
}
