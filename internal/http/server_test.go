package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saradorri/fairplay/internal/config"
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/http/handlers"
	"github.com/saradorri/fairplay/internal/http/middleware"
	"github.com/saradorri/fairplay/internal/infrastructure/auth"
	"github.com/saradorri/fairplay/internal/infrastructure/lock"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"github.com/saradorri/fairplay/internal/infrastructure/ratelimit"
	"github.com/saradorri/fairplay/internal/infrastructure/repository/memory"
	"github.com/saradorri/fairplay/internal/usecase/bet"
	"github.com/saradorri/fairplay/internal/usecase/seed"
	"github.com/saradorri/fairplay/internal/usecase/user"
	"github.com/saradorri/fairplay/internal/usecase/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminKey = "admin-secret"
	address  = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
)

type denyAll struct{}

func (denyAll) Allow(context.Context, string) (bool, error) { return false, nil }

type testAPI struct {
	t       *testing.T
	handler nethttp.Handler
	store   *memory.Store
}

func newTestAPI(t *testing.T, limiter domain.RateLimiter) *testAPI {
	t.Helper()
	log := logger.NewNop()
	store := memory.NewStore()
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test", RequestTimeout: 5 * time.Second},
		Admin:  config.AdminConfig{APIKey: adminKey},
	}
	jwtSvc := auth.NewJWTService(&config.JWTConfig{Secret: "test", Expiry: time.Hour})

	seeds := seed.NewSeedUseCase(store, 32, log)
	bets := bet.NewBetUseCase(store, seeds, lock.NewUserLockManager(time.Second, log), bet.DefaultConfig(), log)
	wallets := wallet.NewWalletUseCase(store, log)
	users := user.NewUserUseCase(store, jwtSvc, log)

	server := NewServer(cfg, jwtSvc, limiter, Handlers{
		Auth:     handlers.NewAuthHandler(users),
		Fairness: handlers.NewFairnessHandler(seeds),
		Bet:      handlers.NewBetHandler(bets),
		Wallet:   handlers.NewWalletHandler(wallets),
		Admin:    handlers.NewAdminHandler(seeds, wallets),
	}, middleware.NewErrorHandler(log), log)

	return &testAPI{t: t, handler: server.Handler(), store: store}
}

func (a *testAPI) do(method, path string, body interface{}, headers map[string]string, out interface{}) int {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	if out != nil {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

var admin = map[string]string{middleware.AdminKeyHeader: adminKey}

func (a *testAPI) connect() handlers.ConnectResponse {
	a.t.Helper()
	var res handlers.ConnectResponse
	code := a.do(nethttp.MethodPost, "/api/v1/auth/connect", handlers.ConnectRequest{Address: address}, nil, &res)
	require.Equal(a.t, nethttp.StatusOK, code)
	return res
}

// fund deposits amount through the player and admin endpoints
func (a *testAPI) fund(token, amount string) {
	a.t.Helper()
	var deposit domain.Transaction
	code := a.do(nethttp.MethodPost, "/api/v1/wallet/deposits",
		handlers.DepositRequest{Currency: "eth", Amount: amount, TxHash: "0xfeed"}, bearer(token), &deposit)
	require.Equal(a.t, nethttp.StatusCreated, code)

	code = a.do(nethttp.MethodPost, "/api/v1/admin/deposits/"+deposit.ID+"/approve", nil, admin, nil)
	require.Equal(a.t, nethttp.StatusOK, code)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, ratelimit.Noop{})
	var body map[string]string
	assert.Equal(t, nethttp.StatusOK, api.do(nethttp.MethodGet, "/health", nil, nil, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestConnectAndProfile(t *testing.T) {
	api := newTestAPI(t, ratelimit.Noop{})
	res := api.connect()
	assert.True(t, res.Created)
	assert.Len(t, res.Wallets, len(domain.SupportedCurrencies))

	var profile domain.Profile
	assert.Equal(t, nethttp.StatusOK, api.do(nethttp.MethodGet, "/api/v1/users/me", nil, bearer(res.Token), &profile))
	assert.Equal(t, address, profile.User.WalletAddress)

	var errRes domain.ErrorResponse
	assert.Equal(t, nethttp.StatusUnauthorized, api.do(nethttp.MethodGet, "/api/v1/users/me", nil, nil, &errRes))
	assert.Equal(t, domain.ErrCodeTokenMissing, errRes.Error.Code)

	assert.Equal(t, nethttp.StatusUnauthorized, api.do(nethttp.MethodGet, "/api/v1/users/me", nil, bearer("garbage"), &errRes))
	assert.Equal(t, domain.ErrCodeTokenInvalid, errRes.Error.Code)

	assert.Equal(t, nethttp.StatusBadRequest,
		api.do(nethttp.MethodPost, "/api/v1/auth/connect", handlers.ConnectRequest{Address: "0x12"}, nil, &errRes))
	assert.Equal(t, domain.ErrCodeInvalidArgument, errRes.Error.Code)
	assert.NotEmpty(t, errRes.Error.RequestID)
}

func TestVerifyIsPublic(t *testing.T) {
	api := newTestAPI(t, ratelimit.Noop{})
	nonce := int64(0)

	outcome := 49.45
	var res handlers.VerifyResponse
	code := api.do(nethttp.MethodPost, "/api/v1/fairness/verify",
		handlers.VerifyRequest{ServerSeed: "abc123", ClientSeed: "player1", Nonce: &nonce, Outcome: &outcome}, nil, &res)
	require.Equal(t, nethttp.StatusOK, code)
	assert.True(t, res.Valid)
	assert.Equal(t, "4b7a95d1", res.Hex)
	assert.Equal(t, "4b7a95d1999ec49d625472247e26cd5d181f04b674d8f98ce663ea26f5deb9cd", res.HMAC)

	wrong := 49.46
	code = api.do(nethttp.MethodPost, "/api/v1/fairness/verify",
		handlers.VerifyRequest{ServerSeed: "abc123", ClientSeed: "player1", Nonce: &nonce, Outcome: &wrong}, nil, &res)
	require.Equal(t, nethttp.StatusOK, code)
	assert.False(t, res.Valid)

	// claims are compared at two decimals
	rounded := 49.449999
	code = api.do(nethttp.MethodPost, "/api/v1/fairness/verify",
		handlers.VerifyRequest{ServerSeed: "abc123", ClientSeed: "player1", Nonce: &nonce, Outcome: &rounded}, nil, &res)
	require.Equal(t, nethttp.StatusOK, code)
	assert.True(t, res.Valid)

	negative := int64(-1)
	var errRes domain.ErrorResponse
	code = api.do(nethttp.MethodPost, "/api/v1/fairness/verify",
		handlers.VerifyRequest{ServerSeed: "abc123", ClientSeed: "player1", Nonce: &negative, Outcome: &outcome}, nil, &errRes)
	assert.Equal(t, nethttp.StatusBadRequest, code)
}

func TestBetLifecycle(t *testing.T) {
	api := newTestAPI(t, ratelimit.Noop{})
	token := api.connect().Token

	var active domain.PublicServerSeed
	require.Equal(t, nethttp.StatusOK, api.do(nethttp.MethodGet, "/api/v1/fairness/seed", nil, nil, &active))
	assert.Len(t, active.SeedHash, 64)
	assert.Empty(t, active.ServerSeed)

	var errRes domain.ErrorResponse
	place := handlers.PlaceBetRequest{Game: "dice", Amount: "1", Currency: "ETH", ClientSeed: "player1", Target: 50}
	assert.Equal(t, nethttp.StatusUnprocessableEntity, api.do(nethttp.MethodPost, "/api/v1/bets", place, bearer(token), &errRes))
	assert.Equal(t, domain.ErrCodeInsufficientFunds, errRes.Error.Code)

	api.fund(token, "10")

	var result domain.BetResult
	require.Equal(t, nethttp.StatusOK, api.do(nethttp.MethodPost, "/api/v1/bets", place, bearer(token), &result))
	assert.Equal(t, int64(0), result.Session.Nonce)
	assert.Equal(t, active.SeedHash, result.ServerSeed.SeedHash)
	assert.Equal(t, result.Won, result.WinAmount.IsPositive())

	invalid := place
	invalid.Target = 100
	assert.Equal(t, nethttp.StatusBadRequest, api.do(nethttp.MethodPost, "/api/v1/bets", invalid, bearer(token), &errRes))
	invalid = place
	invalid.Game = "poker"
	assert.Equal(t, nethttp.StatusBadRequest, api.do(nethttp.MethodPost, "/api/v1/bets", invalid, bearer(token), &errRes))
	invalid = place
	invalid.Amount = "abc"
	assert.Equal(t, nethttp.StatusBadRequest, api.do(nethttp.MethodPost, "/api/v1/bets", invalid, bearer(token), &errRes))

	var history []domain.GameSession
	require.Equal(t, nethttp.StatusOK, api.do(nethttp.MethodGet, "/api/v1/bets?limit=10", nil, bearer(token), &history))
	require.Len(t, history, 1)
	assert.Equal(t, nethttp.StatusBadRequest, api.do(nethttp.MethodGet, "/api/v1/bets?limit=x", nil, bearer(token), &errRes))

	verifyPath := "/api/v1/bets/" + result.Session.ID + "/verification"
	var before domain.SessionVerification
	require.Equal(t, nethttp.StatusOK, api.do(nethttp.MethodGet, verifyPath, nil, bearer(token), &before))
	assert.False(t, before.Revealed)
	assert.Empty(t, before.ServerSeed)

	var rotation domain.RotationResult
	require.Equal(t, nethttp.StatusOK, api.do(nethttp.MethodPost, "/api/v1/admin/seeds/rotate", nil, admin, &rotation))
	assert.Equal(t, active.NextSeedHash, rotation.Active.SeedHash)

	var after domain.SessionVerification
	require.Equal(t, nethttp.StatusOK, api.do(nethttp.MethodGet, verifyPath, nil, bearer(token), &after))
	assert.True(t, after.Revealed)
	require.NotNil(t, after.Verified)
	assert.True(t, *after.Verified)

	var rotated []domain.PublicServerSeed
	require.Equal(t, nethttp.StatusOK, api.do(nethttp.MethodGet, "/api/v1/fairness/seeds", nil, nil, &rotated))
	require.Len(t, rotated, 1)
	assert.Equal(t, after.ServerSeed, rotated[0].ServerSeed)

	var txs []domain.Transaction
	require.Equal(t, nethttp.StatusOK, api.do(nethttp.MethodGet, "/api/v1/wallet/transactions?currency=eth", nil, bearer(token), &txs))
	assert.Len(t, txs, 3)

	var report domain.AuditReport
	userID := history[0].UserID
	require.Equal(t, nethttp.StatusOK, api.do(nethttp.MethodGet, "/api/v1/admin/audit/"+userID+"/eth", nil, admin, &report))
	assert.True(t, report.Consistent)

	lower := place
	lower.Currency = "eth"
	var lowerResult domain.BetResult
	require.Equal(t, nethttp.StatusOK, api.do(nethttp.MethodPost, "/api/v1/bets", lower, bearer(token), &lowerResult))
	assert.Equal(t, domain.CurrencyETH, lowerResult.Session.Currency)
}

func TestAdminKey(t *testing.T) {
	api := newTestAPI(t, ratelimit.Noop{})

	var errRes domain.ErrorResponse
	assert.Equal(t, nethttp.StatusUnauthorized, api.do(nethttp.MethodGet, "/api/v1/admin/deposits/pending", nil, nil, &errRes))
	assert.Equal(t, nethttp.StatusForbidden, api.do(nethttp.MethodGet, "/api/v1/admin/deposits/pending", nil,
		map[string]string{middleware.AdminKeyHeader: "nope"}, &errRes))
	assert.Equal(t, domain.ErrCodeForbidden, errRes.Error.Code)

	var pending []domain.Transaction
	assert.Equal(t, nethttp.StatusOK, api.do(nethttp.MethodGet, "/api/v1/admin/deposits/pending", nil, admin, &pending))
	assert.Empty(t, pending)
}

func TestDepositDecline(t *testing.T) {
	api := newTestAPI(t, ratelimit.Noop{})
	token := api.connect().Token

	var deposit domain.Transaction
	require.Equal(t, nethttp.StatusCreated, api.do(nethttp.MethodPost, "/api/v1/wallet/deposits",
		handlers.DepositRequest{Currency: "BTC", Amount: "0.5", TxHash: "0xbeef"}, bearer(token), &deposit))

	var declined domain.Transaction
	require.Equal(t, nethttp.StatusOK, api.do(nethttp.MethodPost, "/api/v1/admin/deposits/"+deposit.ID+"/decline",
		handlers.DeclineRequest{Reason: "not on chain"}, admin, &declined))
	assert.Equal(t, domain.TransactionStatusFailed, declined.Status)

	var errRes domain.ErrorResponse
	assert.Equal(t, nethttp.StatusBadRequest, api.do(nethttp.MethodPost, "/api/v1/admin/deposits/"+deposit.ID+"/approve", nil, admin, &errRes))
	assert.Equal(t, nethttp.StatusNotFound, api.do(nethttp.MethodPost, "/api/v1/admin/deposits/missing/approve", nil, admin, &errRes))
}

func TestRateLimitedBets(t *testing.T) {
	api := newTestAPI(t, denyAll{})
	token := api.connect().Token

	var errRes domain.ErrorResponse
	place := handlers.PlaceBetRequest{Game: "dice", Amount: "1", Currency: "ETH", ClientSeed: "player1", Target: 50}
	assert.Equal(t, nethttp.StatusTooManyRequests, api.do(nethttp.MethodPost, "/api/v1/bets", place, bearer(token), &errRes))
	assert.Equal(t, domain.ErrCodeRateLimited, errRes.Error.Code)

	var history []domain.GameSession
	assert.Equal(t, nethttp.StatusOK, api.do(nethttp.MethodGet, "/api/v1/bets", nil, bearer(token), &history))
}
