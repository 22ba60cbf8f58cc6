package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/careshare/internal/auth"
	"github.com/mmynk/careshare/internal/metrics"
	"github.com/mmynk/careshare/internal/middleware"
	"github.com/mmynk/careshare/internal/receipts"
	"github.com/mmynk/careshare/internal/storage/sqlite"
	"github.com/mmynk/careshare/pkg/api"
	"github.com/mmynk/careshare/pkg/api/apiconnect"
)

// testEnv runs every service behind a real HTTP server with a temp-file
// database, the way cmd/server wires them.
type testEnv struct {
	auth    apiconnect.AuthServiceClient
	family  apiconnect.FamilyServiceClient
	bill    apiconnect.BillServiceClient
	report  apiconnect.ReportServiceClient
	receipt apiconnect.ReceiptServiceClient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	store, err := sqlite.New(filepath.Join(dir, "test.db"))
	require.NoError(t, err)

	receiptStore, err := receipts.NewDiskStore(filepath.Join(dir, "receipts"), "/receipts")
	require.NoError(t, err)

	jwtManager := auth.NewJWTManager("test-secret-0123456789", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	m := metrics.New(prometheus.NewRegistry())

	public := connect.WithInterceptors(middleware.LoggingInterceptor(m))
	protected := connect.WithInterceptors(middleware.RequireAuth(jwtManager), middleware.LoggingInterceptor(m))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, slog.Default()), public))
	mux.Handle(apiconnect.NewFamilyServiceHandler(NewFamilyService(store, decimal.Zero), protected))
	mux.Handle(apiconnect.NewBillServiceHandler(NewBillService(store, m), protected))
	mux.Handle(apiconnect.NewReportServiceHandler(NewReportService(store), protected))
	mux.Handle(apiconnect.NewReceiptServiceHandler(NewReceiptService(store, receiptStore, m), protected))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		auth:    apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		family:  apiconnect.NewFamilyServiceClient(http.DefaultClient, server.URL),
		bill:    apiconnect.NewBillServiceClient(http.DefaultClient, server.URL),
		report:  apiconnect.NewReportServiceClient(http.DefaultClient, server.URL),
		receipt: apiconnect.NewReceiptServiceClient(http.DefaultClient, server.URL),
	}
}

// caller is a registered user and their session token.
type caller struct {
	user  *api.User
	token string
}

func (e *testEnv) register(t *testing.T, name string) caller {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       gofakeit.Email(),
		DisplayName: name,
		Password:    gofakeit.Password(true, true, true, false, false, 12),
	}))
	require.NoError(t, err)
	return caller{user: resp.Msg.User, token: resp.Msg.Token}
}

// familyWith creates a family owned by owner plus extra unlinked members
// and returns the member IDs in registration order.
func (e *testEnv) familyWith(t *testing.T, owner caller, budget string, others ...string) (string, []string) {
	t.Helper()
	ctx := context.Background()
	b := decimal.RequireFromString(budget)
	created, err := e.family.CreateFamily(ctx, as(owner, &api.CreateFamilyRequest{Name: "Rivera", MonthlyBudget: &b}))
	require.NoError(t, err)

	familyID := created.Msg.Family.ID
	ids := []string{created.Msg.Member.ID}
	for _, name := range others {
		added, err := e.family.AddMember(ctx, as(owner, &api.AddMemberRequest{FamilyID: familyID, DisplayName: name}))
		require.NoError(t, err)
		ids = append(ids, added.Msg.Member.ID)
	}
	return familyID, ids
}

// as builds a request authenticated as c.
func as[T any](c caller, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+c.token)
	return req
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func amountsOf(allocs []api.Allocation) []string {
	out := make([]string, len(allocs))
	for i, a := range allocs {
		out[i] = a.Amount.StringFixed(2)
	}
	return out
}

func requireCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, connect.CodeOf(err), "error: %v", err)
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
