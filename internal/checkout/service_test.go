package checkout

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dani2c/integracion-plataformas/internal/domain"
	"github.com/dani2c/integracion-plataformas/internal/gateway"
	"github.com/dani2c/integracion-plataformas/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeGateway mints simulator-style tokens but lets each test script the
// commit verdict.
type fakeGateway struct {
	recorder  gateway.Recorder
	commitFn  func() (*gateway.Authorization, error)
	commits   int32
	createErr error
}

func (g *fakeGateway) Create(ctx context.Context, req gateway.CreateRequest) (*gateway.CreateResponse, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	token := "tok-" + req.BuyOrder
	txn := &domain.Transaction{
		BuyOrder: req.BuyOrder,
		Token:    token,
		Amount:   req.Amount,
		Location: req.Location,
		Quantity: req.Quantity,
	}
	if err := g.recorder.Create(ctx, txn); err != nil {
		return nil, err
	}
	return &gateway.CreateResponse{Token: token, URL: "http://localhost:8080/simulator/pay?token=" + token}, nil
}

func (g *fakeGateway) Commit(ctx context.Context, token string) (*gateway.Authorization, error) {
	atomic.AddInt32(&g.commits, 1)
	if g.commitFn != nil {
		return g.commitFn()
	}
	return &gateway.Authorization{Approved: true, AuthorizationCode: "123456"}, nil
}

type notifierSpy struct {
	mu     sync.Mutex
	events []domain.LowStockEvent
}

func (n *notifierSpy) Publish(event domain.LowStockEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *notifierSpy) all() []domain.LowStockEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.LowStockEvent(nil), n.events...)
}

type fixture struct {
	service  *Service
	ledger   *store.InventoryLedger
	txns     *store.TransactionStore
	gw       *fakeGateway
	notifier *notifierSpy
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.SeedDemo(context.Background()))

	txns := store.NewTransactionStore(db, zap.NewNop())
	gw := &fakeGateway{recorder: txns}
	notifier := &notifierSpy{}
	service := NewService(txns, gw, notifier, Config{
		LowStockThreshold:  10,
		PublicBaseURL:      "http://localhost:8080",
		MaxGatewayAttempts: 3,
	}, zap.NewNop())

	return &fixture{
		service:  service,
		ledger:   store.NewInventoryLedger(db, zap.NewNop()),
		txns:     txns,
		gw:       gw,
		notifier: notifier,
	}
}

func (f *fixture) branchQuantity(t *testing.T, idx int) int {
	t.Helper()
	snapshot, err := f.ledger.Snapshot(context.Background())
	require.NoError(t, err)
	return snapshot.Branches[idx].Quantity
}

func TestStartSale_CreatesPendingTransaction(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.StartSale(context.Background(), domain.Branch(1), 2, 25980)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Contains(t, result.URL, result.Token)

	txn, err := f.txns.GetByToken(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInitiated, txn.Status)

	// Starting a sale never touches stock.
	assert.Equal(t, 31, f.branchQuantity(t, 0))
}

func TestLookupSale_PendingSaleStaysPending(t *testing.T) {
	f := newFixture(t)

	start, err := f.service.StartSale(context.Background(), domain.Branch(1), 5, 1665)
	require.NoError(t, err)

	// A landing-page load before the gateway callback must not settle.
	_, err = f.service.LookupSale(context.Background(), start.Token)
	assert.ErrorIs(t, err, domain.ErrNotFinalized)

	txn, err := f.txns.GetByToken(context.Background(), start.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInitiated, txn.Status)
	assert.Equal(t, 31, f.branchQuantity(t, 0))
	assert.Equal(t, int32(0), atomic.LoadInt32(&f.gw.commits))
}

func TestLookupSale_ReturnsSettledOutcome(t *testing.T) {
	f := newFixture(t)

	start, err := f.service.StartSale(context.Background(), domain.Branch(1), 5, 1665)
	require.NoError(t, err)
	confirmed, err := f.service.ConfirmSale(context.Background(), start.Token)
	require.NoError(t, err)
	require.Equal(t, domain.StatusAuthorized, confirmed.Status)

	outcome, err := f.service.LookupSale(context.Background(), start.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAuthorized, outcome.Status)
	assert.Equal(t, confirmed.Details, outcome.Details)
	// Lookup reads the stored result, it never re-commits or re-debits.
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.gw.commits))
	assert.Equal(t, 26, f.branchQuantity(t, 0))
}

func TestLookupSale_UnknownToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.LookupSale(context.Background(), "tok-nope")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestStartSale_ValidatesInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.StartSale(context.Background(), domain.Branch(1), 0, 100)
	assert.Error(t, err)
	_, err = f.service.StartSale(context.Background(), domain.Branch(1), 1, 0)
	assert.Error(t, err)
	_, err = f.service.StartSale(context.Background(), domain.Branch(1), 1, -5)
	assert.Error(t, err)
}

func TestConfirmSale_ApprovedDebitsAndAuthorizes(t *testing.T) {
	f := newFixture(t)

	start, err := f.service.StartSale(context.Background(), domain.Branch(1), 5, 25980)
	require.NoError(t, err)

	outcome, err := f.service.ConfirmSale(context.Background(), start.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAuthorized, outcome.Status)
	assert.Equal(t, "http://localhost:8080/checkout/success?token="+start.Token, outcome.RedirectURL)
	assert.Equal(t, "123456", outcome.Details.AuthorizationCode)
	assert.Equal(t, 26, outcome.Details.Remaining)
	assert.Equal(t, "branch:1", outcome.Details.Location)

	assert.Equal(t, 26, f.branchQuantity(t, 0))

	txn, err := f.txns.GetByToken(context.Background(), start.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAuthorized, txn.Status)
	assert.Contains(t, txn.Result, `"authorization_code":"123456"`)
}

func TestConfirmSale_InsufficientStockRejects(t *testing.T) {
	f := newFixture(t)

	// Sucursal 2 seeds with 23 units.
	start, err := f.service.StartSale(context.Background(), domain.Branch(2), 24, 99990)
	require.NoError(t, err)

	outcome, err := f.service.ConfirmSale(context.Background(), start.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, outcome.Status)
	assert.Contains(t, outcome.RedirectURL, "/checkout/failure?error=")
	assert.Contains(t, outcome.Details.Error, "insufficient stock")

	// Authorized but undeliverable: stock stays put and the transaction
	// still reaches a terminal status.
	assert.Equal(t, 23, f.branchQuantity(t, 1))
	txn, err := f.txns.GetByToken(context.Background(), start.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, txn.Status)
}

func TestConfirmSale_DeclinedPaymentRejectsWithoutDebit(t *testing.T) {
	f := newFixture(t)
	f.gw.commitFn = func() (*gateway.Authorization, error) {
		return &gateway.Authorization{Approved: false, ResponseCode: -1}, nil
	}

	start, err := f.service.StartSale(context.Background(), domain.Branch(1), 5, 25980)
	require.NoError(t, err)

	outcome, err := f.service.ConfirmSale(context.Background(), start.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, outcome.Status)
	assert.Contains(t, outcome.Details.Error, "declined")

	assert.Equal(t, 31, f.branchQuantity(t, 0))

	txn, err := f.txns.GetByToken(context.Background(), start.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, txn.Status)
}

func TestConfirmSale_GatewayUnavailableRejectsAfterRetries(t *testing.T) {
	f := newFixture(t)
	f.gw.commitFn = func() (*gateway.Authorization, error) {
		return nil, fmt.Errorf("%w: connection refused", domain.ErrGatewayUnavailable)
	}

	start, err := f.service.StartSale(context.Background(), domain.Branch(1), 5, 25980)
	require.NoError(t, err)

	outcome, err := f.service.ConfirmSale(context.Background(), start.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, outcome.Status)
	assert.Equal(t, int32(3), atomic.LoadInt32(&f.gw.commits))

	assert.Equal(t, 31, f.branchQuantity(t, 0))

	txn, err := f.txns.GetByToken(context.Background(), start.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, txn.Status)
}

func TestConfirmSale_HardGatewayErrorRecordsReason(t *testing.T) {
	f := newFixture(t)
	f.gw.commitFn = func() (*gateway.Authorization, error) {
		return nil, fmt.Errorf("authorizer rejected request (status 422)")
	}

	start, err := f.service.StartSale(context.Background(), domain.Branch(1), 5, 25980)
	require.NoError(t, err)

	outcome, err := f.service.ConfirmSale(context.Background(), start.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, outcome.Status)
	// Definitive refusal: no retries, and the real reason lands on the row
	// instead of an outage message.
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.gw.commits))
	assert.Contains(t, outcome.Details.Error, "authorizer rejected request")
	assert.Contains(t, outcome.RedirectURL, "authorizer")

	txn, err := f.txns.GetByToken(context.Background(), start.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, txn.Status)
	assert.Contains(t, txn.Result, "authorizer rejected request")
}

func TestConfirmSale_UnknownToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ConfirmSale(context.Background(), "tok-unknown")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)

	assert.Equal(t, 31, f.branchQuantity(t, 0))
}

func TestConfirmSale_ReplaySkipsGatewayAndLedger(t *testing.T) {
	f := newFixture(t)

	start, err := f.service.StartSale(context.Background(), domain.Branch(1), 5, 25980)
	require.NoError(t, err)

	first, err := f.service.ConfirmSale(context.Background(), start.Token)
	require.NoError(t, err)

	second, err := f.service.ConfirmSale(context.Background(), start.Token)
	require.NoError(t, err)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.RedirectURL, second.RedirectURL)
	assert.Equal(t, first.Details, second.Details)

	// The replay neither committed again nor debited a second time.
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.gw.commits))
	assert.Equal(t, 26, f.branchQuantity(t, 0))
}

func TestConfirmSale_ConcurrentConfirmationsDebitOnce(t *testing.T) {
	f := newFixture(t)

	start, err := f.service.StartSale(context.Background(), domain.Branch(1), 5, 25980)
	require.NoError(t, err)

	const racers = 6
	var wg sync.WaitGroup
	outcomes := make(chan *Outcome, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := f.service.ConfirmSale(context.Background(), start.Token)
			if err == nil {
				outcomes <- outcome
			}
		}()
	}
	wg.Wait()
	close(outcomes)

	count := 0
	for outcome := range outcomes {
		count++
		assert.Equal(t, domain.StatusAuthorized, outcome.Status)
	}
	assert.Equal(t, racers, count)

	// One debit for the group.
	assert.Equal(t, 26, f.branchQuantity(t, 0))
}

func TestConfirmSale_LowStockEventFiresOnCrossing(t *testing.T) {
	f := newFixture(t)

	// Sucursal 2: 23 units, threshold 10. Selling 14 leaves 9.
	start, err := f.service.StartSale(context.Background(), domain.Branch(2), 14, 99990)
	require.NoError(t, err)
	_, err = f.service.ConfirmSale(context.Background(), start.Token)
	require.NoError(t, err)

	events := f.notifier.all()
	require.Len(t, events, 1)
	assert.Equal(t, "branch:2", events[0].LocationID)
	assert.Equal(t, "Sucursal 2", events[0].Name)
	assert.Equal(t, 9, events[0].RemainingQuantity)

	// Already below threshold: further sales stay quiet.
	start, err = f.service.StartSale(context.Background(), domain.Branch(2), 1, 7140)
	require.NoError(t, err)
	_, err = f.service.ConfirmSale(context.Background(), start.Token)
	require.NoError(t, err)

	assert.Len(t, f.notifier.all(), 1)
}

func TestConfirmSale_NoLowStockEventAboveThreshold(t *testing.T) {
	f := newFixture(t)

	// Sucursal 3: 100 units. Selling 5 leaves 95, well above threshold.
	start, err := f.service.StartSale(context.Background(), domain.Branch(3), 5, 35700)
	require.NoError(t, err)
	_, err = f.service.ConfirmSale(context.Background(), start.Token)
	require.NoError(t, err)

	assert.Empty(t, f.notifier.all())
}

func TestConfirmSale_UnknownLocationRejects(t *testing.T) {
	f := newFixture(t)

	// The branch disappears between start and confirm.
	start, err := f.service.StartSale(context.Background(), domain.Branch(999), 1, 7140)
	require.NoError(t, err)

	outcome, err := f.service.ConfirmSale(context.Background(), start.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, outcome.Status)
	assert.Contains(t, outcome.Details.Error, "location not found")
}

func TestConfirmSale_ResultPayloadRoundTrips(t *testing.T) {
	f := newFixture(t)

	start, err := f.service.StartSale(context.Background(), domain.MainWarehouse(), 3, 11970)
	require.NoError(t, err)

	first, err := f.service.ConfirmSale(context.Background(), start.Token)
	require.NoError(t, err)

	// A later replay reconstructs the exact same details from the stored
	// payload.
	replay, err := f.service.ConfirmSale(context.Background(), start.Token)
	require.NoError(t, err)
	assert.Equal(t, first.Details, replay.Details)
	assert.Equal(t, "main_warehouse", replay.Details.Location)
	assert.Equal(t, 98, replay.Details.Remaining)
}

func TestStartSale_GatewayErrorPropagates(t *testing.T) {
	f := newFixture(t)
	f.gw.createErr = fmt.Errorf("%w: connection refused", domain.ErrGatewayUnavailable)

	_, err := f.service.StartSale(context.Background(), domain.Branch(1), 1, 100)
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

func TestBackoff_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := backoff(ctx, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFailureURLEscapesReason(t *testing.T) {
	s := NewService(nil, nil, nil, Config{PublicBaseURL: "http://localhost:8080", MaxGatewayAttempts: 1}, zap.NewNop())
	url := s.failureURL("insufficient stock at branch:2")
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/checkout/failure?error="))
	assert.NotContains(t, url, " ")
}
