package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/seller-core/identity"
	"github.com/warp/seller-core/ledger"
	"github.com/warp/seller-core/record"
	"github.com/warp/seller-core/record/store"
	"github.com/warp/seller-core/workflow"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

// hookStore wraps the memory store with failure injection and blocking
// points, to exercise in-flight guards without real latency. When a
// gate pair is set, the call closes entered and parks on release.
type hookStore struct {
	*store.Memory[ledger.SalesEntry]

	selectEntered chan struct{}
	selectRelease chan struct{}
	updateEntered chan struct{}
	updateRelease chan struct{}
	selectErr     error
	updateErr     error
}

func (h *hookStore) SelectOne(ctx context.Context, f record.Filter) (ledger.SalesEntry, bool, error) {
	if h.selectEntered != nil {
		close(h.selectEntered)
		<-h.selectRelease
	}
	if h.selectErr != nil {
		return ledger.SalesEntry{}, false, h.selectErr
	}
	return h.Memory.SelectOne(ctx, f)
}

func (h *hookStore) Update(ctx context.Context, f record.Filter, rec ledger.SalesEntry) (bool, error) {
	if h.updateEntered != nil {
		close(h.updateEntered)
		<-h.updateRelease
	}
	if h.updateErr != nil {
		return false, h.updateErr
	}
	return h.Memory.Update(ctx, f, rec)
}

type fixture struct {
	store *hookStore
	repo  *record.Repository[ledger.SalesEntry]
	sess  *workflow.Session[ledger.SalesEntry, ledger.EntryDraft]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hs := &hookStore{Memory: store.NewMemory[ledger.SalesEntry]()}
	resolver := identity.NewResolver(identity.StaticSeller("seller-1"))
	repo := record.NewRepository(ledger.Table, hs, resolver, nil)
	return &fixture{
		store: hs,
		repo:  repo,
		sess:  workflow.NewSession[ledger.SalesEntry, ledger.EntryDraft](repo, ledger.EntryCodec{}, nil),
	}
}

// seed inserts a valid entry owned by seller-1 and returns it.
func (f *fixture) seed(t *testing.T) ledger.SalesEntry {
	t.Helper()
	saved, err := f.repo.Insert(context.Background(), ledger.SalesEntry{
		Date:          "2025-03-10",
		Category:      ledger.CategoryFood,
		ProductName:   "Banana bread",
		Quantity:      3,
		UnitPrice:     15000,
		BuyerName:     "Sari",
		PaymentMethod: ledger.PaymentCash,
	})
	require.NoError(t, err)
	return saved
}

// =============================================================================
// LOADING
// =============================================================================

func TestSession_LoadInitializesStringifiedDraft(t *testing.T) {
	f := newFixture(t)
	saved := f.seed(t)

	require.NoError(t, f.sess.Load(context.Background(), saved.ID))

	v := f.sess.View()
	assert.Equal(t, workflow.StateReady, v.State)
	assert.Equal(t, saved.ID, v.RecordID)
	assert.Equal(t, "3", v.Draft.Quantity)
	assert.Equal(t, "15000", v.Draft.UnitPrice)
	assert.Equal(t, "Banana bread", v.Draft.ProductName)
}

func TestSession_LoadMissingRecordIsTerminal(t *testing.T) {
	// A record that cannot be loaded has no degraded view: the session
	// fails with a notice and never becomes editable.
	f := newFixture(t)

	err := f.sess.Load(context.Background(), "no-such-id")
	assert.True(t, record.IsNotFound(err))

	v := f.sess.View()
	assert.Equal(t, workflow.StateFailed, v.State)
	assert.NotEmpty(t, v.Notice)

	assert.ErrorIs(t, f.sess.Edit(ledger.FieldQuantity, "5"), workflow.ErrNotEditable)
	_, err = f.sess.Save(context.Background())
	assert.ErrorIs(t, err, workflow.ErrNotEditable)
}

func TestSession_LoadStoreFaultIsTerminal(t *testing.T) {
	f := newFixture(t)
	f.store.selectErr = errors.New("connection reset")

	err := f.sess.Load(context.Background(), "any")
	assert.True(t, record.IsRetryable(err))

	v := f.sess.View()
	assert.Equal(t, workflow.StateFailed, v.State)
	assert.NotContains(t, v.Notice, "connection reset",
		"store internals must not leak into the user-facing notice")
}

func TestSession_SupersededLoadIsDiscarded(t *testing.T) {
	// GIVEN: A load blocked in flight
	// WHEN: The session is canceled before the response lands
	// THEN: The response is discarded and the session stays canceled

	f := newFixture(t)
	saved := f.seed(t)
	f.store.selectEntered = make(chan struct{})
	f.store.selectRelease = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- f.sess.Load(context.Background(), saved.ID)
	}()

	<-f.store.selectEntered
	require.NoError(t, f.sess.Cancel())
	close(f.store.selectRelease)

	assert.ErrorIs(t, <-done, workflow.ErrSuperseded)
	assert.Equal(t, workflow.StateCanceled, f.sess.View().State)
}

// =============================================================================
// EDITING AND SAVING
// =============================================================================

func TestSession_EditAndSavePersists(t *testing.T) {
	f := newFixture(t)
	saved := f.seed(t)
	ctx := context.Background()

	require.NoError(t, f.sess.Load(ctx, saved.ID))
	require.NoError(t, f.sess.Edit(ledger.FieldQuantity, "5"))

	updated, err := f.sess.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, workflow.StateSaved, f.sess.View().State)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, int64(75000), updated.TotalPrice, "total follows the edited quantity")

	persisted, err := f.repo.FetchOne(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, persisted)
}

func TestSession_ValidationFailurePreservesDraft(t *testing.T) {
	// A failed submit never discards the user's edits.
	f := newFixture(t)
	saved := f.seed(t)
	ctx := context.Background()

	require.NoError(t, f.sess.Load(ctx, saved.ID))
	require.NoError(t, f.sess.Edit(ledger.FieldQuantity, "not a number"))

	_, err := f.sess.Save(ctx)
	require.Error(t, err)
	assert.True(t, record.IsValidation(err))

	v := f.sess.View()
	assert.Equal(t, workflow.StateSubmitError, v.State)
	assert.Contains(t, v.FieldErrors, ledger.FieldQuantity)
	assert.Equal(t, "not a number", v.Draft.Quantity, "draft must survive the failure")

	// Stored record is untouched.
	persisted, err := f.repo.FetchOne(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, persisted)

	// Fixing the field makes the session savable again.
	require.NoError(t, f.sess.Edit(ledger.FieldQuantity, "4"))
	updated, err := f.sess.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
}

func TestSession_StoreFailureOnSavePreservesDraft(t *testing.T) {
	f := newFixture(t)
	saved := f.seed(t)
	ctx := context.Background()

	require.NoError(t, f.sess.Load(ctx, saved.ID))
	require.NoError(t, f.sess.Edit(ledger.FieldQuantity, "7"))

	f.store.updateErr = errors.New("disk full")
	_, err := f.sess.Save(ctx)
	assert.True(t, record.IsRetryable(err))

	v := f.sess.View()
	assert.Equal(t, workflow.StateSubmitError, v.State)
	assert.NotEmpty(t, v.Notice)
	assert.NotContains(t, v.Notice, "disk full")
	assert.Equal(t, "7", v.Draft.Quantity)

	// Retry succeeds once the store recovers.
	f.store.updateErr = nil
	updated, err := f.sess.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)
}

func TestSession_SecondSubmitIsIgnoredWhileInFlight(t *testing.T) {
	// GIVEN: A save blocked in flight
	// WHEN: Save is called again
	// THEN: The second call is rejected with ErrBusy and writes nothing

	f := newFixture(t)
	saved := f.seed(t)
	ctx := context.Background()

	require.NoError(t, f.sess.Load(ctx, saved.ID))
	require.NoError(t, f.sess.Edit(ledger.FieldQuantity, "5"))

	f.store.updateEntered = make(chan struct{})
	f.store.updateRelease = make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := f.sess.Save(ctx)
		done <- err
	}()

	// Wait for the first save to reach the store, then try a second.
	<-f.store.updateEntered
	_, err := f.sess.Save(ctx)
	assert.ErrorIs(t, err, workflow.ErrBusy)
	assert.ErrorIs(t, f.sess.Cancel(), workflow.ErrBusy, "cancel is not allowed mid-submit")

	close(f.store.updateRelease)
	require.NoError(t, <-done)
	assert.Equal(t, workflow.StateSaved, f.sess.View().State)
}

func TestSession_SaveWithoutLoad(t *testing.T) {
	f := newFixture(t)
	_, err := f.sess.Save(context.Background())
	assert.ErrorIs(t, err, workflow.ErrNotEditable)
}

// =============================================================================
// CANCELING
// =============================================================================

func TestSession_CancelDiscardsDraft(t *testing.T) {
	f := newFixture(t)
	saved := f.seed(t)
	ctx := context.Background()

	require.NoError(t, f.sess.Load(ctx, saved.ID))
	require.NoError(t, f.sess.Edit(ledger.FieldQuantity, "999"))
	require.NoError(t, f.sess.Cancel())

	v := f.sess.View()
	assert.Equal(t, workflow.StateCanceled, v.State)
	assert.Equal(t, ledger.EntryDraft{}, v.Draft)

	// Nothing was persisted.
	persisted, err := f.repo.FetchOne(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, persisted)
}
