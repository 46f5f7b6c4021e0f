package booking

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alibiomar/meninx/internal/db"
	"github.com/alibiomar/meninx/internal/entities"
)

type fakeStore struct {
	mu           sync.Mutex
	reservations []db.Reservation
	created      []*db.Reservation
	createErr    error
	checkFn      func(carID int, start, end time.Time) (*entities.AvailabilityResult, error)
}

func (f *fakeStore) ListCars(filter entities.CarFilter) ([]db.Car, error) {
	return nil, nil
}

func (f *fakeStore) CheckAvailability(carID int, start, end time.Time) (*entities.AvailabilityResult, error) {
	f.mu.Lock()
	fn := f.checkFn
	existing := append([]db.Reservation(nil), f.reservations...)
	f.mu.Unlock()

	if fn != nil {
		return fn(carID, start, end)
	}
	result := &entities.AvailabilityResult{
		IsAvailable:        true,
		RequestedStartDate: start,
		RequestedEndDate:   end,
	}
	for _, res := range existing {
		if res.CarID != carID || res.Status == db.StatusCancelled {
			continue
		}
		if PeriodsOverlap(start, end, res.StartDate, res.EndDate) {
			result.IsAvailable = false
			result.Conflicts = append(result.Conflicts, res)
		}
	}
	return result, nil
}

func (f *fakeStore) CreateReservation(res *db.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	res.ID = len(f.created) + 1
	res.Code = "TESTCODE"
	f.created = append(f.created, res)
	return nil
}

func (f *fakeStore) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

type fakeNotifier struct {
	adminCh    chan db.Reservation
	customerCh chan db.Reservation
	adminErr   error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		adminCh:    make(chan db.Reservation, 1),
		customerCh: make(chan db.Reservation, 1),
	}
}

func (f *fakeNotifier) NotifyAdmin(res db.Reservation) error {
	f.adminCh <- res
	return f.adminErr
}

func (f *fakeNotifier) NotifyCustomer(res db.Reservation) error {
	f.customerCh <- res
	return nil
}

func testCar() db.Car {
	return db.Car{ID: 7, Make: "Toyota", Model: "Corolla", Year: 2022, PricePerDay: 100.0}
}

func newTestSession(store Store, notifier Notifier) *Session {
	sess := NewSession("test-session", store, notifier)
	sess.now = func() time.Time { return date("2024-06-01") }
	return sess
}

func waitForAvailability(t *testing.T, sess *Session) State {
	t.Helper()
	require.Eventually(t, func() bool {
		return !sess.Snapshot().CheckingAvailability
	}, time.Second, 5*time.Millisecond)
	return sess.Snapshot()
}

func TestSessionFullFlow(t *testing.T) {
	store := &fakeStore{}
	notifier := newFakeNotifier()
	sess := newTestSession(store, notifier)

	assert.Equal(t, StepCustomerInfo, sess.Snapshot().Step)

	sess.SetCustomerInfo(validCustomer())
	require.NoError(t, sess.Next())
	assert.Equal(t, StepSelectCar, sess.Snapshot().Step)

	sess.SelectCar(testCar())
	require.NoError(t, sess.Next())
	assert.Equal(t, StepFinalize, sess.Snapshot().Step)

	sess.SetPeriod(date("2024-06-01"), date("2024-06-03"))
	st := waitForAvailability(t, sess)
	assert.Equal(t, 3, st.Summary.Days)
	assert.Equal(t, 300.0, st.Summary.TotalPrice)
	assert.True(t, st.Summary.IsAvailable)

	require.NoError(t, sess.Submit())

	st = sess.Snapshot()
	assert.Equal(t, StepSubmitted, st.Step)
	assert.True(t, st.Success)
	assert.Equal(t, "TESTCODE", st.ReservationCode)

	require.Equal(t, 1, store.createdCount())
	res := store.created[0]
	assert.Equal(t, 7, res.CarID)
	assert.Equal(t, "Jane Doe", res.CustomerName)
	assert.Equal(t, db.StatusPending, res.Status)
	assert.Equal(t, db.PaymentPending, res.PaymentStatus)
	assert.Equal(t, "Toyota", res.CarMake)
	assert.Equal(t, "Corolla", res.CarModel)
	assert.Equal(t, 2022, res.CarYear)
	assert.Equal(t, 300.0, res.TotalPrice)

	select {
	case got := <-notifier.adminCh:
		assert.Equal(t, "TESTCODE", got.Code)
	case <-time.After(time.Second):
		t.Fatal("admin notification was not sent")
	}
	select {
	case got := <-notifier.customerCh:
		assert.Equal(t, "TESTCODE", got.Code)
	case <-time.After(time.Second):
		t.Fatal("customer notification was not sent")
	}
}

func TestSessionNextGatedOnCustomerInfo(t *testing.T) {
	sess := newTestSession(&fakeStore{}, newFakeNotifier())

	sess.SetCustomerInfo(entities.CustomerInfo{Name: "Jane Doe", Email: "abc", Phone: "+21655123456"})
	err := sess.Next()
	require.Error(t, err)
	assert.Equal(t, "Invalid email format", err.Error())

	st := sess.Snapshot()
	assert.Equal(t, StepCustomerInfo, st.Step)
	assert.Equal(t, "Invalid email format", st.Error)
}

func TestSessionNextGatedOnCarSelection(t *testing.T) {
	sess := newTestSession(&fakeStore{}, newFakeNotifier())
	sess.SetCustomerInfo(validCustomer())
	require.NoError(t, sess.Next())

	err := sess.Next()
	require.Error(t, err)
	assert.Equal(t, StepSelectCar, sess.Snapshot().Step)
}

func TestSessionBack(t *testing.T) {
	sess := newTestSession(&fakeStore{}, newFakeNotifier())
	sess.SetCustomerInfo(validCustomer())
	require.NoError(t, sess.Next())
	sess.SelectCar(testCar())
	require.NoError(t, sess.Next())

	sess.Back()
	assert.Equal(t, StepSelectCar, sess.Snapshot().Step)
	sess.Back()
	assert.Equal(t, StepCustomerInfo, sess.Snapshot().Step)
	sess.Back()
	assert.Equal(t, StepCustomerInfo, sess.Snapshot().Step)
}

func TestSessionUnavailableCarBlocksSubmit(t *testing.T) {
	store := &fakeStore{
		reservations: []db.Reservation{{
			CarID:     7,
			StartDate: date("2024-06-02"),
			EndDate:   date("2024-06-05"),
			Status:    db.StatusPending,
		}},
	}
	sess := newTestSession(store, newFakeNotifier())
	sess.SetCustomerInfo(validCustomer())
	require.NoError(t, sess.Next())
	sess.SelectCar(testCar())
	require.NoError(t, sess.Next())

	sess.SetPeriod(date("2024-06-04"), date("2024-06-06"))
	st := waitForAvailability(t, sess)
	assert.False(t, st.Summary.IsAvailable)

	err := sess.Submit()
	require.Error(t, err)
	assert.Equal(t, StepFinalize, sess.Snapshot().Step)
	assert.Equal(t, 0, store.createdCount())
}

func TestSessionCancelledReservationDoesNotBlock(t *testing.T) {
	store := &fakeStore{
		reservations: []db.Reservation{{
			CarID:     7,
			StartDate: date("2024-06-02"),
			EndDate:   date("2024-06-05"),
			Status:    db.StatusCancelled,
		}},
	}
	sess := newTestSession(store, newFakeNotifier())
	sess.SelectCar(testCar())
	sess.SetPeriod(date("2024-06-04"), date("2024-06-06"))
	st := waitForAvailability(t, sess)
	assert.True(t, st.Summary.IsAvailable)
}

func TestSessionStaleAvailabilityResultDiscarded(t *testing.T) {
	release := make(chan struct{})
	firstCall := true
	var mu sync.Mutex

	store := &fakeStore{}
	store.checkFn = func(carID int, start, end time.Time) (*entities.AvailabilityResult, error) {
		mu.Lock()
		stale := firstCall
		firstCall = false
		mu.Unlock()
		if stale {
			<-release
			return &entities.AvailabilityResult{IsAvailable: false}, nil
		}
		return &entities.AvailabilityResult{IsAvailable: true}, nil
	}

	sess := newTestSession(store, newFakeNotifier())
	sess.SelectCar(testCar())

	// First check hangs on the release channel.
	sess.SetPeriod(date("2024-06-02"), date("2024-06-04"))
	// Second check supersedes it and resolves available.
	sess.SetPeriod(date("2024-06-10"), date("2024-06-12"))
	st := waitForAvailability(t, sess)
	require.True(t, st.Summary.IsAvailable)

	// Let the stale check finish; its unavailable verdict must be dropped.
	close(release)
	time.Sleep(50 * time.Millisecond)
	assert.True(t, sess.Snapshot().Summary.IsAvailable)
}

func TestSessionSubmitPersistenceFailure(t *testing.T) {
	store := &fakeStore{createErr: errors.New("connection refused")}
	sess := newTestSession(store, newFakeNotifier())
	sess.SetCustomerInfo(validCustomer())
	require.NoError(t, sess.Next())
	sess.SelectCar(testCar())
	require.NoError(t, sess.Next())
	sess.SetPeriod(date("2024-06-01"), date("2024-06-03"))
	waitForAvailability(t, sess)

	err := sess.Submit()
	require.Error(t, err)

	st := sess.Snapshot()
	assert.Equal(t, StepFinalize, st.Step)
	assert.False(t, st.Success)
	assert.Equal(t, "Failed to create the reservation. Please try again.", st.Error)

	// The session can retry once the store recovers.
	store.mu.Lock()
	store.createErr = nil
	store.mu.Unlock()
	require.NoError(t, sess.Submit())
	assert.Equal(t, StepSubmitted, sess.Snapshot().Step)
}

func TestSessionSubmitTwice(t *testing.T) {
	store := &fakeStore{}
	sess := newTestSession(store, newFakeNotifier())
	sess.SetCustomerInfo(validCustomer())
	require.NoError(t, sess.Next())
	sess.SelectCar(testCar())
	require.NoError(t, sess.Next())
	sess.SetPeriod(date("2024-06-01"), date("2024-06-03"))
	waitForAvailability(t, sess)

	require.NoError(t, sess.Submit())
	err := sess.Submit()
	require.Error(t, err)
	assert.Equal(t, 1, store.createdCount())
}

func TestSessionNotificationFailureDoesNotAffectSubmit(t *testing.T) {
	store := &fakeStore{}
	notifier := newFakeNotifier()
	notifier.adminErr = errors.New("smtp unreachable")
	sess := newTestSession(store, notifier)
	sess.SetCustomerInfo(validCustomer())
	require.NoError(t, sess.Next())
	sess.SelectCar(testCar())
	require.NoError(t, sess.Next())
	sess.SetPeriod(date("2024-06-01"), date("2024-06-03"))
	waitForAvailability(t, sess)

	require.NoError(t, sess.Submit())
	assert.True(t, sess.Snapshot().Success)

	// Both sends are attempted even though the admin one fails.
	select {
	case <-notifier.adminCh:
	case <-time.After(time.Second):
		t.Fatal("admin notification was not attempted")
	}
	select {
	case <-notifier.customerCh:
	case <-time.After(time.Second):
		t.Fatal("customer notification was not attempted")
	}
}

func TestSessionSubmitRejectsPastStartDate(t *testing.T) {
	store := &fakeStore{}
	sess := newTestSession(store, newFakeNotifier())
	sess.SetCustomerInfo(validCustomer())
	require.NoError(t, sess.Next())
	sess.SelectCar(testCar())
	require.NoError(t, sess.Next())
	sess.SetPeriod(date("2024-05-20"), date("2024-05-25"))
	waitForAvailability(t, sess)

	err := sess.Submit()
	require.Error(t, err)
	assert.Equal(t, "Start date cannot be in the past", err.Error())
	assert.Equal(t, 0, store.createdCount())
}

func TestSessionReset(t *testing.T) {
	store := &fakeStore{}
	sess := newTestSession(store, newFakeNotifier())
	sess.SetCustomerInfo(validCustomer())
	require.NoError(t, sess.Next())
	sess.SelectCar(testCar())
	require.NoError(t, sess.Next())
	sess.SetPeriod(date("2024-06-01"), date("2024-06-03"))
	waitForAvailability(t, sess)

	sess.Reset()

	st := sess.Snapshot()
	assert.Equal(t, StepCustomerInfo, st.Step)
	assert.Empty(t, st.Customer.Name)
	assert.Nil(t, st.SelectedCar)
	assert.Empty(t, st.StartDate)
	assert.Empty(t, st.EndDate)
	assert.Equal(t, entities.RentalSummary{IsAvailable: true}, st.Summary)
	assert.False(t, st.Success)
	assert.Empty(t, st.Error)
}

func TestSessionSummaryClearedWhenDatesIncomplete(t *testing.T) {
	sess := newTestSession(&fakeStore{}, newFakeNotifier())
	sess.SelectCar(testCar())
	sess.SetPeriod(date("2024-06-01"), date("2024-06-03"))
	waitForAvailability(t, sess)
	require.Equal(t, 3, sess.Snapshot().Summary.Days)

	// An inverted range resets the summary instead of pricing it.
	sess.SetPeriod(date("2024-06-05"), date("2024-06-03"))
	st := sess.Snapshot()
	assert.Equal(t, 0, st.Summary.Days)
	assert.Equal(t, 0.0, st.Summary.TotalPrice)
	assert.True(t, st.Summary.IsAvailable)
}
