package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	bookingRepo "github.com/mbendary2019/Shoporia-sub001/database/repository/booking"
	"github.com/mbendary2019/Shoporia-sub001/models"
)

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func testService() *models.Service {
	return &models.Service{
		ID:                 "svc-1",
		StoreID:            "store-1",
		Name:               "Haircut",
		Duration:           60,
		BufferTime:         15,
		MaxBookingsPerSlot: 1,
		Price:              50,
		Currency:           "usd",
		Availability: models.WeeklyAvailability{
			"monday":    {IsAvailable: true, Slots: []models.Interval{{Start: 540, End: 720}}},
			"tuesday":   {IsAvailable: true, Slots: []models.Interval{{Start: 540, End: 720}}},
			"wednesday": {IsAvailable: true, Slots: []models.Interval{{Start: 540, End: 720}}},
			"thursday":  {IsAvailable: true, Slots: []models.Interval{{Start: 540, End: 720}}},
			"friday":    {IsAvailable: true, Slots: []models.Interval{{Start: 540, End: 720}}},
			"saturday":  {IsAvailable: true, Slots: []models.Interval{{Start: 540, End: 720}}},
			"sunday":    {IsAvailable: true, Slots: []models.Interval{{Start: 540, End: 720}}},
		},
	}
}

func testEngine() (*DefaultSchedulingEngine, *memoryBookingRepo) {
	repo := newMemoryBookingRepo()
	engine := &DefaultSchedulingEngine{
		Repo:    repo,
		Catalog: newMemoryCatalog(testService()),
	}
	return engine, repo
}

func createRequest() CreateBookingRequest {
	return CreateBookingRequest{
		ServiceID:     "svc-1",
		CustomerID:    "cust-1",
		Date:          futureDate(),
		Start:         540, // 09:00
		End:           600, // 10:00
		PaymentMethod: "cash",
	}
}

func TestCreateBookingHappyPath(t *testing.T) {
	engine, _ := testEngine()

	booking, err := engine.CreateBooking(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if booking.Status != models.StatusPending {
		t.Errorf("new booking status = %s, want pending", booking.Status)
	}
	if booking.BookingNumber == "" {
		t.Error("booking number not generated")
	}
	if int(booking.End-booking.Start) != booking.Duration {
		t.Errorf("duration invariant violated: %d-%d vs %d", booking.Start, booking.End, booking.Duration)
	}
	if booking.StoreID != "store-1" || booking.Total != 50 {
		t.Errorf("booking did not inherit service fields: %+v", booking)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	engine, _ := testEngine()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateBookingRequest)
	}{
		{"past date", func(r *CreateBookingRequest) { r.Date = "2020-01-01" }},
		{"malformed date", func(r *CreateBookingRequest) { r.Date = "01/01/2030" }},
		{"inverted window", func(r *CreateBookingRequest) { r.Start, r.End = r.End, r.Start }},
		{"wrong duration", func(r *CreateBookingRequest) { r.End = r.Start + 30 }},
		{"missing customer", func(r *CreateBookingRequest) { r.CustomerID = "" }},
	}
	for _, tc := range cases {
		req := createRequest()
		tc.mutate(&req)
		_, err := engine.CreateBooking(ctx, req)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: got %v, want ValidationError", tc.name, err)
		}
	}
}

func TestCreateBookingUnknownService(t *testing.T) {
	engine, _ := testEngine()
	req := createRequest()
	req.ServiceID = "nope"

	_, err := engine.CreateBooking(context.Background(), req)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}

func TestBookCheckCancelCheck(t *testing.T) {
	engine, _ := testEngine()
	ctx := context.Background()
	req := createRequest()
	window := models.Interval{Start: req.Start, End: req.End}

	booking, err := engine.CreateBooking(ctx, req)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	available, err := engine.CheckSlotAvailability(ctx, req.ServiceID, req.Date, window)
	if err != nil {
		t.Fatalf("CheckSlotAvailability: %v", err)
	}
	if available {
		t.Error("booked window still reported available")
	}

	if _, err := engine.TransitionStatus(ctx, booking.ID, models.StatusPending, models.StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	available, err = engine.CheckSlotAvailability(ctx, req.ServiceID, req.Date, window)
	if err != nil {
		t.Fatalf("CheckSlotAvailability after cancel: %v", err)
	}
	if !available {
		t.Error("cancelled booking still blocks the window")
	}
}

func TestBookingBlocksGeneratedSlots(t *testing.T) {
	engine, _ := testEngine()
	ctx := context.Background()
	req := createRequest()

	before, err := engine.AvailableSlots(ctx, req.ServiceID, req.Date)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}

	if _, err := engine.CreateBooking(ctx, req); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	after, err := engine.AvailableSlots(ctx, req.ServiceID, req.Date)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(after) != len(before)-1 {
		t.Errorf("slot count %d -> %d, want one fewer", len(before), len(after))
	}
	for _, s := range after {
		if s.Overlaps(models.Interval{Start: req.Start, End: req.End}) {
			t.Errorf("listed slot %s-%s overlaps the booking", s.Start, s.End)
		}
	}
}

func TestCanTransitionTable(t *testing.T) {
	cases := []struct {
		from, to models.BookingStatus
		want     bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusPending, models.StatusNoShow, true},
		{models.StatusPending, models.StatusCompleted, false}, // must confirm first
		{models.StatusPending, models.StatusInProgress, false},
		{models.StatusConfirmed, models.StatusInProgress, true},
		{models.StatusConfirmed, models.StatusCompleted, true},
		{models.StatusConfirmed, models.StatusCancelled, true},
		{models.StatusConfirmed, models.StatusNoShow, true},
		{models.StatusInProgress, models.StatusCompleted, true},
		{models.StatusInProgress, models.StatusCancelled, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusConfirmed, false},
		{models.StatusNoShow, models.StatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTransitionStatusRejectsInvalid(t *testing.T) {
	engine, _ := testEngine()
	ctx := context.Background()

	booking, err := engine.CreateBooking(ctx, createRequest())
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	_, err = engine.TransitionStatus(ctx, booking.ID, models.StatusPending, models.StatusCompleted)
	var it *InvalidTransitionError
	if !errors.As(err, &it) {
		t.Fatalf("pending->completed: got %v, want InvalidTransitionError", err)
	}

	// Drive to completed the legal way, then try to cancel.
	if _, err := engine.TransitionStatus(ctx, booking.ID, models.StatusPending, models.StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := engine.TransitionStatus(ctx, booking.ID, models.StatusConfirmed, models.StatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}
	_, err = engine.TransitionStatus(ctx, booking.ID, models.StatusCompleted, models.StatusCancelled)
	if !errors.As(err, &it) {
		t.Fatalf("completed->cancelled: got %v, want InvalidTransitionError", err)
	}
}

func TestTransitionStatusConcurrentModification(t *testing.T) {
	engine, repo := testEngine()
	ctx := context.Background()

	booking, err := engine.CreateBooking(ctx, createRequest())
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// Another actor confirms the booking behind our back.
	if err := repo.UpdateStatus(ctx, booking.ID, models.StatusPending, models.StatusConfirmed); err != nil {
		t.Fatalf("external confirm: %v", err)
	}

	_, err = engine.TransitionStatus(ctx, booking.ID, models.StatusPending, models.StatusCancelled)
	var cm *ConcurrentModificationError
	if !errors.As(err, &cm) {
		t.Fatalf("got %v, want ConcurrentModificationError", err)
	}
}

func TestConcurrentCreateExactlyOneWins(t *testing.T) {
	engine, repo := testEngine()
	ctx := context.Background()

	const racers = 2
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := createRequest()
			req.CustomerID = "cust-" + string(rune('a'+i))
			_, errs[i] = engine.CreateBooking(ctx, req)
		}(i)
	}
	wg.Wait()

	wins, losses := 0, 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		var su *SlotUnavailableError
		if errors.As(err, &su) {
			losses++
		} else {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if wins != 1 || losses != racers-1 {
		t.Errorf("got %d wins and %d losses, want exactly 1 win", wins, losses)
	}
	if len(repo.bookings) != 1 {
		t.Errorf("%d bookings persisted, want 1", len(repo.bookings))
	}
}

func TestIdempotentReplay(t *testing.T) {
	engine, repo := testEngine()
	ctx := context.Background()

	req := createRequest()
	req.IdempotencyKey = "retry-abc"

	first, err := engine.CreateBooking(ctx, req)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := engine.CreateBooking(ctx, req)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("replay created a new booking: %s vs %s", first.ID, second.ID)
	}
	if len(repo.bookings) != 1 {
		t.Errorf("%d bookings persisted, want 1", len(repo.bookings))
	}
}

func TestLostRaceRefundsCapturedPayment(t *testing.T) {
	repo := &conflictRepo{
		memoryBookingRepo: newMemoryBookingRepo(),
		createErr:         bookingRepo.ErrSlotTaken{},
	}
	payments := &recordingPayments{initial: models.PaymentPaid, refunds: make(chan string, 1)}
	engine := &DefaultSchedulingEngine{
		Repo:     repo,
		Catalog:  newMemoryCatalog(testService()),
		Payments: payments,
	}

	req := createRequest()
	req.PaymentMethod = "card"
	_, err := engine.CreateBooking(context.Background(), req)
	var su *SlotUnavailableError
	if !errors.As(err, &su) {
		t.Fatalf("got %v, want SlotUnavailableError", err)
	}
	select {
	case <-payments.refunds:
	default:
		t.Fatal("captured payment was not refunded after the lost race")
	}
}

func TestLostRaceLeavesDeferredPaymentAlone(t *testing.T) {
	repo := &conflictRepo{
		memoryBookingRepo: newMemoryBookingRepo(),
		createErr:         bookingRepo.ErrSlotTaken{},
	}
	payments := &recordingPayments{initial: models.PaymentPending, refunds: make(chan string, 1)}
	engine := &DefaultSchedulingEngine{
		Repo:     repo,
		Catalog:  newMemoryCatalog(testService()),
		Payments: payments,
	}

	_, err := engine.CreateBooking(context.Background(), createRequest())
	var su *SlotUnavailableError
	if !errors.As(err, &su) {
		t.Fatalf("got %v, want SlotUnavailableError", err)
	}
	select {
	case id := <-payments.refunds:
		t.Fatalf("deferred payment for %s refunded, but no money was captured", id)
	default:
	}
}

func TestConcurrentIdempotentReplayReturnsOriginal(t *testing.T) {
	committed := &models.Booking{
		ID:             "b-original",
		BookingNumber:  "SHP-20260314-AAAAAA",
		ServiceID:      "svc-1",
		CustomerID:     "cust-1",
		Status:         models.StatusPending,
		IdempotencyKey: "retry-abc",
	}
	repo := &racingReplayRepo{
		memoryBookingRepo: newMemoryBookingRepo(),
		committed:         committed,
		misses:            1,
	}
	engine := &DefaultSchedulingEngine{
		Repo:    repo,
		Catalog: newMemoryCatalog(testService()),
	}

	req := createRequest()
	req.IdempotencyKey = "retry-abc"
	got, err := engine.CreateBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if got.ID != committed.ID {
		t.Errorf("got booking %s, want the already-committed %s", got.ID, committed.ID)
	}
}
