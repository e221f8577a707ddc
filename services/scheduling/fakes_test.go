package scheduling

import (
	"context"
	"sync"

	bookingRepo "github.com/mbendary2019/Shoporia-sub001/database/repository/booking"
	catalogRepo "github.com/mbendary2019/Shoporia-sub001/database/repository/catalog"
	"github.com/mbendary2019/Shoporia-sub001/models"
)

// memoryBookingRepo is an in-memory Repository. CreateIfSlotFree holds the
// lock across the count and the insert, mirroring the serialization the Mongo
// transaction provides in production.
type memoryBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newMemoryBookingRepo() *memoryBookingRepo {
	return &memoryBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *memoryBookingRepo) CreateIfSlotFree(ctx context.Context, booking *models.Booking, capacity int) error {
	if capacity < 1 {
		capacity = 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, b := range r.bookings {
		if b.ServiceID == booking.ServiceID && b.Date == booking.Date &&
			b.Status.Active() && b.Window().Overlaps(booking.Window()) {
			count++
		}
	}
	if count >= capacity {
		return bookingRepo.ErrSlotTaken{}
	}
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *memoryBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound{}
	}
	cp := *b
	return &cp, nil
}

func (r *memoryBookingRepo) GetByNumber(ctx context.Context, number string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BookingNumber == number {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrNotFound{}
}

func (r *memoryBookingRepo) GetByIdempotencyKey(ctx context.Context, key string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.IdempotencyKey == key {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrNotFound{}
}

func (r *memoryBookingRepo) ActiveByServiceDate(ctx context.Context, serviceID, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ServiceID == serviceID && b.Date == date && b.Status.Active() {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memoryBookingRepo) QueryByCustomer(ctx context.Context, customerID, cursor string, limit int) (*bookingRepo.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	page := &bookingRepo.Page{}
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			page.Bookings = append(page.Bookings, *b)
		}
	}
	return page, nil
}

func (r *memoryBookingRepo) QueryByStore(ctx context.Context, storeID, cursor string, limit int) (*bookingRepo.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	page := &bookingRepo.Page{}
	for _, b := range r.bookings {
		if b.StoreID == storeID {
			page.Bookings = append(page.Bookings, *b)
		}
	}
	return page, nil
}

func (r *memoryBookingRepo) QueryByServiceDate(ctx context.Context, serviceID, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ServiceID == serviceID && b.Date == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memoryBookingRepo) AllByStore(ctx context.Context, storeID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.StoreID == storeID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memoryBookingRepo) CountActiveByService(ctx context.Context, serviceID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.ServiceID == serviceID {
			switch b.Status {
			case models.StatusPending, models.StatusConfirmed, models.StatusInProgress:
				n++
			}
		}
	}
	return n, nil
}

func (r *memoryBookingRepo) UpdateStatus(ctx context.Context, id string, expected, next models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound{}
	}
	if b.Status != expected {
		return bookingRepo.ErrStatusConflict{Actual: b.Status}
	}
	b.Status = next
	return nil
}

func (r *memoryBookingRepo) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound{}
	}
	b.PaymentStatus = status
	return nil
}

// memoryCatalog serves fixed services.
type memoryCatalog struct {
	services map[string]*models.Service
}

func newMemoryCatalog(services ...*models.Service) *memoryCatalog {
	c := &memoryCatalog{services: make(map[string]*models.Service)}
	for _, s := range services {
		c.services[s.ID] = s
	}
	return c
}

func (c *memoryCatalog) Create(ctx context.Context, service *models.Service) error {
	c.services[service.ID] = service
	return nil
}

func (c *memoryCatalog) GetByID(ctx context.Context, id string) (*models.Service, error) {
	s, ok := c.services[id]
	if !ok {
		return nil, catalogRepo.ErrNotFound{}
	}
	cp := *s
	return &cp, nil
}

func (c *memoryCatalog) ListByStore(ctx context.Context, storeID string) ([]models.Service, error) {
	var out []models.Service
	for _, s := range c.services {
		if s.StoreID == storeID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (c *memoryCatalog) UpdateAvailability(ctx context.Context, id string, weekly models.WeeklyAvailability) error {
	s, ok := c.services[id]
	if !ok {
		return catalogRepo.ErrNotFound{}
	}
	s.Availability = weekly
	return nil
}

func (c *memoryCatalog) UpdateSlotParams(ctx context.Context, id string, duration, buffer, maxPerSlot int) error {
	s, ok := c.services[id]
	if !ok {
		return catalogRepo.ErrNotFound{}
	}
	s.Duration, s.BufferTime, s.MaxBookingsPerSlot = duration, buffer, maxPerSlot
	return nil
}

func (c *memoryCatalog) Archive(ctx context.Context, id string) error {
	s, ok := c.services[id]
	if !ok {
		return catalogRepo.ErrNotFound{}
	}
	s.Archived = true
	return nil
}

// conflictRepo fails every insert with a fixed error while serving reads from
// the in-memory repository, modelling a creator whose pre-flight check saw a
// free calendar but whose transactional insert lost the race.
type conflictRepo struct {
	*memoryBookingRepo
	createErr error
}

func (r *conflictRepo) CreateIfSlotFree(ctx context.Context, booking *models.Booking, capacity int) error {
	return r.createErr
}

// racingReplayRepo models a concurrent replay of one idempotency key: the
// first lookup misses, the insert trips the unique key index, and the
// re-read finds the booking the other request committed.
type racingReplayRepo struct {
	*memoryBookingRepo
	committed *models.Booking
	misses    int
}

func (r *racingReplayRepo) GetByIdempotencyKey(ctx context.Context, key string) (*models.Booking, error) {
	if r.misses > 0 {
		r.misses--
		return nil, bookingRepo.ErrNotFound{}
	}
	cp := *r.committed
	return &cp, nil
}

func (r *racingReplayRepo) CreateIfSlotFree(ctx context.Context, booking *models.Booking, capacity int) error {
	return bookingRepo.ErrDuplicateKey{}
}
