package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"dreamdecol/database"
	"dreamdecol/models"
	"dreamdecol/services/settings"
	"dreamdecol/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeBookingRepo enforces the active-slot uniqueness the partial unique index provides.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[primitive.ObjectID]models.Booking{}}
}

func (f *fakeBookingRepo) slotTakenLocked(b *models.Booking) bool {
	if !b.SlotHeld {
		return false
	}
	for id, other := range f.bookings {
		if id != b.ID && other.SlotHeld && other.Date == b.Date && other.Time == b.Time {
			return true
		}
	}
	return false
}

func (f *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if f.slotTakenLocked(b) {
		return database.ErrDuplicate
	}
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &b, nil
}

func (f *fakeBookingRepo) Replace(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[b.ID]; !ok {
		return database.ErrNotFound
	}
	if f.slotTakenLocked(b) {
		return database.ErrDuplicate
	}
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[id]; !ok {
		return database.ErrNotFound
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepo) FindActiveAtSlot(_ context.Context, date, slot string, excludeID *primitive.ObjectID) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, b := range f.bookings {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if b.SlotHeld && b.Date == date && b.Time == slot {
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) ListActiveByDate(_ context.Context, date string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.SlotHeld && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) List(_ context.Context, filter models.BookingFilter) ([]models.Booking, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if filter.Status != "" && filter.Status != "all" && b.Status != filter.Status {
			continue
		}
		out = append(out, b)
	}
	total := int64(len(out))
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (f *fakeBookingRepo) Stats(context.Context, time.Time, time.Time) (*models.BookingStats, error) {
	return &models.BookingStats{}, nil
}

func (f *fakeBookingRepo) EnsureIndexes(context.Context) error { return nil }

func init() {
	utils.Logger = zap.NewNop()
}

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeBookingRepo, configs ...models.Configuration) *DefaultBookingService {
	snap := settings.DefaultSnapshot()
	if len(configs) > 0 {
		snap = settings.NewSnapshot(configs)
	}
	svc := NewBookingService(repo, settings.Static{S: snap})
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func validInput(date, slot string) CreateInput {
	return CreateInput{
		Name:        "Alice Uwase",
		Email:       "  Alice@Example.com ",
		Phone:       "0788123456",
		Date:        date,
		Time:        slot,
		ServiceType: "consultation",
	}
}

func assertKind(t *testing.T, err error, kind utils.ErrorKind) *utils.AppError {
	t.Helper()
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %v", err)
	}
	if appErr.Kind != kind {
		t.Fatalf("kind = %v, want %v (%v)", appErr.Kind, kind, err)
	}
	return appErr
}

func TestCreateThenDuplicateSlotConflicts(t *testing.T) {
	svc := newTestService(newFakeBookingRepo())
	ctx := context.Background()

	b, err := svc.Create(ctx, validInput("2099-01-01", "09:00"))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if b.Status != models.BookingPending || !b.SlotHeld {
		t.Errorf("new booking status=%s slotHeld=%v", b.Status, b.SlotHeld)
	}
	if b.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", b.Email)
	}

	_, err = svc.Create(ctx, validInput("2099-01-01", "09:00"))
	appErr := assertKind(t, err, utils.KindConflict)
	if appErr.Message != MsgSlotTaken {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestCancelledBookingFreesSlot(t *testing.T) {
	svc := newTestService(newFakeBookingRepo())
	ctx := context.Background()

	b, err := svc.Create(ctx, validInput("2099-01-01", "10:00"))
	if err != nil {
		t.Fatal(err)
	}
	cancelled := models.BookingCancelled
	if _, err := svc.Update(ctx, b.ID.Hex(), UpdateInput{Status: &cancelled}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.Create(ctx, validInput("2099-01-01", "10:00")); err != nil {
		t.Fatalf("slot should be free after cancellation: %v", err)
	}

	// Reviving the cancelled booking now collides with the new holder.
	pending := models.BookingPending
	_, err = svc.Update(ctx, b.ID.Hex(), UpdateInput{Status: &pending})
	assertKind(t, err, utils.KindConflict)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(newFakeBookingRepo())
	ctx := context.Background()

	badService := validInput("2099-01-01", "09:00")
	badService.ServiceType = "repair"

	cases := map[string]CreateInput{
		"past date":       validInput("2026-10-13", "09:00"),
		"bad format":      validInput("2099-1-1", "09:00"),
		"not a date":      validInput("2099-02-30", "09:00"),
		"unknown slot":    validInput("2099-01-01", "08:00"),
		"unknown service": badService,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, in)
			assertKind(t, err, utils.KindValidation)
		})
	}

	if _, err := svc.Create(ctx, validInput("2026-10-14", "09:00")); err != nil {
		t.Errorf("today should be accepted: %v", err)
	}
}

func TestDateCheckUsesConfiguredTimezone(t *testing.T) {
	repo := newFakeBookingRepo()
	snapConfigs := []models.Configuration{
		{Key: settings.KeyTimezone, Value: "Pacific/Kiritimati", IsActive: true},
	}
	svc := newTestService(repo, snapConfigs...)
	// 12:00 UTC on the 14th is already the 15th at UTC+14.
	_, err := svc.Create(context.Background(), validInput("2026-10-14", "09:00"))
	assertKind(t, err, utils.KindValidation)
}

func TestConfiguredSlotsOverrideDefaults(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), models.Configuration{
		Key: settings.KeyBookingTimeSlots, Value: primitive.A{"08:30"}, IsActive: true,
	})
	ctx := context.Background()
	if _, err := svc.Create(ctx, validInput("2099-01-01", "08:30")); err != nil {
		t.Fatalf("configured slot rejected: %v", err)
	}
	_, err := svc.Create(ctx, validInput("2099-01-01", "09:00"))
	assertKind(t, err, utils.KindValidation)
}

func TestUpdateExcludesSelf(t *testing.T) {
	svc := newTestService(newFakeBookingRepo())
	ctx := context.Background()

	b, err := svc.Create(ctx, validInput("2099-01-01", "11:00"))
	if err != nil {
		t.Fatal(err)
	}
	sameTime := "11:00"
	notes := "bring fabric samples"
	updated, err := svc.Update(ctx, b.ID.Hex(), UpdateInput{Time: &sameTime, Notes: &notes})
	if err != nil {
		t.Fatalf("updating own slot: %v", err)
	}
	if updated.Notes != notes {
		t.Errorf("notes = %q", updated.Notes)
	}
}

func TestUpdateIntoTakenSlotConflicts(t *testing.T) {
	svc := newTestService(newFakeBookingRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, validInput("2099-01-01", "12:00")); err != nil {
		t.Fatal(err)
	}
	b, err := svc.Create(ctx, validInput("2099-01-01", "13:00"))
	if err != nil {
		t.Fatal(err)
	}
	taken := "12:00"
	_, err = svc.Update(ctx, b.ID.Hex(), UpdateInput{Time: &taken})
	assertKind(t, err, utils.KindConflict)
}

func TestUpdateAndDeleteMissingBooking(t *testing.T) {
	svc := newTestService(newFakeBookingRepo())
	ctx := context.Background()
	missing := primitive.NewObjectID().Hex()

	status := models.BookingConfirmed
	_, err := svc.Update(ctx, missing, UpdateInput{Status: &status})
	assertKind(t, err, utils.KindNotFound)
	assertKind(t, svc.Delete(ctx, missing), utils.KindNotFound)
	assertKind(t, svc.Delete(ctx, "not-an-id"), utils.KindValidation)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(newFakeBookingRepo())
	ctx := context.Background()
	b, err := svc.Create(ctx, validInput("2099-01-01", "14:00"))
	if err != nil {
		t.Fatal(err)
	}
	status := "archived"
	_, err = svc.Update(ctx, b.ID.Hex(), UpdateInput{Status: &status})
	assertKind(t, err, utils.KindValidation)
}

func TestConcurrentCreatesHoldSlotOnce(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, validInput("2099-03-03", "15:00"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assertKind(t, err, utils.KindConflict)
	}
	if succeeded != 1 {
		t.Fatalf("succeeded = %d, want 1", succeeded)
	}
	active, _ := repo.ListActiveByDate(ctx, "2099-03-03")
	if len(active) != 1 {
		t.Fatalf("active bookings = %d, want 1", len(active))
	}
}

func TestAvailability(t *testing.T) {
	svc := newTestService(newFakeBookingRepo())
	ctx := context.Background()
	if _, err := svc.Create(ctx, validInput("2099-01-01", "09:00")); err != nil {
		t.Fatal(err)
	}

	av, err := svc.Availability(ctx, "2099-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(av.BookedSlots) != 1 || av.BookedSlots[0] != "09:00" {
		t.Errorf("booked = %v", av.BookedSlots)
	}
	if len(av.AvailableSlots) != len(models.DefaultTimeSlots)-1 {
		t.Errorf("available = %v", av.AvailableSlots)
	}
	for _, slot := range av.AvailableSlots {
		if slot == "09:00" {
			t.Error("booked slot listed as available")
		}
	}

	_, err = svc.Availability(ctx, "")
	assertKind(t, err, utils.KindValidation)
}

func TestListUsesAdminPageLimit(t *testing.T) {
	svc := newTestService(newFakeBookingRepo())
	ctx := context.Background()
	for _, slot := range []string{"09:00", "10:00", "11:00"} {
		if _, err := svc.Create(ctx, validInput("2099-01-01", slot)); err != nil {
			t.Fatal(err)
		}
	}
	_, page, err := svc.List(ctx, models.BookingFilter{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if page.Current != 1 || page.Total != 2 || page.Count != 2 || page.TotalCount != 3 {
		t.Errorf("pagination = %+v", page)
	}

	_, page, err = svc.List(ctx, models.BookingFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Count != 3 || page.Total != 1 {
		t.Errorf("default limit pagination = %+v", page)
	}
}

func TestListClampsOversizedLimit(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	for _, slot := range []string{"09:00", "10:00"} {
		if _, err := svc.Create(ctx, validInput("2099-01-01", slot)); err != nil {
			t.Fatal(err)
		}
	}
	bookings, page, err := svc.List(ctx, models.BookingFilter{Page: 1, Limit: 1 << 40})
	if err != nil {
		t.Fatal(err)
	}
	if len(bookings) != 2 || page.Total != 1 {
		t.Errorf("pagination = %+v, got %d bookings", page, len(bookings))
	}
}
