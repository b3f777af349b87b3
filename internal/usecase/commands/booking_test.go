//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/Arman-Arzoo/headout-backend/internal/domain/booking"
	"github.com/Arman-Arzoo/headout-backend/internal/domain/experience"
	"github.com/Arman-Arzoo/headout-backend/internal/domain/pricing"
	"github.com/Arman-Arzoo/headout-backend/internal/infra"
	"github.com/Arman-Arzoo/headout-backend/internal/infra/db"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/apperr"
	"github.com/Arman-Arzoo/headout-backend/internal/usecase/commands"
	"github.com/Arman-Arzoo/headout-backend/internal/usecase/queries"
	"github.com/Arman-Arzoo/headout-backend/internal/usecase/shared"
	queriesmock "github.com/Arman-Arzoo/headout-backend/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// ----------------------------------------------------------------------------
// fakes
// ----------------------------------------------------------------------------

type fakeReads struct {
	experience *experience.Experience
	expErr     error
	plan       *pricing.Plan
	planErr    error
	override   *pricing.Override
	used       int32
	booking    *booking.Booking
	bookingErr error

	usedCapacityCalls int
}

func (f *fakeReads) BookableExperience(_ context.Context, _ db.DBTX, _ uuid.UUID) (*experience.Experience, error) {
	if f.expErr != nil {
		return nil, f.expErr
	}
	return f.experience, nil
}

func (f *fakeReads) BookablePlan(_ context.Context, _ db.DBTX, _, _ uuid.UUID) (*pricing.Plan, error) {
	if f.planErr != nil {
		return nil, f.planErr
	}
	return f.plan, nil
}

func (f *fakeReads) Override(_ context.Context, _ db.DBTX, _ uuid.UUID, _ time.Time) (*pricing.Override, error) {
	return f.override, nil
}

func (f *fakeReads) UsedCapacity(_ context.Context, _ db.DBTX, _ uuid.UUID, _ time.Time) (int32, error) {
	f.usedCapacityCalls++
	return f.used, nil
}

func (f *fakeReads) BookingByID(_ context.Context, _ db.DBTX, _ uuid.UUID) (*booking.Booking, error) {
	if f.bookingErr != nil {
		return nil, f.bookingErr
	}
	return f.booking, nil
}

type fakeBookingRepo struct {
	created       []*booking.Booking
	statusUpdates map[uuid.UUID]booking.Status
}

func (f *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	f.created = append(f.created, b)
	return b.ID(), nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status booking.Status) error {
	if f.statusUpdates == nil {
		f.statusUpdates = map[uuid.UUID]booking.Status{}
	}
	f.statusUpdates[id] = status
	return nil
}

type fakeTx struct {
	reads    *fakeReads
	bookings *fakeBookingRepo
}

func (t *fakeTx) Bookings() shared.BookingRepository { return t.bookings }
func (t *fakeTx) Reads() shared.CommandReads         { return t.reads }
func (t *fakeTx) DB() db.DBTX                        { return nil }

type fakeUoW struct {
	tx            *fakeTx
	admissionKeys []shared.AdmissionKey
}

func (u *fakeUoW) WithinAdmission(ctx context.Context, key shared.AdmissionKey, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.admissionKeys = append(u.admissionKeys, key)
	return fn(ctx, u.tx)
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

// ----------------------------------------------------------------------------
// suite
// ----------------------------------------------------------------------------

type BookingCommandsTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockBookingQueries
	reads       *fakeReads
	repo        *fakeBookingRepo
	uow         *fakeUoW
	commands    commands.BookingCommands

	experienceID uuid.UUID
	pricingID    uuid.UUID
	userID       uuid.UUID
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)

	s.experienceID = uuid.New()
	s.pricingID = uuid.New()
	s.userID = uuid.New()

	s.reads = &fakeReads{
		experience: experience.Reconstruct(s.experienceID, uuid.New(), experience.StatusPublished, nil),
	}
	s.repo = &fakeBookingRepo{}
	s.uow = &fakeUoW{tx: &fakeTx{reads: s.reads, bookings: s.repo}}
	s.commands = commands.NewBookingCommands(s.uow, s.mockQueries)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// monday is a fixed future date used across cases that need a known weekday.
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func (s *BookingCommandsTestSuite) perPersonPlan(unitPrice int64) *pricing.Plan {
	plan, err := pricing.NewPerPersonPlan(s.pricingID, s.experienceID, unitPrice, "USD", nil, nil)
	require.NoError(s.T(), err)
	return plan
}

func (s *BookingCommandsTestSuite) hourlyPlan(slotPrice int64, capacity int32, startTime string) *pricing.Plan {
	weekday := monday.Weekday()
	slot := pricing.NewSlot(pricing.SlotSpec{
		ID:        uuid.New(),
		Weekday:   &weekday,
		StartTime: &startTime,
		Price:     &slotPrice,
		Capacity:  &capacity,
	})
	plan, err := pricing.NewHourlyPlan(s.pricingID, s.experienceID, 0, "USD", []pricing.Slot{slot})
	require.NoError(s.T(), err)
	return plan
}

func (s *BookingCommandsTestSuite) params(participants int32, startTime *string) commands.CreateBookingParams {
	return commands.CreateBookingParams{
		ExperienceID: s.experienceID,
		PricingID:    s.pricingID,
		Participants: participants,
		Date:         monday,
		StartTime:    startTime,
	}
}

func (s *BookingCommandsTestSuite) expectViewRead() {
	s.mockQueries.EXPECT().
		GetByID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
			return &queries.BookingView{ID: id}, nil
		})
}

func (s *BookingCommandsTestSuite) TestCreateBooking_PerPerson() {
	s.reads.plan = s.perPersonPlan(5000)
	s.expectViewRead()

	view, err := s.commands.CreateBooking(context.Background(), s.params(3, nil), s.userID)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), view)

	require.Len(s.T(), s.repo.created, 1)
	created := s.repo.created[0]
	require.Equal(s.T(), view.ID, created.ID())
	require.Equal(s.T(), s.userID, created.UserID())
	require.Equal(s.T(), booking.StatusPending, created.Status())
	require.Equal(s.T(), pricing.KindPerPerson, created.PricingKind())
	require.Equal(s.T(), int64(5000), created.UnitPrice())
	require.Equal(s.T(), int64(15000), created.TotalAmount())

	// the admission lock key is the (pricing, date) bucket
	require.Len(s.T(), s.uow.admissionKeys, 1)
	require.Equal(s.T(), s.pricingID, s.uow.admissionKeys[0].PricingID)
	require.Equal(s.T(), monday, s.uow.admissionKeys[0].Date)
}

func (s *BookingCommandsTestSuite) TestCreateBooking_ExperienceNotFound() {
	s.reads.expErr = infra.WrapRepoErr("experience not found", nil, infra.KindNotFound)

	_, err := s.commands.CreateBooking(context.Background(), s.params(1, nil), s.userID)
	require.True(s.T(), apperr.IsNotFound(err))
	require.Equal(s.T(), "experience not found", apperr.Message(err))
	require.Empty(s.T(), s.repo.created)
}

func (s *BookingCommandsTestSuite) TestCreateBooking_PricingNotFound() {
	s.reads.planErr = infra.WrapRepoErr("pricing not found", nil, infra.KindNotFound)

	_, err := s.commands.CreateBooking(context.Background(), s.params(1, nil), s.userID)
	require.True(s.T(), apperr.IsNotFound(err))
	require.Equal(s.T(), "pricing not found", apperr.Message(err))
}

func (s *BookingCommandsTestSuite) TestCreateBooking_DateOutsideWindow() {
	validTo := monday.AddDate(0, 0, -1)
	plan, err := pricing.Reconstruct(pricing.PlanSpec{
		ID: s.pricingID, ExperienceID: s.experienceID,
		Kind: pricing.KindPerPerson, BasePrice: 5000, Currency: "USD",
		ValidTo: &validTo, Active: true,
	})
	require.NoError(s.T(), err)
	s.reads.plan = plan

	_, err = s.commands.CreateBooking(context.Background(), s.params(1, nil), s.userID)
	require.True(s.T(), apperr.IsInvalidRequest(err))
	require.Equal(s.T(), "pricing not valid for selected date", apperr.Message(err))
}

func (s *BookingCommandsTestSuite) TestCreateBooking_BlockedDate() {
	s.reads.plan = s.perPersonPlan(5000)
	s.reads.override = &pricing.Override{
		ExperienceID: s.experienceID,
		Date:         monday,
		Blocked:      true,
	}

	_, err := s.commands.CreateBooking(context.Background(), s.params(1, nil), s.userID)
	require.True(s.T(), apperr.IsInvalidRequest(err))
	require.Equal(s.T(), "experience not available on this date", apperr.Message(err))
	require.Empty(s.T(), s.repo.created)
}

func (s *BookingCommandsTestSuite) TestCreateBooking_CapacityExhausted() {
	start := "10:00"
	s.reads.plan = s.hourlyPlan(2000, 5, start)
	s.reads.used = 5

	_, err := s.commands.CreateBooking(context.Background(), s.params(1, &start), s.userID)
	require.True(s.T(), apperr.IsInvalidRequest(err))
	require.Equal(s.T(), "not enough capacity available", apperr.Message(err))
	require.Empty(s.T(), s.repo.created)
}

func (s *BookingCommandsTestSuite) TestCreateBooking_CapacityExactFit() {
	start := "10:00"
	s.reads.plan = s.hourlyPlan(2000, 5, start)
	s.reads.used = 3
	s.expectViewRead()

	view, err := s.commands.CreateBooking(context.Background(), s.params(2, &start), s.userID)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), view)

	created := s.repo.created[0]
	require.Equal(s.T(), int64(2000), created.UnitPrice())
	require.Equal(s.T(), int64(4000), created.TotalAmount())
}

func (s *BookingCommandsTestSuite) TestCreateBooking_OverrideCapacityWins() {
	start := "10:00"
	s.reads.plan = s.hourlyPlan(2000, 5, start)
	raised := int32(8)
	s.reads.override = &pricing.Override{
		ExperienceID:     s.experienceID,
		Date:             monday,
		CapacityOverride: &raised,
	}
	s.reads.used = 6
	s.expectViewRead()

	_, err := s.commands.CreateBooking(context.Background(), s.params(2, &start), s.userID)
	require.NoError(s.T(), err)
}

func (s *BookingCommandsTestSuite) TestCreateBooking_PerPersonSkipsCapacityRead() {
	s.reads.plan = s.perPersonPlan(5000)
	s.expectViewRead()

	_, err := s.commands.CreateBooking(context.Background(), s.params(2, nil), s.userID)
	require.NoError(s.T(), err)
	require.Zero(s.T(), s.reads.usedCapacityCalls)
}

func (s *BookingCommandsTestSuite) TestCreateBooking_NoMatchingSlot() {
	start := "23:00"
	s.reads.plan = s.hourlyPlan(2000, 5, "10:00")

	_, err := s.commands.CreateBooking(context.Background(), s.params(1, &start), s.userID)
	require.True(s.T(), apperr.IsInvalidRequest(err))
	require.Equal(s.T(), "no pricing available for selected time", apperr.Message(err))
}

// ----------------------------------------------------------------------------
// lifecycle
// ----------------------------------------------------------------------------

func (s *BookingCommandsTestSuite) storedBooking(status booking.Status) *booking.Booking {
	now := time.Now().UTC()
	return booking.Reconstruct(
		uuid.New(), s.userID, s.experienceID, s.pricingID,
		monday, nil, nil, 2,
		pricing.KindPerPerson, 5000, 10000, "USD",
		status, now, now,
	)
}

func (s *BookingCommandsTestSuite) TestUpdateStatus_PendingToConfirmed() {
	b := s.storedBooking(booking.StatusPending)
	s.reads.booking = b
	s.expectViewRead()

	_, err := s.commands.UpdateStatus(context.Background(), b.ID(), "CONFIRMED")
	require.NoError(s.T(), err)
	require.Equal(s.T(), booking.StatusConfirmed, s.repo.statusUpdates[b.ID()])
}

func (s *BookingCommandsTestSuite) TestUpdateStatus_InvalidStatus() {
	b := s.storedBooking(booking.StatusPending)
	s.reads.booking = b

	_, err := s.commands.UpdateStatus(context.Background(), b.ID(), "SHIPPED")
	require.True(s.T(), apperr.IsInvalidRequest(err))
}

func (s *BookingCommandsTestSuite) TestUpdateStatus_IllegalTransition() {
	b := s.storedBooking(booking.StatusCancelled)
	s.reads.booking = b

	_, err := s.commands.UpdateStatus(context.Background(), b.ID(), "CONFIRMED")
	require.True(s.T(), apperr.IsInvalidRequest(err))
	require.Empty(s.T(), s.repo.statusUpdates)
}

func (s *BookingCommandsTestSuite) TestUpdateStatus_BookingNotFound() {
	s.reads.bookingErr = infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)

	_, err := s.commands.UpdateStatus(context.Background(), uuid.New(), "CONFIRMED")
	require.True(s.T(), apperr.IsNotFound(err))
}

func (s *BookingCommandsTestSuite) TestCancel() {
	b := s.storedBooking(booking.StatusConfirmed)
	s.reads.booking = b
	s.expectViewRead()

	_, err := s.commands.Cancel(context.Background(), b.ID())
	require.NoError(s.T(), err)
	require.Equal(s.T(), booking.StatusCancelled, s.repo.statusUpdates[b.ID()])
}
