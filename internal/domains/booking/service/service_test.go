package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"utabox/config"
	kafkaMocks "utabox/infras/kafka/mocks"
	"utabox/infras/otel/mocks"
	bookingMocks "utabox/internal/domains/booking/mocks"
	"utabox/internal/domains/booking/model"
	"utabox/internal/domains/booking/model/dto"
	"utabox/internal/domains/booking/service"
	hoursMocks "utabox/internal/domains/hours/service/mocks"
	roomMocks "utabox/internal/domains/room/mocks"
	roomModel "utabox/internal/domains/room/model"
	"utabox/shared/cache"
	cacheMocks "utabox/shared/cache/mocks"
	"utabox/shared/constant"
	gDto "utabox/shared/dto"
	"utabox/shared/failure"
	gModel "utabox/shared/model"
)

const (
	testTenantID  = "6f3c1f6a-9a1e-4a12-9a3d-0f2d5d9f1a01"
	testRoomID    = "7a8b2c3d-4e5f-4a6b-8c9d-0e1f2a3b4c5d"
	testRoomID2   = "8b9c3d4e-5f6a-4b7c-9d0e-1f2a3b4c5d6e"
	testBookingID = "9c0d4e5f-6a7b-4c8d-0e1f-2a3b4c5d6e7f"
	testTargetID  = "0d1e5f6a-7b8c-4d9e-1f2a-3b4c5d6e7f8a"
	testUserID    = "staff-1"
)

type bookingFixture struct {
	repo  *bookingMocks.MockBooking
	rooms *roomMocks.MockRoom
	hours *hoursMocks.MockBusinessHours
	cache *cacheMocks.MockRedisCache
	kafka *kafkaMocks.MockClient
	svc   service.Booking
}

func newBookingFixture(t *testing.T) bookingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := bookingFixture{
		repo:  bookingMocks.NewMockBooking(ctrl),
		rooms: roomMocks.NewMockRoom(ctrl),
		hours: hoursMocks.NewMockBusinessHours(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		kafka: kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.rooms, f.hours, cfg, f.cache, f.kafka, mocks.NewOtel())

	// Cache writes and event publishing happen on background goroutines,
	// so they are optional from the test's point of view.
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func (f bookingFixture) expectTransaction() {
	f.repo.EXPECT().
		WithinTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func testContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyTenantID, testTenantID)
	ctx = context.WithValue(ctx, constant.ContextKeyTenantTimezone, "UTC")
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, testUserID)

	return ctx
}

func activeRoom(id string, rate float64) roomModel.Room {
	return roomModel.Room{
		ID:         id,
		TenantID:   testTenantID,
		Name:       "Room " + id[:4],
		Capacity:   6,
		HourlyRate: decimal.NewFromFloat(rate),
		Active:     true,
	}
}

func confirmedBooking(id, roomID string, start, end time.Time) model.Booking {
	return model.Booking{
		ID:         id,
		TenantID:   testTenantID,
		RoomID:     roomID,
		GuestName:  "Aiko",
		StartTime:  start,
		EndTime:    end,
		Status:     constant.BookingStatusConfirmed,
		TotalPrice: decimal.NewFromInt(25),
		Metadata:   gModel.Metadata{CreatedBy: testUserID, ModifiedBy: testUserID},
	}
}

func futureSlot(hours, durationMinutes int) (time.Time, time.Time) {
	start := time.Now().UTC().Truncate(time.Hour).Add(time.Duration(hours) * time.Hour)
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	return start, end
}

func TestBookingService_Create(t *testing.T) {
	t.Run("successful creation prices the interval", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 90)

		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID, 25), nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", start, end).Return(true, nil)
		f.expectTransaction()
		f.rooms.EXPECT().Lock(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().FindOverlapping(gomock.Any(), testTenantID, testRoomID, start, end).Return(nil, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Create(testContext(), dto.CreateBookingRequest{
			RoomID:    testRoomID,
			GuestName: "Aiko",
			StartTime: start.Format(time.RFC3339),
			EndTime:   end.Format(time.RFC3339),
			Confirmed: true,
		})

		assert.NoError(t, err)
		assert.Equal(t, "37.50", res.TotalPrice)
		assert.Equal(t, constant.BookingStatusConfirmed, res.Status)
	})

	t.Run("missing tenant context", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)

		_, err := f.svc.Create(context.Background(), dto.CreateBookingRequest{
			RoomID:    testRoomID,
			GuestName: "Aiko",
			StartTime: start.Format(time.RFC3339),
			EndTime:   end.Format(time.RFC3339),
		})

		assert.ErrorIs(t, err, failure.TenantNotFound)
	})

	t.Run("end not after start", func(t *testing.T) {
		f := newBookingFixture(t)

		start, _ := futureSlot(48, 60)

		_, err := f.svc.Create(testContext(), dto.CreateBookingRequest{
			RoomID:    testRoomID,
			GuestName: "Aiko",
			StartTime: start.Format(time.RFC3339),
			EndTime:   start.Format(time.RFC3339),
		})

		assert.ErrorIs(t, err, failure.InvalidInterval)
	})

	t.Run("start in the past", func(t *testing.T) {
		f := newBookingFixture(t)

		start := time.Now().UTC().Add(-2 * time.Hour)
		end := start.Add(time.Hour)

		_, err := f.svc.Create(testContext(), dto.CreateBookingRequest{
			RoomID:    testRoomID,
			GuestName: "Aiko",
			StartTime: start.Format(time.RFC3339),
			EndTime:   end.Format(time.RFC3339),
		})

		assert.ErrorIs(t, err, failure.IntervalInPast)
	})

	t.Run("room not found", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)

		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)

		_, err := f.svc.Create(testContext(), dto.CreateBookingRequest{
			RoomID:    testRoomID,
			GuestName: "Aiko",
			StartTime: start.Format(time.RFC3339),
			EndTime:   end.Format(time.RFC3339),
		})

		assert.ErrorIs(t, err, failure.RoomNotFound)
	})

	t.Run("room inactive", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)

		room := activeRoom(testRoomID, 25)
		room.Active = false

		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)

		_, err := f.svc.Create(testContext(), dto.CreateBookingRequest{
			RoomID:    testRoomID,
			GuestName: "Aiko",
			StartTime: start.Format(time.RFC3339),
			EndTime:   end.Format(time.RFC3339),
		})

		assert.ErrorIs(t, err, failure.RoomInactive)
	})

	t.Run("outside business hours", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)

		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID, 25), nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", start, end).Return(false, nil)

		_, err := f.svc.Create(testContext(), dto.CreateBookingRequest{
			RoomID:    testRoomID,
			GuestName: "Aiko",
			StartTime: start.Format(time.RFC3339),
			EndTime:   end.Format(time.RFC3339),
		})

		assert.ErrorIs(t, err, failure.OutsideBusinessHours)
	})

	t.Run("overlapping booking blocks the slot", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)

		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID, 25), nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", start, end).Return(true, nil)
		f.expectTransaction()
		f.rooms.EXPECT().Lock(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().
			FindOverlapping(gomock.Any(), testTenantID, testRoomID, start, end).
			Return([]model.Booking{confirmedBooking("other", testRoomID, start, end)}, nil)

		_, err := f.svc.Create(testContext(), dto.CreateBookingRequest{
			RoomID:    testRoomID,
			GuestName: "Aiko",
			StartTime: start.Format(time.RFC3339),
			EndTime:   end.Format(time.RFC3339),
		})

		assert.ErrorIs(t, err, failure.TimeSlotConflict)
	})

	t.Run("back to back bookings are allowed", func(t *testing.T) {
		f := newBookingFixture(t)

		// The new booking starts exactly when an existing one ends; the
		// overlap query treats intervals as half-open, so nothing matches.
		start, end := futureSlot(49, 60)

		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID, 25), nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", start, end).Return(true, nil)
		f.expectTransaction()
		f.rooms.EXPECT().Lock(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().FindOverlapping(gomock.Any(), testTenantID, testRoomID, start, end).Return(nil, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Create(testContext(), dto.CreateBookingRequest{
			RoomID:    testRoomID,
			GuestName: "Aiko",
			StartTime: start.Format(time.RFC3339),
			EndTime:   end.Format(time.RFC3339),
		})

		assert.NoError(t, err)
	})

	t.Run("storage trouble surfaces as unavailable", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)

		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID, 25), nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", start, end).Return(true, nil)
		f.repo.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		_, err := f.svc.Create(testContext(), dto.CreateBookingRequest{
			RoomID:    testRoomID,
			GuestName: "Aiko",
			StartTime: start.Format(time.RFC3339),
			EndTime:   end.Format(time.RFC3339),
		})

		assert.ErrorIs(t, err, failure.StorageUnavailable)
	})
}

func TestBookingService_Cancel(t *testing.T) {
	start, end := futureSlot(48, 60)

	t.Run("successful cancel", func(t *testing.T) {
		f := newBookingFixture(t)

		// The booking is read once up front and once more under the row
		// lock before the status flips.
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(testBookingID, testRoomID, start, end), nil).Times(2)
		f.expectTransaction()
		f.repo.EXPECT().Lock(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Cancel(testContext(), testBookingID))
	})

	t.Run("racing cancel finds the row already cancelled", func(t *testing.T) {
		f := newBookingFixture(t)

		cancelled := confirmedBooking(testBookingID, testRoomID, start, end)
		cancelled.Status = constant.BookingStatusCancelled

		// The unlocked read sees a confirmed booking, but by the time the
		// row lock is held another cancel has won. No update happens.
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(testBookingID, testRoomID, start, end), nil)
		f.expectTransaction()
		f.repo.EXPECT().Lock(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)

		assert.ErrorIs(t, f.svc.Cancel(testContext(), testBookingID), failure.AlreadyCancelled)
	})

	t.Run("cancel of cancelled booking fails", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := confirmedBooking(testBookingID, testRoomID, start, end)
		booking.Status = constant.BookingStatusCancelled

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		assert.ErrorIs(t, f.svc.Cancel(testContext(), testBookingID), failure.AlreadyCancelled)
	})

	t.Run("cancel of completed booking fails", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := confirmedBooking(testBookingID, testRoomID, start, end)
		booking.Status = constant.BookingStatusCompleted

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		assert.ErrorIs(t, f.svc.Cancel(testContext(), testBookingID), failure.BookingCompleted)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		assert.ErrorIs(t, f.svc.Cancel(testContext(), testBookingID), failure.BookingNotFound)
	})
}

func TestBookingService_Move(t *testing.T) {
	t.Run("move to another room reprices at its rate", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(testBookingID, testRoomID, start, end), nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID2, 40), nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", start, end).Return(true, nil)
		f.expectTransaction()
		f.rooms.EXPECT().Lock(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().FindOverlapping(gomock.Any(), testTenantID, testRoomID2, start, end, testBookingID).Return(nil, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Move(testContext(), dto.MoveBookingRequest{NewRoomID: testRoomID2}, testBookingID)

		assert.NoError(t, err)
		assert.Equal(t, testRoomID2, res.RoomID)
		assert.Equal(t, "40.00", res.TotalPrice)
	})

	t.Run("move into an occupied slot fails", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)
		newStart, newEnd := futureSlot(50, 60)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(testBookingID, testRoomID, start, end), nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID, 25), nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", newStart, newEnd).Return(true, nil)
		f.expectTransaction()
		f.rooms.EXPECT().Lock(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().
			FindOverlapping(gomock.Any(), testTenantID, testRoomID, newStart, newEnd, testBookingID).
			Return([]model.Booking{confirmedBooking("other", testRoomID, newStart, newEnd)}, nil)

		_, err := f.svc.Move(testContext(), dto.MoveBookingRequest{
			NewStartTime: newStart.Format(time.RFC3339),
			NewEndTime:   newEnd.Format(time.RFC3339),
		}, testBookingID)

		assert.ErrorIs(t, err, failure.TimeSlotConflict)
	})

	t.Run("noop move is rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(testBookingID, testRoomID, start, end), nil)

		_, err := f.svc.Move(testContext(), dto.MoveBookingRequest{}, testBookingID)

		assert.Error(t, err)
	})

	t.Run("moving a cancelled booking fails", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)

		booking := confirmedBooking(testBookingID, testRoomID, start, end)
		booking.Status = constant.BookingStatusCancelled

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.svc.Move(testContext(), dto.MoveBookingRequest{NewRoomID: testRoomID2}, testBookingID)

		assert.ErrorIs(t, err, failure.AlreadyCancelled)
	})
}

func TestBookingService_Swap(t *testing.T) {
	t.Run("swap exchanges slots atomically", func(t *testing.T) {
		f := newBookingFixture(t)

		startA, endA := futureSlot(48, 60)
		startB, endB := futureSlot(52, 60)

		bookingA := confirmedBooking(testBookingID, testRoomID, startA, endA)
		bookingB := confirmedBooking(testTargetID, testRoomID2, startB, endB)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingA, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingB, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID2, 40), nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID, 25), nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", startB, endB).Return(true, nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", startA, endA).Return(true, nil)
		f.expectTransaction()
		f.rooms.EXPECT().Lock(gomock.Any(), gomock.Any()).Return(nil)

		// Both placements ignore the swapping pair when scanning for
		// conflicts; each books the slot the other vacates.
		f.repo.EXPECT().
			FindOverlapping(gomock.Any(), testTenantID, testRoomID2, startB, endB, testBookingID, testTargetID).
			Return(nil, nil)
		f.repo.EXPECT().
			FindOverlapping(gomock.Any(), testTenantID, testRoomID, startA, endA, testBookingID, testTargetID).
			Return(nil, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		res, err := f.svc.Move(testContext(), dto.MoveBookingRequest{
			TargetBookingID: testTargetID,
			NewRoomID:       testRoomID2,
			NewStartTime:    startB.Format(time.RFC3339),
			NewEndTime:      endB.Format(time.RFC3339),
		}, testBookingID)

		assert.NoError(t, err)
		assert.Equal(t, testRoomID2, res.RoomID)
		assert.Equal(t, "40.00", res.TotalPrice)
	})

	t.Run("failed half leaves both bookings untouched", func(t *testing.T) {
		f := newBookingFixture(t)

		startA, endA := futureSlot(48, 60)
		startB, endB := futureSlot(52, 60)

		bookingA := confirmedBooking(testBookingID, testRoomID, startA, endA)
		bookingB := confirmedBooking(testTargetID, testRoomID2, startB, endB)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingA, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingB, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID2, 40), nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID, 25), nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", startB, endB).Return(true, nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", startA, endA).Return(true, nil)
		f.expectTransaction()
		f.rooms.EXPECT().Lock(gomock.Any(), gomock.Any()).Return(nil)

		// The first placement collides; no Update is ever issued.
		f.repo.EXPECT().
			FindOverlapping(gomock.Any(), testTenantID, testRoomID2, startB, endB, testBookingID, testTargetID).
			Return([]model.Booking{confirmedBooking("other", testRoomID2, startB, endB)}, nil)

		_, err := f.svc.Move(testContext(), dto.MoveBookingRequest{
			TargetBookingID: testTargetID,
			NewRoomID:       testRoomID2,
			NewStartTime:    startB.Format(time.RFC3339),
			NewEndTime:      endB.Format(time.RFC3339),
		}, testBookingID)

		assert.ErrorIs(t, err, failure.TimeSlotConflict)
	})

	t.Run("target lands on its own destination and is repriced there", func(t *testing.T) {
		f := newBookingFixture(t)

		startA, endA := futureSlot(48, 60)
		startB, endB := futureSlot(52, 60)
		targetStart, targetEnd := futureSlot(56, 90)

		bookingA := confirmedBooking(testBookingID, testRoomID, startA, endA)
		bookingB := confirmedBooking(testTargetID, testRoomID2, startB, endB)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingA, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingB, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID2, 40), nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID, 25), nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", startB, endB).Return(true, nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", targetStart, targetEnd).Return(true, nil)
		f.expectTransaction()
		f.rooms.EXPECT().Lock(gomock.Any(), gomock.Any()).Return(nil)

		// The target is scheduled at the slot the request names, not the
		// one booking A vacates.
		f.repo.EXPECT().
			FindOverlapping(gomock.Any(), testTenantID, testRoomID2, startB, endB, testBookingID, testTargetID).
			Return(nil, nil)
		f.repo.EXPECT().
			FindOverlapping(gomock.Any(), testTenantID, testRoomID, targetStart, targetEnd, testBookingID, testTargetID).
			Return(nil, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				price, ok := fields[model.FieldTotalPrice].(decimal.Decimal)
				assert.True(t, ok)
				// 90 minutes at the destination room's 25/h rate.
				assert.Equal(t, "37.50", price.StringFixed(2))
				assert.Equal(t, targetStart, fields[model.FieldStartTime])

				return nil
			})

		res, err := f.svc.Move(testContext(), dto.MoveBookingRequest{
			TargetBookingID:    testTargetID,
			NewRoomID:          testRoomID2,
			NewStartTime:       startB.Format(time.RFC3339),
			NewEndTime:         endB.Format(time.RFC3339),
			TargetNewRoomID:    testRoomID,
			TargetNewStartTime: targetStart.Format(time.RFC3339),
			TargetNewEndTime:   targetEnd.Format(time.RFC3339),
		}, testBookingID)

		assert.NoError(t, err)
		assert.Equal(t, testRoomID2, res.RoomID)
	})

	t.Run("target destination outside opening hours fails", func(t *testing.T) {
		f := newBookingFixture(t)

		startA, endA := futureSlot(48, 60)
		startB, endB := futureSlot(52, 60)
		targetStart, targetEnd := futureSlot(56, 60)

		bookingA := confirmedBooking(testBookingID, testRoomID, startA, endA)
		bookingB := confirmedBooking(testTargetID, testRoomID2, startB, endB)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingA, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingB, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID2, 40), nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID, 25), nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", startB, endB).Return(true, nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", targetStart, targetEnd).Return(false, nil)

		_, err := f.svc.Move(testContext(), dto.MoveBookingRequest{
			TargetBookingID:    testTargetID,
			NewRoomID:          testRoomID2,
			NewStartTime:       startB.Format(time.RFC3339),
			NewEndTime:         endB.Format(time.RFC3339),
			TargetNewRoomID:    testRoomID,
			TargetNewStartTime: targetStart.Format(time.RFC3339),
			TargetNewEndTime:   targetEnd.Format(time.RFC3339),
		}, testBookingID)

		assert.ErrorIs(t, err, failure.OutsideBusinessHours)
	})

	t.Run("swap destinations colliding in one room fail fast", func(t *testing.T) {
		f := newBookingFixture(t)

		startA, endA := futureSlot(48, 60)
		startB, endB := futureSlot(52, 60)

		bookingA := confirmedBooking(testBookingID, testRoomID, startA, endA)
		bookingB := confirmedBooking(testTargetID, testRoomID, startB, endB)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingA, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingB, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID, 25), nil).Times(2)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(2)

		// Booking A asks for a slot overlapping the one it vacates while
		// staying in the same room, so the pair cannot coexist.
		overlapStart := startA.Add(30 * time.Minute)
		overlapEnd := overlapStart.Add(time.Hour)

		_, err := f.svc.Move(testContext(), dto.MoveBookingRequest{
			TargetBookingID: testTargetID,
			NewStartTime:    overlapStart.Format(time.RFC3339),
			NewEndTime:      overlapEnd.Format(time.RFC3339),
		}, testBookingID)

		assert.ErrorIs(t, err, failure.TimeSlotConflict)
	})

	t.Run("swap with itself is rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		startA, endA := futureSlot(48, 60)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(testBookingID, testRoomID, startA, endA), nil)

		_, err := f.svc.Move(testContext(), dto.MoveBookingRequest{TargetBookingID: testBookingID}, testBookingID)

		assert.Error(t, err)
	})
}

func TestBookingService_Resize(t *testing.T) {
	t.Run("extension reprices and checks conflicts", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)
		newEnd := end.Add(time.Hour)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(testBookingID, testRoomID, start, end), nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", start, newEnd).Return(true, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID, 25), nil)
		f.expectTransaction()
		f.rooms.EXPECT().Lock(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().FindOverlapping(gomock.Any(), testTenantID, testRoomID, start, newEnd, testBookingID).Return(nil, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Resize(testContext(), dto.ResizeBookingRequest{NewEndTime: newEnd.Format(time.RFC3339)}, testBookingID)

		assert.NoError(t, err)
		assert.Equal(t, "50.00", res.TotalPrice)
	})

	t.Run("extension into an occupied slot fails", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)
		newEnd := end.Add(time.Hour)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(testBookingID, testRoomID, start, end), nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", start, newEnd).Return(true, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID, 25), nil)
		f.expectTransaction()
		f.rooms.EXPECT().Lock(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().
			FindOverlapping(gomock.Any(), testTenantID, testRoomID, start, newEnd, testBookingID).
			Return([]model.Booking{confirmedBooking("other", testRoomID, end, newEnd)}, nil)

		_, err := f.svc.Resize(testContext(), dto.ResizeBookingRequest{NewEndTime: newEnd.Format(time.RFC3339)}, testBookingID)

		assert.ErrorIs(t, err, failure.TimeSlotConflict)
	})

	t.Run("moving the start earlier reprices the whole interval", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)
		newStart := start.Add(-time.Hour)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(testBookingID, testRoomID, start, end), nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID, 25), nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", newStart, end).Return(true, nil)
		f.expectTransaction()
		f.rooms.EXPECT().Lock(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().FindOverlapping(gomock.Any(), testTenantID, testRoomID, newStart, end, testBookingID).Return(nil, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Resize(testContext(), dto.ResizeBookingRequest{
			NewStartTime: newStart.Format(time.RFC3339),
			NewEndTime:   end.Format(time.RFC3339),
		}, testBookingID)

		assert.NoError(t, err)
		assert.Equal(t, newStart.Format(time.RFC3339), res.StartTime)
		assert.Equal(t, "50.00", res.TotalPrice)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(testBookingID, testRoomID, start, end), nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID, 25), nil)

		_, err := f.svc.Resize(testContext(), dto.ResizeBookingRequest{NewEndTime: start.Format(time.RFC3339)}, testBookingID)

		assert.ErrorIs(t, err, failure.InvalidInterval)
	})
}

func TestBookingService_Update(t *testing.T) {
	t.Run("guest details change without placement checks", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(testBookingID, testRoomID, start, end), nil)
		f.expectTransaction()
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Update(testContext(), dto.UpdateBookingRequest{GuestName: "Haruto"}, testBookingID)

		assert.NoError(t, err)
		assert.Equal(t, "Haruto", res.GuestName)
	})

	t.Run("interval change runs placement checks", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)
		newStart := start.Add(time.Hour)
		newEnd := end.Add(time.Hour)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(testBookingID, testRoomID, start, end), nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", newStart, newEnd).Return(true, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID, 25), nil)
		f.expectTransaction()
		f.rooms.EXPECT().Lock(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().FindOverlapping(gomock.Any(), testTenantID, testRoomID, newStart, newEnd, testBookingID).Return(nil, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Update(testContext(), dto.UpdateBookingRequest{
			StartTime: newStart.Format(time.RFC3339),
			EndTime:   newEnd.Format(time.RFC3339),
		}, testBookingID)

		assert.NoError(t, err)
		assert.Equal(t, "25.00", res.TotalPrice)
	})

	t.Run("room change reprices at the new room's rate", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(testBookingID, testRoomID, start, end), nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(testRoomID2, 40), nil)
		f.hours.EXPECT().IsWithinOpenHours(gomock.Any(), testTenantID, "UTC", start, end).Return(true, nil)
		f.expectTransaction()
		f.rooms.EXPECT().Lock(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().FindOverlapping(gomock.Any(), testTenantID, testRoomID2, start, end, testBookingID).Return(nil, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Update(testContext(), dto.UpdateBookingRequest{RoomID: testRoomID2}, testBookingID)

		assert.NoError(t, err)
		assert.Equal(t, testRoomID2, res.RoomID)
		assert.Equal(t, "40.00", res.TotalPrice)
	})

	t.Run("inactive room rejects the update before interval checks", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)

		room := activeRoom(testRoomID2, 40)
		room.Active = false

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(testBookingID, testRoomID, start, end), nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)

		// The request also carries a backwards interval; the room's state
		// is the error that surfaces.
		_, err := f.svc.Update(testContext(), dto.UpdateBookingRequest{
			RoomID:    testRoomID2,
			StartTime: end.Format(time.RFC3339),
			EndTime:   start.Format(time.RFC3339),
		}, testBookingID)

		assert.ErrorIs(t, err, failure.RoomInactive)
	})

	t.Run("updating a completed booking fails", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)

		booking := confirmedBooking(testBookingID, testRoomID, start, end)
		booking.Status = constant.BookingStatusCompleted

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.svc.Update(testContext(), dto.UpdateBookingRequest{GuestName: "Haruto"}, testBookingID)

		assert.ErrorIs(t, err, failure.BookingCompleted)
	})
}

func TestBookingService_Get(t *testing.T) {
	t.Run("unknown booking", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(testContext(), testBookingID)

		assert.ErrorIs(t, err, failure.BookingNotFound)
	})

	t.Run("found booking round-trips", func(t *testing.T) {
		f := newBookingFixture(t)

		start, end := futureSlot(48, 60)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(testBookingID, testRoomID, start, end), nil)

		res, err := f.svc.Get(testContext(), testBookingID)

		assert.NoError(t, err)
		assert.Equal(t, testBookingID, res.ID)
		assert.Equal(t, constant.BookingStatusConfirmed, res.Status)
	})
}
