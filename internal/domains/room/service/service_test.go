package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"utabox/config"
	"utabox/infras/otel/mocks"
	bookingMocks "utabox/internal/domains/booking/mocks"
	roomMocks "utabox/internal/domains/room/mocks"
	"utabox/internal/domains/room/model"
	"utabox/internal/domains/room/model/dto"
	"utabox/internal/domains/room/service"
	tenantMocks "utabox/internal/domains/tenant/mocks"
	tenantModel "utabox/internal/domains/tenant/model"
	"utabox/shared/cache"
	cacheMocks "utabox/shared/cache/mocks"
	"utabox/shared/constant"
	"utabox/shared/failure"
)

const (
	testTenantID = "6f3c1f6a-9a1e-4a12-9a3d-0f2d5d9f1a01"
	testRoomID   = "7a8b2c3d-4e5f-4a6b-8c9d-0e1f2a3b4c5d"
)

type roomFixture struct {
	repo     *roomMocks.MockRoom
	tenants  *tenantMocks.MockTenant
	bookings *bookingMocks.MockBooking
	cache    *cacheMocks.MockRedisCache
	svc      service.Room
}

func newRoomFixture(t *testing.T) roomFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := roomFixture{
		repo:     roomMocks.NewMockRoom(ctrl),
		tenants:  tenantMocks.NewMockTenant(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.tenants, f.bookings, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func testContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyTenantID, testTenantID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, "staff-1")

	return ctx
}

func activeRoom() model.Room {
	return model.Room{
		ID:         testRoomID,
		TenantID:   testTenantID,
		Name:       "Deluxe 1",
		Capacity:   8,
		HourlyRate: decimal.NewFromInt(30),
		Active:     true,
	}
}

func TestRoomService_Create(t *testing.T) {
	req := dto.CreateRoomRequest{
		Name:       "Deluxe 1",
		Category:   "deluxe",
		Capacity:   8,
		HourlyRate: "30.00",
	}

	t.Run("successful creation", func(t *testing.T) {
		f := newRoomFixture(t)

		f.tenants.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tenantModel.Tenant{ID: testTenantID, Active: true, MaxRooms: 10}, nil)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(4, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, room model.Room) error {
				assert.Equal(t, "Deluxe 1", room.Name)
				assert.True(t, room.Active)
				assert.Equal(t, "30", room.HourlyRate.String())

				return nil
			})

		assert.NoError(t, f.svc.Create(testContext(), req))
	})

	t.Run("room limit reached", func(t *testing.T) {
		f := newRoomFixture(t)

		f.tenants.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tenantModel.Tenant{ID: testTenantID, Active: true, MaxRooms: 4}, nil)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(4, nil)

		assert.ErrorIs(t, f.svc.Create(testContext(), req), failure.RoomLimitReached)
	})

	t.Run("no limit configured skips the count", func(t *testing.T) {
		f := newRoomFixture(t)

		f.tenants.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tenantModel.Tenant{ID: testTenantID, Active: true}, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Create(testContext(), req))
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		f := newRoomFixture(t)

		f.tenants.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tenantModel.Tenant{ID: testTenantID, Active: true}, nil)

		bad := req
		bad.HourlyRate = "-5.00"

		assert.Error(t, f.svc.Create(testContext(), bad))
	})

	t.Run("missing tenant context", func(t *testing.T) {
		f := newRoomFixture(t)

		assert.ErrorIs(t, f.svc.Create(context.Background(), req), failure.TenantNotFound)
	})
}

func TestRoomService_Get(t *testing.T) {
	t.Run("found room round-trips", func(t *testing.T) {
		f := newRoomFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil)

		res, err := f.svc.Get(testContext(), testRoomID)

		assert.NoError(t, err)
		assert.Equal(t, testRoomID, res.ID)
		assert.Equal(t, "30.00", res.HourlyRate)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newRoomFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Get(testContext(), testRoomID)

		assert.ErrorIs(t, err, failure.RoomNotFound)
	})
}

func TestRoomService_Update(t *testing.T) {
	t.Run("empty request is rejected", func(t *testing.T) {
		f := newRoomFixture(t)

		assert.Error(t, f.svc.Update(testContext(), dto.UpdateRoomRequest{}, testRoomID))
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newRoomFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Update(testContext(), dto.UpdateRoomRequest{Name: "Deluxe 2"}, testRoomID)

		assert.ErrorIs(t, err, failure.RoomNotFound)
	})

	t.Run("successful rename", func(t *testing.T) {
		f := newRoomFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Update(testContext(), dto.UpdateRoomRequest{Name: "Deluxe 2"}, testRoomID))
	})
}

func TestRoomService_Deactivate(t *testing.T) {
	t.Run("successful deactivation", func(t *testing.T) {
		f := newRoomFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil)
		f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, false, fields[model.FieldActive])

				return nil
			})

		assert.NoError(t, f.svc.Deactivate(testContext(), testRoomID))
	})

	t.Run("upcoming bookings block deactivation", func(t *testing.T) {
		f := newRoomFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil)
		f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		assert.ErrorIs(t, f.svc.Deactivate(testContext(), testRoomID), failure.RoomHasActiveBookings)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newRoomFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		assert.ErrorIs(t, f.svc.Deactivate(testContext(), testRoomID), failure.RoomNotFound)
	})

	t.Run("booking lookup failure", func(t *testing.T) {
		f := newRoomFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil)
		f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("connection refused"))

		assert.ErrorIs(t, f.svc.Deactivate(testContext(), testRoomID), failure.StorageUnavailable)
	})
}
