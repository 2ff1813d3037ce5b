package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"utabox/config"
	"utabox/infras/otel/mocks"
	hoursMocks "utabox/internal/domains/hours/mocks"
	"utabox/internal/domains/hours/model"
	"utabox/internal/domains/hours/model/dto"
	"utabox/internal/domains/hours/service"
	cacheMocks "utabox/shared/cache/mocks"
	"utabox/shared/constant"
	"utabox/shared/failure"
)

const testTenantID = "6f3c1f6a-9a1e-4a12-9a3d-0f2d5d9f1a01"

type hoursFixture struct {
	repo  *hoursMocks.MockBusinessHours
	cache *cacheMocks.MockRedisCache
	svc   service.BusinessHours
}

func newHoursFixture(t *testing.T) hoursFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := hoursFixture{
		repo:  hoursMocks.NewMockBusinessHours(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func testContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyTenantID, testTenantID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, "staff-1")

	return ctx
}

func openDay(weekday int, open, closeAt string) model.BusinessHours {
	return model.BusinessHours{
		ID:        "bh-1",
		TenantID:  testTenantID,
		Weekday:   weekday,
		OpenTime:  open,
		CloseTime: closeAt,
	}
}

func fullWeek() dto.SetWeekRequest {
	days := make([]dto.UpsertBusinessHoursRequest, 7)
	for i := range days {
		days[i] = dto.UpsertBusinessHoursRequest{Weekday: i, OpenTime: "09:00", CloseTime: "22:00"}
	}

	return dto.SetWeekRequest{Days: days}
}

func TestBusinessHoursService_Upsert(t *testing.T) {
	t.Run("inserts when the weekday has no record", func(t *testing.T) {
		f := newHoursFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Upsert(testContext(), dto.UpsertBusinessHoursRequest{
			Weekday:   1,
			OpenTime:  "09:00",
			CloseTime: "22:00",
		})

		assert.NoError(t, err)
	})

	t.Run("updates an existing weekday", func(t *testing.T) {
		f := newHoursFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Upsert(testContext(), dto.UpsertBusinessHoursRequest{
			Weekday:   1,
			OpenTime:  "10:00",
			CloseTime: "23:00",
		})

		assert.NoError(t, err)
	})

	t.Run("marking a day closed blanks the window", func(t *testing.T) {
		f := newHoursFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, true, fields[model.FieldClosed])
				assert.Equal(t, constant.Empty, fields[model.FieldOpenTime])
				assert.Equal(t, constant.Empty, fields[model.FieldCloseTime])

				return nil
			})

		err := f.svc.Upsert(testContext(), dto.UpsertBusinessHoursRequest{Weekday: 0, Closed: true})

		assert.NoError(t, err)
	})

	t.Run("close must come after open", func(t *testing.T) {
		f := newHoursFixture(t)

		err := f.svc.Upsert(testContext(), dto.UpsertBusinessHoursRequest{
			Weekday:   1,
			OpenTime:  "22:00",
			CloseTime: "09:00",
		})

		assert.Error(t, err)
	})

	t.Run("missing tenant context", func(t *testing.T) {
		f := newHoursFixture(t)

		err := f.svc.Upsert(context.Background(), dto.UpsertBusinessHoursRequest{
			Weekday:   1,
			OpenTime:  "09:00",
			CloseTime: "22:00",
		})

		assert.ErrorIs(t, err, failure.TenantNotFound)
	})
}

func TestBusinessHoursService_SetWeek(t *testing.T) {
	t.Run("replaces the whole calendar in one transaction", func(t *testing.T) {
		f := newHoursFixture(t)

		f.repo.EXPECT().
			WithinTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
				return fn(ctx)
			})
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().
			InsertBulk(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, models []model.BusinessHours) error {
				assert.Len(t, models, 7)

				return nil
			})

		assert.NoError(t, f.svc.SetWeek(testContext(), fullWeek()))
	})

	t.Run("duplicate weekday is rejected", func(t *testing.T) {
		f := newHoursFixture(t)

		req := fullWeek()
		req.Days[6].Weekday = 0

		assert.Error(t, f.svc.SetWeek(testContext(), req))
	})

	t.Run("invalid window in any day aborts", func(t *testing.T) {
		f := newHoursFixture(t)

		req := fullWeek()
		req.Days[3].CloseTime = "08:00"

		assert.Error(t, f.svc.SetWeek(testContext(), req))
	})

	t.Run("transaction failure surfaces as unavailable", func(t *testing.T) {
		f := newHoursFixture(t)

		f.repo.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		assert.ErrorIs(t, f.svc.SetWeek(testContext(), fullWeek()), failure.StorageUnavailable)
	})
}

func TestBusinessHoursService_IsWithinOpenHours(t *testing.T) {
	// Monday 2026-09-07 in UTC; the tenant opens 09:00 and closes 22:00.
	day := func() time.Time {
		return time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		stored  model.BusinessHours
		noFetch bool
		want    bool
	}{
		{
			name:   "interval inside the window",
			start:  day().Add(9 * time.Hour),
			end:    day().Add(10 * time.Hour),
			stored: openDay(1, "09:00", "22:00"),
			want:   true,
		},
		{
			name:   "interval starting before opening",
			start:  day().Add(8*time.Hour + 30*time.Minute),
			end:    day().Add(9*time.Hour + 30*time.Minute),
			stored: openDay(1, "09:00", "22:00"),
			want:   false,
		},
		{
			name:   "interval ending exactly at close",
			start:  day().Add(21 * time.Hour),
			end:    day().Add(22 * time.Hour),
			stored: openDay(1, "09:00", "22:00"),
			want:   true,
		},
		{
			name:   "interval ending seconds past close",
			start:  day().Add(21 * time.Hour),
			end:    day().Add(22*time.Hour + 59*time.Second),
			stored: openDay(1, "09:00", "22:00"),
			want:   false,
		},
		{
			name:   "interval starting seconds before opening",
			start:  day().Add(9*time.Hour - 30*time.Second),
			end:    day().Add(10 * time.Hour),
			stored: openDay(1, "09:00", "22:00"),
			want:   false,
		},
		{
			name:   "interval running past close",
			start:  day().Add(21*time.Hour + 30*time.Minute),
			end:    day().Add(22*time.Hour + 30*time.Minute),
			stored: openDay(1, "09:00", "22:00"),
			want:   false,
		},
		{
			name:  "closed day",
			start: day().Add(10 * time.Hour),
			end:   day().Add(11 * time.Hour),
			stored: model.BusinessHours{
				ID:       "bh-1",
				TenantID: testTenantID,
				Weekday:  1,
				Closed:   true,
			},
			want: false,
		},
		{
			name:   "weekday with no record",
			start:  day().Add(10 * time.Hour),
			end:    day().Add(11 * time.Hour),
			stored: model.BusinessHours{},
			want:   false,
		},
		{
			name:    "interval crossing midnight",
			start:   day().Add(23 * time.Hour),
			end:     day().Add(25 * time.Hour),
			noFetch: true,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHoursFixture(t)

			if !tt.noFetch {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.stored, nil)
			}

			got, err := f.svc.IsWithinOpenHours(context.Background(), testTenantID, "UTC", tt.start, tt.end)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown timezone falls back to UTC", func(t *testing.T) {
		f := newHoursFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openDay(1, "09:00", "22:00"), nil)

		got, err := f.svc.IsWithinOpenHours(context.Background(), testTenantID, "Mars/Olympus", day().Add(10*time.Hour), day().Add(11*time.Hour))

		assert.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		f := newHoursFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.BusinessHours{}, errors.New("connection refused"))

		_, err := f.svc.IsWithinOpenHours(context.Background(), testTenantID, "UTC", day().Add(10*time.Hour), day().Add(11*time.Hour))

		assert.ErrorIs(t, err, failure.StorageUnavailable)
	})
}

func TestBusinessHoursService_GetAll(t *testing.T) {
	t.Run("fetches and caches the calendar", func(t *testing.T) {
		f := newHoursFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache: nil"))
		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.BusinessHours{openDay(1, "09:00", "22:00")}, nil)

		res, err := f.svc.GetAll(testContext())

		assert.NoError(t, err)
		assert.Len(t, res.Days, 1)
		assert.Equal(t, "09:00", res.Days[0].OpenTime)
	})

	t.Run("missing tenant context", func(t *testing.T) {
		f := newHoursFixture(t)

		_, err := f.svc.GetAll(context.Background())

		assert.ErrorIs(t, err, failure.TenantNotFound)
	})
}
