package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"utabox/config"
	"utabox/infras/kafka"
	"utabox/infras/otel"
	"utabox/infras/postgres"
	"utabox/internal/domains/booking/model"
	"utabox/internal/domains/booking/model/dto"
	"utabox/internal/domains/booking/repository"
	hoursService "utabox/internal/domains/hours/service"
	roomModel "utabox/internal/domains/room/model"
	roomRepo "utabox/internal/domains/room/repository"
	"utabox/shared"
	"utabox/shared/cache"
	"utabox/shared/constant"
	gDto "utabox/shared/dto"
	"utabox/shared/failure"
	"utabox/shared/pricing"
	"utabox/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
	Move(ctx context.Context, req dto.MoveBookingRequest, id string) (dto.BookingResponse, error)
	Resize(ctx context.Context, req dto.ResizeBookingRequest, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	hours    hoursService.BusinessHours
	cfg      *config.Config
	cache    cache.RedisCache
	kafka    kafka.Client
	otel     otel.Otel
}

func New(repo repository.Booking, roomRepo roomRepo.Room, hours hoursService.BusinessHours, cfg *config.Config, cache cache.RedisCache, kafka kafka.Client, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		hours:    hours,
		cfg:      cfg,
		cache:    cache,
		kafka:    kafka,
		otel:     otel,
	}
}

func tenantFromContext(ctx context.Context) (string, error) {
	tenantID, _ := ctx.Value(constant.ContextKeyTenantID).(string)
	if tenantID == constant.Empty {
		return constant.Empty, failure.TenantNotFound // nolint:wrapcheck
	}

	return tenantID, nil
}

func timezoneFromContext(ctx context.Context) string {
	tz, _ := ctx.Value(constant.ContextKeyTenantTimezone).(string)
	if tz == constant.Empty {
		tz = "UTC"
	}

	return tz
}

func validateInterval(start, end time.Time) error {
	if !end.After(start) {
		return failure.InvalidInterval // nolint:wrapcheck
	}

	return nil
}

// classifyWriteError maps transaction failures onto the scheduling failure
// set. An exclusion violation means another transaction claimed the slot
// between our overlap check and our write, so it surfaces as a conflict
// rather than a storage error.
func classifyWriteError(err error) error {
	var f *failure.Failure
	if errors.As(err, &f) {
		return f
	}

	if postgres.IsExclusionViolation(err) {
		return failure.TimeSlotConflict // nolint:wrapcheck
	}

	log.Error().Err(err).Msg("booking write failed")

	return failure.StorageUnavailable // nolint:wrapcheck
}

func (s *serviceImpl) activeRoom(ctx context.Context, tenantID, roomID string) (roomModel.Room, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByTenantAndID(tenantID, roomID, roomModel.FieldTenantID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, failure.StorageUnavailable // nolint:wrapcheck
	}

	if room.ID == constant.Empty {
		return room, failure.RoomNotFound // nolint:wrapcheck
	}

	if !room.Active {
		return room, failure.RoomInactive // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) ensureWithinOpenHours(ctx context.Context, tenantID string, start, end time.Time) error {
	open, err := s.hours.IsWithinOpenHours(ctx, tenantID, timezoneFromContext(ctx), start, end)
	if err != nil {
		return err
	}

	if !open {
		return failure.OutsideBusinessHours // nolint:wrapcheck
	}

	return nil
}

// lockRooms takes row locks on the given rooms so concurrent bookings of the
// same room serialize. A single statement ordered by primary key keeps two
// swaps locking the same pair from deadlocking each other.
func (s *serviceImpl) lockRooms(ctx context.Context, tenantID string, roomIDs ...string) error {
	ids := make([]string, 0, len(roomIDs))
	seen := map[string]bool{}

	for _, id := range roomIDs {
		if !seen[id] {
			seen[id] = true

			ids = append(ids, id)
		}
	}

	return s.roomRepo.Lock(ctx, gDto.FilterGroup{ // nolint:wrapcheck
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldTenantID,
				Value:    tenantID,
				Operator: gDto.FilterOperatorEq,
				Table:    roomModel.TableName,
			},
			gDto.Filter{
				Field:    roomModel.FieldID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    roomModel.TableName,
			},
		},
	})
}

// ensureFree fails with TimeSlotConflict when any blocking booking of the
// room intersects [start, end). Must run after lockRooms inside the
// transaction so the answer stays true until commit.
func (s *serviceImpl) ensureFree(ctx context.Context, tenantID, roomID string, start, end time.Time, excludeIDs ...string) error {
	overlapping, err := s.repo.FindOverlapping(ctx, tenantID, roomID, start, end, excludeIDs...)
	if err != nil {
		return fmt.Errorf("failed to check for conflicts: %w", err)
	}

	if len(overlapping) > 0 {
		return failure.TimeSlotConflict // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) bookingByID(ctx context.Context, tenantID, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByTenantAndID(tenantID, id, model.FieldTenantID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, failure.StorageUnavailable // nolint:wrapcheck
	}

	if booking.ID == constant.Empty {
		return booking, failure.BookingNotFound // nolint:wrapcheck
	}

	return booking, nil
}

func ensureReschedulable(booking model.Booking) error {
	switch booking.Status {
	case constant.BookingStatusCancelled:
		return failure.AlreadyCancelled // nolint:wrapcheck
	case constant.BookingStatusCompleted:
		return failure.BookingCompleted // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	start, end, err := req.Interval()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = validateInterval(start, end); err != nil {
		return res, err
	}

	if start.Before(timezone.Now()) {
		return res, failure.IntervalInPast // nolint:wrapcheck
	}

	room, err := s.activeRoom(ctx, tenantID, req.RoomID)
	if err != nil {
		return res, err
	}

	if err = s.ensureWithinOpenHours(ctx, tenantID, start, end); err != nil {
		return res, err
	}

	booking := req.ToModel(tenantID, user, start, end, pricing.Compute(room.HourlyRate, start, end))

	err = s.repo.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.lockRooms(txCtx, tenantID, room.ID); err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if err := s.ensureFree(txCtx, tenantID, room.ID, start, end); err != nil {
			return err
		}

		if err := s.repo.Insert(txCtx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, classifyWriteError(err)
	}

	s.invalidate(ctx, tenantID, booking.ID)
	s.publish(ctx, constant.EventBookingCreated, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetBooking, tenantID, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.bookingByID(ctx, tenantID, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Update edits guest details, notes, status, the room, or the interval of a
// booking. Placement changes run through the same checks as Create, room
// first, with the booking itself excluded from conflict detection so
// shrinking or shifting within its own slot always succeeds.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.bookingByID(ctx, tenantID, id)
	if err != nil {
		return res, err
	}

	if err = ensureReschedulable(booking); err != nil {
		return res, err
	}

	if req.GuestName != constant.Empty {
		booking.GuestName = req.GuestName
	}

	if req.GuestEmail != constant.Empty {
		booking.GuestEmail = req.GuestEmail
	}

	if req.GuestPhone != constant.Empty {
		booking.GuestPhone = req.GuestPhone
	}

	if req.Status != constant.Empty {
		booking.Status = req.Status
	}

	if req.Notes != constant.Empty {
		booking.Notes = req.Notes
	}

	roomID := booking.RoomID
	if req.RoomID != constant.Empty {
		roomID = req.RoomID
	}

	start, end := booking.StartTime, booking.EndTime

	if req.StartTime != constant.Empty {
		if start, err = time.Parse(constant.DateFormat, req.StartTime); err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	if req.EndTime != constant.Empty {
		if end, err = time.Parse(constant.DateFormat, req.EndTime); err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	placementChanged := roomID != booking.RoomID || !start.Equal(booking.StartTime) || !end.Equal(booking.EndTime)

	if placementChanged {
		room, err := s.activeRoom(ctx, tenantID, roomID)
		if err != nil {
			return res, err
		}

		if err = validateInterval(start, end); err != nil {
			return res, err
		}

		if err = s.ensureWithinOpenHours(ctx, tenantID, start, end); err != nil {
			return res, err
		}

		booking.RoomID = roomID
		booking.StartTime = start
		booking.EndTime = end
		booking.TotalPrice = pricing.Compute(room.HourlyRate, start, end)
	}

	booking.ModifiedAt = timezone.Now()
	booking.ModifiedBy = user

	err = s.repo.WithinTransaction(ctx, func(txCtx context.Context) error {
		if placementChanged {
			if err := s.lockRooms(txCtx, tenantID, roomID); err != nil {
				return fmt.Errorf("failed to lock room: %w", err)
			}

			if err := s.ensureFree(txCtx, tenantID, roomID, start, end, booking.ID); err != nil {
				return err
			}
		}

		return s.writeBooking(txCtx, tenantID, booking)
	})
	if err != nil {
		return res, classifyWriteError(err)
	}

	s.invalidate(ctx, tenantID, booking.ID)
	s.publish(ctx, constant.EventBookingUpdated, booking)

	res.FromModel(booking)

	return res, nil
}

// Cancel releases the booking's slot. Cancelling keeps the record for the
// ledger; the row flips to cancelled and stops blocking other bookings. The
// status check reruns under a row lock so two racing cancels cannot both
// report success.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.bookingByID(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if err = ensureReschedulable(booking); err != nil {
		return err
	}

	filter := shared.FilterByTenantAndID(tenantID, id, model.FieldTenantID, model.FieldID, model.TableName)

	err = s.repo.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Lock(txCtx, filter); err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		current, err := s.bookingByID(txCtx, tenantID, id)
		if err != nil {
			return err
		}

		if err := ensureReschedulable(current); err != nil {
			return err
		}

		fields := map[string]any{
			model.FieldStatus:        constant.BookingStatusCancelled,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if err := s.repo.Update(txCtx, fields, filter); err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return classifyWriteError(err)
	}

	booking.Status = constant.BookingStatusCancelled

	s.invalidate(ctx, tenantID, id)
	s.publish(ctx, constant.EventBookingCancelled, booking)

	return nil
}

// Move relocates a booking to another room and/or interval, or swaps two
// bookings atomically when a target booking is named. A plain move excludes
// the moving booking from conflict detection so its vacated slot is free for
// others; a swap excludes both so each may land where the other was. Prices
// follow the destination room's rate.
func (s *serviceImpl) Move(ctx context.Context, req dto.MoveBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Move")
	defer scope.End()
	defer scope.TraceIfError(err)

	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.bookingByID(ctx, tenantID, id)
	if err != nil {
		return res, err
	}

	if err = ensureReschedulable(booking); err != nil {
		return res, err
	}

	if req.TargetBookingID != constant.Empty {
		return s.swap(ctx, tenantID, user, booking, req)
	}

	newRoomID := booking.RoomID
	if req.NewRoomID != constant.Empty {
		newRoomID = req.NewRoomID
	}

	start, end := booking.StartTime, booking.EndTime

	if req.NewStartTime != constant.Empty {
		if start, err = time.Parse(constant.DateFormat, req.NewStartTime); err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	if req.NewEndTime != constant.Empty {
		if end, err = time.Parse(constant.DateFormat, req.NewEndTime); err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	if newRoomID == booking.RoomID && start.Equal(booking.StartTime) && end.Equal(booking.EndTime) {
		return res, failure.BadRequestFromString("move request changes nothing") // nolint:wrapcheck
	}

	if err = validateInterval(start, end); err != nil {
		return res, err
	}

	room, err := s.activeRoom(ctx, tenantID, newRoomID)
	if err != nil {
		return res, err
	}

	if err = s.ensureWithinOpenHours(ctx, tenantID, start, end); err != nil {
		return res, err
	}

	booking.RoomID = newRoomID
	booking.StartTime = start
	booking.EndTime = end
	booking.TotalPrice = pricing.Compute(room.HourlyRate, start, end)
	booking.ModifiedAt = timezone.Now()
	booking.ModifiedBy = user

	err = s.repo.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.lockRooms(txCtx, tenantID, newRoomID); err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if err := s.ensureFree(txCtx, tenantID, newRoomID, start, end, booking.ID); err != nil {
			return err
		}

		return s.writeBooking(txCtx, tenantID, booking)
	})
	if err != nil {
		return res, classifyWriteError(err)
	}

	s.invalidate(ctx, tenantID, booking.ID)
	s.publish(ctx, constant.EventBookingMoved, booking)

	res.FromModel(booking)

	return res, nil
}

// swap places booking into the New* fields and the target booking into its
// TargetNew* fields, defaulting to the slot booking vacates. Both placements
// validate room, interval, and business hours, with the pair excluded from
// conflict detection, and both writes share one transaction so a failed half
// leaves neither booking changed.
func (s *serviceImpl) swap(ctx context.Context, tenantID, user string, booking model.Booking, req dto.MoveBookingRequest) (res dto.BookingResponse, err error) {
	if req.TargetBookingID == booking.ID {
		return res, failure.BadRequestFromString("cannot swap a booking with itself") // nolint:wrapcheck
	}

	target, err := s.bookingByID(ctx, tenantID, req.TargetBookingID)
	if err != nil {
		return res, err
	}

	if err = ensureReschedulable(target); err != nil {
		return res, err
	}

	vacatedRoomID, vacatedStart, vacatedEnd := booking.RoomID, booking.StartTime, booking.EndTime

	newRoomID := booking.RoomID
	if req.NewRoomID != constant.Empty {
		newRoomID = req.NewRoomID
	}

	start, end := booking.StartTime, booking.EndTime

	if req.NewStartTime != constant.Empty {
		if start, err = time.Parse(constant.DateFormat, req.NewStartTime); err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	if req.NewEndTime != constant.Empty {
		if end, err = time.Parse(constant.DateFormat, req.NewEndTime); err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	targetRoomID := vacatedRoomID
	if req.TargetNewRoomID != constant.Empty {
		targetRoomID = req.TargetNewRoomID
	}

	targetStart, targetEnd := vacatedStart, vacatedEnd

	if req.TargetNewStartTime != constant.Empty {
		if targetStart, err = time.Parse(constant.DateFormat, req.TargetNewStartTime); err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	if req.TargetNewEndTime != constant.Empty {
		if targetEnd, err = time.Parse(constant.DateFormat, req.TargetNewEndTime); err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	newRoom, err := s.activeRoom(ctx, tenantID, newRoomID)
	if err != nil {
		return res, err
	}

	targetRoom, err := s.activeRoom(ctx, tenantID, targetRoomID)
	if err != nil {
		return res, err
	}

	if err = validateInterval(start, end); err != nil {
		return res, err
	}

	if err = validateInterval(targetStart, targetEnd); err != nil {
		return res, err
	}

	if err = s.ensureWithinOpenHours(ctx, tenantID, start, end); err != nil {
		return res, err
	}

	if err = s.ensureWithinOpenHours(ctx, tenantID, targetStart, targetEnd); err != nil {
		return res, err
	}

	// The two destinations must not collide with each other when they end
	// up in the same room.
	if newRoomID == targetRoomID && start.Before(targetEnd) && targetStart.Before(end) {
		return res, failure.TimeSlotConflict // nolint:wrapcheck
	}

	booking.RoomID = newRoomID
	booking.StartTime = start
	booking.EndTime = end
	booking.TotalPrice = pricing.Compute(newRoom.HourlyRate, start, end)
	booking.ModifiedAt = timezone.Now()
	booking.ModifiedBy = user

	target.RoomID = targetRoomID
	target.StartTime = targetStart
	target.EndTime = targetEnd
	target.TotalPrice = pricing.Compute(targetRoom.HourlyRate, targetStart, targetEnd)
	target.ModifiedAt = timezone.Now()
	target.ModifiedBy = user

	err = s.repo.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.lockRooms(txCtx, tenantID, newRoomID, targetRoomID); err != nil {
			return fmt.Errorf("failed to lock rooms: %w", err)
		}

		if err := s.ensureFree(txCtx, tenantID, newRoomID, start, end, booking.ID, target.ID); err != nil {
			return err
		}

		if err := s.ensureFree(txCtx, tenantID, targetRoomID, targetStart, targetEnd, booking.ID, target.ID); err != nil {
			return err
		}

		if err := s.writeBooking(txCtx, tenantID, booking); err != nil {
			return err
		}

		return s.writeBooking(txCtx, tenantID, target)
	})
	if err != nil {
		return res, classifyWriteError(err)
	}

	s.invalidate(ctx, tenantID, booking.ID)
	s.invalidate(ctx, tenantID, target.ID)
	s.publish(ctx, constant.EventBookingMoved, booking)
	s.publish(ctx, constant.EventBookingMoved, target)

	res.FromModel(booking)

	return res, nil
}

// Resize moves either interval bound while the room stays fixed. Extending
// in any direction runs through conflict detection; shrinking always fits
// because the booking excludes itself.
func (s *serviceImpl) Resize(ctx context.Context, req dto.ResizeBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resize")
	defer scope.End()
	defer scope.TraceIfError(err)

	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.bookingByID(ctx, tenantID, id)
	if err != nil {
		return res, err
	}

	if err = ensureReschedulable(booking); err != nil {
		return res, err
	}

	start := booking.StartTime
	if req.NewStartTime != constant.Empty {
		if start, err = time.Parse(constant.DateFormat, req.NewStartTime); err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	end, err := time.Parse(constant.DateFormat, req.NewEndTime)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	room, err := s.activeRoom(ctx, tenantID, booking.RoomID)
	if err != nil {
		return res, err
	}

	if err = validateInterval(start, end); err != nil {
		return res, err
	}

	if err = s.ensureWithinOpenHours(ctx, tenantID, start, end); err != nil {
		return res, err
	}

	booking.StartTime = start
	booking.EndTime = end
	booking.TotalPrice = pricing.Compute(room.HourlyRate, start, end)
	booking.ModifiedAt = timezone.Now()
	booking.ModifiedBy = user

	err = s.repo.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.lockRooms(txCtx, tenantID, booking.RoomID); err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if err := s.ensureFree(txCtx, tenantID, booking.RoomID, start, end, booking.ID); err != nil {
			return err
		}

		return s.writeBooking(txCtx, tenantID, booking)
	})
	if err != nil {
		return res, classifyWriteError(err)
	}

	s.invalidate(ctx, tenantID, booking.ID)
	s.publish(ctx, constant.EventBookingUpdated, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) writeBooking(ctx context.Context, tenantID string, booking model.Booking) error {
	fields := map[string]any{
		model.FieldRoomID:        booking.RoomID,
		model.FieldGuestName:     booking.GuestName,
		model.FieldGuestEmail:    booking.GuestEmail,
		model.FieldGuestPhone:    booking.GuestPhone,
		model.FieldStartTime:     booking.StartTime,
		model.FieldEndTime:       booking.EndTime,
		model.FieldStatus:        booking.Status,
		model.FieldNotes:         booking.Notes,
		model.FieldTotalPrice:    booking.TotalPrice,
		constant.FieldModifiedAt: booking.ModifiedAt,
		constant.FieldModifiedBy: booking.ModifiedBy,
	}

	if err := s.repo.Update(ctx, fields, shared.FilterByTenantAndID(tenantID, booking.ID, model.FieldTenantID, model.FieldID, model.TableName)); err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, tenantID, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, tenantID, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) publish(ctx context.Context, event string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		payload := dto.BookingEvent{
			Event:      event,
			TenantID:   booking.TenantID,
			BookingID:  booking.ID,
			RoomID:     booking.RoomID,
			StartTime:  timezone.Format(booking.StartTime, constant.DateFormat),
			EndTime:    timezone.Format(booking.EndTime, constant.DateFormat),
			Status:     booking.Status,
			OccurredAt: timezone.Format(timezone.Now(), constant.DateFormat),
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, kafka.Message{Key: booking.ID, Value: payload}); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish booking event")
		}
	}()
}
