//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"testing"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/shared"
	"shareit/tests/common/builder"
	mock_shared "shareit/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	uow           *mock_shared.MockUnitOfWork
	tx            *mock_shared.MockTx
	reads         *mock_shared.MockCommandReads
	bookings      *mock_shared.MockBookingRepository
	notifications *mock_shared.MockNotificationRepository
	b             *builder.BookingBuilder
	sut           commands.BookingCommands
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = mock_shared.NewMockUnitOfWork(s.ctrl)
	s.tx = mock_shared.NewMockTx(s.ctrl)
	s.reads = mock_shared.NewMockCommandReads(s.ctrl)
	s.bookings = mock_shared.NewMockBookingRepository(s.ctrl)
	s.notifications = mock_shared.NewMockNotificationRepository(s.ctrl)
	s.b = builder.NewBookingBuilder()

	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).AnyTimes()
	s.tx.EXPECT().Reads().Return(s.reads).AnyTimes()
	s.tx.EXPECT().Bookings().Return(s.bookings).AnyTimes()
	s.tx.EXPECT().Notifications().Return(s.notifications).AnyTimes()
	s.tx.EXPECT().DB().Return(nil).AnyTimes()

	s.sut = commands.NewBookingCommands(s.uow, s.b.BuildServices())
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *BookingCommandsTestSuite) createRequest() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{ItemID: s.b.ItemID, Start: s.b.Start, End: s.b.End}
}

func notFound() error {
	return infra.WrapRepoErr("row missing", nil, infra.KindNotFound)
}

// ================================================================================
// Create
// ================================================================================

func (s *BookingCommandsTestSuite) TestCreate() {
	s.Run("success: stores a waiting booking and enqueues an event", func() {
		s.reads.EXPECT().ItemByID(gomock.Any(), s.b.ItemID).Return(s.b.BuildItemSnapshot(), nil)
		s.reads.EXPECT().UserByID(gomock.Any(), s.b.BookerID).Return(&shared.UserSnapshot{ID: s.b.BookerID}, nil)
		s.bookings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, b *booking.Booking) (int64, error) {
				s.Equal(booking.StatusWaiting, b.Status())
				s.Equal(s.b.BookerID, b.BookerID())
				s.Equal(s.b.ItemID, b.ItemID())
				return 42, nil
			})
		s.notifications.EXPECT().
			CreateJob(gomock.Any(), gomock.Any(), "email", commands.TopicBookingCreated, gomock.Any(), builder.Now).
			DoAndReturn(func(_ context.Context, _ any, _, _ string, payload []byte, _ any) error {
				var event map[string]any
				s.Require().NoError(json.Unmarshal(payload, &event))
				s.EqualValues(42, event["booking_id"])
				s.EqualValues(s.b.OwnerID, event["owner_id"])
				s.Equal("WAITING", event["status"])
				return nil
			})

		result, err := s.sut.Create(context.Background(), s.createRequest(), s.b.BookerID)

		s.Require().NoError(err)
		s.Equal(int64(42), result.BookingID)
		s.Equal(booking.StatusWaiting, result.Status)
	})

	s.Run("error: item missing is checked first", func() {
		s.reads.EXPECT().ItemByID(gomock.Any(), s.b.ItemID).Return(nil, notFound())

		_, err := s.sut.Create(context.Background(), s.createRequest(), s.b.BookerID)

		s.Require().ErrorIs(err, shared.ErrItemNotFound)
		s.True(errs.Is(err, errs.ErrNotFound))
	})

	s.Run("error: booker missing", func() {
		s.reads.EXPECT().ItemByID(gomock.Any(), s.b.ItemID).Return(s.b.BuildItemSnapshot(), nil)
		s.reads.EXPECT().UserByID(gomock.Any(), s.b.BookerID).Return(nil, notFound())

		_, err := s.sut.Create(context.Background(), s.createRequest(), s.b.BookerID)

		s.Require().ErrorIs(err, shared.ErrUserNotFound)
	})

	s.Run("error: owner books own item", func() {
		s.reads.EXPECT().ItemByID(gomock.Any(), s.b.ItemID).Return(s.b.BuildItemSnapshot(), nil)
		s.reads.EXPECT().UserByID(gomock.Any(), s.b.OwnerID).Return(&shared.UserSnapshot{ID: s.b.OwnerID}, nil)

		_, err := s.sut.Create(context.Background(), s.createRequest(), s.b.OwnerID)

		s.Require().ErrorIs(err, booking.ErrBookedByOwner)
		s.True(errs.Is(err, errs.ErrAccessDenied))
	})

	s.Run("error: unavailable item", func() {
		item := s.b.BuildItemSnapshot()
		item.Available = false
		s.reads.EXPECT().ItemByID(gomock.Any(), s.b.ItemID).Return(item, nil)
		s.reads.EXPECT().UserByID(gomock.Any(), s.b.BookerID).Return(&shared.UserSnapshot{ID: s.b.BookerID}, nil)

		_, err := s.sut.Create(context.Background(), s.createRequest(), s.b.BookerID)

		s.Require().ErrorIs(err, booking.ErrItemUnavailable)
	})

	s.Run("error: storage failure is passed through", func() {
		s.reads.EXPECT().ItemByID(gomock.Any(), s.b.ItemID).Return(s.b.BuildItemSnapshot(), nil)
		s.reads.EXPECT().UserByID(gomock.Any(), s.b.BookerID).Return(&shared.UserSnapshot{ID: s.b.BookerID}, nil)
		s.bookings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(0), infra.WrapRepoErr("insert failed", assert.AnError))

		_, err := s.sut.Create(context.Background(), s.createRequest(), s.b.BookerID)

		s.Require().Error(err)
		s.True(infra.IsKind(err, infra.KindDBFailure))
		s.False(errs.Is(err, errs.ErrInvalidRequest))
	})
}

// ================================================================================
// Approve
// ================================================================================

func (s *BookingCommandsTestSuite) expectApproveReads(snap *shared.BookingSnapshot) {
	s.reads.EXPECT().BookingByIDForUpdate(gomock.Any(), snap.ID).Return(snap, nil)
	s.reads.EXPECT().UserByID(gomock.Any(), s.b.OwnerID).Return(&shared.UserSnapshot{ID: s.b.OwnerID}, nil)
	s.reads.EXPECT().ItemByID(gomock.Any(), snap.ItemID).Return(s.b.BuildItemSnapshot(), nil)
}

func (s *BookingCommandsTestSuite) TestApprove() {
	s.Run("success: approve", func() {
		s.expectApproveReads(s.b.BuildSnapshot())
		s.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, b *booking.Booking) error {
				s.Equal(booking.StatusApproved, b.Status())
				return nil
			})
		s.notifications.EXPECT().
			CreateJob(gomock.Any(), gomock.Any(), "email", commands.TopicBookingApproved, gomock.Any(), gomock.Any()).
			Return(nil)

		result, err := s.sut.Approve(context.Background(), s.b.OwnerID, s.b.ID, true)

		s.Require().NoError(err)
		s.Equal(s.b.ID, result.BookingID)
		s.Equal(booking.StatusApproved, result.Status)
	})

	s.Run("success: reject", func() {
		s.expectApproveReads(s.b.BuildSnapshot())
		s.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.notifications.EXPECT().
			CreateJob(gomock.Any(), gomock.Any(), "email", commands.TopicBookingRejected, gomock.Any(), gomock.Any()).
			Return(nil)

		result, err := s.sut.Approve(context.Background(), s.b.OwnerID, s.b.ID, false)

		s.Require().NoError(err)
		s.Equal(booking.StatusRejected, result.Status)
	})

	s.Run("error: repeating the current decision", func() {
		approved := builder.NewBookingBuilder().WithStatus(booking.StatusApproved)
		s.expectApproveReads(approved.BuildSnapshot())

		_, err := s.sut.Approve(context.Background(), s.b.OwnerID, s.b.ID, true)

		s.Require().ErrorIs(err, booking.ErrStatusAlreadyChanged)
		s.True(errs.Is(err, errs.ErrInvalidRequest))
	})

	s.Run("error: booking missing is checked first", func() {
		s.reads.EXPECT().BookingByIDForUpdate(gomock.Any(), s.b.ID).Return(nil, notFound())

		_, err := s.sut.Approve(context.Background(), s.b.OwnerID, s.b.ID, true)

		s.Require().ErrorIs(err, shared.ErrBookingNotFound)
	})

	s.Run("error: caller missing", func() {
		s.reads.EXPECT().BookingByIDForUpdate(gomock.Any(), s.b.ID).Return(s.b.BuildSnapshot(), nil)
		s.reads.EXPECT().UserByID(gomock.Any(), int64(999)).Return(nil, notFound())

		_, err := s.sut.Approve(context.Background(), 999, s.b.ID, true)

		s.Require().ErrorIs(err, shared.ErrUserNotFound)
	})

	s.Run("error: caller is not the owner", func() {
		s.reads.EXPECT().BookingByIDForUpdate(gomock.Any(), s.b.ID).Return(s.b.BuildSnapshot(), nil)
		s.reads.EXPECT().UserByID(gomock.Any(), s.b.BookerID).Return(&shared.UserSnapshot{ID: s.b.BookerID}, nil)
		s.reads.EXPECT().ItemByID(gomock.Any(), s.b.ItemID).Return(s.b.BuildItemSnapshot(), nil)

		_, err := s.sut.Approve(context.Background(), s.b.BookerID, s.b.ID, true)

		s.Require().ErrorIs(err, booking.ErrNotItemOwner)
		s.True(errs.Is(err, errs.ErrAccessDenied))
	})

	s.Run("error: corrupt stored status is not a client error", func() {
		snap := s.b.BuildSnapshot()
		snap.Status = "CANCELED"
		s.expectApproveReads(snap)

		_, err := s.sut.Approve(context.Background(), s.b.OwnerID, s.b.ID, true)

		s.Require().Error(err)
		s.False(errs.Is(err, errs.ErrInvalidRequest))
	})
}

func TestApproveTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	uow := mock_shared.NewMockUnitOfWork(ctrl)
	tx := mock_shared.NewMockTx(ctrl)
	reads := mock_shared.NewMockCommandReads(ctrl)
	repo := mock_shared.NewMockBookingRepository(ctrl)
	notifications := mock_shared.NewMockNotificationRepository(ctrl)
	b := builder.NewBookingBuilder()

	// the stored status follows whatever the last successful update wrote
	stored := b.BuildSnapshot()
	uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, tx)
		}).Times(2)
	tx.EXPECT().Reads().Return(reads).AnyTimes()
	tx.EXPECT().Bookings().Return(repo).AnyTimes()
	tx.EXPECT().Notifications().Return(notifications).AnyTimes()
	tx.EXPECT().DB().Return(nil).AnyTimes()
	reads.EXPECT().BookingByIDForUpdate(gomock.Any(), b.ID).
		DoAndReturn(func(context.Context, int64) (*shared.BookingSnapshot, error) {
			cp := *stored
			return &cp, nil
		}).Times(2)
	reads.EXPECT().UserByID(gomock.Any(), b.OwnerID).Return(&shared.UserSnapshot{ID: b.OwnerID}, nil).Times(2)
	reads.EXPECT().ItemByID(gomock.Any(), b.ItemID).Return(b.BuildItemSnapshot(), nil).Times(2)
	repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, bk *booking.Booking) error {
			stored.Status = bk.Status().String()
			return nil
		}).Times(1)
	notifications.EXPECT().CreateJob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).Times(1)

	sut := commands.NewBookingCommands(uow, b.BuildServices())

	_, err := sut.Approve(context.Background(), b.OwnerID, b.ID, true)
	require.NoError(t, err)

	_, err = sut.Approve(context.Background(), b.OwnerID, b.ID, true)
	require.ErrorIs(t, err, booking.ErrStatusAlreadyChanged)
}
