package notify_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ganot/guildhall/internal/notify"
	"github.com/ganot/guildhall/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher() (*notify.Dispatcher, *mocks.DeviceRepository) {
	repo := new(mocks.DeviceRepository)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return notify.NewDispatcher(repo, logger), repo
}

func TestDispatcher_PartyFilled(t *testing.T) {
	d, repo := newTestDispatcher()
	repo.On("ListByMembers", mock.Anything, []string{"m1", "m2"}).Return([]notify.Device{
		{Token: "tok-1", MemberID: "m1"},
	}, nil)

	err := d.PartyFilled(context.Background(), "p1", []string{"m1", "m2"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDispatcher_RegisterDevice(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the token", func(t *testing.T) {
		d, repo := newTestDispatcher()

		var registered *notify.Device
		repo.On("Register", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				registered = args.Get(1).(*notify.Device)
			}).
			Return(nil)

		require.NoError(t, d.RegisterDevice(ctx, "m1", "ios", "tok-1"))
		require.Equal(t, "m1", registered.MemberID)
		require.Equal(t, "tok-1", registered.Token)
	})

	t.Run("rejects blank token or platform", func(t *testing.T) {
		d, _ := newTestDispatcher()

		require.ErrorIs(t, d.RegisterDevice(ctx, "m1", "ios", " "), notify.ErrInvalidDevice)
		require.ErrorIs(t, d.RegisterDevice(ctx, "m1", "", "tok-1"), notify.ErrInvalidDevice)
	})
}

func TestDispatcher_UnregisterDevice(t *testing.T) {
	d, repo := newTestDispatcher()
	repo.On("Unregister", mock.Anything, "m1", "tok-1").Return(nil)

	require.NoError(t, d.UnregisterDevice(context.Background(), "m1", "tok-1"))
	repo.AssertExpectations(t)
}
