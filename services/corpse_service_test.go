package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"room-lab/domain"
	"room-lab/domain/corpse"
	"room-lab/domain/event"
	"room-lab/errors"
	"room-lab/mocks"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCorpseService_CreateRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("isPublic defaults to true", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		coordinator := mocks.NewMockICorpseCoordinator(ctrl)
		svc := NewCorpseService(slog.Default(), coordinator, mocks.NewMockBroadcaster(ctrl))

		coordinator.EXPECT().CreateRoom(ctx, domain.RoomID("r1"), "", true).Return(nil)

		svc.Handle(ctx, "c1", EventCreateRoom, json.RawMessage(`{"roomId":"r1"}`))
	})

	t.Run("explicit private room with password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		coordinator := mocks.NewMockICorpseCoordinator(ctrl)
		svc := NewCorpseService(slog.Default(), coordinator, mocks.NewMockBroadcaster(ctrl))

		coordinator.EXPECT().CreateRoom(ctx, domain.RoomID("r1"), "secret", false).Return(nil)

		svc.Handle(ctx, "c1", EventCreateRoom, json.RawMessage(`{"roomId":"r1","password":"secret","isPublic":false}`))
	})

	t.Run("duplicate room is reported to the caller only", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		coordinator := mocks.NewMockICorpseCoordinator(ctrl)
		broadcaster := mocks.NewMockBroadcaster(ctrl)
		svc := NewCorpseService(slog.Default(), coordinator, broadcaster)

		coordinator.EXPECT().CreateRoom(ctx, domain.RoomID("r1"), "", true).
			Return(fmt.Errorf("%w: r1", errors.ErrRoomAlreadyExists))

		var got event.Event
		broadcaster.EXPECT().EmitToClient(domain.ConnectionID("c1"), gomock.Any()).
			Do(func(_ domain.ConnectionID, evt event.Event) { got = evt })
		broadcaster.EXPECT().EmitToRoom(gomock.Any(), gomock.Any()).Times(0)
		broadcaster.EXPECT().EmitToAll(gomock.Any()).Times(0)

		svc.Handle(ctx, "c1", EventCreateRoom, json.RawMessage(`{"roomId":"r1"}`))

		req.Equal(event.Error, got.Type)
		req.Equal("room_exists", got.Payload.(event.ClientError).Code)
	})
}

func TestCorpseService_JoinUnlockAppend(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	coordinator := mocks.NewMockICorpseCoordinator(ctrl)
	broadcaster := mocks.NewMockBroadcaster(ctrl)
	svc := NewCorpseService(slog.Default(), coordinator, broadcaster)

	var errorsSent []string
	broadcaster.EXPECT().EmitToClient(domain.ConnectionID("c1"), gomock.Any()).
		Do(func(_ domain.ConnectionID, evt event.Event) {
			errorsSent = append(errorsSent, evt.Payload.(event.ClientError).Code)
		}).AnyTimes()

	gomock.InOrder(
		coordinator.EXPECT().Join(ctx, domain.ConnectionID("c1"), domain.RoomID("r1"), "wrong").
			Return(corpse.JoinResult{RoomID: "r1", Text: "Hello", IsLocked: true}, nil),
		coordinator.EXPECT().Append(ctx, domain.ConnectionID("c1"), domain.RoomID("r1"), "world").
			Return("", fmt.Errorf("%w: r1", errors.ErrRoomLocked)),
		coordinator.EXPECT().Unlock(ctx, domain.ConnectionID("c1"), domain.RoomID("r1"), "wrong").
			Return(fmt.Errorf("%w: r1", errors.ErrInvalidPassword)),
		coordinator.EXPECT().Unlock(ctx, domain.ConnectionID("c1"), domain.RoomID("r1"), "secret").
			Return(nil),
		coordinator.EXPECT().Append(ctx, domain.ConnectionID("c1"), domain.RoomID("r1"), "world").
			Return("Hello world", nil),
	)

	// Given a locked join
	svc.Handle(ctx, "c1", EventJoinRoom, json.RawMessage(`{"roomId":"r1","password":"wrong"}`))
	// When appending, unlocking badly, unlocking, appending again
	svc.Handle(ctx, "c1", EventAppendText, json.RawMessage(`{"roomId":"r1","text":"world"}`))
	svc.Handle(ctx, "c1", EventUnlockRoom, json.RawMessage(`{"roomId":"r1","password":"wrong"}`))
	svc.Handle(ctx, "c1", EventUnlockRoom, json.RawMessage(`{"roomId":"r1","password":"secret"}`))
	svc.Handle(ctx, "c1", EventAppendText, json.RawMessage(`{"roomId":"r1","text":"world"}`))

	// Then the two failures are surfaced in order
	req.Equal([]string{"room_locked", "invalid_password"}, errorsSent)
}

func TestCorpseService_BlankAppendIsDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	coordinator := mocks.NewMockICorpseCoordinator(ctrl)
	broadcaster := mocks.NewMockBroadcaster(ctrl)
	svc := NewCorpseService(slog.Default(), coordinator, broadcaster)

	coordinator.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	broadcaster.EXPECT().EmitToClient(gomock.Any(), gomock.Any()).Times(0)

	svc.Handle(context.Background(), "c1", EventAppendText, json.RawMessage(`{"roomId":"r1","text":""}`))
	svc.Handle(context.Background(), "c1", EventAppendText, json.RawMessage(`{"text":"hi"}`))
}

func TestCorpseService_Lifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	coordinator := mocks.NewMockICorpseCoordinator(ctrl)
	svc := NewCorpseService(slog.Default(), coordinator, mocks.NewMockBroadcaster(ctrl))
	ctx := context.Background()

	gomock.InOrder(
		coordinator.EXPECT().SendPublicRooms(ctx, domain.ConnectionID("c1")).Return(nil),
		coordinator.EXPECT().SendRoomData(ctx, domain.ConnectionID("c1"), domain.RoomID("r1")).Return(nil),
		coordinator.EXPECT().SendPublicRooms(ctx, domain.ConnectionID("c1")).Return(nil),
		coordinator.EXPECT().Leave(ctx, domain.ConnectionID("c1")),
	)

	svc.Connect(ctx, "c1")
	svc.Handle(ctx, "c1", EventGetRoomData, json.RawMessage(`{"roomId":"r1"}`))
	svc.Handle(ctx, "c1", EventGetRooms, nil)
	svc.Disconnect(ctx, "c1")
}
