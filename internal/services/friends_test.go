package services

import (
	"context"
	"testing"

	"friendsnap-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRequestCreatesPending(t *testing.T) {
	requests := &fakeRequestStore{}
	svc := NewFriendService(requests, newFakeUserStore(activeUser("a"), activeUser("b")), nil)

	req, err := svc.SendRequest(context.Background(), "a", "b")
	require.NoError(t, err)

	assert.Equal(t, "a", req.SenderID)
	assert.Equal(t, "b", req.ReceiverID)
	assert.Equal(t, models.StatusPending, req.Status)
	assert.NotEmpty(t, req.ID)
	require.Len(t, requests.requests, 1)
}

func TestSendRequestToSelf(t *testing.T) {
	svc := NewFriendService(&fakeRequestStore{}, newFakeUserStore(activeUser("a")), nil)

	_, err := svc.SendRequest(context.Background(), "a", "a")
	assert.ErrorIs(t, err, ErrSelfRequest)
}

func TestSendRequestDuplicate(t *testing.T) {
	requests := &fakeRequestStore{requests: []*models.FriendRequest{
		{ID: "r1", SenderID: "a", ReceiverID: "b", Status: models.StatusPending},
	}}
	svc := NewFriendService(requests, newFakeUserStore(activeUser("a"), activeUser("b")), nil)

	// Same direction.
	_, err := svc.SendRequest(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrDuplicateRequest)

	// Opposite direction is the same pair.
	_, err = svc.SendRequest(context.Background(), "b", "a")
	assert.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestSendRequestDuplicateAfterAccept(t *testing.T) {
	requests := &fakeRequestStore{requests: []*models.FriendRequest{
		{ID: "r1", SenderID: "a", ReceiverID: "b", Status: models.StatusAccepted},
	}}
	svc := NewFriendService(requests, newFakeUserStore(activeUser("a"), activeUser("b")), nil)

	_, err := svc.SendRequest(context.Background(), "b", "a")
	assert.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestSendRequestPushesToReceiver(t *testing.T) {
	token := "device-token"
	receiver := activeUser("b")
	receiver.PushToken = &token
	notifier := &fakeNotifier{}
	svc := NewFriendService(&fakeRequestStore{}, newFakeUserStore(activeUser("a"), receiver), notifier)

	_, err := svc.SendRequest(context.Background(), "a", "b")
	require.NoError(t, err)

	require.Len(t, notifier.pushes, 1)
	assert.Equal(t, "device-token:New friend request", notifier.pushes[0])
}

func TestAcceptTransitionsPendingToAccepted(t *testing.T) {
	requests := &fakeRequestStore{requests: []*models.FriendRequest{
		{ID: "r1", SenderID: "a", ReceiverID: "b", Status: models.StatusPending},
	}}
	svc := NewFriendService(requests, newFakeUserStore(), nil)

	require.NoError(t, svc.Accept(context.Background(), "r1", "b"))
	assert.Equal(t, models.StatusAccepted, requests.requests[0].Status)
}

func TestAcceptOnlyByReceiver(t *testing.T) {
	requests := &fakeRequestStore{requests: []*models.FriendRequest{
		{ID: "r1", SenderID: "a", ReceiverID: "b", Status: models.StatusPending},
	}}
	svc := NewFriendService(requests, newFakeUserStore(), nil)

	// Sender cannot accept their own request.
	assert.ErrorIs(t, svc.Accept(context.Background(), "r1", "a"), ErrNotFound)
	assert.Equal(t, models.StatusPending, requests.requests[0].Status)
}

func TestAcceptMissingOrAlreadyAccepted(t *testing.T) {
	requests := &fakeRequestStore{requests: []*models.FriendRequest{
		{ID: "r1", SenderID: "a", ReceiverID: "b", Status: models.StatusAccepted},
	}}
	svc := NewFriendService(requests, newFakeUserStore(), nil)

	assert.ErrorIs(t, svc.Accept(context.Background(), "missing", "b"), ErrNotFound)
	assert.ErrorIs(t, svc.Accept(context.Background(), "r1", "b"), ErrNotFound)
}

func TestPendingForEnrichesSender(t *testing.T) {
	requests := &fakeRequestStore{requests: []*models.FriendRequest{
		{ID: "r1", SenderID: "a", ReceiverID: "b", Status: models.StatusPending},
		{ID: "r2", SenderID: "ghost", ReceiverID: "b", Status: models.StatusPending},
	}}
	svc := NewFriendService(requests, newFakeUserStore(activeUser("a")), nil)

	pending, err := svc.PendingFor(context.Background(), "b")
	require.NoError(t, err)

	require.Len(t, pending, 2)
	require.NotNil(t, pending[0].Sender)
	assert.Equal(t, "a", pending[0].Sender.ID)
	assert.Nil(t, pending[1].Sender)
}

func TestFriendsListsBothDirections(t *testing.T) {
	requests := &fakeRequestStore{requests: []*models.FriendRequest{
		{ID: "r1", SenderID: "me", ReceiverID: "sent", Status: models.StatusAccepted},
		{ID: "r2", SenderID: "received", ReceiverID: "me", Status: models.StatusAccepted},
		{ID: "r3", SenderID: "me", ReceiverID: "pending", Status: models.StatusPending},
		{ID: "r4", SenderID: "me", ReceiverID: "vanished", Status: models.StatusAccepted},
	}}
	svc := NewFriendService(requests, newFakeUserStore(activeUser("sent"), activeUser("received")), nil)

	friends, err := svc.Friends(context.Background(), "me")
	require.NoError(t, err)

	require.Len(t, friends, 2)
	assert.Equal(t, "sent", friends[0].ID)
	assert.Equal(t, "received", friends[1].ID)
}
