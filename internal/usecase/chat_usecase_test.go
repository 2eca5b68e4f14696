package usecase

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"cosmeshop/internal/domain/model"
	repo "cosmeshop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockChatRepo struct {
	mock.Mock
}

func (m *mockChatRepo) FindRoomByCustomerID(ctx context.Context, customerID int64) (model.ChatRoom, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(model.ChatRoom), args.Error(1)
}

func (m *mockChatRepo) FindRoomByKey(ctx context.Context, roomKey string) (model.ChatRoom, error) {
	args := m.Called(ctx, roomKey)
	return args.Get(0).(model.ChatRoom), args.Error(1)
}

func (m *mockChatRepo) CreateRoom(ctx context.Context, room model.ChatRoom) (model.ChatRoom, error) {
	args := m.Called(ctx, room)
	return args.Get(0).(model.ChatRoom), args.Error(1)
}

func (m *mockChatRepo) TouchRoom(ctx context.Context, roomID int64) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

func (m *mockChatRepo) ListRoomSummaries(ctx context.Context, unreadFrom model.ChatSender) ([]repo.ChatRoomSummary, error) {
	args := m.Called(ctx, unreadFrom)
	return args.Get(0).([]repo.ChatRoomSummary), args.Error(1)
}

func (m *mockChatRepo) CreateMessage(ctx context.Context, msg model.ChatMessage) (model.ChatMessage, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(model.ChatMessage), args.Error(1)
}

func (m *mockChatRepo) ListMessagesByRoomID(ctx context.Context, roomID int64) ([]model.ChatMessage, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).([]model.ChatMessage), args.Error(1)
}

func (m *mockChatRepo) MarkRead(ctx context.Context, roomID int64, sender model.ChatSender) error {
	args := m.Called(ctx, roomID, sender)
	return args.Error(0)
}

func TestOpenMyRoom_CreatesRoomOnFirstVisit(t *testing.T) {
	chats := new(mockChatRepo)
	uc := NewChatUsecase(chats, new(MockUserRepository))

	chats.On("FindRoomByCustomerID", mock.Anything, int64(7)).
		Return(model.ChatRoom{}, repo.ErrNotFound)
	chats.On("CreateRoom", mock.Anything, mock.MatchedBy(func(r model.ChatRoom) bool {
		return r.CustomerID == 7 && r.RoomKey != ""
	})).Return(model.ChatRoom{ID: 1, CustomerID: 7, RoomKey: "room-key"}, nil)
	chats.On("MarkRead", mock.Anything, int64(1), model.ChatSenderAdmin).Return(nil)
	chats.On("ListMessagesByRoomID", mock.Anything, int64(1)).Return([]model.ChatMessage{}, nil)

	out, err := uc.OpenMyRoom(context.Background(), customer(7))

	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.Room.CustomerID)
	chats.AssertCalled(t, "MarkRead", mock.Anything, int64(1), model.ChatSenderAdmin)
}

func TestSendAsCustomer_TouchesRoom(t *testing.T) {
	chats := new(mockChatRepo)
	uc := NewChatUsecase(chats, new(MockUserRepository))

	room := model.ChatRoom{ID: 1, CustomerID: 7}
	chats.On("FindRoomByCustomerID", mock.Anything, int64(7)).Return(room, nil)
	chats.On("CreateMessage", mock.Anything, mock.MatchedBy(func(m model.ChatMessage) bool {
		return m.RoomID == 1 && m.Sender == model.ChatSenderCustomer && m.Body == "When will my order ship?"
	})).Return(model.ChatMessage{ID: 10, RoomID: 1}, nil)
	chats.On("TouchRoom", mock.Anything, int64(1)).Return(nil)

	msg, err := uc.SendAsCustomer(context.Background(), customer(7),
		SendMessageInput{Body: "  When will my order ship?  "})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), msg.ID)
	chats.AssertCalled(t, "TouchRoom", mock.Anything, int64(1))
}

func TestSendAsCustomer_EmptyBodyRejected(t *testing.T) {
	uc := NewChatUsecase(new(mockChatRepo), new(MockUserRepository))

	_, err := uc.SendAsCustomer(context.Background(), customer(7), SendMessageInput{Body: "   "})

	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestSendAsCustomer_TooLongRejected(t *testing.T) {
	uc := NewChatUsecase(new(mockChatRepo), new(MockUserRepository))

	_, err := uc.SendAsCustomer(context.Background(), customer(7),
		SendMessageInput{Body: strings.Repeat("a", maxMessageLength+1)})

	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestOpenRoom_AdminMarksCustomerMessagesRead(t *testing.T) {
	chats := new(mockChatRepo)
	uc := NewChatUsecase(chats, new(MockUserRepository))

	room := model.ChatRoom{ID: 1, CustomerID: 7, RoomKey: "room-key"}
	chats.On("FindRoomByKey", mock.Anything, "room-key").Return(room, nil)
	chats.On("MarkRead", mock.Anything, int64(1), model.ChatSenderCustomer).Return(nil)
	chats.On("ListMessagesByRoomID", mock.Anything, int64(1)).Return([]model.ChatMessage{
		{ID: 10, RoomID: 1, Sender: model.ChatSenderCustomer, Body: "hello"},
	}, nil)

	out, err := uc.OpenRoom(context.Background(), adminActor(), "room-key")

	assert.NoError(t, err)
	assert.Len(t, out.Messages, 1)
	chats.AssertCalled(t, "MarkRead", mock.Anything, int64(1), model.ChatSenderCustomer)
}

func TestOpenRoom_NonAdminForbidden(t *testing.T) {
	uc := NewChatUsecase(new(mockChatRepo), new(MockUserRepository))

	_, err := uc.OpenRoom(context.Background(), customer(7), "room-key")

	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusForbidden, he.Status)
}
