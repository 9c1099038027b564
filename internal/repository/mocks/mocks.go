package mocks

import (
	"context"

	"github.com/ganot/guildhall/internal/domain/announcement"
	"github.com/ganot/guildhall/internal/domain/chat"
	"github.com/ganot/guildhall/internal/domain/event"
	"github.com/ganot/guildhall/internal/domain/party"
	"github.com/ganot/guildhall/internal/domain/roster"
	"github.com/ganot/guildhall/internal/notify"
	"github.com/stretchr/testify/mock"
)

// PartyRepository is a mock for party.Repository.
type PartyRepository struct {
	mock.Mock
}

func (m *PartyRepository) Create(ctx context.Context, p *party.Party, slots []party.Slot) error {
	args := m.Called(ctx, p, slots)
	return args.Error(0)
}

func (m *PartyRepository) Get(ctx context.Context, id string) (*party.Party, []party.Slot, error) {
	args := m.Called(ctx, id)
	var p *party.Party
	if v, ok := args.Get(0).(*party.Party); ok {
		p = v
	}
	var slots []party.Slot
	if v, ok := args.Get(1).([]party.Slot); ok {
		slots = v
	}
	return p, slots, args.Error(2)
}

func (m *PartyRepository) List(ctx context.Context, opts party.ListOptions) ([]party.PartySlots, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]party.PartySlots); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PartyRepository) Claim(ctx context.Context, partyID, slotID, occupantID string, resolved *roster.Class) (bool, error) {
	args := m.Called(ctx, partyID, slotID, occupantID, resolved)
	return args.Bool(0), args.Error(1)
}

func (m *PartyRepository) Release(ctx context.Context, partyID, occupantID string) error {
	args := m.Called(ctx, partyID, occupantID)
	return args.Error(0)
}

func (m *PartyRepository) UpdateInfo(ctx context.Context, id, name, description string) error {
	args := m.Called(ctx, id, name, description)
	return args.Error(0)
}

func (m *PartyRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Roster is a mock for party.Roster.
type Roster struct {
	mock.Mock
}

func (m *Roster) Get(ctx context.Context, id string) (*roster.Member, error) {
	args := m.Called(ctx, id)
	if member, ok := args.Get(0).(*roster.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

// Notifier is a mock for party.Notifier.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) PartyCreated(ctx context.Context, partyID, name string) error {
	args := m.Called(ctx, partyID, name)
	return args.Error(0)
}

func (m *Notifier) PartyFilled(ctx context.Context, partyID string, occupantIDs []string) error {
	args := m.Called(ctx, partyID, occupantIDs)
	return args.Error(0)
}

// Provisioner is a mock for party.Provisioner.
type Provisioner struct {
	mock.Mock
}

func (m *Provisioner) ProvisionChannel(ctx context.Context, partyID, name string) error {
	args := m.Called(ctx, partyID, name)
	return args.Error(0)
}

// RosterRepository is a mock for roster.Repository.
type RosterRepository struct {
	mock.Mock
}

func (m *RosterRepository) Create(ctx context.Context, member *roster.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *RosterRepository) Get(ctx context.Context, id string) (*roster.Member, error) {
	args := m.Called(ctx, id)
	if member, ok := args.Get(0).(*roster.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RosterRepository) List(ctx context.Context, opts roster.ListOptions) ([]roster.Member, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]roster.Member); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RosterRepository) Update(ctx context.Context, member *roster.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// EventRepository is a mock for event.Repository.
type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Create(ctx context.Context, ev *event.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *EventRepository) Get(ctx context.Context, id string) (*event.Event, error) {
	args := m.Called(ctx, id)
	if ev, ok := args.Get(0).(*event.Event); ok {
		return ev, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]event.Event); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ChatRepository is a mock for chat.Repository.
type ChatRepository struct {
	mock.Mock
}

func (m *ChatRepository) CreateChannel(ctx context.Context, ch *chat.Channel) error {
	args := m.Called(ctx, ch)
	return args.Error(0)
}

func (m *ChatRepository) GetChannel(ctx context.Context, id string) (*chat.Channel, error) {
	args := m.Called(ctx, id)
	if ch, ok := args.Get(0).(*chat.Channel); ok {
		return ch, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ChatRepository) ListChannels(ctx context.Context) ([]chat.Channel, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]chat.Channel); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ChatRepository) CreateMessage(ctx context.Context, msg *chat.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *ChatRepository) ListMessages(ctx context.Context, channelID string, opts chat.ListMessagesOptions) ([]chat.Message, error) {
	args := m.Called(ctx, channelID, opts)
	if list, ok := args.Get(0).([]chat.Message); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// AnnouncementRepository is a mock for announcement.Repository.
type AnnouncementRepository struct {
	mock.Mock
}

func (m *AnnouncementRepository) Create(ctx context.Context, a *announcement.Announcement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AnnouncementRepository) List(ctx context.Context) ([]announcement.Announcement, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]announcement.Announcement); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// DeviceRepository is a mock for notify.DeviceRepository.
type DeviceRepository struct {
	mock.Mock
}

func (m *DeviceRepository) Register(ctx context.Context, d *notify.Device) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *DeviceRepository) Unregister(ctx context.Context, memberID, token string) error {
	args := m.Called(ctx, memberID, token)
	return args.Error(0)
}

func (m *DeviceRepository) ListByMembers(ctx context.Context, memberIDs []string) ([]notify.Device, error) {
	args := m.Called(ctx, memberIDs)
	if list, ok := args.Get(0).([]notify.Device); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
