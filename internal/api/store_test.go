package api

// Хранилище в памяти для httptest-тестов: реализует все storage-интерфейсы.

import (
	"context"
	"sync"

	models "github.com/glkeru/safedrive/internal/models"
	"github.com/google/uuid"
)

type memStore struct {
	mu          sync.Mutex
	users       map[uuid.UUID]models.User
	trips       map[uuid.UUID]models.Trip
	rewards     map[uuid.UUID]models.Reward
	redemptions []models.Redemption
	emergencies map[uuid.UUID]models.Emergency
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[uuid.UUID]models.User),
		trips:       make(map[uuid.UUID]models.Trip),
		rewards:     make(map[uuid.UUID]models.Reward),
		emergencies: make(map[uuid.UUID]models.Emergency),
	}
}

func (m *memStore) UserCreate(ctx context.Context, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *memStore) UserGet(ctx context.Context, id uuid.UUID) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return user, nil
}

func (m *memStore) UserGetByEmail(ctx context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (m *memStore) UserList(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := []models.User{}
	for _, user := range m.users {
		list = append(list, user)
	}
	return list, nil
}

func (m *memStore) UserUpdate(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Role != nil {
		user.Role = *upd.Role
	}
	m.users[id] = user
	return user, nil
}

func (m *memStore) UserDelete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memStore) ContactAdd(ctx context.Context, userId uuid.UUID, contact models.EmergencyContact) ([]models.EmergencyContact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userId]
	if !ok {
		return nil, models.ErrNotFound
	}
	user.EmergencyContacts = append(user.EmergencyContacts, contact)
	m.users[userId] = user
	return user.EmergencyContacts, nil
}

func (m *memStore) ContactRemove(ctx context.Context, userId uuid.UUID, contactId uuid.UUID) ([]models.EmergencyContact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userId]
	if !ok {
		return nil, models.ErrNotFound
	}
	contacts := []models.EmergencyContact{}
	for _, contact := range user.EmergencyContacts {
		if contact.ID != contactId {
			contacts = append(contacts, contact)
		}
	}
	user.EmergencyContacts = contacts
	m.users[userId] = user
	return user.EmergencyContacts, nil
}

func (m *memStore) GetBalance(ctx context.Context, userId uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userId]
	if !ok {
		return 0, models.ErrNotFound
	}
	return user.Points, nil
}

func (m *memStore) CreditPoints(ctx context.Context, userId uuid.UUID, points int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userId]
	if !ok {
		return 0, models.ErrNotFound
	}
	user.Points += points
	m.users[userId] = user
	return user.Points, nil
}

func (m *memStore) TripCreate(ctx context.Context, trip models.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
	return nil
}

func (m *memStore) TripGet(ctx context.Context, id uuid.UUID) (models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[id]
	if !ok {
		return models.Trip{}, models.ErrNotFound
	}
	return trip, nil
}

func (m *memStore) TripList(ctx context.Context, userId uuid.UUID) ([]models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := []models.Trip{}
	for _, trip := range m.trips {
		if userId == uuid.Nil || trip.User == userId {
			list = append(list, trip)
		}
	}
	return list, nil
}

func (m *memStore) TripUpdate(ctx context.Context, id uuid.UUID, upd models.TripUpdate) (models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[id]
	if !ok {
		return models.Trip{}, models.ErrNotFound
	}
	if upd.EndTime != nil {
		trip.EndTime = upd.EndTime
	}
	if upd.EndLocation != nil {
		trip.EndLocation = upd.EndLocation
	}
	if upd.Distance != nil {
		trip.Distance = *upd.Distance
	}
	if upd.Duration != nil {
		trip.Duration = upd.Duration
	}
	m.trips[id] = trip
	return trip, nil
}

func (m *memStore) TripDelete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.trips, id)
	return nil
}

func (m *memStore) EventAppend(ctx context.Context, tripId uuid.UUID, event models.DrivingEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[tripId]
	if !ok {
		return models.ErrNotFound
	}
	trip.Events = append(trip.Events, event)
	m.trips[tripId] = trip
	return nil
}

func (m *memStore) TripSetScore(ctx context.Context, tripId uuid.UUID, score int, points int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[tripId]
	if !ok {
		return false, models.ErrNotFound
	}
	if trip.Score != nil {
		return false, nil
	}
	trip.Score = &score
	trip.PointsEarned = points
	m.trips[tripId] = trip
	return true, nil
}

func (m *memStore) RewardCreate(ctx context.Context, reward models.Reward) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rewards[reward.ID] = reward
	return nil
}

func (m *memStore) RewardGet(ctx context.Context, id uuid.UUID) (models.Reward, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reward, ok := m.rewards[id]
	if !ok {
		return models.Reward{}, models.ErrNotFound
	}
	return reward, nil
}

func (m *memStore) RewardList(ctx context.Context, filter models.RewardFilter) ([]models.Reward, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := []models.Reward{}
	for _, reward := range m.rewards {
		if filter.IsActive != nil && reward.IsActive != *filter.IsActive {
			continue
		}
		list = append(list, reward)
	}
	return list, nil
}

func (m *memStore) RewardUpdate(ctx context.Context, id uuid.UUID, upd models.RewardUpdate) (models.Reward, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reward, ok := m.rewards[id]
	if !ok {
		return models.Reward{}, models.ErrNotFound
	}
	if upd.IsActive != nil {
		reward.IsActive = *upd.IsActive
	}
	if upd.PointsRequired != nil {
		reward.PointsRequired = *upd.PointsRequired
	}
	m.rewards[id] = reward
	return reward, nil
}

func (m *memStore) RewardDelete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rewards[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.rewards, id)
	return nil
}

func (m *memStore) Redeem(ctx context.Context, redemption models.Redemption) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[redemption.User]
	if !ok {
		return 0, models.ErrNotFound
	}
	if user.Points < redemption.PointsUsed {
		return 0, models.ErrInsufficientPoints
	}
	user.Points -= redemption.PointsUsed
	m.users[redemption.User] = user
	m.redemptions = append(m.redemptions, redemption)
	return user.Points, nil
}

func (m *memStore) RedemptionList(ctx context.Context, userId uuid.UUID) ([]models.Redemption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := []models.Redemption{}
	for _, redemption := range m.redemptions {
		if redemption.User == userId {
			list = append(list, redemption)
		}
	}
	return list, nil
}

func (m *memStore) EmergencyCreate(ctx context.Context, emergency models.Emergency) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emergencies[emergency.ID] = emergency
	return nil
}

func (m *memStore) EmergencyGet(ctx context.Context, id uuid.UUID) (models.Emergency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	emergency, ok := m.emergencies[id]
	if !ok {
		return models.Emergency{}, models.ErrNotFound
	}
	return emergency, nil
}

func (m *memStore) EmergencyList(ctx context.Context, userId uuid.UUID) ([]models.Emergency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := []models.Emergency{}
	for _, emergency := range m.emergencies {
		if userId == uuid.Nil || emergency.User == userId {
			list = append(list, emergency)
		}
	}
	return list, nil
}

func (m *memStore) EmergencyUpdate(ctx context.Context, id uuid.UUID, upd models.EmergencyUpdate) (models.Emergency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	emergency, ok := m.emergencies[id]
	if !ok {
		return models.Emergency{}, models.ErrNotFound
	}
	if upd.Status != nil {
		emergency.Status = *upd.Status
	}
	if upd.ResolvedAt != nil {
		emergency.ResolvedAt = upd.ResolvedAt
	}
	m.emergencies[id] = emergency
	return emergency, nil
}

func (m *memStore) EmergencyDelete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.emergencies[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.emergencies, id)
	return nil
}

func (m *memStore) ResponderAdd(ctx context.Context, id uuid.UUID, responder models.Responder) (models.Emergency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	emergency, ok := m.emergencies[id]
	if !ok {
		return models.Emergency{}, models.ErrNotFound
	}
	emergency.Status = models.EmergencyActive
	emergency.Responders = append(emergency.Responders, responder)
	m.emergencies[id] = emergency
	return emergency, nil
}
