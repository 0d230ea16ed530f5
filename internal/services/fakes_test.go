package services

// Хранилища в памяти для тестов сервисов.
// Семантика условных операций (TripSetScore, Redeem) повторяет хранилище Mongo.

import (
	"context"
	"sync"

	models "github.com/glkeru/safedrive/internal/models"
	"github.com/google/uuid"
)

type fakeUserStorage struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeUserStorage() *fakeUserStorage {
	return &fakeUserStorage{users: make(map[uuid.UUID]models.User)}
}

func (f *fakeUserStorage) UserCreate(ctx context.Context, user models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStorage) UserGet(ctx context.Context, id uuid.UUID) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStorage) UserGetByEmail(ctx context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (f *fakeUserStorage) UserList(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		list = append(list, user)
	}
	return list, nil
}

func (f *fakeUserStorage) UserUpdate(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.Phone != nil {
		user.Phone = *upd.Phone
	}
	if upd.DrivingLicense != nil {
		user.DrivingLicense = *upd.DrivingLicense
	}
	if upd.Role != nil {
		user.Role = *upd.Role
	}
	f.users[id] = user
	return user, nil
}

func (f *fakeUserStorage) UserDelete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStorage) ContactAdd(ctx context.Context, userId uuid.UUID, contact models.EmergencyContact) ([]models.EmergencyContact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userId]
	if !ok {
		return nil, models.ErrNotFound
	}
	user.EmergencyContacts = append(user.EmergencyContacts, contact)
	f.users[userId] = user
	return user.EmergencyContacts, nil
}

func (f *fakeUserStorage) ContactRemove(ctx context.Context, userId uuid.UUID, contactId uuid.UUID) ([]models.EmergencyContact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userId]
	if !ok {
		return nil, models.ErrNotFound
	}
	contacts := user.EmergencyContacts[:0]
	for _, contact := range user.EmergencyContacts {
		if contact.ID != contactId {
			contacts = append(contacts, contact)
		}
	}
	user.EmergencyContacts = contacts
	f.users[userId] = user
	return user.EmergencyContacts, nil
}

func (f *fakeUserStorage) GetBalance(ctx context.Context, userId uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userId]
	if !ok {
		return 0, models.ErrNotFound
	}
	return user.Points, nil
}

func (f *fakeUserStorage) CreditPoints(ctx context.Context, userId uuid.UUID, points int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userId]
	if !ok {
		return 0, models.ErrNotFound
	}
	user.Points += points
	f.users[userId] = user
	return user.Points, nil
}

type fakeTripStorage struct {
	mu    sync.Mutex
	trips map[uuid.UUID]models.Trip
}

func newFakeTripStorage() *fakeTripStorage {
	return &fakeTripStorage{trips: make(map[uuid.UUID]models.Trip)}
}

func (f *fakeTripStorage) TripCreate(ctx context.Context, trip models.Trip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trips[trip.ID] = trip
	return nil
}

func (f *fakeTripStorage) TripGet(ctx context.Context, id uuid.UUID) (models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	trip, ok := f.trips[id]
	if !ok {
		return models.Trip{}, models.ErrNotFound
	}
	return trip, nil
}

func (f *fakeTripStorage) TripList(ctx context.Context, userId uuid.UUID) ([]models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []models.Trip{}
	for _, trip := range f.trips {
		if userId == uuid.Nil || trip.User == userId {
			list = append(list, trip)
		}
	}
	return list, nil
}

func (f *fakeTripStorage) TripUpdate(ctx context.Context, id uuid.UUID, upd models.TripUpdate) (models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	trip, ok := f.trips[id]
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
	f.trips[id] = trip
	return trip, nil
}

func (f *fakeTripStorage) TripDelete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.trips[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.trips, id)
	return nil
}

func (f *fakeTripStorage) EventAppend(ctx context.Context, tripId uuid.UUID, event models.DrivingEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	trip, ok := f.trips[tripId]
	if !ok {
		return models.ErrNotFound
	}
	trip.Events = append(trip.Events, event)
	f.trips[tripId] = trip
	return nil
}

func (f *fakeTripStorage) TripSetScore(ctx context.Context, tripId uuid.UUID, score int, points int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	trip, ok := f.trips[tripId]
	if !ok {
		return false, models.ErrNotFound
	}
	if trip.Score != nil {
		return false, nil
	}
	trip.Score = &score
	trip.PointsEarned = points
	f.trips[tripId] = trip
	return true, nil
}

type fakeRewardStorage struct {
	mu          sync.Mutex
	rewards     map[uuid.UUID]models.Reward
	redemptions []models.Redemption
	users       *fakeUserStorage
}

func newFakeRewardStorage(users *fakeUserStorage) *fakeRewardStorage {
	return &fakeRewardStorage{rewards: make(map[uuid.UUID]models.Reward), users: users}
}

func (f *fakeRewardStorage) RewardCreate(ctx context.Context, reward models.Reward) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rewards[reward.ID] = reward
	return nil
}

func (f *fakeRewardStorage) RewardGet(ctx context.Context, id uuid.UUID) (models.Reward, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reward, ok := f.rewards[id]
	if !ok {
		return models.Reward{}, models.ErrNotFound
	}
	return reward, nil
}

func (f *fakeRewardStorage) RewardList(ctx context.Context, filter models.RewardFilter) ([]models.Reward, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []models.Reward{}
	for _, reward := range f.rewards {
		if filter.IsActive != nil && reward.IsActive != *filter.IsActive {
			continue
		}
		if len(filter.Categories) > 0 {
			found := false
			for _, cat := range filter.Categories {
				if reward.Category == cat {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		list = append(list, reward)
	}
	return list, nil
}

func (f *fakeRewardStorage) RewardUpdate(ctx context.Context, id uuid.UUID, upd models.RewardUpdate) (models.Reward, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reward, ok := f.rewards[id]
	if !ok {
		return models.Reward{}, models.ErrNotFound
	}
	if upd.Name != nil {
		reward.Name = *upd.Name
	}
	if upd.Description != nil {
		reward.Description = *upd.Description
	}
	if upd.PointsRequired != nil {
		reward.PointsRequired = *upd.PointsRequired
	}
	if upd.Category != nil {
		reward.Category = *upd.Category
	}
	if upd.Image != nil {
		reward.Image = *upd.Image
	}
	if upd.ExpiryDate != nil {
		reward.ExpiryDate = upd.ExpiryDate
	}
	if upd.IsActive != nil {
		reward.IsActive = *upd.IsActive
	}
	f.rewards[id] = reward
	return reward, nil
}

func (f *fakeRewardStorage) RewardDelete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rewards[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.rewards, id)
	return nil
}

func (f *fakeRewardStorage) Redeem(ctx context.Context, redemption models.Redemption) (int64, error) {
	f.users.mu.Lock()
	defer f.users.mu.Unlock()
	user, ok := f.users.users[redemption.User]
	if !ok {
		return 0, models.ErrNotFound
	}
	if user.Points < redemption.PointsUsed {
		return 0, models.ErrInsufficientPoints
	}
	user.Points -= redemption.PointsUsed
	f.users.users[redemption.User] = user

	f.mu.Lock()
	f.redemptions = append(f.redemptions, redemption)
	f.mu.Unlock()
	return user.Points, nil
}

func (f *fakeRewardStorage) RedemptionList(ctx context.Context, userId uuid.UUID) ([]models.Redemption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []models.Redemption{}
	for _, redemption := range f.redemptions {
		if redemption.User == userId {
			list = append(list, redemption)
		}
	}
	return list, nil
}

type fakeCache struct {
	mu       sync.Mutex
	balances map[string]int64
}

func (f *fakeCache) GetBalance(ctx context.Context, user string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	points, ok := f.balances[user]
	if !ok {
		return 0, models.ErrNotFound
	}
	return points, nil
}

func (f *fakeCache) SetBalance(ctx context.Context, user string, points int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[user] = points
	return nil
}

func (f *fakeCache) InvalidateBalance(ctx context.Context, user string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.balances, user)
	return nil
}

type fakeEmergencyStorage struct {
	mu          sync.Mutex
	emergencies map[uuid.UUID]models.Emergency
}

func newFakeEmergencyStorage() *fakeEmergencyStorage {
	return &fakeEmergencyStorage{emergencies: make(map[uuid.UUID]models.Emergency)}
}

func (f *fakeEmergencyStorage) EmergencyCreate(ctx context.Context, emergency models.Emergency) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emergencies[emergency.ID] = emergency
	return nil
}

func (f *fakeEmergencyStorage) EmergencyGet(ctx context.Context, id uuid.UUID) (models.Emergency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	emergency, ok := f.emergencies[id]
	if !ok {
		return models.Emergency{}, models.ErrNotFound
	}
	return emergency, nil
}

func (f *fakeEmergencyStorage) EmergencyList(ctx context.Context, userId uuid.UUID) ([]models.Emergency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []models.Emergency{}
	for _, emergency := range f.emergencies {
		if userId == uuid.Nil || emergency.User == userId {
			list = append(list, emergency)
		}
	}
	return list, nil
}

func (f *fakeEmergencyStorage) EmergencyUpdate(ctx context.Context, id uuid.UUID, upd models.EmergencyUpdate) (models.Emergency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	emergency, ok := f.emergencies[id]
	if !ok {
		return models.Emergency{}, models.ErrNotFound
	}
	if upd.Status != nil {
		emergency.Status = *upd.Status
	}
	if upd.ResolvedAt != nil {
		emergency.ResolvedAt = upd.ResolvedAt
	}
	f.emergencies[id] = emergency
	return emergency, nil
}

func (f *fakeEmergencyStorage) EmergencyDelete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.emergencies[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.emergencies, id)
	return nil
}

func (f *fakeEmergencyStorage) ResponderAdd(ctx context.Context, id uuid.UUID, responder models.Responder) (models.Emergency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	emergency, ok := f.emergencies[id]
	if !ok {
		return models.Emergency{}, models.ErrNotFound
	}
	emergency.Status = models.EmergencyActive
	emergency.Responders = append(emergency.Responders, responder)
	f.emergencies[id] = emergency
	return emergency, nil
}
