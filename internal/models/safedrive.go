package models

import (
	"time"

	"github.com/google/uuid"
)

// Роли пользователей
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleFleet = "fleet"
)

type EmergencyContact struct {
	ID       uuid.UUID `bson:"id" json:"id"`
	Name     string    `bson:"name" json:"name"`
	Phone    string    `bson:"phone" json:"phone"`
	Relation string    `bson:"relation,omitempty" json:"relation,omitempty"`
}

type User struct {
	ID                uuid.UUID          `bson:"id" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	PasswordHash      string             `bson:"passwordHash" json:"-"`
	Phone             string             `bson:"phone" json:"phone"`
	DrivingLicense    string             `bson:"drivingLicense" json:"drivingLicense"`
	Role              string             `bson:"role" json:"role"`
	Points            int64              `bson:"points" json:"points"` // баланс баллов, всегда >= 0
	EmergencyContacts []EmergencyContact `bson:"emergencyContacts" json:"emergencyContacts"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}

// Типы событий вождения
type EventType string

const (
	EventHardBrake         EventType = "hard_brake"
	EventRapidAcceleration EventType = "rapid_acceleration"
	EventSpeeding          EventType = "speeding"
	EventPhoneUsage        EventType = "phone_usage"
	EventSharpTurn         EventType = "sharp_turn"
)

func (t EventType) Valid() bool {
	switch t {
	case EventHardBrake, EventRapidAcceleration, EventSpeeding, EventPhoneUsage, EventSharpTurn:
		return true
	}
	return false
}

// GeoJSON Point
type Location struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
}

type DrivingEvent struct {
	Type      EventType `bson:"type" json:"type"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Location  *Location `bson:"location,omitempty" json:"location,omitempty"`
	Severity  *int      `bson:"severity,omitempty" json:"severity,omitempty"` // 1..5, может отсутствовать
}

type Trip struct {
	ID            uuid.UUID      `bson:"id" json:"id"`
	User          uuid.UUID      `bson:"user" json:"user"`
	StartTime     time.Time      `bson:"startTime" json:"startTime"`
	EndTime       *time.Time     `bson:"endTime,omitempty" json:"endTime,omitempty"`
	StartLocation *Location      `bson:"startLocation,omitempty" json:"startLocation,omitempty"`
	EndLocation   *Location      `bson:"endLocation,omitempty" json:"endLocation,omitempty"`
	Distance      float64        `bson:"distance" json:"distance"`
	Duration      *float64       `bson:"duration,omitempty" json:"duration,omitempty"`
	Events        []DrivingEvent `bson:"events" json:"events"`
	Score         *int           `bson:"score,omitempty" json:"score,omitempty"` // 0..100, отсутствует до расчета
	PointsEarned  int64          `bson:"pointsEarned" json:"pointsEarned"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
}

// Категории вознаграждений
const (
	CategoryFuel      = "fuel"
	CategoryInsurance = "insurance"
	CategoryRetail    = "retail"
	CategoryService   = "service"
	CategoryOther     = "other"
)

type Reward struct {
	ID             uuid.UUID  `bson:"id" json:"id"`
	Name           string     `bson:"name" json:"name"`
	Description    string     `bson:"description" json:"description"`
	PointsRequired int64      `bson:"pointsRequired" json:"pointsRequired"`
	Category       string     `bson:"category" json:"category"`
	Image          string     `bson:"image,omitempty" json:"image,omitempty"`
	ExpiryDate     *time.Time `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	IsActive       bool       `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
}

// Статусы погашения
const (
	RedemptionPending   = "pending"
	RedemptionCompleted = "completed"
	RedemptionCancelled = "cancelled"
)

type Redemption struct {
	ID             uuid.UUID `bson:"id" json:"id"`
	User           uuid.UUID `bson:"user" json:"user"`
	Reward         uuid.UUID `bson:"reward" json:"reward"`
	PointsUsed     int64     `bson:"pointsUsed" json:"pointsUsed"`
	Status         string    `bson:"status" json:"status"`
	RedemptionCode string    `bson:"redemptionCode" json:"redemptionCode"`
	RedeemedAt     time.Time `bson:"redeemedAt" json:"redeemedAt"`
}

// Типы и статусы инцидентов
const (
	EmergencyAccident   = "accident"
	EmergencyMedical    = "medical"
	EmergencyMechanical = "mechanical"
	EmergencyOther      = "other"

	EmergencyActive    = "active"
	EmergencyResolved  = "resolved"
	EmergencyCancelled = "cancelled"
)

type Responder struct {
	Type   string `bson:"type" json:"type"` // police, ambulance, fire, tow, other
	Status string `bson:"status" json:"status"`
}

type Emergency struct {
	ID            uuid.UUID   `bson:"id" json:"id"`
	User          uuid.UUID   `bson:"user" json:"user"`
	Location      *Location   `bson:"location,omitempty" json:"location,omitempty"`
	EmergencyType string      `bson:"emergencyType" json:"emergencyType"`
	Status        string      `bson:"status" json:"status"`
	Responders    []Responder `bson:"responders" json:"responders"`
	CreatedAt     time.Time   `bson:"createdAt" json:"createdAt"`
	ResolvedAt    *time.Time  `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}

// Частичные обновления (nil - поле не меняется)
type TripUpdate struct {
	EndTime     *time.Time `json:"endTime,omitempty"`
	EndLocation *Location  `json:"endLocation,omitempty"`
	Distance    *float64   `json:"distance,omitempty"`
	Duration    *float64   `json:"duration,omitempty"`
}

type UserUpdate struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	DrivingLicense *string `json:"drivingLicense,omitempty"`
	Role           *string `json:"role,omitempty"`
}

type RewardUpdate struct {
	Name           *string    `json:"name,omitempty"`
	Description    *string    `json:"description,omitempty"`
	PointsRequired *int64     `json:"pointsRequired,omitempty"`
	Category       *string    `json:"category,omitempty"`
	Image          *string    `json:"image,omitempty"`
	ExpiryDate     *time.Time `json:"expiryDate,omitempty"`
	IsActive       *bool      `json:"isActive,omitempty"`
}

type EmergencyUpdate struct {
	Status     *string    `json:"status,omitempty"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
}

// Фильтр списка вознаграждений
type RewardFilter struct {
	Categories []string
	IsActive   *bool
}
