package models

import (
	"strings"
	"time"
)

// TurfBooking is a reserved hourly slot on a turf.
type TurfBooking struct {
	ID       string    `dynamodbav:"id" json:"id"`
	GroupID  string    `dynamodbav:"groupId,omitempty" json:"group_id,omitempty"`
	UserID   string    `dynamodbav:"userId" json:"user_id"`
	UserName string    `dynamodbav:"userName" json:"user_name"`
	Date     string    `dynamodbav:"date" json:"date"`
	TimeSlot string    `dynamodbav:"timeSlot" json:"time_slot"`
	BookedAt time.Time `dynamodbav:"bookedAt" json:"booked_at"`
}

// TurfPricing is the hourly rate of a turf.
type TurfPricing struct {
	PerHour  float64 `dynamodbav:"perHour" json:"per_hour"`
	Currency string  `dynamodbav:"currency" json:"currency"`
}

// TurfTimings are the daily opening hours, "HH:MM" 24h format.
type TurfTimings struct {
	Opening string `dynamodbav:"opening" json:"opening"`
	Closing string `dynamodbav:"closing" json:"closing"`
}

// Turf is a bookable venue owned by a turf-owner account.
type Turf struct {
	ID         string        `dynamodbav:"id" json:"id"`
	OwnerID    string        `dynamodbav:"ownerId" json:"owner_id"`
	OwnerName  string        `dynamodbav:"ownerName" json:"owner_name"`
	Name       string        `dynamodbav:"name" json:"name"`
	Location   Location      `dynamodbav:"location" json:"location"`
	Sports     []string      `dynamodbav:"sports" json:"sports"`
	Facilities []string      `dynamodbav:"facilities" json:"facilities"`
	Pricing    TurfPricing   `dynamodbav:"pricing" json:"pricing"`
	Timings    TurfTimings   `dynamodbav:"timings" json:"timings"`
	Bookings   []TurfBooking `dynamodbav:"bookings" json:"bookings"`
	Status     string        `dynamodbav:"status" json:"status"`
	CreatedAt  time.Time     `dynamodbav:"createdAt" json:"created_at"`
}

// SupportsSport reports whether the turf lists the sport, case-insensitively.
func (t *Turf) SupportsSport(sport string) bool {
	for _, s := range t.Sports {
		if strings.EqualFold(s, sport) {
			return true
		}
	}
	return false
}

// TurfsTable is the DynamoDB table name for turfs.
const TurfsTable = "Turfs"
