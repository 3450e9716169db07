package models

import (
	"slices"
	"time"
)

// Priority of a todo job.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityStandard Priority = "standard"
	PriorityNormal   Priority = "normal"
)

// ValidPriority reports whether p is one of the known priority values.
func ValidPriority(p Priority) bool {
	return slices.Contains([]Priority{PriorityCritical, PriorityHigh, PriorityStandard, PriorityNormal}, p)
}

// OfferStatus is the lifecycle state of a candidate's offer on a todo.
type OfferStatus string

const (
	OfferPending   OfferStatus = "pending"
	OfferAccepted  OfferStatus = "accepted"
	OfferRejected  OfferStatus = "rejected"
	OfferCancelled OfferStatus = "cancelled"
	OfferCompleted OfferStatus = "completed"
)

type User struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Username      string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email         string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	EmailVerified bool      `gorm:"default:false" json:"emailVerified"`
	IsActive      bool      `gorm:"default:true" json:"isActive"`
	IsSuperuser   bool      `gorm:"default:false" json:"isSuperuser"`
	Password      string    `gorm:"size:100;not null" json:"-"`
	Salt          string    `gorm:"size:64;not null" json:"-"`
	Profile       *Profile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Profile struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Firstname   string    `gorm:"size:80" json:"firstname"`
	Lastname    string    `gorm:"size:80" json:"lastname"`
	Middlename  string    `gorm:"size:80" json:"middlename"`
	PhoneNumber string    `gorm:"size:32;column:phone_number" json:"phoneNumber"`
	Bio         string    `gorm:"type:text" json:"bio"`
	Image       string    `gorm:"size:2048" json:"image"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Todo is a posted job. OwnerID is always the owning user's id; expanded owner
// data is attached at the response layer only, never used for identity checks.
type Todo struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Notes         string    `gorm:"type:text" json:"notes"`
	Priority      Priority  `gorm:"size:16;default:'critical';not null" json:"priority"`
	Duedate       time.Time `gorm:"not null" json:"duedate"`
	OpenForOffers bool      `gorm:"column:open_for_offers;default:false" json:"openForOffers"`
	OwnerID       uint      `gorm:"column:owner_id;index;not null" json:"ownerId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Offer is one candidate's bid to fulfil a todo. Identity is the
// (todo, candidate) pair, so a candidate gets at most one row per todo.
type Offer struct {
	TodoID    uint        `gorm:"primaryKey;autoIncrement:false" json:"todoId"`
	UserID    uint        `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	Status    OfferStatus `gorm:"size:16;default:'pending';not null" json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Evaluation is the one-time rating a todo owner leaves for the candidate who
// completed the work. Ratings are in [0,5]; the three optional ones are
// nullable so aggregates only average rows that actually carry a value.
type Evaluation struct {
	TodoID          uint      `gorm:"primaryKey;autoIncrement:false" json:"todoId"`
	TasktakerID     uint      `gorm:"primaryKey;autoIncrement:false;column:tasktaker_id" json:"tasktakerId"`
	NoShow          bool      `gorm:"column:no_show;default:false" json:"noShow"`
	Headline        string    `gorm:"size:255" json:"headline"`
	Comment         string    `gorm:"type:text" json:"comment"`
	Professionalism *int      `json:"professionalism"`
	Completeness    *int      `json:"completeness"`
	Efficiency      *int      `json:"efficiency"`
	OverallRating   int       `gorm:"column:overall_rating;not null" json:"overallRating"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Comment is a remark on a todo, or on its accepted offer when Task is set.
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	TodoID    uint      `gorm:"index;not null" json:"todoId"`
	OwnerID   uint      `gorm:"column:owner_id;not null" json:"ownerId"`
	Task      bool      `gorm:"default:false" json:"task"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
