package models

import "time"

// Friend request statuses. A request only ever moves pending -> accepted.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
)

// Photo categories assigned by the image classifier.
const (
	CategoryAnimals = "animals"
	CategoryNature  = "nature"
	CategoryFood    = "food"
	CategorySports  = "sports"
	CategoryMusic   = "music"
	CategoryArt     = "art"
	CategoryColors  = "colors"
	CategoryObjects = "objects"
	CategoryPlaces  = "places"
	CategoryOther   = "other"
)

// User represents a registered user. PasswordHash and BlockedUsers never
// leave the backend.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Nickname     string    `bson:"nickname" json:"-"`
	DisplayName  string    `bson:"display_name" json:"nickname"`
	AvatarURL    string    `bson:"avatar_url" json:"avatar_url"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	BlockedUsers []string  `bson:"blocked_users" json:"-"`
	PushToken    *string   `bson:"push_token,omitempty" json:"-"`
	IsActive     bool      `bson:"is_active" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Summary returns the public view of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Nickname:  u.DisplayName,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// HasBlocked reports whether the user has blocked the given user id.
func (u *User) HasBlocked(userID string) bool {
	for _, id := range u.BlockedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// UserSummary is the public projection of a user embedded in responses.
type UserSummary struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// Photo represents an uploaded photo. Only approved photos contribute to
// interest profiles and feeds.
type Photo struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	ImageURL    string    `bson:"image_url" json:"image_url"`
	Category    string    `bson:"category" json:"category"`
	Tags        []string  `bson:"tags" json:"tags"`
	Description string    `bson:"description" json:"description"`
	IsApproved  bool      `bson:"is_approved" json:"is_approved"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// FriendRequest links two users. At most one request document exists per
// unordered pair, regardless of direction or status.
type FriendRequest struct {
	ID         string    `bson:"id" json:"id"`
	SenderID   string    `bson:"sender_id" json:"sender_id"`
	ReceiverID string    `bson:"receiver_id" json:"receiver_id"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// Other returns the member of the pair that is not the given user.
func (r *FriendRequest) Other(userID string) string {
	if r.SenderID == userID {
		return r.ReceiverID
	}
	return r.SenderID
}

// Message is a direct message between two users.
type Message struct {
	ID          string    `bson:"id" json:"id"`
	SenderID    string    `bson:"sender_id" json:"sender_id"`
	ReceiverID  string    `bson:"receiver_id" json:"receiver_id"`
	Content     string    `bson:"content" json:"content"`
	MessageType string    `bson:"message_type" json:"message_type"`
	IsRead      bool      `bson:"is_read" json:"is_read"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Report is a user- or photo-level abuse report awaiting review.
type Report struct {
	ID              string     `bson:"id" json:"id"`
	ReporterID      string     `bson:"reporter_id" json:"reporter_id"`
	ReportedUserID  *string    `bson:"reported_user_id,omitempty" json:"reported_user_id,omitempty"`
	ReportedPhotoID *string    `bson:"reported_photo_id,omitempty" json:"reported_photo_id,omitempty"`
	Reason          string     `bson:"reason" json:"reason"`
	Status          string     `bson:"status" json:"status"`
	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
	ResolvedAt      *time.Time `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
}

// ModerationResult is the classifier's verdict for an uploaded image.
type ModerationResult struct {
	ContainsPeople bool     `json:"contains_people"`
	IsFamousPerson bool     `json:"is_famous_person"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	Description    string   `json:"description"`
}

// Suggestion is a ranked friend suggestion. Derived per request, never
// persisted.
type Suggestion struct {
	User            UserSummary `json:"user"`
	SharedInterests []string    `json:"shared_interests"`
	MatchScore      int         `json:"match_score"`
	SamplePhoto     *string     `json:"sample_photo,omitempty"`
}

// Conversation summarises a message thread with one partner.
type Conversation struct {
	Partner     UserSummary `json:"partner"`
	LastMessage LastMessage `json:"last_message"`
	UnreadCount int         `json:"unread_count"`
}

// LastMessage is the newest message of a conversation as shown in the
// conversation list.
type LastMessage struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	IsMine    bool      `json:"is_mine"`
}
