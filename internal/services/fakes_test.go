package services

import (
	"context"
	"sort"
	"time"

	"friendsnap-backend/internal/models"
)

// In-memory store fakes backing the service tests.

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	return s.users[id], nil
}

func (s *fakeUserStore) GetByNickname(_ context.Context, nickname string) (*models.User, error) {
	for _, u := range s.users {
		if u.Nickname == nickname {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) ListActive(_ context.Context, exclude []string, limit int) ([]models.User, error) {
	excluded := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}

	var out []models.User
	for _, u := range s.users {
		if !u.IsActive || excluded[u.ID] {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeUserStore) AddBlocked(_ context.Context, userID, blockedID string) error {
	u := s.users[userID]
	if u == nil {
		return nil
	}
	if !u.HasBlocked(blockedID) {
		u.BlockedUsers = append(u.BlockedUsers, blockedID)
	}
	return nil
}

func (s *fakeUserStore) RemoveBlocked(_ context.Context, userID, blockedID string) error {
	u := s.users[userID]
	if u == nil {
		return nil
	}
	out := u.BlockedUsers[:0]
	for _, id := range u.BlockedUsers {
		if id != blockedID {
			out = append(out, id)
		}
	}
	u.BlockedUsers = out
	return nil
}

func (s *fakeUserStore) UpdatePushToken(_ context.Context, userID string, pushToken *string) error {
	if u := s.users[userID]; u != nil {
		u.PushToken = pushToken
	}
	return nil
}

type fakePhotoStore struct {
	photos []models.Photo
}

func (s *fakePhotoStore) Create(_ context.Context, photo *models.Photo) error {
	s.photos = append(s.photos, *photo)
	return nil
}

func (s *fakePhotoStore) ListApprovedByUser(_ context.Context, userID string, limit int) ([]models.Photo, error) {
	var out []models.Photo
	for _, p := range s.photos {
		if p.UserID == userID && p.IsApproved {
			out = append(out, p)
		}
	}
	return newestFirst(out, limit), nil
}

func (s *fakePhotoStore) ListApproved(_ context.Context, exclude []string, limit int) ([]models.Photo, error) {
	excluded := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}

	var out []models.Photo
	for _, p := range s.photos {
		if p.IsApproved && !excluded[p.UserID] {
			out = append(out, p)
		}
	}
	return newestFirst(out, limit), nil
}

func (s *fakePhotoStore) Delete(_ context.Context, photoID, ownerID string) (bool, error) {
	for i, p := range s.photos {
		if p.ID == photoID && p.UserID == ownerID {
			s.photos = append(s.photos[:i], s.photos[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newestFirst(photos []models.Photo, limit int) []models.Photo {
	sort.SliceStable(photos, func(i, j int) bool {
		return photos[i].CreatedAt.After(photos[j].CreatedAt)
	})
	if len(photos) > limit {
		photos = photos[:limit]
	}
	return photos
}

type fakeRequestStore struct {
	requests []*models.FriendRequest
}

func (s *fakeRequestStore) Insert(_ context.Context, req *models.FriendRequest) error {
	cp := *req
	s.requests = append(s.requests, &cp)
	return nil
}

func (s *fakeRequestStore) FindByPair(_ context.Context, a, b string) (*models.FriendRequest, error) {
	for _, r := range s.requests {
		if (r.SenderID == a && r.ReceiverID == b) || (r.SenderID == b && r.ReceiverID == a) {
			return r, nil
		}
	}
	return nil, nil
}

func (s *fakeRequestStore) UpdateStatus(_ context.Context, id, receiverID, expected, status string) (int64, error) {
	for _, r := range s.requests {
		if r.ID == id && r.ReceiverID == receiverID && r.Status == expected {
			r.Status = status
			return 1, nil
		}
	}
	return 0, nil
}

func (s *fakeRequestStore) ListPendingForReceiver(_ context.Context, receiverID string, limit int) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	for _, r := range s.requests {
		if r.ReceiverID == receiverID && r.Status == models.StatusPending && len(out) < limit {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeRequestStore) ListForUser(_ context.Context, userID string, limit int) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	for _, r := range s.requests {
		if (r.SenderID == userID || r.ReceiverID == userID) && len(out) < limit {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeRequestStore) ListAcceptedForUser(_ context.Context, userID string, limit int) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	for _, r := range s.requests {
		if r.Status == models.StatusAccepted && (r.SenderID == userID || r.ReceiverID == userID) && len(out) < limit {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeMessageStore struct {
	messages []*models.Message
	threads  []Thread
}

func (s *fakeMessageStore) Insert(_ context.Context, msg *models.Message) error {
	cp := *msg
	s.messages = append(s.messages, &cp)
	return nil
}

func (s *fakeMessageStore) ListBetween(_ context.Context, a, b string, limit int) ([]models.Message, error) {
	var out []models.Message
	for _, m := range s.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, *m)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeMessageStore) MarkRead(_ context.Context, senderID, receiverID string) error {
	for _, m := range s.messages {
		if m.SenderID == senderID && m.ReceiverID == receiverID {
			m.IsRead = true
		}
	}
	return nil
}

func (s *fakeMessageStore) ListThreads(_ context.Context, _ string, _ int) ([]Thread, error) {
	return s.threads, nil
}

type fakeReportStore struct {
	reports []*models.Report
}

func (s *fakeReportStore) Insert(_ context.Context, report *models.Report) error {
	cp := *report
	s.reports = append(s.reports, &cp)
	return nil
}

func (s *fakeReportStore) ListPending(_ context.Context, limit int) ([]models.Report, error) {
	var out []models.Report
	for _, r := range s.reports {
		if r.Status == models.StatusPending && len(out) < limit {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeReportStore) Resolve(_ context.Context, id, status string, resolvedAt time.Time) (int64, error) {
	for _, r := range s.reports {
		if r.ID == id {
			r.Status = status
			r.ResolvedAt = &resolvedAt
			return 1, nil
		}
	}
	return 0, nil
}

type fakeMediaStore struct {
	keys []string
}

func (s *fakeMediaStore) Put(_ context.Context, key, _ string, _ []byte) (string, error) {
	s.keys = append(s.keys, key)
	return "https://media.test/" + key, nil
}

type fakeClassifier struct {
	result *models.ModerationResult
	err    error
}

func (c *fakeClassifier) Classify(_ context.Context, _ string) (*models.ModerationResult, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

type fakeNotifier struct {
	pushes []string
}

func (n *fakeNotifier) Push(_ context.Context, deviceToken, title, _ string) error {
	n.pushes = append(n.pushes, deviceToken+":"+title)
	return nil
}

// photoFor builds an approved photo for matching tests.
func photoFor(userID, category string, tags []string, age time.Duration) models.Photo {
	return models.Photo{
		ID:         userID + "-" + category,
		UserID:     userID,
		ImageURL:   "https://media.test/" + userID + ".jpg",
		Category:   category,
		Tags:       tags,
		IsApproved: true,
		CreatedAt:  time.Now().Add(-age),
	}
}

func activeUser(id string) *models.User {
	return &models.User{
		ID:           id,
		Nickname:     id,
		DisplayName:  id,
		BlockedUsers: []string{},
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
}
