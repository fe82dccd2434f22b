package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"friendsnap-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileOf(tags []string, categories ...string) InterestProfile {
	p := InterestProfile{
		Tags:       make(map[string]struct{}),
		Categories: make(map[string]struct{}),
	}
	for _, t := range tags {
		p.Tags[t] = struct{}{}
	}
	for _, c := range categories {
		p.Categories[c] = struct{}{}
	}
	return p
}

func TestBuildProfileUnionsApprovedPhotos(t *testing.T) {
	photos := &fakePhotoStore{photos: []models.Photo{
		photoFor("u1", models.CategoryNature, []string{"sunset", "beach"}, time.Hour),
		photoFor("u1", models.CategoryAnimals, []string{"dog", "beach"}, 2*time.Hour),
		{ID: "p3", UserID: "u1", Category: models.CategoryFood, Tags: []string{"pizza"}, IsApproved: false},
		photoFor("u2", models.CategoryFood, []string{"pizza"}, time.Hour),
	}}
	svc := NewMatchingService(newFakeUserStore(), photos, &fakeRequestStore{})

	profile, err := svc.BuildProfile(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, profileOf([]string{"sunset", "beach", "dog"}, models.CategoryNature, models.CategoryAnimals), profile)
}

func TestBuildProfileEmptyForUserWithoutPhotos(t *testing.T) {
	svc := NewMatchingService(newFakeUserStore(), &fakePhotoStore{}, &fakeRequestStore{})

	profile, err := svc.BuildProfile(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, profile.IsEmpty())
}

func TestScoreWeightsTagsAndCategories(t *testing.T) {
	subject := profileOf([]string{"sunset", "beach"}, models.CategoryNature)
	candidate := profileOf([]string{"sunset", "mountains"}, models.CategoryNature)

	score, explanations := Score(subject, candidate)

	assert.Equal(t, 5, score) // 2*1 shared tag + 3*1 shared category
	assert.Equal(t, []string{"You both like nature"}, explanations)
}

func TestScoreDisjointProfilesIsZero(t *testing.T) {
	subject := profileOf([]string{"sunset", "beach"}, models.CategoryNature)
	candidate := profileOf([]string{"pizza"}, models.CategoryFood)

	score, explanations := Score(subject, candidate)

	assert.Zero(t, score)
	assert.Empty(t, explanations)
}

func TestScoreIsSymmetric(t *testing.T) {
	a := profileOf([]string{"sunset", "dog", "guitar"}, models.CategoryNature, models.CategoryMusic)
	b := profileOf([]string{"dog", "guitar", "pizza"}, models.CategoryMusic, models.CategoryFood)

	scoreAB, _ := Score(a, b)
	scoreBA, _ := Score(b, a)

	assert.Equal(t, scoreAB, scoreBA)
}

func TestScoreExplanationsFollowTableOrderAndCap(t *testing.T) {
	shared := []string{models.CategoryPlaces, models.CategoryAnimals, models.CategoryMusic, models.CategoryFood}
	a := profileOf(nil, shared...)
	b := profileOf(nil, shared...)

	score, explanations := Score(a, b)

	assert.Equal(t, 12, score)
	// Table order, not input order, and capped at three.
	assert.Equal(t, []string{
		"You both like animals",
		"You both like food",
		"You both like music",
	}, explanations)
}

func TestScorePositiveWithoutExplanation(t *testing.T) {
	// "other" scores as a shared category but has no phrase.
	a := profileOf(nil, models.CategoryOther)
	b := profileOf(nil, models.CategoryOther)

	score, explanations := Score(a, b)

	assert.Equal(t, 3, score)
	assert.Empty(t, explanations)
}

func TestRankEmptySubjectProfile(t *testing.T) {
	users := newFakeUserStore(activeUser("subject"), activeUser("candidate"))
	photos := &fakePhotoStore{photos: []models.Photo{
		photoFor("candidate", models.CategoryNature, []string{"sunset"}, time.Hour),
	}}
	svc := NewMatchingService(users, photos, &fakeRequestStore{})

	suggestions, err := svc.Rank(context.Background(), "subject")
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestRankScenario(t *testing.T) {
	users := newFakeUserStore(activeUser("subject"), activeUser("x"), activeUser("y"))
	photos := &fakePhotoStore{photos: []models.Photo{
		photoFor("subject", models.CategoryNature, []string{"sunset", "beach"}, time.Hour),
		photoFor("x", models.CategoryNature, []string{"sunset", "mountains"}, time.Hour),
		photoFor("y", models.CategoryFood, []string{"pizza"}, time.Hour),
	}}
	svc := NewMatchingService(users, photos, &fakeRequestStore{})

	suggestions, err := svc.Rank(context.Background(), "subject")
	require.NoError(t, err)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "x", suggestions[0].User.ID)
	assert.Equal(t, 5, suggestions[0].MatchScore)
	assert.Equal(t, []string{"You both like nature"}, suggestions[0].SharedInterests)
	require.NotNil(t, suggestions[0].SamplePhoto)
	assert.Equal(t, "https://media.test/x.jpg", *suggestions[0].SamplePhoto)
}

func TestRankSamplePhotoIsNewest(t *testing.T) {
	users := newFakeUserStore(activeUser("subject"), activeUser("c"))
	newest := photoFor("c", models.CategoryNature, []string{"sunset"}, time.Minute)
	newest.ImageURL = "https://media.test/newest.jpg"
	photos := &fakePhotoStore{photos: []models.Photo{
		photoFor("subject", models.CategoryNature, []string{"sunset"}, time.Hour),
		photoFor("c", models.CategoryAnimals, []string{"dog"}, 3*time.Hour),
		newest,
	}}
	svc := NewMatchingService(users, photos, &fakeRequestStore{})

	suggestions, err := svc.Rank(context.Background(), "subject")
	require.NoError(t, err)

	require.Len(t, suggestions, 1)
	require.NotNil(t, suggestions[0].SamplePhoto)
	assert.Equal(t, "https://media.test/newest.jpg", *suggestions[0].SamplePhoto)
}

func TestRankExcludesBlockedEitherDirection(t *testing.T) {
	subject := activeUser("subject")
	blocker := activeUser("blocker")
	blocker.BlockedUsers = []string{"subject"}
	blocked := activeUser("blocked")
	subject.BlockedUsers = []string{"blocked"}

	users := newFakeUserStore(subject, blocker, blocked)
	photos := &fakePhotoStore{photos: []models.Photo{
		photoFor("subject", models.CategoryNature, []string{"sunset"}, time.Hour),
		photoFor("blocker", models.CategoryNature, []string{"sunset"}, time.Hour),
		photoFor("blocked", models.CategoryNature, []string{"sunset"}, time.Hour),
	}}
	svc := NewMatchingService(users, photos, &fakeRequestStore{})

	suggestions, err := svc.Rank(context.Background(), "subject")
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestRankExcludesConnectedPairs(t *testing.T) {
	users := newFakeUserStore(
		activeUser("subject"), activeUser("pending"), activeUser("accepted"), activeUser("free"),
	)
	photos := &fakePhotoStore{photos: []models.Photo{
		photoFor("subject", models.CategoryNature, []string{"sunset"}, time.Hour),
		photoFor("pending", models.CategoryNature, []string{"sunset"}, time.Hour),
		photoFor("accepted", models.CategoryNature, []string{"sunset"}, time.Hour),
		photoFor("free", models.CategoryNature, []string{"sunset"}, time.Hour),
	}}
	requests := &fakeRequestStore{requests: []*models.FriendRequest{
		{ID: "r1", SenderID: "subject", ReceiverID: "pending", Status: models.StatusPending},
		{ID: "r2", SenderID: "accepted", ReceiverID: "subject", Status: models.StatusAccepted},
	}}
	svc := NewMatchingService(users, photos, requests)

	suggestions, err := svc.Rank(context.Background(), "subject")
	require.NoError(t, err)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "free", suggestions[0].User.ID)
}

func TestRankSkipsInactiveUsers(t *testing.T) {
	inactive := activeUser("inactive")
	inactive.IsActive = false
	users := newFakeUserStore(activeUser("subject"), inactive)
	photos := &fakePhotoStore{photos: []models.Photo{
		photoFor("subject", models.CategoryNature, []string{"sunset"}, time.Hour),
		photoFor("inactive", models.CategoryNature, []string{"sunset"}, time.Hour),
	}}
	svc := NewMatchingService(users, photos, &fakeRequestStore{})

	suggestions, err := svc.Rank(context.Background(), "subject")
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestRankOrderCapAndTieBreak(t *testing.T) {
	subjectTags := []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8"}
	users := newFakeUserStore(activeUser("subject"))
	photos := &fakePhotoStore{photos: []models.Photo{
		photoFor("subject", models.CategoryNature, subjectTags, time.Hour),
	}}

	// Candidates c01..c12 share an increasing number of tags; c05 and c06
	// tie on score.
	for i := 1; i <= 12; i++ {
		id := fmt.Sprintf("c%02d", i)
		users.users[id] = activeUser(id)
		shared := i / 2
		if shared == 0 {
			shared = 1
		}
		photos.photos = append(photos.photos,
			photoFor(id, models.CategoryNature, subjectTags[:shared], time.Hour))
	}

	svc := NewMatchingService(users, photos, &fakeRequestStore{})

	suggestions, err := svc.Rank(context.Background(), "subject")
	require.NoError(t, err)

	assert.Len(t, suggestions, 10)
	for i := 1; i < len(suggestions); i++ {
		prev, cur := suggestions[i-1], suggestions[i]
		assert.GreaterOrEqual(t, prev.MatchScore, cur.MatchScore)
		if prev.MatchScore == cur.MatchScore {
			assert.Less(t, prev.User.ID, cur.User.ID)
		}
	}
}

func TestRankUnknownSubject(t *testing.T) {
	svc := NewMatchingService(newFakeUserStore(), &fakePhotoStore{}, &fakeRequestStore{})

	_, err := svc.Rank(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
