package services

import (
	"context"
	"fmt"
	"sort"

	"friendsnap-backend/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	// Scoring weights: a shared category implies broader alignment than a
	// single shared tag.
	tagWeight      = 2
	categoryWeight = 3

	maxSharedInterests = 3
	maxSuggestions     = 10

	// Scan caps keep ranking latency bounded on large populations.
	profileScanLimit   = 100
	candidateScanLimit = 100
	connectionLimit    = 200

	rankConcurrency = 8
)

// MatchingService computes ranked friend suggestions from photo interest
// profiles.
type MatchingService struct {
	users    UserStore
	photos   PhotoStore
	requests FriendRequestStore
}

// NewMatchingService creates a new matching service
func NewMatchingService(users UserStore, photos PhotoStore, requests FriendRequestStore) *MatchingService {
	return &MatchingService{
		users:    users,
		photos:   photos,
		requests: requests,
	}
}

// BuildProfile derives the interest profile of a user from their approved
// photos. A user with no approved photos gets an empty profile, not an
// error.
func (s *MatchingService) BuildProfile(ctx context.Context, userID string) (InterestProfile, error) {
	photos, err := s.photos.ListApprovedByUser(ctx, userID, profileScanLimit)
	if err != nil {
		return InterestProfile{}, fmt.Errorf("failed to list photos: %w", err)
	}
	return NewInterestProfile(photos), nil
}

// Score computes the affinity between two profiles and the shared-interest
// explanations. Symmetric; zero means the pair must never be suggested.
// Explanations follow the fixed order of the category phrase table and are
// capped at three; shared categories without a phrase contribute score but
// no text.
func Score(a, b InterestProfile) (int, []string) {
	sharedTags := 0
	for tag := range a.Tags {
		if _, ok := b.Tags[tag]; ok {
			sharedTags++
		}
	}

	shared := make(map[string]struct{})
	for cat := range a.Categories {
		if _, ok := b.Categories[cat]; ok {
			shared[cat] = struct{}{}
		}
	}

	score := sharedTags*tagWeight + len(shared)*categoryWeight

	explanations := []string{}
	for _, cp := range categoryPhrases {
		if _, ok := shared[cp.category]; ok {
			explanations = append(explanations, cp.phrase)
		}
	}
	if len(explanations) > maxSharedInterests {
		explanations = explanations[:maxSharedInterests]
	}

	return score, explanations
}

// eligible filters the candidate pool for a subject: no self, no blocked
// pair in either direction, no existing connection (pending or accepted),
// active users only. Order-independent; ranking breaks ties later.
func eligible(subject *models.User, candidates []models.User, connected map[string]bool) []models.User {
	out := make([]models.User, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == subject.ID || !c.IsActive {
			continue
		}
		if subject.HasBlocked(c.ID) || c.HasBlocked(subject.ID) {
			continue
		}
		if connected[c.ID] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Rank returns up to ten friend suggestions for the subject, ordered by
// match score descending with candidate id ascending as tie-break. A
// subject with an empty profile gets an empty list without scoring anyone.
func (s *MatchingService) Rank(ctx context.Context, subjectID string) ([]models.Suggestion, error) {
	subject, err := s.users.GetByID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}
	if subject == nil {
		return nil, ErrNotFound
	}

	subjectProfile, err := s.BuildProfile(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if subjectProfile.IsEmpty() {
		return []models.Suggestion{}, nil
	}

	exclude := append([]string{subjectID}, subject.BlockedUsers...)
	candidates, err := s.users.ListActive(ctx, exclude, candidateScanLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	connections, err := s.requests.ListForUser(ctx, subjectID, connectionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	connected := make(map[string]bool, len(connections))
	for _, req := range connections {
		connected[req.Other(subjectID)] = true
	}

	pool := eligible(subject, candidates, connected)

	// Candidate profiles are independent; build them concurrently. Results
	// land in fixed slots so completion order cannot leak into the ranking.
	results := make([]*models.Suggestion, len(pool))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rankConcurrency)
	for i, candidate := range pool {
		i, candidate := i, candidate
		g.Go(func() error {
			suggestion, err := s.scoreCandidate(gctx, subjectProfile, candidate)
			if err != nil {
				// A candidate vanishing mid-scan must not abort the pass.
				log.Warn().Err(err).Str("candidate_id", candidate.ID).Msg("Skipping candidate")
				return nil
			}
			results[i] = suggestion
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	suggestions := make([]models.Suggestion, 0, len(results))
	for _, sg := range results {
		if sg != nil {
			suggestions = append(suggestions, *sg)
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].MatchScore != suggestions[j].MatchScore {
			return suggestions[i].MatchScore > suggestions[j].MatchScore
		}
		return suggestions[i].User.ID < suggestions[j].User.ID
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	return suggestions, nil
}

// scoreCandidate builds one candidate's profile, scores it against the
// subject and attaches the candidate's newest photo as sample. Returns nil
// for a zero score.
func (s *MatchingService) scoreCandidate(ctx context.Context, subjectProfile InterestProfile, candidate models.User) (*models.Suggestion, error) {
	photos, err := s.photos.ListApprovedByUser(ctx, candidate.ID, profileScanLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate photos: %w", err)
	}

	score, explanations := Score(subjectProfile, NewInterestProfile(photos))
	if score == 0 {
		return nil, nil
	}

	suggestion := &models.Suggestion{
		User:            candidate.Summary(),
		SharedInterests: explanations,
		MatchScore:      score,
	}
	if len(photos) > 0 {
		suggestion.SamplePhoto = &photos[0].ImageURL
	}
	return suggestion, nil
}
