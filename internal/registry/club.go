package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/figskate/results-backend/internal/domain"
)

type clubRepo interface {
	List(ctx context.Context) ([]*domain.Club, error)
	Create(ctx context.Context, club *domain.Club) error
	Update(ctx context.Context, club *domain.Club) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountAthletes(ctx context.Context, clubID uuid.UUID) (int, error)
	MoveAthletes(ctx context.Context, from, to uuid.UUID) (int64, error)
}

// ClubRegistry resolves club records by the file's own club identifier,
// then by normalized name, then by fuzzy similarity against every stored
// club. The similarity threshold is deliberately high: collapsing two real
// schools is much harder to undo than leaving a duplicate.
type ClubRegistry struct {
	clubs     clubRepo
	log       *slog.Logger
	threshold float64

	known    []*domain.Club // store contents plus this run's creations
	loaded   bool
	byFileID map[string]*domain.Club
}

func NewClubRegistry(log *slog.Logger, clubs clubRepo, threshold float64) *ClubRegistry {
	return &ClubRegistry{
		clubs:     clubs,
		log:       log.With("registry", "club"),
		threshold: threshold,
		byFileID:  map[string]*domain.Club{},
	}
}

// ResolveOrCreate returns the stored club for a parsed record, creating one
// when nothing matches. fileID is the record's identifier within the current
// file only; it is never matched against other files' identifiers.
func (r *ClubRegistry) ResolveOrCreate(ctx context.Context, fileID string, candidate domain.Club) (*domain.Club, error) {
	name := domain.CleanText(domain.FixLatinLookalikes(candidate.Name))
	if name == "" {
		return nil, nil
	}

	if fileID != "" {
		if club, ok := r.byFileID[fileID]; ok {
			return club, nil
		}
	}

	if err := r.load(ctx); err != nil {
		return nil, err
	}

	normalized := NormalizeClubName(name)
	var (
		match     *domain.Club
		bestScore = r.threshold
		best      *domain.Club
	)
	for _, existing := range r.known {
		if existing.Name == "" {
			continue
		}
		if NormalizeClubName(domain.FixLatinLookalikes(existing.Name)) == normalized {
			match = existing
			break
		}
		if score := Similarity(existing.Name, candidate.Name); score >= bestScore {
			bestScore = score
			best = existing
		}
	}
	if match == nil && best != nil {
		match = best
		r.log.InfoContext(ctx, "similar club names merged on resolve",
			slog.String("incoming", name),
			slog.String("kept", match.Name),
			slog.Float64("similarity", bestScore),
		)
	}

	if match == nil {
		created := candidate
		created.Name = name
		if err := r.clubs.Create(ctx, &created); err != nil {
			return nil, fmt.Errorf("create club: %w", err)
		}
		r.known = append(r.known, &created)
		if fileID != "" {
			r.byFileID[fileID] = &created
		}
		return &created, nil
	}

	match.Name = MoreComplete(match.Name, name)
	match.ShortName = MoreComplete(match.ShortName, candidate.ShortName)
	match.Country = MoreComplete(match.Country, candidate.Country)
	match.City = MoreComplete(match.City, candidate.City)
	match.ExternalID = FillText(match.ExternalID, candidate.ExternalID)
	if err := r.clubs.Update(ctx, match); err != nil {
		return nil, fmt.Errorf("update club: %w", err)
	}
	if fileID != "" {
		r.byFileID[fileID] = match
	}
	return match, nil
}

// MergeDuplicates collapses every group of clubs whose names score at or
// above the threshold. Within a group the club with the most athletes wins,
// longest name breaking ties; athletes of the losers are moved over before
// the losers are deleted. Returns the number of clubs removed.
func (r *ClubRegistry) MergeDuplicates(ctx context.Context) (int, error) {
	all, err := r.clubs.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list clubs: %w", err)
	}

	merged := 0
	processed := map[uuid.UUID]bool{}

	for i, club := range all {
		if club.Name == "" || processed[club.ID] {
			continue
		}

		group := []*domain.Club{club}
		for _, other := range all[i+1:] {
			if other.Name == "" || processed[other.ID] {
				continue
			}
			if Similarity(club.Name, other.Name) >= r.threshold {
				group = append(group, other)
				processed[other.ID] = true
			}
		}
		processed[club.ID] = true
		if len(group) < 2 {
			continue
		}

		keep, losers, err := r.pickKeeper(ctx, group)
		if err != nil {
			return merged, err
		}
		for _, loser := range losers {
			moved, err := r.clubs.MoveAthletes(ctx, loser.ID, keep.ID)
			if err != nil {
				return merged, fmt.Errorf("move athletes from %q: %w", loser.Name, err)
			}
			keep.ShortName = FillText(keep.ShortName, loser.ShortName)
			keep.Country = FillText(keep.Country, loser.Country)
			keep.City = FillText(keep.City, loser.City)
			if err := r.clubs.Update(ctx, keep); err != nil {
				return merged, fmt.Errorf("update club %q: %w", keep.Name, err)
			}
			if err := r.clubs.Delete(ctx, loser.ID); err != nil {
				return merged, fmt.Errorf("delete club %q: %w", loser.Name, err)
			}
			r.repoint(loser.ID, keep)
			merged++
			r.log.InfoContext(ctx, "duplicate club merged",
				slog.String("removed", loser.Name),
				slog.String("kept", keep.Name),
				slog.Int64("athletes_moved", moved),
			)
		}
	}

	if merged > 0 {
		r.log.InfoContext(ctx, "club auto-merge finished", slog.Int("merged", merged))
	}
	r.loaded = false
	r.known = nil
	return merged, nil
}

// pickKeeper orders a duplicate group: most athletes first, longest name as
// the tie-break.
func (r *ClubRegistry) pickKeeper(ctx context.Context, group []*domain.Club) (*domain.Club, []*domain.Club, error) {
	type counted struct {
		club     *domain.Club
		athletes int
	}
	ranked := make([]counted, 0, len(group))
	for _, c := range group {
		n, err := r.clubs.CountAthletes(ctx, c.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("count athletes of %q: %w", c.Name, err)
		}
		ranked = append(ranked, counted{club: c, athletes: n})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].athletes != ranked[j].athletes {
			return ranked[i].athletes > ranked[j].athletes
		}
		return utf8.RuneCountInString(ranked[i].club.Name) > utf8.RuneCountInString(ranked[j].club.Name)
	})
	losers := make([]*domain.Club, 0, len(ranked)-1)
	for _, c := range ranked[1:] {
		losers = append(losers, c.club)
	}
	return ranked[0].club, losers, nil
}

func (r *ClubRegistry) load(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	all, err := r.clubs.List(ctx)
	if err != nil {
		return fmt.Errorf("list clubs: %w", err)
	}
	r.known = all
	r.loaded = true
	return nil
}

// Lookup returns the resolved club for a file-local club identifier. The
// mapping survives MergeDuplicates: identifiers of removed clubs point at
// the club they were merged into.
func (r *ClubRegistry) Lookup(fileID string) (*domain.Club, bool) {
	club, ok := r.byFileID[fileID]
	return club, ok
}

// repoint keeps the per-file cache valid after a merge removed one of its
// targets.
func (r *ClubRegistry) repoint(removed uuid.UUID, keep *domain.Club) {
	for fileID, club := range r.byFileID {
		if club.ID == removed {
			r.byFileID[fileID] = keep
		}
	}
}
