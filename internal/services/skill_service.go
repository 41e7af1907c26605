package services

import (
	"errors"
	"fmt"

	"github.com/mizuka-dev/projecthub-api/internal/constants"
	"github.com/mizuka-dev/projecthub-api/internal/models"
	"github.com/mizuka-dev/projecthub-api/internal/repository"
)

var (
	ErrTooManySkills    = errors.New("too many skills")
	ErrSkillNameTooLong = errors.New("skill name too long")
)

// SkillDiff is the computed difference between a user's current skill
// links and a requested skill list.
type SkillDiff struct {
	ToRemove   []uint64
	ToAddNames []string
}

// DiffSkills computes the add/remove sets between current links and the
// requested names. Pure computation: inputs are treated as sets, output
// order follows input order for the names and link order for removals.
// Comparison uses normalized names so "Python" and "python" are one
// skill.
func DiffSkills(current []models.UserSkill, requested []string) SkillDiff {
	requestedSet := make(map[string]struct{}, len(requested))
	requestedNames := make([]string, 0, len(requested))
	for _, name := range requested {
		n := models.NormalizeSkillName(name)
		if n == "" {
			continue
		}
		if _, ok := requestedSet[n]; ok {
			continue
		}
		requestedSet[n] = struct{}{}
		requestedNames = append(requestedNames, n)
	}

	currentSet := make(map[string]struct{}, len(current))
	var diff SkillDiff
	for _, link := range current {
		n := models.NormalizeSkillName(link.Skill.Name)
		currentSet[n] = struct{}{}
		if _, keep := requestedSet[n]; !keep {
			diff.ToRemove = append(diff.ToRemove, link.SkillID)
		}
	}

	for _, n := range requestedNames {
		if _, have := currentSet[n]; !have {
			diff.ToAddNames = append(diff.ToAddNames, n)
		}
	}

	return diff
}

// SkillService provides catalog access and user skill reconciliation.
type SkillService struct {
	skillRepo repository.SkillRepository
}

// NewSkillService creates a new SkillService.
func NewSkillService(skillRepo repository.SkillRepository) *SkillService {
	return &SkillService{
		skillRepo: skillRepo,
	}
}

// ListCatalog returns the full skill catalog.
func (s *SkillService) ListCatalog() ([]models.Skill, error) {
	skills, err := s.skillRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}

// ListUserSkills returns a user's skill links with skills preloaded.
func (s *SkillService) ListUserSkills(userID uint64) ([]models.UserSkill, error) {
	links, err := s.skillRepo.ListUserSkills(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user skills: %w", err)
	}
	return links, nil
}

// ReconcileUserSkills makes the user's skill links match the requested
// names: missing names are resolved or created in the catalog, stale
// links are removed, and the change is applied atomically.
func (s *SkillService) ReconcileUserSkills(userID uint64, requested []string) error {
	if len(requested) > constants.MaxSkillsPerUser {
		return ErrTooManySkills
	}
	for _, name := range requested {
		if len(models.NormalizeSkillName(name)) > constants.MaxSkillNameLength {
			return ErrSkillNameTooLong
		}
	}

	current, err := s.skillRepo.ListUserSkills(userID)
	if err != nil {
		return fmt.Errorf("failed to load current skills: %w", err)
	}

	diff := DiffSkills(current, requested)
	if len(diff.ToRemove) == 0 && len(diff.ToAddNames) == 0 {
		return nil
	}

	resolved, err := s.skillRepo.ResolveOrCreate(diff.ToAddNames)
	if err != nil {
		return fmt.Errorf("failed to resolve skills: %w", err)
	}

	// A requested name can resolve to an ID the user is already linked
	// to under a different raw spelling; those are not re-added.
	linked := make(map[uint64]struct{}, len(current))
	for _, link := range current {
		linked[link.SkillID] = struct{}{}
	}

	addIDs := make([]uint64, 0, len(diff.ToAddNames))
	for _, name := range diff.ToAddNames {
		id, ok := resolved[name]
		if !ok {
			continue
		}
		if _, already := linked[id]; already {
			continue
		}
		linked[id] = struct{}{}
		addIDs = append(addIDs, id)
	}

	if err := s.skillRepo.ApplySkillDiff(userID, diff.ToRemove, addIDs); err != nil {
		return fmt.Errorf("failed to apply skill diff: %w", err)
	}

	return nil
}
