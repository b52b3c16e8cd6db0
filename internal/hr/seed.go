package hr

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"talentflow/pkg/models"
)

//go:embed seed.yaml
var defaultSeed []byte

// SeedData is the on-disk shape of a seed file. Keys use the same camelCase
// names as the JSON API; user passwords are given in plain text and hashed
// on load.
type SeedData struct {
	Users       []SeedUser               `json:"users"`
	Candidates  []models.Candidate       `json:"candidates"`
	Interviews  []models.Interview       `json:"interviews"`
	Employees   []models.Employee        `json:"employees"`
	Onboarding  []models.OnboardingTask  `json:"onboarding"`
	Offboarding []models.OffboardingTask `json:"offboarding"`
	Documents   []models.Document        `json:"documents"`
}

type SeedUser struct {
	ID         string          `json:"id"`
	Email      string          `json:"email"`
	Password   string          `json:"password"`
	Name       string          `json:"name"`
	Role       models.UserRole `json:"role"`
	Avatar     string          `json:"avatar"`
	Department string          `json:"department"`
}

// LoadSeed reads the seed file at path, or the built-in demo data when path is empty.
func LoadSeed(path string) (*SeedData, error) {
	raw := defaultSeed
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		raw = data
	}
	return ParseSeed(raw)
}

// ParseSeed decodes YAML seed data. The document is converted through JSON
// so the models' json tags apply.
func ParseSeed(raw []byte) (*SeedData, error) {
	var generic map[string]interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}

	buf, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("failed to convert seed data: %w", err)
	}

	var seed SeedData
	if err := json.Unmarshal(buf, &seed); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	return &seed, nil
}

// Apply loads the seed records into dir. hash turns plain-text passwords into
// stored hashes.
func (s *SeedData) Apply(dir *Directory, hash func(password string) (string, error)) error {
	users := make([]models.User, 0, len(s.Users))
	for _, u := range s.Users {
		hashed, err := hash(u.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.Email, err)
		}
		users = append(users, models.User{
			ID:           u.ID,
			Email:        u.Email,
			PasswordHash: hashed,
			Name:         u.Name,
			Role:         u.Role,
			Avatar:       u.Avatar,
			Department:   u.Department,
		})
	}

	steps := []func() error{
		func() error { return dir.Users.Seed(users...) },
		func() error { return dir.Candidates.Seed(s.Candidates...) },
		func() error { return dir.Interviews.Seed(s.Interviews...) },
		func() error { return dir.Employees.Seed(s.Employees...) },
		func() error { return dir.Onboarding.Seed(s.Onboarding...) },
		func() error { return dir.Offboarding.Seed(s.Offboarding...) },
		func() error { return dir.Documents.Seed(s.Documents...) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
