package reputation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type BadgeCategory string

const (
	CategorySkill         BadgeCategory = "skill"
	CategoryAchievement   BadgeCategory = "achievement"
	CategoryParticipation BadgeCategory = "participation"
	CategoryCertification BadgeCategory = "certification"
)

// Badge is append-only: never edited or removed once earned, unique per
// profile by ID.
type Badge struct {
	ID          string        `yaml:"id" msgpack:"i" json:"id"`
	Name        string        `yaml:"name" msgpack:"n" json:"name"`
	Description string        `yaml:"description" msgpack:"d" json:"description"`
	Category    BadgeCategory `yaml:"category" msgpack:"c" json:"category"`
	Date        time.Time     `yaml:"date" msgpack:"t" json:"date"`
}

// Profile is the durable identity read model. The address is assigned at
// registration and is permanent for the profile's lifetime.
type Profile struct {
	Name             string    `yaml:"name" msgpack:"n" json:"name"`
	Address          string    `yaml:"address" msgpack:"a" json:"address"`
	Reputation       uint64    `yaml:"reputation" msgpack:"r" json:"reputation"`
	Level            string    `yaml:"level" msgpack:"l" json:"level"`
	StakeAmount      float64   `yaml:"stake_amount" msgpack:"s" json:"stake_amount"`
	Bio              string    `yaml:"bio,omitempty" msgpack:"b" json:"bio,omitempty"`
	Email            string    `yaml:"email,omitempty" msgpack:"e" json:"email,omitempty"`
	Badges           []Badge   `yaml:"badges" msgpack:"bs" json:"badges"`
	RegistrationDate time.Time `yaml:"registration_date" msgpack:"rd" json:"registration_date"`
}

func (p *Profile) hasBadge(id string) bool {
	for _, b := range p.Badges {
		if b.ID == id {
			return true
		}
	}

	return false
}

// clone returns a deep copy so a mutation can be staged and swapped in
// atomically.
func (p *Profile) clone() *Profile {
	c := *p
	c.Badges = make([]Badge, len(p.Badges))
	copy(c.Badges, p.Badges)

	return &c
}

const addressPrefix = "CSX"

// NewAddress produces a collision-resistant opaque identifier. It stands in
// for real key derivation, which belongs to the backend identity layer.
func NewAddress() string {
	u := uuid.New()
	return addressPrefix + strings.ToUpper(strings.ReplaceAll(u.String(), "-", ""))
}
