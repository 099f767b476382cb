package board

import (
	"slices"

	"github.com/matzehuels/auteur/pkg/errors"
)

// Project holds the board collection of one production plus its settings.
type Project struct {
	ID       string   `json:"id" yaml:"id" bson:"_id"`
	Name     string   `json:"name" yaml:"name" bson:"name"`
	Boards   Boards   `json:"boards" yaml:"boards" bson:"boards"`
	Settings Settings `json:"settings" yaml:"settings" bson:"settings"`
	Gear     Gear     `json:"gear" yaml:"gear" bson:"gear"`
}

// Default kind and placement of the board every new project starts with.
const (
	SeedBoardType  = "IDEABOARD"
	SeedBoardTitle = "Ideaboard"
)

// NewProject creates a project with one empty idea board at the origin.
func NewProject(name string) *Project {
	return &Project{
		ID:   NewID(),
		Name: name,
		Boards: Boards{{
			ID:    NewID(),
			Type:  SeedBoardType,
			Title: SeedBoardTitle,
			Notes: []Note{},
			X:     0, Y: 0, W: 1, H: 2,
		}},
		Settings: DefaultSettings(),
	}
}

// Clone returns a deep copy of p.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	c.Boards = make(Boards, len(p.Boards))
	for i, b := range p.Boards {
		c.Boards[i] = b.Clone()
	}
	c.Gear.Items = slices.Clone(p.Gear.Items)
	return &c
}

// Shared returns the cross-board context passed to every plugin.
func (p *Project) Shared() Shared {
	return Shared{Gear: p.Gear, Settings: p.Settings}
}

// Validate checks the project and all of its boards.
func (p *Project) Validate(maxW, maxH int) error {
	if err := errors.ValidateID(p.ID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "project id")
	}
	seen := make(map[string]struct{}, len(p.Boards))
	for _, b := range p.Boards {
		if _, dup := seen[b.ID]; dup {
			return errors.New(errors.ErrCodeInvalidBoard, "duplicate board id %s", b.ID)
		}
		seen[b.ID] = struct{}{}
		if err := b.Validate(maxW, maxH); err != nil {
			return err
		}
	}
	return p.Settings.Validate()
}

// Shared is the cross-board context owned by the workspace and handed to
// every plugin at render time.
type Shared struct {
	Gear     Gear
	Settings Settings
}
