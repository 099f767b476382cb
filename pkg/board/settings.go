package board

import (
	"slices"

	"github.com/matzehuels/auteur/pkg/errors"
)

// Settings are the technical and stylistic targets of a project.
type Settings struct {
	FrameRate   string `json:"frameRate" yaml:"frameRate" bson:"frameRate"`
	AspectRatio string `json:"aspectRatio" yaml:"aspectRatio" bson:"aspectRatio"`
	Resolution  string `json:"resolution" yaml:"resolution" bson:"resolution"`
	Style       string `json:"style" yaml:"style" bson:"style"`
	ProjectType string `json:"projectType" yaml:"projectType" bson:"projectType"`
}

// Project types.
const (
	ProjectShortVideo = "Short Video"
	ProjectSeries     = "Series"
)

// Allowed values for the enumerated settings.
var (
	FrameRates   = []string{"24fps", "25fps", "30fps", "60fps", "120fps"}
	AspectRatios = []string{"16:9", "4:3", "1.85:1", "2.39:1 (Scope)"}
	Resolutions  = []string{"1080p (HD)", "4K (UHD)", "6K", "8K"}
	ProjectTypes = []string{ProjectShortVideo, ProjectSeries}
)

// DefaultSettings returns the settings of a freshly created project.
func DefaultSettings() Settings {
	return Settings{
		FrameRate:   "24fps",
		AspectRatio: "16:9",
		Resolution:  "4K (UHD)",
		ProjectType: ProjectShortVideo,
	}
}

// Validate checks every enumerated field. Style is free text.
func (s Settings) Validate() error {
	checks := []struct {
		field, value string
		allowed      []string
	}{
		{"frame rate", s.FrameRate, FrameRates},
		{"aspect ratio", s.AspectRatio, AspectRatios},
		{"resolution", s.Resolution, Resolutions},
		{"project type", s.ProjectType, ProjectTypes},
	}
	for _, c := range checks {
		if !slices.Contains(c.allowed, c.value) {
			return errors.New(errors.ErrCodeInvalidSettings, "invalid %s %q", c.field, c.value)
		}
	}
	return nil
}

// With returns s with one field changed by name. Field names follow the
// serialized form (frameRate, aspectRatio, resolution, style, projectType).
func (s Settings) With(field, value string) (Settings, error) {
	switch field {
	case "frameRate":
		s.FrameRate = value
	case "aspectRatio":
		s.AspectRatio = value
	case "resolution":
		s.Resolution = value
	case "style":
		s.Style = value
	case "projectType":
		s.ProjectType = value
	default:
		return s, errors.New(errors.ErrCodeInvalidSettings, "unknown setting %q", field)
	}
	return s, s.Validate()
}
