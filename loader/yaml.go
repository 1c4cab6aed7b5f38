package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/lorelock/types"
)

// LoadYAML reads a single-file YAML story and validates it.
func LoadYAML(path string) (*types.StoryDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading story file %s: %w", path, err)
	}
	var story types.StoryDef
	if err := yaml.Unmarshal(data, &story); err != nil {
		return nil, fmt.Errorf("parsing story file %s: %w", path, err)
	}
	normalize(&story)
	if err := validate(&story); err != nil {
		return nil, err
	}
	return &story, nil
}

// normalize fills schema defaults the YAML form may omit.
func normalize(story *types.StoryDef) {
	for i := range story.Things {
		if story.Things[i].Kind == "" {
			story.Things[i].Kind = "thing"
		}
		defaultPhases(story.Things[i].Rules)
	}
	for i := range story.Doors {
		defaultPhases(story.Doors[i].Rules)
	}
	for i := range story.Rooms {
		defaultPhases(story.Rooms[i].Rules)
	}
}

func defaultPhases(rules []types.RuleDef) {
	for i := range rules {
		if rules[i].Phase == "" {
			rules[i].Phase = types.PhaseInstead
		}
	}
}
