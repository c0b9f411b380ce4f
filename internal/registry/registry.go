package registry

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/rollcall-cli/internal/model"
	"github.com/sells-group/rollcall-cli/internal/rollcall"
)

// ErrConfigMissing marks a configuration source that cannot be located or
// parsed. Fatal to a report run.
var ErrConfigMissing = eris.New("registry: configuration source missing or unparsable")

// Paths names the three configuration sources for one report run: the
// manager roster, the business category rules, and the channel map.
type Paths struct {
	Roster     string
	Categories string
	Channels   string
}

// countFromText marks the categories whose quantity is parsed from the
// line text. All others count one unit per mention.
var countFromText = map[model.CategoryID]bool{
	model.CategoryCurrentMonthRecovery: true,
	model.CategoryLastMonthRecovery:    true,
	model.CategoryHighRiskRecovery:     true,
}

// Load reads the three configuration files and assembles the run
// configuration. Files may be YAML or JSON; mapping order in the roster
// and channel files is preserved, since match priority follows declared
// order. The caller fills in thresholds before building an engine.
func Load(paths Paths) (*rollcall.RunConfiguration, error) {
	rosterDoc, err := loadDocument(paths.Roster)
	if err != nil {
		return nil, err
	}
	categoryDoc, err := loadDocument(paths.Categories)
	if err != nil {
		return nil, err
	}
	channelDoc, err := loadDocument(paths.Channels)
	if err != nil {
		return nil, err
	}

	roster, err := decodeRoster(rosterDoc)
	if err != nil {
		return nil, eris.Wrapf(err, "registry: roster %s", paths.Roster)
	}
	categories, err := decodeCategories(categoryDoc)
	if err != nil {
		return nil, eris.Wrapf(err, "registry: categories %s", paths.Categories)
	}
	channels, pointsPattern, err := decodeChannels(channelDoc)
	if err != nil {
		return nil, eris.Wrapf(err, "registry: channels %s", paths.Channels)
	}

	return &rollcall.RunConfiguration{
		Roster:        roster,
		Categories:    categories,
		Channels:      channels,
		PointsPattern: pointsPattern,
	}, nil
}

func loadDocument(path string) (*yaml.Node, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(ErrConfigMissing, "read %s: %v", path, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, eris.Wrapf(ErrConfigMissing, "parse %s: %v", path, err)
	}
	if len(doc.Content) == 0 {
		return nil, eris.Wrapf(ErrConfigMissing, "parse %s: empty document", path)
	}
	return doc.Content[0], nil
}

// decodeRoster walks business_categories.branch_managers.branch_manager_map,
// keeping branch and manager order as declared in the file.
func decodeRoster(doc *yaml.Node) (model.Roster, error) {
	node := mapChild(mapChild(mapChild(doc, "business_categories"), "branch_managers"), "branch_manager_map")
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, eris.Wrap(ErrConfigMissing, "branch_manager_map not found")
	}

	var roster model.Roster
	for i := 0; i+1 < len(node.Content); i += 2 {
		branch := node.Content[i].Value
		var managers []string
		if err := node.Content[i+1].Decode(&managers); err != nil {
			return nil, eris.Wrapf(ErrConfigMissing, "branch %s: %v", branch, err)
		}
		roster = append(roster, model.BranchRoster{Branch: branch, Managers: managers})
	}
	if len(roster) == 0 {
		return nil, eris.Wrap(ErrConfigMissing, "branch_manager_map is empty")
	}
	return roster, nil
}

// decodeCategories reads business_categories.<id>.{keywords,exclude_keywords}
// for every known category, in classification priority order. Categories
// absent from the file are dropped; a rule with no keywords never matches.
func decodeCategories(doc *yaml.Node) ([]model.CategoryRule, error) {
	root := mapChild(doc, "business_categories")
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, eris.Wrap(ErrConfigMissing, "business_categories not found")
	}

	var rules []model.CategoryRule
	for _, id := range model.AllCategories() {
		node := mapChild(root, string(id))
		if node == nil {
			continue
		}
		var raw struct {
			Keywords        []string `yaml:"keywords"`
			ExcludeKeywords []string `yaml:"exclude_keywords"`
		}
		if err := node.Decode(&raw); err != nil {
			return nil, eris.Wrapf(ErrConfigMissing, "category %s: %v", id, err)
		}
		rules = append(rules, model.CategoryRule{
			ID:              id,
			Keywords:        raw.Keywords,
			ExcludeKeywords: raw.ExcludeKeywords,
			CountFromText:   countFromText[id],
		})
	}
	if len(rules) == 0 {
		return nil, eris.Wrap(ErrConfigMissing, "no known categories configured")
	}
	return rules, nil
}

// decodeChannels reads branch_channel_map plus the optional points_regex,
// which may be a single pattern or a list joined by alternation.
func decodeChannels(doc *yaml.Node) (model.ChannelRoster, string, error) {
	node := mapChild(doc, "branch_channel_map")
	if node == nil {
		// Older files nest the map under business_categories.channel_stores.
		node = mapChild(mapChild(mapChild(doc, "business_categories"), "channel_stores"), "branch_channel_map")
	}
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, "", eris.Wrap(ErrConfigMissing, "branch_channel_map not found")
	}

	var channels model.ChannelRoster
	for i := 0; i+1 < len(node.Content); i += 2 {
		branch := node.Content[i].Value
		var entries []model.Channel
		if err := node.Content[i+1].Decode(&entries); err != nil {
			return nil, "", eris.Wrapf(ErrConfigMissing, "branch %s: %v", branch, err)
		}
		channels = append(channels, model.BranchChannels{Branch: branch, Channels: entries})
	}
	if len(channels) == 0 {
		return nil, "", eris.Wrap(ErrConfigMissing, "branch_channel_map is empty")
	}

	pattern, err := decodePointsPattern(mapChild(doc, "points_regex"))
	if err != nil {
		return nil, "", err
	}
	return channels, pattern, nil
}

func decodePointsPattern(node *yaml.Node) (string, error) {
	if node == nil {
		return "", nil
	}
	if node.Kind == yaml.SequenceNode {
		var alternatives []string
		if err := node.Decode(&alternatives); err != nil {
			return "", eris.Wrapf(ErrConfigMissing, "points_regex: %v", err)
		}
		return strings.Join(alternatives, "|"), nil
	}
	var pattern string
	if err := node.Decode(&pattern); err != nil {
		return "", eris.Wrapf(ErrConfigMissing, "points_regex: %v", err)
	}
	return pattern, nil
}

func mapChild(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
