package model

// BranchRoster is one organizational branch and its configured retention
// managers, in declared order.
type BranchRoster struct {
	Branch   string   `json:"branch"`
	Managers []string `json:"managers"`
}

// Roster is the full branch → manager configuration, in declared order.
// It is loaded once per run and never mutated by the engine.
type Roster []BranchRoster

// Managers returns the managers configured under the given branch.
func (r Roster) Managers(branch string) []string {
	for _, br := range r {
		if br.Branch == branch {
			return br.Managers
		}
	}
	return nil
}

// Branches returns branch names in declared order.
func (r Roster) Branches() []string {
	names := make([]string, 0, len(r))
	for _, br := range r {
		names = append(names, br.Branch)
	}
	return names
}

// Channel is one configured retail outlet with its match keywords.
type Channel struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// BranchChannels is one branch and its configured channels, in declared order.
type BranchChannels struct {
	Branch   string    `json:"branch"`
	Channels []Channel `json:"channels"`
}

// ChannelRoster is the full branch → channel configuration.
type ChannelRoster []BranchChannels
