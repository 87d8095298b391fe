package predictions

import "sort"

// Index nests records as league -> season -> stage -> fixture key.
type Index struct {
	leagues map[string]map[string]map[int]map[string]Record
}

func NewIndex(records []Record) *Index {
	ix := &Index{leagues: make(map[string]map[string]map[int]map[string]Record)}
	for _, r := range records {
		seasons, ok := ix.leagues[r.League]
		if !ok {
			seasons = make(map[string]map[int]map[string]Record)
			ix.leagues[r.League] = seasons
		}
		stages, ok := seasons[r.Season]
		if !ok {
			stages = make(map[int]map[string]Record)
			seasons[r.Season] = stages
		}
		fixtures, ok := stages[r.Stage]
		if !ok {
			fixtures = make(map[string]Record)
			stages[r.Stage] = fixtures
		}
		fixtures[r.FixtureKey()] = r
	}
	return ix
}

func (ix *Index) Leagues() []string {
	return sortedKeys(ix.leagues)
}

func (ix *Index) Seasons(league string) ([]string, bool) {
	seasons, ok := ix.leagues[league]
	if !ok {
		return nil, false
	}
	return sortedKeys(seasons), true
}

func (ix *Index) Stages(league, season string) ([]int, bool) {
	stages, ok := ix.leagues[league][season]
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(stages))
	for s := range stages {
		out = append(out, s)
	}
	sort.Ints(out)
	return out, true
}

// Fixtures returns the records of one stage ordered by fixture key.
func (ix *Index) Fixtures(league, season string, stage int) ([]Record, bool) {
	fixtures, ok := ix.leagues[league][season][stage]
	if !ok {
		return nil, false
	}
	out := make([]Record, 0, len(fixtures))
	for _, k := range sortedKeys(fixtures) {
		out = append(out, fixtures[k])
	}
	return out, true
}

// Season returns every record of a league season, by stage then fixture key.
func (ix *Index) Season(league, season string) ([]Record, bool) {
	stages, ok := ix.Stages(league, season)
	if !ok {
		return nil, false
	}
	var out []Record
	for _, s := range stages {
		fixtures, _ := ix.Fixtures(league, season, s)
		out = append(out, fixtures...)
	}
	return out, true
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
