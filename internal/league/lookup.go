package league

// Relation names as they appear in the source dataset.
const (
	CountryRelation          = "Country"
	LeagueRelation           = "League"
	TeamRelation             = "Team"
	PlayerRelation           = "Player"
	PlayerAttributesRelation = "Player_Attributes"
	MatchRelation            = "Match"
)

// Key selects the key column used to resolve rows of type T.
type Key[T any] struct {
	Column string
	Of     func(T) int64
}

var (
	CountryID   = Key[Country]{Column: "id", Of: func(c Country) int64 { return c.ID }}
	LeagueID    = Key[League]{Column: "id", Of: func(l League) int64 { return l.ID }}
	TeamAPIID   = Key[Team]{Column: "team_api_id", Of: func(t Team) int64 { return t.APIID }}
	PlayerAPIID = Key[Player]{Column: "player_api_id", Of: func(p Player) int64 { return p.APIID }}
)

// Named is implemented by rows that carry a descriptive name.
type Named interface {
	DisplayName() string
}

func (c Country) DisplayName() string { return c.Name }
func (l League) DisplayName() string  { return l.Name }
func (t Team) DisplayName() string    { return t.LongName }
func (p Player) DisplayName() string  { return p.Name }

// ResolveName returns the name of the first row whose key column equals value.
// Zero matches yield a *LookupError wrapping ErrNotFound.
func ResolveName[T Named](relation string, rows []T, key Key[T], value int64) (string, error) {
	for _, r := range rows {
		if key.Of(r) == value {
			return r.DisplayName(), nil
		}
	}
	return "", &LookupError{Relation: relation, Column: key.Column, Value: value, Err: ErrNotFound}
}

// Directory is an indexed form of ResolveName for bulk enrichment.
// Duplicate keys keep the first row in relation order unless the directory is strict,
// in which case resolving a duplicated key fails with ErrAmbiguousKey.
type Directory struct {
	relation string
	column   string
	strict   bool
	names    map[int64]string
	dupes    map[int64]int
}

func NewDirectory[T Named](relation string, rows []T, key Key[T], strict bool) *Directory {
	d := &Directory{
		relation: relation,
		column:   key.Column,
		strict:   strict,
		names:    make(map[int64]string, len(rows)),
		dupes:    make(map[int64]int),
	}
	for _, r := range rows {
		k := key.Of(r)
		if _, ok := d.names[k]; ok {
			d.dupes[k]++
			continue
		}
		d.names[k] = r.DisplayName()
	}
	return d
}

// Name resolves value to its descriptive name.
func (d *Directory) Name(value int64) (string, error) {
	name, ok := d.names[value]
	if !ok {
		return "", &LookupError{Relation: d.relation, Column: d.column, Value: value, Err: ErrNotFound}
	}
	if d.strict && d.dupes[value] > 0 {
		return "", &LookupError{Relation: d.relation, Column: d.column, Value: value, Err: ErrAmbiguousKey}
	}
	return name, nil
}

// Duplicates is the number of keys that appear on more than one row.
func (d *Directory) Duplicates() int { return len(d.dupes) }

func (d *Directory) Len() int { return len(d.names) }
