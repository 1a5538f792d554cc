package compendium

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
	"github.com/KirkDiggler/simulacrum/internal/errors"
)

// Pack is a read-only library of item templates
type Pack struct {
	Name  string
	Label string
	items map[string]*simulacrum.Item
}

// packFile is the on-disk shape of a pack
type packFile struct {
	Name  string     `yaml:"name"`
	Label string     `yaml:"label"`
	Items []packItem `yaml:"items"`
}

type packItem struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Description string   `yaml:"description"`
	BaseValue   float64  `yaml:"base_value"`
	BaseDice    int      `yaml:"base_dice"`
	TargetStat  string   `yaml:"target_stat"`
	SuccessDie  int      `yaml:"success_die"`
	Actions     []string `yaml:"actions"`
}

// NewPack builds a pack from items already in memory
func NewPack(name string, items ...*simulacrum.Item) (*Pack, error) {
	if err := validatePackName(name); err != nil {
		return nil, err
	}

	p := &Pack{Name: name, items: make(map[string]*simulacrum.Item, len(items))}
	for _, item := range items {
		if item == nil || item.ID == "" {
			return nil, errors.InvalidArgumentf("pack %s: item without id", name)
		}
		if _, dup := p.items[item.ID]; dup {
			return nil, errors.AlreadyExistsf("pack %s: duplicate item id %s", name, item.ID)
		}
		stored := item.Clone()
		stored.OwnerID = ""
		stored.Pack = name
		p.items[item.ID] = stored
	}
	return p, nil
}

// ReadPack decodes one YAML pack
func ReadPack(r io.Reader) (*Pack, error) {
	var file packFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode pack")
	}

	list := make([]*simulacrum.Item, 0, len(file.Items))
	for _, pi := range file.Items {
		itemType := simulacrum.ItemType(pi.Type)
		if !itemType.Valid() {
			return nil, errors.InvalidArgumentf("pack %s: item %s has unknown type %q", file.Name, pi.ID, pi.Type)
		}
		list = append(list, &simulacrum.Item{
			ID:   pi.ID,
			Name: pi.Name,
			Type: itemType,
			System: simulacrum.ItemSystem{
				Description: pi.Description,
				BaseValue:   pi.BaseValue,
				BaseDice:    pi.BaseDice,
				TargetStat:  pi.TargetStat,
				SuccessDie:  pi.SuccessDie,
				Actions:     pi.Actions,
			},
		})
	}

	p, err := NewPack(file.Name, list...)
	if err != nil {
		return nil, err
	}
	p.Label = file.Label
	return p, nil
}

// Get returns a copy of the item with the given id
func (p *Pack) Get(id string) (*simulacrum.Item, bool) {
	item, ok := p.items[id]
	if !ok {
		return nil, false
	}
	return item.Clone(), true
}

// IDs returns the item ids of the pack in sorted order
func (p *Pack) IDs() []string {
	ids := make([]string, 0, len(p.items))
	for id := range p.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Library is the set of packs available to the resolver
type Library struct {
	packs map[string]*Pack
}

// NewLibrary creates a library from packs
func NewLibrary(packs ...*Pack) (*Library, error) {
	l := &Library{packs: make(map[string]*Pack, len(packs))}
	for _, p := range packs {
		if _, dup := l.packs[p.Name]; dup {
			return nil, errors.AlreadyExistsf("duplicate pack %s", p.Name)
		}
		l.packs[p.Name] = p
	}
	return l, nil
}

// LoadDir reads every *.yaml file in dir as a pack. A missing directory
// yields an empty library.
func LoadDir(dir string) (*Library, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid packs directory")
	}
	sort.Strings(paths)

	packs := make([]*Pack, 0, len(paths))
	for _, path := range paths {
		p, err := readPackFile(path)
		if err != nil {
			return nil, err
		}
		packs = append(packs, p)
	}

	return NewLibrary(packs...)
}

func readPackFile(path string) (*Pack, error) {
	f, err := os.Open(path) // #nosec G304 // pack paths come from the configured directory
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open pack %s", path)
	}
	defer func() { _ = f.Close() }()

	p, err := ReadPack(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load pack %s", filepath.Base(path))
	}
	return p, nil
}

// Pack returns the named pack
func (l *Library) Pack(name string) (*Pack, bool) {
	p, ok := l.packs[name]
	return p, ok
}

// Names returns the pack names in sorted order
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.packs))
	for name := range l.packs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pack names are "<scope>.<pack>", the middle of a library identifier
func validatePackName(name string) error {
	parts := strings.Split(name, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return errors.InvalidArgumentf("pack name %q must be <scope>.<pack>", name)
	}
	return nil
}
