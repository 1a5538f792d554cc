package compendium_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/simulacrum/internal/compendium"
	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
	"github.com/KirkDiggler/simulacrum/internal/errors"
	"github.com/KirkDiggler/simulacrum/internal/repositories/items"
	"github.com/KirkDiggler/simulacrum/internal/testutils"
)

const actionsPack = `
name: simulacrum.actions
label: Actions
items:
  - id: scan
    name: Port Scan
    type: action
    description: Probe a node for open services
    success_die: 2
  - id: spoof
    name: Spoof
    type: action
    success_die: 1
`

type CompendiumTestSuite struct {
	suite.Suite
	cleanup  func()
	itemRepo items.Repository
	resolver compendium.Resolver
	ctx      context.Context
}

func TestCompendiumSuite(t *testing.T) {
	suite.Run(t, new(CompendiumTestSuite))
}

func (s *CompendiumTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := items.NewRedis(&items.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.itemRepo = repo

	pack, err := compendium.ReadPack(strings.NewReader(actionsPack))
	s.Require().NoError(err)
	library, err := compendium.NewLibrary(pack)
	s.Require().NoError(err)

	resolver, err := compendium.NewResolver(&compendium.ResolverConfig{
		Library:  library,
		ItemRepo: repo,
	})
	s.Require().NoError(err)
	s.resolver = resolver
	s.ctx = context.Background()
}

func (s *CompendiumTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *CompendiumTestSuite) TestReadPack() {
	pack, err := compendium.ReadPack(strings.NewReader(actionsPack))
	s.Require().NoError(err)
	s.Equal("simulacrum.actions", pack.Name)
	s.Equal("Actions", pack.Label)
	s.Equal([]string{"scan", "spoof"}, pack.IDs())

	scan, ok := pack.Get("scan")
	s.Require().True(ok)
	s.Equal(simulacrum.ItemTypeAction, scan.Type)
	s.Equal(2, scan.System.SuccessDie)
	s.Equal("Compendium.simulacrum.actions.Item.scan", scan.DocumentUUID())
}

func (s *CompendiumTestSuite) TestReadPackRejects() {
	testCases := []struct {
		name string
		yaml string
	}{
		{"unknown field", "name: a.b\nitems:\n  - id: x\n    type: action\n    colour: red\n"},
		{"unknown type", "name: a.b\nitems:\n  - id: x\n    type: weapon\n"},
		{"bad pack name", "name: actions\nitems: []\n"},
		{"missing id", "name: a.b\nitems:\n  - type: action\n"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := compendium.ReadPack(strings.NewReader(tc.yaml))
			s.True(errors.IsInvalidArgument(err), "unexpected error %v", err)
		})
	}
}

func (s *CompendiumTestSuite) TestLoadDir() {
	dir := s.T().TempDir()
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "actions.yaml"), []byte(actionsPack), 0o600))
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	library, err := compendium.LoadDir(dir)
	s.Require().NoError(err)
	s.Equal([]string{"simulacrum.actions"}, library.Names())

	empty, err := compendium.LoadDir(filepath.Join(dir, "missing"))
	s.Require().NoError(err)
	s.Empty(empty.Names())

	s.Require().NoError(os.WriteFile(filepath.Join(dir, "copy.yaml"), []byte(actionsPack), 0o600))
	_, err = compendium.LoadDir(dir)
	s.True(errors.IsAlreadyExists(err))
}

func (s *CompendiumTestSuite) TestResolveLibrary() {
	for _, uuid := range []string{
		"Compendium.simulacrum.actions.Item.scan",
		"Compendium.simulacrum.actions.scan",
	} {
		item, err := s.resolver.Resolve(s.ctx, uuid)
		s.Require().NoError(err, uuid)
		s.Equal("Port Scan", item.Name)
		s.Equal("simulacrum.actions", item.Pack)
	}
}

func (s *CompendiumTestSuite) TestResolveReturnsCopies() {
	first, err := s.resolver.Resolve(s.ctx, "Compendium.simulacrum.actions.Item.scan")
	s.Require().NoError(err)
	first.Name = "changed"
	first.SetBonusDice(3)

	second, err := s.resolver.Resolve(s.ctx, "Compendium.simulacrum.actions.Item.scan")
	s.Require().NoError(err)
	s.Equal("Port Scan", second.Name)
	s.Zero(second.BonusDice())
}

func (s *CompendiumTestSuite) TestResolveLive() {
	world := &simulacrum.Item{ID: "w1", OwnerID: simulacrum.WorldOwnerID, Name: "Brute", Type: simulacrum.ItemTypeAction}
	owned := &simulacrum.Item{ID: "o1", OwnerID: "actor1", Name: "Trace", Type: simulacrum.ItemTypeAction}
	for _, item := range []*simulacrum.Item{world, owned} {
		_, err := s.itemRepo.Create(s.ctx, items.CreateInput{Item: item})
		s.Require().NoError(err)
	}

	got, err := s.resolver.Resolve(s.ctx, "Item.w1")
	s.Require().NoError(err)
	s.Equal("Brute", got.Name)

	got, err = s.resolver.Resolve(s.ctx, "Actor.actor1.Item.o1")
	s.Require().NoError(err)
	s.Equal("Trace", got.Name)
	s.Equal("Actor.actor1.Item.o1", got.DocumentUUID())
}

func (s *CompendiumTestSuite) TestResolveErrors() {
	testCases := []struct {
		uuid  string
		check func(error) bool
	}{
		{"nonsense", errors.IsInvalidArgument},
		{"Compendium.simulacrum..Item.scan", errors.IsInvalidArgument},
		{"Compendium.other.pack.Item.scan", errors.IsNotFound},
		{"Compendium.simulacrum.actions.Item.ghost", errors.IsNotFound},
		{"Item.ghost", errors.IsNotFound},
		{"Actor.a1.Item.ghost", errors.IsNotFound},
	}

	for _, tc := range testCases {
		_, err := s.resolver.Resolve(s.ctx, tc.uuid)
		s.True(tc.check(err), "uuid %s: unexpected error %v", tc.uuid, err)
	}
}

func (s *CompendiumTestSuite) TestConcurrentResolve() {
	const workers = 16
	results := make([]*simulacrum.Item, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			item, err := s.resolver.Resolve(s.ctx, "Compendium.simulacrum.actions.Item.spoof")
			if err == nil {
				results[i] = item
			}
		}(i)
	}
	wg.Wait()

	for i, item := range results {
		s.Require().NotNil(item, "worker %d", i)
		s.Equal("Spoof", item.Name)
		for j := 0; j < i; j++ {
			s.NotSame(results[j], item)
		}
	}
}

func (s *CompendiumTestSuite) TestNewResolverValidation() {
	_, err := compendium.NewResolver(&compendium.ResolverConfig{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Library")
	s.Contains(err.Error(), "ItemRepo")
}
