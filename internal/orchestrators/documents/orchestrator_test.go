package documents_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/simulacrum/internal/compendium"
	"github.com/KirkDiggler/simulacrum/internal/engine"
	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
	"github.com/KirkDiggler/simulacrum/internal/errors"
	"github.com/KirkDiggler/simulacrum/internal/hooks"
	"github.com/KirkDiggler/simulacrum/internal/orchestrators/documents"
	"github.com/KirkDiggler/simulacrum/internal/orchestrators/equipment"
	"github.com/KirkDiggler/simulacrum/internal/pkg/idgen"
	"github.com/KirkDiggler/simulacrum/internal/pkg/keylock"
	"github.com/KirkDiggler/simulacrum/internal/repositories/actors"
	"github.com/KirkDiggler/simulacrum/internal/repositories/items"
	"github.com/KirkDiggler/simulacrum/internal/testutils"
)

const (
	uuidScan  = "Compendium.simulacrum.actions.Item.scan"
	uuidSpoof = "Compendium.simulacrum.actions.Item.spoof"
)

const actionsPack = `
name: simulacrum.actions
items:
  - id: scan
    name: Port Scan
    type: action
    success_die: 2
  - id: spoof
    name: Spoof
    type: action
    success_die: 1
  - id: netcat
    name: Netcat
    type: tool
`

// outageResolver fails every resolution while err is set
type outageResolver struct {
	compendium.Resolver
	err error
}

func (r *outageResolver) Resolve(ctx context.Context, uuid string) (*simulacrum.Item, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.Resolver.Resolve(ctx, uuid)
}

// recordingHooks runs beforeUpdate ahead of every item write
type recordingHooks struct {
	hooks.Nop
	beforeUpdate func(item *simulacrum.Item)
}

func (h *recordingHooks) PreUpdateItem(_ context.Context, item *simulacrum.Item, _ *simulacrum.ItemChanges) error {
	if h.beforeUpdate != nil {
		h.beforeUpdate(item)
	}
	return nil
}

type DocumentsTestSuite struct {
	suite.Suite
	cleanup      func()
	itemRepo     items.Repository
	resolver     *outageResolver
	hooks        *recordingHooks
	equipment    *equipment.Orchestrator
	orchestrator *documents.Orchestrator
	ctx          context.Context
}

func TestDocumentsSuite(t *testing.T) {
	suite.Run(t, new(DocumentsTestSuite))
}

func (s *DocumentsTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()

	actorRepo, err := actors.NewRedis(&actors.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.itemRepo, err = items.NewRedis(&items.RedisConfig{Client: client})
	s.Require().NoError(err)

	pack, err := compendium.ReadPack(strings.NewReader(actionsPack))
	s.Require().NoError(err)
	library, err := compendium.NewLibrary(pack)
	s.Require().NoError(err)
	resolver, err := compendium.NewResolver(&compendium.ResolverConfig{Library: library, ItemRepo: s.itemRepo})
	s.Require().NoError(err)

	eng, err := engine.New(&engine.Config{})
	s.Require().NoError(err)

	locks := keylock.New()
	s.resolver = &outageResolver{Resolver: resolver}
	s.equipment, err = equipment.New(&equipment.Config{
		ItemRepo:    s.itemRepo,
		Resolver:    s.resolver,
		IDGenerator: idgen.NewSequential("copy"),
		EventBus:    events.NewBus(),
		Locks:       locks,
	})
	s.Require().NoError(err)

	s.hooks = &recordingHooks{}
	s.orchestrator, err = documents.New(&documents.Config{
		ActorRepo:   actorRepo,
		ItemRepo:    s.itemRepo,
		Engine:      eng,
		Resolver:    resolver,
		Hooks:       hooks.Chain{engine.Hooks(eng), s.hooks, s.equipment.Hooks()},
		IDGenerator: idgen.NewSequential("doc"),
		Locks:       locks,
	})
	s.Require().NoError(err)
}

func (s *DocumentsTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *DocumentsTestSuite) createActor(actor *simulacrum.Actor) *simulacrum.Actor {
	out, err := s.orchestrator.CreateActor(s.ctx, &documents.CreateActorInput{Actor: actor})
	s.Require().NoError(err)
	return out.Actor
}

func (s *DocumentsTestSuite) createItem(item *simulacrum.Item) *simulacrum.Item {
	out, err := s.orchestrator.CreateItem(s.ctx, &documents.CreateItemInput{Item: item})
	s.Require().NoError(err)
	return out.Item
}

func (s *DocumentsTestSuite) setEquipped(ownerID, itemID string, equipped bool) *simulacrum.Item {
	out, err := s.orchestrator.UpdateItem(s.ctx, &documents.UpdateItemInput{
		OwnerID: ownerID,
		ItemID:  itemID,
		Changes: &simulacrum.ItemChanges{Equipped: &equipped},
	})
	s.Require().NoError(err)
	return out.Item
}

func (s *DocumentsTestSuite) ownedItems(ownerID string, itemType simulacrum.ItemType) []*simulacrum.Item {
	out, err := s.itemRepo.List(s.ctx, items.ListInput{OwnerID: ownerID, Type: itemType})
	s.Require().NoError(err)
	return out.Items
}

func (s *DocumentsTestSuite) TestCreateActorDefaults() {
	player := s.createActor(&simulacrum.Actor{
		Name:   "Vex",
		Type:   simulacrum.ActorTypePlayer,
		System: simulacrum.ActorSystem{Attributes: simulacrum.Attributes{Control: 15}},
	})
	s.Equal("doc_1", player.ID)
	s.True(player.PrototypeToken.ActorLink)
	s.Equal(simulacrum.ControlMax, player.System.Attributes.Control)

	node := s.createActor(testutils.CreateTestNode("node1", simulacrum.NodeTypeFirewall, 3, 4))
	s.False(node.PrototypeToken.ActorLink)
	s.Equal(3.5, node.System.Attributes.Sensitivity)
}

func (s *DocumentsTestSuite) TestCreateActorValidation() {
	testCases := []struct {
		name  string
		actor *simulacrum.Actor
	}{
		{"nil", nil},
		{"no name", &simulacrum.Actor{Type: simulacrum.ActorTypePlayer}},
		{"bad type", &simulacrum.Actor{Name: "x", Type: "monster"}},
		{"bad node type", &simulacrum.Actor{
			Name:   "x",
			Type:   simulacrum.ActorTypeNode,
			System: simulacrum.ActorSystem{NodeType: "mainframe"},
		}},
		{"reserved id", &simulacrum.Actor{ID: simulacrum.WorldOwnerID, Name: "x", Type: simulacrum.ActorTypeNode}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.CreateActor(s.ctx, &documents.CreateActorInput{Actor: tc.actor})
			s.True(errors.IsInvalidArgument(err), "unexpected error %v", err)
		})
	}
}

func (s *DocumentsTestSuite) TestUpdateActorClampsControl() {
	s.createActor(&simulacrum.Actor{ID: "node1", Name: "Gateway", Type: simulacrum.ActorTypeNode})

	testCases := []struct {
		name    string
		control int
		want    int
	}{
		{"above range", 12, 10},
		{"below range", -3, 0},
		{"in range", 7, 7},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			control := tc.control
			out, err := s.orchestrator.UpdateActor(s.ctx, &documents.UpdateActorInput{
				ActorID: "node1",
				Changes: &simulacrum.ActorChanges{Control: &control},
			})
			s.Require().NoError(err)
			s.Equal(tc.want, out.Actor.System.Attributes.Control)

			got, err := s.orchestrator.GetActor(s.ctx, &documents.GetActorInput{ActorID: "node1"})
			s.Require().NoError(err)
			s.Equal(tc.want, got.Actor.System.Attributes.Control)
		})
	}
}

func (s *DocumentsTestSuite) TestUpdateActorRecomputesSensitivity() {
	s.createActor(&simulacrum.Actor{ID: "node1", Name: "Gateway", Type: simulacrum.ActorTypeNode})

	resilience, insight := 5, 2
	out, err := s.orchestrator.UpdateActor(s.ctx, &documents.UpdateActorInput{
		ActorID: "node1",
		Changes: &simulacrum.ActorChanges{Resilience: &resilience, Insight: &insight},
	})
	s.Require().NoError(err)
	s.Equal(3.5, out.Actor.System.Attributes.Sensitivity)

	bad := simulacrum.NodeType("mainframe")
	_, err = s.orchestrator.UpdateActor(s.ctx, &documents.UpdateActorInput{
		ActorID: "node1",
		Changes: &simulacrum.ActorChanges{NodeType: &bad},
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *DocumentsTestSuite) TestListActors() {
	s.createActor(testutils.CreateTestPlayer("p1"))
	s.createActor(&simulacrum.Actor{
		ID:     "n1",
		Name:   "Gateway",
		Type:   simulacrum.ActorTypeNode,
		System: simulacrum.ActorSystem{Attributes: simulacrum.Attributes{Resilience: 1, Insight: 2}},
	})

	out, err := s.orchestrator.ListActors(s.ctx, &documents.ListActorsInput{Type: simulacrum.ActorTypeNode})
	s.Require().NoError(err)
	s.Require().Len(out.Actors, 1)
	s.Equal(1.5, out.Actors[0].System.Attributes.Sensitivity)

	all, err := s.orchestrator.ListActors(s.ctx, nil)
	s.Require().NoError(err)
	s.Len(all.Actors, 2)

	_, err = s.orchestrator.ListActors(s.ctx, &documents.ListActorsInput{Type: "monster"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *DocumentsTestSuite) TestItemValueAndBaseDice() {
	s.createActor(testutils.CreateTestPlayer("p1"))
	skill := s.createItem(&simulacrum.Item{
		OwnerID: "p1",
		Name:    "Hacking",
		Type:    simulacrum.ItemTypeSkill,
		System:  simulacrum.ItemSystem{BaseValue: 2, Equipped: true},
	})
	s.False(skill.System.Equipped)
	s.Nil(skill.System.Value)

	bonuses := 1.0
	out, err := s.orchestrator.UpdateItem(s.ctx, &documents.UpdateItemInput{
		OwnerID: "p1",
		ItemID:  skill.ID,
		Changes: &simulacrum.ItemChanges{Bonuses: &bonuses},
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Item.System.Value)
	s.Equal(3.0, *out.Item.System.Value)

	testCases := []struct {
		raw  string
		want int
	}{
		{"4", 4},
		{" 3abc", 3},
		{"abc", 0},
		{"-2", 0},
	}
	for _, tc := range testCases {
		raw := tc.raw
		out, err := s.orchestrator.UpdateItem(s.ctx, &documents.UpdateItemInput{
			OwnerID: "p1",
			ItemID:  skill.ID,
			Changes: &simulacrum.ItemChanges{BaseDice: &raw},
		})
		s.Require().NoError(err, tc.raw)
		s.Equal(tc.want, out.Item.System.BaseDice, tc.raw)
	}
}

func (s *DocumentsTestSuite) TestCreateItemValidation() {
	_, err := s.orchestrator.CreateItem(s.ctx, &documents.CreateItemInput{Item: &simulacrum.Item{
		Name: "Hacking",
		Type: "weapon",
	}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.CreateItem(s.ctx, &documents.CreateItemInput{Item: &simulacrum.Item{
		Name:   "Hacking",
		Type:   simulacrum.ItemTypeSkill,
		System: simulacrum.ItemSystem{TargetStat: "luck"},
	}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.CreateItem(s.ctx, &documents.CreateItemInput{Item: &simulacrum.Item{
		OwnerID: "ghost",
		Name:    "Hacking",
		Type:    simulacrum.ItemTypeSkill,
	}})
	s.True(errors.IsFailedPrecondition(err))

	_, err = s.orchestrator.CreateItem(s.ctx, &documents.CreateItemInput{Item: &simulacrum.Item{
		Name:   "Hacking",
		Type:   simulacrum.ItemTypeSkill,
		System: simulacrum.ItemSystem{BaseDice: -1},
	}})
	s.True(errors.IsInvalidArgument(err))

	world := s.createItem(&simulacrum.Item{Name: "Brute", Type: simulacrum.ItemTypeAction})
	s.Equal(simulacrum.WorldOwnerID, world.OwnerID)
	s.Equal("Item."+world.ID, world.DocumentUUID())
}

func (s *DocumentsTestSuite) TestAttachAction() {
	s.createActor(testutils.CreateTestPlayer("p1"))
	skill := s.createItem(&simulacrum.Item{OwnerID: "p1", Name: "Hacking", Type: simulacrum.ItemTypeSkill})

	out, err := s.orchestrator.AttachAction(s.ctx, &documents.AttachActionInput{OwnerID: "p1", ItemID: skill.ID, UUID: uuidScan})
	s.Require().NoError(err)
	s.True(out.Attached)
	s.Equal([]string{uuidScan}, out.Item.System.Actions)

	// Short library form resolves to the same action
	out, err = s.orchestrator.AttachAction(s.ctx, &documents.AttachActionInput{
		OwnerID: "p1",
		ItemID:  skill.ID,
		UUID:    "Compendium.simulacrum.actions.scan",
	})
	s.Require().NoError(err)
	s.False(out.Attached)
	s.Equal([]string{uuidScan}, out.Item.System.Actions)

	_, err = s.orchestrator.AttachAction(s.ctx, &documents.AttachActionInput{
		OwnerID: "p1",
		ItemID:  skill.ID,
		UUID:    "Compendium.simulacrum.actions.Item.netcat",
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.AttachAction(s.ctx, &documents.AttachActionInput{
		OwnerID: "p1",
		ItemID:  skill.ID,
		UUID:    "Compendium.simulacrum.actions.Item.ghost",
	})
	s.True(errors.IsNotFound(err))

	action := s.createItem(&simulacrum.Item{OwnerID: "p1", Name: "Local", Type: simulacrum.ItemTypeAction})
	_, err = s.orchestrator.AttachAction(s.ctx, &documents.AttachActionInput{OwnerID: "p1", ItemID: action.ID, UUID: uuidSpoof})
	s.True(errors.IsInvalidArgument(err))
}

func (s *DocumentsTestSuite) TestEquipThroughUpdate() {
	s.createActor(testutils.CreateTestPlayer("p1"))
	hacking := s.createItem(&simulacrum.Item{
		OwnerID: "p1",
		Name:    "Hacking",
		Type:    simulacrum.ItemTypeSkill,
		System:  simulacrum.ItemSystem{Actions: []string{uuidScan, uuidSpoof}},
	})
	kit := s.createItem(&simulacrum.Item{
		OwnerID: "p1",
		Name:    "Kit",
		Type:    simulacrum.ItemTypeTool,
		System:  simulacrum.ItemSystem{Actions: []string{uuidScan}},
	})

	equipped := s.setEquipped("p1", hacking.ID, true)
	s.True(equipped.System.Equipped)
	s.Equal([]string{"copy_1", "copy_2"}, equipped.Children())

	s.setEquipped("p1", kit.ID, true)
	actions := s.ownedItems("p1", simulacrum.ItemTypeAction)
	s.Require().Len(actions, 2)
	bonus := map[string]int{}
	for _, a := range actions {
		bonus[a.Name] = a.BonusDice()
	}
	s.Equal(map[string]int{"Port Scan": 1, "Spoof": 0}, bonus)

	// Repeating the same state does not equip twice
	s.setEquipped("p1", kit.ID, true)
	scan, err := s.orchestrator.GetItem(s.ctx, &documents.GetItemInput{OwnerID: "p1", ItemID: "copy_1"})
	s.Require().NoError(err)
	s.Equal(1, scan.Item.BonusDice())

	unequipped := s.setEquipped("p1", hacking.ID, false)
	s.False(unequipped.System.Equipped)
	s.Empty(unequipped.Children())

	actions = s.ownedItems("p1", simulacrum.ItemTypeAction)
	s.Require().Len(actions, 1)
	s.Equal("copy_1", actions[0].ID)
	s.Zero(actions[0].BonusDice())
}

func (s *DocumentsTestSuite) TestEquipWaitsForCopyUpdate() {
	s.createActor(testutils.CreateTestPlayer("p1"))
	s.createItem(testutils.CreateTestSkill("p1", "hacking", uuidScan))
	s.createItem(testutils.CreateTestSkill("p1", "kit", uuidScan))
	s.setEquipped("p1", "hacking", true)

	equipDone := make(chan error, 1)
	s.hooks.beforeUpdate = func(item *simulacrum.Item) {
		if item.ID != "copy_1" {
			return
		}
		go func() {
			_, err := s.equipment.Equip(s.ctx, &equipment.EquipInput{ActorID: "p1", ItemID: "kit"})
			equipDone <- err
		}()
		select {
		case err := <-equipDone:
			equipDone <- err
			s.Fail("equip ran while the copy was being updated")
		case <-time.After(50 * time.Millisecond):
		}
	}

	name := "Deep Scan"
	_, err := s.orchestrator.UpdateItem(s.ctx, &documents.UpdateItemInput{
		OwnerID: "p1",
		ItemID:  "copy_1",
		Changes: &simulacrum.ItemChanges{Name: &name},
	})
	s.Require().NoError(err)
	s.Require().NoError(<-equipDone)
	s.hooks.beforeUpdate = nil

	scan, err := s.orchestrator.GetItem(s.ctx, &documents.GetItemInput{OwnerID: "p1", ItemID: "copy_1"})
	s.Require().NoError(err)
	s.Equal("Deep Scan", scan.Item.Name)
	s.Equal(1, scan.Item.BonusDice())

	kit, err := s.orchestrator.GetItem(s.ctx, &documents.GetItemInput{OwnerID: "p1", ItemID: "kit"})
	s.Require().NoError(err)
	s.Equal([]string{"copy_1"}, kit.Item.Children())

	// kit still holds the copy once hacking lets go
	s.setEquipped("p1", "hacking", false)
	scan, err = s.orchestrator.GetItem(s.ctx, &documents.GetItemInput{OwnerID: "p1", ItemID: "copy_1"})
	s.Require().NoError(err)
	s.Zero(scan.Item.BonusDice())
}

func (s *DocumentsTestSuite) TestCreateItemDropsEquipmentFlags() {
	s.createActor(testutils.CreateTestPlayer("p1"))
	s.createItem(testutils.CreateTestSkill("p1", "hacking", uuidScan))
	s.createItem(testutils.CreateTestSkill("p1", "kit", uuidScan))
	s.setEquipped("p1", "hacking", true)

	dragged := testutils.CreateTestAction("p1", "dragged", "Port Scan", 2)
	dragged.SetOriginalUUID(uuidScan)
	dragged.SetBonusDice(3)
	dragged.SetChildren([]string{"copy_9"})
	created := s.createItem(dragged)
	s.Empty(created.OriginalUUID())
	s.Zero(created.BonusDice())
	s.Empty(created.Children())

	s.setEquipped("p1", "kit", true)

	bonus := map[string]int{}
	for _, a := range s.ownedItems("p1", simulacrum.ItemTypeAction) {
		bonus[a.ID] = a.BonusDice()
	}
	s.Equal(map[string]int{"copy_1": 1, "dragged": 0}, bonus)
}

func (s *DocumentsTestSuite) TestEquipRetriesAfterFailure() {
	s.createActor(testutils.CreateTestPlayer("p1"))
	s.createItem(testutils.CreateTestSkill("p1", "hacking", uuidScan))

	equipped := true
	s.resolver.err = errors.Unavailable("library offline")
	_, err := s.orchestrator.UpdateItem(s.ctx, &documents.UpdateItemInput{
		OwnerID: "p1",
		ItemID:  "hacking",
		Changes: &simulacrum.ItemChanges{Equipped: &equipped},
	})
	s.Require().Error(err)

	stuck, err := s.orchestrator.GetItem(s.ctx, &documents.GetItemInput{OwnerID: "p1", ItemID: "hacking"})
	s.Require().NoError(err)
	s.True(stuck.Item.System.Equipped)
	s.Empty(stuck.Item.Children())

	s.resolver.err = nil
	retried := s.setEquipped("p1", "hacking", true)
	s.Equal([]string{"copy_1"}, retried.Children())
	s.Len(s.ownedItems("p1", simulacrum.ItemTypeAction), 1)
}

func (s *DocumentsTestSuite) TestDeleteEquippedItemReleasesActions() {
	s.createActor(testutils.CreateTestPlayer("p1"))
	hacking := s.createItem(&simulacrum.Item{
		OwnerID: "p1",
		Name:    "Hacking",
		Type:    simulacrum.ItemTypeSkill,
		System:  simulacrum.ItemSystem{Actions: []string{uuidScan}},
	})
	s.setEquipped("p1", hacking.ID, true)
	s.Len(s.ownedItems("p1", simulacrum.ItemTypeAction), 1)

	out, err := s.orchestrator.DeleteItem(s.ctx, &documents.DeleteItemInput{OwnerID: "p1", ItemID: hacking.ID})
	s.Require().NoError(err)
	s.True(out.Deleted)
	s.Empty(s.ownedItems("p1", ""))

	_, err = s.orchestrator.DeleteItem(s.ctx, &documents.DeleteItemInput{OwnerID: "p1", ItemID: hacking.ID})
	s.True(errors.IsNotFound(err))
}

func (s *DocumentsTestSuite) TestActorSheet() {
	s.createActor(&simulacrum.Actor{
		ID:     "n1",
		Name:   "Gateway",
		Type:   simulacrum.ActorTypeNode,
		System: simulacrum.ActorSystem{NodeType: simulacrum.NodeTypeIDS},
	})
	hacking := s.createItem(&simulacrum.Item{
		OwnerID: "n1",
		Name:    "Hacking",
		Type:    simulacrum.ItemTypeSkill,
		System:  simulacrum.ItemSystem{Actions: []string{uuidScan}},
	})
	s.createItem(&simulacrum.Item{OwnerID: "n1", Name: "Kit", Type: simulacrum.ItemTypeTool})
	s.createItem(&simulacrum.Item{
		ID:      "local",
		OwnerID: "n1",
		Name:    "Local",
		Type:    simulacrum.ItemTypeAction,
	})
	s.setEquipped("n1", hacking.ID, true)

	out, err := s.orchestrator.GetActorSheet(s.ctx, &documents.GetActorSheetInput{ActorID: "n1"})
	s.Require().NoError(err)
	sheet := out.Sheet

	s.Equal("IDS/IPS", sheet.NodeTypeLabel)
	s.Len(sheet.NodeTypes, len(simulacrum.NodeTypes()))
	s.Require().Len(sheet.Skills, 1)
	s.Require().Len(sheet.Tools, 1)
	s.Require().Len(sheet.Actions, 2)

	editable := map[string]bool{}
	for _, entry := range sheet.Actions {
		editable[entry.Item.Name] = entry.Editable
		if entry.Item.Name == "Port Scan" {
			s.Equal([]string{"Hacking"}, entry.Parents)
		}
	}
	s.Equal(map[string]bool{"Port Scan": false, "Local": true}, editable)

	player := s.createActor(&simulacrum.Actor{Name: "Vex", Type: simulacrum.ActorTypePlayer})
	out, err = s.orchestrator.GetActorSheet(s.ctx, &documents.GetActorSheetInput{ActorID: player.ID})
	s.Require().NoError(err)
	s.Empty(out.Sheet.NodeTypes)
	s.Empty(out.Sheet.Actions)
}

func (s *DocumentsTestSuite) TestDeleteActorCascades() {
	s.createActor(testutils.CreateTestPlayer("p1"))
	hacking := s.createItem(&simulacrum.Item{
		OwnerID: "p1",
		Name:    "Hacking",
		Type:    simulacrum.ItemTypeSkill,
		System:  simulacrum.ItemSystem{Actions: []string{uuidScan, uuidSpoof}},
	})
	s.setEquipped("p1", hacking.ID, true)

	out, err := s.orchestrator.DeleteActor(s.ctx, &documents.DeleteActorInput{ActorID: "p1"})
	s.Require().NoError(err)
	s.Equal(3, out.ItemsDeleted)
	s.Empty(s.ownedItems("p1", ""))

	_, err = s.orchestrator.GetActor(s.ctx, &documents.GetActorInput{ActorID: "p1"})
	s.True(errors.IsNotFound(err))
	_, err = s.orchestrator.DeleteActor(s.ctx, &documents.DeleteActorInput{ActorID: "p1"})
	s.True(errors.IsNotFound(err))
}

func (s *DocumentsTestSuite) TestNewValidation() {
	_, err := documents.New(&documents.Config{})
	s.Require().Error(err)
	for _, field := range []string{"ActorRepo", "ItemRepo", "Engine", "Resolver", "Hooks", "IDGenerator", "Locks"} {
		s.Contains(err.Error(), field)
	}
}
