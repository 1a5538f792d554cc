package dice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
	apierrors "github.com/KirkDiggler/simulacrum/internal/errors"
	"github.com/KirkDiggler/simulacrum/internal/orchestrators/dice"
	"github.com/KirkDiggler/simulacrum/internal/pkg/clock"
	"github.com/KirkDiggler/simulacrum/internal/pkg/idgen"
	"github.com/KirkDiggler/simulacrum/internal/repositories/actors"
	chatmessage "github.com/KirkDiggler/simulacrum/internal/repositories/chat_message"
	"github.com/KirkDiggler/simulacrum/internal/repositories/items"
	"github.com/KirkDiggler/simulacrum/internal/testutils"
)

const testActorID = "actor0000000001"

// stubRoller returns faces in order, cycling
type stubRoller struct {
	faces []int
	next  int
	calls [][2]int
	err   error
}

func (s *stubRoller) Roll(size int) (int, error) {
	values, err := s.RollN(1, size)
	if err != nil {
		return 0, err
	}
	return values[0], nil
}

func (s *stubRoller) RollN(count, size int) ([]int, error) {
	s.calls = append(s.calls, [2]int{count, size})
	if s.err != nil {
		return nil, s.err
	}
	out := make([]int, count)
	for i := range out {
		out[i] = s.faces[s.next%len(s.faces)]
		s.next++
	}
	return out, nil
}

type DiceOrchestratorTestSuite struct {
	suite.Suite
	cleanup      func()
	actorRepo    actors.Repository
	itemRepo     items.Repository
	chatRepo     chatmessage.Repository
	roller       *stubRoller
	orchestrator dice.Service
	ctx          context.Context
}

func TestDiceOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(DiceOrchestratorTestSuite))
}

func (s *DiceOrchestratorTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()

	var err error
	s.actorRepo, err = actors.NewRedis(&actors.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.itemRepo, err = items.NewRedis(&items.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.chatRepo, err = chatmessage.NewRedisRepository(&chatmessage.Config{
		Client: client,
		Clock:  &clock.Fixed{At: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	})
	s.Require().NoError(err)

	s.roller = &stubRoller{faces: []int{3, 5, 6}}
	s.orchestrator, err = dice.NewOrchestrator(&dice.Config{
		ActorRepo:   s.actorRepo,
		ItemRepo:    s.itemRepo,
		ChatRepo:    s.chatRepo,
		IDGenerator: idgen.NewSequential("msg"),
		Roller:      s.roller,
	})
	s.Require().NoError(err)

	_, err = s.actorRepo.Create(s.ctx, actors.CreateInput{Actor: testutils.CreateTestPlayer(testActorID)})
	s.Require().NoError(err)
}

func (s *DiceOrchestratorTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *DiceOrchestratorTestSuite) createItem(item *simulacrum.Item) {
	_, err := s.itemRepo.Create(s.ctx, items.CreateInput{Item: item})
	s.Require().NoError(err)
}

func (s *DiceOrchestratorTestSuite) TestRollActionAddsBonusDice() {
	scan := testutils.CreateTestAction(testActorID, "scan", "Port Scan", 2)
	scan.SetBonusDice(1)
	s.createItem(scan)

	out, err := s.orchestrator.RollAction(s.ctx, &dice.RollActionInput{ActorID: testActorID, ItemID: "scan"})
	s.Require().NoError(err)
	s.Require().True(out.Rolled())

	msg := out.Message
	s.Equal("msg_1", msg.ID)
	s.Equal(chatmessage.Speaker{ActorID: testActorID, Alias: "Vex"}, msg.Speaker)
	s.Equal("Port Scan", msg.Flavor)
	s.Equal("3d6", msg.Roll.Formula)
	s.Equal([]int{3, 5, 6}, msg.Roll.Dice)
	s.Equal(14, msg.Roll.Total)
	s.Equal("+3d6[3,5,6]=14", msg.Roll.Description)
	s.Equal([][2]int{{3, 6}}, s.roller.calls)

	listed, err := s.orchestrator.ListMessages(s.ctx, &dice.ListMessagesInput{ActorID: testActorID})
	s.Require().NoError(err)
	s.Require().Len(listed.Messages, 1)
	s.Equal("msg_1", listed.Messages[0].ID)
}

func (s *DiceOrchestratorTestSuite) TestRollActionGates() {
	s.createItem(testutils.CreateTestSkill(testActorID, "hacking"))
	s.createItem(testutils.CreateTestAction(testActorID, "idle", "Idle", 0))
	s.createItem(testutils.CreateTestAction("actor0000000404", "orphan", "Orphan", 1))
	s.createItem(testutils.CreateTestAction(simulacrum.WorldOwnerID, "brute", "Brute", 1))

	testCases := []struct {
		name    string
		actorID string
		itemID  string
		reason  string
	}{
		{"not an action", testActorID, "hacking", dice.ReasonNotAction},
		{"zero dice", testActorID, "idle", dice.ReasonNoDice},
		{"owner missing", "actor0000000404", "orphan", dice.ReasonNoActor},
		{"world item", simulacrum.WorldOwnerID, "brute", dice.ReasonWorldItem},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.orchestrator.RollAction(s.ctx, &dice.RollActionInput{ActorID: tc.actorID, ItemID: tc.itemID})
			s.Require().NoError(err)
			s.False(out.Rolled())
			s.Equal(tc.reason, out.Reason)
		})
	}

	s.Empty(s.roller.calls)
	listed, err := s.orchestrator.ListMessages(s.ctx, &dice.ListMessagesInput{ActorID: testActorID})
	s.Require().NoError(err)
	s.Empty(listed.Messages)
}

func (s *DiceOrchestratorTestSuite) TestRollActionErrors() {
	_, err := s.orchestrator.RollAction(s.ctx, nil)
	s.True(apierrors.IsInvalidArgument(err))

	_, err = s.orchestrator.RollAction(s.ctx, &dice.RollActionInput{})
	s.Require().Error(err)
	s.Contains(err.Error(), "ActorID")
	s.Contains(err.Error(), "ItemID")

	_, err = s.orchestrator.RollAction(s.ctx, &dice.RollActionInput{ActorID: testActorID, ItemID: "ghost"})
	s.True(apierrors.IsNotFound(err))

	s.createItem(testutils.CreateTestAction(testActorID, "scan", "Port Scan", 2))
	s.roller.err = errors.New("entropy exhausted")
	_, err = s.orchestrator.RollAction(s.ctx, &dice.RollActionInput{ActorID: testActorID, ItemID: "scan"})
	s.Equal(apierrors.CodeInternal, apierrors.GetCode(err))
}

func (s *DiceOrchestratorTestSuite) TestListMessagesLimit() {
	s.createItem(testutils.CreateTestAction(testActorID, "spoof", "Spoof", 1))
	for i := 0; i < 3; i++ {
		_, err := s.orchestrator.RollAction(s.ctx, &dice.RollActionInput{ActorID: testActorID, ItemID: "spoof"})
		s.Require().NoError(err)
	}

	listed, err := s.orchestrator.ListMessages(s.ctx, &dice.ListMessagesInput{ActorID: testActorID, Limit: 2})
	s.Require().NoError(err)
	s.Len(listed.Messages, 2)

	_, err = s.orchestrator.ListMessages(s.ctx, &dice.ListMessagesInput{ActorID: testActorID, Limit: -1})
	s.True(apierrors.IsInvalidArgument(err))
	_, err = s.orchestrator.ListMessages(s.ctx, &dice.ListMessagesInput{})
	s.True(apierrors.IsInvalidArgument(err))
}

func (s *DiceOrchestratorTestSuite) TestDefaultRoller() {
	svc, err := dice.NewOrchestrator(&dice.Config{
		ActorRepo:   s.actorRepo,
		ItemRepo:    s.itemRepo,
		ChatRepo:    s.chatRepo,
		IDGenerator: idgen.NewSequential("roll"),
	})
	s.Require().NoError(err)

	s.createItem(testutils.CreateTestAction(testActorID, "trace", "Trace", 4))

	out, err := svc.RollAction(s.ctx, &dice.RollActionInput{ActorID: testActorID, ItemID: "trace"})
	s.Require().NoError(err)
	s.Require().True(out.Rolled())
	s.Len(out.Message.Roll.Dice, 4)
	sum := 0
	for _, d := range out.Message.Roll.Dice {
		s.GreaterOrEqual(d, 1)
		s.LessOrEqual(d, 6)
		sum += d
	}
	s.Equal(sum, out.Message.Roll.Total)
}

func (s *DiceOrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := dice.NewOrchestrator(&dice.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "invalid config")
	s.Contains(err.Error(), "ChatRepo")

	_, err = dice.NewOrchestrator(nil)
	s.True(apierrors.IsInvalidArgument(err))
}
