package opponent_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship/internal/dependencies/mocks"
	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/services/opponent"
)

type StrategySuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
	strategy   *opponent.RandomStrategy
	record     *model.ShotRecord
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
	s.strategy = opponent.NewRandomStrategy(s.mockRandom)
	s.record = model.NewShotRecord()
}

func (s *StrategySuite) TestChooseTarget_EmptyRecord() {
	s.mockRandom.QueueTargets(42)
	idx, err := s.strategy.ChooseTarget(s.record)
	s.Require().NoError(err)
	s.Equal(model.Index(42), idx)
}

func (s *StrategySuite) TestChooseTarget_SkipsUsedCells() {
	s.record.Targets.Add(42, 43)
	s.mockRandom.QueueTargets(42, 43, 44)

	idx, err := s.strategy.ChooseTarget(s.record)
	s.Require().NoError(err)
	s.Equal(model.Index(44), idx)
}

func (s *StrategySuite) TestChooseTarget_FallsBackToRemaining() {
	// An exhausted mock always draws 0, which is already used
	for i := model.Index(0); i < model.CellCount-1; i++ {
		s.record.Targets.Add(i)
	}

	idx, err := s.strategy.ChooseTarget(s.record)
	s.Require().NoError(err)
	s.Equal(model.Index(99), idx)
}

func (s *StrategySuite) TestChooseTarget_FullRecord() {
	for i := model.Index(0); i < model.CellCount; i++ {
		s.record.Targets.Add(i)
	}
	_, err := s.strategy.ChooseTarget(s.record)
	s.ErrorIs(err, model.ErrNoTargetsLeft)
}

func (s *StrategySuite) TestRegistry() {
	reg := opponent.NewRegistry(s.mockRandom)

	st, err := reg.Get(model.StrategyRandom)
	s.Require().NoError(err)
	s.NotNil(st)

	_, err = reg.Get("psychic")
	s.ErrorIs(err, model.ErrUnknownStrategy)
}
