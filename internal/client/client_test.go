package client

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/coincollector-go/internal/config"
	"github.com/mcoot/coincollector-go/internal/dependencies/mocks"
	"github.com/mcoot/coincollector-go/internal/model"
	"github.com/mcoot/coincollector-go/internal/protocol"
	"github.com/mcoot/coincollector-go/internal/testutil"
)

type fakeConn struct {
	mu   sync.Mutex
	sent [][]byte
}

func (c *fakeConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, data)
	return nil
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) inputs(t *testing.T) []protocol.Input {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []protocol.Input
	for _, frame := range c.sent {
		env, err := protocol.DecodeEnvelope(frame)
		if err != nil {
			t.Fatalf("client sent undecodable frame: %v", err)
		}
		if env.T != protocol.KindInput {
			t.Fatalf("client sent unexpected kind %q", env.T)
		}
		in, err := protocol.DecodePayload[protocol.Input](env)
		if err != nil {
			t.Fatalf("client sent malformed input: %v", err)
		}
		out = append(out, in)
	}
	return out
}

type ClientSuite struct {
	suite.Suite
	cfg    config.Config
	clk    *mocks.MockClock
	conn   *fakeConn
	client *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.cfg = config.Default()
	s.clk = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.conn = &fakeConn{}
	s.client = New(s.cfg, testutil.NopLogger(), s.conn)
}

func (s *ClientSuite) feed(kind protocol.Kind, payload any) {
	data, err := protocol.Encode(kind, payload)
	s.Require().NoError(err)
	s.client.HandleFrame(data)
}

func (s *ClientSuite) step() {
	s.client.Step(s.clk.Now(), s.cfg.TickInterval().Seconds())
}

func (s *ClientSuite) joinAndStart() {
	s.feed(protocol.KindAssign, protocol.Assign{PlayerID: model.PlayerOne, Color: "blue", X: 400, Y: 300})
	s.feed(protocol.KindWaiting, protocol.Waiting{Message: "waiting"})
	s.feed(protocol.KindMatchStart, protocol.MatchStart{ServerTime: s.clk.Now().UnixMilli()})
	s.step()
}

func (s *ClientSuite) TestAssignSeedsLocalPlayer() {
	s.feed(protocol.KindAssign, protocol.Assign{PlayerID: model.PlayerTwo, Color: "red", X: 100, Y: 200})
	s.feed(protocol.KindWaiting, protocol.Waiting{Message: "waiting"})
	s.step()

	s.Equal(model.PlayerTwo, s.client.PlayerID())
	s.Equal(PhaseWaiting, s.client.Phase())

	v := s.client.View(s.clk.Now())
	s.Equal(100.0, v.Local.X)
	s.Equal(200.0, v.Local.Y)
	s.Equal("red", v.Local.Color)
	s.Nil(v.Remote)
}

func (s *ClientSuite) TestPredictionMovesBeforeAnyServerAck() {
	s.joinAndStart()

	s.client.SetInput(1, 0)
	for i := 0; i < 30; i++ {
		s.clk.Advance(s.cfg.TickInterval())
		s.step()
	}

	// Half a second at full speed, no snapshot ever received
	v := s.client.View(s.clk.Now())
	s.InDelta(500.0, v.Local.X, 0.001)
	s.Equal(300.0, v.Local.Y)
}

func (s *ClientSuite) TestInputSentImmediatelyOnChangeThenThrottled() {
	// The first playing step emits the initial idle input
	s.joinAndStart()
	s.Require().Len(s.conn.inputs(s.T()), 1)

	// A change goes out immediately, ahead of the throttle window
	s.client.SetInput(0, -1)
	s.step()
	inputs := s.conn.inputs(s.T())
	s.Require().Len(inputs, 2)
	s.Equal(protocol.Input{DX: 0, DY: -1}, inputs[1])

	// Unchanged input inside the window is not re-sent
	s.clk.Advance(10 * time.Millisecond)
	s.step()
	s.Len(s.conn.inputs(s.T()), 2)

	// The keepalive resumes once the interval has passed
	s.clk.Advance(s.cfg.InputSendInterval())
	s.step()
	s.Len(s.conn.inputs(s.T()), 3)
}

func (s *ClientSuite) TestSetInputFromAnotherGoroutine() {
	s.joinAndStart()

	// Hammer SetInput from a second goroutine, the way a stdin reader
	// does, while the render loop keeps stepping
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			s.client.SetInput(1, 0)
			s.client.SetInput(0, 1)
		}
		s.client.SetInput(-1, 0)
	}()
	for i := 0; i < 50; i++ {
		s.clk.Advance(s.cfg.TickInterval())
		s.step()
	}
	<-done
	s.clk.Advance(s.cfg.InputSendInterval())
	s.step()

	inputs := s.conn.inputs(s.T())
	s.Require().NotEmpty(inputs)
	s.Equal(protocol.Input{DX: -1, DY: 0}, inputs[len(inputs)-1])
}

func (s *ClientSuite) TestIntentQueueKeepsNewestWhenFlooded() {
	s.joinAndStart()

	// Far more intents than the queue holds; the final one must survive
	for i := 0; i < 100; i++ {
		s.client.SetInput(1, 0)
	}
	s.client.SetInput(0, -1)
	s.clk.Advance(s.cfg.InputSendInterval())
	s.step()

	inputs := s.conn.inputs(s.T())
	s.Equal(protocol.Input{DX: 0, DY: -1}, inputs[len(inputs)-1])
}

func (s *ClientSuite) TestSnapshotDrivesRemoteInterpolation() {
	s.joinAndStart()
	base := s.clk.Now()

	snap := func(at time.Time, x float64) protocol.Snapshot {
		return protocol.Snapshot{
			Tick:       1,
			ServerTime: at.UnixMilli(),
			Phase:      model.MatchPhasePlaying,
			Players: []protocol.PlayerSnapshot{
				{ID: model.PlayerOne, X: 400, Y: 300, Score: 0, Color: "blue"},
				{ID: model.PlayerTwo, X: x, Y: 100, Score: 2, Color: "red"},
			},
			Coins: []protocol.CoinSnapshot{{ID: 7, X: 50, Y: 50}},
		}
	}
	s.feed(protocol.KindSnapshot, snap(base, 100))
	s.feed(protocol.KindSnapshot, snap(base.Add(100*time.Millisecond), 200))
	s.step()

	// Render delay of 100ms puts the render time exactly between the
	// two samples
	v := s.client.View(base.Add(150 * time.Millisecond))
	s.Require().NotNil(v.Remote)
	s.Equal(model.PlayerTwo, v.Remote.ID)
	s.InDelta(150.0, v.Remote.X, 1e-9)
	s.Equal(100.0, v.Remote.Y)
	s.Equal(2, v.Remote.Score)
	s.Require().Len(v.Coins, 1)
	s.Equal(model.CoinID(7), v.Coins[0].ID)

	// Local player stays on its prediction; 0 drift means no correction
	s.Equal(400.0, v.Local.X)
}

func (s *ClientSuite) TestCoinCollectedUpdatesScoresAndRemovesCoin() {
	s.joinAndStart()
	s.feed(protocol.KindSnapshot, protocol.Snapshot{
		ServerTime: s.clk.Now().UnixMilli(),
		Phase:      model.MatchPhasePlaying,
		Players: []protocol.PlayerSnapshot{
			{ID: model.PlayerOne, X: 400, Y: 300},
			{ID: model.PlayerTwo, X: 100, Y: 100},
		},
		Coins: []protocol.CoinSnapshot{{ID: 3, X: 10, Y: 10}, {ID: 4, X: 20, Y: 20}},
	})
	s.step()

	s.feed(protocol.KindCoinCollected, protocol.CoinCollected{
		PlayerID: model.PlayerOne,
		CoinID:   3,
		NewScore: 1,
	})
	s.step()

	v := s.client.View(s.clk.Now())
	s.Equal(1, v.Local.Score)
	s.Require().Len(v.Coins, 1)
	s.Equal(model.CoinID(4), v.Coins[0].ID)
}

func (s *ClientSuite) TestMatchEndAfterPeerLeft() {
	s.joinAndStart()

	s.feed(protocol.KindPeerLeft, protocol.PeerLeft{PlayerID: model.PlayerTwo})
	s.feed(protocol.KindMatchEnd, protocol.MatchEnd{
		Winner: model.PlayerOne,
		Scores: map[model.PlayerID]int{model.PlayerOne: 2, model.PlayerTwo: 1},
		Reason: model.EndReasonDisconnect,
	})
	s.step()

	s.Equal(PhaseEnded, s.client.Phase())
	res := s.client.Result()
	s.Require().NotNil(res)
	s.Equal(model.PlayerOne, res.Winner)
	s.True(res.PeerLeft)
	s.Equal(model.EndReasonDisconnect, res.Reason)
}

func (s *ClientSuite) TestFullRefusal() {
	s.feed(protocol.KindFull, protocol.Full{Message: "match is full"})
	s.step()
	s.Equal(PhaseRefused, s.client.Phase())
}
