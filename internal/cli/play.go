package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/coincollector-go/internal/client"
	"github.com/mcoot/coincollector-go/internal/config"
	"github.com/mcoot/coincollector-go/internal/dependencies/clock"
	"github.com/mcoot/coincollector-go/internal/transport"
)

const statusInterval = 500 * time.Millisecond

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Connect to a server and play a match",
		Long: `Connect to a server and play a match.

Movement is line-based on stdin: type a direction and press enter.
  w/a/s/d  move up/left/down/right (combine for diagonals, e.g. "wd")
  x        stop
  q        quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay()
		},
	}
}

func runPlay() error {
	wsURL, err := cfg.WebsocketURL()
	if err != nil {
		return err
	}
	gameCfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", wsURL, err)
	}
	conn := transport.NewWSConn(ws)
	defer func() { _ = conn.Close() }()

	clk := clock.New()
	c := client.New(gameCfg, logger, conn)

	readDone := make(chan error, 1)
	go func() {
		readDone <- conn.ReadLoop(c.HandleFrame)
	}()

	quit := make(chan struct{})
	go readCommands(c, quit)

	fmt.Printf("connected to %s\n", wsURL)

	ticker := time.NewTicker(gameCfg.TickInterval())
	defer ticker.Stop()
	dt := gameCfg.TickInterval().Seconds()
	lastStatus := clk.Now()

	for {
		select {
		case <-quit:
			fmt.Println("bye")
			return nil
		case err := <-readDone:
			if c.Phase() == client.PhaseEnded {
				printResult(c)
				return nil
			}
			return fmt.Errorf("connection lost: %w", err)
		case <-ticker.C:
			now := clk.Now()
			c.Step(now, dt)

			if c.Phase() == client.PhaseEnded {
				printResult(c)
				return nil
			}
			if c.Phase() == client.PhaseRefused {
				return fmt.Errorf("server refused the connection: match is full")
			}
			if now.Sub(lastStatus) >= statusInterval {
				printStatus(c, now)
				lastStatus = now
			}
		}
	}
}

// readCommands maps stdin lines onto directional input
func readCommands(c *client.Client, quit chan<- struct{}) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "q" || line == "quit" {
			close(quit)
			return
		}
		dx, dy, ok := parseDirection(line)
		if !ok {
			fmt.Printf("unknown command %q (w/a/s/d to move, x to stop, q to quit)\n", line)
			continue
		}
		c.SetInput(dx, dy)
	}
	close(quit)
}

func parseDirection(line string) (dx, dy int, ok bool) {
	if line == "x" || line == "stop" {
		return 0, 0, true
	}
	if line == "" {
		return 0, 0, false
	}
	for _, r := range line {
		switch r {
		case 'w':
			dy = -1
		case 's':
			dy = 1
		case 'a':
			dx = -1
		case 'd':
			dx = 1
		default:
			return 0, 0, false
		}
	}
	return dx, dy, true
}

func printStatus(c *client.Client, now time.Time) {
	v := c.View(now)
	switch v.Phase {
	case client.PhaseConnecting:
		fmt.Println("connecting...")
	case client.PhaseWaiting:
		fmt.Println("waiting for a second player...")
	case client.PhasePlaying:
		line := fmt.Sprintf("[%5.1fs] you (%s) %d pts at (%.0f, %.0f)",
			v.GameTime, v.Local.Color, v.Local.Score, v.Local.X, v.Local.Y)
		if v.Remote != nil {
			line += fmt.Sprintf("  |  opponent %d pts at (%.0f, %.0f)",
				v.Remote.Score, v.Remote.X, v.Remote.Y)
		}
		line += fmt.Sprintf("  |  %d coins", len(v.Coins))
		fmt.Println(line)
	}
}

func printResult(c *client.Client) {
	res := c.Result()
	if res == nil {
		fmt.Println("match ended")
		return
	}
	if res.PeerLeft {
		fmt.Println("opponent disconnected")
	}
	switch {
	case res.Draw:
		fmt.Println("match over: draw")
	case res.Winner == c.PlayerID():
		fmt.Println("match over: you won!")
	default:
		fmt.Printf("match over: player %d won\n", res.Winner)
	}
	fmt.Printf("reason: %s, final scores: you %d, opponent %d\n",
		res.Reason, res.Scores[c.PlayerID()], res.Scores[c.PlayerID().Other()])
}
