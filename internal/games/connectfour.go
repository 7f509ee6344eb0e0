package games

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MJE43/arena-go/internal/arena"
)

const (
	connectFourRows = 6
	connectFourCols = 7
)

var colPattern = regexp.MustCompile(`\[?\s*col(?:umn)?\s*(\d+)\s*\]?|^\s*(\d+)\s*$`)

// ConnectFour is the classic two-player column-drop game on a 6x7 grid.
// Strict rotation; an illegal move forfeits the game.
type ConnectFour struct {
	// board[row][col]: 0 empty, otherwise player id + 1. Row 0 is the top.
	board [][]int
	moves int
}

var (
	_ arena.Game     = (*ConnectFour)(nil)
	_ arena.Renderer = (*ConnectFour)(nil)
)

func NewConnectFour() *ConnectFour { return &ConnectFour{} }

func (g *ConnectFour) ID() string                 { return "connect_four" }
func (g *ConnectFour) PlayerRange() (int, int)    { return 2, 2 }
func (g *ConnectFour) TurnModel() arena.TurnModel { return arena.RoundRobin }

// InvalidActionPolicy: an illegal move is an automatic forfeit, matching the
// strict-board-game convention.
func (g *ConnectFour) InvalidActionPolicy() arena.InvalidActionPolicy {
	return arena.ForfeitOnInvalid
}

func (g *ConnectFour) Init(st *arena.State) error {
	g.board = make([][]int, connectFourRows)
	for r := range g.board {
		g.board[r] = make([]int, connectFourCols)
	}
	g.moves = 0
	for p := 0; p < st.NumPlayers; p++ {
		st.AddObservation(arena.GameID, p, fmt.Sprintf(
			"You are Player %d in Connect Four. Drop your disc into a column with "+
				"'[col 3]' (columns 0-%d). Connect four in a row to win. You play %s.",
			p, connectFourCols-1, []string{"first", "second"}[p]))
	}
	return nil
}

func (g *ConnectFour) OnAction(st *arena.State, player int, action string) error {
	col, err := parseColumn(action)
	if err != nil {
		return err
	}
	if col < 0 || col >= connectFourCols {
		return fmt.Errorf("%w: column %d out of range 0-%d", arena.ErrInvalidAction, col, connectFourCols-1)
	}
	row := g.dropRow(col)
	if row < 0 {
		return fmt.Errorf("%w: column %d is full", arena.ErrInvalidAction, col)
	}
	g.board[row][col] = player + 1
	g.moves++
	st.AddObservation(arena.GameID, arena.ToAll,
		fmt.Sprintf("Player %d dropped a disc into column %d.", player, col))

	if g.wins(row, col) {
		st.SetWinners([]int{player}, fmt.Sprintf("player %d connected four", player))
		return nil
	}
	if g.moves == connectFourRows*connectFourCols {
		st.SetDraw("board full")
	}
	return nil
}

func parseColumn(action string) (int, error) {
	m := colPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(action)))
	if m == nil {
		return 0, fmt.Errorf("%w: expected a column like '[col 3]'", arena.ErrInvalidAction)
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	col, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: bad column %q", arena.ErrInvalidAction, digits)
	}
	return col, nil
}

// dropRow returns the lowest empty row in col, or -1 when full.
func (g *ConnectFour) dropRow(col int) int {
	for r := connectFourRows - 1; r >= 0; r-- {
		if g.board[r][col] == 0 {
			return r
		}
	}
	return -1
}

// wins checks the four line directions through the last move.
func (g *ConnectFour) wins(row, col int) bool {
	who := g.board[row][col]
	dirs := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for _, d := range dirs {
		count := 1
		for _, sign := range []int{1, -1} {
			r, c := row+sign*d[0], col+sign*d[1]
			for r >= 0 && r < connectFourRows && c >= 0 && c < connectFourCols && g.board[r][c] == who {
				count++
				r += sign * d[0]
				c += sign * d[1]
			}
		}
		if count >= 4 {
			return true
		}
	}
	return false
}

func (g *ConnectFour) RenderState(st *arena.State) string {
	var b strings.Builder
	for r := 0; r < connectFourRows; r++ {
		for c := 0; c < connectFourCols; c++ {
			switch g.board[r][c] {
			case 1:
				b.WriteString(" X")
			case 2:
				b.WriteString(" O")
			default:
				b.WriteString(" .")
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString(" 0 1 2 3 4 5 6")
	return b.String()
}
