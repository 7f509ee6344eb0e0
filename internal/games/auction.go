package games

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MJE43/arena-go/internal/arena"
)

const (
	auctionLots          = 3
	auctionStartingFunds = 100
)

var bidPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// BlindAuction is a simultaneous sealed-bid game. Each round one lot with a
// public value goes up for auction; every active player submits a sealed bid
// from a shared starting budget. The highest affordable bid wins the lot and
// pays its bid (ties go to the lowest player index). After the last lot the
// richest player — funds plus collected lot value — wins.
//
// A submission with no parseable amount counts as a zero bid; there is no
// retry inside a sealed round, so the policy below only covers out-of-band
// rejections.
type BlindAuction struct {
	funds     []decimal.Decimal
	collected []decimal.Decimal
	lotValues []decimal.Decimal
	lot       int
}

var (
	_ arena.Game          = (*BlindAuction)(nil)
	_ arena.RoundResolver = (*BlindAuction)(nil)
	_ arena.Renderer      = (*BlindAuction)(nil)
)

func NewBlindAuction() *BlindAuction { return &BlindAuction{} }

func (g *BlindAuction) ID() string                 { return "blind_auction" }
func (g *BlindAuction) PlayerRange() (int, int)    { return 2, 15 }
func (g *BlindAuction) TurnModel() arena.TurnModel { return arena.Simultaneous }

func (g *BlindAuction) InvalidActionPolicy() arena.InvalidActionPolicy {
	return arena.RejectAndRetry
}

func (g *BlindAuction) Init(st *arena.State) error {
	st.MaxTurns = auctionLots
	g.lot = 0
	g.funds = make([]decimal.Decimal, st.NumPlayers)
	g.collected = make([]decimal.Decimal, st.NumPlayers)
	for p := range g.funds {
		g.funds[p] = decimal.NewFromInt(auctionStartingFunds)
		g.collected[p] = decimal.Zero
	}
	g.lotValues = make([]decimal.Decimal, auctionLots)
	for i := range g.lotValues {
		// Lot values between 20.00 and 80.00 in cent precision.
		cents := 2000 + st.Rand.Intn(6001)
		g.lotValues[i] = decimal.New(int64(cents), -2)
	}
	for p := 0; p < st.NumPlayers; p++ {
		st.AddObservation(arena.GameID, p, fmt.Sprintf(
			"You are Player %d in a blind auction with %d players. You start with %s in funds. "+
				"%d lots are auctioned one at a time; submit a sealed bid like '12.50' each round. "+
				"The highest bid wins the lot and pays its bid. The richest player at the end wins.",
			p, st.NumPlayers, decimal.NewFromInt(auctionStartingFunds).StringFixed(2), auctionLots))
	}
	g.announceLot(st)
	return nil
}

func (g *BlindAuction) announceLot(st *arena.State) {
	st.AddObservation(arena.GameID, arena.ToAll, fmt.Sprintf(
		"Lot %d of %d is up for auction. Its value is %s. Place your sealed bid.",
		g.lot+1, auctionLots, g.lotValues[g.lot].StringFixed(2)))
}

// OnAction is unused: simultaneous submissions are buffered by the pipeline
// and land in ResolveRound.
func (g *BlindAuction) OnAction(st *arena.State, player int, action string) error {
	return fmt.Errorf("blind auction resolves whole rounds, not single actions")
}

func (g *BlindAuction) ResolveRound(st *arena.State, actions map[int]string) error {
	winner := -1
	best := decimal.Zero
	bids := make(map[int]decimal.Decimal, len(actions))
	for p := 0; p < st.NumPlayers; p++ {
		raw, ok := actions[p]
		if !ok {
			continue
		}
		bid := g.parseBid(raw)
		if bid.GreaterThan(g.funds[p]) {
			st.AddObservation(arena.GameID, p, fmt.Sprintf(
				"Your bid %s exceeds your funds %s and was reduced to zero.",
				bid.StringFixed(2), g.funds[p].StringFixed(2)))
			bid = decimal.Zero
		}
		bids[p] = bid
		// Ties go to the lowest player index: strict comparison keeps the
		// earliest best bid.
		if winner < 0 || bid.GreaterThan(best) {
			winner = p
			best = bids[p]
		}
	}

	value := g.lotValues[g.lot]
	if winner >= 0 && best.GreaterThan(decimal.Zero) {
		g.funds[winner] = g.funds[winner].Sub(best)
		g.collected[winner] = g.collected[winner].Add(value)
		st.AddObservation(arena.GameID, arena.ToAll, fmt.Sprintf(
			"Player %d wins lot %d (value %s) with a bid of %s.",
			winner, g.lot+1, value.StringFixed(2), best.StringFixed(2)))
	} else {
		st.AddObservation(arena.GameID, arena.ToAll,
			fmt.Sprintf("Nobody bid on lot %d; it goes unsold.", g.lot+1))
	}

	g.lot++
	if g.lot < auctionLots {
		g.announceLot(st)
		return nil
	}
	g.settle(st)
	return nil
}

// parseBid extracts the first decimal amount from a submission; anything
// unparseable is a zero bid.
func (g *BlindAuction) parseBid(raw string) decimal.Decimal {
	m := bidPattern.FindString(raw)
	if m == "" {
		return decimal.Zero
	}
	bid, err := decimal.NewFromString(m)
	if err != nil || bid.IsNegative() {
		return decimal.Zero
	}
	return bid
}

func (g *BlindAuction) settle(st *arena.State) {
	best := -1
	var bestWorth decimal.Decimal
	tied := false
	for p := 0; p < st.NumPlayers; p++ {
		worth := g.funds[p].Add(g.collected[p])
		switch {
		case best < 0 || worth.GreaterThan(bestWorth):
			best, bestWorth, tied = p, worth, false
		case worth.Equal(bestWorth):
			tied = true
		}
	}
	if tied {
		st.SetDraw(fmt.Sprintf("tie at %s", bestWorth.StringFixed(2)))
		return
	}
	st.SetWinners([]int{best}, fmt.Sprintf("player %d finishes richest at %s", best, bestWorth.StringFixed(2)))
}

func (g *BlindAuction) RenderState(st *arena.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "lot %d/%d\n", g.lot, auctionLots)
	for p := 0; p < st.NumPlayers; p++ {
		fmt.Fprintf(&b, "player %d: funds %s, collected %s\n",
			p, g.funds[p].StringFixed(2), g.collected[p].StringFixed(2))
	}
	return strings.TrimRight(b.String(), "\n")
}
