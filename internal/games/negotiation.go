package games

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/MJE43/arena-go/internal/arena"
)

// Action grammar for the negotiation game.
var (
	broadcastPattern = regexp.MustCompile(`(?is)\[Broadcast\s*:?\s*([^\[\]]*)\]?`)
	whisperPattern   = regexp.MustCompile(`(?is)\[Whisper\s+(?:to\s+)?(?:Player\s+)?(\d+)\s*:?\s*([^\[\]]*)\]?`)
	offerPattern     = regexp.MustCompile(`(?is)\[Offer\s+(?:to\s+)?(?:Player\s+)?(\d+)\s*:?\s*(.*?)\]`)
	acceptPattern    = regexp.MustCompile(`(?i)\[Accept\s*#?\s*(\d+)\]`)
	denyPattern      = regexp.MustCompile(`(?i)\[Deny\s*#?\s*(\d+)\]`)
	resourcePattern  = regexp.MustCompile(`(\d+)\s+(.+)`)
	resourceSplit    = regexp.MustCompile(`(?i),\s*|\s+and\s+`)
)

const negotiationMaxTurns = 25

type tradeOffer struct {
	from      int
	to        int
	offered   map[string]int
	requested map[string]int
}

// Negotiation is an N-player trading game. On their turn a player may
// broadcast messages, whisper privately, make trade offers, and accept or
// deny offers addressed to them — several tokens per action are allowed.
// When the turn limit is reached the player with the highest inventory value
// (by their private valuations) wins.
type Negotiation struct {
	resourceNames []string
	baseValues    map[string]int

	resources map[int]map[string]int
	values    map[int]map[string]int
	offers    map[int]*tradeOffer
	offerSeq  int
}

var _ arena.Game = (*Negotiation)(nil)

func NewNegotiation() *Negotiation {
	return &Negotiation{
		resourceNames: []string{"Wheat", "Wood", "Sheep", "Brick", "Ore"},
		baseValues:    map[string]int{"Wheat": 5, "Wood": 10, "Sheep": 15, "Brick": 25, "Ore": 40},
	}
}

func (g *Negotiation) ID() string                 { return "negotiation" }
func (g *Negotiation) PlayerRange() (int, int)    { return 3, 15 }
func (g *Negotiation) TurnModel() arena.TurnModel { return arena.RoundRobin }

// InvalidActionPolicy: an action with no recognizable token is rejected and
// the player retries; malformed individual tokens only produce feedback.
func (g *Negotiation) InvalidActionPolicy() arena.InvalidActionPolicy {
	return arena.RejectAndRetry
}

func (g *Negotiation) Init(st *arena.State) error {
	st.MaxTurns = negotiationMaxTurns
	g.resources = make(map[int]map[string]int, st.NumPlayers)
	g.values = make(map[int]map[string]int, st.NumPlayers)
	g.offers = make(map[int]*tradeOffer)
	g.offerSeq = 0

	for p := 0; p < st.NumPlayers; p++ {
		g.resources[p] = make(map[string]int, len(g.resourceNames))
		g.values[p] = make(map[string]int, len(g.resourceNames))
		for _, r := range g.resourceNames {
			g.resources[p][r] = 5 + st.Rand.Intn(21)
			base := g.baseValues[r]
			variation := base / 5
			low, high := base-variation, base+variation
			if low < 5 {
				low = 5
			}
			if high > 40 {
				high = 40
			}
			g.values[p][r] = low + st.Rand.Intn(high-low+1)
		}
		st.AddObservation(arena.GameID, p, g.playerPrompt(p, st))
	}
	return nil
}

func (g *Negotiation) playerPrompt(player int, st *arena.State) string {
	var lines []string
	for _, r := range g.resourceNames {
		lines = append(lines, fmt.Sprintf("- %d x %s (value: %d each)", g.resources[player][r], r, g.values[player][r]))
	}
	return fmt.Sprintf(
		"You are Player %d in a %d-player game of Negotiation.\nYou have:\n%s\n\n"+
			"Maximize your total resource value by trading. Available actions:\n"+
			"  [Broadcast: message] - send a message to all players\n"+
			"  [Whisper to X: message] - send a private message to player X\n"+
			"  [Offer to X: 2 Wheat -> 3 Wood] - make a trade offer to player X\n"+
			"  [Accept #n], [Deny #n] - respond to an offer made to you\n"+
			"You may combine several tokens in one turn. Game ends after %d turns.",
		player, st.NumPlayers, strings.Join(lines, "\n"), negotiationMaxTurns)
}

func (g *Negotiation) OnAction(st *arena.State, player int, action string) error {
	matched := g.processBroadcasts(st, player, action)
	matched = g.processWhispers(st, player, action) || matched
	matched = g.processOffers(st, player, action) || matched
	matched = g.processResponses(st, player, action) || matched
	if !matched {
		return fmt.Errorf("%w: no recognizable token; use [Broadcast: ...], [Whisper to X: ...], "+
			"[Offer to X: ...], [Accept #n] or [Deny #n]", arena.ErrInvalidAction)
	}

	// Last turn decides the winner before the turn limit truncates the game.
	if st.Turn == st.MaxTurns-1 {
		g.determineWinner(st)
	}
	return nil
}

func (g *Negotiation) processBroadcasts(st *arena.State, from int, action string) bool {
	matched := false
	for _, m := range broadcastPattern.FindAllStringSubmatch(action, -1) {
		matched = true
		if content := strings.TrimSpace(m[1]); content != "" {
			st.AddObservation(from, arena.ToAll, fmt.Sprintf("(Broadcast) Player %d says: %s", from, content))
		}
	}
	return matched
}

func (g *Negotiation) processWhispers(st *arena.State, from int, action string) bool {
	matched := false
	for _, m := range whisperPattern.FindAllStringSubmatch(action, -1) {
		matched = true
		target, err := strconv.Atoi(m[1])
		if err != nil || target < 0 || target >= st.NumPlayers {
			g.reject(st, from, fmt.Sprintf("whisper to non-existent player %q", m[1]))
			continue
		}
		if content := strings.TrimSpace(m[2]); content != "" {
			st.AddObservation(from, target, fmt.Sprintf("(Private) Player %d says: %s", from, content))
		}
	}
	return matched
}

func (g *Negotiation) processOffers(st *arena.State, from int, action string) bool {
	matched := false
	for _, m := range offerPattern.FindAllStringSubmatch(action, -1) {
		matched = true
		target, err := strconv.Atoi(m[1])
		if err != nil || target < 0 || target >= st.NumPlayers {
			g.reject(st, from, fmt.Sprintf("offer to non-existent player %q", m[1]))
			continue
		}
		parts := strings.Split(m[2], "->")
		if len(parts) != 2 {
			g.reject(st, from, fmt.Sprintf("cannot parse offer %q, expected '2 Wheat -> 3 Wood'", m[2]))
			continue
		}
		offered := g.parseResourceList(parts[0])
		requested := g.parseResourceList(parts[1])
		if offered == nil || requested == nil {
			g.reject(st, from, fmt.Sprintf("invalid resource list in offer %q", m[2]))
			continue
		}
		if !g.hasResources(from, offered) {
			g.reject(st, from, "you do not hold enough resources to make that offer")
			continue
		}

		g.offerSeq++
		id := g.offerSeq
		g.offers[id] = &tradeOffer{from: from, to: target, offered: offered, requested: requested}
		st.AddObservation(arena.GameID, arena.ToAll,
			fmt.Sprintf("Offer #%d created: Player %d -> Player %d.", id, from, target))
		st.AddObservation(arena.GameID, target, fmt.Sprintf(
			"You have a new offer [#%d] from Player %d: %s. You can [Accept #%d] or [Deny #%d].",
			id, from, offerString(offered, requested), id, id))
	}
	return matched
}

func (g *Negotiation) processResponses(st *arena.State, player int, action string) bool {
	matched := false
	for _, m := range acceptPattern.FindAllStringSubmatch(action, -1) {
		matched = true
		id, _ := strconv.Atoi(m[1])
		g.acceptOffer(st, player, id)
	}
	for _, m := range denyPattern.FindAllStringSubmatch(action, -1) {
		matched = true
		id, _ := strconv.Atoi(m[1])
		g.denyOffer(st, player, id)
	}
	return matched
}

func (g *Negotiation) acceptOffer(st *arena.State, player, id int) {
	offer, ok := g.offers[id]
	if !ok {
		g.reject(st, player, fmt.Sprintf("offer #%d does not exist", id))
		return
	}
	if offer.to != player {
		g.reject(st, player, fmt.Sprintf("offer #%d is not addressed to you", id))
		return
	}
	if !g.hasResources(offer.from, offer.offered) {
		st.AddObservation(arena.GameID, arena.ToAll, fmt.Sprintf(
			"Offer #%d canceled: Player %d no longer holds the offered resources.", id, offer.from))
		delete(g.offers, id)
		return
	}
	if !g.hasResources(player, offer.requested) {
		g.reject(st, player, fmt.Sprintf("you cannot fulfill offer #%d", id))
		return
	}
	g.exchange(offer)
	st.AddObservation(arena.GameID, arena.ToAll, fmt.Sprintf(
		"Player %d ACCEPTED offer #%d from Player %d: %s",
		player, id, offer.from, offerString(offer.offered, offer.requested)))
	delete(g.offers, id)
}

func (g *Negotiation) denyOffer(st *arena.State, player, id int) {
	offer, ok := g.offers[id]
	if !ok {
		g.reject(st, player, fmt.Sprintf("offer #%d does not exist", id))
		return
	}
	if offer.to != player {
		g.reject(st, player, fmt.Sprintf("offer #%d is not addressed to you", id))
		return
	}
	st.AddObservation(arena.GameID, arena.ToAll,
		fmt.Sprintf("Player %d DENIED offer #%d from Player %d.", player, id, offer.from))
	delete(g.offers, id)
}

// reject reports a malformed token to its author without consuming the turn.
func (g *Negotiation) reject(st *arena.State, player int, reason string) {
	st.Record("rejected_token", reason)
	st.AddObservation(arena.GameID, player, "Rejected: "+reason)
}

func (g *Negotiation) hasResources(player int, needed map[string]int) bool {
	for r, qty := range needed {
		if g.resources[player][r] < qty {
			return false
		}
	}
	return true
}

func (g *Negotiation) exchange(offer *tradeOffer) {
	for r, qty := range offer.offered {
		g.resources[offer.from][r] -= qty
		g.resources[offer.to][r] += qty
	}
	for r, qty := range offer.requested {
		g.resources[offer.to][r] -= qty
		g.resources[offer.from][r] += qty
	}
}

// parseResourceList parses "2 Wheat, 1 Ore" into {"Wheat": 2, "Ore": 1},
// returning nil on any malformed item.
func (g *Negotiation) parseResourceList(s string) map[string]int {
	items := resourceSplit.Split(strings.TrimSpace(s), -1)
	parsed := map[string]int{}
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		m := resourcePattern.FindStringSubmatch(item)
		if m == nil {
			return nil
		}
		qty, err := strconv.Atoi(m[1])
		if err != nil || qty <= 0 {
			return nil
		}
		name, known := g.resourceName(strings.TrimSpace(m[2]))
		if !known {
			return nil
		}
		parsed[name] += qty
	}
	if len(parsed) == 0 {
		return nil
	}
	return parsed
}

// resourceName maps a case-insensitive spelling to the canonical resource
// name, reporting whether the resource exists.
func (g *Negotiation) resourceName(raw string) (string, bool) {
	for _, r := range g.resourceNames {
		if strings.EqualFold(r, raw) {
			return r, true
		}
	}
	return "", false
}

func offerString(offered, requested map[string]int) string {
	return resourceString(offered) + " -> " + resourceString(requested)
}

func resourceString(resources map[string]int) string {
	names := make([]string, 0, len(resources))
	for r := range resources {
		names = append(names, r)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, r := range names {
		parts = append(parts, fmt.Sprintf("%d %s", resources[r], r))
	}
	return strings.Join(parts, ", ")
}

func (g *Negotiation) inventoryValue(player int) int {
	total := 0
	for _, r := range g.resourceNames {
		total += g.resources[player][r] * g.values[player][r]
	}
	return total
}

func (g *Negotiation) determineWinner(st *arena.State) {
	best := -1
	bestValue := -1
	tied := false
	for p := 0; p < st.NumPlayers; p++ {
		v := g.inventoryValue(p)
		switch {
		case v > bestValue:
			best, bestValue, tied = p, v, false
		case v == bestValue:
			tied = true
		}
	}
	if tied {
		st.SetDraw(fmt.Sprintf("tie at inventory value %d", bestValue))
		return
	}
	st.SetWinners([]int{best}, fmt.Sprintf("player %d wins with inventory value %d", best, bestValue))
}
