package store

import "time"

// DB is the persistence interface for recorded episodes. The engine core
// never requires persistence; this is the external collaborator that reads
// the observation/action/reward stream.
type DB interface {
	Close() error
	Migrate() error
	SaveEpisode(ep *Episode) error
	FinishEpisode(id string, rewards map[int]float64, reason string, truncated bool) error
	SaveEvents(episodeID string, events []Event) error
	GetEpisode(id string) (*Episode, error)
	ListEpisodes(q EpisodesQuery) (*EpisodesList, error)
	GetEvents(episodeID string, limit, offset int) ([]Event, error)
}

// Episode is one recorded play-through.
type Episode struct {
	ID         string          `json:"id"`
	Game       string          `json:"game"`
	NumPlayers int             `json:"num_players"`
	Seed       int64           `json:"seed"`
	Rewards    map[int]float64 `json:"rewards,omitempty"`
	Reason     string          `json:"reason,omitempty"`
	Truncated  bool            `json:"truncated"`
	Finished   bool            `json:"finished"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Event kinds.
const (
	EventObservation = "observation"
	EventAction      = "action"
)

// Event is one entry of an episode's observation/action stream.
type Event struct {
	ID        int64  `json:"id"`
	EpisodeID string `json:"episode_id"`
	Seq       int    `json:"seq"`
	Kind      string `json:"kind"`
	Player    int    `json:"player"`
	Sender    int    `json:"sender"`
	Content   string `json:"content"`
}

// EpisodesQuery represents query parameters for listing episodes.
type EpisodesQuery struct {
	Game    string `json:"game,omitempty"`
	Page    int    `json:"page"`
	PerPage int    `json:"perPage"`
}

// EpisodesList is a paginated episodes response.
type EpisodesList struct {
	Episodes   []Episode `json:"episodes"`
	TotalCount int       `json:"totalCount"`
	Page       int       `json:"page"`
	PerPage    int       `json:"perPage"`
	TotalPages int       `json:"totalPages"`
}
