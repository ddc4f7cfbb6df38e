package game

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"foodiefriends/internal/models"
)

// Phase is the lifecycle stage of a round. Transitions only move forward:
// idle -> playing -> won or timedOut. Start begins a fresh round from any phase.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhasePlaying  Phase = "playing"
	PhaseWon      Phase = "won"
	PhaseTimedOut Phase = "timedOut"
)

// RoundDuration is the number of seconds on the clock for one round
const RoundDuration = 60

// The two resolution delays are deliberately different: a quick
// confirmation on a match, a longer look at a mismatched pair before it hides.
const (
	defaultMatchDelay    = 500 * time.Millisecond
	defaultMismatchDelay = 1000 * time.Millisecond
)

// Speaker voices game text. Implementations must not block the caller and
// must swallow their own errors; the round never waits on speech.
type Speaker interface {
	Pronounce(text string)
}

// Options tunes round timing. Zero values take production defaults;
// tests shrink them to keep runs fast.
type Options struct {
	PairCount     int
	DurationSecs  int
	TickInterval  time.Duration
	MatchDelay    time.Duration
	MismatchDelay time.Duration
}

func (o Options) withDefaults() Options {
	if o.PairCount == 0 {
		o.PairCount = PairCount
	}
	if o.DurationSecs == 0 {
		o.DurationSecs = RoundDuration
	}
	if o.TickInterval == 0 {
		o.TickInterval = time.Second
	}
	if o.MatchDelay == 0 {
		o.MatchDelay = defaultMatchDelay
	}
	if o.MismatchDelay == 0 {
		o.MismatchDelay = defaultMismatchDelay
	}
	return o
}

// Round owns all state for one matching game play-through. Every mutation
// happens under one mutex, so clicks, ticker ticks and delayed resolution
// callbacks are serialized. Callbacks scheduled before a restart carry the
// old round token and give up when it no longer matches.
type Round struct {
	mu sync.Mutex

	catalog []models.FoodItem
	speaker Speaker
	opts    Options

	token       string
	deck        []Card
	flipped     []int // deck indices of the pending pair, never more than 2
	matched     int
	secondsLeft int
	phase       Phase

	ticker     *time.Ticker
	tickerStop chan struct{}
}

// Snapshot is an immutable copy of round state handed to the presentation layer
type Snapshot struct {
	Cards        []Card `json:"cards"`
	FlippedCount int    `json:"flippedCount"`
	MatchedPairs int    `json:"matchedPairs"`
	PairCount    int    `json:"pairCount"`
	SecondsLeft  int    `json:"secondsLeft"`
	Phase        Phase  `json:"phase"`
}

// NewRound creates an idle round over the given catalog. The speaker may
// be nil, in which case pronounce side effects are skipped.
func NewRound(catalog []models.FoodItem, speaker Speaker, opts Options) *Round {
	return &Round{
		catalog: catalog,
		speaker: speaker,
		opts:    opts.withDefaults(),
		token:   uuid.New().String(),
		phase:   PhaseIdle,
	}
}

// Start deals a fresh shuffled deck and begins the countdown. Any pending
// resolution callback or ticker from a previous round is neutralized by
// rotating the round token.
func (r *Round) Start() error {
	deck, err := BuildDeck(r.catalog, r.opts.PairCount)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopTickerLocked()
	r.token = uuid.New().String()
	r.deck = deck
	r.flipped = nil
	r.matched = 0
	r.secondsLeft = r.opts.DurationSecs
	r.phase = PhasePlaying

	r.ticker = time.NewTicker(r.opts.TickInterval)
	r.tickerStop = make(chan struct{})
	go r.runTicker(r.token, r.ticker, r.tickerStop)

	return nil
}

// Stop ends the round immediately. Used when a player abandons a round or
// the server shuts down; all scheduled callbacks become no-ops.
func (r *Round) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopTickerLocked()
	r.token = uuid.New().String()
}

// Token identifies the current play-through; it changes on every Start
func (r *Round) Token() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token
}

// SelectCard flips the card with the given unique ID. Inputs that are not
// playable right now (wrong phase, matched or already-flipped card, two
// cards pending) are ignored without error; the machine is total.
func (r *Round) SelectCard(uniqueID string) {
	r.mu.Lock()

	if r.phase != PhasePlaying {
		r.mu.Unlock()
		return
	}

	idx := -1
	for i := range r.deck {
		if r.deck[i].UniqueID == uniqueID {
			idx = i
			break
		}
	}
	if idx == -1 {
		r.mu.Unlock()
		return
	}

	card := &r.deck[idx]
	if card.Matched || card.Flipped || len(r.flipped) >= 2 {
		r.mu.Unlock()
		return
	}

	card.Flipped = true
	r.flipped = append(r.flipped, idx)

	var announce string
	if len(r.flipped) == 1 && card.Face == FaceText {
		// Read the word out on the first card of a pair
		announce = card.Content
	}

	if len(r.flipped) == 2 {
		first, second := r.flipped[0], r.flipped[1]
		token := r.token
		if r.deck[first].ItemID == r.deck[second].ItemID {
			time.AfterFunc(r.opts.MatchDelay, func() {
				r.resolveMatch(token, first, second)
			})
		} else {
			time.AfterFunc(r.opts.MismatchDelay, func() {
				r.resolveMismatch(token, first, second)
			})
		}
	}

	r.mu.Unlock()

	if announce != "" {
		r.pronounce(announce)
	}
}

// Snapshot returns a deep copy of the current state for rendering
func (r *Round) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	cards := make([]Card, len(r.deck))
	copy(cards, r.deck)

	return Snapshot{
		Cards:        cards,
		FlippedCount: len(r.flipped),
		MatchedPairs: r.matched,
		PairCount:    r.opts.PairCount,
		SecondsLeft:  r.secondsLeft,
		Phase:        r.phase,
	}
}

// resolveMatch marks a confirmed pair as matched. A stale token or a round
// that is no longer playing means the callback outlived its round; it bails.
func (r *Round) resolveMatch(token string, first, second int) {
	r.mu.Lock()

	if token != r.token || r.phase != PhasePlaying {
		r.mu.Unlock()
		return
	}

	r.deck[first].Matched = true
	r.deck[first].Flipped = true
	r.deck[second].Matched = true
	r.deck[second].Flipped = true
	r.matched++
	r.flipped = nil

	won := r.matched == r.opts.PairCount
	if won {
		// Win beats a timeout landing in the same instant: the phase
		// changes here, so a later tick sees a finished round
		r.phase = PhaseWon
		r.stopTickerLocked()
	}

	r.mu.Unlock()

	r.pronounce("Nice!")
}

// resolveMismatch hides a failed pair again
func (r *Round) resolveMismatch(token string, first, second int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token != r.token || r.phase != PhasePlaying {
		return
	}

	r.deck[first].Flipped = false
	r.deck[second].Flipped = false
	r.flipped = nil
}

// runTicker drives the countdown for one play-through
func (r *Round) runTicker(token string, ticker *time.Ticker, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !r.tick(token) {
				return
			}
		}
	}
}

// tick decrements the clock; returns false once this goroutine should exit
func (r *Round) tick(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token != r.token || r.phase != PhasePlaying {
		return false
	}

	if r.secondsLeft > 0 {
		r.secondsLeft--
	}

	if r.secondsLeft == 0 {
		r.phase = PhaseTimedOut
		r.stopTickerLocked()
		return false
	}

	return true
}

// stopTickerLocked stops the countdown; callers must hold r.mu
func (r *Round) stopTickerLocked() {
	if r.ticker != nil {
		r.ticker.Stop()
		close(r.tickerStop)
		r.ticker = nil
		r.tickerStop = nil
	}
}

// pronounce fires the speech side effect without blocking game state
func (r *Round) pronounce(text string) {
	if r.speaker == nil {
		return
	}
	go r.speaker.Pronounce(text)
}
