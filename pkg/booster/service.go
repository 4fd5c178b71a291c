package booster

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/latoulicious/boosterbot/pkg/logging"
	"github.com/latoulicious/boosterbot/pkg/metrics"
)

// Store persists player records. Load returns found=false with a nil error
// for an unknown user. Implementations must hand out copies so a failed
// operation never leaks into stored state.
type Store interface {
	Load(userID string) (*PlayerRecord, bool, error)
	Save(userID string, rec *PlayerRecord) error
}

// CommandKind names a booster command
type CommandKind string

const (
	CmdOpen          CommandKind = "pc-open"
	CmdCollection    CommandKind = "pc-collec"
	CmdList          CommandKind = "pc-list"
	CmdSee           CommandKind = "pc-see"
	CmdResetCooldown CommandKind = "pco-reset-cooldown"
	CmdGrant         CommandKind = "pco-grant"
	CmdRevoke        CommandKind = "pco-revoke"
)

// Argument names carried in Invocation.Args
const (
	ArgCard = "card"
	ArgUser = "user"
)

// Invocation is a command as received from the chat platform. IsAuthorized
// is decided by the caller from the platform's roles.
type Invocation struct {
	Kind         CommandKind
	UserID       string
	Args         map[string]string
	IsAuthorized bool
}

// Reply is the platform-neutral answer to an Invocation
type Reply struct {
	Title       string
	Description string
	ImageRef    string
	AccentColor int
	IsError     bool
}

// Discord rejects embed descriptions longer than this
const maxDescriptionLength = 4096

// maxEchoLength bounds user input quoted back in a reply
const maxEchoLength = 100

const (
	resultOK         = "ok"
	resultDegraded   = "degraded"
	resultBadRequest = "bad_request"
)

// Service runs commands: it serialises work per user, loads the record,
// applies the engine and saves before reporting success.
type Service struct {
	engine  *Engine
	store   Store
	locker  *KeyedLocker
	now     func() time.Time
	logger  logging.Logger
	metrics *metrics.Metrics
}

// ServiceOption customises a Service
type ServiceOption func(*Service)

// WithClock replaces time.Now
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the service logger
func WithLogger(logger logging.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics records command and draw metrics
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService creates a service. A nil engine runs the service in degraded
// mode: commands that need the catalog answer with an error while collection
// views and cooldown resets keep working.
func NewService(engine *Engine, store Store, opts ...ServiceOption) *Service {
	s := &Service{
		engine: engine,
		store:  store,
		locker: NewKeyedLocker(),
		now:    time.Now,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if engine == nil {
		s.logger.Warn("No card catalog loaded, card commands are disabled", nil)
		s.metrics.SetCatalogCards(0)
		return s
	}

	s.metrics.SetCatalogCards(engine.catalog.Len())
	for _, r := range engine.catalog.MissingRarities(engine.weights) {
		s.logger.Warn("Weighted rarity has no card, draws landing on it will fail", map[string]interface{}{
			"rarity":      r.String(),
			"probability": engine.weights.Probability(r),
		})
	}
	for _, r := range engine.catalog.UnweightedRarities(engine.weights) {
		s.logger.Info("Rarity has cards but no weight, they can only be granted", map[string]interface{}{
			"rarity": r.String(),
		})
	}
	return s
}

// Degraded reports whether the service runs without a catalog
func (s *Service) Degraded() bool {
	return s.engine == nil
}

// Handle runs one invocation. It never panics on engine or storage errors;
// every failure becomes an error Reply.
func (s *Service) Handle(inv Invocation) Reply {
	start := time.Now()
	logger := s.logger.WithContext(map[string]interface{}{
		"command": string(inv.Kind),
		"user_id": inv.UserID,
	})

	reply, result := s.dispatch(inv, logger)

	s.metrics.ObserveCommand(string(inv.Kind), result, time.Since(start))
	logger.Debug("Command handled", map[string]interface{}{
		"result":   result,
		"duration": time.Since(start).String(),
	})
	return reply
}

func (s *Service) dispatch(inv Invocation, logger logging.Logger) (Reply, string) {
	switch inv.Kind {
	case CmdOpen:
		return s.openBooster(inv, logger)
	case CmdCollection:
		return s.showCollection(inv, logger)
	case CmdList:
		return s.listCards()
	case CmdSee:
		return s.seeCard(inv)
	case CmdResetCooldown:
		return s.resetCooldown(inv, logger)
	case CmdGrant:
		return s.grant(inv, logger)
	case CmdRevoke:
		return s.revoke(inv, logger)
	default:
		return errorReply(fmt.Sprintf("Unknown command %q.", inv.Kind)), resultBadRequest
	}
}

func (s *Service) openBooster(inv Invocation, logger logging.Logger) (Reply, string) {
	if s.Degraded() {
		return degradedReply(), resultDegraded
	}

	unlock := s.locker.Lock(inv.UserID)
	defer unlock()

	rec, _, err := s.load(inv.UserID)
	if err != nil {
		return s.failure(err, logger)
	}

	result, err := s.engine.OpenBooster(rec, s.now())
	if err != nil {
		return s.failure(err, logger)
	}

	if err := s.save(inv.UserID, rec); err != nil {
		return s.failure(err, logger)
	}

	s.metrics.ObserveDraw(result.Tier.String(), result.Variant.String())
	logger.Info("Booster opened", map[string]interface{}{
		"card":   result.Card.Name,
		"rarity": result.Card.Rarity.String(),
		"count":  result.Count,
	})

	return Reply{
		Title:       fmt.Sprintf("🎉 You got a new card: %s", result.Card.Name),
		Description: fmt.Sprintf("Rarity: %s\nCopies owned: %d", result.Card.Rarity.Label(), result.Count),
		ImageRef:    result.Card.ImageRef,
		AccentColor: result.Card.Rarity.AccentColor(),
	}, resultOK
}

func (s *Service) showCollection(inv Invocation, logger logging.Logger) (Reply, string) {
	unlock := s.locker.Lock(inv.UserID)
	rec, _, err := s.load(inv.UserID)
	unlock()
	if err != nil {
		return s.failure(err, logger)
	}

	entries := ListCollection(rec)
	if len(entries) == 0 {
		return Reply{Title: "Your card collection", Description: "Your collection is empty."}, resultOK
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s x%d", e.Name, e.Count))
	}
	return Reply{
		Title:       "Your card collection",
		Description: joinLines(lines, maxDescriptionLength),
	}, resultOK
}

func (s *Service) listCards() (Reply, string) {
	if s.Degraded() {
		return degradedReply(), resultDegraded
	}

	cards := s.engine.catalog.All()
	lines := make([]string, 0, len(cards))
	for _, c := range cards {
		lines = append(lines, fmt.Sprintf("%s - %s", c.Name, c.Rarity.Label()))
	}
	return Reply{
		Title:       "Available cards",
		Description: joinLines(lines, maxDescriptionLength),
	}, resultOK
}

func (s *Service) seeCard(inv Invocation) (Reply, string) {
	if s.Degraded() {
		return degradedReply(), resultDegraded
	}

	name := strings.TrimSpace(inv.Args[ArgCard])
	card, ok := s.engine.catalog.FindByName(name)
	if !ok {
		err := &EngineError{Kind: CardNotFound, Card: name}
		return errorReply(userMessage(err)), err.Kind.String()
	}
	return Reply{
		Title:       card.Name,
		Description: fmt.Sprintf("Rarity: %s", card.Rarity.Label()),
		ImageRef:    card.ImageRef,
		AccentColor: card.Rarity.AccentColor(),
	}, resultOK
}

func (s *Service) resetCooldown(inv Invocation, logger logging.Logger) (Reply, string) {
	if !inv.IsAuthorized {
		return s.failure(&EngineError{Kind: Unauthorized}, logger)
	}
	target, ok := targetUser(inv)
	if !ok {
		return errorReply("A user ID is required."), resultBadRequest
	}

	unlock := s.locker.Lock(target)
	defer unlock()

	rec, found, err := s.load(target)
	if err != nil {
		return s.failure(err, logger)
	}
	if !found {
		return Reply{
			Title:       "Cooldown reset",
			Description: fmt.Sprintf("No data found for user ID %s.", clip(target, maxEchoLength)),
			IsError:     true,
		}, resultOK
	}

	ResetCooldown(rec)
	if err := s.save(target, rec); err != nil {
		return s.failure(err, logger)
	}

	logger.Info("Cooldown reset", map[string]interface{}{"target_user_id": target})
	return Reply{
		Title:       "Cooldown reset",
		Description: fmt.Sprintf("The cooldown of user ID %s has been reset.", clip(target, maxEchoLength)),
	}, resultOK
}

func (s *Service) grant(inv Invocation, logger logging.Logger) (Reply, string) {
	if !inv.IsAuthorized {
		return s.failure(&EngineError{Kind: Unauthorized}, logger)
	}
	if s.Degraded() {
		return degradedReply(), resultDegraded
	}
	target, ok := targetUser(inv)
	if !ok {
		return errorReply("A user ID is required."), resultBadRequest
	}

	unlock := s.locker.Lock(target)
	defer unlock()

	rec, _, err := s.load(target)
	if err != nil {
		return s.failure(err, logger)
	}

	card, count, err := s.engine.AdminGrant(rec, inv.Args[ArgCard])
	if err != nil {
		return s.failure(err, logger)
	}
	if err := s.save(target, rec); err != nil {
		return s.failure(err, logger)
	}

	logger.Info("Card granted", map[string]interface{}{
		"target_user_id": target,
		"card":           card.Name,
		"count":          count,
	})
	return Reply{
		Title:       "Card granted",
		Description: fmt.Sprintf("Gave %s to user ID %s. They now own %d.", card.Name, clip(target, maxEchoLength), count),
		ImageRef:    card.ImageRef,
		AccentColor: card.Rarity.AccentColor(),
	}, resultOK
}

func (s *Service) revoke(inv Invocation, logger logging.Logger) (Reply, string) {
	if !inv.IsAuthorized {
		return s.failure(&EngineError{Kind: Unauthorized}, logger)
	}
	if s.Degraded() {
		return degradedReply(), resultDegraded
	}
	target, ok := targetUser(inv)
	if !ok {
		return errorReply("A user ID is required."), resultBadRequest
	}

	unlock := s.locker.Lock(target)
	defer unlock()

	rec, _, err := s.load(target)
	if err != nil {
		return s.failure(err, logger)
	}

	outcome, err := s.engine.AdminRevoke(rec, inv.Args[ArgCard])
	if err != nil {
		return s.failure(err, logger)
	}
	if err := s.save(target, rec); err != nil {
		return s.failure(err, logger)
	}

	logger.Info("Card revoked", map[string]interface{}{
		"target_user_id": target,
		"card":           outcome.Card,
		"removed":        outcome.Removed,
		"remaining":      outcome.Remaining,
	})

	description := fmt.Sprintf("Removed %s from user ID %s. They no longer own it.", outcome.Card, clip(target, maxEchoLength))
	if !outcome.Removed {
		description = fmt.Sprintf("Removed one %s from user ID %s. They still own %d.", outcome.Card, clip(target, maxEchoLength), outcome.Remaining)
	}
	return Reply{Title: "Card revoked", Description: description}, resultOK
}

func (s *Service) load(userID string) (*PlayerRecord, bool, error) {
	rec, found, err := s.store.Load(userID)
	if err != nil {
		s.metrics.ObserveStorageFailure("load")
		return nil, false, &EngineError{Kind: StorageFailure, Err: err}
	}
	if !found || rec == nil {
		return NewPlayerRecord(), false, nil
	}
	if rec.Collection == nil {
		rec.Collection = Collection{}
	}
	return rec, true, nil
}

func (s *Service) save(userID string, rec *PlayerRecord) error {
	if err := s.store.Save(userID, rec); err != nil {
		s.metrics.ObserveStorageFailure("save")
		return &EngineError{Kind: StorageFailure, Err: err}
	}
	return nil
}

// failure logs err at the level it deserves and turns it into a reply
func (s *Service) failure(err error, logger logging.Logger) (Reply, string) {
	var ee *EngineError
	if !errors.As(err, &ee) {
		logger.Error("Unexpected command failure", err, nil)
		return errorReply("Something went wrong."), "error"
	}

	switch ee.Kind {
	case CatalogInconsistent:
		logger.Error("Catalog and weight table are out of sync", err, map[string]interface{}{
			"rarity": ee.Rarity.String(),
		})
	case StorageFailure:
		logger.Error("Player store operation failed", err, nil)
	case Unauthorized:
		logger.Warn("Unauthorized staff command", nil)
	default:
		logger.Debug("Command rejected", map[string]interface{}{"reason": ee.Kind.String()})
	}
	return errorReply(userMessage(ee)), ee.Kind.String()
}

func userMessage(ee *EngineError) string {
	switch ee.Kind {
	case OnCooldown:
		return fmt.Sprintf("You must wait %d more hour(s) before opening a booster.", RemainingHours(ee.Remaining))
	case CatalogInconsistent:
		return "Something went wrong while opening the booster."
	case CardNotFound:
		return fmt.Sprintf("Card '%s' not found.", clip(ee.Card, maxEchoLength))
	case NotOwned:
		return fmt.Sprintf("That user does not own '%s'.", clip(ee.Card, maxEchoLength))
	case StorageFailure:
		return "Your action could not be saved, nothing was changed. Please try again later."
	case Unauthorized:
		return "You do not have permission to use this command. It is reserved for staff."
	default:
		return "Something went wrong."
	}
}

func errorReply(message string) Reply {
	return Reply{Title: "Error", Description: message, IsError: true}
}

func degradedReply() Reply {
	return errorReply("The card catalog is unavailable right now.")
}

// targetUser reads the user argument, accepting a raw ID or a <@id> mention
func targetUser(inv Invocation) (string, bool) {
	id := strings.TrimSpace(inv.Args[ArgUser])
	id = strings.TrimPrefix(id, "<@")
	id = strings.TrimPrefix(id, "!")
	id = strings.TrimSuffix(id, ">")
	return id, id != ""
}

// joinLines joins lines with newlines. Lines that would push the text past
// limit are replaced by a "…and N more" trailer.
func joinLines(lines []string, limit int) string {
	var b strings.Builder
	for i, line := range lines {
		sep := 0
		if i > 0 {
			sep = 1
		}
		reserve := 0
		if rest := len(lines) - i - 1; rest > 0 {
			reserve = len(fmt.Sprintf("\n…and %d more", rest))
		}
		if b.Len()+sep+len(line)+reserve > limit {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "…and %d more", len(lines)-i)
			return b.String()
		}
		if sep > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.String()
}

// clip shortens s to at most max runes, marking the cut with an ellipsis
func clip(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
