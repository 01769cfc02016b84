package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"mockmate/interview/internal/llm"
	"mockmate/interview/internal/models"
	"mockmate/interview/internal/store"
	"mockmate/interview/internal/timer"
	"mockmate/interview/internal/voice"
)

// Session states. Transitions:
// loading -> generating -> active <-> error, active -> submitting,
// submitting -> completed | error. Error is recoverable; Finish may be
// retried from it.
const (
	StateLoading    = "loading"
	StateGenerating = "generating"
	StateActive     = "active"
	StateSubmitting = "submitting"
	StateCompleted  = "completed"
	StateError      = "error"
)

var (
	// ErrInvalidState rejects an operation the current state does not
	// permit, e.g. navigating a completed session.
	ErrInvalidState = errors.New("operation not permitted in current session state")

	// ErrNoQuestions mirrors the evaluator's "nothing gradable"
	// outcome. The interview stays in progress; the user should
	// restart rather than retry.
	ErrNoQuestions = llm.ErrNoQuestions
)

// InterviewStore is the slice of the persistence layer the session
// needs for interview records.
type InterviewStore interface {
	Get(ctx context.Context, id string) (*models.Interview, error)
	Complete(ctx context.Context, id string, totalScore, maxScore int, feedback string, completedAt time.Time) error
}

// QuestionStore is the slice of the persistence layer the session
// needs for question records.
type QuestionStore interface {
	InsertBatch(ctx context.Context, questions []*models.Question) error
	UpdateAnswer(ctx context.Context, id string, kind models.AnswerKind, value string) error
	SaveEvaluation(ctx context.Context, id string, isCorrect bool, score int, feedback string) error
	ListByInterview(ctx context.Context, interviewID string) ([]*models.Question, error)
}

// Config carries the session's collaborators.
type Config struct {
	Interviews InterviewStore
	Questions  QuestionStore
	Provider   llm.Provider
	Logger     *zap.Logger
	Clock      func() time.Time
}

// StartOptions seed question generation for a fresh interview. They
// are ignored when persisted questions already exist.
type StartOptions struct {
	Difficulty string
	Language   string
	ResumeText string
	Skills     []models.Skill
}

// Session is the single authority over one in-progress interview: the
// current question index, the answer buffer, and the only component
// permitted to trigger persistence or evaluation. Every operation is
// serialized behind its mutex, which gives navigation its "await the
// save" ordering barrier.
type Session struct {
	mu sync.Mutex

	interviewID string
	opts        StartOptions

	interviews InterviewStore
	questions  QuestionStore
	provider   llm.Provider
	log        *zap.Logger
	now        func() time.Time

	state      string
	interview  *models.Interview
	set        []*models.Question
	idx        int
	buffer     string
	timer      *timer.Tracker
	capturer   *voice.Capturer
	lastActive time.Time
}

func New(interviewID string, cfg Config, opts StartOptions) *Session {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Difficulty == "" {
		opts.Difficulty = models.DifficultyMedium
	}
	return &Session{
		interviewID: interviewID,
		opts:        opts,
		interviews:  cfg.Interviews,
		questions:   cfg.Questions,
		provider:    cfg.Provider,
		log:         log.With(zap.String("interview_id", interviewID)),
		now:         now,
		state:       StateLoading,
		timer:       timer.NewTrackerWithClock(now),
		lastActive:  now(),
	}
}

// Initialize loads the interview and its questions, generating and
// persisting a fresh question set when none exist yet. A completed
// interview comes up in the terminal state with its answered set
// visible but immutable. NotFound from the interview store propagates
// so the caller can redirect away.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLoading {
		return nil
	}

	interview, err := s.interviews.Get(ctx, s.interviewID)
	if err != nil {
		return err
	}
	s.interview = interview

	existing, err := s.questions.ListByInterview(ctx, s.interviewID)
	if err != nil {
		return err
	}

	// A completed interview resumes read-only. The terminal state is
	// entered immediately so the finalize sequence can never rerun and
	// rewrite the stored result.
	if interview.Status == models.StatusCompleted {
		s.set = existing
		if len(existing) > 0 {
			s.buffer = existing[0].Answer()
		}
		s.state = StateCompleted
		s.touchLocked()
		return nil
	}

	if len(existing) == 0 {
		s.state = StateGenerating
		if err := s.generateLocked(ctx); err != nil {
			s.state = StateError
			return err
		}
	} else {
		s.set = existing
	}

	s.idx = 0
	s.buffer = s.set[0].Answer()
	s.state = StateActive
	s.timer.Start()
	s.touchLocked()
	return nil
}

// generateLocked requests a question set from the generator and
// persists it, degrading to placeholder identities when the store
// rejects the batch twice.
func (s *Session) generateLocked(ctx context.Context) error {
	skills := s.opts.Skills
	if len(skills) == 0 && s.opts.ResumeText != "" {
		extracted, err := s.provider.ExtractSkills(ctx, s.opts.ResumeText)
		if err != nil {
			s.log.Warn("Skill extraction failed, generating without skills", zap.Error(err))
		} else {
			skills = extracted
		}
	}

	generated, err := s.provider.GenerateQuestions(ctx, &models.GenerateQuestionsRequest{
		InterviewType: s.interview.Type,
		Skills:        skills,
		InterviewID:   s.interviewID,
		Difficulty:    s.opts.Difficulty,
		Language:      s.opts.Language,
		ResumeText:    s.opts.ResumeText,
	})
	if err != nil {
		return err
	}

	questions := make([]*models.Question, 0, len(generated))
	for i, g := range generated {
		questions = append(questions, &models.Question{
			InterviewID:    s.interviewID,
			Position:       i,
			QuestionType:   g.QuestionType,
			SkillName:      g.SkillName,
			Difficulty:     g.Difficulty,
			QuestionText:   g.QuestionText,
			ExpectedAnswer: g.ExpectedAnswer,
			Options:        datatypes.NewJSONSlice(normalizeOptions(g)),
		})
	}

	if err := s.questions.InsertBatch(ctx, questions); err != nil {
		// Degraded mode: keep the set in memory under placeholder
		// identities deterministic in position.
		for _, q := range questions {
			q.ID = store.PlaceholderID(q.Position)
		}
		s.log.Warn("Question set held in memory under placeholder identities", zap.Int("count", len(questions)))
	}
	s.set = questions
	return nil
}

// normalizeOptions enforces the exactly-4-options contract for
// multiple-choice question types, substituting generic placeholders
// when the generator violates it.
func normalizeOptions(g models.GeneratedQuestion) []string {
	switch g.QuestionType {
	case models.QuestionTypeCoding, models.QuestionTypeHR:
		return nil
	}
	if len(g.Options) == models.OptionCount {
		return g.Options
	}
	out := make([]string, models.OptionCount)
	copy(out, models.GenericOptions)
	return out
}

// flushLocked writes the answer buffer into the current question and
// makes a best-effort persistence attempt. Store failures never
// surface here; the in-memory set stays authoritative.
func (s *Session) flushLocked(ctx context.Context) {
	if len(s.set) == 0 {
		return
	}
	q := s.set[s.idx]
	q.SetAnswer(s.buffer)
	if err := s.questions.UpdateAnswer(ctx, q.ID, q.Kind(), s.buffer); err != nil {
		s.log.Warn("Answer persistence failed, in-memory copy retained",
			zap.String("question_id", q.ID),
			zap.Error(err))
	}
}

func (s *Session) touchLocked() {
	s.lastActive = s.now()
}

// Next moves to the following question. No-op at the last question.
func (s *Session) Next(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navigateLocked(ctx, s.idx+1)
}

// Prev moves to the preceding question. No-op at the first question.
func (s *Session) Prev(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navigateLocked(ctx, s.idx-1)
}

// GoTo jumps to an arbitrary index, clamped to the question set.
func (s *Session) GoTo(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navigateLocked(ctx, index)
}

// navigateLocked is the one navigation path: flush and persist the
// buffer for the current index, then switch. The save completes before
// the index changes so rapid navigation cannot race two saves on the
// same buffer snapshot.
func (s *Session) navigateLocked(ctx context.Context, target int) error {
	if s.state != StateActive {
		return ErrInvalidState
	}
	s.flushLocked(ctx)
	s.touchLocked()

	if target < 0 {
		target = 0
	}
	if target > len(s.set)-1 {
		target = len(s.set) - 1
	}
	if target == s.idx {
		return nil
	}

	s.idx = target
	s.buffer = s.set[target].Answer()
	s.timer.SwitchToQuestion(target)
	return nil
}

// SetBuffer replaces the answer buffer for the current question, the
// lazily-flushed channel used by typed input.
func (s *Session) SetBuffer(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrInvalidState
	}
	s.buffer = value
	s.touchLocked()
	return nil
}

// SaveCurrent is the explicit manual save: buffer into the question
// set plus a persistence attempt. Saving unchanged content twice
// produces the same persisted state.
func (s *Session) SaveCurrent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrInvalidState
	}
	s.flushLocked(ctx)
	s.touchLocked()
	return nil
}

// AppendTranscript handles the voice direct-write channel: the
// finalized increment is space-joined onto the buffer and mirrored
// into the current question immediately, not deferred to navigation.
func (s *Session) AppendTranscript(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrInvalidState
	}
	if text == "" {
		return nil
	}
	if s.buffer == "" {
		s.buffer = text
	} else {
		s.buffer += " " + text
	}
	s.set[s.idx].SetAnswer(s.buffer)
	s.touchLocked()
	return nil
}

// VoiceSupported reports whether speech capture can be offered for
// this session. The recognition stream itself arrives per connection.
func (s *Session) VoiceSupported() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interview != nil && s.interview.Type == models.InterviewTypeHR
}

// StartVoice begins speech capture for HR sessions, consuming the
// given recognition stream. A new stream supersedes any capture
// already running; finalized increments land through AppendTranscript.
func (s *Session) StartVoice(rec voice.Recognizer) error {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return ErrInvalidState
	}
	if s.interview.Type != models.InterviewTypeHR || rec == nil || !rec.Supported() {
		s.mu.Unlock()
		return voice.ErrUnsupported
	}
	if s.capturer != nil {
		s.capturer.Stop()
	}
	capturer := voice.NewCapturer(rec, func(text string) {
		if err := s.AppendTranscript(text); err != nil {
			s.log.Warn("Dropped transcript increment", zap.Error(err))
		}
	}, s.log)
	s.capturer = capturer
	s.mu.Unlock()

	return capturer.Start()
}

// StopVoice halts speech capture if it is running.
func (s *Session) StopVoice() {
	s.mu.Lock()
	capturer := s.capturer
	s.mu.Unlock()
	if capturer != nil {
		capturer.Stop()
	}
}

// Finish drives the submit/evaluate/finalize sequence. Any fatal
// failure leaves the interview in progress and the session in the
// error state, from which Finish may be retried with identical effect.
// Held capture resources are released on every exit path.
func (s *Session) Finish(ctx context.Context) (*models.FinishResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive && s.state != StateError {
		return nil, ErrInvalidState
	}
	s.state = StateSubmitting
	defer s.releaseCaptureLocked()

	// Flush the buffer and build the finalized in-memory view before
	// touching the store, so nothing is lost if persistence fails.
	if len(s.set) > 0 {
		s.set[s.idx].SetAnswer(s.buffer)
	}
	finalized := make([]models.QuestionPayload, 0, len(s.set))
	for _, q := range s.set {
		finalized = append(finalized, models.QuestionPayload{
			QuestionType:   q.QuestionType,
			Difficulty:     q.Difficulty,
			QuestionText:   q.QuestionText,
			ExpectedAnswer: q.ExpectedAnswer,
			UserAnswer:     q.UserAnswer,
			UserCode:       q.UserCode,
		})
	}

	s.persistFinalAnswersLocked(ctx)

	// The finalized view rides along as the fallback payload: the
	// evaluator can score even if no question row ever reached the
	// store.
	eval, err := s.provider.Evaluate(ctx, &models.EvaluateRequest{
		InterviewID:   s.interviewID,
		QuestionsData: finalized,
	})
	if errors.Is(err, llm.ErrNoQuestions) {
		s.log.Warn("Evaluator reported no gradable questions")
		s.state = StateActive
		return nil, ErrNoQuestions
	}
	if err != nil {
		s.log.Error("Evaluation failed, interview remains in progress", zap.Error(err))
		s.state = StateError
		return nil, err
	}

	for i, q := range s.set {
		if i >= len(eval.PerQuestion) {
			break
		}
		verdict := eval.PerQuestion[i]
		isCorrect := verdict.IsCorrect
		score := verdict.Score
		q.IsCorrect = &isCorrect
		q.Score = &score
		q.AIFeedback = verdict.Feedback
		if err := s.questions.SaveEvaluation(ctx, q.ID, isCorrect, score, verdict.Feedback); err != nil {
			s.log.Warn("Per-question evaluation write-back failed",
				zap.String("question_id", q.ID),
				zap.Error(err))
		}
	}

	completedAt := s.now()
	if err := s.interviews.Complete(ctx, s.interviewID, eval.TotalScore, eval.MaxScore, eval.Feedback, completedAt); err != nil {
		s.log.Error("Final interview update failed, safe to retry", zap.Error(err))
		s.state = StateError
		return nil, err
	}

	s.interview.Status = models.StatusCompleted
	s.interview.TotalScore = eval.TotalScore
	s.interview.MaxScore = eval.MaxScore
	s.interview.Feedback = eval.Feedback
	s.interview.CompletedAt = &completedAt

	s.timer.Pause()
	s.state = StateCompleted
	s.touchLocked()

	return &models.FinishResponse{
		TotalScore: eval.TotalScore,
		MaxScore:   eval.MaxScore,
		Feedback:   eval.Feedback,
	}, nil
}

// persistFinalAnswersLocked re-saves every answer defensively: rows
// with real identities get best-effort updates (the store may hold
// stale values from missed earlier saves), placeholder rows get one
// batched insert with answers now included.
func (s *Session) persistFinalAnswersLocked(ctx context.Context) {
	var placeholders []*models.Question
	for _, q := range s.set {
		if store.IsPlaceholderID(q.ID) {
			placeholders = append(placeholders, q)
			continue
		}
		if err := s.questions.UpdateAnswer(ctx, q.ID, q.Kind(), q.Answer()); err != nil {
			s.log.Warn("Final answer re-save failed",
				zap.String("question_id", q.ID),
				zap.Error(err))
		}
	}
	if len(placeholders) == 0 {
		return
	}
	if err := s.questions.InsertBatch(ctx, placeholders); err != nil {
		// Still degraded; restore deterministic placeholder identities
		// and score from the fallback payload.
		for _, q := range placeholders {
			q.ID = store.PlaceholderID(q.Position)
		}
		s.log.Warn("Placeholder questions still unpersisted at finish",
			zap.Int("count", len(placeholders)))
	}
}

// releaseCaptureLocked releases held media resources. Runs on every
// Finish exit path.
func (s *Session) releaseCaptureLocked() {
	if s.capturer != nil {
		s.capturer.Stop()
	}
}

// Close releases resources on navigation-away. In-flight persistence
// is allowed to settle on its own; capture and timing stop now.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseCaptureLocked()
	s.timer.Pause()
}

// Owner returns the interview owner's user ID, empty before
// initialization.
func (s *Session) Owner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.interview == nil {
		return ""
	}
	return s.interview.UserID
}

// State returns the current machine state.
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastActive reports the last user-driven mutation, used by the
// stale-session reaper.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Snapshot builds the client-facing read view.
func (s *Session) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]models.QuestionView, 0, len(s.set))
	for _, q := range s.set {
		views = append(views, models.QuestionView{
			ID:           q.ID,
			Position:     q.Position,
			QuestionType: q.QuestionType,
			SkillName:    q.SkillName,
			Difficulty:   q.Difficulty,
			QuestionText: q.QuestionText,
			Options:      []string(q.Options),
			UserAnswer:   q.UserAnswer,
			UserCode:     q.UserCode,
			Persisted:    !store.IsPlaceholderID(q.ID),
		})
	}

	voiceSupported := s.interview != nil && s.interview.Type == models.InterviewTypeHR

	return models.SessionSnapshot{
		InterviewID:     s.interviewID,
		State:           s.state,
		VoiceSupported:  voiceSupported,
		CurrentIndex:    s.idx,
		QuestionCount:   len(s.set),
		Buffer:          s.buffer,
		TotalSeconds:    s.timer.TotalSeconds(),
		QuestionSeconds: s.timer.QuestionSeconds(),
		Clock:           s.timer.Clock(),
		PerQuestionTime: s.timer.PerQuestionSeconds(),
		Questions:       views,
	}
}
