package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"mockmate/interview/internal/middleware"
	"mockmate/interview/internal/models"
	"mockmate/interview/internal/session"
	"mockmate/interview/internal/utils"
	"mockmate/interview/internal/voice"
)

const transcriptReadDeadline = 5 * time.Minute

// VoiceHandler attaches browser transcript streams to their session's
// speech capture over a websocket.
type VoiceHandler struct {
	registry *session.Registry
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewVoiceHandler(registry *session.Registry, allowedOrigins []string, logger *zap.Logger) *VoiceHandler {
	if logger == nil {
		logger = utils.GetLogger()
	}
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &VoiceHandler{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
		logger: logger,
	}
}

// transcriptRecognizer adapts one websocket connection into a
// recognition stream. A connection carries exactly one stream, so a
// restart attempt after the socket closes reports an error and the
// capturer winds down instead of spinning on a dead socket.
type transcriptRecognizer struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	started bool
	done    chan struct{}
}

func newTranscriptRecognizer(conn *websocket.Conn) *transcriptRecognizer {
	return &transcriptRecognizer{conn: conn, done: make(chan struct{})}
}

func (r *transcriptRecognizer) Supported() bool { return true }

// Done closes when the stream has been fully consumed, which happens
// when the client disconnects or the read deadline lapses.
func (r *transcriptRecognizer) Done() <-chan struct{} { return r.done }

func (r *transcriptRecognizer) Start(ctx context.Context) (<-chan voice.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil, errors.New("transcript stream already consumed")
	}
	r.started = true

	out := make(chan voice.Result)
	go func() {
		defer close(r.done)
		defer close(out)
		for {
			_ = r.conn.SetReadDeadline(time.Now().Add(transcriptReadDeadline))
			var msg models.TranscriptMessage
			if err := r.conn.ReadJSON(&msg); err != nil {
				return
			}
			select {
			case out <- voice.Result{Text: msg.Text, Final: msg.Final}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// TranscriptHandler upgrades the connection and hands it to the
// session as its recognition stream. Finalized frames reach the
// current answer through the capture pipeline; interim frames only
// feed live rendering on the client.
func (h *VoiceHandler) TranscriptHandler(w http.ResponseWriter, r *http.Request) {
	interviewID := chi.URLParam(r, "interviewId")
	sess, ok := h.registry.Get(interviewID)
	if !ok {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Interview not found",
		})
		return
	}
	if owner := sess.Owner(); owner != "" && owner != middleware.GetUserID(r) {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Interview not found",
		})
		return
	}
	if !sess.VoiceSupported() {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "voice_unsupported",
			Message: "Transcripts are only accepted for HR interviews",
		})
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	rec := newTranscriptRecognizer(conn)
	if err := sess.StartVoice(rec); err != nil {
		h.logger.Warn("Speech capture refused",
			zap.String("interview_id", interviewID), zap.Error(err))
		return
	}
	defer sess.StopVoice()

	h.logger.Info("Transcript stream opened", zap.String("interview_id", interviewID))
	<-rec.Done()
	h.logger.Info("Transcript stream closed", zap.String("interview_id", interviewID))
}
