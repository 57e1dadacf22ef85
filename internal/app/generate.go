package app

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.trai.ch/genie/internal/adapters/sse"
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// EventDone ends a generation session normally.
	EventDone = "done"
	// EventBusinessError ends a generation session with a server-side failure.
	EventBusinessError = "business-error"
)

// Generate sends message to the generator of app appID and streams the output to onChunk in
// arrival order. It returns once the server finishes, the stream fails or ctx is cancelled, and
// reports how many chunks were delivered. The app's cached detail is invalidated on every exit
// path since a generation may have changed it.
func (a *App) Generate(
	ctx context.Context,
	appID int64,
	message string,
	onChunk func(domain.GenerationChunk),
) (int, error) {
	if appID <= 0 {
		return 0, domain.ErrInvalidAppID
	}
	if message == "" {
		return 0, domain.ErrMissingMessage
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	session := uuid.NewString()
	a.logger.Debug("generation " + session + " started for app " + strconv.FormatInt(appID, 10))

	var (
		mu     sync.Mutex
		count  int
		genErr error
	)

	conn := a.dialer.Dial(sse.JSONDecoder[domain.GenerationChunk]())
	unsubscribe := conn.Subscribe(domain.StreamObserver{
		OnMessage: func(ev domain.StreamEvent) {
			switch ev.Name {
			case EventDone:
				conn.Disconnect()
				return
			case EventBusinessError:
				mu.Lock()
				genErr = businessError(ev.Raw)
				mu.Unlock()
				conn.Disconnect()
				return
			}

			mu.Lock()
			count++
			mu.Unlock()
			if onChunk != nil {
				onChunk(toChunk(ev))
			}
		},
		OnError: func(err error) {
			mu.Lock()
			genErr = err
			mu.Unlock()
		},
	})
	defer unsubscribe()
	defer a.cache.Invalidate(AppKey(appID))

	streamURL := a.transport.URL("/app/chat/gen/code", url.Values{
		"appId":   {strconv.FormatInt(appID, 10)},
		"message": {message},
	})
	if err := conn.Connect(ctx, streamURL); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrGenerationFailed.Error()), "app_id", appID)
	}

	<-conn.Done()

	mu.Lock()
	defer mu.Unlock()

	a.logger.Debug("generation " + session + " finished with " + strconv.Itoa(count) + " chunks")

	if genErr != nil {
		return count, zerr.With(zerr.Wrap(genErr, domain.ErrGenerationFailed.Error()), "app_id", appID)
	}
	if err := ctx.Err(); err != nil {
		return count, err
	}
	return count, nil
}

// toChunk converts an event into a chunk. Payloads that failed to decode become plain
// ai_response content.
func toChunk(ev domain.StreamEvent) domain.GenerationChunk {
	if chunk, ok := ev.Parsed.(domain.GenerationChunk); ok {
		chunk.Raw = ev.Raw
		return chunk
	}
	return domain.GenerationChunk{
		Type:    domain.MessageAIResponse,
		Content: ev.Raw,
		Raw:     ev.Raw,
	}
}

// businessError builds the error for a business-error event. The payload is an envelope-like
// object; anything else is used verbatim as the message.
func businessError(raw string) error {
	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	reason := raw
	if json.Unmarshal([]byte(raw), &body) == nil && body.Message != "" {
		reason = body.Message
	}
	return &domain.RequestError{Kind: domain.KindApplication, Code: body.Code, Reason: reason}
}
