package usecases

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/dwern/portfolio-chat/internal/domain/entities"
	"github.com/dwern/portfolio-chat/internal/domain/ports"
)

// ChatUseCase runs the retrieval-augmented answer pipeline: embed the
// question, search the document store, assemble the prompt context and stream
// the generated response.
type ChatUseCase struct {
	embedder ports.EmbeddingService
	store    ports.DocumentStore
	llm      ports.LLMService

	topK             int
	minScore         float64
	retrievalTimeout time.Duration
	generateTimeout  time.Duration

	now  func() time.Time
	pick func(n int) int
}

// NewChatUseCase creates a ChatUseCase with injected dependencies.
func NewChatUseCase(
	embedder ports.EmbeddingService,
	store ports.DocumentStore,
	llm ports.LLMService,
	topK int,
	minScore float64,
	retrievalTimeout, generateTimeout time.Duration,
) *ChatUseCase {
	if topK <= 0 {
		topK = 6
	}
	if retrievalTimeout <= 0 {
		retrievalTimeout = 15 * time.Second
	}
	if generateTimeout <= 0 {
		generateTimeout = 120 * time.Second
	}
	return &ChatUseCase{
		embedder:         embedder,
		store:            store,
		llm:              llm,
		topK:             topK,
		minScore:         minScore,
		retrievalTimeout: retrievalTimeout,
		generateTimeout:  generateTimeout,
		now:              time.Now,
		pick:             rand.Intn,
	}
}

// SetClock overrides the time source. Intended for tests.
func (uc *ChatUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// SetPicker overrides the pseudo-random phrase picker. Intended for tests.
func (uc *ChatUseCase) SetPicker(pick func(n int) int) {
	uc.pick = pick
}

// LocalReply checks the query against the local intent classifier. On a hit
// it returns a canned acknowledgement plus the component directive, avoiding
// the remote round-trip entirely. Returns nil when the remote path must run.
func (uc *ChatUseCase) LocalReply(query string) []entities.ChatMessage {
	intent, ok := Classify(query)
	if !ok {
		return nil
	}

	phrases := intentReplies[intent]
	ack := phrases[uc.pick(len(phrases))]

	return []entities.ChatMessage{
		{Role: entities.RoleAssistant, Content: ack},
		{Role: entities.RoleAssistant, Kind: entities.KindComponent, ComponentType: intent},
	}
}

// Respond runs the full retrieval pipeline for the given transcript and
// returns an ordered stream of response chunks. The last message is the
// current question; everything before it is history. Backend failures before
// the first token surface as ErrRetrievalFailure or ErrGenerationFailure.
func (uc *ChatUseCase) Respond(ctx context.Context, messages []entities.ChatMessage) (<-chan ports.StreamToken, error) {
	if len(messages) == 0 {
		return nil, entities.ErrMalformedRequest
	}
	question := messages[len(messages)-1].Content

	// Embedding and search share one retrieval deadline.
	retrCtx, cancel := context.WithTimeout(ctx, uc.retrievalTimeout)
	defer cancel()

	vector, err := uc.embedder.Embed(retrCtx, question, ports.TaskQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %v", entities.ErrRetrievalFailure, err)
	}

	docs, err := uc.store.Search(retrCtx, vector, uc.topK, uc.minScore)
	if err != nil {
		return nil, fmt.Errorf("%w: searching documents: %v", entities.ErrRetrievalFailure, err)
	}

	pc := AssembleContext(docs, messages[:len(messages)-1], question, uc.now())
	prompt := BuildPrompt(pc)

	genCtx, genCancel := context.WithTimeout(ctx, uc.generateTimeout)
	stream, err := uc.llm.GenerateStream(genCtx, prompt)
	if err != nil {
		genCancel()
		return nil, fmt.Errorf("%w: %v", entities.ErrGenerationFailure, err)
	}

	// Relay one chunk at a time. Caller disconnect cancels the generation
	// context so the backend call is abandoned rather than drained.
	out := make(chan ports.StreamToken, 1)
	go func() {
		defer close(out)
		defer genCancel()
		for token := range stream {
			select {
			case out <- token:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
