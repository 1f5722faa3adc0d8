package worker

// resumo_worker.go
// Recomputes a barber's dashboard snapshot after any write that touches their
// ledger, so the next read is a cache hit with fresh numbers.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adrianopessanha/blacksalon/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ResumoJobPayload is the job envelope sent to QueueResumo.
type ResumoJobPayload struct {
	BarbeiroID string `json:"barbeiro_id"`
}

type ResumoWorker struct {
	extrato service.ExtratoService
}

func NewResumoWorker(extrato service.ExtratoService) *ResumoWorker {
	return &ResumoWorker{extrato: extrato}
}

func (w *ResumoWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ResumoJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("resumo_worker: invalid payload")
		return nil // malformed payloads never succeed on retry
	}

	id, err := uuid.Parse(payload.BarbeiroID)
	if err != nil {
		log.Error().Str("barbeiro_id", payload.BarbeiroID).Msg("resumo_worker: invalid barbeiro_id")
		return nil
	}

	if _, err := w.extrato.Recalcular(ctx, id); err != nil {
		return fmt.Errorf("resumo_worker: recalcular: %w", err)
	}
	log.Debug().Str("barbeiro_id", payload.BarbeiroID).Msg("resumo_worker: snapshot refreshed")
	return nil
}
