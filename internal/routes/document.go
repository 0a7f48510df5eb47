package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/rejdeboer/notes-relay/internal/store"
	"github.com/rejdeboer/notes-relay/pkg/httperrors"
)

type DocumentResponse struct {
	ID        string          `json:"id"`
	Content   json.RawMessage `json:"content"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type DocumentStatusResponse struct {
	Status string `json:"status"`
	DocID  string `json:"doc_id"`
}

func (env *Env) saveDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := zerolog.Ctx(ctx)
	docID := r.PathValue("document_id")

	var content json.RawMessage
	err := json.NewDecoder(r.Body).Decode(&content)
	if err != nil {
		httperrors.Write(w, err.Error(), http.StatusBadRequest)
		log.Error().Err(err).Msg("invalid body for save document")
		return
	}

	document, err := env.Documents.Save(ctx, docID, content)
	if err != nil {
		httperrors.InternalServerError(w)
		log.Error().Err(err).Str("document_id", docID).Msg("failed to save document")
		return
	}
	log.Info().Str("document_id", document.ID).Msg("saved document")

	response, err := json.Marshal(DocumentStatusResponse{
		Status: "saved",
		DocID:  document.ID,
	})
	if err != nil {
		httperrors.InternalServerError(w)
		log.Error().Err(err).Msg("error marshalling response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(response)
}

func (env *Env) getDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := zerolog.Ctx(ctx)
	docID := r.PathValue("document_id")

	document, err := env.Documents.Load(ctx, docID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperrors.Write(w, "document not found", http.StatusNotFound)
			log.Error().Err(err).Str("document_id", docID).Msg("document not found")
			return
		}
		httperrors.InternalServerError(w)
		log.Error().Err(err).Str("document_id", docID).Msg("failed to load document")
		return
	}

	response, err := json.Marshal(DocumentResponse{
		ID:        document.ID,
		Content:   document.Content,
		UpdatedAt: document.UpdatedAt,
	})
	if err != nil {
		httperrors.InternalServerError(w)
		log.Error().Err(err).Msg("error marshalling response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(response)
}

func (env *Env) deleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := zerolog.Ctx(ctx)
	docID := r.PathValue("document_id")

	err := env.Documents.Delete(ctx, docID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperrors.Write(w, "document not found", http.StatusNotFound)
			log.Error().Err(err).Str("document_id", docID).Msg("document not found")
			return
		}
		httperrors.InternalServerError(w)
		log.Error().Err(err).Str("document_id", docID).Msg("failed to delete document")
		return
	}
	log.Info().Str("document_id", docID).Msg("deleted document")

	response, err := json.Marshal(DocumentStatusResponse{
		Status: "deleted",
		DocID:  docID,
	})
	if err != nil {
		httperrors.InternalServerError(w)
		log.Error().Err(err).Msg("error marshalling response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(response)
}
