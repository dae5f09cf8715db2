package http

import (
	"errors"
	"net/http"
	"strings"

	"billfold/internal/core"
	"billfold/internal/editor"
	"billfold/internal/log"
)

type detailData struct {
	Transaction core.Transaction
	Total       string
	Editing     bool
	PrevID      string
	NextID      string
	Error       string
}

// handleTransactionDetail renders one transaction, in view or edit mode.
func (s *Server) handleTransactionDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	tx, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.ErrorContext(r.Context(), "get transaction failed",
			log.FieldTransactionID, id, log.FieldError, err)
		http.Error(w, "failed to load transaction", http.StatusInternalServerError)
		return
	}

	prevID, nextID, err := s.store.Neighbors(r.Context(), id)
	if err != nil {
		s.logger.WarnContext(r.Context(), "neighbor lookup failed",
			log.FieldTransactionID, id, log.FieldError, err)
	}

	s.renderDetail(w, r, detailData{
		Transaction: tx,
		Total:       core.FormatCents(tx.Total()),
		Editing:     r.URL.Query().Get("edit") == "1",
		PrevID:      prevID,
		NextID:      nextID,
	}, http.StatusOK)
}

// handleTransactionEdit applies one edit operation. Item adds and deletes
// re-render the form from the submitted state without persisting, so edits
// in flight survive; only save writes through the store.
func (s *Server) handleTransactionEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := r.ParseForm(); err != nil {
		s.logger.ErrorContext(r.Context(), "parse form failed",
			log.FieldTransactionID, id, log.FieldError, err)
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	tx := parseTransactionForm(r, id)

	op := r.Form.Get("op")

	// Delete buttons carry their item id in the op value so the form
	// needs no script support.
	if itemID, ok := strings.CutPrefix(op, "delete-item:"); ok {
		tx = editor.DeleteItem(tx, itemID)
		s.renderEditForm(w, r, tx, "", http.StatusOK)
		return
	}

	switch op {
	case "add-item":
		tx = editor.AddItem(tx)
		s.renderEditForm(w, r, tx, "", http.StatusOK)

	case "save":
		s.saveTransaction(w, r, tx)

	default:
		http.Error(w, "unknown operation", http.StatusBadRequest)
	}
}

func (s *Server) saveTransaction(w http.ResponseWriter, r *http.Request, tx core.Transaction) {
	tx = editor.Recalculate(tx)

	err := editor.Save(r.Context(), s.store, tx)
	if err == nil {
		s.summaryCache.Purge()
		s.logger.InfoContext(r.Context(), "transaction saved",
			log.FieldTransactionID, tx.ID,
			log.FieldAmount, tx.Amount,
			log.FieldItemCount, len(tx.ReceiptItems))
		http.Redirect(w, r, "/transactions/"+tx.ID, http.StatusSeeOther)
		return
	}

	switch {
	case errors.Is(err, core.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, core.ErrSnapshotWrite):
		// The edit is kept in the form so the user can retry.
		s.logger.ErrorContext(r.Context(), "snapshot write failed on save",
			log.FieldTransactionID, tx.ID, log.FieldError, err)
		s.renderEditForm(w, r, tx, "Saving failed, your changes are still here. Try again.", http.StatusBadGateway)
	case errors.Is(err, core.ErrEmptyID):
		http.Error(w, "transaction id is required", http.StatusUnprocessableEntity)
	default:
		s.logger.ErrorContext(r.Context(), "save failed",
			log.FieldTransactionID, tx.ID, log.FieldError, err)
		http.Error(w, "failed to save transaction", http.StatusInternalServerError)
	}
}

func (s *Server) renderEditForm(w http.ResponseWriter, r *http.Request, tx core.Transaction, errMsg string, status int) {
	prevID, nextID, err := s.store.Neighbors(r.Context(), tx.ID)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		s.logger.WarnContext(r.Context(), "neighbor lookup failed",
			log.FieldTransactionID, tx.ID, log.FieldError, err)
	}

	s.renderDetail(w, r, detailData{
		Transaction: tx,
		Total:       core.FormatCents(tx.Total()),
		Editing:     true,
		PrevID:      prevID,
		NextID:      nextID,
		Error:       errMsg,
	}, status)
}

func (s *Server) renderDetail(w http.ResponseWriter, r *http.Request, data detailData, status int) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := s.templates.ExecuteTemplate(w, "transaction.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "detail template execution failed",
			log.FieldTransactionID, data.Transaction.ID, log.FieldError, err)
	}
}
