package conversation

import (
	"log/slog"
	"net/http"
	"strconv"

	"ImpressionsBot/internal/lib/api/response"
	"ImpressionsBot/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// ResetConversation drops the chat record; the next event starts from scratch.
func ResetConversation(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chatID, err := strconv.ParseInt(chi.URLParam(r, "chat_id"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid chat id"))
			return
		}

		if err = handler.ResetConversation(r.Context(), chatID); err != nil {
			log.With(slog.Int64("id", chatID)).Error("reset conversation", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Reset failed"))
			return
		}

		render.JSON(w, r, response.Ok("Conversation reset successfully"))
	}
}
