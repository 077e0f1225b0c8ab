package conversation

import (
	"log/slog"
	"net/http"
	"strconv"

	"ImpressionsBot/internal/lib/api/response"
	"ImpressionsBot/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func GetConversation(log *slog.Logger, handler Core) http.HandlerFunc {
	mod := sl.Module("http.handlers.conversation")

	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		chatID, err := strconv.ParseInt(chi.URLParam(r, "chat_id"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid chat id"))
			return
		}

		rec, err := handler.Conversation(r.Context(), chatID)
		if err != nil {
			logger.With(slog.Int64("id", chatID)).Error("get conversation", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to get conversation"))
			return
		}
		if rec == nil {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Conversation not found"))
			return
		}

		render.JSON(w, r, response.Ok(rec))
	}
}
