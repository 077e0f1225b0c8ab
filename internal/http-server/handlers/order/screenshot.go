package order

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"ImpressionsBot/entity"
	"ImpressionsBot/internal/lib/api/response"
	"ImpressionsBot/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// Screenshot streams the payment screenshot attached to an email order.
func Screenshot(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := chi.URLParam(r, "number")

		meta, reader, err := handler.OrderScreenshot(r.Context(), number)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("Screenshot not found"))
				return
			}
			log.With(slog.String("number", number)).Error("get order screenshot", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to get screenshot"))
			return
		}
		defer reader.Close()

		contentType := meta.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		if _, err = io.Copy(w, reader); err != nil {
			log.With(slog.String("number", number)).Error("stream order screenshot", sl.Err(err))
		}
	}
}
