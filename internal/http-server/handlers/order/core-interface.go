package order

import (
	"context"
	"io"

	"ImpressionsBot/entity"
)

type Core interface {
	OrderScreenshot(ctx context.Context, number string) (entity.ScreenshotMeta, io.ReadCloser, error)
}
