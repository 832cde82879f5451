package app

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/classifier"
)

var (
	overlayGreen = color.RGBA{G: 255, A: 255}
	overlayWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	overlayRed   = color.RGBA{R: 255, A: 255}
)

// render draws the classification result and the sentence state onto the
// frame before display.
func (a *App) render(frame *gocv.Mat, result classifier.Result) {
	cols := frame.Cols()
	rows := frame.Rows()

	if result.Kind == classifier.KindDetected {
		// Landmark coordinates are normalized; scale to pixel space.
		rect := image.Rect(
			int(result.Box.MinX*float64(cols)),
			int(result.Box.MinY*float64(rows)),
			int(result.Box.MaxX*float64(cols)),
			int(result.Box.MaxY*float64(rows)),
		)
		gocv.Rectangle(frame, rect, overlayGreen, 2)
		gocv.PutText(frame, result.Label,
			image.Pt(rect.Min.X, rect.Min.Y-10),
			gocv.FontHersheySimplex, 0.9, overlayGreen, 2)
	}

	state := a.config.Machine.Snapshot()

	gocv.PutText(frame, "Sentence: "+state.Sentence,
		image.Pt(10, rows-20),
		gocv.FontHersheySimplex, 0.7, overlayWhite, 2)

	if state.Pending != "" {
		gocv.PutText(frame, "Pending: "+state.Pending,
			image.Pt(10, rows-50),
			gocv.FontHersheySimplex, 0.7, overlayWhite, 2)
	}

	if state.Error != "" {
		gocv.PutText(frame, state.Error,
			image.Pt(10, 30),
			gocv.FontHersheySimplex, 0.7, overlayRed, 2)
	}
}
