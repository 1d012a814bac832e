package view

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"path/filepath"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"

	"github.com/soocke/voc-annotator-go/config"
	"github.com/soocke/voc-annotator-go/domain/annotator"
	"github.com/soocke/voc-annotator-go/domain/voc"
	"github.com/soocke/voc-annotator-go/ui/images"
)

// AnnotatorWindow presents the current image with its overlaid rectangles
// and feeds mouse and key events into the session. The Tk event loop owns
// all session state; no other goroutine touches it.
type AnnotatorWindow struct {
	logger  *slog.Logger
	cfg     *config.Config
	session annotator.SessionContract
	tick    time.Duration
	col     color.RGBA

	imgLabel *LabelWidget
	status   *LabelWidget
	afterID  string
}

// NewAnnotatorWindow creates the window controller. Widgets are built in
// Run, on the Tk thread.
func NewAnnotatorWindow(session annotator.SessionContract, cfg *config.Config, logger *slog.Logger) *AnnotatorWindow {
	return &AnnotatorWindow{
		logger:  logger,
		cfg:     cfg,
		session: session,
		tick:    time.Duration(cfg.TickMs) * time.Millisecond,
		col:     cfg.Color(),
	}
}

// Run builds the widgets, installs the event bindings and blocks inside the
// Tk event loop until the session quits or the window is closed. The window
// is destroyed on every exit path, after the session's final save.
func (w *AnnotatorWindow) Run() {
	App.WmTitle(w.cfg.WindowTitle)
	WmProtocol(App, "WM_DELETE_WINDOW", w.exitHandler)

	w.imgLabel = Label(Borderwidth(1), Relief("sunken"))
	Pack(w.imgLabel, Padx("1m"), Pady("1m"))
	w.status = Label(Txt(""), Borderwidth(1), Relief("ridge"))
	Pack(w.status, Padx("1m"), Pady("1m"))

	Bind(w.imgLabel, "<ButtonPress-1>", Command(func(e *Event) {
		w.dispatch(annotator.Press{X: e.X, Y: e.Y})
	}))
	Bind(w.imgLabel, "<B1-Motion>", Command(func(e *Event) {
		w.dispatch(annotator.Move{X: e.X, Y: e.Y})
	}))
	Bind(w.imgLabel, "<ButtonRelease-1>", Command(func(e *Event) {
		w.dispatch(annotator.Release{X: e.X, Y: e.Y})
	}))

	bindKey := func(key string, ev annotator.Event) {
		Bind(App, fmt.Sprintf("<KeyPress-%s>", key), Command(func() { w.dispatch(ev) }))
	}
	bindKey(w.cfg.QuitKey, annotator.Quit{})
	bindKey(w.cfg.ClearKey, annotator.Clear{})
	bindKey(w.cfg.NextKey, annotator.Next{})
	bindKey(w.cfg.PrevKey, annotator.Prev{})
	bindKey(w.cfg.UndoKey, annotator.Undo{})

	w.render()
	w.scheduleUpdate()
	App.Wait()
}

// dispatch forwards one event to the session. Navigation errors are fatal:
// the session cannot display an unreadable image, so the run ends after a
// final flush of everything saved so far.
func (w *AnnotatorWindow) dispatch(ev annotator.Event) {
	if err := w.session.Dispatch(ev); err != nil {
		w.logger.Error("session command failed", "error", err)
		w.exitHandler()
		return
	}
	if w.session.Done() {
		w.exitHandler()
	}
}

func (w *AnnotatorWindow) update() {
	w.render()
	w.scheduleUpdate()
}

func (w *AnnotatorWindow) scheduleUpdate() {
	// Schedule the next render using TclAfter to stay on Tk's event loop
	// thread. The interval throttles the render rate.
	w.afterID = TclAfter(w.tick, func() { w.update() })
}

// render copies the current image, draws every committed box plus the
// in-progress one and presents the frame.
func (w *AnnotatorWindow) render() {
	boxes := w.session.Boxes()
	rects := make([]image.Rectangle, 0, len(boxes)+1)
	for _, b := range boxes {
		rects = append(rects, boxRect(b))
	}
	if b, ok := w.session.InProgress(); ok {
		rects = append(rects, boxRect(b))
	}
	frame := images.Overlay(w.session.Image(), rects, w.col, w.cfg.RectThickness)
	if frame == nil {
		return
	}
	func() {
		// Guard against panic if the widgets were destroyed mid-tick.
		defer func() { _ = recover() }()
		w.imgLabel.Configure(Image(NewPhoto(Data(images.EncodePNG(frame)))))
		w.status.Configure(Txt(fmt.Sprintf("%d/%d  %s  [%s]",
			w.session.Index()+1, w.session.Count(),
			filepath.Base(w.session.ImagePath()), w.session.State())))
	}()
}

func (w *AnnotatorWindow) exitHandler() {
	// Cancel scheduled after event if any.
	if w.afterID != "" {
		TclAfterCancel(w.afterID)
		w.afterID = ""
	}
	if err := w.session.Close(); err != nil {
		w.logger.Error("final save failed", "error", err)
	}
	Destroy(App)
}

func boxRect(b voc.Box) image.Rectangle {
	return image.Rect(b.XMin, b.YMin, b.XMax, b.YMax)
}
