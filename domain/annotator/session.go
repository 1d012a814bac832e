// Package annotator implements the interactive annotation session: a state
// machine over one active image at a time, driven by discrete input events.
package annotator

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/soocke/voc-annotator-go/config"
	"github.com/soocke/voc-annotator-go/domain/voc"
)

var (
	// ErrNotADirectory is returned when the annotation folder does not exist
	// or is not a directory.
	ErrNotADirectory = errors.New("not a directory")
	// ErrNoImages is returned when the folder holds no files with the
	// recognized image extension.
	ErrNoImages = errors.New("no images found")
)

// Session tracks the currently displayed image and its uncommitted edits.
// All state is owned by a single goroutine; methods are not safe for
// concurrent use.
type Session struct {
	logger *slog.Logger
	cfg    *config.Config
	label  string
	folder string
	paths  []string

	annotations map[string]*Record
	index       int
	cur         *Record
	curImg      image.Image
	curDim      voc.Dimensions
	inProgress  *voc.Box
	changed     bool

	done      bool
	closed    bool
	listeners []TransitionListener
}

// NewSession scans folder for images, restores any previously saved
// annotations from the annotation subfolder and loads the first image.
// The label is applied to every box drawn during the run.
func NewSession(folder, label string, cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", folder, ErrNotADirectory)
	}
	abs, err := filepath.Abs(folder)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), cfg.ImageExtension) {
			paths = append(paths, filepath.Join(abs, e.Name()))
		}
	}
	// Directory listing order is platform dependent; keep transitions
	// deterministic.
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no %s images in %s: %w", cfg.ImageExtension, folder, ErrNoImages)
	}

	s := &Session{
		logger:      logger,
		cfg:         cfg,
		label:       label,
		folder:      abs,
		paths:       paths,
		annotations: make(map[string]*Record),
	}
	if err := s.loadSaved(); err != nil {
		return nil, err
	}
	restored := len(s.annotations)
	if err := s.TransitionTo(0); err != nil {
		return nil, err
	}
	logger.Info("session started",
		"folder", abs,
		"images", len(paths),
		"restored", restored,
		"label", label,
	)
	return s, nil
}

// loadSaved indexes existing annotation files by image path so that
// reopening a previously annotated folder restores prior work.
func (s *Session) loadSaved() error {
	dir := s.AnnotationDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
			continue
		}
		boxes, labels, err := voc.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return err
		}
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		key := filepath.Join(s.folder, stem+s.cfg.ImageExtension)
		s.annotations[key] = &Record{Boxes: boxes, Labels: labels}
	}
	return nil
}

// AnnotationDir returns the folder annotation files are stored in.
func (s *Session) AnnotationDir() string {
	return filepath.Join(s.folder, s.cfg.AnnotationDir)
}

// TransitionTo reconciles the outgoing image with disk, switches the current
// index to i (wrapping modulo the image count) and loads the incoming
// image's pixels and record. An unreadable incoming image is a fatal error.
func (s *Session) TransitionTo(i int) error {
	if err := s.flush(); err != nil {
		return err
	}
	prev := s.index
	n := len(s.paths)
	s.index = ((i % n) + n) % n

	img, dim, err := voc.LoadImage(s.paths[s.index])
	if err != nil {
		return err
	}
	s.curImg, s.curDim = img, dim

	path := s.paths[s.index]
	rec, ok := s.annotations[path]
	if !ok {
		rec = &Record{}
		s.annotations[path] = rec
	}
	s.cur = rec
	s.inProgress = nil
	s.changed = false

	for _, l := range s.listeners {
		l(prev, s.index)
	}
	return nil
}

// flush persists the outgoing image's record if it changed. A dirty record
// with boxes is written (overwriting); a dirty record without boxes has its
// stale annotation file deleted. Write and delete are mutually exclusive.
func (s *Session) flush() error {
	if s.cur == nil || !s.changed {
		return nil
	}
	path := s.paths[s.index]
	annPath := voc.AnnotationPath(path, s.AnnotationDir())
	if !s.cur.Empty() {
		if len(s.cur.Boxes) != len(s.cur.Labels) {
			return fmt.Errorf("%s: label and bounding box collection sizes are mismatched (%d != %d)",
				path, len(s.cur.Labels), len(s.cur.Boxes))
		}
		if err := os.MkdirAll(s.AnnotationDir(), 0o755); err != nil {
			return err
		}
		doc := voc.Encode(s.curDim, s.cur.Labels, s.cur.Boxes)
		if err := doc.WriteFile(annPath, true); err != nil {
			return err
		}
		s.logger.Debug("annotation saved", "path", annPath, "boxes", len(s.cur.Boxes))
	} else {
		if err := os.Remove(annPath); err != nil && !os.IsNotExist(err) {
			return err
		}
		s.logger.Debug("stale annotation removed", "path", annPath)
	}
	s.changed = false
	return nil
}

// Dispatch routes one input event to its handler. Only navigation can fail;
// a returned error is fatal to the session.
func (s *Session) Dispatch(ev Event) error {
	switch e := ev.(type) {
	case Press:
		s.BeginDraw(e.X, e.Y)
	case Move:
		s.UpdateDraw(e.X, e.Y)
	case Release:
		s.UpdateDraw(e.X, e.Y)
		s.CommitDraw()
	case Next:
		return s.NextImage()
	case Prev:
		return s.PrevImage()
	case Clear:
		s.ClearImage()
	case Undo:
		s.UndoLast()
	case Quit:
		s.RequestQuit()
	}
	return nil
}

// BeginDraw starts an in-progress box at the press coordinates.
func (s *Session) BeginDraw(x, y int) {
	s.inProgress = &voc.Box{XMin: x, YMin: y, XMax: x, YMax: y}
}

// UpdateDraw moves the in-progress box's second corner. No-op outside a
// drag.
func (s *Session) UpdateDraw(x, y int) {
	if s.inProgress == nil {
		return
	}
	s.inProgress.XMax, s.inProgress.YMax = x, y
}

// CommitDraw appends the in-progress box and the session label to the
// current image's record and marks it dirty.
func (s *Session) CommitDraw() {
	if s.inProgress == nil {
		return
	}
	s.changed = true
	s.cur.Boxes = append(s.cur.Boxes, s.inProgress.Canon())
	s.cur.Labels = append(s.cur.Labels, s.label)
	s.inProgress = nil
	// A preceding Clear removed the map entry; boxes drawn afterwards must
	// be findable when navigating back.
	if _, ok := s.annotations[s.paths[s.index]]; !ok {
		s.annotations[s.paths[s.index]] = s.cur
	}
}

// UndoLast removes the most recently committed (box, label) pair. No-op
// while a draw is in progress or when the record is empty.
func (s *Session) UndoLast() {
	if s.inProgress != nil || s.cur.Empty() {
		return
	}
	s.changed = true
	s.cur.Boxes = s.cur.Boxes[:len(s.cur.Boxes)-1]
	s.cur.Labels = s.cur.Labels[:len(s.cur.Labels)-1]
}

// ClearImage discards all in-memory state for the current image and removes
// it from the annotation map. The empty state is reconciled on the next
// transition, deleting any existing file for the image.
func (s *Session) ClearImage() {
	s.changed = true
	s.inProgress = nil
	delete(s.annotations, s.paths[s.index])
	s.cur = &Record{}
}

// NextImage advances to the next image, wrapping around.
func (s *Session) NextImage() error { return s.TransitionTo(s.index + 1) }

// PrevImage retreats to the previous image, wrapping around.
func (s *Session) PrevImage() error { return s.TransitionTo(s.index - 1) }

// RequestQuit signals the render loop to stop. The final reconciliation
// happens in Close.
func (s *Session) RequestQuit() { s.done = true }

// Close performs the same outgoing-image reconciliation as a navigation and
// marks the session finished. It is idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.done = true
	s.inProgress = nil
	return s.flush()
}

// AddListener registers a callback invoked after each image transition.
func (s *Session) AddListener(l TransitionListener) {
	s.listeners = append(s.listeners, l)
}

// Accessors used by the view.

func (s *Session) Done() bool         { return s.done }
func (s *Session) Image() image.Image { return s.curImg }
func (s *Session) ImagePath() string  { return s.paths[s.index] }
func (s *Session) Index() int         { return s.index }
func (s *Session) Count() int         { return len(s.paths) }
func (s *Session) Label() string      { return s.label }

// State reports Drawing while a drag is in progress, Displaying otherwise.
func (s *Session) State() State {
	if s.inProgress != nil {
		return StateDrawing
	}
	return StateDisplaying
}

// Boxes returns a copy of the current image's committed boxes.
func (s *Session) Boxes() []voc.Box {
	out := make([]voc.Box, len(s.cur.Boxes))
	copy(out, s.cur.Boxes)
	return out
}

// Labels returns a copy of the current image's committed labels.
func (s *Session) Labels() []string {
	out := make([]string, len(s.cur.Labels))
	copy(out, s.cur.Labels)
	return out
}

// InProgress returns the active drag's box, if any.
func (s *Session) InProgress() (voc.Box, bool) {
	if s.inProgress == nil {
		return voc.Box{}, false
	}
	return *s.inProgress, true
}

var _ SessionContract = (*Session)(nil)
