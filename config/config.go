package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration for the annotator window and session.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Window / rendering
	WindowTitle   string `json:"window_title"`
	RectColor     string `json:"rect_color"` // "#RRGGBB"
	RectThickness int    `json:"rect_thickness"`
	TickMs        int    `json:"tick_ms"`

	// Directory layout
	ImageExtension string `json:"image_extension"`
	AnnotationDir  string `json:"annotation_dir"`

	// Key bindings (single characters)
	QuitKey  string `json:"quit_key"`
	ClearKey string `json:"clear_key"`
	NextKey  string `json:"next_key"`
	PrevKey  string `json:"prev_key"`
	UndoKey  string `json:"undo_key"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		WindowTitle:    "Pascal VOC Annotator",
		RectColor:      "#00FF00",
		RectThickness:  2,
		TickMs:         30,
		ImageExtension: ".jpg",
		AnnotationDir:  "Annotations",
		QuitKey:        "q",
		ClearKey:       "c",
		NextKey:        "n",
		PrevKey:        "p",
		UndoKey:        "u",
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.WindowTitle == "" {
		c.WindowTitle = "Pascal VOC Annotator"
	}
	if c.RectThickness < 1 {
		c.RectThickness = 2
	}
	if c.TickMs < 1 {
		c.TickMs = 30
	}
	if c.ImageExtension == "" {
		c.ImageExtension = ".jpg"
	}
	if !strings.HasPrefix(c.ImageExtension, ".") {
		c.ImageExtension = "." + c.ImageExtension
	}
	c.ImageExtension = strings.ToLower(c.ImageExtension)
	if c.AnnotationDir == "" {
		c.AnnotationDir = "Annotations"
	}
	for _, k := range []*string{&c.QuitKey, &c.ClearKey, &c.NextKey, &c.PrevKey, &c.UndoKey} {
		if len(*k) != 1 {
			return fmt.Errorf("key binding %q must be a single character", *k)
		}
	}
	return nil
}

// Color parses RectColor as "#RRGGBB". Malformed values fall back to green,
// matching the annotator's historical rectangle color.
func (c *Config) Color() color.RGBA {
	s := strings.TrimPrefix(c.RectColor, "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 6 || err != nil {
		return color.RGBA{G: 255, A: 255}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// Load attempts to read configuration from the given JSON file path. If the
// path is empty or the file does not exist it returns DefaultConfig(). On
// JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
