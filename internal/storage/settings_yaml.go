package storage

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"pomodesk/internal/core/model"
	"pomodesk/internal/platform"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

const (
	sectionTimer    = "timer"
	sectionColors   = "colors"
	sectionText     = "text"
	sectionPosition = "position"
	sectionSound    = "sound"
)

// SettingsStore persists TimerConfig and WindowPosition as a sectioned YAML document.
type SettingsStore struct {
	path   string
	screen model.Size
}

// NewSettingsStore creates a store backed by path. The screen size is used
// to center the window when no position is stored.
func NewSettingsStore(path string, screen model.Size) *SettingsStore {
	if screen.Width <= 0 || screen.Height <= 0 {
		screen = model.DefaultScreen
	}
	return &SettingsStore{path: path, screen: screen}
}

// DefaultPath returns <config dir>/<appName>/settings.yaml.
func DefaultPath(appName string) (string, error) {
	configDir, err := platform.NewService().GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// Path returns the settings file location.
func (store *SettingsStore) Path() string {
	return store.path
}

// Load reads the settings file. Every field falls back to its default on its
// own when missing or malformed; a missing file yields all defaults.
func (store *SettingsStore) Load() (model.TimerConfig, model.WindowPosition) {
	config := model.DefaultTimerConfig()
	position := model.Centered(store.screen, model.Size{Width: model.WindowWidth, Height: model.WindowHeight})

	document, err := store.readDocument()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("settings: %v, using defaults", err)
		}
		return config, position
	}
	root := document.Content[0]

	config.TotalMinutes = readInt(root, sectionTimer, "total_minutes", config.TotalMinutes, positive)
	config.BreakTriggerMinutes = readInt(root, sectionTimer, "break_trigger", config.BreakTriggerMinutes, nonNegative)
	config.LongBreakMinutes = readInt(root, sectionTimer, "long_break_minutes", config.LongBreakMinutes, positive)
	config.ShortBreakMinutes = readInt(root, sectionTimer, "short_break_minutes", config.ShortBreakMinutes, positive)

	config.Normal.Background = readString(root, sectionColors, "normal_bg", config.Normal.Background)
	config.Break.Background = readString(root, sectionColors, "break_bg", config.Break.Background)
	config.Normal.Foreground = readString(root, sectionText, "normal_fg", config.Normal.Foreground)
	config.Break.Foreground = readString(root, sectionText, "break_fg", config.Break.Foreground)

	if value, ok := lookupScalar(root, sectionSound, "file"); ok {
		config.CueFile = value
	}

	position.X = readInt(root, sectionPosition, "x", position.X, nil)
	position.Y = readInt(root, sectionPosition, "y", position.Y, nil)

	return config, position
}

// Save merges the known fields into the existing document and writes it back.
// Unknown sections, keys and comments are preserved. An invalid config is not written.
func (store *SettingsStore) Save(config model.TimerConfig, position model.WindowPosition) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	document, err := store.readDocument()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("settings: %v, rewriting file", err)
		}
		document = newDocument()
	}
	root := document.Content[0]

	setInt(root, sectionTimer, "total_minutes", config.TotalMinutes)
	setInt(root, sectionTimer, "break_trigger", config.BreakTriggerMinutes)
	setInt(root, sectionTimer, "long_break_minutes", config.LongBreakMinutes)
	setInt(root, sectionTimer, "short_break_minutes", config.ShortBreakMinutes)

	setString(root, sectionColors, "normal_bg", config.Normal.Background)
	setString(root, sectionColors, "break_bg", config.Break.Background)
	setString(root, sectionText, "normal_fg", config.Normal.Foreground)
	setString(root, sectionText, "break_fg", config.Break.Foreground)

	setInt(root, sectionPosition, "x", position.X)
	setInt(root, sectionPosition, "y", position.Y)

	setString(root, sectionSound, "file", config.CueFile)

	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(document); err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(store.path, buffer.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// readDocument returns the parsed settings document. Its single child is the top-level mapping.
func (store *SettingsStore) readDocument() (*yaml.Node, error) {
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var document yaml.Node
	if err := yaml.Unmarshal(rawData, &document); err != nil {
		return nil, fmt.Errorf("parse settings yaml: %w", err)
	}
	if document.Kind == 0 {
		// empty file
		return newDocument(), nil
	}
	if document.Kind != yaml.DocumentNode || len(document.Content) == 0 || document.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse settings yaml: top level is not a mapping")
	}
	return &document, nil
}

func newDocument() *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
	}
}

func positive(value int) bool {
	return value > 0
}

func nonNegative(value int) bool {
	return value >= 0
}

func readInt(root *yaml.Node, section, key string, fallback int, valid func(int) bool) int {
	raw, ok := lookupScalar(root, section, key)
	if !ok {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("settings: %s.%s: invalid integer %q", section, key, raw)
		return fallback
	}
	if valid != nil && !valid(value) {
		log.Printf("settings: %s.%s: value %d out of range", section, key, value)
		return fallback
	}
	return value
}

func readString(root *yaml.Node, section, key, fallback string) string {
	value, ok := lookupScalar(root, section, key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func lookupScalar(root *yaml.Node, section, key string) (string, bool) {
	sectionNode := mappingValue(root, section)
	if sectionNode == nil || sectionNode.Kind != yaml.MappingNode {
		return "", false
	}
	valueNode := mappingValue(sectionNode, key)
	if valueNode == nil || valueNode.Kind != yaml.ScalarNode || valueNode.Tag == "!!null" {
		return "", false
	}
	return valueNode.Value, true
}

func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func setInt(root *yaml.Node, section, key string, value int) {
	setScalar(root, section, key, "!!int", strconv.Itoa(value))
}

func setString(root *yaml.Node, section, key, value string) {
	setScalar(root, section, key, "!!str", value)
}

func setScalar(root *yaml.Node, section, key, tag, value string) {
	sectionNode := ensureSection(root, section)
	scalar := &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
	for i := 0; i+1 < len(sectionNode.Content); i += 2 {
		if sectionNode.Content[i].Value == key {
			scalar.LineComment = sectionNode.Content[i+1].LineComment
			sectionNode.Content[i+1] = scalar
			return
		}
	}
	sectionNode.Content = append(sectionNode.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		scalar,
	)
}

func ensureSection(root *yaml.Node, section string) *yaml.Node {
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != section {
			continue
		}
		if root.Content[i+1].Kind != yaml.MappingNode {
			root.Content[i+1] = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		}
		return root.Content[i+1]
	}
	sectionNode := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: section},
		sectionNode,
	)
	return sectionNode
}
