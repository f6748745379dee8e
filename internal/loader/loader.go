// Package loader discovers quest files on disk, runs them through the
// generation pipeline, and registers the results into the host's template
// and locale stores. It also exposes the runtime story-loading entry point
// other extensions call.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/generator"
	"github.com/questforge/questforge/internal/quest"
	"github.com/questforge/questforge/internal/storage"
	"github.com/questforge/questforge/internal/story"
)

// Directory entries with this suffix are skipped.
const disabledSuffix = ".disabled"

// exampleDir ships with the distribution and is skipped without a warning.
const exampleDir = "examples" + disabledSuffix

// Service loads quest content into the injected stores. Loading is
// single-threaded and happens once; Load calls made before LoadAll are
// buffered and flushed at the end of the load pass.
type Service struct {
	dir         string
	templates   storage.TemplateStore
	locales     storage.LocaleStore
	repeatLimit int
	namePrefix  string
	logger      *zap.Logger

	loaded  bool
	pending []*quest.Story
}

// New creates a loader service.
//
// Precondition: templates, locales and logger must be non-nil; repeatLimit
// is the clone count for repeatable quests.
func New(dir string, templates storage.TemplateStore, locales storage.LocaleStore, repeatLimit int, namePrefix string, logger *zap.Logger) *Service {
	return &Service{
		dir:         dir,
		templates:   templates,
		locales:     locales,
		repeatLimit: repeatLimit,
		namePrefix:  namePrefix,
		logger:      logger,
	}
}

// LoadAll runs the full load pass: every JSON file in the quest directory
// and its enabled subdirectories, in lexical order, then any stories
// buffered by early Load calls. Returns every registered quest.
//
// Postcondition: on success the service accepts direct Load calls.
func (s *Service) LoadAll(ctx context.Context) ([]*engine.Quest, error) {
	stories, err := s.readStories()
	if err != nil {
		return nil, err
	}
	stories = append(stories, s.pending...)
	s.pending = nil

	loaded, err := s.process(ctx, stories)
	if err != nil {
		return nil, err
	}

	s.loaded = true
	return loaded, nil
}

// Load registers the given story's quests. Called before LoadAll it buffers
// the story and returns no quests; the buffered content is generated during
// the load pass.
func (s *Service) Load(ctx context.Context, st *quest.Story) ([]*engine.Quest, error) {
	if !s.loaded {
		s.pending = append(s.pending, st)
		return nil, nil
	}
	return s.process(ctx, []*quest.Story{st})
}

// process generates and registers a batch of stories. Builds and groups
// from every story in the batch are indexed before any quest generates.
func (s *Service) process(ctx context.Context, stories []*quest.Story) ([]*engine.Quest, error) {
	index := story.NewIndex()
	for _, st := range stories {
		index.Add(st)
		if n := len(st.Builds); n > 0 {
			s.logger.Debug("item build templates detected", zap.Int("count", n))
		}
		if n := len(st.Groups); n > 0 {
			s.logger.Debug("item groups detected", zap.Int("count", n))
		}
	}

	localeNames, err := s.locales.Locales(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing locales: %w", err)
	}
	if len(localeNames) == 0 {
		s.logger.Warn("no locales registered, quest text will not be generated")
	}

	gen := generator.New(index, localeNames, s.repeatLimit, s.namePrefix, s.logger)

	var loaded []*engine.Quest
	for _, st := range stories {
		generated, err := gen.Generate(st.Quests)
		if err != nil {
			return nil, err
		}
		for _, g := range generated {
			s.register(ctx, g)
			loaded = append(loaded, g.Quest)
		}
	}
	return loaded, nil
}

// register writes one generated quest and its locales. Collisions keep the
// original entry and are logged; they never abort the load.
func (s *Service) register(ctx context.Context, g generator.Generated) {
	if err := s.templates.RegisterQuest(ctx, g.Quest); err != nil {
		if errors.Is(err, storage.ErrDuplicateQuest) {
			s.logger.Error("already registered quest id", zap.String("quest_id", g.Quest.ID))
		} else {
			s.logger.Error("registering quest", zap.String("quest_id", g.Quest.ID), zap.Error(err))
		}
	}

	for locale, payload := range g.Locales {
		if err := s.locales.RegisterQuestLocale(ctx, locale, g.Quest.ID, payload.Quest); err != nil {
			if errors.Is(err, storage.ErrDuplicateLocale) {
				s.logger.Error("already registered locales for quest",
					zap.String("quest_id", g.Quest.ID), zap.String("locale", locale))
			} else {
				s.logger.Error("registering quest locale",
					zap.String("quest_id", g.Quest.ID), zap.String("locale", locale), zap.Error(err))
			}
		}
		for key, value := range payload.Mail {
			if err := s.locales.RegisterMail(ctx, locale, key, value); err != nil {
				if errors.Is(err, storage.ErrDuplicateLocale) {
					s.logger.Error("already registered mail key",
						zap.String("mail_id", key), zap.String("quest_id", g.Quest.ID))
				} else {
					s.logger.Error("registering mail",
						zap.String("mail_id", key), zap.Error(err))
				}
			}
		}
	}
}

// readStories walks the quest directory: files at the root first, then each
// enabled subdirectory.
func (s *Service) readStories() ([]*quest.Story, error) {
	stories, err := s.readDir(s.dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading quest directory %s: %w", s.dir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, disabledSuffix) {
			if name != exampleDir {
				s.logger.Warn("skipped disabled quest directory",
					zap.String("directory", strings.TrimSuffix(name, disabledSuffix)))
			}
			continue
		}
		sub, err := s.readDir(filepath.Join(s.dir, name))
		if err != nil {
			return nil, err
		}
		stories = append(stories, sub...)
	}

	return stories, nil
}

// readDir parses every *.json file in dir, in lexical order.
func (s *Service) readDir(dir string) ([]*quest.Story, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading quest directory %s: %w", dir, err)
	}

	var stories []*quest.Story
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		st, err := quest.ParseStory(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		stories = append(stories, st)
	}
	return stories, nil
}
