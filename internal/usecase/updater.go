package usecase

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/o1x3/profile-stats/internal/domain"
	"github.com/o1x3/profile-stats/internal/readme"
)

// ProfileCollector produces the data rendered into a README.
type ProfileCollector interface {
	Collect(ctx context.Context, user string) (*domain.Profile, error)
}

// UpdateOptions configures a single README update.
type UpdateOptions struct {
	User    string
	Path    string
	Section string
	Style   readme.Style
	// DryRun writes the updated README to Out instead of the file.
	DryRun bool
	Out    io.Writer
}

// UpdateResult reports what an update did.
type UpdateResult struct {
	Profile *domain.Profile
	Regions int
	Changed bool
	Written bool
}

// Updater rewrites the generated section of a README.
type Updater struct {
	collector ProfileCollector
	logger    *log.Logger
	now       func() time.Time
}

// NewUpdater creates a new Updater instance.
func NewUpdater(collector ProfileCollector, logger *log.Logger) *Updater {
	return &Updater{
		collector: collector,
		logger:    logger,
		now:       time.Now,
	}
}

// Update validates the README's sentinel markers, collects fresh data and replaces the
// content between the section markers. The file is only written, and the "Last updated"
// stamp only refreshed, when the generated section changed. A README without the section
// is left untouched and reported with ErrSectionNotFound.
func (u *Updater) Update(ctx context.Context, opts UpdateOptions) (*UpdateResult, error) {
	section := opts.Section
	if section == "" {
		section = readme.DefaultSection
	}

	content, err := readme.ReadFile(opts.Path)
	if err != nil {
		return nil, err
	}
	if err := readme.Validate(content); err != nil {
		return nil, fmt.Errorf("%s has broken sentinel markers: %w", opts.Path, err)
	}

	profile, err := u.collector.Collect(ctx, opts.User)
	if err != nil {
		return nil, fmt.Errorf("failed to collect profile for %s: %w", opts.User, err)
	}

	replaced, regions := readme.ReplaceSection(content, section, readme.Render(profile, opts.Style))
	if regions == 0 {
		start, end := readme.Marker(section)
		return nil, fmt.Errorf("%s: %w: add %s and %s", opts.Path, readme.ErrSectionNotFound, start, end)
	}

	result := &UpdateResult{
		Profile: profile,
		Regions: regions,
		Changed: replaced != content,
	}

	// The stamp only moves when the generated data does.
	updated := content
	if result.Changed {
		updated = readme.StampUpdated(replaced, u.now())
	}
	if err := readme.Validate(updated); err != nil {
		return nil, fmt.Errorf("rendered %s would break sentinel markers: %w", opts.Path, err)
	}

	if opts.DryRun {
		if opts.Out != nil {
			if _, err := io.WriteString(opts.Out, updated); err != nil {
				return nil, fmt.Errorf("failed to write dry-run output: %w", err)
			}
		}
		return result, nil
	}
	if !result.Changed {
		u.logger.Printf("%s is up to date\n", opts.Path)
		return result, nil
	}

	if err := readme.WriteFile(opts.Path, updated); err != nil {
		return nil, err
	}
	result.Written = true
	u.logger.Printf("Updated %s\n", opts.Path)
	return result, nil
}
