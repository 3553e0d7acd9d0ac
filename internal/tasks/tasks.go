// package tasks assembles a user's library into an export bundle.
//
// The core abstraction is ExportEngine, which drives the paged API client
// through identity, collection listing, interactive selection, and the
// per-playlist track fetch. Operations emit progress updates via channels
// for non-blocking status reporting to the CLI layer.
package tasks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/services"
	"github.com/desertthunder/spotx/internal/shared"
)

// Selector chooses and orders the playlists to export. The interactive
// picker in internal/ui is the production implementation.
type Selector func(playlists []models.Playlist) ([]models.Playlist, error)

// Options controls which library sections an export run covers.
type Options struct {
	DumpPlaylists bool
	DumpLiked     bool
}

// ParseDump parses the --dump flag value ("playlists", "liked", or a
// comma-separated combination) into Options.
func ParseDump(value string) (Options, error) {
	opts := Options{}
	for _, part := range strings.Split(value, ",") {
		switch strings.TrimSpace(part) {
		case "playlists":
			opts.DumpPlaylists = true
		case "liked":
			opts.DumpLiked = true
		default:
			return Options{}, fmt.Errorf("%w: unknown dump section %q", shared.ErrInvalidArgument, part)
		}
	}
	if !opts.DumpPlaylists && !opts.DumpLiked {
		return Options{}, fmt.Errorf("%w: nothing to dump", shared.ErrInvalidArgument)
	}
	return opts, nil
}

// ExportEngine assembles an [models.ExportBundle] from the user's library.
//
// The bundle is built entirely in memory and returned only after every fetch
// has succeeded; a failure partway through never hands partial data across
// the boundary.
type ExportEngine struct {
	library  services.Library
	selector Selector
	logger   *log.Logger
}

// NewExportEngine creates an ExportEngine with the provided dependencies.
func NewExportEngine(library services.Library, selector Selector, logger *log.Logger) *ExportEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ExportEngine{
		library:  library,
		selector: selector,
		logger:   shared.WithLogger(logger, "task", "export"),
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run fetches the requested library sections and assembles the bundle.
//
// Playlists are presented to the selector oldest-first; the selector's
// returned order is the bundle order. An empty selection is an error, not an
// empty export.
func (e *ExportEngine) Run(ctx context.Context, opts Options, progress chan<- ProgressUpdate) (*models.ExportBundle, error) {
	if e.library == nil {
		return nil, fmt.Errorf("%w: library client not initialized", shared.ErrNotAuthenticated)
	}

	bundle := &models.ExportBundle{}

	e.sendProgress(progress, fetchUserUpdate())
	user, err := e.library.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load user info: %v", shared.ErrAPIRequest, err)
	}
	e.logger.Infof("logged in as %s (%s)", user.DisplayName, user.ID)

	if opts.DumpLiked {
		e.sendProgress(progress, fetchLikedUpdate())
		liked, err := e.library.SavedTracks(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load liked songs: %v", shared.ErrAPIRequest, err)
		}

		e.sendProgress(progress, fetchAlbumsUpdate())
		albums, err := e.library.SavedAlbums(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load liked albums: %v", shared.ErrAPIRequest, err)
		}

		bundle.Playlists = append(bundle.Playlists, models.PlaylistExport{
			Playlist: models.Playlist{Name: "Liked Songs", TrackCount: len(liked)},
			Items:    liked,
		})
		bundle.Albums = albums
	}

	if opts.DumpPlaylists {
		e.sendProgress(progress, fetchPlaylistsUpdate())
		playlists, err := e.library.Playlists(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load playlists: %v", shared.ErrAPIRequest, err)
		}

		// Present oldest-first; the listing endpoint returns newest-first.
		reverse(playlists)
		e.logger.Infof("found %d playlists", len(playlists))

		selected, err := e.selector(playlists)
		if err != nil {
			return nil, err
		}

		for i, pl := range selected {
			e.sendProgress(progress, fetchTracksUpdate(i+1, len(selected), pl))
			e.logger.Infof("loading playlist: %s (%d song(s))", pl.Name, pl.TrackCount)

			items, err := e.library.PlaylistItems(ctx, pl)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to load tracks for %s: %v", shared.ErrAPIRequest, pl.Name, err)
			}

			sortItems(items, pl.CreatedAt)
			bundle.Playlists = append(bundle.Playlists, models.PlaylistExport{Playlist: pl, Items: items})
		}
	}

	return bundle, nil
}

// sortItems orders a playlist's entries most-recently-added first. The sort
// is stable so entries sharing a timestamp keep their server order, and
// tombstoned entries stay in the sequence.
func sortItems(items []models.PlaylistItem, createdAt time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].EffectiveAddedAt(createdAt).After(items[j].EffectiveAddedAt(createdAt))
	})
}

func reverse(playlists []models.Playlist) {
	for i, j := 0, len(playlists)-1; i < j; i, j = i+1, j-1 {
		playlists[i], playlists[j] = playlists[j], playlists[i]
	}
}
