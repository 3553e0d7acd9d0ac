// Spotify API client with bounded retry and transparent pagination
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	spotifyAuthURL = "https://accounts.spotify.com/authorize"
	// spotifyBaseURL is the fixed API root. Relative paths are resolved
	// against it; absolute URLs (the server-supplied "next" cursor) pass
	// through verbatim.
	spotifyBaseURL = "https://api.spotify.com/v1/"

	// Retry policy for transient request, transport, and parse failures.
	// Exhaustion is fatal to the run: there is no use continuing without
	// the data and a partial export is worse than none.
	requestTries = 3
	retryWait    = 2 * time.Second

	// progressInterval throttles the pagination progress log so large
	// libraries don't flood the output.
	progressInterval = 15 * time.Second
)

// AuthURL composes the implicit-grant authorization URL the user opens in a
// browser. The access token comes back in the redirect's URL fragment.
func AuthURL(clientID, redirectURI string, scopes []string) string {
	cfg := &oauth2.Config{
		ClientID:    clientID,
		RedirectURL: redirectURI,
		Scopes:      scopes,
		Endpoint:    oauth2.Endpoint{AuthURL: spotifyAuthURL},
	}
	return cfg.AuthCodeURL("", oauth2.SetAuthURLParam("response_type", "token"))
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	Name string `json:"name"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	Name        string          `json:"name"`
	Artists     []SpotifyArtist `json:"artists"`
	ReleaseDate string          `json:"release_date"`
	URI         string          `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
	Album   SpotifyAlbum    `json:"album"`
	URI     string          `json:"uri"`
}

// SpotifyPlaylistTrack represents a track within a playlist or library
// context. Track is null for tombstoned entries.
type SpotifyPlaylistTrack struct {
	AddedAt string        `json:"added_at"`
	Track   *SpotifyTrack `json:"track"`
}

// SpotifySavedAlbum represents an album saved in the user's library.
type SpotifySavedAlbum struct {
	AddedAt string       `json:"added_at"`
	Album   SpotifyAlbum `json:"album"`
}

type simplePlaylistTracks struct {
	Href  string `json:"href"`
	Total int    `json:"total"`
}

// SpotifySimplePlaylist represents a simplified playlist object (used in lists).
type SpotifySimplePlaylist struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	CreatedAt string               `json:"created_at"`
	Tracks    simplePlaylistTracks `json:"tracks"`
}

// page is one slice of a paginated collection. Next is an absolute URL or
// null; concatenating items across the cursor chain yields Total items.
type page[T any] struct {
	Items []T     `json:"items"`
	Next  *string `json:"next"`
	Total int     `json:"total"`
}

func (p *page[T]) validate() error {
	if p.Items == nil {
		return fmt.Errorf("%w: missing items", shared.ErrBadPayload)
	}
	return nil
}

// validator lets response types reject a structurally unexpected payload so
// the failure flows through Get's retry path like any other parse error.
type validator interface {
	validate() error
}

// Client issues authenticated GET requests against the Spotify API, retrying
// transient failures and following pagination cursors.
//
// Implements [Library].
type Client struct {
	token      *oauth2.Token
	httpClient *http.Client
	logger     *log.Logger
	limiter    *rate.Limiter
	baseURL    string
	tries      int
	wait       time.Duration

	// exit is called when the retry budget is exhausted. Replaced in tests.
	exit func(code int)
}

var _ Library = (*Client)(nil)

// NewClient creates a Spotify client around a captured bearer token.
func NewClient(accessToken string, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		token:      &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"},
		httpClient: httpClient,
		logger:     logger,
		limiter:    rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
		baseURL:    spotifyBaseURL,
		tries:      requestTries,
		wait:       retryWait,
		exit:       os.Exit,
	}
}

// requestURL resolves a relative path against the API base and appends
// params. Server-supplied "next" cursors are absolute URLs and pass
// through untouched.
func (c *Client) requestURL(rawURL string, params url.Values) string {
	if !strings.Contains(rawURL, "://") {
		rawURL = c.baseURL + strings.TrimPrefix(rawURL, "/")
	}

	if len(params) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL += sep + params.Encode()
	}

	return rawURL
}

// Get fetches a resource and decodes the JSON response into result.
//
// Transient failures are retried up to the bound with a fixed delay; if all
// attempts fail the process terminates with a non-zero status. Callers never
// see a partial result.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values, result any) error {
	fullURL := c.requestURL(rawURL, params)

	attempt := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+c.token.AccessToken)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
		}

		if result != nil {
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("%w: %v", shared.ErrBadPayload, err)
			}
			if v, ok := result.(validator); ok {
				if err := v.validate(); err != nil {
					return err
				}
			}
		}

		return nil
	}

	notify := func(err error, _ time.Duration) {
		c.logger.Infof("couldn't load URL: %s (%v)", fullURL, err)
		c.logger.Info("trying again...")
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.wait), uint64(c.tries-1)), ctx)

	if err := backoff.RetryNotify(attempt, policy, notify); err != nil {
		c.logger.Errorf("giving up on %s after %d attempts: %v", fullURL, c.tries, err)
		c.exit(1)
		return fmt.Errorf("%w: %v", shared.ErrRetryExhausted, err)
	}

	return nil
}

// listAll fetches every page of a collection, following the server's "next"
// cursor until it is null. Page order and item order are preserved. Progress
// is logged at most once per progressInterval.
func listAll[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	lastLog := time.Now()

	var pg page[T]
	if err := c.Get(ctx, path, params, &pg); err != nil {
		return nil, err
	}

	items := pg.Items
	for pg.Next != nil {
		if time.Since(lastLog) > progressInterval {
			lastLog = time.Now()
			c.logger.Infof("loaded %d/%d items", len(items), pg.Total)
		}

		// The cursor is an absolute URL; pass it through untouched.
		next := *pg.Next
		pg = page[T]{}
		if err := c.Get(ctx, next, nil, &pg); err != nil {
			return nil, err
		}
		items = append(items, pg.Items...)
	}

	return items, nil
}

// CurrentUser retrieves the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*SpotifyUser, error) {
	var user SpotifyUser
	if err := c.Get(ctx, "me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Playlists retrieves all playlists for the given user, in server order.
func (c *Client) Playlists(ctx context.Context, userID string) ([]models.Playlist, error) {
	path := fmt.Sprintf("users/%s/playlists", url.PathEscape(userID))
	raw, err := listAll[SpotifySimplePlaylist](ctx, c, path, url.Values{"limit": {"50"}})
	if err != nil {
		return nil, err
	}

	playlists := make([]models.Playlist, len(raw))
	for i, sp := range raw {
		playlists[i] = sp.toModel()
	}
	return playlists, nil
}

// PlaylistItems retrieves the playlist's complete track listing via its
// track-collection cursor.
func (c *Client) PlaylistItems(ctx context.Context, playlist models.Playlist) ([]models.PlaylistItem, error) {
	raw, err := listAll[SpotifyPlaylistTrack](ctx, c, playlist.TracksHref, url.Values{"limit": {"100"}})
	if err != nil {
		return nil, err
	}
	return toItems(raw), nil
}

// SavedTracks retrieves the user's liked songs.
func (c *Client) SavedTracks(ctx context.Context) ([]models.PlaylistItem, error) {
	raw, err := listAll[SpotifyPlaylistTrack](ctx, c, "me/tracks", url.Values{"limit": {"50"}})
	if err != nil {
		return nil, err
	}
	return toItems(raw), nil
}

// SavedAlbums retrieves the user's liked albums.
func (c *Client) SavedAlbums(ctx context.Context) ([]models.Album, error) {
	raw, err := listAll[SpotifySavedAlbum](ctx, c, "me/albums", url.Values{"limit": {"50"}})
	if err != nil {
		return nil, err
	}

	albums := make([]models.Album, len(raw))
	for i, sa := range raw {
		albums[i] = sa.Album.toModel()
	}
	return albums, nil
}

func (sp SpotifySimplePlaylist) toModel() models.Playlist {
	return models.Playlist{
		ID:         sp.ID,
		Name:       sp.Name,
		CreatedAt:  parseTimestamp(sp.CreatedAt),
		TracksHref: sp.Tracks.Href,
		TrackCount: sp.Tracks.Total,
	}
}

func (sa SpotifyAlbum) toModel() models.Album {
	return models.Album{
		URI:         sa.URI,
		Name:        sa.Name,
		Artists:     artistNames(sa.Artists),
		ReleaseDate: sa.ReleaseDate,
	}
}

func (st SpotifyTrack) toModel() models.Track {
	return models.Track{
		URI:         st.URI,
		Name:        st.Name,
		Artists:     artistNames(st.Artists),
		Album:       st.Album.Name,
		ReleaseDate: st.Album.ReleaseDate,
	}
}

func toItems(raw []SpotifyPlaylistTrack) []models.PlaylistItem {
	items := make([]models.PlaylistItem, len(raw))
	for i, pt := range raw {
		item := models.PlaylistItem{}
		if t, err := time.Parse(time.RFC3339, pt.AddedAt); err == nil {
			item.AddedAt = &t
		}
		if pt.Track != nil {
			track := pt.Track.toModel()
			item.Track = &track
		}
		items[i] = item
	}
	return items
}

func artistNames(artists []SpotifyArtist) []string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return names
}

// parseTimestamp parses an RFC 3339 timestamp, falling back to the Unix
// epoch when the field is absent or unparseable.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Unix(0, 0).UTC()
}
