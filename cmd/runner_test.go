package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/services"
	"github.com/desertthunder/spotx/internal/shared"
	tu "github.com/desertthunder/spotx/internal/testing"
	"github.com/urfave/cli/v3"
)

func testLibrary(t *testing.T) *tu.MockLibrary {
	t.Helper()
	addedAt := tu.MustParseTime(t, "2022-01-01T00:00:00Z")
	return &tu.MockLibrary{
		User: &services.SpotifyUser{ID: "user1", DisplayName: "User One"},
		PlaylistSet: []models.Playlist{
			{ID: "p1", Name: "Road Trip", TrackCount: 1},
		},
		Items: map[string][]models.PlaylistItem{
			"p1": {{AddedAt: &addedAt, Track: &models.Track{
				URI: "spotify:track:1", Name: "Song One", Artists: []string{"Artist A"}, Album: "Album X",
			}}},
		},
	}
}

func testRunner(t *testing.T, library *tu.MockLibrary) (*Runner, *bytes.Buffer) {
	t.Helper()
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Logger:   shared.NewLogger(&bytes.Buffer{}),
		Output:   output,
		Selector: func(playlists []models.Playlist) ([]models.Playlist, error) { return playlists, nil },
		Capture: func(ctx context.Context, logger *log.Logger) (string, error) {
			return "captured-token", nil
		},
		NewLibrary: func(token string) services.Library { return library },
	})
	return runner, output
}

func runApp(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{Name: "spotx", Commands: runner.register()}
	return app.Run(context.Background(), append([]string{"spotx"}, args...))
}

func TestNewRunner(t *testing.T) {
	t.Run("with all dependencies provided", func(t *testing.T) {
		config := shared.DefaultConfig()
		logger := shared.NewLogger(nil)
		output := &bytes.Buffer{}
		httpClient := &http.Client{}

		runner := NewRunner(RunnerOpts{
			Config:     config,
			Logger:     logger,
			Output:     output,
			HTTPClient: httpClient,
		})

		if runner.config != config {
			t.Error("expected config to be set")
		}
		if runner.logger != logger {
			t.Error("expected logger to be set")
		}
		if runner.output != output {
			t.Error("expected output to be set")
		}
		if runner.httpClient != httpClient {
			t.Error("expected httpClient to be set")
		}
	})

	t.Run("with nil options uses defaults", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})

		if runner.config == nil {
			t.Error("expected default config")
		}
		if runner.logger == nil {
			t.Error("expected default logger")
		}
		if runner.selector == nil {
			t.Error("expected default selector")
		}
		if runner.capture == nil {
			t.Error("expected default capture")
		}
		if runner.newLibrary == nil {
			t.Error("expected default library constructor")
		}
	})
}

func TestExport(t *testing.T) {
	t.Run("writes a text export with an explicit token", func(t *testing.T) {
		runner, output := testRunner(t, testLibrary(t))
		path := filepath.Join(t.TempDir(), "playlists.txt")

		if err := runApp(t, runner, "export", "--token", "tok", path); err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, "Road Trip\r\n") {
			t.Errorf("expected playlist block, got %q", content)
		}
		if !strings.Contains(content, "Song One\tArtist A\tAlbum X\tspotify:track:1\t") {
			t.Errorf("expected track line, got %q", content)
		}
		if !strings.Contains(output.String(), "wrote 1 playlists (1 songs) and 0 albums") {
			t.Errorf("expected summary, got %q", output.String())
		}
	})

	t.Run("infers JSON format from the extension", func(t *testing.T) {
		runner, _ := testRunner(t, testLibrary(t))
		path := filepath.Join(t.TempDir(), "playlists.json")

		if err := runApp(t, runner, "export", "--token", "tok", path); err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, `"playlists"`) {
			t.Errorf("expected JSON document, got %q", content)
		}
	})

	t.Run("prompts for a filename when none is given", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "prompted.txt")

		runner, output := testRunner(t, testLibrary(t))
		runner.input = strings.NewReader(path + "\n")

		if err := runApp(t, runner, "export", "--token", "tok"); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if !strings.Contains(output.String(), "Enter a file name") {
			t.Errorf("expected prompt, got %q", output.String())
		}
		tu.AssertFileExists(t, path)
	})

	t.Run("empty prompt input is an error", func(t *testing.T) {
		runner, _ := testRunner(t, testLibrary(t))
		runner.input = strings.NewReader("\n")

		err := runApp(t, runner, "export", "--token", "tok")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("falls back to the capture flow without a token", func(t *testing.T) {
		library := testLibrary(t)
		runner, _ := testRunner(t, library)

		captured := false
		runner.capture = func(ctx context.Context, logger *log.Logger) (string, error) {
			captured = true
			return "captured-token", nil
		}

		path := filepath.Join(t.TempDir(), "out.txt")
		if err := runApp(t, runner, "export", path); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if !captured {
			t.Error("expected the capture flow to run")
		}
	})

	t.Run("liked section exports the pseudo-playlist and albums", func(t *testing.T) {
		library := testLibrary(t)
		addedAt := tu.MustParseTime(t, "2023-01-01T00:00:00Z")
		library.Liked = []models.PlaylistItem{{AddedAt: &addedAt, Track: &models.Track{Name: "Fav", URI: "spotify:track:9"}}}
		library.Albums = []models.Album{{Name: "LP", URI: "spotify:album:1", Artists: []string{"Artist C"}}}

		runner, _ := testRunner(t, library)
		path := filepath.Join(t.TempDir(), "liked.txt")

		if err := runApp(t, runner, "export", "--token", "tok", "--dump", "liked", path); err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, "Liked Songs\r\n") {
			t.Errorf("expected Liked Songs block, got %q", content)
		}
		if !strings.Contains(content, "Liked Albums: \r\n") {
			t.Errorf("expected Liked Albums block, got %q", content)
		}
	})

	t.Run("invalid dump value", func(t *testing.T) {
		runner, _ := testRunner(t, testLibrary(t))
		err := runApp(t, runner, "export", "--token", "tok", "--dump", "nonsense", "out.txt")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("unknown format value", func(t *testing.T) {
		runner, _ := testRunner(t, testLibrary(t))
		path := filepath.Join(t.TempDir(), "out.yaml")

		err := runApp(t, runner, "export", "--token", "tok", "--format", "yaml", path)
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			t.Error("expected no file for a rejected format")
		}
	})

	t.Run("empty selection aborts without writing", func(t *testing.T) {
		runner, _ := testRunner(t, testLibrary(t))
		runner.selector = func([]models.Playlist) ([]models.Playlist, error) {
			return nil, shared.ErrEmptySelection
		}

		path := filepath.Join(t.TempDir(), "never.txt")
		err := runApp(t, runner, "export", "--token", "tok", path)
		if !errors.Is(err, shared.ErrEmptySelection) {
			t.Errorf("expected ErrEmptySelection, got %v", err)
		}
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			t.Error("expected no file on an aborted export")
		}
	})

	t.Run("records history when asked", func(t *testing.T) {
		dir := t.TempDir()
		runner, _ := testRunner(t, testLibrary(t))
		runner.config.History.Path = filepath.Join(dir, "spotx.db")
		runner.config.History.MaxOpenConns = 1
		runner.config.History.MaxIdleConns = 1

		path := filepath.Join(dir, "out.txt")
		if err := runApp(t, runner, "export", "--token", "tok", "--history", path); err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		listOut := &bytes.Buffer{}
		runner.output = listOut
		if err := runApp(t, runner, "history", "list"); err != nil {
			t.Fatalf("expected history list to succeed, got %v", err)
		}
		if !strings.Contains(listOut.String(), "out.txt") {
			t.Errorf("expected recorded run, got %q", listOut.String())
		}
	})
}

func TestAuthLogin(t *testing.T) {
	t.Run("prints the captured token", func(t *testing.T) {
		runner, output := testRunner(t, testLibrary(t))

		if err := runApp(t, runner, "auth", "login"); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if !strings.Contains(output.String(), "captured-token") {
			t.Errorf("expected token in output, got %q", output.String())
		}
	})

	t.Run("missing client id", func(t *testing.T) {
		runner, _ := testRunner(t, testLibrary(t))
		runner.config.Credentials.Spotify.ClientID = ""

		err := runApp(t, runner, "auth", "login")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestHistory(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		runner, output := testRunner(t, testLibrary(t))
		runner.config.History.Path = filepath.Join(t.TempDir(), "spotx.db")

		if err := runApp(t, runner, "history", "list"); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if !strings.Contains(output.String(), "no export runs recorded") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("clear reports the removed count", func(t *testing.T) {
		runner, output := testRunner(t, testLibrary(t))
		runner.config.History.Path = filepath.Join(t.TempDir(), "spotx.db")

		if err := runApp(t, runner, "history", "clear"); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if !strings.Contains(output.String(), "cleared 0 export runs") {
			t.Errorf("unexpected output %q", output.String())
		}
	})
}

func TestSetup(t *testing.T) {
	t.Run("creates a starter config", func(t *testing.T) {
		runner, _ := testRunner(t, testLibrary(t))
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := runApp(t, runner, "setup", "--config", path); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		tu.AssertFileExists(t, path)
	})

	t.Run("refuses to overwrite an existing config", func(t *testing.T) {
		runner, _ := testRunner(t, testLibrary(t))
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("existing"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		err := runApp(t, runner, "setup", "--config", path)
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestWriteOutput(t *testing.T) {
	t.Run("write failures surface as errors", func(t *testing.T) {
		runner, _ := testRunner(t, testLibrary(t))
		runner.output = &tu.FWriter{}

		if err := runner.writePlain("hello"); err == nil {
			t.Error("expected writePlain to fail")
		}
		if err := runner.writeJSON(map[string]int{"a": 1}, false); err == nil {
			t.Error("expected writeJSON to fail")
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("swaps config when the file exists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := "[credentials.spotify]\nclient_id = \"from-file\"\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		runner, _ := testRunner(t, testLibrary(t))
		runner.loadConfig(path)
		if runner.config.Credentials.Spotify.ClientID != "from-file" {
			t.Errorf("expected config from file, got %s", runner.config.Credentials.Spotify.ClientID)
		}
	})

	t.Run("keeps the current config when the file is missing", func(t *testing.T) {
		runner, _ := testRunner(t, testLibrary(t))
		before := runner.config
		runner.loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if runner.config != before {
			t.Error("expected config unchanged")
		}
	})
}
