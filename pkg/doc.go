// Package pkg provides the core libraries for Auteur, a pre-production
// workspace for filmmakers.
//
// # Overview
//
// A project is a canvas of boards (treatment, moodboard, storyboard, budget,
// crew and so on) laid out on a fixed-column grid. The pkg directory is
// organized into four main areas:
//
//  1. [board] and [plugin] - The project model and the board kind registry
//  2. [layout] and [interaction] - Grid geometry and drag/resize gestures
//  3. [workspace] and [render] - The editing surface and its output formats
//  4. [store], [cache] and [pipeline] - Persistence and cached rendering
//
// # Architecture
//
// The typical data flow through Auteur:
//
//	Project file / Redis / MongoDB
//	         ↓
//	    [store] package (load + decode)
//	         ↓
//	    [workspace] package (edit boards, notes, pointer gestures)
//	         ↓
//	    [layout] package (grid placement)
//	         ↓
//	    [render] package (per-kind frames + canvas sinks)
//	         ↓
//	    SVG/HTML/JSON/DOT/PNG/PDF output
//
// # Quick Start
//
// Open a project, add a board and render the canvas:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/auteur/pkg/board"
//	    "github.com/matzehuels/auteur/pkg/workspace"
//	)
//
//	ws := workspace.New(board.NewProject("Night Shoot"))
//	b, _ := ws.AddBoard("DOCUMENT_TREATMENT")
//	ws.AddTextNote(b.ID, "Opening: a city at dusk.")
//	svg, _ := ws.Render(context.Background(), workspace.FormatSVG)
//
// # Main Packages
//
// [board] - Projects, boards, notes, production settings and the gear
// inventory. All mutations return new values.
//
// [plugin] - The kind registry. Each board kind contributes metadata and a
// renderer; [kinds] holds the built-in set.
//
// [layout] - The canvas grid: column geometry, default sizes, clamping and
// paint order.
//
// [interaction] - The pointer state machine behind dragging and resizing.
//
// [workspace] - The stateful editing surface used by the CLI, the terminal
// canvas and the HTTP server.
//
// [generate] - Requests and replies for AI-assisted script and visual
// planning sections.
//
// [imageref] - Resolves image references into data URIs, with caching.
//
// [render] - Frame dispatch to kind renderers and canvas sinks.
//
// [store] - File, Redis and MongoDB persistence with a shared codec.
//
// [cache] - Artifact and image caches (file, Redis, null) and their keyers.
//
// [pipeline] - Cached multi-format rendering used by the CLI and the server.
//
// [session] - Dirty tracking, autosave and reload around a workspace.
//
// [config] - TOML configuration with environment overrides.
//
// [observability] - Hooks and Prometheus metrics.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                 # All tests
//	go test ./pkg/layout/...          # Specific package
//	go test -run Example ./pkg/...    # Examples only
//
// [board]: https://pkg.go.dev/github.com/matzehuels/auteur/pkg/board
// [plugin]: https://pkg.go.dev/github.com/matzehuels/auteur/pkg/plugin
// [kinds]: https://pkg.go.dev/github.com/matzehuels/auteur/pkg/kinds
// [layout]: https://pkg.go.dev/github.com/matzehuels/auteur/pkg/layout
// [interaction]: https://pkg.go.dev/github.com/matzehuels/auteur/pkg/interaction
// [workspace]: https://pkg.go.dev/github.com/matzehuels/auteur/pkg/workspace
// [generate]: https://pkg.go.dev/github.com/matzehuels/auteur/pkg/generate
// [imageref]: https://pkg.go.dev/github.com/matzehuels/auteur/pkg/imageref
// [render]: https://pkg.go.dev/github.com/matzehuels/auteur/pkg/render
// [store]: https://pkg.go.dev/github.com/matzehuels/auteur/pkg/store
// [cache]: https://pkg.go.dev/github.com/matzehuels/auteur/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/auteur/pkg/pipeline
// [session]: https://pkg.go.dev/github.com/matzehuels/auteur/pkg/session
// [config]: https://pkg.go.dev/github.com/matzehuels/auteur/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/auteur/pkg/observability
package pkg
