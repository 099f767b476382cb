// Package plugin defines the capability contract every board kind implements
// and the registry that maps a board's type string to its implementation.
//
// A kind must provide its identity, its presentation metadata and a content
// renderer. Everything else is optional and discovered by interface
// assertion:
//
//   - [FullscreenRenderer] for an expanded editing view
//   - [FooterRenderer] for a strip below the content
//   - [HeaderActionsRenderer] for buttons in the board header
//   - [Seeder] to shape the initial state of a new board
//   - [NoteTaker] and [ImageTaker] for kinds that collect notes
//   - [Hidden] for kinds that never appear in the add-board menu
//
// The workspace never inspects a board's Content; only the plugin registered
// for the board's type interprets it.
package plugin
