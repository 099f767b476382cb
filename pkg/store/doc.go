// Package store persists projects.
//
// Persistence sits outside the workspace core: a [Store] loads a
// [board.Project] by id and saves snapshots taken with
// workspace.Workspace.Snapshot. Three backends are provided:
//
//   - [FileStore] keeps one JSON or YAML file per project in a directory and
//     can watch it for external edits.
//   - [RedisStore] keeps projects as JSON under "auteur:project:<id>".
//   - [MongoStore] keeps projects as documents in the "projects" collection.
//
// Loading never rejects a project because of a bad placement. Boards whose
// width, height or position fall outside the grid are clamped into range,
// so files edited by hand or written by older versions still open.
//
// [Open] selects a backend from a [Config].
package store
