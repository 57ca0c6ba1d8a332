// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RemoteService: Moodle web service calls and file uploads
//   - ContentService: the modcontentservice update operations
//   - ManifestReader: Reads YAML, Markdown and Typst manifests
//   - Normaliser: Renders an editor source into text and a format code
//   - NormaliserRegistry: Selects the normaliser for a source extension
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DocumentCompiler: Typst compilation and metadata queries. Without it,
//     Typst manifests and sources are rejected and declared Typst
//     dependencies are not collected.
//   - FileWatcher: Change notification. Only used by upload --watch.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
