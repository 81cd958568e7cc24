// Package webextract derives structured views from arbitrary webpage markup:
// readable article text as markdown, normalized tabular data, and page
// metadata resolved through fallback chains.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/).
package webextract
