// Package roster incrementally extracts people records from a progressively
// loading company "People" page. It watches the rendered document for new
// person cards, normalizes and validates their names, deduplicates them for
// the lifetime of a session, drives the page's own "show more" control to
// surface more cards, and formats the collected records as CSV.
//
// This package contains domain types, pure domain functions and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/, rod/,
// sqlite/). Session orchestration lives in scrape/.
package roster
