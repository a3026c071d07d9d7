// Package readable provides a web service that turns any article URL into a
// distraction-free reading view.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., readability/, goquery/, rod/).
package readable
