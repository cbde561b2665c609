// Package ceu turns raw HTML pages from continuing-education providers into
// structured course records: credits, price, format, subject field,
// accreditations, instructors and a confidence score for each.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, prose/).
package ceu
