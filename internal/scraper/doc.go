// Package scraper provides HTTP fetching and update-date extraction for the
// Bad Leonfelden housing page.
//
// The scraper fetches the public municipal page with a browser User-Agent and
// extracts the "Stand: DD.MM.YYYY" publication stamp from the page text. The
// stamp is the only structure parsed; listings themselves are never
// interpreted.
package scraper
