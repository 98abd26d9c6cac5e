// Package breadcrumb derives breadcrumb navigation trails from page URL paths.
//
// A page path such as /handbook/guides/setup.html is split into segments.
// The leading empty segment and the site root ("handbook") are dropped, and
// every remaining segment becomes a link to its ancestor page:
//
//	<a href="/handbook/guides.html">guides</a> >> <a href="/handbook/guides/setup.html">setup</a>
//
// Ancestor targets are rebuilt by joining the leading segments, so a folder
// and a page that share a name still resolve to distinct targets.
//
// Rendering is pure. The only side effect is the single write into a Sink,
// which stands in for the page's breadcrumb container.
package breadcrumb
