package entity

// BreadcrumbEntry is one ancestor in a breadcrumb trail.
type BreadcrumbEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Breadcrumbs lists an entity's ancestors from nearest parent to root.
// FullTrail is false when the trail was truncated at the maximum
// length before reaching the root.
type Breadcrumbs struct {
	Trail     []BreadcrumbEntry `json:"trail"`
	FullTrail bool              `json:"full_trail"`
}
