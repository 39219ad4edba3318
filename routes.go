package main

// PageID names one routed page.
type PageID string

const (
	PageHome     PageID = "home"
	PageAbout    PageID = "about"
	PageProjects PageID = "projects"
	PageContact  PageID = "contact"
	PageSecret   PageID = "secret"
	PageNotFound PageID = "notfound"
)

type pageInfo struct {
	Path     string
	Title    string
	Template string
	// Nav is false for pages reachable only by typing the path.
	Nav bool
}

// Declaration order is nav order.
var pageOrder = []PageID{PageHome, PageAbout, PageProjects, PageContact, PageSecret}

var pageByName = map[string]pageInfo{
	string(PageHome):     {Path: "/", Title: "home", Template: "home.html", Nav: true},
	string(PageAbout):    {Path: "/about", Title: "about", Template: "about.html", Nav: true},
	string(PageProjects): {Path: "/projects", Title: "projects", Template: "projects.html", Nav: true},
	string(PageContact):  {Path: "/contact", Title: "contact", Template: "contact.html", Nav: true},
	string(PageSecret):   {Path: "/secret", Title: "secret", Template: "secret.html"},
}

var notFoundPage = pageInfo{Title: "not found", Template: "notfound.html"}

// RouteKind tells a resolved route from a miss.
type RouteKind int

const (
	RouteFound RouteKind = iota
	RouteNotFound
)

// Route is the result of resolving a path. Page is PageNotFound when Kind
// is RouteNotFound.
type Route struct {
	Kind RouteKind
	Page PageID
}

// RouteTable maps paths to pages. It never changes after construction.
type RouteTable struct {
	byPath  map[string]PageID
	enabled []PageID
}

// NewRouteTable builds the table from the enabled page names. Home is
// always present.
func NewRouteTable(pages []string) *RouteTable {
	want := map[string]bool{string(PageHome): true}
	for _, p := range pages {
		want[p] = true
	}
	rt := &RouteTable{byPath: make(map[string]PageID)}
	for _, id := range pageOrder {
		if !want[string(id)] {
			continue
		}
		rt.byPath[pageByName[string(id)].Path] = id
		rt.enabled = append(rt.enabled, id)
	}
	return rt
}

// Resolve looks the path up. It does not normalise trailing slashes or
// look at query strings.
func (rt *RouteTable) Resolve(path string) Route {
	if id, ok := rt.byPath[path]; ok {
		return Route{Kind: RouteFound, Page: id}
	}
	return Route{Kind: RouteNotFound, Page: PageNotFound}
}

// Pages returns the enabled pages in nav order.
func (rt *RouteTable) Pages() []PageID {
	return append([]PageID(nil), rt.enabled...)
}

// NavLink is one entry in the directory at the top of every page.
type NavLink struct {
	Label string
	Href  string
}

func (rt *RouteTable) navLinks() []NavLink {
	links := make([]NavLink, 0, len(rt.enabled))
	for _, id := range rt.enabled {
		info := pageByName[string(id)]
		if !info.Nav {
			continue
		}
		links = append(links, NavLink{Label: info.Title + " /", Href: info.Path})
	}
	return links
}

// Footer is the chrome under every page.
type Footer struct {
	Location string
	LinkedIn string
	GitHub   string
	Resume   string
	Email    string
}

// PageView is everything a page template renders: the nav, the page's own
// content, then the footer.
type PageView struct {
	Page    PageID
	Title   string
	Name    string
	Nav     []NavLink
	Content any
	Footer  Footer
}

// Compose wraps content in the shared chrome. The page identity only picks
// the title; every page gets the same nav and footer.
func (a *App) Compose(page PageID, content any) PageView {
	info, ok := pageByName[string(page)]
	if !ok {
		info = notFoundPage
	}
	return PageView{
		Page:    page,
		Title:   info.Title,
		Name:    a.cfg.Site.Name,
		Nav:     a.routes.navLinks(),
		Content: content,
		Footer: Footer{
			Location: a.cfg.Site.Location,
			LinkedIn: a.cfg.Site.LinkedIn,
			GitHub:   a.cfg.Site.GitHub,
			Resume:   "/resume.pdf",
			Email:    a.cfg.Site.Email,
		},
	}
}

func templateFor(page PageID) string {
	if info, ok := pageByName[string(page)]; ok {
		return info.Template
	}
	return notFoundPage.Template
}
