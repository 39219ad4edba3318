package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/smtp"
	"os"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
)

// App is the running site: configuration plus everything built from it at
// startup.
type App struct {
	cfg     *Config
	routes  *RouteTable
	catalog ThemeCatalog
	picker  *Picker
	store   *Store
	admin   *Admin
	resume  *resumeCache

	homeIntro   template.HTML
	aboutMe     template.HTML
	secretBlurb template.HTML

	sendMail mailSender

	shutdown     chan struct{}
	shutdownOnce sync.Once
	closeOnce    sync.Once
	closeErr     error
}

// NewApp loads the catalog, renders the page copy and, when a database
// path is configured, opens the analytics store.
func NewApp(cfg *Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	catalog, err := LoadCatalog(cfg.Picker.Catalog)
	if err != nil {
		return nil, err
	}
	if cfg.Picker.ImagesDir != "" {
		if _, err := os.Stat(cfg.Picker.ImagesDir); err == nil {
			catalog, err = catalog.Discover(os.DirFS(cfg.Picker.ImagesDir))
			if err != nil {
				return nil, err
			}
		}
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme catalog: %w", err)
	}

	a := &App{
		cfg:      cfg,
		routes:   NewRouteTable(cfg.Site.Pages),
		catalog:  catalog,
		picker:   NewPicker(cfg.Picker.AvoidRepeat),
		sendMail: smtp.SendMail,
		shutdown: make(chan struct{}),
	}

	for _, c := range []struct {
		dst *template.HTML
		src string
	}{
		{&a.homeIntro, HomeIntro},
		{&a.aboutMe, AboutMe},
		{&a.secretBlurb, SecretBlurb},
	} {
		if *c.dst, err = renderMarkdown(c.src); err != nil {
			return nil, fmt.Errorf("rendering page copy: %w", err)
		}
	}

	a.resume = &resumeCache{profile: ResumeProfile{
		Name:     cfg.Site.Name,
		Location: cfg.Site.Location,
		Links:    []string{cfg.Site.Email, cfg.Site.GitHub, cfg.Site.LinkedIn},
		About:    AboutMe,
		Projects: Projects,
	}}

	if cfg.Database.Path != "" {
		a.store, err = OpenStore(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		a.admin, err = NewAdmin(a.store, cfg.Admin)
		if err != nil {
			a.store.Close()
			return nil, err
		}
		a.admin.track(a.admin.cleanupOldVisitorData)
	}

	return a, nil
}

// endFeeds tells every open slideshow feed to stop. The database stays
// open so requests still in flight can finish.
func (a *App) endFeeds() {
	a.shutdownOnce.Do(func() { close(a.shutdown) })
}

// Close ends open slideshow feeds, waits for queued visit inserts and
// closes the database. Only the first call does anything.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		a.endFeeds()
		if a.admin != nil {
			a.admin.pending.Wait()
		}
		if a.store != nil {
			a.closeErr = a.store.Close()
		}
	})
	return a.closeErr
}

// Router builds the gin engine. Tracking middleware, when enabled, has to
// be installed before any route is registered.
func (a *App) Router() *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob(a.cfg.Server.Templates)

	if a.admin != nil {
		r.Use(a.admin.trackingMiddleware(a.routes))
		a.admin.setupRoutes(r)
	}

	if a.cfg.Server.StaticDir != "" {
		r.Static("/static", a.cfg.Server.StaticDir)
	}
	if a.cfg.Picker.ImagesDir != "" {
		r.Static("/images", a.cfg.Picker.ImagesDir)
	}

	for _, page := range a.routes.Pages() {
		r.GET(pageByName[string(page)].Path, a.servePage)
	}
	r.NoRoute(a.servePage)

	// Picture box fragments
	r.GET("/picturebox", a.handlePictureBox)
	r.GET("/picturebox/advance", a.handlePictureBoxAdvance)

	r.GET("/ws/slideshow", a.handleSlideshow)
	r.GET("/projects/search", a.handleProjectSearch)
	r.GET("/resume.pdf", a.handleResume)

	if a.cfg.pageEnabled(PageContact) {
		r.POST("/contact", a.handleContact)
	}
	if a.cfg.pageEnabled(PageSecret) {
		r.POST("/secret/unlock", a.handleGateUnlock)
		// Reachable whether or not the gate was passed.
		r.Static("/downloads", a.cfg.Gate.DownloadDir)
	}

	return r
}

// servePage renders whatever page the route table resolves the request
// path to, or the not-found page.
func (a *App) servePage(c *gin.Context) {
	route := a.routes.Resolve(c.Request.URL.Path)
	if route.Kind == RouteNotFound || c.Request.Method != http.MethodGet {
		c.HTML(http.StatusNotFound, templateFor(PageNotFound), a.Compose(PageNotFound, gin.H{
			"path": c.Request.URL.Path,
		}))
		return
	}

	var content gin.H
	switch route.Page {
	case PageHome:
		content = gin.H{
			"intro":      a.homeIntro,
			"shape":      shapeVariants[0],
			"intervalMs": a.cfg.Slideshow.Interval.Milliseconds(),
		}
	case PageAbout:
		content = gin.H{
			"about": a.aboutMe,
			"box":   newPictureBox(a.catalog, a.picker.Initialize(a.catalog)),
		}
	case PageProjects:
		content = gin.H{
			"projects": Projects,
		}
	case PageContact:
		content = gin.H{
			"title": "Contact Me",
		}
	case PageSecret:
		content = gin.H{
			"blurb": a.secretBlurb,
		}
	}
	c.HTML(http.StatusOK, templateFor(route.Page), a.Compose(route.Page, content))
}

func (a *App) handlePictureBox(c *gin.Context) {
	c.HTML(http.StatusOK, "picturebox.html", newPictureBox(a.catalog, a.picker.Initialize(a.catalog)))
}

// handlePictureBoxAdvance redraws the image of the theme the fragment was
// showing. The fragment carries its own state in the query string.
func (a *App) handlePictureBoxAdvance(c *gin.Context) {
	theme, err1 := strconv.Atoi(c.Query("theme"))
	image, err2 := strconv.Atoi(c.DefaultQuery("image", "0"))
	s := SelectionState{ThemeIndex: theme, ImageIndex: image}
	if err1 != nil || err2 != nil || !a.catalog.InBounds(s) {
		c.String(http.StatusBadRequest, "invalid picture selection")
		return
	}
	next := a.picker.Advance(a.catalog, s)
	c.HTML(http.StatusOK, "picturebox.html", newPictureBox(a.catalog, next))
}

func (a *App) handleProjectSearch(c *gin.Context) {
	q := c.Query("q")
	c.HTML(http.StatusOK, "project-list.html", gin.H{
		"projects": SearchProjects(Projects, q),
		"query":    q,
	})
}

func logStartup(cfg *Config, a *App) {
	log.Printf("Serving %d pages on %s", len(a.routes.Pages()), cfg.Server.Addr)
	log.Printf("Theme catalog: %d themes", len(a.catalog))
	if a.admin == nil {
		log.Println("Visitor tracking disabled (no database.path)")
	}
}
