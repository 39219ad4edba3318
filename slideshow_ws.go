package main

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// slideMessage is pushed to the browser whenever the shape changes.
type slideMessage struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	SVG   string `json:"svg"`
}

func newSlideMessage(i int) slideMessage {
	v := shapeVariants[i]
	return slideMessage{Index: i, Name: v.Name, SVG: string(v.SVG)}
}

// handleSlideshow owns one slideshow per open socket. The timer is stopped
// however the handler exits: the browser navigating away, a write failing
// or the server shutting down.
func (a *App) handleSlideshow(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("slideshow: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	viewID := uuid.NewString()
	var writeMu sync.Mutex
	send := func(i int) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		return conn.WriteJSON(newSlideMessage(i))
	}

	if err := send(0); err != nil {
		return
	}

	closed := make(chan struct{})
	var closeOnce sync.Once
	markClosed := func() { closeOnce.Do(func() { close(closed) }) }

	show, err := StartSlideshow(len(shapeVariants), a.cfg.Slideshow.Interval, func(i int) {
		if err := send(i); err != nil {
			markClosed()
		}
	})
	if err != nil {
		log.Printf("slideshow %s: %v", viewID, err)
		return
	}
	log.Printf("slideshow %s: opened", viewID)
	defer func() {
		show.Stop()
		show.Wait()
		log.Printf("slideshow %s: closed at %d", viewID, show.Index())
	}()

	// The page never sends anything; reading is only how we notice it
	// went away.
	go func() {
		defer markClosed()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case <-closed:
	case <-c.Request.Context().Done():
	case <-a.shutdown:
	}
}
