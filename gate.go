package main

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

const gateErrorMessage = "Incorrect password. Try again."

// GateResult is the outcome of one password submission.
type GateResult struct {
	Unlocked bool
	Error    string
}

// Submit compares entered against secret exactly: case matters and
// whitespace is not trimmed.
//
// The gate only decides whether the download links are shown. The files
// themselves are served statically and reachable by path either way.
func Submit(entered, secret string) GateResult {
	if entered == secret {
		return GateResult{Unlocked: true}
	}
	return GateResult{Error: gateErrorMessage}
}

type download struct {
	Name string
	Href string
}

func gateDownloads(files []string) []download {
	out := make([]download, 0, len(files))
	for _, f := range files {
		out = append(out, download{Name: f, Href: path.Join("/downloads", f)})
	}
	return out
}

// handleGateUnlock checks the posted password and returns either the
// download links or the form again with the error.
func (a *App) handleGateUnlock(c *gin.Context) {
	res := Submit(c.PostForm("password"), a.cfg.Gate.Secret)
	if !res.Unlocked {
		c.HTML(http.StatusOK, "gate-form.html", gin.H{
			"error": res.Error,
		})
		return
	}
	c.HTML(http.StatusOK, "gate-unlocked.html", gin.H{
		"downloads": gateDownloads(a.cfg.Gate.Files),
	})
}
