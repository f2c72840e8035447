package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/msavelyev/notedesk/internal/calc"
	"github.com/msavelyev/notedesk/internal/server/models"
)

func (r *Router) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (r *Router) handleLoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "log in with username and password"})
}

func (r *Router) handleLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	ok, err := r.users.Verify(c.Request.Context(), username, password)
	if err != nil {
		r.logger.Error("login check failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	// No rate limiting and no lockout, any number of attempts is allowed.
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	token, err := r.sessions.Create(username)
	if err != nil {
		r.logger.Error("session create failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.SetCookie(SessionCookie, token, 0, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (r *Router) handleLogout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil {
		r.sessions.Destroy(token)
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

func (r *Router) handleView(c *gin.Context) {
	notes, err := r.notes.List(c.Request.Context())
	if err != nil {
		r.logger.Error("listing notes failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	history, err := r.calc.History(c.Request.Context())
	if err != nil {
		r.logger.Error("listing history failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notes":        notesPayload(notes),
		"calc_history": historyPayload(history),
	})
}

func (r *Router) handleAddNote(c *gin.Context) {
	text := c.PostForm("note")

	// An empty note is not a mutating write: respond with the current list.
	if text == "" {
		notes, err := r.notes.List(c.Request.Context())
		if err != nil {
			r.logger.Error("listing notes failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "notes": notesPayload(notes)})
		return
	}

	notes, outcome, err := r.notes.Add(c.Request.Context(), text, c.PostFormArray("tags"))
	if err != nil {
		r.logger.Error("adding note failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if !outcome.Mirrored() {
		// Primary write succeeded; the backup did not. Reported explicitly.
		r.logger.Error("note mirror failed", "error", outcome.MirrorErr)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "backup mirror failed", "persisted": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "notes": notesPayload(notes)})
}

func (r *Router) handleDownloadNotes(c *gin.Context) {
	notes, err := r.notes.List(c.Request.Context())
	if err != nil {
		r.logger.Error("listing notes failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		lines = append(lines, n.Text)
	}

	c.Header("Content-Disposition", `attachment; filename="notes.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(strings.Join(lines, "\n")))
}

func (r *Router) handleCalculate(c *gin.Context) {
	expression := c.PostForm("expression")

	result, history, outcome, err := r.calc.Calculate(c.Request.Context(), expression)
	if err != nil {
		var evalErr *calc.EvaluationError
		if errors.As(err, &evalErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": evalErr.Message})
			return
		}
		r.logger.Error("calculation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if !outcome.Mirrored() {
		r.logger.Error("history mirror failed", "error", outcome.MirrorErr)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "backup mirror failed", "persisted": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "history": historyPayload(history)})
}

func notesPayload(notes []models.Note) []models.Note {
	if notes == nil {
		return []models.Note{}
	}
	return notes
}

func historyPayload(history []string) []string {
	if history == nil {
		return []string{}
	}
	return history
}
