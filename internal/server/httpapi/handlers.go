package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/notebook/internal/common"
	"github.com/dmitrijs2005/notebook/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// bindBody decodes a JSON or form-encoded request body into dst. Bodies
// without a form content type are read as JSON. An empty body leaves dst
// zeroed so that validation reports the missing fields.
func bindBody(c *gin.Context, dst any) bool {
	var err error
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		err = c.ShouldBindWith(dst, binding.Form)
	default:
		err = c.ShouldBindJSON(dst)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		badBody(c)
		return false
	}
	return true
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) createUser(c *gin.Context) {
	var in services.RegisterInput
	if !bindBody(c, &in) {
		return
	}

	user, err := s.users.Register(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "user registered", "user_id", user.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User created in the database", "user": user})
}

func (s *Server) login(c *gin.Context) {
	var in services.LoginInput
	if !bindBody(c, &in) {
		return
	}

	user, err := s.users.Login(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User logged in successfully", "user": user})
}

func (s *Server) getUser(c *gin.Context) {
	user, err := s.users.GetCurrentUser(c.Request.Context(), userIDFromContext(c))
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Please login"})
			return
		}
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": user})
}

func (s *Server) createNote(c *gin.Context) {
	var in services.NoteInput
	if !bindBody(c, &in) {
		return
	}

	note, err := s.notes.Create(c.Request.Context(), userIDFromContext(c), in)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "note": note})
}

func (s *Server) getNotes(c *gin.Context) {
	notes, err := s.notes.List(c.Request.Context(), userIDFromContext(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notes": notes})
}

func (s *Server) updateNote(c *gin.Context) {
	var in services.NoteInput
	if !bindBody(c, &in) {
		return
	}

	note, err := s.notes.Update(c.Request.Context(), userIDFromContext(c), c.Param("id"), in)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": note})
}

func (s *Server) deleteNote(c *gin.Context) {
	note, err := s.notes.Delete(c.Request.Context(), userIDFromContext(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": note})
}

func (s *Server) exportNotes(c *gin.Context) {
	exp, err := s.archive.Export(c.Request.Context(), userIDFromContext(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "key": exp.Key, "url": exp.URL, "count": exp.Count})
}
