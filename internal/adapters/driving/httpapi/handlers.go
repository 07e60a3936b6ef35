package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

// ProfileRequest identifies the person a report is for.
type ProfileRequest struct {
	FullName    string   `json:"full_name"`
	BirthDate   string   `json:"birth_date"`
	CurrentName string   `json:"current_name,omitempty"`
	Nicknames   []string `json:"nicknames,omitempty"`
	On          string   `json:"on,omitempty"`
}

// EmailRequest is the body of POST /api/email.
type EmailRequest struct {
	To string `json:"to"`
	ProfileRequest
}

// OracleRequest is the body of POST /api/oracle/roll.
type OracleRequest struct {
	Question string `json:"question,omitempty"`
}

// HealthResponse reports which optional services are configured.
type HealthResponse struct {
	Status string `json:"status"`
	Oracle bool   `json:"oracle"`
	Blog   bool   `json:"blog"`
	Chat   bool   `json:"chat"`
	Email  bool   `json:"email"`
}

var errBadBody = errors.New("request body must be valid JSON")

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Oracle: s.ports.Oracle != nil,
		Blog:   s.ports.Blog != nil,
		Chat:   s.ports.Chat != nil && s.ports.Chat.Available(),
		Email:  s.ports.Email != nil,
	})
}

func (s *Server) handleReport(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errBadBody.Error()})
		return
	}

	report, ok := s.report(c, req)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// report resolves req and computes the report, writing the error response
// on failure.
func (s *Server) report(c *gin.Context, req ProfileRequest) (*domain.Report, bool) {
	profile, on, err := req.resolve(domain.DateOf(s.now()))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	report, err := s.ports.Numerology.Report(c.Request.Context(), profile, on)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return report, true
}

func (s *Server) handleOracleRoll(c *gin.Context) {
	if s.ports.Oracle == nil {
		unavailable(c, "oracle")
		return
	}

	var req OracleRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: errBadBody.Error()})
			return
		}
	}

	reading, err := s.ports.Oracle.Roll(c.Request.Context(), req.Question)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reading)
}

func (s *Server) handleListPosts(c *gin.Context) {
	if s.ports.Blog == nil {
		unavailable(c, "blog")
		return
	}

	posts, err := s.ports.Blog.List(c.Request.Context(), strings.TrimSpace(c.Query("tag")))
	if err != nil {
		writeError(c, err)
		return
	}

	// Listings carry metadata only.
	out := make([]domain.Post, len(posts))
	for i, p := range posts {
		p.Body = ""
		out[i] = p
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetPost(c *gin.Context) {
	if s.ports.Blog == nil {
		unavailable(c, "blog")
		return
	}

	post, err := s.ports.Blog.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (s *Server) handleChat(c *gin.Context) {
	if s.ports.Chat == nil || !s.ports.Chat.Available() {
		unavailable(c, "chat")
		return
	}

	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errBadBody.Error()})
		return
	}

	reply, err := s.ports.Chat.Ask(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (s *Server) handleEmail(c *gin.Context) {
	if s.ports.Email == nil {
		unavailable(c, "email")
		return
	}

	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errBadBody.Error()})
		return
	}

	report, ok := s.report(c, req.ProfileRequest)
	if !ok {
		return
	}
	if err := s.ports.Email.SendReport(c.Request.Context(), req.To, report); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}

// resolve validates the request against today and returns the profile
// and reference date.
func (r ProfileRequest) resolve(today domain.Date) (domain.BirthProfile, domain.Date, error) {
	on := today
	if strings.TrimSpace(r.On) != "" {
		parsed, err := domain.ParseDate(r.On)
		if err != nil {
			var fe *domain.FieldError
			if errors.As(err, &fe) {
				fe.Field = "on"
			}
			return domain.BirthProfile{}, domain.Date{}, err
		}
		on = parsed
	}

	profile, err := domain.NewBirthProfile(domain.ProfileInput{
		FullName:    r.FullName,
		CurrentName: r.CurrentName,
		Nicknames:   r.Nicknames,
		BirthDate:   r.BirthDate,
	}, on)
	if err != nil {
		return domain.BirthProfile{}, domain.Date{}, err
	}
	return profile, on, nil
}
