package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/milk9111/bossgen/content"
	"github.com/milk9111/bossgen/content/gemini"
)

// maxPromptBytes bounds the request body accepted from game clients.
const maxPromptBytes = 64 << 10

type server struct {
	upstream content.Completer
	timeout  time.Duration
}

// newRouter serves the generateContent wire format on /v1/generate and
// forwards prompts to upstream, which holds the credential.
func newRouter(upstream content.Completer, timeout time.Duration) *gin.Engine {
	s := &server{upstream: upstream, timeout: timeout}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("contentproxy: %s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	{
		v1.POST("/generate", s.generate)
	}
	return r
}

func (s *server) generate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPromptBytes)

	var req gemini.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(http.StatusBadRequest, "invalid request body"))
		return
	}
	prompt, ok := req.Prompt()
	if !ok || strings.TrimSpace(prompt) == "" {
		c.JSON(http.StatusBadRequest, errorBody(http.StatusBadRequest, "prompt required"))
		return
	}

	ctx := c.Request.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.upstream.Complete(ctx, prompt)
	if err != nil {
		log.Printf("contentproxy: upstream: %v", err)
		status := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, errorBody(status, "upstream request failed"))
		return
	}
	c.JSON(http.StatusOK, gemini.NewResponse(text))
}

func errorBody(code int, msg string) gemini.Response {
	return gemini.Response{Error: &gemini.APIError{
		Code:    code,
		Message: msg,
		Status:  http.StatusText(code),
	}}
}
