// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package server is the presentation boundary: it collects the raw text
// command and renders the single workflow verdict. Nothing else crosses
// this surface.
package server

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/fasthttp/router"
	"github.com/segmentio/ksuid"
	"github.com/valyala/fasthttp"

	"github.com/platform-engineering-labs/opswish/pkg/extract"
	"github.com/platform-engineering-labs/opswish/pkg/intent"
	"github.com/platform-engineering-labs/opswish/pkg/provision"
)

// Runner executes one provisioning workflow. Satisfied by
// *provision.Orchestrator.
type Runner interface {
	Run(ctx context.Context, in intent.Intent) provision.Result
}

// Server handles one workflow per request goroutine; no state is shared
// between concurrent workflows.
type Server struct {
	Extractor extract.Extractor
	Runner    Runner
	Log       *slog.Logger
}

// Handler builds the request handler: a form on GET, a workflow on POST.
func (s *Server) Handler() fasthttp.RequestHandler {
	r := router.New()
	r.GET("/", s.handleIndex)
	r.POST("/", s.handleCommand)
	return r.Handler
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	return fasthttp.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleIndex(ctx *fasthttp.RequestCtx) {
	s.renderPage(ctx, "")
}

func (s *Server) handleCommand(ctx *fasthttp.RequestCtx) {
	command := string(ctx.FormValue("message"))
	workflowID := ksuid.New().String()
	log := s.log().With("workflow", workflowID)

	log.Info("command received", "command", command)

	in, err := s.Extractor.Extract(ctx, command)
	if err != nil {
		// Extraction and normalization failures are workflow verdicts,
		// not server errors; the process stays available.
		log.Error("intent extraction failed", "error", err)
		s.renderPage(ctx, fmt.Sprintf("❌ Error: %v", err))
		return
	}

	log.Info("intent resolved",
		"kind", in.Kind.String(), "name", in.Name, "location", in.Location)

	result := s.Runner.Run(ctx, in)
	log.Info("workflow reported", "success", result.Success, "resourceID", result.ResourceID)

	s.renderPage(ctx, result.Message)
}

func (s *Server) log() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head><title>opswish</title></head>
<body>
  <h1>opswish</h1>
  <form method="post" action="/">
    <input type="text" name="message" size="80" placeholder="e.g. create a storage account called mydata01 in east us" autofocus>
    <button type="submit">Provision</button>
  </form>
  <p class="verdict">%s</p>
</body>
</html>
`

func (s *Server) renderPage(ctx *fasthttp.RequestCtx, verdict string) {
	ctx.SetContentType("text/html; charset=utf-8")
	fmt.Fprintf(ctx, pageTemplate, html.EscapeString(verdict))
}
