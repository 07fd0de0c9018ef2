// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/platform-engineering-labs/opswish/pkg/intent"
	"github.com/platform-engineering-labs/opswish/pkg/provision"
)

type stubExtractor struct {
	in  intent.Intent
	err error
}

func (s *stubExtractor) Extract(context.Context, string) (intent.Intent, error) {
	return s.in, s.err
}

type stubRunner struct {
	result provision.Result
	got    intent.Intent
	runs   int
}

func (s *stubRunner) Run(_ context.Context, in intent.Intent) provision.Result {
	s.runs++
	s.got = in
	return s.result
}

func newTestServer(ex *stubExtractor, run *stubRunner) *Server {
	return &Server{
		Extractor: ex,
		Runner:    run,
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func post(t *testing.T, s *Server, body string) *fasthttp.RequestCtx {
	t.Helper()

	var req fasthttp.Request
	req.Header.SetMethod(fasthttp.MethodPost)
	req.SetRequestURI("/")
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.SetBodyString(body)

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	s.Handler()(&ctx)
	return &ctx
}

func TestHandleCommand_Success(t *testing.T) {
	run := &stubRunner{result: provision.Result{
		Success: true,
		Message: "✅ Resource group 'rg-test' created in 'westus'.",
	}}
	ex := &stubExtractor{in: intent.Intent{Kind: intent.KindResourceGroup, Name: "rg-test", Location: "westus"}}

	ctx := post(t, newTestServer(ex, run), "message=create+rg-test+in+west+us")

	body := string(ctx.Response.Body())
	assert.Contains(t, body, "rg-test")
	assert.Contains(t, body, "westus")
	assert.Contains(t, body, "✅")
	assert.Equal(t, 1, run.runs)
	assert.Equal(t, intent.KindResourceGroup, run.got.Kind)
}

func TestHandleCommand_ExtractionFailureRendersVerdict(t *testing.T) {
	ex := &stubExtractor{err: errors.New("intent extraction returned no completion")}
	run := &stubRunner{}

	ctx := post(t, newTestServer(ex, run), "message=gibberish")

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(),
		"workflow failures are verdicts, not server errors")
	assert.Contains(t, string(ctx.Response.Body()), "❌ Error:")
	assert.Zero(t, run.runs, "no workflow may run without an intent")
}

func TestHandleCommand_VerdictIsEscaped(t *testing.T) {
	run := &stubRunner{result: provision.Result{
		Success: false,
		Message: `❌ Failed to create web app '<script>alert(1)</script>'`,
	}}
	ex := &stubExtractor{in: intent.Intent{Kind: intent.KindWebApp, Name: "x", Location: "westus"}}

	ctx := post(t, newTestServer(ex, run), "message=whatever")

	body := string(ctx.Response.Body())
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestHandleIndex(t *testing.T) {
	s := newTestServer(&stubExtractor{}, &stubRunner{})

	var req fasthttp.Request
	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI("/")

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	s.Handler()(&ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	body := string(ctx.Response.Body())
	assert.Contains(t, body, "<form")
	assert.Contains(t, body, `name="message"`)
}
